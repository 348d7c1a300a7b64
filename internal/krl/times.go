package krl

import (
	"math"
	"strings"
	"time"
)

const clockLayout = "15:04"

// Human status labels for a departure relative to the current wall
// clock.
const (
	StatusDeparted     = "Departed"
	StatusDeparting    = "Departing"
	StatusBoarding     = "Boarding"
	StatusArrivingSoon = "Arriving Soon"
	StatusOnTime       = "On Time"
	StatusScheduled    = "Scheduled"
)

// ClockTime truncates an upstream time string to HH:MM. The schedule
// endpoints serve HH:MM:SS, others already serve HH:MM; anything
// shorter passes through untouched.
func ClockTime(s string) string {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) >= 2 {
		return parts[0] + ":" + parts[1]
	}
	return s
}

// MinuteOfDay converts an HH:MM(:SS) string to minutes since midnight
// for time-of-day ranking. Unparseable strings rank as -1 so malformed
// rows sort ahead of real ones deterministically.
func MinuteOfDay(s string) int {
	hour, minute, err := parseClock(s)
	if err != nil {
		return -1
	}
	return hour*60 + minute
}

func parseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse(clockLayout, ClockTime(s))
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}

// DeriveStatus labels a departure by how far its estimated time sits
// from the current wall clock, in whole floored minutes. The estimate
// carries no date, so it is pinned to today in now's location.
func DeriveStatus(now time.Time, timeEst string) string {
	hour, minute, err := parseClock(timeEst)
	if err != nil {
		return StatusScheduled
	}

	est := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	diff := int(math.Floor(est.Sub(now).Minutes()))

	switch {
	case diff < -10:
		return StatusDeparted
	case diff < 0:
		return StatusDeparting
	case diff < 5:
		return StatusBoarding
	case diff < 15:
		return StatusArrivingSoon
	default:
		return StatusOnTime
	}
}

// TimeWindow returns the rolling schedule query window as local HH:MM
// strings: now, and three hours from now. Both ends are read off full
// instants, so a window crossing midnight yields to < from; the
// upstream is trusted to interpret that wrap, matching how the service
// has always queried it.
func TimeWindow(now time.Time) (from, to string) {
	return now.Format(clockLayout), now.Add(3 * time.Hour).Format(clockLayout)
}
