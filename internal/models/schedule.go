package models

import "time"

// Schedule is one train departure from a station. Times are wall-clock
// HH:MM strings; the upstream carries no date. Platform is a constant
// placeholder because the upstream never supplies one.
type Schedule struct {
	TrainID     string `json:"trainId"`
	TrainName   string `json:"trainName"`
	Destination string `json:"destination"`
	Time        string `json:"time"`
	Status      string `json:"status"`
	Platform    string `json:"platform"`
	Color       string `json:"color"`
	Route       string `json:"route"`
	DestTime    string `json:"destTime"`
}

// StationSchedule is one station's departures for a fetch window,
// ordered ascending by departure time of day and unique by
// (TrainID, Time). It is replaced wholesale on every refetch, never
// mutated in place.
type StationSchedule struct {
	StationID string     `json:"stationId"`
	Timestamp time.Time  `json:"timestamp"`
	Schedules []Schedule `json:"schedules"`
}
