package krl

import (
	"time"

	"komuterkita.id/internal/models"
)

// FallbackStations is the fixed list served when the station endpoint
// cannot be reached: callers must always receive a usable, non-empty
// list.
func FallbackStations() []models.Station {
	return []models.Station{
		{ID: "JAKK", Name: "Jakarta Kota", Lat: -6.1376, Lon: 106.8146, GroupWil: 0, FgEnable: 1},
		{ID: "MRI", Name: "Manggarai", Lat: -6.2099, Lon: 106.8503, GroupWil: 0, FgEnable: 1},
		{ID: "BKS", Name: "Bekasi", Lat: -6.2383, Lon: 106.9756, GroupWil: 0, FgEnable: 1},
	}
}

// EmptyStationSchedule is the safe default for a station whose schedule
// could not be fetched: a fresh timestamp, the station id, no rows.
func EmptyStationSchedule(stationID string, at time.Time) models.StationSchedule {
	return models.StationSchedule{
		StationID: stationID,
		Timestamp: at,
		Schedules: []models.Schedule{},
	}
}
