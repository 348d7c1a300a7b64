package krl

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a Client at a stub upstream and pins its clock.
func newTestClient(t *testing.T, handler http.Handler, now time.Time) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(Config{
		BaseURL: server.URL,
		Now:     func() time.Time { return now },
	})
}

func envelopeBody(data string) string {
	return fmt.Sprintf(`{"status": 200, "message": "OK", "data": %s}`, data)
}

func TestStationsFiltersAndEnriches(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/krl-station", r.URL.Path)
		fmt.Fprint(w, envelopeBody(`[
			{"sta_id": "MRI", "sta_name": "Manggarai", "group_wil": 0, "fg_enable": 1},
			{"sta_id": "WIL1", "sta_name": "Wilayah 1", "group_wil": 1, "fg_enable": 1},
			{"sta_id": "OFF", "sta_name": "Disabled", "group_wil": 0, "fg_enable": 0},
			{"sta_id": "NEW", "sta_name": "Uncharted", "group_wil": 0, "fg_enable": 1}
		]`))
	})
	client := newTestClient(t, handler, clock(t, "10:00"))

	stations := client.Stations(context.Background())
	require.Len(t, stations, 2)

	assert.Equal(t, "MRI", stations[0].ID)
	assert.Equal(t, -6.2099, stations[0].Lat)
	assert.Equal(t, 106.8503, stations[0].Lon)

	// Unknown station codes get the city-center fallback coordinate.
	assert.Equal(t, "NEW", stations[1].ID)
	assert.Equal(t, -6.2088, stations[1].Lat)
	assert.Equal(t, 106.8456, stations[1].Lon)

	for _, station := range stations {
		assert.Equal(t, 1, station.FgEnable)
		assert.Equal(t, 0, station.GroupWil)
	}
}

func TestStationsFallbackOnUpstreamError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	client := newTestClient(t, handler, clock(t, "10:00"))

	stations := client.Stations(context.Background())
	require.NotEmpty(t, stations)
	assert.Equal(t, "JAKK", stations[0].ID)
	assert.Equal(t, "Jakarta Kota", stations[0].Name)
}

func TestStationsFallbackOnMalformedPayload(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>upstream maintenance page</html>`)
	})
	client := newTestClient(t, handler, clock(t, "10:00"))

	stations := client.Stations(context.Background())
	assert.Len(t, stations, 3)
}

func TestStationScheduleNormalizes(t *testing.T) {
	now := clock(t, "10:00")
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/schedules", r.URL.Path)
		assert.Equal(t, "BKS", r.URL.Query().Get("stationid"))
		assert.Equal(t, "10:00", r.URL.Query().Get("timefrom"))
		assert.Equal(t, "13:00", r.URL.Query().Get("timeto"))

		// Unsorted, with a duplicate (train_id, time_est) pair whose
		// second occurrence carries a different destination.
		fmt.Fprint(w, envelopeBody(`[
			{"train_id": "1902", "ka_name": "COMMUTER LINE", "route_name": "BEKASI-JAKARTA", "dest": "JAKARTA KOTA", "time_est": "12:30:00", "color": "#0084D8", "dest_time": "13:10:00"},
			{"train_id": "1880", "ka_name": "COMMUTER LINE", "route_name": "BEKASI-JAKARTA", "dest": "JAKARTA KOTA", "time_est": "10:05:00", "color": "#0084D8", "dest_time": "10:45:00"},
			{"train_id": "1880", "ka_name": "COMMUTER LINE", "route_name": "BEKASI-JAKARTA", "dest": "ANGKE", "time_est": "10:05:00", "color": "#0084D8", "dest_time": "10:45:00"},
			{"train_id": "1890", "ka_name": "COMMUTER LINE", "route_name": "BEKASI-JAKARTA", "dest": "JAKARTA KOTA", "time_est": "11:12:00", "color": "#0084D8", "dest_time": "11:52:00"}
		]`))
	})
	client := newTestClient(t, handler, now)

	result := client.StationSchedule(context.Background(), "BKS")
	assert.Equal(t, "BKS", result.StationID)
	assert.Equal(t, now, result.Timestamp)
	require.Len(t, result.Schedules, 3)

	// Sorted ascending by time of day, times truncated to HH:MM.
	assert.Equal(t, []string{"10:05", "11:12", "12:30"}, []string{
		result.Schedules[0].Time, result.Schedules[1].Time, result.Schedules[2].Time,
	})

	// First occurrence of the duplicated (trainId, time) pair wins.
	assert.Equal(t, "1880", result.Schedules[0].TrainID)
	assert.Equal(t, "JAKARTA KOTA", result.Schedules[0].Destination)

	assert.Equal(t, StatusBoarding, result.Schedules[0].Status)
	assert.Equal(t, StatusOnTime, result.Schedules[1].Status)
	assert.Equal(t, "1", result.Schedules[0].Platform)
	assert.Equal(t, "10:45", result.Schedules[0].DestTime)
	assert.Equal(t, "BEKASI-JAKARTA", result.Schedules[0].Route)
}

func TestStationScheduleUniqueByTrainAndTime(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, envelopeBody(`[
			{"train_id": "1880", "ka_name": "A", "route_name": "R", "dest": "X", "time_est": "10:05:00", "color": "#111111", "dest_time": "10:45:00"},
			{"train_id": "1880", "ka_name": "A", "route_name": "R", "dest": "X", "time_est": "10:35:00", "color": "#111111", "dest_time": "11:15:00"},
			{"train_id": "1881", "ka_name": "A", "route_name": "R", "dest": "X", "time_est": "10:05:00", "color": "#111111", "dest_time": "10:45:00"}
		]`))
	})
	client := newTestClient(t, handler, clock(t, "10:00"))

	result := client.StationSchedule(context.Background(), "BKS")
	require.Len(t, result.Schedules, 3)

	seen := make(map[string]bool)
	for _, schedule := range result.Schedules {
		key := schedule.TrainID + "@" + schedule.Time
		assert.False(t, seen[key], "duplicate pair %s", key)
		seen[key] = true
	}
}

func TestStationScheduleEmptyOnFailure(t *testing.T) {
	now := clock(t, "10:00")
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	client := newTestClient(t, handler, now)

	result := client.StationSchedule(context.Background(), "BKS")
	assert.Equal(t, "BKS", result.StationID)
	assert.Equal(t, now, result.Timestamp)
	assert.Empty(t, result.Schedules)
	assert.NotNil(t, result.Schedules)
}

func TestTrainRouteNormalizesTransit(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/schedules-train", r.URL.Path)
		assert.Equal(t, "1880", r.URL.Query().Get("trainid"))
		fmt.Fprint(w, envelopeBody(`[
			{"train_id": "1880", "ka_name": "COMMUTER LINE", "station_id": "BKS", "station_name": "BEKASI", "time_est": "10:05:00", "transit_station": false, "color": "#0084D8", "transit": ""},
			{"train_id": "1880", "ka_name": "COMMUTER LINE", "station_id": "MRI", "station_name": "MANGGARAI", "time_est": "10:35:00", "transit_station": true, "color": "#0084D8", "transit": ["#0084D8", "#D12929"]},
			{"train_id": "1880", "ka_name": "COMMUTER LINE", "station_id": "JAKK", "station_name": "JAKARTA KOTA", "time_est": "10:45:00", "transit_station": true, "color": "#0084D8", "transit": "#D12929"}
		]`))
	})
	client := newTestClient(t, handler, clock(t, "10:00"))

	stops := client.TrainRoute(context.Background(), "1880")
	require.Len(t, stops, 3)

	assert.Empty(t, stops[0].Transit)
	assert.Equal(t, []string{"#0084D8", "#D12929"}, stops[1].Transit)
	// A scalar transit value becomes a one-element list.
	assert.Equal(t, []string{"#D12929"}, stops[2].Transit)

	assert.Equal(t, "10:05", stops[0].TimeEst)
	assert.True(t, stops[1].TransitStation)
}

func TestTrainRouteEmptyOnFailure(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	client := newTestClient(t, handler, clock(t, "10:00"))

	stops := client.TrainRoute(context.Background(), "1880")
	assert.Empty(t, stops)
	assert.NotNil(t, stops)
}

func TestFareFirstRow(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fare", r.URL.Path)
		assert.Equal(t, "BKS", r.URL.Query().Get("stationfrom"))
		assert.Equal(t, "JAKK", r.URL.Query().Get("stationto"))
		fmt.Fprint(w, envelopeBody(`[
			{"sta_code_from": "BKS", "sta_name_from": "BEKASI", "sta_code_to": "JAKK", "sta_name_to": "JAKARTA KOTA", "fare": 4000, "distance": "27.113 KM"},
			{"sta_code_from": "BKS", "sta_name_from": "BEKASI", "sta_code_to": "JAKK", "sta_name_to": "JAKARTA KOTA", "fare": 5000, "distance": "30.000 KM"}
		]`))
	})
	client := newTestClient(t, handler, clock(t, "10:00"))

	fare := client.Fare(context.Background(), "BKS", "JAKK")
	require.NotNil(t, fare)
	assert.Equal(t, 4000, fare.Fare)
	assert.Equal(t, "27.113 KM", fare.Distance)
	assert.Equal(t, "BEKASI", fare.StaNameFrom)
}

func TestFareAbsentAndFailedAreIndistinguishable(t *testing.T) {
	empty := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, envelopeBody(`[]`))
	})
	failing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	assert.Nil(t, newTestClient(t, empty, clock(t, "10:00")).Fare(context.Background(), "BKS", "BKS"))
	assert.Nil(t, newTestClient(t, failing, clock(t, "10:00")).Fare(context.Background(), "BKS", "JAKK"))
}

func TestRouteMap(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/routemap", r.URL.Path)
		fmt.Fprint(w, envelopeBody(`[{"area": 0, "permalink": "https://example.com/jabodetabek.pdf"}]`))
	})
	client := newTestClient(t, handler, clock(t, "10:00"))

	entries := client.RouteMap(context.Background())
	require.Len(t, entries, 1)
	assert.Equal(t, "https://example.com/jabodetabek.pdf", entries[0].Permalink)
}

func TestRouteMapEmptyOnFailure(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": 401, "message": "expired token", "data": null}`)
	})
	client := newTestClient(t, handler, clock(t, "10:00"))

	assert.Empty(t, client.RouteMap(context.Background()))
}
