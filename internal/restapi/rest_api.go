package restapi

import (
	"context"

	"komuterkita.id/internal/app"
)

type RestAPI struct {
	*app.Application
}

func NewRestAPI(application *app.Application) *RestAPI {
	return &RestAPI{Application: application}
}

func scheduleKey(stationID string) string {
	return "schedule:" + stationID
}

func trainRouteKey(trainID string) string {
	return "train-route:" + trainID
}

func fareKey(from, to string) string {
	return "fare:" + from + ":" + to
}

// WatchStation marks a station's schedule for periodic background
// refresh. Called on every schedule request, so a station stays watched
// exactly as long as something keeps asking for it.
func (api *RestAPI) WatchStation(stationID string) {
	api.Refresher.Watch(scheduleKey(stationID), api.scheduleFetch(stationID))
}

// PinStation keeps a station's schedule refreshed permanently,
// regardless of request traffic.
func (api *RestAPI) PinStation(stationID string) {
	api.Refresher.Pin(scheduleKey(stationID), api.scheduleFetch(stationID))
}

func (api *RestAPI) scheduleFetch(stationID string) func(ctx context.Context) (any, error) {
	return func(ctx context.Context) (any, error) {
		return api.KRL.FetchStationSchedule(ctx, stationID)
	}
}
