package restapi

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"komuterkita.id/internal/krl"
	"komuterkita.id/internal/models"
	"komuterkita.id/internal/querycache"
)

func (api *RestAPI) stationScheduleHandler(w http.ResponseWriter, r *http.Request) {
	stationID := httprouter.ParamsFromContext(r.Context()).ByName("id")

	// Requesting a schedule keeps it on the background refresh rotation.
	api.WatchStation(stationID)

	fetch := querycache.WithRetry(querycache.ScheduleRetries, func(ctx context.Context) (models.StationSchedule, error) {
		return api.KRL.FetchStationSchedule(ctx, stationID)
	})

	schedule, err := querycache.Fetch(r.Context(), api.Cache, scheduleKey(stationID), querycache.ScheduleFreshness, fetch)
	if err != nil {
		// Availability over correctness signaling: a failed fetch
		// renders as an empty schedule, never as an error.
		schedule = krl.EmptyStationSchedule(stationID, time.Now())
	}

	api.sendResponse(w, r, schedule)
}
