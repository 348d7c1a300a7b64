package restapi

import (
	"context"
	"net/http"

	"komuterkita.id/internal/krl"
	"komuterkita.id/internal/models"
	"komuterkita.id/internal/querycache"
)

// cachedStations serves the station list through the cache. It is
// fetched once and then never considered stale; if even the first
// fetch fails the fixed fallback list is served so callers always get
// a usable, non-empty list.
func (api *RestAPI) cachedStations(ctx context.Context) []models.Station {
	stations, err := querycache.Fetch(ctx, api.Cache, "stations", querycache.StationFreshness, api.KRL.FetchStations)
	if err != nil {
		return krl.FallbackStations()
	}
	return stations
}

func (api *RestAPI) stationsHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, api.cachedStations(r.Context()))
}
