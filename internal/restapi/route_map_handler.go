package restapi

import (
	"net/http"

	"komuterkita.id/internal/models"
	"komuterkita.id/internal/querycache"
)

func (api *RestAPI) routeMapHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := querycache.Fetch(r.Context(), api.Cache, "routemap", querycache.DefaultFreshness, api.KRL.FetchRouteMap)
	if err != nil {
		entries = []models.RouteMapEntry{}
	}

	api.sendResponse(w, r, entries)
}
