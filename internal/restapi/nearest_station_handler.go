package restapi

import (
	"net/http"
	"strconv"

	"komuterkita.id/internal/geo"
	"komuterkita.id/internal/models"
)

type nearestStationEntry struct {
	models.Station
	DistanceKm float64 `json:"distanceKm"`
}

func (api *RestAPI) nearestStationHandler(w http.ResponseWriter, r *http.Request) {
	fieldErrors := make(map[string][]string)

	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		fieldErrors["lat"] = []string{"must be a valid latitude"}
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		fieldErrors["lon"] = []string{"must be a valid longitude"}
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	stations := api.cachedStations(r.Context())
	if len(stations) == 0 {
		api.sendNullData(w, r)
		return
	}

	nearest := nearestStationEntry{Station: stations[0]}
	nearest.DistanceKm = geo.Distance(lat, lon, stations[0].Lat, stations[0].Lon)
	for _, station := range stations[1:] {
		if d := geo.Distance(lat, lon, station.Lat, station.Lon); d < nearest.DistanceKm {
			nearest = nearestStationEntry{Station: station, DistanceKm: d}
		}
	}

	api.sendResponse(w, r, nearest)
}
