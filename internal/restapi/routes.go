package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/v1/stations", api.stationsHandler)
	router.HandlerFunc(http.MethodGet, "/v1/nearest-station", api.nearestStationHandler)
	router.HandlerFunc(http.MethodGet, "/v1/stations/:id/schedule", api.stationScheduleHandler)
	router.HandlerFunc(http.MethodGet, "/v1/trains/:id/route", api.trainRouteHandler)
	router.HandlerFunc(http.MethodGet, "/v1/fare", api.fareHandler)
	router.HandlerFunc(http.MethodGet, "/v1/routemap", api.routeMapHandler)
}
