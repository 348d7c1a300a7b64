package restapi

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"komuterkita.id/internal/models"
	"komuterkita.id/internal/querycache"
)

func (api *RestAPI) trainRouteHandler(w http.ResponseWriter, r *http.Request) {
	trainID := httprouter.ParamsFromContext(r.Context()).ByName("id")

	stops, err := querycache.Fetch(r.Context(), api.Cache, trainRouteKey(trainID), querycache.TrainRouteFreshness,
		func(ctx context.Context) ([]models.TrainRouteStop, error) {
			return api.KRL.FetchTrainRoute(ctx, trainID)
		})
	if err != nil {
		stops = []models.TrainRouteStop{}
	}

	api.sendResponse(w, r, stops)
}
