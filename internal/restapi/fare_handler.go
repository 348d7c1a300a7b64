package restapi

import (
	"context"
	"net/http"

	"komuterkita.id/internal/models"
	"komuterkita.id/internal/querycache"
)

func (api *RestAPI) fareHandler(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	fieldErrors := make(map[string][]string)
	if from == "" {
		fieldErrors["from"] = []string{"must be a station code"}
	}
	if to == "" {
		fieldErrors["to"] = []string{"must be a station code"}
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	fare, err := querycache.Fetch(r.Context(), api.Cache, fareKey(from, to), querycache.DefaultFreshness,
		func(ctx context.Context) (*models.FareDetail, error) {
			return api.KRL.FetchFare(ctx, from, to)
		})
	if err != nil || fare == nil {
		// "No fare row" and "fetch failed" render the same way.
		api.sendNullData(w, r)
		return
	}

	api.sendResponse(w, r, fare)
}
