package restapi

import (
	"encoding/json"
	"net/http"

	"komuterkita.id/internal/models"
)

func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, data any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(models.NewResponse(data)); err != nil {
		api.Logger.Error("failed to encode response", "error", err)
	}
}

// sendNullData answers 200 with a null data field: the affirmative
// "nothing here" shape, distinct from an error.
func (api *RestAPI) sendNullData(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, nil)
}
