package restapi

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"

	"komuterkita.id/internal/app"
	"komuterkita.id/internal/krl"
	"komuterkita.id/internal/logging"
	"komuterkita.id/internal/models"
	"komuterkita.id/internal/querycache"
)

// createTestApi wires a RestAPI against a stub upstream handler.
func createTestApi(t *testing.T, upstream http.Handler) *RestAPI {
	t.Helper()

	upstreamServer := httptest.NewServer(upstream)
	t.Cleanup(upstreamServer.Close)

	logger := logging.NewStructuredLogger(&bytes.Buffer{}, slog.LevelError)

	cache := querycache.New(logger)
	refresher := querycache.NewRefresher(cache, time.Minute, logger)
	t.Cleanup(refresher.Shutdown)

	application := &app.Application{
		Config: app.Config{Env: "test"},
		Logger: logger,
		KRL: krl.NewClient(krl.Config{
			BaseURL: upstreamServer.URL,
			Logger:  logger,
		}),
		Cache:     cache,
		Refresher: refresher,
	}

	return NewRestAPI(application)
}

// newTestRouter serves the API's routes for tests that need raw
// response access.
func newTestRouter(t *testing.T, api *RestAPI) *httptest.Server {
	t.Helper()
	router := httprouter.New()
	api.SetRoutes(router)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

// serveApiAndRetrieveEndpoint sets up a test server, makes a request to
// the given endpoint, and returns the response and decoded envelope.
func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.Response) {
	t.Helper()

	router := httprouter.New()
	api.SetRoutes(router)
	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer resp.Body.Close() // nolint:errcheck

	var envelope models.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func upstreamEnvelope(data string) string {
	return `{"status": 200, "message": "OK", "data": ` + data + `}`
}
