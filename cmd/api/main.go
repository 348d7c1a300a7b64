package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"komuterkita.id/internal/app"
	"komuterkita.id/internal/krl"
	"komuterkita.id/internal/logging"
	"komuterkita.id/internal/proxy"
	"komuterkita.id/internal/querycache"
	"komuterkita.id/internal/restapi"
)

func main() {
	var cfg app.Config
	var warmStationsFlag string

	flag.IntVar(&cfg.Port, "port", 4000, "API server port")
	flag.StringVar(&cfg.Env, "env", "development", "Environment (development|staging|production)")
	flag.StringVar(&cfg.UpstreamBaseURL, "upstream-url", krl.DefaultBaseURL, "Base URL of the partner API")
	flag.StringVar(&cfg.CoordinateTablePath, "coordinates", "", "TOML station coordinate table (built-in table when empty)")
	flag.BoolVar(&cfg.InsecureUpstreamTLS, "insecure-upstream-tls", false, "Skip TLS verification toward the partner API")
	flag.StringVar(&warmStationsFlag, "warm-stations", "", "Comma separated station IDs to keep schedule-refreshed")
	flag.Parse()

	if warmStationsFlag != "" {
		for _, id := range strings.Split(warmStationsFlag, ",") {
			if id = strings.TrimSpace(id); id != "" {
				cfg.WarmStations = append(cfg.WarmStations, id)
			}
		}
	}

	logger := logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)

	token, err := app.BearerToken()
	if err != nil {
		logger.Error("failed to load partner credential", "error", err)
		os.Exit(1)
	}

	coords := krl.DefaultCoordinateTable()
	if cfg.CoordinateTablePath != "" {
		coords, err = krl.LoadCoordinateTable(cfg.CoordinateTablePath)
		if err != nil {
			logger.Error("failed to load coordinate table", "error", err)
			os.Exit(1)
		}
	}

	cache := querycache.New(logger)
	refresher := querycache.NewRefresher(cache, querycache.RefreshInterval, logger)
	defer refresher.Shutdown()

	application := &app.Application{
		Config: cfg,
		Logger: logger,
		KRL: krl.NewClient(krl.Config{
			BaseURL:     cfg.UpstreamBaseURL,
			Coordinates: coords,
			Logger:      logger,
		}),
		Cache:     cache,
		Refresher: refresher,
	}

	api := restapi.NewRestAPI(application)
	forwarder := proxy.NewForwarder(proxy.Config{
		UpstreamBase:       cfg.UpstreamBaseURL,
		Token:              token,
		InsecureSkipVerify: cfg.InsecureUpstreamTLS,
		Logger:             logger,
	})

	router := httprouter.New()
	api.SetRoutes(router)
	router.HandlerFunc(http.MethodGet, "/api/krl-webs/v1/*upstreampath", forwarder.Forward)
	router.HandlerFunc(http.MethodOptions, "/api/krl-webs/v1/*upstreampath", forwarder.Forward)

	for _, stationID := range cfg.WarmStations {
		api.PinStation(stationID)
	}

	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     restapi.NewRequestLoggingMiddleware(logger)(router),
		IdleTimeout: time.Minute,
		ReadTimeout: 5 * time.Second,
		// The proxy may legitimately spend most of the upstream's 30s
		// budget before it can start writing.
		WriteTimeout: 45 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env)
	err = srv.ListenAndServe()
	logger.Error(err.Error())
	os.Exit(1)
}
