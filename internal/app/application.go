package app

import (
	"log/slog"

	"komuterkita.id/internal/krl"
	"komuterkita.id/internal/querycache"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware: the configuration, the logger, the schedule client
// and the query cache with its background refresher.
type Application struct {
	Config    Config
	Logger    *slog.Logger
	KRL       *krl.Client
	Cache     *querycache.Cache
	Refresher *querycache.Refresher
}

// Config holds all the configuration settings for our Application,
// read from command-line flags when the application starts.
type Config struct {
	Port            int
	Env             string
	UpstreamBaseURL string

	// CoordinateTablePath names a TOML station coordinate table; the
	// built-in table is used when empty.
	CoordinateTablePath string

	// InsecureUpstreamTLS disables certificate verification toward the
	// partner API, whose chain is served incomplete.
	InsecureUpstreamTLS bool

	// WarmStations are kept schedule-refreshed from startup.
	WarmStations []string
}
