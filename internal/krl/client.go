package krl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"time"

	"komuterkita.id/internal/logging"
	"komuterkita.id/internal/models"
)

const (
	// DefaultBaseURL is the partner API base, normally reached through
	// the proxy forwarder rather than directly.
	DefaultBaseURL = "https://api-partner.krl.co.id/krl-webs/v1"

	// The partner API can be slow; the original client budgeted 30s.
	requestTimeout = 30 * time.Second

	// The upstream never supplies a platform.
	placeholderPlatform = "1"
)

// Config holds the knobs for a Client. Zero values fall back to
// sensible defaults.
type Config struct {
	BaseURL     string
	Coordinates CoordinateTable
	HTTPClient  *http.Client
	Logger      *slog.Logger

	// Now is the wall clock, injectable for tests.
	Now func() time.Time
}

// Client translates upstream wire responses into domain entities:
// filtering, time normalization, status derivation, sorting and
// deduplication all happen here, and upstream failures never escape
// past its public operations.
type Client struct {
	baseURL    string
	coords     CoordinateTable
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

func NewClient(cfg Config) *Client {
	client := &Client{
		baseURL:    cfg.BaseURL,
		coords:     cfg.Coordinates,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
		now:        cfg.Now,
	}
	if client.baseURL == "" {
		client.baseURL = DefaultBaseURL
	}
	if client.coords.Stations == nil {
		client.coords = DefaultCoordinateTable()
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: requestTimeout}
	}
	if client.now == nil {
		client.now = time.Now
	}
	return client
}

// fetchRows performs one upstream GET and decodes the enveloped row
// list. Every Client operation suspends here and nowhere else.
func fetchRows[T any](ctx context.Context, c *Client, path string, params url.Values) ([]T, error) {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s: unexpected status %s", path, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", path, err)
	}

	logging.LogUpstreamCall(c.logger, path, float64(time.Since(start).Nanoseconds())/1e6)

	return decodeEnvelope[T](path, body)
}

// withFallback converts any upstream failure into the operation's safe
// default. All error-to-fallback coercion funnels through here so every
// endpoint fails the same way: a caller cannot tell "no data" from
// "fetch failed", and that is the documented boundary.
func withFallback[T any](c *Client, op string, fallback T, fn func() (T, error)) T {
	value, err := fn()
	if err != nil {
		logging.LogError(c.logger, "upstream fetch failed, serving fallback", err, slog.String("op", op))
		return fallback
	}
	return value
}

// FetchStations is the erroring form of Stations, for callers (the
// query cache) that need the failure signal.
func (c *Client) FetchStations(ctx context.Context) ([]models.Station, error) {
	rows, err := fetchRows[stationRow](ctx, c, "/krl-station", nil)
	if err != nil {
		return nil, err
	}

	stations := make([]models.Station, 0, len(rows))
	for _, row := range rows {
		// Disabled stations and area-grouping markers never surface.
		if row.FgEnable != 1 || row.GroupWil != 0 {
			continue
		}
		coord := c.coords.Lookup(row.StaID)
		stations = append(stations, models.Station{
			ID:       row.StaID,
			Name:     row.StaName,
			Lat:      coord.Lat,
			Lon:      coord.Lon,
			GroupWil: row.GroupWil,
			FgEnable: row.FgEnable,
		})
	}
	return stations, nil
}

// Stations lists the enabled, top-level stations, enriched with
// coordinates. On any failure it returns the fixed fallback list.
func (c *Client) Stations(ctx context.Context) []models.Station {
	return withFallback(c, "stations", FallbackStations(), func() ([]models.Station, error) {
		return c.FetchStations(ctx)
	})
}

// FetchStationSchedule is the erroring form of StationSchedule.
func (c *Client) FetchStationSchedule(ctx context.Context, stationID string) (models.StationSchedule, error) {
	now := c.now()
	from, to := TimeWindow(now)

	params := url.Values{}
	params.Set("stationid", stationID)
	params.Set("timefrom", from)
	params.Set("timeto", to)

	rows, err := fetchRows[scheduleRow](ctx, c, "/schedules", params)
	if err != nil {
		return models.StationSchedule{}, err
	}

	return models.StationSchedule{
		StationID: stationID,
		Timestamp: now,
		Schedules: normalizeSchedules(rows, now),
	}, nil
}

// StationSchedule returns the station's departures for the rolling
// now..now+3h window, normalized, sorted and deduplicated. On failure
// it returns an empty schedule with a fresh timestamp, never an error.
func (c *Client) StationSchedule(ctx context.Context, stationID string) models.StationSchedule {
	return withFallback(c, "schedule", EmptyStationSchedule(stationID, c.now()), func() (models.StationSchedule, error) {
		return c.FetchStationSchedule(ctx, stationID)
	})
}

// rankedSchedule pairs a schedule with its sort-only minute-of-day key;
// the key is stripped before rows leave the pipeline.
type rankedSchedule struct {
	models.Schedule
	minuteOfDay int
}

// normalizeSchedules applies the fixed pipeline: truncate times, derive
// status, sort ascending by minute of day, then deduplicate by
// (TrainID, Time) keeping the first occurrence in sorted order.
func normalizeSchedules(rows []scheduleRow, now time.Time) []models.Schedule {
	ranked := make([]rankedSchedule, 0, len(rows))
	for _, row := range rows {
		departure := ClockTime(row.TimeEst)
		ranked = append(ranked, rankedSchedule{
			Schedule: models.Schedule{
				TrainID:     row.TrainID,
				TrainName:   row.KaName,
				Destination: row.Dest,
				Time:        departure,
				Status:      DeriveStatus(now, row.TimeEst),
				Platform:    placeholderPlatform,
				Color:       row.Color,
				Route:       row.RouteName,
				DestTime:    ClockTime(row.DestTime),
			},
			minuteOfDay: MinuteOfDay(departure),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].minuteOfDay < ranked[j].minuteOfDay
	})

	seen := make(map[string]struct{}, len(ranked))
	schedules := make([]models.Schedule, 0, len(ranked))
	for _, item := range ranked {
		key := item.TrainID + "@" + item.Time
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		schedules = append(schedules, item.Schedule)
	}
	return schedules
}

// FetchTrainRoute is the erroring form of TrainRoute.
func (c *Client) FetchTrainRoute(ctx context.Context, trainID string) ([]models.TrainRouteStop, error) {
	params := url.Values{}
	params.Set("trainid", trainID)

	rows, err := fetchRows[trainRouteRow](ctx, c, "/schedules-train", params)
	if err != nil {
		return nil, err
	}

	stops := make([]models.TrainRouteStop, 0, len(rows))
	for _, row := range rows {
		stops = append(stops, models.TrainRouteStop{
			TrainID:        row.TrainID,
			KaName:         row.KaName,
			StationID:      row.StationID,
			StationName:    row.StationName,
			TimeEst:        ClockTime(row.TimeEst),
			TransitStation: row.TransitStation,
			Color:          row.Color,
			Transit:        []string(row.Transit),
		})
	}
	return stops, nil
}

// TrainRoute returns the train's full stopping pattern in travel order,
// or an empty sequence on failure.
func (c *Client) TrainRoute(ctx context.Context, trainID string) []models.TrainRouteStop {
	return withFallback(c, "train-route", []models.TrainRouteStop{}, func() ([]models.TrainRouteStop, error) {
		return c.FetchTrainRoute(ctx, trainID)
	})
}

// FetchFare is the erroring form of Fare. A nil detail with a nil error
// means upstream has no row for the pair.
func (c *Client) FetchFare(ctx context.Context, stationFrom, stationTo string) (*models.FareDetail, error) {
	params := url.Values{}
	params.Set("stationfrom", stationFrom)
	params.Set("stationto", stationTo)

	rows, err := fetchRows[fareRow](ctx, c, "/fare", params)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	return &models.FareDetail{
		StaCodeFrom: row.StaCodeFrom,
		StaNameFrom: row.StaNameFrom,
		StaCodeTo:   row.StaCodeTo,
		StaNameTo:   row.StaNameTo,
		Fare:        row.Fare,
		Distance:    row.Distance,
	}, nil
}

// Fare returns the first fare row for an ordered station pair, or nil
// both when no row exists and when the fetch fails.
func (c *Client) Fare(ctx context.Context, stationFrom, stationTo string) *models.FareDetail {
	var none *models.FareDetail
	return withFallback(c, "fare", none, func() (*models.FareDetail, error) {
		return c.FetchFare(ctx, stationFrom, stationTo)
	})
}

// FetchRouteMap is the erroring form of RouteMap.
func (c *Client) FetchRouteMap(ctx context.Context) ([]models.RouteMapEntry, error) {
	rows, err := fetchRows[routeMapRow](ctx, c, "/routemap", nil)
	if err != nil {
		return nil, err
	}

	entries := make([]models.RouteMapEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, models.RouteMapEntry{Area: row.Area, Permalink: row.Permalink})
	}
	return entries, nil
}

// RouteMap lists the printable network-map references, or an empty list
// on failure.
func (c *Client) RouteMap(ctx context.Context) []models.RouteMapEntry {
	return withFallback(c, "route-map", []models.RouteMapEntry{}, func() ([]models.RouteMapEntry, error) {
		return c.FetchRouteMap(ctx)
	})
}
