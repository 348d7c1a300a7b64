package proxy

import (
	"crypto/tls"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"komuterkita.id/internal/logging"
)

const (
	// The partner API rejects unknown clients; this user agent matches
	// what it expects to see.
	defaultUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 18_5 like Mac OS X) AppleWebKit/605.1.15"

	forwardTimeout = 30 * time.Second
)

// Config holds the forwarder's settings. Token is the static bearer
// credential injected into every upstream request.
type Config struct {
	UpstreamBase string
	Token        string
	UserAgent    string

	// InsecureSkipVerify disables TLS verification toward the upstream,
	// whose certificate chain is served incomplete.
	InsecureSkipVerify bool

	Logger *slog.Logger
}

// Forwarder is a stateless request forwarder: it rewrites the inbound
// path parameter into an upstream URL, injects the credential and
// default headers, and relays the upstream status and body verbatim.
// No caching, no retry, no transformation.
type Forwarder struct {
	upstreamBase string
	token        string
	userAgent    string
	httpClient   *http.Client
	logger       *slog.Logger
}

func NewForwarder(cfg Config) *Forwarder {
	transport := http.DefaultTransport
	if cfg.InsecureSkipVerify {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402
		}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Forwarder{
		upstreamBase: strings.TrimRight(cfg.UpstreamBase, "/"),
		token:        cfg.Token,
		userAgent:    userAgent,
		httpClient:   &http.Client{Timeout: forwardTimeout, Transport: transport},
		logger:       cfg.Logger,
	}
}

// Forward handles one proxied request. It expects to be routed with a
// catch-all "upstreampath" parameter.
func (f *Forwarder) Forward(w http.ResponseWriter, r *http.Request) {
	writeCORSHeaders(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	params := httprouter.ParamsFromContext(r.Context())
	upstreamPath := strings.Trim(params.ByName("upstreampath"), "/")
	if upstreamPath == "" {
		f.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Missing path parameter",
		})
		return
	}

	target, err := url.Parse(f.upstreamBase + "/" + upstreamPath)
	if err != nil {
		f.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Invalid path parameter",
		})
		return
	}
	target.RawQuery = r.URL.RawQuery

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, target.String(), nil)
	if err != nil {
		f.writeProxyError(w, err)
		return
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.token)
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		logging.LogError(f.logger, "proxy request failed", err, slog.String("path", upstreamPath))
		f.writeProxyError(w, err)
		return
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		logging.LogError(f.logger, "relaying upstream body failed", err, slog.String("path", upstreamPath))
	}
}

func (f *Forwarder) writeProxyError(w http.ResponseWriter, err error) {
	f.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "Proxy Error",
		"details": err.Error(),
	})
}

func (f *Forwarder) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && f.logger != nil {
		f.logger.Error("failed to encode proxy response", "error", err)
	}
}

func writeCORSHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Credentials", "true")
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET,OPTIONS,PATCH,DELETE,POST,PUT")
	h.Set("Access-Control-Allow-Headers", "X-CSRF-Token, X-Requested-With, Accept, Accept-Version, Content-Length, Content-MD5, Content-Type, Date, X-Api-Version, Authorization")
}
