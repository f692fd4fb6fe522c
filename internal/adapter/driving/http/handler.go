// Package httphandler serves the operational endpoints that sit next to the
// web GUI: health, Prometheus metrics and the same-origin backend proxy.
package httphandler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// apiPrefix is stripped before requests are forwarded to the backend.
const apiPrefix = "/api"

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// ProxyOptions controls how /api/* calls reach the backend.
type ProxyOptions struct {
	// Transport forwards proxied calls; nil means http.DefaultTransport.
	Transport http.RoundTripper
	// Bind returns the request bound to the caller's session before it is
	// forwarded; nil forwards it unchanged.
	Bind func(*http.Request) *http.Request
}

// Handler is the HTTP driving adapter for the operational routes.
type Handler struct {
	proxy  *httputil.ReverseProxy
	bind   func(*http.Request) *http.Request
	db     Pinger
	logger *slog.Logger
}

// NewHandler creates a Handler that proxies /api/* to backendURL. db may be
// nil, in which case health never reports the database.
func NewHandler(backendURL string, opts ProxyOptions, db Pinger, logger *slog.Logger) (*Handler, error) {
	target, err := url.Parse(backendURL)
	if err != nil {
		return nil, fmt.Errorf("parsing backend URL: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("backend URL %q must be absolute", backendURL)
	}

	h := &Handler{bind: opts.Bind, db: db, logger: logger}
	h.proxy = &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		Transport:    opts.Transport,
		ErrorHandler: h.proxyError,
	}
	return h, nil
}

// RegisterAPIRoutes registers the operational routes on mux. The health route
// is more specific than the proxy prefix and therefore wins.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle(apiPrefix+"/", http.StripPrefix(apiPrefix, http.HandlerFunc(h.Proxy)))
}

// Health reports the process as alive, and degraded when the session
// database does not answer a ping.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			h.logger.Error("health check: database unreachable", "error", err)
			resp.Status = "degraded"
			resp.Database = "unreachable"
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
		resp.Database = "ok"
	}

	writeJSON(w, http.StatusOK, resp)
}

// Proxy forwards the request to the backend with the caller's session bound.
func (h *Handler) Proxy(w http.ResponseWriter, r *http.Request) {
	if h.bind != nil {
		r = h.bind(r)
	}
	h.proxy.ServeHTTP(w, r)
}

func (h *Handler) proxyError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("backend proxy failed", "method", r.Method, "path", r.URL.Path, "error", err)
	writeError(w, http.StatusBadGateway, "backend unavailable")
}
