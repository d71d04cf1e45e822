package api

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/duelboard/pkg/metrics"
)

// Identification reported by the root and health endpoints.
const (
	ServiceName    = "duelboard"
	ServiceMessage = "Duelboard leaderboard API"
	Version        = "1.0.0"
	DocsPath       = "/docs"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler handles root, health and metrics requests.
type HealthHandler struct {
	checker HealthChecker
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

type rootResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
	Docs    string `json:"docs"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// HandleRoot handles GET / requests.
func (h *HealthHandler) HandleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rootResponse{
		Status:  "online",
		Message: ServiceMessage,
		Version: Version,
		Docs:    DocsPath,
	})
}

// HandleHealth handles GET /health requests. A failing store ping turns
// the response into 503.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.checker.Health(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unhealthy", Service: ServiceName})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "healthy", Service: ServiceName})
}

// MetricsHandler serves the private Prometheus registry.
func (h *HealthHandler) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})
}
