package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/eventboard/pkg/metrics"
)

// StatsProvider reports service state for the /stats endpoint.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// OpsHandler serves the operational endpoints: the metrics scrape that
// doubles as a liveness probe, and the service stats.
type OpsHandler struct {
	stats  StatsProvider
	scrape http.Handler
}

// NewOpsHandler creates an ops handler over the metrics registry.
func NewOpsHandler(stats StatsProvider) *OpsHandler {
	return &OpsHandler{
		stats:  stats,
		scrape: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleHealth handles GET /healthz.
func (h *OpsHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.scrape.ServeHTTP(w, r)
}

// HandleStats handles GET /stats.
func (h *OpsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.stats.GetStats())
}
