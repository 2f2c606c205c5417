package handlers

import (
	"fmt"
	"net/http"

	"github.com/Ngapa/banyu-job-vacation/internal/http/metrics"
)

type MetricsHandler struct {
	collector *metrics.Collector
}

func NewMetricsHandler(collector *metrics.Collector) *MetricsHandler {
	return &MetricsHandler{collector: collector}
}

func (h *MetricsHandler) Get(w http.ResponseWriter, _ *http.Request) {
	var requests uint64
	var errors uint64
	if h.collector != nil {
		requests, errors = h.collector.Snapshot()
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_, _ = fmt.Fprintf(w, "# HELP banyu_requests_total Total number of HTTP requests.\n")
	_, _ = fmt.Fprintf(w, "# TYPE banyu_requests_total counter\n")
	_, _ = fmt.Fprintf(w, "banyu_requests_total %d\n", requests)
	_, _ = fmt.Fprintf(w, "# HELP banyu_errors_total Total number of 5xx HTTP responses.\n")
	_, _ = fmt.Fprintf(w, "# TYPE banyu_errors_total counter\n")
	_, _ = fmt.Fprintf(w, "banyu_errors_total %d\n", errors)
}
