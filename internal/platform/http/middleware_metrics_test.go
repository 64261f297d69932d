package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/nimbuslabs/nimbus/internal/platform/metrics"
)

func TestMetricsWriterForwardsFlush(t *testing.T) {
	rec := metrics.NewCollector(prometheus.NewRegistry())
	mux := http.NewServeMux()

	var flushErr error
	mux.Handle("GET /stream", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flushErr = http.NewResponseController(w).Flush()
	}))

	h := MetricsMiddleware(rec, mux)(mux)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stream", nil))

	// The wrapper must expose the underlying writer's Flusher through
	// Unwrap; a bare embed would surface ErrNotSupported here.
	require.NoError(t, flushErr)
	require.True(t, w.Flushed)
}
