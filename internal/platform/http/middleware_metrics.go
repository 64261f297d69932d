package http

import (
	"net/http"
	"time"

	"github.com/nimbuslabs/nimbus/internal/platform/metrics"
	"github.com/nimbuslabs/nimbus/pkg/httpx"
)

type metricsWriter struct {
	http.ResponseWriter
	status int
}

func (w *metricsWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer's
// Flusher/Hijacker through the wrapper.
func (w *metricsWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// MetricsMiddleware records request counts and latency per route pattern.
// The matched mux pattern keeps label cardinality bounded; unmatched requests
// are recorded under "unmatched".
func MetricsMiddleware(rec metrics.Recorder, mux *http.ServeMux) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mw := &metricsWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(mw, r)

			_, route := mux.Handler(r)
			if route == "" {
				route = "unmatched"
			}
			rec.RecordHTTPRequest(r.Method, route, mw.status, time.Since(start))
		})
	}
}
