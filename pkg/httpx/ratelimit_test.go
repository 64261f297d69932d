package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitAllowsWithinBurst(t *testing.T) {
	t.Parallel()

	cfg := RateLimitConfig{RequestsPerWindow: 3, Window: time.Minute, Burst: 3}
	handler := Chain(okHandler(), RateLimitByIP(cfg))

	for i := range 3 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimitIsPerKey(t *testing.T) {
	t.Parallel()

	cfg := RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
	handler := Chain(okHandler(), RateLimitByIP(cfg))

	first := httptest.NewRequest(http.MethodGet, "/", nil)
	first.RemoteAddr = "10.0.0.2:1"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	require.Equal(t, http.StatusOK, rec.Code)

	// Same IP is throttled, a different IP is not.
	again := httptest.NewRequest(http.MethodGet, "/", nil)
	again.RemoteAddr = "10.0.0.2:2"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, again)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "10.0.0.3:1"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestIPKeyExtractorHonoursForwardingHeaders(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "127.0.0.1:9999"
	require.Equal(t, "127.0.0.1", IPKeyExtractor(req))

	req.Header.Set("X-Real-IP", "198.51.100.7")
	require.Equal(t, "198.51.100.7", IPKeyExtractor(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.5, 198.51.100.7")
	require.Equal(t, "203.0.113.5", IPKeyExtractor(req))
}

func TestChainOrdering(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := Chain(okHandler(), mw("outer"), mw("inner"))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner"}, order)
}
