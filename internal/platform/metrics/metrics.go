// Package metrics collects and exposes Prometheus metrics for the auth and
// billing surfaces.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface the HTTP and service layers record through.
type Recorder interface {
	RecordHTTPRequest(method, route string, statusCode int, duration time.Duration)
	RecordAuthEvent(eventType string)
	RecordProfileCreated()
	RecordCheckoutStarted(planKey string)
	RecordCheckoutRefused(reason string)
}

// Collector implements Recorder on a Prometheus registry.
type Collector struct {
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	authEvents      *prometheus.CounterVec
	profilesCreated prometheus.Counter
	checkoutStarted *prometheus.CounterVec
	checkoutRefused *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nimbus_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status_code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nimbus_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		authEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nimbus_auth_events_total",
			Help: "Auth state transitions by event type.",
		}, []string{"event_type"}),
		profilesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nimbus_profiles_created_total",
			Help: "Profile rows created on first sight of a session.",
		}),
		checkoutStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nimbus_checkout_started_total",
			Help: "Checkout sessions started by plan.",
		}, []string{"plan"}),
		checkoutRefused: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nimbus_checkout_refused_total",
			Help: "Checkout attempts refused before contacting the provider.",
		}, []string{"reason"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.authEvents,
		c.profilesCreated,
		c.checkoutStarted,
		c.checkoutRefused,
	)

	return c
}

func (c *Collector) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (c *Collector) RecordAuthEvent(eventType string) {
	c.authEvents.WithLabelValues(eventType).Inc()
}

func (c *Collector) RecordProfileCreated() {
	c.profilesCreated.Inc()
}

func (c *Collector) RecordCheckoutStarted(planKey string) {
	c.checkoutStarted.WithLabelValues(planKey).Inc()
}

func (c *Collector) RecordCheckoutRefused(reason string) {
	c.checkoutRefused.WithLabelValues(reason).Inc()
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
