// Package http exposes the auth, billing and page surfaces over plain
// net/http with method-qualified mux patterns.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nimbuslabs/nimbus/internal/platform/identity"
	"github.com/nimbuslabs/nimbus/internal/platform/metrics"
	"github.com/nimbuslabs/nimbus/internal/platform/service"
	"github.com/nimbuslabs/nimbus/internal/platform/store"
	"github.com/nimbuslabs/nimbus/pkg/httpx"
	"github.com/nimbuslabs/nimbus/pkg/slogx"

	_ "github.com/nimbuslabs/nimbus/api/platform" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	identity     identity.Client
	buildVersion string
	postLoginURL string
	startTime    time.Time
	logger       *slog.Logger

	store    store.Store
	metrics  metrics.Recorder
	gatherer prometheus.Gatherer

	AuthFlow        *service.AuthFlow
	CheckoutService *service.Checkout
}

func NewRouter(
	idc identity.Client,
	buildVersion, postLoginURL string,
	st store.Store,
	rec metrics.Recorder,
	gatherer prometheus.Gatherer,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		identity:     idc,
		buildVersion: buildVersion,
		postLoginURL: postLoginURL,
		startTime:    time.Now(),
		store:        st,
		metrics:      rec,
		gatherer:     gatherer,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		MetricsMiddleware(rec, r.Mux),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerBilling()
	r.registerPages()
	r.registerPrefs()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Nimbus Platform API
//	@version		0.1.0
//	@description	Auth bootstrap, billing checkout and page manifest service backing the Nimbus web shell.
//	@description
//	@description				Sessions are HS256-signed tokens carried as a Bearer header or the session cookie.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /signin - strict rate limit (authentication attempts)
	signIn := &SignInHandler{Flow: r.AuthFlow, Metrics: r.metrics}
	r.Mux.Handle("POST /v1/auth/signin",
		httpx.Chain(signIn,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /signup - strict rate limit (public registration endpoint)
	signUp := &SignUpHandler{Flow: r.AuthFlow, Metrics: r.metrics}
	r.Mux.Handle("POST /v1/auth/signup",
		httpx.Chain(signUp,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /signout - lenient; signing out is never brute-forceable
	signOut := &SignOutHandler{Flow: r.AuthFlow, Metrics: r.metrics}
	r.Mux.Handle("POST /v1/auth/signout",
		httpx.Chain(signOut,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// GET /session - the shell polls this on boot; lenient
	session := &SessionHandler{Flow: r.AuthFlow}
	r.Mux.Handle("GET /v1/auth/session",
		httpx.Chain(session,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	oauth := &OAuthHandler{Flow: r.AuthFlow, Metrics: r.metrics, PostLoginURL: r.postLoginURL}
	r.Mux.Handle("GET /v1/auth/oauth/{provider}",
		httpx.Chain(http.HandlerFunc(oauth.HandleStart),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/auth/callback",
		httpx.Chain(http.HandlerFunc(oauth.HandleCallback),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerBilling() {
	// Checkout initiation requires a session; moderate limit by user. The
	// path is kept verbatim from the shell's fetch call.
	checkout := &CheckoutHandler{Checkout: r.CheckoutService, Metrics: r.metrics}
	r.Mux.Handle("POST /api/create-checkout-session",
		httpx.Chain(checkout,
			AuthnMiddleware(r.identity),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	billing := &BillingHandler{Checkout: r.CheckoutService}
	r.Mux.Handle("GET /v1/billing/subscription",
		httpx.Chain(billing,
			AuthnMiddleware(r.identity),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// Public pricing table
	plans := &PlansHandler{Checkout: r.CheckoutService}
	r.Mux.Handle("GET /v1/plans",
		httpx.Chain(plans,
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerPages() {
	h := &PagesHandler{Identity: r.identity}

	r.Mux.Handle("GET /v1/pages",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /v1/pages/{name}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerPrefs() {
	h := &ThemeHandler{}

	r.Mux.Handle("GET /v1/prefs/theme",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PUT /v1/prefs/theme",
		httpx.Chain(http.HandlerFunc(h.HandlePut),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /metrics", metrics.Handler(r.gatherer))
}
