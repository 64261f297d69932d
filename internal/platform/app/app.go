// Package app wires configuration, storage, identity, services and the HTTP
// server into a runnable application.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/nimbuslabs/nimbus/internal/platform/authstate"
	"github.com/nimbuslabs/nimbus/internal/platform/domain"
	httpapi "github.com/nimbuslabs/nimbus/internal/platform/http"
	"github.com/nimbuslabs/nimbus/internal/platform/identity"
	"github.com/nimbuslabs/nimbus/internal/platform/metrics"
	"github.com/nimbuslabs/nimbus/internal/platform/payments"
	"github.com/nimbuslabs/nimbus/internal/platform/service"
	"github.com/nimbuslabs/nimbus/internal/platform/store"
	"github.com/nimbuslabs/nimbus/internal/platform/store/drivers/sqlite"
	"github.com/nimbuslabs/nimbus/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the platform service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	identity identity.Client
	events   *authstate.Broadcaster
	registry *prometheus.Registry
	metrics  *metrics.Collector

	// Services
	authFlow        *service.AuthFlow
	checkoutService *service.Checkout

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "nimbus-platform",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initMetrics()
	app.initIdentity()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	// Bring the auth flow up before accepting traffic. The server has no
	// persisted token at boot; sessions arrive with requests.
	app.authFlow.Initialize(context.Background(), "")

	app.logger.Info("platform service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down platform service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.authFlow.Close()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("platform service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations.
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initMetrics() {
	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metrics.NewCollector(app.registry)
}

// initIdentity picks the identity implementation: the hosted vendor when its
// settings are present, the built-in local provider otherwise.
func (app *Application) initIdentity() {
	vendorCfg := identity.VendorConfig{
		BaseURL:   app.cfg.IdentityBaseURL,
		APIKey:    app.cfg.IdentityAPIKey,
		JWTSecret: app.cfg.SessionJWTSecret,
		Timeout:   app.cfg.IdentityTimeout,
	}
	if vendorCfg.Configured() {
		app.identity = identity.NewVendorClient(vendorCfg)
		app.logger.Info("identity: hosted vendor", "base_url", app.cfg.IdentityBaseURL)
		return
	}

	app.identity = identity.NewLocalClient(identity.LocalConfig{
		JWTSecret:          app.cfg.SessionJWTSecret,
		Issuer:             app.cfg.Issuer,
		SessionTTL:         app.cfg.SessionTTL,
		GoogleClientID:     app.cfg.GoogleClientID,
		GoogleClientSecret: app.cfg.GoogleClientSecret,
		GoogleRedirectURL:  app.cfg.GoogleRedirectURL,
	}, app.db)
	app.logger.Info("identity: local provider (no vendor configured)")
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.events = authstate.NewBroadcaster()
	app.authFlow = service.NewAuthFlow(app.identity, app.db, app.events, app.logger)

	plans := domain.DefaultPlans(app.cfg.StripePriceIDPro, app.cfg.StripePriceIDEnterprise)
	paymentClient := payments.NewStripeClient(payments.StripeConfig{
		SecretKey: app.cfg.StripeSecretKey,
	})
	app.checkoutService = service.NewCheckout(
		plans,
		paymentClient,
		app.db,
		app.cfg.CheckoutSuccessURL,
		app.cfg.CheckoutCancelURL,
	)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.identity,
		BuildVersion,
		app.cfg.PostLoginURL,
		app.db,
		app.metrics,
		app.registry,
		app.logger,
	)

	router.AuthFlow = app.authFlow
	router.CheckoutService = app.checkoutService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
