package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fedgate/fedgate/internal/fedgate/directory"
	"github.com/fedgate/fedgate/internal/fedgate/domain"
	httpapi "github.com/fedgate/fedgate/internal/fedgate/http"
	"github.com/fedgate/fedgate/internal/fedgate/issuer"
	"github.com/fedgate/fedgate/internal/fedgate/service"
	"github.com/fedgate/fedgate/internal/fedgate/store"
	"github.com/fedgate/fedgate/internal/fedgate/store/drivers/sqlite"
	"github.com/fedgate/fedgate/internal/fedgate/upstream"
	"github.com/fedgate/fedgate/pkg/cryptox"
	"github.com/fedgate/fedgate/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the federation service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	exchanger *upstream.Exchanger

	federationService   *service.FederationService
	seeder              *service.Seeder
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
// By the time New returns, migrations have run and the baseline accounts and
// issuer configuration are seeded; nothing is listening yet.
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "fedgate",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}

	if err := app.initServices(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("federation service starting", "port", app.cfg.Port, "version", BuildVersion)

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

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down federation service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("federation service stopped")
	return nil
}

// initDatabase opens the store and brings it to its seeded baseline. The
// optional development reset runs first and is refused outright in prod.
func (app *Application) initDatabase(ctx context.Context) error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db
	app.seeder = service.NewSeeder(db, app.logger)

	if app.cfg.DevReset {
		if app.cfg.Env == "prod" {
			_ = db.Close()
			return errors.New("refusing to reset the database in prod")
		}
		if err := app.seeder.Reset(ctx); err != nil {
			_ = db.Close()
			return fmt.Errorf("database reset failed: %w", err)
		}
	}

	if err := app.seeder.Run(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("database seeding failed: %w", err)
	}

	return nil
}

// noDirectory is the enrichment source used when no directory URL is
// configured: every identity gets an empty claim set without a network call.
type noDirectory struct{}

func (noDirectory) Claims(context.Context, string) ([]domain.Claim, error) { return nil, nil }

func (app *Application) initServices(ctx context.Context) error {
	exchanger, err := upstream.NewExchanger(ctx, upstream.Config{
		Authority:    app.cfg.Authority,
		ClientID:     app.cfg.ClientID,
		ClientSecret: app.cfg.ClientSecret,
		RedirectURI:  app.cfg.RedirectURI,
		Scopes:       app.cfg.Scopes,
		TokenURL:     app.cfg.TokenURL,
		Disabled:     app.cfg.ExchangeDisabled,
		Timeout:      app.cfg.ExchangeTimeout,
	}, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize upstream exchanger: %w", err)
	}
	app.exchanger = exchanger

	var profiles service.ProfileSource = noDirectory{}
	if app.cfg.DirectoryURL != "" {
		profiles = directory.NewClient(app.cfg.DirectoryURL, app.cfg.DirectoryTimeout)
	} else {
		app.logger.Warn("no directory url configured, directory enrichment disabled")
	}

	app.federationService = &service.FederationService{
		Exchanger: exchanger,
		Issuer:    issuer.NewClient(app.cfg.IssuerURL, app.cfg.IssuerTimeout),
		Directory: profiles,
		Store:     app.db,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)

	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	router.FederationService = app.federationService
	router.SuccessRedirect = app.cfg.SuccessRedirect
	router.ErrorRedirect = app.cfg.ErrorRedirect
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
