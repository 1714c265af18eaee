// Package runtime wires configuration, persistence, services, and the HTTP
// middleware chain into a runnable application.
package runtime

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	"github.com/scholarai/scholarai/internal/api/httpserver"
	app "github.com/scholarai/scholarai/internal/app"
	"github.com/scholarai/scholarai/internal/app/httpapi"
	"github.com/scholarai/scholarai/internal/app/storage/postgres"
	"github.com/scholarai/scholarai/internal/config"
	"github.com/scholarai/scholarai/internal/generator"
	"github.com/scholarai/scholarai/internal/middleware"
	"github.com/scholarai/scholarai/internal/platform/migrations"
	"github.com/scholarai/scholarai/pkg/logger"
)

// Application owns the process lifecycle: construction, Run, Shutdown.
type Application struct {
	cfg        *config.Config
	log        *logger.Logger
	httpServer *httpserver.Server
	db         *sql.DB
}

// NewApplication constructs a fully wired application from the environment.
// All connection handles and secrets are acquired here and injected; nothing
// global is mutated after construction.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.LoggingConfig{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		FilePrefix: cfg.Logging.FilePrefix,
	})

	stores, db, err := buildStores(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("configure stores: %w", err)
	}

	gen := generator.NewClient(generator.Config{
		BaseURL: cfg.Generator.BaseURL,
		APIKey:  cfg.Generator.APIKey,
		Model:   cfg.Generator.Model,
	}, log)

	application, err := app.New(stores, app.Options{
		JWTSecret: cfg.Auth.JWTSecret,
		TokenTTL:  time.Duration(cfg.Auth.TokenTTLHrs) * time.Hour,
		Generator: gen,
	}, log)
	if err != nil {
		return nil, err
	}

	handler := httpapi.NewHandler(application, httpapi.CookieOptions{
		Name:   cfg.Auth.CookieName,
		Secure: cfg.Auth.CookieSecure,
		MaxAge: time.Duration(cfg.Auth.TokenTTLHrs) * time.Hour,
	}, log)

	gate := middleware.NewAuthGate(application.Auth.Tokens(), cfg.Auth.CookieName, log)
	limiter := middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst, log)
	cors := middleware.NewCORSMiddleware(cfg.Server.AllowedOrigins)

	var chain http.Handler = handler
	chain = limiter.Handler(chain)
	chain = gate.Handler(chain)
	chain = cors.Handler(chain)
	chain = middleware.MetricsMiddleware(chain)
	chain = middleware.LoggingMiddleware(log)(chain)

	return &Application{
		cfg:        cfg,
		log:        log,
		httpServer: httpserver.New(cfg.Server, chain),
		db:         db,
	}, nil
}

func buildStores(cfg *config.Config, log *logger.Logger) (app.Stores, *sql.DB, error) {
	if cfg.Database.DSN == "" {
		log.Warn("DATABASE_URL not set; using in-memory store")
		return app.Stores{}, nil, nil
	}

	db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return app.Stores{}, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return app.Stores{}, nil, fmt.Errorf("ping database: %w", err)
	}
	if err := migrations.Apply(ctx, db); err != nil {
		db.Close()
		return app.Stores{}, nil, fmt.Errorf("apply migrations: %w", err)
	}

	store := postgres.New(db)
	return app.Stores{
		Users:        store,
		Profiles:     store,
		Scholarships: store,
		Applications: store,
	}, db, nil
}

// Run starts the HTTP server and blocks until the context is cancelled or
// the server fails.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.log.Infof("HTTP server listening on %s", a.httpServer.Addr())
		if err := a.httpServer.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully stops the HTTP server and releases the database handle.
func (a *Application) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.WithError(err).Warn("error closing database connection")
		}
	}
	return nil
}
