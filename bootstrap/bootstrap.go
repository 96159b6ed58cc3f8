// Package bootstrap wires configuration, adapters, services and the HTTP
// server into a runnable application.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"boilerref/adapters/clock"
	"boilerref/adapters/idgen"
	"boilerref/adapters/jsonfile"
	"boilerref/adapters/memory"
	"boilerref/adapters/metrics"
	"boilerref/adapters/sqlite"
	"boilerref/app"
	"boilerref/config"
	"boilerref/ports"
	"boilerref/web"
)

// App holds the assembled application.
type App struct {
	Logger     zerolog.Logger
	Config     *config.Holder
	Catalog    *app.CatalogService
	Metrics    *metrics.Collector
	HTTPServer *http.Server

	db *sqlite.DB // nil when the audit journal is in memory
}

// New assembles the application from the config file at path. A missing
// file is not an error; defaults and BOILERREF_* env vars apply.
func New(path string) (*App, error) {
	bootLogger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	holder, err := config.NewHolder(path, bootLogger)
	if err != nil {
		return nil, err
	}
	cfg := holder.Get()

	logger := setupLogger(cfg.Logging)
	logger.Info().Str("catalog", cfg.Catalog.Path).Msg("initializing boilerref")

	a := &App{
		Logger: logger,
		Config: holder,
	}

	store := jsonfile.New(cfg.Catalog.Path)

	var journal ports.AuditStore
	if cfg.Audit.Enabled {
		db, err := sqlite.Open(cfg.Audit.DSN)
		if err != nil {
			return nil, fmt.Errorf("open audit db: %w", err)
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate audit db: %w", err)
		}
		a.db = db
		journal = sqlite.NewAuditStore(db)
		logger.Info().Str("dsn", cfg.Audit.DSN).Msg("audit journal enabled")
	} else {
		journal = memory.NewAuditStore()
	}

	// The collector always exists; a disabled /metrics endpoint just gets
	// a private registry nothing scrapes.
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
		metricsHandler = promhttp.Handler()
		logger.Info().Str("path", cfg.Metrics.Path).Msg("prometheus metrics enabled")
	} else {
		a.Metrics = metrics.NewWith(prometheus.NewRegistry())
	}

	a.Catalog = app.NewCatalogService(store, journal, a.Metrics, clock.Real{}, idgen.UUID{}, logger)

	// Prime the gauges and fail fast on an unreadable document.
	st, err := a.Catalog.Stats(context.Background())
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	logger.Info().Int("boilers", st.Boilers).Int("surfaces", st.Surfaces).Msg("catalog loaded")

	handler, err := web.NewHandler(web.Deps{
		Catalog:        a.Catalog,
		Admin:          cfg.Admin,
		Metrics:        a.Metrics,
		MetricsHandler: metricsHandler,
		MetricsPath:    cfg.Metrics.Path,
		Logger:         logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init web handler: %w", err)
	}

	a.HTTPServer = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Hot reload only touches the log level; everything else needs a
	// restart and logChanges says so.
	holder.OnChange(func(c *config.Config) {
		if level, err := zerolog.ParseLevel(c.Logging.Level); err == nil {
			zerolog.SetGlobalLevel(level)
		}
	})
	if err := holder.WatchFile(); err != nil {
		logger.Warn().Err(err).Msg("config file watch unavailable")
	}
	holder.WatchSignals()

	return a, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().Str("addr", a.HTTPServer.Addr).Msg("starting http server")
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.Logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	return a.Shutdown()
}

// Shutdown gracefully stops the application.
func (a *App) Shutdown() error {
	timeout := a.Config.Get().Server.ShutdownTimeout
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	a.Config.Stop()

	if a.HTTPServer != nil {
		if err := a.HTTPServer.Shutdown(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("http server shutdown error")
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("audit db close error")
		}
	}

	a.Logger.Info().Msg("shutdown complete")
	return nil
}

func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
