package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/jrazmi/stockdata/app/stockdata/config"
	"github.com/jrazmi/stockdata/bridge/healthbridge"
	"github.com/jrazmi/stockdata/bridge/repositories/clusteringcriteriarepobridge"
	"github.com/jrazmi/stockdata/bridge/repositories/clusteringresultsrepobridge"
	"github.com/jrazmi/stockdata/bridge/repositories/financialstatementsrepobridge"
	"github.com/jrazmi/stockdata/bridge/repositories/stocksrepobridge"
	"github.com/jrazmi/stockdata/bridge/scaffolding/metrics"
	"github.com/jrazmi/stockdata/bridge/scaffolding/mid"
	"github.com/jrazmi/stockdata/bridge/schemabridge"
	"github.com/jrazmi/stockdata/infrastructure/datastores"
	"github.com/jrazmi/stockdata/infrastructure/web"
	"github.com/jrazmi/stockdata/sdk/environment"
	"github.com/jrazmi/stockdata/sdk/logger"
	"github.com/jrazmi/stockdata/sdk/telemetry"
)

var build = "develop"
var appName = "STOCKDATA"

func main() {
	if err := environment.LoadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "loading .env:", err)
	}
	ctx := context.Background()

	log, err := logger.NewFromEnv(appName, logger.WithTraceID(telemetry.TraceID))
	if err != nil {
		fmt.Fprintln(os.Stderr, "oh no we couldn't even get logging going:", err)
		os.Exit(1)
	}

	if err := run(ctx, log); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	var opts config.Options
	if err := environment.ParseEnvTags(appName, &opts); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	// :*: START DATABASES :*:
	ds, err := datastores.NewFromEnv(appName, log.Logger)
	if err != nil {
		return err
	}
	defer func() {
		log.InfoContext(ctx, "shutdown", "status", "closing database connection")
		if err := ds.Close(); err != nil {
			log.ErrorContext(ctx, "shutdown", "status", "closing database", "err", err)
		}
	}()
	log.InfoContext(ctx, "init", "service", ds.Driver, "database", ds.Name())

	if opts.MigrateOnStart {
		if err := ds.Migrate(ctx, log.Logger); err != nil {
			return fmt.Errorf("migrate on start: %w", err)
		}
	}
	// END DATABASES //

	log.InfoContext(ctx, "startup", "status", "initializing repository support")
	repos := config.NewRepositories(log, ds)

	server, err := web.NewServerFromEnv(appName, web.WithErrorLog(logger.NewStdLogger(log, slog.LevelError)))
	if err != nil {
		return fmt.Errorf("webserver: %w", err)
	}

	cfg := config.StockData{
		Build:        build,
		APIRoute:     server.Config.APIRoute,
		Logger:       log,
		Telemetry:    telemetry.NewTelemetry(),
		Datastore:    ds,
		Repositories: repos,
	}
	handler, err := webHandler(cfg)
	if err != nil {
		return fmt.Errorf("web handler: %w", err)
	}
	server.Handler = handler

	serverErrors := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "startup", "status", "api router started", "host", server.Addr, "route", cfg.APIRoute)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.InfoContext(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		defer log.InfoContext(ctx, "shutdown", "status", "shutdown complete", "signal", sig)

		ctx, cancel := context.WithTimeout(ctx, server.Config.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func webHandler(cfg config.StockData) (http.Handler, error) {
	m := metrics.New()

	// INITIALIZATION
	// Logger outermost, Panics innermost.
	app, err := web.NewWebHandlerFromEnv(appName,
		web.WithLogging(cfg.Logger.Logger),
		web.WithTelemetry(cfg.Telemetry),
		web.WithGlobalMiddleware(
			mid.Logger(cfg.Logger),
			mid.Errors(cfg.Logger),
			mid.Metrics(m),
			mid.Panics(),
		),
	)
	if err != nil {
		return nil, err
	}

	app.HandleRaw("GET /metrics", m.Handler())

	// API
	api := app.Group(cfg.APIRoute)
	repos := cfg.Repositories

	healthbridge.AddHttpRoutes(api, healthbridge.Config{
		Log:    cfg.Logger,
		Driver: cfg.Datastore.Driver,
		Check:  cfg.Datastore.StatusCheck,
	})
	schemabridge.AddHttpRoutes(api, schemabridge.Config{
		Log:    cfg.Logger,
		Source: cfg.Datastore,
	})
	stocksrepobridge.AddHttpRoutes(api, stocksrepobridge.Config{
		Log:        cfg.Logger,
		Repository: repos.Stocks,
	})
	financialstatementsrepobridge.AddHttpRoutes(api, financialstatementsrepobridge.Config{
		Log:        cfg.Logger,
		Repository: repos.FinancialStatements,
		Stocks:     repos.Stocks,
	})
	clusteringcriteriarepobridge.AddHttpRoutes(api, clusteringcriteriarepobridge.Config{
		Log:        cfg.Logger,
		Repository: repos.ClusteringCriteria,
	})
	clusteringresultsrepobridge.AddHttpRoutes(api, clusteringresultsrepobridge.Config{
		Log:        cfg.Logger,
		Repository: repos.ClusteringResults,
		Stocks:     repos.Stocks,
	})

	return app, nil
}
