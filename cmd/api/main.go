package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/store-service/api/routes"
	"github.com/angelmondragon/store-service/internal/items"
	"github.com/angelmondragon/store-service/internal/stores"
	"github.com/angelmondragon/store-service/internal/tags"
	"github.com/angelmondragon/store-service/pkg/config"
	"github.com/angelmondragon/store-service/pkg/db"
	"github.com/angelmondragon/store-service/pkg/env"
	"github.com/angelmondragon/store-service/pkg/logger"
	"github.com/angelmondragon/store-service/pkg/metrics"
	"github.com/angelmondragon/store-service/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeAutoRun(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run migrations", err)
		_ = dbClient.Close()
		os.Exit(1)
	}

	storeRepo := stores.NewRepository(dbClient.DB())
	itemRepo := items.NewRepository(dbClient.DB())
	tagRepo := tags.NewRepository(dbClient.DB())

	storeService, err := stores.NewService(storeRepo, dbClient)
	requireService(ctx, logg, dbClient, "store", err)
	itemService, err := items.NewService(itemRepo, storeRepo, dbClient)
	requireService(ctx, logg, dbClient, "item", err)
	tagService, err := tags.NewService(tagRepo, storeRepo, itemRepo, dbClient)
	requireService(ctx, logg, dbClient, "tag", err)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	addr := ":" + env.First(cfg.App.Port, "PORT")
	ctx = logg.WithFields(ctx, map[string]any{
		"env":    cfg.App.Env,
		"addr":   addr,
		"driver": cfg.DB.Driver,
	})

	server := &http.Server{
		Addr:         addr,
		Handler:      routes.NewRouter(cfg, logg, dbClient, storeService, itemService, tagService, httpMetrics, registry),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	exitCode := 0
	select {
	case err := <-serveErr:
		if err != nil {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			exitCode = 1
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := multierr.Combine(server.Shutdown(shutdownCtx), dbClient.Close()); err != nil {
		logg.Error(ctx, "shutdown incomplete", err)
		exitCode = 1
	} else {
		logg.Info(ctx, "api server stopped")
	}
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func requireService(ctx context.Context, logg *logger.Logger, dbClient *db.Client, name string, err error) {
	if err == nil {
		return
	}
	ctx = logg.WithField(ctx, "service", name)
	logg.Error(ctx, "failed to create service", err)
	_ = dbClient.Close()
	os.Exit(1)
}
