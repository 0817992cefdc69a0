package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caain/soilhub/internal/api"
	"github.com/caain/soilhub/internal/config"
	"github.com/caain/soilhub/internal/croptax"
	"github.com/caain/soilhub/internal/drought"
	"github.com/caain/soilhub/internal/events"
	"github.com/caain/soilhub/internal/fertilizer"
	"github.com/caain/soilhub/internal/fieldsvc"
	"github.com/caain/soilhub/internal/location"
	"github.com/caain/soilhub/internal/noaa"
	"github.com/caain/soilhub/internal/store"
	"github.com/caain/soilhub/internal/weather"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.Logging.Level)}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	// Events (optional)
	var eventsClient events.Client
	if cfg.Events.URL != "" {
		ec, err := events.NewNATSClient(ctx, cfg.Events.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to NATS, running without events", "error", err)
		} else {
			eventsClient = ec
			defer ec.Close()
			logger.Info("connected to NATS")
		}
	}

	// Collaborators
	weatherClient := weather.NewHTTPClient(cfg.Weather.URL, cfg.Weather.Token, cfg.WeatherCacheTTL())
	cropsClient := croptax.NewHTTPClient(cfg.CropTax.URL)
	fieldsClient := fieldsvc.NewHTTPClient(cfg.Fields.URL)
	noaaClient := noaa.NewHTTPClient(cfg.NOAA.URL)

	// Drought monitor loop
	monitor := drought.New(db, weatherClient, noaaClient, eventsClient, cfg, logger)
	monitor.Start(ctx)
	defer monitor.Stop()
	logger.Info("drought monitor started", "poll_interval", cfg.PollInterval())

	// Recommendation service and field validation
	recommender := fertilizer.NewService(fieldsClient, cropsClient, weatherClient, db, eventsClient, cfg, logger)
	validator := location.NewValidator(cfg, cropsClient)

	// API server
	router := api.NewRouter(db, recommender, validator, eventsClient, cfg.Server.AdminToken, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: api.NewMetricsRouter(),
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
