package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodassistant/internal/api"
	"foodassistant/internal/assistant"
	"foodassistant/internal/catalog"
	"foodassistant/internal/config"
	"foodassistant/internal/logging"
	"foodassistant/internal/metrics"
	"foodassistant/internal/models"
	"foodassistant/internal/models/providers"
	"foodassistant/internal/orders"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	// Initialize context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort != 0 {
		cfg.Server.MetricsPort = *metricsPort
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Log.Mode == config.AppModeProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize LLM
	provider, err := initializeLLM(cfg.Inference, logger)
	if err != nil {
		logger.Fatal("Failed to initialize inference provider", zap.Error(err))
	}

	// Initialize catalog storage
	store, err := catalog.NewStore(cfg.Catalog)
	if err != nil {
		logger.Fatal("Failed to initialize catalog store", zap.Error(err))
	}

	// Initialize metrics collector
	collector := metrics.NewCollector()

	// Order fulfillment
	clock := orders.SystemClock{}
	repo := orders.NewRepository()
	scheduler := orders.NewScheduler(repo, orders.Timeline(cfg.Orders), clock, logger.Named("scheduler"))
	orderService := orders.NewService(repo, scheduler, clock, cfg.Orders.DeliveryETA, collector, logger.Named("orders"))

	engine := assistant.NewEngine(provider,
		assistant.WithTimeout(cfg.Inference.Timeout),
		assistant.WithRecorder(collector),
		assistant.WithLogger(logger.Named("assistant")))

	// Initialize API server
	foodAPI := api.NewFoodAPI(api.Deps{
		Orders:    orderService,
		Catalog:   catalog.NewService(store, logger.Named("catalog")),
		Engine:    engine,
		Analyzer:  assistant.NewIngredientAnalyzer(assistant.NewPlaceholderEstimator(0)),
		JWTSecret: cfg.Auth.JWTSecret,
		Logger:    logger.Named("http"),
	})

	go func() {
		if err := scheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Scheduler stopped", zap.Error(err))
		}
	}()

	// Start metrics server
	metricsServer := startMetricsServer(cfg.Server.MetricsPort, collector, logger)

	// Start API server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: foodAPI.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("API server shutdown error", zap.Error(err))
		}
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Metrics server shutdown error", zap.Error(err))
		}
		foodAPI.Tracker.Close()

		cancel() // Cancel main context
	}()

	logger.Info("Starting API server",
		zap.Int("port", cfg.Server.Port),
		zap.String("provider", engine.ProviderName()),
		zap.Bool("remote_configured", engine.RemoteConfigured()))
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("API server error", zap.Error(err))
	}
	<-ctx.Done()
}

// initializeLLM returns nil without error when no credentials are configured;
// the assistant then answers from its local rules.
func initializeLLM(conf config.InferenceConfig, logger *zap.Logger) (providers.Provider, error) {
	provider, err := providers.New(conf)
	if errors.Is(err, models.ErrInferenceNotConfigured) {
		logger.Info("Remote inference not configured, using local fallback")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s client: %w", conf.Provider, err)
	}
	return provider, nil
}

func startMetricsServer(port int, collector *metrics.Collector, logger *zap.Logger) *http.Server {
	metricsRouter := gin.New()
	metricsRouter.GET("/metrics", gin.WrapH(collector.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	go func() {
		logger.Info("Starting metrics server", zap.Int("port", port))
		if err := metricsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server error", zap.Error(err))
		}
	}()
	return metricsServer
}
