package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/onboarding-assistant/internal/api/router"
	"github.com/wolfman30/onboarding-assistant/internal/app/bootstrap"
	appconfig "github.com/wolfman30/onboarding-assistant/internal/config"
	"github.com/wolfman30/onboarding-assistant/internal/generation"
	httpmiddleware "github.com/wolfman30/onboarding-assistant/internal/http/middleware"
	"github.com/wolfman30/onboarding-assistant/internal/observability/metrics"
	"github.com/wolfman30/onboarding-assistant/internal/onboarding"
	"github.com/wolfman30/onboarding-assistant/pkg/logging"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.NewWithWriter(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	logger.Info("starting onboarding-assistant API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"llm_provider", cfg.LLMProvider,
		"session_store", cfg.SessionStore,
	)

	ctx := context.Background()
	metricsHandler, onboardingMetrics := setupMetrics()

	llmClient, err := bootstrap.BuildLLMClient(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to configure generation provider", "error", err)
		os.Exit(1)
	}
	store, closeStore, err := bootstrap.BuildSessionStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to configure session store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("failed to close session store", "error", err)
		}
	}()

	limiter := httpmiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer limiter.Stop()

	r := buildRouter(cfg, logger, llmClient, store, onboardingMetrics, metricsHandler, limiter)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.LLMTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

func setupMetrics() (http.Handler, *metrics.OnboardingMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), metrics.NewOnboardingMetrics(reg)
}

func buildRouter(
	cfg *appconfig.Config,
	logger *logging.Logger,
	llmClient generation.LLMClient,
	store onboarding.SessionStore,
	m *metrics.OnboardingMetrics,
	metricsHandler http.Handler,
	limiter *httpmiddleware.RateLimiter,
) http.Handler {
	generator := generation.NewGenerator(llmClient, logger,
		generation.WithModel(bootstrap.ModelName(cfg)),
		generation.WithTimeout(cfg.LLMTimeout),
		generation.WithMetrics(m),
	)
	chat := onboarding.NewChatService(store, generator, logger,
		onboarding.WithConsumeTurnOnFailure(cfg.ConsumeTurnOnFailure),
		onboarding.WithChatMetrics(m),
	)
	email := onboarding.NewEmailService(generator, logger, m)

	return router.New(&router.Config{
		Logger:             logger,
		OnboardingHandler:  onboarding.NewHandler(chat, email, logger),
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimiter:        limiter,
	})
}
