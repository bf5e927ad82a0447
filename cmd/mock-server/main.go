// cmd/mock-server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pizza-mock/internal/common/config"
	"pizza-mock/internal/common/logger"
	"pizza-mock/internal/common/observability"
	"pizza-mock/internal/fixtures"
	"pizza-mock/internal/mockrouter"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zapLog := logger.New("info", "console")
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting mock server...",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("seed", cfg.Server.Seed),
		zap.String("sessionBackend", cfg.Sessions.Backend),
	)

	obs := observability.New("mock-server")
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := fixtures.NewStore()
	switch cfg.Server.Seed {
	case "directory":
		fixtures.SeedDirectory(store)
	default:
		fixtures.SeedBasic(store)
	}

	var sessions fixtures.SessionStore
	if cfg.Sessions.Backend == "redis" {
		redisStore, err := fixtures.NewRedisSessionStore(
			ctx,
			cfg.Sessions.Redis.Address,
			cfg.Sessions.Redis.Password,
			cfg.Sessions.Redis.DB,
			config.GetDuration(cfg.Sessions.TTL),
		)
		if err != nil {
			zapLog.Fatal("redis session store init failed", zap.Error(err))
		}
		defer redisStore.Close()
		sessions = redisStore
	} else {
		sessions = fixtures.NewMemorySessionStore()
	}

	router := mockrouter.New(log, store, sessions, mockrouter.NewTokenIssuer(tokenSecret())).
		WithObservability(obs)

	apiServer := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:    cfg.Server.MetricsAddr(),
		Handler: metricsMux,
	}

	go func() {
		zapLog.Info("Metrics server listening", zap.String("addr", cfg.Server.MetricsAddr()))
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		zapLog.Info("Mock API listening", zap.String("addr", cfg.Server.Addr()))
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("mock server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLog.Info("Shutdown signal received, stopping mock server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("mock server shutdown failed", zap.Error(err))
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("metrics server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Mock server stopped",
		zap.Int64("unhandledRequests", router.UnhandledCount()),
	)
}

// tokenSecret keys the proof-of-purchase signatures. Any value works;
// tokens only need to verify against the same process group.
func tokenSecret() string {
	if s := os.Getenv("PIZZA_MOCK_TOKEN_SECRET"); s != "" {
		return s
	}
	return "pizza-mock-dev-secret"
}
