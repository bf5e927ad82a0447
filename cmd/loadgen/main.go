// cmd/loadgen/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pizza-mock/internal/common/config"
	httpclient "pizza-mock/internal/common/http"
	"pizza-mock/internal/common/logger"
	"pizza-mock/internal/loadtest"
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

	if cfg.LoadTest.SiteURL == "" || cfg.LoadTest.ServiceURL == "" || cfg.LoadTest.FactoryURL == "" {
		zapLog.Fatal("loadtest.site_url, loadtest.service_url and loadtest.factory_url are required")
	}

	stages := loadtest.StagesFromConfig(cfg.LoadTest.Stages)
	zapLog.Info("Starting load run...",
		zap.String("site", cfg.LoadTest.SiteURL),
		zap.String("service", cfg.LoadTest.ServiceURL),
		zap.Int("stages", len(stages)),
		zap.Duration("total", loadtest.TotalDuration(stages)),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Expose iteration and virtual-user metrics while the run lasts.
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:    cfg.Server.MetricsAddr(),
		Handler: metricsMux,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Warn("metrics server failed", zap.Error(err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		metricsServer.Shutdown(shutdownCtx)
	}()

	scenario := loadtest.NewScenario(log, httpclient.NewClient(30*time.Second), cfg.LoadTest)
	runner := loadtest.NewRunner(log, scenario, stages, config.GetDuration(cfg.LoadTest.GracefulStop))

	if err := runner.Run(ctx); err != nil {
		zapLog.Warn("load run interrupted", zap.Error(err))
	}

	zapLog.Info("Load run complete",
		zap.Int64("iterations", runner.Iterations()),
		zap.Int64("failures", runner.Failures()),
	)
	if runner.Failures() > 0 {
		os.Exit(1)
	}
}
