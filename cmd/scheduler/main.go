package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"price-tracker/internal/catalog/repository"
	"price-tracker/internal/config"
	"price-tracker/internal/fanout"
	"price-tracker/internal/queue"
	"price-tracker/internal/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricRuns     = "fanout_runs_total"
	metricFailures = "fanout_failures_total"
	metricEnqueued = "fanout_urls_enqueued_total"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	os.Exit(run(logger))
}

func run(logger *slog.Logger) int {
	cfg, err := config.LoadScheduler()
	if err != nil {
		logger.Error("load config", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		logger.Error("load aws config", "error", err)
		return 1
	}
	endpoint := func(base *string) *string {
		if cfg.AWSEndpoint != "" {
			return aws.String(cfg.AWSEndpoint)
		}
		return base
	}
	ddb := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		o.BaseEndpoint = endpoint(o.BaseEndpoint)
	})
	sqsClient := sqs.NewFromConfig(awsCfg, func(o *sqs.Options) {
		o.BaseEndpoint = endpoint(o.BaseEndpoint)
	})

	runsCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricRuns,
		Help: "Total number of fan-out runs started",
	})
	failuresCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricFailures,
		Help: "Total number of fan-out runs that failed",
	})
	enqueuedCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricEnqueued,
		Help: "Total number of url messages enqueued",
	})
	prometheus.MustRegister(runsCounter, failuresCounter, enqueuedCounter)

	catalogRepo := repository.New(storage.New(ddb, cfg.CatalogTable))
	sender := queue.NewSender(sqsClient, cfg.QueueURL, logger)
	job := fanout.New(catalogRepo, sender, logger, runsCounter, failuresCounter, enqueuedCounter)

	metricsServer := &http.Server{Addr: cfg.MetricsAddr, Handler: promhttp.Handler()}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	logger.Info("scheduler started", "interval", cfg.FanOutInterval.String())

	ticker := time.NewTicker(cfg.FanOutInterval)
	defer ticker.Stop()

	// One pass immediately, then on every tick.
	job.Run(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("shutdown signal received")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("metrics server shutdown failed", "error", err)
			}
			logger.Info("scheduler stopped")
			return 0
		case <-ticker.C:
			job.Run(ctx)
		}
	}
}
