package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"price-tracker/internal/cascade"
	cataloghttp "price-tracker/internal/catalog/http"
	"price-tracker/internal/catalog/repository"
	"price-tracker/internal/catalog/service"
	"price-tracker/internal/config"
	"price-tracker/internal/prices"
	"price-tracker/internal/storage"

	_ "price-tracker/docs"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricProductsCreated = "products_created_total"
	metricURLsCreated     = "product_urls_created_total"
	metricURLsDeleted     = "product_urls_deleted_total"
)

// @title        Price Tracker API
// @version      1.0
// @description  Catalog of products and monitored urls with scraped price history.
// @host         localhost:8080
// @BasePath     /
func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.LoadAPI()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		logger.Error("load aws config", "error", err)
		os.Exit(1)
	}
	ddb := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.AWSEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.AWSEndpoint)
		}
	})

	catalogStore := storage.New(ddb, cfg.CatalogTable)
	timeseriesStore := storage.New(ddb, cfg.TimeseriesTable)

	createdCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricProductsCreated,
		Help: "Total number of products created",
	})
	urlsCreatedCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricURLsCreated,
		Help: "Total number of monitored urls created",
	})
	urlsDeletedCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricURLsDeleted,
		Help: "Total number of monitored urls deleted",
	})
	prometheus.MustRegister(createdCounter, urlsCreatedCounter, urlsDeletedCounter)

	catalogRepo := repository.New(catalogStore)
	priceRepo := prices.New(timeseriesStore)
	coordinator := cascade.New(catalogRepo, priceRepo, logger)
	svc := service.New(catalogRepo, priceRepo, coordinator, logger, createdCounter, urlsCreatedCounter, urlsDeletedCounter)
	handler := cataloghttp.NewHandler(svc)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cataloghttp.RequestIDMiddleware())
	router.Use(cataloghttp.AccessLogMiddleware(logger))
	cataloghttp.RegisterRoutes(router, handler, catalogStore)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api service started", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("http server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("api service stopped")
}
