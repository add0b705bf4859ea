package config

import (
	"fmt"
	"os"
	"time"
)

const (
	defaultHTTPAddr          = ":8080"
	defaultAWSRegion         = "us-east-1"
	defaultShutdownTimeout   = 10 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
)

// API configures the HTTP service. The table names and queue endpoint are
// deployment-supplied; the core never computes them.
type API struct {
	CatalogTable      string
	TimeseriesTable   string
	AWSRegion         string
	AWSEndpoint       string
	HTTPAddr          string
	ShutdownTimeout   time.Duration
	ReadHeaderTimeout time.Duration
}

func LoadAPI() (API, error) {
	cfg := API{
		CatalogTable:      getEnv("CATALOG_TABLE_NAME", ""),
		TimeseriesTable:   getEnv("TIMESERIES_TABLE_NAME", ""),
		AWSRegion:         getEnv("AWS_REGION", defaultAWSRegion),
		AWSEndpoint:       getEnv("AWS_ENDPOINT_URL", ""),
		HTTPAddr:          getEnv("HTTP_ADDR", defaultHTTPAddr),
		ShutdownTimeout:   defaultShutdownTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
	}

	if cfg.CatalogTable == "" {
		return API{}, fmt.Errorf("CATALOG_TABLE_NAME is required")
	}
	if cfg.TimeseriesTable == "" {
		return API{}, fmt.Errorf("TIMESERIES_TABLE_NAME is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}
