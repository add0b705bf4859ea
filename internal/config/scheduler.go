package config

import (
	"fmt"
	"time"
)

const (
	defaultMetricsAddr = ":9090"

	// defaultFanOutInterval matches the deployment's hourly schedule rule.
	defaultFanOutInterval = time.Hour
)

// Scheduler configures the fan-out runner.
type Scheduler struct {
	CatalogTable    string
	QueueURL        string
	AWSRegion       string
	AWSEndpoint     string
	MetricsAddr     string
	FanOutInterval  time.Duration
	ShutdownTimeout time.Duration
}

func LoadScheduler() (Scheduler, error) {
	interval, err := getDurationEnv("FANOUT_INTERVAL", defaultFanOutInterval)
	if err != nil {
		return Scheduler{}, err
	}

	cfg := Scheduler{
		CatalogTable:    getEnv("CATALOG_TABLE_NAME", ""),
		QueueURL:        getEnv("QUEUE_URL", ""),
		AWSRegion:       getEnv("AWS_REGION", defaultAWSRegion),
		AWSEndpoint:     getEnv("AWS_ENDPOINT_URL", ""),
		MetricsAddr:     getEnv("METRICS_ADDR", defaultMetricsAddr),
		FanOutInterval:  interval,
		ShutdownTimeout: defaultShutdownTimeout,
	}

	if cfg.CatalogTable == "" {
		return Scheduler{}, fmt.Errorf("CATALOG_TABLE_NAME is required")
	}
	if cfg.QueueURL == "" {
		return Scheduler{}, fmt.Errorf("QUEUE_URL is required")
	}

	return cfg, nil
}
