package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadAPI(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing CATALOG_TABLE_NAME",
			env:     map[string]string{"TIMESERIES_TABLE_NAME": "prices"},
			wantErr: "CATALOG_TABLE_NAME is required",
		},
		{
			name:    "missing TIMESERIES_TABLE_NAME",
			env:     map[string]string{"CATALOG_TABLE_NAME": "catalog"},
			wantErr: "TIMESERIES_TABLE_NAME is required",
		},
		{
			name: "valid config with defaults",
			env: map[string]string{
				"CATALOG_TABLE_NAME":    "catalog",
				"TIMESERIES_TABLE_NAME": "prices",
			},
		},
		{
			name: "custom HTTP_ADDR overrides default",
			env: map[string]string{
				"CATALOG_TABLE_NAME":    "catalog",
				"TIMESERIES_TABLE_NAME": "prices",
				"HTTP_ADDR":             ":9999",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadAPI()
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error %q, got nil", tt.wantErr)
				}
				if err.Error() != tt.wantErr {
					t.Fatalf("want error %q, got %q", tt.wantErr, err.Error())
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.CatalogTable != tt.env["CATALOG_TABLE_NAME"] {
				t.Fatalf("want CatalogTable %q, got %q", tt.env["CATALOG_TABLE_NAME"], cfg.CatalogTable)
			}
			if addr, ok := tt.env["HTTP_ADDR"]; ok && cfg.HTTPAddr != addr {
				t.Fatalf("want HTTPAddr %q, got %q", addr, cfg.HTTPAddr)
			}
			if _, ok := tt.env["HTTP_ADDR"]; !ok && cfg.HTTPAddr != defaultHTTPAddr {
				t.Fatalf("want default HTTPAddr %q, got %q", defaultHTTPAddr, cfg.HTTPAddr)
			}
			if cfg.AWSRegion != defaultAWSRegion {
				t.Fatalf("want default region %q, got %q", defaultAWSRegion, cfg.AWSRegion)
			}
			if cfg.ShutdownTimeout != defaultShutdownTimeout {
				t.Fatalf("want ShutdownTimeout %v, got %v", defaultShutdownTimeout, cfg.ShutdownTimeout)
			}
		})
	}
}

func TestLoadScheduler(t *testing.T) {
	tests := []struct {
		name         string
		env          map[string]string
		wantErr      string
		wantInterval time.Duration
	}{
		{
			name:    "missing QUEUE_URL",
			env:     map[string]string{"CATALOG_TABLE_NAME": "catalog"},
			wantErr: "QUEUE_URL is required",
		},
		{
			name:    "missing CATALOG_TABLE_NAME",
			env:     map[string]string{"QUEUE_URL": "https://queue.local/scrape"},
			wantErr: "CATALOG_TABLE_NAME is required",
		},
		{
			name: "default interval",
			env: map[string]string{
				"CATALOG_TABLE_NAME": "catalog",
				"QUEUE_URL":          "https://queue.local/scrape",
			},
			wantInterval: defaultFanOutInterval,
		},
		{
			name: "custom interval",
			env: map[string]string{
				"CATALOG_TABLE_NAME": "catalog",
				"QUEUE_URL":          "https://queue.local/scrape",
				"FANOUT_INTERVAL":    "15m",
			},
			wantInterval: 15 * time.Minute,
		},
		{
			name: "malformed interval",
			env: map[string]string{
				"CATALOG_TABLE_NAME": "catalog",
				"QUEUE_URL":          "https://queue.local/scrape",
				"FANOUT_INTERVAL":    "often",
			},
			wantErr: `FANOUT_INTERVAL: time: invalid duration "often"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadScheduler()
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error %q, got nil", tt.wantErr)
				}
				if err.Error() != tt.wantErr {
					t.Fatalf("want error %q, got %q", tt.wantErr, err.Error())
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.FanOutInterval != tt.wantInterval {
				t.Fatalf("want interval %v, got %v", tt.wantInterval, cfg.FanOutInterval)
			}
			if cfg.QueueURL != tt.env["QUEUE_URL"] {
				t.Fatalf("want QueueURL %q, got %q", tt.env["QUEUE_URL"], cfg.QueueURL)
			}
		})
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"CATALOG_TABLE_NAME", "TIMESERIES_TABLE_NAME", "QUEUE_URL",
		"AWS_REGION", "AWS_ENDPOINT_URL", "HTTP_ADDR", "METRICS_ADDR", "FANOUT_INTERVAL",
	}
	for _, key := range keys {
		if val, ok := os.LookupEnv(key); ok {
			t.Setenv(key, val)
		}
		os.Unsetenv(key)
	}
}
