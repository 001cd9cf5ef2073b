package config

import (
	"testing"
	"time"
)

// TestLoadConfig_Defaults tests the default configuration
func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want 5432", cfg.Database.Port)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %v, want info", cfg.Logging.Level)
	}
	if cfg.Valuation.BoundPct != 0.05 {
		t.Errorf("Valuation.BoundPct = %v, want 0.05", cfg.Valuation.BoundPct)
	}
	if cfg.Valuation.CurrentYear != 0 {
		t.Errorf("Valuation.CurrentYear = %d, want 0 (defer to snapshot)", cfg.Valuation.CurrentYear)
	}
	if cfg.Properties.Source != "api" {
		t.Errorf("Properties.Source = %v, want api", cfg.Properties.Source)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

// TestLoadConfig_EnvOverrides tests environment variable overrides
func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("VALUATION_CURRENT_YEAR", "2020")
	t.Setenv("VALUATION_BOUND_PCT", "0.1")
	t.Setenv("PROPERTY_SOURCE", "database")
	t.Setenv("POSTCODE_API_TIMEOUT", "500ms")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("Database.Host = %v, want db.internal", cfg.Database.Host)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %v, want debug", cfg.Logging.Level)
	}
	if cfg.Valuation.CurrentYear != 2020 {
		t.Errorf("Valuation.CurrentYear = %d, want 2020", cfg.Valuation.CurrentYear)
	}
	if cfg.Valuation.BoundPct != 0.1 {
		t.Errorf("Valuation.BoundPct = %v, want 0.1", cfg.Valuation.BoundPct)
	}
	if cfg.Properties.Source != "database" {
		t.Errorf("Properties.Source = %v, want database", cfg.Properties.Source)
	}
	if cfg.PostcodeAPI.Timeout != 500*time.Millisecond {
		t.Errorf("PostcodeAPI.Timeout = %v, want 500ms", cfg.PostcodeAPI.Timeout)
	}
}

// TestLoadConfig_MalformedEnvFallsBack tests that unparseable values
// keep their defaults
func TestLoadConfig_MalformedEnvFallsBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	t.Setenv("VALUATION_BOUND_PCT", "five percent")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want default 8080", cfg.Server.Port)
	}
	if cfg.Valuation.BoundPct != 0.05 {
		t.Errorf("Valuation.BoundPct = %v, want default 0.05", cfg.Valuation.BoundPct)
	}
}

// TestConfig_Validate tests consistency checks
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid defaults",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name: "server port out of range",
			mutate: func(c *Config) {
				c.Server.Port = 0
			},
			wantErr: true,
		},
		{
			name: "database port out of range",
			mutate: func(c *Config) {
				c.Database.Port = 70000
			},
			wantErr: true,
		},
		{
			name: "idle connections exceed open connections",
			mutate: func(c *Config) {
				c.Database.MaxIdleConns = 50
				c.Database.MaxOpenConns = 10
			},
			wantErr: true,
		},
		{
			name: "unknown property source",
			mutate: func(c *Config) {
				c.Properties.Source = "spreadsheet"
			},
			wantErr: true,
		},
		{
			name: "bound pct at one",
			mutate: func(c *Config) {
				c.Valuation.BoundPct = 1.0
			},
			wantErr: true,
		},
		{
			name: "bound pct negative",
			mutate: func(c *Config) {
				c.Valuation.BoundPct = -0.05
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig()
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			tt.mutate(cfg)

			err = cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
