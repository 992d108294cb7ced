package config

import (
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// DatabaseConfig.GetDSN
// ---------------------------------------------------------------------------

func TestGetDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "standard config",
			cfg: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "tenants",
				Password: "secret",
				Name:     "tenants_admin",
				SSLMode:  "require",
			},
			want: "host=localhost port=5432 user=tenants password=secret dbname=tenants_admin sslmode=require",
		},
		{
			name: "disable ssl mode",
			cfg: DatabaseConfig{
				Host:     "db.example.com",
				Port:     5433,
				User:     "admin",
				Password: "pass",
				Name:     "mydb",
				SSLMode:  "disable",
			},
			want: "host=db.example.com port=5433 user=admin password=pass dbname=mydb sslmode=disable",
		},
		{
			name: "empty password",
			cfg: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "user",
				Password: "",
				Name:     "dbname",
				SSLMode:  "prefer",
			},
			want: "host=localhost port=5432 user=user password= dbname=dbname sslmode=prefer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.GetDSN()
			if got != tt.want {
				t.Errorf("GetDSN() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// ServerConfig.GetAddress
// ---------------------------------------------------------------------------

func TestGetAddress(t *testing.T) {
	tests := []struct {
		name string
		cfg  ServerConfig
		want string
	}{
		{"default", ServerConfig{Host: "0.0.0.0", Port: 8080}, "0.0.0.0:8080"},
		{"localhost", ServerConfig{Host: "localhost", Port: 3000}, "localhost:3000"},
		{"empty host", ServerConfig{Host: "", Port: 8080}, ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.GetAddress()
			if got != tt.want {
				t.Errorf("GetAddress() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// RegionsConfig.DSNMap
// ---------------------------------------------------------------------------

func TestDSNMap(t *testing.T) {
	tests := []struct {
		name string
		cfg  RegionsConfig
		want map[string]string
	}{
		{
			name: "both regions configured",
			cfg: RegionsConfig{
				USEast1:      RegionConfig{DSN: "host=use1"},
				APSoutheast1: RegionConfig{DSN: "host=apse1"},
			},
			want: map[string]string{"usEast1": "host=use1", "apSoutheast1": "host=apse1"},
		},
		{
			name: "empty regions omitted",
			cfg: RegionsConfig{
				APSoutheast1: RegionConfig{DSN: "host=apse1"},
			},
			want: map[string]string{"apSoutheast1": "host=apse1"},
		},
		{
			name: "none configured",
			cfg:  RegionsConfig{},
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.DSNMap()
			if len(got) != len(tt.want) {
				t.Fatalf("DSNMap() has %d entries, want %d", len(got), len(tt.want))
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("DSNMap()[%q] = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Config.Validate
// ---------------------------------------------------------------------------

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8080,
			BaseURL: "http://localhost:8080",
		},
		Database: DatabaseConfig{
			Host: "localhost",
			Port: 5432,
			Name: "tenants_admin",
			User: "tenants",
		},
		Regions: RegionsConfig{
			APSoutheast1: RegionConfig{DSN: "host=apse1"},
			DialTimeout:  5 * time.Second,
			ProbeTimeout: 5 * time.Second,
		},
		Provisioning: ProvisioningConfig{TransactionTimeout: 30 * time.Second},
		Security:     SecurityConfig{BcryptCost: 10},
		Logging:      LoggingConfig{Level: "info", Format: "json"},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server port"},
		{"missing base url", func(c *Config) { c.Server.BaseURL = "" }, "base_url"},
		{"missing db host", func(c *Config) { c.Database.Host = "" }, "database.host"},
		{"missing db name", func(c *Config) { c.Database.Name = "" }, "database.name"},
		{"missing db user", func(c *Config) { c.Database.User = "" }, "database.user"},
		{"no regions", func(c *Config) { c.Regions.APSoutheast1.DSN = "" }, "region"},
		{"zero dial timeout", func(c *Config) { c.Regions.DialTimeout = 0 }, "dial_timeout"},
		{"zero tx timeout", func(c *Config) { c.Provisioning.TransactionTimeout = 0 }, "transaction_timeout"},
		{"bcrypt cost too low", func(c *Config) { c.Security.BcryptCost = 2 }, "bcrypt_cost"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("Validate() = %q, want substring %q", err.Error(), tt.wantSub)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Load
// ---------------------------------------------------------------------------

func TestLoad_DefaultsOnly(t *testing.T) {
	// No config file: defaults plus the apSoutheast1 fallback to the primary
	// database must produce a valid configuration.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Regions.DialTimeout != 5*time.Second {
		t.Errorf("Regions.DialTimeout = %v, want 5s", cfg.Regions.DialTimeout)
	}
	if cfg.Provisioning.TransactionTimeout != 30*time.Second {
		t.Errorf("Provisioning.TransactionTimeout = %v, want 30s", cfg.Provisioning.TransactionTimeout)
	}
	if cfg.Regions.APSoutheast1.DSN != cfg.Database.GetDSN() {
		t.Errorf("APSoutheast1.DSN = %q, want fallback to primary DSN", cfg.Regions.APSoutheast1.DSN)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TNA_DATABASE_HOST", "db.internal")
	t.Setenv("TNA_REGIONS_US_EAST_1_DSN", "host=use1.internal port=5432 user=u password=p dbname=d sslmode=require")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("Database.Host = %q, want db.internal", cfg.Database.Host)
	}
	if !strings.Contains(cfg.Regions.USEast1.DSN, "use1.internal") {
		t.Errorf("USEast1.DSN = %q, want env-provided DSN", cfg.Regions.USEast1.DSN)
	}
}
