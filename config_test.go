package fleetadmin

import (
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	if cfg.Cache.StaleTTL != 5*time.Minute {
		t.Fatalf("StaleTTL = %v", cfg.Cache.StaleTTL)
	}
	if cfg.Cache.HealthStaleTTL != 30*time.Second {
		t.Fatalf("HealthStaleTTL = %v", cfg.Cache.HealthStaleTTL)
	}
	if cfg.Retry.ReadAttempts != 2 || cfg.Retry.MutationAttempts != 2 {
		t.Fatalf("retry defaults: %+v", cfg.Retry)
	}
}

func TestConfigValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }},
		{"zero stale ttl", func(c *Config) { c.Cache.StaleTTL = 0 }},
		{"negative health ttl", func(c *Config) { c.Cache.HealthStaleTTL = -time.Second }},
		{"zero read attempts", func(c *Config) { c.Retry.ReadAttempts = 0 }},
		{"zero mutation attempts", func(c *Config) { c.Retry.MutationAttempts = 0 }},
		{"zero username length", func(c *Config) { c.Credentials.MinUsernameLength = 0 }},
		{"zero password length", func(c *Config) { c.Credentials.MinPasswordLength = 0 }},
		{"events enabled without buffer", func(c *Config) {
			c.Events.Enabled = true
			c.Events.BufferSize = 0
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}

func TestWithConfigReplacesWhole(t *testing.T) {
	cfg := defaultConfig()
	cfg.Cache.StaleTTL = time.Minute
	cfg.API.BaseURL = "http://localhost:9999"

	builder := New().WithConfig(cfg)
	client, err := builder.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	defer client.Close()

	if client.config.Cache.StaleTTL != time.Minute {
		t.Fatalf("StaleTTL = %v", client.config.Cache.StaleTTL)
	}

	// Later edits to the caller's copy must not reach the built client.
	cfg.Cache.StaleTTL = time.Hour
	if client.config.Cache.StaleTTL != time.Minute {
		t.Fatal("config not cloned at build time")
	}
}
