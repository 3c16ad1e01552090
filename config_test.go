package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		bind:          "0.0.0.0",
		port:          8080,
		jwtSecret:     "secret",
		jwtLifetime:   time.Hour,
		questionsURL:  "https://opentdb.com/api.php?amount=10&category=21",
		questionDelay: 2 * time.Second,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"port too low", func(c *Config) { c.port = 0 }, true},
		{"port too high", func(c *Config) { c.port = 65536 }, true},
		{"missing jwt secret", func(c *Config) { c.jwtSecret = "" }, true},
		{"missing questions url", func(c *Config) { c.questionsURL = "" }, true},
		{"negative question delay", func(c *Config) { c.questionDelay = -time.Second }, true},
		{"tls cert without key", func(c *Config) { c.tlsCert = "cert.pem" }, true},
		{"tls key without cert", func(c *Config) { c.tlsKey = "key.pem" }, true},
		{"tls pair", func(c *Config) { c.tlsCert, c.tlsKey = "cert.pem", "key.pem" }, false},
		{"zero question delay", func(c *Config) { c.questionDelay = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
