package config

import (
	"testing"

	"github.com/talentsift/talentsift/internal/models"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing candidates dir", func(c *Config) { c.Storage.CandidatesDir = "" }},
		{"missing attachments dir", func(c *Config) { c.Storage.AttachmentsDir = "" }},
		{"weights do not sum to one", func(c *Config) { c.Scoring.ModelWeight = 0.9 }},
		{"negative weight", func(c *Config) {
			c.Scoring.ModelWeight = 1.4
			c.Scoring.KeywordWeight = -0.4
		}},
		{"negative threshold", func(c *Config) { c.Scoring.PassThreshold = -1 }},
		{"threshold above scale", func(c *Config) { c.Scoring.PassThreshold = 101 }},
		{"zero interval", func(c *Config) { c.Ingestion.IntervalSeconds = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if _, ok := err.(*models.ConfigurationError); !ok {
				t.Errorf("error type = %T, want *ConfigurationError", err)
			}
		})
	}
}

func TestValidateWeightTolerance(t *testing.T) {
	cfg := Default()
	cfg.Scoring.ModelWeight = 0.601
	cfg.Scoring.KeywordWeight = 0.4
	if err := cfg.Validate(); err != nil {
		t.Errorf("weights within epsilon rejected: %v", err)
	}
}
