// Package config defines the typed application configuration loaded
// via viper from file, environment, and flags.
package config

import (
	"fmt"
	"math"

	"github.com/talentsift/talentsift/internal/models"
)

// Config holds application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Gmail     GmailConfig     `mapstructure:"gmail"`
	Model     ModelConfig     `mapstructure:"model"`
	Enrich    EnrichConfig    `mapstructure:"enrich"`
	Scoring   ScoringConfig   `mapstructure:"scoring"`
	Ingestion IngestionConfig `mapstructure:"ingestion"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type StorageConfig struct {
	CandidatesDir  string `mapstructure:"candidates_dir"`
	AttachmentsDir string `mapstructure:"attachments_dir"`
}

type GmailConfig struct {
	CredentialsPath string `mapstructure:"credentials_path"`
	TokenPath       string `mapstructure:"token_path"`
	Filter          string `mapstructure:"filter"`
}

type ModelConfig struct {
	Project  string `mapstructure:"project"`
	Location string `mapstructure:"location"`
	Name     string `mapstructure:"name"`
}

type EnrichConfig struct {
	ExternalURL string `mapstructure:"external_url"`
}

type ScoringConfig struct {
	ModelWeight   float64 `mapstructure:"model_weight"`
	KeywordWeight float64 `mapstructure:"keyword_weight"`
	PassThreshold float64 `mapstructure:"pass_threshold"`
}

type IngestionConfig struct {
	IntervalSeconds int `mapstructure:"interval_seconds"`
	MaxItems        int `mapstructure:"max_items"`
	MaxWorkers      int `mapstructure:"max_workers"`
}

// Default returns a config with working local defaults; only the model
// project must be supplied for semantic scoring.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Storage: StorageConfig{
			CandidatesDir:  "data/candidates",
			AttachmentsDir: "data/attachments",
		},
		Gmail: GmailConfig{
			CredentialsPath: "credentials.json",
			TokenPath:       "token.json",
		},
		Model: ModelConfig{
			Location: "us-central1",
			Name:     "gemini-1.5-flash",
		},
		Scoring: ScoringConfig{
			ModelWeight:   0.6,
			KeywordWeight: 0.4,
			PassThreshold: 70,
		},
		Ingestion: IngestionConfig{
			IntervalSeconds: 300,
			MaxItems:        10,
			MaxWorkers:      4,
		},
	}
}

// Validate rejects configurations the pipeline cannot run with.
func (c Config) Validate() error {
	if c.Storage.CandidatesDir == "" {
		return &models.ConfigurationError{Reason: "storage.candidates_dir is required"}
	}
	if c.Storage.AttachmentsDir == "" {
		return &models.ConfigurationError{Reason: "storage.attachments_dir is required"}
	}
	if c.Scoring.ModelWeight < 0 || c.Scoring.KeywordWeight < 0 {
		return &models.ConfigurationError{
			Reason: fmt.Sprintf("scoring weights must be non-negative, got %.4f/%.4f",
				c.Scoring.ModelWeight, c.Scoring.KeywordWeight),
		}
	}
	if sum := c.Scoring.ModelWeight + c.Scoring.KeywordWeight; math.Abs(sum-1.0) > 0.01 {
		return &models.ConfigurationError{
			Reason: fmt.Sprintf("scoring weights must sum to 1.0, got %.4f", sum),
		}
	}
	if c.Scoring.PassThreshold < 0 || c.Scoring.PassThreshold > 100 {
		return &models.ConfigurationError{Reason: "scoring.pass_threshold must be within 0-100"}
	}
	if c.Ingestion.IntervalSeconds <= 0 {
		return &models.ConfigurationError{Reason: "ingestion.interval_seconds must be positive"}
	}
	return nil
}
