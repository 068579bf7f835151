// Package config provides configuration management for the review pipeline.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrNoBanks                  = errors.New("at least one bank is required")
	ErrBankMissingCode          = errors.New("code is required")
	ErrBankMissingName          = errors.New("name is required")
	ErrBankMissingAppID         = errors.New("app_id is required")
	ErrDuplicateBankCode        = errors.New("duplicate bank code")
	ErrNoEnabledBanks           = errors.New("at least one bank must be enabled")
	ErrInvalidReviewsPerBank    = errors.New("scraping.reviews_per_bank must be at least 1")
	ErrMissingLanguage          = errors.New("scraping.lang is required")
	ErrMissingCountry           = errors.New("scraping.country is required")
	ErrInvalidMaxAttempts       = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("retry.timeout_sec must be at least 1")
	ErrMissingDataDir           = errors.New("paths.data_dir or explicit file paths are required")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete pipeline configuration.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// PipelineConfig contains pipeline-specific settings.
type PipelineConfig struct {
	Paths    PathsConfig    `yaml:"paths"`
	Banks    []BankConfig   `yaml:"banks"`
	Logging  LoggingConfig  `yaml:"logging"`
	Scraping ScrapingConfig `yaml:"scraping"`
	Retry    RetryPolicy    `yaml:"retry"`
}

// BankConfig represents one tracked banking app.
type BankConfig struct {
	Code    string `yaml:"code"`
	Name    string `yaml:"name"`
	AppID   string `yaml:"app_id"`
	Enabled bool   `yaml:"enabled"`
}

// ScrapingConfig defines review collection behavior.
type ScrapingConfig struct {
	BaseURL         string `yaml:"base_url"`
	Lang            string `yaml:"lang"`
	Country         string `yaml:"country"`
	ReviewsPerBank  int    `yaml:"reviews_per_bank"`
	SleepBetweenSec int    `yaml:"sleep_between_sec"`
}

// RetryPolicy defines retry behavior for the review source.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// PathsConfig defines input/output file locations.
type PathsConfig struct {
	DataDir          string `yaml:"data_dir"`
	RawReviews       string `yaml:"raw_reviews"`
	ProcessedReviews string `yaml:"processed_reviews"`
	AppInfo          string `yaml:"app_info"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level         string `yaml:"level"`
	SampleReviews int    `yaml:"sample_reviews"`
	ShowProgress  bool   `yaml:"show_progress"`
}

// LoadConfig loads configuration from YAML file.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	// Check bank list
	if len(c.Pipeline.Banks) == 0 {
		return ErrNoBanks
	}

	enabledCount := 0
	seen := make(map[string]bool)

	for i, bank := range c.Pipeline.Banks {
		if bank.Code == "" {
			return fmt.Errorf("%w: banks[%d]", ErrBankMissingCode, i)
		}

		if bank.Name == "" {
			return fmt.Errorf("%w: banks[%d]", ErrBankMissingName, i)
		}

		if bank.AppID == "" {
			return fmt.Errorf("%w: banks[%d]", ErrBankMissingAppID, i)
		}

		if seen[bank.Code] {
			return fmt.Errorf("%w: %s", ErrDuplicateBankCode, bank.Code)
		}

		seen[bank.Code] = true

		if bank.Enabled {
			enabledCount++
		}
	}

	if enabledCount == 0 {
		return ErrNoEnabledBanks
	}

	// Validate scraping config
	if c.Pipeline.Scraping.ReviewsPerBank < 1 {
		return ErrInvalidReviewsPerBank
	}

	if c.Pipeline.Scraping.Lang == "" {
		return ErrMissingLanguage
	}

	if c.Pipeline.Scraping.Country == "" {
		return ErrMissingCountry
	}

	// Validate retry policy
	if c.Pipeline.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Pipeline.Retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if c.Pipeline.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if c.Pipeline.Retry.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	// Validate paths
	if c.Pipeline.Paths.DataDir == "" &&
		(c.Pipeline.Paths.RawReviews == "" || c.Pipeline.Paths.ProcessedReviews == "") {
		return ErrMissingDataDir
	}

	// Validate logging config
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Pipeline.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// EnabledBanks returns only enabled banks.
func (c *Config) EnabledBanks() []BankConfig {
	var enabled []BankConfig

	for _, bank := range c.Pipeline.Banks {
		if bank.Enabled {
			enabled = append(enabled, bank)
		}
	}

	return enabled
}

// BankNames returns the canonical code -> display name table.
func (c *Config) BankNames() map[string]string {
	names := make(map[string]string, len(c.Pipeline.Banks))

	for _, bank := range c.Pipeline.Banks {
		names[bank.Code] = bank.Name
	}

	return names
}

// NameForCode resolves a bank code to its canonical display name.
// Unknown codes pass through unchanged.
func (c *Config) NameForCode(code string) string {
	for _, bank := range c.Pipeline.Banks {
		if bank.Code == code {
			return bank.Name
		}
	}

	return code
}

// CodeForName performs the inverse lookup from display name to bank code.
func (c *Config) CodeForName(name string) (string, bool) {
	for _, bank := range c.Pipeline.Banks {
		if bank.Name == name {
			return bank.Code, true
		}
	}

	return "", false
}

// AllowedCodes returns the set of bank codes the pipeline recognizes.
func (c *Config) AllowedCodes() map[string]bool {
	allowed := make(map[string]bool, len(c.Pipeline.Banks))

	for _, bank := range c.Pipeline.Banks {
		allowed[bank.Code] = true
	}

	return allowed
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	// Cap at max delay
	if int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the timeout duration.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// RawReviewsPath follows structure: {data_dir}/raw/reviews_raw.csv.
func (c *Config) RawReviewsPath() string {
	if c.Pipeline.Paths.RawReviews != "" {
		return c.Pipeline.Paths.RawReviews
	}

	return filepath.Join(c.Pipeline.Paths.DataDir, "raw", "reviews_raw.csv")
}

// ProcessedReviewsPath follows structure: {data_dir}/processed/reviews_processed.csv.
func (c *Config) ProcessedReviewsPath() string {
	if c.Pipeline.Paths.ProcessedReviews != "" {
		return c.Pipeline.Paths.ProcessedReviews
	}

	return filepath.Join(c.Pipeline.Paths.DataDir, "processed", "reviews_processed.csv")
}

// AppInfoPath follows structure: {data_dir}/raw/app_info.csv.
func (c *Config) AppInfoPath() string {
	if c.Pipeline.Paths.AppInfo != "" {
		return c.Pipeline.Paths.AppInfo
	}

	return filepath.Join(c.Pipeline.Paths.DataDir, "raw", "app_info.csv")
}

// SleepBetweenBanks returns the polite delay between bank fetches.
func (c *Config) SleepBetweenBanks() time.Duration {
	return time.Duration(c.Pipeline.Scraping.SleepBetweenSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Banks: %d, ReviewsPerBank: %d, DataDir: %s}",
		len(c.Pipeline.Banks),
		c.Pipeline.Scraping.ReviewsPerBank,
		c.Pipeline.Paths.DataDir,
	)
}
