// Package config loads the tool configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by all commands.
type Config struct {
	Rates   RatesConfig   `yaml:"rates"`
	Tax     TaxConfig     `yaml:"tax"`
	Ledger  LedgerConfig  `yaml:"ledger"`
	Journal JournalConfig `yaml:"journal"`
}

// RatesConfig configures the exchange-rate source.
type RatesConfig struct {
	// Currency is the ISO code of the foreign currency quoted against BRL.
	Currency string `yaml:"currency"`
	// BaseURL overrides the public quote service endpoint.
	BaseURL string `yaml:"base_url,omitempty"`
	// MaxFallbackDays bounds the backward walk over non-business days.
	MaxFallbackDays int `yaml:"max_fallback_days"`
}

// TaxConfig configures the profit computation.
type TaxConfig struct {
	// Rate is the flat tax rate applied to realized profit, e.g. "0.15".
	Rate string `yaml:"rate"`
}

// LedgerConfig names the ledger files the commands read and write.
type LedgerConfig struct {
	Path        string `yaml:"path"`
	ArchiveDir  string `yaml:"archive_dir,omitempty"`
	PurchaseCSV string `yaml:"purchase_csv,omitempty"`
	SaleCSV     string `yaml:"sale_csv,omitempty"`
}

// JournalConfig configures the optional run journal.
type JournalConfig struct {
	DBPath string `yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a YAML file. Missing fields fall
// back to defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Load looks for the given config file; a missing file is not an error
// and yields the defaults.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return LoadFromFile(path)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Rates.Currency == "" {
		return fmt.Errorf("rates.currency is required")
	}
	if c.Rates.MaxFallbackDays <= 0 {
		return fmt.Errorf("rates.max_fallback_days must be positive")
	}
	rate, err := decimal.NewFromString(c.Tax.Rate)
	if err != nil {
		return fmt.Errorf("tax.rate: %w", err)
	}
	if rate.IsNegative() {
		return fmt.Errorf("tax.rate must not be negative")
	}
	if c.Ledger.Path == "" {
		return fmt.Errorf("ledger.path is required")
	}
	return nil
}

// TaxRate returns the parsed tax rate. Call Validate first.
func (c *Config) TaxRate() decimal.Decimal {
	return decimal.RequireFromString(c.Tax.Rate)
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Rates: RatesConfig{
			Currency:        "EUR",
			MaxFallbackDays: 10,
		},
		Tax: TaxConfig{
			Rate: "0.15",
		},
		Ledger: LedgerConfig{
			Path:       "ledger.jsonl",
			ArchiveDir: "archive",
		},
	}
}
