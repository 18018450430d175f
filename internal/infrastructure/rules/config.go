package rules

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds the thresholds and toggles for every detection rule.
// Rules are data-driven: behavior changes through config, not code.
type Config struct {
	LargeTransaction LargeTransactionConfig `mapstructure:"large_transaction"`
	HighFrequency    HighFrequencyConfig    `mapstructure:"high_frequency"`
	RapidMovement    RapidMovementConfig    `mapstructure:"rapid_movement"`
	HighRiskCountry  HighRiskCountryConfig  `mapstructure:"high_risk_country"`
}

// LargeTransactionConfig parameterizes the single-amount threshold rule
type LargeTransactionConfig struct {
	Enabled   bool            `mapstructure:"enabled"`
	Threshold decimal.Decimal `mapstructure:"threshold"`
}

// HighFrequencyConfig parameterizes the transaction-count velocity rule
type HighFrequencyConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	MaxTransactions int           `mapstructure:"max_transactions"`
	Window          time.Duration `mapstructure:"window"`
}

// RapidMovementConfig parameterizes the short-window amount velocity rule
type RapidMovementConfig struct {
	Enabled      bool            `mapstructure:"enabled"`
	SumThreshold decimal.Decimal `mapstructure:"sum_threshold"`
	Window       time.Duration   `mapstructure:"window"`
}

// HighRiskCountryConfig parameterizes the sanctioned-jurisdiction rule
type HighRiskCountryConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Block   bool `mapstructure:"block"`
}

// DefaultConfig returns the standard rule parameters with every rule enabled
func DefaultConfig() Config {
	return Config{
		LargeTransaction: LargeTransactionConfig{
			Enabled:   true,
			Threshold: decimal.NewFromInt(10000),
		},
		HighFrequency: HighFrequencyConfig{
			Enabled:         true,
			MaxTransactions: 10,
			Window:          60 * time.Minute,
		},
		RapidMovement: RapidMovementConfig{
			Enabled:      true,
			SumThreshold: decimal.NewFromInt(10000),
			Window:       30 * time.Minute,
		},
		HighRiskCountry: HighRiskCountryConfig{
			Enabled: true,
			Block:   true,
		},
	}
}

// Validate checks that thresholds are usable. Invalid rule config is a
// startup failure, never a silent fallback.
func (c Config) Validate() error {
	if c.LargeTransaction.Enabled && !c.LargeTransaction.Threshold.IsPositive() {
		return fmt.Errorf("large_transaction threshold must be positive, got %s", c.LargeTransaction.Threshold)
	}
	if c.HighFrequency.Enabled {
		if c.HighFrequency.MaxTransactions <= 0 {
			return fmt.Errorf("high_frequency max_transactions must be positive, got %d", c.HighFrequency.MaxTransactions)
		}
		if c.HighFrequency.Window <= 0 {
			return fmt.Errorf("high_frequency window must be positive, got %s", c.HighFrequency.Window)
		}
	}
	if c.RapidMovement.Enabled {
		if !c.RapidMovement.SumThreshold.IsPositive() {
			return fmt.Errorf("rapid_movement sum_threshold must be positive, got %s", c.RapidMovement.SumThreshold)
		}
		if c.RapidMovement.Window <= 0 {
			return fmt.Errorf("rapid_movement window must be positive, got %s", c.RapidMovement.Window)
		}
	}
	return nil
}
