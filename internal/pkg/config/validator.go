package config

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Validate validates the configuration. Invalid config is a startup
// failure: the engine refuses to run with out-of-band scores or
// non-positive thresholds rather than screening with garbage.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	if err := c.validateGeo(); err != nil {
		return err
	}
	if err := c.validateRules(); err != nil {
		return err
	}

	if c.Velocity.Horizon <= 0 {
		return errors.New("velocity horizon must be positive")
	}
	if c.Batch.MaxRows <= 0 {
		return errors.New("batch max_rows must be positive")
	}
	if c.Batch.Workers <= 0 {
		return errors.New("batch workers must be positive")
	}
	if c.Batch.RowTimeout <= 0 {
		return errors.New("batch row_timeout must be positive")
	}
	if c.Screening.AnalysisTimeout <= 0 {
		return errors.New("screening analysis_timeout must be positive")
	}

	return nil
}

func (c *Config) validateGeo() error {
	for name, score := range map[string]int{
		"neighbor_same_region":  c.Geo.NeighborSameRegion,
		"neighbor_cross_region": c.Geo.NeighborCrossRegion,
	} {
		if score < 20 || score > 30 {
			return fmt.Errorf("geo %s must be between 20 and 30, got %d", name, score)
		}
	}
	for name, score := range map[string]int{
		"same_region":     c.Geo.SameRegion,
		"cross_region":    c.Geo.CrossRegion,
		"unknown_country": c.Geo.UnknownCountry,
	} {
		if score < 50 || score > 70 {
			return fmt.Errorf("geo %s must be between 50 and 70, got %d", name, score)
		}
	}
	return nil
}

func (c *Config) validateRules() error {
	if c.Rules.LargeTransactionEnabled {
		if d, err := decimal.NewFromString(c.Rules.LargeTransactionThreshold); err != nil || !d.IsPositive() {
			return fmt.Errorf("rules large_transaction_threshold must be a positive decimal, got %q", c.Rules.LargeTransactionThreshold)
		}
	}
	if c.Rules.HighFrequencyEnabled {
		if c.Rules.HighFrequencyMax <= 0 {
			return errors.New("rules high_frequency_max must be positive")
		}
		if c.Rules.HighFrequencyWindow <= 0 {
			return errors.New("rules high_frequency_window must be positive")
		}
	}
	if c.Rules.RapidMovementEnabled {
		if d, err := decimal.NewFromString(c.Rules.RapidMovementSumThreshold); err != nil || !d.IsPositive() {
			return fmt.Errorf("rules rapid_movement_sum_threshold must be a positive decimal, got %q", c.Rules.RapidMovementSumThreshold)
		}
		if c.Rules.RapidMovementWindow <= 0 {
			return errors.New("rules rapid_movement_window must be positive")
		}
	}
	return nil
}
