package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()

	// Set defaults from DefaultConfig
	setDefaults(v, cfg)

	// Read from config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			// Config file not found is ok - we use defaults and env vars
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	// Read from environment variables
	v.SetEnvPrefix("SCREEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal into config struct
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	// Server defaults
	v.SetDefault("server.host", cfg.Server.Host)
	v.SetDefault("server.port", cfg.Server.Port)
	v.SetDefault("server.read_timeout", cfg.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", cfg.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", cfg.Server.ShutdownTimeout)

	// Database defaults
	v.SetDefault("database.enabled", cfg.Database.Enabled)
	v.SetDefault("database.host", cfg.Database.Host)
	v.SetDefault("database.port", cfg.Database.Port)
	v.SetDefault("database.user", cfg.Database.User)
	v.SetDefault("database.name", cfg.Database.Name)
	v.SetDefault("database.ssl_mode", cfg.Database.SSLMode)

	// Redis defaults
	v.SetDefault("redis.enabled", cfg.Redis.Enabled)
	v.SetDefault("redis.host", cfg.Redis.Host)
	v.SetDefault("redis.port", cfg.Redis.Port)
	v.SetDefault("redis.db", cfg.Redis.DB)
	v.SetDefault("redis.pool_size", cfg.Redis.PoolSize)
	v.SetDefault("redis.country_ttl", cfg.Redis.CountryTTL)

	// Geo defaults
	v.SetDefault("geo.table_path", cfg.Geo.TablePath)
	v.SetDefault("geo.neighbor_same_region", cfg.Geo.NeighborSameRegion)
	v.SetDefault("geo.neighbor_cross_region", cfg.Geo.NeighborCrossRegion)
	v.SetDefault("geo.same_region", cfg.Geo.SameRegion)
	v.SetDefault("geo.cross_region", cfg.Geo.CrossRegion)
	v.SetDefault("geo.unknown_country", cfg.Geo.UnknownCountry)

	// Velocity defaults
	v.SetDefault("velocity.horizon", cfg.Velocity.Horizon)
	v.SetDefault("velocity.max_entries", cfg.Velocity.MaxEntries)

	// Rule defaults
	v.SetDefault("rules.large_transaction_enabled", cfg.Rules.LargeTransactionEnabled)
	v.SetDefault("rules.large_transaction_threshold", cfg.Rules.LargeTransactionThreshold)
	v.SetDefault("rules.high_frequency_enabled", cfg.Rules.HighFrequencyEnabled)
	v.SetDefault("rules.high_frequency_max", cfg.Rules.HighFrequencyMax)
	v.SetDefault("rules.high_frequency_window", cfg.Rules.HighFrequencyWindow)
	v.SetDefault("rules.rapid_movement_enabled", cfg.Rules.RapidMovementEnabled)
	v.SetDefault("rules.rapid_movement_sum_threshold", cfg.Rules.RapidMovementSumThreshold)
	v.SetDefault("rules.rapid_movement_window", cfg.Rules.RapidMovementWindow)
	v.SetDefault("rules.high_risk_country_enabled", cfg.Rules.HighRiskCountryEnabled)
	v.SetDefault("rules.high_risk_country_block", cfg.Rules.HighRiskCountryBlock)

	// Batch defaults
	v.SetDefault("batch.max_rows", cfg.Batch.MaxRows)
	v.SetDefault("batch.workers", cfg.Batch.Workers)
	v.SetDefault("batch.row_timeout", cfg.Batch.RowTimeout)

	// Screening defaults
	v.SetDefault("screening.analysis_timeout", cfg.Screening.AnalysisTimeout)
	v.SetDefault("screening.resolve_timeout", cfg.Screening.ResolveTimeout)
}
