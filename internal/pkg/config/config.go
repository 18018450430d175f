package config

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Geo       GeoConfig       `mapstructure:"geo"`
	Velocity  VelocityConfig  `mapstructure:"velocity"`
	Rules     RulesConfig     `mapstructure:"rules"`
	Batch     BatchConfig     `mapstructure:"batch"`
	Screening ScreeningConfig `mapstructure:"screening"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds PostgreSQL configuration. Enabled=false runs the
// engine without an audit store.
type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// RedisConfig holds Redis configuration. Enabled=false disables the
// country resolution cache.
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CountryTTL   time.Duration `mapstructure:"country_ttl"`
}

// GeoConfig holds the country table source and scoring bands
type GeoConfig struct {
	// TablePath points at a JSON country table; empty uses the built-in
	// dataset.
	TablePath string `mapstructure:"table_path"`

	// Band scores. Neighbor scores must lie in [20,30], region and
	// unknown scores in [50,70].
	NeighborSameRegion  int `mapstructure:"neighbor_same_region"`
	NeighborCrossRegion int `mapstructure:"neighbor_cross_region"`
	SameRegion          int `mapstructure:"same_region"`
	CrossRegion         int `mapstructure:"cross_region"`
	UnknownCountry      int `mapstructure:"unknown_country"`
}

// VelocityConfig holds rolling-window limits
type VelocityConfig struct {
	Horizon    time.Duration `mapstructure:"horizon"`
	MaxEntries int           `mapstructure:"max_entries"`
}

// RulesConfig holds detection rule parameters. Decimal thresholds are
// strings for YAML compatibility.
type RulesConfig struct {
	LargeTransactionEnabled   bool   `mapstructure:"large_transaction_enabled"`
	LargeTransactionThreshold string `mapstructure:"large_transaction_threshold"`

	HighFrequencyEnabled bool          `mapstructure:"high_frequency_enabled"`
	HighFrequencyMax     int           `mapstructure:"high_frequency_max"`
	HighFrequencyWindow  time.Duration `mapstructure:"high_frequency_window"`

	RapidMovementEnabled      bool          `mapstructure:"rapid_movement_enabled"`
	RapidMovementSumThreshold string        `mapstructure:"rapid_movement_sum_threshold"`
	RapidMovementWindow       time.Duration `mapstructure:"rapid_movement_window"`

	HighRiskCountryEnabled bool `mapstructure:"high_risk_country_enabled"`
	HighRiskCountryBlock   bool `mapstructure:"high_risk_country_block"`
}

// GetLargeTransactionThreshold returns the threshold as decimal
func (c *RulesConfig) GetLargeTransactionThreshold() decimal.Decimal {
	d, err := decimal.NewFromString(c.LargeTransactionThreshold)
	if err != nil {
		return decimal.NewFromInt(10000)
	}
	return d
}

// GetRapidMovementSumThreshold returns the sum threshold as decimal
func (c *RulesConfig) GetRapidMovementSumThreshold() decimal.Decimal {
	d, err := decimal.NewFromString(c.RapidMovementSumThreshold)
	if err != nil {
		return decimal.NewFromInt(10000)
	}
	return d
}

// BatchConfig holds batch screening limits
type BatchConfig struct {
	MaxRows    int           `mapstructure:"max_rows"`
	Workers    int           `mapstructure:"workers"`
	RowTimeout time.Duration `mapstructure:"row_timeout"`
}

// ScreeningConfig holds per-request timeouts
type ScreeningConfig struct {
	AnalysisTimeout time.Duration `mapstructure:"analysis_timeout"`
	ResolveTimeout  time.Duration `mapstructure:"resolve_timeout"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Enabled:         false,
			Host:            "localhost",
			Port:            5432,
			User:            "screening_user",
			Password:        "",
			Name:            "screening",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: RedisConfig{
			Enabled:      false,
			Host:         "localhost",
			Port:         6379,
			Password:     "",
			DB:           0,
			PoolSize:     10,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			CountryTTL:   time.Hour,
		},
		Geo: GeoConfig{
			TablePath:           "",
			NeighborSameRegion:  20,
			NeighborCrossRegion: 25,
			SameRegion:          50,
			CrossRegion:         60,
			UnknownCountry:      65,
		},
		Velocity: VelocityConfig{
			Horizon:    24 * time.Hour,
			MaxEntries: 1000,
		},
		Rules: RulesConfig{
			LargeTransactionEnabled:   true,
			LargeTransactionThreshold: "10000",
			HighFrequencyEnabled:      true,
			HighFrequencyMax:          10,
			HighFrequencyWindow:       60 * time.Minute,
			RapidMovementEnabled:      true,
			RapidMovementSumThreshold: "10000",
			RapidMovementWindow:       30 * time.Minute,
			HighRiskCountryEnabled:    true,
			HighRiskCountryBlock:      true,
		},
		Batch: BatchConfig{
			MaxRows:    50000,
			Workers:    8,
			RowTimeout: 5 * time.Second,
		},
		Screening: ScreeningConfig{
			AnalysisTimeout: 5 * time.Second,
			ResolveTimeout:  2 * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
