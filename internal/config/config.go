package config

import (
	"os"
	"strconv"

	"gocorrnet/domain/stats"
	"gocorrnet/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Correlation  CorrelationConfig
	Strength     StrengthConfig
	Significance SignificanceConfig
	LogLevel     string
}

// CorrelationConfig holds correlation engine settings
type CorrelationConfig struct {
	Method     stats.CorrelationMethod
	Adjustment stats.AdjustmentMethod
	Workers    int // 0 = one per CPU
	MaxPairs   int // 0 = unlimited
}

// StrengthConfig holds defaults for the r-threshold network builder
type StrengthConfig struct {
	MinVal  float64
	Cooccur bool
}

// SignificanceConfig holds defaults for the p-threshold network builder
type SignificanceConfig struct {
	MaxVal   float64
	MaxParam stats.Column
}

// Default returns the configuration used when no environment is set
func Default() *Config {
	return &Config{
		Correlation: CorrelationConfig{
			Method:     stats.DefaultCorrelationMethod,
			Adjustment: stats.DefaultAdjustmentMethod,
		},
		Strength: StrengthConfig{
			MinVal:  0.75,
			Cooccur: false,
		},
		Significance: SignificanceConfig{
			MaxVal:   0.05,
			MaxParam: stats.ColumnPAdjusted,
		},
		LogLevel: "INFO",
	}
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := Default()

	correlation, err := loadCorrelationConfig(config.Correlation)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load correlation configuration")
	}
	config.Correlation = *correlation

	significance, err := loadSignificanceConfig(config.Significance)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load significance configuration")
	}
	config.Significance = *significance

	config.Strength = StrengthConfig{
		MinVal:  getEnvFloatOrDefault("MIN_VAL", config.Strength.MinVal),
		Cooccur: getEnvBoolOrDefault("COOCCUR", config.Strength.Cooccur),
	}
	config.LogLevel = getEnvOrDefault("LOG_LEVEL", config.LogLevel)

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadCorrelationConfig(defaults CorrelationConfig) (*CorrelationConfig, error) {
	method, err := stats.ParseCorrelationMethod(getEnvOrDefault("CORR_METHOD", string(defaults.Method)))
	if err != nil {
		return nil, err
	}

	adjustment, err := stats.ParseAdjustmentMethod(getEnvOrDefault("P_ADJUSTMENT_METHOD", string(defaults.Adjustment)))
	if err != nil {
		return nil, err
	}

	return &CorrelationConfig{
		Method:     method,
		Adjustment: adjustment,
		Workers:    getEnvIntOrDefault("CORR_WORKERS", defaults.Workers),
		MaxPairs:   getEnvIntOrDefault("CORR_MAX_PAIRS", defaults.MaxPairs),
	}, nil
}

func loadSignificanceConfig(defaults SignificanceConfig) (*SignificanceConfig, error) {
	column, err := stats.ParseColumn(getEnvOrDefault("MAX_PARAM", string(defaults.MaxParam)))
	if err != nil {
		return nil, err
	}

	return &SignificanceConfig{
		MaxVal:   getEnvFloatOrDefault("MAX_VAL", defaults.MaxVal),
		MaxParam: column,
	}, nil
}

func validateConfig(config *Config) error {
	if config.Correlation.Workers < 0 {
		return errors.ConfigInvalid("CORR_WORKERS must not be negative")
	}
	if config.Correlation.MaxPairs < 0 {
		return errors.ConfigInvalid("CORR_MAX_PAIRS must not be negative")
	}
	return nil
}

// Warnings lists settings that are accepted but probably unintended.
// Thresholds are compared against their absolute value, so a negative
// threshold behaves like its positive counterpart.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.Strength.MinVal < 0 || c.Strength.MinVal > 1 {
		warnings = append(warnings, "MIN_VAL outside [0,1]; its absolute value is used as the threshold")
	}
	if c.Significance.MaxVal < 0 || c.Significance.MaxVal > 1 {
		warnings = append(warnings, "MAX_VAL outside [0,1]; its absolute value is used as the threshold")
	}
	if c.Significance.MaxParam == stats.ColumnPAdjusted && !c.Correlation.Adjustment.Enabled() {
		warnings = append(warnings, "MAX_PARAM=p_adjusted with P_ADJUSTMENT_METHOD=none; significance networks will fail")
	}
	return warnings
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
