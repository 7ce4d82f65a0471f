package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
	Rules    RulesConfig    `mapstructure:"rules" yaml:"rules"`
}

type AnalysisConfig struct {
	ChunkSize int `mapstructure:"chunk_size" yaml:"chunk_size"`
}

type RulesConfig struct {
	DeadStockDays            int `mapstructure:"dead_stock_days" yaml:"dead_stock_days"`
	DeadStockWarningQuantity int `mapstructure:"dead_stock_warning_quantity" yaml:"dead_stock_warning_quantity"`
}

func Load(configPath string) (*Config, error) {
	config := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(".catalogcheck")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return config, nil
}

func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			ChunkSize: 1000,
		},
		Rules: RulesConfig{
			DeadStockDays:            180,
			DeadStockWarningQuantity: 100,
		},
	}
}

func (c *Config) Validate() error {
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	return c.validateRules()
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.ChunkSize <= 0 {
		return fmt.Errorf("analysis.chunk_size must be positive")
	}
	return nil
}

func (c *Config) validateRules() error {
	if c.Rules.DeadStockDays <= 0 {
		return fmt.Errorf("rules.dead_stock_days must be positive")
	}
	if c.Rules.DeadStockWarningQuantity <= 0 {
		return fmt.Errorf("rules.dead_stock_warning_quantity must be positive")
	}
	return nil
}

func (c *Config) Save(path string) error {
	v := viper.New()
	v.SetConfigType("yaml")

	v.Set("analysis", c.Analysis)
	v.Set("rules", c.Rules)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
