package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		Directory    string `mapstructure:"directory" yaml:"directory"`
		RuleFile     string `mapstructure:"rule_file" yaml:"rule_file"`
		CategoryFile string `mapstructure:"category_file" yaml:"category_file"`
		PatternFile  string `mapstructure:"pattern_file" yaml:"pattern_file"`
	} `mapstructure:"data" yaml:"data"`

	Report struct {
		OutputDirectory string `mapstructure:"output_directory" yaml:"output_directory"`
		Threshold       string `mapstructure:"threshold" yaml:"threshold"`
	} `mapstructure:"report" yaml:"report"`

	Categorization struct {
		DefaultCategory string `mapstructure:"default_category" yaml:"default_category"`
	} `mapstructure:"categorization" yaml:"categorization"`
}

// InitializeConfig loads configuration with hierarchical precedence:
// defaults, then an optional config.yaml, then SPEND_-prefixed environment
// variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.spend-report")
	v.AddConfigPath(".spend-report")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SPEND")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.directory", "data")
	v.SetDefault("data.rule_file", "category_rules.csv")
	v.SetDefault("data.category_file", "categories.csv")
	v.SetDefault("data.pattern_file", "")

	v.SetDefault("report.output_directory", ".")
	v.SetDefault("report.threshold", "200")

	v.SetDefault("categorization.default_category", "Shopping & Retail")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	threshold, err := decimal.NewFromString(config.Report.Threshold)
	if err != nil {
		return fmt.Errorf("invalid report threshold: %s", config.Report.Threshold)
	}
	if threshold.IsNegative() {
		return fmt.Errorf("report threshold must not be negative, got: %s", config.Report.Threshold)
	}

	if config.Categorization.DefaultCategory == "" {
		return fmt.Errorf("categorization.default_category must not be empty")
	}
	return nil
}

// Threshold returns the large-transaction threshold as a decimal. The value
// is validated at load time, so this cannot fail afterwards.
func (c *Config) Threshold() decimal.Decimal {
	return decimal.RequireFromString(c.Report.Threshold)
}

// RulePath returns the location of the rule store file.
func (c *Config) RulePath() string {
	return filepath.Join(c.Data.Directory, c.Data.RuleFile)
}

// CategoryPath returns the location of the category store file.
func (c *Config) CategoryPath() string {
	return filepath.Join(c.Data.Directory, c.Data.CategoryFile)
}

// ConfigureLoggingFromConfig configures a logger from the loaded Config.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
