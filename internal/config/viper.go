// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment override, e.g. FINTRACK_LOG_LEVEL.
const EnvPrefix = "FINTRACK"

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DataConfig locates the store files. Relative file names are resolved
// against Directory.
type DataConfig struct {
	Directory       string `mapstructure:"directory" yaml:"directory"`
	Transactions    string `mapstructure:"transactions" yaml:"transactions"`
	PaymentMethods  string `mapstructure:"payment_methods" yaml:"payment_methods"`
	Wallet          string `mapstructure:"wallet" yaml:"wallet"`
	PlannedPayments string `mapstructure:"planned_payments" yaml:"planned_payments"`
	Appointments    string `mapstructure:"appointments" yaml:"appointments"`
	Account         string `mapstructure:"account" yaml:"account"`
}

// PaymentMethodsConfig seeds the registry on first start.
type PaymentMethodsConfig struct {
	Defaults []string `mapstructure:"defaults" yaml:"defaults"`
}

// PlannerConfig holds the look-ahead for upcoming entries.
type PlannerConfig struct {
	WindowDays int `mapstructure:"window_days" yaml:"window_days"`
}

// ExportConfig controls CSV export.
type ExportConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// Config represents the complete application configuration
type Config struct {
	Log            LogConfig            `mapstructure:"log" yaml:"log"`
	Data           DataConfig           `mapstructure:"data" yaml:"data"`
	PaymentMethods PaymentMethodsConfig `mapstructure:"payment_methods" yaml:"payment_methods"`
	Planner        PlannerConfig        `mapstructure:"planner" yaml:"planner"`
	Export         ExportConfig         `mapstructure:"export" yaml:"export"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading.
// configFile, when not empty, replaces the search of the standard locations.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.fintrack")
		v.AddConfigPath(".fintrack")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Data defaults
	v.SetDefault("data.directory", "data")
	v.SetDefault("data.transactions", "transactions.json")
	v.SetDefault("data.payment_methods", "payment_methods.yaml")
	v.SetDefault("data.wallet", "wallet.yaml")
	v.SetDefault("data.planned_payments", "planned_payments.yaml")
	v.SetDefault("data.appointments", "appointments.yaml")
	v.SetDefault("data.account", "account.yaml")

	v.SetDefault("payment_methods.defaults", []string{"Credit Card", "Debit Card", "Bank Transfer"})
	v.SetDefault("planner.window_days", 7)
	v.SetDefault("export.delimiter", ",")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len([]rune(config.Export.Delimiter)) != 1 {
		return fmt.Errorf("export delimiter must be a single character, got: %s", config.Export.Delimiter)
	}

	if config.Planner.WindowDays < 0 {
		return fmt.Errorf("planner.window_days must not be negative, got: %d", config.Planner.WindowDays)
	}

	if config.Data.Transactions == "" {
		return fmt.Errorf("data.transactions must not be empty")
	}

	return nil
}

// DataPath resolves a store file name against the data directory.
func (c *Config) DataPath(name string) string {
	if filepath.IsAbs(name) || c.Data.Directory == "" {
		return name
	}
	return filepath.Join(c.Data.Directory, name)
}

// DelimiterRune returns the export delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	r := []rune(c.Export.Delimiter)
	if len(r) == 0 {
		return ','
	}
	return r[0]
}
