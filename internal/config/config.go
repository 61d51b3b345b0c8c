// Package config resolves CLI configuration. Precedence, highest first:
// command-line flags (applied by cmd/t8), T8_* environment variables, an
// optional t8.yaml config file, built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds the connection settings shared by every subcommand.
type Config struct {
	Host     string        `mapstructure:"host"`
	User     string        `mapstructure:"user"`
	Passw    string        `mapstructure:"passw"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Insecure bool          `mapstructure:"insecure"`
}

// Load reads environment variables and the optional config file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("t8")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "t8"))
	}

	v.SetEnvPrefix("t8")
	v.AutomaticEnv()

	v.SetDefault("host", "http://localhost")
	v.SetDefault("user", "admin")
	v.SetDefault("passw", "")
	v.SetDefault("timeout", "5s")
	v.SetDefault("insecure", false)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("host must not be empty")
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive")
	}
	return &cfg, nil
}
