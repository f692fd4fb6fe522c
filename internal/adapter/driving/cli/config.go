package cli

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the semefoctl configuration, read from
// ~/.config/semefoctl/config.yaml, SEMEFOCTL_* variables and flags.
type Config struct {
	APIBaseURL string        `mapstructure:"api_base_url"`
	DBPath     string        `mapstructure:"db_path"`
	SecretKey  string        `mapstructure:"secret_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Color      string        `mapstructure:"color"`
	Verbose    bool          `mapstructure:"verbose"`
}

// LoadConfig reads the configuration into v. cfgFile overrides the default
// search path; a missing default file is not an error.
func LoadConfig(v *viper.Viper, cfgFile string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	configDir := filepath.Join(home, ".config", "semefoctl")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)
	}

	v.SetEnvPrefix("SEMEFOCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("api_base_url", "http://localhost:8000")
	v.SetDefault("db_path", filepath.Join(configDir, "session.db"))
	v.SetDefault("secret_key", "")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("color", "auto")
	v.SetDefault("verbose", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_base_url %q must be an absolute URL", c.APIBaseURL)
	}
	if c.DBPath == "" {
		return errors.New("db_path must not be empty")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if _, err := c.Key(); err != nil {
		return err
	}
	if _, err := ParseColorMode(c.Color); err != nil {
		return err
	}
	return nil
}

// Key returns the decoded encryption key, or nil when none is configured.
func (c *Config) Key() ([]byte, error) {
	if c.SecretKey == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(c.SecretKey)
	if err != nil || len(key) != 32 {
		return nil, errors.New("secret_key must be 64 hex characters")
	}
	return key, nil
}
