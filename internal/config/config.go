package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything the pipeline needs at startup. All values can be
// supplied via environment variables (CONGRESS_API_KEY, OPENSTATES_API_KEY,
// DATABASE_URL, ARCHIVE_DIR, SLACK_WEBHOOK_URL) or an optional civiclens.yaml
// in the working directory.
type Config struct {
	CongressAPIKey   string `mapstructure:"congress_api_key"`
	OpenStatesAPIKey string `mapstructure:"openstates_api_key"`
	DatabaseURL      string `mapstructure:"database_url"`
	ArchiveDir       string `mapstructure:"archive_dir"`
	SlackWebhookURL  string `mapstructure:"slack_webhook_url"`
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("civiclens")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("archive_dir", "archives")

	// Unmarshal only sees env-backed keys that have been bound explicitly
	for _, key := range []string{
		"congress_api_key",
		"openstates_api_key",
		"database_url",
		"archive_dir",
		"slack_webhook_url",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	// A config file is optional; env-only operation is the common case
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.CongressAPIKey == "" {
		return fmt.Errorf("congress_api_key (CONGRESS_API_KEY) is required")
	}
	if c.OpenStatesAPIKey == "" {
		return fmt.Errorf("openstates_api_key (OPENSTATES_API_KEY) is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("database_url (DATABASE_URL) is required")
	}
	if c.ArchiveDir == "" {
		return fmt.Errorf("archive_dir must not be empty")
	}
	return nil
}
