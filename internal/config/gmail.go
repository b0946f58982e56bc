// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/perkflow/perkflow/internal/common"
	"github.com/perkflow/perkflow/internal/gmail"
)

// LoadGmailConfig loads Gmail OAuth configuration. Precedence:
// 1. Viper configuration (config file or PERKFLOW_ env vars)
// 2. Direct environment variables (GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET)
// 3. Defaults (token file under the user config dir)
func LoadGmailConfig() (*gmail.OAuth2Config, error) {
	config := gmail.OAuth2Config{}

	if v := viper.GetString("gmail.client_id"); v != "" {
		config.ClientID = v
	}
	if v := viper.GetString("gmail.client_secret"); v != "" {
		config.ClientSecret = v
	}
	if v := viper.GetString("gmail.token_file"); v != "" {
		config.TokenFile = ExpandPath(v)
	}

	if config.ClientID == "" {
		config.ClientID = os.Getenv("GOOGLE_CLIENT_ID")
	}
	if config.ClientSecret == "" {
		config.ClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	}
	if config.TokenFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		config.TokenFile = home + "/.config/perkflow/token.json"
	}

	if config.ClientID == "" || config.ClientSecret == "" {
		return nil, fmt.Errorf("%w: gmail client_id and client_secret are required", common.ErrMissingConfig)
	}

	return &config, nil
}

// DatabasePath returns the SQLite database path, from configuration or the
// default under the user data dir.
func DatabasePath() (string, error) {
	if v := viper.GetString("database.path"); v != "" {
		return ExpandPath(v), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return home + "/.local/share/perkflow/perkflow.db", nil
}
