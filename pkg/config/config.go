package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	xdgAppName = "worklog"
	configFile = "config.json"
)

// Config holds the client-side settings for the calendar integration.
// ClientID is the OAuth client, Account the calendar to read, Project the
// default project name stamped on fetched tasks.
type Config struct {
	ClientID string `json:"client_id"`
	Account  string `json:"account"`
	Project  string `json:"project"`
}

// Environment variables that override the stored configuration.
const (
	EnvClientID = "WORKLOG_CLIENT_ID"
	EnvAccount  = "WORKLOG_ACCOUNT"
	EnvProject  = "WORKLOG_PROJECT"
)

func Path() string {
	return filepath.Join(xdg.ConfigHome, xdgAppName, configFile)
}

// Load reads the config file and applies environment overrides. A missing
// file yields an empty config, not an error.
func Load() (*Config, error) {
	cfg := &Config{}

	f, err := os.Open(Path())
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else {
		defer f.Close()
		if err := json.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvClientID); v != "" {
		c.ClientID = v
	}
	if v := os.Getenv(EnvAccount); v != "" {
		c.Account = v
	}
	if v := os.Getenv(EnvProject); v != "" {
		c.Project = v
	}
}

func Save(cfg *Config) error {
	path := Path()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file for writing: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}
