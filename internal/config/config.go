// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the session token goes to the keyring.
//
// Precedence, lowest first: built-in defaults, config.yaml, .env/.env.local,
// NEWSDESK_* environment variables. Command-line flags are applied by cmd.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"newsdesk/cli/internal/xdg"
)

// DefaultAPIURL is the portal API origin used when nothing else is configured.
const DefaultAPIURL = "http://localhost:3000"

// Config holds non-sensitive CLI settings.
type Config struct {
	APIURL   string        `yaml:"api_url"`
	Timeout  time.Duration `yaml:"timeout"`
	PageSize int           `yaml:"page_size"`
	Log      LogConfig     `yaml:"log"`
	Keyring  KeyringConfig `yaml:"keyring"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console, json
}

// KeyringConfig selects the session store backend.
type KeyringConfig struct {
	// Backend is "auto" (native keyring, then encrypted file) or "file".
	Backend string `yaml:"backend"`
	// Password unlocks the file backend. Never written to disk; env only.
	Password string `yaml:"-"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		APIURL:   DefaultAPIURL,
		Timeout:  15 * time.Second,
		PageSize: 10,
		Log:      LogConfig{Level: "warn", Format: "console"},
		Keyring:  KeyringConfig{Backend: "auto"},
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads configuration from the XDG config file and the environment.
func Load() (Config, error) {
	p, err := Path()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(p)
}

// LoadFrom reads configuration from the given file; a missing file yields defaults.
func LoadFrom(path string) (Config, error) {
	c, err := LoadFile(path)
	if err != nil {
		return c, err
	}

	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	if err := applyEnv(&c); err != nil {
		return c, err
	}
	return c, c.Validate()
}

// LoadFile reads only the config file over the defaults, ignoring the environment.
func LoadFile(path string) (Config, error) {
	c := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return c, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	return c, nil
}

func applyEnv(c *Config) error {
	if v := strings.TrimSpace(os.Getenv("NEWSDESK_API_URL")); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv("NEWSDESK_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("NEWSDESK_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if v := strings.TrimSpace(os.Getenv("NEWSDESK_PAGE_SIZE")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("NEWSDESK_PAGE_SIZE: %w", err)
		}
		c.PageSize = n
	}
	if v := strings.TrimSpace(os.Getenv("NEWSDESK_LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("NEWSDESK_LOG_FORMAT")); v != "" {
		c.Log.Format = v
	}
	if v := strings.TrimSpace(os.Getenv("NEWSDESK_KEYRING_BACKEND")); v != "" {
		c.Keyring.Backend = v
	}
	c.Keyring.Password = os.Getenv("NEWSDESK_KEYRING_PASSWORD")
	return nil
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api_url %q: want http(s)://host[:port]", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid timeout %s", c.Timeout)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("invalid page_size %d", c.PageSize)
	}
	switch c.Keyring.Backend {
	case "auto", "file":
	default:
		return fmt.Errorf("invalid keyring backend %q: want auto or file", c.Keyring.Backend)
	}
	return nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}
