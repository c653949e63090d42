// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv isolates a test from the caller's NEWSDESK_* variables and .env files.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"NEWSDESK_API_URL", "NEWSDESK_TIMEOUT", "NEWSDESK_PAGE_SIZE",
		"NEWSDESK_LOG_LEVEL", "NEWSDESK_LOG_FORMAT",
		"NEWSDESK_KEYRING_BACKEND", "NEWSDESK_KEYRING_PASSWORD",
	} {
		// Setenv registers the restore; Unsetenv lets godotenv fill the key.
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	c, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), c)
}

func TestLoadFromFileThenEnv(t *testing.T) {
	clearEnv(t)

	p := filepath.Join(t.TempDir(), "config.yaml")
	body := "api_url: https://portal.example.com\ntimeout: 5s\npage_size: 25\nlog:\n  level: info\n"
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

	t.Setenv("NEWSDESK_PAGE_SIZE", "50")
	t.Setenv("NEWSDESK_KEYRING_PASSWORD", "hunter2")

	c, err := LoadFrom(p)
	require.NoError(t, err)
	assert.Equal(t, "https://portal.example.com", c.APIURL)
	assert.Equal(t, 5*time.Second, c.Timeout)
	assert.Equal(t, 50, c.PageSize)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "console", c.Log.Format)
	assert.Equal(t, "hunter2", c.Keyring.Password)
}

func TestLoadFromDotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.WriteFile(".env", []byte("NEWSDESK_API_URL=http://127.0.0.1:8080\n"), 0o600))

	c, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080", c.APIURL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "no scheme", mutate: func(c *Config) { c.APIURL = "localhost:3000" }, wantErr: true},
		{name: "ftp scheme", mutate: func(c *Config) { c.APIURL = "ftp://portal" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }, wantErr: true},
		{name: "zero page size", mutate: func(c *Config) { c.PageSize = 0 }, wantErr: true},
		{name: "unknown keyring", mutate: func(c *Config) { c.Keyring.Backend = "vault" }, wantErr: true},
		{name: "file keyring", mutate: func(c *Config) { c.Keyring.Backend = "file" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Defaults()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveThenLoadFileIgnoresEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NEWSDESK_KEYRING_PASSWORD", "hunter2")

	c := Defaults()
	c.APIURL = "https://portal.example.com"
	c.Keyring.Password = "hunter2"
	require.NoError(t, Save(c))

	p, err := Path()
	require.NoError(t, err)
	raw, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hunter2")

	t.Setenv("NEWSDESK_API_URL", "http://other:9000")
	got, err := LoadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "https://portal.example.com", got.APIURL)
	assert.Empty(t, got.Keyring.Password)
}
