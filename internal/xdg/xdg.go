// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package xdg resolves XDG Base Directory paths for newsdesk.
// Config holds the non-secret settings file; Data holds the encrypted session
// file used when no native keyring is available.
package xdg

import (
	"os"
	"path/filepath"
)

const appDir = "newsdesk"

// ConfigDir returns $XDG_CONFIG_HOME/newsdesk, falling back to ~/.config/newsdesk.
// The directory is created with private permissions (0700) if missing.
func ConfigDir() (string, error) {
	return resolve("XDG_CONFIG_HOME", ".config")
}

// DataDir returns $XDG_DATA_HOME/newsdesk, falling back to ~/.local/share/newsdesk.
// The directory is created with private permissions (0700) if missing.
func DataDir() (string, error) {
	return resolve("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func resolve(env, homeRel string) (string, error) {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, homeRel)
	}
	dir := filepath.Join(base, appDir)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}
