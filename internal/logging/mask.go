// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides the CLI's diagnostic logger and helpers for keeping
// credentials out of anything it prints. Bearer tokens, passwords and token
// fields in JSON bodies are masked before they reach a log line or the terminal.
package logging

import (
	"regexp"
)

var (
	reBearer    = regexp.MustCompile(`(?i)(bearer\s+)([A-Za-z0-9._~+/=-]+)`)
	rePair      = regexp.MustCompile(`(?i)((?:password|token)=)([^\s&;]+)`)
	reJSONField = regexp.MustCompile(`(?i)("(?:password|token|accessToken|access_token)"\s*:\s*")([^"]*)(")`)
)

// Mask replaces sensitive values in the input string with "***".
func Mask(s string) string {
	out := reBearer.ReplaceAllString(s, "$1***")
	out = rePair.ReplaceAllString(out, "$1***")
	out = reJSONField.ReplaceAllString(out, "$1***$3")
	return out
}
