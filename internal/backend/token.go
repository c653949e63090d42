// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"strings"
)

// parseBearerToken extracts token from a value like "Bearer <token>" case-insensitively.
// Returns the token string without the "Bearer " prefix, or empty string if invalid format.
func parseBearerToken(value string) string {
	v := strings.TrimSpace(value)
	if len(v) < 7 || !strings.EqualFold(v[:6], "bearer") {
		return ""
	}
	return strings.TrimSpace(v[6:])
}

// extractToken finds the issued token in a login payload.
// It tries the common field names, then one level of nesting under "data".
func extractToken(result map[string]any) string {
	for _, k := range []string{"token", "access_token", "accessToken"} {
		if v, ok := result[k].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	if v, ok := result["authorization"].(string); ok {
		if t := parseBearerToken(v); t != "" {
			return t
		}
	}
	if nested, ok := result["data"].(map[string]any); ok {
		return extractToken(nested)
	}
	return ""
}
