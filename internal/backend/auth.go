// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"

	apperrors "newsdesk/cli/internal/errors"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login calls POST /auth/login and returns the issued token.
// The path is public, so no Authorization header is sent and a 401 here is a
// plain request failure, not an expired session.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var raw map[string]any
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &raw); err != nil {
		return nil, err
	}
	token := extractToken(raw)
	if token == "" {
		return nil, apperrors.New(apperrors.RequestFailed, "login response carried no token")
	}
	return &LoginResponse{Token: token, Raw: raw}, nil
}
