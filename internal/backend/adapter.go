// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend is the client for the news portal's REST API.
// It defines the API contract the CLI depends on and an HTTP implementation
// that attaches the session token to admin calls, classifies every response and
// reports the outcome to subscribers.
package backend

import "context"

// API defines the portal operations the CLI depends on.
// Each method is a single round trip: no retries, no caching.
type API interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)

	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, name string) (*Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	ListPosts(ctx context.Context, q PostQuery) (*PostPage, error)
	GetPost(ctx context.Context, id int64) (*Post, error)
	ListAdminPosts(ctx context.Context, q AdminPostQuery) (*PostPage, error)
	CreatePost(ctx context.Context, in PostInput) (*Post, error)
	UpdatePost(ctx context.Context, id int64, patch PostPatch) (*Post, error)
	DeletePost(ctx context.Context, id int64) error

	GetHomepageLayout(ctx context.Context) ([]string, error)
	UpdateHomepageLayout(ctx context.Context, blockIDs []string) error
}

var _ API = (*Client)(nil)
