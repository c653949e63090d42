// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"
	"strconv"
)

// ListCategories calls GET /categories. No authentication required.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	if _, err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCategory calls POST /admin/categories with { name }.
func (c *Client) CreateCategory(ctx context.Context, name string) (*Category, error) {
	var out Category
	body := map[string]string{"name": name}
	if _, err := c.do(ctx, http.MethodPost, "/admin/categories", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory calls DELETE /admin/categories/{id}.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, "/admin/categories/"+strconv.FormatInt(id, 10), nil, nil, nil)
	return err
}
