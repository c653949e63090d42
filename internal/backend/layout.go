// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"
)

const homepageLayoutPath = "/admin/layout/homepage"

// GetHomepageLayout calls GET /admin/layout/homepage and returns the ordered block ids.
func (c *Client) GetHomepageLayout(ctx context.Context) ([]string, error) {
	var ids []string
	if _, err := c.do(ctx, http.MethodGet, homepageLayoutPath, nil, nil, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// UpdateHomepageLayout calls PUT /admin/layout/homepage with the block ids as a JSON array.
func (c *Client) UpdateHomepageLayout(ctx context.Context, blockIDs []string) error {
	if blockIDs == nil {
		blockIDs = []string{}
	}
	_, err := c.do(ctx, http.MethodPut, homepageLayoutPath, nil, blockIDs, nil)
	return err
}
