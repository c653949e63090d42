// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// totalHeader is read when present; the portal does not currently send it.
const totalHeader = "X-Total-Count"

func (q PostQuery) values() url.Values {
	v := url.Values{}
	if q.CategoryID > 0 {
		v.Set("categoryId", strconv.FormatInt(q.CategoryID, 10))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

func (q AdminPostQuery) values() url.Values {
	v := PostQuery{CategoryID: q.CategoryID, Page: q.Page, Limit: q.Limit}.values()
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		v.Set("search", s)
	}
	return v
}

// ListPosts calls GET /posts with optional categoryId, page and limit.
// Only published posts are returned by the API.
func (c *Client) ListPosts(ctx context.Context, q PostQuery) (*PostPage, error) {
	return c.listPosts(ctx, "/posts", q.values(), q.Page, q.Limit)
}

// ListAdminPosts calls GET /admin/posts with optional categoryId, status, search, page and limit.
func (c *Client) ListAdminPosts(ctx context.Context, q AdminPostQuery) (*PostPage, error) {
	return c.listPosts(ctx, "/admin/posts", q.values(), q.Page, q.Limit)
}

func (c *Client) listPosts(ctx context.Context, path string, query url.Values, page, limit int) (*PostPage, error) {
	var posts []Post
	hdr, err := c.do(ctx, http.MethodGet, path, query, nil, &posts)
	if err != nil {
		return nil, err
	}
	if page <= 0 {
		page = 1
	}
	return &PostPage{Posts: posts, Page: page, Limit: limit, Total: parseTotal(hdr)}, nil
}

func parseTotal(h http.Header) int {
	if h == nil {
		return -1
	}
	n, err := strconv.Atoi(strings.TrimSpace(h.Get(totalHeader)))
	if err != nil || n < 0 {
		return -1
	}
	return n
}

// GetPost calls GET /posts/{id}.
func (c *Client) GetPost(ctx context.Context, id int64) (*Post, error) {
	var out Post
	if _, err := c.do(ctx, http.MethodGet, postPath("/posts", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePost calls POST /admin/posts with { title, content, categoryId, status }.
func (c *Client) CreatePost(ctx context.Context, in PostInput) (*Post, error) {
	var out Post
	if _, err := c.do(ctx, http.MethodPost, "/admin/posts", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePost calls PUT /admin/posts/{id} with only the fields set in patch.
func (c *Client) UpdatePost(ctx context.Context, id int64, patch PostPatch) (*Post, error) {
	var out Post
	if _, err := c.do(ctx, http.MethodPut, postPath("/admin/posts", id), nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePost calls DELETE /admin/posts/{id}.
func (c *Client) DeletePost(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, postPath("/admin/posts", id), nil, nil, nil)
	return err
}

func postPath(base string, id int64) string {
	return base + "/" + strconv.FormatInt(id, 10)
}
