// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package views

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"newsdesk/cli/internal/backend"
	"newsdesk/cli/internal/notify"
)

// DefaultPageSize is used when a list is created with a non-positive limit.
const DefaultPageSize = 10

// AdminPostAPI is the part of the portal the admin post list uses.
type AdminPostAPI interface {
	ListAdminPosts(ctx context.Context, q backend.AdminPostQuery) (*backend.PostPage, error)
	DeletePost(ctx context.Context, id int64) error
}

// Filters narrow the admin post list. Zero fields match everything.
type Filters struct {
	CategoryID int64
	Status     backend.PostStatus
	Search     string
}

// AdminPosts is the admin post list with filters and paging.
type AdminPosts struct {
	api      AdminPostAPI
	notifier notify.Notifier
	limit    int
	seq      sequence

	mu      sync.RWMutex
	filters Filters
	page    int
	result  backend.PostPage
}

func NewAdminPosts(api AdminPostAPI, n notify.Notifier, limit int) *AdminPosts {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return &AdminPosts{api: api, notifier: n, limit: limit, page: 1, result: backend.PostPage{Page: 1, Limit: limit, Total: -1}}
}

func (v *AdminPosts) Filters() Filters {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.filters
}

func (v *AdminPosts) Page() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.page
}

// Result returns the last loaded page.
func (v *AdminPosts) Result() backend.PostPage {
	v.mu.RLock()
	defer v.mu.RUnlock()
	r := v.result
	r.Posts = append([]backend.Post(nil), r.Posts...)
	return r
}

func (v *AdminPosts) HasMore() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.result.HasMore()
}

// Load fetches the current page with the current filters.
func (v *AdminPosts) Load(ctx context.Context) error {
	v.mu.RLock()
	q := backend.AdminPostQuery{
		CategoryID: v.filters.CategoryID,
		Status:     v.filters.Status,
		Search:     v.filters.Search,
		Page:       v.page,
		Limit:      v.limit,
	}
	v.mu.RUnlock()

	n := v.seq.next()
	res, err := v.api.ListAdminPosts(ctx, q)
	if err := v.seq.settle(ctx, n); err != nil {
		return err
	}
	if err != nil {
		failure(v.notifier, "Could not load posts.", err)
		return err
	}
	v.mu.Lock()
	v.result = *res
	v.mu.Unlock()
	return nil
}

// Apply replaces the filters, returns to the first page and reloads.
func (v *AdminPosts) Apply(ctx context.Context, f Filters) error {
	f.Search = strings.TrimSpace(f.Search)
	switch f.Status {
	case "", backend.StatusPublished, backend.StatusDraft:
	default:
		return invalid(v.notifier, fmt.Sprintf("Unknown status %q. Use published or draft.", f.Status))
	}
	v.mu.Lock()
	v.filters = f
	v.page = 1
	v.mu.Unlock()
	return v.Load(ctx)
}

// Reset clears every filter and the search text.
func (v *AdminPosts) Reset(ctx context.Context) error {
	return v.Apply(ctx, Filters{})
}

// GoTo loads page p. Pages start at 1.
func (v *AdminPosts) GoTo(ctx context.Context, p int) error {
	if p < 1 {
		p = 1
	}
	v.mu.Lock()
	v.page = p
	v.mu.Unlock()
	return v.Load(ctx)
}

// Next loads the following page when one is likely to exist.
func (v *AdminPosts) Next(ctx context.Context) (bool, error) {
	if !v.HasMore() {
		return false, nil
	}
	return true, v.GoTo(ctx, v.Page()+1)
}

// Prev loads the previous page unless already on the first.
func (v *AdminPosts) Prev(ctx context.Context) (bool, error) {
	p := v.Page()
	if p <= 1 {
		return false, nil
	}
	return true, v.GoTo(ctx, p-1)
}

// Delete removes p and reloads the current page. Only the delete decides
// the returned error.
func (v *AdminPosts) Delete(ctx context.Context, p backend.Post) error {
	if err := v.api.DeletePost(ctx, p.ID); err != nil {
		failure(v.notifier, "Could not delete the post.", err)
		return err
	}
	label := p.Title
	if label == "" {
		label = fmt.Sprintf("#%d", p.ID)
	}
	success(v.notifier, fmt.Sprintf("Post %q deleted.", label))
	_ = v.Load(ctx)
	return nil
}

// PublicPostAPI is the part of the portal the public site uses.
type PublicPostAPI interface {
	ListPosts(ctx context.Context, q backend.PostQuery) (*backend.PostPage, error)
	GetPost(ctx context.Context, id int64) (*backend.Post, error)
}

// Feed is the public listing of published posts, optionally for one category.
type Feed struct {
	api      PublicPostAPI
	notifier notify.Notifier
	limit    int
	seq      sequence

	mu     sync.RWMutex
	result backend.PostPage
}

func NewFeed(api PublicPostAPI, n notify.Notifier, limit int) *Feed {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return &Feed{api: api, notifier: n, limit: limit, result: backend.PostPage{Page: 1, Limit: limit, Total: -1}}
}

// Load fetches page of categoryID (0 for every category).
func (f *Feed) Load(ctx context.Context, categoryID int64, page int) error {
	if page < 1 {
		page = 1
	}
	n := f.seq.next()
	res, err := f.api.ListPosts(ctx, backend.PostQuery{CategoryID: categoryID, Page: page, Limit: f.limit})
	if err := f.seq.settle(ctx, n); err != nil {
		return err
	}
	if err != nil {
		failure(f.notifier, "Could not load posts.", err)
		return err
	}
	f.mu.Lock()
	f.result = *res
	f.mu.Unlock()
	return nil
}

func (f *Feed) Result() backend.PostPage {
	f.mu.RLock()
	defer f.mu.RUnlock()
	r := f.result
	r.Posts = append([]backend.Post(nil), r.Posts...)
	return r
}

// Post fetches a single published post.
func (f *Feed) Post(ctx context.Context, id int64) (*backend.Post, error) {
	p, err := f.api.GetPost(ctx, id)
	if err != nil {
		failure(f.notifier, "Could not load the post.", err)
		return nil, err
	}
	return p, nil
}
