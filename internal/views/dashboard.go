// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package views

import (
	"context"
	"sync"

	"newsdesk/cli/internal/backend"
	"newsdesk/cli/internal/notify"
)

// DashboardSize is how many recent posts the dashboard shows.
const DashboardSize = 5

// DashboardAPI is the part of the portal the admin dashboard reads.
type DashboardAPI interface {
	ListAdminPosts(ctx context.Context, q backend.AdminPostQuery) (*backend.PostPage, error)
	ListCategories(ctx context.Context) ([]backend.Category, error)
}

var _ DashboardAPI = (*backend.Client)(nil)

// Summary is what the dashboard shows. Published and Drafts count the
// recent posts only. TotalPosts is the portal's total when it reports one,
// otherwise the number of recent posts.
type Summary struct {
	Recent     []backend.Post
	TotalPosts int
	Published  int
	Drafts     int
	Categories int
}

// Dashboard is the admin landing screen.
type Dashboard struct {
	api      DashboardAPI
	notifier notify.Notifier
	seq      sequence

	mu      sync.RWMutex
	summary Summary
}

func NewDashboard(api DashboardAPI, n notify.Notifier) *Dashboard {
	return &Dashboard{api: api, notifier: n}
}

// Load fetches the recent posts, then the categories.
func (d *Dashboard) Load(ctx context.Context) error {
	n := d.seq.next()
	page, err := d.api.ListAdminPosts(ctx, backend.AdminPostQuery{Page: 1, Limit: DashboardSize})
	if err != nil {
		if serr := d.seq.settle(ctx, n); serr != nil {
			return serr
		}
		failure(d.notifier, "Could not load the dashboard.", err)
		return err
	}
	cats, err := d.api.ListCategories(ctx)
	if err := d.seq.settle(ctx, n); err != nil {
		return err
	}
	if err != nil {
		failure(d.notifier, "Could not load the dashboard.", err)
		return err
	}

	s := Summary{Recent: page.Posts, TotalPosts: page.Total, Categories: len(cats)}
	if s.TotalPosts < 0 {
		s.TotalPosts = len(page.Posts)
	}
	for _, p := range page.Posts {
		switch p.Status {
		case backend.StatusPublished:
			s.Published++
		case backend.StatusDraft:
			s.Drafts++
		}
	}

	d.mu.Lock()
	d.summary = s
	d.mu.Unlock()
	return nil
}

func (d *Dashboard) Summary() Summary {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s := d.summary
	s.Recent = append([]backend.Post(nil), s.Recent...)
	return s
}
