// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package views

import (
	"context"
	"sync"

	"newsdesk/cli/internal/backend"
	"newsdesk/cli/internal/notify"
)

// HomeSize is how many posts the front page asks for: one featured plus the
// recent ones.
const HomeSize = 7

// Home is the public front page.
type Home struct {
	api      PublicPostAPI
	notifier notify.Notifier
	seq      sequence

	mu    sync.RWMutex
	posts []backend.Post
}

func NewHome(api PublicPostAPI, n notify.Notifier) *Home {
	return &Home{api: api, notifier: n}
}

func (h *Home) Load(ctx context.Context) error {
	n := h.seq.next()
	res, err := h.api.ListPosts(ctx, backend.PostQuery{Page: 1, Limit: HomeSize})
	if err := h.seq.settle(ctx, n); err != nil {
		return err
	}
	if err != nil {
		failure(h.notifier, "Could not load the news. Try again later.", err)
		return err
	}
	h.mu.Lock()
	h.posts = res.Posts
	h.mu.Unlock()
	return nil
}

// Featured is the newest post, or nil when there are none.
func (h *Home) Featured() *backend.Post {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.posts) == 0 {
		return nil
	}
	p := h.posts[0]
	return &p
}

// Recent is every loaded post after the featured one.
func (h *Home) Recent() []backend.Post {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.posts) < 2 {
		return nil
	}
	return append([]backend.Post(nil), h.posts[1:]...)
}
