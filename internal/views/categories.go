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

// CategoryAPI is the part of the portal the category screen uses.
type CategoryAPI interface {
	ListCategories(ctx context.Context) ([]backend.Category, error)
	CreateCategory(ctx context.Context, name string) (*backend.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

// Categories is the admin category list.
type Categories struct {
	api      CategoryAPI
	notifier notify.Notifier
	seq      sequence

	mu    sync.RWMutex
	items []backend.Category
}

func NewCategories(api CategoryAPI, n notify.Notifier) *Categories {
	return &Categories{api: api, notifier: n}
}

// Items returns the last loaded list.
func (v *Categories) Items() []backend.Category {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]backend.Category(nil), v.items...)
}

// Find returns the loaded category with id.
func (v *Categories) Find(id int64) (backend.Category, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, c := range v.items {
		if c.ID == id {
			return c, true
		}
	}
	return backend.Category{}, false
}

func (v *Categories) Load(ctx context.Context) error {
	n := v.seq.next()
	items, err := v.api.ListCategories(ctx)
	if err := v.seq.settle(ctx, n); err != nil {
		return err
	}
	if err != nil {
		failure(v.notifier, "Could not load categories.", err)
		return err
	}
	v.mu.Lock()
	v.items = items
	v.mu.Unlock()
	return nil
}

// Create adds a category and reloads the list. A blank name is rejected
// without contacting the portal. A failed reload is announced but does not
// turn the create into an error.
func (v *Categories) Create(ctx context.Context, name string) (*backend.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid(v.notifier, "The category name cannot be empty.")
	}
	c, err := v.api.CreateCategory(ctx, name)
	if err != nil {
		failure(v.notifier, "Could not create the category.", err)
		return nil, err
	}
	success(v.notifier, "Category created.")
	// Load announces its own failure; the category exists either way.
	_ = v.Load(ctx)
	return c, nil
}

// Delete removes c and reloads the list.
func (v *Categories) Delete(ctx context.Context, c backend.Category) error {
	if err := v.api.DeleteCategory(ctx, c.ID); err != nil {
		failure(v.notifier, "Could not delete the category.", err)
		return err
	}
	success(v.notifier, fmt.Sprintf("Category %q deleted.", c.Name))
	_ = v.Load(ctx)
	return nil
}
