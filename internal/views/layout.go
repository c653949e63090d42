// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package views

import (
	"context"
	"sync"

	"newsdesk/cli/internal/backend"
	"newsdesk/cli/internal/notify"
)

// LayoutAPI is the part of the portal the homepage editor uses.
type LayoutAPI interface {
	GetHomepageLayout(ctx context.Context) ([]string, error)
	UpdateHomepageLayout(ctx context.Context, blockIDs []string) error
}

var _ LayoutAPI = (*backend.Client)(nil)

// blockNames labels the homepage blocks the portal knows about.
var blockNames = map[string]string{
	"featured":         "Notícia em Destaque",
	"recent":           "Notícias Recentes",
	"category-finance": "Finanças",
	"category-market":  "Mercado",
	"category-crypto":  "Criptomoedas",
	"popular":          "Mais Lidas",
}

// Block is one homepage section.
type Block struct {
	ID   string
	Name string
}

// BlockName returns the label for id, or id itself when it is unknown.
func BlockName(id string) string {
	if name, ok := blockNames[id]; ok {
		return name
	}
	return id
}

// LayoutEditor reorders the homepage blocks.
type LayoutEditor struct {
	api      LayoutAPI
	notifier notify.Notifier
	seq      sequence

	mu     sync.RWMutex
	blocks []Block
	dirty  bool
}

func NewLayoutEditor(api LayoutAPI, n notify.Notifier) *LayoutEditor {
	return &LayoutEditor{api: api, notifier: n}
}

// Load replaces the blocks with the portal's current layout.
func (e *LayoutEditor) Load(ctx context.Context) error {
	n := e.seq.next()
	ids, err := e.api.GetHomepageLayout(ctx)
	if err := e.seq.settle(ctx, n); err != nil {
		return err
	}
	if err != nil {
		failure(e.notifier, "Could not load the homepage layout.", err)
		return err
	}
	e.Set(ids)
	e.mu.Lock()
	e.dirty = false
	e.mu.Unlock()
	return nil
}

// Set replaces the blocks locally and marks the editor dirty.
func (e *LayoutEditor) Set(ids []string) {
	blocks := make([]Block, len(ids))
	for i, id := range ids {
		blocks[i] = Block{ID: id, Name: BlockName(id)}
	}
	e.mu.Lock()
	e.blocks = blocks
	e.dirty = true
	e.mu.Unlock()
}

func (e *LayoutEditor) Blocks() []Block {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]Block(nil), e.blocks...)
}

// IDs returns the block ids in their current order.
func (e *LayoutEditor) IDs() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ids := make([]string, len(e.blocks))
	for i, b := range e.blocks {
		ids[i] = b.ID
	}
	return ids
}

// Dirty reports whether the order changed since the last load or save.
func (e *LayoutEditor) Dirty() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.dirty
}

// MoveUp swaps block i with the one above it. It reports whether anything moved.
func (e *LayoutEditor) MoveUp(i int) bool {
	return e.swap(i, i-1)
}

// MoveDown swaps block i with the one below it. It reports whether anything moved.
func (e *LayoutEditor) MoveDown(i int) bool {
	return e.swap(i, i+1)
}

func (e *LayoutEditor) swap(i, j int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i < 0 || j < 0 || i >= len(e.blocks) || j >= len(e.blocks) {
		return false
	}
	e.blocks[i], e.blocks[j] = e.blocks[j], e.blocks[i]
	e.dirty = true
	return true
}

// Save sends the current order to the portal.
func (e *LayoutEditor) Save(ctx context.Context) error {
	if err := e.api.UpdateHomepageLayout(ctx, e.IDs()); err != nil {
		failure(e.notifier, "Could not save the layout.", err)
		return err
	}
	e.mu.Lock()
	e.dirty = false
	e.mu.Unlock()
	success(e.notifier, "Layout updated.")
	return nil
}
