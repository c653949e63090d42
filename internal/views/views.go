// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package views holds the state behind each admin and public screen: the
// category list, the filtered post list, the post form, the public feed and the
// homepage layout editor. Commands drive these helpers and render their state.
//
// Every helper reports user-visible outcomes through a notify.Notifier and
// returns the underlying error so the caller can set an exit status. Failures
// the guard already announces (expired session, server fault) are not
// announced twice.
//
// Loads are guarded by a sequence number: a response that arrives after a newer
// load was started, or after its context was cancelled, is dropped instead of
// overwriting fresher state.
package views

import (
	"context"
	stderrors "errors"
	"sync"

	apperrors "newsdesk/cli/internal/errors"
	"newsdesk/cli/internal/notify"
)

// ErrStale is returned by a load whose result was discarded because a newer
// load superseded it.
var ErrStale = stderrors.New("views: result superseded by a newer request")

type sequence struct {
	mu sync.Mutex
	n  uint64
}

func (s *sequence) next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return s.n
}

func (s *sequence) current(n uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n == n
}

// settle decides whether the result of request n may be applied.
func (s *sequence) settle(ctx context.Context, n uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.current(n) {
		return ErrStale
	}
	return nil
}

func success(n notify.Notifier, msg string) {
	n.Notify(notify.Notice{Level: notify.Success, Title: "Success", Message: msg})
}

func failure(n notify.Notifier, msg string, err error) {
	switch apperrors.KindOf(err) {
	case apperrors.AuthExpired, apperrors.ServerFault:
		return
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, ErrStale) {
		return
	}
	n.Notify(notify.Notice{Level: notify.Error, Title: "Error", Message: msg})
}

func invalid(n notify.Notifier, msg string) error {
	n.Notify(notify.Notice{Level: notify.Error, Title: "Error", Message: msg})
	return apperrors.New(apperrors.ValidationFailed, msg)
}
