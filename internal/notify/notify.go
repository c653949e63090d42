// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package notify delivers short user-visible notices: login succeeded, session
// expired, server error and the like. Components depend on the Notifier
// interface; the CLI prints through pterm and tests use a Recorder.
package notify

import (
	"io"
	"sync"

	"github.com/pterm/pterm"
)

// Level is the severity of a notice.
type Level int

const (
	Info Level = iota
	Success
	Warning
	Error
)

// Notice is one user-visible message.
type Notice struct {
	Level   Level
	Title   string
	Message string
}

// Notifier shows notices to the user.
type Notifier interface {
	Notify(Notice)
}

// Func adapts a function to Notifier.
type Func func(Notice)

func (f Func) Notify(n Notice) { f(n) }

// Terminal prints notices with pterm prefixes.
type Terminal struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTerminal returns a notifier writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (t *Terminal) Notify(n Notice) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var p pterm.PrefixPrinter
	switch n.Level {
	case Success:
		p = pterm.Success
	case Warning:
		p = pterm.Warning
	case Error:
		p = pterm.Error
	default:
		p = pterm.Info
	}
	p = *p.WithWriter(t.w)

	if n.Message == "" {
		p.Println(n.Title)
		return
	}
	p.Println(n.Title + ": " + n.Message)
}

// Recorder keeps notices in memory.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of everything recorded.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Last returns the most recent notice and whether there was one.
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}
