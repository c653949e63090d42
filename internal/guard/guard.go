// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package guard reacts to portal responses on behalf of the whole CLI.
// The HTTP client only classifies responses; the guard decides what the user
// sees: an expired session sends an admin screen back to login, and a server
// fault is announced wherever it happens.
package guard

import (
	"github.com/rs/zerolog"

	"newsdesk/cli/internal/backend"
	"newsdesk/cli/internal/navigation"
	"newsdesk/cli/internal/notify"
)

// Expirer drops the in-memory session.
type Expirer interface {
	Expire()
}

// Guard is a backend.Subscriber.
type Guard struct {
	loc      *navigation.Location
	session  Expirer
	notifier notify.Notifier
	log      zerolog.Logger
}

// New returns a guard. session may be nil.
func New(loc *navigation.Location, session Expirer, n notify.Notifier, log zerolog.Logger) *Guard {
	return &Guard{loc: loc, session: session, notifier: n, log: log}
}

// Attach subscribes the guard to c and returns the unsubscribe function.
func (g *Guard) Attach(c *backend.Client) func() {
	return c.Subscribe(g.Handle)
}

// Handle applies the response policy to one event.
func (g *Guard) Handle(ev backend.Event) {
	switch ev.Outcome {
	case backend.OutcomeAuthExpired:
		if g.session != nil {
			g.session.Expire()
		}
		// Once redirected the location is the login screen, so a burst of
		// rejected calls produces a single redirect and a single notice.
		if !navigation.RequiresSession(g.loc.Path()) {
			return
		}
		g.log.Debug().Str("from", g.loc.Path()).Str("request_id", ev.RequestID).Msg("session expired, redirecting to login")
		g.notifier.Notify(notify.Notice{
			Level:   notify.Warning,
			Title:   "Session expired",
			Message: "Your session has expired. Please log in again.",
		})
		g.loc.Navigate(navigation.LoginPath)

	case backend.OutcomeServerFault:
		g.log.Debug().Int("status", ev.Status).Str("path", ev.Path).Msg("server fault")
		g.notifier.Notify(notify.Notice{
			Level:   notify.Error,
			Title:   "Server error",
			Message: "The portal returned an error. Try again later.",
		})
	}
}
