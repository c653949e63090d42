// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth owns the administrator session: it rehydrates it from the
// keychain at startup, performs login and logout, and mirrors the persisted
// session in memory so commands can ask who is signed in without a round trip.
//
// The persisted pair (token, email) is the source of truth. The manager never
// returns errors from Login or Logout; outcomes are reported through the
// notifier and the returned bool, the way the admin screens expect.
package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"newsdesk/cli/internal/backend"
	"newsdesk/cli/internal/keychain"
	"newsdesk/cli/internal/notify"
)

// SessionStore persists the session pair.
type SessionStore interface {
	LoadSession() (keychain.Session, bool, error)
	SaveSession(keychain.Session) error
	ClearSession() error
}

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*backend.LoginResponse, error)
}

type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Manager is the session state machine. It is safe for concurrent use, but
// concurrent logins are not serialized: the last one to finish wins.
type Manager struct {
	store    SessionStore
	api      Authenticator
	notifier notify.Notifier
	log      zerolog.Logger
	validate *validator.Validate

	mu    sync.RWMutex
	state State
	subs  []func(State)
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the diagnostic logger.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// NewManager returns a manager in the LoadingInitial state. Call Init before use.
func NewManager(store SessionStore, api Authenticator, n notify.Notifier, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		api:      api,
		notifier: n,
		log:      zerolog.Nop(),
		validate: validator.New(),
		state:    State{Status: LoadingInitial, IsLoading: true},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current snapshot.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Subscribe registers fn to receive every state change.
func (m *Manager) Subscribe(fn func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// Init rehydrates the session from the store without contacting the portal.
// An unreadable store is treated as signed out and cleared.
func (m *Manager) Init() {
	s, ok, err := m.store.LoadSession()
	if err != nil {
		m.log.Warn().Err(err).Msg("session store unreadable, clearing")
		if cerr := m.store.ClearSession(); cerr != nil {
			m.log.Warn().Err(cerr).Msg("clear session")
		}
		ok = false
	}
	if ok {
		m.set(State{User: &User{Email: s.UserEmail}, Status: Authenticated})
		return
	}
	m.set(State{Status: Unauthenticated})
}

// Login validates the credentials, exchanges them for a token and persists the
// session. It reports success; on any failure the previous session is left as
// it was.
func (m *Manager) Login(ctx context.Context, email, password string) bool {
	email = strings.TrimSpace(email)
	if err := m.validate.Struct(credentials{Email: email, Password: password}); err != nil {
		m.log.Debug().Err(err).Msg("login input rejected")
		m.notifier.Notify(notify.Notice{Level: notify.Error, Title: "Login failed", Message: "Enter a valid email and password."})
		return false
	}

	prev := m.State()
	m.setLoading(true)

	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.log.Debug().Err(err).Msg("login failed")
		prev.IsLoading = false
		m.set(prev)
		m.notifier.Notify(notify.Notice{Level: notify.Error, Title: "Login failed", Message: "Incorrect email or password. Try again."})
		return false
	}
	if err := m.store.SaveSession(keychain.Session{Token: resp.Token, UserEmail: email}); err != nil {
		m.log.Warn().Err(err).Msg("save session")
		m.set(m.stored())
		m.notifier.Notify(notify.Notice{Level: notify.Error, Title: "Login failed", Message: "The session could not be saved to the keyring."})
		return false
	}

	m.set(State{User: &User{Email: email}, Status: Authenticated})
	m.notifier.Notify(notify.Notice{Level: notify.Success, Title: "Logged in", Message: "You are signed in as " + email + "."})
	return true
}

// stored is the state matching what the store holds right now.
func (m *Manager) stored() State {
	sess, ok, err := m.store.LoadSession()
	if err != nil || !ok {
		return State{Status: Unauthenticated}
	}
	return State{User: &User{Email: sess.UserEmail}, Status: Authenticated}
}

// Logout clears the persisted session. Calling it when already signed out is fine.
func (m *Manager) Logout() {
	if err := m.store.ClearSession(); err != nil {
		m.log.Warn().Err(err).Msg("clear session")
	}
	m.set(State{Status: Unauthenticated})
	m.notifier.Notify(notify.Notice{Level: notify.Info, Title: "Logged out", Message: "You have signed out."})
}

// Expire drops the in-memory session after the portal rejected the token.
// The store has already been cleared by the client.
func (m *Manager) Expire() {
	if m.State().Status == Unauthenticated {
		return
	}
	m.set(State{Status: Unauthenticated})
}

func (m *Manager) setLoading(loading bool) {
	m.mu.Lock()
	m.state.IsLoading = loading
	st, subs := m.state, append([]func(State){}, m.subs...)
	m.mu.Unlock()
	for _, fn := range subs {
		fn(st)
	}
}

func (m *Manager) set(st State) {
	m.mu.Lock()
	m.state = st
	subs := append([]func(State){}, m.subs...)
	m.mu.Unlock()
	for _, fn := range subs {
		fn(st)
	}
}
