// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain is the persisted session store for newsdesk.
// It keeps the bearer token and the signed-in user's email in the OS
// keychain/credential store so a session survives between invocations.
//
// Keys are scoped by API origin: logging into one portal never hands its token
// to another. Nothing else is stored; there is no expiry field, so a token is
// trusted until the portal rejects it.
package keychain

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/99designs/keyring"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "newsdesk"

// Keys used for storing the session.
const (
	KeyToken     = "token"
	KeyUserEmail = "user_email"
)

// Session is the persisted pair. Token and UserEmail are written and cleared together.
type Session struct {
	Token     string
	UserEmail string
}

// Manager provides thread-safe access to session keys for one API origin.
type Manager struct {
	mu     sync.RWMutex
	ring   keyring.Keyring
	origin string
}

// Options selects and unlocks the keyring backend.
type Options struct {
	// Backend is "auto" (native first, encrypted file last) or "file".
	Backend string
	// FileDir is where the file backend keeps its items.
	FileDir string
	// Password unlocks the file backend. Empty means prompt on the terminal.
	Password string
}

// Open opens the OS keyring and scopes it to apiURL's origin.
func Open(apiURL string, opts Options) (*Manager, error) {
	origin, err := Origin(apiURL)
	if err != nil {
		return nil, err
	}
	ring, err := openRing(opts)
	if err != nil {
		return nil, err
	}
	return NewManager(ring, origin), nil
}

// NewManager wraps an already opened keyring.
func NewManager(ring keyring.Keyring, origin string) *Manager {
	return &Manager{ring: ring, origin: origin}
}

// NewMemory returns a manager over an in-process keyring. Nothing outlives the process.
func NewMemory(origin string) *Manager {
	return NewManager(keyring.NewArrayKeyring(nil), origin)
}

// Origin reduces a base URL to scheme://host[:port].
func Origin(apiURL string) (string, error) {
	u, err := url.Parse(apiURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid API URL %q", apiURL)
	}
	return strings.ToLower(u.Scheme + "://" + u.Host), nil
}

func openRing(opts Options) (keyring.Keyring, error) {
	var allowed []keyring.BackendType
	switch opts.Backend {
	case "file":
		allowed = []keyring.BackendType{keyring.FileBackend}
	default:
		switch runtime.GOOS {
		case "darwin":
			allowed = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
		case "windows":
			allowed = []keyring.BackendType{keyring.WinCredBackend}
		default:
			allowed = []keyring.BackendType{keyring.SecretServiceBackend, keyring.KWalletBackend, keyring.PassBackend}
		}
		allowed = append(allowed, keyring.FileBackend)
	}

	var prompt keyring.PromptFunc = keyring.TerminalPrompt
	if opts.Password != "" {
		prompt = keyring.FixedStringPrompt(opts.Password)
	}

	cfg := keyring.Config{
		ServiceName:      ServiceName,
		AllowedBackends:  allowed,
		PassPrefix:       ServiceName,
		WinCredPrefix:    ServiceName,
		FileDir:          opts.FileDir,
		FilePasswordFunc: prompt,
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	return ring, nil
}

func (m *Manager) scoped(key string) string {
	return m.origin + "/" + key
}

// Get returns the value for key. A missing key is reported as ok=false, not an error.
func (m *Manager) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.get(key)
}

// Set stores value under key.
func (m *Manager) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set(key, value)
}

// Remove deletes key. Removing a missing key is not an error.
func (m *Manager) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remove(key)
}

func (m *Manager) get(key string) (string, bool, error) {
	it, err := m.ring.Get(m.scoped(key))
	if err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, err
	}
	if len(it.Data) == 0 {
		return "", false, nil
	}
	return string(it.Data), true, nil
}

func (m *Manager) set(key, value string) error {
	return m.ring.Set(keyring.Item{
		Key:   m.scoped(key),
		Data:  []byte(value),
		Label: ServiceName + " " + key,
	})
}

func (m *Manager) remove(key string) error {
	if err := m.ring.Remove(m.scoped(key)); err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

// Token returns the stored bearer token.
func (m *Manager) Token() (string, bool, error) {
	return m.Get(KeyToken)
}

// LoadSession reads both keys. A half-written pair is reported as no session.
func (m *Manager) LoadSession() (Session, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	token, hasToken, err := m.get(KeyToken)
	if err != nil {
		return Session{}, false, err
	}
	email, hasEmail, err := m.get(KeyUserEmail)
	if err != nil {
		return Session{}, false, err
	}
	if !hasToken || !hasEmail {
		return Session{}, false, nil
	}
	return Session{Token: token, UserEmail: email}, true, nil
}

// SaveSession writes token and email together. If a write fails the previous
// pair is written back, or both keys are removed when there was none, so the
// store never holds one key without the other.
func (m *Manager) SaveSession(s Session) error {
	if s.Token == "" || s.UserEmail == "" {
		return errors.New("session needs both token and user email")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	oldToken, hadToken, err := m.get(KeyToken)
	if err != nil {
		return err
	}
	oldEmail, hadEmail, err := m.get(KeyUserEmail)
	if err != nil {
		return err
	}

	if err := m.set(KeyToken, s.Token); err != nil {
		m.restore(oldToken, oldEmail, hadToken && hadEmail)
		return err
	}
	if err := m.set(KeyUserEmail, s.UserEmail); err != nil {
		m.restore(oldToken, oldEmail, hadToken && hadEmail)
		return err
	}
	return nil
}

// restore puts back the pair that was stored before a failed save. Callers
// hold m.mu.
func (m *Manager) restore(token, email string, had bool) {
	if had {
		errToken := m.set(KeyToken, token)
		errEmail := m.set(KeyUserEmail, email)
		if errToken == nil && errEmail == nil {
			return
		}
	}
	_ = m.remove(KeyToken)
	_ = m.remove(KeyUserEmail)
}

// ClearSession removes both keys. Both removals are attempted even if one fails.
func (m *Manager) ClearSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	errToken := m.remove(KeyToken)
	errEmail := m.remove(KeyUserEmail)
	return errors.Join(errToken, errEmail)
}

func isNotFound(err error) bool {
	return errors.Is(err, keyring.ErrKeyNotFound) || errors.Is(err, os.ErrNotExist)
}
