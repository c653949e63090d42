// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/cli/internal/backend"
	"newsdesk/cli/internal/backend/backendtest"
	apperrors "newsdesk/cli/internal/errors"
	"newsdesk/cli/internal/keychain"
)

// newClient returns a client against a fresh fake portal with a stored session.
func newClient(t *testing.T, withSession bool) (*backend.Client, *backendtest.Server, *keychain.Manager) {
	t.Helper()
	srv := backendtest.New(t)
	store := keychain.NewMemory(srv.URL)
	if withSession {
		require.NoError(t, store.SaveSession(keychain.Session{Token: "T", UserEmail: "a@b.com"}))
	}
	return backend.New(srv.URL, store), srv, store
}

// recordEvents subscribes and returns the collected events.
func recordEvents(c *backend.Client) *[]backend.Event {
	var events []backend.Event
	c.Subscribe(func(ev backend.Event) { events = append(events, ev) })
	return &events
}

func TestPublicPathsNeverCarryToken(t *testing.T) {
	c, srv, _ := newClient(t, true)
	ctx := context.Background()

	_, err := c.ListCategories(ctx)
	require.NoError(t, err)
	_, err = c.ListPosts(ctx, backend.PostQuery{})
	require.NoError(t, err)
	_, err = c.GetPost(ctx, 1)
	require.NoError(t, err)
	_, err = c.Login(ctx, "a@b.com", "secret")
	require.NoError(t, err)

	for _, r := range srv.Requests() {
		assert.Empty(t, r.Authorization, "%s %s", r.Method, r.Path)
	}
}

func TestAdminPathsCarryExactBearer(t *testing.T) {
	c, srv, _ := newClient(t, true)

	_, err := c.GetHomepageLayout(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer T", srv.LastRequest().Authorization)
}

func TestAdminPathWithoutTokenSendsNoHeader(t *testing.T) {
	c, srv, _ := newClient(t, false)

	_, err := c.GetHomepageLayout(context.Background())
	require.Error(t, err)
	assert.Empty(t, srv.LastRequest().Authorization)
}

func TestDefaultHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := backend.New(srv.URL, keychain.NewMemory(srv.URL))
	_, err := c.ListCategories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Len(t, got.Get("X-Request-ID"), 36)
}

func TestAdmin401ClearsSessionAndEmitsAuthExpired(t *testing.T) {
	c, srv, store := newClient(t, true)
	events := recordEvents(c)
	srv.SetToken("rotated")

	_, err := c.ListAdminPosts(context.Background(), backend.AdminPostQuery{})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.AuthExpired))
	assert.Equal(t, http.StatusUnauthorized, apperrors.StatusOf(err))

	_, hasToken, _ := store.Get(keychain.KeyToken)
	_, hasEmail, _ := store.Get(keychain.KeyUserEmail)
	assert.False(t, hasToken)
	assert.False(t, hasEmail)

	require.Len(t, *events, 1)
	ev := (*events)[0]
	assert.Equal(t, backend.OutcomeAuthExpired, ev.Outcome)
	assert.Equal(t, "/admin/posts", ev.Path)
	assert.Equal(t, http.MethodGet, ev.Method)
	assert.NotEmpty(t, ev.RequestID)
}

func TestPublic401IsPlainFailure(t *testing.T) {
	c, _, store := newClient(t, true)
	events := recordEvents(c)

	_, err := c.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.RequestFailed))

	_, ok, _ := store.LoadSession()
	assert.True(t, ok, "a failed login must not clear an existing session")
	require.Len(t, *events, 1)
	assert.Equal(t, backend.OutcomeOther, (*events)[0].Outcome)
}

func TestServerFaultLeavesSession(t *testing.T) {
	for _, path := range []string{"/categories", "/admin/categories"} {
		t.Run(path, func(t *testing.T) {
			c, srv, store := newClient(t, true)
			events := recordEvents(c)
			srv.FailNext(http.MethodPost, "/admin/categories", http.StatusServiceUnavailable)
			srv.FailNext(http.MethodGet, "/categories", http.StatusServiceUnavailable)

			var err error
			if path == "/categories" {
				_, err = c.ListCategories(context.Background())
			} else {
				_, err = c.CreateCategory(context.Background(), "Cripto")
			}
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ServerFault))

			s, ok, _ := store.LoadSession()
			assert.True(t, ok)
			assert.Equal(t, "T", s.Token)
			require.Len(t, *events, 1)
			assert.Equal(t, backend.OutcomeServerFault, (*events)[0].Outcome)
			assert.Equal(t, http.StatusServiceUnavailable, (*events)[0].Status)
		})
	}
}

func TestNotFoundIsRequestFailedWithMessage(t *testing.T) {
	c, _, _ := newClient(t, false)
	events := recordEvents(c)

	_, err := c.GetPost(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.RequestFailed))
	assert.Equal(t, http.StatusNotFound, apperrors.StatusOf(err))
	assert.Contains(t, err.Error(), "post not found")
	assert.Equal(t, backend.OutcomeOther, (*events)[0].Outcome)
}

func TestSuccessEmitsOK(t *testing.T) {
	c, _, _ := newClient(t, false)
	events := recordEvents(c)

	_, err := c.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, *events, 1)
	assert.Equal(t, backend.OutcomeOK, (*events)[0].Outcome)
	assert.Equal(t, http.StatusOK, (*events)[0].Status)
}

func TestTransportErrorEmitsOther(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := backend.New(url, keychain.NewMemory(url))
	events := recordEvents(c)

	_, err := c.ListCategories(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.RequestFailed))
	require.Len(t, *events, 1)
	assert.Equal(t, backend.OutcomeOther, (*events)[0].Outcome)
	assert.Zero(t, (*events)[0].Status)
}

type brokenStore struct{ cleared bool }

func (b *brokenStore) Token() (string, bool, error) { return "", false, errors.New("keyring locked") }
func (b *brokenStore) ClearSession() error          { b.cleared = true; return nil }

func TestStoreFailureFailsClosed(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := backend.New(srv.URL, &brokenStore{})
	events := recordEvents(c)

	_, err := c.GetHomepageLayout(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.StorageFailed))
	assert.Zero(t, hits.Load(), "no request may be sent when the token cannot be read")
	require.Len(t, *events, 1)
	assert.Equal(t, backend.OutcomeOther, (*events)[0].Outcome)

	// Public paths never touch the store.
	_, err = c.ListCategories(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, hits.Load())
}

func TestSubscribersRunBeforeCallReturns(t *testing.T) {
	c, _, _ := newClient(t, false)
	delivered := false
	unsubscribe := c.Subscribe(func(backend.Event) { delivered = true })

	_, err := c.ListCategories(context.Background())
	require.NoError(t, err)
	assert.True(t, delivered)

	delivered = false
	unsubscribe()
	_, err = c.ListCategories(context.Background())
	require.NoError(t, err)
	assert.False(t, delivered)
}

func TestCancelledContext(t *testing.T) {
	c, srv, _ := newClient(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListCategories(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, srv.Requests())
}
