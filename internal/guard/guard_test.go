// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package guard_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/cli/internal/auth"
	"newsdesk/cli/internal/backend"
	"newsdesk/cli/internal/backend/backendtest"
	"newsdesk/cli/internal/guard"
	"newsdesk/cli/internal/keychain"
	"newsdesk/cli/internal/navigation"
	"newsdesk/cli/internal/notify"
)

type harness struct {
	srv       *backendtest.Server
	store     *keychain.Manager
	client    *backend.Client
	loc       *navigation.Location
	rec       *notify.Recorder
	mgr       *auth.Manager
	redirects []string
}

func newHarness(t *testing.T, at string) *harness {
	t.Helper()
	h := &harness{srv: backendtest.New(t), rec: &notify.Recorder{}}
	h.store = keychain.NewMemory(h.srv.URL)
	require.NoError(t, h.store.SaveSession(keychain.Session{Token: "T", UserEmail: "a@b.com"}))
	h.client = backend.New(h.srv.URL, h.store)
	h.mgr = auth.NewManager(h.store, h.client, h.rec)
	h.mgr.Init()
	h.loc = navigation.New(at)
	h.loc.OnChange(func(_, to string) { h.redirects = append(h.redirects, to) })
	guard.New(h.loc, h.mgr, h.rec, zerolog.Nop()).Attach(h.client)
	return h
}

func TestExpiredSessionOnAdminScreenRedirectsOnce(t *testing.T) {
	h := newHarness(t, "/admin/posts")
	h.srv.SetToken("rotated")
	ctx := context.Background()

	_, err := h.client.ListAdminPosts(ctx, backend.AdminPostQuery{})
	require.Error(t, err)
	_, err = h.client.GetHomepageLayout(ctx)
	require.Error(t, err)

	_, hasToken, _ := h.store.Get(keychain.KeyToken)
	_, hasEmail, _ := h.store.Get(keychain.KeyUserEmail)
	assert.False(t, hasToken)
	assert.False(t, hasEmail)

	assert.Equal(t, []string{navigation.LoginPath}, h.redirects)
	assert.Equal(t, navigation.LoginPath, h.loc.Path())
	assert.Equal(t, auth.Unauthenticated, h.mgr.State().Status)

	notices := h.rec.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, "Session expired", notices[0].Title)
}

func TestExpiredSessionOffAdminScreenDoesNotRedirect(t *testing.T) {
	for _, at := range []string{navigation.LoginPath, navigation.Home, "/posts/1"} {
		t.Run(at, func(t *testing.T) {
			h := newHarness(t, at)
			h.srv.SetToken("rotated")

			_, err := h.client.GetHomepageLayout(context.Background())
			require.Error(t, err)

			assert.Empty(t, h.redirects)
			assert.Empty(t, h.rec.Notices())
			assert.Equal(t, auth.Unauthenticated, h.mgr.State().Status, "memory follows the cleared store")
		})
	}
}

func TestServerFaultNotifiesWithoutRedirect(t *testing.T) {
	h := newHarness(t, "/admin/categories")
	h.srv.FailNext(http.MethodGet, "/categories", http.StatusServiceUnavailable)

	_, err := h.client.ListCategories(context.Background())
	require.Error(t, err)

	assert.Empty(t, h.redirects)
	s, ok, _ := h.store.LoadSession()
	assert.True(t, ok)
	assert.Equal(t, "T", s.Token)
	assert.Equal(t, auth.Authenticated, h.mgr.State().Status)

	n, ok := h.rec.Last()
	require.True(t, ok)
	assert.Equal(t, notify.Error, n.Level)
	assert.Equal(t, "Server error", n.Title)
}

func TestOtherOutcomesAreIgnored(t *testing.T) {
	h := newHarness(t, "/admin/posts")

	_, err := h.client.GetPost(context.Background(), 404)
	require.Error(t, err)
	_, err = h.client.ListCategories(context.Background())
	require.NoError(t, err)

	assert.Empty(t, h.redirects)
	assert.Empty(t, h.rec.Notices())
}
