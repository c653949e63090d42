// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bytes"
	"context"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/cli/internal/backend/backendtest"
)

// isolate points config and the file keyring at temp dirs.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("NEWSDESK_KEYRING_BACKEND", "file")
	t.Setenv("NEWSDESK_KEYRING_PASSWORD", "test-password")
	t.Setenv("NEWSDESK_LOG_LEVEL", "off")
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)
}

// run executes one CLI invocation against srv and returns everything printed.
func run(t *testing.T, srv *backendtest.Server, args ...string) (string, error) {
	t.Helper()
	return runWithInput(t, srv, "", args...)
}

func runWithInput(t *testing.T, srv *backendtest.Server, input string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(input))
	root.SetArgs(append([]string{"--api-url", srv.URL}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func login(t *testing.T, srv *backendtest.Server) {
	t.Helper()
	out, err := run(t, srv, "login", "--email", "a@b.com", "--password", "secret")
	require.NoError(t, err, out)
}

func TestSessionSurvivesBetweenInvocations(t *testing.T) {
	isolate(t)
	srv := backendtest.New(t)

	out, err := run(t, srv, "login", "--email", "a@b.com", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in")

	out, err = run(t, srv, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Current user: a@b.com")

	out, err = run(t, srv, "login", "--email", "a@b.com", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Already logged in as a@b.com")

	out, err = run(t, srv, "admin", "posts", "list", "--status", "draft")
	require.NoError(t, err)
	assert.Contains(t, out, "Rascunho de pauta")
	assert.Equal(t, "Bearer T", srv.LastRequest().Authorization)

	_, err = run(t, srv, "logout")
	require.NoError(t, err)
	out, err = run(t, srv, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in")
}

func TestLoginWithBadPassword(t *testing.T) {
	isolate(t)
	srv := backendtest.New(t)

	out, err := run(t, srv, "login", "--email", "a@b.com", "--password", "nope")
	require.Error(t, err)
	assert.ErrorAs(t, err, new(shownError))
	assert.Contains(t, out, "Login failed")

	out, _ = run(t, srv, "whoami")
	assert.Contains(t, out, "Not logged in")
}

func TestAdminCommandsNeedSession(t *testing.T) {
	isolate(t)
	srv := backendtest.New(t)

	for _, args := range [][]string{
		{"admin", "posts", "list"},
		{"categories", "create", "Cripto"},
		{"layout", "show"},
	} {
		_, err := run(t, srv, args...)
		assert.ErrorIs(t, err, errNotLoggedIn, strings.Join(args, " "))
	}
	assert.Empty(t, srv.Requests())
}

func TestExpiredSessionIsClearedAndReported(t *testing.T) {
	isolate(t)
	srv := backendtest.New(t)
	login(t, srv)
	srv.SetToken("rotated")

	out, err := run(t, srv, "layout", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session expired")
	assert.Equal(t, 1, strings.Count(out, "Session expired"))

	out, err = run(t, srv, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in")
}

func TestPublicCommandsWorkLoggedOut(t *testing.T) {
	isolate(t)
	srv := backendtest.New(t)

	out, err := run(t, srv, "categories", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Finanças")
	assert.Contains(t, out, "Mercado")

	out, err = run(t, srv, "posts", "list", "--category", "mercado")
	require.NoError(t, err)
	assert.Contains(t, out, "Bolsa fecha em alta")
	assert.NotContains(t, out, "Juros sobem")

	out, err = run(t, srv, "posts", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Juros sobem")
	assert.Contains(t, out, "01/03/2025 10:00")

	for _, r := range srv.Requests() {
		assert.Empty(t, r.Authorization)
	}
}

func TestFrontPageAndPostText(t *testing.T) {
	isolate(t)
	srv := backendtest.New(t)

	out, err := run(t, srv, "posts", "home")
	require.NoError(t, err)
	assert.Contains(t, out, "Juros sobem")
	assert.Contains(t, out, "O Copom elevou a Selic & o mercado reagiu.")
	assert.Contains(t, out, "Recent news")
	assert.Contains(t, out, "[2] Bolsa fecha em alta")
	assert.NotContains(t, out, "Rascunho de pauta")
	assert.NotContains(t, out, "<p>")

	out, err = run(t, srv, "posts", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Analistas esperam novas altas.")
	assert.NotContains(t, out, "<strong>")
	assert.NotContains(t, out, "&amp;")
}

func TestAdminDashboard(t *testing.T) {
	isolate(t)
	srv := backendtest.New(t)

	_, err := run(t, srv, "admin", "dashboard")
	assert.ErrorIs(t, err, errNotLoggedIn)

	login(t, srv)
	out, err := run(t, srv, "admin", "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Posts:      3 (2 published, 1 drafts among the latest)")
	assert.Contains(t, out, "Categories: 2")
	assert.Contains(t, out, "Rascunho de pauta")
}

func TestCategoryCommands(t *testing.T) {
	isolate(t)
	srv := backendtest.New(t)
	login(t, srv)

	out, err := run(t, srv, "categories", "create", "   ")
	require.Error(t, err)
	assert.Contains(t, out, "cannot be empty")

	out, err = run(t, srv, "categories", "create", "Criptomoedas")
	require.NoError(t, err)
	assert.Contains(t, out, "3 categories total")

	_, err = run(t, srv, "categories", "delete", "2")
	require.Error(t, err, "deleting needs --yes without a terminal")
	assert.Len(t, srv.Categories(), 3)

	_, err = run(t, srv, "categories", "delete", "2", "--yes")
	require.NoError(t, err)
	assert.Len(t, srv.Categories(), 2)
}

func TestAdminPostLifecycle(t *testing.T) {
	isolate(t)
	srv := backendtest.New(t)
	login(t, srv)

	out, err := run(t, srv, "admin", "posts", "create", "--title", "Dólar recua", "--content", "<p>Texto</p>", "--category", "Mercado")
	require.NoError(t, err, out)
	assert.Contains(t, out, "saved as draft")
	assert.JSONEq(t, `{"title":"Dólar recua","content":"<p>Texto</p>","categoryId":2,"status":"draft"}`, srv.LastRequest().Body)

	id := srv.Posts()[len(srv.Posts())-1].ID
	idArg := strconv.FormatInt(id, 10)

	_, err = run(t, srv, "admin", "posts", "update", idArg, "--status", "published")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"published"}`, srv.LastRequest().Body)

	_, err = run(t, srv, "admin", "posts", "create", "--content", "x")
	require.Error(t, err, "missing title is rejected before any request")

	_, err = run(t, srv, "admin", "posts", "delete", idArg, "--yes")
	require.NoError(t, err)
	for _, p := range srv.Posts() {
		assert.NotEqual(t, id, p.ID)
	}
}

func TestLayoutCommands(t *testing.T) {
	isolate(t)
	srv := backendtest.New(t)
	login(t, srv)

	_, err := run(t, srv, "layout", "move", "featured", "down")
	require.NoError(t, err)
	assert.Equal(t, []string{"recent", "featured", "popular"}, srv.Layout())

	out, err := run(t, srv, "layout", "move", "popular", "down")
	require.NoError(t, err)
	assert.Contains(t, out, "already at the bottom")
	assert.Equal(t, []string{"recent", "featured", "popular"}, srv.Layout())

	_, err = run(t, srv, "layout", "move", "popular", "up")
	require.NoError(t, err)
	assert.Equal(t, []string{"recent", "popular", "featured"}, srv.Layout())

	out, err = run(t, srv, "layout", "move", "recent", "up")
	require.NoError(t, err)
	assert.Contains(t, out, "already at the top")
	assert.Equal(t, []string{"recent", "popular", "featured"}, srv.Layout())

	out, err = run(t, srv, "layout", "set", "popular", "category-crypto")
	require.NoError(t, err)
	assert.Equal(t, []string{"popular", "category-crypto"}, srv.Layout())
	assert.Contains(t, out, "Criptomoedas")

	_, err = run(t, srv, "layout", "set", "popular", "popular")
	assert.Error(t, err)
}

func TestLoginPasswordFromStdin(t *testing.T) {
	isolate(t)
	srv := backendtest.New(t)

	out, err := runWithInput(t, srv, "secret\n", "login", "--email", "a@b.com", "--password-stdin")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Logged in")

	_, err = run(t, srv, "login", "--force", "--email", "a@b.com")
	require.Error(t, err, "no password and no terminal")

	out, err = run(t, srv, "login", "--force", "--email", "a@b.com", "--password", "nope")
	require.Error(t, err)
	assert.Contains(t, out, "Login failed")

	out, err = run(t, srv, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Current user: a@b.com", "a failed relogin keeps the old session")
}

func TestWhoamiVerify(t *testing.T) {
	isolate(t)
	srv := backendtest.New(t)
	login(t, srv)

	out, err := run(t, srv, "whoami", "--verify")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Current user: a@b.com")
	assert.Equal(t, "Bearer T", srv.LastRequest().Authorization)

	srv.SetToken("rotated")
	out, err = run(t, srv, "whoami", "--verify")
	require.Error(t, err)
	assert.Contains(t, out, "Session expired")

	out, err = run(t, srv, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in")
}

func TestConfigCommands(t *testing.T) {
	isolate(t)
	srv := backendtest.New(t)

	out, err := run(t, srv, "config", "set-api-url", "https://news.example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "API URL set to https://news.example.com")

	out, err = run(t, srv, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "api_url: https://news.example.com")
	assert.NotContains(t, out, "test-password")

	_, err = run(t, srv, "config", "set-api-url", "ftp://news.example.com")
	require.Error(t, err)
	assert.Empty(t, srv.Requests())
}

func TestVersionNeedsNoSetup(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "newsdesk "+Version+"\n", out.String())
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 0, 0, time.UTC)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()}).SignedString([]byte("k"))
	require.NoError(t, err)

	got, ok := tokenExpiry(signed)
	require.True(t, ok)
	assert.True(t, got.Equal(exp))

	_, ok = tokenExpiry("T")
	assert.False(t, ok, "opaque tokens have no expiry")

	now := exp.Add(-90 * time.Minute)
	assert.Contains(t, describeExpiry(exp, now), "(in 1h30m0s)")
	assert.Contains(t, describeExpiry(exp, exp.Add(time.Second)), "(expired)")
}
