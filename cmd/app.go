// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"newsdesk/cli/internal/auth"
	"newsdesk/cli/internal/backend"
	"newsdesk/cli/internal/config"
	"newsdesk/cli/internal/guard"
	"newsdesk/cli/internal/keychain"
	"newsdesk/cli/internal/logging"
	"newsdesk/cli/internal/navigation"
	"newsdesk/cli/internal/notify"
	"newsdesk/cli/internal/xdg"
)

// app is everything a command needs, built once per invocation.
type app struct {
	cfg      config.Config
	log      zerolog.Logger
	store    *keychain.Manager
	client   *backend.Client
	session  *auth.Manager
	loc      *navigation.Location
	notifier notify.Notifier
	out      io.Writer
	in       *bufio.Reader
}

type appKey struct{}

// rootOptions holds the persistent flags.
type rootOptions struct {
	apiURL  string
	verbose bool
}

func buildApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if opts.apiURL != "" {
		cfg.APIURL = opts.apiURL
	}
	if opts.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)

	dataDir, err := xdg.DataDir()
	if err != nil {
		return nil, fmt.Errorf("locate data dir: %w", err)
	}
	store, err := keychain.Open(cfg.APIURL, keychain.Options{
		Backend:  cfg.Keyring.Backend,
		FileDir:  filepath.Join(dataDir, "keyring"),
		Password: cfg.Keyring.Password,
	})
	if err != nil {
		return nil, err
	}

	client := backend.New(cfg.APIURL, store,
		backend.WithTimeout(cfg.Timeout),
		backend.WithLogger(log),
	)
	n := notify.NewTerminal(cmd.OutOrStdout())

	session := auth.NewManager(store, client, n, auth.WithLogger(log))
	session.Init()

	loc := navigation.New(navigation.Home)
	loc.OnChange(func(from, to string) {
		log.Debug().Str("from", from).Str("to", to).Msg("navigate")
	})
	guard.New(loc, session, n, log).Attach(client)

	log.Debug().Str("api_url", cfg.APIURL).Str("session", session.State().Status.String()).Msg("ready")

	return &app{
		cfg:      cfg,
		log:      log,
		store:    store,
		client:   client,
		session:  session,
		loc:      loc,
		notifier: n,
		out:      cmd.OutOrStdout(),
		in:       bufio.NewReader(cmd.InOrStdin()),
	}, nil
}

func withApp(ctx context.Context, a *app) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

func appFrom(cmd *cobra.Command) (*app, error) {
	if ctx := cmd.Context(); ctx != nil {
		if a, ok := ctx.Value(appKey{}).(*app); ok {
			return a, nil
		}
	}
	return nil, errors.New("internal: command ran without an initialized app")
}

// errNotLoggedIn is returned by admin screens opened without a session.
var errNotLoggedIn = errors.New("not logged in: run 'newsdesk login' first")

// enter navigates to path. Admin screens other than login require a session;
// without one the user is sent to the login screen instead.
func (a *app) enter(path string) error {
	if navigation.RequiresSession(path) && !a.session.State().IsAuthenticated() {
		a.loc.Navigate(navigation.LoginPath)
		return errNotLoggedIn
	}
	a.loc.Navigate(path)
	return nil
}

// expired reports whether the last call ended the session and moved the user
// to the login screen.
func (a *app) expired() bool {
	return a.loc.Path() == navigation.LoginPath
}

// stdinFile returns the command's stdin when it is the process stdin.
func stdinFile(cmd *cobra.Command) (*os.File, bool) {
	f, ok := cmd.InOrStdin().(*os.File)
	return f, ok
}
