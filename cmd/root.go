// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd is the newsdesk command line: it signs administrators in and
// out of the news portal, browses the public site, and manages categories,
// posts and the homepage layout from the terminal.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	apperrors "newsdesk/cli/internal/errors"
	"newsdesk/cli/internal/httperrors"
	"newsdesk/cli/internal/logging"
)

// skipApp marks commands that run without config, keyring or client.
const skipApp = "newsdesk/skip-app"

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "newsdesk",
		Short: "Manage the news portal from the terminal",
		Long: `newsdesk talks to the news portal API. Administrators log in once; the
session is kept in the OS keychain and sent only with admin requests.

Public commands (categories list, posts) work without logging in.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			for c := cmd; c != nil; c = c.Parent() {
				if c.Annotations[skipApp] == "true" {
					return nil
				}
			}
			a, err := buildApp(cmd, opts)
			if err != nil {
				return err
			}
			cmd.SetContext(withApp(cmd.Context(), a))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "portal API base URL (overrides config and NEWSDESK_API_URL)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log requests and responses to stderr")

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newCategoriesCmd(),
		newPostsCmd(),
		newAdminCmd(),
		newLayoutCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	root := newRootCmd()
	cmd, err := root.ExecuteC()
	if err != nil {
		report(root.ErrOrStderr(), cmd, err)
		os.Exit(1)
	}
}

// report prints err unless it was already shown as a notice, then adds
// network troubleshooting when the portal could not be reached.
func report(w io.Writer, cmd *cobra.Command, err error) {
	var sh shownError
	if !errors.As(err, &sh) {
		pterm.Error.WithWriter(w).Println(logging.PresentError("", err))
	}
	if apperrors.KindOf(err) != apperrors.RequestFailed || apperrors.StatusOf(err) != 0 {
		return
	}
	if a, aerr := appFrom(cmd); aerr == nil {
		httperrors.Explain(w, err, "contacting the portal", a.cfg.APIURL)
	}
}

// shownError wraps a failure the user has already been told about.
type shownError struct{ err error }

func (e shownError) Error() string { return e.err.Error() }
func (e shownError) Unwrap() error { return e.err }

func shown(err error) error {
	if err == nil {
		return nil
	}
	return shownError{err: err}
}

// failed finishes an admin command after a view reported err. When the
// session expired during the call the guard has already said so.
func (a *app) failed(err error) error {
	if a.expired() {
		return shown(fmt.Errorf("session expired: run 'newsdesk login' again: %w", err))
	}
	return shown(err)
}
