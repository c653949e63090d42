// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"newsdesk/cli/internal/navigation"
	"newsdesk/cli/internal/terminal"
)

func newLoginCmd() *cobra.Command {
	var (
		email         string
		password      string
		passwordStdin bool
		force         bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as a portal administrator",
		Long: `The login command exchanges an administrator's email and password for a
session token and stores both in the OS keychain. Missing values are prompted for;
the password is read without echo.

If a session already exists the command does nothing unless --force is given.`,
		Example: `  newsdesk login --email editor@example.com
  echo "$PASSWORD" | newsdesk login --email editor@example.com --password-stdin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := a.enter(navigation.LoginPath); err != nil {
				return err
			}

			if st := a.session.State(); st.IsAuthenticated() && !force {
				fmt.Fprintf(a.out, "Already logged in as %s\n", st.User.Email)
				return nil
			}

			if email == "" {
				if email, err = terminal.Prompt(a.in, a.out, "Email: "); err != nil {
					return fmt.Errorf("read email: %w", err)
				}
			}
			switch {
			case passwordStdin:
				b, err := io.ReadAll(a.in)
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(string(b), "\r\n")
			case password == "":
				f, ok := stdinFile(cmd)
				if !ok || !terminal.IsInteractive(f) {
					return errors.New("no password given: use --password-stdin when not on a terminal")
				}
				if password, err = terminal.ReadSecret(f, a.out, "Password: "); err != nil {
					return fmt.Errorf("read password: %w", err)
				}
			}

			stop := startSpinner(a.out, "Signing in")
			ok := a.session.Login(cmd.Context(), email, password)
			stop()
			if !ok {
				return shown(errors.New("login failed"))
			}
			a.loc.Navigate(navigation.AdminPrefix)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "administrator email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prefer the prompt or --password-stdin)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	cmd.Flags().BoolVar(&force, "force", false, "log in again even when a session exists")
	return cmd
}
