// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"newsdesk/cli/internal/navigation"
)

func newWhoamiCmd() *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in administrator",
		Long: `The whoami command prints the email of the stored session. It does not contact
the portal unless --verify is given, in which case an admin request is made and
an expired session is cleared.

When the token is a JWT its expiry is shown. The token is not verified locally;
only the portal decides whether it is still valid.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}

			st := a.session.State()
			if !st.IsAuthenticated() {
				fmt.Fprintln(a.out, "Not logged in. Run 'newsdesk login' to get started.")
				return nil
			}

			if verify {
				if err := a.enter(navigation.Dashboard); err != nil {
					return err
				}
				if _, err := a.client.GetHomepageLayout(cmd.Context()); err != nil {
					return a.failed(err)
				}
			}

			fmt.Fprintf(a.out, "Current user: %s\n", st.User.Email)
			fmt.Fprintf(a.out, "Portal:       %s\n", a.cfg.APIURL)

			token, ok, err := a.store.Token()
			if err != nil || !ok {
				return nil
			}
			if exp, ok := tokenExpiry(token); ok {
				fmt.Fprintf(a.out, "Expires:      %s\n", describeExpiry(exp, time.Now()))
			}
			a.loc.Navigate(navigation.Home)
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "check the session against the portal")
	return cmd
}

// tokenExpiry reads the exp claim of a JWT without verifying its signature.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func describeExpiry(exp, now time.Time) string {
	stamp := exp.Local().Format("02/01/2006 15:04")
	if !exp.After(now) {
		return stamp + " (expired)"
	}
	return fmt.Sprintf("%s (in %s)", stamp, exp.Sub(now).Round(time.Minute))
}
