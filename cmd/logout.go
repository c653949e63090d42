// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/spf13/cobra"

	"newsdesk/cli/internal/navigation"
)

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and remove the stored token",
		Long: `The logout command removes the session token and email from the OS keychain.
The portal keeps no server-side session, so nothing is sent to it. Running
logout when already logged out is harmless.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			a.session.Logout()
			a.loc.Navigate(navigation.Home)
			return nil
		},
	}
}
