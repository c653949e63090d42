// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"newsdesk/cli/internal/navigation"
	"newsdesk/cli/internal/views"
)

func newCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "List and manage post categories",
	}
	cmd.AddCommand(newCategoriesListCmd(), newCategoriesCreateCmd(), newCategoriesDeleteCmd())
	return cmd
}

func newCategoriesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List categories",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			a.loc.Navigate(navigation.Home)

			v := views.NewCategories(a.client, a.notifier)
			if err := v.Load(cmd.Context()); err != nil {
				return shown(err)
			}
			items := v.Items()
			if len(items) == 0 {
				fmt.Fprintln(a.out, "No categories yet.")
				return nil
			}
			rows := make([][]string, 0, len(items))
			for _, c := range items {
				rows = append(rows, []string{strconv.FormatInt(c.ID, 10), c.Name})
			}
			return renderTable(a.out, []string{"ID", "Name"}, rows)
		},
	}
}

func newCategoriesCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := a.enter(navigation.Categories); err != nil {
				return err
			}

			v := views.NewCategories(a.client, a.notifier)
			c, err := v.Create(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return a.failed(err)
			}
			fmt.Fprintf(a.out, "Created category %d (%s)\n", c.ID, c.Name)
			return nil
		},
	}
}

func newCategoriesDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a category",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.enter(navigation.Categories); err != nil {
				return err
			}

			ctx := cmd.Context()
			v := views.NewCategories(a.client, a.notifier)
			if err := v.Load(ctx); err != nil {
				return a.failed(err)
			}
			c, ok := v.Find(id)
			if !ok {
				return fmt.Errorf("category %d not found", id)
			}
			sure, err := confirm(cmd, yes, fmt.Sprintf("Delete category %q? Posts in it may be affected.", c.Name))
			if err != nil || !sure {
				return err
			}
			if err := v.Delete(ctx, c); err != nil {
				return a.failed(err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
