// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"newsdesk/cli/internal/backend"
	"newsdesk/cli/internal/navigation"
	"newsdesk/cli/internal/views"
)

func newPostsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Read published posts",
	}
	cmd.AddCommand(newPostsHomeCmd(), newPostsListCmd(), newPostsShowCmd())
	return cmd
}

func newPostsHomeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Show the front page: the featured post and recent news",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			a.loc.Navigate(navigation.Home)

			h := views.NewHome(a.client, a.notifier)
			if err := h.Load(cmd.Context()); err != nil {
				return shown(err)
			}
			featured := h.Featured()
			if featured == nil {
				fmt.Fprintln(a.out, "No posts found.")
				return nil
			}

			fmt.Fprintf(a.out, "%s | %s\n", featured.CategoryName, backend.FormatDate(featured.CreatedAt))
			fmt.Fprintln(a.out, featured.Title)
			fmt.Fprintln(a.out, views.Preview(featured.Content, 2*views.PreviewLength))
			fmt.Fprintf(a.out, "Read more: newsdesk posts show %d\n", featured.ID)

			recent := h.Recent()
			if len(recent) == 0 {
				return nil
			}
			fmt.Fprintln(a.out, "\nRecent news")
			for _, p := range recent {
				fmt.Fprintf(a.out, "\n[%d] %s (%s, %s)\n", p.ID, p.Title, p.CategoryName, backend.FormatDate(p.CreatedAt))
				if preview := views.Preview(p.Content, views.PreviewLength); preview != "" {
					fmt.Fprintf(a.out, "    %s\n", preview)
				}
			}
			return nil
		},
	}
}

func newPostsListCmd() *cobra.Command {
	var (
		category string
		page     int
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List published posts, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			categoryID, err := resolveCategory(ctx, a, category)
			if err != nil {
				return err
			}
			if categoryID > 0 {
				a.loc.Navigate(navigation.Category(categoryID))
			} else {
				a.loc.Navigate(navigation.Home)
			}

			feed := views.NewFeed(a.client, a.notifier, a.cfg.PageSize)
			if err := feed.Load(ctx, categoryID, page); err != nil {
				return shown(err)
			}
			res := feed.Result()
			if len(res.Posts) == 0 {
				fmt.Fprintln(a.out, "No posts found.")
				return nil
			}
			if err := renderTable(a.out, postHeader, postRows(res.Posts)); err != nil {
				return err
			}
			pageFooter(a.out, res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "category id or name")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}

func newPostsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a.loc.Navigate(navigation.Post(id))

			p, err := views.NewFeed(a.client, a.notifier, a.cfg.PageSize).Post(cmd.Context(), id)
			if err != nil {
				return shown(err)
			}
			printPost(a, p)
			return nil
		},
	}
}

func printPost(a *app, p *backend.Post) {
	fmt.Fprintln(a.out, p.Title)
	fmt.Fprintln(a.out, strings.Repeat("=", len([]rune(p.Title))))
	meta := []string{}
	if p.CategoryName != "" {
		meta = append(meta, p.CategoryName)
	}
	if p.Status != "" {
		meta = append(meta, string(p.Status))
	}
	if p.CreatedAt != "" {
		meta = append(meta, backend.FormatDate(p.CreatedAt))
	}
	if len(meta) > 0 {
		fmt.Fprintln(a.out, strings.Join(meta, " | "))
	}
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, views.PlainText(p.Content))
}

// resolveCategory accepts an id or a case-insensitive category name.
func resolveCategory(ctx context.Context, a *app, s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if id, err := strconv.ParseInt(s, 10, 64); err == nil && id > 0 {
		return id, nil
	}
	v := views.NewCategories(a.client, a.notifier)
	if err := v.Load(ctx); err != nil {
		return 0, shown(err)
	}
	for _, c := range v.Items() {
		if strings.EqualFold(c.Name, s) {
			return c.ID, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}
