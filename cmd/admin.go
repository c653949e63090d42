// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"newsdesk/cli/internal/backend"
	"newsdesk/cli/internal/navigation"
	"newsdesk/cli/internal/views"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative commands (requires login)",
	}
	posts := &cobra.Command{
		Use:     "posts",
		Aliases: []string{"post"},
		Short:   "Manage posts, including drafts",
	}
	posts.AddCommand(
		newAdminPostsListCmd(),
		newAdminPostsCreateCmd(),
		newAdminPostsUpdateCmd(),
		newAdminPostsDeleteCmd(),
	)
	cmd.AddCommand(newAdminDashboardCmd(), posts)
	return cmd
}

func newAdminDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Summarize recent posts and categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := a.enter(navigation.Dashboard); err != nil {
				return err
			}

			d := views.NewDashboard(a.client, a.notifier)
			if err := d.Load(cmd.Context()); err != nil {
				return a.failed(err)
			}
			s := d.Summary()

			fmt.Fprintf(a.out, "Posts:      %d (%d published, %d drafts among the latest)\n", s.TotalPosts, s.Published, s.Drafts)
			fmt.Fprintf(a.out, "Categories: %d\n", s.Categories)
			if len(s.Recent) == 0 {
				fmt.Fprintln(a.out, "\nNo posts found.")
				return nil
			}
			fmt.Fprintln(a.out, "\nRecent posts")
			if err := renderTable(a.out, postHeader, postRows(s.Recent)); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "\nAll posts: newsdesk admin posts list")
			return nil
		},
	}
}

func newAdminPostsListCmd() *cobra.Command {
	var (
		category string
		status   string
		search   string
		page     int
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List posts with optional filters",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := a.enter(navigation.Posts); err != nil {
				return err
			}
			ctx := cmd.Context()

			categoryID, err := resolveCategory(ctx, a, category)
			if err != nil {
				return err
			}

			v := views.NewAdminPosts(a.client, a.notifier, a.cfg.PageSize)
			if err := v.Apply(ctx, views.Filters{
				CategoryID: categoryID,
				Status:     backend.PostStatus(status),
				Search:     search,
			}); err != nil {
				return a.failed(err)
			}
			if page > 1 {
				if err := v.GoTo(ctx, page); err != nil {
					return a.failed(err)
				}
			}

			res := v.Result()
			if len(res.Posts) == 0 {
				fmt.Fprintln(a.out, "No posts match.")
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
	cmd.Flags().StringVarP(&status, "status", "s", "", "published or draft")
	cmd.Flags().StringVarP(&search, "search", "q", "", "search in titles")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}

// postFlags are the editable fields shared by create and update.
type postFlags struct {
	title       string
	content     string
	contentFile string
	category    string
	status      string
}

func (f *postFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "post title")
	cmd.Flags().StringVar(&f.content, "content", "", "post body (HTML)")
	cmd.Flags().StringVarP(&f.contentFile, "content-file", "f", "", "read the body from a file, - for stdin")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "category id or name")
	cmd.Flags().StringVarP(&f.status, "status", "s", "", "published or draft")
	cmd.MarkFlagsMutuallyExclusive("content", "content-file")
}

// apply overlays the flags the user set onto in.
func (f *postFlags) apply(ctx context.Context, cmd *cobra.Command, a *app, in *backend.PostInput) error {
	flags := cmd.Flags()
	if flags.Changed("title") {
		in.Title = f.title
	}
	if flags.Changed("content") {
		in.Content = f.content
	}
	if flags.Changed("content-file") {
		body, err := readContent(a.in, f.contentFile)
		if err != nil {
			return fmt.Errorf("read content: %w", err)
		}
		in.Content = body
	}
	if flags.Changed("category") {
		id, err := resolveCategory(ctx, a, f.category)
		if err != nil {
			return err
		}
		in.CategoryID = id
	}
	if flags.Changed("status") {
		in.Status = backend.PostStatus(f.status)
	}
	return nil
}

func newAdminPostsCreateCmd() *cobra.Command {
	var f postFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		Long: `Create a post. Title, content and category are required; the status defaults
to draft. Without --category the first category is used.`,
		Example: `  newsdesk admin posts create -t "Juros sobem" -c Finanças -f post.html -s published`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := a.enter(navigation.NewPost); err != nil {
				return err
			}
			ctx := cmd.Context()

			form := views.NewPostForm(a.client, a.notifier)
			in := form.Values()
			if err := f.apply(ctx, cmd, a, &in); err != nil {
				return err
			}
			if in.CategoryID == 0 {
				cats := views.NewCategories(a.client, a.notifier)
				if err := cats.Load(ctx); err == nil && len(cats.Items()) > 0 {
					in.CategoryID = cats.Items()[0].ID
				}
			}

			p, err := form.Submit(ctx, in)
			if err != nil {
				return a.failed(err)
			}
			fmt.Fprintf(a.out, "Post %d saved as %s\n", p.ID, p.Status)
			a.loc.Navigate(navigation.Posts)
			return nil
		},
	}

	f.register(cmd)
	return cmd
}

func newAdminPostsUpdateCmd() *cobra.Command {
	var f postFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a post",
		Long:  `Update a post. Only the fields given as flags are sent.`,
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
			if err := a.enter(navigation.EditPost(id)); err != nil {
				return err
			}
			ctx := cmd.Context()

			form := views.NewPostForm(a.client, a.notifier)
			if err := form.Edit(ctx, id); err != nil {
				a.loc.Navigate(navigation.Posts)
				return a.failed(err)
			}
			in := form.Values()
			if err := f.apply(ctx, cmd, a, &in); err != nil {
				return err
			}
			if _, err := form.Submit(ctx, in); err != nil {
				return a.failed(err)
			}
			a.loc.Navigate(navigation.Posts)
			return nil
		},
	}

	f.register(cmd)
	return cmd
}

func newAdminPostsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a post",
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
			if err := a.enter(navigation.Posts); err != nil {
				return err
			}
			ctx := cmd.Context()

			p := backend.Post{ID: id}
			if got, err := a.client.GetPost(ctx, id); err == nil {
				p = *got
			}
			label := p.Title
			if label == "" {
				label = fmt.Sprintf("#%d", id)
			}
			sure, err := confirm(cmd, yes, fmt.Sprintf("Delete post %q?", label))
			if err != nil || !sure {
				return err
			}

			v := views.NewAdminPosts(a.client, a.notifier, a.cfg.PageSize)
			if err := v.Delete(ctx, p); err != nil {
				return a.failed(err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
