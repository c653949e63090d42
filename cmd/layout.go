// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"newsdesk/cli/internal/navigation"
	"newsdesk/cli/internal/terminal"
	"newsdesk/cli/internal/views"
)

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Arrange the homepage blocks",
		Long: `The homepage is an ordered list of blocks (featured, recent, per-category
sections, most read). These commands show and reorder that list.`,
	}
	cmd.AddCommand(newLayoutShowCmd(), newLayoutMoveCmd(), newLayoutSetCmd(), newLayoutEditCmd())
	return cmd
}

// openLayout enters the editor screen and loads the current layout.
func openLayout(cmd *cobra.Command) (*app, *views.LayoutEditor, error) {
	a, err := appFrom(cmd)
	if err != nil {
		return nil, nil, err
	}
	if err := a.enter(navigation.LayoutEditor); err != nil {
		return nil, nil, err
	}
	e := views.NewLayoutEditor(a.client, a.notifier)
	if err := e.Load(cmd.Context()); err != nil {
		return nil, nil, a.failed(err)
	}
	return a, e, nil
}

func printBlocks(a *app, blocks []views.Block) error {
	if len(blocks) == 0 {
		fmt.Fprintln(a.out, "The homepage has no blocks.")
		return nil
	}
	rows := make([][]string, 0, len(blocks))
	for i, b := range blocks {
		rows = append(rows, []string{strconv.Itoa(i + 1), b.ID, b.Name})
	}
	return renderTable(a.out, []string{"#", "Block", "Name"}, rows)
}

func newLayoutShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the homepage block order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, e, err := openLayout(cmd)
			if err != nil {
				return err
			}
			return printBlocks(a, e.Blocks())
		},
	}
}

func newLayoutMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "move <block> up|down",
		Short:     "Move one block up or down and save",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := strings.ToLower(args[1])
			if dir != "up" && dir != "down" {
				return fmt.Errorf("direction must be up or down, got %q", args[1])
			}
			a, e, err := openLayout(cmd)
			if err != nil {
				return err
			}

			i := slices.Index(e.IDs(), args[0])
			if i < 0 {
				return fmt.Errorf("block %q is not on the homepage", args[0])
			}
			var moved bool
			if dir == "up" {
				moved = e.MoveUp(i)
			} else {
				moved = e.MoveDown(i)
			}
			if !moved {
				fmt.Fprintf(a.out, "Block %s is already at the %s.\n", args[0], map[string]string{"up": "top", "down": "bottom"}[dir])
				return nil
			}
			if err := e.Save(cmd.Context()); err != nil {
				return a.failed(err)
			}
			return printBlocks(a, e.Blocks())
		},
	}
}

func newLayoutSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <block>...",
		Short: "Replace the homepage order",
		Example: `  newsdesk layout set featured recent category-finance popular
  newsdesk layout set    # empties the homepage`,
		RunE: func(cmd *cobra.Command, args []string) error {
			seen := map[string]bool{}
			for _, id := range args {
				if seen[id] {
					return fmt.Errorf("block %q listed twice", id)
				}
				seen[id] = true
			}
			a, e, err := openLayout(cmd)
			if err != nil {
				return err
			}
			e.Set(args)
			if err := e.Save(cmd.Context()); err != nil {
				return a.failed(err)
			}
			return printBlocks(a, e.Blocks())
		},
	}
}

const (
	optionSave   = "Save"
	optionCancel = "Cancel"
)

func newLayoutEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Reorder the homepage interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, ok := stdinFile(cmd)
			if !ok || !terminal.IsInteractive(f) {
				return errors.New("layout edit needs a terminal: use 'layout move' or 'layout set'")
			}
			a, e, err := openLayout(cmd)
			if err != nil {
				return err
			}

			for {
				blocks := e.Blocks()
				options := make([]string, 0, len(blocks)+2)
				for i, b := range blocks {
					options = append(options, fmt.Sprintf("%d. %s (%s)", i+1, b.Name, b.ID))
				}
				options = append(options, optionSave, optionCancel)

				choice, err := pterm.DefaultInteractiveSelect.
					WithOptions(options).
					WithDefaultText("Pick a block to move").
					Show()
				if err != nil {
					return err
				}
				switch choice {
				case optionCancel:
					if e.Dirty() {
						fmt.Fprintln(a.out, "Changes discarded.")
					}
					return nil
				case optionSave:
					if !e.Dirty() {
						fmt.Fprintln(a.out, "Nothing changed.")
						return nil
					}
					if err := e.Save(cmd.Context()); err != nil {
						return a.failed(err)
					}
					return printBlocks(a, e.Blocks())
				}

				i := slices.Index(options, choice)
				dir, err := pterm.DefaultInteractiveSelect.
					WithOptions([]string{"Up", "Down"}).
					Show("Move " + blocks[i].Name)
				if err != nil {
					return err
				}
				if dir == "Up" {
					e.MoveUp(i)
				} else {
					e.MoveDown(i)
				}
			}
		},
	}
}
