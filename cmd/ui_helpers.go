// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"newsdesk/cli/internal/backend"
	"newsdesk/cli/internal/terminal"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// startSpinner animates text on one line of w until the returned function is
// called. Nothing is drawn when w is not a terminal.
func startSpinner(w io.Writer, text string) func() {
	f, ok := w.(*os.File)
	if !ok || !terminal.IsInteractive(f) {
		return func() {}
	}

	cursor.Hide()
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(120 * time.Millisecond)
		defer ticker.Stop()
		for i := 0; ; i++ {
			line := fmt.Sprintf("%s %s", spinnerFrames[i%len(spinnerFrames)], text)
			select {
			case <-stop:
				fmt.Fprintf(w, "\r%*s\r", len(line), "")
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s", line)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			wg.Wait()
			cursor.Show()
		})
	}
}

// renderTable prints rows under header with pterm.
func renderTable(w io.Writer, header []string, rows [][]string) error {
	data := append(pterm.TableData{header}, rows...)
	return pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render()
}

func postRows(posts []backend.Post) [][]string {
	rows := make([][]string, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.Title,
			p.CategoryName,
			string(p.Status),
			backend.FormatDate(p.CreatedAt),
		})
	}
	return rows
}

var postHeader = []string{"ID", "Title", "Category", "Status", "Created"}

func pageFooter(w io.Writer, page backend.PostPage) {
	switch {
	case page.Total >= 0:
		fmt.Fprintf(w, "\nPage %d, %d post(s) in total\n", page.Page, page.Total)
	case page.HasMore():
		fmt.Fprintf(w, "\nPage %d, more with --page %d\n", page.Page, page.Page+1)
	default:
		fmt.Fprintf(w, "\nPage %d\n", page.Page)
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// confirm asks a yes/no question. Without a terminal the answer must come from --yes.
func confirm(cmd *cobra.Command, yes bool, question string) (bool, error) {
	if yes {
		return true, nil
	}
	f, ok := stdinFile(cmd)
	if !ok || !terminal.IsInteractive(f) {
		return false, errors.New("refusing to delete without confirmation: pass --yes")
	}
	return pterm.DefaultInteractiveConfirm.WithDefaultValue(false).Show(question)
}

// readContent resolves --content-file: "-" is stdin, anything else a path.
func readContent(in *bufio.Reader, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(in)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}
