// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package terminal handles interactive input: plain and hidden prompts, and
// erasing a prompt once it has been answered.
package terminal

import (
	"fmt"
	"io"
	"math"

	"golang.org/x/term"
)

// Width returns the terminal width for fd, or 80 when fd is not a terminal.
func Width(fd int) int {
	if width, _, err := term.GetSize(fd); err == nil && width > 0 {
		return width
	}
	return 80
}

// ClearPreviousLines erases textLength characters of already printed text,
// accounting for wrapping at the terminal width and the newline left by Enter.
func ClearPreviousLines(w io.Writer, fd, textLength int) {
	totalLines := int(math.Ceil(float64(textLength) / float64(Width(fd))))
	if totalLines < 1 {
		totalLines = 1
	}
	linesToClear := totalLines + 1

	for i := 0; i < linesToClear; i++ {
		fmt.Fprint(w, "\r\x1b[2K")
		if i < linesToClear-1 {
			fmt.Fprint(w, "\x1b[1A")
		}
	}
}
