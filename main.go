// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package main is the entry point for the newsdesk CLI.
package main

import (
	"newsdesk/cli/cmd"
)

func main() {
	cmd.Execute()
}
