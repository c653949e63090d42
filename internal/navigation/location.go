// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package navigation tracks which screen the CLI is on. Commands set the
// location before they call the portal so that an expired session can send the
// user back to the login screen only when they were on an admin screen.
package navigation

import (
	"strconv"
	"strings"
	"sync"
)

const (
	// LoginPath is the admin login screen.
	LoginPath = "/admin/login"
	// AdminPrefix marks screens that require a session.
	AdminPrefix = "/admin"
	// Home is the public landing screen.
	Home = "/"
)

// Screens of the portal.
const (
	Dashboard    = "/admin"
	Categories   = "/admin/categorias"
	Posts        = "/admin/noticias"
	NewPost      = "/admin/noticias/nova"
	LayoutEditor = "/admin/layout"
)

// EditPost is the editor screen for post id.
func EditPost(id int64) string {
	return Posts + "/editar/" + strconv.FormatInt(id, 10)
}

// Category is the public listing for one category.
func Category(id int64) string {
	return "/categoria/" + strconv.FormatInt(id, 10)
}

// Post is the public page of one post.
func Post(id int64) string {
	return "/noticia/" + strconv.FormatInt(id, 10)
}

// Location is the current screen path. The zero value is at Home.
type Location struct {
	mu       sync.Mutex
	path     string
	onChange []func(from, to string)
}

// New returns a location at path.
func New(path string) *Location {
	return &Location{path: path}
}

// Path returns the current path.
func (l *Location) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.path == "" {
		return Home
	}
	return l.path
}

// Navigate moves to path and runs change hooks when the path differs.
func (l *Location) Navigate(path string) {
	l.mu.Lock()
	from := l.path
	if from == "" {
		from = Home
	}
	if path == from {
		l.mu.Unlock()
		return
	}
	l.path = path
	hooks := append([]func(string, string){}, l.onChange...)
	l.mu.Unlock()

	for _, fn := range hooks {
		fn(from, path)
	}
}

// OnChange registers fn to run after every path change.
func (l *Location) OnChange(fn func(from, to string)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// IsAdmin reports whether path is an admin screen.
func IsAdmin(path string) bool {
	return path == AdminPrefix || strings.HasPrefix(path, AdminPrefix+"/")
}

// RequiresSession reports whether path is an admin screen other than login.
func RequiresSession(path string) bool {
	return IsAdmin(path) && path != LoginPath
}
