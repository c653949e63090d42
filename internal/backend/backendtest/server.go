// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backendtest runs an in-memory news portal API for tests.
// It serves the same routes as the real portal, checks the bearer token on
// /admin routes, records every request and can be told to fail the next call
// to a route with a given status.
package backendtest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"newsdesk/cli/internal/backend"
)

// Request is what the server saw for one call.
type Request struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	Body          string
}

// Server is a fake portal. Fields may be seeded before the first request;
// use the accessor methods afterwards.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	users      map[string]string
	token      string
	categories []backend.Category
	posts      []backend.Post
	layout     []string
	requests   []Request
	failures   map[string]int
	sendTotal  bool
	nextID     int64
}

// New starts a server with one user (a@b.com / secret) issuing token "T",
// two categories, three posts and a three-block layout. It is closed when the
// test ends.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		users: map[string]string{"a@b.com": "secret"},
		token: "T",
		categories: []backend.Category{
			{ID: 1, Name: "Finanças"},
			{ID: 2, Name: "Mercado"},
		},
		posts: []backend.Post{
			{ID: 1, Title: "Juros sobem", Content: "<p>O Copom elevou a <strong>Selic</strong> &amp; o mercado reagiu.</p><p>Analistas esperam novas altas.</p>", CategoryID: 1, CategoryName: "Finanças", Status: backend.StatusPublished, CreatedAt: "2025-03-01T10:00:00Z", UpdatedAt: "2025-03-01T10:00:00Z"},
			{ID: 2, Title: "Bolsa fecha em alta", Content: "...", CategoryID: 2, CategoryName: "Mercado", Status: backend.StatusPublished, CreatedAt: "2025-03-02T10:00:00Z", UpdatedAt: "2025-03-02T10:00:00Z"},
			{ID: 3, Title: "Rascunho de pauta", Content: "...", CategoryID: 1, CategoryName: "Finanças", Status: backend.StatusDraft, CreatedAt: "2025-03-03T10:00:00Z", UpdatedAt: "2025-03-03T10:00:00Z"},
		},
		layout:   []string{"featured", "recent", "popular"},
		failures: map[string]int{},
		nextID:   100,
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record, s.injectFailures)

	r.Post("/auth/login", s.login)
	r.Get("/categories", s.listCategories)
	r.Get("/posts", s.listPublicPosts)
	r.Get("/posts/{id}", s.getPost)

	r.Route("/admin", func(r chi.Router) {
		r.Use(s.requireToken)
		r.Post("/categories", s.createCategory)
		r.Delete("/categories/{id}", s.deleteCategory)
		r.Get("/posts", s.listAdminPosts)
		r.Post("/posts", s.createPost)
		r.Put("/posts/{id}", s.updatePost)
		r.Delete("/posts/{id}", s.deletePost)
		r.Get("/layout/homepage", s.getLayout)
		r.Put("/layout/homepage", s.putLayout)
	})
	return r
}

// FailNext makes the next request to method+path answer with status.
func (s *Server) FailNext(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = status
}

// SendTotals makes list endpoints send X-Total-Count.
func (s *Server) SendTotals(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sendTotal = on
}

// SetToken changes the token the server issues and accepts.
func (s *Server) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// SetLayout replaces the stored block order.
func (s *Server) SetLayout(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layout = slices.Clone(ids)
}

// AddPosts appends posts, assigning ids to those without one.
func (s *Server) AddPosts(posts ...backend.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range posts {
		if p.ID == 0 {
			s.nextID++
			p.ID = s.nextID
		}
		s.posts = append(s.posts, p)
	}
}

// Requests returns every request seen so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// LastRequest returns the most recent request, or the zero value.
func (s *Server) LastRequest() Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}
	}
	return s.requests[len(s.requests)-1]
}

// Layout returns the stored block order.
func (s *Server) Layout() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.layout)
}

// Categories returns the stored categories.
func (s *Server) Categories() []backend.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.categories)
}

// Posts returns every stored post, drafts included.
func (s *Server) Posts() []backend.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.posts)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			Body:          string(body),
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		s.mu.Lock()
		status, ok := s.failures[key]
		delete(s.failures, key)
		s.mu.Unlock()

		if ok {
			writeJSON(w, status, map[string]string{"error": http.StatusText(status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		want := "Bearer " + s.token
		s.mu.Unlock()

		if r.Header.Get("Authorization") != want {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if pw, ok := s.users[req.Email]; !ok || pw != req.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token": s.token,
		"user":  map[string]any{"email": req.Email},
	})
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Categories())
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	s.mu.Lock()
	s.nextID++
	c := backend.Category{ID: s.nextID, Name: req.Name}
	s.categories = append(s.categories, c)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.categories, func(c backend.Category) bool { return c.ID == id })
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "category not found"})
		return
	}
	s.categories = slices.Delete(s.categories, i, i+1)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listPublicPosts(w http.ResponseWriter, r *http.Request) {
	s.listPosts(w, r, true)
}

func (s *Server) listAdminPosts(w http.ResponseWriter, r *http.Request) {
	s.listPosts(w, r, false)
}

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request, publishedOnly bool) {
	q := r.URL.Query()
	categoryID, _ := strconv.ParseInt(q.Get("categoryId"), 10, 64)
	status := backend.PostStatus(q.Get("status"))
	search := strings.ToLower(q.Get("search"))
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	if page <= 0 {
		page = 1
	}

	s.mu.Lock()
	var matched []backend.Post
	for _, p := range s.posts {
		if publishedOnly && p.Status != backend.StatusPublished {
			continue
		}
		if categoryID > 0 && p.CategoryID != categoryID {
			continue
		}
		if status != "" && p.Status != status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Title), search) {
			continue
		}
		matched = append(matched, p)
	}
	sendTotal := s.sendTotal
	s.mu.Unlock()

	total := len(matched)
	if limit > 0 {
		start := min((page-1)*limit, total)
		end := min(start+limit, total)
		matched = matched[start:end]
	}
	if matched == nil {
		matched = []backend.Post{}
	}
	if sendTotal {
		w.Header().Set("X-Total-Count", strconv.Itoa(total))
	}
	writeJSON(w, http.StatusOK, matched)
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.ID == id {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "post not found"})
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	var in backend.PostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}
	now := time.Now().UTC().Format(time.RFC3339)

	s.mu.Lock()
	s.nextID++
	p := backend.Post{
		ID:         s.nextID,
		Title:      in.Title,
		Content:    in.Content,
		CategoryID: in.CategoryID,
		Status:     in.Status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.posts = append(s.posts, p)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) updatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch backend.PostPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		p := &s.posts[i]
		if p.ID != id {
			continue
		}
		if patch.Title != nil {
			p.Title = *patch.Title
		}
		if patch.Content != nil {
			p.Content = *patch.Content
		}
		if patch.CategoryID != nil {
			p.CategoryID = *patch.CategoryID
		}
		if patch.Status != nil {
			p.Status = *patch.Status
		}
		p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		writeJSON(w, http.StatusOK, *p)
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "post not found"})
}

func (s *Server) deletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.posts, func(p backend.Post) bool { return p.ID == id })
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "post not found"})
		return
	}
	s.posts = slices.Delete(s.posts, i, i+1)
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) getLayout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Layout())
}

func (s *Server) putLayout(w http.ResponseWriter, r *http.Request) {
	var ids []string
	if err := json.NewDecoder(r.Body).Decode(&ids); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "expected an array of block ids"})
		return
	}
	s.SetLayout(ids)
	writeJSON(w, http.StatusOK, ids)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
