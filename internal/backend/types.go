// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import "time"

// PostStatus is the publication state of a post.
type PostStatus string

const (
	StatusPublished PostStatus = "published"
	StatusDraft     PostStatus = "draft"
)

// Category groups posts on the public site.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Post is an article. Timestamps are kept as the API sends them.
type Post struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Content      string     `json:"content,omitempty"`
	CategoryID   int64      `json:"categoryId"`
	CategoryName string     `json:"categoryName,omitempty"`
	Status       PostStatus `json:"status,omitempty"`
	CreatedAt    string     `json:"createdAt,omitempty"`
	UpdatedAt    string     `json:"updatedAt,omitempty"`
}

// PostQuery filters the public post list. Zero fields are not sent.
type PostQuery struct {
	CategoryID int64
	Page       int
	Limit      int
}

// AdminPostQuery filters the admin post list. Zero fields are not sent.
type AdminPostQuery struct {
	CategoryID int64
	Status     PostStatus
	Search     string
	Page       int
	Limit      int
}

// PostInput is the body for creating a post.
type PostInput struct {
	Title      string     `json:"title" validate:"required"`
	Content    string     `json:"content" validate:"required"`
	CategoryID int64      `json:"categoryId" validate:"required,gt=0"`
	Status     PostStatus `json:"status" validate:"required,oneof=published draft"`
}

// PostPatch is the body for updating a post; nil fields are left untouched.
type PostPatch struct {
	Title      *string     `json:"title,omitempty" validate:"omitempty,min=1"`
	Content    *string     `json:"content,omitempty" validate:"omitempty,min=1"`
	CategoryID *int64      `json:"categoryId,omitempty" validate:"omitempty,gt=0"`
	Status     *PostStatus `json:"status,omitempty" validate:"omitempty,oneof=published draft"`
}

// Empty reports whether the patch changes nothing.
func (p PostPatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.CategoryID == nil && p.Status == nil
}

// PostPage is one page of a post listing.
type PostPage struct {
	Posts []Post
	Page  int
	Limit int
	// Total is the server-reported item count, or -1 when the API does not send one.
	Total int
}

// HasMore reports whether another page is likely to exist. Without a total the
// answer is inferred from a full page, which is wrong when the last page is
// exactly full.
func (p PostPage) HasMore() bool {
	if p.Limit <= 0 {
		return false
	}
	if p.Total >= 0 {
		return p.Page*p.Limit < p.Total
	}
	return len(p.Posts) >= p.Limit
}

// LoginResponse carries the issued token plus whatever else the API returned.
type LoginResponse struct {
	Token string
	Raw   map[string]any
}

// FormatDate renders an API timestamp as dd/MM/yyyy HH:mm, or returns it unchanged
// when it cannot be parsed.
func FormatDate(s string) string {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02/01/2006 15:04")
		}
	}
	return s
}
