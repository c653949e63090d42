// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package views

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"newsdesk/cli/internal/backend"
	"newsdesk/cli/internal/notify"
)

// PostFormAPI is the part of the portal the post editor uses.
type PostFormAPI interface {
	GetPost(ctx context.Context, id int64) (*backend.Post, error)
	CreatePost(ctx context.Context, in backend.PostInput) (*backend.Post, error)
	UpdatePost(ctx context.Context, id int64, patch backend.PostPatch) (*backend.Post, error)
}

var fieldMessages = map[string]string{
	"Title":      "The title is required.",
	"Content":    "The content is required.",
	"CategoryID": "Select a category.",
	"Status":     "The status must be published or draft.",
}

// PostForm creates a post, or edits one after Edit has loaded it.
type PostForm struct {
	api      PostFormAPI
	notifier notify.Notifier
	validate *validator.Validate
	original *backend.Post
}

func NewPostForm(api PostFormAPI, n notify.Notifier) *PostForm {
	return &PostForm{api: api, notifier: n, validate: validator.New()}
}

// Editing reports whether the form holds an existing post.
func (f *PostForm) Editing() bool { return f.original != nil }

// Values returns the form's current input, prefilled from the loaded post.
func (f *PostForm) Values() backend.PostInput {
	if f.original == nil {
		return backend.PostInput{Status: backend.StatusDraft}
	}
	return backend.PostInput{
		Title:      f.original.Title,
		Content:    f.original.Content,
		CategoryID: f.original.CategoryID,
		Status:     f.original.Status,
	}
}

// Edit loads post id into the form.
func (f *PostForm) Edit(ctx context.Context, id int64) error {
	p, err := f.api.GetPost(ctx, id)
	if err != nil {
		failure(f.notifier, "Could not load the post.", err)
		return err
	}
	f.original = p
	return nil
}

// Check validates in without sending anything.
func (f *PostForm) Check(in backend.PostInput) error {
	in = normalize(in)
	err := f.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := fieldMessages[verrs[0].Field()]; ok {
			return invalid(f.notifier, msg)
		}
	}
	return invalid(f.notifier, "The post is incomplete.")
}

// Submit validates in and creates the post, or updates the loaded post with
// only the fields that changed.
func (f *PostForm) Submit(ctx context.Context, in backend.PostInput) (*backend.Post, error) {
	if err := f.Check(in); err != nil {
		return nil, err
	}
	in = normalize(in)

	if f.original == nil {
		p, err := f.api.CreatePost(ctx, in)
		if err != nil {
			failure(f.notifier, "Could not create the post.", err)
			return nil, err
		}
		success(f.notifier, "Post created.")
		return p, nil
	}

	patch := diff(*f.original, in)
	if patch.Empty() {
		f.notifier.Notify(notify.Notice{Level: notify.Info, Title: "No changes", Message: "Nothing to update."})
		return f.original, nil
	}
	p, err := f.api.UpdatePost(ctx, f.original.ID, patch)
	if err != nil {
		failure(f.notifier, "Could not update the post.", err)
		return nil, err
	}
	f.original = p
	success(f.notifier, "Post updated.")
	return p, nil
}

func normalize(in backend.PostInput) backend.PostInput {
	in.Title = strings.TrimSpace(in.Title)
	if strings.TrimSpace(in.Content) == "" {
		in.Content = ""
	}
	return in
}

func diff(old backend.Post, in backend.PostInput) backend.PostPatch {
	var p backend.PostPatch
	if in.Title != old.Title {
		p.Title = &in.Title
	}
	if in.Content != old.Content {
		p.Content = &in.Content
	}
	if in.CategoryID != old.CategoryID {
		p.CategoryID = &in.CategoryID
	}
	if in.Status != old.Status {
		p.Status = &in.Status
	}
	return p
}
