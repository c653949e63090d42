// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// It provides a structured approach to error handling with machine-readable error kinds
// and human-friendly messages, so callers can tell an expired session from a server
// fault or a plain failed request without parsing strings.
//
// The package supports wrapping underlying errors while maintaining error kind information.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// AuthExpired indicates the portal rejected the stored credential on an admin path.
	AuthExpired Kind = "auth_expired"
	// ServerFault indicates the portal answered with a 5xx status.
	ServerFault Kind = "server_fault"
	// ValidationFailed indicates input was rejected locally; no request was sent.
	ValidationFailed Kind = "validation_failed"
	// RequestFailed covers every other failure: transport errors and non-2xx statuses.
	RequestFailed Kind = "request_failed"
	// StorageFailed indicates the session store could not be read or written.
	StorageFailed Kind = "storage_failed"
)

// E wraps an error with kind and human-friendly message.
// Status carries the HTTP status when the error came from a response, else 0.
type E struct {
	Kind    Kind
	Message string
	Status  int
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// HTTP builds a response error carrying the status code.
func HTTP(kind Kind, status int, msg string) *E {
	return &E{Kind: kind, Message: msg, Status: status}
}

// KindOf returns the kind of the first *E in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// StatusOf returns the HTTP status recorded in err's chain, or 0.
func StatusOf(err error) int {
	var e *E
	if stderrors.As(err, &e) {
		return e.Status
	}
	return 0
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
