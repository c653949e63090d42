// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain error", err: io.EOF, want: ""},
		{name: "direct", err: New(ValidationFailed, "name is required"), want: ValidationFailed},
		{name: "wrapped by fmt", err: fmt.Errorf("create category: %w", HTTP(ServerFault, 503, "unavailable")), want: ServerFault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestStatusAndUnwrap(t *testing.T) {
	err := &E{Kind: RequestFailed, Message: "GET /posts/9", Status: 404, Err: io.ErrUnexpectedEOF}

	assert.Equal(t, 404, StatusOf(fmt.Errorf("load: %w", err)))
	assert.True(t, stderrors.Is(err, io.ErrUnexpectedEOF))
	assert.True(t, Is(err, RequestFailed))
	assert.False(t, Is(err, AuthExpired))
	assert.Equal(t, "request_failed: GET /posts/9: unexpected EOF", err.Error())
}
