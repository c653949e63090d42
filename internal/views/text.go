// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package views

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// PreviewLength is how much of a post body a listing shows.
const PreviewLength = 150

var stripTags = func() *bluemonday.Policy {
	p := bluemonday.StripTagsPolicy()
	p.AddSpaceWhenStrippingTag(true)
	return p
}()

// PlainText turns stored post HTML into readable text on one line.
func PlainText(body string) string {
	text := html.UnescapeString(stripTags.Sanitize(body))
	return strings.Join(strings.Fields(text), " ")
}

// Preview is PlainText cut to max runes, with "..." when something was cut.
func Preview(body string, max int) string {
	text := PlainText(body)
	r := []rune(text)
	if max <= 0 || len(r) <= max {
		return text
	}
	return strings.TrimRight(string(r[:max]), " ") + "..."
}
