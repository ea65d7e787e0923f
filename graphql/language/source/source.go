/**
 * Copyright (c) 2019, The Sable Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package source

// A Source wraps the text of a GraphQL request together with the name used to refer to it in
// error messages. It is immutable; positions into Body are byte offsets.
type Source struct {
	Body string
	Name string
}

// New creates a Source. The name defaults to "GraphQL" when empty.
func New(name string, body string) *Source {
	if name == "" {
		name = "GraphQL"
	}
	return &Source{
		Body: body,
		Name: name,
	}
}

// A SourceLocation is a 1-indexed line and column pair pointing into a Source body.
type SourceLocation struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// GetLocation converts a byte offset into the 1-indexed line and column it falls on. A lone "\r",
// a lone "\n" and the pair "\r\n" each terminate a line.
func GetLocation(s *Source, position int) SourceLocation {
	body := s.Body
	if position > len(body) {
		position = len(body)
	}

	line, lineStart := 1, 0
	for i := 0; i < position; i++ {
		switch body[i] {
		case '\n':
			line++
			lineStart = i + 1
		case '\r':
			if i+1 < len(body) && body[i+1] == '\n' {
				i++
			}
			line++
			lineStart = i + 1
		}
	}

	return SourceLocation{
		Line:   line,
		Column: position - lineStart + 1,
	}
}
