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

// Package gqlerrors provides the structured error carried through parsing, validation and
// execution, and its formatting into the response shape.
package gqlerrors

import (
	"fmt"
	"strings"

	"github.com/sablegql/sable/graphql/language/ast"
	"github.com/sablegql/sable/graphql/language/source"
)

// Error is a GraphQL error. It pairs a message with the places in the request it arose from,
// given either as AST nodes or as raw positions into a Source, and keeps the original error that
// triggered it when there is one.
type Error struct {
	Message       string
	Nodes         []ast.Node
	Source        *source.Source
	Positions     []int
	OriginalError error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Cause returns the error this one was built from, if any. It makes the original reachable
// through a pkg/errors cause chain.
func (e *Error) Cause() error {
	return e.OriginalError
}

// Locations resolves the error positions into 1-indexed line/column pairs. Nodes take precedence
// over raw positions; nodes without location information contribute nothing.
func (e *Error) Locations() []source.SourceLocation {
	var locations []source.SourceLocation

	if len(e.Nodes) > 0 {
		for _, node := range e.Nodes {
			if loc := node.GetLoc(); loc != nil && loc.Source != nil {
				locations = append(locations, source.GetLocation(loc.Source, loc.Start))
			}
		}
		return locations
	}

	if e.Source != nil {
		for _, position := range e.Positions {
			locations = append(locations, source.GetLocation(e.Source, position))
		}
	}
	return locations
}

// NewError builds an Error located at the given nodes. originalError could be nil; when an
// underlying failure exists it is kept so callers can unwrap the cause.
func NewError(message string, nodes []ast.Node, originalError error) *Error {
	e := &Error{
		Message:       message,
		Nodes:         nodes,
		OriginalError: originalError,
	}
	for _, node := range nodes {
		if loc := node.GetLoc(); loc != nil && loc.Source != nil {
			e.Source = loc.Source
			break
		}
	}
	return e
}

// NewSyntaxError produces the error for a lexing or parsing failure. The message carries the
// source name, the 1-indexed position and a highlight of the offending line:
//
//	Syntax Error GraphQL (2:20) Expected "on", found Name "Type"
//
//	1: { ...MissingOn }
//	2: fragment MissingOn Type
//	                      ^
func NewSyntaxError(s *source.Source, position int, description string) *Error {
	location := source.GetLocation(s, position)
	return &Error{
		Message: fmt.Sprintf("Syntax Error %s (%d:%d) %s\n\n%s",
			s.Name, location.Line, location.Column, description,
			highlightSourceAtLocation(s, location)),
		Source:    s,
		Positions: []int{position},
	}
}

// highlightSourceAtLocation renders the line the error is on with a caret under the column,
// together with the preceding and following lines when the source has them.
func highlightSourceAtLocation(s *source.Source, location source.SourceLocation) string {
	line := location.Line
	lines := splitLines(s.Body)

	// Line numbers in the gutter are right-aligned to the width of the number of the line after
	// the error line, whether or not that line is printed.
	pad := len(fmt.Sprintf("%d", line+1))
	lpad := func(num int) string {
		return fmt.Sprintf("%*d", pad, num)
	}

	var b strings.Builder
	if line >= 2 {
		b.WriteString(lpad(line-1) + ": " + lines[line-2] + "\n")
	}
	b.WriteString(lpad(line) + ": " + lines[line-1] + "\n")
	b.WriteString(strings.Repeat(" ", 1+pad+location.Column) + "^\n")
	if line < len(lines) {
		b.WriteString(lpad(line+1) + ": " + lines[line] + "\n")
	}
	return b.String()
}

// splitLines splits a body on "\r\n", "\n" and "\r" line terminators.
func splitLines(body string) []string {
	var (
		lines []string
		start = 0
	)
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\n':
			lines = append(lines, body[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, body[start:i])
			if i+1 < len(body) && body[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	return append(lines, body[start:])
}
