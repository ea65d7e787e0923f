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

package gqlerrors

import (
	"github.com/sablegql/sable/graphql/language/source"
)

// FormattedError is the response representation of an error: a message and, when the error can be
// tied to points in the request document, their 1-indexed locations.
type FormattedError struct {
	Message   string                  `json:"message"`
	Locations []source.SourceLocation `json:"locations,omitempty"`

	// The error the formatted one was derived from. It is kept out of the serialized form.
	original error
}

// Original returns the error this formatted error was built from.
func (f FormattedError) Original() error {
	return f.original
}

// FormatError converts any error into its response representation.
func FormatError(err error) FormattedError {
	switch err := err.(type) {
	case *Error:
		return FormattedError{
			Message:   err.Message,
			Locations: err.Locations(),
			original:  err,
		}
	default:
		return FormattedError{
			Message:  err.Error(),
			original: err,
		}
	}
}

// FormatErrors converts a list of errors into their response representations.
func FormatErrors(errs ...error) []FormattedError {
	if len(errs) == 0 {
		return nil
	}
	formatted := make([]FormattedError, len(errs))
	for i, err := range errs {
		formatted[i] = FormatError(err)
	}
	return formatted
}
