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

package graphql

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/sablegql/sable/graphql/gqlerrors"
)

// Result is the outcome of one request: the response data (null when execution could not begin or
// the operation root errored) and the errors collected along the way. Both can be present at
// once.
type Result struct {
	Data   interface{}                `json:"data"`
	Errors []gqlerrors.FormattedError `json:"errors,omitempty"`
}

// HasErrors reports whether any error was collected.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// MarshalJSON serializes the result into the response shape.
func (r *Result) MarshalJSON() ([]byte, error) {
	// Alias away the method set so jsoniter doesn't recurse into this marshaler.
	type resultShape Result
	return jsoniter.Marshal((*resultShape)(r))
}
