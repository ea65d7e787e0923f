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
	"context"

	"github.com/sablegql/sable/graphql/gqlerrors"
	"github.com/sablegql/sable/graphql/language/parser"
	"github.com/sablegql/sable/graphql/language/source"
)

// Params are the inputs of one request served through Do.
type Params struct {
	Schema         *Schema
	RequestString  string
	RootValue      interface{}
	VariableValues map[string]interface{}
	OperationName  string
	Context        context.Context
}

// Do serves one request: parse, validate, execute. A parse failure or any validation error stops
// the request before execution; the result then carries a nil Data with the errors.
func Do(p Params) *Result {
	src := source.New("GraphQL request", p.RequestString)
	document, err := parser.Parse(src)
	if err != nil {
		return &Result{Errors: gqlerrors.FormatErrors(err)}
	}

	if validationErrors := ValidateDocument(p.Schema, document, nil); len(validationErrors) > 0 {
		return &Result{Errors: validationErrors}
	}

	return Execute(ExecuteParams{
		Schema:        p.Schema,
		Root:          p.RootValue,
		AST:           document,
		OperationName: p.OperationName,
		Variables:     p.VariableValues,
		Context:       p.Context,
	})
}
