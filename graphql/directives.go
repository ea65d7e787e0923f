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

// Directive describes an annotation the schema understands, the arguments it takes, and the
// places it may appear.
type Directive struct {
	Name        string
	Description string
	Args        FieldArgs

	// Placement: whether the directive may annotate operations, fields and fragments.
	OnOperation bool
	OnField     bool
	OnFragment  bool
}

// SkipDirective is the built-in @skip(if: Boolean!). When the condition holds, the annotated
// field or fragment is excluded. It wins over @include when both are present.
var SkipDirective = &Directive{
	Name:        "skip",
	Description: "Directs the executor to skip this field or fragment when the `if` argument is true.",
	Args: FieldArgs{
		"if": {
			Type:        NewNonNull(Boolean),
			Description: "Skipped when true.",
		},
	},
	OnField:    true,
	OnFragment: true,
}

// IncludeDirective is the built-in @include(if: Boolean!). The annotated field or fragment is
// only included when the condition holds.
var IncludeDirective = &Directive{
	Name:        "include",
	Description: "Directs the executor to include this field or fragment only when the `if` argument is true.",
	Args: FieldArgs{
		"if": {
			Type:        NewNonNull(Boolean),
			Description: "Included when true.",
		},
	},
	OnField:    true,
	OnFragment: true,
}

// specifiedDirectives are the directives every schema carries.
var specifiedDirectives = []*Directive{
	SkipDirective,
	IncludeDirective,
}
