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

package ast

import (
	"github.com/sablegql/sable/graphql/language/kinds"
)

// IntValue is an integer literal. The value keeps the digits as written; consumers convert.
type IntValue struct {
	Loc   *Location
	Value string
}

// GetKind implements Node.
func (*IntValue) GetKind() string { return kinds.IntValue }

// GetLoc implements Node.
func (n *IntValue) GetLoc() *Location { return n.Loc }

func (*IntValue) valueNode() {}

// FloatValue is a float literal. The value keeps the digits as written; consumers convert.
type FloatValue struct {
	Loc   *Location
	Value string
}

// GetKind implements Node.
func (*FloatValue) GetKind() string { return kinds.FloatValue }

// GetLoc implements Node.
func (n *FloatValue) GetLoc() *Location { return n.Loc }

func (*FloatValue) valueNode() {}

// StringValue is a string literal with its escape sequences decoded.
type StringValue struct {
	Loc   *Location
	Value string
}

// GetKind implements Node.
func (*StringValue) GetKind() string { return kinds.StringValue }

// GetLoc implements Node.
func (n *StringValue) GetLoc() *Location { return n.Loc }

func (*StringValue) valueNode() {}

// BooleanValue is a "true" or "false" literal.
type BooleanValue struct {
	Loc   *Location
	Value bool
}

// GetKind implements Node.
func (*BooleanValue) GetKind() string { return kinds.BooleanValue }

// GetLoc implements Node.
func (n *BooleanValue) GetLoc() *Location { return n.Loc }

func (*BooleanValue) valueNode() {}

// EnumValue is a bare name in value position naming an enum member.
type EnumValue struct {
	Loc   *Location
	Value string
}

// GetKind implements Node.
func (*EnumValue) GetKind() string { return kinds.EnumValue }

// GetLoc implements Node.
func (n *EnumValue) GetLoc() *Location { return n.Loc }

func (*EnumValue) valueNode() {}

// ListValue is a bracketed list of values.
type ListValue struct {
	Loc    *Location
	Values []Value
}

// GetKind implements Node.
func (*ListValue) GetKind() string { return kinds.ListValue }

// GetLoc implements Node.
func (n *ListValue) GetLoc() *Location { return n.Loc }

func (*ListValue) valueNode() {}

// ObjectValue is a braced list of field assignments.
type ObjectValue struct {
	Loc    *Location
	Fields []*ObjectField
}

// GetKind implements Node.
func (*ObjectValue) GetKind() string { return kinds.ObjectValue }

// GetLoc implements Node.
func (n *ObjectValue) GetLoc() *Location { return n.Loc }

func (*ObjectValue) valueNode() {}

// ObjectField assigns a value to one field of an ObjectValue.
type ObjectField struct {
	Loc   *Location
	Name  *Name
	Value Value
}

// GetKind implements Node.
func (*ObjectField) GetKind() string { return kinds.ObjectField }

// GetLoc implements Node.
func (n *ObjectField) GetLoc() *Location { return n.Loc }

// Directive applies "@name(args)" to the node it annotates.
type Directive struct {
	Loc       *Location
	Name      *Name
	Arguments []*Argument
}

// GetKind implements Node.
func (*Directive) GetKind() string { return kinds.Directive }

// GetLoc implements Node.
func (n *Directive) GetLoc() *Location { return n.Loc }

// NamedType references a type by name.
type NamedType struct {
	Loc  *Location
	Name *Name
}

// GetKind implements Node.
func (*NamedType) GetKind() string { return kinds.NamedType }

// GetLoc implements Node.
func (n *NamedType) GetLoc() *Location { return n.Loc }

func (*NamedType) typeNode() {}

// ListType wraps an element type in "[ ]".
type ListType struct {
	Loc  *Location
	Type Type
}

// GetKind implements Node.
func (*ListType) GetKind() string { return kinds.ListType }

// GetLoc implements Node.
func (n *ListType) GetLoc() *Location { return n.Loc }

func (*ListType) typeNode() {}

// NonNullType marks the wrapped type as non-nullable with a trailing "!".
type NonNullType struct {
	Loc  *Location
	Type Type
}

// GetKind implements Node.
func (*NonNullType) GetKind() string { return kinds.NonNullType }

// GetLoc implements Node.
func (n *NonNullType) GetLoc() *Location { return n.Loc }

func (*NonNullType) typeNode() {}
