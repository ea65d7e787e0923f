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

// Package ast defines the nodes a parsed GraphQL document is made of. Nodes form a tree owned by
// their parent; every node carries the location it was parsed from.
package ast

import (
	"github.com/sablegql/sable/graphql/language/kinds"
	"github.com/sablegql/sable/graphql/language/source"
)

// A Location delimits the region of the source text that a node was parsed from. Start and End
// are byte offsets; Start <= End <= len(Source.Body), and a parent's span covers its children.
type Location struct {
	Start  int
	End    int
	Source *source.Source
}

// Node is implemented by every AST node variant. The set of variants is closed; consumers
// dispatch with a type switch or on GetKind.
type Node interface {
	// GetKind returns the discriminator from the kinds package naming the variant.
	GetKind() string

	// GetLoc returns the location of the node in the source text.
	GetLoc() *Location
}

// Definition is a top-level entry of a Document: an OperationDefinition or a
// FragmentDefinition.
type Definition interface {
	Node
	definitionNode()
}

// Selection is an entry of a SelectionSet: a Field, a FragmentSpread or an InlineFragment.
type Selection interface {
	Node

	// GetDirectives returns the directives applied to the selection.
	GetDirectives() []*Directive

	selectionNode()
}

// Value is a literal input value, or a Variable standing in for one.
type Value interface {
	Node
	valueNode()
}

// Type is a type reference: NamedType, ListType or NonNullType.
type Type interface {
	Node
	typeNode()
}

// Name is an identifier.
type Name struct {
	Loc   *Location
	Value string
}

// GetKind implements Node.
func (*Name) GetKind() string { return kinds.Name }

// GetLoc implements Node.
func (n *Name) GetLoc() *Location { return n.Loc }

// Document is the root of a parsed request. It holds one or more definitions.
type Document struct {
	Loc         *Location
	Definitions []Definition
}

// GetKind implements Node.
func (*Document) GetKind() string { return kinds.Document }

// GetLoc implements Node.
func (n *Document) GetLoc() *Location { return n.Loc }

// OperationDefinition describes one operation: "query" or "mutation", optionally named, with
// optional variable definitions and directives. A document consisting of a bare selection set
// parses into an anonymous query.
type OperationDefinition struct {
	Loc                 *Location
	Operation           string
	Name                *Name
	VariableDefinitions []*VariableDefinition
	Directives          []*Directive
	SelectionSet        *SelectionSet
}

// GetKind implements Node.
func (*OperationDefinition) GetKind() string { return kinds.OperationDefinition }

// GetLoc implements Node.
func (n *OperationDefinition) GetLoc() *Location { return n.Loc }

func (*OperationDefinition) definitionNode() {}

// VariableDefinition declares one operation variable with its type and optional default value.
type VariableDefinition struct {
	Loc          *Location
	Variable     *Variable
	Type         Type
	DefaultValue Value
}

// GetKind implements Node.
func (*VariableDefinition) GetKind() string { return kinds.VariableDefinition }

// GetLoc implements Node.
func (n *VariableDefinition) GetLoc() *Location { return n.Loc }

// Variable is a reference "$name" to an operation variable.
type Variable struct {
	Loc  *Location
	Name *Name
}

// GetKind implements Node.
func (*Variable) GetKind() string { return kinds.Variable }

// GetLoc implements Node.
func (n *Variable) GetLoc() *Location { return n.Loc }

func (*Variable) valueNode() {}

// SelectionSet is a brace-delimited group of selections.
type SelectionSet struct {
	Loc        *Location
	Selections []Selection
}

// GetKind implements Node.
func (*SelectionSet) GetKind() string { return kinds.SelectionSet }

// GetLoc implements Node.
func (n *SelectionSet) GetLoc() *Location { return n.Loc }

// Field requests one field of the enclosing type, optionally aliased, with arguments, directives
// and a sub-selection.
type Field struct {
	Loc          *Location
	Alias        *Name
	Name         *Name
	Arguments    []*Argument
	Directives   []*Directive
	SelectionSet *SelectionSet
}

// GetKind implements Node.
func (*Field) GetKind() string { return kinds.Field }

// GetLoc implements Node.
func (n *Field) GetLoc() *Location { return n.Loc }

// GetDirectives implements Selection.
func (n *Field) GetDirectives() []*Directive { return n.Directives }

func (*Field) selectionNode() {}

// Argument assigns a value to one argument of a field or directive.
type Argument struct {
	Loc   *Location
	Name  *Name
	Value Value
}

// GetKind implements Node.
func (*Argument) GetKind() string { return kinds.Argument }

// GetLoc implements Node.
func (n *Argument) GetLoc() *Location { return n.Loc }

// FragmentSpread references a named fragment defined elsewhere in the document.
type FragmentSpread struct {
	Loc        *Location
	Name       *Name
	Directives []*Directive
}

// GetKind implements Node.
func (*FragmentSpread) GetKind() string { return kinds.FragmentSpread }

// GetLoc implements Node.
func (n *FragmentSpread) GetLoc() *Location { return n.Loc }

// GetDirectives implements Selection.
func (n *FragmentSpread) GetDirectives() []*Directive { return n.Directives }

func (*FragmentSpread) selectionNode() {}

// InlineFragment is an anonymous fragment included in place, with an optional type condition.
type InlineFragment struct {
	Loc           *Location
	TypeCondition *NamedType
	Directives    []*Directive
	SelectionSet  *SelectionSet
}

// GetKind implements Node.
func (*InlineFragment) GetKind() string { return kinds.InlineFragment }

// GetLoc implements Node.
func (n *InlineFragment) GetLoc() *Location { return n.Loc }

// GetDirectives implements Selection.
func (n *InlineFragment) GetDirectives() []*Directive { return n.Directives }

func (*InlineFragment) selectionNode() {}

// FragmentDefinition defines a named fragment with the type its selections apply to.
type FragmentDefinition struct {
	Loc           *Location
	Name          *Name
	TypeCondition *NamedType
	Directives    []*Directive
	SelectionSet  *SelectionSet
}

// GetKind implements Node.
func (*FragmentDefinition) GetKind() string { return kinds.FragmentDefinition }

// GetLoc implements Node.
func (n *FragmentDefinition) GetLoc() *Location { return n.Loc }

func (*FragmentDefinition) definitionNode() {}
