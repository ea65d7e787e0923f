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
	"fmt"

	"github.com/sablegql/sable/graphql/language/ast"
)

// SchemaConfig describes a Schema to create. Query is required.
type SchemaConfig struct {
	Query    *Object
	Mutation *Object
}

// Schema ties the root operation types to the closed set of types reachable from them. The type
// map is computed once, at construction, so a finished Schema is immutable and safe to share
// between concurrent requests.
type Schema struct {
	queryType    *Object
	mutationType *Object

	typeMap    map[string]Type
	directives []*Directive
}

// NewSchema builds a schema from its root types. The type map is the reduction over every type
// reachable from the roots and from the introspection schema; a name naming two distinct types is
// an error.
func NewSchema(config SchemaConfig) (*Schema, error) {
	if config.Query == nil {
		return nil, fmt.Errorf("Must provide schema definition with query type.")
	}

	schema := &Schema{
		queryType:    config.Query,
		mutationType: config.Mutation,
		typeMap:      make(map[string]Type),
		directives:   specifiedDirectives,
	}

	roots := []Type{config.Query, schemaIntrospection}
	if config.Mutation != nil {
		roots = append(roots, config.Mutation)
	}
	for _, root := range roots {
		if err := schema.reduceType(root); err != nil {
			return nil, err
		}
	}
	for _, directive := range schema.directives {
		for _, arg := range directive.Args {
			if err := schema.reduceType(arg.Type); err != nil {
				return nil, err
			}
		}
	}

	// Record each object under the interfaces it declares, so abstract types know their possible
	// types without the schema being asked.
	for _, t := range schema.typeMap {
		if object, ok := t.(*Object); ok {
			for _, iface := range object.Interfaces() {
				iface.possibleTypes = append(iface.possibleTypes, object)
			}
		}
	}

	return schema, nil
}

// QueryType returns the root type of query operations.
func (s *Schema) QueryType() *Object {
	return s.queryType
}

// MutationType returns the root type of mutation operations; nil when the schema defines none.
func (s *Schema) MutationType() *Object {
	return s.mutationType
}

// TypeMap returns every named type reachable in the schema, keyed by name.
func (s *Schema) TypeMap() map[string]Type {
	return s.typeMap
}

// Type returns the named type, or nil when the schema doesn't contain it.
func (s *Schema) Type(name string) Type {
	return s.typeMap[name]
}

// Directives returns the directives the schema understands.
func (s *Schema) Directives() []*Directive {
	return s.directives
}

// Directive returns the named directive, or nil.
func (s *Schema) Directive(name string) *Directive {
	for _, directive := range s.directives {
		if directive.Name == name {
			return directive
		}
	}
	return nil
}

// reduceType records t and every type reachable from it into the type map.
func (s *Schema) reduceType(t Type) error {
	switch t := t.(type) {
	case nil:
		return nil
	case *List:
		return s.reduceType(t.OfType)
	case *NonNull:
		return s.reduceType(t.OfType)
	}

	name := TypeName(t)
	if existing, ok := s.typeMap[name]; ok {
		if existing != t {
			return fmt.Errorf(
				"Schema must contain unique named types but contains multiple types named %q.", name)
		}
		return nil
	}
	s.typeMap[name] = t

	switch t := t.(type) {
	case *Object:
		for _, iface := range t.Interfaces() {
			if err := s.reduceType(iface); err != nil {
				return err
			}
		}
		if err := s.reduceFields(t.Fields()); err != nil {
			return err
		}

	case *Interface:
		if err := s.reduceFields(t.Fields()); err != nil {
			return err
		}

	case *Union:
		for _, possible := range t.PossibleTypes() {
			if err := s.reduceType(possible); err != nil {
				return err
			}
		}

	case *InputObject:
		for _, field := range t.Fields() {
			if err := s.reduceType(field.Type); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *Schema) reduceFields(fields Fields) error {
	for _, field := range fields {
		if err := s.reduceType(field.Type); err != nil {
			return err
		}
		for _, arg := range field.Args {
			if err := s.reduceType(arg.Type); err != nil {
				return err
			}
		}
	}
	return nil
}

// TypeFromAST resolves a type reference from the document against the schema: the named type
// looked up by name, rewrapped in the List and NonNull wrappers the reference carries. It is nil
// when the schema doesn't define the name.
func TypeFromAST(schema *Schema, typeAST ast.Type) Type {
	switch typeAST := typeAST.(type) {
	case *ast.NamedType:
		return schema.Type(typeAST.Name.Value)
	case *ast.ListType:
		if inner := TypeFromAST(schema, typeAST.Type); inner != nil {
			return NewList(inner)
		}
	case *ast.NonNullType:
		if inner := TypeFromAST(schema, typeAST.Type); inner != nil {
			return NewNonNull(inner)
		}
	}
	return nil
}
