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
	"github.com/sablegql/sable/graphql/language/ast"
)

// TypeInfo tracks the schema context of the node currently being visited. Its Enter and Leave
// must be driven in step with an AST traversal; the accessors then answer what type, field and
// input position the walk is inside of.
type TypeInfo struct {
	schema *Schema

	typeStack       []Type
	parentTypeStack []Type
	inputTypeStack  []Type
	fieldDefStack   []*FieldDefinition

	directive *Directive
	argument  *ArgumentConfig
}

// NewTypeInfo creates a TypeInfo for traversals of documents against the given schema.
func NewTypeInfo(schema *Schema) *TypeInfo {
	return &TypeInfo{schema: schema}
}

// Type returns the type of the position being visited: inside a field, the field's type.
func (ti *TypeInfo) Type() Type {
	if len(ti.typeStack) == 0 {
		return nil
	}
	return ti.typeStack[len(ti.typeStack)-1]
}

// ParentType returns the composite type whose selection set is being visited.
func (ti *TypeInfo) ParentType() Type {
	if len(ti.parentTypeStack) == 0 {
		return nil
	}
	return ti.parentTypeStack[len(ti.parentTypeStack)-1]
}

// InputType returns the expected input type of the value position being visited.
func (ti *TypeInfo) InputType() Type {
	if len(ti.inputTypeStack) == 0 {
		return nil
	}
	return ti.inputTypeStack[len(ti.inputTypeStack)-1]
}

// FieldDef returns the definition of the field being visited.
func (ti *TypeInfo) FieldDef() *FieldDefinition {
	if len(ti.fieldDefStack) == 0 {
		return nil
	}
	return ti.fieldDefStack[len(ti.fieldDefStack)-1]
}

// Directive returns the definition of the directive being visited.
func (ti *TypeInfo) Directive() *Directive {
	return ti.directive
}

// Argument returns the definition of the argument being visited.
func (ti *TypeInfo) Argument() *ArgumentConfig {
	return ti.argument
}

// Enter pushes the context the node opens. It must be called on every node, before the node's
// children are visited.
func (ti *TypeInfo) Enter(node ast.Node) {
	schema := ti.schema

	switch node := node.(type) {
	case *ast.SelectionSet:
		if composite := Named(ti.Type()); composite != nil && IsCompositeType(composite) {
			ti.parentTypeStack = append(ti.parentTypeStack, composite)
		} else {
			ti.parentTypeStack = append(ti.parentTypeStack, nil)
		}

	case *ast.Field:
		var fieldDef *FieldDefinition
		if parentType := ti.ParentType(); parentType != nil {
			fieldDef = FieldDefForType(schema, parentType, node.Name.Value)
		}
		ti.fieldDefStack = append(ti.fieldDefStack, fieldDef)
		if fieldDef != nil {
			ti.typeStack = append(ti.typeStack, fieldDef.Type)
		} else {
			ti.typeStack = append(ti.typeStack, nil)
		}

	case *ast.Directive:
		ti.directive = schema.Directive(node.Name.Value)

	case *ast.OperationDefinition:
		var rootType Type
		switch node.Operation {
		case "query":
			rootType = schema.QueryType()
		case "mutation":
			if mutation := schema.MutationType(); mutation != nil {
				rootType = mutation
			}
		}
		ti.typeStack = append(ti.typeStack, rootType)

	case *ast.InlineFragment:
		if node.TypeCondition != nil {
			ti.typeStack = append(ti.typeStack, TypeFromAST(schema, node.TypeCondition))
		} else {
			// An inline fragment without a condition applies to the enclosing type.
			ti.typeStack = append(ti.typeStack, ti.ParentType())
		}

	case *ast.FragmentDefinition:
		ti.typeStack = append(ti.typeStack, TypeFromAST(schema, node.TypeCondition))

	case *ast.VariableDefinition:
		ti.inputTypeStack = append(ti.inputTypeStack, TypeFromAST(schema, node.Type))

	case *ast.Argument:
		var argDef *ArgumentConfig
		if ti.directive != nil {
			argDef = ti.directive.Args[node.Name.Value]
		} else if fieldDef := ti.FieldDef(); fieldDef != nil {
			argDef = fieldDef.Args[node.Name.Value]
		}
		ti.argument = argDef
		if argDef != nil {
			ti.inputTypeStack = append(ti.inputTypeStack, argDef.Type)
		} else {
			ti.inputTypeStack = append(ti.inputTypeStack, nil)
		}

	case *ast.ListValue:
		if listType, ok := Nullable(ti.InputType()).(*List); ok {
			ti.inputTypeStack = append(ti.inputTypeStack, listType.OfType)
		} else {
			ti.inputTypeStack = append(ti.inputTypeStack, nil)
		}

	case *ast.ObjectField:
		var fieldType Type
		if inputObject, ok := Named(ti.InputType()).(*InputObject); ok {
			if field := inputObject.Fields()[node.Name.Value]; field != nil {
				fieldType = field.Type
			}
		}
		ti.inputTypeStack = append(ti.inputTypeStack, fieldType)
	}
}

// Leave pops what Enter pushed for the node. It must be called after the node's children were
// visited, in exact reverse order of the Enter calls.
func (ti *TypeInfo) Leave(node ast.Node) {
	switch node.(type) {
	case *ast.SelectionSet:
		ti.parentTypeStack = ti.parentTypeStack[:len(ti.parentTypeStack)-1]

	case *ast.Field:
		ti.fieldDefStack = ti.fieldDefStack[:len(ti.fieldDefStack)-1]
		ti.typeStack = ti.typeStack[:len(ti.typeStack)-1]

	case *ast.Directive:
		ti.directive = nil

	case *ast.OperationDefinition, *ast.InlineFragment, *ast.FragmentDefinition:
		ti.typeStack = ti.typeStack[:len(ti.typeStack)-1]

	case *ast.VariableDefinition:
		ti.inputTypeStack = ti.inputTypeStack[:len(ti.inputTypeStack)-1]

	case *ast.Argument:
		ti.argument = nil
		ti.inputTypeStack = ti.inputTypeStack[:len(ti.inputTypeStack)-1]

	case *ast.ListValue, *ast.ObjectField:
		ti.inputTypeStack = ti.inputTypeStack[:len(ti.inputTypeStack)-1]
	}
}

// FieldDefForType looks up a field on a composite type, serving the three meta fields from their
// reserved names: __schema and __type on the query root, __typename on any composite.
func FieldDefForType(schema *Schema, parentType Type, fieldName string) *FieldDefinition {
	if parentType == schema.QueryType() {
		switch fieldName {
		case "__schema":
			return schemaMetaFieldDef
		case "__type":
			return typeMetaFieldDef
		}
	}
	if fieldName == "__typename" && IsCompositeType(parentType) {
		return typeNameMetaFieldDef
	}

	switch parentType := parentType.(type) {
	case *Object:
		return parentType.Fields()[fieldName]
	case *Interface:
		return parentType.Fields()[fieldName]
	}
	return nil
}
