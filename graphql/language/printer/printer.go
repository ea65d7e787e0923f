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

// Package printer converts an AST back into GraphQL text with a fixed set of formatting rules,
// so that printing is deterministic and reparsing the output yields an equal tree.
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sablegql/sable/graphql/language/ast"
)

// Print renders the node as GraphQL text.
func Print(node ast.Node) string {
	switch node := node.(type) {
	case *ast.Name:
		return node.Value

	case *ast.Document:
		parts := make([]string, len(node.Definitions))
		for i, definition := range node.Definitions {
			parts[i] = Print(definition)
		}
		return join(parts, "\n\n") + "\n"

	case *ast.OperationDefinition:
		name := ""
		if node.Name != nil {
			name = node.Name.Value
		}
		varDefs := wrap("(", join(printAll(node.VariableDefinitions), ", "), ")")
		directives := join(printAll(node.Directives), " ")
		selectionSet := Print(node.SelectionSet)

		// The query shorthand prints as a bare selection set.
		if node.Operation == "query" && name == "" && varDefs == "" && directives == "" {
			return selectionSet
		}
		return join([]string{node.Operation, name + varDefs, directives, selectionSet}, " ")

	case *ast.VariableDefinition:
		defaultValue := ""
		if node.DefaultValue != nil {
			defaultValue = " = " + Print(node.DefaultValue)
		}
		return Print(node.Variable) + ": " + Print(node.Type) + defaultValue

	case *ast.Variable:
		return "$" + node.Name.Value

	case *ast.SelectionSet:
		return block(printAll(node.Selections))

	case *ast.Field:
		alias := ""
		if node.Alias != nil {
			alias = node.Alias.Value + ": "
		}
		return join([]string{
			alias + node.Name.Value + wrap("(", join(printAll(node.Arguments), ", "), ")"),
			join(printAll(node.Directives), " "),
			printOptional(node.SelectionSet),
		}, " ")

	case *ast.Argument:
		return node.Name.Value + ": " + Print(node.Value)

	case *ast.FragmentSpread:
		return join([]string{"..." + node.Name.Value, join(printAll(node.Directives), " ")}, " ")

	case *ast.InlineFragment:
		typeCondition := ""
		if node.TypeCondition != nil {
			typeCondition = "on " + node.TypeCondition.Name.Value
		}
		return join([]string{
			"...",
			typeCondition,
			join(printAll(node.Directives), " "),
			Print(node.SelectionSet),
		}, " ")

	case *ast.FragmentDefinition:
		return join([]string{
			"fragment " + node.Name.Value + " on " + node.TypeCondition.Name.Value,
			join(printAll(node.Directives), " "),
			Print(node.SelectionSet),
		}, " ")

	case *ast.IntValue:
		return node.Value

	case *ast.FloatValue:
		return node.Value

	case *ast.StringValue:
		return strconv.Quote(node.Value)

	case *ast.BooleanValue:
		if node.Value {
			return "true"
		}
		return "false"

	case *ast.EnumValue:
		return node.Value

	case *ast.ListValue:
		return "[" + join(printAll(node.Values), ", ") + "]"

	case *ast.ObjectValue:
		return "{" + join(printAll(node.Fields), ", ") + "}"

	case *ast.ObjectField:
		return node.Name.Value + ": " + Print(node.Value)

	case *ast.Directive:
		return "@" + node.Name.Value + wrap("(", join(printAll(node.Arguments), ", "), ")")

	case *ast.NamedType:
		return node.Name.Value

	case *ast.ListType:
		return "[" + Print(node.Type) + "]"

	case *ast.NonNullType:
		return Print(node.Type) + "!"
	}

	panic(fmt.Sprintf("printer: unexpected node type %T", node))
}

// printAll prints a slice of nodes. The element type varies by call site, so the concrete slices
// are enumerated here instead of reaching for reflection.
func printAll(nodes interface{}) []string {
	var parts []string
	switch nodes := nodes.(type) {
	case []*ast.VariableDefinition:
		for _, n := range nodes {
			parts = append(parts, Print(n))
		}
	case []*ast.Directive:
		for _, n := range nodes {
			parts = append(parts, Print(n))
		}
	case []*ast.Argument:
		for _, n := range nodes {
			parts = append(parts, Print(n))
		}
	case []ast.Selection:
		for _, n := range nodes {
			parts = append(parts, Print(n))
		}
	case []ast.Value:
		for _, n := range nodes {
			parts = append(parts, Print(n))
		}
	case []*ast.ObjectField:
		for _, n := range nodes {
			parts = append(parts, Print(n))
		}
	}
	return parts
}

// printOptional prints a selection set that may be absent.
func printOptional(selectionSet *ast.SelectionSet) string {
	if selectionSet == nil {
		return ""
	}
	return Print(selectionSet)
}

// join concatenates the non-empty parts with the separator.
func join(parts []string, separator string) string {
	nonEmpty := parts[:0:0]
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, separator)
}

// block renders parts as an indented brace block.
func block(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	return "{\n" + indent(join(parts, "\n")) + "\n}"
}

// wrap puts start and end around s, or produces nothing when s is empty.
func wrap(start string, s string, end string) string {
	if s == "" {
		return ""
	}
	return start + s + end
}

// indent shifts every line of s right by two spaces.
func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}
