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

package visitor

import (
	"fmt"

	"github.com/sablegql/sable/graphql/language/ast"
)

// walkChildren walks the children of node in document order and returns node, or a shallow copy
// of it when an edit changed a child. Removing a child clears its field; splices only apply to
// children held in lists.
func (w *walker) walkChildren(node ast.Node) ast.Node {
	switch node := node.(type) {
	case *ast.Document:
		definitions, changed := w.definitionList(node, "Definitions", node.Definitions)
		if changed {
			updated := *node
			updated.Definitions = definitions
			return &updated
		}

	case *ast.OperationDefinition:
		name, c1 := w.childName(node, "Name", node.Name)
		variableDefinitions, c2 := w.variableDefinitionList(node, "VariableDefinitions", node.VariableDefinitions)
		directives, c3 := w.directiveList(node, "Directives", node.Directives)
		selectionSet, c4 := w.childSelectionSet(node, "SelectionSet", node.SelectionSet)
		if c1 || c2 || c3 || c4 {
			updated := *node
			updated.Name = name
			updated.VariableDefinitions = variableDefinitions
			updated.Directives = directives
			updated.SelectionSet = selectionSet
			return &updated
		}

	case *ast.VariableDefinition:
		variable, c1 := w.childVariable(node, "Variable", node.Variable)
		variableType, c2 := w.childType(node, "Type", node.Type)
		defaultValue, c3 := w.childValue(node, "DefaultValue", node.DefaultValue)
		if c1 || c2 || c3 {
			updated := *node
			updated.Variable = variable
			updated.Type = variableType
			updated.DefaultValue = defaultValue
			return &updated
		}

	case *ast.Variable:
		if name, changed := w.childName(node, "Name", node.Name); changed {
			updated := *node
			updated.Name = name
			return &updated
		}

	case *ast.SelectionSet:
		if selections, changed := w.selectionList(node, "Selections", node.Selections); changed {
			updated := *node
			updated.Selections = selections
			return &updated
		}

	case *ast.Field:
		alias, c1 := w.childName(node, "Alias", node.Alias)
		name, c2 := w.childName(node, "Name", node.Name)
		arguments, c3 := w.argumentList(node, "Arguments", node.Arguments)
		directives, c4 := w.directiveList(node, "Directives", node.Directives)
		selectionSet, c5 := w.childSelectionSet(node, "SelectionSet", node.SelectionSet)
		if c1 || c2 || c3 || c4 || c5 {
			updated := *node
			updated.Alias = alias
			updated.Name = name
			updated.Arguments = arguments
			updated.Directives = directives
			updated.SelectionSet = selectionSet
			return &updated
		}

	case *ast.Argument:
		name, c1 := w.childName(node, "Name", node.Name)
		value, c2 := w.childValue(node, "Value", node.Value)
		if c1 || c2 {
			updated := *node
			updated.Name = name
			updated.Value = value
			return &updated
		}

	case *ast.FragmentSpread:
		name, c1 := w.childName(node, "Name", node.Name)
		directives, c2 := w.directiveList(node, "Directives", node.Directives)
		if c1 || c2 {
			updated := *node
			updated.Name = name
			updated.Directives = directives
			return &updated
		}

	case *ast.InlineFragment:
		typeCondition, c1 := w.childNamedType(node, "TypeCondition", node.TypeCondition)
		directives, c2 := w.directiveList(node, "Directives", node.Directives)
		selectionSet, c3 := w.childSelectionSet(node, "SelectionSet", node.SelectionSet)
		if c1 || c2 || c3 {
			updated := *node
			updated.TypeCondition = typeCondition
			updated.Directives = directives
			updated.SelectionSet = selectionSet
			return &updated
		}

	case *ast.FragmentDefinition:
		name, c1 := w.childName(node, "Name", node.Name)
		typeCondition, c2 := w.childNamedType(node, "TypeCondition", node.TypeCondition)
		directives, c3 := w.directiveList(node, "Directives", node.Directives)
		selectionSet, c4 := w.childSelectionSet(node, "SelectionSet", node.SelectionSet)
		if c1 || c2 || c3 || c4 {
			updated := *node
			updated.Name = name
			updated.TypeCondition = typeCondition
			updated.Directives = directives
			updated.SelectionSet = selectionSet
			return &updated
		}

	case *ast.ListValue:
		if values, changed := w.valueList(node, "Values", node.Values); changed {
			updated := *node
			updated.Values = values
			return &updated
		}

	case *ast.ObjectValue:
		if fields, changed := w.objectFieldList(node, "Fields", node.Fields); changed {
			updated := *node
			updated.Fields = fields
			return &updated
		}

	case *ast.ObjectField:
		name, c1 := w.childName(node, "Name", node.Name)
		value, c2 := w.childValue(node, "Value", node.Value)
		if c1 || c2 {
			updated := *node
			updated.Name = name
			updated.Value = value
			return &updated
		}

	case *ast.Directive:
		name, c1 := w.childName(node, "Name", node.Name)
		arguments, c2 := w.argumentList(node, "Arguments", node.Arguments)
		if c1 || c2 {
			updated := *node
			updated.Name = name
			updated.Arguments = arguments
			return &updated
		}

	case *ast.NamedType:
		if name, changed := w.childName(node, "Name", node.Name); changed {
			updated := *node
			updated.Name = name
			return &updated
		}

	case *ast.ListType:
		if wrapped, changed := w.childType(node, "Type", node.Type); changed {
			updated := *node
			updated.Type = wrapped
			return &updated
		}

	case *ast.NonNullType:
		if wrapped, changed := w.childType(node, "Type", node.Type); changed {
			updated := *node
			updated.Type = wrapped
			return &updated
		}
	}

	// The value scalars and Name have no children.
	return node
}

// child walks one node held in a named field. Splices are invalid outside lists.
func (w *walker) child(parent ast.Node, key string, node ast.Node) editResult {
	result := w.walk(node, key, parent)
	if result.splice != nil {
		panic(fmt.Sprintf("visitor: cannot splice a list into field %q of %s", key, parent.GetKind()))
	}
	return result
}

func (w *walker) childName(parent ast.Node, key string, node *ast.Name) (*ast.Name, bool) {
	if node == nil {
		return nil, false
	}
	result := w.child(parent, key, node)
	if result.remove {
		return nil, true
	}
	replacement, ok := result.node.(*ast.Name)
	if !ok {
		panic(fmt.Sprintf("visitor: replaced Name with %T", result.node))
	}
	return replacement, replacement != node
}

func (w *walker) childVariable(parent ast.Node, key string, node *ast.Variable) (*ast.Variable, bool) {
	if node == nil {
		return nil, false
	}
	result := w.child(parent, key, node)
	if result.remove {
		return nil, true
	}
	replacement, ok := result.node.(*ast.Variable)
	if !ok {
		panic(fmt.Sprintf("visitor: replaced Variable with %T", result.node))
	}
	return replacement, replacement != node
}

func (w *walker) childNamedType(parent ast.Node, key string, node *ast.NamedType) (*ast.NamedType, bool) {
	if node == nil {
		return nil, false
	}
	result := w.child(parent, key, node)
	if result.remove {
		return nil, true
	}
	replacement, ok := result.node.(*ast.NamedType)
	if !ok {
		panic(fmt.Sprintf("visitor: replaced NamedType with %T", result.node))
	}
	return replacement, replacement != node
}

func (w *walker) childSelectionSet(parent ast.Node, key string, node *ast.SelectionSet) (*ast.SelectionSet, bool) {
	if node == nil {
		return nil, false
	}
	result := w.child(parent, key, node)
	if result.remove {
		return nil, true
	}
	replacement, ok := result.node.(*ast.SelectionSet)
	if !ok {
		panic(fmt.Sprintf("visitor: replaced SelectionSet with %T", result.node))
	}
	return replacement, replacement != node
}

func (w *walker) childType(parent ast.Node, key string, node ast.Type) (ast.Type, bool) {
	if node == nil {
		return nil, false
	}
	result := w.child(parent, key, node)
	if result.remove {
		return nil, true
	}
	replacement, ok := result.node.(ast.Type)
	if !ok {
		panic(fmt.Sprintf("visitor: replaced a type reference with %T", result.node))
	}
	return replacement, replacement != node
}

func (w *walker) childValue(parent ast.Node, key string, node ast.Value) (ast.Value, bool) {
	if node == nil {
		return nil, false
	}
	result := w.child(parent, key, node)
	if result.remove {
		return nil, true
	}
	replacement, ok := result.node.(ast.Value)
	if !ok {
		panic(fmt.Sprintf("visitor: replaced a value with %T", result.node))
	}
	return replacement, replacement != node
}

// walkList drives the per-element walks of one list-valued field. The field name joins the path
// while the elements are visited; each element's key is its index. Results are handed to
// deliver, which converts them back to the concrete element type.
func (w *walker) walkList(parent ast.Node, key string, length int, at func(int) ast.Node, deliver func(editResult)) {
	w.path = append(w.path, key)
	for i := 0; i < length; i++ {
		if w.broke {
			// Keep the remaining elements untouched.
			deliver(editResult{node: at(i)})
			continue
		}
		deliver(w.walk(at(i), i, parent))
	}
	w.path = w.path[:len(w.path)-1]
}

func (w *walker) definitionList(parent ast.Node, key string, nodes []ast.Definition) ([]ast.Definition, bool) {
	if len(nodes) == 0 {
		return nodes, false
	}
	var (
		out     []ast.Definition
		changed bool
	)
	w.walkList(parent, key, len(nodes), func(i int) ast.Node { return nodes[i] }, func(r editResult) {
		if r.remove {
			changed = true
			return
		}
		for _, n := range r.splice {
			out = append(out, mustDefinition(n))
			changed = true
		}
		if r.splice != nil {
			return
		}
		replacement := mustDefinition(r.node)
		if len(out) >= len(nodes) || nodes[len(out)] != replacement {
			changed = true
		}
		out = append(out, replacement)
	})
	return out, changed
}

func (w *walker) variableDefinitionList(parent ast.Node, key string, nodes []*ast.VariableDefinition) ([]*ast.VariableDefinition, bool) {
	if len(nodes) == 0 {
		return nodes, false
	}
	var (
		out     []*ast.VariableDefinition
		changed bool
	)
	w.walkList(parent, key, len(nodes), func(i int) ast.Node { return nodes[i] }, func(r editResult) {
		if r.remove {
			changed = true
			return
		}
		for _, n := range r.splice {
			out = append(out, n.(*ast.VariableDefinition))
			changed = true
		}
		if r.splice != nil {
			return
		}
		replacement := r.node.(*ast.VariableDefinition)
		if len(out) >= len(nodes) || nodes[len(out)] != replacement {
			changed = true
		}
		out = append(out, replacement)
	})
	return out, changed
}

func (w *walker) directiveList(parent ast.Node, key string, nodes []*ast.Directive) ([]*ast.Directive, bool) {
	if len(nodes) == 0 {
		return nodes, false
	}
	var (
		out     []*ast.Directive
		changed bool
	)
	w.walkList(parent, key, len(nodes), func(i int) ast.Node { return nodes[i] }, func(r editResult) {
		if r.remove {
			changed = true
			return
		}
		for _, n := range r.splice {
			out = append(out, n.(*ast.Directive))
			changed = true
		}
		if r.splice != nil {
			return
		}
		replacement := r.node.(*ast.Directive)
		if len(out) >= len(nodes) || nodes[len(out)] != replacement {
			changed = true
		}
		out = append(out, replacement)
	})
	return out, changed
}

func (w *walker) argumentList(parent ast.Node, key string, nodes []*ast.Argument) ([]*ast.Argument, bool) {
	if len(nodes) == 0 {
		return nodes, false
	}
	var (
		out     []*ast.Argument
		changed bool
	)
	w.walkList(parent, key, len(nodes), func(i int) ast.Node { return nodes[i] }, func(r editResult) {
		if r.remove {
			changed = true
			return
		}
		for _, n := range r.splice {
			out = append(out, n.(*ast.Argument))
			changed = true
		}
		if r.splice != nil {
			return
		}
		replacement := r.node.(*ast.Argument)
		if len(out) >= len(nodes) || nodes[len(out)] != replacement {
			changed = true
		}
		out = append(out, replacement)
	})
	return out, changed
}

func (w *walker) selectionList(parent ast.Node, key string, nodes []ast.Selection) ([]ast.Selection, bool) {
	if len(nodes) == 0 {
		return nodes, false
	}
	var (
		out     []ast.Selection
		changed bool
	)
	w.walkList(parent, key, len(nodes), func(i int) ast.Node { return nodes[i] }, func(r editResult) {
		if r.remove {
			changed = true
			return
		}
		for _, n := range r.splice {
			out = append(out, mustSelection(n))
			changed = true
		}
		if r.splice != nil {
			return
		}
		replacement := mustSelection(r.node)
		if len(out) >= len(nodes) || nodes[len(out)] != replacement {
			changed = true
		}
		out = append(out, replacement)
	})
	return out, changed
}

func (w *walker) valueList(parent ast.Node, key string, nodes []ast.Value) ([]ast.Value, bool) {
	if len(nodes) == 0 {
		return nodes, false
	}
	var (
		out     []ast.Value
		changed bool
	)
	w.walkList(parent, key, len(nodes), func(i int) ast.Node { return nodes[i] }, func(r editResult) {
		if r.remove {
			changed = true
			return
		}
		for _, n := range r.splice {
			out = append(out, n.(ast.Value))
			changed = true
		}
		if r.splice != nil {
			return
		}
		replacement := r.node.(ast.Value)
		if len(out) >= len(nodes) || nodes[len(out)] != replacement {
			changed = true
		}
		out = append(out, replacement)
	})
	return out, changed
}

func (w *walker) objectFieldList(parent ast.Node, key string, nodes []*ast.ObjectField) ([]*ast.ObjectField, bool) {
	if len(nodes) == 0 {
		return nodes, false
	}
	var (
		out     []*ast.ObjectField
		changed bool
	)
	w.walkList(parent, key, len(nodes), func(i int) ast.Node { return nodes[i] }, func(r editResult) {
		if r.remove {
			changed = true
			return
		}
		for _, n := range r.splice {
			out = append(out, n.(*ast.ObjectField))
			changed = true
		}
		if r.splice != nil {
			return
		}
		replacement := r.node.(*ast.ObjectField)
		if len(out) >= len(nodes) || nodes[len(out)] != replacement {
			changed = true
		}
		out = append(out, replacement)
	})
	return out, changed
}

func mustDefinition(node ast.Node) ast.Definition {
	definition, ok := node.(ast.Definition)
	if !ok {
		panic(fmt.Sprintf("visitor: %T is not a definition", node))
	}
	return definition
}

func mustSelection(node ast.Node) ast.Selection {
	selection, ok := node.(ast.Selection)
	if !ok {
		panic(fmt.Sprintf("visitor: %T is not a selection", node))
	}
	return selection
}
