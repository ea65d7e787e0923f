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

// Package visitor walks an AST depth-first in document order, calling enter and leave hooks for
// every node. Hooks can skip a sub-tree, abort the walk, or edit the tree; edits are applied to
// copies, the input AST is never mutated.
package visitor

import (
	"fmt"

	"github.com/sablegql/sable/graphql/language/ast"
)

// Actions a visit function can request.
const (
	// Continue the walk.
	ActionNoChange = ""

	// Stop the whole walk; no further hooks run.
	ActionBreak = "BREAK"

	// Don't walk into the children of the current node. Its leave hook is skipped as well.
	ActionSkip = "SKIP"

	// Edit the tree at the current node. The second return value supplies the replacement: a node
	// substitutes the current one, nil removes it, and a []ast.Node returned from a leave hook in
	// a list position splices the list.
	ActionUpdate = "UPDATE"
)

// VisitFuncParams describes the position of the node a hook is invoked on. Key is the index or
// field name of the node in its parent, Path is the list of keys from the root, and Ancestors is
// the stack of enclosing nodes. Path and Ancestors are only valid for the duration of the call.
type VisitFuncParams struct {
	Node      ast.Node
	Key       interface{}
	Parent    ast.Node
	Path      []interface{}
	Ancestors []ast.Node
}

// VisitFunc is an enter or leave hook.
type VisitFunc func(p VisitFuncParams) (string, interface{})

// NamedVisitFuncs bundles the hooks that apply to one node kind.
type NamedVisitFuncs struct {
	Enter VisitFunc
	Leave VisitFunc
}

// VisitorOptions configures a walk. For each node, the kind-specific hook is used when the
// KindFuncMap has an entry for the node's kind, and the generic Enter/Leave otherwise.
type VisitorOptions struct {
	Enter       VisitFunc
	Leave       VisitFunc
	KindFuncMap map[string]NamedVisitFuncs
}

// Visit walks the tree rooted at root and returns the (possibly edited) result. When the root
// itself is removed by an edit, the result is nil.
func Visit(root ast.Node, opts *VisitorOptions) ast.Node {
	w := walker{opts: opts}
	result := w.walk(root, nil, nil)
	if result.remove {
		return nil
	}
	return result.node
}

type walker struct {
	opts      *VisitorOptions
	path      []interface{}
	ancestors []ast.Node
	broke     bool
}

// editResult reports what became of one visited node: the node itself (possibly a replacement),
// its removal, or a splice of several nodes into the enclosing list.
type editResult struct {
	node   ast.Node
	remove bool
	splice []ast.Node
}

func (w *walker) enterFn(kind string) VisitFunc {
	if funcs, ok := w.opts.KindFuncMap[kind]; ok {
		return funcs.Enter
	}
	return w.opts.Enter
}

func (w *walker) leaveFn(kind string) VisitFunc {
	if funcs, ok := w.opts.KindFuncMap[kind]; ok {
		return funcs.Leave
	}
	return w.opts.Leave
}

func (w *walker) walk(node ast.Node, key interface{}, parent ast.Node) editResult {
	if w.broke || isNilNode(node) {
		return editResult{node: node}
	}

	params := VisitFuncParams{
		Node:      node,
		Key:       key,
		Parent:    parent,
		Path:      w.path,
		Ancestors: w.ancestors,
	}

	if fn := w.enterFn(node.GetKind()); fn != nil {
		switch action, result := fn(params); action {
		case ActionBreak:
			w.broke = true
			return editResult{node: node}
		case ActionSkip:
			return editResult{node: node}
		case ActionUpdate:
			if result == nil {
				return editResult{remove: true}
			}
			replacement, ok := result.(ast.Node)
			if !ok {
				panic(fmt.Sprintf("visitor: enter hook returned %T which is not an ast.Node", result))
			}
			// The walk continues into the replacement.
			node = replacement
		}
	}

	// The root node has no key in any parent and contributes nothing to the path.
	if parent != nil {
		w.path = append(w.path, key)
	}
	w.ancestors = append(w.ancestors, node)
	node = w.walkChildren(node)
	w.ancestors = w.ancestors[:len(w.ancestors)-1]
	if parent != nil {
		w.path = w.path[:len(w.path)-1]
	}

	if w.broke {
		return editResult{node: node}
	}

	if fn := w.leaveFn(node.GetKind()); fn != nil {
		params.Node = node
		switch action, result := fn(params); action {
		case ActionBreak:
			w.broke = true
		case ActionUpdate:
			switch result := result.(type) {
			case nil:
				return editResult{remove: true}
			case []ast.Node:
				return editResult{splice: result}
			case ast.Node:
				return editResult{node: result}
			default:
				panic(fmt.Sprintf("visitor: leave hook returned unsupported type %T", result))
			}
		}
	}

	return editResult{node: node}
}

// isNilNode guards against typed nils stored in interface-typed fields.
func isNilNode(node ast.Node) bool {
	if node == nil {
		return true
	}
	switch n := node.(type) {
	case *ast.SelectionSet:
		return n == nil
	case *ast.Name:
		return n == nil
	case *ast.NamedType:
		return n == nil
	}
	return false
}
