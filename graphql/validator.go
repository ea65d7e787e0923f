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
	"github.com/sablegql/sable/graphql/gqlerrors"
	"github.com/sablegql/sable/graphql/language/ast"
	"github.com/sablegql/sable/graphql/language/visitor"
)

// ValidationContext is handed to every validation rule. It exposes the schema and document under
// validation, the TypeInfo state of the shared walk, and collects the reported errors.
type ValidationContext struct {
	schema   *Schema
	document *ast.Document
	typeInfo *TypeInfo

	fragments map[string]*ast.FragmentDefinition
	errors    []*gqlerrors.Error
}

// NewValidationContext creates the context one validation run shares between its rules.
func NewValidationContext(schema *Schema, document *ast.Document, typeInfo *TypeInfo) *ValidationContext {
	return &ValidationContext{
		schema:   schema,
		document: document,
		typeInfo: typeInfo,
	}
}

// Schema returns the schema the document is validated against.
func (ctx *ValidationContext) Schema() *Schema {
	return ctx.schema
}

// Document returns the document under validation.
func (ctx *ValidationContext) Document() *ast.Document {
	return ctx.document
}

// ReportError collects a validation error. Rules never abort the walk; everything found in one
// pass is reported together.
func (ctx *ValidationContext) ReportError(err *gqlerrors.Error) {
	ctx.errors = append(ctx.errors, err)
}

// Errors returns everything reported so far.
func (ctx *ValidationContext) Errors() []*gqlerrors.Error {
	return ctx.errors
}

// Fragment returns the named fragment definition from the document, or nil.
func (ctx *ValidationContext) Fragment(name string) *ast.FragmentDefinition {
	if ctx.fragments == nil {
		ctx.fragments = map[string]*ast.FragmentDefinition{}
		for _, definition := range ctx.document.Definitions {
			if fragment, ok := definition.(*ast.FragmentDefinition); ok {
				ctx.fragments[fragment.Name.Value] = fragment
			}
		}
	}
	return ctx.fragments[name]
}

// The TypeInfo accessors answer for the node the walk is currently on.

// Type returns the type of the current position.
func (ctx *ValidationContext) Type() Type { return ctx.typeInfo.Type() }

// ParentType returns the composite type whose selection set is being walked.
func (ctx *ValidationContext) ParentType() Type { return ctx.typeInfo.ParentType() }

// InputType returns the expected type of the current input position.
func (ctx *ValidationContext) InputType() Type { return ctx.typeInfo.InputType() }

// FieldDef returns the schema definition of the current field.
func (ctx *ValidationContext) FieldDef() *FieldDefinition { return ctx.typeInfo.FieldDef() }

// Directive returns the schema definition of the current directive.
func (ctx *ValidationContext) Directive() *Directive { return ctx.typeInfo.Directive() }

// Argument returns the schema definition of the current argument.
func (ctx *ValidationContext) Argument() *ArgumentConfig { return ctx.typeInfo.Argument() }

// RuleHook is one enter or leave hook of a validation rule. Returning false from an enter hook
// makes the rule skip the sub-tree under the node; the return value of leave hooks is ignored.
type RuleHook func(p visitor.VisitFuncParams) bool

// RuleHooks are the hooks a rule registers for one node kind.
type RuleHooks struct {
	Enter RuleHook
	Leave RuleHook
}

// RuleInstance is one rule bound to a validation run: its hooks, keyed by node kind.
type RuleInstance struct {
	KindHooks map[string]RuleHooks
}

// RuleFn instantiates a rule for one validation run. Rules keep their per-document state in the
// closure.
type RuleFn func(ctx *ValidationContext) *RuleInstance

// ValidateDocument checks a parsed document against the schema with the given rules (the
// specified rule set when none are passed). It always completes: rules never short-circuit each
// other, and all errors are returned together. An empty document validates trivially.
func ValidateDocument(schema *Schema, document *ast.Document, rules []RuleFn) []gqlerrors.FormattedError {
	if rules == nil {
		rules = SpecifiedRules
	}

	typeInfo := NewTypeInfo(schema)
	ctx := NewValidationContext(schema, document, typeInfo)

	instances := make([]*RuleInstance, len(rules))
	for i, rule := range rules {
		instances[i] = rule(ctx)
	}

	visitUsingRules(ctx, typeInfo, document, instances)

	errs := make([]error, len(ctx.Errors()))
	for i, err := range ctx.Errors() {
		errs[i] = err
	}
	return gqlerrors.FormatErrors(errs...)
}

// visitUsingRules walks the document once, driving TypeInfo and every rule in parallel. A rule
// that skips a node stays quiet until the walk leaves that node again; the other rules and the
// TypeInfo bookkeeping continue throughout.
func visitUsingRules(
	ctx *ValidationContext,
	typeInfo *TypeInfo,
	document *ast.Document,
	instances []*RuleInstance,
) {
	skipping := make([]ast.Node, len(instances))

	visitor.Visit(document, &visitor.VisitorOptions{
		Enter: func(p visitor.VisitFuncParams) (string, interface{}) {
			typeInfo.Enter(p.Node)
			for i, instance := range instances {
				if skipping[i] != nil {
					continue
				}
				hooks, ok := instance.KindHooks[p.Node.GetKind()]
				if !ok || hooks.Enter == nil {
					continue
				}
				if !hooks.Enter(p) {
					skipping[i] = p.Node
				}
			}
			return visitor.ActionNoChange, nil
		},
		Leave: func(p visitor.VisitFuncParams) (string, interface{}) {
			for i, instance := range instances {
				if skipping[i] == p.Node {
					skipping[i] = nil
					continue
				}
				if skipping[i] != nil {
					continue
				}
				if hooks, ok := instance.KindHooks[p.Node.GetKind()]; ok && hooks.Leave != nil {
					hooks.Leave(p)
				}
			}
			typeInfo.Leave(p.Node)
			return visitor.ActionNoChange, nil
		},
	})
}
