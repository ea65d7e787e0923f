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
	"sort"
	"strings"

	"github.com/sablegql/sable/graphql/gqlerrors"
	"github.com/sablegql/sable/graphql/language/ast"
	"github.com/sablegql/sable/graphql/language/kinds"
	"github.com/sablegql/sable/graphql/language/printer"
	"github.com/sablegql/sable/graphql/language/visitor"
)

// SpecifiedRules is the rule set ValidateDocument applies by default.
var SpecifiedRules = []RuleFn{
	UniqueOperationNamesRule,
	LoneAnonymousOperationRule,
	KnownTypeNamesRule,
	FragmentsOnCompositeTypesRule,
	VariablesAreInputTypesRule,
	ScalarLeafsRule,
	FieldsOnCorrectTypeRule,
	UniqueFragmentNamesRule,
	KnownFragmentNamesRule,
	NoUnusedFragmentsRule,
	PossibleFragmentSpreadsRule,
	NoFragmentCyclesRule,
	NoUndefinedVariablesRule,
	NoUnusedVariablesRule,
	KnownDirectivesRule,
	KnownArgumentNamesRule,
	UniqueArgumentNamesRule,
	ArgumentsOfCorrectTypeRule,
	ProvidedNonNullArgumentsRule,
	DefaultValuesOfCorrectTypeRule,
	VariablesInAllowedPositionRule,
	OverlappingFieldsCanBeMergedRule,
}

// UniqueOperationNamesRule: no two operations in a document may share a name.
func UniqueOperationNamesRule(ctx *ValidationContext) *RuleInstance {
	knownNames := map[string]*ast.Name{}

	return &RuleInstance{
		KindHooks: map[string]RuleHooks{
			kinds.OperationDefinition: {
				Enter: func(p visitor.VisitFuncParams) bool {
					operation := p.Node.(*ast.OperationDefinition)
					if operation.Name == nil {
						return true
					}
					name := operation.Name.Value
					if previous, reported := knownNames[name]; reported {
						ctx.ReportError(gqlerrors.NewError(
							fmt.Sprintf("There can only be one operation named %q.", name),
							[]ast.Node{previous, operation.Name}, nil))
					} else {
						knownNames[name] = operation.Name
					}
					return true
				},
			},
		},
	}
}

// LoneAnonymousOperationRule: an anonymous operation must be the only operation in the document.
func LoneAnonymousOperationRule(ctx *ValidationContext) *RuleInstance {
	operationCount := 0

	return &RuleInstance{
		KindHooks: map[string]RuleHooks{
			kinds.Document: {
				Enter: func(p visitor.VisitFuncParams) bool {
					document := p.Node.(*ast.Document)
					operationCount = 0
					for _, definition := range document.Definitions {
						if _, isOperation := definition.(*ast.OperationDefinition); isOperation {
							operationCount++
						}
					}
					return true
				},
			},
			kinds.OperationDefinition: {
				Enter: func(p visitor.VisitFuncParams) bool {
					operation := p.Node.(*ast.OperationDefinition)
					if operation.Name == nil && operationCount > 1 {
						ctx.ReportError(gqlerrors.NewError(
							"This anonymous operation must be the only defined operation.",
							[]ast.Node{operation}, nil))
					}
					return true
				},
			},
		},
	}
}

// KnownTypeNamesRule: every type referenced by name must exist in the schema.
func KnownTypeNamesRule(ctx *ValidationContext) *RuleInstance {
	return &RuleInstance{
		KindHooks: map[string]RuleHooks{
			kinds.NamedType: {
				Enter: func(p visitor.VisitFuncParams) bool {
					namedType := p.Node.(*ast.NamedType)
					if ctx.Schema().Type(namedType.Name.Value) == nil {
						ctx.ReportError(gqlerrors.NewError(
							fmt.Sprintf("Unknown type %q.", namedType.Name.Value),
							[]ast.Node{namedType}, nil))
					}
					return true
				},
			},
		},
	}
}

// FragmentsOnCompositeTypesRule: fragments can only condition on object, interface or union
// types.
func FragmentsOnCompositeTypesRule(ctx *ValidationContext) *RuleInstance {
	return &RuleInstance{
		KindHooks: map[string]RuleHooks{
			kinds.InlineFragment: {
				Enter: func(p visitor.VisitFuncParams) bool {
					fragment := p.Node.(*ast.InlineFragment)
					if fragment.TypeCondition == nil {
						return true
					}
					conditionType := TypeFromAST(ctx.Schema(), fragment.TypeCondition)
					if conditionType != nil && !IsCompositeType(conditionType) {
						ctx.ReportError(gqlerrors.NewError(
							fmt.Sprintf("Fragment cannot condition on non composite type %q.",
								printer.Print(fragment.TypeCondition)),
							[]ast.Node{fragment.TypeCondition}, nil))
					}
					return true
				},
			},
			kinds.FragmentDefinition: {
				Enter: func(p visitor.VisitFuncParams) bool {
					fragment := p.Node.(*ast.FragmentDefinition)
					conditionType := TypeFromAST(ctx.Schema(), fragment.TypeCondition)
					if conditionType != nil && !IsCompositeType(conditionType) {
						ctx.ReportError(gqlerrors.NewError(
							fmt.Sprintf("Fragment %q cannot condition on non composite type %q.",
								fragment.Name.Value, printer.Print(fragment.TypeCondition)),
							[]ast.Node{fragment.TypeCondition}, nil))
					}
					return true
				},
			},
		},
	}
}

// VariablesAreInputTypesRule: declared variables must have input types.
func VariablesAreInputTypesRule(ctx *ValidationContext) *RuleInstance {
	return &RuleInstance{
		KindHooks: map[string]RuleHooks{
			kinds.VariableDefinition: {
				Enter: func(p visitor.VisitFuncParams) bool {
					definition := p.Node.(*ast.VariableDefinition)
					declaredType := TypeFromAST(ctx.Schema(), definition.Type)
					if declaredType != nil && !IsInputType(declaredType) {
						ctx.ReportError(gqlerrors.NewError(
							fmt.Sprintf("Variable \"$%v\" cannot be non-input type %q.",
								definition.Variable.Name.Value, printer.Print(definition.Type)),
							[]ast.Node{definition.Type}, nil))
					}
					return true
				},
			},
		},
	}
}

// ScalarLeafsRule: leaf fields must not carry a sub-selection; composite fields must.
func ScalarLeafsRule(ctx *ValidationContext) *RuleInstance {
	return &RuleInstance{
		KindHooks: map[string]RuleHooks{
			kinds.Field: {
				Enter: func(p visitor.VisitFuncParams) bool {
					field := p.Node.(*ast.Field)
					fieldType := ctx.Type()
					if fieldType == nil {
						return true
					}
					if IsLeafType(Named(fieldType)) {
						if field.SelectionSet != nil {
							ctx.ReportError(gqlerrors.NewError(
								fmt.Sprintf("Field %q of type %q must not have a sub selection.",
									field.Name.Value, fieldType.String()),
								[]ast.Node{field.SelectionSet}, nil))
						}
					} else if field.SelectionSet == nil {
						ctx.ReportError(gqlerrors.NewError(
							fmt.Sprintf("Field %q of type %q must have a sub selection.",
								field.Name.Value, fieldType.String()),
							[]ast.Node{field}, nil))
					}
					return true
				},
			},
		},
	}
}

// FieldsOnCorrectTypeRule: every selected field must be defined by the type it is selected on.
func FieldsOnCorrectTypeRule(ctx *ValidationContext) *RuleInstance {
	return &RuleInstance{
		KindHooks: map[string]RuleHooks{
			kinds.Field: {
				Enter: func(p visitor.VisitFuncParams) bool {
					field := p.Node.(*ast.Field)
					parentType := ctx.ParentType()
					if parentType == nil {
						return true
					}
					if ctx.FieldDef() == nil {
						ctx.ReportError(gqlerrors.NewError(
							fmt.Sprintf("Cannot query field %q on %q.",
								field.Name.Value, TypeName(parentType)),
							[]ast.Node{field}, nil))
					}
					return true
				},
			},
		},
	}
}

// UniqueFragmentNamesRule: no two fragments in a document may share a name.
func UniqueFragmentNamesRule(ctx *ValidationContext) *RuleInstance {
	knownNames := map[string]*ast.Name{}

	return &RuleInstance{
		KindHooks: map[string]RuleHooks{
			kinds.FragmentDefinition: {
				Enter: func(p visitor.VisitFuncParams) bool {
					fragment := p.Node.(*ast.FragmentDefinition)
					name := fragment.Name.Value
					if previous, reported := knownNames[name]; reported {
						ctx.ReportError(gqlerrors.NewError(
							fmt.Sprintf("There can only be one fragment named %q.", name),
							[]ast.Node{previous, fragment.Name}, nil))
					} else {
						knownNames[name] = fragment.Name
					}
					return true
				},
			},
		},
	}
}

// KnownFragmentNamesRule: every spread must name a fragment defined in the document.
func KnownFragmentNamesRule(ctx *ValidationContext) *RuleInstance {
	return &RuleInstance{
		KindHooks: map[string]RuleHooks{
			kinds.FragmentSpread: {
				Enter: func(p visitor.VisitFuncParams) bool {
					spread := p.Node.(*ast.FragmentSpread)
					if ctx.Fragment(spread.Name.Value) == nil {
						ctx.ReportError(gqlerrors.NewError(
							fmt.Sprintf("Unknown fragment %q.", spread.Name.Value),
							[]ast.Node{spread.Name}, nil))
					}
					return true
				},
			},
		},
	}
}

// definitionKey identifies the operation or fragment a node was found inside of, for rules that
// track per-definition state during the single walk.
type definitionKey struct {
	// The fragment name, or "" for an operation.
	fragment string
	// The index of the operation in the document; meaningful when fragment is "".
	operation int
}

// documentScope follows which top-level definition the walk is inside of and buckets what the
// rules record per definition.
type documentScope struct {
	current        definitionKey
	operationIndex int
	operations     []*ast.OperationDefinition
}

func (scope *documentScope) hooks() map[string]RuleHooks {
	return map[string]RuleHooks{
		kinds.OperationDefinition: {
			Enter: func(p visitor.VisitFuncParams) bool {
				scope.current = definitionKey{operation: scope.operationIndex}
				scope.operationIndex++
				scope.operations = append(scope.operations, p.Node.(*ast.OperationDefinition))
				return true
			},
		},
		kinds.FragmentDefinition: {
			Enter: func(p visitor.VisitFuncParams) bool {
				scope.current = definitionKey{fragment: p.Node.(*ast.FragmentDefinition).Name.Value}
				return true
			},
		},
	}
}

// mergeHooks folds several hook maps into one instance. Hooks landing on the same kind and phase
// chain in order; a skip requested by any of them wins.
func mergeHooks(hookMaps ...map[string]RuleHooks) map[string]RuleHooks {
	merged := map[string]RuleHooks{}
	for _, hookMap := range hookMaps {
		for kind, hooks := range hookMap {
			entry := merged[kind]
			entry.Enter = chainHooks(entry.Enter, hooks.Enter)
			entry.Leave = chainHooks(entry.Leave, hooks.Leave)
			merged[kind] = entry
		}
	}
	return merged
}

func chainHooks(first RuleHook, second RuleHook) RuleHook {
	if first == nil {
		return second
	}
	if second == nil {
		return first
	}
	return func(p visitor.VisitFuncParams) bool {
		firstOK := first(p)
		secondOK := second(p)
		return firstOK && secondOK
	}
}

// reachableFragments answers which fragments an operation touches through spreads, transitively.
func reachableFragments(start []string, spreadsIn map[string][]string) map[string]bool {
	reached := map[string]bool{}
	queue := append([]string(nil), start...)
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if reached[name] {
			continue
		}
		reached[name] = true
		queue = append(queue, spreadsIn[name]...)
	}
	return reached
}

// NoUnusedFragmentsRule: every fragment definition must be reachable from some operation.
func NoUnusedFragmentsRule(ctx *ValidationContext) *RuleInstance {
	var (
		scope       documentScope
		fragments   []*ast.FragmentDefinition
		opSpreads   = map[int][]string{}
		fragSpreads = map[string][]string{}
	)

	return &RuleInstance{
		KindHooks: mergeHooks(scope.hooks(), map[string]RuleHooks{
			kinds.FragmentDefinition: {
				Enter: func(p visitor.VisitFuncParams) bool {
					fragments = append(fragments, p.Node.(*ast.FragmentDefinition))
					return true
				},
			},
			kinds.FragmentSpread: {
				Enter: func(p visitor.VisitFuncParams) bool {
					name := p.Node.(*ast.FragmentSpread).Name.Value
					if scope.current.fragment != "" {
						fragSpreads[scope.current.fragment] = append(fragSpreads[scope.current.fragment], name)
					} else {
						opSpreads[scope.current.operation] = append(opSpreads[scope.current.operation], name)
					}
					return true
				},
			},
			kinds.Document: {
				Leave: func(p visitor.VisitFuncParams) bool {
					used := map[string]bool{}
					for _, spreads := range opSpreads {
						for name := range reachableFragments(spreads, fragSpreads) {
							used[name] = true
						}
					}
					for _, fragment := range fragments {
						if !used[fragment.Name.Value] {
							ctx.ReportError(gqlerrors.NewError(
								fmt.Sprintf("Fragment %q is never used.", fragment.Name.Value),
								[]ast.Node{fragment}, nil))
						}
					}
					return true
				},
			},
		}),
	}
}

// NoFragmentCyclesRule: fragment spreads must not form cycles.
func NoFragmentCyclesRule(ctx *ValidationContext) *RuleInstance {
	var (
		spreadsInFragment  map[string][]*ast.FragmentSpread
		knownToLeadToCycle map[*ast.FragmentSpread]bool
	)

	// collectSpreads gathers every spread in a selection set, nested ones included.
	var collectSpreads func(selectionSet *ast.SelectionSet, out []*ast.FragmentSpread) []*ast.FragmentSpread
	collectSpreads = func(selectionSet *ast.SelectionSet, out []*ast.FragmentSpread) []*ast.FragmentSpread {
		if selectionSet == nil {
			return out
		}
		for _, selection := range selectionSet.Selections {
			switch selection := selection.(type) {
			case *ast.FragmentSpread:
				out = append(out, selection)
			case *ast.Field:
				out = collectSpreads(selection.SelectionSet, out)
			case *ast.InlineFragment:
				out = collectSpreads(selection.SelectionSet, out)
			}
		}
		return out
	}

	return &RuleInstance{
		KindHooks: map[string]RuleHooks{
			kinds.Document: {
				Enter: func(p visitor.VisitFuncParams) bool {
					// Pre-compute the spread list of each fragment by visiting each definition
					// once.
					spreadsInFragment = map[string][]*ast.FragmentSpread{}
					knownToLeadToCycle = map[*ast.FragmentSpread]bool{}
					for _, definition := range p.Node.(*ast.Document).Definitions {
						if fragment, ok := definition.(*ast.FragmentDefinition); ok {
							spreadsInFragment[fragment.Name.Value] = collectSpreads(fragment.SelectionSet, nil)
						}
					}
					return true
				},
			},
			kinds.FragmentDefinition: {
				Enter: func(p visitor.VisitFuncParams) bool {
					fragment := p.Node.(*ast.FragmentDefinition)
					initialName := fragment.Name.Value

					var (
						spreadPath      []*ast.FragmentSpread
						detectCycleFrom func(fragmentName string)
					)
					detectCycleFrom = func(fragmentName string) {
						for _, spread := range spreadsInFragment[fragmentName] {
							if knownToLeadToCycle[spread] {
								continue
							}
							if spread.Name.Value == initialName {
								// The path from the initial fragment back to itself.
								cycle := append(append([]*ast.FragmentSpread(nil), spreadPath...), spread)
								nodes := make([]ast.Node, len(cycle))
								via := make([]string, 0, len(spreadPath))
								for i, s := range cycle {
									nodes[i] = s
									knownToLeadToCycle[s] = true
								}
								for _, s := range spreadPath {
									via = append(via, s.Name.Value)
								}
								message := fmt.Sprintf("Cannot spread fragment %q within itself", initialName)
								if len(via) > 0 {
									message += fmt.Sprintf(" via %v", strings.Join(via, ", "))
								}
								ctx.ReportError(gqlerrors.NewError(message+".", nodes, nil))
								continue
							}
							alreadyOnPath := false
							for _, onPath := range spreadPath {
								if onPath == spread {
									alreadyOnPath = true
									break
								}
							}
							if alreadyOnPath {
								// A cycle not passing through the initial fragment; it is reported
								// when the walk starts from one of its own members.
								continue
							}
							spreadPath = append(spreadPath, spread)
							detectCycleFrom(spread.Name.Value)
							spreadPath = spreadPath[:len(spreadPath)-1]
						}
					}
					detectCycleFrom(initialName)
					return true
				},
			},
		},
	}
}

// variableUsageTracking is the shared bookkeeping of the variable rules: which variables each
// definition uses directly and which fragments it spreads.
type variableUsageTracking struct {
	scope     documentScope
	opUsages  map[int][]*ast.Variable
	fragUsage map[string][]*ast.Variable
	opSpreads map[int][]string
	spreads   map[string][]string
}

func newVariableUsageTracking() *variableUsageTracking {
	return &variableUsageTracking{
		opUsages:  map[int][]*ast.Variable{},
		fragUsage: map[string][]*ast.Variable{},
		opSpreads: map[int][]string{},
		spreads:   map[string][]string{},
	}
}

func (t *variableUsageTracking) hooks() map[string]RuleHooks {
	return mergeHooks(t.scope.hooks(), map[string]RuleHooks{
		kinds.Variable: {
			Enter: func(p visitor.VisitFuncParams) bool {
				if _, inDefinition := p.Parent.(*ast.VariableDefinition); inDefinition {
					// The declaration itself is not a usage.
					return true
				}
				variable := p.Node.(*ast.Variable)
				if t.scope.current.fragment != "" {
					t.fragUsage[t.scope.current.fragment] = append(t.fragUsage[t.scope.current.fragment], variable)
				} else {
					t.opUsages[t.scope.current.operation] = append(t.opUsages[t.scope.current.operation], variable)
				}
				return true
			},
		},
		kinds.FragmentSpread: {
			Enter: func(p visitor.VisitFuncParams) bool {
				name := p.Node.(*ast.FragmentSpread).Name.Value
				if t.scope.current.fragment != "" {
					t.spreads[t.scope.current.fragment] = append(t.spreads[t.scope.current.fragment], name)
				} else {
					t.opSpreads[t.scope.current.operation] = append(t.opSpreads[t.scope.current.operation], name)
				}
				return true
			},
		},
	})
}

// usagesOfOperation lists every variable usage the operation reaches, directly or through
// spreads.
func (t *variableUsageTracking) usagesOfOperation(index int) []*ast.Variable {
	usages := append([]*ast.Variable(nil), t.opUsages[index]...)
	for name := range reachableFragments(t.opSpreads[index], t.spreads) {
		usages = append(usages, t.fragUsage[name]...)
	}
	return usages
}

func operationNameOf(operation *ast.OperationDefinition) string {
	if operation.Name != nil {
		return operation.Name.Value
	}
	return ""
}

// NoUndefinedVariablesRule: every variable used, directly or via spread fragments, must be
// defined by the operation.
func NoUndefinedVariablesRule(ctx *ValidationContext) *RuleInstance {
	tracking := newVariableUsageTracking()
	defined := map[int]map[string]bool{}

	return &RuleInstance{
		KindHooks: mergeHooks(tracking.hooks(), map[string]RuleHooks{
			kinds.VariableDefinition: {
				Enter: func(p visitor.VisitFuncParams) bool {
					index := tracking.scope.current.operation
					if defined[index] == nil {
						defined[index] = map[string]bool{}
					}
					defined[index][p.Node.(*ast.VariableDefinition).Variable.Name.Value] = true
					return true
				},
			},
			kinds.Document: {
				Leave: func(p visitor.VisitFuncParams) bool {
					for index, operation := range tracking.scope.operations {
						for _, usage := range tracking.usagesOfOperation(index) {
							if defined[index][usage.Name.Value] {
								continue
							}
							var message string
							if name := operationNameOf(operation); name != "" {
								message = fmt.Sprintf("Variable \"$%v\" is not defined by operation %q.",
									usage.Name.Value, name)
							} else {
								message = fmt.Sprintf("Variable \"$%v\" is not defined.", usage.Name.Value)
							}
							ctx.ReportError(gqlerrors.NewError(
								message, []ast.Node{usage, operation}, nil))
						}
					}
					return true
				},
			},
		}),
	}
}

// NoUnusedVariablesRule: every variable an operation defines must be used somewhere the
// operation reaches.
func NoUnusedVariablesRule(ctx *ValidationContext) *RuleInstance {
	tracking := newVariableUsageTracking()
	definitions := map[int][]*ast.VariableDefinition{}

	return &RuleInstance{
		KindHooks: mergeHooks(tracking.hooks(), map[string]RuleHooks{
			kinds.VariableDefinition: {
				Enter: func(p visitor.VisitFuncParams) bool {
					index := tracking.scope.current.operation
					definitions[index] = append(definitions[index], p.Node.(*ast.VariableDefinition))
					return true
				},
			},
			kinds.Document: {
				Leave: func(p visitor.VisitFuncParams) bool {
					for index, operation := range tracking.scope.operations {
						used := map[string]bool{}
						for _, usage := range tracking.usagesOfOperation(index) {
							used[usage.Name.Value] = true
						}
						for _, definition := range definitions[index] {
							if used[definition.Variable.Name.Value] {
								continue
							}
							var message string
							if name := operationNameOf(operation); name != "" {
								message = fmt.Sprintf("Variable \"$%v\" is never used in operation %q.",
									definition.Variable.Name.Value, name)
							} else {
								message = fmt.Sprintf("Variable \"$%v\" is never used.",
									definition.Variable.Name.Value)
							}
							ctx.ReportError(gqlerrors.NewError(
								message, []ast.Node{definition}, nil))
						}
					}
					return true
				},
			},
		}),
	}
}

// KnownDirectivesRule: directives must be defined by the schema and sit in a place their
// definition allows: operations, fields or fragments.
func KnownDirectivesRule(ctx *ValidationContext) *RuleInstance {
	return &RuleInstance{
		KindHooks: map[string]RuleHooks{
			kinds.Directive: {
				Enter: func(p visitor.VisitFuncParams) bool {
					directiveAST := p.Node.(*ast.Directive)
					directiveDef := ctx.Directive()
					if directiveDef == nil {
						ctx.ReportError(gqlerrors.NewError(
							fmt.Sprintf("Unknown directive %q.", directiveAST.Name.Value),
							[]ast.Node{directiveAST}, nil))
						return true
					}

					var placement string
					switch p.Parent.GetKind() {
					case kinds.OperationDefinition:
						if !directiveDef.OnOperation {
							placement = "operation"
						}
					case kinds.Field:
						if !directiveDef.OnField {
							placement = "field"
						}
					case kinds.FragmentDefinition, kinds.FragmentSpread, kinds.InlineFragment:
						if !directiveDef.OnFragment {
							placement = "fragment"
						}
					}
					if placement != "" {
						ctx.ReportError(gqlerrors.NewError(
							fmt.Sprintf("Directive %q may not be used on %q.",
								directiveAST.Name.Value, placement),
							[]ast.Node{directiveAST}, nil))
					}
					return true
				},
			},
		},
	}
}

// KnownArgumentNamesRule: arguments must be defined by the field or directive they are given to.
func KnownArgumentNamesRule(ctx *ValidationContext) *RuleInstance {
	return &RuleInstance{
		KindHooks: map[string]RuleHooks{
			kinds.Argument: {
				Enter: func(p visitor.VisitFuncParams) bool {
					if ctx.Argument() != nil {
						return true
					}
					argument := p.Node.(*ast.Argument)

					if directiveDef := ctx.Directive(); directiveDef != nil {
						ctx.ReportError(gqlerrors.NewError(
							fmt.Sprintf("Unknown argument %q on directive \"@%v\".",
								argument.Name.Value, directiveDef.Name),
							[]ast.Node{argument}, nil))
						return true
					}

					fieldDef := ctx.FieldDef()
					parentType := ctx.ParentType()
					if fieldDef != nil && parentType != nil {
						ctx.ReportError(gqlerrors.NewError(
							fmt.Sprintf("Unknown argument %q on field %q of type %q.",
								argument.Name.Value, p.Parent.(*ast.Field).Name.Value, TypeName(parentType)),
							[]ast.Node{argument}, nil))
					}
					return true
				},
			},
		},
	}
}

// UniqueArgumentNamesRule: a field or directive takes each argument at most once.
func UniqueArgumentNamesRule(ctx *ValidationContext) *RuleInstance {
	var knownNames map[string]*ast.Name
	reset := func(p visitor.VisitFuncParams) bool {
		knownNames = map[string]*ast.Name{}
		return true
	}

	return &RuleInstance{
		KindHooks: map[string]RuleHooks{
			kinds.Field:     {Enter: reset},
			kinds.Directive: {Enter: reset},
			kinds.Argument: {
				Enter: func(p visitor.VisitFuncParams) bool {
					argument := p.Node.(*ast.Argument)
					name := argument.Name.Value
					if previous, reported := knownNames[name]; reported {
						ctx.ReportError(gqlerrors.NewError(
							fmt.Sprintf("There can be only one argument named %q.", name),
							[]ast.Node{previous, argument.Name}, nil))
					} else {
						knownNames[name] = argument.Name
					}
					// The argument value needs no further attention from this rule.
					return false
				},
			},
		},
	}
}

// ArgumentsOfCorrectTypeRule: argument literals must coerce to the argument's declared type.
func ArgumentsOfCorrectTypeRule(ctx *ValidationContext) *RuleInstance {
	return &RuleInstance{
		KindHooks: map[string]RuleHooks{
			kinds.Argument: {
				Enter: func(p visitor.VisitFuncParams) bool {
					argument := p.Node.(*ast.Argument)
					argDef := ctx.Argument()
					if argDef == nil {
						return false
					}
					if !IsValidLiteralValue(argDef.Type, argument.Value) {
						ctx.ReportError(gqlerrors.NewError(
							fmt.Sprintf("Argument %q expected type %q but got: %v.",
								argument.Name.Value, argDef.Type.String(), printer.Print(argument.Value)),
							[]ast.Node{argument.Value}, nil))
					}
					return false
				},
			},
		},
	}
}

// ProvidedNonNullArgumentsRule: non-null arguments must be supplied.
func ProvidedNonNullArgumentsRule(ctx *ValidationContext) *RuleInstance {
	missingArgs := func(args FieldArgs, supplied []*ast.Argument) []string {
		suppliedNames := map[string]bool{}
		for _, argument := range supplied {
			suppliedNames[argument.Name.Value] = true
		}
		var missing []string
		for name, argDef := range args {
			if _, nonNull := argDef.Type.(*NonNull); nonNull && !suppliedNames[name] {
				missing = append(missing, name)
			}
		}
		sort.Strings(missing)
		return missing
	}

	return &RuleInstance{
		KindHooks: map[string]RuleHooks{
			kinds.Field: {
				Leave: func(p visitor.VisitFuncParams) bool {
					field := p.Node.(*ast.Field)
					fieldDef := ctx.FieldDef()
					if fieldDef == nil {
						return true
					}
					for _, name := range missingArgs(fieldDef.Args, field.Arguments) {
						ctx.ReportError(gqlerrors.NewError(
							fmt.Sprintf("Field %q argument %q of type %q is required but not provided.",
								field.Name.Value, name, fieldDef.Args[name].Type.String()),
							[]ast.Node{field}, nil))
					}
					return true
				},
			},
			kinds.Directive: {
				Leave: func(p visitor.VisitFuncParams) bool {
					directiveAST := p.Node.(*ast.Directive)
					directiveDef := ctx.Directive()
					if directiveDef == nil {
						return true
					}
					for _, name := range missingArgs(directiveDef.Args, directiveAST.Arguments) {
						ctx.ReportError(gqlerrors.NewError(
							fmt.Sprintf("Directive \"@%v\" argument %q of type %q is required but not provided.",
								directiveAST.Name.Value, name, directiveDef.Args[name].Type.String()),
							[]ast.Node{directiveAST}, nil))
					}
					return true
				},
			},
		},
	}
}

// DefaultValuesOfCorrectTypeRule: variable defaults must coerce to the variable's type, and a
// non-null variable can never use one.
func DefaultValuesOfCorrectTypeRule(ctx *ValidationContext) *RuleInstance {
	return &RuleInstance{
		KindHooks: map[string]RuleHooks{
			kinds.VariableDefinition: {
				Enter: func(p visitor.VisitFuncParams) bool {
					definition := p.Node.(*ast.VariableDefinition)
					declaredType := ctx.InputType()
					if definition.DefaultValue == nil || declaredType == nil {
						return true
					}

					if nonNull, ok := declaredType.(*NonNull); ok {
						ctx.ReportError(gqlerrors.NewError(
							fmt.Sprintf("Variable \"$%v\" of type %q is required and will never use "+
								"the default value. Perhaps you meant to use type %q.",
								definition.Variable.Name.Value, declaredType.String(), nonNull.OfType.String()),
							[]ast.Node{definition.DefaultValue}, nil))
					} else if !IsValidLiteralValue(declaredType, definition.DefaultValue) {
						ctx.ReportError(gqlerrors.NewError(
							fmt.Sprintf("Variable \"$%v\" of type %q has invalid default value: %v.",
								definition.Variable.Name.Value, declaredType.String(),
								printer.Print(definition.DefaultValue)),
							[]ast.Node{definition.DefaultValue}, nil))
					}
					return true
				},
			},
		},
	}
}

// The remaining three rules are declared by the source this engine follows without carrying an
// implementation, and are kept as conscious no-ops to match its behavior. See DESIGN.md.

// PossibleFragmentSpreadsRule is declared but not implemented.
func PossibleFragmentSpreadsRule(ctx *ValidationContext) *RuleInstance {
	return &RuleInstance{}
}

// VariablesInAllowedPositionRule is declared but not implemented.
func VariablesInAllowedPositionRule(ctx *ValidationContext) *RuleInstance {
	return &RuleInstance{}
}

// OverlappingFieldsCanBeMergedRule is declared but not implemented.
func OverlappingFieldsCanBeMergedRule(ctx *ValidationContext) *RuleInstance {
	return &RuleInstance{}
}
