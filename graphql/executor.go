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
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/sablegql/sable/graphql/gqlerrors"
	"github.com/sablegql/sable/graphql/language/ast"
)

// undefined is the type of Undefined.
type undefined struct{}

// Undefined marks a field that contributes no entry to the response object at all, which is
// different from resolving to an explicit null. Fields the schema doesn't define produce it.
var Undefined undefined

// ResolveInfo describes the field being resolved and gives the resolver read access to the
// execution it is part of.
type ResolveInfo struct {
	// FieldName is the name of the field in the schema.
	FieldName string

	// FieldASTs are the document nodes requesting the field. There is more than one when the same
	// response key was selected repeatedly and merged.
	FieldASTs []*ast.Field

	// ReturnType is the type the field must produce.
	ReturnType Type

	// ParentType is the Object the field belongs to.
	ParentType *Object

	// The remaining fields expose the surrounding execution.
	Schema         *Schema
	Fragments      map[string]*ast.FragmentDefinition
	RootValue      interface{}
	Operation      *ast.OperationDefinition
	VariableValues map[string]interface{}
}

// Awaitable is a field value still being computed when its resolver returned. In the
// asynchronous execution mode the executor waits on it at the point the resolver was called,
// which is the only legal suspension point.
type Awaitable interface {
	// Await blocks until the value (or the failure) is ready.
	Await() (interface{}, error)
}

// Async runs fn on its own goroutine and returns an Awaitable for its result. It is the simplest
// way for a resolver to produce an asynchronous value.
func Async(fn func() (interface{}, error)) Awaitable {
	pending := &asyncValue{done: make(chan struct{})}
	go func() {
		defer close(pending.done)
		pending.value, pending.err = fn()
	}()
	return pending
}

type asyncValue struct {
	done  chan struct{}
	value interface{}
	err   error
}

// Await implements Awaitable.
func (a *asyncValue) Await() (interface{}, error) {
	<-a.done
	return a.value, a.err
}

// ExecuteParams are the inputs to one execution: the schema, the parsed document, the root value
// handed to the top-level resolvers, the request variables, and the name selecting the operation
// when the document contains several.
type ExecuteParams struct {
	Schema        *Schema
	Root          interface{}
	AST           *ast.Document
	OperationName string
	Variables     map[string]interface{}

	// Context is passed through to every resolver call. Defaults to context.Background().
	Context context.Context
}

// Execute runs an operation to completion on the calling goroutine and returns its result. Fields
// resolve serially in document order; an asynchronous resolver result is awaited at the point the
// resolver returned it.
func Execute(p ExecuteParams) *Result {
	eCtx, err := buildExecutionContext(p)
	if err != nil {
		return &Result{Errors: gqlerrors.FormatErrors(err)}
	}
	return executeOperation(eCtx)
}

// ExecuteAsync runs the same execution as Execute without blocking the caller; the result is
// delivered on the returned channel. The traversal, field order and error semantics are identical
// to the synchronous mode.
func ExecuteAsync(p ExecuteParams) <-chan *Result {
	resultChannel := make(chan *Result, 1)
	go func() {
		resultChannel <- Execute(p)
	}()
	return resultChannel
}

// executionContext carries the state of one request. It lives exactly as long as the execution;
// the error list is append-only and only executor code writes to it.
type executionContext struct {
	schema         *Schema
	fragments      map[string]*ast.FragmentDefinition
	rootValue      interface{}
	operation      *ast.OperationDefinition
	variableValues map[string]interface{}
	errors         []gqlerrors.FormattedError
	ctx            context.Context
}

func (eCtx *executionContext) appendError(err error) {
	eCtx.errors = append(eCtx.errors, gqlerrors.FormatError(err))
}

func buildExecutionContext(p ExecuteParams) (*executionContext, error) {
	var operation *ast.OperationDefinition
	fragments := map[string]*ast.FragmentDefinition{}

	for _, definition := range p.AST.Definitions {
		switch definition := definition.(type) {
		case *ast.OperationDefinition:
			if p.OperationName == "" {
				if operation != nil {
					return nil, gqlerrors.NewError(
						"Must provide operation name if query contains multiple operations.", nil, nil)
				}
				operation = definition
			} else if definition.Name != nil && definition.Name.Value == p.OperationName {
				operation = definition
			}

		case *ast.FragmentDefinition:
			fragments[definition.Name.Value] = definition
		}
	}

	if operation == nil {
		if p.OperationName != "" {
			return nil, gqlerrors.NewError(
				fmt.Sprintf("Unknown operation named %q.", p.OperationName), nil, nil)
		}
		return nil, gqlerrors.NewError("Must provide an operation.", nil, nil)
	}

	variableValues, err := GetVariableValues(p.Schema, operation.VariableDefinitions, p.Variables)
	if err != nil {
		return nil, err
	}

	ctx := p.Context
	if ctx == nil {
		ctx = context.Background()
	}

	return &executionContext{
		schema:         p.Schema,
		fragments:      fragments,
		rootValue:      p.Root,
		operation:      operation,
		variableValues: variableValues,
		ctx:            ctx,
	}, nil
}

func executeOperation(eCtx *executionContext) *Result {
	var rootType *Object
	switch eCtx.operation.Operation {
	case "query":
		rootType = eCtx.schema.QueryType()
	case "mutation":
		rootType = eCtx.schema.MutationType()
		if rootType == nil {
			eCtx.appendError(gqlerrors.NewError(
				"Schema is not configured for mutations.", []ast.Node{eCtx.operation}, nil))
			return &Result{Errors: eCtx.errors}
		}
	default:
		eCtx.appendError(gqlerrors.NewError(
			fmt.Sprintf("Can only execute queries and mutations; got %q.", eCtx.operation.Operation),
			[]ast.Node{eCtx.operation}, nil))
		return &Result{Errors: eCtx.errors}
	}

	fields := newCollectedFields()
	collectFields(eCtx, rootType, eCtx.operation.SelectionSet, fields, map[string]bool{})

	var (
		data map[string]interface{}
		err  error
	)
	if eCtx.operation.Operation == "mutation" {
		data, err = executeFieldsSerially(eCtx, rootType, eCtx.rootValue, fields)
	} else {
		data, err = executeFields(eCtx, rootType, eCtx.rootValue, fields)
	}
	if err != nil {
		// A non-null root field errored: the error is recorded and data becomes null.
		eCtx.appendError(err)
		return &Result{Errors: eCtx.errors}
	}

	return &Result{Data: data, Errors: eCtx.errors}
}

// collectedFields groups the selected fields by their response key, keeping the keys in first
// occurrence order. Repeated selections of a key merge their field nodes in document order.
type collectedFields struct {
	keys  []string
	byKey map[string][]*ast.Field
}

func newCollectedFields() *collectedFields {
	return &collectedFields{byKey: map[string][]*ast.Field{}}
}

func (fields *collectedFields) add(key string, fieldAST *ast.Field) {
	if _, seen := fields.byKey[key]; !seen {
		fields.keys = append(fields.keys, key)
	}
	fields.byKey[key] = append(fields.byKey[key], fieldAST)
}

// collectFields flattens a selection set into response-key groups: directives are applied,
// matching fragments are expanded in place, and each named fragment at most once.
func collectFields(
	eCtx *executionContext,
	runtimeType *Object,
	selectionSet *ast.SelectionSet,
	fields *collectedFields,
	visitedFragments map[string]bool,
) {
	if selectionSet == nil {
		return
	}

	for _, selection := range selectionSet.Selections {
		if !shouldIncludeNode(eCtx, selection) {
			continue
		}

		switch selection := selection.(type) {
		case *ast.Field:
			fields.add(getFieldEntryKey(selection), selection)

		case *ast.InlineFragment:
			if !doesFragmentConditionMatch(eCtx, selection.TypeCondition, runtimeType) {
				continue
			}
			collectFields(eCtx, runtimeType, selection.SelectionSet, fields, visitedFragments)

		case *ast.FragmentSpread:
			name := selection.Name.Value
			if visitedFragments[name] {
				continue
			}
			visitedFragments[name] = true

			fragment := eCtx.fragments[name]
			if fragment == nil {
				continue
			}
			if !doesFragmentConditionMatch(eCtx, fragment.TypeCondition, runtimeType) {
				continue
			}
			collectFields(eCtx, runtimeType, fragment.SelectionSet, fields, visitedFragments)
		}
	}
}

// shouldIncludeNode applies @skip and @include. @skip wins: a node carrying @skip(if: true) is
// excluded regardless of @include.
func shouldIncludeNode(eCtx *executionContext, selection ast.Selection) bool {
	if directiveAST := findDirective(selection.GetDirectives(), "skip"); directiveAST != nil {
		args := GetArgumentValues(SkipDirective.Args, directiveAST.Arguments, eCtx.variableValues)
		if skip, ok := args["if"].(bool); ok && skip {
			return false
		}
	}
	if directiveAST := findDirective(selection.GetDirectives(), "include"); directiveAST != nil {
		args := GetArgumentValues(IncludeDirective.Args, directiveAST.Arguments, eCtx.variableValues)
		if include, ok := args["if"].(bool); ok && !include {
			return false
		}
	}
	return true
}

func findDirective(directives []*ast.Directive, name string) *ast.Directive {
	for _, directive := range directives {
		if directive.Name.Value == name {
			return directive
		}
	}
	return nil
}

// doesFragmentConditionMatch accepts a missing condition, the runtime type itself, and any
// abstract type the runtime type can satisfy.
func doesFragmentConditionMatch(
	eCtx *executionContext,
	typeCondition *ast.NamedType,
	runtimeType *Object,
) bool {
	if typeCondition == nil {
		return true
	}
	conditionalType := TypeFromAST(eCtx.schema, typeCondition)
	if conditionalType == runtimeType {
		return true
	}
	if abstract, ok := conditionalType.(Abstract); ok {
		return abstract.IsPossibleType(runtimeType)
	}
	return false
}

// getFieldEntryKey returns the response key of a field: its alias when given, its name otherwise.
func getFieldEntryKey(fieldAST *ast.Field) string {
	if fieldAST.Alias != nil {
		return fieldAST.Alias.Value
	}
	return fieldAST.Name.Value
}

// executeFieldsSerially resolves each collected field in first occurrence order, one after the
// other. An error return is a non-null field rethrowing; the caller owns catching it.
func executeFieldsSerially(
	eCtx *executionContext,
	parentType *Object,
	source interface{},
	fields *collectedFields,
) (map[string]interface{}, error) {

	data := make(map[string]interface{}, len(fields.keys))
	for _, key := range fields.keys {
		value, err := resolveField(eCtx, parentType, source, fields.byKey[key])
		if err != nil {
			return nil, err
		}
		if _, isUndefined := value.(undefined); isUndefined {
			// The schema defines no such field; it is absent from the response entirely.
			continue
		}
		data[key] = value
	}
	return data, nil
}

// executeFields resolves the fields of a read operation.
//
// TODO: resolve independent sibling fields concurrently here once a scheduler contract for
// resolvers is settled; until then read operations share the serial path.
func executeFields(
	eCtx *executionContext,
	parentType *Object,
	source interface{},
	fields *collectedFields,
) (map[string]interface{}, error) {
	return executeFieldsSerially(eCtx, parentType, source, fields)
}

// resolveField runs the resolver of one field and completes its value. The first of the merged
// field nodes supplies the name and arguments. The sentinel Undefined is returned for fields the
// schema doesn't define; an error return is a non-null field propagating its failure.
func resolveField(
	eCtx *executionContext,
	parentType *Object,
	source interface{},
	fieldASTs []*ast.Field,
) (interface{}, error) {

	fieldAST := fieldASTs[0]
	fieldDef := FieldDefForType(eCtx.schema, parentType, fieldAST.Name.Value)
	if fieldDef == nil {
		return Undefined, nil
	}

	args := GetArgumentValues(fieldDef.Args, fieldAST.Arguments, eCtx.variableValues)
	info := ResolveInfo{
		FieldName:      fieldAST.Name.Value,
		FieldASTs:      fieldASTs,
		ReturnType:     fieldDef.Type,
		ParentType:     parentType,
		Schema:         eCtx.schema,
		Fragments:      eCtx.fragments,
		RootValue:      eCtx.rootValue,
		Operation:      eCtx.operation,
		VariableValues: eCtx.variableValues,
	}

	resolveFn := fieldDef.Resolve
	if resolveFn == nil {
		resolveFn = defaultResolveFn
	}

	result, resolveErr := callResolver(resolveFn, ResolveParams{
		Source:  source,
		Args:    args,
		Info:    info,
		Context: eCtx.ctx,
	})
	if resolveErr == nil {
		// A pending asynchronous value suspends here, at the resolver call site.
		if pending, ok := result.(Awaitable); ok {
			result, resolveErr = pending.Await()
		}
	}
	if resolveErr != nil {
		located := locatedError(resolveErr, fieldASTs)
		if _, nonNull := fieldDef.Type.(*NonNull); nonNull {
			return nil, located
		}
		eCtx.appendError(located)
		return nil, nil
	}

	return completeValueCatchingError(eCtx, fieldDef.Type, fieldASTs, info, result)
}

// callResolver invokes a resolver, turning a panic into an error that keeps the panic site's
// stack.
func callResolver(resolveFn ResolveFn, p ResolveParams) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("%v", r)
		}
	}()
	return resolveFn(p)
}

// locatedError attaches the field nodes to a resolver failure, keeping the original error as the
// cause.
func locatedError(err error, fieldASTs []*ast.Field) *gqlerrors.Error {
	if gqlErr, ok := err.(*gqlerrors.Error); ok && gqlErr.Nodes != nil {
		return gqlErr
	}
	nodes := make([]ast.Node, len(fieldASTs))
	for i, fieldAST := range fieldASTs {
		nodes[i] = fieldAST
	}
	return gqlerrors.NewError(err.Error(), nodes, err)
}

// completeValueCatchingError completes a value, absorbing failures at nullable positions: the
// field becomes null and the error is recorded. A non-null position passes the failure on to its
// caller instead.
func completeValueCatchingError(
	eCtx *executionContext,
	returnType Type,
	fieldASTs []*ast.Field,
	info ResolveInfo,
	result interface{},
) (interface{}, error) {

	if _, nonNull := returnType.(*NonNull); nonNull {
		return completeValue(eCtx, returnType, fieldASTs, info, result)
	}

	completed, err := completeValue(eCtx, returnType, fieldASTs, info, result)
	if err != nil {
		eCtx.appendError(err)
		return nil, nil
	}
	return completed, nil
}

// completeValue coerces a resolved value to the shape its return type demands: unwrapping
// non-null with a null check, completing list items, serializing leaves, and recursing into the
// selection sets of composite values.
func completeValue(
	eCtx *executionContext,
	returnType Type,
	fieldASTs []*ast.Field,
	info ResolveInfo,
	result interface{},
) (interface{}, error) {

	if nonNull, ok := returnType.(*NonNull); ok {
		completed, err := completeValue(eCtx, nonNull.OfType, fieldASTs, info, result)
		if err != nil {
			return nil, err
		}
		if completed == nil {
			nodes := make([]ast.Node, len(fieldASTs))
			for i, fieldAST := range fieldASTs {
				nodes[i] = fieldAST
			}
			return nil, gqlerrors.NewError(
				"Cannot return null for non-nullable type.", nodes, nil)
		}
		return completed, nil
	}

	if isNullish(result) {
		return nil, nil
	}

	switch returnType := returnType.(type) {
	case *List:
		items, ok := asSlice(result)
		if !ok {
			return nil, gqlerrors.NewError(
				fmt.Sprintf("User Error: expected iterable, but did not find one for field %v.%v.",
					info.ParentType.Name, info.FieldName),
				nil, nil)
		}
		completed := make([]interface{}, len(items))
		for i, item := range items {
			itemValue, err := completeValueCatchingError(eCtx, returnType.OfType, fieldASTs, info, item)
			if err != nil {
				return nil, err
			}
			completed[i] = itemValue
		}
		return completed, nil

	case *Scalar:
		serialized := returnType.Serialize(result)
		if isNullish(serialized) {
			return nil, nil
		}
		return serialized, nil

	case *Enum:
		serialized := returnType.Serialize(result)
		if isNullish(serialized) {
			return nil, nil
		}
		return serialized, nil

	case *Object:
		return completeObjectValue(eCtx, returnType, fieldASTs, result)

	case *Interface, *Union:
		runtimeType := returnType.(Abstract).PossibleType(result, info)
		if runtimeType == nil {
			return nil, nil
		}
		return completeObjectValue(eCtx, runtimeType, fieldASTs, result)
	}

	return nil, gqlerrors.NewError(
		fmt.Sprintf("Cannot complete value of unexpected type %q.", returnType), nil, nil)
}

// completeObjectValue collects the sub-fields requested across all merged field nodes and
// executes them against the resolved value.
func completeObjectValue(
	eCtx *executionContext,
	runtimeType *Object,
	fieldASTs []*ast.Field,
	result interface{},
) (interface{}, error) {

	subFields := newCollectedFields()
	visitedFragments := map[string]bool{}
	for _, fieldAST := range fieldASTs {
		collectFields(eCtx, runtimeType, fieldAST.SelectionSet, subFields, visitedFragments)
	}
	return executeFields(eCtx, runtimeType, result, subFields)
}
