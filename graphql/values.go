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
	"reflect"

	"github.com/sablegql/sable/graphql/gqlerrors"
	"github.com/sablegql/sable/graphql/language/ast"
	"github.com/sablegql/sable/graphql/language/printer"
)

// GetVariableValues coerces the variable values supplied with a request against the variable
// definitions of the operation. A missing variable falls back to the definition's default value;
// a missing variable of a non-null type, or a value that doesn't coerce, is an error.
func GetVariableValues(
	schema *Schema,
	definitions []*ast.VariableDefinition,
	inputs map[string]interface{},
) (map[string]interface{}, error) {

	values := make(map[string]interface{}, len(definitions))
	for _, definition := range definitions {
		name := definition.Variable.Name.Value
		value, err := getVariableValue(schema, definition, inputs[name])
		if err != nil {
			return nil, err
		}
		values[name] = value
	}
	return values, nil
}

func getVariableValue(
	schema *Schema,
	definition *ast.VariableDefinition,
	input interface{},
) (interface{}, error) {

	variableType := TypeFromAST(schema, definition.Type)
	name := definition.Variable.Name.Value

	if !IsInputType(variableType) {
		return nil, gqlerrors.NewError(
			fmt.Sprintf("Variable \"$%v\" expected value of type %q which cannot be used as an input type.",
				name, printer.Print(definition.Type)),
			[]ast.Node{definition},
			nil,
		)
	}

	if isValidValue(input, variableType) {
		if isNullish(input) {
			if definition.DefaultValue != nil {
				return CoerceLiteral(variableType, definition.DefaultValue, nil), nil
			}
			return nil, nil
		}
		return CoerceValue(variableType, input), nil
	}

	if isNullish(input) {
		return nil, gqlerrors.NewError(
			fmt.Sprintf("Variable \"$%v\" of required type %q was not provided.",
				name, printer.Print(definition.Type)),
			[]ast.Node{definition},
			nil,
		)
	}
	return nil, gqlerrors.NewError(
		fmt.Sprintf("Variable \"$%v\" expected value of type %q but got: %v.",
			name, printer.Print(definition.Type), inspect(input)),
		[]ast.Node{definition},
		nil,
	)
}

// GetArgumentValues coerces the literal (or variable) argument values of one field or directive
// against the argument definitions. Arguments that are absent and have no default are left out of
// the map.
func GetArgumentValues(
	argDefs FieldArgs,
	argASTs []*ast.Argument,
	variables map[string]interface{},
) map[string]interface{} {

	astByName := make(map[string]*ast.Argument, len(argASTs))
	for _, argAST := range argASTs {
		astByName[argAST.Name.Value] = argAST
	}

	values := make(map[string]interface{}, len(argDefs))
	for name, argDef := range argDefs {
		var value interface{}
		if argAST, ok := astByName[name]; ok {
			value = CoerceLiteral(argDef.Type, argAST.Value, variables)
		}
		if value == nil {
			value = argDef.DefaultValue
		}
		if value != nil {
			values[name] = value
		}
	}
	return values
}

// CoerceValue coerces a JSON-like runtime value (e.g. a variable value) to the given input type.
// The result is nil when the value doesn't coerce; callers decide what a failure means.
func CoerceValue(t Type, value interface{}) interface{} {
	if nonNull, ok := t.(*NonNull); ok {
		if isNullish(value) {
			return nil
		}
		return CoerceValue(nonNull.OfType, value)
	}
	if isNullish(value) {
		return nil
	}

	switch t := t.(type) {
	case *List:
		if list, ok := asSlice(value); ok {
			coerced := make([]interface{}, len(list))
			for i, item := range list {
				coerced[i] = CoerceValue(t.OfType, item)
			}
			return coerced
		}
		// A single value coerces into a list of one.
		return []interface{}{CoerceValue(t.OfType, value)}

	case *InputObject:
		object, ok := value.(map[string]interface{})
		if !ok {
			return nil
		}
		coerced := map[string]interface{}{}
		for name, field := range t.Fields() {
			fieldValue := CoerceValue(field.Type, object[name])
			if fieldValue == nil {
				fieldValue = field.DefaultValue
			}
			if fieldValue != nil {
				coerced[name] = fieldValue
			}
		}
		return coerced

	case *Scalar:
		return t.ParseValue(value)

	case *Enum:
		return t.ParseValue(value)
	}

	return nil
}

// CoerceLiteral coerces a value literal from the document to the given input type, substituting
// variables from the coerced variable map. The result is nil when the literal doesn't coerce.
func CoerceLiteral(t Type, valueAST ast.Value, variables map[string]interface{}) interface{} {
	if nonNull, ok := t.(*NonNull); ok {
		return CoerceLiteral(nonNull.OfType, valueAST, variables)
	}
	if valueAST == nil {
		return nil
	}

	if variable, ok := valueAST.(*ast.Variable); ok {
		// The variable value went through input coercion when the execution began.
		return variables[variable.Name.Value]
	}

	switch t := t.(type) {
	case *List:
		if listAST, ok := valueAST.(*ast.ListValue); ok {
			coerced := make([]interface{}, len(listAST.Values))
			for i, itemAST := range listAST.Values {
				coerced[i] = CoerceLiteral(t.OfType, itemAST, variables)
			}
			return coerced
		}
		return []interface{}{CoerceLiteral(t.OfType, valueAST, variables)}

	case *InputObject:
		objectAST, ok := valueAST.(*ast.ObjectValue)
		if !ok {
			return nil
		}
		fieldASTs := make(map[string]*ast.ObjectField, len(objectAST.Fields))
		for _, fieldAST := range objectAST.Fields {
			fieldASTs[fieldAST.Name.Value] = fieldAST
		}
		coerced := map[string]interface{}{}
		for name, field := range t.Fields() {
			var fieldValue interface{}
			if fieldAST, ok := fieldASTs[name]; ok {
				fieldValue = CoerceLiteral(field.Type, fieldAST.Value, variables)
			}
			if fieldValue == nil {
				fieldValue = field.DefaultValue
			}
			if fieldValue != nil {
				coerced[name] = fieldValue
			}
		}
		return coerced

	case *Scalar:
		return t.ParseLiteral(valueAST)

	case *Enum:
		return t.ParseLiteral(valueAST)
	}

	return nil
}

// isValidValue reports whether a JSON-like runtime value is acceptable input for the type.
func isValidValue(value interface{}, t Type) bool {
	if nonNull, ok := t.(*NonNull); ok {
		if isNullish(value) {
			return false
		}
		return isValidValue(value, nonNull.OfType)
	}
	if isNullish(value) {
		return true
	}

	switch t := t.(type) {
	case *List:
		if list, ok := asSlice(value); ok {
			for _, item := range list {
				if !isValidValue(item, t.OfType) {
					return false
				}
			}
			return true
		}
		return isValidValue(value, t.OfType)

	case *InputObject:
		object, ok := value.(map[string]interface{})
		if !ok {
			return false
		}
		// Every supplied field must be declared...
		for name := range object {
			if t.Fields()[name] == nil {
				return false
			}
		}
		// ...and every declared field must accept what was (or wasn't) supplied.
		for name, field := range t.Fields() {
			if !isValidValue(object[name], field.Type) {
				return false
			}
		}
		return true

	case *Scalar:
		return t.ParseValue(value) != nil

	case *Enum:
		return t.ParseValue(value) != nil
	}

	return false
}

// IsValidLiteralValue reports whether a value literal is acceptable input for the type. Variables
// always pass: their values aren't known statically.
func IsValidLiteralValue(t Type, valueAST ast.Value) bool {
	if _, ok := valueAST.(*ast.Variable); ok {
		return true
	}

	if nonNull, ok := t.(*NonNull); ok {
		if valueAST == nil {
			return false
		}
		return IsValidLiteralValue(nonNull.OfType, valueAST)
	}
	if valueAST == nil {
		return true
	}

	switch t := t.(type) {
	case *List:
		if listAST, ok := valueAST.(*ast.ListValue); ok {
			for _, itemAST := range listAST.Values {
				if !IsValidLiteralValue(t.OfType, itemAST) {
					return false
				}
			}
			return true
		}
		return IsValidLiteralValue(t.OfType, valueAST)

	case *InputObject:
		objectAST, ok := valueAST.(*ast.ObjectValue)
		if !ok {
			return false
		}
		fieldASTs := make(map[string]*ast.ObjectField, len(objectAST.Fields))
		for _, fieldAST := range objectAST.Fields {
			if t.Fields()[fieldAST.Name.Value] == nil {
				return false
			}
			fieldASTs[fieldAST.Name.Value] = fieldAST
		}
		for name, field := range t.Fields() {
			var fieldValueAST ast.Value
			if fieldAST, ok := fieldASTs[name]; ok {
				fieldValueAST = fieldAST.Value
			}
			if !IsValidLiteralValue(field.Type, fieldValueAST) {
				return false
			}
		}
		return true

	case *Scalar:
		return t.ParseLiteral(valueAST) != nil

	case *Enum:
		return t.ParseLiteral(valueAST) != nil
	}

	return false
}

// isNullish reports a missing value: nil, or a nil pointer boxed in an interface.
func isNullish(value interface{}) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// asSlice views a slice or array value as []interface{}.
func asSlice(value interface{}) ([]interface{}, bool) {
	if items, ok := value.([]interface{}); ok {
		return items, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]interface{}, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// inspect renders a runtime value for an error message.
func inspect(value interface{}) string {
	switch value := value.(type) {
	case string:
		return fmt.Sprintf("%q", value)
	case nil:
		return "null"
	}
	return fmt.Sprintf("%v", value)
}
