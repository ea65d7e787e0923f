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
	"reflect"

	"github.com/iancoleman/strcase"
)

// defaultResolveFn backs fields without a resolver of their own: it reads the property of the
// source value named like the field, and invokes it when it is callable.
//
// For a map source the field name is the key. For a struct (or pointer to one) the exported field
// or method with the camel-cased name serves, so the GraphQL field "fooBar" reads the Go member
// "FooBar".
func defaultResolveFn(p ResolveParams) (interface{}, error) {
	if p.Source == nil {
		return nil, nil
	}

	if sourceMap, ok := p.Source.(map[string]interface{}); ok {
		return callIfCallable(sourceMap[p.Info.FieldName])
	}

	sourceValue := reflect.ValueOf(p.Source)
	memberName := strcase.ToCamel(p.Info.FieldName)

	if method := sourceValue.MethodByName(memberName); method.IsValid() {
		return callProperty(method)
	}

	if sourceValue.Kind() == reflect.Ptr {
		if sourceValue.IsNil() {
			return nil, nil
		}
		sourceValue = sourceValue.Elem()
	}
	if sourceValue.Kind() != reflect.Struct {
		return nil, nil
	}

	field := sourceValue.FieldByName(memberName)
	if !field.IsValid() {
		return nil, nil
	}
	return callIfCallable(field.Interface())
}

// callIfCallable returns a plain property as-is and invokes a callable one.
func callIfCallable(property interface{}) (interface{}, error) {
	if property == nil {
		return nil, nil
	}
	value := reflect.ValueOf(property)
	if value.Kind() == reflect.Func {
		return callProperty(value)
	}
	return property, nil
}

// callProperty invokes a niladic property function. Supported shapes are func() T and
// func() (T, error).
func callProperty(fn reflect.Value) (interface{}, error) {
	if fn.Type().NumIn() != 0 {
		return nil, nil
	}

	results := fn.Call(nil)
	switch len(results) {
	case 1:
		return results[0].Interface(), nil
	case 2:
		value := results[0].Interface()
		if err, ok := results[1].Interface().(error); ok && err != nil {
			return nil, err
		}
		return value, nil
	}
	return nil, nil
}
