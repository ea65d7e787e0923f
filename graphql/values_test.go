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

package graphql_test

import (
	graphql "github.com/sablegql/sable/graphql"
	"github.com/sablegql/sable/graphql/language/ast"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// variableDefinitions parses the definitions out of a query prefix like "query ($x: Int = 3)".
func variableDefinitions(query string) []*ast.VariableDefinition {
	document := parse(query + " { dog { name } }")
	return document.Definitions[0].(*ast.OperationDefinition).VariableDefinitions
}

var _ = Describe("GetVariableValues", func() {
	It("coerces supplied values", func() {
		values, err := graphql.GetVariableValues(testSchema, variableDefinitions("query ($a: Int, $b: String)"),
			map[string]interface{}{"a": 4, "b": "ok"})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(values).Should(Equal(map[string]interface{}{"a": 4, "b": "ok"}))
	})

	It("falls back to literal-coerced defaults", func() {
		values, err := graphql.GetVariableValues(testSchema, variableDefinitions("query ($a: Int = 3)"), nil)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(values).Should(Equal(map[string]interface{}{"a": 3}))
	})

	It("leaves absent optional variables null", func() {
		values, err := graphql.GetVariableValues(testSchema, variableDefinitions("query ($a: Int)"), nil)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(values).Should(Equal(map[string]interface{}{"a": nil}))
	})

	It("requires non-null variables", func() {
		_, err := graphql.GetVariableValues(testSchema, variableDefinitions("query ($a: Int!)"), nil)
		Expect(err).Should(HaveOccurred())
		Expect(err.Error()).Should(Equal(`Variable "$a" of required type "Int!" was not provided.`))
	})

	It("rejects values that don't coerce", func() {
		_, err := graphql.GetVariableValues(testSchema, variableDefinitions("query ($a: Int)"),
			map[string]interface{}{"a": "not a number"})
		Expect(err).Should(HaveOccurred())
		Expect(err.Error()).Should(Equal(`Variable "$a" expected value of type "Int" but got: "not a number".`))
	})

	It("coerces a single value into a list of one", func() {
		values, err := graphql.GetVariableValues(testSchema, variableDefinitions("query ($a: [Int])"),
			map[string]interface{}{"a": 7})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(values).Should(Equal(map[string]interface{}{"a": []interface{}{7}}))
	})

	It("leaves absent input object fields without a default out of the coerced object", func() {
		values, err := graphql.GetVariableValues(testSchema, variableDefinitions("query ($a: ComplexInput)"),
			map[string]interface{}{"a": map[string]interface{}{"requiredField": true}})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(values).Should(Equal(map[string]interface{}{
			"a": map[string]interface{}{"requiredField": true},
		}))
	})

	It("rejects input objects missing required fields", func() {
		_, err := graphql.GetVariableValues(testSchema, variableDefinitions("query ($a: ComplexInput)"),
			map[string]interface{}{"a": map[string]interface{}{"intField": 3}})
		Expect(err).Should(HaveOccurred())
	})
})

var _ = Describe("CoerceValue and CoerceLiteral", func() {
	It("returns nil on failure so the caller decides", func() {
		Expect(graphql.CoerceValue(graphql.Int, "nope")).Should(BeNil())
		Expect(graphql.CoerceValue(graphql.Int, 3)).Should(Equal(3))
		Expect(graphql.CoerceValue(graphql.NewNonNull(graphql.Int), nil)).Should(BeNil())
	})

	It("substitutes variables in literals", func() {
		document := parse("query ($v: Int) { complicatedArgs { intArgField(intArg: $v) } }")
		operation := document.Definitions[0].(*ast.OperationDefinition)
		field := operation.SelectionSet.Selections[0].(*ast.Field).
			SelectionSet.Selections[0].(*ast.Field)

		value := graphql.CoerceLiteral(graphql.Int, field.Arguments[0].Value,
			map[string]interface{}{"v": 8})
		Expect(value).Should(Equal(8))
	})
})

var _ = Describe("GetArgumentValues", func() {
	It("coerces literals and applies defaults", func() {
		document := parse(`{ f(given: "yes") }`)
		field := document.Definitions[0].(*ast.OperationDefinition).SelectionSet.Selections[0].(*ast.Field)

		args := graphql.GetArgumentValues(graphql.FieldArgs{
			"given":  {Type: graphql.String},
			"absent": {Type: graphql.String, DefaultValue: "fallback"},
		}, field.Arguments, nil)

		Expect(args).Should(Equal(map[string]interface{}{
			"given":  "yes",
			"absent": "fallback",
		}))
	})
})
