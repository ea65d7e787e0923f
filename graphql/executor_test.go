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
	"fmt"
	"time"

	graphql "github.com/sablegql/sable/graphql"
	"github.com/sablegql/sable/graphql/language/ast"
	"github.com/sablegql/sable/graphql/language/parser"
	"github.com/sablegql/sable/graphql/language/source"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func parse(body string) *ast.Document {
	document, err := parser.Parse(source.New("", body))
	Expect(err).ShouldNot(HaveOccurred())
	return document
}

// stringField is a field of type String resolved by fn.
func stringField(fn graphql.ResolveFn) *graphql.FieldDefinition {
	return &graphql.FieldDefinition{Type: graphql.String, Resolve: fn}
}

// querySchema builds a schema whose query type carries the given fields.
func querySchema(fields graphql.Fields) *graphql.Schema {
	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Type",
			Fields: fields,
		}),
	})
	Expect(err).ShouldNot(HaveOccurred())
	return schema
}

var _ = Describe("Execute", func() {
	It("resolves a field asynchronously", func() {
		schema := querySchema(graphql.Fields{
			"a": stringField(func(p graphql.ResolveParams) (interface{}, error) {
				return graphql.Async(func() (interface{}, error) {
					time.Sleep(5 * time.Millisecond)
					return "hey", nil
				}), nil
			}),
		})

		var result *graphql.Result
		Eventually(graphql.ExecuteAsync(graphql.ExecuteParams{
			Schema: schema,
			AST:    parse("query Example { a }"),
		})).Should(Receive(&result))

		Expect(result.Errors).Should(BeEmpty())
		Expect(result.Data).Should(Equal(map[string]interface{}{"a": "hey"}))
	})

	It("nulls the field and records the error when a resolver fails", func() {
		schema := querySchema(graphql.Fields{
			"a": stringField(func(p graphql.ResolveParams) (interface{}, error) {
				return nil, fmt.Errorf("boom")
			}),
		})

		result := graphql.Execute(graphql.ExecuteParams{Schema: schema, AST: parse("{ a }")})

		Expect(result.Data).Should(Equal(map[string]interface{}{"a": nil}))
		Expect(result.Errors).Should(HaveLen(1))
		Expect(result.Errors[0].Message).Should(Equal("boom"))
		Expect(result.Errors[0].Locations).Should(Equal([]source.SourceLocation{{Line: 1, Column: 3}}))
	})

	It("recovers a panicking resolver into a field error", func() {
		schema := querySchema(graphql.Fields{
			"a": stringField(func(p graphql.ResolveParams) (interface{}, error) {
				panic("kaboom")
			}),
		})

		result := graphql.Execute(graphql.ExecuteParams{Schema: schema, AST: parse("{ a }")})
		Expect(result.Data).Should(Equal(map[string]interface{}{"a": nil}))
		Expect(result.Errors).Should(HaveLen(1))
		Expect(result.Errors[0].Message).Should(Equal("kaboom"))
	})

	It("reads properties of the source with the default resolver", func() {
		type hero struct {
			Name string
		}
		schema := querySchema(graphql.Fields{
			"name":     {Type: graphql.String},
			"greeting": {Type: graphql.String},
		})

		result := graphql.Execute(graphql.ExecuteParams{
			Schema: schema,
			Root: map[string]interface{}{
				"name": "R2-D2",
				"greeting": func() (interface{}, error) {
					return "beep", nil
				},
			},
			AST: parse("{ name, greeting }"),
		})
		Expect(result.Errors).Should(BeEmpty())
		Expect(result.Data).Should(Equal(map[string]interface{}{"name": "R2-D2", "greeting": "beep"}))

		result = graphql.Execute(graphql.ExecuteParams{
			Schema: schema,
			Root:   &hero{Name: "Luke"},
			AST:    parse("{ name }"),
		})
		Expect(result.Errors).Should(BeEmpty())
		Expect(result.Data).Should(Equal(map[string]interface{}{"name": "Luke"}))
	})

	It("keys the response by alias and drops undefined fields", func() {
		schema := querySchema(graphql.Fields{
			"a": stringField(func(p graphql.ResolveParams) (interface{}, error) {
				return "apple", nil
			}),
		})

		result := graphql.Execute(graphql.ExecuteParams{
			Schema: schema,
			AST:    parse("{ renamed: a, missing }"),
		})

		// The unknown field contributes nothing: no entry, no error.
		Expect(result.Errors).Should(BeEmpty())
		Expect(result.Data).Should(Equal(map[string]interface{}{"renamed": "apple"}))
	})

	It("merges repeated selections of one response key", func() {
		calls := 0
		deep := graphql.NewObject(graphql.ObjectConfig{
			Name: "Deep",
			Fields: graphql.Fields{
				"x": {Type: graphql.String},
				"y": {Type: graphql.String},
			},
		})
		schema, err := graphql.NewSchema(graphql.SchemaConfig{
			Query: graphql.NewObject(graphql.ObjectConfig{
				Name: "Query",
				Fields: graphql.Fields{
					"deep": {
						Type: deep,
						Resolve: func(p graphql.ResolveParams) (interface{}, error) {
							calls++
							return map[string]interface{}{"x": "one", "y": "two"}, nil
						},
					},
				},
			}),
		})
		Expect(err).ShouldNot(HaveOccurred())

		result := graphql.Execute(graphql.ExecuteParams{
			Schema: schema,
			AST:    parse("{ deep { x } deep { y } }"),
		})

		Expect(result.Errors).Should(BeEmpty())
		Expect(calls).Should(Equal(1))
		Expect(result.Data).Should(Equal(map[string]interface{}{
			"deep": map[string]interface{}{"x": "one", "y": "two"},
		}))
	})

	Describe("directives", func() {
		run := func(query string) *graphql.Result {
			schema := querySchema(graphql.Fields{
				"a": stringField(func(p graphql.ResolveParams) (interface{}, error) {
					return "a", nil
				}),
				"b": stringField(func(p graphql.ResolveParams) (interface{}, error) {
					return "b", nil
				}),
			})
			return graphql.Execute(graphql.ExecuteParams{Schema: schema, AST: parse(query)})
		}

		It("excludes fields with @skip(if: true)", func() {
			Expect(run("{ a, b @skip(if: true) }").Data).Should(Equal(map[string]interface{}{"a": "a"}))
			Expect(run("{ a, b @skip(if: false) }").Data).Should(Equal(map[string]interface{}{"a": "a", "b": "b"}))
		})

		It("includes fields only with @include(if: true)", func() {
			Expect(run("{ a, b @include(if: false) }").Data).Should(Equal(map[string]interface{}{"a": "a"}))
			Expect(run("{ a, b @include(if: true) }").Data).Should(Equal(map[string]interface{}{"a": "a", "b": "b"}))
		})

		It("lets @skip win over @include", func() {
			Expect(run("{ a, b @skip(if: true) @include(if: true) }").Data).
				Should(Equal(map[string]interface{}{"a": "a"}))
		})

		It("applies directives to fragment spreads and inline fragments", func() {
			query := `
        { a, ...F @skip(if: true), ... @include(if: false) { b } }
        fragment F on Type { b }
      `
			Expect(run(query).Data).Should(Equal(map[string]interface{}{"a": "a"}))
		})
	})

	It("executes mutation fields serially in document order", func() {
		var order []string
		record := func(name string) *graphql.FieldDefinition {
			return stringField(func(p graphql.ResolveParams) (interface{}, error) {
				order = append(order, name)
				return name, nil
			})
		}

		schema, err := graphql.NewSchema(graphql.SchemaConfig{
			Query: graphql.NewObject(graphql.ObjectConfig{
				Name:   "Query",
				Fields: graphql.Fields{"ok": {Type: graphql.String}},
			}),
			Mutation: graphql.NewObject(graphql.ObjectConfig{
				Name: "Mutation",
				Fields: graphql.Fields{
					"first":  record("first"),
					"second": record("second"),
					"third":  record("third"),
				},
			}),
		})
		Expect(err).ShouldNot(HaveOccurred())

		result := graphql.Execute(graphql.ExecuteParams{
			Schema: schema,
			AST:    parse("mutation { third: third, one: first, two: second }"),
		})
		Expect(result.Errors).Should(BeEmpty())
		Expect(order).Should(Equal([]string{"third", "first", "second"}))
	})

	It("fails a mutation when the schema defines none", func() {
		schema := querySchema(graphql.Fields{"a": {Type: graphql.String}})
		result := graphql.Execute(graphql.ExecuteParams{Schema: schema, AST: parse("mutation { a }")})
		Expect(result.Data).Should(BeNil())
		Expect(result.Errors).Should(HaveLen(1))
		Expect(result.Errors[0].Message).Should(Equal("Schema is not configured for mutations."))
	})

	Describe("operation selection", func() {
		schemaFor := func() *graphql.Schema {
			return querySchema(graphql.Fields{"a": {Type: graphql.String}})
		}

		It("requires a name when the document holds several operations", func() {
			result := graphql.Execute(graphql.ExecuteParams{
				Schema: schemaFor(),
				AST:    parse("query One { a } query Two { a }"),
			})
			Expect(result.Errors[0].Message).Should(
				Equal("Must provide operation name if query contains multiple operations."))
		})

		It("rejects an unknown operation name", func() {
			result := graphql.Execute(graphql.ExecuteParams{
				Schema:        schemaFor(),
				AST:           parse("query One { a }"),
				OperationName: "Other",
			})
			Expect(result.Errors[0].Message).Should(Equal(`Unknown operation named "Other".`))
		})

		It("selects the named operation", func() {
			result := graphql.Execute(graphql.ExecuteParams{
				Schema: querySchema(graphql.Fields{
					"a": stringField(func(p graphql.ResolveParams) (interface{}, error) {
						return "one", nil
					}),
				}),
				AST:           parse("query One { a } query Two { other: a }"),
				OperationName: "Two",
			})
			Expect(result.Errors).Should(BeEmpty())
			Expect(result.Data).Should(Equal(map[string]interface{}{"other": "one"}))
		})
	})

	Describe("null propagation", func() {
		It("bubbles a null out of a non-nullable field to the nearest nullable ancestor", func() {
			inner := graphql.NewObject(graphql.ObjectConfig{
				Name: "Inner",
				Fields: graphql.Fields{
					"nonNull": {
						Type: graphql.NewNonNull(graphql.String),
						Resolve: func(p graphql.ResolveParams) (interface{}, error) {
							return nil, nil
						},
					},
				},
			})
			schema, err := graphql.NewSchema(graphql.SchemaConfig{
				Query: graphql.NewObject(graphql.ObjectConfig{
					Name: "Query",
					Fields: graphql.Fields{
						"nullable": {
							Type: inner,
							Resolve: func(p graphql.ResolveParams) (interface{}, error) {
								return map[string]interface{}{}, nil
							},
						},
					},
				}),
			})
			Expect(err).ShouldNot(HaveOccurred())

			result := graphql.Execute(graphql.ExecuteParams{
				Schema: schema,
				AST:    parse("{ nullable { nonNull } }"),
			})

			// Exactly one nullable ancestor became null, and exactly one error was recorded.
			Expect(result.Data).Should(Equal(map[string]interface{}{"nullable": nil}))
			Expect(result.Errors).Should(HaveLen(1))
			Expect(result.Errors[0].Message).Should(Equal("Cannot return null for non-nullable type."))
		})

		It("nulls the whole data when a non-nullable root field errors", func() {
			schema := querySchema(graphql.Fields{
				"required": {
					Type: graphql.NewNonNull(graphql.String),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return nil, nil
					},
				},
			})

			result := graphql.Execute(graphql.ExecuteParams{Schema: schema, AST: parse("{ required }")})
			Expect(result.Data).Should(BeNil())
			Expect(result.Errors).Should(HaveLen(1))
			Expect(result.Errors[0].Message).Should(Equal("Cannot return null for non-nullable type."))
		})
	})

	Describe("lists", func() {
		It("completes each element of a list value, keeping null elements", func() {
			schema := querySchema(graphql.Fields{
				"many": {
					Type: graphql.NewList(graphql.Int),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return []interface{}{1, nil, 3}, nil
					},
				},
			})
			result := graphql.Execute(graphql.ExecuteParams{Schema: schema, AST: parse("{ many }")})
			Expect(result.Errors).Should(BeEmpty())
			Expect(result.Data).Should(Equal(map[string]interface{}{
				"many": []interface{}{1, nil, 3},
			}))
		})

		It("reports a non-iterable value for a list field", func() {
			schema := querySchema(graphql.Fields{
				"many": {
					Type: graphql.NewList(graphql.Int),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return 42, nil
					},
				},
			})
			result := graphql.Execute(graphql.ExecuteParams{Schema: schema, AST: parse("{ many }")})
			Expect(result.Errors).Should(HaveLen(1))
			Expect(result.Errors[0].Message).Should(
				Equal("User Error: expected iterable, but did not find one for field Type.many."))
		})
	})

	Describe("abstract types", func() {
		type dog struct{ Name string }
		type cat struct{ Name string }

		build := func() *graphql.Schema {
			var dogType, catType *graphql.Object
			dogType = graphql.NewObject(graphql.ObjectConfig{
				Name:   "Dog",
				Fields: graphql.Fields{"name": {Type: graphql.String}},
				IsTypeOf: func(value interface{}, info graphql.ResolveInfo) bool {
					_, ok := value.(*dog)
					return ok
				},
			})
			catType = graphql.NewObject(graphql.ObjectConfig{
				Name:   "Cat",
				Fields: graphql.Fields{"name": {Type: graphql.String}},
				IsTypeOf: func(value interface{}, info graphql.ResolveInfo) bool {
					_, ok := value.(*cat)
					return ok
				},
			})
			pet := graphql.NewUnion(graphql.UnionConfig{
				Name:  "Pet",
				Types: []*graphql.Object{dogType, catType},
			})
			schema, err := graphql.NewSchema(graphql.SchemaConfig{
				Query: graphql.NewObject(graphql.ObjectConfig{
					Name: "Query",
					Fields: graphql.Fields{
						"pets": {
							Type: graphql.NewList(pet),
							Resolve: func(p graphql.ResolveParams) (interface{}, error) {
								return []interface{}{&dog{Name: "Odie"}, &cat{Name: "Garfield"}}, nil
							},
						},
					},
				}),
			})
			Expect(err).ShouldNot(HaveOccurred())
			return schema
		}

		It("resolves union members through IsTypeOf and serves __typename", func() {
			result := graphql.Execute(graphql.ExecuteParams{
				Schema: build(),
				AST: parse(`
          { pets { __typename ... on Dog { name } ... on Cat { name } } }
        `),
			})
			Expect(result.Errors).Should(BeEmpty())
			Expect(result.Data).Should(Equal(map[string]interface{}{
				"pets": []interface{}{
					map[string]interface{}{"__typename": "Dog", "name": "Odie"},
					map[string]interface{}{"__typename": "Cat", "name": "Garfield"},
				},
			}))
		})
	})

	Describe("introspection", func() {
		It("serves __schema and __type on the query root", func() {
			schema := querySchema(graphql.Fields{"a": {Type: graphql.String}})
			result := graphql.Execute(graphql.ExecuteParams{
				Schema: schema,
				AST:    parse(`{ __schema { queryType { name } } __type(name: "Type") { name kind } }`),
			})
			Expect(result.Errors).Should(BeEmpty())
			Expect(result.Data).Should(Equal(map[string]interface{}{
				"__schema": map[string]interface{}{
					"queryType": map[string]interface{}{"name": "Type"},
				},
				"__type": map[string]interface{}{"name": "Type", "kind": "OBJECT"},
			}))
		})
	})

	It("passes coerced arguments to the resolver", func() {
		var seen map[string]interface{}
		schema := querySchema(graphql.Fields{
			"a": {
				Type: graphql.String,
				Args: graphql.FieldArgs{
					"num":  {Type: graphql.Int},
					"with": {Type: graphql.String, DefaultValue: "fallback"},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					seen = p.Args
					return "ok", nil
				},
			},
		})

		result := graphql.Execute(graphql.ExecuteParams{
			Schema:    schema,
			AST:       parse("query Q($n: Int) { a(num: $n) }"),
			Variables: map[string]interface{}{"n": 4},
		})
		Expect(result.Errors).Should(BeEmpty())
		Expect(seen).Should(Equal(map[string]interface{}{"num": 4, "with": "fallback"}))
	})

	It("reports a missing required variable before executing", func() {
		schema := querySchema(graphql.Fields{"a": {Type: graphql.String}})
		result := graphql.Execute(graphql.ExecuteParams{
			Schema: schema,
			AST:    parse("query Q($n: Int!) { a }"),
		})
		Expect(result.Data).Should(BeNil())
		Expect(result.Errors).Should(HaveLen(1))
		Expect(result.Errors[0].Message).Should(
			Equal(`Variable "$n" of required type "Int!" was not provided.`))
	})
})
