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

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// testSchema serves every validation spec: a small menagerie with interfaces, a union, enums,
// input objects and argument-taking fields.
var testSchema = buildTestSchema()

func buildTestSchema() *graphql.Schema {
	var dogType, catType, humanType *graphql.Object

	petType := graphql.NewInterface(graphql.InterfaceConfig{
		Name: "Pet",
		FieldsThunk: func() graphql.Fields {
			return graphql.Fields{
				"name": {Type: graphql.String},
			}
		},
	})

	furColor := graphql.NewEnum(graphql.EnumConfig{
		Name: "FurColor",
		Values: graphql.EnumValues{
			"BROWN": {Value: "BROWN"},
			"BLACK": {Value: "BLACK"},
		},
	})

	complexInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ComplexInput",
		Fields: graphql.InputObjectFields{
			"requiredField": {Type: graphql.NewNonNull(graphql.Boolean)},
			"intField":      {Type: graphql.Int},
		},
	})

	dogType = graphql.NewObject(graphql.ObjectConfig{
		Name:       "Dog",
		Interfaces: []*graphql.Interface{petType},
		Fields: graphql.Fields{
			"name": {Type: graphql.String},
			"barks": {
				Type: graphql.Boolean,
			},
			"doesKnowCommand": {
				Type: graphql.Boolean,
				Args: graphql.FieldArgs{
					"dogCommand": {Type: furColor},
				},
			},
		},
	})

	catType = graphql.NewObject(graphql.ObjectConfig{
		Name:       "Cat",
		Interfaces: []*graphql.Interface{petType},
		Fields: graphql.Fields{
			"name":  {Type: graphql.String},
			"meows": {Type: graphql.Boolean},
		},
	})

	catOrDog := graphql.NewUnion(graphql.UnionConfig{
		Name:  "CatOrDog",
		Types: []*graphql.Object{catType, dogType},
	})

	humanType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Human",
		FieldsThunk: func() graphql.Fields {
			return graphql.Fields{
				"name": {
					Type: graphql.String,
					Args: graphql.FieldArgs{
						"surname": {Type: graphql.Boolean},
					},
				},
				"pets":      {Type: graphql.NewList(petType)},
				"relatives": {Type: graphql.NewList(humanType)},
				"iq":        {Type: graphql.Int},
			}
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name: "QueryRoot",
			Fields: graphql.Fields{
				"human": {
					Type: humanType,
					Args: graphql.FieldArgs{
						"id": {Type: graphql.ID},
					},
				},
				"dog":      {Type: dogType},
				"cat":      {Type: catType},
				"catOrDog": {Type: catOrDog},
				"pet":      {Type: petType},
				"complicatedArgs": {
					Type: graphql.NewObject(graphql.ObjectConfig{
						Name: "ComplicatedArgs",
						Fields: graphql.Fields{
							"intArgField": {
								Type: graphql.String,
								Args: graphql.FieldArgs{"intArg": {Type: graphql.Int}},
							},
							"nonNullIntArgField": {
								Type: graphql.String,
								Args: graphql.FieldArgs{"nonNullIntArg": {Type: graphql.NewNonNull(graphql.Int)}},
							},
							"enumArgField": {
								Type: graphql.String,
								Args: graphql.FieldArgs{"enumArg": {Type: furColor}},
							},
							"complexArgField": {
								Type: graphql.String,
								Args: graphql.FieldArgs{"complexArg": {Type: complexInput}},
							},
						},
					}),
				},
			},
		}),
	})
	if err != nil {
		panic(err)
	}
	return schema
}

func expectPassesRule(rule graphql.RuleFn, query string) {
	errs := graphql.ValidateDocument(testSchema, parse(query), []graphql.RuleFn{rule})
	Expect(errs).Should(BeEmpty())
}

func expectFailsRule(rule graphql.RuleFn, query string, messages ...string) {
	errs := graphql.ValidateDocument(testSchema, parse(query), []graphql.RuleFn{rule})
	Expect(errs).Should(HaveLen(len(messages)))
	for i, message := range messages {
		Expect(errs[i].Message).Should(Equal(message))
	}
}

var _ = Describe("Validate", func() {
	It("accepts the empty document and never throws", func() {
		Expect(graphql.ValidateDocument(testSchema, parse(""), nil)).Should(BeEmpty())
	})

	It("accepts a well-formed query with the full rule set", func() {
		Expect(graphql.ValidateDocument(testSchema, parse(`
      query Pets($surname: Boolean = false) {
        human(id: 4) {
          name(surname: $surname)
          pets { name ...CatStuff ... on Dog { barks } }
        }
      }
      fragment CatStuff on Cat { meows }
    `), nil)).Should(BeEmpty())
	})

	Describe("UniqueOperationNames", func() {
		It("passes distinct names", func() {
			expectPassesRule(graphql.UniqueOperationNamesRule, "query A { dog { name } } query B { dog { name } }")
		})
		It("rejects duplicates", func() {
			expectFailsRule(graphql.UniqueOperationNamesRule,
				"query A { dog { name } } query A { cat { name } }",
				`There can only be one operation named "A".`)
		})
	})

	Describe("LoneAnonymousOperation", func() {
		It("passes a single anonymous operation", func() {
			expectPassesRule(graphql.LoneAnonymousOperationRule, "{ dog { name } }")
		})
		It("rejects an anonymous operation beside another", func() {
			expectFailsRule(graphql.LoneAnonymousOperationRule,
				"{ dog { name } } query A { cat { name } }",
				"This anonymous operation must be the only defined operation.")
		})
	})

	Describe("KnownTypeNames", func() {
		It("rejects unknown types in conditions and variables", func() {
			expectFailsRule(graphql.KnownTypeNamesRule,
				"query ($v: Badger) { pet { ... on Peettt { name } } }",
				`Unknown type "Badger".`,
				`Unknown type "Peettt".`)
		})
	})

	Describe("FragmentsOnCompositeTypes", func() {
		It("passes composite conditions", func() {
			expectPassesRule(graphql.FragmentsOnCompositeTypesRule,
				"fragment F on Pet { name } { pet { ...F } }")
		})
		It("rejects scalar conditions", func() {
			expectFailsRule(graphql.FragmentsOnCompositeTypesRule,
				"fragment F on Boolean { bad } { pet { ...F } }",
				`Fragment "F" cannot condition on non composite type "Boolean".`)
		})
	})

	Describe("VariablesAreInputTypes", func() {
		It("rejects composite variable types", func() {
			expectFailsRule(graphql.VariablesAreInputTypesRule,
				"query ($d: Dog) { dog { name } }",
				`Variable "$d" cannot be non-input type "Dog".`)
		})
	})

	Describe("ScalarLeafs", func() {
		It("requires sub-selections on composites and forbids them on leaves", func() {
			expectFailsRule(graphql.ScalarLeafsRule,
				"{ dog }",
				`Field "dog" of type "Dog" must have a sub selection.`)
			expectFailsRule(graphql.ScalarLeafsRule,
				"{ dog { name { x } } }",
				`Field "name" of type "String" must not have a sub selection.`)
		})
	})

	Describe("FieldsOnCorrectType", func() {
		It("rejects undefined fields", func() {
			expectFailsRule(graphql.FieldsOnCorrectTypeRule,
				"{ dog { squawks } }",
				`Cannot query field "squawks" on "Dog".`)
		})
	})

	Describe("UniqueFragmentNames", func() {
		It("rejects duplicate fragment names", func() {
			expectFailsRule(graphql.UniqueFragmentNamesRule,
				"{ dog { ...F } } fragment F on Dog { name } fragment F on Dog { barks }",
				`There can only be one fragment named "F".`)
		})
	})

	Describe("KnownFragmentNames", func() {
		It("rejects spreads of undefined fragments", func() {
			expectFailsRule(graphql.KnownFragmentNamesRule,
				"{ dog { ...Missing } }",
				`Unknown fragment "Missing".`)
		})
	})

	Describe("NoUnusedFragments", func() {
		It("passes fragments reached through other fragments", func() {
			expectPassesRule(graphql.NoUnusedFragmentsRule, `
        { dog { ...Outer } }
        fragment Outer on Dog { ...Inner }
        fragment Inner on Dog { name }
      `)
		})
		It("rejects fragments no operation reaches", func() {
			expectFailsRule(graphql.NoUnusedFragmentsRule,
				"{ dog { name } } fragment Unused on Dog { name }",
				`Fragment "Unused" is never used.`)
		})
	})

	Describe("NoFragmentCycles", func() {
		It("rejects a self spread", func() {
			expectFailsRule(graphql.NoFragmentCyclesRule,
				"fragment F on Dog { ...F }",
				`Cannot spread fragment "F" within itself.`)
		})
		It("rejects an indirect cycle with the path, reporting it once", func() {
			expectFailsRule(graphql.NoFragmentCyclesRule,
				"fragment A on Dog { ...B } fragment B on Dog { ...A }",
				`Cannot spread fragment "A" within itself via B.`)
		})
		It("terminates on cycles not reaching the initial fragment", func() {
			expectFailsRule(graphql.NoFragmentCyclesRule,
				"fragment A on Dog { ...B } fragment B on Dog { ...B }",
				`Cannot spread fragment "B" within itself.`)
		})
	})

	Describe("NoUndefinedVariables", func() {
		It("rejects usages without a definition, through fragments too", func() {
			expectFailsRule(graphql.NoUndefinedVariablesRule, `
        query Foo($a: Boolean) { dog { ...F } }
        fragment F on Dog { doesKnowCommand(dogCommand: $b) }
      `,
				`Variable "$b" is not defined by operation "Foo".`)
		})
	})

	Describe("NoUnusedVariables", func() {
		It("counts usages reached through fragments", func() {
			expectPassesRule(graphql.NoUnusedVariablesRule, `
        query Foo($b: FurColor) { dog { ...F } }
        fragment F on Dog { doesKnowCommand(dogCommand: $b) }
      `)
		})
		It("rejects definitions nothing uses", func() {
			expectFailsRule(graphql.NoUnusedVariablesRule,
				"query Foo($a: Boolean) { dog { name } }",
				`Variable "$a" is never used in operation "Foo".`)
		})
	})

	Describe("KnownDirectives", func() {
		It("rejects unknown directives", func() {
			expectFailsRule(graphql.KnownDirectivesRule,
				"{ dog { name @nope } }",
				`Unknown directive "nope".`)
		})
		It("rejects misplaced directives", func() {
			expectFailsRule(graphql.KnownDirectivesRule,
				"query @skip(if: true) { dog { name } }",
				`Directive "skip" may not be used on "operation".`)
		})
		It("passes @skip and @include on fields and fragments", func() {
			expectPassesRule(graphql.KnownDirectivesRule, `
        { dog { name @skip(if: true) ...F @include(if: true) } }
        fragment F on Dog { barks }
      `)
		})
	})

	Describe("KnownArgumentNames", func() {
		It("rejects unknown field and directive arguments", func() {
			expectFailsRule(graphql.KnownArgumentNamesRule,
				"{ dog { doesKnowCommand(command: BROWN) } }",
				`Unknown argument "command" on field "doesKnowCommand" of type "Dog".`)
			expectFailsRule(graphql.KnownArgumentNamesRule,
				"{ dog { name @skip(unless: true) } }",
				`Unknown argument "unless" on directive "@skip".`)
		})
	})

	Describe("UniqueArgumentNames", func() {
		It("rejects repeated argument names", func() {
			expectFailsRule(graphql.UniqueArgumentNamesRule,
				"{ human(id: 1, id: 2) { name } }",
				`There can be only one argument named "id".`)
		})
	})

	Describe("ArgumentsOfCorrectType", func() {
		It("passes coercible literals", func() {
			expectPassesRule(graphql.ArgumentsOfCorrectTypeRule,
				"{ complicatedArgs { intArgField(intArg: 2) } }")
		})
		It("rejects literals of the wrong type", func() {
			expectFailsRule(graphql.ArgumentsOfCorrectTypeRule,
				`{ complicatedArgs { intArgField(intArg: "two") } }`,
				`Argument "intArg" expected type "Int" but got: "two".`)
		})
		It("checks input object fields", func() {
			expectFailsRule(graphql.ArgumentsOfCorrectTypeRule,
				"{ complicatedArgs { complexArgField(complexArg: {intField: 2}) } }",
				`Argument "complexArg" expected type "ComplexInput" but got: {intField: 2}.`)
		})
	})

	Describe("ProvidedNonNullArguments", func() {
		It("rejects missing non-null arguments", func() {
			expectFailsRule(graphql.ProvidedNonNullArgumentsRule,
				"{ complicatedArgs { nonNullIntArgField } }",
				`Field "nonNullIntArgField" argument "nonNullIntArg" of type "Int!" is required but not provided.`)
		})
		It("passes when supplied", func() {
			expectPassesRule(graphql.ProvidedNonNullArgumentsRule,
				"{ complicatedArgs { nonNullIntArgField(nonNullIntArg: 2) } }")
		})
	})

	Describe("DefaultValuesOfCorrectType", func() {
		It("rejects defaults on required variables", func() {
			expectFailsRule(graphql.DefaultValuesOfCorrectTypeRule,
				"query ($a: Int! = 3) { complicatedArgs { intArgField(intArg: $a) } }",
				`Variable "$a" of type "Int!" is required and will never use the default value. Perhaps you meant to use type "Int".`)
		})
		It("rejects defaults of the wrong type", func() {
			expectFailsRule(graphql.DefaultValuesOfCorrectTypeRule,
				`query ($a: Int = "uh oh") { complicatedArgs { intArgField(intArg: $a) } }`,
				`Variable "$a" of type "Int" has invalid default value: "uh oh".`)
		})
	})

	It("collects errors from several rules in one walk", func() {
		errs := graphql.ValidateDocument(testSchema, parse("{ dog { squawks @nope } }"), nil)
		messages := make([]string, len(errs))
		for i, err := range errs {
			messages[i] = err.Message
		}
		Expect(messages).Should(ConsistOf(
			`Cannot query field "squawks" on "Dog".`,
			`Unknown directive "nope".`,
		))
	})
})
