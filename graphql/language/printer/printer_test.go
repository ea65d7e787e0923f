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

package printer_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/sablegql/sable/graphql/language/ast"
	"github.com/sablegql/sable/graphql/language/parser"
	"github.com/sablegql/sable/graphql/language/printer"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestPrinter(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Printer Suite")
}

func parse(body string) *ast.Document {
	document, err := parser.Parse(body)
	Expect(err).ShouldNot(HaveOccurred())
	return document
}

var _ = Describe("Printer", func() {
	It("prints a minimal query", func() {
		Expect(printer.Print(parse("{ field }"))).Should(Equal("{\n  field\n}\n"))
	})

	It("prints the query shorthand without the query keyword", func() {
		Expect(printer.Print(parse("query { id }"))).Should(Equal("{\n  id\n}\n"))
	})

	It("prints operations with names, variables and directives", func() {
		printed := printer.Print(parse(
			"query Named($x:Int=3,$s:[String!]) @onQuery { f(a:$x) @skip(if:false) { sub } }"))
		Expect(printed).Should(Equal(
			"query Named($x: Int = 3, $s: [String!]) @onQuery {\n" +
				"  f(a: $x) @skip(if: false) {\n" +
				"    sub\n" +
				"  }\n" +
				"}\n"))
	})

	It("prints fragments and values", func() {
		printed := printer.Print(parse(
			"mutation M { store(obj: {k: \"v\", n: [1, 2.5, true, RED]}) { ...Frag ... on T { a } ... { b } } }\n" +
				"fragment Frag on Store @dir { id }"))
		Expect(printed).Should(Equal(
			"mutation M {\n" +
				"  store(obj: {k: \"v\", n: [1, 2.5, true, RED]}) {\n" +
				"    ...Frag\n" +
				"    ... on T {\n" +
				"      a\n" +
				"    }\n" +
				"    ... {\n" +
				"      b\n" +
				"    }\n" +
				"  }\n" +
				"}\n" +
				"\n" +
				"fragment Frag on Store @dir {\n" +
				"  id\n" +
				"}\n"))
	})

	It("prints aliases", func() {
		Expect(printer.Print(parse("{ a: b }"))).Should(Equal("{\n  a: b\n}\n"))
	})

	It("round-trips: reparsing the printed form yields an equal tree", func() {
		queries := []string{
			"{ a, b { x, y: z } }",
			"query Q($v: [Int!] = [1, 2], $w: Bool) @onQuery { f(x: $v, o: {a: \"s\"}) @skip(if: $w) }",
			"mutation { like(story: 123) { id } }",
			"{ hero { ...NameParts ... on Droid { primaryFunction } } }\nfragment NameParts on Character { name }",
		}
		for _, query := range queries {
			once := parse(query)
			twice := parse(printer.Print(once))
			// Equal modulo locations: the printed text has its own offsets.
			Expect(cmp.Diff(once, twice, cmpopts.IgnoreTypes(&ast.Location{}))).Should(BeEmpty())
			// Printing is deterministic: a second print of the reparsed tree is identical.
			Expect(printer.Print(twice)).Should(Equal(printer.Print(once)))
		}
	})
})
