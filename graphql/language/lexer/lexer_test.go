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

package lexer_test

import (
	"testing"

	"github.com/sablegql/sable/graphql/gqlerrors"
	"github.com/sablegql/sable/graphql/language/lexer"
	"github.com/sablegql/sable/graphql/language/source"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestLexer(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Lexer Suite")
}

// lexOne scans the first token of body.
func lexOne(body string) (lexer.Token, error) {
	return lexer.ReadToken(source.New("", body), 0)
}

func expectToken(body string, expected lexer.Token) {
	token, err := lexOne(body)
	Expect(err).ShouldNot(HaveOccurred())
	Expect(token).Should(Equal(expected))
}

func expectSyntaxError(body string, message string, line int, column int) {
	_, err := lexOne(body)
	Expect(err).Should(HaveOccurred())
	gqlErr, ok := err.(*gqlerrors.Error)
	Expect(ok).Should(BeTrue())
	Expect(gqlErr.Message).Should(ContainSubstring(message))
	Expect(gqlErr.Locations()).Should(Equal([]source.SourceLocation{{Line: line, Column: column}}))
}

var _ = Describe("Lexer", func() {
	It("skips whitespace, commas and comments", func() {
		expectToken("\n\n    foo\n\n\n", lexer.Token{
			Kind: lexer.NAME, Start: 6, End: 9, Value: "foo",
		})
		expectToken("\n  #comment\n  foo#comment\n", lexer.Token{
			Kind: lexer.NAME, Start: 14, End: 17, Value: "foo",
		})
		expectToken(",,,foo,,,", lexer.Token{
			Kind: lexer.NAME, Start: 3, End: 6, Value: "foo",
		})
	})

	It("skips a byte order mark", func() {
		expectToken("\uFEFF foo", lexer.Token{
			Kind: lexer.NAME, Start: 4, End: 7, Value: "foo",
		})
	})

	It("lexes names", func() {
		expectToken("simple", lexer.Token{Kind: lexer.NAME, Start: 0, End: 6, Value: "simple"})
		expectToken("_o7", lexer.Token{Kind: lexer.NAME, Start: 0, End: 3, Value: "_o7"})
	})

	It("lexes punctuators", func() {
		expectToken("!", lexer.Token{Kind: lexer.BANG, Start: 0, End: 1})
		expectToken("$", lexer.Token{Kind: lexer.DOLLAR, Start: 0, End: 1})
		expectToken("(", lexer.Token{Kind: lexer.PAREN_L, Start: 0, End: 1})
		expectToken(")", lexer.Token{Kind: lexer.PAREN_R, Start: 0, End: 1})
		expectToken("...", lexer.Token{Kind: lexer.SPREAD, Start: 0, End: 3})
		expectToken(":", lexer.Token{Kind: lexer.COLON, Start: 0, End: 1})
		expectToken("=", lexer.Token{Kind: lexer.EQUALS, Start: 0, End: 1})
		expectToken("@", lexer.Token{Kind: lexer.AT, Start: 0, End: 1})
		expectToken("[", lexer.Token{Kind: lexer.BRACKET_L, Start: 0, End: 1})
		expectToken("]", lexer.Token{Kind: lexer.BRACKET_R, Start: 0, End: 1})
		expectToken("{", lexer.Token{Kind: lexer.BRACE_L, Start: 0, End: 1})
		expectToken("}", lexer.Token{Kind: lexer.BRACE_R, Start: 0, End: 1})
		expectToken("|", lexer.Token{Kind: lexer.PIPE, Start: 0, End: 1})
	})

	It("lexes integers", func() {
		expectToken("4", lexer.Token{Kind: lexer.INT, Start: 0, End: 1, Value: "4"})
		expectToken("-4", lexer.Token{Kind: lexer.INT, Start: 0, End: 2, Value: "-4"})
		expectToken("0", lexer.Token{Kind: lexer.INT, Start: 0, End: 1, Value: "0"})
		expectToken("9", lexer.Token{Kind: lexer.INT, Start: 0, End: 1, Value: "9"})
	})

	It("lexes floats", func() {
		expectToken("4.123", lexer.Token{Kind: lexer.FLOAT, Start: 0, End: 5, Value: "4.123"})
		expectToken("-4.123", lexer.Token{Kind: lexer.FLOAT, Start: 0, End: 6, Value: "-4.123"})
		expectToken("0.123", lexer.Token{Kind: lexer.FLOAT, Start: 0, End: 5, Value: "0.123"})
		expectToken("123e4", lexer.Token{Kind: lexer.FLOAT, Start: 0, End: 5, Value: "123e4"})
		expectToken("123E4", lexer.Token{Kind: lexer.FLOAT, Start: 0, End: 5, Value: "123E4"})
		expectToken("123e-4", lexer.Token{Kind: lexer.FLOAT, Start: 0, End: 6, Value: "123e-4"})
		expectToken("123e+4", lexer.Token{Kind: lexer.FLOAT, Start: 0, End: 6, Value: "123e+4"})
		expectToken("1.2e3", lexer.Token{Kind: lexer.FLOAT, Start: 0, End: 5, Value: "1.2e3"})
	})

	It("rejects malformed numbers", func() {
		expectSyntaxError("00", "Invalid number, unexpected digit after 0: \"0\".", 1, 2)
		expectSyntaxError("+1", "Unexpected character \"+\".", 1, 1)
		expectSyntaxError("1.", "Invalid number, expected digit but got: <EOF>.", 1, 3)
		expectSyntaxError(".123", "Unexpected character \".\".", 1, 1)
		expectSyntaxError("1.A", "Invalid number, expected digit but got: \"A\".", 1, 3)
		expectSyntaxError("-A", "Invalid number, expected digit but got: \"A\".", 1, 2)
		expectSyntaxError("1.0e", "Invalid number, expected digit but got: <EOF>.", 1, 5)
	})

	It("lexes strings", func() {
		expectToken(`"simple"`, lexer.Token{Kind: lexer.STRING, Start: 0, End: 8, Value: "simple"})
		expectToken(`" white space "`, lexer.Token{Kind: lexer.STRING, Start: 0, End: 15, Value: " white space "})
		expectToken(`"quote \""`, lexer.Token{Kind: lexer.STRING, Start: 0, End: 10, Value: `quote "`})
		expectToken(`"escaped \n\r\b\t\f"`, lexer.Token{Kind: lexer.STRING, Start: 0, End: 20, Value: "escaped \n\r\b\t\f"})
		expectToken(`"slashes \\ \/"`, lexer.Token{Kind: lexer.STRING, Start: 0, End: 15, Value: `slashes \ /`})
		expectToken(`"unicode \u1234\u5678\u90AB\uCDEF"`, lexer.Token{
			Kind: lexer.STRING, Start: 0, End: 34, Value: "unicode ሴ噸邫췯",
		})
	})

	It("rejects broken strings", func() {
		expectSyntaxError(`"`, "Unterminated string.", 1, 2)
		expectSyntaxError(`"no end quote`, "Unterminated string.", 1, 14)
		expectSyntaxError("\"multi\nline\"", "Unterminated string.", 1, 7)
		expectSyntaxError(`"bad \z esc"`, `Invalid character escape sequence: \z.`, 1, 7)
		expectSyntaxError(`"bad \u1 esc"`, `Invalid character escape sequence: \u1 es.`, 1, 7)
		expectSyntaxError(`"bad \uXXXX esc"`, `Invalid character escape sequence: \uXXXX.`, 1, 7)
	})

	It("quotes the character in an unexpected character error", func() {
		expectSyntaxError("?", `Unexpected character "?".`, 1, 1)
		expectSyntaxError("※", `Unexpected character "※".`, 1, 1)
	})

	It("keeps returning EOF past the end of the input", func() {
		l := lexer.New(source.New("", "foo"))

		token, err := l.Next()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(token.Kind).Should(Equal(lexer.NAME))

		for i := 0; i < 3; i++ {
			token, err = l.Next()
			Expect(err).ShouldNot(HaveOccurred())
			Expect(token).Should(Equal(lexer.Token{Kind: lexer.EOF, Start: 3, End: 3}))
		}
	})

	It("describes tokens for error messages", func() {
		token, err := lexOne("foo")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(token.Description()).Should(Equal(`Name "foo"`))

		token, err = lexOne("...")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(token.Description()).Should(Equal("..."))
	})
})
