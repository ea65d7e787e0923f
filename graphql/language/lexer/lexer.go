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

// Package lexer produces the token stream a GraphQL parser consumes. ReadToken scans one token
// at a byte offset; Lexer wraps it into a stream for the parser.
package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sablegql/sable/graphql/gqlerrors"
	"github.com/sablegql/sable/graphql/language/source"
)

// TokenKind discriminates the kinds of tokens the lexer emits.
type TokenKind int

// Enumeration of TokenKind.
const (
	SOF TokenKind = iota + 1
	EOF
	BANG
	DOLLAR
	PAREN_L
	PAREN_R
	SPREAD
	COLON
	EQUALS
	AT
	BRACKET_L
	BRACKET_R
	BRACE_L
	BRACE_R
	PIPE
	NAME
	INT
	FLOAT
	STRING
)

// String names the token kind the way it appears in error messages.
func (kind TokenKind) String() string {
	switch kind {
	case SOF:
		return "<SOF>"
	case EOF:
		return "EOF"
	case BANG:
		return "!"
	case DOLLAR:
		return "$"
	case PAREN_L:
		return "("
	case PAREN_R:
		return ")"
	case SPREAD:
		return "..."
	case COLON:
		return ":"
	case EQUALS:
		return "="
	case AT:
		return "@"
	case BRACKET_L:
		return "["
	case BRACKET_R:
		return "]"
	case BRACE_L:
		return "{"
	case BRACE_R:
		return "}"
	case PIPE:
		return "|"
	case NAME:
		return "Name"
	case INT:
		return "Int"
	case FLOAT:
		return "Float"
	case STRING:
		return "String"
	}
	return "<unknown>"
}

// A Token is one lexical unit of the source. Start and End are byte offsets; Value carries the
// decoded content for the value-bearing kinds (NAME, INT, FLOAT, STRING) and is empty otherwise.
type Token struct {
	Kind  TokenKind
	Start int
	End   int
	Value string
}

// Description renders a token for an error message: its kind, plus the value when it has one.
func (t Token) Description() string {
	if t.Value != "" {
		return fmt.Sprintf("%s %q", t.Kind, t.Value)
	}
	return t.Kind.String()
}

// A Lexer turns a Source into a token stream. Each call to Next scans the token after the
// previous one; once the input is exhausted it keeps returning EOF.
type Lexer struct {
	source  *source.Source
	prevEnd int
}

// New creates a Lexer at the start of the source.
func New(s *source.Source) *Lexer {
	return &Lexer{source: s}
}

// Source returns the source being lexed.
func (l *Lexer) Source() *source.Source {
	return l.source
}

// Next scans and returns the next token.
func (l *Lexer) Next() (Token, error) {
	token, err := ReadToken(l.source, l.prevEnd)
	if err != nil {
		return token, err
	}
	l.prevEnd = token.End
	return token, nil
}

// ReadToken scans the token that begins at or after the given byte offset, skipping any ignored
// characters (whitespace, commas, line terminators, BOM and "#" comments) before it. Past the end
// of the body it returns an EOF token whose offsets equal the body length.
func ReadToken(s *source.Source, fromPosition int) (Token, error) {
	body := s.Body
	position := skipIgnored(body, fromPosition)

	if position >= len(body) {
		return Token{Kind: EOF, Start: len(body), End: len(body)}, nil
	}

	c := body[position]
	switch c {
	case '!':
		return punctuator(BANG, position), nil
	case '$':
		return punctuator(DOLLAR, position), nil
	case '(':
		return punctuator(PAREN_L, position), nil
	case ')':
		return punctuator(PAREN_R, position), nil
	case '.':
		if position+2 < len(body) && body[position+1] == '.' && body[position+2] == '.' {
			return Token{Kind: SPREAD, Start: position, End: position + 3}, nil
		}
	case ':':
		return punctuator(COLON, position), nil
	case '=':
		return punctuator(EQUALS, position), nil
	case '@':
		return punctuator(AT, position), nil
	case '[':
		return punctuator(BRACKET_L, position), nil
	case ']':
		return punctuator(BRACKET_R, position), nil
	case '{':
		return punctuator(BRACE_L, position), nil
	case '}':
		return punctuator(BRACE_R, position), nil
	case '|':
		return punctuator(PIPE, position), nil
	case '"':
		return readString(s, position)
	}

	if c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
		return readName(body, position), nil
	}
	if c == '-' || (c >= '0' && c <= '9') {
		return readNumber(s, position)
	}

	return Token{}, unexpectedCharacterError(s, position)
}

func punctuator(kind TokenKind, position int) Token {
	return Token{Kind: kind, Start: position, End: position + 1}
}

func unexpectedCharacterError(s *source.Source, position int) error {
	r, _ := utf8.DecodeRuneInString(s.Body[position:])
	return gqlerrors.NewSyntaxError(s, position,
		fmt.Sprintf("Unexpected character %q.", string(r)))
}

// skipIgnored advances past the characters the grammar treats as insignificant: space, tab,
// comma, the BOM, line terminators, and "#" comments running to the end of their line.
func skipIgnored(body string, position int) int {
	for position < len(body) {
		switch body[position] {
		case ' ', '\t', ',', '\n', '\r':
			position++
		case '#':
			for position < len(body) && body[position] != '\n' && body[position] != '\r' {
				position++
			}
		default:
			// The BOM is the one multi-byte ignored character.
			if strings.HasPrefix(body[position:], "\uFEFF") {
				position += len("\uFEFF")
				continue
			}
			return position
		}
	}
	return position
}

// readName scans /[_A-Za-z][_0-9A-Za-z]*/.
func readName(body string, start int) Token {
	end := start + 1
	for end < len(body) {
		c := body[end]
		if c == '_' || (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
			end++
		} else {
			break
		}
	}
	return Token{Kind: NAME, Start: start, End: end, Value: body[start:end]}
}

// readNumber scans an int or float:
//
//	Int:   -?(0|[1-9][0-9]*)
//	Float: -?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?
//
// with at least a fraction or an exponent present for a float.
func readNumber(s *source.Source, start int) (Token, error) {
	var (
		body     = s.Body
		position = start
		isFloat  = false
	)

	if body[position] == '-' {
		position++
	}

	if position < len(body) && body[position] == '0' {
		position++
		// "00" and "01" are invalid: a non-zero integer part must not start with 0.
		if position < len(body) && body[position] >= '0' && body[position] <= '9' {
			return Token{}, gqlerrors.NewSyntaxError(s, position,
				fmt.Sprintf("Invalid number, unexpected digit after 0: %q.", string(body[position])))
		}
	} else {
		var err error
		if position, err = readDigits(s, position); err != nil {
			return Token{}, err
		}
	}

	if position < len(body) && body[position] == '.' {
		isFloat = true
		position++
		var err error
		if position, err = readDigits(s, position); err != nil {
			return Token{}, err
		}
	}

	if position < len(body) && (body[position] == 'e' || body[position] == 'E') {
		isFloat = true
		position++
		if position < len(body) && (body[position] == '+' || body[position] == '-') {
			position++
		}
		var err error
		if position, err = readDigits(s, position); err != nil {
			return Token{}, err
		}
	}

	kind := INT
	if isFloat {
		kind = FLOAT
	}
	return Token{Kind: kind, Start: start, End: position, Value: body[start:position]}, nil
}

// readDigits scans /[0-9]+/ and reports an error when not even one digit is present.
func readDigits(s *source.Source, position int) (int, error) {
	body := s.Body
	if position >= len(body) || body[position] < '0' || body[position] > '9' {
		got := "<EOF>"
		if position < len(body) {
			r, _ := utf8.DecodeRuneInString(body[position:])
			got = fmt.Sprintf("%q", string(r))
		}
		return 0, gqlerrors.NewSyntaxError(s, position,
			fmt.Sprintf("Invalid number, expected digit but got: %s.", got))
	}
	for position < len(body) && body[position] >= '0' && body[position] <= '9' {
		position++
	}
	return position, nil
}

// readString scans a double-quoted string, decoding the escape sequences
// \" \\ \/ \b \f \n \r \t and \uXXXX. Line terminators inside a string, a missing closing quote
// and unknown escapes are errors located at the offending character.
func readString(s *source.Source, start int) (Token, error) {
	var (
		body     = s.Body
		position = start + 1
		chunk    = position
		value    strings.Builder
	)

	for position < len(body) {
		c := body[position]

		if c == '"' {
			value.WriteString(body[chunk:position])
			return Token{
				Kind:  STRING,
				Start: start,
				End:   position + 1,
				Value: value.String(),
			}, nil
		}
		if c == '\n' || c == '\r' {
			break
		}

		if c != '\\' {
			position++
			continue
		}

		// Escape sequence.
		value.WriteString(body[chunk:position])
		position++
		if position >= len(body) {
			break
		}
		switch body[position] {
		case '"':
			value.WriteByte('"')
		case '\\':
			value.WriteByte('\\')
		case '/':
			value.WriteByte('/')
		case 'b':
			value.WriteByte('\b')
		case 'f':
			value.WriteByte('\f')
		case 'n':
			value.WriteByte('\n')
		case 'r':
			value.WriteByte('\r')
		case 't':
			value.WriteByte('\t')
		case 'u':
			if position+4 >= len(body) {
				return Token{}, gqlerrors.NewSyntaxError(s, position,
					fmt.Sprintf("Invalid character escape sequence: \\%s.", body[position:]))
			}
			code := decodeHex(body[position+1 : position+5])
			if code < 0 {
				return Token{}, gqlerrors.NewSyntaxError(s, position,
					fmt.Sprintf("Invalid character escape sequence: \\%s.", body[position:position+5]))
			}
			value.WriteRune(rune(code))
			position += 4
		default:
			return Token{}, gqlerrors.NewSyntaxError(s, position,
				fmt.Sprintf("Invalid character escape sequence: \\%c.", body[position]))
		}
		position++
		chunk = position
	}

	return Token{}, gqlerrors.NewSyntaxError(s, position, "Unterminated string.")
}

// decodeHex converts four hex digits into a code point; -1 when a digit is invalid.
func decodeHex(digits string) int {
	code := 0
	for i := 0; i < 4; i++ {
		c := digits[i]
		code <<= 4
		switch {
		case c >= '0' && c <= '9':
			code |= int(c - '0')
		case c >= 'A' && c <= 'F':
			code |= int(c-'A') + 10
		case c >= 'a' && c <= 'f':
			code |= int(c-'a') + 10
		default:
			return -1
		}
	}
	return code
}
