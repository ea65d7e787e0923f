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

// Package parser builds the AST for a GraphQL query document by recursive descent over the token
// stream. A grammar mismatch is fatal: the first syntax error aborts the parse.
package parser

import (
	"fmt"

	"github.com/sablegql/sable/graphql/gqlerrors"
	"github.com/sablegql/sable/graphql/language/ast"
	"github.com/sablegql/sable/graphql/language/lexer"
	"github.com/sablegql/sable/graphql/language/source"
)

// Parse parses a GraphQL query document. The input may be a *source.Source or a string; a string
// is wrapped in a source named "GraphQL".
func Parse(input interface{}) (*ast.Document, error) {
	var s *source.Source
	switch input := input.(type) {
	case *source.Source:
		s = input
	case string:
		s = source.New("", input)
	default:
		return nil, fmt.Errorf("parser.Parse: unsupported input type %T", input)
	}

	p, err := newParser(s)
	if err != nil {
		return nil, err
	}
	return p.parseDocument()
}

type parser struct {
	source *source.Source
	lexer  *lexer.Lexer

	// The current lookahead token and the end offset of the token before it.
	token   lexer.Token
	prevEnd int
}

func newParser(s *source.Source) (*parser, error) {
	p := &parser{
		source: s,
		lexer:  lexer.New(s),
	}
	return p, p.advance()
}

// advance moves the lookahead to the next token.
func (p *parser) advance() error {
	p.prevEnd = p.token.End
	token, err := p.lexer.Next()
	if err != nil {
		return err
	}
	p.token = token
	return nil
}

// loc builds the location for a node that started at the given offset and ended with the most
// recently consumed token.
func (p *parser) loc(start int) *ast.Location {
	return &ast.Location{
		Start:  start,
		End:    p.prevEnd,
		Source: p.source,
	}
}

// peek reports whether the lookahead token has the given kind.
func (p *parser) peek(kind lexer.TokenKind) bool {
	return p.token.Kind == kind
}

// skip consumes the lookahead when it has the given kind.
func (p *parser) skip(kind lexer.TokenKind) (bool, error) {
	if p.token.Kind != kind {
		return false, nil
	}
	return true, p.advance()
}

// expect consumes and returns the lookahead when it has the given kind, and reports a syntax
// error otherwise.
func (p *parser) expect(kind lexer.TokenKind) (lexer.Token, error) {
	token := p.token
	if token.Kind != kind {
		return token, gqlerrors.NewSyntaxError(p.source, token.Start,
			fmt.Sprintf("Expected %s, found %s", kind, token.Description()))
	}
	return token, p.advance()
}

// expectKeyword consumes the lookahead when it is a name with the given value.
func (p *parser) expectKeyword(value string) (lexer.Token, error) {
	token := p.token
	if token.Kind != lexer.NAME || token.Value != value {
		return token, gqlerrors.NewSyntaxError(p.source, token.Start,
			fmt.Sprintf("Expected %q, found %s", value, token.Description()))
	}
	return token, p.advance()
}

// unexpected reports the lookahead token as out of place.
func (p *parser) unexpected() error {
	return gqlerrors.NewSyntaxError(p.source, p.token.Start,
		fmt.Sprintf("Unexpected %s", p.token.Description()))
}

// Document : Definition+
//
// Input with no definition at all parses to a Document with an empty definition list.
func (p *parser) parseDocument() (*ast.Document, error) {
	start := p.token.Start

	var definitions []ast.Definition
	for {
		if done, err := p.skip(lexer.EOF); err != nil {
			return nil, err
		} else if done {
			break
		}

		switch {
		case p.peek(lexer.BRACE_L):
			definition, err := p.parseOperationDefinition()
			if err != nil {
				return nil, err
			}
			definitions = append(definitions, definition)

		case p.peek(lexer.NAME):
			switch p.token.Value {
			case "query", "mutation":
				definition, err := p.parseOperationDefinition()
				if err != nil {
					return nil, err
				}
				definitions = append(definitions, definition)

			case "fragment":
				definition, err := p.parseFragmentDefinition()
				if err != nil {
					return nil, err
				}
				definitions = append(definitions, definition)

			default:
				return nil, p.unexpected()
			}

		default:
			return nil, p.unexpected()
		}
	}

	return &ast.Document{
		Loc:         p.loc(start),
		Definitions: definitions,
	}, nil
}

// OperationDefinition :
//
//	SelectionSet
//	(query|mutation) Name? VariableDefinitions? Directives? SelectionSet
func (p *parser) parseOperationDefinition() (*ast.OperationDefinition, error) {
	start := p.token.Start

	if p.peek(lexer.BRACE_L) {
		// A document starting with a bare selection set is an anonymous query.
		selectionSet, err := p.parseSelectionSet()
		if err != nil {
			return nil, err
		}
		return &ast.OperationDefinition{
			Loc:          p.loc(start),
			Operation:    "query",
			SelectionSet: selectionSet,
		}, nil
	}

	operationToken, err := p.expect(lexer.NAME)
	if err != nil {
		return nil, err
	}
	operation := operationToken.Value

	var name *ast.Name
	if p.peek(lexer.NAME) {
		if name, err = p.parseName(); err != nil {
			return nil, err
		}
	}

	variableDefinitions, err := p.parseVariableDefinitions()
	if err != nil {
		return nil, err
	}
	directives, err := p.parseDirectives()
	if err != nil {
		return nil, err
	}
	selectionSet, err := p.parseSelectionSet()
	if err != nil {
		return nil, err
	}

	return &ast.OperationDefinition{
		Loc:                 p.loc(start),
		Operation:           operation,
		Name:                name,
		VariableDefinitions: variableDefinitions,
		Directives:          directives,
		SelectionSet:        selectionSet,
	}, nil
}

// VariableDefinitions : ( VariableDefinition+ )
func (p *parser) parseVariableDefinitions() ([]*ast.VariableDefinition, error) {
	if !p.peek(lexer.PAREN_L) {
		return nil, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var definitions []*ast.VariableDefinition
	for {
		definition, err := p.parseVariableDefinition()
		if err != nil {
			return nil, err
		}
		definitions = append(definitions, definition)

		if done, err := p.skip(lexer.PAREN_R); err != nil {
			return nil, err
		} else if done {
			return definitions, nil
		}
	}
}

// VariableDefinition : Variable : Type DefaultValue?
func (p *parser) parseVariableDefinition() (*ast.VariableDefinition, error) {
	start := p.token.Start

	variable, err := p.parseVariable()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	variableType, err := p.parseType()
	if err != nil {
		return nil, err
	}

	var defaultValue ast.Value
	if hasDefault, err := p.skip(lexer.EQUALS); err != nil {
		return nil, err
	} else if hasDefault {
		// Default values are constant: no variables may appear inside them.
		if defaultValue, err = p.parseValue(true); err != nil {
			return nil, err
		}
	}

	return &ast.VariableDefinition{
		Loc:          p.loc(start),
		Variable:     variable,
		Type:         variableType,
		DefaultValue: defaultValue,
	}, nil
}

// Variable : $ Name
func (p *parser) parseVariable() (*ast.Variable, error) {
	start := p.token.Start
	if _, err := p.expect(lexer.DOLLAR); err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return &ast.Variable{
		Loc:  p.loc(start),
		Name: name,
	}, nil
}

// SelectionSet : { Selection+ }
func (p *parser) parseSelectionSet() (*ast.SelectionSet, error) {
	start := p.token.Start
	if _, err := p.expect(lexer.BRACE_L); err != nil {
		return nil, err
	}

	var selections []ast.Selection
	for {
		selection, err := p.parseSelection()
		if err != nil {
			return nil, err
		}
		selections = append(selections, selection)

		if done, err := p.skip(lexer.BRACE_R); err != nil {
			return nil, err
		} else if done {
			break
		}
	}

	return &ast.SelectionSet{
		Loc:        p.loc(start),
		Selections: selections,
	}, nil
}

// Selection : Field | FragmentSpread | InlineFragment
func (p *parser) parseSelection() (ast.Selection, error) {
	if p.peek(lexer.SPREAD) {
		return p.parseFragment()
	}
	return p.parseField()
}

// Field : Alias? Name Arguments? Directives? SelectionSet?
func (p *parser) parseField() (*ast.Field, error) {
	start := p.token.Start

	nameOrAlias, err := p.parseName()
	if err != nil {
		return nil, err
	}

	var (
		alias *ast.Name
		name  *ast.Name
	)
	if isAlias, err := p.skip(lexer.COLON); err != nil {
		return nil, err
	} else if isAlias {
		alias = nameOrAlias
		if name, err = p.parseName(); err != nil {
			return nil, err
		}
	} else {
		name = nameOrAlias
	}

	arguments, err := p.parseArguments()
	if err != nil {
		return nil, err
	}
	directives, err := p.parseDirectives()
	if err != nil {
		return nil, err
	}

	var selectionSet *ast.SelectionSet
	if p.peek(lexer.BRACE_L) {
		if selectionSet, err = p.parseSelectionSet(); err != nil {
			return nil, err
		}
	}

	return &ast.Field{
		Loc:          p.loc(start),
		Alias:        alias,
		Name:         name,
		Arguments:    arguments,
		Directives:   directives,
		SelectionSet: selectionSet,
	}, nil
}

// Arguments : ( Argument+ )
func (p *parser) parseArguments() ([]*ast.Argument, error) {
	if !p.peek(lexer.PAREN_L) {
		return nil, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var arguments []*ast.Argument
	for {
		argument, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, argument)

		if done, err := p.skip(lexer.PAREN_R); err != nil {
			return nil, err
		} else if done {
			return arguments, nil
		}
	}
}

// Argument : Name : Value
func (p *parser) parseArgument() (*ast.Argument, error) {
	start := p.token.Start

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	value, err := p.parseValue(false)
	if err != nil {
		return nil, err
	}

	return &ast.Argument{
		Loc:   p.loc(start),
		Name:  name,
		Value: value,
	}, nil
}

// FragmentSpread : ... FragmentName Directives?
// InlineFragment : ... TypeCondition? Directives? SelectionSet
func (p *parser) parseFragment() (ast.Selection, error) {
	start := p.token.Start
	if _, err := p.expect(lexer.SPREAD); err != nil {
		return nil, err
	}

	if p.peek(lexer.NAME) && p.token.Value != "on" {
		name, err := p.parseFragmentName()
		if err != nil {
			return nil, err
		}
		directives, err := p.parseDirectives()
		if err != nil {
			return nil, err
		}
		return &ast.FragmentSpread{
			Loc:        p.loc(start),
			Name:       name,
			Directives: directives,
		}, nil
	}

	var typeCondition *ast.NamedType
	if p.peek(lexer.NAME) {
		// The lookahead is the "on" keyword.
		if err := p.advance(); err != nil {
			return nil, err
		}
		var err error
		if typeCondition, err = p.parseNamedType(); err != nil {
			return nil, err
		}
	}

	directives, err := p.parseDirectives()
	if err != nil {
		return nil, err
	}
	selectionSet, err := p.parseSelectionSet()
	if err != nil {
		return nil, err
	}

	return &ast.InlineFragment{
		Loc:           p.loc(start),
		TypeCondition: typeCondition,
		Directives:    directives,
		SelectionSet:  selectionSet,
	}, nil
}

// FragmentDefinition : fragment FragmentName on NamedType Directives? SelectionSet
func (p *parser) parseFragmentDefinition() (*ast.FragmentDefinition, error) {
	start := p.token.Start
	if _, err := p.expectKeyword("fragment"); err != nil {
		return nil, err
	}

	name, err := p.parseFragmentName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("on"); err != nil {
		return nil, err
	}
	typeCondition, err := p.parseNamedType()
	if err != nil {
		return nil, err
	}
	directives, err := p.parseDirectives()
	if err != nil {
		return nil, err
	}
	selectionSet, err := p.parseSelectionSet()
	if err != nil {
		return nil, err
	}

	return &ast.FragmentDefinition{
		Loc:           p.loc(start),
		Name:          name,
		TypeCondition: typeCondition,
		Directives:    directives,
		SelectionSet:  selectionSet,
	}, nil
}

// FragmentName : Name (but not "on")
func (p *parser) parseFragmentName() (*ast.Name, error) {
	if p.token.Kind == lexer.NAME && p.token.Value == "on" {
		return nil, p.unexpected()
	}
	return p.parseName()
}

// Value[Const] :
//
//	Variable (not allowed when const)
//	IntValue | FloatValue | StringValue | BooleanValue | EnumValue
//	ListValue[?Const] | ObjectValue[?Const]
func (p *parser) parseValue(isConst bool) (ast.Value, error) {
	token := p.token
	switch token.Kind {
	case lexer.BRACKET_L:
		return p.parseListValue(isConst)

	case lexer.BRACE_L:
		return p.parseObjectValue(isConst)

	case lexer.INT:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.IntValue{Loc: p.loc(token.Start), Value: token.Value}, nil

	case lexer.FLOAT:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.FloatValue{Loc: p.loc(token.Start), Value: token.Value}, nil

	case lexer.STRING:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.StringValue{Loc: p.loc(token.Start), Value: token.Value}, nil

	case lexer.NAME:
		if err := p.advance(); err != nil {
			return nil, err
		}
		switch token.Value {
		case "true", "false":
			return &ast.BooleanValue{Loc: p.loc(token.Start), Value: token.Value == "true"}, nil
		}
		return &ast.EnumValue{Loc: p.loc(token.Start), Value: token.Value}, nil

	case lexer.DOLLAR:
		if !isConst {
			return p.parseVariable()
		}
	}

	return nil, p.unexpected()
}

// ListValue[Const] : [ Value[?Const]* ]
func (p *parser) parseListValue(isConst bool) (ast.Value, error) {
	start := p.token.Start
	if err := p.advance(); err != nil {
		return nil, err
	}

	var values []ast.Value
	for {
		if done, err := p.skip(lexer.BRACKET_R); err != nil {
			return nil, err
		} else if done {
			break
		}
		value, err := p.parseValue(isConst)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}

	return &ast.ListValue{
		Loc:    p.loc(start),
		Values: values,
	}, nil
}

// ObjectValue[Const] : { ObjectField[?Const]* }
func (p *parser) parseObjectValue(isConst bool) (ast.Value, error) {
	start := p.token.Start
	if err := p.advance(); err != nil {
		return nil, err
	}

	var fields []*ast.ObjectField
	for {
		if done, err := p.skip(lexer.BRACE_R); err != nil {
			return nil, err
		} else if done {
			break
		}

		fieldStart := p.token.Start
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}
		value, err := p.parseValue(isConst)
		if err != nil {
			return nil, err
		}
		fields = append(fields, &ast.ObjectField{
			Loc:   p.loc(fieldStart),
			Name:  name,
			Value: value,
		})
	}

	return &ast.ObjectValue{
		Loc:    p.loc(start),
		Fields: fields,
	}, nil
}

// Directives : Directive+
func (p *parser) parseDirectives() ([]*ast.Directive, error) {
	var directives []*ast.Directive
	for p.peek(lexer.AT) {
		start := p.token.Start
		if err := p.advance(); err != nil {
			return nil, err
		}
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		arguments, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		directives = append(directives, &ast.Directive{
			Loc:       p.loc(start),
			Name:      name,
			Arguments: arguments,
		})
	}
	return directives, nil
}

// Type : NamedType | ListType | NonNullType
func (p *parser) parseType() (ast.Type, error) {
	start := p.token.Start

	var parsedType ast.Type
	isList, err := p.skip(lexer.BRACKET_L)
	if err != nil {
		return nil, err
	}
	if isList {
		elementType, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.BRACKET_R); err != nil {
			return nil, err
		}
		parsedType = &ast.ListType{
			Loc:  p.loc(start),
			Type: elementType,
		}
	} else {
		namedType, err := p.parseNamedType()
		if err != nil {
			return nil, err
		}
		parsedType = namedType
	}

	if isNonNull, err := p.skip(lexer.BANG); err != nil {
		return nil, err
	} else if isNonNull {
		parsedType = &ast.NonNullType{
			Loc:  p.loc(start),
			Type: parsedType,
		}
	}

	return parsedType, nil
}

// NamedType : Name
func (p *parser) parseNamedType() (*ast.NamedType, error) {
	start := p.token.Start
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return &ast.NamedType{
		Loc:  p.loc(start),
		Name: name,
	}, nil
}

// Name
func (p *parser) parseName() (*ast.Name, error) {
	token, err := p.expect(lexer.NAME)
	if err != nil {
		return nil, err
	}
	return &ast.Name{
		Loc:   p.loc(token.Start),
		Value: token.Value,
	}, nil
}
