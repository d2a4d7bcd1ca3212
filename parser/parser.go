// Package parser implements a hand-rolled, recursive-descent PEG-style
// parser for GraphQL request documents: entry rule dispatch happens on the
// first keyword token, every production returns a typed ast.Node carrying
// its source location, and malformed input is reported as a single
// GraphQLError whose message starts with "Syntax Error:" rather than as a Go error
// chain, matching how the rest of this runtime surfaces user-facing
// failures.
package parser

import (
	"fmt"
	"text/scanner"

	"github.com/shyptr/gqlrun/ast"
	"github.com/shyptr/gqlrun/errors"
	"github.com/shyptr/gqlrun/token"
)

// Parse parses a complete request document: operations and fragment
// definitions only. Schema definition documents are out of scope for this
// entry point; schemas are built programmatically (see package
// schemabuilder) rather than parsed from SDL text.
func Parse(name, source string) (*ast.Document, *errors.GraphQLError) {
	l := newLexer(name, source)
	var doc *ast.Document
	if err := l.catchSyntaxError(func() {
		l.skipWhitespace()
		doc = parseDocument(l)
	}); err != nil {
		return nil, err
	}
	return doc, nil
}

func parseDocument(l *lexer) *ast.Document {
	doc := &ast.Document{}
	for l.peek() != token.EOF {
		if l.peek() == token.BRACE_L {
			loc := l.location()
			op := &ast.OperationDefinition{Type: ast.Query, Loc: loc}
			op.SelectionSet = parseSelectionSet(l)
			doc.Definitions = append(doc.Definitions, op)
			continue
		}

		loc := l.location()
		name := parseName(l)
		switch name.Value {
		case token.QUERY:
			def := parseOperationDefinition(l, ast.Query)
			def.Loc = loc
			doc.Definitions = append(doc.Definitions, def)
		case token.MUTATION:
			def := parseOperationDefinition(l, ast.Mutation)
			def.Loc = loc
			doc.Definitions = append(doc.Definitions, def)
		case token.SUBSCRIPTION:
			def := parseOperationDefinition(l, ast.Subscription)
			def.Loc = loc
			doc.Definitions = append(doc.Definitions, def)
		case token.FRAGMENT:
			fragment := parseFragmentDefinition(l)
			fragment.Loc = loc
			doc.Definitions = append(doc.Definitions, fragment)
		default:
			l.syntaxError(fmt.Sprintf("Unexpected %q, expecting \"query\", \"mutation\", \"subscription\" or \"fragment\".", name.Value))
		}
	}
	return doc
}

// FragmentDefinition : fragment FragmentName on TypeCondition Directives? SelectionSet
func parseFragmentDefinition(l *lexer) *ast.FragmentDefinition {
	name := parseName(l)
	l.advanceKeyWord(token.ON)
	typeCondition := parseNamedType(l)
	directives := parseDirectives(l)
	selectionSet := parseSelectionSet(l)
	return &ast.FragmentDefinition{
		Name:          name,
		TypeCondition: typeCondition,
		Directives:    directives,
		SelectionSet:  selectionSet,
	}
}

func parseOperationDefinition(l *lexer, opType ast.OperationType) *ast.OperationDefinition {
	op := &ast.OperationDefinition{Type: opType}
	if l.peek() == token.NAME {
		op.Name = parseName(l)
	}
	op.Vars = parseVariableDefinitions(l)
	op.Directives = parseDirectives(l)
	op.SelectionSet = parseSelectionSet(l)
	return op
}

// VariableDefinitions : ( VariableDefinition+ )
func parseVariableDefinitions(l *lexer) []*ast.VariableDefinition {
	var vars []*ast.VariableDefinition
	if l.peek() == token.PAREN_L {
		l.advance(token.PAREN_L)
		for l.peek() != token.PAREN_R {
			vars = append(vars, parseVariableDefinition(l))
		}
		l.advance(token.PAREN_R)
	}
	return vars
}

// VariableDefinition : Variable : Type DefaultValue?
func parseVariableDefinition(l *lexer) *ast.VariableDefinition {
	loc := l.location()
	variable := parseVariable(l)
	l.advance(token.COLON)
	t := parseType(l)
	var defaultValue ast.Value
	if l.peek() == token.EQUALS {
		l.advance(token.EQUALS)
		defaultValue = parseValueLiteral(l, true)
	}
	return &ast.VariableDefinition{Var: variable, Type: t, DefaultValue: defaultValue, Loc: loc}
}

// Type : NamedType | ListType | NonNullType
func parseType(l *lexer) ast.Type {
	loc := l.location()
	var t ast.Type
	if l.peek() == token.BRACKET_L {
		l.advance(token.BRACKET_L)
		inner := parseType(l)
		l.advance(token.BRACKET_R)
		t = &ast.ListType{Type: inner, Loc: loc}
	} else {
		t = parseNamedType(l)
	}
	if l.peek() == token.BANG {
		l.advance(token.BANG)
		return &ast.NonNullType{Type: t, Loc: loc}
	}
	return t
}

func parseName(l *lexer) *ast.Name {
	loc := l.location()
	name := l.scan.TokenText()
	l.advance(token.NAME)
	return &ast.Name{Value: name, Loc: loc}
}

// NamedType : Name
func parseNamedType(l *lexer) *ast.NamedType {
	loc := l.location()
	return &ast.NamedType{Name: parseName(l), Loc: loc}
}

// SelectionSet : { Selection+ }
func parseSelectionSet(l *lexer) *ast.SelectionSet {
	loc := l.location()
	l.advance(token.BRACE_L)
	var selections []ast.Selection
	for l.peek() != token.BRACE_R {
		selections = append(selections, parseSelection(l))
	}
	l.advance(token.BRACE_R)
	return &ast.SelectionSet{Selections: selections, Loc: loc}
}

// Selection : Field | FragmentSpread | InlineFragment
func parseSelection(l *lexer) ast.Selection {
	if l.peek() == token.SPREAD {
		return parseFragment(l)
	}
	return parseField(l)
}

// Arguments : ( Argument+ )
func parseArguments(l *lexer) []*ast.Argument {
	var args []*ast.Argument
	l.advance(token.PAREN_L)
	for l.peek() != token.PAREN_R {
		loc := l.location()
		name := parseName(l)
		l.advance(token.COLON)
		value := parseValueLiteral(l, false)
		args = append(args, &ast.Argument{Name: name, Value: value, Loc: loc})
	}
	l.advance(token.PAREN_R)
	return args
}

// Value[Const] : [~Const] Variable | IntValue | FloatValue | StringValue |
//                BooleanValue | NullValue | EnumValue | ListValue[?Const] |
//                ObjectValue[?Const]
func parseValueLiteral(l *lexer, constOnly bool) ast.Value {
	loc := l.location()
	switch l.peek() {
	case token.BRACKET_L:
		return parseList(l, constOnly)
	case token.BRACE_L:
		return parseObject(l, constOnly)
	case token.DOLLAR:
		if constOnly {
			l.syntaxError("Unexpected variable in const context")
		}
		return parseVariable(l)
	case token.INT:
		text := l.scan.TokenText()
		l.advance(token.INT)
		return &ast.IntValue{Value: text, Loc: loc}
	case token.FLOAT:
		text := l.scan.TokenText()
		l.advance(token.FLOAT)
		return &ast.FloatValue{Value: text, Loc: loc}
	case token.STRING:
		text := l.tokenText()
		l.advance(token.STRING)
		return &ast.StringValue{Value: text, Loc: loc}
	case token.NAME:
		text := l.scan.TokenText()
		switch text {
		case token.TRUE:
			l.advance(token.NAME)
			return &ast.BooleanValue{Value: true, Loc: loc}
		case token.FALSE:
			l.advance(token.NAME)
			return &ast.BooleanValue{Value: false, Loc: loc}
		case token.NULL:
			l.advance(token.NAME)
			return &ast.NullValue{Loc: loc}
		default:
			l.advance(token.NAME)
			return &ast.EnumValue{Value: text, Loc: loc}
		}
	}
	l.syntaxError(fmt.Sprintf("Unexpected %q", scanner.TokenString(l.peek())))
	return nil
}

// ListValue[Const] : [ ] | [ Value[?Const]+ ]
func parseList(l *lexer, constOnly bool) *ast.ListValue {
	loc := l.location()
	l.advance(token.BRACKET_L)
	var list []ast.Value
	for l.peek() != token.BRACKET_R {
		list = append(list, parseValueLiteral(l, constOnly))
	}
	l.advance(token.BRACKET_R)
	return &ast.ListValue{Values: list, Loc: loc}
}

// ObjectValue[Const] : { } | { ObjectField[?Const]+ }
func parseObject(l *lexer, constOnly bool) *ast.ObjectValue {
	loc := l.location()
	l.advance(token.BRACE_L)
	var fields []*ast.ObjectField
	for l.peek() != token.BRACE_R {
		fields = append(fields, parseObjectField(l, constOnly))
	}
	l.advance(token.BRACE_R)
	return &ast.ObjectValue{Fields: fields, Loc: loc}
}

// ObjectField[Const] : Name : Value[?Const]
func parseObjectField(l *lexer, constOnly bool) *ast.ObjectField {
	loc := l.location()
	name := parseName(l)
	l.advance(token.COLON)
	value := parseValueLiteral(l, constOnly)
	return &ast.ObjectField{Name: name, Value: value, Loc: loc}
}

// Variable : $ Name
func parseVariable(l *lexer) *ast.Variable {
	loc := l.location()
	l.advance(token.DOLLAR)
	return &ast.Variable{Name: parseName(l), Loc: loc}
}

// Field : Alias? Name Arguments? Directives? SelectionSet?
// Alias : Name :
func parseField(l *lexer) *ast.Field {
	field := &ast.Field{Loc: l.location()}
	field.Alias = parseName(l)
	field.Name = field.Alias
	if l.peek() == token.COLON {
		l.advance(token.COLON)
		field.Name = parseName(l)
	}
	if l.peek() == token.PAREN_L {
		field.Arguments = parseArguments(l)
	}
	field.Directives = parseDirectives(l)
	if l.peek() == token.BRACE_L {
		field.SelectionSet = parseSelectionSet(l)
	}
	return field
}

// FragmentSpread : ... FragmentName Directives?
// InlineFragment : ... TypeCondition? Directives? SelectionSet
func parseFragment(l *lexer) ast.Selection {
	loc := l.location()
	l.advance(token.SPREAD)
	l.advance(token.SPREAD)
	l.advance(token.SPREAD)

	if l.peek() == token.NAME && l.scan.TokenText() != token.ON {
		name := parseName(l)
		spread := &ast.FragmentSpread{Name: name, Loc: loc}
		spread.Directives = parseDirectives(l)
		return spread
	}

	fragment := &ast.InlineFragment{Loc: loc}
	if l.peek() == token.NAME {
		l.advanceKeyWord(token.ON)
		fragment.TypeCondition = parseNamedType(l)
	}
	fragment.Directives = parseDirectives(l)
	fragment.SelectionSet = parseSelectionSet(l)
	return fragment
}

// Directives : Directive+
func parseDirectives(l *lexer) []*ast.Directive {
	var directives []*ast.Directive
	for l.peek() == token.AT {
		directives = append(directives, parseDirective(l))
	}
	return directives
}

// Directive : @ Name Arguments?
func parseDirective(l *lexer) *ast.Directive {
	loc := l.location()
	l.advance(token.AT)
	directive := &ast.Directive{Loc: loc}
	directive.Name = parseName(l)
	if l.peek() == token.PAREN_L {
		directive.Args = parseArguments(l)
	}
	return directive
}
