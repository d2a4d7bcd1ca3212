package parser

import (
	"bytes"
	"fmt"
	"strings"
	"text/scanner"

	"github.com/shyptr/gqlrun/errors"
	"github.com/shyptr/gqlrun/token"
)

type syntaxError string

// lexer is a thin wrapper over text/scanner tuned to GraphQL's lexical
// grammar: commas are insignificant whitespace, # starts a line comment,
// and every advance past whitespace/comments is automatic. String scanning
// (both "quoted" and """block""" strings) is handled by hand rather than
// through text/scanner's ScanStrings mode, since that mode cannot tell a
// block string apart from three adjacent empty strings.
type lexer struct {
	scan      *scanner.Scanner
	next      rune
	comment   bytes.Buffer
	stringLit string
}

func newLexer(name, source string) *lexer {
	scan := &scanner.Scanner{}
	scan.Init(strings.NewReader(source))
	scan.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats
	scan.Filename = name
	return &lexer{scan: scan}
}

// tokenText returns the text of the current token, preferring the literal
// the lexer assembled by hand for STRING tokens over text/scanner's own
// TokenText, which only ever sees the pieces of a """block""" string.
func (l *lexer) tokenText() string {
	if l.next == token.STRING {
		return l.stringLit
	}
	return l.scan.TokenText()
}

func (l *lexer) catchSyntaxError(fn func()) (graphQLError *errors.GraphQLError) {
	defer func() {
		if err := recover(); err != nil {
			if se, ok := err.(syntaxError); ok {
				graphQLError = errors.New("Syntax Error: %s", se)
				graphQLError.Locations = []errors.Location{l.location()}
				return
			}
			panic(err)
		}
	}()
	fn()
	return
}

func (l *lexer) peek() rune {
	return l.next
}

func (l *lexer) location() errors.Location {
	return errors.Location{Line: l.scan.Line, Column: l.scan.Column}
}

// skipWhitespace advances past commas, comments, and the scanner's own
// insignificant whitespace, leaving l.next positioned at the next
// meaningful token.
func (l *lexer) skipWhitespace() {
	l.comment.Reset()
	for {
		l.next = l.scan.Scan()
		if l.next == ',' {
			continue
		}
		if l.next == '#' {
			l.skipComment()
			continue
		}
		if l.next == '"' {
			l.scanString()
		}
		break
	}
}

// scanString consumes a StringValue by hand, starting just after the
// opening quote that skipWhitespace already read off the scanner. It tells
// a block string ("""...""") from an ordinary one by counting how many
// quotes follow, then sets l.next to token.STRING and l.stringLit to the
// decoded value.
func (l *lexer) scanString() {
	if l.scan.Peek() != '"' {
		l.stringLit = l.scanStringBody()
		l.next = token.STRING
		return
	}
	l.scan.Next() // second quote
	if l.scan.Peek() != '"' {
		l.stringLit = ""
		l.next = token.STRING
		return
	}
	l.scan.Next() // third quote
	l.stringLit = dedentBlockString(l.scanBlockStringBody())
	l.next = token.STRING
}

// scanStringBody reads an ordinary quoted string's content, treating a
// backslash as escaping whatever rune follows it so an escaped quote does
// not end the string. It does not decode escapes, matching the raw text
// text/scanner's TokenText used to hand back.
func (l *lexer) scanStringBody() string {
	var buf bytes.Buffer
	for {
		r := l.scan.Next()
		switch r {
		case scanner.EOF, '\n':
			l.syntaxError("Unterminated string.")
		case '"':
			return buf.String()
		case '\\':
			buf.WriteRune(r)
			next := l.scan.Next()
			if next == scanner.EOF {
				l.syntaxError("Unterminated string.")
			}
			buf.WriteRune(next)
		default:
			buf.WriteRune(r)
		}
	}
}

// scanBlockStringBody reads a block string's content up to (and
// consuming) its closing """, honoring \""" as an escaped literal triple
// quote rather than the terminator.
func (l *lexer) scanBlockStringBody() string {
	var buf bytes.Buffer
	for {
		r := l.scan.Next()
		switch r {
		case scanner.EOF:
			l.syntaxError("Unterminated string.")
		case '\\':
			if l.scan.Peek() != '"' {
				buf.WriteRune(r)
				continue
			}
			q1 := l.scan.Next()
			if l.scan.Peek() != '"' {
				buf.WriteRune(q1)
				continue
			}
			q2 := l.scan.Next()
			if l.scan.Peek() != '"' {
				buf.WriteRune(q1)
				buf.WriteRune(q2)
				continue
			}
			q3 := l.scan.Next()
			buf.WriteRune(q1)
			buf.WriteRune(q2)
			buf.WriteRune(q3)
		case '"':
			if l.scan.Peek() != '"' {
				buf.WriteRune(r)
				continue
			}
			q2 := l.scan.Next()
			if l.scan.Peek() != '"' {
				buf.WriteRune(r)
				buf.WriteRune(q2)
				continue
			}
			l.scan.Next()
			return buf.String()
		default:
			buf.WriteRune(r)
		}
	}
}

// dedentBlockString applies the GraphQL block string value algorithm:
// strip the common leading whitespace from every line but the first, then
// drop wholly-blank leading and trailing lines.
func dedentBlockString(raw string) string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	commonIndent := -1
	for _, line := range lines[1:] {
		indent := leadingWhitespaceLen(line)
		if indent < len(line) && (commonIndent == -1 || indent < commonIndent) {
			commonIndent = indent
		}
	}
	if commonIndent > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= commonIndent {
				lines[i] = lines[i][commonIndent:]
			} else {
				lines[i] = ""
			}
		}
	}
	for len(lines) > 0 && isBlankLine(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && isBlankLine(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func leadingWhitespaceLen(s string) int {
	n := 0
	for n < len(s) && (s[n] == ' ' || s[n] == '\t') {
		n++
	}
	return n
}

func isBlankLine(s string) bool {
	return strings.TrimLeft(s, " \t") == ""
}

func (l *lexer) skipComment() {
	if l.scan.Peek() == ' ' {
		l.scan.Next()
	}
	if l.comment.Len() > 0 {
		l.comment.WriteRune('\n')
	}
	for {
		next := l.scan.Next()
		if next == '\r' || next == '\n' || next == scanner.EOF {
			break
		}
		l.comment.WriteRune(next)
	}
}

// advance requires the current token to be expected, then moves past it.
func (l *lexer) advance(expected rune) {
	if l.next != expected {
		l.unexpected(scanner.TokenString(expected))
	}
	l.skipWhitespace()
}

// advanceKeyWord requires the current token to be the NAME keyword, then
// moves past it.
func (l *lexer) advanceKeyWord(keyword string) {
	if l.next != token.NAME || l.scan.TokenText() != keyword {
		l.unexpected(fmt.Sprintf("%q", keyword))
	}
	l.skipWhitespace()
}

func (l *lexer) unexpected(expected string) {
	found := strings.Trim(l.scan.TokenText(), `"`)
	l.syntaxError(fmt.Sprintf("Expected %s, found %q.", expected, found))
}

func (l *lexer) syntaxError(message string) {
	panic(syntaxError(message))
}
