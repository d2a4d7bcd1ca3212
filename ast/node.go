// Package ast defines the immutable parse tree produced by package parser:
// every node is tagged by grammar rule, carries its source span, and owns
// its children. A Document is the root of a parsed request or schema text.
package ast

import "github.com/shyptr/gqlrun/errors"

// Node is implemented by every AST node.
type Node interface {
	GetKind() string
	Location() errors.Location
}

// Source pairs a document's text with the name under which it was parsed.
// Neither Document nor errors.Location refers to a Source.
type Source struct {
	Name  string
	Input string
}
