package ast

import (
	"github.com/shyptr/gqlrun/errors"
	"github.com/shyptr/gqlrun/kinds"
)

// Document is the root of a parsed request or schema text. It may contain
// executable definitions (operations, fragments), type-system definitions,
// or both; which combination is legal for a given use is a Validator
// concern, not a parser concern.
type Document struct {
	Definitions []Definition
	Validated   bool
	Loc         errors.Location
}

func (d *Document) GetKind() string           { return kinds.Document }
func (d *Document) Location() errors.Location { return d.Loc }

// Definition is implemented by every top-level document entry.
type Definition interface {
	Node
	IsDefinition()
}

var (
	_ Definition = (*OperationDefinition)(nil)
	_ Definition = (*FragmentDefinition)(nil)
)
