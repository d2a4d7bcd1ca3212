package ast

import (
	"github.com/shyptr/gqlrun/errors"
	"github.com/shyptr/gqlrun/kinds"
)

// Argument is a name/value pair attached to a field or directive.
// Arguments are unordered: two selections differing only in argument
// order are semantically identical.
type Argument struct {
	Name  *Name
	Value Value
	Loc   errors.Location
}

func (a *Argument) GetKind() string           { return kinds.Argument }
func (a *Argument) Location() errors.Location { return a.Loc }
