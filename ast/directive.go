package ast

import (
	"github.com/shyptr/gqlrun/errors"
	"github.com/shyptr/gqlrun/kinds"
)

// Directive order is significant: two type or field definitions that carry
// the same directives in a different order may have different semantic
// meaning once a directive's effect depends on prior directives.
type Directive struct {
	Name *Name
	Args []*Argument
	Loc  errors.Location
}

func (d *Directive) GetKind() string           { return kinds.Directive }
func (d *Directive) Location() errors.Location { return d.Loc }
