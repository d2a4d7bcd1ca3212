package ast

import (
	"github.com/shyptr/gqlrun/errors"
	"github.com/shyptr/gqlrun/kinds"
)

type Name struct {
	Value string
	Loc   errors.Location
}

func (n *Name) GetKind() string           { return kinds.Name }
func (n *Name) Location() errors.Location { return n.Loc }
