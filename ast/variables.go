package ast

import (
	"github.com/shyptr/gqlrun/errors"
	"github.com/shyptr/gqlrun/kinds"
)

type VariableDefinition struct {
	Var          *Variable
	Type         Type
	DefaultValue Value
	Directives   []*Directive
	Loc          errors.Location
}

func (v *VariableDefinition) GetKind() string           { return kinds.VariableDefinition }
func (v *VariableDefinition) Location() errors.Location { return v.Loc }
