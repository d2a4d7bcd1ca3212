package ast

import (
	"github.com/shyptr/gqlrun/errors"
	"github.com/shyptr/gqlrun/kinds"
)

type OperationType string

const (
	Query        OperationType = "query"
	Mutation     OperationType = "mutation"
	Subscription OperationType = "subscription"
)

// OperationDefinition describes one operation: an optional name, its
// declared variables, directives, and a selection set. An unnamed query
// that defines no variables and carries no directives may be written in
// shorthand form (just a bare selection set).
type OperationDefinition struct {
	Type         OperationType
	Name         *Name
	Vars         []*VariableDefinition
	Directives   []*Directive
	SelectionSet *SelectionSet
	Loc          errors.Location
}

func (o *OperationDefinition) GetKind() string           { return kinds.OperationDefinition }
func (o *OperationDefinition) Location() errors.Location { return o.Loc }
func (o *OperationDefinition) IsDefinition()             {}

// FragmentDefinition is a reusable named selection set bound to a type
// condition; it is consumed via FragmentSpread.
type FragmentDefinition struct {
	Name                *Name
	VariableDefinitions []*VariableDefinition
	TypeCondition       *NamedType
	Directives          []*Directive
	SelectionSet        *SelectionSet
	Loc                 errors.Location
}

func (f *FragmentDefinition) GetKind() string           { return kinds.FragmentDefinition }
func (f *FragmentDefinition) Location() errors.Location { return f.Loc }
func (f *FragmentDefinition) IsDefinition()             {}
