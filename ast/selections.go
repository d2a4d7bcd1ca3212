package ast

import (
	"github.com/shyptr/gqlrun/errors"
	"github.com/shyptr/gqlrun/kinds"
)

// SelectionSet is the set of fields and fragment references requested at
// one level of a query; selections may also contain fragment references
// that get merged into the same level at execution time.
type SelectionSet struct {
	Selections []Selection
	Loc        errors.Location
}

func (s *SelectionSet) GetKind() string           { return kinds.SelectionSet }
func (s *SelectionSet) Location() errors.Location { return s.Loc }

// Selection is implemented by Field, FragmentSpread, and InlineFragment.
type Selection interface {
	Node
	IsSelection()
}

var (
	_ Selection = (*Field)(nil)
	_ Selection = (*FragmentSpread)(nil)
	_ Selection = (*InlineFragment)(nil)
)

// Field's Alias always holds the response key (the first name token read),
// equal to Name when no alias was actually given in the source, matching
// how an un-aliased field still needs a response-object key.
type Field struct {
	Alias        *Name
	Name         *Name
	Arguments    []*Argument
	Directives   []*Directive
	SelectionSet *SelectionSet
	Loc          errors.Location
}

func (f *Field) GetKind() string           { return kinds.Field }
func (f *Field) Location() errors.Location { return f.Loc }
func (f *Field) IsSelection()              {}

// ResponseName is the key this field contributes to the response object.
func (f *Field) ResponseName() string {
	return f.Alias.Value
}

type FragmentSpread struct {
	Name       *Name
	Directives []*Directive
	Loc        errors.Location
}

func (f *FragmentSpread) GetKind() string           { return kinds.FragmentSpread }
func (f *FragmentSpread) Location() errors.Location { return f.Loc }
func (f *FragmentSpread) IsSelection()              {}

type InlineFragment struct {
	TypeCondition *NamedType
	Directives    []*Directive
	SelectionSet  *SelectionSet
	Loc           errors.Location
}

func (i *InlineFragment) GetKind() string           { return kinds.InlineFragment }
func (i *InlineFragment) Location() errors.Location { return i.Loc }
func (i *InlineFragment) IsSelection()              {}
