package ast

import (
	"fmt"

	"github.com/shyptr/gqlrun/errors"
	"github.com/shyptr/gqlrun/kinds"
)

// Type is a reference to a named type, possibly wrapped in List/NonNull,
// as it appears in a variable definition or schema-definition document.
type Type interface {
	Node
	String() string
}

var (
	_ Type = (*NamedType)(nil)
	_ Type = (*ListType)(nil)
	_ Type = (*NonNullType)(nil)
)

type NamedType struct {
	Name *Name
	Loc  errors.Location
}

func (n *NamedType) GetKind() string           { return kinds.NamedType }
func (n *NamedType) Location() errors.Location { return n.Loc }
func (n *NamedType) String() string            { return n.Name.Value }

type ListType struct {
	Type Type
	Loc  errors.Location
}

func (l *ListType) OfType() Type              { return l.Type }
func (l *ListType) GetKind() string           { return kinds.ListType }
func (l *ListType) Location() errors.Location { return l.Loc }
func (l *ListType) String() string            { return fmt.Sprintf("[%s]", l.Type.String()) }

type NonNullType struct {
	Type Type
	Loc  errors.Location
}

func (n *NonNullType) OfType() Type              { return n.Type }
func (n *NonNullType) GetKind() string           { return kinds.NonNullType }
func (n *NonNullType) Location() errors.Location { return n.Loc }
func (n *NonNullType) String() string            { return fmt.Sprintf("%s!", n.Type.String()) }
