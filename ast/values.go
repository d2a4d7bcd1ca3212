package ast

import (
	"github.com/shyptr/gqlrun/errors"
	"github.com/shyptr/gqlrun/kinds"
)

// Value is implemented by every literal or variable reference that can
// appear where an input value is expected (argument, default value, list
// or object field).
type Value interface {
	Node
	GetValue() interface{}
}

var (
	_ Value = (*Variable)(nil)
	_ Value = (*IntValue)(nil)
	_ Value = (*FloatValue)(nil)
	_ Value = (*StringValue)(nil)
	_ Value = (*NullValue)(nil)
	_ Value = (*BooleanValue)(nil)
	_ Value = (*EnumValue)(nil)
	_ Value = (*ListValue)(nil)
	_ Value = (*ObjectValue)(nil)
)

type Variable struct {
	Name *Name
	Loc  errors.Location
}

func (v *Variable) GetKind() string           { return kinds.Variable }
func (v *Variable) Location() errors.Location { return v.Loc }
func (v *Variable) GetValue() interface{}     { return v.Name.Value }

type IntValue struct {
	Value string
	Loc   errors.Location
}

func (i *IntValue) GetKind() string           { return kinds.IntValue }
func (i *IntValue) Location() errors.Location { return i.Loc }
func (i *IntValue) GetValue() interface{}     { return i.Value }

type FloatValue struct {
	Value string
	Loc   errors.Location
}

func (f *FloatValue) GetKind() string           { return kinds.FloatValue }
func (f *FloatValue) Location() errors.Location { return f.Loc }
func (f *FloatValue) GetValue() interface{}     { return f.Value }

type StringValue struct {
	Value string
	Loc   errors.Location
}

func (s *StringValue) GetKind() string           { return kinds.StringValue }
func (s *StringValue) Location() errors.Location { return s.Loc }
func (s *StringValue) GetValue() interface{}     { return s.Value }

type NullValue struct {
	Loc errors.Location
}

func (n *NullValue) GetKind() string           { return kinds.NullValue }
func (n *NullValue) Location() errors.Location { return n.Loc }
func (n *NullValue) GetValue() interface{}     { return nil }

type BooleanValue struct {
	Value bool
	Loc   errors.Location
}

func (b *BooleanValue) GetKind() string           { return kinds.BooleanValue }
func (b *BooleanValue) Location() errors.Location { return b.Loc }
func (b *BooleanValue) GetValue() interface{}     { return b.Value }

type EnumValue struct {
	Value string
	Loc   errors.Location
}

func (e *EnumValue) GetKind() string           { return kinds.EnumValue }
func (e *EnumValue) Location() errors.Location { return e.Loc }
func (e *EnumValue) GetValue() interface{}     { return e.Value }

type ListValue struct {
	Values []Value
	Loc    errors.Location
}

func (l *ListValue) GetKind() string           { return kinds.ListValue }
func (l *ListValue) Location() errors.Location { return l.Loc }
func (l *ListValue) GetValue() interface{}     { return l.Values }

type ObjectValue struct {
	Fields []*ObjectField
	Loc    errors.Location
}

func (o *ObjectValue) GetKind() string           { return kinds.ObjectValue }
func (o *ObjectValue) Location() errors.Location { return o.Loc }
func (o *ObjectValue) GetValue() interface{}     { return o.Fields }

type ObjectField struct {
	Name  *Name
	Value Value
	Loc   errors.Location
}

func (o *ObjectField) GetKind() string           { return kinds.ObjectField }
func (o *ObjectField) Location() errors.Location { return o.Loc }
