// Package schema models the GraphQL type system: scalars, objects,
// interfaces, unions, enums, input objects, and the List/NonNull
// wrapping types, plus the Schema root that ties a Query/Mutation/
// Subscription root type together.
package schema

import (
	"context"
	"fmt"
	"reflect"
)

// Type is satisfied by every member of the type system.
type Type interface {
	String() string
	isType()
}

var (
	_ Type = (*Scalar)(nil)
	_ Type = (*Object)(nil)
	_ Type = (*Interface)(nil)
	_ Type = (*Union)(nil)
	_ Type = (*Enum)(nil)
	_ Type = (*InputObject)(nil)
	_ Type = (*List)(nil)
	_ Type = (*NonNull)(nil)
)

// NamedType is a Type that also carries an independent name and
// description, i.e. everything except List/NonNull wrappers.
type NamedType interface {
	Type
	TypeName() string
	Description() string
}

var (
	_ NamedType = (*Scalar)(nil)
	_ NamedType = (*Object)(nil)
	_ NamedType = (*Interface)(nil)
	_ NamedType = (*Union)(nil)
	_ NamedType = (*Enum)(nil)
	_ NamedType = (*InputObject)(nil)
)

// Scalar is a leaf type with name-addressed serialisation/parsing
// functions; the executor lifts each serialised result into the
// value.Value kind matching its Go type.
type Scalar struct {
	Name       string
	Desc       string
	Serialize  func(interface{}) (interface{}, error)
	ParseValue func(interface{}) (interface{}, error)
}

// Object describes the fields resolvable on a concrete output type, plus
// which interfaces it declares conformance to.
type Object struct {
	Name        string
	Desc        string
	Interfaces  map[string]*Interface
	Fields      map[string]*Field
	fieldOrder  []string
	ReflectType reflect.Type
}

// AddField registers a field, preserving insertion order for
// introspection's __Type.fields listing.
func (o *Object) AddField(name string, f *Field) {
	if o.Fields == nil {
		o.Fields = make(map[string]*Field)
	}
	if _, exists := o.Fields[name]; !exists {
		o.fieldOrder = append(o.fieldOrder, name)
	}
	o.Fields[name] = f
}

func (o *Object) FieldOrder() []string { return o.fieldOrder }

// Interface describes fields common to every implementing Object, and
// dispatches at execution time to the concrete Object via ResolveType
// (explicit) or reflection against PossibleTypes (implicit).
type Interface struct {
	Name          string
	Desc          string
	Fields        map[string]*Field
	fieldOrder    []string
	PossibleTypes []*Object
	ResolveType   func(ctx context.Context, value interface{}) *Object
}

func (i *Interface) AddField(name string, f *Field) {
	if i.Fields == nil {
		i.Fields = make(map[string]*Field)
	}
	if _, exists := i.Fields[name]; !exists {
		i.fieldOrder = append(i.fieldOrder, name)
	}
	i.Fields[name] = f
}

func (i *Interface) FieldOrder() []string { return i.fieldOrder }

// Union describes a set of possible Object types with no fields in
// common; ResolveType picks the concrete member for a runtime value.
type Union struct {
	Name        string
	Desc        string
	Types       map[string]*Object
	typeOrder   []string
	ResolveType func(ctx context.Context, value interface{}) *Object
}

func (u *Union) AddType(o *Object) {
	if u.Types == nil {
		u.Types = make(map[string]*Object)
	}
	if _, exists := u.Types[o.Name]; !exists {
		u.typeOrder = append(u.typeOrder, o.Name)
	}
	u.Types[o.Name] = o
}

func (u *Union) TypeOrder() []string { return u.typeOrder }

// Enum serialises as a string but may be backed by any comparable Go
// value internally; ReverseMap looks up the symbol for an internal value.
type Enum struct {
	Name       string
	Desc       string
	Values     []string
	ValueDescs map[string]string
	ReverseMap map[interface{}]string
	Map        map[string]interface{}
}

// InputObject is a structured argument/variable type: a named bag of
// InputFields, each independently typed and optionally defaulted.
type InputObject struct {
	Name       string
	Desc       string
	Fields     map[string]*InputField
	fieldOrder []string
}

func (o *InputObject) AddField(name string, f *InputField) {
	if o.Fields == nil {
		o.Fields = make(map[string]*InputField)
	}
	if _, exists := o.Fields[name]; !exists {
		o.fieldOrder = append(o.fieldOrder, name)
	}
	o.Fields[name] = f
}

func (o *InputObject) FieldOrder() []string { return o.fieldOrder }

// List wraps an element Type; NonNull wraps a Type that must never
// resolve to null.
type List struct{ Type Type }
type NonNull struct{ Type Type }

func (t *Scalar) String() string      { return t.Name }
func (t *Object) String() string      { return t.Name }
func (t *Interface) String() string   { return t.Name }
func (t *Union) String() string       { return t.Name }
func (t *Enum) String() string        { return t.Name }
func (t *InputObject) String() string { return t.Name }
func (t *List) String() string        { return fmt.Sprintf("[%s]", t.Type.String()) }
func (t *NonNull) String() string     { return fmt.Sprintf("%s!", t.Type.String()) }

func (t *Scalar) isType()      {}
func (t *Object) isType()      {}
func (t *Interface) isType()   {}
func (t *Union) isType()       {}
func (t *Enum) isType()        {}
func (t *InputObject) isType() {}
func (t *List) isType()        {}
func (t *NonNull) isType()     {}

func (t *Scalar) TypeName() string      { return t.Name }
func (t *Object) TypeName() string      { return t.Name }
func (t *Interface) TypeName() string   { return t.Name }
func (t *Union) TypeName() string       { return t.Name }
func (t *Enum) TypeName() string        { return t.Name }
func (t *InputObject) TypeName() string { return t.Name }

func (t *Scalar) Description() string      { return t.Desc }
func (t *Object) Description() string      { return t.Desc }
func (t *Interface) Description() string   { return t.Desc }
func (t *Union) Description() string       { return t.Desc }
func (t *Enum) Description() string        { return t.Desc }
func (t *InputObject) Description() string { return t.Desc }

// FieldResolveFn is the shape every field resolver conforms to; args are
// already coerced to Go values by the time the executor invokes it.
type FieldResolveFn func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error)

// Field is a resolvable member of an Object or Interface: its output
// Type, the Arguments it accepts, and the function that resolves it.
type Field struct {
	Type       Type
	Args       map[string]*Argument
	argOrder   []string
	Resolve    FieldResolveFn
	Desc       string
	Deprecated string
}

func (f *Field) AddArg(name string, a *Argument) {
	if f.Args == nil {
		f.Args = make(map[string]*Argument)
	}
	if _, exists := f.Args[name]; !exists {
		f.argOrder = append(f.argOrder, name)
	}
	f.Args[name] = a
}

func (f *Field) ArgOrder() []string { return f.argOrder }

// Argument is a named, typed, optionally-defaulted field parameter.
type Argument struct {
	Type         Type
	DefaultValue interface{}
	Desc         string
}

// InputField is a named, typed, optionally-defaulted member of an
// InputObject.
type InputField struct {
	Type         Type
	DefaultValue interface{}
	Desc         string
}

// Directive describes a schema-level directive definition: where it is
// legal to apply, what arguments it accepts, and the execution-time
// transform it applies to a field's resolver.
type Directive struct {
	Name      string
	Desc      string
	Locations []string
	Args      map[string]*Argument
	argOrder  []string
	Fn        func(args map[string]interface{}) func(FieldResolveFn) FieldResolveFn
}

func (d *Directive) AddArg(name string, a *Argument) {
	if d.Args == nil {
		d.Args = make(map[string]*Argument)
	}
	if _, exists := d.Args[name]; !exists {
		d.argOrder = append(d.argOrder, name)
	}
	d.Args[name] = a
}

func (d *Directive) ArgOrder() []string { return d.argOrder }

// Schema is the fully built type system: root operation types plus every
// named type and directive reachable from them, keyed for introspection
// and validation lookups.
type Schema struct {
	Query        *Object
	Mutation     *Object
	Subscription *Object
	TypeMap      map[string]NamedType
	Directives   map[string]*Directive
}

// LookupType returns the named type registered under name, if any.
func (s *Schema) LookupType(name string) (NamedType, bool) {
	t, ok := s.TypeMap[name]
	return t, ok
}

// WrapType wraps inner in a List when list is set, and then in a NonNull
// when nonNull is set.
func WrapType(inner Type, list, nonNull bool) Type {
	t := inner
	if list {
		t = &List{Type: t}
	}
	if nonNull {
		t = &NonNull{Type: t}
	}
	return t
}

// NamedOf unwraps List/NonNull layers down to the underlying NamedType.
func NamedOf(t Type) NamedType {
	for {
		switch v := t.(type) {
		case *List:
			t = v.Type
		case *NonNull:
			t = v.Type
		case NamedType:
			return v
		default:
			return nil
		}
	}
}

// IsNonNull reports whether t's outermost layer is NonNull.
func IsNonNull(t Type) bool {
	_, ok := t.(*NonNull)
	return ok
}
