// Package schemabuilder builds a *schema.Schema from plain Go types and
// functions: Object/InputObject/Enum/Union/Interface/Scalar registration
// plus FieldFunc resolvers, so application code never constructs
// schema.Object/schema.Field values by hand.
package schemabuilder

import (
	"fmt"
	"reflect"

	"github.com/shyptr/gqlrun/kinds"
	"github.com/shyptr/gqlrun/schema"
)

// Schema accumulates Go-type registrations until Build assembles them
// into an executable *schema.Schema.
type Schema struct {
	objects      map[reflect.Type]*object
	inputObjects map[reflect.Type]*inputObject
	enums        map[reflect.Type]*enumType
	interfaces   map[reflect.Type]*interfaceType
	unions       map[reflect.Type]*unionType
	scalars      map[reflect.Type]*schema.Scalar
	directives   map[string]*directiveType

	// EnableIntrospection toggles installation of the __schema/__type
	// synthetic root fields during Build.
	EnableIntrospection bool
}

type object struct {
	name       string
	typ        reflect.Type
	desc       string
	fields     map[string]*fieldDef
	interfaces []string
}

type fieldDef struct {
	fn         reflect.Value
	desc       string
	deprecated string
}

type inputObject struct {
	name string
	typ  reflect.Type
	desc string
}

type enumType struct {
	name   string
	typ    reflect.Type
	desc   string
	values map[string]interface{}
	descs  map[string]string
}

type interfaceType struct {
	name    string
	typ     reflect.Type
	desc    string
	resolve interface{}
}

type unionType struct {
	name string
	typ  reflect.Type
	desc string
}

type directiveType struct {
	name    string
	locs    []string
	argType reflect.Type
	fn      func(args map[string]interface{}) func(schema.FieldResolveFn) schema.FieldResolveFn
	desc    string
}

// NewSchema returns a builder pre-populated with the built-in scalars
// (Int, Float, String, Boolean) and the built-in @skip/@include
// directives every request document may use without registration.
func NewSchema() *Schema {
	s := &Schema{
		objects:      make(map[reflect.Type]*object),
		inputObjects: make(map[reflect.Type]*inputObject),
		enums:        make(map[reflect.Type]*enumType),
		interfaces:   make(map[reflect.Type]*interfaceType),
		unions:       make(map[reflect.Type]*unionType),
		scalars:      make(map[reflect.Type]*schema.Scalar),
		directives:   make(map[string]*directiveType),
	}
	registerBuiltinScalars(s)
	registerBuiltinDirectives(s)
	return s
}

// Object registers typ (a struct, addressed by pointer or value — both
// resolve to the same Object) under name; calling Object twice for the
// same Go type returns the same builder.
func (s *Schema) Object(name string, typ interface{}, desc ...string) *object {
	t := underlying(reflect.TypeOf(typ))
	if o, ok := s.objects[t]; ok {
		return o
	}
	if name == "" {
		name = t.Name()
	}
	o := &object{name: name, typ: t, fields: make(map[string]*fieldDef)}
	if len(desc) > 0 {
		o.desc = desc[0]
	}
	s.objects[t] = o
	return o
}

// FieldFunc registers a resolver for name. fn's signature may be any of:
//
//	func() R
//	func(source S) (R, error)
//	func(source S) R
//	func(args A) R
//	func(ctx context.Context, source S) (R, error)
//	func(ctx context.Context, args A) (R, error)
//	func(source S, args A) (R, error)
//	func(ctx context.Context, source S, args A) (R, error)
//
// where S matches the object's registered Go type (a parameter of any
// other type is taken as A), A is a plain struct of arguments, and R is
// anything representable in the schema (scalar, registered
// object/enum/input type, slice, or pointer of any of those). The
// zero-argument and args-only forms are the common shapes for root
// Query/Mutation fields, which have no meaningful source value to accept.
func (o *object) FieldFunc(name string, fn interface{}, desc ...string) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		panic(fmt.Sprintf("FieldFunc %q: fn must be a function", name))
	}
	fd := &fieldDef{fn: v}
	if len(desc) > 0 {
		fd.desc = desc[0]
	}
	o.fields[name] = fd
}

// Deprecated marks a previously registered field as deprecated, with
// reason surfaced through introspection.
func (o *object) Deprecated(name, reason string) {
	if fd, ok := o.fields[name]; ok {
		fd.deprecated = reason
	}
}

// Implements declares that this object satisfies the named interfaces;
// Build verifies every interface field has a matching FieldFunc.
func (o *object) Implements(names ...string) {
	o.interfaces = append(o.interfaces, names...)
}

// InputObject registers typ as a GraphQL input object: its exported
// fields (named by their `json:"name"` tag, defaulting to the Go field
// name with its first letter lower-cased) become input fields during Build.
func (s *Schema) InputObject(name string, typ interface{}, desc ...string) *inputObject {
	t := underlying(reflect.TypeOf(typ))
	io := &inputObject{name: name, typ: t}
	if len(desc) > 0 {
		io.desc = desc[0]
	}
	s.inputObjects[t] = io
	return io
}

// Enum registers val's Go type as a GraphQL enum; values maps the
// exposed symbol names to their internal Go values.
func (s *Schema) Enum(name string, val interface{}, values map[string]interface{}, desc ...string) {
	t := reflect.TypeOf(val)
	e := &enumType{name: name, typ: t, values: values, descs: make(map[string]string)}
	if len(desc) > 0 {
		e.desc = desc[0]
	}
	s.enums[t] = e
}

// EnumValueDesc attaches a description to one enum value, surfaced
// through introspection's __EnumValue.description.
func (s *Schema) EnumValueDesc(val interface{}, value, desc string) {
	t := reflect.TypeOf(val)
	if e, ok := s.enums[t]; ok {
		e.descs[value] = desc
	}
}

// Union registers a struct type whose fields are all pointers to
// previously-registered Object types; exactly one field must be
// non-nil on any concrete value resolved through the union.
func (s *Schema) Union(name string, union interface{}, desc ...string) {
	t := reflect.TypeOf(union)
	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("Union %q: must be a struct of object pointers", name))
	}
	u := &unionType{name: name, typ: t}
	if len(desc) > 0 {
		u.desc = desc[0]
	}
	s.unions[t] = u
}

// Interface registers a Go interface type as a GraphQL interface.
// resolve, if non-nil, has signature func(ctx context.Context, source
// interface{}) string returning the concrete Object's registered name;
// when nil, the executor falls back to matching each possible type's
// registered Go type against the runtime type of the resolved value.
func (s *Schema) Interface(name string, typ interface{}, resolve interface{}, desc ...string) *interfaceType {
	t := underlying(reflect.TypeOf(typ))
	if t.Kind() != reflect.Interface {
		panic(fmt.Sprintf("Interface %q: typ must be a Go interface", name))
	}
	it := &interfaceType{name: name, typ: t, resolve: resolve}
	if len(desc) > 0 {
		it.desc = desc[0]
	}
	s.interfaces[t] = it
	return it
}

// Scalar registers tp as a named scalar, serialised by serialize and
// parsed back from a wire value by parse.
func (s *Schema) Scalar(name string, tp interface{}, serialize func(interface{}) (interface{}, error), parse func(interface{}) (interface{}, error), desc ...string) {
	t := underlying(reflect.TypeOf(tp))
	sc := &schema.Scalar{Name: name, Serialize: serialize, ParseValue: parse}
	if len(desc) > 0 {
		sc.Desc = desc[0]
	}
	s.scalars[t] = sc
}

// Directive registers a custom directive. argType may be nil for a
// directive that takes no arguments. fn receives the directive's
// coerced arguments and returns a resolver transform to wrap the field
// it decorates.
func (s *Schema) Directive(name string, locs []string, argType interface{}, fn func(args map[string]interface{}) func(schema.FieldResolveFn) schema.FieldResolveFn, desc ...string) {
	d := &directiveType{name: name, locs: locs, fn: fn}
	if argType != nil {
		d.argType = underlying(reflect.TypeOf(argType))
	}
	if len(desc) > 0 {
		d.desc = desc[0]
	}
	s.directives[name] = d
}

// Query returns the builder for the schema's Query root object.
func (s *Schema) Query() *object { return s.Object("Query", struct{ query struct{} }{}) }

// Mutation returns the builder for the schema's Mutation root object.
func (s *Schema) Mutation() *object { return s.Object("Mutation", struct{ mutation struct{} }{}) }

// Subscription returns the builder for the schema's Subscription root
// object.
func (s *Schema) Subscription() *object {
	return s.Object("Subscription", struct{ subscription struct{} }{})
}

func underlying(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func registerBuiltinScalars(s *Schema) {
	s.scalars[reflect.TypeOf(int(0))] = &schema.Scalar{Name: "Int"}
	s.scalars[reflect.TypeOf(int32(0))] = &schema.Scalar{Name: "Int"}
	s.scalars[reflect.TypeOf(int64(0))] = &schema.Scalar{Name: "Int"}
	s.scalars[reflect.TypeOf(float64(0))] = &schema.Scalar{Name: "Float"}
	s.scalars[reflect.TypeOf(float32(0))] = &schema.Scalar{Name: "Float"}
	s.scalars[reflect.TypeOf("")] = &schema.Scalar{Name: "String"}
	s.scalars[reflect.TypeOf(false)] = &schema.Scalar{Name: "Boolean"}
}

func registerBuiltinDirectives(s *Schema) {
	type ifArgs struct {
		If bool `graphql:"if"`
	}
	skipOrInclude := func(skip bool) func(args map[string]interface{}) func(schema.FieldResolveFn) schema.FieldResolveFn {
		return func(args map[string]interface{}) func(schema.FieldResolveFn) schema.FieldResolveFn {
			return func(next schema.FieldResolveFn) schema.FieldResolveFn {
				return next
			}
		}
	}
	s.directives["skip"] = &directiveType{
		name: "skip", locs: []string{kinds.LocField, kinds.LocFragmentSpread, kinds.LocInlineFragment},
		argType: reflect.TypeOf(ifArgs{}), fn: skipOrInclude(true),
		desc: "Directs the executor to skip this field or fragment when the `if` argument is true.",
	}
	s.directives["include"] = &directiveType{
		name: "include", locs: []string{kinds.LocField, kinds.LocFragmentSpread, kinds.LocInlineFragment},
		argType: reflect.TypeOf(ifArgs{}), fn: skipOrInclude(false),
		desc: "Directs the executor to include this field or fragment only when the `if` argument is true.",
	}
}
