package schemabuilder

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"unicode"

	"github.com/shyptr/gqlrun/introspection"
	"github.com/shyptr/gqlrun/schema"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType     = reflect.TypeOf((*error)(nil)).Elem()
)

type builder struct {
	s      *Schema
	types  map[reflect.Type]schema.NamedType
	schema *schema.Schema
}

// Build compiles every registration made on s into an executable
// *schema.Schema, or returns the first inconsistency found (an
// unregistered type reached from a field/argument, an interface whose
// fields no implementing object provides, a union member that isn't a
// registered object).
func (s *Schema) Build() (*schema.Schema, error) {
	b := &builder{s: s, types: make(map[reflect.Type]schema.NamedType)}
	sc := &schema.Schema{TypeMap: make(map[string]schema.NamedType), Directives: make(map[string]*schema.Directive)}
	b.schema = sc

	for t, sv := range s.scalars {
		b.types[t] = sv
		sc.TypeMap[sv.Name] = sv
	}
	for t, e := range s.enums {
		en := b.buildEnumShell(e)
		b.types[t] = en
		sc.TypeMap[en.Name] = en
	}
	for t, io := range s.inputObjects {
		shell := &schema.InputObject{Name: io.name, Desc: io.desc}
		b.types[t] = shell
		sc.TypeMap[shell.Name] = shell
	}
	for t, it := range s.interfaces {
		shell := &schema.Interface{Name: it.name, Desc: it.desc}
		b.types[t] = shell
		sc.TypeMap[shell.Name] = shell
	}
	for t, u := range s.unions {
		shell := &schema.Union{Name: u.name, Desc: u.desc}
		b.types[t] = shell
		sc.TypeMap[shell.Name] = shell
	}
	for t, o := range s.objects {
		shell := &schema.Object{Name: o.name, Desc: o.desc}
		b.types[t] = shell
		sc.TypeMap[shell.Name] = shell
	}

	for t, io := range s.inputObjects {
		if err := b.fillInputObject(t, io); err != nil {
			return nil, err
		}
	}
	for t, o := range s.objects {
		if err := b.fillObject(t, o); err != nil {
			return nil, err
		}
	}
	for t, it := range s.interfaces {
		if err := b.fillInterface(t, it); err != nil {
			return nil, err
		}
	}
	for t, u := range s.unions {
		if err := b.fillUnion(t, u); err != nil {
			return nil, err
		}
	}

	for name, d := range s.directives {
		sd := &schema.Directive{Name: name, Desc: d.desc, Locations: d.locs, Fn: d.fn}
		if d.argType != nil {
			args, err := b.buildArgs(d.argType)
			if err != nil {
				return nil, fmt.Errorf("directive %q: %w", name, err)
			}
			for n, a := range args {
				sd.AddArg(n, a)
			}
		}
		sc.Directives[name] = sd
	}

	if root, ok := b.types[reflect.TypeOf(struct{ query struct{} }{})]; ok {
		sc.Query = root.(*schema.Object)
	}
	if root, ok := b.types[reflect.TypeOf(struct{ mutation struct{} }{})]; ok {
		sc.Mutation = root.(*schema.Object)
	}
	if root, ok := b.types[reflect.TypeOf(struct{ subscription struct{} }{})]; ok {
		sc.Subscription = root.(*schema.Object)
	}
	if sc.Query == nil {
		return nil, fmt.Errorf("schema must define a Query root")
	}

	if s.EnableIntrospection {
		introspection.Install(sc)
	}

	return sc, nil
}

func (b *builder) buildEnumShell(e *enumType) *schema.Enum {
	en := &schema.Enum{Name: e.name, Desc: e.desc, ValueDescs: e.descs, Map: e.values, ReverseMap: make(map[interface{}]string)}
	for k, v := range e.values {
		en.Values = append(en.Values, k)
		en.ReverseMap[v] = k
	}
	sort.Strings(en.Values)
	return en
}

func (b *builder) fillInputObject(t reflect.Type, io *inputObject) error {
	input := b.types[t].(*schema.InputObject)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, skip := argName(f)
		if skip {
			continue
		}
		typ, err := b.getType(f.Type)
		if err != nil {
			return fmt.Errorf("input object %q field %q: %w", io.name, name, err)
		}
		input.AddField(name, &schema.InputField{Type: typ})
	}
	return nil
}

func (b *builder) fillObject(t reflect.Type, o *object) error {
	obj := b.types[t].(*schema.Object)
	obj.ReflectType = t

	var names []string
	for name := range o.fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		f, err := b.buildField(name, o.fields[name], t)
		if err != nil {
			return fmt.Errorf("object %q: %w", o.name, err)
		}
		obj.AddField(name, f)
	}

	for _, ifaceName := range o.interfaces {
		named, ok := b.schema.TypeMap[ifaceName]
		if !ok {
			return fmt.Errorf("object %q implements unknown interface %q", o.name, ifaceName)
		}
		it, ok := named.(*schema.Interface)
		if !ok {
			return fmt.Errorf("object %q declares %q as an interface but it is not one", o.name, ifaceName)
		}
		if obj.Interfaces == nil {
			obj.Interfaces = make(map[string]*schema.Interface)
		}
		obj.Interfaces[ifaceName] = it
		it.PossibleTypes = append(it.PossibleTypes, obj)
	}
	return nil
}

// fillInterface derives an interface's field set from its Go method set,
// matching each method to the identically-named field that every
// implementing object must register; Build fails if any implementor is
// missing one.
func (b *builder) fillInterface(t reflect.Type, it *interfaceType) error {
	iface := b.types[t].(*schema.Interface)
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		name := lowerFirst(m.Name)
		var found *schema.Field
		for _, obj := range iface.PossibleTypes {
			f, ok := obj.Fields[name]
			if !ok {
				return fmt.Errorf("interface %q: object %q implements it but does not register field %q", it.name, obj.Name, name)
			}
			found = f
		}
		if found == nil {
			return fmt.Errorf("interface %q: no object implements it", it.name)
		}
		iface.AddField(name, found)
	}
	if it.resolve != nil {
		fn := reflect.ValueOf(it.resolve)
		schemaRef := b.schema
		iface.ResolveType = func(ctx context.Context, source interface{}) *schema.Object {
			out := fn.Call([]reflect.Value{reflect.ValueOf(ctx), reflect.ValueOf(source)})
			name, _ := out[0].Interface().(string)
			if named, ok := schemaRef.TypeMap[name]; ok {
				if obj, ok := named.(*schema.Object); ok {
					return obj
				}
			}
			return nil
		}
	}
	return nil
}

func (b *builder) fillUnion(t reflect.Type, u *unionType) error {
	union := b.types[t].(*schema.Union)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		ft := f.Type
		if ft.Kind() != reflect.Ptr || ft.Elem().Kind() != reflect.Struct {
			return fmt.Errorf("union %q: member %q must be a pointer to an object struct", u.name, f.Name)
		}
		named, ok := b.types[ft.Elem()]
		if !ok {
			return fmt.Errorf("union %q: member %q is not a registered object", u.name, f.Name)
		}
		obj, ok := named.(*schema.Object)
		if !ok {
			return fmt.Errorf("union %q: member %q does not resolve to an object type", u.name, f.Name)
		}
		union.AddType(obj)
	}
	return nil
}

// buildField binds fd's resolver function via reflection. Accepted
// signatures are (), (S), (A), (ctx, S), (ctx, A), (S, A), or (ctx, S, A),
// each returning (R) or (R, error), where S is the object's Go type objType
// (a parameter is taken as S only when its type, pointers stripped, is
// objType), A is a plain argument struct, and R is anything getType can map
// into the schema. The () and (A) forms are how root Query/Mutation fields,
// which ignore the synthetic root Go value, are usually written.
func (b *builder) buildField(name string, fd *fieldDef, objType reflect.Type) (*schema.Field, error) {
	fn := fd.fn
	fnT := fn.Type()

	hasCtx := fnT.NumIn() > 0 && fnT.In(0) == contextType
	idx := 0
	if hasCtx {
		idx = 1
	}
	hasSource := fnT.NumIn() > idx && underlying(fnT.In(idx)) == objType
	var sourceType reflect.Type
	if hasSource {
		sourceType = fnT.In(idx)
		idx++
	}
	hasArgs := fnT.NumIn() > idx
	var argsType reflect.Type
	if hasArgs {
		argsType = fnT.In(idx)
	}

	if fnT.NumOut() == 0 || fnT.NumOut() > 2 {
		return nil, fmt.Errorf("field %q: resolver must return (value) or (value, error)", name)
	}
	hasErr := fnT.NumOut() == 2
	if hasErr && fnT.Out(1) != errType {
		return nil, fmt.Errorf("field %q: resolver's second return value must be error", name)
	}

	retType, err := b.getType(fnT.Out(0))
	if err != nil {
		return nil, fmt.Errorf("field %q return type: %w", name, err)
	}

	field := &schema.Field{Type: retType, Desc: fd.desc, Deprecated: fd.deprecated}
	if hasArgs {
		args, err := b.buildArgs(argsType)
		if err != nil {
			return nil, fmt.Errorf("field %q arguments: %w", name, err)
		}
		for n, a := range args {
			field.AddArg(n, a)
		}
	}

	field.Resolve = func(ctx context.Context, source interface{}, rawArgs map[string]interface{}) (interface{}, error) {
		in := make([]reflect.Value, 0, fnT.NumIn())
		if hasCtx {
			in = append(in, reflect.ValueOf(ctx))
		}
		if hasSource {
			in = append(in, coerceSource(source, sourceType))
		}
		if hasArgs {
			argVal, err := decodeArgs(rawArgs, argsType)
			if err != nil {
				return nil, err
			}
			in = append(in, argVal)
		}
		out := fn.Call(in)
		if hasErr {
			if e, _ := out[len(out)-1].Interface().(error); e != nil {
				return nil, e
			}
		}
		return out[0].Interface(), nil
	}
	return field, nil
}

func (b *builder) buildArgs(t reflect.Type) (map[string]*schema.Argument, error) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("argument type %s must be a struct", t)
	}
	args := make(map[string]*schema.Argument)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, skip := argName(f)
		if skip {
			continue
		}
		typ, err := b.getType(f.Type)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", name, err)
		}
		args[name] = &schema.Argument{Type: typ}
	}
	return args, nil
}

// getType maps a Go reflect.Type to a schema.Type: a non-pointer Go type
// maps to a NonNull wrapper (fields and arguments are required by
// default unless declared through a pointer), a pointer drops the
// wrapper, and a slice maps to a List of its element's mapping.
func (b *builder) getType(t reflect.Type) (schema.Type, error) {
	nonNull := t.Kind() != reflect.Ptr
	base := t
	for base.Kind() == reflect.Ptr {
		base = base.Elem()
	}

	var inner schema.Type
	if base.Kind() == reflect.Slice {
		elem, err := b.getType(base.Elem())
		if err != nil {
			return nil, err
		}
		inner = &schema.List{Type: elem}
	} else {
		named, ok := b.types[base]
		if !ok {
			return nil, fmt.Errorf("type %s is not registered with the schema", base)
		}
		inner = named.(schema.Type)
	}

	if nonNull {
		return &schema.NonNull{Type: inner}, nil
	}
	return inner, nil
}

func argName(f reflect.StructField) (name string, skip bool) {
	if !isExported(f.Name) {
		return "", true
	}
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", true
	}
	if tag != "" {
		if i := indexByte(tag, ','); i >= 0 {
			tag = tag[:i]
		}
		if tag != "" {
			return tag, false
		}
	}
	return lowerFirst(f.Name), false
}

func indexByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}

func isExported(name string) bool {
	r := []rune(name)
	return len(r) > 0 && unicode.IsUpper(r[0])
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// coerceSource adapts the executor's source value (the parent object's
// resolved Go value) to the exact type a field resolver declared,
// bridging the pointer/value mismatches that commonly arise when a list
// element is resolved by value but the object was registered by pointer,
// or vice versa.
func coerceSource(source interface{}, want reflect.Type) reflect.Value {
	if source == nil {
		return reflect.Zero(want)
	}
	v := reflect.ValueOf(source)
	if v.Type() == want {
		return v
	}
	if v.Type().Kind() == reflect.Ptr && v.Type().Elem() == want {
		return v.Elem()
	}
	if want.Kind() == reflect.Ptr && v.Type() == want.Elem() {
		ptr := reflect.New(want.Elem())
		ptr.Elem().Set(v)
		return ptr
	}
	if v.Type().ConvertibleTo(want) {
		return v.Convert(want)
	}
	return reflect.Zero(want)
}

// decodeArgs converts the executor's coerced argument map into argsType
// via a JSON round trip: every argument value has already passed through
// literal/variable coercion into plain Go types (map, slice, string,
// number, bool, nil), which is exactly what encoding/json's Unmarshal
// expects on the decode side.
func decodeArgs(args map[string]interface{}, argsType reflect.Type) (reflect.Value, error) {
	isPtr := argsType.Kind() == reflect.Ptr
	elemType := argsType
	if isPtr {
		elemType = argsType.Elem()
	}
	out := reflect.New(elemType)
	data, err := json.Marshal(args)
	if err != nil {
		return reflect.Value{}, err
	}
	if err := json.Unmarshal(data, out.Interface()); err != nil {
		return reflect.Value{}, err
	}
	if isPtr {
		return out, nil
	}
	return out.Elem(), nil
}
