// Package execution walks a validated operation against a built Schema,
// resolving each selected field to a value.Value tree: scalars and enums
// are serialised through their schema definitions, objects/interfaces/
// unions recurse through their selection sets, lists map element-wise,
// and a field declared NonNull that resolves to null propagates that
// null up to the nearest nullable ancestor, recording one error at the
// point of violation rather than aborting the whole response.
package execution

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"sync"

	"github.com/shyptr/gqlrun/ast"
	"github.com/shyptr/gqlrun/errors"
	"github.com/shyptr/gqlrun/schema"
	"github.com/shyptr/gqlrun/value"
)

// Policy governs whether sibling fields within one selection set are
// resolved concurrently. Mutation root fields always run Sequential
// regardless of the requested Policy, preserving the order guarantee
// GraphQL mutations require between top-level fields.
type Policy int

const (
	Sequential Policy = iota
	Parallel
)

// Params bundles everything one operation execution needs.
type Params struct {
	Schema        *schema.Schema
	Document      *ast.Document
	OperationName string
	Variables     map[string]interface{}
	// Root is the Go value passed as source to every root-level field
	// resolver (e.g. a struct bundling query/mutation dependencies).
	Root   interface{}
	Policy Policy
}

type execContext struct {
	context.Context
	schema    *schema.Schema
	vars      map[string]interface{}
	fragments map[string]*ast.FragmentDefinition
	policy    Policy

	mu   sync.Mutex
	errs errors.MultiError
}

func (ec *execContext) addErr(path []interface{}, loc errors.Location, err error) {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	ec.errs = append(ec.errs, &errors.GraphQLError{
		Message:       err.Error(),
		ResolverError: err,
		Locations:     []errors.Location{loc},
		Path:          path,
	})
}

// Execute resolves one operation from doc and returns the response value
// tree plus every error collected along the way. The returned value may
// be partial (fields beside a failed one are still present) even when
// errs is non-empty.
func Execute(ctx context.Context, p Params) (value.Value, errors.MultiError) {
	op, fragments, gqlErr := selectOperation(p.Document, p.OperationName)
	if gqlErr != nil {
		return value.Null, errors.MultiError{gqlErr}
	}

	root, gqlErr := rootFor(p.Schema, op.Type)
	if gqlErr != nil {
		return value.Null, errors.MultiError{gqlErr}
	}

	vars, gqlErr := coerceVariables(p.Schema, op.Vars, p.Variables)
	if gqlErr != nil {
		return value.Null, errors.MultiError{gqlErr}
	}

	policy := p.Policy
	if op.Type == ast.Mutation {
		policy = Sequential
	}

	ec := &execContext{
		Context:   ctx,
		schema:    p.Schema,
		vars:      vars,
		fragments: fragments,
		policy:    policy,
	}

	var sels []ast.Selection
	if op.SelectionSet != nil {
		sels = op.SelectionSet.Selections
	}
	result, _ := ec.completeObject(root, p.Root, nil, sels)
	return result, ec.errs
}

func selectOperation(doc *ast.Document, name string) (*ast.OperationDefinition, map[string]*ast.FragmentDefinition, *errors.GraphQLError) {
	var ops []*ast.OperationDefinition
	fragments := make(map[string]*ast.FragmentDefinition)
	for _, def := range doc.Definitions {
		switch d := def.(type) {
		case *ast.OperationDefinition:
			ops = append(ops, d)
		case *ast.FragmentDefinition:
			fragments[d.Name.Value] = d
		}
	}
	if len(ops) == 0 {
		return nil, nil, errors.New("must provide an operation")
	}
	if name == "" {
		if len(ops) > 1 {
			return nil, nil, errors.New("must provide operation name if query contains multiple operations")
		}
		return ops[0], fragments, nil
	}
	for _, op := range ops {
		if op.Name != nil && op.Name.Value == name {
			return op, fragments, nil
		}
	}
	return nil, nil, errors.New("unknown operation %q", name)
}

func rootFor(s *schema.Schema, t ast.OperationType) (*schema.Object, *errors.GraphQLError) {
	switch t {
	case ast.Query:
		if s.Query == nil {
			return nil, errors.New("schema does not define a query root type")
		}
		return s.Query, nil
	case ast.Mutation:
		if s.Mutation == nil {
			return nil, errors.New("schema does not define a mutation root type")
		}
		return s.Mutation, nil
	case ast.Subscription:
		if s.Subscription == nil {
			return nil, errors.New("schema does not define a subscription root type")
		}
		return s.Subscription, nil
	default:
		return nil, errors.New("unknown operation type %q", t)
	}
}

// resolveType resolves a variable or argument's declared type reference
// against the schema's registered named types, applying List/NonNull
// wrapping as declared.
func resolveType(s *schema.Schema, t ast.Type) schema.Type {
	switch t := t.(type) {
	case *ast.ListType:
		inner := resolveType(s, t.Type)
		if inner == nil {
			return nil
		}
		return &schema.List{Type: inner}
	case *ast.NonNullType:
		inner := resolveType(s, t.Type)
		if inner == nil {
			return nil
		}
		return &schema.NonNull{Type: inner}
	case *ast.NamedType:
		named, ok := s.LookupType(t.Name.Value)
		if !ok {
			return nil
		}
		return named.(schema.Type)
	default:
		return nil
	}
}

func coerceVariables(s *schema.Schema, defs []*ast.VariableDefinition, raw map[string]interface{}) (map[string]interface{}, *errors.GraphQLError) {
	if raw == nil {
		raw = map[string]interface{}{}
	}
	out := make(map[string]interface{}, len(defs))
	zero := &execContext{vars: map[string]interface{}{}}
	for _, d := range defs {
		name := d.Var.Name.Value
		if v, ok := raw[name]; ok && v != nil {
			out[name] = v
			continue
		}
		declared := resolveType(s, d.Type)
		if d.DefaultValue != nil {
			v, err := zero.coerceValue(d.DefaultValue, declared)
			if err != nil {
				return nil, errors.New("Variable %q has invalid default value: %s", "$"+name, err)
			}
			out[name] = v
			continue
		}
		if _, nonNull := declared.(*schema.NonNull); nonNull {
			return nil, errors.New("Variable %q of required type %q was not provided.", "$"+name, d.Type.String())
		}
		out[name] = nil
	}
	return out, nil
}

// completeValue coerces a raw resolver result into a value.Value matching
// t, recursing into child selections for composite types. The returned
// bool reports that a non-null violation at or below this position has
// nulled it; completeObject and completeList absorb it at the first
// nullable field or list item, and pass it further up otherwise.
func (ec *execContext) completeValue(t schema.Type, raw interface{}, path []interface{}, loc errors.Location, sel []ast.Selection) (value.Value, bool) {
	if nn, ok := t.(*schema.NonNull); ok {
		v, propagate := ec.completeValue(nn.Type, raw, path, loc, sel)
		if propagate {
			return value.Null, true
		}
		if v.IsNull() {
			ec.addErr(path, loc, fmt.Errorf("cannot return null for non-nullable field"))
			return value.Null, true
		}
		return v, false
	}

	if isNilValue(raw) {
		return value.Null, false
	}

	switch t := t.(type) {
	case *schema.Scalar:
		return ec.completeScalar(t, raw, path, loc)
	case *schema.Enum:
		return ec.completeEnum(t, raw, path, loc)
	case *schema.List:
		return ec.completeList(t, raw, path, loc, sel)
	case *schema.Object:
		return ec.completeObject(t, raw, path, sel)
	case *schema.Interface:
		obj := ec.resolveInterfaceType(t, raw)
		if obj == nil {
			ec.addErr(path, loc, fmt.Errorf("could not resolve a concrete type for interface %q", t.Name))
			return value.Null, false
		}
		return ec.completeObject(obj, raw, path, sel)
	case *schema.Union:
		if rv := reflect.Indirect(reflect.ValueOf(raw)); t.ResolveType == nil && rv.Kind() == reflect.Struct && ec.resolveUnionType(t, raw) == nil {
			for i := 0; i < rv.NumField(); i++ {
				if f := rv.Field(i); f.Kind() == reflect.Ptr && !f.IsNil() && f.CanInterface() {
					raw = f.Interface()
					break
				}
			}
		}
		obj := ec.resolveUnionType(t, raw)
		if obj == nil {
			ec.addErr(path, loc, fmt.Errorf("could not resolve a concrete type for union %q", t.Name))
			return value.Null, false
		}
		return ec.completeObject(obj, raw, path, sel)
	default:
		ec.addErr(path, loc, fmt.Errorf("unsupported type %T", t))
		return value.Null, false
	}
}

func (ec *execContext) completeScalar(t *schema.Scalar, raw interface{}, path []interface{}, loc errors.Location) (value.Value, bool) {
	if t.Serialize != nil {
		serialized, err := t.Serialize(raw)
		if err != nil {
			ec.addErr(path, loc, err)
			return value.Null, false
		}
		return toValue(serialized), false
	}
	return toValue(raw), false
}

func (ec *execContext) completeEnum(t *schema.Enum, raw interface{}, path []interface{}, loc errors.Location) (value.Value, bool) {
	if sym, ok := t.ReverseMap[raw]; ok {
		return value.NewEnum(sym), false
	}
	ec.addErr(path, loc, fmt.Errorf("%v is not a valid value for enum %q", raw, t.Name))
	return value.Null, false
}

func (ec *execContext) completeList(t *schema.List, raw interface{}, path []interface{}, loc errors.Location, sel []ast.Selection) (value.Value, bool) {
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		ec.addErr(path, loc, fmt.Errorf("resolver returned %T for a list field", raw))
		return value.Null, false
	}
	items := make([]value.Value, rv.Len())
	propagate := false
	for i := 0; i < rv.Len(); i++ {
		itemPath := append(append([]interface{}{}, path...), i)
		v, p := ec.completeValue(t.Type, rv.Index(i).Interface(), itemPath, loc, sel)
		if p && !schema.IsNonNull(t.Type) {
			v, p = value.Null, false
		}
		if p {
			propagate = true
		}
		items[i] = v
	}
	if propagate {
		return value.Null, true
	}
	return value.NewList(items...), false
}

// completeObject resolves every merged field of obj's selection set
// against source, in parallel when the execution Policy allows it.
func (ec *execContext) completeObject(obj *schema.Object, source interface{}, path []interface{}, sel []ast.Selection) (value.Value, bool) {
	merged := ec.collectFields(sel, obj.Name, map[string]bool{})
	result := value.NewMap()
	propagate := false

	type resolved struct {
		key string
		v   value.Value
		p   bool
	}
	resolveOne := func(mf *mergedField) resolved {
		fieldPath := append(append([]interface{}{}, path...), mf.key)
		first := mf.fields[0]

		if first.Name.Value == "__typename" {
			return resolved{key: mf.key, v: value.NewString(obj.Name)}
		}
		f, ok := obj.Fields[first.Name.Value]
		if !ok {
			return resolved{key: mf.key, v: value.Null}
		}
		args, err := ec.coerceArgs(first.Arguments, f.Args)
		if err != nil {
			ec.addErr(fieldPath, first.Loc, err)
			return resolved{key: mf.key, v: value.Null, p: schema.IsNonNull(f.Type)}
		}
		raw, err := ec.safeResolve(f, source, args)
		if err != nil {
			ec.addErr(fieldPath, first.Loc, err)
			return resolved{key: mf.key, v: value.Null, p: schema.IsNonNull(f.Type)}
		}
		v, p := ec.completeValue(f.Type, raw, fieldPath, first.Loc, mergedSelections(mf.fields))
		if p && !schema.IsNonNull(f.Type) {
			v, p = value.Null, false
		}
		return resolved{key: mf.key, v: v, p: p}
	}

	if ec.policy == Parallel && len(merged) > 1 {
		var wg sync.WaitGroup
		outs := make([]resolved, len(merged))
		for i, mf := range merged {
			wg.Add(1)
			go func(i int, mf *mergedField) {
				defer wg.Done()
				outs[i] = resolveOne(mf)
			}(i, mf)
		}
		wg.Wait()
		for _, o := range outs {
			if o.p {
				propagate = true
			}
			result.Set(o.key, o.v)
		}
	} else {
		for _, mf := range merged {
			o := resolveOne(mf)
			if o.p {
				propagate = true
			}
			result.Set(o.key, o.v)
		}
	}

	if propagate {
		return value.Null, true
	}
	return value.NewMapValue(result), false
}

func mergedSelections(fields []*ast.Field) []ast.Selection {
	var out []ast.Selection
	for _, f := range fields {
		if f.SelectionSet != nil {
			out = append(out, f.SelectionSet.Selections...)
		}
	}
	return out
}

func (ec *execContext) resolveInterfaceType(t *schema.Interface, source interface{}) *schema.Object {
	if t.ResolveType != nil {
		return t.ResolveType(ec.Context, source)
	}
	rt := concreteType(source)
	for _, obj := range t.PossibleTypes {
		if concreteReflectType(obj.ReflectType) == rt {
			return obj
		}
	}
	return nil
}

func (ec *execContext) resolveUnionType(t *schema.Union, source interface{}) *schema.Object {
	if t.ResolveType != nil {
		return t.ResolveType(ec.Context, source)
	}
	rt := concreteType(source)
	for _, name := range t.TypeOrder() {
		obj := t.Types[name]
		if concreteReflectType(obj.ReflectType) == rt {
			return obj
		}
	}
	return nil
}

func concreteType(v interface{}) reflect.Type {
	return concreteReflectType(reflect.TypeOf(v))
}

func concreteReflectType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// safeResolve wraps a field's resolver with the same panic-to-error
// conversion every resolver call in this runtime gets, so a single buggy
// field cannot take down the rest of the response.
func (ec *execContext) safeResolve(f *schema.Field, source interface{}, args map[string]interface{}) (result interface{}, err error) {
	if f.Resolve == nil {
		return nil, nil
	}
	defer func() {
		if p := recover(); p != nil {
			const size = 64 << 10
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			err = fmt.Errorf("graphql: panic resolving field: %v\n%s", p, buf)
		}
	}()
	return f.Resolve(ec.Context, source, args)
}

func isNilValue(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

// toValue lifts a Go value returned by a scalar's Serialize function (or
// a raw scalar-typed resolver result) into the wire value tree.
func toValue(raw interface{}) value.Value {
	switch r := raw.(type) {
	case nil:
		return value.Null
	case value.Value:
		return r
	case bool:
		return value.NewBool(r)
	case int:
		return value.NewInt(int32(r))
	case int32:
		return value.NewInt(r)
	case int64:
		return value.NewInt(int32(r))
	case float32:
		return value.NewFloat(float64(r))
	case float64:
		return value.NewFloat(r)
	case string:
		return value.NewString(r)
	case []byte:
		return value.NewID(r)
	default:
		return value.NewString(fmt.Sprintf("%v", r))
	}
}
