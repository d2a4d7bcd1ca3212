// Package introspection adds the standard __schema and __type
// meta-fields, and every __* meta type they expose, onto a built
// schema.Schema so a running server can answer introspection queries
// about itself.
//
// Resolvers here operate directly on the schema package's own
// Type/Field/Argument/Directive values rather than going through
// schemabuilder: schemabuilder.Schema.Build calls Install, so Install
// cannot depend back on schemabuilder without a cycle.
package introspection

import (
	"context"
	"fmt"
	"sort"

	"github.com/shyptr/gqlrun/schema"
)

// Install registers the __Schema/__Type/__Field/__InputValue/
// __EnumValue/__Directive meta types into s.TypeMap (skipping any a
// caller already registered under those names) and adds the __schema
// and __type fields to s.Query.
func Install(s *schema.Schema) {
	meta := buildMetaTypes()
	for name, t := range meta {
		if _, exists := s.TypeMap[name]; !exists {
			s.TypeMap[name] = t
		}
	}

	schemaField := &schema.Field{
		Type: &schema.NonNull{Type: meta["__Schema"]},
		Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			return s, nil
		},
	}
	typeField := &schema.Field{
		Type: meta["__Type"],
		Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			name, _ := args["name"].(string)
			if t, ok := s.LookupType(name); ok {
				return t, nil
			}
			return nil, nil
		},
	}
	typeField.AddArg("name", &schema.Argument{Type: &schema.NonNull{Type: &schema.Scalar{Name: "String"}}})

	s.Query.AddField("__schema", schemaField)
	s.Query.AddField("__type", typeField)
}

// namedField, namedArg, namedInputField and namedEnumValue pair a
// schema value that has no name of its own (Field, Argument,
// InputField) with the map key it was registered under, since __Field/
// __InputValue/__EnumValue all expose a "name" the underlying type
// doesn't carry.
type namedField struct {
	name  string
	field *schema.Field
}
type namedArg struct {
	name string
	arg  *schema.Argument
}
type namedInputField struct {
	name  string
	field *schema.InputField
}
type namedEnumValue struct {
	name string
	desc string
}

func buildMetaTypes() map[string]schema.NamedType {
	strT := &schema.Scalar{Name: "String"}
	boolT := &schema.Scalar{Name: "Boolean"}
	nnString := &schema.NonNull{Type: strT}
	nnBool := &schema.NonNull{Type: boolT}

	typeKind := &schema.Enum{Name: "__TypeKind", Map: map[string]interface{}{}}
	for _, v := range []string{"SCALAR", "OBJECT", "INTERFACE", "UNION", "ENUM", "INPUT_OBJECT", "LIST", "NON_NULL"} {
		typeKind.Values = append(typeKind.Values, v)
		typeKind.Map[v] = v
	}

	dirLoc := &schema.Enum{Name: "__DirectiveLocation", Map: map[string]interface{}{}}
	for _, v := range []string{
		"QUERY", "MUTATION", "SUBSCRIPTION", "FIELD", "FRAGMENT_DEFINITION",
		"FRAGMENT_SPREAD", "INLINE_FRAGMENT", "SCHEMA", "SCALAR", "OBJECT",
		"FIELD_DEFINITION", "ARGUMENT_DEFINITION", "INTERFACE", "UNION",
		"ENUM", "ENUM_VALUE", "INPUT_OBJECT", "INPUT_FIELD_DEFINITION",
	} {
		dirLoc.Values = append(dirLoc.Values, v)
		dirLoc.Map[v] = v
	}

	typeObj := &schema.Object{Name: "__Type"}
	fieldObj := &schema.Object{Name: "__Field"}
	inputValueObj := &schema.Object{Name: "__InputValue"}
	enumValueObj := &schema.Object{Name: "__EnumValue"}
	directiveObj := &schema.Object{Name: "__Directive"}
	schemaObj := &schema.Object{Name: "__Schema"}

	// __Type
	typeObj.AddField("kind", &schema.Field{Type: &schema.NonNull{Type: typeKind}, Resolve: resolveKind})
	typeObj.AddField("name", &schema.Field{Type: strT, Resolve: resolveTypeName})
	typeObj.AddField("description", &schema.Field{Type: strT, Resolve: resolveTypeDescription})

	fieldsResolve := func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		includeDeprecated, _ := args["includeDeprecated"].(bool)
		var fields map[string]*schema.Field
		var order []string
		switch t := source.(type) {
		case *schema.Object:
			fields, order = t.Fields, t.FieldOrder()
		case *schema.Interface:
			fields, order = t.Fields, t.FieldOrder()
		default:
			return nil, nil
		}
		out := make([]namedField, 0, len(order))
		for _, name := range order {
			f := fields[name]
			if !includeDeprecated && f.Deprecated != "" {
				continue
			}
			out = append(out, namedField{name: name, field: f})
		}
		return out, nil
	}
	fieldsField := &schema.Field{Type: &schema.List{Type: &schema.NonNull{Type: fieldObj}}, Resolve: fieldsResolve}
	fieldsField.AddArg("includeDeprecated", &schema.Argument{Type: boolT, DefaultValue: false})
	typeObj.AddField("fields", fieldsField)

	typeObj.AddField("interfaces", &schema.Field{
		Type: &schema.List{Type: &schema.NonNull{Type: typeObj}},
		Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			obj, ok := source.(*schema.Object)
			if !ok {
				return nil, nil
			}
			var names []string
			for n := range obj.Interfaces {
				names = append(names, n)
			}
			sort.Strings(names)
			out := make([]*schema.Interface, 0, len(names))
			for _, n := range names {
				out = append(out, obj.Interfaces[n])
			}
			return out, nil
		},
	})

	typeObj.AddField("possibleTypes", &schema.Field{
		Type: &schema.List{Type: &schema.NonNull{Type: typeObj}},
		Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			switch t := source.(type) {
			case *schema.Union:
				out := make([]*schema.Object, 0, len(t.TypeOrder()))
				for _, n := range t.TypeOrder() {
					out = append(out, t.Types[n])
				}
				return out, nil
			case *schema.Interface:
				return t.PossibleTypes, nil
			}
			return nil, nil
		},
	})

	enumValuesResolve := func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		e, ok := source.(*schema.Enum)
		if !ok {
			return nil, nil
		}
		out := make([]namedEnumValue, 0, len(e.Values))
		for _, v := range e.Values {
			out = append(out, namedEnumValue{name: v, desc: e.ValueDescs[v]})
		}
		return out, nil
	}
	enumValuesField := &schema.Field{Type: &schema.List{Type: &schema.NonNull{Type: enumValueObj}}, Resolve: enumValuesResolve}
	enumValuesField.AddArg("includeDeprecated", &schema.Argument{Type: boolT, DefaultValue: false})
	typeObj.AddField("enumValues", enumValuesField)

	typeObj.AddField("inputFields", &schema.Field{
		Type: &schema.List{Type: &schema.NonNull{Type: inputValueObj}},
		Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			io, ok := source.(*schema.InputObject)
			if !ok {
				return nil, nil
			}
			out := make([]namedInputField, 0, len(io.FieldOrder()))
			for _, name := range io.FieldOrder() {
				out = append(out, namedInputField{name: name, field: io.Fields[name]})
			}
			return out, nil
		},
	})

	typeObj.AddField("ofType", &schema.Field{
		Type: typeObj,
		Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			switch t := source.(type) {
			case *schema.List:
				return t.Type, nil
			case *schema.NonNull:
				return t.Type, nil
			}
			return nil, nil
		},
	})

	// __Field
	fieldObj.AddField("name", &schema.Field{Type: nnString, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		return source.(namedField).name, nil
	}})
	fieldObj.AddField("description", &schema.Field{Type: strT, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		return source.(namedField).field.Desc, nil
	}})
	argsField := &schema.Field{
		Type: &schema.NonNull{Type: &schema.List{Type: &schema.NonNull{Type: inputValueObj}}},
		Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			f := source.(namedField).field
			out := make([]namedArg, 0, len(f.ArgOrder()))
			for _, n := range f.ArgOrder() {
				out = append(out, namedArg{name: n, arg: f.Args[n]})
			}
			return out, nil
		},
	}
	fieldObj.AddField("args", argsField)
	fieldObj.AddField("type", &schema.Field{Type: &schema.NonNull{Type: typeObj}, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		return source.(namedField).field.Type, nil
	}})
	fieldObj.AddField("isDeprecated", &schema.Field{Type: nnBool, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		return source.(namedField).field.Deprecated != "", nil
	}})
	fieldObj.AddField("deprecationReason", &schema.Field{Type: strT, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		return source.(namedField).field.Deprecated, nil
	}})

	// __InputValue
	inputValueObj.AddField("name", &schema.Field{Type: nnString, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		switch s := source.(type) {
		case namedArg:
			return s.name, nil
		case namedInputField:
			return s.name, nil
		}
		return "", nil
	}})
	inputValueObj.AddField("description", &schema.Field{Type: strT, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		switch s := source.(type) {
		case namedArg:
			return s.arg.Desc, nil
		case namedInputField:
			return s.field.Desc, nil
		}
		return "", nil
	}})
	inputValueObj.AddField("type", &schema.Field{Type: &schema.NonNull{Type: typeObj}, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		switch s := source.(type) {
		case namedArg:
			return s.arg.Type, nil
		case namedInputField:
			return s.field.Type, nil
		}
		return nil, nil
	}})
	inputValueObj.AddField("defaultValue", &schema.Field{Type: strT, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		var dv interface{}
		switch s := source.(type) {
		case namedArg:
			dv = s.arg.DefaultValue
		case namedInputField:
			dv = s.field.DefaultValue
		}
		if dv == nil {
			return nil, nil
		}
		return fmt.Sprintf("%v", dv), nil
	}})

	// __EnumValue
	enumValueObj.AddField("name", &schema.Field{Type: nnString, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		return source.(namedEnumValue).name, nil
	}})
	enumValueObj.AddField("description", &schema.Field{Type: strT, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		return source.(namedEnumValue).desc, nil
	}})
	enumValueObj.AddField("isDeprecated", &schema.Field{Type: nnBool, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		return false, nil
	}})
	enumValueObj.AddField("deprecationReason", &schema.Field{Type: strT, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		return "", nil
	}})

	// __Directive
	directiveObj.AddField("name", &schema.Field{Type: nnString, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		return source.(*schema.Directive).Name, nil
	}})
	directiveObj.AddField("description", &schema.Field{Type: strT, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		return source.(*schema.Directive).Desc, nil
	}})
	directiveObj.AddField("locations", &schema.Field{
		Type: &schema.NonNull{Type: &schema.List{Type: &schema.NonNull{Type: dirLoc}}},
		Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			return source.(*schema.Directive).Locations, nil
		},
	})
	directiveObj.AddField("args", &schema.Field{
		Type: &schema.NonNull{Type: &schema.List{Type: &schema.NonNull{Type: inputValueObj}}},
		Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			d := source.(*schema.Directive)
			out := make([]namedArg, 0, len(d.ArgOrder()))
			for _, n := range d.ArgOrder() {
				out = append(out, namedArg{name: n, arg: d.Args[n]})
			}
			return out, nil
		},
	})
	directiveObj.AddField("isDeprecated", &schema.Field{Type: nnBool, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		return false, nil
	}})

	// __Schema
	schemaObj.AddField("description", &schema.Field{Type: strT, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		return "", nil
	}})
	schemaObj.AddField("types", &schema.Field{
		Type: &schema.NonNull{Type: &schema.List{Type: &schema.NonNull{Type: typeObj}}},
		Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			s := source.(*schema.Schema)
			var names []string
			for n := range s.TypeMap {
				names = append(names, n)
			}
			sort.Strings(names)
			out := make([]schema.NamedType, 0, len(names))
			for _, n := range names {
				out = append(out, s.TypeMap[n])
			}
			return out, nil
		},
	})
	schemaObj.AddField("queryType", &schema.Field{Type: &schema.NonNull{Type: typeObj}, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		return source.(*schema.Schema).Query, nil
	}})
	schemaObj.AddField("mutationType", &schema.Field{Type: typeObj, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		s := source.(*schema.Schema)
		if s.Mutation == nil {
			return nil, nil
		}
		return s.Mutation, nil
	}})
	schemaObj.AddField("subscriptionType", &schema.Field{Type: typeObj, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		s := source.(*schema.Schema)
		if s.Subscription == nil {
			return nil, nil
		}
		return s.Subscription, nil
	}})
	schemaObj.AddField("directives", &schema.Field{
		Type: &schema.NonNull{Type: &schema.List{Type: &schema.NonNull{Type: directiveObj}}},
		Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			s := source.(*schema.Schema)
			var names []string
			for n := range s.Directives {
				names = append(names, n)
			}
			sort.Strings(names)
			out := make([]*schema.Directive, 0, len(names))
			for _, n := range names {
				out = append(out, s.Directives[n])
			}
			return out, nil
		},
	})

	return map[string]schema.NamedType{
		"__TypeKind":          typeKind,
		"__DirectiveLocation": dirLoc,
		"__Type":              typeObj,
		"__Field":             fieldObj,
		"__InputValue":        inputValueObj,
		"__EnumValue":         enumValueObj,
		"__Directive":         directiveObj,
		"__Schema":            schemaObj,
	}
}

func resolveKind(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
	switch source.(type) {
	case *schema.Scalar:
		return "SCALAR", nil
	case *schema.Object:
		return "OBJECT", nil
	case *schema.Interface:
		return "INTERFACE", nil
	case *schema.Union:
		return "UNION", nil
	case *schema.Enum:
		return "ENUM", nil
	case *schema.InputObject:
		return "INPUT_OBJECT", nil
	case *schema.List:
		return "LIST", nil
	case *schema.NonNull:
		return "NON_NULL", nil
	}
	return nil, fmt.Errorf("introspection: unrecognised type kind %T", source)
}

func resolveTypeName(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
	if named, ok := source.(schema.NamedType); ok {
		return named.TypeName(), nil
	}
	return nil, nil
}

func resolveTypeDescription(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
	if named, ok := source.(schema.NamedType); ok {
		return named.Description(), nil
	}
	return nil, nil
}
