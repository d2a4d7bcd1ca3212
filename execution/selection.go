package execution

import (
	"fmt"
	"strconv"

	"github.com/shyptr/gqlrun/ast"
	"github.com/shyptr/gqlrun/schema"
)

// mergedField groups every *ast.Field in a selection set that share one
// response key, following the CollectFields algorithm: fields spread in
// from different fragments but keyed by the same alias contribute their
// sub-selections to a single merged entry in the response object.
type mergedField struct {
	key    string
	fields []*ast.Field
}

// collectFields flattens sels (which may itself contain fragment spreads
// and inline fragments) into response-key-ordered merged fields, applying
// @skip/@include and fragment type-condition narrowing against objName
// along the way. visitedFragments prevents infinite recursion through a
// fragment that spreads itself.
func (ec *execContext) collectFields(sels []ast.Selection, objName string, visitedFragments map[string]bool) []*mergedField {
	var out []*mergedField
	index := make(map[string]int)
	ec.collectFieldsInto(sels, objName, visitedFragments, &out, index)
	return out
}

func (ec *execContext) collectFieldsInto(sels []ast.Selection, objName string, visitedFragments map[string]bool, out *[]*mergedField, index map[string]int) {
	for _, sel := range sels {
		switch sel := sel.(type) {
		case *ast.Field:
			if !ec.shouldInclude(sel.Directives) {
				continue
			}
			key := sel.ResponseName()
			if i, ok := index[key]; ok {
				(*out)[i].fields = append((*out)[i].fields, sel)
			} else {
				index[key] = len(*out)
				*out = append(*out, &mergedField{key: key, fields: []*ast.Field{sel}})
			}
		case *ast.InlineFragment:
			if !ec.shouldInclude(sel.Directives) {
				continue
			}
			if sel.TypeCondition != nil && !ec.typeApplies(sel.TypeCondition.Name.Value, objName) {
				continue
			}
			if sel.SelectionSet != nil {
				ec.collectFieldsInto(sel.SelectionSet.Selections, objName, visitedFragments, out, index)
			}
		case *ast.FragmentSpread:
			if !ec.shouldInclude(sel.Directives) {
				continue
			}
			if visitedFragments[sel.Name.Value] {
				continue
			}
			frag, ok := ec.fragments[sel.Name.Value]
			if !ok {
				continue
			}
			if frag.TypeCondition != nil && !ec.typeApplies(frag.TypeCondition.Name.Value, objName) {
				continue
			}
			visitedFragments[sel.Name.Value] = true
			ec.collectFieldsInto(frag.SelectionSet.Selections, objName, visitedFragments, out, index)
			delete(visitedFragments, sel.Name.Value)
		}
	}
}

// typeApplies reports whether an object named objName satisfies a
// fragment's type condition condName: a direct name match, or membership
// in an interface's PossibleTypes / a union's Types.
func (ec *execContext) typeApplies(condName, objName string) bool {
	if condName == objName {
		return true
	}
	t, ok := ec.schema.LookupType(condName)
	if !ok {
		return false
	}
	switch t := t.(type) {
	case *schema.Interface:
		for _, p := range t.PossibleTypes {
			if p.Name == objName {
				return true
			}
		}
	case *schema.Union:
		_, ok := t.Types[objName]
		return ok
	}
	return false
}

// shouldInclude evaluates the @skip and @include directives; @skip takes
// precedence when both are present on the same selection.
func (ec *execContext) shouldInclude(directives []*ast.Directive) bool {
	include := true
	for _, d := range directives {
		switch d.Name.Value {
		case "skip":
			if v, err := ec.directiveIfArg(d); err == nil && v {
				include = false
			}
		case "include":
			if v, err := ec.directiveIfArg(d); err == nil && !v {
				include = false
			}
		}
	}
	return include
}

func (ec *execContext) directiveIfArg(d *ast.Directive) (bool, error) {
	for _, a := range d.Args {
		if a.Name.Value == "if" {
			v, err := ec.coerceValue(a.Value, nil)
			if err != nil {
				return false, err
			}
			b, ok := v.(bool)
			if !ok {
				return false, fmt.Errorf("expected Boolean for @%s(if:), found %v", d.Name.Value, v)
			}
			return b, nil
		}
	}
	return false, fmt.Errorf("missing required argument \"if\" for @%s", d.Name.Value)
}

// coerceArgs resolves a field or directive's argument list against its
// declared argument types, filling in any declared defaults for
// arguments the selection omitted.
func (ec *execContext) coerceArgs(args []*ast.Argument, decls map[string]*schema.Argument) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(decls))
	for name, decl := range decls {
		if decl.DefaultValue != nil {
			out[name] = decl.DefaultValue
		}
	}
	for _, a := range args {
		var t schema.Type
		if decl, ok := decls[a.Name.Value]; ok {
			t = decl.Type
		}
		v, err := ec.coerceValue(a.Value, t)
		if err != nil {
			return nil, err
		}
		out[a.Name.Value] = v
	}
	return out, nil
}

// coerceValue turns a literal/variable-reference AST value into the raw
// Go value a resolver expects, substituting variable values from vars
// and mapping enum symbols to their internal representation via t.
func (ec *execContext) coerceValue(v ast.Value, t schema.Type) (interface{}, error) {
	if variable, ok := v.(*ast.Variable); ok {
		return ec.vars[variable.Name.Value], nil
	}
	if _, ok := v.(*ast.NullValue); ok {
		return nil, nil
	}
	if nn, ok := t.(*schema.NonNull); ok {
		t = nn.Type
	}

	switch v := v.(type) {
	case *ast.IntValue:
		if n, err := strconv.ParseInt(v.Value, 10, 64); err == nil {
			return int(n), nil
		}
		f, err := strconv.ParseFloat(v.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid int literal %q", v.Value)
		}
		return f, nil
	case *ast.FloatValue:
		f, err := strconv.ParseFloat(v.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float literal %q", v.Value)
		}
		return f, nil
	case *ast.StringValue:
		return v.Value, nil
	case *ast.BooleanValue:
		return v.Value, nil
	case *ast.EnumValue:
		if enumT, ok := t.(*schema.Enum); ok {
			if internal, ok := enumT.Map[v.Value]; ok {
				return internal, nil
			}
		}
		return v.Value, nil
	case *ast.ListValue:
		var elemT schema.Type
		if lt, ok := t.(*schema.List); ok {
			elemT = lt.Type
		}
		out := make([]interface{}, len(v.Values))
		for i, e := range v.Values {
			ev, err := ec.coerceValue(e, elemT)
			if err != nil {
				return nil, err
			}
			out[i] = ev
		}
		return out, nil
	case *ast.ObjectValue:
		inputT, _ := t.(*schema.InputObject)
		out := make(map[string]interface{}, len(v.Fields))
		for _, f := range v.Fields {
			var fieldT schema.Type
			if inputT != nil {
				if fd, ok := inputT.Fields[f.Name.Value]; ok {
					fieldT = fd.Type
				}
			}
			fv, err := ec.coerceValue(f.Value, fieldT)
			if err != nil {
				return nil, err
			}
			out[f.Name.Value] = fv
		}
		if inputT != nil {
			for name, fd := range inputT.Fields {
				if _, ok := out[name]; !ok && fd.DefaultValue != nil {
					out[name] = fd.DefaultValue
				}
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported literal kind %s", v.GetKind())
	}
}
