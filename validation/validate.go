// Package validation implements the static validation pass run between
// parsing and execution: a non-short-circuiting walk of the AST against a
// built Schema that collects every violation it finds (rather than
// stopping at the first) and tags each with the rule name that produced
// it, mirroring the Validator described by the runtime's component design.
package validation

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/shyptr/gqlrun/ast"
	"github.com/shyptr/gqlrun/errors"
	"github.com/shyptr/gqlrun/kinds"
	"github.com/shyptr/gqlrun/schema"
)

type nameSet map[string]errors.Location

type varSet map[*ast.VariableDefinition]struct{}

type selectionPair struct{ a, b ast.Selection }

type fieldInfo struct {
	sf     *schema.Field
	parent schema.NamedType
}

type context struct {
	schema           *schema.Schema
	doc              *ast.Document
	errs             []*errors.GraphQLError
	usedVars         map[*ast.OperationDefinition]varSet
	fragments        map[string]*ast.FragmentDefinition
	fieldMap         map[*ast.Field]fieldInfo
	overlapValidated map[selectionPair]struct{}
	maxDepth         int
}

type opContext struct {
	*context
	ops []*ast.OperationDefinition
}

func (c *context) addErr(loc errors.Location, rule, format string, a ...interface{}) {
	c.addErrMultiLoc([]errors.Location{loc}, rule, format, a...)
}

func (c *context) addErrMultiLoc(locs []errors.Location, rule, format string, a ...interface{}) {
	c.errs = append(c.errs, &errors.GraphQLError{
		Message:   fmt.Sprintf(format, a...),
		Locations: locs,
		Rule:      rule,
	})
}

// Validate runs every static validation rule against doc and returns the
// full list of violations found; a nil/empty result means doc is safe to
// execute. On success it also sets doc.Validated.
func Validate(s *schema.Schema, doc *ast.Document, maxDepth int) []*errors.GraphQLError {
	ctx := &context{
		schema:           s,
		doc:              doc,
		usedVars:         make(map[*ast.OperationDefinition]varSet),
		fragments:        make(map[string]*ast.FragmentDefinition),
		fieldMap:         make(map[*ast.Field]fieldInfo),
		overlapValidated: make(map[selectionPair]struct{}),
		maxDepth:         maxDepth,
	}

	var operations []*ast.OperationDefinition
	var fragments []*ast.FragmentDefinition
	fragNames := make(nameSet)
	for _, def := range doc.Definitions {
		switch d := def.(type) {
		case *ast.OperationDefinition:
			operations = append(operations, d)
		case *ast.FragmentDefinition:
			validateName(ctx, fragNames, d.Name, "UniqueFragmentNames", "fragment")
			fragments = append(fragments, d)
			ctx.fragments[d.Name.Value] = d
		}
	}

	validateFragmentsUsedAndAcyclic(ctx, fragments, operations)

	opNames := make(nameSet)
	for _, op := range operations {
		ctx.usedVars[op] = make(varSet)
		opc := &opContext{ctx, []*ast.OperationDefinition{op}}

		if op.SelectionSet != nil {
			validateMaxDepth(opc, op.SelectionSet.Selections, 1, map[string]bool{})
		}

		if op.Name != nil && op.Name.Value != "" {
			validateName(ctx, opNames, op.Name, "UniqueOperationNames", "operation")
		}
		if (op.Name == nil || op.Name.Value == "") && len(operations) > 1 {
			ctx.addErr(op.Loc, "LoneAnonymousOperation", "This anonymous operation must be the only defined operation.")
		}

		if op.Type == ast.Subscription && op.SelectionSet != nil && len(op.SelectionSet.Selections) != 1 {
			if op.Name != nil && op.Name.Value != "" {
				ctx.addErr(op.Loc, "SingleFieldSubscriptions", "Subscription %q must select only one top level field.", op.Name.Value)
			} else {
				ctx.addErr(op.Loc, "SingleFieldSubscriptions", "Anonymous Subscription must select only one top level field.")
			}
		}

		validateDirectives(opc, operationDirectiveLoc(op.Type), op.Directives)

		varNames := make(nameSet)
		for _, v := range op.Vars {
			validateName(ctx, varNames, v.Var.Name, "UniqueVariableNames", "variable")

			vTyp := typeFromAST(s, v.Type)
			if vTyp != nil && !isInputType(vTyp) {
				ctx.addErr(v.Loc, "VariablesAreInputTypes", "Variable %q cannot be non-input type %q.", "$"+v.Var.Name.Value, v.Type.String())
			}

			if v.DefaultValue != nil {
				validateLiteral(opc, v.DefaultValue)
				if vTyp != nil {
					if nn, ok := vTyp.(*schema.NonNull); ok {
						ctx.addErr(v.DefaultValue.Location(), "DefaultValuesOfCorrectType",
							"Variable %q of type %q is required and will not use the default value. Perhaps you meant to use type %q.",
							"$"+v.Var.Name.Value, vTyp, nn.Type)
					} else if ok, reason := validateValueType(opc, v.DefaultValue, vTyp); !ok {
						ctx.addErr(v.DefaultValue.Location(), "DefaultValuesOfCorrectType",
							"Variable %q of type %q has invalid default value.\n%s", "$"+v.Var.Name.Value, vTyp, reason)
					}
				}
			}
		}

		var root *schema.Object
		switch op.Type {
		case ast.Query:
			root = s.Query
		case ast.Mutation:
			root = s.Mutation
		case ast.Subscription:
			root = s.Subscription
		}
		if root == nil {
			ctx.addErr(op.Loc, "KnownRootType", "Schema does not define a %s root type.", op.Type)
			continue
		}
		if op.SelectionSet != nil {
			validateSelectionSet(opc, op.SelectionSet.Selections, root)
		}

		for _, v := range op.Vars {
			if _, used := ctx.usedVars[op][v]; !used {
				opName := "anonymous"
				if op.Name != nil && op.Name.Value != "" {
					opName = fmt.Sprintf("%q", op.Name.Value)
				}
				ctx.addErr(v.Loc, "NoUnusedVariables", "Variable %q is never used in operation %s.", "$"+v.Var.Name.Value, opName)
			}
		}
	}

	if len(ctx.errs) == 0 {
		doc.Validated = true
	}
	return ctx.errs
}

func operationDirectiveLoc(t ast.OperationType) string {
	switch t {
	case ast.Mutation:
		return kinds.LocMutation
	case ast.Subscription:
		return kinds.LocSubscription
	default:
		return kinds.LocQuery
	}
}

func validateName(c *context, set nameSet, name *ast.Name, rule, kind string) {
	if loc, ok := set[name.Value]; ok {
		c.addErrMultiLoc([]errors.Location{loc, name.Loc}, rule, "There can be only one %s named %q.", kind, name.Value)
		return
	}
	set[name.Value] = name.Loc
}

// validateFragmentsUsedAndAcyclic implements NoUnusedFragments and
// NoFragmentCycles by walking the spread graph rooted at every operation;
// spreads of unknown fragments are reported by validateSelection
// (KnownFragmentNames).
func validateFragmentsUsedAndAcyclic(c *context, fragments []*ast.FragmentDefinition, operations []*ast.OperationDefinition) {
	used := make(map[string]bool)
	var walk func(sels []ast.Selection, seen map[string]bool, chain []string)
	walk = func(sels []ast.Selection, seen map[string]bool, chain []string) {
		for _, sel := range sels {
			switch s := sel.(type) {
			case *ast.Field:
				if s.SelectionSet != nil {
					walk(s.SelectionSet.Selections, seen, chain)
				}
			case *ast.InlineFragment:
				if s.SelectionSet != nil {
					walk(s.SelectionSet.Selections, seen, chain)
				}
			case *ast.FragmentSpread:
				used[s.Name.Value] = true
				if seen[s.Name.Value] {
					c.addErr(s.Loc, "NoFragmentCycles", "Cannot spread fragment %q within itself via %s.",
						s.Name.Value, strings.Join(append(chain, s.Name.Value), " -> "))
					continue
				}
				frag, ok := c.fragments[s.Name.Value]
				if !ok {
					continue
				}
				seen[s.Name.Value] = true
				walk(frag.SelectionSet.Selections, seen, append(chain, s.Name.Value))
				delete(seen, s.Name.Value)
			}
		}
	}
	for _, op := range operations {
		if op.SelectionSet != nil {
			walk(op.SelectionSet.Selections, map[string]bool{}, nil)
		}
	}
	for _, frag := range fragments {
		if !used[frag.Name.Value] {
			c.addErr(frag.Loc, "NoUnusedFragments", "Fragment %q is never used.", frag.Name.Value)
		}
	}
}

func validateSelectionSet(c *opContext, sels []ast.Selection, t schema.NamedType) {
	for _, sel := range sels {
		validateSelection(c, sel, t)
	}
	for i, a := range sels {
		for _, b := range sels[i+1:] {
			c.validateOverlap(a, b, nil, nil)
		}
	}
}

func validateSelection(c *opContext, sel ast.Selection, t schema.NamedType) {
	switch sel := sel.(type) {
	case *ast.Field:
		validateDirectives(c, kinds.LocField, sel.Directives)

		fieldName := sel.Name.Value
		var f *schema.Field
		switch fieldName {
		case "__typename":
			f = &schema.Field{Type: stringType(c.schema)}
		default:
			// __schema and __type fall through here too: when introspection
			// is installed, introspection.Install has already registered
			// them on fieldsOf(t) like any other field, and when it isn't,
			// they must fail the same way as any other undefined name.
			f = fieldsOf(t)[fieldName]
			if f == nil && t != nil {
				var names []string
				for name := range fieldsOf(t) {
					names = append(names, name)
				}
				suggestion := makeSuggestion("Did you mean", names, fieldName)
				c.addErr(sel.Alias.Loc, "FieldsOnCorrectType", "Undefined field type: %s name: %s%s", t, fieldName, suggestion)
			}
		}
		c.fieldMap[sel] = fieldInfo{sf: f, parent: t}

		validateArgumentLiterals(c, sel.Arguments)
		if f != nil {
			validateArgumentTypes(c, sel.Arguments, f.Args, sel.Alias.Loc,
				func() string { return fmt.Sprintf("field %q of type %q", fieldName, t) },
				func() string { return fmt.Sprintf("Field %q", fieldName) })
		}

		var ft schema.Type
		if f != nil {
			ft = f.Type
			sf := hasSubfields(ft)
			hasSel := sel.SelectionSet != nil && len(sel.SelectionSet.Selections) > 0
			if sf && !hasSel {
				c.addErr(sel.Alias.Loc, "ScalarLeafs", "Field %q of type %q must have a selection of subfields.", fieldName, ft)
			}
			if !sf && hasSel {
				c.addErr(sel.Loc, "ScalarLeafs", "Field %q must not have a selection since type %q has no subfields.", fieldName, ft)
			}
		}
		if sel.SelectionSet != nil && len(sel.SelectionSet.Selections) > 0 {
			validateSelectionSet(c, sel.SelectionSet.Selections, unwrapType(ft))
		}

	case *ast.InlineFragment:
		validateDirectives(c, kinds.LocInlineFragment, sel.Directives)
		cond := t
		if sel.TypeCondition != nil {
			fragTyp := unwrapType(typeFromAST(c.schema, sel.TypeCondition))
			if fragTyp != nil && t != nil && !compatible(t, fragTyp) {
				c.addErr(sel.Loc, "PossibleFragmentSpreads", "Fragment cannot be spread here as objects of type %q can never be of type %q.", t, fragTyp)
			}
			cond = fragTyp
		}
		if cond != nil && !canBeFragment(cond) {
			loc := sel.Loc
			if sel.TypeCondition != nil {
				loc = sel.TypeCondition.Loc
			}
			c.addErr(loc, "FragmentsOnCompositeTypes", "Fragment cannot condition on non composite type %q.", cond)
			return
		}
		if sel.SelectionSet != nil {
			validateSelectionSet(c, sel.SelectionSet.Selections, unwrapType(cond))
		}

	case *ast.FragmentSpread:
		validateDirectives(c, kinds.LocFragmentSpread, sel.Directives)
		frag, ok := c.fragments[sel.Name.Value]
		if !ok {
			c.addErr(sel.Name.Loc, "KnownFragmentNames", "Unknown fragment %q.", sel.Name.Value)
			return
		}
		fragTyp, _ := c.schema.LookupType(frag.TypeCondition.Name.Value)
		if t != nil && fragTyp != nil && !compatible(t, fragTyp) {
			c.addErr(sel.Loc, "PossibleFragmentSpreads", "Fragment %q cannot be spread here as objects of type %q can never be of type %q.", frag.Name.Value, t, fragTyp)
		}
	}
}

func stringType(s *schema.Schema) schema.Type {
	if t, ok := s.LookupType("String"); ok {
		return t.(schema.Type)
	}
	return &schema.Scalar{Name: "String"}
}

func (c *context) validateOverlap(a, b ast.Selection, reasons *[]string, locs *[]errors.Location) {
	if a == b {
		return
	}
	if _, ok := c.overlapValidated[selectionPair{a, b}]; ok {
		return
	}
	c.overlapValidated[selectionPair{a, b}] = struct{}{}
	c.overlapValidated[selectionPair{b, a}] = struct{}{}

	switch a := a.(type) {
	case *ast.Field:
		switch b := b.(type) {
		case *ast.Field:
			if b.Alias.Loc.Before(a.Alias.Loc) {
				a, b = b, a
			}
			if reasons2, locs2 := c.validateFieldOverlap(a, b); len(reasons2) != 0 {
				locs2 = append(locs2, a.Alias.Loc, b.Alias.Loc)
				if reasons == nil {
					c.addErrMultiLoc(locs2, "OverlappingFieldsCanBeMerged",
						"Fields %q conflict because %s. Use different aliases on the fields to fetch both if this was intentional.",
						a.Alias.Value, strings.Join(reasons2, " and "))
					return
				}
				for _, r := range reasons2 {
					*reasons = append(*reasons, fmt.Sprintf("subfields %q conflict because %s", a.Alias.Value, r))
				}
				*locs = append(*locs, locs2...)
			}
		case *ast.InlineFragment:
			if b.SelectionSet != nil {
				for _, sel := range b.SelectionSet.Selections {
					c.validateOverlap(a, sel, reasons, locs)
				}
			}
		case *ast.FragmentSpread:
			if frag := c.fragments[b.Name.Value]; frag != nil {
				for _, sel := range frag.SelectionSet.Selections {
					c.validateOverlap(a, sel, reasons, locs)
				}
			}
		}
	case *ast.InlineFragment:
		if a.SelectionSet != nil {
			for _, sel := range a.SelectionSet.Selections {
				c.validateOverlap(sel, b, reasons, locs)
			}
		}
	case *ast.FragmentSpread:
		if frag := c.fragments[a.Name.Value]; frag != nil {
			for _, sel := range frag.SelectionSet.Selections {
				c.validateOverlap(sel, b, reasons, locs)
			}
		}
	}
}

func (c *context) validateFieldOverlap(a, b *ast.Field) ([]string, []errors.Location) {
	if a.Alias.Value != b.Alias.Value {
		return nil, nil
	}
	if asf := c.fieldMap[a].sf; asf != nil {
		if bsf := c.fieldMap[b].sf; bsf != nil {
			if !typesCompatible(asf.Type, bsf.Type) {
				return []string{fmt.Sprintf("they return conflicting types %s and %s", asf.Type, bsf.Type)}, nil
			}
		}
	}
	at, bt := c.fieldMap[a].parent, c.fieldMap[b].parent
	if at == nil || bt == nil || at == bt {
		if a.Name.Value != b.Name.Value {
			return []string{fmt.Sprintf("%s and %s are different fields", a.Name.Value, b.Name.Value)}, nil
		}
		if argumentsConflict(a.Arguments, b.Arguments) {
			return []string{"they have differing arguments"}, nil
		}
	}
	var reasons []string
	var locs []errors.Location
	if a.SelectionSet != nil && b.SelectionSet != nil {
		for _, a2 := range a.SelectionSet.Selections {
			for _, b2 := range b.SelectionSet.Selections {
				c.validateOverlap(a2, b2, &reasons, &locs)
			}
		}
	}
	return reasons, locs
}

func validateMaxDepth(c *opContext, sels []ast.Selection, depth int, visiting map[string]bool) {
	if c.maxDepth == 0 {
		return
	}
	for _, sel := range sels {
		switch sel := sel.(type) {
		case *ast.Field:
			if depth > c.maxDepth {
				c.addErr(sel.Alias.Loc, "MaxDepthExceeded", "Field %q has depth %d that exceeds max depth %d", sel.Name.Value, depth, c.maxDepth)
				continue
			}
			if sel.SelectionSet != nil {
				validateMaxDepth(c, sel.SelectionSet.Selections, depth+1, visiting)
			}
		case *ast.InlineFragment:
			if sel.SelectionSet != nil {
				validateMaxDepth(c, sel.SelectionSet.Selections, depth, visiting)
			}
		case *ast.FragmentSpread:
			if frag := c.fragments[sel.Name.Value]; frag != nil && !visiting[sel.Name.Value] {
				visiting[sel.Name.Value] = true
				validateMaxDepth(c, frag.SelectionSet.Selections, depth, visiting)
				delete(visiting, sel.Name.Value)
			}
		}
	}
}

func validateLiteral(c *opContext, l ast.Value) {
	switch l := l.(type) {
	case *ast.ObjectValue:
		fieldNames := make(nameSet)
		for _, f := range l.Fields {
			validateName(c.context, fieldNames, f.Name, "UniqueInputFieldNames", "input field")
			validateLiteral(c, f.Value)
		}
	case *ast.ListValue:
		for _, entry := range l.Values {
			validateLiteral(c, entry)
		}
	case *ast.Variable:
		for _, op := range c.ops {
			v := getVar(op.Vars, l.Name.Value)
			if v == nil {
				byOp := ""
				if op.Name != nil && op.Name.Value != "" {
					byOp = fmt.Sprintf(" by operation %q", op.Name.Value)
				}
				c.addErrMultiLoc([]errors.Location{l.Loc, op.Loc}, "NoUndefinedVariables", "Variable %q is not defined%s.", "$"+l.Name.Value, byOp)
				continue
			}
			c.usedVars[op][v] = struct{}{}
		}
	}
}

func validateValueType(c *opContext, v ast.Value, t schema.Type) (bool, string) {
	if v, ok := v.(*ast.Variable); ok {
		for _, op := range c.ops {
			if v2 := getVar(op.Vars, v.Name.Value); v2 != nil {
				t2 := typeFromAST(c.schema, v2.Type)
				if _, ok := t2.(*schema.NonNull); !ok && v2.DefaultValue != nil {
					t2 = &schema.NonNull{Type: t2}
				}
				if !typeCanBeUsedAs(t2, t) {
					c.addErrMultiLoc([]errors.Location{v2.Loc, v.Loc}, "VariablesInAllowedPosition",
						"Variable %q of type %q used in position expecting type %q.", "$"+v.Name.Value, t2, t)
				}
			}
		}
		return true, ""
	}

	if nn, ok := t.(*schema.NonNull); ok {
		if isNull(v) {
			return false, fmt.Sprintf("Expected %q, found null.", t)
		}
		t = nn.Type
	}
	if isNull(v) {
		return true, ""
	}

	switch t := t.(type) {
	case *schema.Scalar:
		if validateBasicValue(v, t) {
			return true, ""
		}
	case *schema.Enum:
		if validateEnumValue(v, t) {
			return true, ""
		}
	case *schema.List:
		list, ok := v.(*ast.ListValue)
		if !ok {
			return validateValueType(c, v, t.Type)
		}
		for i, entry := range list.Values {
			if ok, reason := validateValueType(c, entry, t.Type); !ok {
				return false, fmt.Sprintf("In element #%d: %s", i, reason)
			}
		}
		return true, ""
	case *schema.InputObject:
		obj, ok := v.(*ast.ObjectValue)
		if !ok {
			return false, fmt.Sprintf("Expected %q, found not an object.", t)
		}
		for _, f := range obj.Fields {
			name := f.Name.Value
			iv, ok := t.Fields[name]
			if !ok {
				return false, fmt.Sprintf("In field %q: Unknown field.", name)
			}
			if ok, reason := validateValueType(c, f.Value, iv.Type); !ok {
				return false, fmt.Sprintf("In field %q: %s", name, reason)
			}
		}
		for name, iv := range t.Fields {
			found := false
			for _, f := range obj.Fields {
				if f.Name.Value == name {
					found = true
					break
				}
			}
			if !found {
				if _, ok := iv.Type.(*schema.NonNull); ok && iv.DefaultValue == nil {
					return false, fmt.Sprintf("In field %q: Expected %q, found null.", name, iv.Type)
				}
			}
		}
		return true, ""
	}
	return false, fmt.Sprintf("Expected type %q, found %v.", t, v.GetValue())
}

func validateBasicValue(v ast.Value, t *schema.Scalar) bool {
	switch t.Name {
	case "Int":
		if v.GetKind() != kinds.IntValue {
			return false
		}
		f, err := strconv.ParseFloat(v.GetValue().(string), 64)
		if err != nil {
			return false
		}
		return f >= math.MinInt32 && f <= math.MaxInt32
	case "Float":
		return v.GetKind() == kinds.IntValue || v.GetKind() == kinds.FloatValue
	case "String":
		return v.GetKind() == kinds.StringValue
	case "Boolean":
		return v.GetKind() == kinds.BooleanValue
	case "ID":
		return v.GetKind() == kinds.IntValue || v.GetKind() == kinds.StringValue
	default:
		return true
	}
}

func validateEnumValue(v ast.Value, t *schema.Enum) bool {
	if v.GetKind() != kinds.EnumValue {
		return false
	}
	for _, option := range t.Values {
		if option == v.GetValue() {
			return true
		}
	}
	return false
}

func validateDirectives(c *opContext, loc string, directives []*ast.Directive) {
	directiveNames := make(nameSet)
	for _, d := range directives {
		dirName := d.Name.Value
		validateName(c.context, directiveNames, d.Name, "UniqueDirectivesPerLocation", "directive")
		validateArgumentLiterals(c, d.Args)

		dd, ok := c.schema.Directives[dirName]
		if !ok {
			c.addErr(d.Name.Loc, "KnownDirectives", "Unknown directive %q.", dirName)
			continue
		}

		locOK := false
		for _, allowedLoc := range dd.Locations {
			if loc == allowedLoc {
				locOK = true
				break
			}
		}
		if !locOK {
			c.addErr(d.Name.Loc, "KnownDirectives", "Directive %q may not be used on %s.", dirName, loc)
		}

		validateArgumentTypes(c, d.Args, dd.Args, d.Name.Loc,
			func() string { return fmt.Sprintf("directive %q", "@"+dirName) },
			func() string { return fmt.Sprintf("Directive %q", "@"+dirName) })
	}
}

func validateArgumentLiterals(c *opContext, args []*ast.Argument) {
	argNames := make(nameSet)
	for _, arg := range args {
		validateName(c.context, argNames, arg.Name, "UniqueArgumentNames", "argument")
		validateLiteral(c, arg.Value)
	}
}

func validateArgumentTypes(c *opContext, args []*ast.Argument, argDecls map[string]*schema.Argument, loc errors.Location, owner1, owner2 func() string) {
	for _, selArg := range args {
		arg, ok := argDecls[selArg.Name.Value]
		if !ok {
			c.addErr(selArg.Name.Loc, "KnownArgumentNames", "Unknown argument %q on %s.", selArg.Name.Value, owner1())
			continue
		}
		if ok, reason := validateValueType(c, selArg.Value, arg.Type); !ok {
			c.addErr(selArg.Value.Location(), "ArgumentsOfCorrectType", "Argument %q has invalid value.\n%s", selArg.Name.Value, reason)
		}
	}
	for name, decl := range argDecls {
		if _, ok := decl.Type.(*schema.NonNull); ok && decl.DefaultValue == nil {
			if getArgumentNode(args, name) == nil {
				c.addErr(loc, "ProvidedRequiredArguments", "%s argument %q of type %q is required but not provided.", owner2(), name, decl.Type)
			}
		}
	}
}

func argumentsConflict(a, b []*ast.Argument) bool {
	if len(a) != len(b) {
		return true
	}
	for _, argA := range a {
		argB := getArgumentNode(b, argA.Name.Value)
		if argB == nil || !reflect.DeepEqual(literalShape(argA.Value), literalShape(argB.Value)) {
			return true
		}
	}
	return false
}

// literalShape reduces a literal AST value to a comparable Go shape for
// the argument-conflict check, without performing full variable coercion
// (that happens in package execution).
func literalShape(v ast.Value) interface{} {
	switch v := v.(type) {
	case *ast.ListValue:
		out := make([]interface{}, len(v.Values))
		for i, e := range v.Values {
			out[i] = literalShape(e)
		}
		return out
	case *ast.ObjectValue:
		out := make(map[string]interface{}, len(v.Fields))
		for _, f := range v.Fields {
			out[f.Name.Value] = literalShape(f.Value)
		}
		return out
	default:
		return v.GetValue()
	}
}

func isNull(v ast.Value) bool {
	_, ok := v.(*ast.NullValue)
	return ok
}

func typeCanBeUsedAs(t, as schema.Type) bool {
	nnT, okT := t.(*schema.NonNull)
	if okT {
		t = nnT.Type
	}
	nnAs, okAs := as.(*schema.NonNull)
	if okAs {
		as = nnAs.Type
		if !okT {
			return false
		}
	}
	if t == as {
		return true
	}
	if lT, ok := t.(*schema.List); ok {
		if lAs, ok := as.(*schema.List); ok {
			return typeCanBeUsedAs(lT.Type, lAs.Type)
		}
	}
	return false
}

func fieldsOf(t schema.NamedType) map[string]*schema.Field {
	switch t := t.(type) {
	case *schema.Object:
		return t.Fields
	case *schema.Interface:
		return t.Fields
	default:
		return nil
	}
}

func hasSubfields(t schema.Type) bool {
	switch t := t.(type) {
	case *schema.Object, *schema.Interface, *schema.Union:
		return true
	case *schema.List:
		return hasSubfields(t.Type)
	case *schema.NonNull:
		return hasSubfields(t.Type)
	default:
		return false
	}
}

func unwrapType(t schema.Type) schema.NamedType {
	if t == nil {
		return nil
	}
	for {
		switch t2 := t.(type) {
		case schema.NamedType:
			return t2
		case *schema.List:
			t = t2.Type
		case *schema.NonNull:
			t = t2.Type
		default:
			return nil
		}
	}
}

func compatible(a, b schema.NamedType) bool {
	for _, pta := range possibleTypes(a) {
		for _, ptb := range possibleTypes(b) {
			if pta == ptb {
				return true
			}
		}
	}
	return false
}

func possibleTypes(t schema.NamedType) []*schema.Object {
	switch t := t.(type) {
	case *schema.Object:
		return []*schema.Object{t}
	case *schema.Interface:
		return t.PossibleTypes
	case *schema.Union:
		var res []*schema.Object
		for _, name := range t.TypeOrder() {
			res = append(res, t.Types[name])
		}
		return res
	default:
		return nil
	}
}

func canBeFragment(t schema.NamedType) bool {
	switch t.(type) {
	case *schema.Object, *schema.Interface, *schema.Union:
		return true
	default:
		return false
	}
}

func typesCompatible(a, b schema.Type) bool {
	al, aIsList := a.(*schema.List)
	bl, bIsList := b.(*schema.List)
	if aIsList || bIsList {
		return aIsList && bIsList && typesCompatible(al.Type, bl.Type)
	}
	ann, aIsNN := a.(*schema.NonNull)
	bnn, bIsNN := b.(*schema.NonNull)
	if aIsNN || bIsNN {
		return aIsNN && bIsNN && typesCompatible(ann.Type, bnn.Type)
	}
	if isLeaf(a) || isLeaf(b) {
		return a == b
	}
	return true
}

func isLeaf(t schema.Type) bool {
	switch t.(type) {
	case *schema.Scalar, *schema.Enum:
		return true
	default:
		return false
	}
}

func isInputType(t schema.Type) bool {
	switch t := t.(type) {
	case *schema.Scalar, *schema.Enum, *schema.InputObject:
		return true
	case *schema.List:
		return isInputType(t.Type)
	case *schema.NonNull:
		return isInputType(t.Type)
	default:
		return false
	}
}

func getVar(vars []*ast.VariableDefinition, name string) *ast.VariableDefinition {
	for _, v := range vars {
		if v.Var.Name.Value == name {
			return v
		}
	}
	return nil
}

func getArgumentNode(args []*ast.Argument, name string) *ast.Argument {
	for _, a := range args {
		if a.Name.Value == name {
			return a
		}
	}
	return nil
}

// typeFromAST resolves a variable/argument type reference against the
// schema's named types, applying List/NonNull wrapping as declared.
func typeFromAST(s *schema.Schema, t ast.Type) schema.Type {
	switch t := t.(type) {
	case *ast.ListType:
		inner := typeFromAST(s, t.Type)
		if inner == nil {
			return nil
		}
		return &schema.List{Type: inner}
	case *ast.NonNullType:
		inner := typeFromAST(s, t.Type)
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

func makeSuggestion(prefix string, options []string, input string) string {
	var selected []string
	distances := make(map[string]int)
	for _, opt := range options {
		distance := levenshteinDistance(input, opt)
		threshold := maxInt(len(input)/2, maxInt(len(opt)/2, 1))
		if distance < threshold {
			selected = append(selected, opt)
			distances[opt] = distance
		}
	}
	if len(selected) == 0 {
		return ""
	}
	sort.Slice(selected, func(i, j int) bool { return distances[selected[i]] < distances[selected[j]] })
	parts := make([]string, len(selected))
	for i, opt := range selected {
		parts[i] = strconv.Quote(opt)
	}
	if len(parts) > 1 {
		parts[len(parts)-1] = "or " + parts[len(parts)-1]
	}
	return fmt.Sprintf(" %s %s?", prefix, strings.Join(parts, ", "))
}

func levenshteinDistance(s1, s2 string) int {
	column := make([]int, len(s1)+1)
	for y := range s1 {
		column[y+1] = y + 1
	}
	for x := 1; x <= len(s2); x++ {
		column[0] = x
		lastKey := x - 1
		for y := 1; y <= len(s1); y++ {
			oldKey := column[y]
			cost := 0
			if s1[y-1] != s2[x-1] {
				cost = 1
			}
			column[y] = minInt(minInt(column[y]+1, column[y-1]+1), lastKey+cost)
			lastKey = oldKey
		}
	}
	return column[len(s1)]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
