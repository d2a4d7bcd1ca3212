package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shyptr/gqlrun/errors"
	"github.com/shyptr/gqlrun/parser"
	"github.com/shyptr/gqlrun/schema"
	"github.com/shyptr/gqlrun/validation"
)

func testSchema() *schema.Schema {
	str := &schema.Scalar{Name: "String"}
	intT := &schema.Scalar{Name: "Int"}

	human := &schema.Object{Name: "Human"}
	human.AddField("name", &schema.Field{Type: str})
	human.AddField("homePlanet", &schema.Field{Type: str})

	query := &schema.Object{Name: "Query"}
	query.AddField("hero", &schema.Field{Type: human})
	human2 := &schema.Field{Type: human}
	human2.AddArg("id", &schema.Argument{Type: &schema.NonNull{Type: intT}})
	query.AddField("human", human2)

	skip := &schema.Directive{Name: "skip", Locations: []string{"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"}}
	skip.AddArg("if", &schema.Argument{Type: &schema.NonNull{Type: &schema.Scalar{Name: "Boolean"}}})

	return &schema.Schema{
		Query: query,
		TypeMap: map[string]schema.NamedType{
			"String": str, "Int": intT, "Human": human,
		},
		Directives: map[string]*schema.Directive{"skip": skip},
	}
}

func validateSource(t *testing.T, source string) []*assertableError {
	doc, gqlErr := parser.Parse("test", source)
	assert.Nil(t, gqlErr)
	errs := validation.Validate(testSchema(), doc, 50)
	out := make([]*assertableError, len(errs))
	for i, e := range errs {
		out[i] = &assertableError{rule: e.Rule, message: e.Message}
	}
	return out
}

type assertableError struct {
	rule    string
	message string
}

func TestValidate_WellFormedQueryPasses(t *testing.T) {
	errs := validateSource(t, `{ hero { name homePlanet } }`)
	assert.Empty(t, errs)
}

func TestValidate_UnknownFieldIsRejected(t *testing.T) {
	errs := validateSource(t, `{ hero { nickname } }`)
	assert.NotEmpty(t, errs)
	assert.Equal(t, "FieldsOnCorrectType", errs[0].rule)
}

func TestValidate_IntrospectionFieldsAreUndefinedWithoutInstall(t *testing.T) {
	doc, gqlErr := parser.Parse("test", "query {\n   __schema { queryType { name } }\n}")
	assert.Nil(t, gqlErr)
	errs := validation.Validate(testSchema(), doc, 50)
	assert.Len(t, errs, 1)
	assert.Equal(t, "FieldsOnCorrectType", errs[0].Rule)
	assert.Equal(t, "Undefined field type: Query name: __schema", errs[0].Message)
	assert.Equal(t, []errors.Location{{Line: 2, Column: 4}}, errs[0].Locations)
}

func TestValidate_MissingRequiredArgumentIsRejected(t *testing.T) {
	errs := validateSource(t, `{ human { name } }`)
	found := false
	for _, e := range errs {
		if e.rule == "ProvidedRequiredArguments" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidate_UnusedFragmentIsRejected(t *testing.T) {
	errs := validateSource(t, `
		{ hero { name } }
		fragment unused on Human { homePlanet }
	`)
	found := false
	for _, e := range errs {
		if e.rule == "NoUnusedFragments" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidate_FragmentCycleIsRejected(t *testing.T) {
	errs := validateSource(t, `
		{ hero { ...A } }
		fragment A on Human { ...B }
		fragment B on Human { ...A }
	`)
	found := false
	for _, e := range errs {
		if e.rule == "NoFragmentCycles" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidate_UnusedVariableIsRejected(t *testing.T) {
	errs := validateSource(t, `query ($unused: Int) { hero { name } }`)
	found := false
	for _, e := range errs {
		if e.rule == "NoUnusedVariables" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidate_UnknownDirectiveIsRejected(t *testing.T) {
	errs := validateSource(t, `{ hero { name @bogus } }`)
	found := false
	for _, e := range errs {
		if e.rule == "KnownDirectives" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidate_DuplicateOperationNamesAreRejected(t *testing.T) {
	errs := validateSource(t, `
		query Dup { hero { name } }
		query Dup { hero { homePlanet } }
	`)
	found := false
	for _, e := range errs {
		if e.rule == "UniqueOperationNames" {
			found = true
		}
	}
	assert.True(t, found)
}
