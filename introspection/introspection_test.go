package introspection_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shyptr/gqlrun/introspection"
	"github.com/shyptr/gqlrun/schema"
)

func buildTestSchema() *schema.Schema {
	str := &schema.Scalar{Name: "String"}
	human := &schema.Object{Name: "Human", Desc: "A person"}
	human.AddField("name", &schema.Field{Type: str, Desc: "the name"})

	query := &schema.Object{Name: "Query"}
	query.AddField("hero", &schema.Field{Type: human})

	return &schema.Schema{
		Query:   query,
		TypeMap: map[string]schema.NamedType{"String": str, "Human": human},
	}
}

func TestInstall_AddsSchemaAndTypeMetaFields(t *testing.T) {
	s := buildTestSchema()
	introspection.Install(s)

	assert.Contains(t, s.Query.Fields, "__schema")
	assert.Contains(t, s.Query.Fields, "__type")
	for _, name := range []string{"__Type", "__Field", "__InputValue", "__EnumValue", "__Directive", "__Schema", "__TypeKind", "__DirectiveLocation"} {
		assert.Contains(t, s.TypeMap, name)
	}
}

func TestInstall_SchemaFieldResolvesTheSchemaItself(t *testing.T) {
	s := buildTestSchema()
	introspection.Install(s)

	out, err := s.Query.Fields["__schema"].Resolve(context.Background(), nil, nil)
	assert.NoError(t, err)
	assert.Same(t, s, out)
}

func TestInstall_TypeFieldResolvesByName(t *testing.T) {
	s := buildTestSchema()
	introspection.Install(s)

	typeField := s.Query.Fields["__type"]
	out, err := typeField.Resolve(context.Background(), nil, map[string]interface{}{"name": "Human"})
	assert.NoError(t, err)
	human, ok := out.(schema.NamedType)
	assert.True(t, ok)
	assert.Equal(t, "Human", human.TypeName())

	out, err = typeField.Resolve(context.Background(), nil, map[string]interface{}{"name": "DoesNotExist"})
	assert.NoError(t, err)
	assert.Nil(t, out)
}

func TestInstall_TypeKindResolvesEveryVariant(t *testing.T) {
	s := buildTestSchema()
	introspection.Install(s)
	typeObj := s.TypeMap["__Type"].(*schema.Object)
	kindField := typeObj.Fields["kind"]

	cases := []struct {
		t    schema.Type
		want string
	}{
		{&schema.Scalar{Name: "String"}, "SCALAR"},
		{&schema.Object{Name: "Obj"}, "OBJECT"},
		{&schema.Interface{Name: "Iface"}, "INTERFACE"},
		{&schema.Union{Name: "U"}, "UNION"},
		{&schema.Enum{Name: "E"}, "ENUM"},
		{&schema.InputObject{Name: "I"}, "INPUT_OBJECT"},
		{&schema.List{Type: &schema.Scalar{Name: "String"}}, "LIST"},
		{&schema.NonNull{Type: &schema.Scalar{Name: "String"}}, "NON_NULL"},
	}
	for _, c := range cases {
		out, err := kindField.Resolve(context.Background(), c.t, nil)
		assert.NoError(t, err)
		assert.Equal(t, c.want, out)
	}
}

func TestInstall_FieldsResolverSkipsDeprecatedUnlessRequested(t *testing.T) {
	s := buildTestSchema()
	human := s.TypeMap["Human"].(*schema.Object)
	human.AddField("oldName", &schema.Field{Type: &schema.Scalar{Name: "String"}, Deprecated: "use name instead"})
	introspection.Install(s)

	typeObj := s.TypeMap["__Type"].(*schema.Object)
	fieldsField := typeObj.Fields["fields"]

	out, err := fieldsField.Resolve(context.Background(), human, map[string]interface{}{"includeDeprecated": false})
	assert.NoError(t, err)
	assert.Len(t, out, 1)

	out, err = fieldsField.Resolve(context.Background(), human, map[string]interface{}{"includeDeprecated": true})
	assert.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestInstall_DoesNotOverwriteACallerRegisteredMetaType(t *testing.T) {
	s := buildTestSchema()
	custom := &schema.Object{Name: "__Type"}
	s.TypeMap["__Type"] = custom
	introspection.Install(s)

	assert.Same(t, custom, s.TypeMap["__Type"])
}
