package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shyptr/gqlrun/schema"
)

func TestObject_AddFieldPreservesInsertionOrderAndIsIdempotentOnOrder(t *testing.T) {
	obj := &schema.Object{Name: "Query"}
	obj.AddField("b", &schema.Field{})
	obj.AddField("a", &schema.Field{})
	obj.AddField("b", &schema.Field{Desc: "replaced"})

	assert.Equal(t, []string{"b", "a"}, obj.FieldOrder())
	assert.Equal(t, "replaced", obj.Fields["b"].Desc)
}

func TestInterface_AddFieldPreservesInsertionOrder(t *testing.T) {
	iface := &schema.Interface{Name: "Node"}
	iface.AddField("id", &schema.Field{})
	iface.AddField("createdAt", &schema.Field{})
	assert.Equal(t, []string{"id", "createdAt"}, iface.FieldOrder())
}

func TestUnion_AddTypePreservesInsertionOrderAndDedupesByName(t *testing.T) {
	u := &schema.Union{Name: "SearchResult"}
	human := &schema.Object{Name: "Human"}
	droid := &schema.Object{Name: "Droid"}
	u.AddType(human)
	u.AddType(droid)
	u.AddType(human)

	assert.Equal(t, []string{"Human", "Droid"}, u.TypeOrder())
	assert.Len(t, u.Types, 2)
}

func TestField_AddArgPreservesInsertionOrder(t *testing.T) {
	f := &schema.Field{}
	f.AddArg("first", &schema.Argument{})
	f.AddArg("after", &schema.Argument{})
	assert.Equal(t, []string{"first", "after"}, f.ArgOrder())
}

func TestWrapType(t *testing.T) {
	str := &schema.Scalar{Name: "String"}

	assert.Equal(t, "String", schema.WrapType(str, false, false).String())
	assert.Equal(t, "String!", schema.WrapType(str, false, true).String())
	assert.Equal(t, "[String]", schema.WrapType(str, true, false).String())
	assert.Equal(t, "[String]!", schema.WrapType(str, true, true).String())
}

func TestNamedOf_UnwrapsListAndNonNullLayers(t *testing.T) {
	str := &schema.Scalar{Name: "String"}
	wrapped := &schema.NonNull{Type: &schema.List{Type: &schema.NonNull{Type: str}}}

	named := schema.NamedOf(wrapped)
	assert.Equal(t, str, named)
}

func TestIsNonNull(t *testing.T) {
	str := &schema.Scalar{Name: "String"}
	assert.True(t, schema.IsNonNull(&schema.NonNull{Type: str}))
	assert.False(t, schema.IsNonNull(str))
	assert.False(t, schema.IsNonNull(&schema.List{Type: str}))
}

func TestSchema_LookupType(t *testing.T) {
	str := &schema.Scalar{Name: "String"}
	s := &schema.Schema{TypeMap: map[string]schema.NamedType{"String": str}}

	found, ok := s.LookupType("String")
	assert.True(t, ok)
	assert.Equal(t, str, found)

	_, ok = s.LookupType("Missing")
	assert.False(t, ok)
}
