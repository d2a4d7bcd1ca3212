package execution_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shyptr/gqlrun/execution"
	"github.com/shyptr/gqlrun/parser"
	"github.com/shyptr/gqlrun/schema"
)

type Dog struct {
	Name  string
	Woofs bool
}

type Cat struct {
	Name  string
	Meows bool
}

func stringScalar() *schema.Scalar { return &schema.Scalar{Name: "String"} }
func boolScalar() *schema.Scalar   { return &schema.Scalar{Name: "Boolean"} }

// petSchema builds a Query { pets: [Pet!]! } schema where Pet is an
// interface resolved explicitly (ResolveType), implemented by Dog/Cat.
func petSchema() *schema.Schema {
	str := stringScalar()
	boolT := boolScalar()

	dogType := &schema.Object{Name: "Dog"}
	dogType.AddField("name", &schema.Field{Type: str, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		return source.(Dog).Name, nil
	}})
	dogType.AddField("woofs", &schema.Field{Type: boolT, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		return source.(Dog).Woofs, nil
	}})

	catType := &schema.Object{Name: "Cat"}
	catType.AddField("name", &schema.Field{Type: str, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		return source.(Cat).Name, nil
	}})
	catType.AddField("meows", &schema.Field{Type: boolT, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		return source.(Cat).Meows, nil
	}})

	petInterface := &schema.Interface{Name: "Pet", PossibleTypes: []*schema.Object{dogType, catType}}
	petInterface.ResolveType = func(ctx context.Context, v interface{}) *schema.Object {
		switch v.(type) {
		case Dog:
			return dogType
		case Cat:
			return catType
		}
		return nil
	}
	petInterface.AddField("name", &schema.Field{Type: str})

	queryType := &schema.Object{Name: "Query"}
	queryType.AddField("pets", &schema.Field{
		Type: &schema.List{Type: &schema.NonNull{Type: petInterface}},
		Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			return []interface{}{Dog{Name: "Rex", Woofs: true}, Cat{Name: "Tom", Meows: false}}, nil
		},
	})

	return &schema.Schema{
		Query:   queryType,
		TypeMap: map[string]schema.NamedType{"Dog": dogType, "Cat": catType, "Pet": petInterface, "String": str, "Boolean": boolT},
	}
}

func TestExecute_ResolvesInterfaceByExplicitResolveType(t *testing.T) {
	s := petSchema()

	doc, gqlErr := parser.Parse("test", `{ pets { name ... on Dog { woofs } ... on Cat { meows } } }`)
	assert.Nil(t, gqlErr)

	result, errs := execution.Execute(context.Background(), execution.Params{Schema: s, Document: doc})
	assert.Empty(t, errs)

	m, ok := result.Map()
	assert.True(t, ok)
	petsVal, ok := m.Get("pets")
	assert.True(t, ok)
	pets, ok := petsVal.List()
	assert.True(t, ok)
	assert.Len(t, pets, 2)

	dog, _ := pets[0].Map()
	woofs, _ := dog.Get("woofs")
	b, _ := woofs.Bool()
	assert.True(t, b)

	cat, _ := pets[1].Map()
	meows, _ := cat.Get("meows")
	b, _ = meows.Bool()
	assert.False(t, b)
}

func TestExecute_NonNullPropagatesToNearestNullableAncestor(t *testing.T) {
	str := stringScalar()
	inner := &schema.Object{Name: "Inner"}
	inner.AddField("mustExist", &schema.Field{
		Type: &schema.NonNull{Type: str},
		Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			return nil, nil
		},
	})
	query := &schema.Object{Name: "Query"}
	query.AddField("inner", &schema.Field{
		Type: inner,
		Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			return struct{}{}, nil
		},
	})
	s := &schema.Schema{Query: query, TypeMap: map[string]schema.NamedType{"Inner": inner, "String": str}}

	doc, gqlErr := parser.Parse("test", `{ inner { mustExist } }`)
	assert.Nil(t, gqlErr)

	result, errs := execution.Execute(context.Background(), execution.Params{Schema: s, Document: doc})
	assert.Len(t, errs, 1)

	m, _ := result.Map()
	innerVal, ok := m.Get("inner")
	assert.True(t, ok)
	assert.True(t, innerVal.IsNull())
}

func TestExecute_ScalarSerializeErrorNullsFieldNotResponse(t *testing.T) {
	failing := &schema.Scalar{
		Name: "Failing",
		Serialize: func(interface{}) (interface{}, error) {
			return nil, errors.New("serialize failed")
		},
	}
	query := &schema.Object{Name: "Query"}
	query.AddField("bad", &schema.Field{
		Type: failing,
		Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			return "anything", nil
		},
	})
	s := &schema.Schema{Query: query, TypeMap: map[string]schema.NamedType{"Failing": failing}}

	doc, _ := parser.Parse("test", `{ bad }`)
	result, errs := execution.Execute(context.Background(), execution.Params{Schema: s, Document: doc})
	assert.Len(t, errs, 1)
	m, _ := result.Map()
	v, _ := m.Get("bad")
	assert.True(t, v.IsNull())
}

func TestExecute_PanicInResolverBecomesFieldError(t *testing.T) {
	query := &schema.Object{Name: "Query"}
	query.AddField("boom", &schema.Field{
		Type: stringScalar(),
		Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			panic("kaboom")
		},
	})
	s := &schema.Schema{Query: query, TypeMap: map[string]schema.NamedType{"String": stringScalar()}}

	doc, _ := parser.Parse("test", `{ boom }`)
	result, errs := execution.Execute(context.Background(), execution.Params{Schema: s, Document: doc})
	assert.Len(t, errs, 1)
	m, _ := result.Map()
	v, _ := m.Get("boom")
	assert.True(t, v.IsNull())
}

func TestExecute_SkipDirectiveOmitsField(t *testing.T) {
	query := &schema.Object{Name: "Query"}
	query.AddField("a", &schema.Field{Type: stringScalar(), Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		return "a-value", nil
	}})
	query.AddField("b", &schema.Field{Type: stringScalar(), Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		return "b-value", nil
	}})
	s := &schema.Schema{Query: query, TypeMap: map[string]schema.NamedType{"String": stringScalar()}}

	doc, gqlErr := parser.Parse("test", `{ a b @skip(if: true) }`)
	assert.Nil(t, gqlErr)

	result, errs := execution.Execute(context.Background(), execution.Params{Schema: s, Document: doc})
	assert.Empty(t, errs)

	m, _ := result.Map()
	assert.Equal(t, 1, m.Len())
	_, hasB := m.Get("b")
	assert.False(t, hasB)
}
