package schemabuilder_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shyptr/gqlrun/schema"
	"github.com/shyptr/gqlrun/schemabuilder"
)

type Human struct {
	Name      string
	HeightArg int
}

type heightArgs struct {
	Unit string `json:"unit"`
}

func TestBuild_SimpleQueryObject(t *testing.T) {
	s := schemabuilder.NewSchema()
	query := s.Query()
	query.FieldFunc("hero", func() Human { return Human{Name: "Luke"} })

	human := s.Object("Human", Human{})
	human.FieldFunc("name", func(h Human) string { return h.Name })
	human.FieldFunc("height", func(h Human, args heightArgs) (float64, error) {
		if args.Unit == "" {
			return 1.72, nil
		}
		return 172, nil
	})

	built, err := s.Build()
	assert.NoError(t, err)
	assert.NotNil(t, built.Query)

	heroField := built.Query.Fields["hero"]
	assert.NotNil(t, heroField)
	out, resolveErr := heroField.Resolve(context.Background(), nil, nil)
	assert.NoError(t, resolveErr)
	assert.Equal(t, Human{Name: "Luke"}, out)

	humanType := built.TypeMap["Human"].(*schema.Object)
	nameField := humanType.Fields["name"]
	out, resolveErr = nameField.Resolve(context.Background(), Human{Name: "Leia"}, nil)
	assert.NoError(t, resolveErr)
	assert.Equal(t, "Leia", out)

	heightField := humanType.Fields["height"]
	assert.Len(t, heightField.ArgOrder(), 1)
}

func TestBuild_MissingQueryRootFails(t *testing.T) {
	s := schemabuilder.NewSchema()
	s.Object("Human", Human{}).FieldFunc("name", func(h Human) string { return h.Name })
	_, err := s.Build()
	assert.Error(t, err)
}

func TestBuild_FieldReturningUnregisteredTypeFails(t *testing.T) {
	type Unregistered struct{ X int }
	s := schemabuilder.NewSchema()
	s.Query().FieldFunc("bad", func() Unregistered { return Unregistered{} })
	_, err := s.Build()
	assert.Error(t, err)
}

func TestBuild_EnumRegistersSortedValuesAndReverseMap(t *testing.T) {
	type Episode int
	const (
		NEWHOPE Episode = iota
		EMPIRE
		JEDI
	)
	s := schemabuilder.NewSchema()
	s.Query().FieldFunc("episode", func() Episode { return EMPIRE })
	s.Enum("Episode", Episode(0), map[string]interface{}{
		"NEWHOPE": NEWHOPE, "EMPIRE": EMPIRE, "JEDI": JEDI,
	})

	built, err := s.Build()
	assert.NoError(t, err)
	episodeType := built.TypeMap["Episode"].(*schema.Enum)
	assert.Equal(t, []string{"EMPIRE", "JEDI", "NEWHOPE"}, episodeType.Values)
	assert.Equal(t, "EMPIRE", episodeType.ReverseMap[EMPIRE])
}

func TestBuild_InterfaceRequiresEveryImplementorToRegisterItsMethods(t *testing.T) {
	type Character interface{ GetName() string }
	type Droid struct{ Name string }

	s := schemabuilder.NewSchema()
	s.Query().FieldFunc("droid", func() Droid { return Droid{Name: "R2"} })
	droid := s.Object("Droid", Droid{})
	s.Interface("Character", (*Character)(nil), nil)
	droid.Implements("Character")

	_, err := s.Build()
	assert.Error(t, err, "Droid does not register a getName field so Build must fail")
}

func TestBuild_UnionRequiresPointerToRegisteredObjectMembers(t *testing.T) {
	type Droid struct{ Name string }
	type SearchResult struct {
		Droid *Droid
	}
	s := schemabuilder.NewSchema()
	s.Query().FieldFunc("search", func() SearchResult { return SearchResult{} })
	s.Union("SearchResult", SearchResult{})

	_, err := s.Build()
	assert.Error(t, err, "Droid is never registered as an object, so the union member resolution must fail")
}
