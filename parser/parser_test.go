package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shyptr/gqlrun/ast"
	"github.com/shyptr/gqlrun/parser"
)

func TestParse_AnonymousQueryShorthand(t *testing.T) {
	doc, err := parser.Parse("test", `{ hero { name } }`)
	assert.Nil(t, err)
	assert.Len(t, doc.Definitions, 1)

	op, ok := doc.Definitions[0].(*ast.OperationDefinition)
	assert.True(t, ok)
	assert.Equal(t, ast.Query, op.Type)
	assert.Nil(t, op.Name)
	assert.Len(t, op.SelectionSet.Selections, 1)
}

func TestParse_NamedMutationWithVariablesAndDirectives(t *testing.T) {
	doc, err := parser.Parse("test", `
		mutation CreateReview($ep: Episode!, $review: ReviewInput) @log {
			createReview(episode: $ep, review: $review) {
				stars
			}
		}
	`)
	assert.Nil(t, err)
	op := doc.Definitions[0].(*ast.OperationDefinition)
	assert.Equal(t, ast.Mutation, op.Type)
	assert.Equal(t, "CreateReview", op.Name.Value)
	assert.Len(t, op.Vars, 2)
	assert.Equal(t, "ep", op.Vars[0].Var.Name.Value)
	assert.Len(t, op.Directives, 1)
	assert.Equal(t, "log", op.Directives[0].Name.Value)
}

func TestParse_FragmentSpreadAndInlineFragment(t *testing.T) {
	doc, err := parser.Parse("test", `
		query {
			hero {
				...heroFields
				... on Droid {
					primaryFunction
				}
			}
		}
		fragment heroFields on Character {
			name
		}
	`)
	assert.Nil(t, err)
	assert.Len(t, doc.Definitions, 2)

	op := doc.Definitions[0].(*ast.OperationDefinition)
	hero := op.SelectionSet.Selections[0].(*ast.Field)
	assert.Len(t, hero.SelectionSet.Selections, 2)

	_, isSpread := hero.SelectionSet.Selections[0].(*ast.FragmentSpread)
	assert.True(t, isSpread)

	inline, isInline := hero.SelectionSet.Selections[1].(*ast.InlineFragment)
	assert.True(t, isInline)
	assert.Equal(t, "Droid", inline.TypeCondition.Name.Value)

	frag := doc.Definitions[1].(*ast.FragmentDefinition)
	assert.Equal(t, "heroFields", frag.Name.Value)
	assert.Equal(t, "Character", frag.TypeCondition.Name.Value)
}

func TestParse_FieldAliasAndArgumentLiterals(t *testing.T) {
	doc, err := parser.Parse("test", `{
		luke: human(id: "1000", tall: true, weight: 1.5, tags: ["a", "b"], meta: {x: 1}, nickname: null) {
			name
		}
	}`)
	assert.Nil(t, err)
	op := doc.Definitions[0].(*ast.OperationDefinition)
	field := op.SelectionSet.Selections[0].(*ast.Field)
	assert.Equal(t, "luke", field.Alias.Value)
	assert.Equal(t, "human", field.Name.Value)
	assert.Len(t, field.Arguments, 6)

	byName := make(map[string]ast.Value)
	for _, arg := range field.Arguments {
		byName[arg.Name.Value] = arg.Value
	}
	assert.IsType(t, &ast.StringValue{}, byName["id"])
	assert.IsType(t, &ast.BooleanValue{}, byName["tall"])
	assert.IsType(t, &ast.FloatValue{}, byName["weight"])
	assert.IsType(t, &ast.ListValue{}, byName["tags"])
	assert.IsType(t, &ast.ObjectValue{}, byName["meta"])
	assert.IsType(t, &ast.NullValue{}, byName["nickname"])
}

func TestParse_ListAndNonNullTypesInVariableDefinitions(t *testing.T) {
	doc, err := parser.Parse("test", `query ($a: [String!]!, $b: Int = 3) { field }`)
	assert.Nil(t, err)
	op := doc.Definitions[0].(*ast.OperationDefinition)

	nonNullList, ok := op.Vars[0].Type.(*ast.NonNullType)
	assert.True(t, ok)
	list, ok := nonNullList.Type.(*ast.ListType)
	assert.True(t, ok)
	nonNullInner, ok := list.Type.(*ast.NonNullType)
	assert.True(t, ok)
	assert.Equal(t, "String", nonNullInner.Type.(*ast.NamedType).Name.Value)

	assert.NotNil(t, op.Vars[1].DefaultValue)
	assert.IsType(t, &ast.IntValue{}, op.Vars[1].DefaultValue)
}

func TestParse_BlockStringStripsCommonIndentation(t *testing.T) {
	doc, err := parser.Parse("test", "{ human(bio: \"\"\"\n    Farm boy.\n    Reluctant hero.\n    \"\"\") { name } }")
	assert.Nil(t, err)
	op := doc.Definitions[0].(*ast.OperationDefinition)
	field := op.SelectionSet.Selections[0].(*ast.Field)
	bio := field.Arguments[0].Value.(*ast.StringValue)
	assert.Equal(t, "Farm boy.\nReluctant hero.", bio.Value)
}

func TestParse_BlockStringAllowsEscapedTripleQuote(t *testing.T) {
	doc, err := parser.Parse("test", `{ human(bio: """say \"""hi""") { name } }`)
	assert.Nil(t, err)
	op := doc.Definitions[0].(*ast.OperationDefinition)
	field := op.SelectionSet.Selections[0].(*ast.Field)
	bio := field.Arguments[0].Value.(*ast.StringValue)
	assert.Equal(t, `say """hi`, bio.Value)
}

func TestParse_QuotedStringKeepsEscapesRaw(t *testing.T) {
	doc, err := parser.Parse("test", `{ human(name: "Lu\"ke") { name } }`)
	assert.Nil(t, err)
	op := doc.Definitions[0].(*ast.OperationDefinition)
	field := op.SelectionSet.Selections[0].(*ast.Field)
	name := field.Arguments[0].Value.(*ast.StringValue)
	assert.Equal(t, `Lu\"ke`, name.Value)
}

func TestParse_UnterminatedSelectionSetIsASyntaxError(t *testing.T) {
	_, err := parser.Parse("test", "{")
	assert.NotNil(t, err)
	assert.Contains(t, err.Message, "Syntax Error")
	assert.NotEmpty(t, err.Locations)
}

func TestParse_FragmentMissingOnKeywordIsASyntaxError(t *testing.T) {
	_, err := parser.Parse("test", `{ ...spreadIt } fragment spreadIt Type { x }`)
	assert.NotNil(t, err)
	assert.Contains(t, err.Message, "Syntax Error")
}

func TestParse_UnknownTopLevelKeywordIsASyntaxError(t *testing.T) {
	_, err := parser.Parse("test", "notAnOperation Foo { field }")
	assert.NotNil(t, err)
	assert.Contains(t, err.Message, "Unexpected")
}
