package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	gqlerrors "github.com/shyptr/gqlrun/errors"
)

func TestGraphQLError_ErrorIncludesMessageLocationsAndPath(t *testing.T) {
	err := &gqlerrors.GraphQLError{
		Message:   "field not found",
		Locations: []gqlerrors.Location{{Line: 2, Column: 5}},
		Path:      []interface{}{"hero", "name"},
	}
	assert.Contains(t, err.Error(), "graphql: field not found")
	assert.Contains(t, err.Error(), "(2:5)")
	assert.Contains(t, err.Error(), "path: [hero name]")
}

func TestGraphQLError_ErrorIncludesWrappedResolverError(t *testing.T) {
	err := &gqlerrors.GraphQLError{
		Message:       "internal error",
		ResolverError: errors.New("db connection refused"),
	}
	assert.Contains(t, err.Error(), "db connection refused")
}

func TestGraphQLError_ErrorOnNilReceiverDoesNotPanic(t *testing.T) {
	var err *gqlerrors.GraphQLError
	assert.Equal(t, "<nil>", err.Error())
}

func TestMultiError_ErrorJoinsEachUnderlyingMessage(t *testing.T) {
	m := gqlerrors.MultiError{
		gqlerrors.New("first problem"),
		gqlerrors.New("second problem"),
	}
	s := m.Error()
	assert.Contains(t, s, "first problem")
	assert.Contains(t, s, "second problem")
}

func TestLocation_BeforeOrdersByLineThenColumn(t *testing.T) {
	a := gqlerrors.Location{Line: 1, Column: 9}
	b := gqlerrors.Location{Line: 2, Column: 1}
	c := gqlerrors.Location{Line: 1, Column: 10}

	assert.True(t, a.Before(b))
	assert.True(t, a.Before(c))
	assert.False(t, b.Before(a))
}

func TestNew_FormatsMessageLikeFmtSprintf(t *testing.T) {
	err := gqlerrors.New("unknown field %q on type %q", "nickname", "Human")
	assert.Equal(t, `unknown field "nickname" on type "Human"`, err.Message)
}
