package value_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shyptr/gqlrun/value"
)

func TestValue_ZeroValueIsNull(t *testing.T) {
	var v value.Value
	assert.True(t, v.IsNull())
	assert.Equal(t, value.KindNull, v.Kind())
}

func TestMap_SetRejectsDuplicateKeysAndPreservesOrder(t *testing.T) {
	m := value.NewMap()
	assert.True(t, m.Set("a", value.NewInt(1)))
	assert.True(t, m.Set("b", value.NewInt(2)))
	assert.False(t, m.Set("a", value.NewInt(99)))

	assert.Equal(t, []string{"a", "b"}, m.Keys())
	v, _ := m.Get("a")
	i, _ := v.Int()
	assert.Equal(t, int32(1), i)
}

func TestMap_ReplacePreservesInsertionPosition(t *testing.T) {
	m := value.NewMap()
	m.Set("a", value.NewInt(1))
	m.Set("b", value.NewInt(2))
	m.Replace("a", value.NewInt(42))

	assert.Equal(t, []string{"a", "b"}, m.Keys())
	v, _ := m.Get("a")
	i, _ := v.Int()
	assert.Equal(t, int32(42), i)
}

func TestValue_CloneIsIndependentForContainerKinds(t *testing.T) {
	inner := value.NewMap()
	inner.Set("x", value.NewInt(1))
	original := value.NewMapValue(inner)

	clone := original.Clone()
	cm, _ := clone.Map()
	cm.Replace("x", value.NewInt(2))

	om, _ := original.Map()
	v, _ := om.Get("x")
	i, _ := v.Int()
	assert.Equal(t, int32(1), i, "mutating the clone must not affect the original")
}

func TestValue_Equal(t *testing.T) {
	assert.True(t, value.Equal(value.NewInt(1), value.NewInt(1)))
	assert.False(t, value.Equal(value.NewInt(1), value.NewInt(2)))
	assert.False(t, value.Equal(value.NewInt(1), value.NewFloat(1)))
	assert.True(t, value.Equal(value.Null, value.Null))

	a := value.NewList(value.NewString("x"), value.NewString("y"))
	b := value.NewList(value.NewString("x"), value.NewString("y"))
	c := value.NewList(value.NewString("x"))
	assert.True(t, value.Equal(a, b))
	assert.False(t, value.Equal(a, c))
}

func TestFromJSONNumber_PromotesOverflowToFloat(t *testing.T) {
	small := value.FromJSONNumber(json.Number("42"))
	i, ok := small.Int()
	assert.True(t, ok)
	assert.Equal(t, int32(42), i)

	huge := value.FromJSONNumber(json.Number("99999999999"))
	f, ok := huge.Float()
	assert.True(t, ok)
	assert.Equal(t, float64(99999999999), f)
}

func TestValue_MarshalJSON(t *testing.T) {
	m := value.NewMap()
	m.Set("name", value.NewString("Luke"))
	m.Set("id", value.NewID([]byte("1000")))
	m.Set("friends", value.NewList(value.NewInt(1), value.Null))

	body, err := json.Marshal(value.NewMapValue(m))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"name":"Luke","id":"MTAwMA==","friends":[1,null]}`, string(body))
}
