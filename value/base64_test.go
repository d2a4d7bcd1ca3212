package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shyptr/gqlrun/value"
)

func TestBase64_ToFromRoundTrips(t *testing.T) {
	for _, raw := range [][]byte{
		nil,
		[]byte("a"),
		[]byte("ab"),
		[]byte("abc"),
		[]byte("hello world"),
	} {
		encoded := value.ToBase64(raw)
		decoded, ok := value.FromBase64(encoded)
		assert.True(t, ok)
		assert.Equal(t, raw, decoded)
	}
}

func TestBase64_FromBase64RejectsMalformedPadding(t *testing.T) {
	_, ok := value.FromBase64("a===")
	assert.False(t, ok)
}

func TestBase64_CompareBase64MatchesExactBytes(t *testing.T) {
	encoded := value.ToBase64([]byte("1000"))
	assert.Equal(t, value.EqualTo, value.CompareBase64([]byte("1000"), encoded))
}

func TestBase64_CompareBase64OrdersByteForByte(t *testing.T) {
	encoded := value.ToBase64([]byte("1001"))
	assert.Equal(t, value.LessThan, value.CompareBase64([]byte("1000"), encoded))
	assert.Equal(t, value.GreaterThan, value.CompareBase64([]byte("1002"), encoded))
}

func TestBase64_CompareBase64TreatsShorterPrefixAsLess(t *testing.T) {
	encoded := value.ToBase64([]byte("1000"))
	assert.Equal(t, value.LessThan, value.CompareBase64([]byte("100"), encoded))
	assert.Equal(t, value.GreaterThan, value.CompareBase64([]byte("10000"), encoded))
}

func TestBase64_CompareBase64ReportsInvalidEncoding(t *testing.T) {
	assert.Equal(t, value.InvalidBase64, value.CompareBase64([]byte("1000"), "not base64!!"))
}

func TestBase64_CompareBase64EmptyAgainstEmpty(t *testing.T) {
	assert.Equal(t, value.EqualTo, value.CompareBase64(nil, ""))
}
