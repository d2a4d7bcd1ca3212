package subscription_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shyptr/gqlrun/subscription"
	"github.com/shyptr/gqlrun/value"
)

type recordingSink struct {
	delivered []value.Value
	closed    bool
	failNext  bool
}

func (s *recordingSink) Deliver(v value.Value) error {
	if s.failNext {
		return errors.New("delivery failed")
	}
	s.delivered = append(s.delivered, v)
	return nil
}

func (s *recordingSink) Close() error {
	s.closed = true
	return nil
}

func TestRegistry_DeliverMatchesOnArguments(t *testing.T) {
	r := subscription.NewRegistry()
	matching := &recordingSink{}
	other := &recordingSink{}

	r.Register("a", "onMessage", map[string]interface{}{"room": "general"}, matching)
	r.Register("b", "onMessage", map[string]interface{}{"room": "random"}, other)

	r.Deliver("onMessage", map[string]interface{}{"room": "general"}, value.NewString("hi"))

	assert.Len(t, matching.delivered, 1)
	assert.Empty(t, other.delivered)
}

func TestRegistry_DeliverEvictsFailingSinks(t *testing.T) {
	r := subscription.NewRegistry()
	sink := &recordingSink{failNext: true}
	r.Register("a", "onMessage", nil, sink)

	r.Deliver("onMessage", nil, value.NewString("hi"))

	assert.True(t, sink.closed)
	assert.Equal(t, 0, r.Count("onMessage"))
}

func TestRegistry_Unsubscribe(t *testing.T) {
	r := subscription.NewRegistry()
	sink := &recordingSink{}
	r.Register("a", "onMessage", nil, sink)
	assert.Equal(t, 1, r.Count("onMessage"))

	r.Unsubscribe("onMessage", "a")

	assert.Equal(t, 0, r.Count("onMessage"))
	assert.True(t, sink.closed)
}

func TestFingerprint_OrderIndependent(t *testing.T) {
	a := map[string]interface{}{"x": 1, "y": "two"}
	b := map[string]interface{}{"y": "two", "x": 1}

	assert.Equal(t, subscription.Fingerprint(a), subscription.Fingerprint(b))
}

func TestFingerprint_DifferentArgsDiffer(t *testing.T) {
	a := map[string]interface{}{"x": 1}
	b := map[string]interface{}{"x": 2}

	assert.NotEqual(t, subscription.Fingerprint(a), subscription.Fingerprint(b))
}

func TestRegistry_UnhashableArgsFallBackToStructuralMatch(t *testing.T) {
	r := subscription.NewRegistry()
	sink := &recordingSink{}
	// complex128 cannot be JSON-encoded, forcing Fingerprint's
	// reflect.DeepEqual fallback path.
	args := map[string]interface{}{"c": complex(1, 2)}

	r.Register("a", "onTick", args, sink)
	r.Deliver("onTick", map[string]interface{}{"c": complex(1, 2)}, value.NewBool(true))

	assert.Len(t, sink.delivered, 1)
}
