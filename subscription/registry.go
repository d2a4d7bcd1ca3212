// Package subscription implements the long-lived counterpart to a
// single request/response execution: a Registry tracks every live
// subscription keyed by the field it was opened against and the
// fingerprint of the arguments it was opened with, and Deliver fans a
// newly published value out to every Sink registered under a matching
// fingerprint.
//
// The registry itself is transport-agnostic: WSSink and PubSubSource
// are the two adapters this package ships, bridging a raw
// gorilla/websocket connection and a gocloud.dev/pubsub subscription
// respectively into the Sink/publish interfaces below, but an embedder
// is free to implement Sink directly against any other transport.
package subscription

import (
	"reflect"
	"sync"

	"github.com/shyptr/gqlrun/value"
)

// Sink receives values published to a subscription it is registered
// under, until either the subscriber disconnects (Close) or delivery
// itself starts failing, at which point Registry evicts it.
type Sink interface {
	Deliver(v value.Value) error
	Close() error
}

// Subscription is one Sink's live registration against a field and a
// specific set of arguments.
type Subscription struct {
	ID          string
	Field       string
	Args        map[string]interface{}
	fingerprint string
	Sink        Sink
}

// matches reports whether sub was registered under the same arguments
// as args, either by fingerprint equality or, for the rare unhashable
// case, by a structural comparison of the two argument maps.
func (sub *Subscription) matches(fp string, args map[string]interface{}) bool {
	if fp != unhashable {
		return sub.fingerprint == fp
	}
	return sub.fingerprint == unhashable && reflect.DeepEqual(sub.Args, args)
}

// Registry maps field name to every Subscription currently registered
// against it.
type Registry struct {
	mu   sync.RWMutex
	subs map[string][]*Subscription
}

// NewRegistry returns an empty Registry ready for use.
func NewRegistry() *Registry {
	return &Registry{subs: make(map[string][]*Subscription)}
}

// Register adds sink under field and the fingerprint of args, returning
// the Subscription so the caller can later Unsubscribe it by ID.
func (r *Registry) Register(id, field string, args map[string]interface{}, sink Sink) *Subscription {
	sub := &Subscription{ID: id, Field: field, Args: args, fingerprint: Fingerprint(args), Sink: sink}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs[field] = append(r.subs[field], sub)
	return sub
}

// Unsubscribe removes the subscription with id from field, closing its
// Sink. It is a no-op if no such subscription is registered.
func (r *Registry) Unsubscribe(field, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	subs := r.subs[field]
	for i, sub := range subs {
		if sub.ID != id {
			continue
		}
		sub.Sink.Close()
		r.subs[field] = append(subs[:i], subs[i+1:]...)
		return
	}
}

// Deliver fans v out to every Sink registered for field under
// arguments matching args, evicting and closing any Sink whose Deliver
// call returns an error (a disconnected websocket, most commonly).
func (r *Registry) Deliver(field string, args map[string]interface{}, v value.Value) {
	fp := Fingerprint(args)

	r.mu.RLock()
	var matched []*Subscription
	for _, sub := range r.subs[field] {
		if sub.matches(fp, args) {
			matched = append(matched, sub)
		}
	}
	r.mu.RUnlock()

	var dead []string
	for _, sub := range matched {
		if err := sub.Sink.Deliver(v); err != nil {
			dead = append(dead, sub.ID)
		}
	}
	for _, id := range dead {
		r.Unsubscribe(field, id)
	}
}

// Count reports how many subscriptions are currently registered for
// field, across every fingerprint bucket.
func (r *Registry) Count(field string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs[field])
}
