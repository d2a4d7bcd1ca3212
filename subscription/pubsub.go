package subscription

import (
	"context"

	"gocloud.dev/pubsub"

	"github.com/shyptr/gqlrun/value"
)

// Decode turns one broker message body into the arguments a
// subscription was opened with and the value to deliver to every
// matching Sink.
type Decode func(body []byte) (args map[string]interface{}, v value.Value, err error)

// PubSubSource pulls messages off a portable pubsub.Subscription and
// fans each one into registry under field, letting an embedder bridge
// an external broker (Kafka, SNS, Cloud Pub/Sub, or the in-memory
// driver for tests) into the registry without the registry itself
// depending on any one broker's SDK.
type PubSubSource struct {
	sub      *pubsub.Subscription
	registry *Registry
	field    string
	decode   Decode
}

// NewPubSubSource returns a source that delivers decoded messages from
// sub to registry's field subscribers until Run's context is done.
func NewPubSubSource(sub *pubsub.Subscription, registry *Registry, field string, decode Decode) *PubSubSource {
	return &PubSubSource{sub: sub, registry: registry, field: field, decode: decode}
}

// Run receives messages until ctx is cancelled or the underlying
// subscription is shut down, returning the error that ended the loop.
// A message that fails to decode is nacked and skipped rather than
// aborting the whole source.
func (p *PubSubSource) Run(ctx context.Context) error {
	for {
		msg, err := p.sub.Receive(ctx)
		if err != nil {
			return err
		}
		args, v, err := p.decode(msg.Body)
		if err != nil {
			msg.Nack()
			continue
		}
		p.registry.Deliver(p.field, args, v)
		msg.Ack()
	}
}
