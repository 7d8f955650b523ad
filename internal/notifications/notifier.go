package notifications

import (
	"context"
)

// Notifier is the fire-and-forget boundary the core talks to. Callers log
// failures and move on; a notification must never block or roll back a state
// transition.
type Notifier interface {
	Notify(ctx context.Context, kind Kind, recipient string, data map[string]interface{}) error
}

// KafkaNotifier publishes notification requests onto the bus for the
// external delivery collaborator
type KafkaNotifier struct {
	producer *KafkaProducer
}

func NewKafkaNotifier(producer *KafkaProducer) *KafkaNotifier {
	return &KafkaNotifier{producer: producer}
}

func (n *KafkaNotifier) Notify(ctx context.Context, kind Kind, recipient string, data map[string]interface{}) error {
	return n.producer.Publish(NewMessage(kind, recipient, data))
}

// NoopNotifier drops every notification. Used when the bus is not configured
// and in tests.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier {
	return &NoopNotifier{}
}

func (n *NoopNotifier) Notify(ctx context.Context, kind Kind, recipient string, data map[string]interface{}) error {
	return nil
}
