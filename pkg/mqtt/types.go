package mqtt

import (
	"context"
)

// MessageHandler processes one message received on a subscribed filter.
// Handlers are called on the receive loop in arrival order and must return
// quickly; the dashboard handlers decode and apply a reading, nothing more.
type MessageHandler func(ctx context.Context, topic string, payload []byte)

// Client is the broker connection shared by the dashboard telemetry source
// and the telemetry simulator.
type Client interface {
	// Start begins connecting in the background and returns immediately.
	// Use AwaitConnection to wait for the first CONNACK.
	Start(ctx context.Context) error

	// Disconnect sends DISCONNECT and stops reconnecting. The last will is
	// not published on a clean disconnect.
	Disconnect(ctx context.Context)

	// Publish sends payload to topic. Presence reports use retain.
	Publish(ctx context.Context, topic string, qos int, retain bool, payload []byte) error

	// Subscribe registers handler for a topic filter. Filters registered
	// before the connection is up, or lost with it, are subscribed again on
	// every reconnect.
	Subscribe(ctx context.Context, topic string, qos int, handler MessageHandler) error

	// Unsubscribe forgets the filter and sends UNSUBSCRIBE.
	Unsubscribe(ctx context.Context, topic string) error

	// AwaitConnection blocks until the client is connected or ctx is done.
	AwaitConnection(ctx context.Context) error

	// IsConnected reports the state of the last connection attempt.
	IsConnected() bool
}
