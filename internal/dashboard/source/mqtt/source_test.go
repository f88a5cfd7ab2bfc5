package mqtt

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopeer-io/dashboard/internal/dashboard/controller"
	"github.com/autopeer-io/dashboard/internal/dashboard/telemetry"
	"github.com/autopeer-io/dashboard/pkg/mqtt"
)

type published struct {
	topic   string
	payload string
}

type fakeClient struct {
	mu        sync.Mutex
	started   bool
	stopped   bool
	handlers  map[string]mqtt.MessageHandler
	published []published
}

func newFakeClient() *fakeClient {
	return &fakeClient{handlers: make(map[string]mqtt.MessageHandler)}
}

func (f *fakeClient) Start(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = true
	return nil
}

func (f *fakeClient) Disconnect(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeClient) Publish(_ context.Context, topic string, _ int, _ bool, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, published{topic, string(payload)})
	return nil
}

func (f *fakeClient) Subscribe(_ context.Context, topic string, _ int, h mqtt.MessageHandler) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[topic] = h
	return nil
}

func (f *fakeClient) Unsubscribe(context.Context, string) error { return nil }

func (f *fakeClient) AwaitConnection(context.Context) error { return nil }

func (f *fakeClient) IsConnected() bool { return true }

func (f *fakeClient) handler(topic string) mqtt.MessageHandler {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.handlers[topic]
}

func (f *fakeClient) presence() []published {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]published(nil), f.published...)
}

func TestSourceIngestsTelemetry(t *testing.T) {
	client := newFakeClient()
	src := New(client, "iov/v1", "vh-1", 1)
	assert.Equal(t, Name, src.Name())

	var (
		mu  sync.Mutex
		got []telemetry.Reading
	)
	ingest := func(name string, r telemetry.Reading) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, Name, name)
		got = append(got, r)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- src.Run(ctx, ingest) }()

	var h mqtt.MessageHandler
	require.Eventually(t, func() bool {
		h = client.handler("iov/v1/telemetry/vh-1")
		return h != nil
	}, time.Second, 5*time.Millisecond)

	h(ctx, "iov/v1/telemetry/vh-1", []byte(`{"velocity":99}`))
	h(ctx, "iov/v1/telemetry/vh-1", []byte(`not json`))

	require.Eventually(t, func() bool {
		return len(client.presence()) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	assert.Equal(t, []telemetry.Reading{{telemetry.Velocity: 99.0}}, got)
	mu.Unlock()

	assert.True(t, client.stopped)
	assert.Equal(t, []published{
		{"iov/v1/display/online/vh-1", `{"online":true}`},
		{"iov/v1/display/online/vh-1", `{"online":false}`},
	}, client.presence())
}

func runSource(t *testing.T, src *Source, ingest func(string, telemetry.Reading)) (mqtt.MessageHandler, func()) {
	t.Helper()
	client := src.client.(*fakeClient)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- src.Run(ctx, ingest) }()

	var h mqtt.MessageHandler
	require.Eventually(t, func() bool {
		h = client.handler(src.topics.Telemetry(src.vehicleID))
		return h != nil
	}, time.Second, 5*time.Millisecond)

	return h, func() {
		cancel()
		require.NoError(t, <-done)
	}
}

func TestSourceLastPublishedValueWins(t *testing.T) {
	src := New(newFakeClient(), "iov/v1", "vh-1", 0)
	ctrl := controller.New(nil)

	h, stop := runSource(t, src, func(_ string, r telemetry.Reading) { ctrl.Update(r) })

	const last = 149
	for v := 0; v <= last; v++ {
		h(context.Background(), "iov/v1/telemetry/vh-1", []byte(fmt.Sprintf(`{"velocity":%d}`, v)))
	}
	stop()

	snap := ctrl.Current()
	got, ok := snap.Get(telemetry.Velocity)
	require.True(t, ok)
	assert.Equal(t, last, got)
}

func TestSourceIgnoresOtherVehicles(t *testing.T) {
	src := New(newFakeClient(), "iov/v1", "vh-1", 0)

	var got []telemetry.Reading
	h, stop := runSource(t, src, func(_ string, r telemetry.Reading) { got = append(got, r) })

	h(context.Background(), "iov/v1/telemetry/vh-2", []byte(`{"velocity":10}`))
	h(context.Background(), "iov/v1/telemetry/vh-1/extra", []byte(`{"velocity":11}`))
	h(context.Background(), "iov/v1/telemetry/vh-1", []byte(`{"velocity":12}`))
	stop()

	assert.Equal(t, []telemetry.Reading{{telemetry.Velocity: 12.0}}, got)
}
