// Package mqtt feeds readings published by the vehicle over MQTT.
package mqtt

import (
	"context"
	"fmt"
	"time"

	"github.com/autopeer-io/dashboard/internal/dashboard/core"
	"github.com/autopeer-io/dashboard/internal/dashboard/source"
	"github.com/autopeer-io/dashboard/internal/pkg/metrics"
	"github.com/autopeer-io/dashboard/internal/pkg/mqtt/paths"
	"github.com/autopeer-io/dashboard/pkg/log"
	"github.com/autopeer-io/dashboard/pkg/mqtt"
	"github.com/autopeer-io/dashboard/pkg/mqtt/topic"
)

// Name labels readings and metrics coming from this source.
const Name = "mqtt"

const disconnectTimeout = 3 * time.Second

var (
	onlinePayload  = []byte(`{"online":true}`)
	offlinePayload = []byte(`{"online":false}`)
)

var _ core.Source = (*Source)(nil)

// Source subscribes to the telemetry topic of one vehicle.
type Source struct {
	client    mqtt.Client
	topics    *topic.TopicBuilder
	vehicleID string
	qos       int
}

// New returns a source reading {root}/telemetry/{vehicleID} through client.
func New(client mqtt.Client, root, vehicleID string, qos int) *Source {
	return &Source{
		client:    client,
		topics:    topic.NewTopicBuilder(root),
		vehicleID: vehicleID,
		qos:       qos,
	}
}

// OfflineWill is the last-will payload matching the presence reports of Run.
func OfflineWill() []byte { return offlinePayload }

func (s *Source) Name() string { return Name }

// Run connects, subscribes and blocks until ctx is done. Readings are
// ingested in the order the client delivers them. Malformed payloads are
// logged and dropped.
func (s *Source) Run(ctx context.Context, ingest core.IngestFunc) error {
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("start mqtt client: %w", err)
	}

	telemetryTopic := s.topics.Telemetry(s.vehicleID)
	handler := func(_ context.Context, t string, payload []byte) {
		if id, ok := s.topics.VehicleID(paths.Telemetry, t); !ok || id != s.vehicleID {
			log.Debug("Ignoring telemetry of another vehicle", "topic", t)
			return
		}
		r, err := source.DecodeReading(payload)
		if err != nil {
			log.Warn("Dropping telemetry message", "topic", t, "error", err.Error())
			return
		}
		ingest(Name, r)
	}
	if err := s.client.Subscribe(ctx, telemetryTopic, s.qos, handler); err != nil {
		return fmt.Errorf("subscribe %s: %w", telemetryTopic, err)
	}

	go s.announce(ctx)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	if s.client.IsConnected() {
		s.publishPresence(shutdownCtx, offlinePayload)
	}
	s.client.Disconnect(shutdownCtx)
	metrics.SetSourceConnected(Name, false)
	return nil
}

// announce reports the display online once the broker is reachable.
func (s *Source) announce(ctx context.Context) {
	if err := s.client.AwaitConnection(ctx); err != nil {
		return
	}
	s.publishPresence(ctx, onlinePayload)
}

func (s *Source) publishPresence(ctx context.Context, payload []byte) {
	t := s.topics.DisplayOnline(s.vehicleID)
	if err := s.client.Publish(ctx, t, s.qos, true, payload); err != nil {
		log.Warn("Failed to publish display presence", "topic", t, "error", err.Error())
	}
}
