package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/autopeer-io/dashboard/internal/dashboard/source"
	"github.com/autopeer-io/dashboard/pkg/log"
	"github.com/autopeer-io/dashboard/pkg/mqtt"
)

// Publisher sends one generated reading per tick to a telemetry topic.
type Publisher struct {
	client   mqtt.Client
	gen      *Generator
	topic    string
	qos      int
	interval time.Duration
}

func NewPublisher(client mqtt.Client, gen *Generator, topic string, qos int, interval time.Duration) *Publisher {
	return &Publisher{
		client:   client,
		gen:      gen,
		topic:    topic,
		qos:      qos,
		interval: interval,
	}
}

// Run publishes until ctx is done. Publish failures are logged and the
// cycle continues.
func (p *Publisher) Run(ctx context.Context) error {
	if err := p.client.Start(ctx); err != nil {
		return fmt.Errorf("start mqtt client: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		p.client.Disconnect(shutdownCtx)
	}()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var sent uint64
	for {
		select {
		case <-ctx.Done():
			log.Info("Publisher loop stopping", "sent", sent)
			return nil
		case <-ticker.C:
			if err := p.client.AwaitConnection(ctx); err != nil {
				// Only happens when ctx is cancelled.
				continue
			}
			if err := p.publish(ctx); err != nil {
				log.Warn("Failed to publish reading", "topic", p.topic, "error", err.Error())
				continue
			}
			sent++
		}
	}
}

func (p *Publisher) publish(ctx context.Context) error {
	r := p.gen.Next()
	payload, err := source.EncodeReading(r)
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, p.topic, p.qos, false, payload); err != nil {
		return err
	}
	log.Debug("Sent reading", "topic", p.topic, "channels", r.Supplied())
	return nil
}
