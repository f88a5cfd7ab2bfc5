// Package controller keeps the dashboard snapshot consistent with incoming
// telemetry and tells the rendering surface what to redraw.
package controller

import (
	"sync"

	"github.com/autopeer-io/dashboard/internal/dashboard/core"
	"github.com/autopeer-io/dashboard/internal/dashboard/telemetry"
)

// TCS label texts.
const (
	TCSTextOn  = "ON"
	TCSTextOff = "OFF"
)

// Controller validates partial readings channel by channel and merges the
// accepted values into the snapshot it owns. It is the snapshot's only writer.
//
// Invalid values are dropped silently and the previous value is kept.
// A bad channel never affects the other channels of the same reading.
type Controller struct {
	mu   sync.Mutex
	snap telemetry.Snapshot
	sink core.IndicatorSink
}

// New returns a controller starting from telemetry.Default. sink may be nil.
func New(sink core.IndicatorSink) *Controller {
	return &Controller{
		snap: telemetry.Default(),
		sink: sink,
	}
}

// Update applies r and returns the indicators that changed. The sink receives
// one Set* call per accepted channel and exactly one RequestRedraw per call.
func (c *Controller) Update(r telemetry.Reading) RenderInstruction {
	c.mu.Lock()
	defer c.mu.Unlock()

	ri := make(RenderInstruction, len(r))
	for ch, raw := range r {
		v, err := telemetry.Validate(ch, raw)
		if err != nil {
			continue
		}
		if c.snap.Set(ch, v) {
			ri[ch] = v
		}
	}

	if c.sink != nil {
		for _, ch := range ri.Channels() {
			notify(c.sink, ch, ri[ch])
		}
		c.sink.RequestRedraw()
	}

	return ri
}

// Current returns a copy of the snapshot.
func (c *Controller) Current() telemetry.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// Replay pushes the whole snapshot to sink followed by one redraw, without
// touching state. Used to paint a freshly attached renderer.
func (c *Controller) Replay(sink core.IndicatorSink) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ch := range telemetry.Channels {
		v, _ := c.snap.Get(ch)
		notify(sink, ch, v)
	}
	sink.RequestRedraw()
}

func notify(sink core.IndicatorSink, ch telemetry.Channel, v any) {
	switch ch.Kind() {
	case telemetry.KindGauge:
		sink.SetGaugeValue(ch, v.(int))
	case telemetry.KindBar:
		sink.SetBarValue(ch, v.(int))
	case telemetry.KindLabel:
		sink.SetLabelText(ch, LabelText(ch, v))
	}
}

// LabelText renders a label channel value the way the cluster shows it.
func LabelText(ch telemetry.Channel, v any) string {
	if ch == telemetry.TCS {
		if n, _ := v.(int); n == telemetry.TCSOn {
			return TCSTextOn
		}
		return TCSTextOff
	}
	if g, ok := v.(telemetry.Gear); ok {
		return g.String()
	}
	return ""
}
