// Package render holds the indicator surfaces the dashboard can drive.
package render

import (
	"github.com/autopeer-io/dashboard/internal/dashboard/core"
	"github.com/autopeer-io/dashboard/internal/dashboard/telemetry"
)

var _ core.IndicatorSink = Multi(nil)

// Multi fans every indicator call out to each sink in order.
type Multi []core.IndicatorSink

// NewMulti drops nil sinks.
func NewMulti(sinks ...core.IndicatorSink) Multi {
	m := make(Multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			m = append(m, s)
		}
	}
	return m
}

func (m Multi) SetGaugeValue(name telemetry.Channel, value int) {
	for _, s := range m {
		s.SetGaugeValue(name, value)
	}
}

func (m Multi) SetBarValue(name telemetry.Channel, value int) {
	for _, s := range m {
		s.SetBarValue(name, value)
	}
}

func (m Multi) SetLabelText(name telemetry.Channel, text string) {
	for _, s := range m {
		s.SetLabelText(name, text)
	}
}

func (m Multi) RequestRedraw() {
	for _, s := range m {
		s.RequestRedraw()
	}
}
