package controller

import "github.com/autopeer-io/dashboard/internal/dashboard/telemetry"

// RenderInstruction maps each indicator that must be redrawn after one update
// to its new value: an int for numeric channels and TCS, a telemetry.Gear for
// the gearbox. It only contains channels that were supplied and valid.
type RenderInstruction map[telemetry.Channel]any

// Channels returns the instruction's channels in rendering order.
func (ri RenderInstruction) Channels() []telemetry.Channel {
	out := make([]telemetry.Channel, 0, len(ri))
	for _, ch := range telemetry.Channels {
		if _, ok := ri[ch]; ok {
			out = append(out, ch)
		}
	}
	return out
}

// Rejected returns the channels of r that did not make it into ri.
func (ri RenderInstruction) Rejected(r telemetry.Reading) []telemetry.Channel {
	var out []telemetry.Channel
	for _, ch := range r.Supplied() {
		if _, ok := ri[ch]; !ok {
			out = append(out, ch)
		}
	}
	return out
}
