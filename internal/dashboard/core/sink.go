package core

import "github.com/autopeer-io/dashboard/internal/dashboard/telemetry"

// IndicatorSink is the capability set a rendering surface offers the
// controller. Any rendering technology can implement it.
//
// Calls for one update cycle arrive as a burst of Set* calls followed by a
// single RequestRedraw. Implementations must not call back into the
// controller from these methods.
type IndicatorSink interface {
	// SetGaugeValue moves the needle of an analogue gauge (velocity, motor speed).
	SetGaugeValue(name telemetry.Channel, value int)

	// SetBarValue fills a progress bar (fuel, throttle, brake).
	SetBarValue(name telemetry.Channel, value int)

	// SetLabelText replaces the text of a label (gearbox, TCS).
	SetLabelText(name telemetry.Channel, text string)

	// RequestRedraw signals that the cycle is complete and a repaint is due.
	RequestRedraw()
}
