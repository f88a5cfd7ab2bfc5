// Package telemetry holds the vehicle state model shown on the instrument
// cluster: the channel catalogue, the last-known-good snapshot and the
// per-channel validation rules.
package telemetry

// Channel names one telemetry quantity. The string values are the wire names
// used by every source payload and by the render instructions.
type Channel string

const (
	Velocity      Channel = "velocity"
	MotorSpeed    Channel = "motor_speed"
	Gearbox       Channel = "gearbox_state"
	FuelLevel     Channel = "fuel_level"
	ThrottleLevel Channel = "throttle_level"
	BrakeLevel    Channel = "brake_level"
	TCS           Channel = "tcs_state"
)

// Channels lists every channel in rendering order.
var Channels = []Channel{
	Velocity,
	MotorSpeed,
	Gearbox,
	FuelLevel,
	ThrottleLevel,
	BrakeLevel,
	TCS,
}

// Kind is the indicator widget family a channel is drawn with.
type Kind int

const (
	KindUnknown Kind = iota
	KindGauge
	KindBar
	KindLabel
)

func (k Kind) String() string {
	switch k {
	case KindGauge:
		return "gauge"
	case KindBar:
		return "bar"
	case KindLabel:
		return "label"
	default:
		return "unknown"
	}
}

// upperBounds holds the exclusive upper bound of every numeric range channel.
var upperBounds = map[Channel]int64{
	Velocity:      150,
	MotorSpeed:    50,
	FuelLevel:     100,
	ThrottleLevel: 100,
	BrakeLevel:    100,
}

// Known reports whether c is one of the seven dashboard channels.
func (c Channel) Known() bool {
	return c.Kind() != KindUnknown
}

// Kind returns the indicator family used to draw c.
func (c Channel) Kind() Kind {
	switch c {
	case Velocity, MotorSpeed:
		return KindGauge
	case FuelLevel, ThrottleLevel, BrakeLevel:
		return KindBar
	case Gearbox, TCS:
		return KindLabel
	default:
		return KindUnknown
	}
}

// UpperBound returns the exclusive upper bound of a range channel.
func (c Channel) UpperBound() (int64, bool) {
	b, ok := upperBounds[c]
	return b, ok
}

func (c Channel) String() string {
	return string(c)
}
