package telemetry

// TCS states.
const (
	TCSOff = 0
	TCSOn  = 1
)

// Snapshot is the complete set of last-known-good channel values.
// It is a plain value: copies handed out to readers never alias the owner's.
type Snapshot struct {
	Velocity      int  `json:"velocity"`
	MotorSpeed    int  `json:"motor_speed"`
	Gearbox       Gear `json:"gearbox_state"`
	FuelLevel     int  `json:"fuel_level"`
	ThrottleLevel int  `json:"throttle_level"`
	BrakeLevel    int  `json:"brake_level"`
	TCS           int  `json:"tcs_state"`
}

// Default returns the snapshot every controller starts from.
func Default() Snapshot {
	return Snapshot{
		Gearbox: GearNeutral,
		TCS:     TCSOn,
	}
}

// Get returns the value held for ch: an int, or a Gear for the gearbox.
func (s Snapshot) Get(ch Channel) (any, bool) {
	switch ch {
	case Velocity:
		return s.Velocity, true
	case MotorSpeed:
		return s.MotorSpeed, true
	case Gearbox:
		return s.Gearbox, true
	case FuelLevel:
		return s.FuelLevel, true
	case ThrottleLevel:
		return s.ThrottleLevel, true
	case BrakeLevel:
		return s.BrakeLevel, true
	case TCS:
		return s.TCS, true
	}
	return nil, false
}

// Set stores an already validated value, as returned by Validate.
// It reports false and leaves s untouched when v does not fit ch.
func (s *Snapshot) Set(ch Channel, v any) bool {
	if ch == Gearbox {
		g, ok := v.(Gear)
		if !ok {
			return false
		}
		s.Gearbox = g
		return true
	}

	n, ok := v.(int)
	if !ok {
		return false
	}

	switch ch {
	case Velocity:
		s.Velocity = n
	case MotorSpeed:
		s.MotorSpeed = n
	case FuelLevel:
		s.FuelLevel = n
	case ThrottleLevel:
		s.ThrottleLevel = n
	case BrakeLevel:
		s.BrakeLevel = n
	case TCS:
		s.TCS = n
	default:
		return false
	}
	return true
}
