package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidChannelValue is the only failure a reading can produce.
	// The controller swallows it; it is exported for diagnostics.
	ErrInvalidChannelValue = errors.New("invalid channel value")

	// ErrUnknownChannel marks a key that is not a dashboard channel.
	ErrUnknownChannel = errors.New("unknown channel")
)

// Validate checks raw against the domain of ch and returns the normalised
// value to store: an int for numeric channels and TCS, a Gear for the gearbox.
//
// Numeric range channels accept integral values only, whatever their Go
// representation (fractional, NaN, bool and string inputs are rejected).
// The gearbox accepts exactly one of Gears. TCS accepts 0, 1, true or false.
func Validate(ch Channel, raw any) (any, error) {
	switch ch {
	case Gearbox:
		var g Gear
		switch v := raw.(type) {
		case Gear:
			g = v
		case string:
			g = Gear(v)
		default:
			return nil, invalid(ch, raw)
		}
		if !g.Valid() {
			return nil, invalid(ch, raw)
		}
		return g, nil

	case TCS:
		if b, ok := raw.(bool); ok {
			if b {
				return TCSOn, nil
			}
			return TCSOff, nil
		}
		n, ok := integral(raw)
		if !ok || (n != TCSOff && n != TCSOn) {
			return nil, invalid(ch, raw)
		}
		return int(n), nil
	}

	bound, ok := ch.UpperBound()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChannel, string(ch))
	}

	n, ok := integral(raw)
	if !ok || n < 0 || n >= bound {
		return nil, invalid(ch, raw)
	}
	return int(n), nil
}

func invalid(ch Channel, raw any) error {
	return fmt.Errorf("%w: %s=%v (%T)", ErrInvalidChannelValue, ch, raw, raw)
}

// integral converts raw to an int64 when it carries an exact integer.
func integral(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return fromUint(uint64(v))
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return fromUint(v)
	case float32:
		return fromFloat(float64(v))
	case float64:
		return fromFloat(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return fromFloat(f)
	}
	return 0, false
}

func fromUint(v uint64) (int64, bool) {
	if v > math.MaxInt64 {
		return 0, false
	}
	return int64(v), true
}

func fromFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
