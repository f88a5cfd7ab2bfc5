// Package sim produces a synthetic drive cycle for bench testing a display
// without a vehicle.
package sim

import (
	"math"
	"math/rand/v2"

	"github.com/autopeer-io/dashboard/internal/dashboard/telemetry"
)

// cycleSteps is the length of one acceleration and braking cycle.
const cycleSteps = 240

// gearSpeeds are the upshift points in km/h.
var gearSpeeds = []int{0, 20, 45, 70, 95}

// Generator emits partial readings. Every channel is present with
// probability Coverage; with probability InvalidRatio a present value is
// replaced by one the display must reject.
type Generator struct {
	Coverage     float64
	InvalidRatio float64

	rnd  *rand.Rand
	step int
	fuel float64
}

// NewGenerator returns a generator whose sequence is fixed by seed.
func NewGenerator(seed uint64, coverage, invalidRatio float64) *Generator {
	return &Generator{
		Coverage:     coverage,
		InvalidRatio: invalidRatio,
		rnd:          rand.New(rand.NewPCG(seed, seed^0x5eed)),
		fuel:         99,
	}
}

// Next advances the cycle by one step.
func (g *Generator) Next() telemetry.Reading {
	phase := float64(g.step%cycleSteps) / cycleSteps
	g.step++

	// Speed follows a half sine: accelerate, cruise, brake.
	speed := int(149 * math.Sin(math.Pi*phase))
	accelerating := phase < 0.5
	g.fuel = math.Max(0, g.fuel-0.02)

	full := map[telemetry.Channel]any{
		telemetry.Velocity:   speed,
		telemetry.MotorSpeed: min(49, 8+speed*41/149),
		telemetry.Gearbox:    gearFor(speed),
		telemetry.FuelLevel:  int(g.fuel),
		telemetry.TCS:        telemetry.TCSOn,
	}
	if accelerating {
		full[telemetry.ThrottleLevel] = int(99 * math.Cos(math.Pi*phase))
		full[telemetry.BrakeLevel] = 0
	} else {
		full[telemetry.ThrottleLevel] = 0
		full[telemetry.BrakeLevel] = int(99 * -math.Cos(math.Pi*phase))
	}
	if speed > 120 {
		full[telemetry.TCS] = telemetry.TCSOff
	}

	r := make(telemetry.Reading, len(full))
	for _, ch := range telemetry.Channels {
		if g.rnd.Float64() >= g.Coverage {
			continue
		}
		v := full[ch]
		if g.rnd.Float64() < g.InvalidRatio {
			v = invalidFor(ch)
		}
		r[ch] = v
	}
	return r
}

func gearFor(speed int) telemetry.Gear {
	if speed == 0 {
		return telemetry.GearNeutral
	}
	gear := 1
	for i, threshold := range gearSpeeds {
		if speed >= threshold {
			gear = i + 1
		}
	}
	return telemetry.Gears[gear]
}

func invalidFor(ch telemetry.Channel) any {
	switch ch {
	case telemetry.Gearbox:
		return "6"
	case telemetry.TCS:
		return 2
	}
	bound, _ := ch.UpperBound()
	return int(bound)
}
