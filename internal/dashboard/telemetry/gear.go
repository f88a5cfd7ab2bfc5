package telemetry

// Gear is the gearbox position shown on the central label.
type Gear string

const (
	GearNeutral Gear = "N"
	Gear1       Gear = "1"
	Gear2       Gear = "2"
	Gear3       Gear = "3"
	Gear4       Gear = "4"
	Gear5       Gear = "5"
)

// Gears lists every valid gearbox position.
var Gears = []Gear{GearNeutral, Gear1, Gear2, Gear3, Gear4, Gear5}

// Valid reports whether g is exactly one of Gears. No trimming or case folding.
func (g Gear) Valid() bool {
	switch g {
	case GearNeutral, Gear1, Gear2, Gear3, Gear4, Gear5:
		return true
	}
	return false
}

func (g Gear) String() string {
	return string(g)
}
