package telemetry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSnapshot(t *testing.T) {
	s := Default()
	assert.Equal(t, Snapshot{Gearbox: GearNeutral, TCS: TCSOn}, s)

	for _, ch := range Channels {
		_, ok := s.Get(ch)
		assert.True(t, ok, ch)
	}
	_, ok := s.Get("rpm")
	assert.False(t, ok)
}

func TestSnapshotSet(t *testing.T) {
	s := Default()

	assert.True(t, s.Set(Velocity, 120))
	assert.True(t, s.Set(Gearbox, Gear4))
	assert.True(t, s.Set(TCS, TCSOff))

	assert.False(t, s.Set(Gearbox, "4"), "raw strings are not validated gears")
	assert.False(t, s.Set(FuelLevel, int64(3)), "only normalised ints are stored")
	assert.False(t, s.Set("rpm", 3))

	assert.Equal(t, 120, s.Velocity)
	assert.Equal(t, Gear4, s.Gearbox)
	assert.Equal(t, TCSOff, s.TCS)
	assert.Equal(t, 0, s.FuelLevel)
}

func TestSnapshotJSON(t *testing.T) {
	b, err := json.Marshal(Default())
	require.NoError(t, err)
	assert.JSONEq(t, `{"velocity":0,"motor_speed":0,"gearbox_state":"N","fuel_level":0,"throttle_level":0,"brake_level":0,"tcs_state":1}`, string(b))
}

func TestReadingSupplied(t *testing.T) {
	r := Reading{Velocity: 1, BrakeLevel: 2, Gearbox: "N"}
	assert.Equal(t, []Channel{BrakeLevel, Gearbox, Velocity}, r.Supplied())
}
