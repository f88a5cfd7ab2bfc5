package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopeer-io/dashboard/internal/dashboard/telemetry"
)

func TestDecodeReading(t *testing.T) {
	r, err := DecodeReading([]byte(`{"velocity":120,"gearbox_state":"3","fuel_level":200,"tcs_state":true,"brake_level":null}`))
	require.NoError(t, err)

	assert.Equal(t, telemetry.Reading{
		telemetry.Velocity:   120.0,
		telemetry.Gearbox:    "3",
		telemetry.FuelLevel:  200.0,
		telemetry.TCS:        true,
		telemetry.BrakeLevel: nil,
	}, r)

	_, err = telemetry.Validate(telemetry.Velocity, r[telemetry.Velocity])
	assert.NoError(t, err, "JSON integers validate")
	_, err = telemetry.Validate(telemetry.BrakeLevel, r[telemetry.BrakeLevel])
	assert.Error(t, err, "null is a supplied but invalid value")
}

func TestDecodeReadingEmptyObject(t *testing.T) {
	r, err := DecodeReading([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, r)
}

func TestDecodeReadingMalformed(t *testing.T) {
	for _, payload := range []string{``, `[]`, `120`, `"velocity"`, `{"velocity":`, `{velocity:1}`} {
		_, err := DecodeReading([]byte(payload))
		assert.ErrorIs(t, err, ErrMalformedPayload, payload)
	}
}

func TestEncodeReadingRoundTrip(t *testing.T) {
	in := telemetry.Reading{telemetry.Velocity: 42, telemetry.Gearbox: telemetry.Gear2}

	payload, err := EncodeReading(in)
	require.NoError(t, err)

	out, err := DecodeReading(payload)
	require.NoError(t, err)
	assert.Equal(t, telemetry.Reading{telemetry.Velocity: 42.0, telemetry.Gearbox: "2"}, out)
}
