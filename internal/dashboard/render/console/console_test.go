package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopeer-io/dashboard/internal/dashboard/telemetry"
)

func TestRendererPrintsTable(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, false)

	r.SetGaugeValue(telemetry.Velocity, 120)
	r.SetBarValue(telemetry.FuelLevel, 75)
	r.SetLabelText(telemetry.Gearbox, "3")
	assert.Zero(t, buf.Len(), "nothing is printed before a redraw")

	r.RequestRedraw()
	require.Equal(t, 1, r.frameCount())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, len(telemetry.Channels)+1)
	assert.Equal(t, []string{"INDICATOR", "KIND", "VALUE"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"velocity", "gauge", "120"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"motor_speed", "gauge", "-"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"gearbox_state", "label", "3"}, strings.Fields(lines[3]))
	assert.Equal(t, []string{"fuel_level", "bar", "75%"}, strings.Fields(lines[4]))
	assert.NotContains(t, buf.String(), clearScreen)
}

func TestRendererClearsInKioskMode(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, true)

	r.RequestRedraw()
	r.RequestRedraw()

	assert.Equal(t, 2, strings.Count(buf.String(), clearScreen))
	assert.True(t, strings.HasPrefix(buf.String(), clearScreen))
}
