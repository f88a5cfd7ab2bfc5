package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/autopeer-io/dashboard/internal/dashboard/telemetry"
	pkgmetrics "github.com/autopeer-io/dashboard/internal/pkg/metrics"
)

func indicator(ch telemetry.Channel) float64 {
	return testutil.ToFloat64(pkgmetrics.IndicatorValue.WithLabelValues(ch.String()))
}

func TestSinkMirrorsIndicators(t *testing.T) {
	var s Sink

	s.SetGaugeValue(telemetry.Velocity, 120)
	s.SetBarValue(telemetry.BrakeLevel, 30)
	s.SetLabelText(telemetry.Gearbox, "4")
	s.SetLabelText(telemetry.TCS, "OFF")

	assert.Equal(t, 120.0, indicator(telemetry.Velocity))
	assert.Equal(t, 30.0, indicator(telemetry.BrakeLevel))
	assert.Equal(t, 4.0, indicator(telemetry.Gearbox))
	assert.Equal(t, 0.0, indicator(telemetry.TCS))

	s.SetLabelText(telemetry.Gearbox, "N")
	s.SetLabelText(telemetry.TCS, "ON")
	assert.Equal(t, 0.0, indicator(telemetry.Gearbox))
	assert.Equal(t, 1.0, indicator(telemetry.TCS))

	s.SetLabelText(telemetry.Gearbox, "reverse")
	assert.Equal(t, 0.0, indicator(telemetry.Gearbox), "non-numeric text is ignored")
}

func TestSinkCountsRedraws(t *testing.T) {
	before := testutil.ToFloat64(pkgmetrics.RedrawsTotal.WithLabelValues("metrics"))
	Sink{}.RequestRedraw()
	assert.Equal(t, before+1, testutil.ToFloat64(pkgmetrics.RedrawsTotal.WithLabelValues("metrics")))
}
