// Package metrics exposes the indicator values as Prometheus gauges.
package metrics

import (
	"strconv"

	"github.com/autopeer-io/dashboard/internal/dashboard/controller"
	"github.com/autopeer-io/dashboard/internal/dashboard/core"
	"github.com/autopeer-io/dashboard/internal/dashboard/telemetry"
	pkgmetrics "github.com/autopeer-io/dashboard/internal/pkg/metrics"
)

var _ core.IndicatorSink = Sink{}

// Sink mirrors indicator values into cpeer_dashboard_indicator_value.
type Sink struct{}

func (Sink) SetGaugeValue(name telemetry.Channel, value int) {
	pkgmetrics.IndicatorValue.WithLabelValues(name.String()).Set(float64(value))
}

func (Sink) SetBarValue(name telemetry.Channel, value int) {
	pkgmetrics.IndicatorValue.WithLabelValues(name.String()).Set(float64(value))
}

// SetLabelText records gears by number (N is 0) and TCS as 1 or 0.
// Text that has no numeric reading is ignored.
func (Sink) SetLabelText(name telemetry.Channel, text string) {
	v, ok := labelValue(text)
	if !ok {
		return
	}
	pkgmetrics.IndicatorValue.WithLabelValues(name.String()).Set(v)
}

func (Sink) RequestRedraw() {
	pkgmetrics.RedrawsTotal.WithLabelValues("metrics").Inc()
}

func labelValue(text string) (float64, bool) {
	switch text {
	case string(telemetry.GearNeutral), controller.TCSTextOff:
		return 0, true
	case controller.TCSTextOn:
		return 1, true
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, false
	}
	return float64(n), true
}
