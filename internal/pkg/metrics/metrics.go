package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every dashboard collector. It is served on /metrics.
var Registry = prometheus.NewRegistry()

var (
	// ReadingsTotal counts partial readings handed to the controller, per source.
	ReadingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cpeer_dashboard_readings_total",
			Help: "Total number of telemetry readings applied to the dashboard.",
		},
		[]string{"source"}, // source: mqtt/redis/http
	)

	// ChannelRejectedTotal counts supplied channel values that failed validation.
	ChannelRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cpeer_dashboard_channel_rejected_total",
			Help: "Total number of channel values rejected by validation.",
		},
		[]string{"channel"},
	)

	// UpdateLatency records the time spent in one controller update, sink notifications included.
	UpdateLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cpeer_dashboard_update_latency_seconds",
			Help:    "Latency of applying one reading and notifying the indicators.",
			Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
		},
	)

	// IndicatorValue mirrors the last numeric value of every indicator.
	IndicatorValue = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cpeer_dashboard_indicator_value",
			Help: "Current value shown by each indicator (gear N is 0).",
		},
		[]string{"indicator"},
	)

	// RedrawsTotal counts redraw requests that reached a renderer.
	RedrawsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cpeer_dashboard_redraws_total",
			Help: "Total number of redraws performed, per renderer.",
		},
		[]string{"renderer"},
	)

	// SourceConnectivityStatus reports each telemetry source link.
	// 1 = Connected, 0 = Disconnected
	SourceConnectivityStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cpeer_dashboard_source_connectivity_status",
			Help: "The connectivity status of each telemetry source (1=Connected, 0=Disconnected).",
		},
		[]string{"source"},
	)

	// WebsocketClients is the number of attached websocket viewers.
	WebsocketClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cpeer_dashboard_websocket_clients",
			Help: "Number of connected websocket clients.",
		},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		ReadingsTotal,
		ChannelRejectedTotal,
		UpdateLatency,
		IndicatorValue,
		RedrawsTotal,
		SourceConnectivityStatus,
		WebsocketClients,
	)
}

// Handler serves the dashboard registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

// SetSourceConnected records the link state of a telemetry source.
func SetSourceConnected(source string, up bool) {
	v := 0.0
	if up {
		v = 1
	}
	SourceConnectivityStatus.WithLabelValues(source).Set(v)
}
