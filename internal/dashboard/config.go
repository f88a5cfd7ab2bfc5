package dashboard

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/autopeer-io/dashboard/internal/dashboard/controller"
	"github.com/autopeer-io/dashboard/internal/dashboard/core"
	"github.com/autopeer-io/dashboard/internal/dashboard/hal"
	"github.com/autopeer-io/dashboard/internal/dashboard/render"
	"github.com/autopeer-io/dashboard/internal/dashboard/render/console"
	rendermetrics "github.com/autopeer-io/dashboard/internal/dashboard/render/metrics"
	"github.com/autopeer-io/dashboard/internal/dashboard/render/ws"
	"github.com/autopeer-io/dashboard/internal/dashboard/server"
	grpcserver "github.com/autopeer-io/dashboard/internal/dashboard/server/grpc"
	httpserver "github.com/autopeer-io/dashboard/internal/dashboard/server/http"
	"github.com/autopeer-io/dashboard/internal/dashboard/shell"
	mqttsource "github.com/autopeer-io/dashboard/internal/dashboard/source/mqtt"
	redissource "github.com/autopeer-io/dashboard/internal/dashboard/source/redis"
	"github.com/autopeer-io/dashboard/internal/pkg/metrics"
	"github.com/autopeer-io/dashboard/pkg/log"
	"github.com/autopeer-io/dashboard/pkg/mqtt"
	"github.com/autopeer-io/dashboard/pkg/mqtt/topic"
	"github.com/autopeer-io/dashboard/pkg/options"
)

type Config struct {
	VehicleID string

	MqttOptions    *options.MqttOptions
	RedisOptions   *options.RedisOptions
	HttpOptions    *options.HttpOptions
	GrpcOptions    *options.GrpcOptions
	DisplayOptions *options.DisplayOptions

	// HAL defaults to the platform detected at build time.
	HAL core.HAL

	// Stdout receives the console table, Stdin the key presses.
	// They default to the process streams.
	Stdout io.Writer
	Stdin  io.Reader
}

// NewDashboard wires the renderers, the controller, the telemetry sources
// and the servers. Nothing is started until Run.
func (cfg *Config) NewDashboard() (*Dashboard, error) {
	h := cfg.HAL
	if h == nil {
		h = hal.NewHAL()
	}
	stdout, stdin := cfg.Stdout, cfg.Stdin
	if stdout == nil {
		stdout = os.Stdout
	}
	if stdin == nil {
		stdin = os.Stdin
	}

	mode := hal.ResolveMode(cfg.DisplayOptions.Mode, h)
	width, height := h.ScreenSize()
	log.Info("Display detected", "model", h.Model(), "embedded", h.Embedded(),
		"width", width, "height", height, "mode", mode)

	d := &Dashboard{
		closed:      make(chan struct{}),
		broadcaster: ws.NewBroadcaster(cfg.DisplayOptions.WebsocketBuffer),
	}
	d.shell = shell.New(d.requestClose, d.repaint)

	// 1. Renderers: the local view is gated by the shell, remote viewers and
	// metrics always follow the state.
	var local core.IndicatorSink
	if cfg.DisplayOptions.Console {
		local = d.shell.Gate(console.New(stdout, mode == hal.ModeFullscreen))
	}
	d.sink = render.NewMulti(local, d.broadcaster, rendermetrics.Sink{})

	// 2. Core
	d.ctrl = controller.New(d.sink)

	// 3. Telemetry sources
	if cfg.MqttOptions.Enabled {
		src, err := cfg.newMqttSource()
		if err != nil {
			return nil, fmt.Errorf("failed to init mqtt source: %w", err)
		}
		d.sources = append(d.sources, src)
	}
	if cfg.RedisOptions.Enabled {
		src, err := redissource.New(redissource.Config{
			URL:      cfg.RedisOptions.URL,
			Channel:  cfg.RedisOptions.Channel,
			PoolSize: cfg.RedisOptions.PoolSize,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to init redis source: %w", err)
		}
		d.sources = append(d.sources, src)
	}

	// 4. Servers
	servers := []server.Server{httpserver.NewServer(cfg.HttpOptions, d, d.broadcaster)}
	if cfg.GrpcOptions.Enabled {
		servers = append(servers, grpcserver.NewServer(cfg.GrpcOptions))
	}
	d.servers = server.NewManager(servers...)

	if cfg.DisplayOptions.Keyboard {
		d.keys = stdin
	}

	return d, nil
}

func (cfg *Config) newMqttSource() (*mqttsource.Source, error) {
	clientCfg := cfg.MqttOptions.ToClientConfig()
	if clientCfg.ClientID == "" {
		clientCfg.ClientID = fmt.Sprintf("cpeer-dashboard-%s-%s", cfg.VehicleID, uuid.NewString()[:8])
	}
	clientCfg.WillTopic = topic.NewTopicBuilder(cfg.MqttOptions.TopicRoot).DisplayOnline(cfg.VehicleID)
	clientCfg.WillPayload = mqttsource.OfflineWill()
	clientCfg.WillQoS = byte(cfg.MqttOptions.QoS)
	clientCfg.WillRetain = true
	clientCfg.OnConnectionChange = func(up bool) {
		metrics.SetSourceConnected(mqttsource.Name, up)
	}

	client, err := mqtt.NewClient(clientCfg)
	if err != nil {
		return nil, err
	}
	return mqttsource.New(client, cfg.MqttOptions.TopicRoot, cfg.VehicleID, cfg.MqttOptions.QoS), nil
}
