package app

import (
	"fmt"

	genericapiserver "k8s.io/apiserver/pkg/server"

	"github.com/autopeer-io/dashboard/cmd/cpeer-telemetry-sim/app/options"
	"github.com/autopeer-io/dashboard/internal/sim"
	"github.com/autopeer-io/dashboard/pkg/app"
	"github.com/autopeer-io/dashboard/pkg/log"
	"github.com/autopeer-io/dashboard/pkg/mqtt"
	"github.com/autopeer-io/dashboard/pkg/mqtt/topic"
)

const (
	commandName = "cpeer-telemetry-sim"
	commandDesc = `The Autopeer telemetry simulator publishes a synthetic drive cycle to
the telemetry topic of one vehicle, so a dashboard can be exercised on the bench.
A share of the values can be made deliberately invalid.`
)

func NewApp() *app.App {
	opts := options.NewSimOptions()
	return app.NewApp(
		commandName,
		"Publish synthetic vehicle telemetry over MQTT",
		app.WithDescription(commandDesc),
		app.WithOptions(opts),
		app.WithDefaultValidArgs(),
		app.WithRunFunc(run(opts)),
	)
}

func run(opts *options.SimOptions) app.RunFunc {
	return func() error {
		log.Init(opts.Log)
		ctx := genericapiserver.SetupSignalContext()

		cfg := opts.MqttOptions.ToClientConfig()
		if cfg.ClientID == "" {
			cfg.ClientID = fmt.Sprintf("%s-%s", commandName, opts.VehicleID)
		}
		client, err := mqtt.NewClient(cfg)
		if err != nil {
			return fmt.Errorf("failed to create mqtt client: %w", err)
		}

		t := topic.NewTopicBuilder(opts.MqttOptions.TopicRoot).Telemetry(opts.VehicleID)
		gen := sim.NewGenerator(opts.Seed, opts.Coverage, opts.InvalidRatio)
		log.Info("Simulating telemetry", "topic", t, "interval", opts.Interval)

		return sim.NewPublisher(client, gen, t, opts.MqttOptions.QoS, opts.Interval).Run(ctx)
	}
}
