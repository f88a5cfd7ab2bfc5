package app

import (
	"fmt"

	"go.uber.org/automaxprocs/maxprocs"
	genericapiserver "k8s.io/apiserver/pkg/server"

	"github.com/autopeer-io/dashboard/cmd/cpeer-dashboard/app/options"
	"github.com/autopeer-io/dashboard/pkg/app"
	"github.com/autopeer-io/dashboard/pkg/log"
)

const (
	commandName = "cpeer-dashboard"
	commandDesc = `The Autopeer Dashboard drives a vehicle instrument cluster. It receives
partial telemetry readings over MQTT, Redis or HTTP, keeps the last valid value
of every channel and redraws the speedometer, tachometer, level bars and
gear/TCS labels once per reading.

Press Q to close the display, W to show it and E to hide it when
--display.keyboard is set.`
)

func NewApp() *app.App {
	opts := options.NewDashboardOptions()
	application := app.NewApp(
		commandName,
		"Launch an Autopeer instrument cluster dashboard",
		app.WithDescription(commandDesc),
		app.WithOptions(opts),
		app.WithDefaultValidArgs(),
		app.WithWatchConfig(),
		app.WithRunFunc(run(opts)),
	)
	return application
}

func run(opts *options.DashboardOptions) app.RunFunc {
	return func() error {
		log.Init(opts.Log)

		undo, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
			log.Debug(fmt.Sprintf(format, args...))
		}))
		if err != nil {
			log.Warn("Failed to set GOMAXPROCS", "error", err.Error())
		}
		defer undo()

		ctx := genericapiserver.SetupSignalContext()

		cfg, err := opts.Config()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		dashboard, err := cfg.NewDashboard()
		if err != nil {
			return fmt.Errorf("failed to create dashboard: %w", err)
		}

		return dashboard.Run(ctx)
	}
}
