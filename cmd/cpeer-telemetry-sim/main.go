package main

import (
	"github.com/autopeer-io/dashboard/cmd/cpeer-telemetry-sim/app"
)

func main() {
	app.NewApp().Run()
}
