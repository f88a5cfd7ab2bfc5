package main

import (
	"github.com/autopeer-io/dashboard/cmd/cpeer-dashboard/app"
)

func main() {
	app.NewApp().Run()
}
