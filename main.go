package main

import (
	"context"

	"blinkytree-go/services/config"
	"blinkytree-go/services/device"
	"blinkytree-go/services/hal/platform"
)

func main() {
	println("[main] boot")

	cfg := config.Default()

	d := device.New(platform.Default(cfg.Revision()), cfg, nil)
	d.Init()

	println("[main] entering loop")
	_ = d.Run(context.Background())
}
