//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"picovid/app"
	"picovid/hal"
)

func main() {
	var cfg hal.HeadlessConfig
	var video string
	var autoplay bool
	flag.StringVar(&video, "video", "", "Video file to play (empty = embedded sample).")
	flag.BoolVar(&autoplay, "autoplay", false, "Skip the start prompt.")
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.Parse()

	appCfg := app.Config{
		VideoPath: video,
		// Headless runs have no keyboard to answer the prompt.
		Autoplay: autoplay || cfg.Enabled,
	}
	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, appCfg)
	}

	if cfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		exit(hal.RunHeadless(ctx, newApp, cfg))
		return
	}

	exit(hal.RunWindow(newApp))
}

func exit(err error) {
	if err == nil || errors.Is(err, app.ErrDone) || errors.Is(err, context.Canceled) {
		return
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
