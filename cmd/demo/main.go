package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hubastard/imbridge/engine/core"
	glbackend "github.com/hubastard/imbridge/engine/gfx/gl"
	"github.com/hubastard/imbridge/engine/gfx/noop"
	"github.com/hubastard/imbridge/engine/gfx/uirender"
	"github.com/hubastard/imbridge/engine/platform"
	"gopkg.in/yaml.v3"
)

func main() {
	var (
		cfgPath  = flag.String("config", "imbridge.yaml", "YAML config file")
		headless = flag.Bool("headless", false, "render against the recording device and print stats")
		frames   = flag.Int("frames", 0, "frames to run headless (0 keeps the config value)")
		view     = flag.Int("view", -1, "device view for the UI pass (-1 keeps the config value)")
	)
	flag.Parse()

	cfg, err := core.LoadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *headless {
		cfg.Headless = true
	}
	if *frames > 0 {
		cfg.HeadlessFrames = *frames
	}
	if *view >= 0 {
		cfg.UIView = core.ViewID(*view)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)
	uirender.SetLogger(logger)

	app := &App{}
	if cfg.Headless {
		err = core.Run(app, cfg, newHeadlessWindow, newNoopDevice)
		if err == nil {
			err = yaml.NewEncoder(os.Stdout).Encode(app.Report())
		}
	} else {
		var win *platform.GLFWWindow
		newWindow := func(cfg core.Config) (core.Window, error) {
			w, err := platform.NewGLFWWindow(cfg)
			if err != nil {
				return nil, err
			}
			win = w
			return w, nil
		}
		err = core.Run(app, cfg, newWindow, newGLDevice)
		if win != nil {
			win.Destroy()
		}
	}
	if err != nil {
		slog.Error("demo failed", "err", err)
		os.Exit(1)
	}
}

func newGLDevice(core.Window, core.Config) (core.Device, error) {
	return glbackend.NewDevice(glbackend.Options{})
}

func newNoopDevice(core.Window, core.Config) (core.Device, error) {
	return noop.New(noop.Options{}), nil
}
