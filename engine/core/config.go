package core

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Config for the engine run. Zero fields are filled by DefaultConfig
// values when loaded through LoadConfig.
type Config struct {
	Title      string     `yaml:"title"`
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	VSync      bool       `yaml:"vsync"`
	ClearColor [4]float32 `yaml:"clear_color"` // RGBA

	// UIView is the device view the UI pass renders into.
	UIView   ViewID  `yaml:"ui_view"`
	FontPath string  `yaml:"font"`      // optional TTF; the built-in font otherwise
	FontSize float32 `yaml:"font_size"` // pixels
	IconPath string  `yaml:"icon"`      // optional PNG window icon
	// ImagePath is a PNG shown in the demo panel; a checkerboard otherwise.
	ImagePath string `yaml:"image"`
	LogLevel string  `yaml:"log_level"` // debug, info, warn, error

	// Headless runs the app against a recording device for N frames.
	Headless       bool `yaml:"headless"`
	HeadlessFrames int  `yaml:"headless_frames"`
}

func DefaultConfig() Config {
	return Config{
		Title:          "imbridge",
		Width:          1280,
		Height:         720,
		VSync:          true,
		ClearColor:     [4]float32{0.06, 0.19, 0.19, 1},
		UIView:         255,
		FontSize:       18,
		LogLevel:       "info",
		HeadlessFrames: 3,
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig. A missing file
// is not an error: the defaults are returned unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return cfg, fmt.Errorf("config %q: window size %dx%d", path, cfg.Width, cfg.Height)
	}
	return cfg, nil
}

// Level maps LogLevel to a slog level; unknown names fall back to info.
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// ClearRGBA packs ClearColor as 0xRRGGBBAA.
func (c Config) ClearRGBA() uint32 {
	var v uint32
	for _, f := range c.ClearColor {
		if f < 0 {
			f = 0
		} else if f > 1 {
			f = 1
		}
		v = v<<8 | uint32(f*255+0.5)
	}
	return v
}
