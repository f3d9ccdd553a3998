package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-theft-auto/glclass"
)

const (
	backendOpenGL   = "opengl"
	backendSoftware = "soft"
)

// WindowConfig sizes the drawable surface.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

// Config selects the exercise and how to run it.
type Config struct {
	Exercise string       `yaml:"exercise"`
	Backend  string       `yaml:"backend"`
	Window   WindowConfig `yaml:"window"`
	Frames   int          `yaml:"frames"`   // 0 runs until the window closes
	Snapshot string       `yaml:"snapshot"` // soft backend only
	LogLevel string       `yaml:"log_level"`
}

// DefaultConfig returns the settings used when no file or flag overrides them.
func DefaultConfig() Config {
	return Config{
		Exercise: "triangle",
		Backend:  backendOpenGL,
		Window: WindowConfig{
			Width:  640,
			Height: 480,
			Title:  "glclass",
			VSync:  true,
		},
		LogLevel: "info",
	}
}

// LoadConfig reads a YAML config file over the defaults. Unknown keys are
// rejected so typos do not go unnoticed.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the config before any context is created.
func (c Config) Validate() error {
	if _, err := glclass.Lookup(c.Exercise); err != nil {
		return err
	}
	switch c.Backend {
	case backendOpenGL, backendSoftware:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, backendOpenGL, backendSoftware)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Frames < 0 {
		return fmt.Errorf("frames %d", c.Frames)
	}
	if c.Snapshot != "" && c.Backend != backendSoftware {
		return fmt.Errorf("snapshot needs the %s backend", backendSoftware)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

// Size returns the configured surface size.
func (c Config) Size() glclass.Size {
	return glclass.Size{Width: c.Window.Width, Height: c.Window.Height}
}
