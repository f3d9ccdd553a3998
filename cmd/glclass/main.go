// Command glclass runs one rendering exercise in a window, or headless with
// the software backend.
//
//	glclass -list
//	glclass -exercise circle
//	glclass -backend soft -exercise barycentric -snapshot out.png
//	glclass -config glclass.yml
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"github.com/go-theft-auto/glclass"
	"github.com/go-theft-auto/glclass/backend/opengl"
	"github.com/go-theft-auto/glclass/backend/soft"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("glclass", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML config file")
	list := fs.Bool("list", false, "list exercises and exit")
	exercise := fs.String("exercise", "", "exercise to run")
	backend := fs.String("backend", "", "opengl or soft")
	width := fs.Int("width", 0, "surface width in pixels")
	height := fs.Int("height", 0, "surface height in pixels")
	frames := fs.Int("frames", 0, "stop after this many frames (0 = until closed)")
	snapshot := fs.String("snapshot", "", "write the last frame to a .png or .bmp file (soft backend)")
	logLevel := fs.String("log-level", "", "debug, info, warn or error")
	vsync := fs.Bool("vsync", true, "synchronize presents with the display refresh")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *list {
		for _, ex := range glclass.Exercises() {
			mode := "static"
			if ex.Animated {
				mode = "animated"
			}
			fmt.Fprintf(stdout, "%-12s %-8s %s\n", ex.Name, mode, ex.Description)
		}
		return nil
	}

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfig(*configPath); err != nil {
			return err
		}
	}

	// Flags given on the command line win over the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "exercise":
			cfg.Exercise = *exercise
		case "backend":
			cfg.Backend = *backend
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		case "frames":
			cfg.Frames = *frames
		case "snapshot":
			cfg.Snapshot = *snapshot
		case "log-level":
			cfg.LogLevel = *logLevel
		case "vsync":
			cfg.Window.VSync = *vsync
		}
	})

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	level, _ := cfg.Level()
	glclass.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ex, err := glclass.Lookup(cfg.Exercise)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.Backend == backendSoftware {
		return runSoftware(ctx, cfg, ex)
	}
	return runOpenGL(ctx, cfg, ex)
}

func runOpenGL(ctx context.Context, cfg Config, ex *glclass.Exercise) error {
	window, err := opengl.NewWindow(opengl.WindowConfig{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Title:  fmt.Sprintf("%s - %s", cfg.Window.Title, ex.Name),
		VSync:  cfg.Window.VSync,
	})
	if err != nil {
		return err
	}
	defer window.Close()

	renderer := opengl.NewRenderer()
	defer renderer.Delete()

	runner := glclass.NewRunner(renderer, ex, glclass.WithFrameLimit(cfg.Frames))
	return runner.Run(ctx, window)
}

func runSoftware(ctx context.Context, cfg Config, ex *glclass.Exercise) error {
	renderer, err := soft.New(cfg.Size())
	if err != nil {
		return err
	}

	// Without a window nothing would ever end the loop.
	frames := cfg.Frames
	if frames == 0 {
		frames = 1
	}

	runner := glclass.NewRunner(renderer, ex, glclass.WithFrameLimit(frames))
	if err := runner.Run(ctx, renderer); err != nil {
		return err
	}

	if cfg.Snapshot != "" {
		if err := renderer.Snapshot(cfg.Snapshot); err != nil {
			return err
		}
		glclass.Logger().Info("snapshot written", "path", cfg.Snapshot)
	}
	return nil
}
