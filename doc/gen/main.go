// Command gen renders every exercise and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	go run ./doc/gen/          # OpenGL, hidden window
//	go run ./doc/gen/ -soft    # software rasterizer, no display needed
package main

import (
	"flag"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-theft-auto/glclass"
	"github.com/go-theft-auto/glclass/backend/opengl"
	"github.com/go-theft-auto/glclass/backend/soft"
)

func init() {
	runtime.LockOSThread()
}

const (
	width  = 640
	height = 480
)

func main() {
	useSoft := flag.Bool("soft", false, "render with the software backend")
	outDir := flag.String("out", filepath.Join("doc", "imgs"), "output directory")
	flag.Parse()

	if err := run(*useSoft, *outDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// capturer renders one frame of an exercise and returns the picture.
type capturer func(ex *glclass.Exercise) (image.Image, error)

func run(useSoft bool, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	capture := captureSoft
	if !useSoft {
		window, err := opengl.NewWindow(opengl.WindowConfig{
			Width:  width,
			Height: height,
			Title:  "screenshot-gen",
			Hidden: true,
		})
		if err != nil {
			return err
		}
		defer window.Close()
		capture = captureGL(window)
	}

	exercises := glclass.Exercises()
	for _, ex := range exercises {
		img, err := capture(ex)
		if err != nil {
			return fmt.Errorf("capture %s: %w", ex.Name, err)
		}
		if err := save(filepath.Join(outDir, ex.Name+".jpg"), img); err != nil {
			return fmt.Errorf("save %s: %w", ex.Name, err)
		}
		b := img.Bounds()
		fmt.Printf("  %s.jpg (%dx%d)\n", ex.Name, b.Dx(), b.Dy())
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(exercises), outDir)
	return nil
}

func captureGL(window *opengl.Window) capturer {
	return func(ex *glclass.Exercise) (image.Image, error) {
		renderer := opengl.NewRenderer()
		defer renderer.Delete()

		size := window.Size()
		runner := glclass.NewRunner(renderer, ex)
		if err := runner.Setup(size); err != nil {
			return nil, err
		}
		if err := runner.RenderFrame(size); err != nil {
			return nil, err
		}
		return renderer.ReadImage(size), nil
	}
}

func captureSoft(ex *glclass.Exercise) (image.Image, error) {
	renderer, err := soft.New(glclass.Size{Width: width, Height: height})
	if err != nil {
		return nil, err
	}
	runner := glclass.NewRunner(renderer, ex)
	if err := runner.Setup(renderer.Size()); err != nil {
		return nil, err
	}
	if err := runner.RenderFrame(renderer.Size()); err != nil {
		return nil, err
	}
	return renderer.Image(), nil
}

func save(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}
