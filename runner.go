package glclass

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
)

// Stats counts the work a Runner has issued.
type Stats struct {
	Frames    int // render steps executed
	DrawCalls int // Backend.Draw calls issued
}

// Runner owns the resources of one exercise and drives its render step.
type Runner struct {
	backend    Backend
	exercise   *Exercise
	logger     *slog.Logger
	frameLimit int

	program Program
	mesh    Mesh
	ready   bool

	stopped atomic.Bool
	stats   Stats
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithFrameLimit ends Run after n render steps. Zero means no limit.
func WithFrameLimit(n int) RunnerOption {
	return func(r *Runner) { r.frameLimit = n }
}

// WithLogger sets the runner's logger. Defaults to Logger().
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// NewRunner creates a runner for exercise ex on backend b.
func NewRunner(b Backend, ex *Exercise, opts ...RunnerOption) *Runner {
	r := &Runner{
		backend:  b,
		exercise: ex,
		logger:   Logger(),
	}

	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = Logger()
	}
	r.logger = r.logger.With("exercise", ex.Name)

	return r
}

// Exercise returns the exercise being run.
func (r *Runner) Exercise() *Exercise {
	return r.exercise
}

// Setup builds the program and uploads the geometry. Any failure is fatal
// for the exercise: nothing is drawn afterwards.
func (r *Runner) Setup(size Size) error {
	if size.Empty() {
		return fmt.Errorf("%w: surface is %dx%d", ErrContextUnavailable, size.Width, size.Height)
	}

	ex := r.exercise
	if !ex.Draws() {
		r.ready = true
		r.logger.Info("exercise ready", "draws", false)
		return nil
	}

	program, err := r.backend.CreateProgram(ex.Shaders)
	if err != nil {
		return fmt.Errorf("%s: build program %q: %w", ex.Name, ex.Shaders.Name, err)
	}
	r.logger.Info("program linked", "program", ex.Shaders.Name)

	geom, err := ex.Geometry(size)
	if err != nil {
		return fmt.Errorf("%s: build geometry: %w", ex.Name, err)
	}
	mesh, err := r.backend.Upload(geom)
	if err != nil {
		return fmt.Errorf("%s: upload geometry: %w", ex.Name, err)
	}
	r.logger.Info("geometry uploaded",
		"buffers", len(geom.Buffers),
		"vertices", geom.VertexCount(),
		"indexed", geom.Indices != nil,
		"topology", geom.Topology.String(),
	)

	r.program, r.mesh = program, mesh
	r.ready = true
	return nil
}

// RenderFrame clears the surface and draws the exercise once per viewport.
func (r *Runner) RenderFrame(size Size) error {
	if !r.ready {
		return errors.New("render before setup")
	}

	ex := r.exercise
	r.backend.SetViewport(Viewport{Width: size.Width, Height: size.Height})
	r.backend.Clear(ex.ClearColor)

	if ex.Draws() {
		var uniforms Uniforms
		if ex.Uniforms != nil {
			uniforms = ex.Uniforms(size)
		}
		for _, vp := range ex.viewports(size) {
			vp = vp.Resolve(size)
			r.backend.SetViewport(vp)
			if err := r.backend.Draw(DrawCall{Program: r.program, Mesh: r.mesh, Uniforms: uniforms}); err != nil {
				return fmt.Errorf("%s: draw: %w", ex.Name, err)
			}
			r.stats.DrawCalls++
			r.logger.Debug("draw", "viewport", vp)
		}
	}

	r.stats.Frames++
	return nil
}

// Run sets the exercise up on s and drives it. A static exercise renders and
// presents once per surface size, idling in between. An animated exercise renders
// and presents every tick. The loop ends when the surface closes, ctx is
// cancelled, Stop is called or the frame limit is reached.
func (r *Runner) Run(ctx context.Context, s Surface) error {
	if err := r.Setup(s.Size()); err != nil {
		return err
	}

	if !r.exercise.Animated {
		if err := r.frame(s); err != nil {
			return err
		}
		// A resized back buffer holds undefined contents until redrawn.
		last := s.Size()
		for !r.done(ctx, s) {
			s.Wait()
			if r.done(ctx, s) {
				break
			}
			if size := s.Size(); size != last && !size.Empty() {
				if err := r.frame(s); err != nil {
					return err
				}
				last = size
			}
		}
		r.logger.Info("loop stopped", "frames", r.stats.Frames)
		return nil
	}

	for !r.done(ctx, s) {
		if s.Size().Empty() {
			// Minimized windows report a zero framebuffer.
			s.Wait()
			continue
		}
		if err := r.frame(s); err != nil {
			return err
		}
	}
	r.logger.Info("loop stopped", "frames", r.stats.Frames, "draws", r.stats.DrawCalls)
	return nil
}

func (r *Runner) frame(s Surface) error {
	if err := r.RenderFrame(s.Size()); err != nil {
		return err
	}
	if err := s.Present(); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}

// done is checked before every reschedule.
func (r *Runner) done(ctx context.Context, s Surface) bool {
	if r.stopped.Load() || ctx.Err() != nil || s.ShouldClose() {
		return true
	}
	return r.frameLimit > 0 && r.stats.Frames >= r.frameLimit
}

// Stop ends Run before its next frame. Safe to call from any goroutine.
func (r *Runner) Stop() {
	r.stopped.Store(true)
}

// Stats returns the work issued so far. Call it from the goroutine running
// the loop or after Run returns.
func (r *Runner) Stats() Stats {
	return r.stats
}
