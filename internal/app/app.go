// Package app runs the viewer in an SDL2 window with OpenGL rendering.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/cubeview/internal/config"
	"github.com/Faultbox/cubeview/internal/engine/debug"
	"github.com/Faultbox/cubeview/internal/engine/frame"
	"github.com/Faultbox/cubeview/internal/engine/input"
	"github.com/Faultbox/cubeview/internal/engine/renderer"
	"github.com/Faultbox/cubeview/internal/engine/window"
	"github.com/Faultbox/cubeview/internal/logger"
	"github.com/Faultbox/cubeview/internal/pointer"
	"github.com/Faultbox/cubeview/internal/viewer"
)

// App is the windowed host.
type App struct {
	cfg      *config.Config
	running  bool
	log      *zap.Logger
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	viewer   *viewer.Viewer
	sched    *frame.Scheduler
	events   *pointer.Dispatcher
	shots    *debug.ScreenshotCapture
}

// New creates the window, renderer and viewer.
func New(cfg *config.Config) (*App, error) {
	log := logger.Named("app")
	log.Info("initializing app",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	opts := append(cfg.Viewer.Options(), viewer.WithLogger(logger.Log))
	v, err := viewer.New(cfg.Viewer.FaceSet(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create viewer: %w", err)
	}

	a := &App{
		cfg:    cfg,
		log:    log,
		viewer: v,
		sched:  frame.New(),
		events: pointer.NewDispatcher(),
		shots:  debug.NewScreenshotCapture(cfg.Window.ScreenshotDir, "cubeview"),
	}

	// Create window (this also creates OpenGL context)
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	dw, dh := a.window.GetDrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:      dw,
		Height:     dh,
		Background: cfg.Window.Background,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	a.renderer.LoadFaces(v.Faces())

	ww, wh := a.window.GetSize()
	a.input = input.New(ww, wh)

	log.Info("app initialized")
	return a, nil
}

// Run starts the main loop and returns when the window closes.
func (a *App) Run() error {
	a.running = true
	a.viewer.Mount(a.sched, a.events)
	defer a.viewer.Unmount()

	var minFrame time.Duration
	if a.cfg.Window.FPSLimit > 0 {
		minFrame = time.Second / time.Duration(a.cfg.Window.FPSLimit)
	}

	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting main loop")

	for a.running {
		start := time.Now()

		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}
		a.handleInput()

		// 2. Advance the viewer's frame loop
		a.sched.Run(start)

		// 3. Render and present
		a.renderer.Draw(a.viewer)
		if a.input.IsKeyPressed(sdl.SCANCODE_F12) {
			a.screenshot()
		}
		a.window.SwapBuffers()
		a.window.SetTitle(a.title())

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if minFrame > 0 {
			if d := minFrame - time.Since(start); d > 0 {
				time.Sleep(d)
			}
		}
	}

	return nil
}

func (a *App) handleInput() {
	if _, _, ok := a.input.Resized(); ok {
		dw, dh := a.window.GetDrawableSize()
		a.renderer.Resize(dw, dh)
	}
	for _, ev := range a.input.PointerEvents() {
		a.events.Dispatch(ev)
	}
	switch {
	case a.input.IsKeyPressed(sdl.SCANCODE_ESCAPE), a.input.IsKeyPressed(sdl.SCANCODE_Q):
		a.running = false
	case a.input.IsKeyPressed(sdl.SCANCODE_R):
		a.viewer.OnDoubleActivate()
	}
}

// screenshot saves the frame just drawn, before the buffer swap.
func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// title shows the facing face and interaction state.
func (a *App) title() string {
	return fmt.Sprintf("%s - %s (%s)", a.cfg.Window.Title, a.viewer.FacingFace().Label, a.viewer.State())
}

// Close cleans up app resources.
func (a *App) Close() {
	a.log.Info("closing app")

	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
