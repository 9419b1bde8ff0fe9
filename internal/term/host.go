package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/cubeview/internal/engine/frame"
	"github.com/Faultbox/cubeview/internal/pointer"
	"github.com/Faultbox/cubeview/internal/viewer"
)

// keyNudge is the drag delta, in pixels, applied per arrow key press.
const keyNudge = 24.0

// HostOptions configures a Host.
type HostOptions struct {
	FrameInterval time.Duration
	Render        Options
	Logger        *zap.Logger
}

// Host runs a viewer on a tcell screen. Input is read on its own goroutine
// and handed to the render loop over a channel; the viewer is only touched
// by the goroutine calling Run.
type Host struct {
	screen   tcell.Screen
	viewer   *viewer.Viewer
	renderer *Renderer
	input    *Input
	sched    *frame.Scheduler
	events   *pointer.Dispatcher
	interval time.Duration
	log      *zap.Logger
}

// NewHost wires a viewer to an initialized screen.
func NewHost(s tcell.Screen, v *viewer.Viewer, opts HostOptions) *Host {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = 16 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Host{
		screen:   s,
		viewer:   v,
		renderer: NewRenderer(opts.Render),
		input:    NewInput(opts.Render.CellAspect),
		sched:    frame.New(),
		events:   pointer.NewDispatcher(),
		interval: opts.FrameInterval,
		log:      opts.Logger.Named("term"),
	}
}

// Run drives the viewer until the user quits, the screen closes or ctx is
// done. The caller owns the screen and must Fini it afterwards, which also
// releases the polling goroutine.
func (h *Host) Run(ctx context.Context) error {
	h.screen.EnableMouse(tcell.MouseMotionEvents)
	h.screen.EnableFocus()
	defer h.screen.DisableMouse()

	h.viewer.Mount(h.sched, h.events)
	defer h.viewer.Unmount()

	done := make(chan struct{})
	defer close(done)
	evc := make(chan tcell.Event, 64)
	go func() {
		defer close(evc)
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case evc <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	h.log.Info("terminal host started", zap.Duration("frameInterval", h.interval))
	h.draw()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-evc:
			if !ok {
				return nil
			}
			if h.handle(ev) {
				h.log.Info("quit requested")
				return nil
			}
		case now := <-ticker.C:
			h.sched.Run(now)
			h.draw()
		}
	}
}

func (h *Host) draw() {
	h.renderer.Draw(h.screen, h.viewer)
	h.screen.Show()
}

// handle applies one event and reports a quit request.
func (h *Host) handle(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return h.key(e)
	case *tcell.EventResize:
		h.screen.Sync()
	default:
		for _, pe := range h.input.Translate(ev) {
			h.events.Dispatch(pe)
		}
	}
	return false
}

func (h *Host) key(e *tcell.EventKey) bool {
	switch e.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		h.viewer.OnDragMove(pointer.Point{X: -keyNudge})
	case tcell.KeyRight:
		h.viewer.OnDragMove(pointer.Point{X: keyNudge})
	case tcell.KeyUp:
		h.viewer.OnDragMove(pointer.Point{Y: -keyNudge})
	case tcell.KeyDown:
		h.viewer.OnDragMove(pointer.Point{Y: keyNudge})
	case tcell.KeyRune:
		switch e.Rune() {
		case 'q', 'Q':
			return true
		case 'r', 'R':
			h.viewer.OnDoubleActivate()
		case '+', '=':
			h.viewer.OnWheel(-1)
		case '-', '_':
			h.viewer.OnWheel(1)
		}
	}
	return false
}
