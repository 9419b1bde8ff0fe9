// Package input translates SDL2 events into pointer events for the viewer
// and host events for the main loop.
package input

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/cubeview/internal/pointer"
)

// touchMouseID is SDL_TOUCH_MOUSEID, the Which value of mouse events SDL
// synthesizes from touches. Those are dropped since fingers are handled
// directly.
const touchMouseID = ^uint32(0)

// Input handles all input processing.
type Input struct {
	pointer []pointer.Event
	keys    []sdl.Scancode

	width, height int
	resized       bool

	// Last mouse position, where wheel events are reported.
	mouse pointer.Point

	// Only the first finger down drives the drag.
	finger       sdl.FingerID
	fingerActive bool
	taps         *pointer.TapDetector

	now func() time.Time
}

// New creates an input handler for a window of the given size in screen
// coordinates.
func New(width, height int) *Input {
	return &Input{
		pointer: make([]pointer.Event, 0, 16),
		width:   width,
		height:  height,
		taps:    pointer.NewTapDetector(),
		now:     time.Now,
	}
}

// Update polls SDL events and converts them.
// Returns true if the host should quit.
func (i *Input) Update() bool {
	i.pointer = i.pointer[:0]
	i.keys = i.keys[:0]
	i.resized = false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if i.translate(event) {
			return true
		}
	}
	return false
}

// translate handles one SDL event and reports a quit request.
func (i *Input) translate(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_RESIZED:
			i.SetSize(int(e.Data1), int(e.Data2))
			i.resized = true
		case sdl.WINDOWEVENT_LEAVE:
			i.emit(pointer.EventLeave, pointer.Sample{})
		}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
			i.keys = append(i.keys, e.Keysym.Scancode)
		}

	case *sdl.MouseMotionEvent:
		if e.Which == touchMouseID {
			return false
		}
		i.mouse = pointer.Point{X: float64(e.X), Y: float64(e.Y)}
		i.emit(pointer.EventMove, pointer.Mouse(i.mouse.X, i.mouse.Y))

	case *sdl.MouseButtonEvent:
		if e.Which == touchMouseID || e.Button != sdl.BUTTON_LEFT {
			return false
		}
		i.mouse = pointer.Point{X: float64(e.X), Y: float64(e.Y)}
		s := pointer.Mouse(i.mouse.X, i.mouse.Y)
		switch e.Type {
		case sdl.MOUSEBUTTONDOWN:
			i.emit(pointer.EventDown, s)
			if e.Clicks == 2 {
				i.emit(pointer.EventDoubleActivate, s)
			}
		case sdl.MOUSEBUTTONUP:
			i.emit(pointer.EventUp, s)
		}

	case *sdl.MouseWheelEvent:
		if e.Which == touchMouseID || e.Y == 0 {
			return false
		}
		// SDL reports scroll up as positive; pointer events use the
		// opposite sign.
		dy := -float64(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			dy = -dy
		}
		i.pointer = append(i.pointer, pointer.Event{
			Type:   pointer.EventWheel,
			Sample: pointer.Mouse(i.mouse.X, i.mouse.Y),
			DeltaY: dy,
			Time:   i.now(),
		})

	case *sdl.TouchFingerEvent:
		i.translateFinger(e)
	}
	return false
}

func (i *Input) translateFinger(e *sdl.TouchFingerEvent) {
	p := pointer.Point{X: float64(e.X) * float64(i.width), Y: float64(e.Y) * float64(i.height)}
	s := pointer.Touch(p)

	switch e.Type {
	case sdl.FINGERDOWN:
		if i.fingerActive {
			return
		}
		i.finger, i.fingerActive = e.FingerID, true
		i.emit(pointer.EventDown, s)
		if i.taps.Tap(i.now(), p) {
			i.emit(pointer.EventDoubleActivate, s)
		}
	case sdl.FINGERMOTION:
		if i.fingerActive && e.FingerID == i.finger {
			i.emit(pointer.EventMove, s)
		}
	case sdl.FINGERUP:
		if i.fingerActive && e.FingerID == i.finger {
			i.fingerActive = false
			i.emit(pointer.EventUp, s)
		}
	}
}

func (i *Input) emit(t pointer.EventType, s pointer.Sample) {
	i.pointer = append(i.pointer, pointer.Event{Type: t, Sample: s, Time: i.now()})
}

// PointerEvents returns the pointer events from the last Update, in order.
func (i *Input) PointerEvents() []pointer.Event {
	return i.pointer
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, k := range i.keys {
		if k == scancode {
			return true
		}
	}
	return false
}

// Resized reports the window size if it changed during the last Update.
func (i *Input) Resized() (width, height int, ok bool) {
	return i.width, i.height, i.resized
}

// SetSize sets the window size used to scale touch coordinates.
func (i *Input) SetSize(width, height int) {
	i.width, i.height = width, height
}
