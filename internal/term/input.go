package term

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/cubeview/internal/pointer"
)

// cellWidthPx approximates the pixel width of a terminal cell, so drag
// sensitivity in degrees per pixel feels the same as in a window.
const cellWidthPx = 8.0

// Input turns tcell mouse and focus events into pointer events. Terminals
// report no clicks count, so double activation comes from a tap detector.
type Input struct {
	aspect float64
	down   bool
	taps   *pointer.TapDetector
	now    func() time.Time
}

// NewInput returns an input translator for cells of the given aspect.
func NewInput(cellAspect float64) *Input {
	if cellAspect <= 0 {
		cellAspect = 2
	}
	return &Input{
		aspect: cellAspect,
		taps:   pointer.NewTapDetector(),
		now:    time.Now,
	}
}

// Translate converts one tcell event. Events that are not pointer input
// return nil.
func (in *Input) Translate(ev tcell.Event) []pointer.Event {
	switch e := ev.(type) {
	case *tcell.EventMouse:
		return in.mouse(e)
	case *tcell.EventFocus:
		if !e.Focused && in.down {
			in.down = false
			return []pointer.Event{{Type: pointer.EventLeave, Time: in.now()}}
		}
	}
	return nil
}

func (in *Input) mouse(e *tcell.EventMouse) []pointer.Event {
	col, row := e.Position()
	p := in.toPixels(col, row)
	s := pointer.Mouse(p.X, p.Y)
	now := in.now()
	btn := e.Buttons()

	var out []pointer.Event
	emit := func(t pointer.EventType) {
		out = append(out, pointer.Event{Type: t, Sample: s, Time: now})
	}

	switch {
	case btn&tcell.WheelUp != 0:
		out = append(out, pointer.Event{Type: pointer.EventWheel, Sample: s, DeltaY: -1, Time: now})
	case btn&tcell.WheelDown != 0:
		out = append(out, pointer.Event{Type: pointer.EventWheel, Sample: s, DeltaY: 1, Time: now})
	}

	pressed := btn&tcell.Button1 != 0
	switch {
	case pressed && !in.down:
		in.down = true
		emit(pointer.EventDown)
		if in.taps.Tap(now, p) {
			emit(pointer.EventDoubleActivate)
		}
	case pressed:
		emit(pointer.EventMove)
	case in.down:
		in.down = false
		emit(pointer.EventUp)
	}
	return out
}

// toPixels maps a cell to the pixel position of its top-left corner.
func (in *Input) toPixels(col, row int) pointer.Point {
	return pointer.Point{
		X: float64(col) * cellWidthPx,
		Y: float64(row) * cellWidthPx * in.aspect,
	}
}
