package pointer

import "time"

// EventType enumerates the pointer events a viewer reacts to.
type EventType int

const (
	EventNone EventType = iota
	EventDown
	EventMove
	EventUp
	EventLeave
	EventWheel
	EventDoubleActivate
)

func (t EventType) String() string {
	switch t {
	case EventDown:
		return "down"
	case EventMove:
		return "move"
	case EventUp:
		return "up"
	case EventLeave:
		return "leave"
	case EventWheel:
		return "wheel"
	case EventDoubleActivate:
		return "double-activate"
	default:
		return "none"
	}
}

// Event is a host-independent pointer event.
type Event struct {
	Type   EventType
	Sample Sample
	// DeltaY follows the browser convention: positive scrolls down.
	DeltaY float64
	Time   time.Time
}

// Rect is an axis-aligned hit area. The zero Rect covers everything.
type Rect struct {
	X, Y, W, H float64
}

// Empty reports whether the rect is the unbounded zero value.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether p lies inside the rect. An empty rect contains
// every point.
func (r Rect) Contains(p Point) bool {
	if r.Empty() {
		return true
	}
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}
