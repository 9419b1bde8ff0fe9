// Package pointer normalizes mouse and touch input into drag sessions and
// routes pointer events to listeners.
package pointer

// Point is a screen coordinate or a movement delta, in pixels.
type Point struct {
	X, Y float64
}

// Sub returns p - other.
func (p Point) Sub(other Point) Point {
	return Point{p.X - other.X, p.Y - other.Y}
}

// Source identifies the device a sample came from.
type Source uint8

const (
	SourceMouse Source = iota
	SourceTouch
)

func (s Source) String() string {
	switch s {
	case SourceMouse:
		return "mouse"
	case SourceTouch:
		return "touch"
	default:
		return "unknown"
	}
}

// Sample is one normalized pointer reading. It is built once at the input
// boundary so nothing downstream branches on the device.
type Sample struct {
	Source Source
	Pos    Point
	valid  bool
}

// Mouse builds a sample from a cursor position.
func Mouse(x, y float64) Sample {
	return Sample{Source: SourceMouse, Pos: Point{x, y}, valid: true}
}

// Touch builds a sample from the active touch points. Only the first point
// drives the drag; with no points the sample is invalid.
func Touch(points ...Point) Sample {
	if len(points) == 0 {
		return Sample{Source: SourceTouch}
	}
	return Sample{Source: SourceTouch, Pos: points[0], valid: true}
}

// Valid reports whether the sample carries coordinates.
func (s Sample) Valid() bool {
	return s.valid
}

// Point returns the sample position and whether it is usable.
func (s Sample) Point() (Point, bool) {
	return s.Pos, s.valid
}
