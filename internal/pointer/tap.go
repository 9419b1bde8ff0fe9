package pointer

import "time"

// Default double-tap tolerances.
const (
	DefaultTapWindow = 300 * time.Millisecond
	DefaultTapRadius = 24.0
)

// TapDetector recognizes two taps close together in time and space as a
// double activation. Used for touch input and terminals, which have no
// native double-click.
type TapDetector struct {
	Window time.Duration
	Radius float64

	last    time.Time
	lastPos Point
	armed   bool
}

// NewTapDetector returns a detector with the default tolerances.
func NewTapDetector() *TapDetector {
	return &TapDetector{Window: DefaultTapWindow, Radius: DefaultTapRadius}
}

// Tap records a tap and reports whether it completes a double tap. A
// completed double tap disarms the detector so a third tap starts over.
func (d *TapDetector) Tap(at time.Time, p Point) bool {
	elapsed := at.Sub(d.last)
	if d.armed && elapsed >= 0 && elapsed <= d.Window {
		dx, dy := p.X-d.lastPos.X, p.Y-d.lastPos.Y
		if dx*dx+dy*dy <= d.Radius*d.Radius {
			d.armed = false
			return true
		}
	}
	d.armed = true
	d.last = at
	d.lastPos = p
	return false
}

// Reset forgets any pending first tap.
func (d *TapDetector) Reset() {
	d.armed = false
}
