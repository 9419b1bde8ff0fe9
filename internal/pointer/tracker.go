package pointer

// Tracker turns a stream of samples into drag deltas. The zero value is an
// inactive tracker ready for use.
type Tracker struct {
	active bool
	last   Point
}

// Begin starts a drag session at the sample position. Invalid samples are
// ignored and Begin reports false.
func (t *Tracker) Begin(s Sample) bool {
	p, ok := s.Point()
	if !ok {
		return false
	}
	t.active = true
	t.last = p
	return true
}

// Move returns the movement since the previous sample. It reports false when
// no session is active or the sample has no coordinates.
func (t *Tracker) Move(s Sample) (Point, bool) {
	if !t.active {
		return Point{}, false
	}
	p, ok := s.Point()
	if !ok {
		return Point{}, false
	}
	delta := p.Sub(t.last)
	t.last = p
	return delta, true
}

// End closes the session. Safe to call when already inactive.
func (t *Tracker) End() {
	t.active = false
}

// Active reports whether a drag session is in progress.
func (t *Tracker) Active() bool {
	return t.active
}
