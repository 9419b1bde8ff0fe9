package pointer

// Listener receives pointer events. Returning true marks the event consumed,
// meaning the host must skip its default handling (for example page scroll).
type Listener interface {
	HandleEvent(ev Event) bool
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ev Event) bool

// HandleEvent calls f(ev).
func (f ListenerFunc) HandleEvent(ev Event) bool {
	return f(ev)
}

// Dispatcher fans events out to registered listeners in registration order.
type Dispatcher struct {
	next      uint64
	listeners []entry
}

type entry struct {
	id uint64
	l  Listener
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Listen registers l and returns a function that removes it again. The
// returned function may be called any number of times.
func (d *Dispatcher) Listen(l Listener) (remove func()) {
	d.next++
	id := d.next
	d.listeners = append(d.listeners, entry{id: id, l: l})
	return func() {
		for i, e := range d.listeners {
			if e.id == id {
				d.listeners = append(d.listeners[:i:i], d.listeners[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers ev to every listener and reports whether any consumed it.
func (d *Dispatcher) Dispatch(ev Event) bool {
	consumed := false
	// Listeners may remove themselves while handling the event.
	snapshot := append([]entry(nil), d.listeners...)
	for _, e := range snapshot {
		if e.l.HandleEvent(ev) {
			consumed = true
		}
	}
	return consumed
}

// Len returns the number of registered listeners.
func (d *Dispatcher) Len() int {
	return len(d.listeners)
}
