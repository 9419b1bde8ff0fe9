// Package frame provides a request-next-frame primitive for single-threaded
// render loops.
package frame

import "time"

// Callback runs once on the frame after it was requested.
type Callback func(now time.Time)

// Handle identifies a pending callback. The zero Handle is never issued.
type Handle uint64

// Scheduler queues one-shot frame callbacks. The host's main loop calls Run
// once per frame; nothing here is safe for concurrent use. The zero value is
// an empty scheduler ready to use.
type Scheduler struct {
	next    Handle
	pending map[Handle]Callback
	order   []Handle
}

// New creates an empty scheduler.
func New() *Scheduler {
	return &Scheduler{pending: make(map[Handle]Callback)}
}

// RequestFrame queues cb for the next Run. Requests made while Run is in
// progress wait for the following frame.
func (s *Scheduler) RequestFrame(cb Callback) Handle {
	if s.pending == nil {
		s.pending = make(map[Handle]Callback)
	}
	s.next++
	h := s.next
	s.pending[h] = cb
	s.order = append(s.order, h)
	return h
}

// CancelFrame drops a pending callback. Unknown or already-run handles are
// ignored.
func (s *Scheduler) CancelFrame(h Handle) {
	delete(s.pending, h)
}

// Run invokes every callback queued before the call, in request order, and
// returns how many ran.
func (s *Scheduler) Run(now time.Time) int {
	batch := s.order
	s.order = nil

	ran := 0
	for _, h := range batch {
		cb, ok := s.pending[h]
		if !ok {
			continue
		}
		delete(s.pending, h)
		cb(now)
		ran++
	}
	return ran
}

// Pending returns the number of callbacks waiting for the next Run.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}
