package viewer

import (
	"time"

	"github.com/Faultbox/cubeview/internal/engine/frame"
	"github.com/Faultbox/cubeview/internal/pointer"
)

// Mount attaches the viewer to a host: it starts the per-frame auto-rotate
// loop on sched and, when events is non-nil, registers as its listener.
// Mounting an already mounted viewer, or mounting with a nil sched, does
// nothing.
func (v *Viewer) Mount(sched FrameScheduler, events EventSource) {
	if v.sched != nil || sched == nil {
		return
	}
	v.sched = sched
	v.lastFrame = time.Time{}
	v.pending = sched.RequestFrame(v.onFrame)
	if events != nil {
		v.unlisten = events.Listen(v)
	}
	v.log.Debug("viewer mounted")
}

// Unmount stops the frame loop, removes the listener and drops any drag in
// progress. Safe to call more than once.
func (v *Viewer) Unmount() {
	if v.sched == nil {
		return
	}
	v.sched.CancelFrame(v.pending)
	v.pending = 0
	v.sched = nil
	if v.unlisten != nil {
		v.unlisten()
		v.unlisten = nil
	}
	v.endDrag()
	v.log.Debug("viewer unmounted")
}

// Mounted reports whether the frame loop is running.
func (v *Viewer) Mounted() bool {
	return v.sched != nil
}

func (v *Viewer) onFrame(now time.Time) {
	if v.sched == nil {
		return
	}
	if !v.lastFrame.IsZero() {
		v.AutoRotateTick(now.Sub(v.lastFrame))
	}
	v.lastFrame = now
	v.pending = v.sched.RequestFrame(v.onFrame)
}

var (
	_ FrameScheduler = (*frame.Scheduler)(nil)
	_ EventSource    = (*pointer.Dispatcher)(nil)
)
