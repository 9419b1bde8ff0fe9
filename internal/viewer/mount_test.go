package viewer

import (
	gomath "math"
	"testing"
	"time"

	"github.com/Faultbox/cubeview/internal/engine/frame"
	"github.com/Faultbox/cubeview/internal/pointer"
)

func TestMountRunsFrameLoop(t *testing.T) {
	v := newTestViewer(t)
	sched := frame.New()
	events := pointer.NewDispatcher()

	v.Mount(sched, events)
	defer v.Unmount()

	if !v.Mounted() {
		t.Fatal("viewer should be mounted")
	}
	if sched.Pending() != 1 {
		t.Fatalf("pending frames = %d, want 1", sched.Pending())
	}
	if events.Len() != 1 {
		t.Fatalf("listeners = %d, want 1", events.Len())
	}

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	step := v.cfg.frameInterval()
	// The first frame only records the timestamp.
	for i := 0; i <= 4; i++ {
		sched.Run(start.Add(time.Duration(i) * step))
	}
	if y := v.Orientation().Yaw; gomath.Abs(y-1.0) > 1e-6 {
		t.Errorf("yaw after 4 frames = %v, want 1.0", y)
	}
	if sched.Pending() != 1 {
		t.Errorf("loop should keep one frame pending, got %d", sched.Pending())
	}
}

func TestMountSecondTimeIsNoop(t *testing.T) {
	v := newTestViewer(t)
	sched := frame.New()
	events := pointer.NewDispatcher()
	v.Mount(sched, events)
	v.Mount(sched, events)
	if sched.Pending() != 1 || events.Len() != 1 {
		t.Errorf("double mount left %d frames and %d listeners, want 1 and 1", sched.Pending(), events.Len())
	}
	v.Unmount()
}

func TestUnmountReleasesEverything(t *testing.T) {
	v := newTestViewer(t)
	sched := frame.New()
	events := pointer.NewDispatcher()
	v.Mount(sched, events)

	events.Dispatch(pointer.Event{Type: pointer.EventDown, Sample: pointer.Mouse(1, 1)})
	if v.State() != Dragging {
		t.Fatal("dispatcher should reach the mounted viewer")
	}

	v.Unmount()
	v.Unmount()

	if v.Mounted() {
		t.Error("viewer still mounted")
	}
	if sched.Pending() != 0 {
		t.Errorf("pending frames after unmount = %d, want 0", sched.Pending())
	}
	if events.Len() != 0 {
		t.Errorf("listeners after unmount = %d, want 0", events.Len())
	}
	if v.State() != AutoRotating {
		t.Errorf("state after unmount = %v, want auto-rotating", v.State())
	}

	before := v.Snapshot()
	now := time.Now()
	for i := 0; i < 10; i++ {
		sched.Run(now.Add(time.Duration(i) * 16 * time.Millisecond))
	}
	events.Dispatch(pointer.Event{Type: pointer.EventWheel, Sample: pointer.Mouse(1, 1), DeltaY: 1})
	if v.Snapshot() != before {
		t.Errorf("unmounted viewer changed: %+v -> %+v", before, v.Snapshot())
	}
}

func TestRemountRestartsTiming(t *testing.T) {
	v := newTestViewer(t)
	sched := frame.New()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	v.Mount(sched, nil)
	sched.Run(start)
	v.Unmount()

	v.Mount(sched, nil)
	// A long pause between mounts must not be applied as one frame.
	sched.Run(start.Add(time.Hour))
	if y := v.Orientation().Yaw; y != 0 {
		t.Errorf("yaw after remount first frame = %v, want 0", y)
	}
	v.Unmount()
}

func TestMountedDragSuspendsLoop(t *testing.T) {
	v := newTestViewer(t)
	sched := frame.New()
	events := pointer.NewDispatcher()
	v.Mount(sched, events)
	defer v.Unmount()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	sched.Run(start)
	events.Dispatch(pointer.Event{Type: pointer.EventDown, Sample: pointer.Mouse(10, 10)})
	for i := 1; i <= 30; i++ {
		sched.Run(start.Add(time.Duration(i) * 16 * time.Millisecond))
	}
	if y := v.Orientation().Yaw; y != 0 {
		t.Errorf("yaw moved while dragging: %v", y)
	}

	events.Dispatch(pointer.Event{Type: pointer.EventUp, Sample: pointer.Mouse(10, 10)})
	sched.Run(start.Add(31 * 16 * time.Millisecond))
	if y := v.Orientation().Yaw; y == 0 {
		t.Error("auto-rotation did not resume after release")
	}
}

func TestMountNilSchedulerIsNoop(t *testing.T) {
	v := newTestViewer(t)
	events := pointer.NewDispatcher()
	v.Mount(nil, events)
	if v.Mounted() {
		t.Error("viewer mounted without a scheduler")
	}
	if events.Len() != 0 {
		t.Errorf("listeners = %d, want 0", events.Len())
	}
	v.Unmount()
}
