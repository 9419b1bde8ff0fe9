package frame

import (
	"testing"
	"time"
)

var t0 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestRunOrder(t *testing.T) {
	s := New()
	var got []int
	for i := 1; i <= 3; i++ {
		s.RequestFrame(func(time.Time) { got = append(got, i) })
	}

	if n := s.Run(t0); n != 3 {
		t.Errorf("Run ran %d callbacks, want 3", n)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("order = %v, want [1 2 3]", got)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending after run = %d, want 0", s.Pending())
	}
}

func TestCallbacksAreOneShot(t *testing.T) {
	s := New()
	calls := 0
	s.RequestFrame(func(time.Time) { calls++ })
	s.Run(t0)
	s.Run(t0.Add(time.Second))
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRequestDuringRunDefers(t *testing.T) {
	s := New()
	var frames []time.Time
	var loop Callback
	loop = func(now time.Time) {
		frames = append(frames, now)
		s.RequestFrame(loop)
	}
	s.RequestFrame(loop)

	for i := 0; i < 3; i++ {
		if n := s.Run(t0.Add(time.Duration(i) * 16 * time.Millisecond)); n != 1 {
			t.Fatalf("frame %d ran %d callbacks, want 1", i, n)
		}
	}
	if len(frames) != 3 {
		t.Fatalf("frames = %d, want 3", len(frames))
	}
	if frames[2].Sub(frames[0]) != 32*time.Millisecond {
		t.Errorf("timestamps not passed through: %v", frames)
	}
	if s.Pending() != 1 {
		t.Errorf("Pending = %d, want 1 (the re-requested loop)", s.Pending())
	}
}

func TestCancel(t *testing.T) {
	s := New()
	calls := 0
	h := s.RequestFrame(func(time.Time) { calls++ })
	s.CancelFrame(h)
	s.CancelFrame(h)
	s.CancelFrame(Handle(999))

	if n := s.Run(t0); n != 0 {
		t.Errorf("Run ran %d callbacks after cancel, want 0", n)
	}
	if calls != 0 {
		t.Error("cancelled callback ran")
	}
}

func TestCancelDuringRun(t *testing.T) {
	s := New()
	ranSecond := false
	var second Handle
	s.RequestFrame(func(time.Time) { s.CancelFrame(second) })
	second = s.RequestFrame(func(time.Time) { ranSecond = true })

	if n := s.Run(t0); n != 1 {
		t.Errorf("Run ran %d callbacks, want 1", n)
	}
	if ranSecond {
		t.Error("callback cancelled mid-frame should not run")
	}
}

func TestHandlesAreUnique(t *testing.T) {
	s := New()
	seen := make(map[Handle]bool)
	for i := 0; i < 100; i++ {
		h := s.RequestFrame(func(time.Time) {})
		if h == 0 || seen[h] {
			t.Fatalf("handle %d reused or zero", h)
		}
		seen[h] = true
	}
}

func TestZeroValueScheduler(t *testing.T) {
	var s Scheduler
	s.CancelFrame(1)
	ran := false
	h := s.RequestFrame(func(time.Time) { ran = true })
	if h == 0 {
		t.Fatal("zero handle issued")
	}
	if n := s.Run(t0); n != 1 || !ran {
		t.Errorf("Run ran %d callbacks (ran=%v), want 1", n, ran)
	}
}
