// Package viewer implements an interactive cube of six faces that spins on
// its own, rotates under pointer drag, zooms on the wheel and resets on
// double activation.
//
// A Viewer is owned by one goroutine, normally the host's render loop. All
// state changes go through its methods; hosts read state via Snapshot.
package viewer

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/cubeview/internal/engine/frame"
	"github.com/Faultbox/cubeview/internal/pointer"
	"github.com/Faultbox/cubeview/pkg/math"
)

// InteractionState is the viewer's input mode.
type InteractionState int

const (
	AutoRotating InteractionState = iota
	Dragging
)

func (s InteractionState) String() string {
	switch s {
	case AutoRotating:
		return "auto-rotating"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Orientation is the cube rotation in degrees. Yaw spins around the vertical
// axis and wraps into [0, 360); Pitch tilts around the horizontal axis and
// stays inside the configured pitch range.
type Orientation struct {
	Yaw   float64
	Pitch float64
}

// Snapshot is a read-only copy of the viewer state.
type Snapshot struct {
	Orientation Orientation
	Zoom        float64
	State       InteractionState
}

// FrameScheduler is the host's request-next-frame primitive.
type FrameScheduler interface {
	RequestFrame(cb frame.Callback) frame.Handle
	CancelFrame(h frame.Handle)
}

// EventSource delivers pointer events from the viewer's hit area.
type EventSource interface {
	Listen(l pointer.Listener) (remove func())
}

// Viewer is the interactive cube.
type Viewer struct {
	cfg   settings
	faces [FaceCount]Face
	log   *zap.Logger

	orientation Orientation
	zoom        float64
	state       InteractionState
	tracker     pointer.Tracker
	bounds      pointer.Rect

	// Set while mounted.
	sched     FrameScheduler
	pending   frame.Handle
	lastFrame time.Time
	unlisten  func()
}

// New creates a viewer over exactly six faces. It returns a
// *ConfigurationError, and no viewer, when the faces or options are invalid.
func New(faces []Face, opts ...Option) (*Viewer, error) {
	cfg := defaultSettings()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	ordered, err := checkFaces(faces)
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		cfg:   cfg,
		faces: ordered,
		log:   cfg.log.Named("viewer"),
	}
	v.applyDefaults()
	v.log.Debug("viewer created",
		zap.Float64("edge", cfg.edgeLength),
		zap.Float64("zoomMin", cfg.zoomRange.Min),
		zap.Float64("zoomMax", cfg.zoomRange.Max),
	)
	return v, nil
}

func (v *Viewer) applyDefaults() {
	v.orientation = v.defaultOrientation()
	v.zoom = v.cfg.zoomRange.Clamp(DefaultZoom)
}

func (v *Viewer) defaultOrientation() Orientation {
	return Orientation{
		Yaw:   DefaultYaw,
		Pitch: v.cfg.pitchRange.Clamp(DefaultPitch),
	}
}

// PointerDown starts a drag at the sample. Invalid samples are ignored.
func (v *Viewer) PointerDown(s pointer.Sample) {
	if !v.tracker.Begin(s) {
		return
	}
	v.setState(Dragging)
}

// PointerMove rotates the cube by the movement since the last sample while
// a drag is active.
func (v *Viewer) PointerMove(s pointer.Sample) {
	if d, ok := v.tracker.Move(s); ok {
		v.OnDragMove(d)
	}
}

// PointerUp ends the drag and resumes auto-rotation.
func (v *Viewer) PointerUp() {
	v.endDrag()
}

// PointerLeave ends the drag when the pointer leaves the hit area with the
// button still held.
func (v *Viewer) PointerLeave() {
	v.endDrag()
}

func (v *Viewer) endDrag() {
	v.tracker.End()
	v.setState(AutoRotating)
}

func (v *Viewer) setState(s InteractionState) {
	if v.state == s {
		return
	}
	v.log.Debug("state changed", zap.Stringer("from", v.state), zap.Stringer("to", s))
	v.state = s
}

// OnDragMove applies a drag delta in pixels. Yaw wraps, pitch clamps.
func (v *Viewer) OnDragMove(delta pointer.Point) {
	if !math.Finite(delta.X) || !math.Finite(delta.Y) {
		return
	}
	// Huge sensitivities can still overflow the product.
	if yaw := v.orientation.Yaw + delta.X*v.cfg.sensitivity.Yaw; math.Finite(yaw) {
		v.orientation.Yaw = math.WrapDegrees(yaw)
	}
	if pitch := v.orientation.Pitch - delta.Y*v.cfg.sensitivity.Pitch; math.Finite(pitch) {
		v.orientation.Pitch = v.cfg.pitchRange.Clamp(pitch)
	}
}

// OnWheel zooms one step out for positive deltaY (scroll down) and one step
// in for negative. It always reports true so the host suppresses scrolling.
func (v *Viewer) OnWheel(deltaY float64) bool {
	switch {
	case deltaY > 0:
		v.zoom = v.cfg.zoomRange.Clamp(v.zoom - v.cfg.zoomStep)
	case deltaY < 0:
		v.zoom = v.cfg.zoomRange.Clamp(v.zoom + v.cfg.zoomStep)
	}
	return true
}

// OnDoubleActivate snaps back to the default orientation and zoom.
func (v *Viewer) OnDoubleActivate() {
	v.tracker.End()
	v.setState(AutoRotating)
	v.applyDefaults()
	v.log.Debug("view reset")
}

// AutoRotateTick advances the idle spin by the time since the last frame.
// It does nothing while dragging.
func (v *Viewer) AutoRotateTick(elapsed time.Duration) {
	if v.state == Dragging || elapsed <= 0 {
		return
	}
	if elapsed > maxFrameGap {
		elapsed = maxFrameGap
	}
	frames := float64(elapsed) / float64(v.cfg.frameInterval())
	if yaw := v.orientation.Yaw + v.cfg.autoRotateSpeed*frames; math.Finite(yaw) {
		v.orientation.Yaw = math.WrapDegrees(yaw)
	}
}

// HandleEvent implements pointer.Listener. Presses, wheel and double
// activation only count inside the bounds; moving out while dragging is a
// leave.
func (v *Viewer) HandleEvent(ev pointer.Event) bool {
	p, ok := ev.Sample.Point()
	inside := ok && v.bounds.Contains(p)

	switch ev.Type {
	case pointer.EventDown:
		if inside {
			v.PointerDown(ev.Sample)
			return true
		}
	case pointer.EventMove:
		if v.state != Dragging {
			return false
		}
		if ok && !inside {
			v.PointerLeave()
			return false
		}
		v.PointerMove(ev.Sample)
		return true
	case pointer.EventUp:
		wasDragging := v.state == Dragging
		v.PointerUp()
		return wasDragging
	case pointer.EventLeave:
		v.PointerLeave()
	case pointer.EventWheel:
		if inside {
			return v.OnWheel(ev.DeltaY)
		}
	case pointer.EventDoubleActivate:
		if inside {
			v.OnDoubleActivate()
			return true
		}
	}
	return false
}

// RenderFacePlacement returns the current transform of the face at index.
func (v *Viewer) RenderFacePlacement(index int) (Transform, bool) {
	return FacePlacement(index, v.orientation, v.zoom, v.cfg.edgeLength)
}

// Placements returns the transforms of all six faces, by index.
func (v *Viewer) Placements() [FaceCount]Transform {
	var out [FaceCount]Transform
	for i := range out {
		out[i], _ = v.RenderFacePlacement(i)
	}
	return out
}

// FacingFace returns the face pointing most directly at the viewer.
func (v *Viewer) FacingFace() Face {
	best, bestZ := 0, -2.0
	for i, t := range v.Placements() {
		if z := t.Normal().Z; z > bestZ {
			best, bestZ = i, z
		}
	}
	return v.faces[best]
}

// Snapshot returns the current state.
func (v *Viewer) Snapshot() Snapshot {
	return Snapshot{Orientation: v.orientation, Zoom: v.zoom, State: v.state}
}

// Orientation returns the current rotation.
func (v *Viewer) Orientation() Orientation { return v.orientation }

// Zoom returns the current scale factor.
func (v *Viewer) Zoom() float64 { return v.zoom }

// State returns the current interaction state.
func (v *Viewer) State() InteractionState { return v.state }

// Faces returns the faces ordered by index.
func (v *Viewer) Faces() [FaceCount]Face { return v.faces }

// EdgeLength returns the configured cube edge.
func (v *Viewer) EdgeLength() float64 { return v.cfg.edgeLength }

// Bounds returns the hit area.
func (v *Viewer) Bounds() pointer.Rect { return v.bounds }

// SetBounds sets the hit area. The zero Rect accepts input anywhere.
func (v *Viewer) SetBounds(r pointer.Rect) { v.bounds = r }
