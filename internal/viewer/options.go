package viewer

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/cubeview/pkg/math"
)

// Defaults for a freshly constructed viewer.
const (
	DefaultAutoRotateSpeed  = 0.25 // degrees per frame
	DefaultFrameRate        = 60.0
	DefaultYawSensitivity   = 0.32 // degrees per pixel
	DefaultPitchSensitivity = 0.32
	DefaultZoomStep         = 0.08
	DefaultEdgeLength       = 200.0

	DefaultYaw   = 0.0
	DefaultPitch = -20.0
	DefaultZoom  = 1.0
)

// Default ranges.
var (
	DefaultZoomRange  = Range{Min: 0.7, Max: 1.6}
	DefaultPitchRange = Range{Min: -85, Max: 85}
)

// maxFrameGap caps how much rotation a single late frame may apply.
const maxFrameGap = 250 * time.Millisecond

// Range is a closed interval.
type Range struct {
	Min, Max float64
}

// Clamp limits v to the range.
func (r Range) Clamp(v float64) float64 {
	return math.Clamp(v, r.Min, r.Max)
}

// Contains reports whether v is inside the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Sensitivity is the rotation applied per pixel of drag, in degrees.
type Sensitivity struct {
	Yaw, Pitch float64
}

type settings struct {
	autoRotateSpeed float64
	frameRate       float64
	sensitivity     Sensitivity
	zoomRange       Range
	zoomStep        float64
	pitchRange      Range
	edgeLength      float64
	log             *zap.Logger
}

func defaultSettings() settings {
	return settings{
		autoRotateSpeed: DefaultAutoRotateSpeed,
		frameRate:       DefaultFrameRate,
		sensitivity:     Sensitivity{Yaw: DefaultYawSensitivity, Pitch: DefaultPitchSensitivity},
		zoomRange:       DefaultZoomRange,
		zoomStep:        DefaultZoomStep,
		pitchRange:      DefaultPitchRange,
		edgeLength:      DefaultEdgeLength,
		log:             zap.NewNop(),
	}
}

// validate checks the settings after all options were applied.
func (s settings) validate() error {
	switch {
	case !math.Finite(s.autoRotateSpeed) || s.autoRotateSpeed < 0:
		return configErr("autoRotateSpeed", "must be a finite value >= 0, got %v", s.autoRotateSpeed)
	case !math.Finite(s.frameRate) || s.frameRate <= 0:
		return configErr("frameRate", "must be > 0, got %v", s.frameRate)
	case s.frameInterval() <= 0:
		return configErr("frameRate", "%v fps is below clock resolution", s.frameRate)
	case !math.Finite(s.sensitivity.Yaw) || !math.Finite(s.sensitivity.Pitch):
		return configErr("dragSensitivity", "must be finite, got %v/%v", s.sensitivity.Yaw, s.sensitivity.Pitch)
	case !math.Finite(s.zoomRange.Min) || !math.Finite(s.zoomRange.Max) || s.zoomRange.Min <= 0:
		return configErr("zoomRange", "minimum must be > 0, got %v", s.zoomRange.Min)
	case s.zoomRange.Min > s.zoomRange.Max:
		return configErr("zoomRange", "min %v > max %v", s.zoomRange.Min, s.zoomRange.Max)
	case !math.Finite(s.zoomStep) || s.zoomStep <= 0:
		return configErr("zoomStep", "must be > 0, got %v", s.zoomStep)
	case s.pitchRange.Min > s.pitchRange.Max:
		return configErr("pitchRange", "min %v > max %v", s.pitchRange.Min, s.pitchRange.Max)
	case !(s.pitchRange.Min >= -90 && s.pitchRange.Max <= 90):
		return configErr("pitchRange", "must stay within [-90, 90], got [%v, %v]", s.pitchRange.Min, s.pitchRange.Max)
	case !math.Finite(s.edgeLength) || s.edgeLength <= 0:
		return configErr("edgeLength", "must be > 0, got %v", s.edgeLength)
	}
	return nil
}

// frameInterval is the duration of one native frame.
func (s settings) frameInterval() time.Duration {
	return time.Duration(float64(time.Second) / s.frameRate)
}

// Option configures a Viewer.
type Option func(*settings)

// WithAutoRotateSpeed sets the idle spin in degrees per native frame.
func WithAutoRotateSpeed(degPerFrame float64) Option {
	return func(s *settings) { s.autoRotateSpeed = degPerFrame }
}

// WithFrameRate sets the host's native frame rate used to scale auto-rotation.
func WithFrameRate(fps float64) Option {
	return func(s *settings) { s.frameRate = fps }
}

// WithDragSensitivity sets degrees of rotation per pixel of drag.
func WithDragSensitivity(yaw, pitch float64) Option {
	return func(s *settings) { s.sensitivity = Sensitivity{Yaw: yaw, Pitch: pitch} }
}

// WithZoomRange sets the zoom clamp.
func WithZoomRange(lo, hi float64) Option {
	return func(s *settings) { s.zoomRange = Range{Min: lo, Max: hi} }
}

// WithZoomStep sets the zoom change per wheel notch.
func WithZoomStep(step float64) Option {
	return func(s *settings) { s.zoomStep = step }
}

// WithPitchRange sets the pitch clamp in degrees.
func WithPitchRange(lo, hi float64) Option {
	return func(s *settings) { s.pitchRange = Range{Min: lo, Max: hi} }
}

// WithEdgeLength sets the cube edge; faces sit half of it from the centre.
func WithEdgeLength(edge float64) Option {
	return func(s *settings) { s.edgeLength = edge }
}

// WithLogger routes viewer debug logs to log. A nil logger is ignored.
func WithLogger(log *zap.Logger) Option {
	return func(s *settings) {
		if log != nil {
			s.log = log
		}
	}
}
