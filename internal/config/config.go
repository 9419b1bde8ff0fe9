// Package config handles viewer configuration loading and management.
package config

import (
	"time"

	"github.com/Faultbox/cubeview/internal/viewer"
)

// Config holds all host settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Terminal TerminalConfig `yaml:"terminal"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds SDL window and rendering settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	FPSLimit   int    `yaml:"fps_limit"`
	Background string `yaml:"background"` // hex clear colour

	// ScreenshotDir receives F12 captures; empty means the working directory.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// ViewerConfig mirrors the viewer construction options.
type ViewerConfig struct {
	EdgeLength      float64           `yaml:"edge_length"`
	AutoRotateSpeed float64           `yaml:"auto_rotate_speed"` // degrees per frame
	FrameRate       float64           `yaml:"frame_rate"`
	DragSensitivity SensitivityConfig `yaml:"drag_sensitivity"`
	ZoomRange       [2]float64        `yaml:"zoom_range"`
	ZoomStep        float64           `yaml:"zoom_step"`
	PitchRange      [2]float64        `yaml:"pitch_range"`
	Faces           []FaceConfig      `yaml:"faces"`
}

// SensitivityConfig is drag rotation in degrees per pixel.
type SensitivityConfig struct {
	Yaw   float64 `yaml:"yaw"`
	Pitch float64 `yaml:"pitch"`
}

// FaceConfig describes one cube face. Order in the list is the face index.
type FaceConfig struct {
	Label      string `yaml:"label"`
	Background string `yaml:"background"`
	Image      string `yaml:"image"`
}

// TerminalConfig holds settings for the tcell host.
type TerminalConfig struct {
	FrameInterval time.Duration `yaml:"frame_interval"`
	CellAspect    float64       `yaml:"cell_aspect"` // cell height / width
	ShowHUD       bool          `yaml:"show_hud"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:         "cubeview",
			Width:         1024,
			Height:        768,
			Fullscreen:    false,
			VSync:         true,
			FPSLimit:      0,
			Background:    "#020617",
			ScreenshotDir: "screenshots",
		},
		Viewer: ViewerConfig{
			EdgeLength:      viewer.DefaultEdgeLength,
			AutoRotateSpeed: viewer.DefaultAutoRotateSpeed,
			FrameRate:       viewer.DefaultFrameRate,
			DragSensitivity: SensitivityConfig{
				Yaw:   viewer.DefaultYawSensitivity,
				Pitch: viewer.DefaultPitchSensitivity,
			},
			ZoomRange:  [2]float64{viewer.DefaultZoomRange.Min, viewer.DefaultZoomRange.Max},
			ZoomStep:   viewer.DefaultZoomStep,
			PitchRange: [2]float64{viewer.DefaultPitchRange.Min, viewer.DefaultPitchRange.Max},
			Faces: []FaceConfig{
				{Label: "React", Background: "#0ea5e9"},
				{Label: "Firebase", Background: "#f59e0b"},
				{Label: "Expo", Background: "#1e293b"},
				{Label: "JavaScript", Background: "#eab308"},
				{Label: "Cloudinary", Background: "#3448c5"},
				{Label: "UI/UX", Background: "#2dd4bf"},
			},
		},
		Terminal: TerminalConfig{
			FrameInterval: 16 * time.Millisecond,
			CellAspect:    2.0,
			ShowHUD:       true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// FaceSet converts the face list into viewer faces, indexed by position.
func (v ViewerConfig) FaceSet() []viewer.Face {
	faces := make([]viewer.Face, len(v.Faces))
	for i, f := range v.Faces {
		faces[i] = viewer.Face{
			Index:      i,
			Label:      f.Label,
			Background: f.Background,
			Image:      f.Image,
		}
	}
	return faces
}

// Options converts the settings into viewer options.
func (v ViewerConfig) Options() []viewer.Option {
	return []viewer.Option{
		viewer.WithEdgeLength(v.EdgeLength),
		viewer.WithAutoRotateSpeed(v.AutoRotateSpeed),
		viewer.WithFrameRate(v.FrameRate),
		viewer.WithDragSensitivity(v.DragSensitivity.Yaw, v.DragSensitivity.Pitch),
		viewer.WithZoomRange(v.ZoomRange[0], v.ZoomRange[1]),
		viewer.WithZoomStep(v.ZoomStep),
		viewer.WithPitchRange(v.PitchRange[0], v.PitchRange[1]),
	}
}
