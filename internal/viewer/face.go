package viewer

import (
	"github.com/lucasb-eyer/go-colorful"
)

// FaceCount is the number of panels on the cube.
const FaceCount = 6

// Face is one panel of the cube. Faces are supplied by the host and never
// modified by the viewer.
type Face struct {
	// Index is the ordinal 0..5 that decides where the face sits.
	Index int
	Label string
	// Background is a hex colour such as "#0ea5e9". Empty means the
	// renderer's default.
	Background string
	// Image is an optional path to an icon drawn on the face.
	Image string
}

// Color parses Background. ok is false when no background is set.
func (f Face) Color() (c colorful.Color, ok bool) {
	if f.Background == "" {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(f.Background)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// checkFaces validates the face set and returns it ordered by Index.
func checkFaces(faces []Face) ([FaceCount]Face, error) {
	var ordered [FaceCount]Face
	if len(faces) != FaceCount {
		return ordered, configErr("faces", "need exactly %d faces, got %d", FaceCount, len(faces))
	}

	var seen [FaceCount]bool
	for _, f := range faces {
		if f.Index < 0 || f.Index >= FaceCount {
			return ordered, configErr("faces", "face %q has index %d outside 0..%d", f.Label, f.Index, FaceCount-1)
		}
		if seen[f.Index] {
			return ordered, configErr("faces", "index %d used twice", f.Index)
		}
		if f.Background != "" {
			if _, err := colorful.Hex(f.Background); err != nil {
				return ordered, configErr("faces", "face %d background %q: %v", f.Index, f.Background, err)
			}
		}
		seen[f.Index] = true
		ordered[f.Index] = f
	}
	return ordered, nil
}
