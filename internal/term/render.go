// Package term hosts the cube viewer in a terminal using tcell. Faces are
// rasterized into character cells with a painter's sort.
package term

import (
	"fmt"
	gomath "math"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/Faultbox/cubeview/internal/engine/camera"
	"github.com/Faultbox/cubeview/internal/viewer"
	"github.com/Faultbox/cubeview/pkg/math"
)

const (
	// fitEdges is how many edge lengths span the short side of the screen.
	fitEdges = 2.4
	// labelMinFacing hides labels on faces seen too obliquely to read.
	labelMinFacing = 0.35
)

// Options configures the terminal renderer.
type Options struct {
	// CellAspect is cell height over cell width, about 2 for most fonts.
	CellAspect float64
	ShowHUD    bool
	Background string
}

// Renderer draws a viewer onto a tcell screen.
type Renderer struct {
	opts Options
	bg   colorful.Color
}

// NewRenderer returns a renderer. Invalid options fall back to defaults.
func NewRenderer(opts Options) *Renderer {
	if opts.CellAspect <= 0 {
		opts.CellAspect = 2
	}
	bg, err := colorful.Hex(opts.Background)
	if err != nil {
		bg = colorful.Color{R: 0.01, G: 0.02, B: 0.09}
	}
	return &Renderer{opts: opts, bg: bg}
}

// quad is one face projected to cell space.
type quad struct {
	index   int
	corners [4][2]float64 // col, row
	center  [2]float64
	depth   float64
	facing  float64
}

// Draw renders the cube and, if enabled, the HUD.
func (r *Renderer) Draw(s tcell.Screen, v *viewer.Viewer) {
	w, h := s.Size()
	bgStyle := tcell.StyleDefault.Background(toTcell(r.bg))
	s.SetStyle(bgStyle)
	s.Fill(' ', bgStyle)
	if w <= 0 || h <= 0 {
		return
	}

	faces := v.Faces()
	for _, q := range r.project(v, w, h) {
		base := faceColor(faces[q.index])
		fill := base.BlendLab(colorful.Color{}, 1-shade(q.facing)).Clamped()
		style := tcell.StyleDefault.Background(toTcell(fill))
		fillQuad(s, q, w, h, style)
		if q.facing >= labelMinFacing {
			drawCentered(s, int(q.center[0]), int(q.center[1]), style.Foreground(contrast(fill)), faces[q.index].Label)
		}
	}

	if r.opts.ShowHUD {
		r.drawHUD(s, v, w, h)
	}
}

// project places every face in cell coordinates, farthest first.
func (r *Renderer) project(v *viewer.Viewer, w, h int) []quad {
	edge := v.EdgeLength()
	cam := camera.ForCube(edge)

	short := float64(w)
	if tall := float64(h) * r.opts.CellAspect; tall < short {
		short = tall
	}
	unit := short / (edge * fitEdges) // cell widths per view unit
	cx, cy := float64(w)/2, float64(h)/2

	toCell := func(p math.Vec3) [2]float64 {
		k := cam.Foreshorten(p.Z)
		return [2]float64{
			cx + p.X*k*unit,
			cy - p.Y*k*unit/r.opts.CellAspect,
		}
	}

	out := make([]quad, 0, viewer.FaceCount)
	for i, t := range v.Placements() {
		q := quad{index: i, facing: t.Normal().Z}
		for j, c := range t.Corners(edge) {
			q.corners[j] = toCell(c)
		}
		center := t.Center()
		q.center = toCell(center)
		q.depth = center.Z
		out = append(out, q)
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].depth < out[b].depth })
	return out
}

// fillQuad paints every cell whose centre lies inside the quad. Quads seen
// edge-on cover no cells.
func fillQuad(s tcell.Screen, q quad, w, h int, style tcell.Style) {
	if a := area(q.corners); a > -0.5 && a < 0.5 {
		return
	}
	minX, minY := q.corners[0][0], q.corners[0][1]
	maxX, maxY := minX, minY
	for _, c := range q.corners[1:] {
		minX, maxX = gomath.Min(minX, c[0]), gomath.Max(maxX, c[0])
		minY, maxY = gomath.Min(minY, c[1]), gomath.Max(maxY, c[1])
	}
	x0, x1 := clampInt(int(gomath.Floor(minX)), 0, w-1), clampInt(int(gomath.Ceil(maxX)), 0, w-1)
	y0, y1 := clampInt(int(gomath.Floor(minY)), 0, h-1), clampInt(int(gomath.Ceil(maxY)), 0, h-1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if inside(q.corners, float64(x)+0.5, float64(y)+0.5) {
				s.SetContent(x, y, ' ', nil, style)
			}
		}
	}
}

// area is the signed area of the quad (shoelace).
func area(c [4][2]float64) float64 {
	var sum float64
	for i := range c {
		j := (i + 1) % len(c)
		sum += c[i][0]*c[j][1] - c[j][0]*c[i][1]
	}
	return sum / 2
}

// inside reports whether (x, y) lies in the convex quad, in either winding.
func inside(c [4][2]float64, x, y float64) bool {
	var pos, neg bool
	for i := range c {
		j := (i + 1) % len(c)
		cross := (c[j][0]-c[i][0])*(y-c[i][1]) - (c[j][1]-c[i][1])*(x-c[i][0])
		if cross > 0 {
			pos = true
		} else if cross < 0 {
			neg = true
		}
		if pos && neg {
			return false
		}
	}
	return true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func shade(facing float64) float64 {
	if facing < 0 {
		facing = 0
	}
	return 0.45 + 0.55*facing
}

func faceColor(f viewer.Face) colorful.Color {
	if c, ok := f.Color(); ok {
		return c
	}
	return colorful.Color{R: 0.2, G: 0.25, B: 0.33}
}

// contrast picks a readable label colour for a fill.
func contrast(c colorful.Color) tcell.Color {
	if l, _, _ := c.Lab(); l > 0.6 {
		return tcell.NewRGBColor(15, 23, 42)
	}
	return tcell.NewRGBColor(248, 250, 252)
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (r *Renderer) drawHUD(s tcell.Screen, v *viewer.Viewer, w, h int) {
	style := tcell.StyleDefault.Background(toTcell(r.bg)).Foreground(tcell.ColorGray)
	snap := v.Snapshot()
	status := fmt.Sprintf("yaw %3.0f  pitch %+3.0f  zoom %.2f  %s  facing %s",
		snap.Orientation.Yaw, snap.Orientation.Pitch, snap.Zoom, snap.State, v.FacingFace().Label)
	drawText(s, 1, h-1, style, status)
	drawText(s, 1, 0, style, "drag rotate  wheel zoom  double-click reset  q quit")
}

func drawCentered(s tcell.Screen, col, row int, style tcell.Style, text string) {
	drawText(s, col-runewidth.StringWidth(text)/2, row, style, text)
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, str string) {
	for _, r := range str {
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}
