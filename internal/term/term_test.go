package term

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/cubeview/internal/pointer"
	"github.com/Faultbox/cubeview/internal/viewer"
)

func testViewer(t *testing.T) *viewer.Viewer {
	t.Helper()
	labels := []string{"React", "Firebase", "Expo", "JavaScript", "Cloudinary", "UI/UX"}
	colors := []string{"#0ea5e9", "#f59e0b", "#1e293b", "#eab308", "#3448c5", "#2dd4bf"}
	faces := make([]viewer.Face, len(labels))
	for i := range labels {
		faces[i] = viewer.Face{Index: i, Label: labels[i], Background: colors[i]}
	}
	v, err := viewer.New(faces)
	if err != nil {
		t.Fatalf("viewer.New() error: %v", err)
	}
	return v
}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	s.SetSize(w, h)
	return s
}

func row(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func screenText(s tcell.Screen) string {
	_, h := s.Size()
	rows := make([]string, h)
	for y := range rows {
		rows[y] = row(s, y)
	}
	return strings.Join(rows, "\n")
}

func TestDrawFillsCubeAndHUD(t *testing.T) {
	s := newScreen(t, 80, 40)
	defer s.Fini()
	v := testViewer(t)
	r := NewRenderer(Options{CellAspect: 2, ShowHUD: true, Background: "#020617"})

	r.Draw(s, v)
	s.Show()

	_, _, style, _ := s.GetContent(40, 20)
	_, bg, _ := style.Decompose()
	if bg == toTcell(r.bg) {
		t.Error("screen centre should be covered by a face")
	}
	for _, c := range [][2]int{{1, 2}, {0, 0}, {79, 0}, {0, 37}, {79, 37}} {
		_, _, corner, _ := s.GetContent(c[0], c[1])
		if _, bg, _ := corner.Decompose(); bg != toTcell(r.bg) {
			t.Errorf("cell %v should show the background", c)
		}
	}

	text := screenText(s)
	if !strings.Contains(text, "React") {
		t.Error("front face label missing")
	}
	// Top face is tilted too far to label at the default pitch.
	if strings.Contains(text, "Cloudinary") {
		t.Error("oblique top face should not be labelled")
	}
	if hud := row(s, 39); !strings.Contains(hud, "zoom 1.00") || !strings.Contains(hud, "auto-rotating") {
		t.Errorf("HUD = %q", hud)
	}
}

func TestDrawWithoutHUD(t *testing.T) {
	s := newScreen(t, 60, 30)
	defer s.Fini()
	r := NewRenderer(Options{CellAspect: 2})
	r.Draw(s, testViewer(t))
	if strings.Contains(screenText(s), "zoom") {
		t.Error("HUD drawn although disabled")
	}
}

func TestProjectSortsFarthestFirst(t *testing.T) {
	v := testViewer(t)
	r := NewRenderer(Options{CellAspect: 2})
	quads := r.project(v, 80, 40)
	if len(quads) != viewer.FaceCount {
		t.Fatalf("got %d quads, want %d", len(quads), viewer.FaceCount)
	}
	for i := 1; i < len(quads); i++ {
		if quads[i-1].depth > quads[i].depth {
			t.Errorf("quad %d deeper than quad %d", i, i-1)
		}
	}
	if last := quads[len(quads)-1]; last.index != 0 {
		t.Errorf("nearest face = %d, want front (0)", last.index)
	}
}

func TestZoomGrowsProjection(t *testing.T) {
	v := testViewer(t)
	r := NewRenderer(Options{CellAspect: 2})
	width := func() float64 {
		for _, q := range r.project(v, 80, 40) {
			if q.index == 0 {
				return q.corners[1][0] - q.corners[0][0]
			}
		}
		return 0
	}
	before := width()
	v.OnWheel(-1)
	if after := width(); after <= before {
		t.Errorf("front face width %v after zoom in, want > %v", after, before)
	}
}

func TestInsideQuad(t *testing.T) {
	cw := [4][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	ccw := [4][2]float64{{0, 0}, {0, 10}, {10, 10}, {10, 0}}
	for _, c := range [][4][2]float64{cw, ccw} {
		if !inside(c, 5, 5) {
			t.Error("centre should be inside")
		}
		if inside(c, 11, 5) {
			t.Error("point right of quad should be outside")
		}
	}
	if a := area(cw); a != 100 {
		t.Errorf("area = %v, want 100", a)
	}
}

func TestInputDragSequence(t *testing.T) {
	in := NewInput(2)
	down := in.Translate(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone))
	move := in.Translate(tcell.NewEventMouse(12, 5, tcell.Button1, tcell.ModNone))
	up := in.Translate(tcell.NewEventMouse(12, 5, tcell.ButtonNone, tcell.ModNone))
	idle := in.Translate(tcell.NewEventMouse(14, 5, tcell.ButtonNone, tcell.ModNone))

	if len(down) != 1 || down[0].Type != pointer.EventDown {
		t.Fatalf("down = %+v", down)
	}
	if p, _ := down[0].Sample.Point(); p != (pointer.Point{X: 80, Y: 80}) {
		t.Errorf("down at %v, want (80, 80)", p)
	}
	if len(move) != 1 || move[0].Type != pointer.EventMove {
		t.Errorf("move = %+v", move)
	}
	if len(up) != 1 || up[0].Type != pointer.EventUp {
		t.Errorf("up = %+v", up)
	}
	if len(idle) != 0 {
		t.Errorf("motion without button produced %+v", idle)
	}
}

func TestInputWheel(t *testing.T) {
	in := NewInput(2)
	up := in.Translate(tcell.NewEventMouse(1, 1, tcell.WheelUp, tcell.ModNone))
	down := in.Translate(tcell.NewEventMouse(1, 1, tcell.WheelDown, tcell.ModNone))
	if len(up) != 1 || up[0].Type != pointer.EventWheel || up[0].DeltaY != -1 {
		t.Errorf("wheel up = %+v", up)
	}
	if len(down) != 1 || down[0].DeltaY != 1 {
		t.Errorf("wheel down = %+v", down)
	}
}

func TestInputDoubleClick(t *testing.T) {
	in := NewInput(2)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	in.now = func() time.Time { return now }

	in.Translate(tcell.NewEventMouse(3, 3, tcell.Button1, tcell.ModNone))
	in.Translate(tcell.NewEventMouse(3, 3, tcell.ButtonNone, tcell.ModNone))
	now = now.Add(120 * time.Millisecond)
	second := in.Translate(tcell.NewEventMouse(3, 3, tcell.Button1, tcell.ModNone))

	if len(second) != 2 || second[1].Type != pointer.EventDoubleActivate {
		t.Errorf("second click = %+v, want down then double-activate", second)
	}
}

func TestInputFocusLostEndsDrag(t *testing.T) {
	in := NewInput(2)
	if got := in.Translate(tcell.NewEventFocus(false)); got != nil {
		t.Errorf("focus lost while idle = %+v, want nil", got)
	}
	in.Translate(tcell.NewEventMouse(3, 3, tcell.Button1, tcell.ModNone))
	got := in.Translate(tcell.NewEventFocus(false))
	if len(got) != 1 || got[0].Type != pointer.EventLeave {
		t.Errorf("focus lost while dragging = %+v, want leave", got)
	}
}

func TestHostKeys(t *testing.T) {
	s := newScreen(t, 80, 40)
	defer s.Fini()
	v := testViewer(t)
	h := NewHost(s, v, HostOptions{})
	h.viewer.Mount(h.sched, h.events)
	defer h.viewer.Unmount()

	h.handle(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	if y := v.Orientation().Yaw; y < 7.67 || y > 7.69 {
		t.Errorf("yaw after right arrow = %v, want 7.68", y)
	}
	h.handle(tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone))
	if z := v.Zoom(); z <= 1 {
		t.Errorf("zoom after + = %v, want > 1", z)
	}
	h.handle(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	if snap := v.Snapshot(); snap.Orientation.Yaw != 0 || snap.Zoom != 1 {
		t.Errorf("after reset = %+v", snap)
	}

	h.handle(tcell.NewEventMouse(10, 10, tcell.Button1, tcell.ModNone))
	if v.State() != viewer.Dragging {
		t.Error("mouse press should start a drag")
	}
	h.handle(tcell.NewEventMouse(10, 10, tcell.ButtonNone, tcell.ModNone))
	if v.State() != viewer.AutoRotating {
		t.Error("mouse release should end the drag")
	}

	if !h.handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q should quit")
	}
	if !h.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("Esc should quit")
	}
}

func TestHostRunUntilQuit(t *testing.T) {
	s := newScreen(t, 80, 40)
	defer s.Fini()
	v := testViewer(t)
	h := NewHost(s, v, HostOptions{FrameInterval: 5 * time.Millisecond})

	s.InjectMouse(10, 10, tcell.Button1, tcell.ModNone)
	s.InjectMouse(20, 10, tcell.Button1, tcell.ModNone)
	s.InjectMouse(20, 10, tcell.ButtonNone, tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.Run(ctx); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if ctx.Err() != nil {
		t.Fatal("Run only returned on timeout; quit key ignored")
	}

	// 10 cells at 8px and 0.32 deg/px, plus whatever auto-rotation ran.
	if y := v.Orientation().Yaw; y < 25.6-1e-9 {
		t.Errorf("yaw after drag = %v, want >= 25.6", y)
	}
	if v.Mounted() {
		t.Error("viewer still mounted after Run")
	}
}

func TestHostRunStopsOnContext(t *testing.T) {
	s := newScreen(t, 40, 20)
	defer s.Fini()
	h := NewHost(s, testViewer(t), HostOptions{FrameInterval: time.Millisecond})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if err := h.Run(ctx); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
}
