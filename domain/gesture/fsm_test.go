package gesture

import (
	"log/slog"
	"math"
	"testing"

	"github.com/soocke/blitzcrop/domain/geometry"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

type transitionRecorder struct {
	seq []SelectionState
}

func (r *transitionRecorder) listener(prev, next SelectionState) {
	r.seq = append(r.seq, next)
}

// dragDiagonal runs press, drag and release from a to b.
func dragDiagonal(f *SelectionFSM, a, b geometry.Point) {
	f.Press(a)
	f.Drag(a.Add(b).Mul(0.5))
	f.Drag(b)
	f.Release(b)
}

func TestSelectionFSM_DragThenClickCommits(t *testing.T) {
	f := NewSelectionFSM(discardLogger, 0)
	r := &transitionRecorder{}
	f.AddListener(r.listener)

	a, b := geometry.Pt(100, 100), geometry.Pt(300, 200)
	dragDiagonal(f, a, b)
	if f.Current() != StateSizing {
		t.Fatalf("expected sizing after drag, got %v", f.Current())
	}
	// pointer at the upper right of the diagonal's box
	f.Move(geometry.Pt(400, 60))
	sel, ok := f.Selection()
	if !ok {
		t.Fatalf("expected a selection while sizing")
	}
	circle := geometry.CircleFromDiameter(a, b)
	for i, c := range sel.Corners() {
		if !circle.Contains(c, 1e-6) {
			t.Fatalf("corner %d %v not on circle %v", i, c, circle)
		}
	}

	rect, ok := f.Press(geometry.Pt(400, 60))
	if !ok {
		t.Fatalf("expected commit on click")
	}
	if rect != sel {
		t.Fatalf("committed rect %v differs from shown %v", rect, sel)
	}
	if f.Current() != StateIdle {
		t.Fatalf("expected idle after commit, got %v", f.Current())
	}
	want := []SelectionState{StateAnchored, StateDragging, StateSizing, StateIdle}
	if len(r.seq) != len(want) {
		t.Fatalf("unexpected transitions %v", r.seq)
	}
	for i := range want {
		if r.seq[i] != want[i] {
			t.Fatalf("transition %d: want %v got %v (all %v)", i, want[i], r.seq[i], r.seq)
		}
	}
}

func TestSelectionFSM_AxisAlignedRectangle(t *testing.T) {
	f := NewSelectionFSM(discardLogger, 0)
	a, b := geometry.Pt(0, 0), geometry.Pt(80, 60)
	dragDiagonal(f, a, b)
	// pointer far to the right of the box
	f.Move(geometry.Pt(880, 0))
	sel, ok := f.Selection()
	if !ok {
		t.Fatalf("no selection")
	}
	// the projected corner is not (80,0) but the rectangle keeps right angles
	d1 := sel.UpperRight.Sub(sel.UpperLeft)
	d2 := sel.LowerRight.Sub(sel.UpperRight)
	if math.Abs(d1.Dot(d2)) > 1e-6 {
		t.Fatalf("corner is not a right angle: %v %v", d1, d2)
	}
	diag := sel.UpperLeft.Dist(sel.LowerRight)
	if math.Abs(diag-100) > 1e-6 {
		t.Fatalf("diagonal length changed: %v", diag)
	}
}

func TestSelectionFSM_RotationFromHandle(t *testing.T) {
	f := NewSelectionFSM(discardLogger, 0)
	// a square rotated by 30 degrees has its diagonal at 30-45 = -15 degrees
	side := 100.0
	theta := 30 * math.Pi / 180
	ul := geometry.Pt(200, 200)
	dir := geometry.Pt(math.Cos(theta), -math.Sin(theta))
	nrm := geometry.Pt(-dir.Y, dir.X)
	ur := ul.Add(dir.Mul(side))
	lr := ur.Add(nrm.Mul(side))
	dragDiagonal(f, ul, lr)
	f.Move(ur.Add(ur.Sub(ul.Add(lr).Mul(0.5)))) // further out on the ray through ur
	rect, ok := f.Press(ur)
	if !ok {
		t.Fatalf("expected commit")
	}
	if math.Abs(rect.Degrees()-30) > 1e-6 {
		t.Fatalf("expected 30 degrees, got %v", rect.Degrees())
	}
	if math.Abs(rect.Width()-side) > 1e-6 || math.Abs(rect.Height()-side) > 1e-6 {
		t.Fatalf("expected %vx%v, got %vx%v", side, side, rect.Width(), rect.Height())
	}
}

func TestSelectionFSM_ShortDiagonalReturnsToIdle(t *testing.T) {
	f := NewSelectionFSM(discardLogger, 10)
	dragDiagonal(f, geometry.Pt(10, 10), geometry.Pt(13, 14))
	if f.Current() != StateIdle {
		t.Fatalf("expected idle for a too short diagonal, got %v", f.Current())
	}
}

func TestSelectionFSM_ClickWithoutDragIsIgnored(t *testing.T) {
	f := NewSelectionFSM(discardLogger, 0)
	f.Press(geometry.Pt(5, 5))
	if f.Current() != StateAnchored {
		t.Fatalf("expected anchored, got %v", f.Current())
	}
	f.Release(geometry.Pt(5, 5))
	if f.Current() != StateIdle {
		t.Fatalf("expected idle, got %v", f.Current())
	}
	if !f.Overlay().Empty() {
		t.Fatalf("expected empty overlay")
	}
}

func TestSelectionFSM_ClickBeforeMoveRestartsDiagonal(t *testing.T) {
	f := NewSelectionFSM(discardLogger, 0)
	dragDiagonal(f, geometry.Pt(0, 0), geometry.Pt(50, 50))
	if _, ok := f.Press(geometry.Pt(70, 70)); ok {
		t.Fatalf("no rectangle was chosen yet, commit must not happen")
	}
	if f.Current() != StateAnchored {
		t.Fatalf("expected a new anchor, got %v", f.Current())
	}
}

func TestSelectionFSM_DegenerateRectangleDoesNotCommit(t *testing.T) {
	f := NewSelectionFSM(discardLogger, 5)
	a, b := geometry.Pt(0, 0), geometry.Pt(100, 0)
	dragDiagonal(f, a, b)
	// pointer on the diagonal itself gives a zero height rectangle
	f.Move(geometry.Pt(200, 0))
	if _, ok := f.Press(geometry.Pt(200, 0)); ok {
		t.Fatalf("degenerate rectangle committed")
	}
}

func TestSelectionFSM_AbortFromEveryState(t *testing.T) {
	f := NewSelectionFSM(discardLogger, 0)
	if f.Abort() {
		t.Fatalf("abort in idle must report false")
	}

	f.Press(geometry.Pt(1, 1))
	if !f.Abort() || f.Current() != StateIdle {
		t.Fatalf("abort from anchored failed: %v", f.Current())
	}

	f.Press(geometry.Pt(1, 1))
	f.Drag(geometry.Pt(40, 40))
	if f.Current() != StateDragging {
		t.Fatalf("expected dragging, got %v", f.Current())
	}
	if !f.Abort() || f.Current() != StateIdle {
		t.Fatalf("abort from dragging failed: %v", f.Current())
	}

	dragDiagonal(f, geometry.Pt(0, 0), geometry.Pt(40, 40))
	f.Move(geometry.Pt(60, 0))
	if !f.Abort() || f.Current() != StateIdle {
		t.Fatalf("abort from sizing failed: %v", f.Current())
	}
	if !f.Overlay().Empty() {
		t.Fatalf("overlay must be cleared after abort")
	}
}

func TestSelectionFSM_OverlayPerState(t *testing.T) {
	f := NewSelectionFSM(discardLogger, 0)
	f.Press(geometry.Pt(0, 0))
	f.Drag(geometry.Pt(20, 0))
	o := f.Overlay()
	if o.Circle == nil || o.Rect != nil || o.Handle != nil {
		t.Fatalf("dragging overlay should only hold the circle: %+v", o)
	}
	if o.Circle.Radius != 10 {
		t.Fatalf("unexpected radius %v", o.Circle.Radius)
	}
	f.Release(geometry.Pt(20, 0))
	if o := f.Overlay(); o.Circle == nil || o.Rect != nil {
		t.Fatalf("sizing before move should only hold the circle: %+v", o)
	}
	f.Move(geometry.Pt(10, -30))
	o = f.Overlay()
	if o.Circle == nil || o.Rect == nil || o.Handle == nil {
		t.Fatalf("sizing overlay incomplete: %+v", o)
	}
	if math.Abs(o.Handle.X-10) > 1e-9 || math.Abs(o.Handle.Y+10) > 1e-9 {
		t.Fatalf("handle not projected onto circle: %v", *o.Handle)
	}
}

func TestSelectionFSM_MoveAtCentreKeepsPreviousRect(t *testing.T) {
	f := NewSelectionFSM(discardLogger, 0)
	dragDiagonal(f, geometry.Pt(0, 0), geometry.Pt(20, 20))
	f.Move(geometry.Pt(30, 0))
	before, _ := f.Selection()
	f.Move(geometry.Pt(10, 10))
	after, ok := f.Selection()
	if !ok || before != after {
		t.Fatalf("move onto the centre must keep the last rectangle")
	}
}
