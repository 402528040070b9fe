// Package gesture implements the drag-then-click selection of a rotated
// rectangle: press and drag spans the diagonal, moving the pointer picks the
// rectangle inscribed in the diagonal's circle, a click commits it.
package gesture

import (
	"log/slog"

	"github.com/soocke/blitzcrop/domain/geometry"
)

// DefaultMinSide is the smallest accepted diagonal and rectangle side in
// canvas pixels.
const DefaultMinSide = 4.0

// SelectionFSM tracks the selection gesture. It is driven from the Tk event
// loop and is not safe for concurrent use.
type SelectionFSM struct {
	state     SelectionState
	logger    *slog.Logger
	minSide   float64
	anchor    geometry.Point // press position, first corner
	end       geometry.Point // release position, opposite corner
	circle    geometry.Circle
	handle    geometry.Point
	rect      geometry.RotatedRect
	rectSet   bool
	listeners []SelectionStateListener
}

// NewSelectionFSM returns an idle FSM. minSide <= 0 selects DefaultMinSide.
func NewSelectionFSM(logger *slog.Logger, minSide float64) *SelectionFSM {
	if minSide <= 0 {
		minSide = DefaultMinSide
	}
	return &SelectionFSM{state: StateIdle, logger: logger, minSide: minSide}
}

func (f *SelectionFSM) AddListener(l SelectionStateListener) { f.listeners = append(f.listeners, l) }
func (f *SelectionFSM) Current() SelectionState              { return f.state }

// Press handles a primary button press. While sizing with a valid rectangle
// the rectangle is committed and returned; otherwise a new diagonal starts.
func (f *SelectionFSM) Press(p geometry.Point) (geometry.RotatedRect, bool) {
	if f.state == StateSizing && f.rectSet && !f.rect.Degenerate(f.minSide) {
		r := f.rect
		if f.logger != nil {
			f.logger.Debug("selection committed",
				"degrees", r.Degrees(), "width", r.Width(), "height", r.Height())
		}
		f.reset()
		f.transition(StateIdle)
		return r, true
	}
	f.reset()
	f.anchor, f.end = p, p
	f.transition(StateAnchored)
	return geometry.RotatedRect{}, false
}

// Drag handles pointer motion with the primary button held.
func (f *SelectionFSM) Drag(p geometry.Point) {
	switch f.state {
	case StateAnchored, StateDragging:
		f.end = p
		f.circle = geometry.CircleFromDiameter(f.anchor, f.end)
		if f.state == StateAnchored && p != f.anchor {
			f.transition(StateDragging)
		}
	}
}

// Release handles the primary button release and fixes the diagonal.
func (f *SelectionFSM) Release(p geometry.Point) {
	switch f.state {
	case StateAnchored:
		f.reset()
		f.transition(StateIdle)
	case StateDragging:
		f.end = p
		f.circle = geometry.CircleFromDiameter(f.anchor, f.end)
		if f.anchor.Dist(f.end) < f.minSide {
			f.reset()
			f.transition(StateIdle)
			return
		}
		f.transition(StateSizing)
	}
}

// Move handles pointer motion without buttons. While sizing the pointer is
// projected onto the circle and the inscribed rectangle is rebuilt.
func (f *SelectionFSM) Move(p geometry.Point) {
	if f.state != StateSizing {
		return
	}
	h, ok := f.circle.Project(p)
	if !ok {
		return
	}
	f.handle = h
	opposite := geometry.CentralInversion(h, f.circle.Center)
	f.rect = geometry.RectFromCorners(f.anchor, h, f.end, opposite)
	f.rectSet = true
}

// Abort cancels the gesture. It reports whether a gesture was in progress.
func (f *SelectionFSM) Abort() bool {
	if f.state == StateIdle {
		return false
	}
	f.reset()
	f.transition(StateIdle)
	return true
}

// Overlay returns the shapes describing the current gesture.
func (f *SelectionFSM) Overlay() Overlay {
	var o Overlay
	switch f.state {
	case StateDragging:
		c := f.circle
		o.Circle = &c
	case StateSizing:
		c := f.circle
		o.Circle = &c
		if f.rectSet {
			r, h := f.rect, f.handle
			o.Rect = &r
			o.Handle = &h
		}
	}
	return o
}

// Selection returns the rectangle currently shown while sizing.
func (f *SelectionFSM) Selection() (geometry.RotatedRect, bool) {
	if f.state != StateSizing || !f.rectSet {
		return geometry.RotatedRect{}, false
	}
	return f.rect, true
}

func (f *SelectionFSM) reset() {
	f.anchor, f.end, f.handle = geometry.Point{}, geometry.Point{}, geometry.Point{}
	f.circle = geometry.Circle{}
	f.rect = geometry.RotatedRect{}
	f.rectSet = false
}

func (f *SelectionFSM) transition(next SelectionState) {
	prev := f.state
	if prev == next {
		return
	}
	f.state = next
	if f.logger != nil {
		f.logger.Debug("selection state transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range f.listeners {
		l(prev, next)
	}
}

// Ensure contract satisfaction
var _ SelectionFSMContract = (*SelectionFSM)(nil)
