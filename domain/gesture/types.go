package gesture

import "github.com/soocke/blitzcrop/domain/geometry"

// SelectionState enumerates the states of the drag-then-click gesture.
type SelectionState int

const (
	StateIdle SelectionState = iota
	StateAnchored
	StateDragging
	StateSizing
)

func (s SelectionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAnchored:
		return "anchored"
	case StateDragging:
		return "dragging"
	case StateSizing:
		return "sizing"
	default:
		return "unknown"
	}
}

// SelectionStateListener is called on each successful state transition.
type SelectionStateListener func(prev, next SelectionState)

// Overlay describes what should be drawn on top of the image. Nil fields
// are not drawn.
type Overlay struct {
	Circle *geometry.Circle      // circle spanned by the dragged diagonal
	Rect   *geometry.RotatedRect // rectangle derived from the pointer
	Handle *geometry.Point       // pointer projected onto the circle
}

// Empty reports whether nothing needs to be drawn.
func (o Overlay) Empty() bool { return o.Circle == nil && o.Rect == nil && o.Handle == nil }

// Interface slices for consumers (presenters).
type SelectionStateSource interface{ Current() SelectionState }
type SelectionPointer interface {
	Press(p geometry.Point) (geometry.RotatedRect, bool)
	Drag(p geometry.Point)
	Release(p geometry.Point)
	Move(p geometry.Point)
	Abort() bool
}

// SelectionFSMContract aggregate for DI.
type SelectionFSMContract interface {
	SelectionStateSource
	SelectionPointer
	Overlay() Overlay
	AddListener(SelectionStateListener)
}
