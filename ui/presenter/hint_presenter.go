package presenter

import (
	"time"

	"github.com/soocke/blitzcrop/domain/gesture"
)

// HintView sets the hint line in the view.
type HintView interface{ SetHint(string) }

// HintPresenter mirrors the selection state in the hint line. Messages from
// other presenters replace the hint until the next state change.
type HintPresenter struct {
	view    HintView
	latest  string // last reflected text
	pending []string
}

func NewHintPresenter(view HintView) *HintPresenter {
	return &HintPresenter{view: view, pending: []string{HintFor(gesture.StateIdle)}}
}

// HintFor returns the instruction shown in state s.
func HintFor(s gesture.SelectionState) string {
	switch s {
	case gesture.StateAnchored, gesture.StateDragging:
		return "Release the button to fix the diagonal"
	case gesture.StateSizing:
		return "Move to turn the rectangle, click to crop, Esc cancels"
	default:
		return "Drag a diagonal across the area to crop  [←/→ switch image]"
	}
}

// OnState queues a transitioned state from the FSM listener.
//
// The latest queued text will be reflected on the next Tick.
func (p *HintPresenter) OnState(prev, next gesture.SelectionState) {
	if p == nil {
		return
	}
	p.pending = append(p.pending, HintFor(next))
}

// Notify queues a message.
func (p *HintPresenter) Notify(msg string) {
	if p == nil || msg == "" {
		return
	}
	p.pending = append(p.pending, msg)
}

// Tick processes queued texts and updates the view with the most recent one.
// It clears the pending queue after processing.
func (p *HintPresenter) Tick(now time.Time) {
	if p == nil || p.view == nil {
		return
	}
	if len(p.pending) > 0 {
		last := p.pending[len(p.pending)-1]
		p.pending = p.pending[:0]
		if last != p.latest {
			p.latest = last
			p.view.SetHint(last)
		}
	}
}
