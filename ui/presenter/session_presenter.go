package presenter

import (
	"time"

	"github.com/soocke/blitzcrop/ui/model"
)

// WorkingModel reports whether a picture is shown and can be cropped.
type WorkingModel interface{ Working() bool }

// SessionView displays the time on the current image, the total time and
// the review counts.
type SessionView interface {
	SetSession(image, total time.Duration, saved, rejected int)
}

type sessionSnapshot struct {
	image, total    time.Duration
	saved, rejected int
}

// SessionPresenter formats session values from the model to the view.
type SessionPresenter struct {
	sess    *model.SessionModel
	working WorkingModel
	view    SessionView
	shown   sessionSnapshot
	pushed  bool
}

// NewSessionPresenter returns a new SessionPresenter.
func NewSessionPresenter(sess *model.SessionModel, working WorkingModel, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, working: working, view: view}
}

// Tick advances the session model and pushes values to the view when the
// displayed seconds or counts changed.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.working == nil || p.view == nil {
		return
	}
	p.sess.OnTick(p.working.Working(), now)
	img, total := p.sess.Values()
	saved, rejected := p.sess.Counts()
	snap := sessionSnapshot{
		image:    img.Truncate(time.Second),
		total:    total.Truncate(time.Second),
		saved:    saved,
		rejected: rejected,
	}
	if p.pushed && snap == p.shown {
		return
	}
	p.shown, p.pushed = snap, true
	p.view.SetSession(snap.image, snap.total, saved, rejected)
}
