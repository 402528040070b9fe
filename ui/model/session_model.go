package model

import (
	"time"
)

// SessionModel tracks the time spent on the current image, the accumulated
// working time and the review outcomes. It is decoupled from the UI;
// presenters should poll Values() and update views.
// The zero value is ready to use.
type SessionModel struct {
	active       bool
	imageStart   time.Time
	lastImage    time.Duration
	accumulated  time.Duration
	accepted     int
	rejected     int
	imageChanged bool
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick updates the model using the current working state and timestamp.
// Work pauses while no image is shown. Call periodically (for example, from a presenter tick).
func (m *SessionModel) OnTick(working bool, now time.Time) {
	if m == nil {
		return
	}
	if m.imageChanged && m.active {
		m.accumulated += now.Sub(m.imageStart)
		m.imageStart = now
		m.lastImage = 0
	}
	m.imageChanged = false
	if working {
		if !m.active { // transition off -> on
			m.active = true
			m.imageStart = now
			m.lastImage = 0
		}
		m.lastImage = now.Sub(m.imageStart)
	} else if m.active { // transition on -> off
		m.lastImage = now.Sub(m.imageStart)
		m.accumulated += m.lastImage
		m.active = false
	}
}

// ImageChanged restarts the per-image timer on the next tick.
func (m *SessionModel) ImageChanged() {
	if m == nil {
		return
	}
	m.imageChanged = true
}

func (m *SessionModel) OnAccepted() {
	if m != nil {
		m.accepted++
	}
}

func (m *SessionModel) OnRejected() {
	if m != nil {
		m.rejected++
	}
}

// Values returns the time on the current image and the total working time.
// The total includes the ongoing image when active.
func (m *SessionModel) Values() (image, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	image = m.lastImage
	total = m.accumulated
	if m.active {
		total += image
	}
	return
}

// Counts returns the number of accepted and rejected previews.
func (m *SessionModel) Counts() (accepted, rejected int) {
	if m == nil {
		return 0, 0
	}
	return m.accepted, m.rejected
}
