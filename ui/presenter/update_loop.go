package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick/ProcessResults on the sub-presenters and invokes a
// scheduler callback. The zero value is usable (methods are nil-safe).
type Loop struct {
	Images   *ImagePresenter
	Crop     *CropPresenter
	Hint     *HintPresenter
	Session  *SessionPresenter
	Schedule func()
}

func NewLoop(images *ImagePresenter, crop *CropPresenter, hint *HintPresenter, sess *SessionPresenter, schedule func()) *Loop {
	return &Loop{Images: images, Crop: crop, Hint: hint, Session: sess, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	// Apply decoded pictures before painting so the canvas shows them this tick.
	if l.Images != nil {
		l.Images.ProcessResults()
	}
	if l.Crop != nil {
		l.Crop.Tick()
	}
	if l.Hint != nil {
		l.Hint.Tick(now)
	}
	if l.Session != nil {
		l.Session.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
