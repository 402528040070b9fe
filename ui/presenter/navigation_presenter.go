package presenter

import (
	"log/slog"

	"github.com/soocke/blitzcrop/domain/batch"
)

// NavBatch is the batch cursor used for navigation.
type NavBatch interface {
	Next() bool
	Prev() bool
	Current() batch.Item
	Summary() batch.Summary
}

// PictureShower displays a picture by path.
type PictureShower interface{ Show(path string) }

// Aborter cancels a running selection.
type Aborter interface{ Abort() bool }

// ImageChangeListener is told when another image is shown.
type ImageChangeListener interface{ ImageChanged() }

// NavigationPresenter moves between images. Navigation is ignored while a
// preview is open and stops at both ends of the batch.
type NavigationPresenter struct {
	batch   NavBatch
	shower  PictureShower
	crop    Aborter
	gate    ReviewGate
	session ImageChangeListener
	notify  Notifier
	logger  *slog.Logger
}

func NewNavigationPresenter(b NavBatch, shower PictureShower, crop Aborter, gate ReviewGate, session ImageChangeListener, notify Notifier, logger *slog.Logger) *NavigationPresenter {
	return &NavigationPresenter{batch: b, shower: shower, crop: crop, gate: gate, session: session, notify: notify, logger: logger}
}

// Next shows the following image and reports whether it moved.
func (n *NavigationPresenter) Next() bool {
	return n.step(func() bool { return n.batch.Next() }, "Last image. ")
}

// Prev shows the preceding image and reports whether it moved.
func (n *NavigationPresenter) Prev() bool {
	return n.step(func() bool { return n.batch.Prev() }, "First image. ")
}

func (n *NavigationPresenter) step(move func() bool, edge string) bool {
	if n == nil || n.batch == nil {
		return false
	}
	if n.gate != nil && n.gate.IsOpen() {
		return false
	}
	if !move() {
		if n.notify != nil {
			n.notify.Notify(edge + n.batch.Summary().String())
		}
		return false
	}
	n.ShowCurrent()
	return true
}

// ShowCurrent displays the image under the cursor.
func (n *NavigationPresenter) ShowCurrent() {
	if n == nil || n.batch == nil {
		return
	}
	if n.crop != nil {
		n.crop.Abort()
	}
	if n.session != nil {
		n.session.ImageChanged()
	}
	cur := n.batch.Current()
	if n.logger != nil {
		n.logger.Debug("show image", "path", cur.Path, "status", cur.Status.String())
	}
	if n.shower != nil {
		n.shower.Show(cur.Path)
	}
}
