package presenter

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"

	"github.com/soocke/blitzcrop/domain/batch"
	"github.com/soocke/blitzcrop/domain/geometry"
	"github.com/soocke/blitzcrop/domain/picture"
	"github.com/soocke/blitzcrop/ui/images"
)

// CropFunc cuts rect out of src.
type CropFunc func(src image.Image, rect geometry.RotatedRect) (*image.NRGBA, error)

// OutputWriter stores an accepted crop and returns its path.
type OutputWriter interface {
	Write(ctx context.Context, img image.Image, source string, index int) (string, error)
}

// ReviewBatch records review outcomes for the current image.
type ReviewBatch interface {
	Current() batch.Item
	MarkCropped(output string) int
	MarkRejected()
}

// ReviewView shows and hides the preview dialog.
type ReviewView interface {
	OpenReview(preview image.Image, info string)
	CloseReview()
}

// ReviewCounter counts review outcomes.
type ReviewCounter interface {
	OnAccepted()
	OnRejected()
}

// Notifier shows a short message in the hint line.
type Notifier interface{ Notify(msg string) }

// Advancer moves to the next image.
type Advancer interface{ Next() bool }

const (
	previewMaxW = 640
	previewMaxH = 480
)

// ReviewPresenter owns the accept/reject step between a committed
// selection and the written file. Open, Accept and Reject are idempotent.
type ReviewPresenter struct {
	ctx     context.Context
	crop    CropFunc
	writer  OutputWriter
	batch   ReviewBatch
	view    ReviewView
	counter ReviewCounter
	notify  Notifier
	logger  *slog.Logger

	// Next and AdvanceOnAccept control what happens after a successful accept.
	Next            Advancer
	AdvanceOnAccept func() bool

	open    bool
	pending *image.NRGBA
	source  string
}

func NewReviewPresenter(ctx context.Context, crop CropFunc, writer OutputWriter, b ReviewBatch, view ReviewView, counter ReviewCounter, notify Notifier, logger *slog.Logger) *ReviewPresenter {
	return &ReviewPresenter{ctx: ctx, crop: crop, writer: writer, batch: b, view: view, counter: counter, notify: notify, logger: logger}
}

// IsOpen reports whether a preview waits for a decision.
func (r *ReviewPresenter) IsOpen() bool { return r != nil && r.open }

// Open crops rect out of pic and shows the preview. It reports whether the
// preview was opened.
func (r *ReviewPresenter) Open(pic *picture.Picture, rect geometry.RotatedRect) bool {
	if r == nil || r.crop == nil || r.view == nil || pic == nil || r.open {
		return false
	}
	out, err := r.crop(pic.Image, rect)
	if err != nil {
		if r.logger != nil {
			r.logger.Warn("crop failed", "path", pic.Path, "error", err)
		}
		r.say("Selection not usable: " + err.Error())
		return false
	}
	r.open = true
	r.pending = out
	r.source = pic.Path
	info := fmt.Sprintf("%d×%d px, rotated %.1f°  [Enter] accept  [Esc] reject",
		out.Bounds().Dx(), out.Bounds().Dy(), rect.Degrees())
	r.view.OpenReview(images.ScaleToFit(out, previewMaxW, previewMaxH), info)
	return true
}

// Accept writes the pending crop, closes the preview and optionally
// advances to the next image.
func (r *ReviewPresenter) Accept() {
	if r == nil || !r.open {
		return
	}
	img, source := r.pending, r.source
	r.close()
	if r.writer == nil || r.batch == nil {
		return
	}
	cur := r.batch.Current()
	if cur.Path != source {
		if r.logger != nil {
			r.logger.Error("review source mismatch", "pending", source, "current", cur.Path)
		}
		return
	}
	path, err := r.writer.Write(r.ctx, img, source, len(cur.Outputs)+1)
	if err != nil {
		if r.logger != nil {
			r.logger.Error("write crop", "source", source, "error", err)
		}
		r.say("Saving failed: " + err.Error())
		return
	}
	r.batch.MarkCropped(path)
	if r.counter != nil {
		r.counter.OnAccepted()
	}
	r.say("Saved " + filepath.Base(path))
	if r.Next != nil && r.AdvanceOnAccept != nil && r.AdvanceOnAccept() {
		r.Next.Next()
	}
}

// Reject discards the pending crop.
func (r *ReviewPresenter) Reject() {
	if r == nil || !r.open {
		return
	}
	r.close()
	if r.batch != nil {
		r.batch.MarkRejected()
	}
	if r.counter != nil {
		r.counter.OnRejected()
	}
	r.say("Crop discarded")
}

func (r *ReviewPresenter) close() {
	r.open = false
	r.pending = nil
	r.source = ""
	r.view.CloseReview()
}

func (r *ReviewPresenter) say(msg string) {
	if r.notify != nil {
		r.notify.Notify(msg)
	}
}
