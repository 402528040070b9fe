package presenter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/soocke/blitzcrop/domain/picture"
	"github.com/soocke/blitzcrop/ui/model"
)

// PictureLoader decodes pictures, possibly from a cache.
type PictureLoader interface {
	Load(ctx context.Context, path string) (*picture.Picture, error)
	Prefetch(ctx context.Context, paths []string) error
	Forget(path string)
}

// BatchPosition reports where in the batch the current picture is.
type BatchPosition interface {
	Index() int
	Len() int
	Neighbors(radius int) []string
}

// StatusView shows the status line below the canvas.
type StatusView interface{ SetStatus(text string) }

type loadTask struct {
	sequence uint64
	path     string
}

type loadResult struct {
	sequence uint64
	path     string
	pic      *picture.Picture
	err      error
	duration time.Duration
}

// ImagePresenter decodes the current picture on a worker goroutine and
// applies the result on the UI tick. Results of superseded requests are
// dropped.
type ImagePresenter struct {
	loader   PictureLoader
	position BatchPosition
	canvas   *model.CanvasModel
	view     StatusView
	logger   *slog.Logger
	ctx      context.Context

	// PrefetchRadius is the number of neighbours decoded ahead on each side.
	PrefetchRadius int
	// OnShown is called on the UI thread whenever the canvas picture changes.
	OnShown func(p *picture.Picture)

	workerOnce sync.Once
	workCh     chan loadTask
	resultCh   chan loadResult
	sequence   uint64
}

// NewImagePresenter constructs an image presenter. Work stops when ctx is done.
func NewImagePresenter(ctx context.Context, loader PictureLoader, position BatchPosition, canvas *model.CanvasModel, view StatusView, logger *slog.Logger) *ImagePresenter {
	return &ImagePresenter{
		loader:         loader,
		position:       position,
		canvas:         canvas,
		view:           view,
		logger:         logger,
		ctx:            ctx,
		PrefetchRadius: 1,
		workCh:         make(chan loadTask, 1),
		resultCh:       make(chan loadResult, 1),
	}
}

// Show requests path to be displayed. The canvas is cleared until the
// picture is decoded.
func (p *ImagePresenter) Show(path string) {
	if p == nil || p.loader == nil || p.canvas == nil {
		return
	}
	p.ensureWorker()
	p.sequence++
	p.canvas.SetPicture(nil)
	p.canvas.SetLoading(path)
	if p.OnShown != nil {
		p.OnShown(nil)
	}
	if p.view != nil {
		p.view.SetStatus("Loading " + filepath.Base(path) + " ...")
	}
	p.dispatch(loadTask{sequence: p.sequence, path: path})
}

// Reload drops the cached copy of path and shows it again.
func (p *ImagePresenter) Reload(path string) {
	if p == nil || p.loader == nil {
		return
	}
	p.loader.Forget(path)
	p.Show(path)
}

// ProcessResults applies finished decodes. Call from the UI tick.
func (p *ImagePresenter) ProcessResults() {
	if p == nil || p.resultCh == nil {
		return
	}
	for {
		select {
		case res := <-p.resultCh:
			p.handleResult(res)
		default:
			return
		}
	}
}

func (p *ImagePresenter) ensureWorker() {
	p.workerOnce.Do(func() {
		go p.runWorker()
	})
}

func (p *ImagePresenter) runWorker() {
	for {
		select {
		case <-p.ctx.Done():
			return
		case task := <-p.workCh:
			start := time.Now()
			pic, err := p.loader.Load(p.ctx, task.path)
			res := loadResult{sequence: task.sequence, path: task.path, pic: pic, err: err, duration: time.Since(start)}
			select {
			case p.resultCh <- res:
			default:
				select {
				case <-p.resultCh:
				default:
				}
				select {
				case p.resultCh <- res:
				default:
				}
			}
		}
	}
}

func (p *ImagePresenter) dispatch(task loadTask) {
	select {
	case p.workCh <- task:
	default:
		select {
		case <-p.workCh:
		default:
		}
		select {
		case p.workCh <- task:
		default:
		}
	}
}

func (p *ImagePresenter) handleResult(res loadResult) {
	if res.sequence != p.sequence {
		if p.logger != nil {
			p.logger.Debug("stale picture dropped", "path", res.path)
		}
		return
	}
	if res.err != nil {
		if errors.Is(res.err, context.Canceled) {
			return
		}
		if p.logger != nil {
			p.logger.Error("picture load", "path", res.path, "error", res.err)
		}
		p.canvas.SetLoading("")
		if p.view != nil {
			p.view.SetStatus(fmt.Sprintf("Cannot open %s: %v", filepath.Base(res.path), res.err))
		}
		return
	}
	if p.logger != nil {
		p.logger.Debug("picture shown", "path", res.path, "decode", res.duration)
	}
	p.canvas.SetPicture(res.pic)
	if p.view != nil {
		p.view.SetStatus(p.statusLine(res.pic))
	}
	if p.OnShown != nil {
		p.OnShown(res.pic)
	}
	p.prefetch()
}

func (p *ImagePresenter) prefetch() {
	if p.position == nil || p.PrefetchRadius <= 0 {
		return
	}
	paths := p.position.Neighbors(p.PrefetchRadius)
	if len(paths) == 0 {
		return
	}
	go func() {
		if err := p.loader.Prefetch(p.ctx, paths); err != nil && !errors.Is(err, context.Canceled) && p.logger != nil {
			p.logger.Warn("prefetch", "error", err)
		}
	}()
}

func (p *ImagePresenter) statusLine(pic *picture.Picture) string {
	index, total := 0, 0
	if p.position != nil {
		index, total = p.position.Index(), p.position.Len()
	}
	return StatusLine(index, total, pic)
}

// StatusLine formats the position, name, dimensions and file size of pic.
func StatusLine(index, total int, pic *picture.Picture) string {
	if pic == nil {
		return fmt.Sprintf("%d/%d", index+1, total)
	}
	return fmt.Sprintf("%d/%d  %s  %d×%d  %s",
		index+1, total, pic.Name(), pic.Width(), pic.Height(), humanize.Bytes(uint64(pic.Bytes)))
}
