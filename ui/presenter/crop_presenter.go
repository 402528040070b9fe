package presenter

import (
	"image"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/blitzcrop/domain/geometry"
	"github.com/soocke/blitzcrop/domain/gesture"
	"github.com/soocke/blitzcrop/domain/picture"
	"github.com/soocke/blitzcrop/ui/images"
	"github.com/soocke/blitzcrop/ui/model"
)

// SelectionFSM exposes the gesture operations used by the crop presenter.
type SelectionFSM interface {
	gesture.SelectionPointer
	Overlay() gesture.Overlay
}

// CanvasView displays the rendered crop canvas.
type CanvasView interface{ ShowCanvas(img image.Image) }

// ReviewGate reports whether a preview is waiting for accept or reject.
type ReviewGate interface{ IsOpen() bool }

// CropPresenter routes pointer events on the canvas to the selection
// gesture and repaints the canvas on the next tick when something changed.
type CropPresenter struct {
	fsm     SelectionFSM
	canvas  *model.CanvasModel
	view    CanvasView
	palette images.Palette
	gate    ReviewGate
	logger  *slog.Logger

	// OnCommit receives the selection in picture pixel coordinates.
	OnCommit func(pic *picture.Picture, rect geometry.RotatedRect)

	scene    *images.Scene
	scenePic *picture.Picture
	dirty    bool
}

func NewCropPresenter(fsm SelectionFSM, canvas *model.CanvasModel, view CanvasView, palette images.Palette, gate ReviewGate, logger *slog.Logger) *CropPresenter {
	return &CropPresenter{fsm: fsm, canvas: canvas, view: view, palette: palette, gate: gate, logger: logger, dirty: true}
}

// accepting reports whether pointer input should reach the gesture.
func (c *CropPresenter) accepting() bool {
	if c == nil || c.fsm == nil || c.canvas == nil {
		return false
	}
	if c.gate != nil && c.gate.IsOpen() {
		return false
	}
	return c.canvas.Picture() != nil
}

func pointAt(x, y int) geometry.Point { return geometry.FromImagePoint(image.Pt(x, y)) }

// Press handles a primary button press at canvas position (x, y).
func (c *CropPresenter) Press(x, y int) {
	if !c.accepting() {
		return
	}
	rect, ok := c.fsm.Press(pointAt(x, y))
	c.dirty = true
	if !ok {
		return
	}
	pic := c.canvas.Picture()
	inImage := rect.Map(c.canvas.Viewport().ToImage)
	if c.logger != nil {
		c.logger.Info("selection", "path", pic.Path, "degrees", inImage.Degrees(),
			"width", inImage.Width(), "height", inImage.Height())
	}
	if c.OnCommit != nil {
		c.OnCommit(pic, inImage)
	}
}

func (c *CropPresenter) Drag(x, y int) {
	if !c.accepting() {
		return
	}
	c.fsm.Drag(pointAt(x, y))
	c.dirty = true
}

func (c *CropPresenter) Release(x, y int) {
	if !c.accepting() {
		return
	}
	c.fsm.Release(pointAt(x, y))
	c.dirty = true
}

// Move handles pointer motion without buttons.
func (c *CropPresenter) Move(x, y int) {
	if !c.accepting() {
		return
	}
	c.fsm.Move(pointAt(x, y))
	c.dirty = true
}

// Abort cancels a running selection and reports whether there was one.
func (c *CropPresenter) Abort() bool {
	if c == nil || c.fsm == nil {
		return false
	}
	if !c.fsm.Abort() {
		return false
	}
	c.dirty = true
	return true
}

// Resize adapts to a new canvas size. A running selection is aborted since
// its canvas coordinates no longer match the picture.
func (c *CropPresenter) Resize(w, h int) {
	if c == nil || c.canvas == nil {
		return
	}
	if !c.canvas.SetSize(w, h) {
		return
	}
	if c.Abort() && c.logger != nil {
		c.logger.Debug("selection aborted by resize", "width", w, "height", h)
	}
	c.scene = nil
	c.dirty = true
}

// ResizeText is Resize for sizes delivered as text, as Tk does in
// <Configure> events. Values that are not non-negative integers are ignored.
func (c *CropPresenter) ResizeText(w, h string) {
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil || width < 0 {
		return
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil || height < 0 {
		return
	}
	c.Resize(width, height)
}

// PictureChanged resets the gesture and schedules a repaint for p.
func (c *CropPresenter) PictureChanged(p *picture.Picture) {
	if c == nil {
		return
	}
	c.Abort()
	c.dirty = true
}

// Tick repaints the canvas if needed. Call from the UI tick.
func (c *CropPresenter) Tick() {
	if c == nil || !c.dirty || c.view == nil || c.canvas == nil {
		return
	}
	c.dirty = false
	pic := c.canvas.Picture()
	w, h := c.canvas.Size()
	if c.scene == nil || c.scenePic != pic {
		var img image.Image
		if pic != nil {
			img = pic.Image
		}
		c.scene = images.NewScene(img, w, h, c.palette)
		c.scenePic = pic
	}
	var o gesture.Overlay
	if c.fsm != nil {
		o = c.fsm.Overlay()
	}
	c.view.ShowCanvas(c.scene.Render(o))
}
