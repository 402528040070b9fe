package view

import (
	"image"

	"github.com/soocke/blitzcrop/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// CanvasHandlers receive pointer and size events from the crop canvas in
// canvas pixel coordinates.
type CanvasHandlers struct {
	Press   func(x, y int)
	Drag    func(x, y int)
	Release func(x, y int)
	Move    func(x, y int)
	Cancel  func()
	Resize  func(w, h string) // Tk reports sizes as text
}

// CropCanvas shows the rendered canvas image and forwards pointer input.
type CropCanvas interface {
	Show(img image.Image)
}

type cropCanvas struct {
	label *LabelWidget
	photo *Img // last Tk photo, deleted on replacement
}

// NewCropCanvas creates the canvas label at row and binds the handlers.
func NewCropCanvas(row, columns int, h CanvasHandlers) CropCanvas {
	placeholder := image.NewRGBA(image.Rect(0, 0, 1, 1))
	photo := NewPhoto(Data(images.EncodePNG(placeholder)))
	lbl := Label(Image(photo), Borderwidth(0), Highlightthickness(0), Background("black"), Anchor("nw"), Padx(0), Pady(0))
	Grid(lbl, Row(row), Column(0), Columnspan(columns), Sticky("nsew"))
	c := &cropCanvas{label: lbl, photo: photo}

	point := func(fn func(x, y int)) func(e *Event) {
		return func(e *Event) {
			if fn != nil {
				fn(e.X, e.Y)
			}
		}
	}
	Bind(lbl, "<ButtonPress-1>", Command(point(h.Press)))
	Bind(lbl, "<B1-Motion>", Command(point(h.Drag)))
	Bind(lbl, "<ButtonRelease-1>", Command(point(h.Release)))
	Bind(lbl, "<Motion>", Command(point(h.Move)))
	Bind(lbl, "<ButtonPress-3>", Command(func() {
		if h.Cancel != nil {
			h.Cancel()
		}
	}))
	Bind(lbl, "<Configure>", Command(func(e *Event) {
		if h.Resize != nil {
			h.Resize(e.Width, e.Height)
		}
	}))
	return c
}

func (c *cropCanvas) Show(img image.Image) {
	if c == nil || c.label == nil || img == nil {
		return
	}
	if c.photo != nil {
		c.photo.Delete()
	}
	c.photo = NewPhoto(Data(images.EncodePNG(img)))
	c.label.Configure(Image(c.photo))
}
