package view

import (
	"image"
	"log/slog"

	"github.com/soocke/blitzcrop/ui/images"
	"github.com/soocke/blitzcrop/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// ReviewDialog shows a cropped preview and asks to keep or discard it.
type ReviewDialog interface {
	OpenReview(preview image.Image, info string)
	CloseReview()
	SetHandlers(onAccept, onReject func())
}

type reviewDialog struct {
	logger   *slog.Logger
	win      *ToplevelWidget
	photo    *Img
	onAccept func()
	onReject func()
}

func NewReviewDialog(logger *slog.Logger) ReviewDialog {
	return &reviewDialog{logger: logger}
}

func (v *reviewDialog) SetHandlers(onAccept, onReject func()) {
	v.onAccept, v.onReject = onAccept, onReject
}

func (v *reviewDialog) OpenReview(preview image.Image, info string) {
	v.destroy()
	win := App.Toplevel(Borderwidth(2))
	win.WmTitle("Keep this crop?")
	v.win = win
	GridRowConfigure(win.Window, 0, Weight(1))
	GridColumnConfigure(win.Window, 0, Weight(1))
	GridColumnConfigure(win.Window, 1, Weight(1))

	v.photo = NewPhoto(Data(images.EncodePNG(preview)))
	img := win.Label(Image(v.photo), Borderwidth(1), Relief("sunken"), Background("black"))
	Grid(img, Row(0), Column(0), Columnspan(2), Sticky("nsew"), Padx("0.4m"), Pady("0.4m"))
	lbl := win.Label(Txt(info), Anchor("w"))
	Grid(lbl, Row(1), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"))

	accept := win.TButton(Txt("Accept [Enter]"), Style(theme.StyleAcceptButton), Takefocus(0), Command(v.accept))
	Grid(accept, Row(2), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.3m"))
	reject := win.TButton(Txt("Reject [Esc]"), Style(theme.StyleRejectButton), Takefocus(0), Command(v.reject))
	Grid(reject, Row(2), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.3m"))

	// The buttons never take focus, so their class bindings cannot act on
	// space before the dialog does.
	Bind(win, "<Return>", Command(v.accept))
	Bind(win, "<KP_Enter>", Command(v.accept))
	Bind(win, "<space>", Command(v.accept))
	Bind(win, "<Escape>", Command(v.reject))
	WmProtocol(win.Window, "WM_DELETE_WINDOW", v.reject)
	Focus(win)
}

// CloseReview is called by the presenter after a decision.
func (v *reviewDialog) CloseReview() { v.destroy() }

func (v *reviewDialog) accept() {
	if v.onAccept != nil {
		v.onAccept()
	}
}

func (v *reviewDialog) reject() {
	if v.onReject != nil {
		v.onReject()
	}
}

func (v *reviewDialog) destroy() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
	}
	if v.photo != nil {
		v.photo.Delete()
		v.photo = nil
	}
}
