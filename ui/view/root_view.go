package view

import (
	"image"
	"log/slog"
	"time"

	"github.com/soocke/blitzcrop/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers bundles the callbacks of the main window.
type Handlers struct {
	Prev, Next  func()
	Settings    func()
	ToggleTheme func()
	Exit        func()
	Key         func(keysym string)
	Canvas      CanvasHandlers
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	logger *slog.Logger

	// Subviews
	Session SessionStats
	Canvas  CropCanvas
	Review  ReviewDialog

	// Widgets
	HintLabel   *TLabelWidget
	StatusLabel *TLabelWidget
}

// UI abstracts the subset of view operations needed by presenters, enabling decoupling
// from the concrete RootView implementation.
type UI interface {
	SetHint(text string)
	SetStatus(text string)
	ShowCanvas(img image.Image)
	SetSession(image, total time.Duration, saved, rejected int)
	OpenReview(preview image.Image, info string)
	CloseReview()
}

func NewRootView(logger *slog.Logger) *RootView {
	return &RootView{logger: logger, Review: NewReviewDialog(logger)}
}

const columns = 5

// Build constructs the layout. Handlers are invoked on user actions.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	// Row 0: hint line
	rv.HintLabel = TLabel(Txt(""), Style(theme.StyleHintLabel), Anchor("w"))
	Grid(rv.HintLabel, Row(0), Column(0), Columnspan(columns), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	// Row 1: buttons
	btnFrame := Frame()
	Grid(btnFrame, Row(1), Column(0), Columnspan(columns), Sticky("we"), Padx("0.3m"))
	for i, b := range []struct {
		text string
		fn   func()
	}{
		{"◀ Prev", h.Prev},
		{"Next ▶", h.Next},
		{"Settings", h.Settings},
		{"Theme", h.ToggleTheme},
		{"Exit", h.Exit},
	} {
		fn := b.fn
		btn := Button(Txt(b.text), Command(func() {
			if fn != nil {
				fn()
			}
		}))
		Grid(btn, In(btnFrame), Row(0), Column(i), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	}

	// Row 2: canvas, takes all extra space
	GridRowConfigure(App, 2, Weight(1))
	for c := 0; c < columns; c++ {
		GridColumnConfigure(App, c, Weight(1))
	}
	rv.Canvas = NewCropCanvas(2, columns, h.Canvas)

	// Row 3: status, row 4: session stats
	rv.StatusLabel = TLabel(Txt(""), Style(theme.StyleStatusLabel), Anchor("w"))
	Grid(rv.StatusLabel, Row(3), Column(0), Columnspan(columns), Sticky("we"), Padx("0.4m"))
	statsFrame := Frame()
	Grid(statsFrame, Row(4), Column(0), Columnspan(columns), Sticky("we"), Padx("0.3m"), Pady("0.2m"))
	rv.Session = NewSessionStats(statsFrame, 0, 0)

	if h.Key != nil {
		Bind(App, "<KeyPress>", Command(func(e *Event) { h.Key(e.Keysym) }))
	}
}

// SetHint updates the hint line.
func (rv *RootView) SetHint(text string) {
	if rv != nil && rv.HintLabel != nil {
		rv.HintLabel.Configure(Txt(text))
	}
}

// SetStatus updates the status line.
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.StatusLabel != nil {
		rv.StatusLabel.Configure(Txt(text))
	}
}

// ShowCanvas proxies to the crop canvas.
func (rv *RootView) ShowCanvas(img image.Image) {
	if rv != nil && rv.Canvas != nil {
		rv.Canvas.Show(img)
	}
}

// SetSession updates the session labels.
func (rv *RootView) SetSession(image, total time.Duration, saved, rejected int) {
	if rv == nil || rv.Session == nil {
		return
	}
	rv.Session.SetImage(image)
	rv.Session.SetTotal(total)
	rv.Session.SetCounts(saved, rejected)
}

func (rv *RootView) OpenReview(preview image.Image, info string) {
	if rv != nil && rv.Review != nil {
		rv.Review.OpenReview(preview, info)
	}
}

func (rv *RootView) CloseReview() {
	if rv != nil && rv.Review != nil {
		rv.Review.CloseReview()
	}
}
