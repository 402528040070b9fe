package view

import (
	"log/slog"
	"strings"

	"github.com/soocke/blitzcrop/ui/presenter"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// SettingsDialog edits the output and review settings.
type SettingsDialog interface {
	OpenOrFocus()
}

type settingsDialog struct {
	p       *presenter.SettingsPresenter
	logger  *slog.Logger
	win     *ToplevelWidget
	message *LabelWidget
	widgets map[string]*TextWidget // keyed by form field
}

func NewSettingsDialog(p *presenter.SettingsPresenter, logger *slog.Logger) SettingsDialog {
	return &settingsDialog{p: p, logger: logger}
}

func (v *settingsDialog) OpenOrFocus() {
	if v.win != nil {
		Focus(v.win)
		return
	}
	win := App.Toplevel(Borderwidth(2))
	win.WmTitle("Settings")
	v.win = win
	v.widgets = make(map[string]*TextWidget)
	GridColumnConfigure(win.Window, 1, Weight(1))

	f := v.p.Form()
	row := 0
	makeRow := func(id, label, value string, width int) {
		lbl := win.Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := win.Text(Height(1), Width(width))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("template", "File name template", f.Template, 36)
	makeRow("quality", "JPEG quality (1-100)", f.Quality, 6)
	makeRow("interpolation", "Interpolation", f.Interpolation, 12)
	makeRow("forgetMetadata", "Forget metadata (true/false)", f.ForgetMetadata, 6)
	makeRow("overwrite", "Overwrite (true/false)", f.Overwrite, 6)
	makeRow("advanceOnAccept", "Next image after accept (true/false)", f.AdvanceOnAccept, 6)

	v.message = win.Label(Txt(""), Anchor("w"), Justify("left"))
	Grid(v.message, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"))
	row++
	buttons := win.Frame()
	Grid(buttons, Row(row), Column(0), Columnspan(2), Sticky("we"))
	apply := win.Button(Txt("Apply"), Command(v.apply))
	Grid(apply, In(buttons), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.3m"))
	closeBtn := win.Button(Txt("Close"), Command(v.destroy))
	Grid(closeBtn, In(buttons), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.3m"))
	Bind(win, "<Escape>", Command(v.destroy))
	WmProtocol(win.Window, "WM_DELETE_WINDOW", v.destroy)
}

func (v *settingsDialog) text(id string) string {
	w := v.widgets[id]
	if w == nil {
		return ""
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), ""))
}

func (v *settingsDialog) apply() {
	form := presenter.SettingsForm{
		Template:        v.text("template"),
		Quality:         v.text("quality"),
		Interpolation:   v.text("interpolation"),
		ForgetMetadata:  v.text("forgetMetadata"),
		Overwrite:       v.text("overwrite"),
		AdvanceOnAccept: v.text("advanceOnAccept"),
	}
	if err := v.p.Apply(form); err != nil {
		v.message.Configure(Txt(err.Error()), Foreground("red"))
		return
	}
	v.destroy()
}

func (v *settingsDialog) destroy() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
	}
	v.widgets = nil
	v.message = nil
}
