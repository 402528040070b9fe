// Package app wires the blitzcrop window and runs the Tk event loop.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/blitzcrop/cli"
	"github.com/soocke/blitzcrop/config"
	"github.com/soocke/blitzcrop/debug"
	"github.com/soocke/blitzcrop/ui/presenter"
	"github.com/soocke/blitzcrop/ui/theme"
	"github.com/soocke/blitzcrop/ui/view"
)

const (
	// short enough for the overlay to follow the pointer smoothly
	tick          = 30 * time.Millisecond
	debugInterval = 5 * time.Second
)

type app struct {
	ctx     context.Context
	cancel  context.CancelFunc
	c       *AppContainer
	logger  *slog.Logger
	loop    *presenter.Loop
	afterID string
	closed  bool
}

// Run shows the window for inv and blocks until it is closed or ctx is done.
func Run(ctx context.Context, inv cli.Invocation, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c, err := BuildContainer(ctx, inv, logger)
	if err != nil {
		return err
	}
	a := &app{ctx: ctx, cancel: cancel, c: c, logger: logger}
	a.start()
	App.Wait()

	stats := c.Loader.Stats()
	logger.Info("session finished",
		"summary", c.Batch.Summary().String(),
		"cache_hits", stats.Hits,
		"cache_misses", stats.Misses,
	)
	return nil
}

func (a *app) start() {
	cfg := a.c.Config
	App.WmTitle(config.AppName)
	theme.SetDark(cfg.Dark)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", cfg.WindowWidth, cfg.WindowHeight))

	settings := view.NewSettingsDialog(a.c.Settings, a.logger)
	a.c.RootView.Build(view.Handlers{
		Prev:     func() { a.c.Navigation.Prev() },
		Next:     func() { a.c.Navigation.Next() },
		Settings: settings.OpenOrFocus,
		ToggleTheme: func() {
			dark := theme.ToggleDark()
			a.logger.Debug("theme toggled", "dark", dark)
		},
		Exit: a.exitHandler,
		Key:  func(keysym string) { a.c.Router.Key(keysym) },
		Canvas: view.CanvasHandlers{
			Press:   a.c.Crop.Press,
			Drag:    a.c.Crop.Drag,
			Release: a.c.Crop.Release,
			Move:    a.c.Crop.Move,
			Cancel:  func() { a.c.Router.Cancel() },
			Resize:  a.c.Crop.ResizeText,
		},
	})

	if cfg.Debug {
		debug.StartRuntimeLogger(a.ctx, debugInterval, a.logger, func() debug.CacheStats {
			s := a.c.Loader.Stats()
			return debug.CacheStats{Hits: s.Hits, Misses: s.Misses, Entries: s.Entries}
		})
	}

	a.logger.Info("batch loaded", "images", a.c.Batch.Len())
	a.c.Navigation.ShowCurrent()

	a.loop = presenter.NewLoop(a.c.Images, a.c.Crop, a.c.Hint, a.c.SessionPresenter, a.scheduleUpdate)
	a.scheduleUpdate()
}

func (a *app) update() {
	if a.ctx.Err() != nil {
		a.logger.Info("interrupted")
		a.exitHandler()
		return
	}
	a.loop.Tick()
}

func (a *app) exitHandler() {
	if a.closed {
		return
	}
	a.closed = true
	a.cancel()
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.update() })
}
