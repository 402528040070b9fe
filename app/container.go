package app

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/soocke/blitzcrop/cli"
	"github.com/soocke/blitzcrop/config"
	"github.com/soocke/blitzcrop/domain/batch"
	"github.com/soocke/blitzcrop/domain/crop"
	"github.com/soocke/blitzcrop/domain/geometry"
	"github.com/soocke/blitzcrop/domain/gesture"
	"github.com/soocke/blitzcrop/domain/output"
	"github.com/soocke/blitzcrop/domain/picture"
	"github.com/soocke/blitzcrop/ui/images"
	"github.com/soocke/blitzcrop/ui/model"
	"github.com/soocke/blitzcrop/ui/presenter"
	"github.com/soocke/blitzcrop/ui/theme"
	"github.com/soocke/blitzcrop/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger
	Batch      *batch.Batch
	Loader     *picture.Loader
	Writer     *output.Writer
	Canvas     *model.CanvasModel
	Session    *model.SessionModel
	FSM        *gesture.SelectionFSM
	RootView   *view.RootView
	UI         view.UI

	// Presenters
	Images           *presenter.ImagePresenter
	Crop             *presenter.CropPresenter
	Review           *presenter.ReviewPresenter
	Navigation       *presenter.NavigationPresenter
	Hint             *presenter.HintPresenter
	SessionPresenter *presenter.SessionPresenter
	Settings         *presenter.SettingsPresenter
	Router           *presenter.InputRouter
}

// BuildContainer constructs all components. No widgets are created here;
// RootView.Build runs once the Tk window is configured.
func BuildContainer(ctx context.Context, inv cli.Invocation, logger *slog.Logger) (*AppContainer, error) {
	cfg := inv.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	c := &AppContainer{Config: cfg, ConfigPath: inv.ConfigPath, Logger: logger}

	b, err := batch.New(inv.Paths)
	if err != nil {
		return nil, err
	}
	c.Batch = b
	if c.Loader, err = picture.NewLoader(logger, cfg.CacheSize, picture.DefaultPrefetches); err != nil {
		return nil, fmt.Errorf("picture cache: %w", err)
	}
	tmpl, err := output.ParseTemplate(cfg.FileNameTemplate)
	if err != nil {
		return nil, err
	}
	c.Writer = output.NewWriter(logger, tmpl, writerOptions(cfg))
	c.Canvas = model.NewCanvasModel(cfg.WindowWidth, cfg.WindowHeight)
	c.Session = model.NewSessionModel()
	c.FSM = gesture.NewSelectionFSM(logger, cfg.MinSelectionPx)

	// View
	c.RootView = view.NewRootView(logger)
	c.UI = c.RootView

	c.Hint = presenter.NewHintPresenter(c.UI)
	c.FSM.AddListener(c.Hint.OnState)

	c.Images = presenter.NewImagePresenter(ctx, c.Loader, b, c.Canvas, c.UI, logger)
	c.Images.PrefetchRadius = cfg.PrefetchRadius

	cropFn := func(src image.Image, r geometry.RotatedRect) (*image.NRGBA, error) {
		return crop.Crop(src, r, crop.Options{
			Interpolator: crop.Interpolator(cfg.Interpolation),
			Background:   color.Black,
		})
	}
	c.Review = presenter.NewReviewPresenter(ctx, cropFn, c.Writer, b, c.UI, c.Session, c.Hint, logger)
	c.Review.AdvanceOnAccept = func() bool { return cfg.AdvanceOnAccept }
	c.RootView.Review.SetHandlers(c.Review.Accept, c.Review.Reject)

	c.Crop = presenter.NewCropPresenter(c.FSM, c.Canvas, c.UI, images.Palette(theme.OverlayColors()), c.Review, logger)
	c.Crop.OnCommit = func(pic *picture.Picture, r geometry.RotatedRect) { c.Review.Open(pic, r) }
	c.Images.OnShown = c.Crop.PictureChanged

	c.Navigation = presenter.NewNavigationPresenter(b, c.Images, c.Crop, c.Review, c.Session, c.Hint, logger)
	c.Review.Next = c.Navigation

	c.SessionPresenter = presenter.NewSessionPresenter(c.Session, c.Canvas, c.UI)

	c.Settings = presenter.NewSettingsPresenter(cfg, inv.ConfigPath, logger)
	c.Settings.OnApplied = func(cfg *config.Config, tmpl *output.Template) {
		c.Writer.SetTemplate(tmpl)
		c.Writer.SetOptions(writerOptions(cfg))
	}

	c.Router = presenter.NewInputRouter(c.Navigation, c.Review, c.Crop)
	return c, nil
}

func writerOptions(cfg *config.Config) output.Options {
	return output.Options{
		Quality:        cfg.Quality,
		ForgetMetadata: cfg.ForgetMetadata,
		Overwrite:      cfg.Overwrite,
	}
}
