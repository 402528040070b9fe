// Package cli parses the command line into a configuration and hands it to
// the GUI runner.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/soocke/blitzcrop/config"
	"github.com/soocke/blitzcrop/domain/batch"
	"github.com/soocke/blitzcrop/domain/output"
)

// Version is set with -ldflags "-X github.com/soocke/blitzcrop/cli.Version=...".
var Version = ""

// Invocation is everything the runner needs to start a session.
type Invocation struct {
	Config     *config.Config
	ConfigPath string
	Paths      []string
}

// Runner starts the application. It blocks until the window is closed.
type Runner func(ctx context.Context, inv Invocation, logger *slog.Logger) error

// LoggerFactory builds the process logger for a level.
type LoggerFactory func(level slog.Leveler) *slog.Logger

type flags struct {
	configPath     string
	template       string
	quality        int
	forgetMetadata bool
	recursive      bool
	overwrite      bool
	dark           bool
	debug          bool
}

// NewRootCmd returns the blitzcrop command.
func NewRootCmd(newLogger LoggerFactory, run Runner) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "blitzcrop [flags] IMAGE|DIR...",
		Short: "Crop batches of images with a drag-then-click gesture",
		Long: `blitzcrop shows each image in turn. Drag a diagonal, move the pointer to
choose the rotation and width of the rectangle and click to crop. The crop
is previewed and written on accept. Left/Right (or A/D) switch images.`,
		Version:       buildVersion(),
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, &f)
			if err != nil {
				return err
			}
			level := slog.LevelInfo
			if cfg.Debug {
				level = slog.LevelDebug
			}
			logger := newLogger(level)
			paths, err := batch.Collect(args, cfg.Recursive)
			if err != nil {
				return err
			}
			logger.Info("starting", "version", cmd.Version, "images", len(paths), "config", f.configPath)
			return run(cmd.Context(), Invocation{Config: cfg, ConfigPath: f.configPath, Paths: paths}, logger)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.configPath, "config", "c", config.DefaultPath(), "config file")
	fl.StringVarP(&f.template, "file-name-template", "f", "", "output file name template, e.g. {image.stem}_{index}{image.suffix}")
	fl.IntVarP(&f.quality, "quality", "q", 0, "JPEG quality (1-100)")
	fl.BoolVarP(&f.forgetMetadata, "forget-metadata", "m", false, "do not copy EXIF metadata to the output")
	fl.BoolVarP(&f.recursive, "recursive", "r", false, "descend into sub directories")
	fl.BoolVar(&f.overwrite, "overwrite", false, "replace existing output files")
	fl.BoolVar(&f.dark, "dark", false, "use the dark theme")
	fl.BoolVar(&f.debug, "debug", false, "debug logging and runtime stats")
	return cmd
}

// resolveConfig loads the config file and applies the flags the user set.
func resolveConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	fl := cmd.Flags()
	if fl.Changed("file-name-template") {
		cfg.FileNameTemplate = f.template
	}
	if fl.Changed("quality") {
		if f.quality < 1 || f.quality > 100 {
			return nil, fmt.Errorf("quality must be between 1 and 100, got %d", f.quality)
		}
		cfg.Quality = f.quality
	}
	if fl.Changed("forget-metadata") {
		cfg.ForgetMetadata = f.forgetMetadata
	}
	if fl.Changed("recursive") {
		cfg.Recursive = f.recursive
	}
	if fl.Changed("overwrite") {
		cfg.Overwrite = f.overwrite
	}
	if fl.Changed("dark") {
		cfg.Dark = f.dark
	}
	if fl.Changed("debug") {
		cfg.Debug = f.debug
	}
	if _, err := output.ParseTemplate(cfg.FileNameTemplate); err != nil {
		return nil, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

func buildVersion() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

// Execute runs the command and returns the process exit code.
func Execute(ctx context.Context, newLogger LoggerFactory, run Runner) int {
	cmd := NewRootCmd(newLogger, run)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "blitzcrop:", err)
		return 1
	}
	return 0
}
