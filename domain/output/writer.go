package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
)

// Options control encoding and naming of written crops.
type Options struct {
	Quality        int  // JPEG quality 1-100
	ForgetMetadata bool // skip copying EXIF from the source
	Overwrite      bool // replace existing files instead of adding "_N"
}

// Writer stores cropped images next to (or relative to) their sources.
type Writer struct {
	logger *slog.Logger
	tmpl   *Template
	opts   Options
	now    func() time.Time
}

func NewWriter(logger *slog.Logger, tmpl *Template, opts Options) *Writer {
	if opts.Quality < 1 || opts.Quality > 100 {
		opts.Quality = 95
	}
	return &Writer{logger: logger, tmpl: tmpl, opts: opts, now: time.Now}
}

// SetTemplate replaces the naming template, e.g. after the settings changed.
func (w *Writer) SetTemplate(t *Template) { w.tmpl = t }

// SetOptions replaces the encoding options.
func (w *Writer) SetOptions(o Options) {
	if o.Quality < 1 || o.Quality > 100 {
		o.Quality = w.opts.Quality
	}
	w.opts = o
}

// Write encodes img as the index-th crop of source and returns the path it
// was written to.
func (w *Writer) Write(ctx context.Context, img image.Image, source string, index int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := w.tmpl.Expand(Vars{Source: source, Now: w.now(), Index: index})
	path, format, err := Resolve(name, source, w.opts.Overwrite)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(w.opts.Quality)); err != nil {
		return "", fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	data := buf.Bytes()
	if format == imaging.JPEG && !w.opts.ForgetMetadata {
		data = w.withExif(data, source, img.Bounds().Size())
	}
	if err := writeAtomic(path, data); err != nil {
		return "", err
	}
	if w.logger != nil {
		w.logger.Info("crop written", "path", path, "bytes", len(data),
			"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	}
	return path, nil
}

// withExif returns data with the source EXIF embedded, or data unchanged when
// that is not possible.
func (w *Writer) withExif(data []byte, source string, size image.Point) []byte {
	raw, err := SourceExif(source, size)
	if err != nil {
		if !errors.Is(err, ErrNoExif) && w.logger != nil {
			w.logger.Warn("exif not copied", "source", source, "error", err)
		}
		return data
	}
	out, err := EmbedExif(data, raw)
	if err != nil {
		if w.logger != nil {
			w.logger.Warn("exif not embedded", "source", source, "error", err)
		}
		return data
	}
	return out
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, ".blitzcrop-*")
	if err != nil {
		return fmt.Errorf("temp file: %w", err)
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("chmod %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}
