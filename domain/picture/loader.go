// Package picture decodes source images and keeps recently used ones in
// memory so that stepping back and forth through a batch stays fast.
package picture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/disintegration/imaging"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	// decoders beyond the ones imaging registers
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned for files no registered decoder accepts.
var ErrUnsupportedFormat = errors.New("picture: unsupported format")

const (
	DefaultCacheSize  = 8
	DefaultPrefetches = 2
)

// Picture is a decoded source image with EXIF orientation applied.
type Picture struct {
	Path   string
	Image  image.Image
	Format string // lower case extension without the dot
	Bytes  int64  // size of the file on disk
}

func (p *Picture) Width() int  { return p.Image.Bounds().Dx() }
func (p *Picture) Height() int { return p.Image.Bounds().Dy() }
func (p *Picture) Name() string {
	return filepath.Base(p.Path)
}

// Stats is a snapshot of the loader cache counters.
type Stats struct {
	Hits, Misses int64
	Entries      int
}

// Loader decodes pictures. Safe for concurrent use.
type Loader struct {
	logger *slog.Logger
	cache  *lru.Cache[string, *Picture]
	group  singleflight.Group
	limit  int
	hits   atomic.Int64
	misses atomic.Int64
}

// NewLoader returns a loader caching up to size pictures and decoding at most
// limit pictures in parallel during Prefetch.
func NewLoader(logger *slog.Logger, size, limit int) (*Loader, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if limit <= 0 {
		limit = DefaultPrefetches
	}
	c, err := lru.New[string, *Picture](size)
	if err != nil {
		return nil, fmt.Errorf("picture cache: %w", err)
	}
	return &Loader{logger: logger, cache: c, limit: limit}, nil
}

// Load returns the decoded picture at path, from cache when possible.
// Concurrent loads of the same path share one decode.
func (l *Loader) Load(ctx context.Context, path string) (*Picture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p, ok := l.cache.Get(path); ok {
		l.hits.Add(1)
		return p, nil
	}
	l.misses.Add(1)
	v, err, _ := l.group.Do(path, func() (any, error) {
		p, err := decodeFile(path)
		if err != nil {
			return nil, err
		}
		l.cache.Add(path, p)
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Picture), nil
}

// Prefetch decodes paths that are not cached yet. Failures are logged and do
// not stop the other decodes; only context cancellation is returned.
func (l *Loader) Prefetch(ctx context.Context, paths []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.limit)
	for _, p := range paths {
		if l.cache.Contains(p) {
			continue
		}
		g.Go(func() error {
			if _, err := l.Load(ctx, p); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if l.logger != nil {
					l.logger.Warn("prefetch failed", "path", p, "error", err)
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// Forget drops path from the cache, e.g. after the file was replaced.
func (l *Loader) Forget(path string) { l.cache.Remove(path) }

func (l *Loader) Stats() Stats {
	return Stats{Hits: l.hits.Load(), Misses: l.misses.Load(), Entries: l.cache.Len()}
}

func decodeFile(path string) (*Picture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
		}
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &Picture{
		Path:   path,
		Image:  img,
		Format: strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
		Bytes:  int64(len(data)),
	}, nil
}
