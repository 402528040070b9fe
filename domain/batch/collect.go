// Package batch holds the ordered list of images to crop and the cursor
// that walks through it.
package batch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrNoImages is returned when the arguments name no supported image.
var ErrNoImages = errors.New("batch: no images found")

var supported = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {},
	".tif": {}, ".tiff": {}, ".bmp": {}, ".webp": {},
}

// Supported reports whether path has a decodable image extension.
func Supported(path string) bool {
	_, ok := supported[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Collect expands args into an ordered list of image paths. Directories
// contribute their supported files (all levels when recursive), explicit files
// are kept regardless of extension. Duplicates are dropped and the result is
// sorted so that "img2" precedes "img10".
func Collect(args []string, recursive bool) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	add := func(p string) {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = filepath.Clean(p)
		}
		if _, dup := seen[abs]; dup {
			return
		}
		seen[abs] = struct{}{}
		out = append(out, abs)
	}
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		if err := walkDir(arg, recursive, add); err != nil {
			return nil, err
		}
	}
	if len(out) == 0 {
		return nil, ErrNoImages
	}
	collate.New(language.Und, collate.Numeric, collate.IgnoreCase).SortStrings(out)
	return out, nil
}

func walkDir(root string, recursive bool, add func(string)) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", p, err)
		}
		if d.IsDir() {
			if p != root && (!recursive || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if Supported(p) {
			add(p)
		}
		return nil
	})
}
