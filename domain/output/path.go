package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// maxSuffix bounds the search for a free "_N" name.
const maxSuffix = 10000

// Resolve turns an expanded template into the final output path and its
// encoding format. Relative names are placed next to source. Names without
// an encodable extension are written as PNG. Unless overwrite is set an existing
// file is never reused; "_1", "_2", ... is appended to the stem instead.
func Resolve(name, source string, overwrite bool) (string, imaging.Format, error) {
	if !filepath.IsAbs(name) {
		name = filepath.Join(filepath.Dir(source), name)
	}
	name = filepath.Clean(name)
	format, err := imaging.FormatFromFilename(name)
	if err != nil {
		if ext := filepath.Ext(name); strings.EqualFold(ext, ".webp") {
			name = strings.TrimSuffix(name, ext)
		}
		name += ".png"
		format = imaging.PNG
	}
	if overwrite {
		return name, format, nil
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	candidate := name
	for i := 1; i <= maxSuffix; i++ {
		_, err := os.Stat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, format, nil
		}
		if err != nil {
			return "", format, fmt.Errorf("stat %s: %w", candidate, err)
		}
		candidate = fmt.Sprintf("%s_%d%s", stem, i, ext)
	}
	return "", format, fmt.Errorf("no free file name for %s", name)
}
