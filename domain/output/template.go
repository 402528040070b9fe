// Package output names, encodes and writes cropped images.
package output

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ncruces/go-strftime"
)

// ErrTemplate is returned for malformed file name templates.
var ErrTemplate = errors.New("output: invalid file name template")

const (
	DefaultTemplate   = "{image.stem}_{now}{image.suffix}"
	DefaultTimeFormat = "%Y%m%d_%H%M%S"
)

var placeholderRe = regexp.MustCompile(`\{([a-z.]+)(?::([^{}]*))?\}`)

type field int

const (
	fieldLiteral field = iota
	fieldStem
	fieldSuffix
	fieldName
	fieldParent
	fieldNow
	fieldIndex
	fieldUUID
)

var fieldNames = map[string]field{
	"image.stem":   fieldStem,
	"image.suffix": fieldSuffix,
	"image.name":   fieldName,
	"image.parent": fieldParent,
	"now":          fieldNow,
	"index":        fieldIndex,
	"uuid":         fieldUUID,
}

type segment struct {
	field field
	text  string // literal text or strftime format
	width int    // zero padding of {index:N}
}

// Template is a parsed file name template.
type Template struct {
	raw      string
	segments []segment
}

// Vars are the values a template is expanded with.
type Vars struct {
	Source string    // path of the source image
	Now    time.Time // time of the crop
	Index  int       // 1-based number of the crop for this source
}

// ParseTemplate validates s. Unknown placeholders and stray braces fail.
func ParseTemplate(s string) (*Template, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty", ErrTemplate)
	}
	t := &Template{raw: s}
	last := 0
	for _, m := range placeholderRe.FindAllStringSubmatchIndex(s, -1) {
		if err := t.literal(s[last:m[0]]); err != nil {
			return nil, err
		}
		name := s[m[2]:m[3]]
		f, ok := fieldNames[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown placeholder {%s}", ErrTemplate, name)
		}
		seg := segment{field: f}
		if m[4] >= 0 {
			arg := s[m[4]:m[5]]
			switch f {
			case fieldNow:
				seg.text = arg
			case fieldIndex:
				w, err := strconv.Atoi(arg)
				if err != nil || w < 0 || w > 12 {
					return nil, fmt.Errorf("%w: bad width in {index:%s}", ErrTemplate, arg)
				}
				seg.width = w
			default:
				return nil, fmt.Errorf("%w: {%s} takes no argument", ErrTemplate, name)
			}
		} else if f == fieldNow {
			seg.text = DefaultTimeFormat
		}
		t.segments = append(t.segments, seg)
		last = m[1]
	}
	if err := t.literal(s[last:]); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Template) literal(s string) error {
	if s == "" {
		return nil
	}
	if strings.ContainsAny(s, "{}") {
		return fmt.Errorf("%w: unbalanced brace in %q", ErrTemplate, s)
	}
	t.segments = append(t.segments, segment{field: fieldLiteral, text: s})
	return nil
}

func (t *Template) String() string { return t.raw }

// Expand renders the template for one crop.
func (t *Template) Expand(v Vars) string {
	base := filepath.Base(v.Source)
	suffix := filepath.Ext(base)
	var b strings.Builder
	for _, s := range t.segments {
		switch s.field {
		case fieldLiteral:
			b.WriteString(s.text)
		case fieldStem:
			b.WriteString(strings.TrimSuffix(base, suffix))
		case fieldSuffix:
			b.WriteString(suffix)
		case fieldName:
			b.WriteString(base)
		case fieldParent:
			b.WriteString(filepath.Base(filepath.Dir(v.Source)))
		case fieldNow:
			b.WriteString(strftime.Format(s.text, v.Now))
		case fieldIndex:
			fmt.Fprintf(&b, "%0*d", s.width, v.Index)
		case fieldUUID:
			b.WriteString(uuid.NewString())
		}
	}
	return b.String()
}
