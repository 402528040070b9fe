package model

import (
	"github.com/soocke/blitzcrop/domain/geometry"
	"github.com/soocke/blitzcrop/domain/picture"
)

// CanvasModel holds what the crop canvas shows: its size, the current
// picture and the viewport mapping between the two. The zero value is an
// empty canvas and usable. No synchronization needed: updates occur on the
// UI thread tick.
type CanvasModel struct {
	width, height int
	pic           *picture.Picture
	loading       string // path being decoded, empty when idle
	vp            geometry.Viewport
}

func NewCanvasModel(width, height int) *CanvasModel {
	m := &CanvasModel{}
	m.SetSize(width, height)
	return m
}

// SetSize stores the canvas size and reports whether it changed.
// Non-positive sizes are ignored.
func (m *CanvasModel) SetSize(w, h int) bool {
	if m == nil || w <= 0 || h <= 0 || (w == m.width && h == m.height) {
		return false
	}
	m.width, m.height = w, h
	m.refit()
	return true
}

func (m *CanvasModel) Size() (int, int) {
	if m == nil {
		return 0, 0
	}
	return m.width, m.height
}

// SetPicture shows p and clears the loading state. nil clears the canvas.
func (m *CanvasModel) SetPicture(p *picture.Picture) {
	if m == nil {
		return
	}
	m.pic = p
	m.loading = ""
	m.refit()
}

func (m *CanvasModel) Picture() *picture.Picture {
	if m == nil {
		return nil
	}
	return m.pic
}

// SetLoading marks path as being decoded.
func (m *CanvasModel) SetLoading(path string) {
	if m != nil {
		m.loading = path
	}
}

func (m *CanvasModel) Loading() string {
	if m == nil {
		return ""
	}
	return m.loading
}

// Viewport maps canvas positions to picture pixels.
func (m *CanvasModel) Viewport() geometry.Viewport {
	if m == nil {
		return geometry.Viewport{Scale: 1}
	}
	return m.vp
}

func (m *CanvasModel) refit() {
	if m.pic == nil || m.pic.Image == nil {
		m.vp = geometry.Viewport{Scale: 1}
		return
	}
	m.vp = geometry.NewViewport(m.width, m.height, m.pic.Width(), m.pic.Height())
}

// Working reports whether a picture is shown, i.e. the user can crop.
func (m *CanvasModel) Working() bool { return m != nil && m.pic != nil }
