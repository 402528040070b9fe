package geometry

// RescaledSize computes the size of an image embedded into a canvas while
// keeping its aspect ratio. A wider image is fitted to the canvas width,
// a narrower one to the canvas height. Results are truncated.
func RescaledSize(canvasW, canvasH, imageW, imageH int) (int, int) {
	if canvasW <= 0 || canvasH <= 0 || imageW <= 0 || imageH <= 0 {
		return 0, 0
	}
	ar := float64(imageW) / float64(imageH)
	var iw, ih float64
	if ar >= float64(canvasW)/float64(canvasH) {
		iw, ih = float64(canvasW), float64(canvasW)/ar
	} else {
		iw, ih = float64(canvasH)*ar, float64(canvasH)
	}
	return int(iw), int(ih)
}

// Viewport places a rescaled image centred inside a canvas.
// The zero value maps every point onto itself.
type Viewport struct {
	Offset Point   // canvas position of the image origin
	Scale  float64 // canvas pixels per image pixel
	Width  int     // displayed image width in canvas pixels
	Height int     // displayed image height in canvas pixels
}

// NewViewport fits an imageW x imageH image into a canvasW x canvasH canvas.
func NewViewport(canvasW, canvasH, imageW, imageH int) Viewport {
	iw, ih := RescaledSize(canvasW, canvasH, imageW, imageH)
	if iw <= 0 || ih <= 0 {
		return Viewport{Scale: 1}
	}
	return Viewport{
		Offset: Point{float64((canvasW - iw) / 2), float64((canvasH - ih) / 2)},
		Scale:  float64(iw) / float64(imageW),
		Width:  iw,
		Height: ih,
	}
}

// ToImage maps a canvas position to image pixel space.
func (v Viewport) ToImage(p Point) Point {
	s := v.Scale
	if s == 0 {
		s = 1
	}
	return p.Sub(v.Offset).Mul(1 / s)
}

// ToCanvas maps an image position to canvas space.
func (v Viewport) ToCanvas(p Point) Point {
	s := v.Scale
	if s == 0 {
		s = 1
	}
	return p.Mul(s).Add(v.Offset)
}

// Empty reports whether nothing is displayed.
func (v Viewport) Empty() bool { return v.Width <= 0 || v.Height <= 0 }
