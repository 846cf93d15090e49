package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/san-kum/shakerlab/internal/render"
)

// debugGlyphHeight is the line height of ebitenutil's debug font.
const debugGlyphHeight = 16

// ImageSurface is an offscreen ebiten image used as a render.Surface.
type ImageSurface struct {
	img *ebiten.Image
	bg  color.RGBA
}

func NewImageSurface(w, h int, bg color.RGBA) *ImageSurface {
	return &ImageSurface{img: ebiten.NewImage(max(w, 1), max(h, 1)), bg: bg}
}

// Image is the backing image, nil once released.
func (s *ImageSurface) Image() *ebiten.Image { return s.img }

func (s *ImageSurface) Size() (float64, float64) {
	if s.img == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s *ImageSurface) Clear() {
	if s.img != nil {
		s.img.Fill(s.bg)
	}
}

func (s *ImageSurface) StrokeLine(x0, y0, x1, y1 float64, st render.Stroke) {
	if s.img == nil {
		return
	}
	w := float32(st.Width)
	if w <= 0 {
		w = 1
	}
	for _, seg := range render.DashSegments(x0, y0, x1, y1, st.Dash) {
		vector.StrokeLine(s.img, float32(seg.X0), float32(seg.Y0), float32(seg.X1), float32(seg.Y1), w, st.Color, true)
	}
}

// FillText draws with the debug font, which ignores the colour. y is the
// text baseline.
func (s *ImageSurface) FillText(x, y float64, text string, _ color.RGBA) {
	if s.img == nil {
		return
	}
	ebitenutil.DebugPrintAt(s.img, text, int(x), int(y)-debugGlyphHeight/2)
}

// Resize replaces the backing image; the old one is deallocated.
func (s *ImageSurface) Resize(w, h int) {
	if s.img == nil || w <= 0 || h <= 0 {
		return
	}
	if b := s.img.Bounds(); b.Dx() == w && b.Dy() == h {
		return
	}
	s.img.Deallocate()
	s.img = ebiten.NewImage(w, h)
	s.img.Fill(s.bg)
}

func (s *ImageSurface) Release() error {
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	return nil
}
