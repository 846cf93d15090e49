package export

import (
	"fmt"
	"html"
	"image/color"
	"strings"

	"github.com/san-kum/shakerlab/internal/chart"
	"github.com/san-kum/shakerlab/internal/render"
)

// SVG is a render.Surface that collects vector elements. Anything that draws
// through render.Surface (the chart, the scene) can be exported with it.
type SVG struct {
	Width, Height float64
	Background    color.RGBA

	body strings.Builder
}

func NewSVG(w, h float64) *SVG {
	return &SVG{Width: w, Height: h, Background: color.RGBA{0xfa, 0xf6, 0xf0, 0xff}}
}

func (s *SVG) Size() (float64, float64) { return s.Width, s.Height }

func (s *SVG) Clear() { s.body.Reset() }

func (s *SVG) StrokeLine(x0, y0, x1, y1 float64, st render.Stroke) {
	w := st.Width
	if w <= 0 {
		w = 1
	}
	fmt.Fprintf(&s.body, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-opacity="%.2f" stroke-width="%.2f"`,
		x0, y0, x1, y1, hexColor(st.Color), opacity(st.Color), w)
	if len(st.Dash) > 0 {
		parts := make([]string, len(st.Dash))
		for i, d := range st.Dash {
			parts[i] = fmt.Sprintf("%g", d)
		}
		fmt.Fprintf(&s.body, ` stroke-dasharray="%s"`, strings.Join(parts, ","))
	}
	s.body.WriteString("/>\n")
}

func (s *SVG) FillText(x, y float64, text string, c color.RGBA) {
	fmt.Fprintf(&s.body, `<text x="%.2f" y="%.2f" fill="%s" fill-opacity="%.2f" font-family="monospace" font-size="10">%s</text>`+"\n",
		x, y, hexColor(c), opacity(c), html.EscapeString(text))
}

// String returns the complete document.
func (s *SVG) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.Width, s.Height, s.Width, s.Height, hexColor(s.Background)))
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>")
	return sb.String()
}

// ChartSVG renders a finished recording as an SVG document.
func ChartSVG(samples []float64, duration float64, w, h float64) string {
	s := NewSVG(w, h)
	chart.Draw(s, samples, 1, false, chart.Options{Duration: duration})
	return s.String()
}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *render.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#2b6f77">
`, width, height, width, height))

	dotRadius := scale * 0.4

	// one circle per lit dot
	for y := 0; y < canvas.Height*4; y++ {
		for x := 0; x < canvas.Width*2; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func opacity(c color.RGBA) float64 {
	return float64(c.A) / 255
}
