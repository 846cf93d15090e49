package export

import (
	"bytes"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/shakerlab/internal/render"
)

func sine(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.01 * math.Sin(2*math.Pi*3*float64(i)/60)
	}
	return out
}

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 1) != "" {
		t.Error("nil canvas should give empty output")
	}

	c := render.NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(7, 7)
	svg := CanvasToSVG(c, 2)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("not an svg document: %q", svg)
	}
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("circles = %d, want 2", n)
	}
	if !strings.Contains(svg, `width="16" height="16"`) {
		t.Error("unexpected document size")
	}
}

func TestSVGSurface(t *testing.T) {
	s := NewSVG(100, 50)
	s.StrokeLine(0, 0, 10, 10, render.Stroke{Dash: []float64{5, 5}})
	s.FillText(1, 2, "a<b", s.Background)
	doc := s.String()
	if !strings.Contains(doc, `stroke-dasharray="5,5"`) {
		t.Error("dash pattern missing")
	}
	if !strings.Contains(doc, "a&lt;b") {
		t.Error("text not escaped")
	}

	s.Clear()
	if strings.Contains(s.String(), "<line") {
		t.Error("Clear kept elements")
	}
}

func TestChartSVG(t *testing.T) {
	doc := ChartSVG(sine(120), 2, 600, 200)
	// 5 gridlines + baseline + 119 signal segments
	if n := strings.Count(doc, "<line"); n != 5+1+119 {
		t.Errorf("lines = %d", n)
	}
	if !strings.Contains(doc, ">2s</text>") {
		t.Error("time axis label missing")
	}
}

func TestWritePNG(t *testing.T) {
	if _, err := ChartPlot([]float64{1}, "x"); err == nil {
		t.Error("expected error for a single sample")
	}

	p, err := ChartPlot(sine(360), "shake-3")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WritePNG(&buf, p, 4, 2); err != nil {
		t.Fatalf("WritePNG() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a png: %v", err)
	}
	if b := img.Bounds(); b.Dx() <= b.Dy() || b.Dx() < 4*PlotDPI-1 {
		t.Errorf("image is %dx%d", b.Dx(), b.Dy())
	}
}

func TestSaveChartPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "trace.png")
	if err := SaveChartPNG(path, sine(60), "trace"); err != nil {
		t.Fatalf("SaveChartPNG() error = %v", err)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Errorf("png not written: %v", err)
	}

	svgPath := filepath.Join(t.TempDir(), "scene.svg")
	if err := SaveSVG(svgPath, ChartSVG(sine(10), 1, 100, 50)); err != nil {
		t.Fatal(err)
	}
}
