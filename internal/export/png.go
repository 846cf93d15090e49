package export

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/san-kum/shakerlab/internal/recorder"
)

// Default image size in inches.
const (
	PlotWidth  = 8.0
	PlotHeight = 3.0
	PlotDPI    = 150
)

var traceColor = color.RGBA{0x1d, 0x4e, 0x54, 0xff}

// ChartPlot builds a plot of a recording: time in seconds against tip
// displacement in millimetres.
func ChartPlot(samples []float64, title string) (*plot.Plot, error) {
	if len(samples) < 2 {
		return nil, fmt.Errorf("export: need at least 2 samples, have %d", len(samples))
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "tip displacement (mm)"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(samples))
	for i, v := range samples {
		pts[i].X = float64(i) / recorder.SampleRate
		pts[i].Y = v * 1000
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = traceColor
	p.Add(line)
	return p, nil
}

// WritePNG draws p at the given size in inches.
func WritePNG(w io.Writer, p *plot.Plot, widthIn, heightIn float64) error {
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(PlotDPI),
	)
	p.Draw(draw.New(c))

	bw := bufio.NewWriter(w)
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(bw); err != nil {
		return fmt.Errorf("export: write png: %w", err)
	}
	return bw.Flush()
}

// SaveChartPNG writes a recording to path, creating the directory.
func SaveChartPNG(path string, samples []float64, title string) (err error) {
	p, err := ChartPlot(samples, title)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export: create directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create png: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = multierror.Append(err, cerr)
		}
	}()
	return WritePNG(f, p, PlotWidth, PlotHeight)
}

// SaveSVG writes an SVG document to path.
func SaveSVG(path, doc string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export: create directory: %w", err)
		}
	}
	return os.WriteFile(path, []byte(doc), 0644)
}
