package chart

import (
	"math"
	"testing"

	"github.com/san-kum/shakerlab/internal/render"
	"github.com/san-kum/shakerlab/internal/render/rendertest"
)

func TestScale(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		want    float64
	}{
		{"mixed", []float64{0.5, -0.2, 0.1}, 0.5},
		{"negative peak", []float64{0.1, -0.7}, 0.7},
		{"all zero", []float64{0, 0, 0}, FloorScale},
		{"empty", nil, FloorScale},
		{"tiny", []float64{0.001}, 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Scale(tt.samples); got != tt.want {
				t.Errorf("Scale() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDraw_AutoScale(t *testing.T) {
	s := rendertest.New(200, 100)
	Draw(s, []float64{0.5, -0.2, 0.1}, 1, false, Options{})

	line := s.LinesWith(DefaultPalette.Final)
	if len(line) != 2 {
		t.Fatalf("signal segments = %d, want 2", len(line))
	}
	l := NewLayout(200, 100, DefaultPadding)
	wantTop := l.Mid() - l.GraphH/2*Headroom
	if math.Abs(line[0].Y0-wantTop) > 1e-9 {
		t.Errorf("peak at y=%v, want %v", line[0].Y0, wantTop)
	}
	if line[0].X0 != l.Padding || line[1].X1 != 200-l.Padding {
		t.Errorf("signal spans x %v..%v", line[0].X0, line[1].X1)
	}
	if len(s.LinesWith(DefaultPalette.Cursor)) != 0 {
		t.Error("cursor drawn when not live")
	}
}

func TestDraw_AllZero(t *testing.T) {
	s := rendertest.New(200, 100)
	Draw(s, []float64{0, 0, 0}, 0.5, true, Options{})

	mid := NewLayout(200, 100, DefaultPadding).Mid()
	for _, ln := range s.LinesWith(DefaultPalette.Live) {
		if math.IsNaN(ln.Y0) || math.IsInf(ln.Y0, 0) || ln.Y0 != mid || ln.Y1 != mid {
			t.Errorf("zero signal drawn at %v..%v, want %v", ln.Y0, ln.Y1, mid)
		}
	}
}

func TestDraw_FewSamples(t *testing.T) {
	for _, samples := range [][]float64{nil, {0.3}} {
		s := rendertest.New(200, 100)
		Draw(s, samples, 0, true, Options{})
		if n := len(s.LinesWith(DefaultPalette.Live)); n != 0 {
			t.Errorf("%d samples drew %d signal segments", len(samples), n)
		}
		if n := len(s.LinesWith(DefaultPalette.Grid)); n != Gridlines {
			t.Errorf("gridlines = %d, want %d", n, Gridlines)
		}
		if len(s.LinesWith(DefaultPalette.Baseline)) != 1 {
			t.Error("baseline missing")
		}
	}
}

func TestDraw_LiveCursor(t *testing.T) {
	tests := []struct {
		progress float64
		want     float64
	}{
		{0, 18},
		{0.5, 100},
		{1, 182},
		{3, 182},
	}

	for _, tt := range tests {
		s := rendertest.New(200, 100)
		Draw(s, []float64{0.1, 0.2}, tt.progress, true, Options{})
		cur := s.LinesWith(DefaultPalette.Cursor)
		if len(cur) != 1 {
			t.Fatalf("cursor lines = %d", len(cur))
		}
		if cur[0].X0 != tt.want || cur[0].Y0 != 18 || cur[0].Y1 != 82 {
			t.Errorf("progress %v: cursor %+v, want x=%v", tt.progress, cur[0], tt.want)
		}
	}
}

func TestDraw_Labels(t *testing.T) {
	s := rendertest.New(200, 100)
	Draw(s, nil, 0, false, Options{Duration: 6})
	for _, want := range []string{"1", "0.5", "0", "-0.5", "-1", "0s", "1.5s", "3s", "6s"} {
		if !s.HasText(want) {
			t.Errorf("label %q missing", want)
		}
	}

	s = rendertest.New(200, 100)
	Draw(s, nil, 0, false, Options{})
	if s.HasText("0s") {
		t.Error("time labels drawn without a duration")
	}
}

func TestDraw_Degenerate(t *testing.T) {
	Draw(nil, []float64{1, 2}, 0, true, Options{})

	s := rendertest.New(0, 0)
	Draw(s, []float64{1, 2}, 0, true, Options{})
	if len(s.Lines) != 0 {
		t.Error("drew on an empty surface")
	}

	c := render.NewCanvas(40, 10)
	Draw(c, []float64{0.2, -0.1, 0.3}, 0.4, true, Options{Padding: 2, Dash: []float64{2, 2}})
	if c.String() == render.NewCanvas(40, 10).String() {
		t.Error("canvas left blank")
	}
}
