// Package window is the desktop front-end. The scene and the chart are
// rendered into offscreen ebiten images by the lab and composed onto the
// screen together with a text panel.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/hashicorp/go-multierror"

	"github.com/san-kum/shakerlab/internal/chart"
	"github.com/san-kum/shakerlab/internal/config"
	"github.com/san-kum/shakerlab/internal/deck"
	"github.com/san-kum/shakerlab/internal/export"
	"github.com/san-kum/shakerlab/internal/lab"
	"github.com/san-kum/shakerlab/internal/render"
)

const (
	defaultWidth  = 1100
	defaultHeight = 720
	panelWidth    = 300
	chartHeight   = 200
	lineHeight    = 18

	orbitRate = 1.2 // rad/s while an arrow key is held
	zoomStep  = 1.1
)

var (
	paper    = color.RGBA{0xf5, 0xef, 0xe6, 0xff}
	panelBg  = color.RGBA{0x1b, 0x1c, 0x1f, 0xff}
	chartBg  = color.RGBA{0x24, 0x27, 0x2b, 0xff}
	barTrack = color.RGBA{0x3a, 0x3d, 0x42, 0xff}
	barFill  = color.RGBA{0xe8, 0x9c, 0x5b, 0xff}

	chartPalette = chart.Palette{
		Grid:     color.RGBA{0x3a, 0x3d, 0x42, 0xff},
		Baseline: color.RGBA{0x6b, 0x6f, 0x76, 0xff},
		Live:     color.RGBA{0x4f, 0xa8, 0xb3, 0xff},
		Final:    color.RGBA{0x2b, 0x6f, 0x77, 0xff},
		Cursor:   color.RGBA{0xe8, 0x9c, 0x5b, 0xff},
		Label:    color.RGBA{0xf3, 0xe7, 0xd8, 0xff},
	}
)

type Options struct {
	ExportDir string
	Logger    *log.Logger
}

// binding maps a key press to a control-deck command.
type binding struct {
	key   ebiten.Key
	shift bool
	do    func(g *Game)
}

var bindings = []binding{
	{ebiten.KeySpace, false, func(g *Game) { g.deck.ToggleRunning() }},
	{ebiten.KeyP, false, func(g *Game) { g.deck.CyclePreset(1) }},
	{ebiten.KeyP, true, func(g *Game) { g.deck.CyclePreset(-1) }},
	{ebiten.KeyTab, false, func(g *Game) { g.deck.Select(1) }},
	{ebiten.KeyTab, true, func(g *Game) { g.deck.Select(-1) }},
	{ebiten.KeyArrowUp, false, func(g *Game) { g.deck.Adjust(1) }},
	{ebiten.KeyArrowDown, false, func(g *Game) { g.deck.Adjust(-1) }},
	{ebiten.KeyN, false, func(g *Game) { g.deck.ToggleNoise() }},
	{ebiten.KeyR, false, func(g *Game) { g.deck.Record() }},
	{ebiten.KeyS, false, func(g *Game) { g.deck.Stop() }},
	{ebiten.KeyC, false, func(g *Game) { g.deck.Clear() }},
	{ebiten.KeyI, false, func(g *Game) { g.deck.ToggleIndefinite() }},
	{ebiten.KeyEqual, false, func(g *Game) { g.zoom(1 / zoomStep) }},
	{ebiten.KeyEqual, true, func(g *Game) { g.zoom(1 / zoomStep) }},
	{ebiten.KeyKPAdd, false, func(g *Game) { g.zoom(1 / zoomStep) }},
	{ebiten.KeyMinus, false, func(g *Game) { g.zoom(zoomStep) }},
	{ebiten.KeyKPSubtract, false, func(g *Game) { g.zoom(zoomStep) }},
	{ebiten.KeyE, false, func(g *Game) { g.exportPNG() }},
	{ebiten.KeyV, false, func(g *Game) { g.exportSVG() }},
	{ebiten.KeyQ, false, func(g *Game) { g.quit = true }},
	{ebiten.KeyEscape, false, func(g *Game) { g.quit = true }},
}

// Game implements ebiten.Game around a lab.
type Game struct {
	deck  *deck.Deck
	lab   *lab.Lab
	scene *ImageSurface
	chart render.Surface

	tps       int
	last      time.Time
	width     int
	height    int
	exportDir string
	status    string
	logger    *log.Logger
	quit      bool
	closed    bool
}

func New(cfg *config.Config, opts Options) *Game {
	scene := NewImageSurface(defaultWidth-panelWidth, defaultHeight-chartHeight, paper)
	chartImg := NewImageSurface(defaultWidth-panelWidth, chartHeight, chartBg)
	g := newGame(cfg, render.Fixed(scene), chartImg, opts)
	g.scene = scene
	return g
}

func newGame(cfg *config.Config, host render.Host, chartSurface render.Surface, opts Options) *Game {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	tps := cfg.FPS
	if tps <= 0 {
		tps = config.DefaultFPS
	}
	l := lab.New(cfg.Params(), lab.Options{
		Seed:  cfg.Seed,
		Scene: host,
		Chart: chartSurface,
		ChartOptions: chart.Options{
			Palette: &chartPalette,
		},
		Duration:   cfg.Recording.Duration,
		Indefinite: cfg.Recording.Indefinite,
		Logger:     logger,
	})
	return &Game{
		deck:      deck.New(l, cfg.Preset),
		lab:       l,
		chart:     chartSurface,
		tps:       tps,
		width:     defaultWidth,
		height:    defaultHeight,
		exportDir: opts.ExportDir,
		logger:    logger,
	}
}

func (g *Game) Update() error {
	if g.closed {
		return ebiten.Termination
	}
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	for _, b := range bindings {
		if inpututil.IsKeyJustPressed(b.key) && b.shift == shift {
			b.do(g)
		}
	}
	dir := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dir--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dir++
	}
	if dir != 0 && g.lab.Scene != nil {
		g.lab.Scene.Orbit(dir * orbitRate / float64(g.tps))
	}

	if g.quit {
		return ebiten.Termination
	}

	now := time.Now()
	g.step(now)
	return nil
}

// step runs one lab frame against the wall clock.
func (g *Game) step(now time.Time) lab.Frame {
	delta := time.Second / time.Duration(g.tps)
	if !g.last.IsZero() {
		delta = now.Sub(g.last)
	}
	g.last = now
	f := g.lab.Frame(delta)
	if f.Stopped {
		g.logger.Printf("recording complete: %d samples", g.lab.Recorder.Len())
	}
	return f
}

// dispatch runs the binding for key, as Update does for a fresh press.
func (g *Game) dispatch(key ebiten.Key, shift bool) bool {
	for _, b := range bindings {
		if b.key == key && b.shift == shift {
			b.do(g)
			return true
		}
	}
	return false
}

func (g *Game) zoom(f float64) {
	if g.lab.Scene != nil {
		g.lab.Scene.Zoom(f)
	}
}

func (g *Game) exportPath(what, ext string) string {
	name := fmt.Sprintf("shakerlab-%s-%s.%s", what, time.Now().Format("20060102-150405"), ext)
	return filepath.Join(g.exportDir, name)
}

func (g *Game) exportPNG() {
	path := g.exportPath("chart", "png")
	if err := export.SaveChartPNG(path, g.lab.Recorder.Samples(), "Cable tip displacement"); err != nil {
		g.logger.Printf("export chart: %v", err)
		g.status = "Export failed"
		return
	}
	g.status = "Saved " + filepath.Base(path)
}

func (g *Game) exportSVG() {
	path := g.exportPath("chart", "svg")
	doc := export.ChartSVG(g.lab.Recorder.Samples(), g.lab.ChartDuration(), 800, 240)
	if err := export.SaveSVG(path, doc); err != nil {
		g.logger.Printf("export chart: %v", err)
		g.status = "Export failed"
		return
	}
	g.status = "Saved " + filepath.Base(path)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(paper)
	if g.scene != nil && g.scene.Image() != nil {
		screen.DrawImage(g.scene.Image(), nil)
	}
	if cs, ok := g.chart.(*ImageSurface); ok && cs.Image() != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(0, float64(g.height-chartHeight))
		screen.DrawImage(cs.Image(), op)
	}

	px := float32(g.width - panelWidth)
	vector.DrawFilledRect(screen, px, 0, panelWidth, float32(g.height), panelBg, false)
	for i, line := range g.panelLines() {
		ebitenutil.DebugPrintAt(screen, line, int(px)+12, 12+i*lineHeight)
	}

	if g.lab.Recorder.IsRecording() {
		y := float32(g.height - 24)
		w := float32(panelWidth - 24)
		vector.DrawFilledRect(screen, px+12, y, w, 6, barTrack, false)
		vector.DrawFilledRect(screen, px+12, y, w*float32(g.lab.Recorder.Progress()), 6, barFill, false)
	}
}

func (g *Game) panelLines() []string {
	d := g.deck
	angle, tip, speed := deck.FormatReadout(g.lab.Readout())
	run := "running"
	if !d.Params().Running {
		run = "paused"
	}
	lines := []string{
		"SHAKERLAB  " + run,
		"",
		"Arm angle    " + angle,
		"Tip          " + tip,
		"SOPAS proxy  " + speed,
		"",
	}
	for _, c := range deck.Controls {
		marker := "  "
		if c == d.Selected {
			marker = "> "
		}
		val := d.PresetLabel()
		if r, ok := c.Range(); ok {
			val = fmt.Sprintf("%.2f %s", d.Value(c), r.Unit)
		}
		if !d.Enabled(c) {
			val += " (locked)"
		}
		lines = append(lines, fmt.Sprintf("%s%-17s %s", marker, c, val))
	}
	noise, indef := "off", "off"
	if d.Params().NoiseEnabled {
		noise = "on"
	}
	if g.lab.Indefinite {
		indef = "on"
	}
	lines = append(lines,
		"  Noise            "+noise,
		"  Indefinite       "+indef,
		"",
		"Status       "+d.Status(),
		"Duration     "+d.DurationText(),
		"Sample rate  "+deck.SampleRateText(),
		"",
		"space run  p preset  tab select",
		"up/down adjust  n noise  i indef",
		"r rec  s stop  c clear  e/v export",
		"arrows orbit  +/- zoom  q quit",
	)
	if g.status != "" {
		lines = append(lines, "", g.status)
	}
	return lines
}

// Layout follows the window size: the scene gets everything left of the
// panel above the chart strip.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := max(outsideWidth, panelWidth+160), max(outsideHeight, chartHeight+160)
	if w != g.width || h != g.height {
		g.width, g.height = w, h
		g.resize()
	}
	return w, h
}

func (g *Game) resize() {
	sw, sh := g.width-panelWidth, g.height-chartHeight
	if g.lab.Scene != nil {
		g.lab.Scene.Resize(sw, sh)
	}
	if rs, ok := g.chart.(render.Resizer); ok {
		rs.Resize(sw, chartHeight)
	}
}

// Close disposes the scene and the chart image. It is idempotent.
func (g *Game) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	err := g.lab.Close()
	if rel, ok := g.chart.(render.Releaser); ok {
		if rerr := rel.Release(); rerr != nil {
			err = multierror.Append(err, fmt.Errorf("release chart: %w", rerr))
		}
	}
	return err
}

// Run opens the window and blocks until it is closed.
func Run(g *Game) error {
	ebiten.SetWindowTitle("shakerlab")
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.tps)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	if cerr := g.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
