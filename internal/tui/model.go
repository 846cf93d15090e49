package tui

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/shakerlab/internal/chart"
	"github.com/san-kum/shakerlab/internal/config"
	"github.com/san-kum/shakerlab/internal/deck"
	"github.com/san-kum/shakerlab/internal/export"
	"github.com/san-kum/shakerlab/internal/lab"
	"github.com/san-kum/shakerlab/internal/render"
)

const (
	historyCapacity = 240

	sceneCols, sceneRows = 60, 18
	chartRows            = 7
	panelWidth           = 50

	orbitStep = 0.08
	zoomStep  = 1.1
)

type Options struct {
	Theme     string
	ExportDir string
	// Logger receives diagnostics; nil discards them.
	Logger *log.Logger
}

// tickMsg carries the generation it was scheduled under so ticks queued
// before Close are dropped instead of driving a released scene.
type tickMsg struct {
	gen int
	at  time.Time
}

// Model is the terminal control deck.
type Model struct {
	deck  *deck.Deck
	lab   *lab.Lab
	scene *render.Canvas
	chart *render.Canvas

	keys  keyMap
	help  help.Model
	theme Theme
	st    styles

	interval time.Duration
	gen      int
	last     time.Time

	history []float64
	spring  harmonica.Spring
	barPos  float64
	barVel  float64

	exportDir string
	status    string
	logger    *log.Logger

	width, height int
	showHelp      bool
}

func NewModel(cfg *config.Config, opts Options) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	fps := cfg.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	themeName := opts.Theme
	if themeName == "" {
		themeName = cfg.Theme
	}
	theme := GetTheme(themeName)

	sceneCanvas := render.NewCanvas(sceneCols, sceneRows)
	chartCanvas := render.NewCanvas(sceneCols, chartRows)
	l := lab.New(cfg.Params(), lab.Options{
		Seed:  cfg.Seed,
		Scene: render.Fixed(sceneCanvas),
		Chart: chartCanvas,
		ChartOptions: chart.Options{
			Padding:   8,
			Dash:      []float64{2, 2},
			LineWidth: 1,
		},
		Duration:   cfg.Recording.Duration,
		Indefinite: cfg.Recording.Indefinite,
		Logger:     logger,
	})

	return Model{
		deck:      deck.New(l, cfg.Preset),
		lab:       l,
		scene:     sceneCanvas,
		chart:     chartCanvas,
		keys:      defaultKeys(),
		help:      help.New(),
		theme:     theme,
		st:        newStyles(theme),
		interval:  time.Second / time.Duration(fps),
		history:   make([]float64, 0, historyCapacity),
		spring:    harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
		exportDir: opts.ExportDir,
		logger:    logger,
		width:     sceneCols + panelWidth,
		height:    sceneRows + chartRows + 8,
	}
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

// Deck exposes the control deck for callers that script the model.
func (m Model) Deck() *deck.Deck { return m.deck }

func (m Model) Lab() *lab.Lab { return m.lab }

func (m Model) Theme() Theme { return m.theme }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		if msg.gen != m.gen || m.lab.Closed() {
			return m, nil
		}
		m.step(msg.at)
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step(at time.Time) {
	delta := m.interval
	if !m.last.IsZero() {
		delta = at.Sub(m.last)
	}
	m.last = at

	f := m.lab.Frame(delta)
	m.history = append(m.history, f.Angle)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
	if f.Stopped {
		m.logger.Printf("recording complete: %d samples", m.lab.Recorder.Len())
		m.status = "Recording complete"
	}
	m.barPos, m.barVel = m.spring.Update(m.barPos, m.barVel, m.lab.Recorder.Progress())
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.deck
	switch {
	case key.Matches(msg, m.keys.Quit):
		if err := m.lab.Close(); err != nil {
			m.logger.Printf("teardown: %v", err)
		}
		m.gen++
		return m, tea.Quit
	case key.Matches(msg, m.keys.Run):
		d.ToggleRunning()
	case key.Matches(msg, m.keys.NextPreset):
		d.CyclePreset(1)
	case key.Matches(msg, m.keys.PrevPreset):
		d.CyclePreset(-1)
	case key.Matches(msg, m.keys.NextCtl):
		d.Select(1)
	case key.Matches(msg, m.keys.PrevCtl):
		d.Select(-1)
	case key.Matches(msg, m.keys.Up):
		d.Adjust(1)
	case key.Matches(msg, m.keys.Down):
		d.Adjust(-1)
	case key.Matches(msg, m.keys.Noise):
		d.ToggleNoise()
	case key.Matches(msg, m.keys.Record):
		if d.Record() {
			m.status = ""
			m.barPos, m.barVel = 0, 0
		}
	case key.Matches(msg, m.keys.Stop):
		d.Stop()
	case key.Matches(msg, m.keys.Clear):
		d.Clear()
		m.status = ""
	case key.Matches(msg, m.keys.Indefinite):
		d.ToggleIndefinite()
	case key.Matches(msg, m.keys.Theme):
		m.theme = NextTheme(m.theme.Name)
		m.st = newStyles(m.theme)
	case key.Matches(msg, m.keys.OrbitLeft):
		m.orbit(-orbitStep)
	case key.Matches(msg, m.keys.OrbitRight):
		m.orbit(orbitStep)
	case key.Matches(msg, m.keys.ZoomIn):
		m.zoom(1 / zoomStep)
	case key.Matches(msg, m.keys.ZoomOut):
		m.zoom(zoomStep)
	case key.Matches(msg, m.keys.ExportPNG):
		m.exportChart()
	case key.Matches(msg, m.keys.ExportSVG):
		m.exportScene()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	}
	return m, nil
}

func (m *Model) orbit(yaw float64) {
	if m.lab.Scene != nil {
		m.lab.Scene.Orbit(yaw)
	}
}

func (m *Model) zoom(f float64) {
	if m.lab.Scene != nil {
		m.lab.Scene.Zoom(f)
	}
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.help.Width = w

	cols := max(30, w-panelWidth-4)
	rows := max(8, h-chartRows-8)
	if m.lab.Scene != nil {
		m.lab.Scene.Resize(cols, rows)
	} else {
		m.scene.Resize(cols, rows)
	}
	m.chart.Resize(cols, chartRows)
}

func (m *Model) exportPath(what, ext string) string {
	name := fmt.Sprintf("shakerlab-%s-%s.%s", what, time.Now().Format("20060102-150405"), ext)
	return filepath.Join(m.exportDir, name)
}

func (m *Model) exportChart() {
	path := m.exportPath("chart", "png")
	if err := export.SaveChartPNG(path, m.lab.Recorder.Samples(), "Cable tip displacement"); err != nil {
		m.logger.Printf("export chart: %v", err)
		m.status = "Export failed: " + err.Error()
		return
	}
	m.status = "Saved " + path
}

func (m *Model) exportScene() {
	path := m.exportPath("scene", "svg")
	if err := export.SaveSVG(path, export.CanvasToSVG(m.scene, 4)); err != nil {
		m.logger.Printf("export scene: %v", err)
		m.status = "Export failed: " + err.Error()
		return
	}
	m.status = "Saved " + path
}

func (m Model) View() string {
	st := m.st

	var left strings.Builder
	left.WriteString(st.header.Render("SHAKERLAB") + "  " + m.runState() + "\n")
	left.WriteString(st.canvas.Render(m.scene.String()) + "\n")
	left.WriteString(st.label.Render("Cable tip displacement") + "\n")
	left.WriteString(st.canvas.Render(m.chart.String()))

	main := lipgloss.JoinHorizontal(lipgloss.Top, left.String(), st.panel.Render(m.panel()))
	return main + "\n" + st.help.Render(m.help.View(m.keys))
}

func (m Model) runState() string {
	if m.deck.Params().Running {
		return m.st.running.Render("● running")
	}
	return m.st.paused.Render("○ paused")
}

func (m Model) panel() string {
	st, d := m.st, m.deck
	var s strings.Builder

	angle, tip, speed := deck.FormatReadout(m.lab.Readout())
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		st.card.Render(st.label.Width(0).Render("Arm angle")+"\n"+st.value.Render(angle)),
		st.card.Render(st.label.Width(0).Render("Tip")+"\n"+st.value.Render(tip)),
		st.card.Render(st.label.Width(0).Render("SOPAS proxy")+"\n"+st.value.Render(speed)),
	) + "\n\n")

	s.WriteString(st.header.Render("CONTROLS") + "\n")
	for _, c := range deck.Controls {
		s.WriteString(m.controlLine(c) + "\n")
	}
	s.WriteString(st.notice.Render(d.PresetDetail()) + "\n")
	noise := "off"
	if d.Params().NoiseEnabled {
		noise = "on"
	}
	indef := "off"
	if m.lab.Indefinite {
		indef = "on"
	}
	s.WriteString(st.label.Render("Noise") + st.value.Render(noise) + "\n")
	s.WriteString(st.label.Render("Indefinite") + st.value.Render(indef) + "\n\n")

	s.WriteString(st.header.Render("RECORDING") + "\n")
	status := d.Status()
	if m.lab.Recorder.IsRecording() {
		status = st.rec.Render(status)
	} else {
		status = st.value.Render(status)
	}
	s.WriteString(st.label.Render("Status") + status + "\n")
	s.WriteString(st.label.Render("Duration") + st.value.Render(d.DurationText()) + "\n")
	s.WriteString(st.label.Render("Sample rate") + st.value.Render(deck.SampleRateText()) + "\n")
	if m.lab.Recorder.IsRecording() {
		s.WriteString(st.progressBar(m.barPos, 30) + "\n")
	}

	if len(m.history) > 1 {
		graph := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(36), asciigraph.Caption("arm angle (rad)"))
		s.WriteString("\n" + st.graph.Render(graph) + "\n")
	}
	if m.status != "" {
		s.WriteString("\n" + st.notice.Render(m.status) + "\n")
	}
	return s.String()
}

func (m Model) controlLine(c deck.Control) string {
	st, d := m.st, m.deck
	prefix := "  "
	if c == d.Selected {
		prefix = "> "
	}

	var val string
	if r, ok := c.Range(); ok {
		v := d.Value(c)
		val = fmt.Sprintf("%s %.2f %s", st.slider(v, r.Min, r.Max, 10), v, r.Unit)
	} else {
		val = d.PresetLabel()
	}

	line := fmt.Sprintf("%-17s %s", c, val)
	switch {
	case !d.Enabled(c):
		return st.disabled.Render(prefix + line)
	case c == d.Selected:
		return st.active.Render(prefix + line)
	}
	return prefix + st.value.Render(line)
}

// Run starts the control deck on the alternate screen and closes the lab
// when the program exits.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		if cerr := fm.lab.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
