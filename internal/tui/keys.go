package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Run        key.Binding
	NextPreset key.Binding
	PrevPreset key.Binding
	NextCtl    key.Binding
	PrevCtl    key.Binding
	Up         key.Binding
	Down       key.Binding
	Noise      key.Binding
	Record     key.Binding
	Stop       key.Binding
	Clear      key.Binding
	Indefinite key.Binding
	Theme      key.Binding
	OrbitLeft  key.Binding
	OrbitRight key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	ExportPNG  key.Binding
	ExportSVG  key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.Record, k.Stop, k.NextCtl, k.Up, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Run, k.NextPreset, k.PrevPreset, k.Noise},
		{k.NextCtl, k.PrevCtl, k.Up, k.Down},
		{k.Record, k.Stop, k.Clear, k.Indefinite},
		{k.OrbitLeft, k.OrbitRight, k.ZoomIn, k.ZoomOut},
		{k.ExportPNG, k.ExportSVG, k.Theme, k.Help, k.Quit},
	}
}

func defaultKeys() keyMap {
	return keyMap{
		Run:        key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "run/pause")),
		NextPreset: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "next preset")),
		PrevPreset: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "previous preset")),
		NextCtl:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next control")),
		PrevCtl:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous control")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "increase")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "decrease")),
		Noise:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "noise on/off")),
		Record:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "record")),
		Stop:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Clear:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Indefinite: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "indefinite")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		OrbitLeft:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "orbit left")),
		OrbitRight: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "orbit right")),
		ZoomIn:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),
		ExportPNG:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export chart PNG")),
		ExportSVG:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "export scene SVG")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
