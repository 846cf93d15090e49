package config

import "fmt"

// Custom is the preset name used once shake frequency or amplitude has been
// adjusted by hand.
const Custom = "custom"

// CustomDetail is shown in place of a preset's detail line for Custom.
const CustomDetail = "Custom settings. Adjust the controls below."

type Preset struct {
	Name      string
	Label     string
	Severity  string
	Detail    string
	Frequency float64 // Hz
	Amplitude float64
}

func (p Preset) String() string {
	return fmt.Sprintf("%s - %s", p.Label, p.Severity)
}

// Presets are the shake classes in order of severity.
var Presets = []Preset{
	{
		Name:      "none",
		Label:     "No event",
		Severity:  "Baseline",
		Detail:    "Normal operation, no mechanical disturbance.",
		Frequency: 0,
		Amplitude: 0.05,
	},
	{
		Name:      "shake-1",
		Label:     "Shaking 1 Hz",
		Severity:  "Low",
		Detail:    "Ambient vibration, benign noise.",
		Frequency: 1,
		Amplitude: 0.14,
	},
	{
		Name:      "shake-3",
		Label:     "Shaking 3 Hz",
		Severity:  "Moderate",
		Detail:    "Minor disturbance with clear fingerprint.",
		Frequency: 3,
		Amplitude: 0.22,
	},
	{
		Name:      "shake-5",
		Label:     "Shaking 5 Hz",
		Severity:  "High",
		Detail:    "Sustained mechanical stress.",
		Frequency: 5,
		Amplitude: 0.30,
	},
	{
		Name:      "shake-10",
		Label:     "Shaking 10 Hz",
		Severity:  "Critical",
		Detail:    "Intrusion-level shake events.",
		Frequency: 10,
		Amplitude: 0.36,
	},
}

func GetPreset(name string) *Preset {
	for i := range Presets {
		if Presets[i].Name == name {
			return &Presets[i]
		}
	}
	return nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for _, p := range Presets {
		names = append(names, p.Name)
	}
	return names
}

// Detail returns the description line for a preset name, including Custom.
func Detail(name string) string {
	if p := GetPreset(name); p != nil {
		return p.Detail
	}
	return CustomDetail
}

// CyclePreset returns the preset dir steps away from name, wrapping around.
// From Custom, stepping forward lands on the first preset and backward on the
// last.
func CyclePreset(name string, dir int) Preset {
	idx := -1
	for i, p := range Presets {
		if p.Name == name {
			idx = i
		}
	}
	n := len(Presets)
	if idx < 0 {
		if dir < 0 {
			return Presets[n-1]
		}
		return Presets[0]
	}
	return Presets[((idx+dir)%n+n)%n]
}
