// Package exam holds the view state of the live exam screen: camera
// settings, annotation tools, biopsy recording and the diagnosis draft.
package exam

import (
	"fmt"
	"math"
)

// Range bounds a slider.
type Range struct {
	Min  float64
	Max  float64
	Step float64
}

// Slider ranges of the camera settings panel and annotation tools.
var (
	ZoomRange       = Range{Min: 0.5, Max: 3.0, Step: 0.1}
	FocusRange      = Range{Min: 0, Max: 100, Step: 1}
	LightRange      = Range{Min: 0, Max: 150, Step: 1}
	SaturationRange = Range{Min: 0, Max: 200, Step: 1}
	OpacityRange    = Range{Min: 0, Max: 100, Step: 1}
)

// Fit clamps v into the range and snaps it to the nearest step from Min.
func (r Range) Fit(v float64) float64 {
	if math.IsNaN(v) {
		return r.Min
	}
	if r.Step > 0 {
		v = r.Min + math.Round((v-r.Min)/r.Step)*r.Step
	}
	v = math.Max(r.Min, math.Min(r.Max, v))
	// drop float noise such as 1.2000000000000002
	return math.Round(v*1e6) / 1e6
}

// Slider is a numeric control that never leaves its range.
type Slider struct {
	name  string
	unit  string
	rng   Range
	value float64
}

// NewSlider creates a slider starting at initial, fitted into r.
func NewSlider(name, unit string, r Range, initial float64) *Slider {
	return &Slider{name: name, unit: unit, rng: r, value: r.Fit(initial)}
}

// Name returns the slider label.
func (s *Slider) Name() string { return s.name }

// Range returns the slider bounds.
func (s *Slider) Range() Range { return s.rng }

// Value returns the current value.
func (s *Slider) Value() float64 { return s.value }

// Set moves the slider to v, clamped and snapped.
func (s *Slider) Set(v float64) float64 {
	s.value = s.rng.Fit(v)
	return s.value
}

// Increment moves one step up.
func (s *Slider) Increment() float64 { return s.Set(s.value + s.rng.Step) }

// Decrement moves one step down.
func (s *Slider) Decrement() float64 { return s.Set(s.value - s.rng.Step) }

// Fraction returns the position within the range, 0 to 1.
func (s *Slider) Fraction() float64 {
	span := s.rng.Max - s.rng.Min
	if span <= 0 {
		return 0
	}
	return (s.value - s.rng.Min) / span
}

// Label renders the slider the way the settings panel shows it, e.g.
// "Zoom Level: 1.5x" or "Focus: 50%".
func (s *Slider) Label() string {
	if s.unit == "x" {
		return fmt.Sprintf("%s: %.1f%s", s.name, s.value, s.unit)
	}
	return fmt.Sprintf("%s: %.0f%s", s.name, s.value, s.unit)
}

// Settings are the camera parameters of the settings panel.
type Settings struct {
	Zoom       *Slider
	Focus      *Slider
	Light      *Slider
	Saturation *Slider
	Mode       CameraMode
}

// NewSettings returns the settings a freshly entered live exam starts with.
func NewSettings() *Settings {
	return &Settings{
		Zoom:       NewSlider("Zoom Level", "x", ZoomRange, 1.0),
		Focus:      NewSlider("Focus", "%", FocusRange, 50),
		Light:      NewSlider("Light Intensity", "%", LightRange, 75),
		Saturation: NewSlider("Color Saturation", "%", SaturationRange, 50),
		Mode:       CameraStandard,
	}
}

// Sliders returns the panel sliders in display order.
func (s *Settings) Sliders() []*Slider {
	return []*Slider{s.Zoom, s.Focus, s.Light, s.Saturation}
}
