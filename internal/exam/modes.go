package exam

import (
	"fmt"
	"strings"
)

// CameraMode is the rendering mode of the live view.
type CameraMode int

const (
	CameraStandard CameraMode = iota
	CameraHighSaturation
	CameraLowSaturation
	CameraEnhancedVascular
	CameraContrastEnhanced
	CameraAceticResponse
	CameraIodine
	CameraHeatmap
)

var cameraModes = []struct {
	value string
	label string
}{
	{"standard", "Standard"},
	{"high-saturation", "High Saturation"},
	{"low-saturation", "Low Saturation (Grayscale)"},
	{"enhanced-vascular", "Enhanced Vascular View (Green Filter)"},
	{"contrast-enhanced", "Contrast-Enhanced View"},
	{"acetic-response", "Acetic Response Tracking"},
	{"iodine", "Iodine View"},
	{"heatmap", "Heatmap View"},
}

// CameraModes lists every mode in menu order.
func CameraModes() []CameraMode {
	out := make([]CameraMode, len(cameraModes))
	for i := range cameraModes {
		out[i] = CameraMode(i)
	}
	return out
}

// String returns the mode identifier.
func (m CameraMode) String() string {
	if m < 0 || int(m) >= len(cameraModes) {
		return "unknown"
	}
	return cameraModes[m].value
}

// Label returns the menu label.
func (m CameraMode) Label() string {
	if m < 0 || int(m) >= len(cameraModes) {
		return "Unknown"
	}
	return cameraModes[m].label
}

// ParseCameraMode parses a mode identifier.
func ParseCameraMode(s string) (CameraMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, m := range cameraModes {
		if m.value == s {
			return CameraMode(i), nil
		}
	}
	return CameraStandard, fmt.Errorf("invalid camera mode: %s", s)
}

// ShapeTool is the annotation drawing tool.
type ShapeTool int

const (
	ToolCircle ShapeTool = iota
	ToolSquare
	ToolFreehand
)

// String returns the tool name.
func (t ShapeTool) String() string {
	switch t {
	case ToolSquare:
		return "square"
	case ToolFreehand:
		return "freehand"
	default:
		return "circle"
	}
}

// Next cycles to the following tool.
func (t ShapeTool) Next() ShapeTool { return (t + 1) % 3 }

// Tab is a tab of the exam side panel.
type Tab int

const (
	TabAnnotate Tab = iota
	TabBiopsy
	TabDiagnosis
)

// String returns the tab title.
func (t Tab) String() string {
	switch t {
	case TabBiopsy:
		return "Biopsy"
	case TabDiagnosis:
		return "Diagnosis"
	default:
		return "Annotate"
	}
}

// Next cycles to the following tab.
func (t Tab) Next() Tab { return (t + 1) % 3 }

// Prev cycles to the preceding tab.
func (t Tab) Prev() Tab { return (t + 2) % 3 }

// Tabs lists the tabs in display order.
func Tabs() []Tab { return []Tab{TabAnnotate, TabBiopsy, TabDiagnosis} }
