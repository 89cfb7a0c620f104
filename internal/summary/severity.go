// Package summary projects the mock exam result set for the summary report.
package summary

import "strings"

// Severity is the display severity of a finding.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityLow
	SeverityModerate
	SeverityHigh
)

// String returns the severity name shown on badges.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityModerate:
		return "moderate"
	case SeverityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// ParseSeverity maps a severity name to its value. "severe" is read as
// high; anything unrecognised is SeverityUnknown.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return SeverityLow
	case "moderate":
		return SeverityModerate
	case "high", "severe":
		return SeverityHigh
	default:
		return SeverityUnknown
	}
}

// Color names the badge color of a severity.
type Color string

const (
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorRed    Color = "red"
	ColorGray   Color = "gray"
)

// ColorOf returns the fixed badge color of s.
func ColorOf(s Severity) Color {
	switch s {
	case SeverityLow:
		return ColorGreen
	case SeverityModerate:
		return ColorYellow
	case SeverityHigh:
		return ColorRed
	default:
		return ColorGray
	}
}

// Icon returns the status glyph drawn before a finding.
func Icon(s Severity) string {
	switch s {
	case SeverityModerate, SeverityHigh:
		return "⚠"
	default:
		return "✓"
	}
}
