// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the launcher.
package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Brand Colors.
var (
	Ember  = lipgloss.Color("#F97316")
	Slate  = lipgloss.Color("#667085")
	Sky    = lipgloss.Color("#38BDF8")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Bullet  = "-"
	Stop    = "■"
)

// Styles are the report text styles bound to one renderer.
type Styles struct {
	Heading lipgloss.Style
	Muted   lipgloss.Style
	Link    lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style
	Warning lipgloss.Style
	Hint    lipgloss.Style
}

// NewStyles builds the report styles for r, so colours follow r's profile.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Heading: r.NewStyle().Bold(true).Foreground(Ember),
		Muted:   r.NewStyle().Foreground(Slate),
		Link:    r.NewStyle().Foreground(Sky),
		Success: r.NewStyle().Foreground(Green),
		Failure: r.NewStyle().Bold(true).Foreground(Red),
		Warning: r.NewStyle().Foreground(Yellow),
		Hint:    r.NewStyle().Italic(true).Foreground(Slate),
	}
}

// Rule returns a horizontal separator of width repetitions of ch.
func Rule(ch string, width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat(ch, width)
}
