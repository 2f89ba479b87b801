package menu

import (
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/crnr/cronrunner/internal/constants"
)

// Styles holds the terminal styling used by menus and error output.
type Styles struct {
	// Highlight marks job numbers and the shell prompt. Bright green.
	Highlight lipgloss.Style
	// Attenuate de-emphasizes schedules and described commands. Grey.
	Attenuate lipgloss.Style
	// Title renders section headers. Bold and underlined.
	Title lipgloss.Style
	// Error renders failure messages. Bright red.
	Error lipgloss.Style
}

// DefaultStyles returns the colored styles.
func DefaultStyles() Styles {
	return Styles{
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Attenuate: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Title:     lipgloss.NewStyle().Bold(true).Underline(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// PlainStyles returns pass-through styles that add no escape codes.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{Highlight: plain, Attenuate: plain, Title: plain, Error: plain}
}

// StylesFor picks styles based on an explicit no-color request or the
// NO_COLOR environment variable.
func StylesFor(noColor bool) Styles {
	if noColor || NoColorRequested() {
		return PlainStyles()
	}
	return DefaultStyles()
}

// NoColorRequested reports whether NO_COLOR is set and non-empty.
func NoColorRequested() bool {
	return os.Getenv(constants.EnvNoColor) != ""
}
