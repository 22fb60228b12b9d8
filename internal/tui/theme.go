package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"taskdeck-cli/internal/model"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds,
// so the palette uses lipgloss.AdaptiveColor and only applies "faint"
// styling on dark backgrounds (faint text on light terminals often becomes
// illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted lipgloss.TerminalColor = ac("240", "243")

	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")

	colorSurfaceBg lipgloss.TerminalColor = ac("255", "235")
	colorSurfaceFg lipgloss.TerminalColor = ac("235", "252")
	colorControlBg lipgloss.TerminalColor = ac("252", "235")
	colorInputBg   lipgloss.TerminalColor = ac("254", "234")

	colorAccent   lipgloss.TerminalColor = ac("27", "62") // blue
	colorAccentFg lipgloss.TerminalColor = ac("255", "235")

	colorError lipgloss.TerminalColor = ac("160", "203")

	// Badge colors track the original app's scheme: red/amber/green for
	// status, gray/blue/purple for priority.
	colorStatusTodo       lipgloss.TerminalColor = ac("160", "203")
	colorStatusInProgress lipgloss.TerminalColor = ac("172", "214")
	colorStatusCompleted  lipgloss.TerminalColor = ac("28", "78")

	colorPriorityLow    lipgloss.TerminalColor = ac("245", "246")
	colorPriorityMedium lipgloss.TerminalColor = ac("27", "75")
	colorPriorityHigh   lipgloss.TerminalColor = ac("90", "170")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError)
}

func statusColor(s model.TaskStatus) lipgloss.TerminalColor {
	switch s {
	case model.StatusInProgress:
		return colorStatusInProgress
	case model.StatusCompleted:
		return colorStatusCompleted
	default:
		return colorStatusTodo
	}
}

func priorityColor(p model.TaskPriority) lipgloss.TerminalColor {
	switch p {
	case model.PriorityMedium:
		return colorPriorityMedium
	case model.PriorityHigh:
		return colorPriorityHigh
	default:
		return colorPriorityLow
	}
}

func statusBadge(s model.TaskStatus) string {
	label := strings.ReplaceAll(string(s), "-", " ")
	return lipgloss.NewStyle().Foreground(statusColor(s)).Bold(true).Render(label)
}

func priorityBadge(p model.TaskPriority) string {
	return lipgloss.NewStyle().Foreground(priorityColor(p)).Bold(true).Render(string(p))
}

// applyColorProfilePreference sets Lip Gloss's color profile for the
// interactive TUI. termenv.EnvColorProfile respects CLICOLOR, which can
// accidentally disable colors in a TUI, so only NO_COLOR is honored here and
// the terminal's capabilities decide the rest.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	}
	lipgloss.SetColorProfile(profile)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
