package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func modalWidth(screenWidth int) int {
	w := screenWidth - 8
	if w > 72 {
		w = 72
	}
	if w < 40 {
		w = 40
	}
	return w
}

func modalBodyWidth(screenWidth int) int {
	// Box padding eats two cells on each side.
	return modalWidth(screenWidth) - 4
}

// renderModalBox draws a titled box on the modal surface. Borders are
// avoided around nested components: some terminals show background
// artifacts when bordered content sits on a background color.
func renderModalBox(screenWidth int, title string, content string) string {
	w := modalWidth(screenWidth)
	bodyW := modalBodyWidth(screenWidth)

	header := lipgloss.NewStyle().
		Width(bodyW).
		Padding(0, 2).
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Render(title)

	body := lipgloss.NewStyle().
		Width(bodyW).
		Padding(1, 2).
		Foreground(colorSurfaceFg).
		Background(colorSurfaceBg).
		Render(content)

	return lipgloss.NewStyle().
		Width(w).
		Background(colorSurfaceBg).
		Render(strings.Join([]string{header, body}, "\n"))
}

func placeCentered(width, height int, s string) string {
	// If the modal fills the screen, Place naturally has no padding.
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s)
}
