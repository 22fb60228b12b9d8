package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) viewAuth() string {
	var rows []string

	title := "Welcome back"
	subtitle := "Login to manage your tasks"
	if m.authMode == authSignup {
		title = "Create account"
		subtitle = "Join and start managing tasks"
	}
	rows = append(rows,
		lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(title),
		styleMuted().Render(subtitle),
		"",
	)

	field := func(label string, rendered string, focused bool) string {
		l := styleMuted().Render(label)
		if focused {
			l = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(label)
		}
		return l + "\n" + rendered
	}

	if m.authMode == authSignup {
		rows = append(rows, field("Full name", m.nameInput.View(), m.authFocus == authFocusName), "")
	}
	rows = append(rows, field("Email", m.emailInput.View(), m.authFocus == authFocusEmail), "")
	rows = append(rows, field("Password", m.passwordInput.View(), m.authFocus == authFocusPassword), "")

	if m.authMode == authSignup {
		role := roles()[m.roleIdx]
		sel := "◀ " + string(role) + " ▶"
		rows = append(rows, field("Role", sel, m.authFocus == authFocusRole), "")
	}

	if m.authErr != "" {
		rows = append(rows, styleError().Render(m.authErr), "")
	}

	submitLabel := "Login"
	switchLabel := "No account? Sign up"
	if m.authMode == authSignup {
		submitLabel = "Sign up"
		switchLabel = "Have an account? Login"
	}
	if m.authBusy {
		submitLabel = m.spin.View() + " Working…"
	}

	btn := func(label string, focused bool) string {
		st := lipgloss.NewStyle().Padding(0, 2).Background(colorControlBg).Foreground(colorSurfaceFg)
		if focused {
			st = st.Background(colorAccent).Foreground(colorAccentFg).Bold(true)
		}
		return st.Render(label)
	}
	rows = append(rows,
		lipgloss.JoinHorizontal(lipgloss.Top,
			btn(submitLabel, m.authFocus == authFocusSubmit),
			"  ",
			btn(switchLabel, m.authFocus == authFocusSwitch),
		),
		"",
		styleMuted().Render("tab: next field  enter: submit  ctrl+c: quit"),
	)

	card := lipgloss.NewStyle().
		Width(48).
		Padding(1, 3).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Render(strings.Join(rows, "\n"))

	if m.width == 0 {
		return card
	}
	return placeCentered(m.width, m.height, card)
}
