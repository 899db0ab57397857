// Package toggle renders the arrow button that opens and closes the settings
// panel.
package toggle

import "github.com/charmbracelet/lipgloss"

var (
	closedStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#1a1b26")).
			Background(lipgloss.Color("#7aa2f7")).
			Bold(true)
	openStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#c0caf5")).
			Background(lipgloss.Color("#283457")).
			Bold(true)
)

// Model is stateless; whether the panel is open is passed in by the owner.
type Model struct {
	OnClick func()
}

// New returns a toggle that calls onClick when activated.
func New(onClick func()) Model {
	return Model{OnClick: onClick}
}

// Click requests a toggle. It never decides the new state itself.
func (m Model) Click() {
	if m.OnClick != nil {
		m.OnClick()
	}
}

// View renders the button for the given state.
func (m Model) View(open bool) string {
	if open {
		return openStyle.Render("◀")
	}
	return closedStyle.Render("▶")
}

// Width is the rendered width in cells; it is the same in both states.
func (m Model) Width() int {
	return lipgloss.Width(m.View(false))
}
