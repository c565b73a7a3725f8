package help

import (
	bubbleshelp "github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/justchokingaround/yt-tui/internal/tui/styles"
)

// Model renders key bindings as a one-line hint or a full overlay panel
type Model struct {
	help    bubbleshelp.Model
	visible bool
	width   int
	height  int
}

// New creates a new help model
func New() Model {
	h := bubbleshelp.New()
	h.ShortSeparator = " • "
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(styles.OxocarbonPurple)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(styles.OxocarbonBase04)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(styles.OxocarbonBase02)
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(styles.OxocarbonPurple).Bold(true)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(styles.OxocarbonBase05)
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(styles.OxocarbonBase02)
	return Model{help: h}
}

// SetSize sets the area the overlay is centered in
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
}

// Toggle toggles the visibility of the help panel
func (m *Model) Toggle() {
	m.visible = !m.visible
}

// Hide hides the help panel
func (m *Model) Hide() {
	m.visible = false
}

// IsVisible returns whether the help panel is visible
func (m Model) IsVisible() bool {
	return m.visible
}

// ShortView renders the one-line hint
func (m Model) ShortView(keys bubbleshelp.KeyMap) string {
	return m.help.ShortHelpView(keys.ShortHelp())
}

// View renders the full panel centered in the configured area
func (m Model) View(keys bubbleshelp.KeyMap) string {
	title := styles.TitleStyle.Render("KEYBOARD SHORTCUTS")
	body := m.help.FullHelpView(keys.FullHelp())
	hint := styles.HelpStyle.Render("? or esc to close")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OxocarbonPurple).
		Padding(0, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", hint))

	if m.width == 0 || m.height == 0 || lipgloss.Height(box) >= m.height {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
