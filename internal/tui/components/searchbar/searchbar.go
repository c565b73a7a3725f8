package searchbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justchokingaround/yt-tui/internal/tui/format"
	"github.com/justchokingaround/yt-tui/internal/tui/styles"
)

// Height is the number of terminal rows the bar occupies
const Height = 3

// Model renders the local search text and owns the platform search query.
// The local search text lives in the view engine; the bar only displays it.
type Model struct {
	query textinput.Model
	width int
}

// New creates a search bar
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "type a query, enter to search"
	ti.Prompt = ""
	ti.CharLimit = 200
	ti.Cursor.SetMode(cursor.CursorStatic)

	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.OxocarbonBase05)
	ti.PlaceholderStyle = styles.HelpStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.OxocarbonPurple)
	ti.Focus()

	return Model{query: ti}
}

// SetWidth sets the outer width of the bar
func (m *Model) SetWidth(width int) {
	m.width = width
	if width > 20 {
		m.query.Width = width - 16
	}
}

// Query returns the platform search query
func (m Model) Query() string {
	return strings.TrimSpace(m.query.Value())
}

// SetQuery replaces the platform search query
func (m *Model) SetQuery(query string) {
	m.query.SetValue(query)
	m.query.CursorEnd()
}

// Update forwards key input to the platform query
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	return m, cmd
}

// View renders the bar. localText is the engine's search text, typing marks
// the bar as receiving input and searchTab switches it to the platform query.
func (m Model) View(localText string, typing, searchTab bool) string {
	active := typing || searchTab

	prompt := "Search (press '/'): "
	if active {
		prompt = "Search: "
	}

	if m.width > 0 {
		localText = format.Truncate(localText, m.width-len(prompt)-6)
	}

	var content string
	switch {
	case searchTab:
		content = m.query.View()
	case typing:
		content = styles.ValueStyle.Render(localText) + styles.GutterStyle.Render("_")
	default:
		content = styles.OffStyle.Render(localText)
	}

	style := styles.PanelStyle
	if active {
		style = styles.ActivePanelStyle
	}
	if m.width > 2 {
		style = style.Width(m.width - 2)
	}

	return style.Render(styles.LabelStyle.Render(prompt) + content)
}
