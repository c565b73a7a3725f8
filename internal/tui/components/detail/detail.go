package detail

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/justchokingaround/yt-tui/internal/media"
	"github.com/justchokingaround/yt-tui/internal/tui/format"
	"github.com/justchokingaround/yt-tui/internal/tui/styles"
)

// Model shows the selected item's metadata and its description rendered as markdown
type Model struct {
	viewport viewport.Model
	style    string
	renderer *glamour.TermRenderer

	item    media.Item
	hasItem bool
	watched bool

	width  int
	height int
}

// New creates a detail pane. style is a glamour standard style name.
func New(style string) Model {
	return Model{
		viewport: viewport.New(0, 0),
		style:    style,
	}
}

// SetSize sets the outer size of the pane
func (m *Model) SetSize(width, height int) {
	if width == m.width && height == m.height {
		return
	}
	m.width = width
	m.height = height
	m.viewport.Width = max(width-4, 0)
	m.viewport.Height = max(height-2, 0)
	m.renderer = nil
	m.render()
}

// SetItem shows item, or an empty pane when ok is false.
// Rendering only happens when the item or its watched state changed.
func (m *Model) SetItem(item media.Item, ok, watched bool) {
	if ok == m.hasItem && item.ID == m.item.ID && watched == m.watched {
		return
	}
	m.item = item
	m.hasItem = ok
	m.watched = watched
	m.render()
	m.viewport.GotoTop()
}

// Update scrolls the pane
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the pane
func (m Model) View() string {
	style := styles.PanelStyle
	if m.width > 2 {
		style = style.Width(m.width - 2)
	}
	if m.height > 2 {
		style = style.Height(m.height - 2)
	}
	return style.Render(m.viewport.View())
}

func (m *Model) render() {
	if !m.hasItem {
		m.viewport.SetContent(styles.HelpStyle.Render("Nothing selected"))
		return
	}

	width := max(m.viewport.Width, 20)
	item := m.item

	var b strings.Builder
	for _, line := range format.WrapText(item.Title, width) {
		b.WriteString(styles.ItemTitleStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString(styles.CreatorStyle.Render(item.Creator))
	b.WriteString("\n")
	b.WriteString(styles.ViewsStyle.Render(format.ViewsLong(item.ViewCount)))
	b.WriteString(styles.HelpStyle.Render(" • "))
	b.WriteString(styles.DurationStyle.Render(format.Duration(item.Duration)))
	b.WriteString(styles.HelpStyle.Render(" • "))
	b.WriteString(styles.DateStyle.Render(format.Date(item.PublishedAt)))
	if m.watched {
		b.WriteString(styles.WatchedBadgeStyle.Render(" [WATCHED]"))
	}
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render(format.Truncate(item.URL, width)))
	b.WriteString("\n")

	b.WriteString(m.renderDescription(item.Description, width))
	m.viewport.SetContent(b.String())
}

func (m *Model) renderDescription(description string, width int) string {
	if strings.TrimSpace(description) == "" {
		return "\n" + styles.HelpStyle.Render("No description")
	}

	if m.renderer == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(m.style),
			glamour.WithWordWrap(width),
		)
		if err == nil {
			m.renderer = r
		}
	}

	if m.renderer != nil {
		if out, err := m.renderer.Render(description); err == nil {
			return out
		}
	}

	// plain fallback when glamour can't render
	var b strings.Builder
	for _, paragraph := range strings.Split(description, "\n") {
		b.WriteString("\n")
		b.WriteString(strings.Join(format.WrapText(paragraph, width), "\n"))
	}
	return b.String()
}
