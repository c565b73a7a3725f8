package tabs

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/justchokingaround/yt-tui/internal/tui/styles"
	"github.com/justchokingaround/yt-tui/internal/view"
)

const (
	// Height is the number of terminal rows the tab bar occupies
	Height = 3

	separator = " | "
	// border plus left padding
	leftInset = 2
)

// Model renders the tab bar and maps clicks back to tabs
type Model struct {
	width int
}

// New creates a tab bar
func New() Model {
	return Model{}
}

// SetWidth sets the outer width of the bar
func (m *Model) SetWidth(width int) {
	m.width = width
}

func label(tab view.Tab, active bool) string {
	if active {
		return "▶ " + tab.String() + " ◀"
	}
	return "  " + tab.String() + "  "
}

// View renders every tab, highlighting active
func (m Model) View(active view.Tab) string {
	var b strings.Builder
	for i, tab := range view.Tabs {
		if i > 0 {
			b.WriteString(styles.TabSeparatorStyle.Render(separator))
		}
		if tab == active {
			b.WriteString(styles.ActiveTabStyle.Render(label(tab, true)))
		} else {
			b.WriteString(styles.TabStyle.Render(label(tab, false)))
		}
	}

	style := styles.PanelStyle
	if m.width > 2 {
		style = style.Width(m.width - 2)
	}
	return style.Render(b.String())
}

// TabAt returns the tab whose label covers column x of the bar
func (m Model) TabAt(x int) (view.Tab, bool) {
	pos := leftInset
	sepWidth := runewidth.StringWidth(separator)

	for i, tab := range view.Tabs {
		if i > 0 {
			pos += sepWidth
		}
		// active and inactive labels have the same width
		w := runewidth.StringWidth(label(tab, false))
		if x >= pos && x < pos+w {
			return tab, true
		}
		pos += w
	}
	return 0, false
}
