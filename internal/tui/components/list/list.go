package list

import (
	"fmt"
	"strings"
	"time"

	"github.com/justchokingaround/yt-tui/internal/media"
	"github.com/justchokingaround/yt-tui/internal/tui/format"
	"github.com/justchokingaround/yt-tui/internal/tui/styles"
)

const (
	// LinesPerItem is title, creator, duration, upload date, views and a separator
	LinesPerItem = 6

	// top border plus the title line
	headerRows = 2
	// left border, left padding and the selection gutter
	insetColumns = 4
)

// Model renders a windowed item list centered on the selection
type Model struct {
	width  int
	height int
	now    func() time.Time
}

// New creates a list
func New() Model {
	return Model{now: time.Now}
}

// SetSize sets the outer size of the list panel
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Width returns the outer width
func (m Model) Width() int {
	return m.width
}

// VisibleCount returns how many items fit in the panel
func (m Model) VisibleCount() int {
	return max((m.height-headerRows-1)/LinesPerItem, 1)
}

// Window returns the half-open range of item indexes on screen, keeping the
// selection centered where possible
func (m Model) Window(selected, n int) (start, end int) {
	visible := m.VisibleCount()
	start = max(selected-visible/2, 0)
	start = min(start, max(n-visible, 0))
	end = min(start+visible, n)
	return start, end
}

// RowToIndex maps a row inside the panel (0 is the top border) to the item
// drawn there
func (m Model) RowToIndex(row, selected, n int) (int, bool) {
	if row < headerRows || row >= m.height-1 {
		return 0, false
	}
	start, end := m.Window(selected, n)
	idx := start + (row-headerRows)/LinesPerItem
	if idx >= end {
		return 0, false
	}
	return idx, true
}

// View renders items with the one at selected highlighted. total is the size
// of the unfiltered collection shown in the title.
func (m Model) View(items []media.Item, total, selected int, watched func(id string) bool) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("Videos (%d/%d)", len(items), total)))

	if len(items) == 0 {
		b.WriteString("\n")
		b.WriteString(styles.HelpStyle.Render("No videos to display"))
	}

	textWidth := max(m.width-insetColumns-2, 10)
	start, end := m.Window(selected, len(items))
	now := m.now()

	for i := start; i < end; i++ {
		b.WriteString("\n")
		b.WriteString(m.renderItem(items[i], i == selected, watched(items[i].ID), textWidth, now))
	}

	style := styles.PanelStyle
	if m.width > 2 {
		style = style.Width(m.width - 2)
	}
	if m.height > 2 {
		style = style.Height(m.height - 2)
	}
	return style.Render(b.String())
}

func (m Model) renderItem(item media.Item, selected, watched bool, width int, now time.Time) string {
	gutter := "  "
	titleStyle := styles.ItemTitleStyle
	sepStyle := styles.SeparatorStyle
	if selected {
		gutter = styles.GutterStyle.Render("▌ ")
		titleStyle = styles.SelectedItemTitleStyle
		sepStyle = styles.SelectedSeparatorStyle
	}

	badge := ""
	titleWidth := width
	if watched {
		badge = styles.WatchedBadgeStyle.Render(" [WATCHED]")
		titleWidth -= len(" [WATCHED]")
	}

	uploaded := format.Date(item.PublishedAt)
	if rel := format.Relative(item.PublishedAt, now); rel != "" {
		uploaded += " (" + rel + ")"
	}

	lines := []string{
		titleStyle.Render(format.Truncate(item.Title, titleWidth)) + badge,
		styles.CreatorStyle.Render(format.Truncate("Creator: "+item.Creator, width)),
		styles.DurationStyle.Render("Duration: " + format.Duration(item.Duration)),
		styles.DateStyle.Render(format.Truncate("Uploaded: "+uploaded, width)),
		styles.ViewsStyle.Render("Views: " + format.Views(item.ViewCount)),
		sepStyle.Render(strings.Repeat("─", width)),
	}

	for i := range lines {
		lines[i] = gutter + lines[i]
	}
	return strings.Join(lines, "\n")
}
