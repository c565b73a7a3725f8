package list

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/justchokingaround/yt-tui/internal/media"
)

func makeItems(n int) []media.Item {
	items := make([]media.Item, n)
	for i := range items {
		items[i] = media.NewItem(
			fmt.Sprintf("id%d", i),
			fmt.Sprintf("Video %d", i),
			"Creator",
			"UC1",
			"",
			95*time.Second,
			time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
			"",
			1234,
		)
	}
	return items
}

func newList(height int) Model {
	m := New()
	m.SetSize(80, height)
	m.now = func() time.Time { return time.Date(2024, 1, 18, 12, 0, 0, 0, time.UTC) }
	return m
}

func TestVisibleCount(t *testing.T) {
	assert.Equal(t, 1, newList(4).VisibleCount())
	// 3 header/border rows + 3 items
	assert.Equal(t, 3, newList(21).VisibleCount())
	assert.Equal(t, 3, newList(26).VisibleCount())
	assert.Equal(t, 4, newList(27).VisibleCount())
}

func TestWindow(t *testing.T) {
	m := newList(21) // 3 visible

	tests := []struct {
		selected, n, start, end int
	}{
		{0, 0, 0, 0},
		{0, 2, 0, 2},
		{0, 10, 0, 3},
		{1, 10, 0, 3},
		{5, 10, 4, 7},
		{9, 10, 7, 10},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("sel%d_of_%d", tt.selected, tt.n), func(t *testing.T) {
			start, end := m.Window(tt.selected, tt.n)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestRowToIndex(t *testing.T) {
	m := newList(21)

	tests := []struct {
		name     string
		row      int
		selected int
		n        int
		idx      int
		ok       bool
	}{
		{"top border", 0, 0, 10, 0, false},
		{"title line", 1, 0, 10, 0, false},
		{"first item title", 2, 0, 10, 0, true},
		{"first item separator", 7, 0, 10, 0, true},
		{"second item", 8, 0, 10, 1, true},
		{"third item", 19, 0, 10, 2, true},
		{"bottom border", 20, 0, 10, 0, false},
		{"scrolled window", 2, 5, 10, 4, true},
		{"below the last item", 8, 0, 1, 0, false},
		{"empty list", 2, 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := m.RowToIndex(tt.row, tt.selected, tt.n)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.idx, idx)
			}
		})
	}
}

func TestView(t *testing.T) {
	m := newList(21)
	items := makeItems(5)

	out := m.View(items, 8, 1, func(id string) bool { return id == "id1" })

	assert.Contains(t, out, "Videos (5/8)")
	assert.Contains(t, out, "Video 0")
	assert.Contains(t, out, "Video 1 [WATCHED]")
	assert.Contains(t, out, "Creator: Creator")
	assert.Contains(t, out, "Duration: 01:35")
	assert.Contains(t, out, "Views: 1.2K")
	assert.Contains(t, out, "3 days ago")
	assert.Contains(t, out, "▌ ")
	assert.NotContains(t, out, "Video 3")
	assert.Equal(t, 21, len(strings.Split(out, "\n")))
}

func TestView_Empty(t *testing.T) {
	m := newList(21)
	out := m.View(nil, 12, 0, func(string) bool { return false })

	assert.Contains(t, out, "Videos (0/12)")
	assert.Contains(t, out, "No videos to display")
}
