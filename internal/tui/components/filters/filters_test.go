package filters

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justchokingaround/yt-tui/internal/media"
	"github.com/justchokingaround/yt-tui/internal/view"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, Action) {
	t.Helper()
	m, action, _ := m.HandleKey(msg)
	return m, action
}

func newEditor() Model {
	m := New()
	m.SetWidth(100)
	return m
}

func TestOpenLoadsCriteria(t *testing.T) {
	m := newEditor()
	m.Open(media.FilterCriteria{
		Creator:     "Gopher",
		MinDuration: media.Seconds(60),
		AfterDate:   "2024-01-01T00:00:00Z",
	}, nil)

	criteria, err := m.Criteria()
	require.NoError(t, err)
	assert.Equal(t, "Gopher", criteria.Creator)
	require.NotNil(t, criteria.MinDuration)
	assert.Equal(t, time.Minute, *criteria.MinDuration)
	assert.Nil(t, criteria.MaxDuration)
	assert.Equal(t, "2024-01-01T00:00:00Z", criteria.AfterDate)
	assert.Equal(t, FieldChannel, m.Focused())
}

func TestEditAndApply(t *testing.T) {
	m := newEditor()
	m.Open(media.FilterCriteria{}, nil)

	m, _ = press(t, m, runes("tech"))
	m, _ = press(t, m, key(tea.KeyDown))
	m, _ = press(t, m, runes("5m"))
	m, _ = press(t, m, key(tea.KeyDown))
	m, _ = press(t, m, runes("3600"))

	m, action := press(t, m, key(tea.KeyEnter))
	assert.Equal(t, ActionApply, action)

	criteria, err := m.Criteria()
	require.NoError(t, err)
	assert.Equal(t, "tech", criteria.Creator)
	assert.Equal(t, 5*time.Minute, *criteria.MinDuration)
	assert.Equal(t, time.Hour, *criteria.MaxDuration)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		value string
	}{
		{"bad min", FieldMinDuration, "soon"},
		{"negative max", FieldMaxDuration, "-5m"},
		{"bad date", FieldAfterDate, "yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newEditor()
			m.Open(media.FilterCriteria{}, nil)
			for m.Focused() != tt.field {
				m, _ = press(t, m, key(tea.KeyDown))
			}
			m, _ = press(t, m, runes(tt.value))

			m, action := press(t, m, key(tea.KeyEnter))
			assert.Equal(t, ActionNone, action)
			assert.Error(t, m.Err())
		})
	}
}

func TestMinGreaterThanMax(t *testing.T) {
	m := newEditor()
	m.Open(media.FilterCriteria{MinDuration: media.Seconds(600), MaxDuration: media.Seconds(60)}, nil)

	_, err := m.Criteria()
	assert.Error(t, err)
}

func TestToggleRows(t *testing.T) {
	m := newEditor()
	m.Open(media.FilterCriteria{}, nil)

	// wraps upward from the first field to sort
	m, _ = press(t, m, key(tea.KeyUp))
	assert.Equal(t, FieldSort, m.Focused())

	m, action := press(t, m, runes("s"))
	assert.Equal(t, ActionCycleSort, action)

	m, _ = press(t, m, key(tea.KeyUp))
	assert.Equal(t, FieldHideWatched, m.Focused())

	_, action = press(t, m, key(tea.KeySpace))
	assert.Equal(t, ActionToggleHideWatched, action)
}

func TestCancel(t *testing.T) {
	m := newEditor()
	m.Open(media.FilterCriteria{}, nil)

	_, action := press(t, m, key(tea.KeyEsc))
	assert.Equal(t, ActionCancel, action)
}

func TestChannelSuggestions(t *testing.T) {
	m := newEditor()
	m.Open(media.FilterCriteria{}, []string{"Gopher Academy", "Rust Nation", "Gopher Academy", "Go Time", ""})

	m, _ = press(t, m, runes("gac"))
	require.NotEmpty(t, m.Suggestions())
	assert.Equal(t, "Gopher Academy", m.Suggestions()[0])
	assert.Contains(t, m.View(true, media.FilterCriteria{}, false, view.SortNewest), "suggestions")

	// tab completes the top suggestion, then moves on
	m, _ = press(t, m, key(tea.KeyTab))
	criteria, err := m.Criteria()
	require.NoError(t, err)
	assert.Equal(t, "Gopher Academy", criteria.Creator)
	assert.Equal(t, FieldChannel, m.Focused())

	m, _ = press(t, m, key(tea.KeyTab))
	assert.Equal(t, FieldMinDuration, m.Focused())
}

func TestSummaryView(t *testing.T) {
	m := newEditor()

	out := m.View(false, media.FilterCriteria{}, false, view.SortViews)
	assert.Contains(t, out, "No filters active")
	assert.Contains(t, out, "Hide Watched: No")
	assert.Contains(t, out, "Sort: Views (highest)")

	out = m.View(false, media.FilterCriteria{Creator: "Go", MaxDuration: media.Seconds(300)}, true, view.SortNewest)
	assert.Contains(t, out, "Channel: Go")
	assert.Contains(t, out, "Duration: 0s - 300s")
	assert.Contains(t, out, "Hide Watched: Yes")
}

func TestEditorView(t *testing.T) {
	m := newEditor()
	m.Open(media.FilterCriteria{Creator: "Go"}, nil)

	out := m.View(true, media.FilterCriteria{}, true, view.SortCreator)
	for _, label := range []string{"Channel:", "Min duration:", "Max duration:", "After date:", "Hide watched:", "Sort:"} {
		assert.Contains(t, out, label)
	}
	assert.Contains(t, out, "Creator (A-Z)")
	assert.Contains(t, out, "enter apply")
}
