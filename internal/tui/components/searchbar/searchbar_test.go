package searchbar

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestQueryEditing(t *testing.T) {
	m := New()
	m.SetWidth(80)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("lofi beats")})
	assert.Equal(t, "lofi beats", m.Query())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "lofi beat", m.Query())

	m.SetQuery("  jazz  ")
	assert.Equal(t, "jazz", m.Query())
}

func TestView(t *testing.T) {
	m := New()
	m.SetWidth(80)

	idle := m.View("cats", false, false)
	assert.Contains(t, idle, "Search (press '/'):")
	assert.Contains(t, idle, "cats")

	typing := m.View("cats", true, false)
	assert.Contains(t, typing, "Search:")
	assert.Contains(t, typing, "cats")
	assert.Contains(t, typing, "_")

	m.SetQuery("platform query")
	onTab := m.View("cats", false, true)
	assert.Contains(t, onTab, "platform query")
	assert.NotContains(t, onTab, "cats")
}
