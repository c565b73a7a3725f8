package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/justchokingaround/yt-tui/internal/tui/components/filters"
	"github.com/justchokingaround/yt-tui/internal/view"
)

// handleKeyMsg routes a key press by input mode, then by active tab
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	if a.help.IsVisible() {
		switch msg.String() {
		case "?", "esc", "q":
			a.help.Hide()
		}
		return a, nil
	}

	switch a.mode {
	case modeSearch:
		return a, a.handleSearchModeKey(msg)
	case modeFilters:
		return a, a.handleFiltersModeKey(msg)
	}

	if a.engine.Tab() == view.TabSearch {
		if cmd, handled := a.handleSearchTabKey(msg); handled {
			return a, cmd
		}
	}

	return a.handleNormalKey(msg)
}

// handleSearchModeKey edits the local search text
func (a *App) handleSearchModeKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		a.setMode(modeNormal)
	case tea.KeyBackspace:
		a.engine.DeleteSearchRune()
	case tea.KeyCtrlU:
		a.engine.ClearSearch()
	case tea.KeySpace:
		a.engine.AppendSearchRune(' ')
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			a.engine.AppendSearchRune(r)
		}
	}
	return nil
}

func (a *App) handleFiltersModeKey(msg tea.KeyMsg) tea.Cmd {
	var (
		action filters.Action
		cmd    tea.Cmd
	)
	a.filters, action, cmd = a.filters.HandleKey(msg)

	switch action {
	case filters.ActionApply:
		criteria, err := a.filters.Criteria()
		if err != nil {
			return nil
		}
		return a.applyFilters(criteria)
	case filters.ActionCancel:
		a.setMode(modeNormal)
	case filters.ActionToggleHideWatched:
		a.engine.ToggleHideWatched()
	case filters.ActionCycleSort:
		a.engine.CycleSortMode()
		a.persistSortMode()
	}
	return cmd
}

// handleSearchTabKey sends typing to the platform query. The bool is false
// when the key should fall through to the common bindings.
func (a *App) handleSearchTabKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, a.keys.PlayResult) {
		return a.playSelected(), true
	}

	switch msg.Type {
	case tea.KeyEnter:
		return a.startSearch(), true
	case tea.KeyRunes, tea.KeySpace, tea.KeyBackspace, tea.KeyDelete,
		tea.KeyLeft, tea.KeyRight, tea.KeyHome, tea.KeyEnd, tea.KeyCtrlU, tea.KeyCtrlW:
		var cmd tea.Cmd
		a.searchBar, cmd = a.searchBar.Update(msg)
		return cmd, true
	}
	return nil, false
}

func (a *App) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Up):
		a.engine.MovePrevious()

	case key.Matches(msg, a.keys.Down):
		a.engine.MoveNext()

	case key.Matches(msg, a.keys.Play):
		return a, a.playSelected()

	case key.Matches(msg, a.keys.Search):
		a.setMode(modeSearch)

	case key.Matches(msg, a.keys.Filters):
		a.filters.Open(a.engine.Filters(), a.creators())
		a.setMode(modeFilters)

	case key.Matches(msg, a.keys.HideWatched):
		a.engine.ToggleHideWatched()
		if a.engine.HideWatched() {
			return a, a.setStatus("Hiding watched videos")
		}
		return a, a.setStatus("Showing watched videos")

	case key.Matches(msg, a.keys.Sort):
		a.engine.CycleSortMode()
		a.persistSortMode()
		return a, a.setStatus("Sort: " + a.engine.SortMode().String())

	case key.Matches(msg, a.keys.NextTab):
		return a, a.switchTab(a.engine.Tab().Next())

	case key.Matches(msg, a.keys.PrevTab):
		return a, a.switchTab(a.engine.Tab().Previous())

	case key.Matches(msg, a.keys.Primary):
		return a, a.switchTab(view.TabPrimary)

	case key.Matches(msg, a.keys.SearchTab):
		return a, a.switchTab(view.TabSearch)

	case key.Matches(msg, a.keys.HistoryTab):
		return a, a.switchTab(view.TabHistory)

	case key.Matches(msg, a.keys.Refresh):
		switch a.engine.Tab() {
		case view.TabPrimary:
			return a, a.refreshPrimary()
		case view.TabHistory:
			return a, a.loadHistory()
		case view.TabSearch:
			return a, a.startSearch()
		}

	case key.Matches(msg, a.keys.Copy):
		return a, a.copySelected()

	case key.Matches(msg, a.keys.Browser):
		return a, a.openSelected()

	case key.Matches(msg, a.keys.ScrollUp), key.Matches(msg, a.keys.ScrollDown):
		var cmd tea.Cmd
		a.detail, cmd = a.detail.Update(msg)
		return a, cmd

	case key.Matches(msg, a.keys.Help):
		a.help.Toggle()
	}

	return a, nil
}
