package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/justchokingaround/yt-tui/internal/media"
	"github.com/justchokingaround/yt-tui/internal/view"
)

// refreshPrimary dispatches a primary feed fetch unless one is running
func (a *App) refreshPrimary() tea.Cmd {
	if a.primaryPending || a.source == nil {
		return nil
	}
	a.primaryPending = true
	a.setStickyStatus("Fetching recommended videos...")

	requestID := uuid.NewString()
	ctx, source, limit := a.ctx, a.source, a.maxResults
	a.logger.Debug("fetching primary feed", "request_id", requestID, "limit", limit)

	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		items, err := source.FetchPrimary(ctx, limit)
		return primaryLoadedMsg{requestID: requestID, items: items, err: err}
	})
}

// startSearch dispatches a platform search for the query in the search bar.
// Only one search runs at a time.
func (a *App) startSearch() tea.Cmd {
	query := a.searchBar.Query()
	if query == "" || a.source == nil {
		return nil
	}
	if a.searchPending {
		return a.setStatus("A search is already running")
	}
	a.searchPending = true
	a.setStickyStatus("Searching YouTube...")

	requestID := uuid.NewString()
	ctx, source, limit := a.ctx, a.source, a.maxResults
	a.logger.Debug("searching", "request_id", requestID, "query", query)

	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		items, err := source.Search(ctx, query, limit)
		return searchResultMsg{requestID: requestID, query: query, items: items, err: err}
	})
}

// loadHistory fetches the watched items for the history tab
func (a *App) loadHistory() tea.Cmd {
	if a.historyPending || a.source == nil || a.history == nil {
		return nil
	}

	ids := a.history.WatchedIDs(maxHistoryItems)
	if len(ids) == 0 {
		a.engine.SetListContents(view.TabHistory, nil)
		return a.setStatus("No watch history")
	}

	a.historyPending = true
	a.setStickyStatus("Loading watch history...")

	requestID := uuid.NewString()
	ctx, source, history := a.ctx, a.source, a.history
	a.logger.Debug("loading history", "request_id", requestID, "ids", len(ids))

	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		items, err := source.FetchByIDs(ctx, ids)
		if err != nil {
			return historyLoadedMsg{requestID: requestID, err: err}
		}
		return historyLoadedMsg{requestID: requestID, items: history.OrderByWatched(items)}
	})
}

func (a *App) handlePrimaryLoaded(msg primaryLoadedMsg) tea.Cmd {
	a.primaryPending = false
	if msg.err != nil {
		a.logger.Error("failed to fetch primary feed", "request_id", msg.requestID, "error", msg.err)
		return a.setStatus(fmt.Sprintf("Failed to fetch videos: %v", msg.err))
	}

	a.logger.Info("primary feed loaded", "request_id", msg.requestID, "count", len(msg.items))
	a.engine.SetPrimary(msg.items)
	return a.setStatus(fmt.Sprintf("Loaded %d videos", len(msg.items)))
}

func (a *App) handleSearchResult(msg searchResultMsg) tea.Cmd {
	a.searchPending = false
	if msg.err != nil {
		a.logger.Error("search failed", "request_id", msg.requestID, "query", msg.query, "error", msg.err)
		return a.setStatus(fmt.Sprintf("Search failed: %v", msg.err))
	}

	a.logger.Info("search finished", "request_id", msg.requestID, "query", msg.query, "count", len(msg.items))
	a.engine.SetListContents(view.TabSearch, msg.items)
	return a.setStatus(fmt.Sprintf("Found %d videos", len(msg.items)))
}

func (a *App) handleHistoryLoaded(msg historyLoadedMsg) tea.Cmd {
	a.historyPending = false
	if msg.err != nil {
		a.logger.Error("failed to load history", "request_id", msg.requestID, "error", msg.err)
		return a.setStatus(fmt.Sprintf("Failed to load history: %v", msg.err))
	}

	a.logger.Info("history loaded", "request_id", msg.requestID, "count", len(msg.items))
	a.engine.SetListContents(view.TabHistory, msg.items)
	return a.setStatus(fmt.Sprintf("Loaded %d watched videos", len(msg.items)))
}

// playSelected launches the player for the selected item and marks it
// watched. A failed launch marks nothing.
func (a *App) playSelected() tea.Cmd {
	item, ok := a.engine.Current()
	if !ok {
		return nil
	}
	if a.player == nil {
		return a.setStatus("No player configured")
	}

	if err := a.player.Play(a.ctx, item.URL); err != nil {
		a.logger.Error("failed to start player", "id", item.ID, "error", err)
		return a.setStatus(fmt.Sprintf("Failed to open video: %v", err))
	}

	played, _, err := a.engine.MarkCurrentWatched()
	if err != nil {
		a.logger.Error("failed to save history", "id", played.ID, "error", err)
		return a.setStatus(fmt.Sprintf("Failed to save history: %v", err))
	}

	a.logger.Info("playing", "id", played.ID, "title", played.Title)
	return a.setStatus("Opened: " + played.Title)
}

func (a *App) copySelected() tea.Cmd {
	item, ok := a.engine.Current()
	if !ok || a.clipboard == nil {
		return nil
	}
	return a.clipboard.Write(item.URL)
}

func (a *App) openSelected() tea.Cmd {
	item, ok := a.engine.Current()
	if !ok {
		return nil
	}
	if err := a.openURL(item.URL); err != nil {
		a.logger.Error("failed to open browser", "url", item.URL, "error", err)
		return a.setStatus(fmt.Sprintf("Failed to open browser: %v", err))
	}
	return a.setStatus("Opened in browser: " + item.URL)
}

// switchTab activates tab and starts whatever fetch it needs
func (a *App) switchTab(tab view.Tab) tea.Cmd {
	a.engine.SwitchTab(tab)

	switch tab {
	case view.TabSearch:
		if len(a.engine.List(view.TabSearch)) == 0 && a.searchBar.Query() != "" && !a.searchPending {
			return a.startSearch()
		}
	case view.TabHistory:
		if len(a.engine.List(view.TabHistory)) == 0 {
			return a.loadHistory()
		}
	}
	return nil
}

// creators returns the creator names of the primary items
func (a *App) creators() []string {
	primary := a.engine.Primary()
	names := make([]string, 0, len(primary))
	for _, item := range primary {
		names = append(names, item.Creator)
	}
	return names
}

func (a *App) applyFilters(criteria media.FilterCriteria) tea.Cmd {
	a.engine.SetFilters(criteria)
	a.setMode(modeNormal)
	if criteria.IsEmpty() {
		return a.setStatus("Filters cleared")
	}
	return a.setStatus(fmt.Sprintf("Filters applied: %d of %d videos", len(a.engine.Derived()), len(a.engine.Primary())))
}
