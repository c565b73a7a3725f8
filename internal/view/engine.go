// Package view derives the ordered, indexable item lists the dashboard renders.
//
// An Engine owns the primary feed, the search and history lists, and the
// transient UI state that shapes them (search text, filters, sort mode,
// hide-watched flag, active tab). Every transition runs synchronously and
// leaves the selection index valid for the active list. An Engine is not safe
// for concurrent use; the UI event loop is its only caller.
package view

import (
	"unicode/utf8"

	"github.com/justchokingaround/yt-tui/internal/media"
)

// WatchHistory is the watched-state collaborator the engine reads and signals
type WatchHistory interface {
	IsWatched(id string) bool
	MarkWatched(id string) error
}

// Engine holds the view state and derives the visible lists
type Engine struct {
	history WatchHistory

	primary       []media.Item
	derived       []media.Item
	searchResults []media.Item
	historyItems  []media.Item

	selected    int
	tab         Tab
	searchText  string
	sortMode    SortMode
	hideWatched bool
	filters     media.FilterCriteria
}

// New creates an empty engine on the primary tab
func New(history WatchHistory, hideWatched bool) *Engine {
	return &Engine{
		history:     history,
		tab:         TabPrimary,
		sortMode:    SortNewest,
		hideWatched: hideWatched,
	}
}

// Recompute rebuilds the derived list from the primary items.
// It only runs while the primary tab is active; on other tabs the derived
// list is left exactly as it was.
func (e *Engine) Recompute() {
	if e.tab != TabPrimary {
		return
	}

	filtered := applyPipeline(e.primary, e.buildPipeline())
	sortItems(filtered, e.sortMode)

	e.derived = filtered
	e.selected = clampIndex(e.selected, len(e.derived))
}

// SetPrimary replaces the primary items wholesale
func (e *Engine) SetPrimary(items []media.Item) {
	e.primary = append([]media.Item(nil), items...)
	e.Recompute()
}

// SetListContents replaces the list backing tab and resets the selection.
// The primary tab is routed through SetPrimary.
func (e *Engine) SetListContents(tab Tab, items []media.Item) {
	switch tab {
	case TabPrimary:
		e.SetPrimary(items)
		return
	case TabSearch:
		e.searchResults = append([]media.Item(nil), items...)
	case TabHistory:
		e.historyItems = append([]media.Item(nil), items...)
	default:
		return
	}
	e.selected = 0
}

// SetSearchText replaces the free-text search
func (e *Engine) SetSearchText(text string) {
	e.searchText = text
	e.Recompute()
}

// AppendSearchRune adds one character to the search text
func (e *Engine) AppendSearchRune(r rune) {
	e.searchText += string(r)
	e.Recompute()
}

// DeleteSearchRune removes the last character of the search text
func (e *Engine) DeleteSearchRune() {
	if e.searchText == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(e.searchText)
	e.searchText = e.searchText[:len(e.searchText)-size]
	e.Recompute()
}

// ClearSearch empties the search text
func (e *Engine) ClearSearch() {
	e.SetSearchText("")
}

// SetFilters replaces the filter criteria
func (e *Engine) SetFilters(filters media.FilterCriteria) {
	e.filters = filters
	e.Recompute()
}

// ToggleHideWatched flips the hide-watched flag
func (e *Engine) ToggleHideWatched() {
	e.SetHideWatched(!e.hideWatched)
}

// SetHideWatched sets the hide-watched flag
func (e *Engine) SetHideWatched(hide bool) {
	e.hideWatched = hide
	e.Recompute()
}

// CycleSortMode advances to the next sort mode
func (e *Engine) CycleSortMode() {
	e.SetSortMode(e.sortMode.Next())
}

// SetSortMode sets the sort mode directly
func (e *Engine) SetSortMode(mode SortMode) {
	e.sortMode = mode
	e.Recompute()
}

// SwitchTab activates tab and resets the selection to the top.
// Returning to the primary tab recomputes so the derived list reflects any
// primary refresh that arrived while another tab was active.
func (e *Engine) SwitchTab(tab Tab) {
	if !tab.Valid() {
		return
	}
	e.tab = tab
	e.selected = 0
	e.Recompute()
}

// MoveNext moves the selection down, wrapping to the top
func (e *Engine) MoveNext() {
	n := len(e.ActiveList())
	if n == 0 {
		return
	}
	e.selected = (e.selected + 1) % n
}

// MovePrevious moves the selection up, wrapping to the bottom
func (e *Engine) MovePrevious() {
	n := len(e.ActiveList())
	if n == 0 {
		return
	}
	if e.selected == 0 {
		e.selected = n - 1
		return
	}
	e.selected--
}

// Select moves the selection to index i of the active list.
// Out of range indices are ignored.
func (e *Engine) Select(i int) bool {
	if i < 0 || i >= len(e.ActiveList()) {
		return false
	}
	e.selected = i
	return true
}

// Current returns the selected item of the active list
func (e *Engine) Current() (media.Item, bool) {
	list := e.ActiveList()
	if len(list) == 0 {
		return media.Item{}, false
	}
	return list[e.selected], true
}

// MarkCurrentWatched marks the selected item watched on whichever tab is active.
// With hide-watched on the primary tab the item drops out of view immediately.
// The error is the history collaborator's and is returned as is.
func (e *Engine) MarkCurrentWatched() (media.Item, bool, error) {
	item, ok := e.Current()
	if !ok {
		return media.Item{}, false, nil
	}

	var err error
	if e.history != nil {
		err = e.history.MarkWatched(item.ID)
	}

	if e.hideWatched && e.tab == TabPrimary {
		e.Recompute()
	}

	return item, true, err
}

// IsWatched reports the collaborator's watched state for id
func (e *Engine) IsWatched(id string) bool {
	return e.history != nil && e.history.IsWatched(id)
}

// List returns the backing list for tab. The slice must not be modified.
func (e *Engine) List(tab Tab) []media.Item {
	switch tab {
	case TabSearch:
		return e.searchResults
	case TabHistory:
		return e.historyItems
	default:
		return e.derived
	}
}

// ActiveList returns the list selected by the active tab
func (e *Engine) ActiveList() []media.Item {
	return e.List(e.tab)
}

// Primary returns the unfiltered primary items
func (e *Engine) Primary() []media.Item { return e.primary }

// Derived returns the filtered and sorted primary items
func (e *Engine) Derived() []media.Item { return e.derived }

// Selected returns the selection index within the active list
func (e *Engine) Selected() int { return e.selected }

// Tab returns the active tab
func (e *Engine) Tab() Tab { return e.tab }

// SortMode returns the current sort mode
func (e *Engine) SortMode() SortMode { return e.sortMode }

// SearchText returns the free-text search
func (e *Engine) SearchText() string { return e.searchText }

// HideWatched reports whether watched items are hidden
func (e *Engine) HideWatched() bool { return e.hideWatched }

// Filters returns the current filter criteria
func (e *Engine) Filters() media.FilterCriteria { return e.filters }

func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
