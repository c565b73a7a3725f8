package tui

import "github.com/justchokingaround/yt-tui/internal/media"

// This file contains the results background fetches hand back to Update.
// Each fetch delivers exactly one message.

// primaryLoadedMsg carries a refreshed primary feed
type primaryLoadedMsg struct {
	requestID string
	items     []media.Item
	err       error
}

// searchResultMsg carries platform search results
type searchResultMsg struct {
	requestID string
	query     string
	items     []media.Item
	err       error
}

// historyLoadedMsg carries watched items ordered newest first
type historyLoadedMsg struct {
	requestID string
	items     []media.Item
	err       error
}

// clearStatusMsg clears the status line unless a newer status replaced it
type clearStatusMsg struct {
	seq int
}
