package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"

	"github.com/justchokingaround/yt-tui/internal/clipboard"
	"github.com/justchokingaround/yt-tui/internal/media"
	"github.com/justchokingaround/yt-tui/internal/player"
	"github.com/justchokingaround/yt-tui/internal/view"
)

// ContentSource fetches items from the video platform
type ContentSource interface {
	FetchPrimary(ctx context.Context, limit int) ([]media.Item, error)
	Search(ctx context.Context, query string, limit int) ([]media.Item, error)
	FetchByIDs(ctx context.Context, ids []string) ([]media.Item, error)
}

// HistoryStore is the watch history as the dashboard uses it
type HistoryStore interface {
	view.WatchHistory
	WatchedIDs(limit int) []string
	OrderByWatched(items []media.Item) []media.Item
}

// SettingsStore persists small UI preferences
type SettingsStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Options wires the dashboard to its collaborators
type Options struct {
	Context   context.Context
	Source    ContentSource
	History   HistoryStore
	Player    player.Launcher
	Clipboard clipboard.Service
	// Settings may be nil, the sort mode is then not persisted
	Settings SettingsStore
	// OpenURL opens a link in the browser, defaults to browser.OpenURL
	OpenURL func(url string) error

	Filters     media.FilterCriteria
	HideWatched bool
	MaxResults  int
	// DetailStyle is the glamour style for descriptions, defaults to "dark"
	DetailStyle string
	Logger      *slog.Logger
}

// Start runs the dashboard until the user quits
func Start(opts Options) error {
	// browser helpers print to stdout, which belongs to the TUI
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard

	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
