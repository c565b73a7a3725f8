package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/browser"

	"github.com/justchokingaround/yt-tui/internal/clipboard"
	"github.com/justchokingaround/yt-tui/internal/database"
	"github.com/justchokingaround/yt-tui/internal/player"
	"github.com/justchokingaround/yt-tui/internal/tui/components/detail"
	"github.com/justchokingaround/yt-tui/internal/tui/components/filters"
	"github.com/justchokingaround/yt-tui/internal/tui/components/help"
	"github.com/justchokingaround/yt-tui/internal/tui/components/list"
	"github.com/justchokingaround/yt-tui/internal/tui/components/searchbar"
	"github.com/justchokingaround/yt-tui/internal/tui/components/tabs"
	"github.com/justchokingaround/yt-tui/internal/tui/styles"
	"github.com/justchokingaround/yt-tui/internal/view"
)

type inputMode int

const (
	modeNormal inputMode = iota
	// modeSearch edits the local search text
	modeSearch
	// modeFilters edits the filter criteria
	modeFilters
)

const (
	statusHeight = 1
	// the detail pane is only shown on terminals at least this wide
	detailMinWidth = 110
	statusTimeout  = 5 * time.Second
	// at most this many watched items are looked up for the history tab
	maxHistoryItems = 200
	defaultMaxItems = 50
)

// App is the root bubbletea model. The view engine owns every list and the
// selection; App keeps the terminal state around it.
type App struct {
	ctx    context.Context
	engine *view.Engine
	keys   KeyMap
	logger *slog.Logger

	source    ContentSource
	history   HistoryStore
	player    player.Launcher
	clipboard clipboard.Service
	settings  SettingsStore
	openURL   func(string) error

	maxResults int
	mode       inputMode
	width      int
	height     int

	searchBar searchbar.Model
	filters   filters.Model
	tabs      tabs.Model
	list      list.Model
	detail    detail.Model
	help      help.Model
	spinner   spinner.Model

	// at most one request of each kind is in flight
	primaryPending bool
	searchPending  bool
	historyPending bool

	status    string
	statusSeq int
}

// layout holds the rows and columns each region starts at
type layout struct {
	filtersHeight int
	tabsTop       int
	listTop       int
	listHeight    int
	listWidth     int
	detailWidth   int
}

// NewApp creates the dashboard model
func NewApp(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	openURL := opts.OpenURL
	if openURL == nil {
		openURL = browser.OpenURL
	}
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxItems
	}
	detailStyle := opts.DetailStyle
	if detailStyle == "" {
		detailStyle = "dark"
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	engine := view.New(opts.History, opts.HideWatched)
	engine.SetFilters(opts.Filters)

	app := &App{
		ctx:        ctx,
		engine:     engine,
		keys:       DefaultKeyMap(),
		logger:     logger,
		source:     opts.Source,
		history:    opts.History,
		player:     opts.Player,
		clipboard:  opts.Clipboard,
		settings:   opts.Settings,
		openURL:    openURL,
		maxResults: maxResults,
		searchBar:  searchbar.New(),
		filters:    filters.New(),
		tabs:       tabs.New(),
		list:       list.New(),
		detail:     detail.New(detailStyle),
		help:       help.New(),
		spinner:    s,
	}

	app.restoreSortMode()
	return app
}

// Engine exposes the view engine
func (a *App) Engine() *view.Engine {
	return a.engine
}

func (a *App) Init() tea.Cmd {
	return a.refreshPrimary()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.applyLayout()

	case tea.KeyMsg:
		var model tea.Model
		model, cmd = a.handleKeyMsg(msg)
		a.syncDetail()
		return model, cmd

	case tea.MouseMsg:
		cmd = a.handleMouseMsg(msg)

	case primaryLoadedMsg:
		cmd = a.handlePrimaryLoaded(msg)

	case searchResultMsg:
		cmd = a.handleSearchResult(msg)

	case historyLoadedMsg:
		cmd = a.handleHistoryLoaded(msg)

	case clipboard.CopiedMsg:
		if msg.Err != nil {
			cmd = a.setStatus("Failed to copy: " + msg.Err.Error())
		} else {
			cmd = a.setStatus("Copied: " + msg.Text)
		}

	case clearStatusMsg:
		if msg.seq == a.statusSeq {
			a.status = ""
		}

	case spinner.TickMsg:
		// stop ticking once nothing is loading
		if a.loading() {
			a.spinner, cmd = a.spinner.Update(msg)
		}
	}

	a.syncDetail()
	return a, cmd
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	l := a.layout()
	active := a.engine.Tab()

	search := a.searchBar.View(a.engine.SearchText(), a.mode == modeSearch, active == view.TabSearch)
	filtersView := a.filters.View(a.mode == modeFilters, a.engine.Filters(), a.engine.HideWatched(), a.engine.SortMode())
	tabBar := a.tabs.View(active)

	var body string
	if a.help.IsVisible() {
		body = lipgloss.NewStyle().Width(a.width).Height(l.listHeight).MaxHeight(l.listHeight).
			Render(a.help.View(a.keys))
	} else {
		items := a.engine.ActiveList()
		total := len(items)
		if active == view.TabPrimary {
			total = len(a.engine.Primary())
		}
		body = a.list.View(items, total, a.engine.Selected(), a.engine.IsWatched)
		if l.detailWidth > 0 {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, a.detail.View())
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, search, filtersView, tabBar, body, a.statusView())
}

func (a *App) statusView() string {
	text := a.status
	if text == "" {
		text = a.help.ShortView(a.keys)
	}
	if a.loading() {
		text = a.spinner.View() + " " + text
	}
	return styles.FooterStyle.Width(a.width).MaxHeight(statusHeight).Render(text)
}

func (a *App) layout() layout {
	l := layout{filtersHeight: filters.Height}
	if a.mode == modeFilters {
		l.filtersHeight = filters.EditorHeight
	}
	l.tabsTop = searchbar.Height + l.filtersHeight
	l.listTop = l.tabsTop + tabs.Height
	l.listHeight = max(a.height-l.listTop-statusHeight, 3)
	l.listWidth = a.width
	if a.width >= detailMinWidth {
		l.detailWidth = a.width * 2 / 5
		l.listWidth = a.width - l.detailWidth
	}
	return l
}

// applyLayout resizes every component for the current size and mode
func (a *App) applyLayout() {
	l := a.layout()
	a.searchBar.SetWidth(a.width)
	a.filters.SetWidth(a.width)
	a.tabs.SetWidth(a.width)
	a.list.SetSize(l.listWidth, l.listHeight)
	a.detail.SetSize(l.detailWidth, l.listHeight)
	a.help.SetSize(a.width, l.listHeight)
}

func (a *App) setMode(mode inputMode) {
	a.mode = mode
	a.applyLayout()
}

// syncDetail points the detail pane at the current selection
func (a *App) syncDetail() {
	item, ok := a.engine.Current()
	a.detail.SetItem(item, ok, ok && a.engine.IsWatched(item.ID))
}

func (a *App) loading() bool {
	return a.primaryPending || a.searchPending || a.historyPending
}

// setStatus shows text in the status line and clears it after a while
func (a *App) setStatus(text string) tea.Cmd {
	a.status = text
	a.statusSeq++
	seq := a.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// setStickyStatus shows text until another status replaces it
func (a *App) setStickyStatus(text string) {
	a.status = text
	a.statusSeq++
}

func (a *App) restoreSortMode() {
	if a.settings == nil {
		return
	}
	value, err := a.settings.Get(database.SettingSortMode)
	if err != nil {
		a.logger.Warn("failed to load sort mode", "error", err)
		return
	}
	if value != "" {
		a.engine.SetSortMode(view.ParseSortMode(value))
	}
}

func (a *App) persistSortMode() {
	if a.settings == nil {
		return
	}
	if err := a.settings.Set(database.SettingSortMode, a.engine.SortMode().Key()); err != nil {
		a.logger.Warn("failed to save sort mode", "error", err)
	}
}
