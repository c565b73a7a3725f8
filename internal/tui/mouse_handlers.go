package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/justchokingaround/yt-tui/internal/tui/components/tabs"
)

// handleMouseMsg handles wheel navigation and clicks on tabs and list rows
func (a *App) handleMouseMsg(msg tea.MouseMsg) tea.Cmd {
	if a.help.IsVisible() || a.mode != modeNormal {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.engine.MovePrevious()
		return nil
	case tea.MouseButtonWheelDown:
		a.engine.MoveNext()
		return nil
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	l := a.layout()

	if msg.Y >= l.tabsTop && msg.Y < l.tabsTop+tabs.Height {
		if tab, ok := a.tabs.TabAt(msg.X); ok {
			return a.switchTab(tab)
		}
		return nil
	}

	if msg.Y >= l.listTop && msg.X < l.listWidth {
		n := len(a.engine.ActiveList())
		idx, ok := a.list.RowToIndex(msg.Y-l.listTop, a.engine.Selected(), n)
		if !ok || !a.engine.Select(idx) {
			return nil
		}
		return a.playSelected()
	}

	return nil
}
