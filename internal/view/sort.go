package view

import (
	"sort"

	"github.com/justchokingaround/yt-tui/internal/media"
)

// SortMode defines the ordering of the derived list
type SortMode int

const (
	SortNewest SortMode = iota
	SortViews
	SortOldest
	SortCreator
)

// String returns the human-readable label for status display
func (s SortMode) String() string {
	switch s {
	case SortNewest:
		return "Date (newest)"
	case SortViews:
		return "Views (highest)"
	case SortOldest:
		return "Upload Date (oldest)"
	case SortCreator:
		return "Creator (A-Z)"
	default:
		return "Unknown"
	}
}

// Next returns the successor in the cycle Newest, Views, Oldest, Creator
func (s SortMode) Next() SortMode {
	switch s {
	case SortNewest:
		return SortViews
	case SortViews:
		return SortOldest
	case SortOldest:
		return SortCreator
	default:
		return SortNewest
	}
}

// Key returns the stable identifier ParseSortMode accepts
func (s SortMode) Key() string {
	switch s {
	case SortViews:
		return "views"
	case SortOldest:
		return "oldest"
	case SortCreator:
		return "creator"
	default:
		return "newest"
	}
}

// ParseSortMode maps a stored value to a SortMode, defaulting to SortNewest
func ParseSortMode(value string) SortMode {
	switch value {
	case "views":
		return SortViews
	case "oldest":
		return SortOldest
	case "creator":
		return SortCreator
	default:
		return SortNewest
	}
}

// sortItems orders items in place. The sort is stable so ties keep filtered order.
func sortItems(items []media.Item, mode SortMode) {
	var less func(a, b media.Item) bool

	switch mode {
	case SortViews:
		less = func(a, b media.Item) bool { return a.ViewCount > b.ViewCount }
	case SortOldest:
		less = func(a, b media.Item) bool { return a.PublishedAt.Before(b.PublishedAt) }
	case SortCreator:
		// Byte order, not locale aware
		less = func(a, b media.Item) bool { return a.Creator < b.Creator }
	default:
		less = func(a, b media.Item) bool { return a.PublishedAt.After(b.PublishedAt) }
	}

	sort.SliceStable(items, func(i, j int) bool {
		return less(items[i], items[j])
	})
}
