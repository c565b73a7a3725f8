package view

import (
	"strings"

	"github.com/justchokingaround/yt-tui/internal/media"
)

// predicate reports whether an item survives one filtering step
type predicate func(media.Item) bool

// buildPipeline returns the active predicates in their fixed order:
// search text, creator, min duration, max duration, after date, hide watched.
// Absent or malformed inputs contribute no predicate.
func (e *Engine) buildPipeline() []predicate {
	var steps []predicate

	if e.searchText != "" {
		query := strings.ToLower(e.searchText)
		steps = append(steps, func(item media.Item) bool {
			return strings.Contains(strings.ToLower(item.Title), query) ||
				strings.Contains(strings.ToLower(item.Creator), query) ||
				strings.Contains(strings.ToLower(item.Description), query)
		})
	}

	if e.filters.Creator != "" {
		creator := strings.ToLower(e.filters.Creator)
		steps = append(steps, func(item media.Item) bool {
			return strings.Contains(strings.ToLower(item.Creator), creator)
		})
	}

	if e.filters.MinDuration != nil {
		minDuration := *e.filters.MinDuration
		steps = append(steps, func(item media.Item) bool {
			return item.Duration >= minDuration
		})
	}

	if e.filters.MaxDuration != nil {
		maxDuration := *e.filters.MaxDuration
		steps = append(steps, func(item media.Item) bool {
			return item.Duration <= maxDuration
		})
	}

	if after, ok := e.filters.After(); ok {
		steps = append(steps, func(item media.Item) bool {
			return !item.PublishedAt.Before(after)
		})
	}

	if e.hideWatched && e.history != nil {
		steps = append(steps, func(item media.Item) bool {
			return !e.history.IsWatched(item.ID)
		})
	}

	return steps
}

// applyPipeline runs each predicate over the already-reduced set
func applyPipeline(items []media.Item, steps []predicate) []media.Item {
	out := make([]media.Item, len(items))
	copy(out, items)

	for _, keep := range steps {
		kept := out[:0]
		for _, item := range out {
			if keep(item) {
				kept = append(kept, item)
			}
		}
		out = kept
	}

	return out
}
