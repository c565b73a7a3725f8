package media

import (
	"fmt"
	"time"
)

// WatchURLFormat is the canonical watch page for an item id
const WatchURLFormat = "https://www.youtube.com/watch?v=%s"

// Item represents a single video returned by the content source
type Item struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Creator      string        `json:"creator"`
	CreatorID    string        `json:"creator_id"`
	Description  string        `json:"description"`
	Duration     time.Duration `json:"duration"`
	PublishedAt  time.Time     `json:"published_at"`
	ThumbnailURL string        `json:"thumbnail_url"`
	ViewCount    uint64        `json:"view_count"`
	URL          string        `json:"url"`
}

// NewItem builds an Item and derives its watch URL from the id.
// Duration is truncated to whole seconds.
func NewItem(id, title, creator, creatorID, description string, duration time.Duration, publishedAt time.Time, thumbnailURL string, viewCount uint64) Item {
	return Item{
		ID:           id,
		Title:        title,
		Creator:      creator,
		CreatorID:    creatorID,
		Description:  description,
		Duration:     duration.Truncate(time.Second),
		PublishedAt:  publishedAt,
		ThumbnailURL: thumbnailURL,
		ViewCount:    viewCount,
		URL:          fmt.Sprintf(WatchURLFormat, id),
	}
}

// IDs returns the ids of items in order
func IDs(items []Item) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}
