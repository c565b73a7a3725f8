package youtube

import (
	"fmt"
	"strconv"
	"time"

	"github.com/justchokingaround/yt-tui/internal/media"
)

// listResponse is the envelope shared by every list endpoint
type listResponse[T any] struct {
	Items         []T    `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}

type videoItem struct {
	ID             string          `json:"id"`
	Snippet        snippet         `json:"snippet"`
	ContentDetails *contentDetails `json:"contentDetails"`
	Statistics     *statistics     `json:"statistics"`
}

type snippet struct {
	Title        string     `json:"title"`
	ChannelTitle string     `json:"channelTitle"`
	ChannelID    string     `json:"channelId"`
	Description  string     `json:"description"`
	PublishedAt  string     `json:"publishedAt"`
	Thumbnails   thumbnails `json:"thumbnails"`
}

type thumbnails struct {
	Default *thumbnail `json:"default"`
	Medium  *thumbnail `json:"medium"`
	High    *thumbnail `json:"high"`
}

type thumbnail struct {
	URL string `json:"url"`
}

// best returns the largest available thumbnail URL
func (t thumbnails) best() string {
	for _, th := range []*thumbnail{t.High, t.Medium, t.Default} {
		if th != nil && th.URL != "" {
			return th.URL
		}
	}
	return ""
}

type contentDetails struct {
	Duration string `json:"duration"`
}

type statistics struct {
	ViewCount string `json:"viewCount"`
}

type searchItem struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
}

type activityItem struct {
	ID             string `json:"id"`
	ContentDetails struct {
		Recommendation *struct {
			ResourceID struct {
				VideoID string `json:"videoId"`
			} `json:"resourceId"`
		} `json:"recommendation"`
		Upload *struct {
			VideoID string `json:"videoId"`
		} `json:"upload"`
	} `json:"contentDetails"`
}

// videoID returns the video an activity points at
func (a activityItem) videoID() string {
	if r := a.ContentDetails.Recommendation; r != nil && r.ResourceID.VideoID != "" {
		return r.ResourceID.VideoID
	}
	if u := a.ContentDetails.Upload; u != nil {
		return u.VideoID
	}
	return ""
}

// toItem converts an API video into a media item.
// Missing duration or statistics become zero; a bad date or duration is an error.
func (v videoItem) toItem() (media.Item, error) {
	var duration time.Duration
	if v.ContentDetails != nil && v.ContentDetails.Duration != "" {
		d, err := ParseDuration(v.ContentDetails.Duration)
		if err != nil {
			return media.Item{}, err
		}
		duration = d
	}

	var views uint64
	if v.Statistics != nil {
		// unparseable counts are treated as zero
		views, _ = strconv.ParseUint(v.Statistics.ViewCount, 10, 64)
	}

	published, err := time.Parse(time.RFC3339, v.Snippet.PublishedAt)
	if err != nil {
		return media.Item{}, fmt.Errorf("failed to parse published date %q: %w", v.Snippet.PublishedAt, err)
	}

	return media.NewItem(
		v.ID,
		v.Snippet.Title,
		v.Snippet.ChannelTitle,
		v.Snippet.ChannelID,
		v.Snippet.Description,
		duration,
		published.UTC(),
		v.Snippet.Thumbnails.best(),
		views,
	), nil
}
