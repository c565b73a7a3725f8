// Package youtube fetches video items from the YouTube Data API v3.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2"

	"github.com/justchokingaround/yt-tui/internal/config"
	apihttp "github.com/justchokingaround/yt-tui/internal/http"
	"github.com/justchokingaround/yt-tui/internal/media"
)

const (
	// DefaultBaseURL is the Data API v3 root
	DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

	// maxIDsPerRequest is the API's limit for videos?id=
	maxIDsPerRequest = 50
	// maxActivityPages bounds the personalized feed walk
	maxActivityPages = 5

	videoParts = "snippet,contentDetails,statistics"
)

// ErrMissingAPIKey is returned when neither an API key nor an OAuth token is configured
var ErrMissingAPIKey = errors.New("YouTube API key is required, set api_key in config.jsonc")

// Client talks to the YouTube Data API
type Client struct {
	http        *apihttp.Client
	baseURL     string
	apiKey      string
	tokenSource oauth2.TokenSource
	logger      *slog.Logger
}

// Options configures a Client
type Options struct {
	APIKey      string
	BaseURL     string
	TokenSource oauth2.TokenSource
	HTTP        *apihttp.Client
	Logger      *slog.Logger
}

// NewClient creates a client. An API key or a token source is required.
func NewClient(opts Options) (*Client, error) {
	if opts.APIKey == "" && opts.TokenSource == nil {
		return nil, ErrMissingAPIKey
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.HTTP == nil {
		opts.HTTP = apihttp.NewClient(apihttp.DefaultClientConfig())
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Client{
		http:        opts.HTTP,
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		apiKey:      opts.APIKey,
		tokenSource: opts.TokenSource,
		logger:      opts.Logger,
	}, nil
}

// NewFromConfig builds a client from the application config.
// Refreshed OAuth tokens are saved through store when it is not nil.
func NewFromConfig(ctx context.Context, cfg *config.Config, store SettingsStore, debug bool, logger *slog.Logger) (*Client, error) {
	var storage *TokenStorage
	if store != nil {
		storage = NewTokenStorage(store)
	}

	tokens, err := NewTokenSource(ctx, OAuthConfig{
		ClientID:     cfg.OAuthClientID,
		ClientSecret: cfg.OAuthClientSecret,
		AccessToken:  cfg.OAuthAccessToken,
		RefreshToken: cfg.OAuthRefreshToken,
	}, storage)
	if err != nil {
		return nil, err
	}

	httpClient := apihttp.NewClient(apihttp.ClientConfig{
		Timeout:    cfg.API.Timeout,
		MaxRetries: cfg.API.MaxRetries,
		UserAgent:  cfg.API.UserAgent,
		Debug:      debug,
		Logger:     logger,
	})

	return NewClient(Options{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.API.BaseURL,
		TokenSource: tokens,
		HTTP:        httpClient,
		Logger:      logger,
	})
}

// Personalized reports whether the home feed can be requested
func (c *Client) Personalized() bool {
	return c.tokenSource != nil
}

// FetchPrimary returns the dashboard feed: the personalized home feed when a token
// is configured, otherwise (or when that fails) the most popular videos.
func (c *Client) FetchPrimary(ctx context.Context, limit int) ([]media.Item, error) {
	if c.tokenSource != nil {
		items, err := c.fetchPersonalized(ctx, limit)
		if err == nil && len(items) > 0 {
			return items, nil
		}
		if err != nil {
			c.logger.Warn("personalized feed failed, using trending", "error", err)
		}
	}

	return c.fetchTrending(ctx, limit)
}

// Search searches videos and returns their full details
func (c *Client) Search(ctx context.Context, query string, limit int) ([]media.Item, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	params := url.Values{
		"part":       {"snippet"},
		"type":       {"video"},
		"q":          {query},
		"maxResults": {strconv.Itoa(clampLimit(limit))},
	}

	var resp listResponse[searchItem]
	if err := c.get(ctx, "search", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to search videos: %w", err)
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}

	return c.FetchByIDs(ctx, ids)
}

// FetchByIDs returns details for ids, requested in chunks of 50.
// The API may omit deleted or private videos.
func (c *Client) FetchByIDs(ctx context.Context, ids []string) ([]media.Item, error) {
	var items []media.Item

	for start := 0; start < len(ids); start += maxIDsPerRequest {
		end := min(start+maxIDsPerRequest, len(ids))

		params := url.Values{
			"part": {videoParts},
			"id":   {strings.Join(ids[start:end], ",")},
		}

		var resp listResponse[videoItem]
		if err := c.get(ctx, "videos", params, &resp); err != nil {
			return nil, fmt.Errorf("failed to fetch video details: %w", err)
		}
		items = append(items, c.convert(resp.Items)...)
	}

	return items, nil
}

func (c *Client) fetchTrending(ctx context.Context, limit int) ([]media.Item, error) {
	params := url.Values{
		"part":       {videoParts},
		"chart":      {"mostPopular"},
		"maxResults": {strconv.Itoa(clampLimit(limit))},
	}

	var resp listResponse[videoItem]
	if err := c.get(ctx, "videos", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch trending videos: %w", err)
	}

	return c.convert(resp.Items), nil
}

func (c *Client) fetchPersonalized(ctx context.Context, limit int) ([]media.Item, error) {
	limit = clampLimit(limit)
	var ids []string
	seen := make(map[string]bool)
	pageToken := ""

	for page := 0; page < maxActivityPages && len(ids) < limit; page++ {
		params := url.Values{
			"part":       {"snippet,contentDetails"},
			"home":       {"true"},
			"maxResults": {strconv.Itoa(maxIDsPerRequest)},
		}
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var resp listResponse[activityItem]
		if err := c.get(ctx, "activities", params, &resp); err != nil {
			return nil, fmt.Errorf("failed to fetch activities: %w", err)
		}

		for _, activity := range resp.Items {
			if id := activity.videoID(); id != "" && !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	if len(ids) > limit {
		ids = ids[:limit]
	}
	return c.FetchByIDs(ctx, ids)
}

// get calls endpoint with the key or bearer token attached
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	headers := map[string]string{}

	// activities?home=true only works with a user token
	if c.tokenSource != nil && (c.apiKey == "" || endpoint == "activities") {
		token, err := c.tokenSource.Token()
		if err != nil {
			return fmt.Errorf("failed to get OAuth token: %w", err)
		}
		headers["Authorization"] = token.Type() + " " + token.AccessToken
	} else {
		params.Set("key", c.apiKey)
	}

	return c.http.GetJSON(ctx, c.baseURL+"/"+endpoint, params, headers, out)
}

// convert turns API videos into items, skipping ones that fail to convert
func (c *Client) convert(videos []videoItem) []media.Item {
	items := make([]media.Item, 0, len(videos))
	for _, v := range videos {
		item, err := v.toItem()
		if err != nil {
			c.logger.Warn("skipping video", "id", v.ID, "error", err)
			continue
		}
		items = append(items, item)
	}
	return items
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > maxIDsPerRequest {
		return maxIDsPerRequest
	}
	return limit
}
