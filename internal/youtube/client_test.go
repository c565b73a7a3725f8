package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	apihttp "github.com/justchokingaround/yt-tui/internal/http"
	"github.com/justchokingaround/yt-tui/internal/media"
)

func videoJSON(id, title string) map[string]any {
	return map[string]any{
		"id": id,
		"snippet": map[string]any{
			"title":        title,
			"channelTitle": "Channel " + id,
			"channelId":    "UC" + id,
			"description":  "About " + title,
			"publishedAt":  "2024-03-01T12:00:00Z",
			"thumbnails": map[string]any{
				"default": map[string]any{"url": "https://i.ytimg.com/" + id + "/default.jpg"},
				"high":    map[string]any{"url": "https://i.ytimg.com/" + id + "/hq.jpg"},
			},
		},
		"contentDetails": map[string]any{"duration": "PT4M13S"},
		"statistics":     map[string]any{"viewCount": "1500"},
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

func newTestClient(t *testing.T, server *httptest.Server, apiKey string, tokens oauth2.TokenSource) *Client {
	t.Helper()
	client, err := NewClient(Options{
		APIKey:      apiKey,
		BaseURL:     server.URL,
		TokenSource: tokens,
		HTTP:        apihttp.NewClient(apihttp.ClientConfig{Timeout: 5 * time.Second, RetryWait: time.Millisecond}),
	})
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient(Options{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	client, err := NewClient(Options{APIKey: "k"})
	require.NoError(t, err)
	assert.False(t, client.Personalized())

	client, err = NewClient(Options{TokenSource: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "t"})})
	require.NoError(t, err)
	assert.True(t, client.Personalized())
}

func TestFetchPrimary_Trending(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/videos", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "mostPopular", q.Get("chart"))
		assert.Equal(t, "snippet,contentDetails,statistics", q.Get("part"))
		assert.Equal(t, "10", q.Get("maxResults"))
		assert.Equal(t, "secret", q.Get("key"))
		assert.Empty(t, r.Header.Get("Authorization"))

		writeJSON(t, w, map[string]any{"items": []any{videoJSON("a", "First"), videoJSON("b", "Second")}})
	}))
	defer server.Close()

	client := newTestClient(t, server, "secret", nil)
	items, err := client.FetchPrimary(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, items, 2)

	item := items[0]
	assert.Equal(t, "a", item.ID)
	assert.Equal(t, "First", item.Title)
	assert.Equal(t, "Channel a", item.Creator)
	assert.Equal(t, "UCa", item.CreatorID)
	assert.Equal(t, 253*time.Second, item.Duration)
	assert.Equal(t, uint64(1500), item.ViewCount)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), item.PublishedAt)
	assert.Equal(t, "https://i.ytimg.com/a/hq.jpg", item.ThumbnailURL)
	assert.Equal(t, "https://www.youtube.com/watch?v=a", item.URL)
}

func TestFetchPrimary_Personalized(t *testing.T) {
	var activityCalls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/activities":
			assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
			assert.Equal(t, "true", r.URL.Query().Get("home"))
			if activityCalls.Add(1) == 1 {
				assert.Empty(t, r.URL.Query().Get("pageToken"))
				writeJSON(t, w, map[string]any{
					"nextPageToken": "page2",
					"items": []any{
						map[string]any{"id": "1", "contentDetails": map[string]any{
							"recommendation": map[string]any{"resourceId": map[string]any{"videoId": "r1"}},
						}},
						map[string]any{"id": "2", "contentDetails": map[string]any{
							"upload": map[string]any{"videoId": "u1"},
						}},
					},
				})
				return
			}
			assert.Equal(t, "page2", r.URL.Query().Get("pageToken"))
			writeJSON(t, w, map[string]any{"items": []any{
				map[string]any{"id": "3", "contentDetails": map[string]any{
					"recommendation": map[string]any{"resourceId": map[string]any{"videoId": "r1"}},
				}},
				map[string]any{"id": "4", "contentDetails": map[string]any{}},
			}})
		case "/videos":
			assert.Equal(t, "r1,u1", r.URL.Query().Get("id"))
			assert.Equal(t, "k", r.URL.Query().Get("key"))
			writeJSON(t, w, map[string]any{"items": []any{videoJSON("r1", "Rec"), videoJSON("u1", "Upload")}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server, "k", oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "user-token"}))
	items, err := client.FetchPrimary(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "u1"}, media.IDs(items))
	assert.Equal(t, int32(2), activityCalls.Load())
}

func TestFetchPrimary_PersonalizedFailureFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/activities":
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(t, w, map[string]any{"error": map[string]any{"message": "expired"}})
		case "/videos":
			assert.Equal(t, "mostPopular", r.URL.Query().Get("chart"))
			writeJSON(t, w, map[string]any{"items": []any{videoJSON("t", "Trending")}})
		}
	}))
	defer server.Close()

	client := newTestClient(t, server, "k", oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "bad"}))
	items, err := client.FetchPrimary(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"t"}, media.IDs(items))
}

func TestFetchPrimary_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		writeJSON(t, w, map[string]any{"error": map[string]any{"message": "quota exceeded"}})
	}))
	defer server.Close()

	client := newTestClient(t, server, "k", nil)
	_, err := client.FetchPrimary(context.Background(), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Equal(t, http.StatusForbidden, apihttp.StatusCode(err))
}

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			q := r.URL.Query()
			assert.Equal(t, "golang tips", q.Get("q"))
			assert.Equal(t, "video", q.Get("type"))
			assert.Equal(t, "snippet", q.Get("part"))
			assert.Equal(t, "20", q.Get("maxResults"))
			writeJSON(t, w, map[string]any{"items": []any{
				map[string]any{"id": map[string]any{"videoId": "s1"}},
				map[string]any{"id": map[string]any{"videoId": "s2"}},
			}})
		case "/videos":
			assert.Equal(t, "s1,s2", r.URL.Query().Get("id"))
			writeJSON(t, w, map[string]any{"items": []any{videoJSON("s1", "One"), videoJSON("s2", "Two")}})
		}
	}))
	defer server.Close()

	client := newTestClient(t, server, "k", nil)
	items, err := client.Search(context.Background(), "  golang tips ", 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, media.IDs(items))

	items, err = client.Search(context.Background(), "   ", 20)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFetchByIDs_Chunks(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		ids := strings.Split(r.URL.Query().Get("id"), ",")
		assert.LessOrEqual(t, len(ids), 50)

		var items []any
		for _, id := range ids {
			items = append(items, videoJSON(id, "Video "+id))
		}
		writeJSON(t, w, map[string]any{"items": items})
	}))
	defer server.Close()

	ids := make([]string, 120)
	for i := range ids {
		ids[i] = fmt.Sprintf("v%03d", i)
	}

	client := newTestClient(t, server, "k", nil)
	items, err := client.FetchByIDs(context.Background(), ids)
	require.NoError(t, err)
	assert.Len(t, items, 120)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, ids, media.IDs(items))

	items, err = client.FetchByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, int32(3), calls.Load())
}

func TestConvertSkipsBadItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		badDate := videoJSON("bad-date", "Bad")
		badDate["snippet"].(map[string]any)["publishedAt"] = "yesterday"
		badDuration := videoJSON("bad-dur", "Bad")
		badDuration["contentDetails"] = map[string]any{"duration": "PT1X"}
		bare := videoJSON("bare", "Bare")
		delete(bare, "contentDetails")
		bare["statistics"] = map[string]any{}

		writeJSON(t, w, map[string]any{"items": []any{badDate, videoJSON("ok", "Ok"), badDuration, bare}})
	}))
	defer server.Close()

	client := newTestClient(t, server, "k", nil)
	items, err := client.FetchByIDs(context.Background(), []string{"x"})
	require.NoError(t, err)
	require.Equal(t, []string{"ok", "bare"}, media.IDs(items))
	assert.Zero(t, items[1].Duration)
	assert.Zero(t, items[1].ViewCount)
}

func TestTokenOnlyUsesBearerEverywhere(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("key"))
		assert.Equal(t, "Bearer only", r.Header.Get("Authorization"))
		writeJSON(t, w, map[string]any{"items": []any{videoJSON("a", "A")}})
	}))
	defer server.Close()

	client := newTestClient(t, server, "", oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "only"}))
	_, err := client.FetchByIDs(context.Background(), []string{"a"})
	require.NoError(t, err)
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"PT4M13S", 253 * time.Second, false},
		{"PT1H30M", 90 * time.Minute, false},
		{"PT30S", 30 * time.Second, false},
		{"PT2H15M30S", 8130 * time.Second, false},
		{"P0D", 0, false},
		{"P1DT2H", 26 * time.Hour, false},
		{"", 0, true},
		{"4M13S", 0, true},
		{"PT4X", 0, true},
		{"PT4", 0, true},
		{"PTM", 0, true},
		{"P4M", 0, true},
		{"PT1HT2M", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseDuration(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}
