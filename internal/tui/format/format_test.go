package format

import (
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestDuration(t *testing.T) {
	tests := []struct {
		in       time.Duration
		expected string
	}{
		{0, "00:00"},
		{59 * time.Second, "00:59"},
		{4*time.Minute + 5*time.Second, "04:05"},
		{59*time.Minute + 59*time.Second, "59:59"},
		{time.Hour, "01:00:00"},
		{12*time.Hour + 3*time.Minute + 7*time.Second, "12:03:07"},
		{-time.Second, "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Duration(tt.in))
		})
	}
}

func TestViews(t *testing.T) {
	tests := []struct {
		in       uint64
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1_000, "1.0K"},
		{1_234, "1.2K"},
		{999_949, "999.9K"},
		{1_000_000, "1.0M"},
		{3_400_000, "3.4M"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Views(tt.in))
		})
	}
}

func TestViewsLong(t *testing.T) {
	assert.Equal(t, "1,234,567 views", ViewsLong(1234567))
}

func TestDate(t *testing.T) {
	date := time.Date(2024, 1, 15, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "Mon. 15.01.2024", Date(date))
	assert.Equal(t, "unknown", Date(time.Time{}))
}

func TestRelative(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "3 days ago", Relative(now.Add(-72*time.Hour), now))
	assert.Empty(t, Relative(time.Time{}, now))
}

func TestSeconds(t *testing.T) {
	d := 90 * time.Second
	assert.Equal(t, "90s", Seconds(&d, "0s"))
	assert.Equal(t, "∞", Seconds(nil, "∞"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "a long ...", Truncate("a long title here", 10))
	assert.Equal(t, "", Truncate("anything", 0))

	wide := Truncate("日本語のタイトルです", 9)
	assert.LessOrEqual(t, runewidth.StringWidth(wide), 9)
	assert.Contains(t, wide, "...")
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, []string{"one two", "three"}, WrapText("one two three", 8))
	assert.Nil(t, WrapText("   ", 8))
	assert.Equal(t, []string{"unbreakableword"}, WrapText("unbreakableword", 4))
}
