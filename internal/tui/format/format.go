// Package format renders item fields for display.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// DateLayout renders dates like "Mon. 15.01.2024"
const DateLayout = "Mon. 02.01.2006"

// Duration renders d as MM:SS, or HH:MM:SS from one hour up
func Duration(d time.Duration) string {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// Views renders a view count with K/M suffixes, e.g. 1.2K or 3.4M
func Views(n uint64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatUint(n, 10)
	}
}

// ViewsLong renders the exact count with thousands separators
func ViewsLong(n uint64) string {
	return humanize.Comma(int64(n)) + " views"
}

// Date renders t in local time using DateLayout
func Date(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Local().Format(DateLayout)
}

// Relative renders t relative to now, e.g. "3 days ago"
func Relative(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// Seconds renders an optional whole-second bound
func Seconds(d *time.Duration, unset string) string {
	if d == nil {
		return unset
	}
	return strconv.FormatInt(int64(*d/time.Second), 10) + "s"
}

// Truncate shortens text to fit within maxWidth cells, adding "..." when cut
func Truncate(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= maxWidth {
		return text
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(text, maxWidth, "")
	}
	return runewidth.Truncate(text, maxWidth, "...")
}

// WrapText wraps text at word boundaries to fit within maxWidth
func WrapText(text string, maxWidth int) []string {
	words := strings.Fields(text)

	var lines []string
	var current strings.Builder
	currentWidth := 0

	for _, word := range words {
		wordWidth := runewidth.StringWidth(word)

		switch {
		case currentWidth == 0:
			current.WriteString(word)
			currentWidth = wordWidth
		case currentWidth+1+wordWidth <= maxWidth:
			current.WriteString(" ")
			current.WriteString(word)
			currentWidth += 1 + wordWidth
		default:
			lines = append(lines, current.String())
			current.Reset()
			current.WriteString(word)
			currentWidth = wordWidth
		}
	}

	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
