package player

import (
	"context"
	"errors"
	"strings"
)

// ErrNoPlayer is returned when no player candidate could be started
var ErrNoPlayer = errors.New("no video player could be started, make sure mpv and yt-dlp are installed")

// Launcher opens a URL in an external player without waiting for it
type Launcher interface {
	Play(ctx context.Context, url string) error
}

// Command is one way of invoking a player
type Command struct {
	Name string
	Args []string
}

// String returns the command line for logging
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}
