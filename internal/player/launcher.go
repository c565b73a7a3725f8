package player

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/justchokingaround/yt-tui/internal/config"
)

// Options configures an ExternalLauncher
type Options struct {
	// Command replaces the built-in candidates when set
	Command    string
	Args       []string
	YTDLFormat string
	Platform   Platform
	Getenv     func(string) string
	Logger     *slog.Logger
	// DryRun logs the command instead of starting it
	DryRun bool
}

// ExternalLauncher starts mpv, or a configured command, as a detached process.
// Candidates are tried in order until one starts.
type ExternalLauncher struct {
	opts  Options
	start func(cmd *exec.Cmd) error
}

// NewLauncher creates a launcher from the player config
func NewLauncher(cfg *config.PlayerConfig, logger *slog.Logger, dryRun bool) *ExternalLauncher {
	return New(Options{
		Command:    cfg.Command,
		Args:       cfg.Args,
		YTDLFormat: cfg.YTDLFormat,
		Platform:   DetectPlatform(),
		Getenv:     os.Getenv,
		Logger:     logger,
		DryRun:     dryRun,
	})
}

// New creates a launcher from opts
func New(opts Options) *ExternalLauncher {
	if opts.YTDLFormat == "" {
		opts.YTDLFormat = config.DefaultYTDLFormat
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &ExternalLauncher{opts: opts, start: startDetached}
}

// Play starts the first candidate that launches. It does not wait for playback.
func (l *ExternalLauncher) Play(ctx context.Context, url string) error {
	candidates := l.Candidates(url)

	if l.opts.DryRun {
		l.opts.Logger.Info("dry run, not starting player", "command", candidates[0].String())
		return nil
	}

	var lastErr error
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return err
		}

		cmd := exec.Command(c.Name, c.Args...)
		if err := l.start(cmd); err != nil {
			l.opts.Logger.Debug("player candidate failed", "command", c.String(), "error", err)
			lastErr = err
			continue
		}

		l.opts.Logger.Info("started player", "command", c.String())
		return nil
	}

	return fmt.Errorf("%w: %v", ErrNoPlayer, lastErr)
}

// Candidates returns the commands tried for url, in order
func (l *ExternalLauncher) Candidates(url string) []Command {
	if l.opts.Command != "" {
		args := append(append([]string(nil), l.opts.Args...), url)
		return []Command{{Name: l.opts.Command, Args: args}}
	}

	mpv := GetMPVExecutable(l.opts.Platform)
	formatArg := "--ytdl-format=" + l.opts.YTDLFormat

	var videoOutputs, audioOutputs []string
	switch {
	case l.opts.Platform == PlatformLinux && IsWayland(l.opts.Getenv):
		videoOutputs = []string{"gpu", "dmabuf-wayland", "wlshm"}
		audioOutputs = []string{"pipewire", "pulse", "auto"}
	case l.opts.Platform == PlatformLinux || l.opts.Platform == PlatformWSL:
		videoOutputs = []string{"gpu", "x11"}
		audioOutputs = []string{"pulse", "alsa", "auto"}
	}

	var candidates []Command
	for _, vo := range videoOutputs {
		for _, ao := range audioOutputs {
			args := []string{"--player-operation-mode=pseudo-gui", formatArg, "--vo=" + vo, "--ao=" + ao}
			// software outputs can't use hardware decoding
			if vo == "wlshm" || vo == "x11" {
				args = append(args, "--hwdec=no")
			}
			args = append(args, l.opts.Args...)
			candidates = append(candidates, Command{Name: mpv, Args: append(args, url)})
		}
	}

	fallbackArgs := append([]string{"--player-operation-mode=pseudo-gui", "--ytdl-format=best"}, l.opts.Args...)
	candidates = append(candidates,
		Command{Name: mpv, Args: append(fallbackArgs, url)},
		Command{Name: "haruna", Args: []string{url}},
	)

	return candidates
}

// startDetached starts cmd without attaching it to the terminal and reaps it in the background
func startDetached(cmd *exec.Cmd) error {
	// keep player output from corrupting the TUI
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	setupProcessAttributes(cmd)

	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
