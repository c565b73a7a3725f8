package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// StderrLogFile selects console output instead of a rotated file
const StderrLogFile = "stderr"

// InitLogger initializes the application logger based on configuration
func InitLogger(cfg *LoggingConfig) (*slog.Logger, error) {
	level := parseLogLevel(cfg.Level)

	// The TUI owns the terminal, so logs default to a file
	if cfg.File == "" {
		cfg.File = filepath.Join(getStateDir(), AppName, AppName+".log")
	}

	isConsole := cfg.File == StderrLogFile

	var writer io.Writer
	if isConsole {
		writer = os.Stderr
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		writer = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize, // megabytes
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge, // days
			Compress:   cfg.Compress,
		}
	}

	return newLogger(writer, cfg, level, isConsole), nil
}

// newLogger builds the handler for writer and installs it as the default logger
func newLogger(writer io.Writer, cfg *LoggingConfig, level slog.Level, isConsole bool) *slog.Logger {
	// Create handler based on format
	var handler slog.Handler
	handlerOpts := &slog.HandlerOptions{
		Level: level,
	}

	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(writer, handlerOpts)
	default:
		// Only color console output, never the log file
		if cfg.Color && isConsole {
			handler = NewColoredTextHandler(writer, handlerOpts)
		} else {
			handler = slog.NewTextHandler(writer, handlerOpts)
		}
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

// levelColors maps a level name to its ANSI color code
var levelColors = map[string]string{
	"DEBUG": "90", // gray
	"INFO":  "32", // green
	"WARN":  "33", // yellow
	"ERROR": "31", // red
}

// ColoredTextHandler wraps slog.TextHandler to color the level for console output
type ColoredTextHandler struct {
	writer io.Writer
	opts   *slog.HandlerOptions
	attrs  []slog.Attr
	groups []string
}

// NewColoredTextHandler creates a new handler that adds colors for console output
func NewColoredTextHandler(w io.Writer, opts *slog.HandlerOptions) *ColoredTextHandler {
	return &ColoredTextHandler{writer: w, opts: opts}
}

// Handle implements slog.Handler interface
func (h *ColoredTextHandler) Handle(ctx context.Context, r slog.Record) error {
	var buf strings.Builder
	if err := h.textHandler(&buf).Handle(ctx, r); err != nil {
		return err
	}

	_, err := io.WriteString(h.writer, colorizeLevel(buf.String(), r.Level.String()))
	return err
}

// textHandler rebuilds the wrapped handler over buf with the accumulated attrs and groups
func (h *ColoredTextHandler) textHandler(buf io.Writer) slog.Handler {
	var handler slog.Handler = slog.NewTextHandler(buf, h.opts)
	if len(h.attrs) > 0 {
		handler = handler.WithAttrs(h.attrs)
	}
	for _, g := range h.groups {
		handler = handler.WithGroup(g)
	}
	return handler
}

// colorizeLevel colors the first field of the line
func colorizeLevel(line, level string) string {
	code, ok := levelColors[level]
	if !ok {
		return line
	}
	head, rest, found := strings.Cut(line, " ")
	if !found {
		return fmt.Sprintf("\033[%sm%s\033[0m", code, line)
	}
	return fmt.Sprintf("\033[%sm%s\033[0m %s", code, head, rest)
}

// WithAttrs implements slog.Handler interface
func (h *ColoredTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

// WithGroup implements slog.Handler interface
func (h *ColoredTextHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

// Enabled implements slog.Handler interface
func (h *ColoredTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts != nil && h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// parseLogLevel parses a log level string
func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
