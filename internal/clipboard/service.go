package clipboard

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// CopiedMsg reports the outcome of a Write
type CopiedMsg struct {
	Text string
	Err  error
}

// Service copies text to the system clipboard
type Service interface {
	// Write copies text and reports the result as a CopiedMsg
	Write(text string) tea.Cmd
}

type clipboardService struct {
	command string
	logger  *slog.Logger

	writeAll func(string) error
	run      func(cmd *exec.Cmd) error
}

// NewService creates a clipboard service. command, when set, is used
// whenever the system clipboard can't be written.
func NewService(command string, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &clipboardService{
		command:  command,
		logger:   logger,
		writeAll: clipboard.WriteAll,
		run:      func(cmd *exec.Cmd) error { return cmd.Run() },
	}
}

// Write copies text to the system clipboard, falling back to a command
func (s *clipboardService) Write(text string) tea.Cmd {
	return func() tea.Msg {
		err := s.writeAll(text)
		if err == nil {
			s.logger.Debug("copied to clipboard", "text_length", len(text))
			return CopiedMsg{Text: text}
		}

		s.logger.Warn("failed to copy to clipboard using primary method", "error", err)

		parts := s.fallbackCommand()
		if len(parts) == 0 {
			return CopiedMsg{Text: text, Err: fmt.Errorf("no clipboard tool found: %w", err)}
		}

		cmd := exec.Command(parts[0], parts[1:]...)
		cmd.Stdin = strings.NewReader(text)
		if runErr := s.run(cmd); runErr != nil {
			s.logger.Error("failed to copy to clipboard", "error", runErr, "command", parts)
			return CopiedMsg{Text: text, Err: fmt.Errorf("clipboard command %s failed: %w", parts[0], runErr)}
		}

		s.logger.Debug("copied to clipboard", "command", parts, "text_length", len(text))
		return CopiedMsg{Text: text}
	}
}

// fallbackCommand returns the configured command or the first available system tool
func (s *clipboardService) fallbackCommand() []string {
	if s.command != "" {
		return parseCommand(s.command)
	}

	switch runtime.GOOS {
	case "windows":
		return []string{"clip.exe"}
	case "darwin":
		return []string{"pbcopy"}
	case "linux":
		if isWSL() {
			return []string{"clip.exe"}
		}
		switch {
		case commandExists("wl-copy"):
			return []string{"wl-copy"}
		case commandExists("xclip"):
			return []string{"xclip", "-selection", "clipboard"}
		case commandExists("xsel"):
			return []string{"xsel", "--clipboard", "--input"}
		}
	}
	return nil
}

// parseCommand parses a command string into executable parts, respecting quotes
func parseCommand(command string) []string {
	var parts []string
	var current strings.Builder
	var inQuotes bool
	var quoteChar rune

	for _, char := range command {
		switch {
		case char == '\'' || char == '"':
			if !inQuotes {
				inQuotes = true
				quoteChar = char
			} else if char == quoteChar {
				inQuotes = false
			} else {
				current.WriteRune(char)
			}
		case char == ' ' && !inQuotes:
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(char)
		}
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	return parts
}

func isWSL() bool {
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}
	version := strings.ToLower(string(data))
	return strings.Contains(version, "microsoft") || strings.Contains(version, "wsl")
}

func commandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}
