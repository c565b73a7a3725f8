package clipboard

import (
	"errors"
	"io"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(command string) *clipboardService {
	return NewService(command, nil).(*clipboardService)
}

func TestWrite_PrimarySucceeds(t *testing.T) {
	s := newTestService("")

	var copied string
	s.writeAll = func(text string) error {
		copied = text
		return nil
	}
	s.run = func(cmd *exec.Cmd) error {
		t.Fatal("fallback must not run")
		return nil
	}

	msg := s.Write("https://www.youtube.com/watch?v=abc")()

	require.IsType(t, CopiedMsg{}, msg)
	assert.NoError(t, msg.(CopiedMsg).Err)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc", copied)
}

func TestWrite_FallsBackToCommand(t *testing.T) {
	s := newTestService("wl-copy --type 'text/plain'")
	s.writeAll = func(string) error { return errors.New("no display") }

	var gotArgs []string
	var gotInput string
	s.run = func(cmd *exec.Cmd) error {
		gotArgs = cmd.Args
		data, err := io.ReadAll(cmd.Stdin)
		require.NoError(t, err)
		gotInput = string(data)
		return nil
	}

	msg := s.Write("hello")().(CopiedMsg)

	assert.NoError(t, msg.Err)
	assert.Equal(t, []string{"wl-copy", "--type", "text/plain"}, gotArgs)
	assert.Equal(t, "hello", gotInput)
}

func TestWrite_FallbackFails(t *testing.T) {
	s := newTestService("false")
	s.writeAll = func(string) error { return errors.New("no display") }
	s.run = func(cmd *exec.Cmd) error { return errors.New("exit status 1") }

	msg := s.Write("hello")().(CopiedMsg)

	assert.Error(t, msg.Err)
	assert.Contains(t, msg.Err.Error(), "false")
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		expected []string
	}{
		{"single", "pbcopy", []string{"pbcopy"}},
		{"args", "xclip -selection clipboard", []string{"xclip", "-selection", "clipboard"}},
		{"double quotes", `sh -c "cat > /tmp/x"`, []string{"sh", "-c", "cat > /tmp/x"}},
		{"nested quote", `echo "it's"`, []string{"echo", "it's"}},
		{"extra spaces", "  wl-copy   -n ", []string{"wl-copy", "-n"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseCommand(tt.command))
		})
	}
}
