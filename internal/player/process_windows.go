//go:build windows

package player

import (
	"os/exec"
	"syscall"
)

// setupProcessAttributes configures the process to run detached from the console
// so the player doesn't interfere with TUI keyboard input
func setupProcessAttributes(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		// Detaches the player from the console's Ctrl+C handler
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP,
	}
}
