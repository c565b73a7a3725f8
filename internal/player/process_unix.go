//go:build !windows

package player

import (
	"os/exec"
	"syscall"
)

// setupProcessAttributes puts the player in its own process group so
// terminal signals aimed at the TUI don't reach it
func setupProcessAttributes(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
