//go:build windows

package sandbox

import (
	"os/exec"
	"time"
)

// setProcessGroup is a no-op on Windows: there is no POSIX process-group
// equivalent wired up here, so only the direct child is ever signalled.
func setProcessGroup(cmd *exec.Cmd) {}

// terminateProcessGroup falls back to killing the direct child process
// only, immediately — Windows has no SIGTERM equivalent to attempt first.
// A fuller implementation would use a Job Object to contain and terminate
// the whole descendant tree; that is out of scope here.
func terminateProcessGroup(cmd *exec.Cmd, grace time.Duration, exited <-chan struct{}) {
	if cmd.Process == nil {
		return
	}
	_ = cmd.Process.Kill()
	<-exited
}
