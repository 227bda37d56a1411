// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Windows-specific process handling

//go:build windows

package exec

import (
	"os/exec"
)

// setPlatformProcessGroup configures platform-specific process attributes.
// Windows has no Unix-style process groups; CommandContext terminates the
// direct child (cargo) via TerminateProcess, and cargo tears down its own
// rustc workers.
func setPlatformProcessGroup(cmd *exec.Cmd) {
	// Nothing to configure on Windows
}

// killProcessGroup kills the running process.
// On Windows Process.Kill() calls TerminateProcess on the direct child only.
func killProcessGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}

// interruptProcessGroup attempts to stop the process.
// Windows offers no way to deliver Ctrl+C to a console-less child, so a
// build interrupted here is killed rather than asked to wind down.
func interruptProcessGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
