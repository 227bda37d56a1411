// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Process runner types and constants

package exec

import (
	"io"
	"time"
)

// Command describes one external process invocation.
type Command struct {
	Name string   // binary name or path, resolved via PATH
	Args []string // arguments, without the binary name
	Dir  string   // working directory ("" = inherit)
	Env  []string // extra KEY=VALUE pairs appended to the inherited environment

	// Timeout bounds the invocation when positive. Zero means no
	// deadline: a release build of a full cargo workspace runs to
	// completion or hard failure, however long that takes.
	Timeout time.Duration
}

// RunnerConfig configures the process runner
type RunnerConfig struct {
	Verbose  bool      // Also stream stdout lines to Progress
	Progress io.Writer // Stderr lines stream here (optional, defaults to io.Discard)
}

// Result contains the outcome of a completed process
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}
