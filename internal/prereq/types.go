// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Prerequisite types

package prereq

import "github.com/sony-level/ferron-forge/internal/cargo"

// Tool describes one external binary the pipeline depends on
type Tool struct {
	Name        string   // Binary name or override path
	VersionArgs []string // Arguments that print the tool version
}

// CheckResult is the outcome of probing one tool
type CheckResult struct {
	Tool    string
	Path    string // Resolved absolute path
	Version string // First line of the version output
}

// BuildTools returns the tools a build run requires, honoring the
// $CARGO and $RUSTC overrides
func BuildTools(envs cargo.Envs) []Tool {
	return []Tool{
		{Name: envs.Cargo, VersionArgs: []string{"--version"}},
		{Name: envs.Rustc, VersionArgs: []string{"--version"}},
	}
}
