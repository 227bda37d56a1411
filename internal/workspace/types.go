// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Workspace types/constants

package workspace

const (
	TempDirPrefix = ".forge-temp"
	RunIDPrefix   = "forge"
	RepoSubdir    = "repo"
)

// Workspace is the ephemeral directory owned by a single build run.
// It holds the checked-out source tree and outlives both the compile
// step and the archive asset walk.
type Workspace struct {
	RunID   string
	Path    string
	BaseDir string
	keep    bool
}

// Config holds configuration for workspace creation
type Config struct {
	BaseDir string
	Keep    bool
}
