// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Fetcher types and constants

package fetcher

import (
	"io"
	"regexp"
)

// Source type constants
const (
	SourceTypeUnknown = "unknown"
	SourceTypeGit     = "git"
	SourceTypeLocal   = "local"
)

// scpLikePattern matches SSH shorthand URLs: git@host:path/repo.git
var scpLikePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+@[A-Za-z0-9._-]+:.+$`)

// FetchConfig holds configuration for acquiring a source tree
type FetchConfig struct {
	Source      string    // Repository URL or local directory path
	Reference   string    // Branch, tag, or commit-ish; ignored for local sources
	Destination string    // Target directory (workspace.RepoPath())
	Verbose     bool      // Enable verbose logging
	Progress    io.Writer // Progress output (optional, defaults to io.Discard)
}

// FetchResult contains the result of a fetch operation
type FetchResult struct {
	Source      string // Original source
	Destination string // Where the tree was checked out or copied
	SourceType  string // Type of source (git, local)
	Reference   string // Requested reference (empty for local copies)
	CommitHash  string // Resolved commit hash (empty for local copies)
	FilesCopied int    // Number of files copied (local copies only)
	BytesCopied int64  // Total bytes copied (local copies only)
}
