// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Main fetcher logic

package fetcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Fetch acquires a source tree from a Git URL or a local path into the
// destination directory. For Git sources the requested reference is
// materialized as the working tree; the context cancels an in-progress
// clone promptly.
func Fetch(ctx context.Context, config *FetchConfig) (*FetchResult, error) {
	if config == nil {
		return nil, fmt.Errorf("fetch config is nil")
	}

	if config.Source == "" {
		return nil, fmt.Errorf("source is empty")
	}

	if config.Destination == "" {
		return nil, fmt.Errorf("destination is empty")
	}

	// Set default progress writer
	if config.Progress == nil {
		config.Progress = io.Discard
	}

	sourceType := DetectSourceType(config.Source)

	switch sourceType {
	case SourceTypeGit:
		return fetchFromGit(ctx, config)
	case SourceTypeLocal:
		return fetchFromLocal(config)
	default:
		return nil, fmt.Errorf("unknown source type for: %s", config.Source)
	}
}

// DetectSourceType determines if the source is a Git URL or a local path
func DetectSourceType(source string) string {
	if IsGitURL(source) {
		return SourceTypeGit
	}

	if isLocalPath(source) {
		return SourceTypeLocal
	}

	return SourceTypeUnknown
}

// IsGitURL checks if the source is a transport-addressable Git location
func IsGitURL(source string) bool {
	for _, scheme := range []string{"https://", "http://", "git://", "ssh://", "file://"} {
		if strings.HasPrefix(source, scheme) {
			return true
		}
	}
	return scpLikePattern.MatchString(source)
}

// isLocalPath checks if the source appears to be a local path
func isLocalPath(source string) bool {
	// Absolute path
	if filepath.IsAbs(source) {
		return true
	}

	// Relative path indicators
	if source == "." || source == ".." {
		return true
	}

	if strings.HasPrefix(source, "./") || strings.HasPrefix(source, "../") {
		return true
	}

	// Check if it exists on the filesystem
	if _, err := os.Stat(source); err == nil {
		return true
	}

	return false
}

// ValidateLocalPath validates that a local path exists and is a directory
func ValidateLocalPath(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s", absPath)
		}
		if os.IsPermission(err) {
			return fmt.Errorf("permission denied: %s", absPath)
		}
		return fmt.Errorf("failed to stat path: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", absPath)
	}

	return nil
}
