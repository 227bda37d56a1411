// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Local source tree copying implementation

package fetcher

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Patterns to skip when copying a local checkout; build products would
// only bloat the ephemeral workspace
var defaultSkipPatterns = []string{
	".git",
	".forge-temp",
	"target", // cargo build output
	"node_modules",
	"dist",
}

// fetchFromLocal copies a local directory to the destination
func fetchFromLocal(config *FetchConfig) (*FetchResult, error) {
	if err := ValidateLocalPath(config.Source); err != nil {
		return nil, err
	}

	srcPath, err := filepath.Abs(config.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source path: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.Progress, "Copying local source tree: %s\n", srcPath)
		fmt.Fprintf(config.Progress, "Destination: %s\n", config.Destination)
	}

	var filesCopied int
	var bytesCopied int64

	err = filepath.Walk(srcPath, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		relPath, err := filepath.Rel(srcPath, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path: %w", err)
		}

		if shouldSkip(relPath, defaultSkipPatterns) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		destPath := filepath.Join(config.Destination, relPath)

		if info.IsDir() {
			if err := os.MkdirAll(destPath, info.Mode()); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", destPath, err)
			}
			return nil
		}

		copied, err := copyFile(path, destPath, info)
		if err != nil {
			return fmt.Errorf("failed to copy %s: %w", relPath, err)
		}

		filesCopied++
		bytesCopied += copied

		return nil
	})

	if err != nil {
		// Clean up partial copy on failure
		_ = os.RemoveAll(config.Destination)
		return nil, fmt.Errorf("failed to copy source tree: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.Progress, "Copied %d files (%d bytes)\n", filesCopied, bytesCopied)
	}

	return &FetchResult{
		Source:      config.Source,
		Destination: config.Destination,
		SourceType:  SourceTypeLocal,
		FilesCopied: filesCopied,
		BytesCopied: bytesCopied,
	}, nil
}

// shouldSkip checks if a path should be skipped based on patterns
func shouldSkip(relPath string, patterns []string) bool {
	relPath = filepath.ToSlash(relPath)

	for _, pattern := range patterns {
		if relPath == pattern {
			return true
		}

		// Check if any path component matches
		for _, part := range strings.Split(relPath, "/") {
			if part == pattern {
				return true
			}
		}

		if strings.HasPrefix(relPath, pattern+"/") {
			return true
		}
	}

	return false
}

// copyFile copies a single file preserving permissions
func copyFile(src, dst string, info os.FileInfo) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return 0, err
	}

	// Handle symlinks
	if info.Mode()&os.ModeSymlink != 0 {
		target, err := os.Readlink(src)
		if err != nil {
			return 0, err
		}
		return 0, os.Symlink(target, dst)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode())
	if err != nil {
		return 0, err
	}
	defer dstFile.Close()

	written, err := io.Copy(dstFile, srcFile)
	if err != nil {
		return 0, err
	}

	return written, nil
}
