// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Main workspace logic

package workspace

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	// mutex ensures thread-safe run ID generation
	idMutex sync.Mutex
	// lastTimestamp prevents duplicate IDs in the same minute
	lastTimestamp string
	lastCounter   int
)

// ResetRunIDState resets the global run ID generation state (for testing)
func ResetRunIDState() {
	idMutex.Lock()
	defer idMutex.Unlock()
	lastTimestamp = ""
	lastCounter = 0
}

// GenerateRunID creates a unique run ID with format: forge-YYYYMMDD-HHMM-3hexchars
// or forge-YYYYMMDD-HHMM-NNN (counter format) for rapid successive calls
func GenerateRunID() (string, error) {
	idMutex.Lock()
	defer idMutex.Unlock()

	now := time.Now()
	timestamp := now.Format("20060102-1504")

	// Handle potential collisions within the same minute
	if timestamp == lastTimestamp {
		lastCounter++
		return fmt.Sprintf("%s-%s-%03d", RunIDPrefix, timestamp, lastCounter), nil
	}

	randomBytes := make([]byte, 2)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	randomHex := hex.EncodeToString(randomBytes)[:3]

	lastTimestamp = timestamp
	lastCounter = 0

	return fmt.Sprintf("%s-%s-%s", RunIDPrefix, timestamp, randomHex), nil
}

// New creates a new workspace with the given configuration
// If config is nil, uses current working directory as base
func New(config *Config) (*Workspace, error) {
	if config == nil {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current working directory: %w", err)
		}
		config = &Config{
			BaseDir: cwd,
			Keep:    false,
		}
	}

	runID, err := GenerateRunID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate run ID: %w", err)
	}

	workspacePath := filepath.Join(config.BaseDir, TempDirPrefix, runID)

	if err := os.MkdirAll(workspacePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create workspace directory %s: %w", workspacePath, err)
	}

	ws := &Workspace{
		RunID:   runID,
		Path:    workspacePath,
		BaseDir: config.BaseDir,
		keep:    config.Keep,
	}

	// The repo subdirectory itself is created by the fetcher (go-git
	// refuses to clone into an existing non-empty directory, so the
	// workspace only reserves the parent).
	return ws, nil
}

// RepoPath returns the path the source tree is checked out into
func (w *Workspace) RepoPath() string {
	return filepath.Join(w.Path, RepoSubdir)
}

// Exists checks if the workspace directory exists
func (w *Workspace) Exists() bool {
	info, err := os.Stat(w.Path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// SetKeep sets whether to preserve the workspace on cleanup
func (w *Workspace) SetKeep(keep bool) {
	w.keep = keep
}

// ShouldKeep returns whether the workspace should be preserved
func (w *Workspace) ShouldKeep() bool {
	return w.keep
}

// String returns a string representation of the workspace
func (w *Workspace) String() string {
	return fmt.Sprintf("Workspace{RunID: %s, Path: %s, Keep: %v}", w.RunID, w.Path, w.keep)
}
