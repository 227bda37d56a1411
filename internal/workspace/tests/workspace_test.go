// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Workspace tests

package workspace_test

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/sony-level/ferron-forge/internal/workspace"
)

func TestGenerateRunID(t *testing.T) {
	workspace.ResetRunIDState()

	runID, err := workspace.GenerateRunID()
	if err != nil {
		t.Fatalf("GenerateRunID() error = %v", err)
	}

	// Check format: forge-YYYYMMDD-HHMM-xxx
	pattern := `^forge-\d{8}-\d{4}-[a-f0-9]{3}\d*$`
	matched, err := regexp.MatchString(pattern, runID)
	if err != nil {
		t.Fatalf("regexp.MatchString error = %v", err)
	}
	if !matched {
		t.Errorf("GenerateRunID() = %v, want format forge-YYYYMMDD-HHMM-xxx", runID)
	}

	if !strings.HasPrefix(runID, workspace.RunIDPrefix+"-") {
		t.Errorf("GenerateRunID() = %v, want prefix %s-", runID, workspace.RunIDPrefix)
	}
}

func TestGenerateRunID_Uniqueness(t *testing.T) {
	workspace.ResetRunIDState()

	const numIDs = 100
	ids := make(map[string]bool)

	for i := 0; i < numIDs; i++ {
		runID, err := workspace.GenerateRunID()
		if err != nil {
			t.Fatalf("GenerateRunID() error = %v", err)
		}
		if ids[runID] {
			t.Errorf("Duplicate run ID generated: %v", runID)
		}
		ids[runID] = true
	}
}

func TestNew(t *testing.T) {
	baseDir := t.TempDir()

	ws, err := workspace.New(&workspace.Config{BaseDir: baseDir})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if !ws.Exists() {
		t.Error("workspace directory should exist after New()")
	}

	wantParent := filepath.Join(baseDir, workspace.TempDirPrefix)
	if filepath.Dir(ws.Path) != wantParent {
		t.Errorf("workspace path = %q, want it under %q", ws.Path, wantParent)
	}

	if filepath.Dir(ws.RepoPath()) != ws.Path {
		t.Errorf("RepoPath() = %q, want a subdirectory of %q", ws.RepoPath(), ws.Path)
	}

	// The repo subdirectory is reserved but not created: go-git needs
	// the clone target to not exist yet
	if _, err := os.Stat(ws.RepoPath()); !os.IsNotExist(err) {
		t.Errorf("RepoPath() should not exist before acquisition")
	}
}

func TestCleanup(t *testing.T) {
	baseDir := t.TempDir()

	ws, err := workspace.New(&workspace.Config{BaseDir: baseDir})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := ws.Cleanup(); err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}

	if ws.Exists() {
		t.Error("workspace should not exist after Cleanup()")
	}
}

func TestCleanup_Keep(t *testing.T) {
	baseDir := t.TempDir()

	ws, err := workspace.New(&workspace.Config{BaseDir: baseDir, Keep: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if !ws.ShouldKeep() {
		t.Error("ShouldKeep() = false, want true")
	}

	if err := ws.Cleanup(); err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}

	if !ws.Exists() {
		t.Error("kept workspace should survive Cleanup()")
	}
}

func TestCleanupAll(t *testing.T) {
	baseDir := t.TempDir()

	for i := 0; i < 3; i++ {
		if _, err := workspace.New(&workspace.Config{BaseDir: baseDir, Keep: true}); err != nil {
			t.Fatalf("New() error = %v", err)
		}
	}

	if err := workspace.CleanupAll(baseDir); err != nil {
		t.Fatalf("CleanupAll() error = %v", err)
	}

	tempDir := filepath.Join(baseDir, workspace.TempDirPrefix)
	if _, err := os.Stat(tempDir); !os.IsNotExist(err) {
		t.Errorf("temp directory should not exist after CleanupAll()")
	}
}

func TestCleanupStale(t *testing.T) {
	baseDir := t.TempDir()

	if _, err := workspace.New(&workspace.Config{BaseDir: baseDir, Keep: true}); err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Fresh workspaces are not stale
	cleaned, err := workspace.CleanupStale(baseDir, 1)
	if err != nil {
		t.Fatalf("CleanupStale() error = %v", err)
	}
	if cleaned != 0 {
		t.Errorf("CleanupStale() = %d, want 0 fresh workspaces removed", cleaned)
	}

	// Everything is stale at age zero
	cleaned, err = workspace.CleanupStale(baseDir, 0)
	if err != nil {
		t.Fatalf("CleanupStale() error = %v", err)
	}
	if cleaned != 1 {
		t.Errorf("CleanupStale() = %d, want 1", cleaned)
	}
}
