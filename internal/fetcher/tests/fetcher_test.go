// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Fetcher tests

package tests

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/sony-level/ferron-forge/internal/fetcher"
)

func TestDetectSourceType(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected string
	}{
		// Git URLs
		{"https", "https://github.com/ferronweb/ferron.git", fetcher.SourceTypeGit},
		{"https no suffix", "https://gitlab.com/user/repo", fetcher.SourceTypeGit},
		{"http", "http://git.example.com/repo.git", fetcher.SourceTypeGit},
		{"git scheme", "git://example.com/repo.git", fetcher.SourceTypeGit},
		{"ssh scheme", "ssh://git@example.com/repo.git", fetcher.SourceTypeGit},
		{"scp shorthand", "git@github.com:ferronweb/ferron.git", fetcher.SourceTypeGit},

		// Local paths
		{"current dir", ".", fetcher.SourceTypeLocal},
		{"parent dir", "..", fetcher.SourceTypeLocal},
		{"relative path", "./some/path", fetcher.SourceTypeLocal},
		{"absolute path", "/tmp", fetcher.SourceTypeLocal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := fetcher.DetectSourceType(tt.source)
			if result != tt.expected {
				t.Errorf("DetectSourceType(%q) = %q, want %q", tt.source, result, tt.expected)
			}
		})
	}
}

func TestIsGitURL(t *testing.T) {
	invalid := []string{
		".",
		"./local/path",
		"some-random-string",
	}
	for _, source := range invalid {
		if fetcher.IsGitURL(source) {
			t.Errorf("IsGitURL(%q) = true, want false", source)
		}
	}
}

func TestCandidateRevisions(t *testing.T) {
	candidates := fetcher.CandidateRevisions("v1.2.3")

	want := []string{
		"v1.2.3",
		"refs/tags/v1.2.3",
		"refs/remotes/origin/v1.2.3",
	}
	if !slices.Equal(candidates, want) {
		t.Errorf("CandidateRevisions() = %v, want %v", candidates, want)
	}
}

func TestCloneReferences(t *testing.T) {
	refs := fetcher.CloneReferences("v1.2.3")

	var names []string
	for _, ref := range refs {
		names = append(names, ref.String())
	}

	// Branch namespace first, so "main" pins the clone to the branch
	// before the tag lookup is ever tried
	want := []string{
		"refs/heads/v1.2.3",
		"refs/tags/v1.2.3",
	}
	if !slices.Equal(names, want) {
		t.Errorf("CloneReferences() = %v, want %v", names, want)
	}
}

func TestValidateLocalPath(t *testing.T) {
	dir := t.TempDir()
	if err := fetcher.ValidateLocalPath(dir); err != nil {
		t.Errorf("ValidateLocalPath(%q) error = %v", dir, err)
	}

	if err := fetcher.ValidateLocalPath(filepath.Join(dir, "missing")); err == nil {
		t.Error("ValidateLocalPath() expected error for missing path")
	}

	file := filepath.Join(dir, "regular-file")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := fetcher.ValidateLocalPath(file); err == nil {
		t.Error("ValidateLocalPath() expected error for non-directory")
	}
}

func TestFetch_LocalCopy(t *testing.T) {
	src := t.TempDir()

	// Source tree with a file, a nested file, and a build-output dir
	// that must not be copied
	if err := os.WriteFile(filepath.Join(src, "Cargo.toml"), []byte("[package]\nname = \"ferron\"\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(src, "src"), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "src", "main.rs"), []byte("fn main() {}"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(src, "target", "release"), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "target", "release", "stale"), []byte("old build"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	dest := filepath.Join(t.TempDir(), "repo")

	result, err := fetcher.Fetch(context.Background(), &fetcher.FetchConfig{
		Source:      src,
		Destination: dest,
	})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if result.SourceType != fetcher.SourceTypeLocal {
		t.Errorf("SourceType = %q, want local", result.SourceType)
	}
	if result.FilesCopied != 2 {
		t.Errorf("FilesCopied = %d, want 2", result.FilesCopied)
	}

	if _, err := os.Stat(filepath.Join(dest, "src", "main.rs")); err != nil {
		t.Errorf("expected copied file src/main.rs: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "target")); !os.IsNotExist(err) {
		t.Error("build output directory should not have been copied")
	}
}

func TestFetch_Validation(t *testing.T) {
	ctx := context.Background()

	if _, err := fetcher.Fetch(ctx, nil); err == nil {
		t.Error("Fetch(nil) expected error")
	}

	if _, err := fetcher.Fetch(ctx, &fetcher.FetchConfig{Destination: "/tmp/x"}); err == nil {
		t.Error("Fetch() expected error for empty source")
	}

	if _, err := fetcher.Fetch(ctx, &fetcher.FetchConfig{Source: "."}); err == nil {
		t.Error("Fetch() expected error for empty destination")
	}

	// Git sources need a reference to materialize
	if _, err := fetcher.Fetch(ctx, &fetcher.FetchConfig{
		Source:      "https://github.com/ferronweb/ferron.git",
		Destination: filepath.Join(t.TempDir(), "repo"),
	}); err == nil {
		t.Error("Fetch() expected error for empty reference")
	}
}
