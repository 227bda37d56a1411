// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Cargo.toml manifest loading and workspace member enumeration

package cargo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ManifestFile is the cargo manifest file name
const ManifestFile = "Cargo.toml"

// Manifest is the parsed view of a workspace root Cargo.toml
type Manifest struct {
	RootPackage string   // Root package name, empty for virtual workspaces
	Members     []string // Every member package name, root included
}

// rawManifest mirrors the subset of Cargo.toml we read
type rawManifest struct {
	Package   *rawPackage   `toml:"package"`
	Workspace *rawWorkspace `toml:"workspace"`
}

type rawPackage struct {
	Name string `toml:"name"`
}

type rawWorkspace struct {
	Members []string `toml:"members"`
}

// FeatureNamespace returns the package name feature flags are scoped to
func (m *Manifest) FeatureNamespace() string {
	if m.RootPackage != "" {
		return m.RootPackage
	}
	if len(m.Members) > 0 {
		return m.Members[0]
	}
	return ""
}

// LoadManifest parses the Cargo.toml at the workspace root and enumerates
// every member package name. Workspace member entries may be glob patterns
// ("crates/*"); each match is resolved to its package name by reading the
// member manifest.
func LoadManifest(workspaceDir string) (*Manifest, error) {
	var raw rawManifest
	if err := readManifest(filepath.Join(workspaceDir, ManifestFile), &raw); err != nil {
		return nil, err
	}

	manifest := &Manifest{}
	seen := make(map[string]bool)

	if raw.Package != nil && raw.Package.Name != "" {
		manifest.RootPackage = raw.Package.Name
		manifest.Members = append(manifest.Members, raw.Package.Name)
		seen[raw.Package.Name] = true
	}

	if raw.Workspace != nil {
		for _, pattern := range raw.Workspace.Members {
			matches, err := filepath.Glob(filepath.Join(workspaceDir, filepath.FromSlash(pattern)))
			if err != nil {
				return nil, fmt.Errorf("invalid workspace member pattern %q: %w", pattern, err)
			}

			for _, memberDir := range matches {
				info, err := os.Stat(memberDir)
				if err != nil || !info.IsDir() {
					continue
				}

				var member rawManifest
				if err := readManifest(filepath.Join(memberDir, ManifestFile), &member); err != nil {
					return nil, fmt.Errorf("failed to load workspace member %q: %w", pattern, err)
				}

				if member.Package == nil || member.Package.Name == "" {
					return nil, fmt.Errorf("workspace member %s has no package name", memberDir)
				}

				if !seen[member.Package.Name] {
					manifest.Members = append(manifest.Members, member.Package.Name)
					seen[member.Package.Name] = true
				}
			}
		}
	}

	if len(manifest.Members) == 0 {
		return nil, fmt.Errorf("no buildable packages found in %s", workspaceDir)
	}

	return manifest, nil
}

// readManifest reads and parses a single Cargo.toml
func readManifest(path string, out *rawManifest) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}

	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	return nil
}
