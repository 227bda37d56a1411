// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Archive assembler types and constants

package archive

const (
	// ConfigEntryName is the well-known name of the configuration entry
	ConfigEntryName = "ferron.yaml"

	// DefaultConfig is the fixed default runtime configuration bundled
	// into every archive
	DefaultConfig = "global:\n  wwwroot: wwwroot"

	// AssetsSubdir is the static-asset subtree mirrored from the workspace
	AssetsSubdir = "wwwroot"

	// binaryMode marks binary entries executable on extraction
	binaryMode = 0o755
)

// AssembleConfig holds everything the assembler packages
type AssembleConfig struct {
	Binaries     []string // Paths of the compiled binary artifacts, in build order
	OutputPath   string   // Output archive path; an existing file is replaced
	WorkspaceDir string   // Root of the checked-out source tree (asset source)
	Triple       string   // Resolved target triple, for the archive comment
}
