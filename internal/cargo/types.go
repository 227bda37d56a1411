// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Build orchestrator types

package cargo

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// CompileKind selects host or cross-target compilation. Exactly one is
// active per run.
type CompileKind int

const (
	// KindHost compiles for the machine running the tool
	KindHost CompileKind = iota
	// KindTarget cross-compiles for an explicit target triple
	KindTarget
)

// ReleaseProfile is the cargo profile every build uses
const ReleaseProfile = "release"

// Envs are the external tool overrides honored by the builder.
// Cargo itself honors $CARGO and $RUSTC, so the builder does too.
type Envs struct {
	Cargo string `env:"CARGO" envDefault:"cargo"`
	Rustc string `env:"RUSTC" envDefault:"rustc"`
}

// LoadEnvs reads the tool overrides from the process environment
func LoadEnvs() (Envs, error) {
	envs := Envs{}
	if err := env.Parse(&envs); err != nil {
		return envs, fmt.Errorf("failed to parse environment: %w", err)
	}
	return envs, nil
}

// CompileSpec describes one release build of a checked-out workspace.
// Immutable once constructed.
type CompileSpec struct {
	WorkspaceDir string      // Root of the checked-out source tree
	Kind         CompileKind // Host or explicit target
	Target       string      // Target triple, set when Kind == KindTarget
	Modules      []string    // Feature modules to enable, unqualified

	// UseDefaults is true when the caller supplied no module list at all.
	// That state means "keep the package's default feature set" and is
	// distinct from an explicitly empty selection.
	UseDefaults bool

	Toolchain []string // Extra KEY=VALUE pairs for the cargo process (rustup variables)
}

// Binary is one produced binary artifact
type Binary struct {
	Path string
}

// BuildOutput is what the build system reports back: the produced
// binaries in emission order and the authoritative triple string
type BuildOutput struct {
	Binaries []Binary
	Triple   string
}

// artifactMessage is the subset of cargo's JSON message stream we decode
type artifactMessage struct {
	Reason     string  `json:"reason"`
	Executable *string `json:"executable"`
}
