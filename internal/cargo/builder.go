// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Release build driving via the cargo binary

package cargo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sony-level/ferron-forge/internal/exec"
)

// Builder drives the cargo binary against a checked-out workspace
type Builder struct {
	runner *exec.Runner
	envs   Envs
}

// NewBuilder creates a build orchestrator. Tool paths honor the $CARGO
// and $RUSTC overrides.
func NewBuilder(config *exec.RunnerConfig) (*Builder, error) {
	envs, err := LoadEnvs()
	if err != nil {
		return nil, err
	}

	return &Builder{
		runner: exec.NewRunner(config),
		envs:   envs,
	}, nil
}

// CargoPath returns the cargo binary the builder invokes
func (b *Builder) CargoPath() string {
	return b.envs.Cargo
}

// RustcPath returns the rustc binary the builder queries
func (b *Builder) RustcPath() string {
	return b.envs.Rustc
}

// Compile runs a release build of every workspace member and returns the
// produced binaries plus the authoritative triple string.
// Cargo's human diagnostics stream to the runner's progress writer
// verbatim; any compilation failure aborts with the exit error.
func (b *Builder) Compile(ctx context.Context, spec *CompileSpec) (*BuildOutput, error) {
	if spec.Kind == KindTarget {
		if _, err := ParseTriple(spec.Target); err != nil {
			return nil, err
		}
	}

	manifest, err := LoadManifest(spec.WorkspaceDir)
	if err != nil {
		return nil, err
	}

	result, err := b.runner.Run(ctx, &exec.Command{
		Name: b.envs.Cargo,
		Args: BuildArgs(manifest, spec),
		Dir:  spec.WorkspaceDir,
		Env:  spec.Toolchain,
	})
	if err != nil {
		return nil, fmt.Errorf("cargo build failed: %w", err)
	}

	binaries, err := ParseArtifacts(strings.NewReader(result.Stdout))
	if err != nil {
		return nil, err
	}

	triple := spec.Target
	if spec.Kind == KindHost {
		triple, err = b.HostTriple(ctx)
		if err != nil {
			return nil, err
		}
	}

	return &BuildOutput{
		Binaries: binaries,
		Triple:   triple,
	}, nil
}

// BuildArgs constructs the cargo invocation for a compile specification.
// Every workspace member is selected explicitly; an explicit module list
// replaces the default feature set, while an absent one retains it.
func BuildArgs(manifest *Manifest, spec *CompileSpec) []string {
	args := []string{"build", "--" + ReleaseProfile, "--message-format=json-render-diagnostics"}

	for _, member := range manifest.Members {
		args = append(args, "-p", member)
	}

	if spec.Kind == KindTarget {
		args = append(args, "--target", spec.Target)
	}

	if !spec.UseDefaults {
		args = append(args, "--no-default-features")
		if features := QualifyFeatures(manifest.FeatureNamespace(), spec.Modules); len(features) > 0 {
			args = append(args, "--features", strings.Join(features, ","))
		}
	}

	return args
}

// QualifyFeatures prefixes each module name with the owning package's
// namespace to form fully qualified feature flags, e.g. "cache" becomes
// "ferron/cache"
func QualifyFeatures(pkg string, modules []string) []string {
	features := make([]string, 0, len(modules))
	for _, module := range modules {
		features = append(features, fmt.Sprintf("%s/%s", pkg, module))
	}
	return features
}

// ParseArtifacts decodes cargo's JSON message stream and collects the
// produced binary artifacts in emission order. Only compiler-artifact
// messages with a non-null executable produce binaries.
func ParseArtifacts(r io.Reader) ([]Binary, error) {
	var binaries []Binary

	decoder := json.NewDecoder(r)
	for decoder.More() {
		var message artifactMessage
		if err := decoder.Decode(&message); err != nil {
			return nil, fmt.Errorf("failed to parse cargo output: %w", err)
		}

		if message.Reason == "compiler-artifact" && message.Executable != nil {
			binaries = append(binaries, Binary{Path: *message.Executable})
		}
	}

	return binaries, nil
}
