/*
Copyright © 2026 ソニーレベル <C7kali3@gmail.com>

*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/sony-level/ferron-forge/internal/archive"
	"github.com/sony-level/ferron-forge/internal/cargo"
	"github.com/sony-level/ferron-forge/internal/exec"
	"github.com/sony-level/ferron-forge/internal/fetcher"
	"github.com/sony-level/ferron-forge/internal/prereq"
	"github.com/sony-level/ferron-forge/internal/toolchain"
	"github.com/sony-level/ferron-forge/internal/workspace"
)

// executeForge runs the full pipeline: workspace, prerequisites, toolchain
// resolution, acquisition, compilation, and archive assembly - strictly in
// that order, with the workspace outliving both the build and the asset walk.
func executeForge(ctx context.Context, useDefaultModules bool) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	fmt.Println("Creating temporary directory...")
	ws, err := workspace.New(&workspace.Config{
		BaseDir: cwd,
		Keep:    keepWorkspace,
	})
	if err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}
	logger.Debug("workspace created", "run_id", ws.RunID, "path", ws.Path)

	// The workspace is removed whatever happens below, unless --keep
	defer func() {
		if ws.ShouldKeep() {
			logger.Info("workspace preserved", "path", ws.Path)
			return
		}
		if cleanupErr := ws.Cleanup(); cleanupErr != nil {
			logger.Warn("workspace cleanup failed", "err", cleanupErr)
		}
	}()

	runnerConfig := &exec.RunnerConfig{
		Verbose:  verbose,
		Progress: os.Stderr,
	}

	envs, err := cargo.LoadEnvs()
	if err != nil {
		return err
	}

	// The build delegates to external binaries; verify them before any
	// network transfer starts
	checker := prereq.NewChecker(runnerConfig)
	checks, err := checker.Check(ctx, prereq.BuildTools(envs))
	if err != nil {
		return err
	}
	for _, check := range checks {
		logger.Debug("prerequisite found", "tool", check.Tool, "path", check.Path, "version", check.Version)
	}

	// Toolchain resolution failures degrade gracefully: the build then
	// runs with whatever the ambient environment selects
	var toolchainEnv []string
	if rustupHome, err := toolchain.RustupHome(); err == nil {
		resolved, err := toolchain.Resolve(rustupHome)
		if err != nil {
			logger.Debug("no toolchain override available", "err", err)
		} else {
			toolchainEnv = resolved.Environ()
			logger.Debug("resolved toolchain", "toolchain", resolved.Toolchain, "rustup_home", resolved.RustupHome)
		}
	}

	fmt.Println("Cloning the Git repository...")
	fetchResult, err := fetcher.Fetch(ctx, &fetcher.FetchConfig{
		Source:      repository,
		Reference:   ferronVersion,
		Destination: ws.RepoPath(),
		Verbose:     verbose,
		Progress:    os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("failed to acquire source tree: %w", err)
	}
	if fetchResult.CommitHash != "" {
		logger.Debug("source acquired", "reference", fetchResult.Reference, "commit", fetchResult.CommitHash)
	}

	fmt.Println("Compiling Ferron...")
	builder, err := cargo.NewBuilder(runnerConfig)
	if err != nil {
		return err
	}

	spec := &cargo.CompileSpec{
		WorkspaceDir: fetchResult.Destination,
		Kind:         cargo.KindHost,
		Modules:      modules,
		UseDefaults:  useDefaultModules,
		Toolchain:    toolchainEnv,
	}
	if target != "" {
		triple, err := cargo.ParseTriple(target)
		if err != nil {
			return err
		}
		spec.Kind = cargo.KindTarget
		spec.Target = triple
	}

	buildOutput, err := builder.Compile(ctx, spec)
	if err != nil {
		return err
	}
	logger.Debug("compilation finished", "binaries", len(buildOutput.Binaries), "triple", buildOutput.Triple)

	fmt.Println("Creating ZIP archive...")
	binaries := make([]string, 0, len(buildOutput.Binaries))
	for _, binary := range buildOutput.Binaries {
		binaries = append(binaries, binary.Path)
	}

	if err := archive.Assemble(&archive.AssembleConfig{
		Binaries:     binaries,
		OutputPath:   output,
		WorkspaceDir: fetchResult.Destination,
		Triple:       buildOutput.Triple,
	}); err != nil {
		return err
	}

	fmt.Printf("Built Ferron for %q target successfully!\n", buildOutput.Triple)

	return nil
}
