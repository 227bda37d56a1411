// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Process runner tests

package tests

import (
	"context"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/sony-level/ferron-forge/internal/exec"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("tests drive commands through sh")
	}
}

func TestRun_CapturesStdout(t *testing.T) {
	skipWithoutShell(t)

	runner := exec.NewRunner(nil)
	result, err := runner.Run(context.Background(), &exec.Command{
		Name: "sh",
		Args: []string{"-c", "echo hello"},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stdout != "hello\n" {
		t.Errorf("Stdout = %q, want %q", result.Stdout, "hello\n")
	}
	if result.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", result.ExitCode)
	}
}

func TestRun_CapturesStderr(t *testing.T) {
	skipWithoutShell(t)

	var progress strings.Builder
	runner := exec.NewRunner(&exec.RunnerConfig{Progress: &progress})

	result, err := runner.Run(context.Background(), &exec.Command{
		Name: "sh",
		Args: []string{"-c", "echo diagnostics >&2"},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stderr != "diagnostics\n" {
		t.Errorf("Stderr = %q, want %q", result.Stderr, "diagnostics\n")
	}
	// Stderr is also streamed to the progress writer
	if progress.String() != "diagnostics\n" {
		t.Errorf("progress = %q, want streamed stderr", progress.String())
	}
}

func TestRun_ExitCode(t *testing.T) {
	skipWithoutShell(t)

	runner := exec.NewRunner(nil)
	result, err := runner.Run(context.Background(), &exec.Command{
		Name: "sh",
		Args: []string{"-c", "exit 3"},
	})
	if err == nil {
		t.Fatal("Run() expected error for non-zero exit")
	}
	if result.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", result.ExitCode)
	}
}

func TestRun_ExtraEnv(t *testing.T) {
	skipWithoutShell(t)

	runner := exec.NewRunner(nil)
	result, err := runner.Run(context.Background(), &exec.Command{
		Name: "sh",
		Args: []string{"-c", "echo $FORGE_TEST_VALUE"},
		Env:  []string{"FORGE_TEST_VALUE=injected"},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stdout != "injected\n" {
		t.Errorf("Stdout = %q, want injected env value", result.Stdout)
	}
}

func TestRun_WorkingDir(t *testing.T) {
	skipWithoutShell(t)

	dir := t.TempDir()
	runner := exec.NewRunner(nil)
	result, err := runner.Run(context.Background(), &exec.Command{
		Name: "sh",
		Args: []string{"-c", "pwd"},
		Dir:  dir,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !strings.Contains(strings.TrimSpace(result.Stdout), dir) {
		t.Errorf("pwd = %q, want it under %q", result.Stdout, dir)
	}
}

func TestRun_Timeout(t *testing.T) {
	skipWithoutShell(t)

	runner := exec.NewRunner(nil)
	start := time.Now()
	_, err := runner.Run(context.Background(), &exec.Command{
		Name:    "sh",
		Args:    []string{"-c", "sleep 30"},
		Timeout: 200 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("Run() expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 15*time.Second {
		t.Errorf("Run() took %v, the process group was not stopped promptly", elapsed)
	}
}

func TestRun_NoImplicitDeadline(t *testing.T) {
	skipWithoutShell(t)

	// A zero Timeout must not impose any deadline: the command runs to
	// completion however long it takes
	runner := exec.NewRunner(nil)
	result, err := runner.Run(context.Background(), &exec.Command{
		Name: "sh",
		Args: []string{"-c", "sleep 1 && echo finished"},
	})
	if err != nil {
		t.Fatalf("Run() error = %v, want unbounded command to complete", err)
	}
	if result.Stdout != "finished\n" {
		t.Errorf("Stdout = %q, want %q", result.Stdout, "finished\n")
	}
}

func TestRun_OverlongLineSurfacesError(t *testing.T) {
	skipWithoutShell(t)

	// A single line past the scanner limit must fail the run rather
	// than silently truncate the captured stream
	runner := exec.NewRunner(nil)
	_, err := runner.Run(context.Background(), &exec.Command{
		Name: "sh",
		Args: []string{"-c", "head -c 4194305 /dev/zero | tr '\\0' a"},
	})
	if err == nil {
		t.Fatal("Run() expected error for over-long output line")
	}
	if !strings.Contains(err.Error(), "stdout") {
		t.Errorf("error = %v, want a stdout read failure", err)
	}
}

func TestRun_ContextCancellation(t *testing.T) {
	skipWithoutShell(t)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	runner := exec.NewRunner(nil)
	_, err := runner.Run(ctx, &exec.Command{
		Name: "sh",
		Args: []string{"-c", "sleep 30"},
	})
	if err == nil {
		t.Fatal("Run() expected error after context cancellation")
	}
}

func TestRun_MissingBinary(t *testing.T) {
	runner := exec.NewRunner(nil)
	_, err := runner.Run(context.Background(), &exec.Command{
		Name: "definitely-not-a-real-binary-ferron-forge",
	})
	if err == nil {
		t.Fatal("Run() expected error for missing binary")
	}
}

func TestLookPath(t *testing.T) {
	skipWithoutShell(t)

	path, err := exec.LookPath("sh")
	if err != nil {
		t.Fatalf("LookPath(sh) error = %v", err)
	}
	if path == "" {
		t.Error("LookPath(sh) returned empty path")
	}

	if _, err := exec.LookPath("definitely-not-a-real-binary-ferron-forge"); err == nil {
		t.Error("LookPath() expected error for missing binary")
	}
}
