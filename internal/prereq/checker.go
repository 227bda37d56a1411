// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Prerequisite checker for external tool existence and versions

package prereq

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sony-level/ferron-forge/internal/exec"
)

// versionTimeout bounds the version probe; a tool that hangs here would
// otherwise stall the run before any real work starts
const versionTimeout = 30 * time.Second

// Checker verifies external tool existence
type Checker struct {
	runner *exec.Runner
}

// NewChecker creates a new prerequisite checker
func NewChecker(config *exec.RunnerConfig) *Checker {
	return &Checker{runner: exec.NewRunner(config)}
}

// Check probes every tool and returns its resolved path and version.
// A missing tool is a fatal configuration error, raised before any
// network transfer starts.
func (c *Checker) Check(ctx context.Context, tools []Tool) ([]*CheckResult, error) {
	results := make([]*CheckResult, 0, len(tools))

	for _, tool := range tools {
		path, err := exec.LookPath(tool.Name)
		if err != nil {
			return nil, fmt.Errorf("required tool %q not found in PATH: %w", tool.Name, err)
		}

		result := &CheckResult{Tool: tool.Name, Path: path}

		if len(tool.VersionArgs) > 0 {
			out, err := c.runner.Run(ctx, &exec.Command{
				Name:    path,
				Args:    tool.VersionArgs,
				Timeout: versionTimeout,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to probe %s version: %w", tool.Name, err)
			}
			result.Version = firstLine(out.Stdout)
		}

		results = append(results, result)
	}

	return results, nil
}

// firstLine returns the first non-empty line of a tool's output
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
