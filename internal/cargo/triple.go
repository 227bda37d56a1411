// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Target triple validation and host triple discovery

package cargo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/sony-level/ferron-forge/internal/exec"
)

// ErrInvalidTarget is returned when a target triple string does not parse
// as a recognized platform triple. Checked before any compilation starts.
var ErrInvalidTarget = errors.New("invalid target triple")

// tripleComponent matches one dash-separated triple component,
// e.g. "x86_64", "unknown", "linux", "gnueabihf"
var tripleComponent = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)

// ParseTriple validates a target triple string. Rust triples have two to
// four dash-separated components (arch[-vendor]-os[-env]), e.g.
// "x86_64-unknown-linux-gnu" or "wasm32-wasip1".
func ParseTriple(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("%w: empty string", ErrInvalidTarget)
	}

	parts := strings.Split(s, "-")
	if len(parts) < 2 || len(parts) > 4 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTarget, s)
	}

	for _, part := range parts {
		if !tripleComponent.MatchString(part) {
			return "", fmt.Errorf("%w: %q", ErrInvalidTarget, s)
		}
	}

	return s, nil
}

// HostTriple asks rustc which platform it was built for
func (b *Builder) HostTriple(ctx context.Context) (string, error) {
	result, err := b.runner.Run(ctx, &exec.Command{
		Name: b.envs.Rustc,
		Args: []string{"-vV"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to query host triple: %w", err)
	}

	return ParseHostTriple(result.Stdout)
}

// ParseHostTriple extracts the "host:" line from `rustc -vV` output
func ParseHostTriple(output string) (string, error) {
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if triple, ok := strings.CutPrefix(line, "host: "); ok {
			return strings.TrimSpace(triple), nil
		}
	}

	return "", fmt.Errorf("rustc output contains no host line")
}
