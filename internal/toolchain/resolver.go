// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Default toolchain resolution from rustup settings

package toolchain

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// ErrNoDefaultToolchain is returned when the rustup settings file exists
// but names no default toolchain. Callers treat it as "no override
// available" and proceed with ambient environment defaults.
var ErrNoDefaultToolchain = errors.New("rustup settings contain no default toolchain")

// RustupHome returns the rustup home directory: $RUSTUP_HOME if set,
// otherwise ~/.rustup
func RustupHome() (string, error) {
	envs := Envs{}
	if err := env.Parse(&envs); err != nil {
		return "", fmt.Errorf("failed to parse environment: %w", err)
	}

	if envs.RustupHome != "" {
		return envs.RustupHome, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}

	return filepath.Join(home, ".rustup"), nil
}

// Resolve reads settings.toml under the given rustup home and extracts
// the default toolchain name. Both failure kinds (missing/malformed file,
// missing field) are non-fatal to a build run.
func Resolve(rustupHome string) (*Resolved, error) {
	settingsPath := filepath.Join(rustupHome, SettingsFile)

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read rustup settings: %w", err)
	}

	var s settings
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse rustup settings: %w", err)
	}

	if s.DefaultToolchain == "" {
		return nil, ErrNoDefaultToolchain
	}

	return &Resolved{
		Toolchain:  s.DefaultToolchain,
		RustupHome: rustupHome,
	}, nil
}

// Environ returns the variables to inject into the build process
// environment so cargo's toolchain selection matches the local default
func (r *Resolved) Environ() []string {
	return []string{
		"RUSTUP_TOOLCHAIN=" + r.Toolchain,
		"RUSTUP_HOME=" + r.RustupHome,
	}
}
