// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Toolchain resolver types

package toolchain

// SettingsFile is the rustup settings file name under the rustup home
const SettingsFile = "settings.toml"

// Envs are the rustup environment overrides honored by the resolver
type Envs struct {
	RustupHome string `env:"RUSTUP_HOME"`
}

// Resolved names the default toolchain discovered from rustup settings.
// It is injected into the build process environment rather than exported
// process-wide, keeping the compile step free of ambient state.
type Resolved struct {
	Toolchain  string
	RustupHome string
}

// settings mirrors the subset of rustup's settings.toml we read
type settings struct {
	DefaultToolchain string `toml:"default_toolchain"`
}
