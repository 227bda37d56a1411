/*
Copyright © 2026 ソニーレベル <C7kali3@gmail.com>

*/
package cmd

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version is the semantic version (set via -ldflags)
var Version = "dev"

// DefaultRepository is the upstream Ferron source repository
const DefaultRepository = "https://github.com/ferronweb/ferron.git"

var (
	// Build flags
	ferronVersion string
	modules       []string
	target        string
	repository    string
	output        string

	// Global flags
	keepWorkspace bool
	verbose       bool
)

// rootCmd represents the base command - runs the build directly without subcommand
var rootCmd = &cobra.Command{
	Use:   "ferron-forge",
	Short: "A compilation tool for easy compiling of Ferron web server",
	Long: `Ferron Forge builds a custom distribution of the Ferron web server.

It clones the requested Git reference into an ephemeral workspace,
compiles every workspace package in release mode with the selected
feature modules (optionally cross-compiled), and packages the binaries
together with a default ferron.yaml and the wwwroot static assets into
a single ZIP archive.

Examples:
  ferron-forge
  ferron-forge -v v1.2.3 -m cache -m cgi
  ferron-forge -t x86_64-unknown-linux-musl -o ferron-musl.zip
  ferron-forge -r /path/to/ferron-checkout --keep`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// An untouched --modules flag means "use the package's default
		// feature set" - distinct from explicitly selecting zero modules
		return executeForge(cmd.Context(), !cmd.Flags().Changed("modules"))
	},
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&ferronVersion, "ferron-version", "v", "main", "Ferron version or Git reference name to compile")
	rootCmd.Flags().StringSliceVarP(&modules, "modules", "m", nil, "Feature modules to enable (default: the package's default feature set)")
	rootCmd.Flags().StringVarP(&target, "target", "t", "", "Target triple for cross-compilation (default: host platform)")
	rootCmd.Flags().StringVarP(&repository, "repository", "r", DefaultRepository, "Git repository URL or local path containing Ferron's source code")
	rootCmd.Flags().StringVarP(&output, "output", "o", "ferron-custom.zip", "Path to the output ZIP archive")

	// Persistent flags - available to all subcommands
	rootCmd.PersistentFlags().BoolVar(&keepWorkspace, "keep", false, "Keep workspace directory after the run (.forge-temp/<run-id>)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output")
}
