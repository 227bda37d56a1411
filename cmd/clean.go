/*
Copyright © 2026 ソニーレベル <C7kali3@gmail.com>

*/
package cmd

import (
	"fmt"
	"os"

	"github.com/sony-level/ferron-forge/internal/workspace"
	"github.com/spf13/cobra"
)

var staleHours int

// cleanCmd removes leftover workspaces from interrupted runs
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove leftover forge workspaces",
	Long: `Remove .forge-temp workspaces left behind by interrupted runs.

By default every workspace under the current directory is removed.
With --stale, only workspaces older than the given number of hours go.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}

		if staleHours > 0 {
			cleaned, err := workspace.CleanupStale(cwd, staleHours)
			if err != nil {
				return err
			}
			fmt.Printf("Removed %d stale workspace(s)\n", cleaned)
			return nil
		}

		if err := workspace.CleanupAll(cwd); err != nil {
			return err
		}
		fmt.Println("Removed all forge workspaces")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().IntVar(&staleHours, "stale", 0, "Only remove workspaces older than this many hours")
}
