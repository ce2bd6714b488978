package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "relgate",
	Short: "A CLI tool for gating releases on git worktree state",
	Long: `relgate verifies a git working copy is clean enough to release from
and derives the next release version from existing tags.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}
