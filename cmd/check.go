package cmd

import (
	"github.com/relgate/relgate/internal/usecase"
	"github.com/spf13/cobra"
)

// NewCheckCmd creates the check command
func NewCheckCmd(uc *usecase.CheckWorktreeUseCase) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the working copy is clean enough to release",
		Long: `Verify the git working copy is safe to release from.

Staged changes and dirty tracked files outside the allow-list always
block the release. Untracked files are handled per the configured
untracked_files policy (die, warn or ignore), optionally staging
allow-listed untracked files first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := uc.Execute(cmd.Context())
			return err
		},
	}
}
