package cmd

import (
	"fmt"

	"github.com/relgate/relgate/internal/usecase"
	"github.com/spf13/cobra"
)

// NewNextVersionCmd creates the next-version command
func NewNextVersionCmd(uc *usecase.ResolveVersionUseCase) *cobra.Command {
	return &cobra.Command{
		Use:   "next-version",
		Short: "Derive the next release version from git tags",
		Long: `Derive the next release version.

The override environment value wins outright, a repository without
matching version tags falls back to first_version, and otherwise the
greatest tagged version is bumped in its least significant component.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			version, err := uc.Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}
