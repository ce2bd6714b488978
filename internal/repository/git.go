package repository

import "context"

// GitRepository defines the interface for Git operations.

type GitRepository interface {
	// CurrentBranch returns the short name of the checked-out branch.
	CurrentBranch(ctx context.Context) (string, error)
	// StagedChanges returns paths with modifications recorded in the
	// index, pending commit.
	StagedChanges(ctx context.Context) ([]string, error)
	// DirtyFiles returns tracked paths with uncommitted worktree
	// modifications.
	DirtyFiles(ctx context.Context) ([]string, error)
	// UntrackedFiles returns paths present in the worktree but not
	// registered with git, ignoring standard exclusions.
	UntrackedFiles(ctx context.Context) ([]string, error)
	// AddFile stages a single path.
	AddFile(ctx context.Context, path string) error
	// Tags returns the short names of all tags.
	Tags(ctx context.Context) ([]string, error)
}
