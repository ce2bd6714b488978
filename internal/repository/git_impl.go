package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// gitRepository is the go-git backed implementation of GitRepository.

type gitRepository struct {
	repo *git.Repository
}

// NewGitRepository opens the repository in the current directory.
func NewGitRepository() (GitRepository, error) {
	repo, err := git.PlainOpen(".")
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}
	return &gitRepository{repo: repo}, nil
}

// CurrentBranch returns the name of the checked-out branch.
func (r *gitRepository) CurrentBranch(_ context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	return head.Name().Short(), nil
}

// worktreeStatus fetches the status map once per query.
func (r *gitRepository) worktreeStatus() (git.Status, error) {
	w, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	status, err := w.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	return status, nil
}

// StagedChanges returns paths with modifications recorded in the index.
func (r *gitRepository) StagedChanges(_ context.Context) ([]string, error) {
	status, err := r.worktreeStatus()
	if err != nil {
		return nil, err
	}
	var paths []string
	for path, fileStatus := range status {
		if fileStatus.Staging != git.Unmodified && fileStatus.Staging != git.Untracked {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// DirtyFiles returns tracked paths with unstaged modifications.
func (r *gitRepository) DirtyFiles(_ context.Context) ([]string, error) {
	status, err := r.worktreeStatus()
	if err != nil {
		return nil, err
	}
	var paths []string
	for path, fileStatus := range status {
		if fileStatus.Worktree != git.Unmodified && fileStatus.Worktree != git.Untracked {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// UntrackedFiles returns paths not registered with git.
func (r *gitRepository) UntrackedFiles(_ context.Context) ([]string, error) {
	status, err := r.worktreeStatus()
	if err != nil {
		return nil, err
	}
	var paths []string
	for path, fileStatus := range status {
		if fileStatus.Worktree == git.Untracked {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// AddFile stages a single path.
func (r *gitRepository) AddFile(_ context.Context, path string) error {
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	if _, err := w.Add(path); err != nil {
		return fmt.Errorf("failed to add %s: %w", path, err)
	}
	return nil
}

// Tags returns the short names of all tags.
func (r *gitRepository) Tags(_ context.Context) ([]string, error) {
	tagRefs, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	var tags []string
	if err := tagRefs.ForEach(func(ref *plumbing.Reference) error {
		tags = append(tags, ref.Name().Short())
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}
	sort.Strings(tags)
	return tags, nil
}
