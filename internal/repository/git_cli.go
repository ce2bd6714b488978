package repository

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultGitTimeout bounds each git invocation. A stuck git process
// should fail the gate rather than hang it forever.
const DefaultGitTimeout = 30 * time.Second

// cliGitRepository implements GitRepository by shelling out to the git
// binary. It exists for environments where the repository layout is not
// readable by the native backend (shallow CI clones, exotic extensions).
type cliGitRepository struct {
	// timeout for command execution
	timeout time.Duration
}

// NewGitCLIRepository creates a GitRepository backed by the git binary.
func NewGitCLIRepository() GitRepository {
	return &cliGitRepository{timeout: DefaultGitTimeout}
}

// executeGit runs a git command with timeout and captures stderr for
// error reporting.
func (r *cliGitRepository) executeGit(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("git %s timed out after %v", args[0], r.timeout)
		}
		errMsg := stderr.String()
		if errMsg != "" {
			return nil, fmt.Errorf("git %s failed: %w (stderr: %s)", args[0], err, strings.TrimSpace(errMsg))
		}
		return nil, fmt.Errorf("git %s failed: %w", args[0], err)
	}

	return stdout.Bytes(), nil
}

// splitLines splits command output into lines, dropping empty ones.
func splitLines(output []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(output), "\n") {
		if trimmed := strings.TrimRight(line, "\r"); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// parseCurrentBranch extracts the checked-out branch from `git branch`
// output, the line prefixed with "*". A detached checkout reports
// "* (HEAD detached at abc1234)"; that maps to "HEAD", matching what
// the native backend reports for a detached HEAD.
func parseCurrentBranch(lines []string) (string, error) {
	for _, line := range lines {
		if name, ok := strings.CutPrefix(line, "* "); ok {
			name = strings.TrimSpace(name)
			if strings.HasPrefix(name, "(") {
				return "HEAD", nil
			}
			return name, nil
		}
	}
	return "", fmt.Errorf("no current branch in git branch output")
}

// parseNameStatus extracts paths from `git diff --name-status` output,
// dropping the status column.
func parseNameStatus(lines []string) []string {
	var paths []string
	for _, line := range lines {
		if _, path, found := strings.Cut(line, "\t"); found {
			paths = append(paths, path)
		}
	}
	return paths
}

// CurrentBranch returns the checked-out branch name.
func (r *cliGitRepository) CurrentBranch(ctx context.Context) (string, error) {
	output, err := r.executeGit(ctx, "branch")
	if err != nil {
		return "", err
	}
	return parseCurrentBranch(splitLines(output))
}

// StagedChanges returns paths with modifications recorded in the index.
func (r *cliGitRepository) StagedChanges(ctx context.Context) ([]string, error) {
	output, err := r.executeGit(ctx, "diff", "--cached", "--name-status")
	if err != nil {
		return nil, err
	}
	return parseNameStatus(splitLines(output)), nil
}

// DirtyFiles returns tracked paths with unstaged modifications.
func (r *cliGitRepository) DirtyFiles(ctx context.Context) ([]string, error) {
	output, err := r.executeGit(ctx, "diff", "--name-only")
	if err != nil {
		return nil, err
	}
	return splitLines(output), nil
}

// UntrackedFiles returns paths not registered with git.
func (r *cliGitRepository) UntrackedFiles(ctx context.Context) ([]string, error) {
	output, err := r.executeGit(ctx, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, err
	}
	return splitLines(output), nil
}

// AddFile stages a single path.
func (r *cliGitRepository) AddFile(ctx context.Context, path string) error {
	if _, err := r.executeGit(ctx, "add", "--", path); err != nil {
		return err
	}
	return nil
}

// Tags returns the short names of all tags.
func (r *cliGitRepository) Tags(ctx context.Context) ([]string, error) {
	output, err := r.executeGit(ctx, "tag", "--list")
	if err != nil {
		return nil, err
	}
	return splitLines(output), nil
}
