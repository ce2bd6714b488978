package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// UntrackedPolicy controls how untracked files affect the release gate.
type UntrackedPolicy string

const (
	// UntrackedDie blocks the release when untracked files remain.
	UntrackedDie UntrackedPolicy = "die"
	// UntrackedWarn logs untracked files but does not block.
	UntrackedWarn UntrackedPolicy = "warn"
	// UntrackedIgnore suppresses per-file output for untracked files.
	UntrackedIgnore UntrackedPolicy = "ignore"
)

// ParseUntrackedPolicy validates a policy string.
func ParseUntrackedPolicy(s string) (UntrackedPolicy, error) {
	switch UntrackedPolicy(s) {
	case UntrackedDie, UntrackedWarn, UntrackedIgnore:
		return UntrackedPolicy(s), nil
	}
	return "", fmt.Errorf("invalid untracked_files policy: %q (expected die, warn or ignore)", s)
}

// WorktreeStatus is the repository state observed during a single gate
// run. It is derived from git queries and never persisted.
type WorktreeStatus struct {
	Branch    string
	Staged    []string
	Dirty     []string
	Untracked []string
}

// CheckReport is the outcome of one cleanliness gate run.
type CheckReport struct {
	SessionID  string    `json:"session_id"`
	Branch     string    `json:"branch"`
	Clean      bool      `json:"clean"`
	AddedFiles []string  `json:"added_files,omitempty"`
	Untracked  []string  `json:"untracked,omitempty"`
	CheckedAt  time.Time `json:"checked_at"`
}

// UntrackedPhrase renders an untracked-file count with correct
// singular/plural phrasing: "1 untracked file", "2 untracked files".
func UntrackedPhrase(n int) string {
	if n == 1 {
		return "1 untracked file"
	}
	return fmt.Sprintf("%d untracked files", n)
}

// ErrReleaseBlocked marks errors that must abort the current release
// attempt. There are no retries; the operator fixes the worktree and
// runs the gate again.
var ErrReleaseBlocked = errors.New("release blocked")

// ReleaseBlockedError reports why the gate refused the release,
// carrying the offending paths.
type ReleaseBlockedError struct {
	Branch string
	Reason string
	Paths  []string
}

func (e *ReleaseBlockedError) Error() string {
	msg := fmt.Sprintf("branch %s has %s", e.Branch, e.Reason)
	if len(e.Paths) > 0 {
		msg += ":\n\t" + strings.Join(e.Paths, "\n\t")
	}
	return msg
}

func (e *ReleaseBlockedError) Unwrap() error {
	return ErrReleaseBlocked
}
