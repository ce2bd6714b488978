package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUntrackedPolicy(t *testing.T) {
	t.Run("Should accept the three policies", func(t *testing.T) {
		for _, s := range []string{"die", "warn", "ignore"} {
			p, err := ParseUntrackedPolicy(s)
			require.NoError(t, err)
			assert.Equal(t, UntrackedPolicy(s), p)
		}
	})
	t.Run("Should reject unknown policy", func(t *testing.T) {
		_, err := ParseUntrackedPolicy("panic")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "untracked_files")
	})
}

func TestUntrackedPhrase(t *testing.T) {
	t.Run("Should use singular for exactly one file", func(t *testing.T) {
		assert.Equal(t, "1 untracked file", UntrackedPhrase(1))
	})
	t.Run("Should use plural for zero files", func(t *testing.T) {
		assert.Equal(t, "0 untracked files", UntrackedPhrase(0))
	})
	t.Run("Should use plural for several files", func(t *testing.T) {
		assert.Equal(t, "3 untracked files", UntrackedPhrase(3))
	})
}

func TestReleaseBlockedError(t *testing.T) {
	t.Run("Should match ErrReleaseBlocked sentinel", func(t *testing.T) {
		err := &ReleaseBlockedError{Branch: "main", Reason: "some uncommitted files", Paths: []string{"a.go"}}
		assert.True(t, errors.Is(err, ErrReleaseBlocked))
	})
	t.Run("Should list offending paths", func(t *testing.T) {
		err := &ReleaseBlockedError{
			Branch: "main",
			Reason: "some changes staged for commit",
			Paths:  []string{"a.go", "b.go"},
		}
		assert.Contains(t, err.Error(), "branch main has some changes staged for commit")
		assert.Contains(t, err.Error(), "a.go")
		assert.Contains(t, err.Error(), "b.go")
	})
}
