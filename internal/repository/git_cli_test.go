package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLines(t *testing.T) {
	t.Run("Should drop empty lines and carriage returns", func(t *testing.T) {
		out := []byte("a.txt\r\nb.txt\n\n")
		assert.Equal(t, []string{"a.txt", "b.txt"}, splitLines(out))
	})
	t.Run("Should return nil for empty output", func(t *testing.T) {
		assert.Nil(t, splitLines(nil))
		assert.Nil(t, splitLines([]byte("\n")))
	})
}

func TestParseCurrentBranch(t *testing.T) {
	t.Run("Should pick the starred line", func(t *testing.T) {
		lines := []string{"  develop", "* main", "  release/0.005"}
		branch, err := parseCurrentBranch(lines)
		require.NoError(t, err)
		assert.Equal(t, "main", branch)
	})
	t.Run("Should map a detached checkout to HEAD", func(t *testing.T) {
		for _, line := range []string{
			"* (HEAD detached at abc1234)",
			"* (HEAD detached from v0.005)",
			"* (no branch)",
		} {
			branch, err := parseCurrentBranch([]string{line, "  main"})
			require.NoError(t, err)
			assert.Equal(t, "HEAD", branch)
		}
	})
	t.Run("Should return error when no branch is current", func(t *testing.T) {
		_, err := parseCurrentBranch([]string{"  develop"})
		assert.Error(t, err)
	})
}

func TestParseNameStatus(t *testing.T) {
	t.Run("Should strip the status column", func(t *testing.T) {
		lines := []string{"M\tinternal/config/config.go", "A\tChanges"}
		assert.Equal(t, []string{"internal/config/config.go", "Changes"}, parseNameStatus(lines))
	})
	t.Run("Should skip malformed lines", func(t *testing.T) {
		assert.Empty(t, parseNameStatus([]string{"garbage"}))
	})
}
