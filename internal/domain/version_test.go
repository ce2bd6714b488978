package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVersion(t *testing.T) {
	t.Run("Should parse semantic version", func(t *testing.T) {
		v, err := NewVersion("1.2.3")
		require.NoError(t, err)
		assert.Equal(t, "1.2.3", v.String())
	})
	t.Run("Should parse decimal component version", func(t *testing.T) {
		v, err := NewVersion("0.005")
		require.NoError(t, err)
		assert.Equal(t, "0.005", v.String())
	})
	t.Run("Should reject empty string", func(t *testing.T) {
		v, err := NewVersion("")
		assert.Error(t, err)
		assert.Nil(t, v)
	})
	t.Run("Should reject version without numeric component", func(t *testing.T) {
		v, err := NewVersion("latest")
		assert.Error(t, err)
		assert.Nil(t, v)
	})
}

func TestVersion_Next(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "zero padded component", in: "0.005", want: "0.006"},
		{name: "semver patch", in: "1.2.3", want: "1.2.4"},
		{name: "carry widens component", in: "1.9", want: "1.10"},
		{name: "padded carry", in: "0.099", want: "0.100"},
		{name: "trailing alpha segment", in: "0.5b1", want: "0.5b2"},
		{name: "single component", in: "41", want: "42"},
	}
	for _, tc := range cases {
		t.Run("Should bump "+tc.name, func(t *testing.T) {
			v, err := NewVersion(tc.in)
			require.NoError(t, err)
			next, err := v.Next()
			require.NoError(t, err)
			assert.Equal(t, tc.want, next.String())
		})
	}
}

func TestVersion_Compare(t *testing.T) {
	t.Run("Should order semantic versions", func(t *testing.T) {
		a, err := NewVersion("1.2.3")
		require.NoError(t, err)
		b, err := NewVersion("1.10.0")
		require.NoError(t, err)
		assert.Equal(t, -1, a.Compare(b))
		assert.Equal(t, 1, b.Compare(a))
		assert.Equal(t, 0, a.Compare(a))
	})
	t.Run("Should order decimal component versions numerically", func(t *testing.T) {
		a, err := NewVersion("0.005")
		require.NoError(t, err)
		b, err := NewVersion("0.010")
		require.NoError(t, err)
		assert.Equal(t, -1, a.Compare(b))
	})
	t.Run("Should treat missing components as lower", func(t *testing.T) {
		a, err := NewVersion("1.2")
		require.NoError(t, err)
		b, err := NewVersion("1.2.1")
		require.NoError(t, err)
		assert.Equal(t, -1, a.Compare(b))
	})
}

func TestMaxVersion(t *testing.T) {
	t.Run("Should pick the greatest version", func(t *testing.T) {
		var versions []*Version
		for _, s := range []string{"0.003", "0.010", "0.005"} {
			v, err := NewVersion(s)
			require.NoError(t, err)
			versions = append(versions, v)
		}
		maxVer := MaxVersion(versions)
		require.NotNil(t, maxVer)
		assert.Equal(t, "0.010", maxVer.String())
	})
	t.Run("Should return nil for empty list", func(t *testing.T) {
		assert.Nil(t, MaxVersion(nil))
	})
}
