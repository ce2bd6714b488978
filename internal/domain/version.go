package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// lastNumberRegex locates the least significant numeric component of a
// version string, e.g. "005" in "0.005" or "3" in "1.2.3".
var lastNumberRegex = regexp.MustCompile(`(\d+)(\D*)$`)

// Version is a release version parsed from a git tag. Strict semantic
// versions are compared through semver; decimal-component versions such
// as "0.005" fall back to per-component numeric comparison.
type Version struct {
	raw    string
	semver *semver.Version
}

// NewVersion creates a Version from a string.
func NewVersion(s string) (*Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("version cannot be empty")
	}
	if !lastNumberRegex.MatchString(s) {
		return nil, fmt.Errorf("version %q has no numeric component", s)
	}
	v := &Version{raw: s}
	if sv, err := semver.StrictNewVersion(s); err == nil {
		v.semver = sv
	}
	return v, nil
}

// String returns the version exactly as parsed.
func (v *Version) String() string {
	return v.raw
}

// Next returns the version with its least significant numeric component
// incremented. Zero padding is preserved ("0.005" -> "0.006") and a
// carry may widen the component ("1.9" -> "1.10"). A trailing alpha
// segment is kept in place ("0.5b1" -> "0.5b2").
func (v *Version) Next() (*Version, error) {
	next := lastNumberRegex.ReplaceAllStringFunc(v.raw, func(m string) string {
		sub := lastNumberRegex.FindStringSubmatch(m)
		n, err := strconv.ParseUint(sub[1], 10, 64)
		if err != nil {
			return m
		}
		width := len(sub[1])
		return fmt.Sprintf("%0*d%s", width, n+1, sub[2])
	})
	if next == v.raw {
		return nil, fmt.Errorf("cannot increment version %q", v.raw)
	}
	return NewVersion(next)
}

// Compare returns -1, 0 or 1 ordering v against other. Two strict
// semantic versions compare through semver; anything else compares
// per numeric component.
func (v *Version) Compare(other *Version) int {
	if v.semver != nil && other.semver != nil {
		return v.semver.Compare(other.semver)
	}
	return compareComponents(v.raw, other.raw)
}

// compareComponents compares dot-separated components numerically where
// both sides are numbers, lexically otherwise.
func compareComponents(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) || i < len(bs); i++ {
		var ac, bc string
		if i < len(as) {
			ac = as[i]
		}
		if i < len(bs) {
			bc = bs[i]
		}
		if ac == bc {
			continue
		}
		an, aerr := strconv.ParseUint(ac, 10, 64)
		bn, berr := strconv.ParseUint(bc, 10, 64)
		if aerr == nil && berr == nil {
			switch {
			case an < bn:
				return -1
			case an > bn:
				return 1
			}
			continue
		}
		return strings.Compare(ac, bc)
	}
	return 0
}

// MaxVersion returns the greatest of the given versions, or nil for an
// empty list.
func MaxVersion(versions []*Version) *Version {
	var maxVer *Version
	for _, v := range versions {
		if maxVer == nil || v.Compare(maxVer) > 0 {
			maxVer = v
		}
	}
	return maxVer
}
