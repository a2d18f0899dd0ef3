// Package osver reports the running macOS version.
package osver

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Version represents a macOS version with major, minor, and patch components.
type Version struct {
	Major int
	Minor int
	Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// IsZero reports whether v is unknown, as on non-macOS systems.
func (v Version) IsZero() bool {
	return v == Version{}
}

// Parse accepts "major.minor" or "major.minor.patch".
func Parse(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return Version{}, fmt.Errorf("invalid version format: %s", s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid version component %q in %s", p, s)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// Compare returns -1, 0 or 1 as v is older than, equal to, or newer than other.
func (v Version) Compare(other Version) int {
	if c := cmp.Compare(v.Major, other.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Minor, other.Minor); c != 0 {
		return c
	}
	return cmp.Compare(v.Patch, other.Patch)
}

// AtLeast returns true if this version is greater than or equal to other.
func (v Version) AtLeast(other Version) bool {
	return v.Compare(other) >= 0
}

// IsAtLeast checks if the running system is at least the given version.
// It is always false when the version is unknown.
func IsAtLeast(major, minor, patch int) bool {
	current := Get()
	if current.IsZero() {
		return false
	}
	return current.AtLeast(Version{Major: major, Minor: minor, Patch: patch})
}
