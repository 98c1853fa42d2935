// Package versioning orders package version strings.
//
// Versions that parse as semantic versions compare by semver precedence.
// Strings that do not parse sort before every valid version and compare
// lexically among themselves, so free-form versions never shadow a real
// release when picking the latest.
package versioning

import (
	"slices"

	"github.com/Masterminds/semver/v3"
)

// Compare returns -1, 0 or 1 as v1 is older than, equal to or newer than v2.
func Compare(v1, v2 string) int {
	s1, err1 := semver.NewVersion(v1)
	s2, err2 := semver.NewVersion(v2)

	switch {
	case err1 != nil && err2 != nil:
		return compareStrings(v1, v2)
	case err1 != nil:
		return -1
	case err2 != nil:
		return 1
	}
	if c := s1.Compare(s2); c != 0 {
		return c
	}
	// "1.0" and "1.0.0" are equal in semver; keep the order total.
	return compareStrings(v1, v2)
}

// IsNewer reports whether candidate is strictly newer than current.
func IsNewer(candidate, current string) bool {
	return Compare(candidate, current) > 0
}

// Latest returns the newest of versions as originally written, or "" if
// versions is empty.
func Latest(versions []string) string {
	if len(versions) == 0 {
		return ""
	}
	return slices.MaxFunc(versions, Compare)
}

// Sort returns versions in ascending order without modifying the input.
func Sort(versions []string) []string {
	out := slices.Clone(versions)
	slices.SortStableFunc(out, Compare)
	return out
}

// IsValid reports whether version parses as a semantic version.
func IsValid(version string) bool {
	_, err := semver.NewVersion(version)
	return err == nil
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
