// Package version models card schema versions ("1.0" through "1.6"). Versions
// are parsed leniently so "1.6" and "1.6.0" compare equal.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is an immutable schema version. The zero value sorts before every
// parsed version.
type Version struct {
	v *semver.Version
}

// Known schema versions.
var (
	V1_0 = MustParse("1.0")
	V1_1 = MustParse("1.1")
	V1_2 = MustParse("1.2")
	V1_3 = MustParse("1.3")
	V1_4 = MustParse("1.4")
	V1_5 = MustParse("1.5")
	V1_6 = MustParse("1.6")

	// Latest is the newest schema version this module understands.
	Latest = V1_6
)

// Parse converts a version string such as "1.6" into a Version.
func Parse(raw string) (Version, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Version{}, fmt.Errorf("version: empty version string")
	}
	v, err := semver.NewVersion(trimmed)
	if err != nil {
		return Version{}, fmt.Errorf("version: parse %q: %w", raw, err)
	}
	return Version{v: v}, nil
}

// MustParse panics when raw is not a valid version. Intended for package-level
// constants.
func MustParse(raw string) Version {
	v, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// IsZero reports whether v was never set.
func (v Version) IsZero() bool {
	return v.v == nil
}

// Compare returns -1, 0 or 1 when v is lower than, equal to or greater than o.
func (v Version) Compare(o Version) int {
	switch {
	case v.v == nil && o.v == nil:
		return 0
	case v.v == nil:
		return -1
	case o.v == nil:
		return 1
	}
	return v.v.Compare(o.v)
}

// AtLeast reports whether v >= min. A zero min is satisfied by any version.
func (v Version) AtLeast(min Version) bool {
	if min.IsZero() {
		return true
	}
	return v.Compare(min) >= 0
}

// String renders the version in the short "major.minor" form used by card
// documents.
func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	if v.v.Patch() != 0 {
		return fmt.Sprintf("%d.%d.%d", v.v.Major(), v.v.Minor(), v.v.Patch())
	}
	return fmt.Sprintf("%d.%d", v.v.Major(), v.v.Minor())
}
