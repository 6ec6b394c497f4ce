package release

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver"
)

// Bump selects the version component to increment.
type Bump uint32

const (
	// Minor increments the minor version and resets the patch version.
	Minor Bump = iota
	// Major increments the major version and resets minor and patch.
	Major
)

func (b Bump) String() string {
	switch b {
	case Minor:
		return "minor"
	case Major:
		return "major"
	}
	return fmt.Sprintf("Bump(%d)", uint32(b))
}

// LatestTag returns the release tag whose commit was committed last. Only
// tags of the form v<semver> are releases. Commits with the same date are
// ordered by ancestry, and tags on the same commit by version.
func LatestTag(tags []Tag) (latest Tag, version *semver.Version, err error) {
	type release struct {
		tag     Tag
		version *semver.Version
	}

	var releases []release
	for _, tag := range tags {
		if !strings.HasPrefix(tag.Name, "v") {
			continue
		}
		v, parseErr := semver.NewVersion(tag.Name[1:])
		if parseErr != nil || TagName(v) != tag.Name {
			continue
		}
		releases = append(releases, release{tag: tag, version: v})
	}
	if len(releases) == 0 {
		err = ErrNoReleaseTags
		return
	}

	sort.SliceStable(releases, func(i, j int) bool {
		if !releases[i].tag.CommitDate.Equal(releases[j].tag.CommitDate) {
			return releases[i].tag.CommitDate.Before(releases[j].tag.CommitDate)
		}
		if releases[i].tag.Generation != releases[j].tag.Generation {
			return releases[i].tag.Generation < releases[j].tag.Generation
		}
		return releases[i].version.LessThan(releases[j].version)
	})

	last := releases[len(releases)-1]
	return last.tag, last.version, nil
}

// NextVersion returns current incremented by bump.
func NextVersion(current *semver.Version, bump Bump) (*semver.Version, error) {
	var next semver.Version

	switch bump {
	case Major:
		next = current.IncMajor()
	case Minor:
		next = current.IncMinor()
	default:
		return nil, fmt.Errorf("invalid version bump: %s", bump)
	}

	return &next, nil
}

// TagName returns the tag name of a release version.
func TagName(version *semver.Version) string {
	return "v" + version.String()
}
