package registry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
)

// ErrNoMatchingVersion is returned when no tag satisfies the constraint.
var ErrNoMatchingVersion = errors.New("no tag satisfies the version constraint")

// SelectVersion returns the highest tag that parses as a semantic version
// and satisfies constraint. An empty constraint accepts every release.
// Tags that are not versions (latest, main) are ignored.
func SelectVersion(tags []string, constraint string) (string, error) {
	var c *semver.Constraints
	if constraint != "" {
		var err error
		c, err = semver.NewConstraint(constraint)
		if err != nil {
			return "", fmt.Errorf("invalid version constraint %q: %w", constraint, err)
		}
	}

	type candidate struct {
		tag string
		v   *semver.Version
	}
	var matches []candidate
	for _, tag := range tags {
		v, err := semver.NewVersion(tag)
		if err != nil {
			continue
		}
		if c == nil {
			if v.Prerelease() != "" {
				continue
			}
		} else if !c.Check(v) {
			continue
		}
		matches = append(matches, candidate{tag: tag, v: v})
	}
	if len(matches) == 0 {
		return "", ErrNoMatchingVersion
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].v.LessThan(matches[j].v) })
	return matches[len(matches)-1].tag, nil
}
