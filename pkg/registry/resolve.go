package registry

import (
	"maps"
	"slices"

	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/npmregistry/pkg/errors"
)

// resolveVersion maps a version selector to a key of pkg.Versions.
//
// An empty selector means the latest tag. Otherwise the selector is tried
// as an exact version, then a dist-tag, then a semver range. A range picks
// the latest-tagged version when it satisfies the range, else the highest
// match.
func resolveVersion(pkg *Package, selector string) (string, error) {
	if selector == "" {
		selector = latestTag
	}

	if _, ok := pkg.Versions[selector]; ok {
		return selector, nil
	}

	if v, ok := pkg.Tags[selector]; ok {
		if _, ok := pkg.Versions[v]; ok {
			return v, nil
		}
		return "", errors.New(errors.ErrCodeVersionNotFound, "%s: tag %q points at missing version %s", pkg.Name, selector, v)
	}

	c, err := semver.NewConstraint(selector)
	if err != nil {
		return "", errors.New(errors.ErrCodeVersionNotFound, "%s: no version matches %q", pkg.Name, selector)
	}

	if latest := pkg.Tags.Latest(); latest != "" {
		if v, err := semver.NewVersion(latest); err == nil && c.Check(v) {
			if _, ok := pkg.Versions[latest]; ok {
				return latest, nil
			}
		}
	}

	keys := sortVersions(slices.Collect(maps.Keys(pkg.Versions)))
	for _, key := range slices.Backward(keys) {
		v, err := semver.NewVersion(key)
		if err != nil {
			continue
		}
		if c.Check(v) {
			return key, nil
		}
	}
	return "", errors.New(errors.ErrCodeVersionNotFound, "%s: no version matches %q", pkg.Name, selector)
}
