package registry

import (
	"net/url"
	"strings"

	"github.com/matzehuels/npmregistry/pkg/errors"
)

// Specifier identifies a package and an optional version selector.
//
// Accepted forms:
//
//	name
//	name@version
//	name/version
//	@scope/name
//	@scope/name@version
//	@scope/name/version
//
// The selector may be an exact version, a dist-tag or a semver range.
type Specifier struct {
	Name    string
	Version string
}

// ParseSpecifier parses a module specifier. Both separators yield equal
// specifiers, so "pkg@1.0.0" and "pkg/1.0.0" select the same release.
func ParseSpecifier(s string) (Specifier, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Specifier{}, errors.New(errors.ErrCodeInvalidSpecifier, "specifier cannot be empty")
	}

	prefix, rest := "", raw
	if strings.HasPrefix(raw, "@") {
		i := strings.IndexByte(raw, '/')
		if i < 0 {
			return Specifier{}, errors.New(errors.ErrCodeInvalidSpecifier, "scoped specifier %q has no package name", raw)
		}
		prefix, rest = raw[:i+1], raw[i+1:]
	}

	spec := Specifier{Name: prefix + rest}
	if i := strings.IndexAny(rest, "@/"); i >= 0 {
		spec.Name = prefix + rest[:i]
		spec.Version = strings.TrimSpace(rest[i+1:])
		if spec.Version == "" {
			return Specifier{}, errors.New(errors.ErrCodeInvalidSpecifier, "specifier %q has an empty version", raw)
		}
		if strings.ContainsAny(spec.Version, "@/") {
			return Specifier{}, errors.New(errors.ErrCodeInvalidSpecifier, "specifier %q has more than one version", raw)
		}
	}

	if err := errors.ValidateNpmPackageName(spec.Name); err != nil {
		return Specifier{}, errors.Wrap(errors.ErrCodeInvalidSpecifier, err, "invalid specifier %q", raw)
	}
	return spec, nil
}

// String renders the specifier in name@version form.
func (s Specifier) String() string {
	if s.Version == "" {
		return s.Name
	}
	return s.Name + "@" + s.Version
}

// escapedName is the registry path segment for the package. Scoped names
// keep their "@" and encode the slash.
func (s Specifier) escapedName() string {
	return url.PathEscape(s.Name)
}
