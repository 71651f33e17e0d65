package registry

import (
	"encoding/json"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// latestTag is the dist-tag every published package carries.
const latestTag = "latest"

// Person is a maintainer or author entry.
type Person struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Dist describes the published tarball of a release.
type Dist struct {
	Tarball      string `json:"tarball"`
	Shasum       string `json:"shasum,omitempty"`
	Integrity    string `json:"integrity,omitempty"`
	FileCount    int    `json:"fileCount,omitempty"`
	UnpackedSize int64  `json:"unpackedSize,omitempty"`
}

// Release is the record of a single published version.
//
// The first group of fields is per-version and comes from the base document.
// The second group is package-wide and is only populated by [MergeRelease],
// so records returned by [PackagesService.Get] never carry Licenses.
type Release struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Description  string            `json:"description,omitempty"`
	Deprecated   string            `json:"deprecated,omitempty"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
	Engines      map[string]string `json:"engines,omitempty"`
	Dist         Dist              `json:"dist"`
	Date         time.Time         `json:"date,omitzero"`

	Created     time.Time `json:"created,omitzero"`
	Modified    time.Time `json:"modified,omitzero"`
	Maintainers []Person  `json:"maintainers,omitempty"`
	Starred     []string  `json:"starred,omitempty"`
	Licenses    []string  `json:"licenses,omitempty"`
	Homepage    string    `json:"homepage,omitempty"`
	Repository  string    `json:"repository,omitempty"`
	Keywords    []string  `json:"keywords,omitempty"`
	Author      *Person   `json:"author,omitempty"`
}

// Tags maps dist-tags ("latest", "next", ...) to version keys. It is an alias
// table into a Release Map, never a Release Map entry itself.
type Tags map[string]string

// Latest returns the version tagged latest, or "".
func (t Tags) Latest() string { return t[latestTag] }

// Package is the base document of a package: its dist-tags and a Release
// Map keyed by version.
//
// When returned by [PackagesService.Get] with a version selector, Versions
// holds only the selected release and Version names it.
type Package struct {
	Name     string             `json:"name"`
	Version  string             `json:"version,omitempty"`
	Modified time.Time          `json:"modified,omitzero"`
	Tags     Tags               `json:"dist-tags"`
	Versions map[string]Release `json:"versions"`
}

// Release returns the release stored under version.
func (p *Package) Release(version string) (Release, bool) {
	r, ok := p.Versions[version]
	return r, ok
}

// Selected returns the release chosen by the version selector, if any.
func (p *Package) Selected() (Release, bool) {
	if p.Version == "" {
		return Release{}, false
	}
	return p.Release(p.Version)
}

// Releases is the merged release history of a package. Every entry carries
// both its own fields and the package-wide fields of the extended document.
type Releases struct {
	Name     string             `json:"name"`
	Tags     Tags               `json:"dist-tags"`
	Versions map[string]Release `json:"versions"`
}

// Len returns the number of releases.
func (r *Releases) Len() int { return len(r.Versions) }

// Tag returns the release a dist-tag points at.
func (r *Releases) Tag(tag string) (Release, bool) {
	v, ok := r.Tags[tag]
	if !ok {
		return Release{}, false
	}
	rel, ok := r.Versions[v]
	return rel, ok
}

// Latest returns the release tagged latest.
func (r *Releases) Latest() (Release, bool) { return r.Tag(latestTag) }

// Sorted returns the releases in ascending semver order. Keys that are not
// valid semver sort last, lexically.
func (r *Releases) Sorted() []Release {
	keys := sortVersions(slices.Collect(maps.Keys(r.Versions)))
	out := make([]Release, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.Versions[k])
	}
	return out
}

// sortVersions orders version keys by semver precedence, then lexically for
// keys semver cannot parse.
func sortVersions(keys []string) []string {
	type parsed struct {
		key string
		v   *semver.Version
	}
	ps := make([]parsed, 0, len(keys))
	for _, k := range keys {
		v, _ := semver.NewVersion(k)
		ps = append(ps, parsed{key: k, v: v})
	}
	slices.SortFunc(ps, func(a, b parsed) int {
		switch {
		case a.v != nil && b.v != nil:
			if c := a.v.Compare(b.v); c != 0 {
				return c
			}
			return strings.Compare(a.key, b.key)
		case a.v != nil:
			return -1
		case b.v != nil:
			return 1
		default:
			return strings.Compare(a.key, b.key)
		}
	})
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.key
	}
	return out
}

// Extended holds the package-wide fields read from the extended document.
// See [Schema] for where each field comes from.
type Extended struct {
	Name        string
	Description string
	Homepage    string
	Repository  string
	Keywords    []string
	Author      *Person
	Licenses    []string
	Maintainers []Person
	Starred     []string
	Created     time.Time
	Modified    time.Time

	// VersionLicenses holds licenses declared by individual versions.
	VersionLicenses map[string][]string

	// Times holds the publish time of each version.
	Times map[string]time.Time
}

// =============================================================================
// Wire types
// =============================================================================

// baseDocument is the abbreviated ("corgi") packument. Full packuments decode
// into it as well; fields outside the minimal set are dropped.
type baseDocument struct {
	Name     string                 `json:"name"`
	Modified string                 `json:"modified"`
	DistTags map[string]string      `json:"dist-tags"`
	Versions map[string]baseVersion `json:"versions"`
}

type baseVersion struct {
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	Deprecated   json.RawMessage `json:"deprecated"`
	Dependencies stringMap       `json:"dependencies"`
	Engines      stringMap       `json:"engines"`
	Dist         Dist            `json:"dist"`
}

func (v baseVersion) release() Release {
	var deprecated string
	_ = json.Unmarshal(v.Deprecated, &deprecated)
	return Release{
		Name:         v.Name,
		Version:      v.Version,
		Deprecated:   deprecated,
		Dependencies: v.Dependencies,
		Engines:      v.Engines,
		Dist:         v.Dist,
	}
}

// stringMap decodes a JSON object of strings. Old packuments store
// dependencies and engines as arrays; those decode to nil.
type stringMap map[string]string

func (m *stringMap) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		*m = nil
		return nil
	}
	out := make(stringMap, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	*m = out
	return nil
}

// parseTime accepts the RFC 3339 timestamps the registry emits.
func parseTime(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// cloneTags copies tags, never returning nil.
func cloneTags(t map[string]string) Tags {
	out := make(Tags, len(t))
	maps.Copy(out, t)
	return out
}
