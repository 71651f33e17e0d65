package registry

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/npmregistry/pkg/errors"
)

// MergeRelease fills the fields missing from a per-version record with the
// package-wide fields of the extended document. Fields already set on base
// win. The result shares no slices with ext.
func MergeRelease(base Release, ext Extended) Release {
	r := base
	if r.Name == "" {
		r.Name = ext.Name
	}
	if r.Description == "" {
		r.Description = ext.Description
	}
	if r.Homepage == "" {
		r.Homepage = ext.Homepage
	}
	if r.Repository == "" {
		r.Repository = ext.Repository
	}
	if r.Date.IsZero() {
		r.Date = ext.Times[r.Version]
	}
	if r.Created.IsZero() {
		r.Created = ext.Created
	}
	if r.Modified.IsZero() {
		r.Modified = ext.Modified
	}
	if len(r.Licenses) == 0 {
		if l := ext.VersionLicenses[r.Version]; len(l) > 0 {
			r.Licenses = slices.Clone(l)
		} else {
			r.Licenses = slices.Clone(ext.Licenses)
		}
	}
	if len(r.Maintainers) == 0 {
		r.Maintainers = slices.Clone(ext.Maintainers)
	}
	if len(r.Starred) == 0 {
		r.Starred = slices.Clone(ext.Starred)
	}
	if len(r.Keywords) == 0 {
		r.Keywords = slices.Clone(ext.Keywords)
	}
	if r.Author == nil && ext.Author != nil {
		a := *ext.Author
		r.Author = &a
	}
	return r
}

// MergeReleases merges every release of base with ext. The dist-tags are
// carried over unchanged; tags never appear as releases. Every release takes
// its key as its Version.
func MergeReleases(base *Package, ext Extended) (*Releases, error) {
	if err := checkSameName(base.Name, ext.Name); err != nil {
		return nil, err
	}

	out := &Releases{
		Name:     base.Name,
		Tags:     cloneTags(base.Tags),
		Versions: make(map[string]Release, len(base.Versions)),
	}
	for key, rel := range base.Versions {
		rel.Version = key
		out.Versions[key] = MergeRelease(rel, ext)
	}
	if out.Name == "" {
		out.Name = ext.Name
	}
	return out, nil
}

func checkSameName(base, ext string) error {
	if base != "" && ext != "" && base != ext {
		return errors.New(errors.ErrCodePackageMismatch, "base document is %q but extended document is %q", base, ext)
	}
	return nil
}

// newPackage converts a decoded base document. A "latest" entry inside the
// versions object is moved into the dist-tags. The versions key is
// authoritative: a release naming another version is stored under its key.
func newPackage(doc baseDocument, logger *log.Logger) (*Package, error) {
	if doc.Name == "" {
		return nil, errors.New(errors.ErrCodeDecode, "base document has no package name")
	}
	pkg := &Package{
		Name:     doc.Name,
		Tags:     cloneTags(doc.DistTags),
		Versions: make(map[string]Release, len(doc.Versions)),
	}
	pkg.Modified, _ = parseTime(doc.Modified)

	for key, v := range doc.Versions {
		rel := v.release()
		if key == latestTag && rel.Version != latestTag {
			if _, ok := pkg.Tags[latestTag]; !ok && rel.Version != "" {
				pkg.Tags[latestTag] = rel.Version
			}
			continue
		}
		if rel.Version != "" && rel.Version != key {
			logger.Debug("release version differs from its key", "package", doc.Name, "key", key, "version", rel.Version)
		}
		rel.Version = key
		if rel.Name == "" {
			rel.Name = doc.Name
		}
		pkg.Versions[key] = rel
	}
	return pkg, nil
}
