package registry

import (
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/npmregistry/pkg/errors"
)

func testExtended(t *testing.T) Extended {
	t.Helper()
	return Extended{
		Name:        "left-pad",
		Description: "String left pad",
		Homepage:    "https://github.com/stevemao/left-pad#readme",
		Licenses:    []string{"WTFPL"},
		VersionLicenses: map[string][]string{
			"1.3.0": {"WTFPL OR MIT"},
		},
		Maintainers: []Person{{Name: "stevemao"}},
		Starred:     []string{"alice"},
		Keywords:    []string{"leftpad"},
		Author:      &Person{Name: "azer"},
		Created:     mustTime(t, "2014-03-14T00:00:00Z"),
		Modified:    mustTime(t, "2018-04-01T00:00:00Z"),
		Times: map[string]time.Time{
			"1.0.0": mustTime(t, "2014-03-14T00:00:00Z"),
			"1.3.0": mustTime(t, "2018-04-01T00:00:00Z"),
		},
	}
}

func TestMergeRelease_FillsMissingFields(t *testing.T) {
	ext := testExtended(t)
	got := MergeRelease(Release{Version: "1.0.0"}, ext)

	want := Release{
		Name:        "left-pad",
		Version:     "1.0.0",
		Description: "String left pad",
		Homepage:    "https://github.com/stevemao/left-pad#readme",
		Date:        mustTime(t, "2014-03-14T00:00:00Z"),
		Created:     ext.Created,
		Modified:    ext.Modified,
		Maintainers: []Person{{Name: "stevemao"}},
		Starred:     []string{"alice"},
		Licenses:    []string{"WTFPL"},
		Keywords:    []string{"leftpad"},
		Author:      &Person{Name: "azer"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MergeRelease() mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeRelease_PerVersionWins(t *testing.T) {
	ext := testExtended(t)
	base := Release{
		Name:        "left-pad",
		Version:     "1.0.0",
		Description: "own description",
		Licenses:    []string{"Apache-2.0"},
		Date:        mustTime(t, "2015-01-01T00:00:00Z"),
	}
	got := MergeRelease(base, ext)

	if got.Description != "own description" {
		t.Errorf("Description = %q, want per-version value", got.Description)
	}
	if diff := cmp.Diff([]string{"Apache-2.0"}, got.Licenses); diff != "" {
		t.Errorf("Licenses mismatch (-want +got):\n%s", diff)
	}
	if !got.Date.Equal(base.Date) {
		t.Errorf("Date = %v, want %v", got.Date, base.Date)
	}
}

func TestMergeRelease_VersionLicense(t *testing.T) {
	got := MergeRelease(Release{Version: "1.3.0"}, testExtended(t))
	if diff := cmp.Diff([]string{"WTFPL OR MIT"}, got.Licenses); diff != "" {
		t.Errorf("Licenses mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeRelease_NoAliasing(t *testing.T) {
	ext := testExtended(t)
	a := MergeRelease(Release{Version: "1.0.0"}, ext)
	b := MergeRelease(Release{Version: "1.3.0"}, ext)

	a.Maintainers[0].Name = "mallory"
	a.Starred[0] = "mallory"
	a.Author.Name = "mallory"

	if ext.Maintainers[0].Name != "stevemao" || ext.Starred[0] != "alice" || ext.Author.Name != "azer" {
		t.Error("mutating a merged release changed the extended document")
	}
	if b.Maintainers[0].Name != "stevemao" {
		t.Error("mutating a merged release changed a sibling release")
	}
}

func TestMergeReleases(t *testing.T) {
	ext := testExtended(t)
	base := &Package{
		Name: "left-pad",
		Tags: Tags{"latest": "1.3.0"},
		Versions: map[string]Release{
			"1.0.0": {Name: "left-pad", Version: "1.0.0"},
			"1.3.0": {Name: "left-pad"},
		},
	}

	got, err := MergeReleases(base, ext)
	if err != nil {
		t.Fatalf("MergeReleases() error: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", got.Len())
	}
	for key, rel := range got.Versions {
		if rel.Version != key {
			t.Errorf("Versions[%q].Version = %q", key, rel.Version)
		}
		if !rel.Created.Equal(ext.Created) {
			t.Errorf("Versions[%q].Created = %v", key, rel.Created)
		}
	}
	latest, ok := got.Latest()
	if !ok || latest.Version != "1.3.0" {
		t.Errorf("Latest() = %+v, %v", latest, ok)
	}

	got.Tags["latest"] = "9.9.9"
	if base.Tags["latest"] != "1.3.0" {
		t.Error("MergeReleases() shares its tags with the base document")
	}
}

func TestMergeReleases_Errors(t *testing.T) {
	tests := []struct {
		name string
		base *Package
		code errors.Code
	}{
		{
			name: "name mismatch",
			base: &Package{Name: "right-pad", Versions: map[string]Release{}},
			code: errors.ErrCodePackageMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MergeReleases(tt.base, testExtended(t))
			if got != nil {
				t.Errorf("MergeReleases() = %+v, want nil on error", got)
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("MergeReleases() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestMergeReleases_KeyIsVersion(t *testing.T) {
	base := &Package{Name: "left-pad", Versions: map[string]Release{
		"1.0.0": {Version: "1.0.1"},
		"1.1.0": {},
	}}
	got, err := MergeReleases(base, testExtended(t))
	if err != nil {
		t.Fatalf("MergeReleases() error: %v", err)
	}
	for key, rel := range got.Versions {
		if rel.Version != key {
			t.Errorf("Versions[%q].Version = %q", key, rel.Version)
		}
	}
}

func TestNewPackage(t *testing.T) {
	var doc baseDocument
	if err := json.Unmarshal([]byte(baseDocumentJSON), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	pkg, err := newPackage(doc, log.New(io.Discard))
	if err != nil {
		t.Fatalf("newPackage() error: %v", err)
	}

	if diff := cmp.Diff(Tags{"latest": "5.0.1", "next": "5.0.0"}, pkg.Tags); diff != "" {
		t.Errorf("Tags mismatch (-want +got):\n%s", diff)
	}
	if !pkg.Modified.Equal(mustTime(t, "2023-03-01T10:00:00.000Z")) {
		t.Errorf("Modified = %v", pkg.Modified)
	}

	rel := pkg.Versions["5.0.1"]
	want := Release{
		Name:         "eventemitter3",
		Version:      "5.0.1",
		Dependencies: map[string]string{"tslib": "^2.0.0"},
		Dist: Dist{
			Tarball:      "https://registry.example/eventemitter3/-/eventemitter3-5.0.1.tgz",
			Integrity:    "sha512-bbbb",
			FileCount:    10,
			UnpackedSize: 73401,
		},
	}
	if diff := cmp.Diff(want, rel); diff != "" {
		t.Errorf("Versions[5.0.1] mismatch (-want +got):\n%s", diff)
	}
	if pkg.Versions["5.0.0"].Deprecated != "use 5.0.1" {
		t.Errorf("Deprecated = %q", pkg.Versions["5.0.0"].Deprecated)
	}
	if pkg.Versions["4.0.7"].Engines != nil {
		t.Errorf("array engines should decode to nil, got %v", pkg.Versions["4.0.7"].Engines)
	}
}

func TestNewPackage_LegacyLatestEntry(t *testing.T) {
	doc := baseDocument{
		Name: "legacy",
		Versions: map[string]baseVersion{
			"1.0.0":  {Version: "1.0.0"},
			"latest": {Name: "legacy", Version: "1.0.0"},
		},
	}
	pkg, err := newPackage(doc, log.New(io.Discard))
	if err != nil {
		t.Fatalf("newPackage() error: %v", err)
	}
	if _, ok := pkg.Versions["latest"]; ok {
		t.Error("latest should not be a release")
	}
	if pkg.Tags.Latest() != "1.0.0" {
		t.Errorf("Tags.Latest() = %q, want 1.0.0", pkg.Tags.Latest())
	}
	if pkg.Versions["1.0.0"].Name != "legacy" {
		t.Errorf("Name = %q, want package name filled in", pkg.Versions["1.0.0"].Name)
	}
}

func TestNewPackage_VersionMismatch(t *testing.T) {
	doc := baseDocument{
		Name: "drifted",
		Versions: map[string]baseVersion{
			"1.0.0": {Version: "2.0.0"},
			"1.1.0": {Version: "1.1.0"},
		},
	}
	pkg, err := newPackage(doc, log.New(io.Discard))
	if err != nil {
		t.Fatalf("newPackage() error: %v", err)
	}
	if len(pkg.Versions) != 2 {
		t.Fatalf("len(Versions) = %d, want 2", len(pkg.Versions))
	}
	for key, rel := range pkg.Versions {
		if rel.Version != key {
			t.Errorf("Versions[%q].Version = %q", key, rel.Version)
		}
	}
}

func TestNewPackage_MissingName(t *testing.T) {
	for _, body := range []string{`null`, `{}`, `{"versions":{"1.0.0":{"version":"1.0.0"}}}`} {
		var doc baseDocument
		if err := json.Unmarshal([]byte(body), &doc); err != nil {
			t.Fatalf("decode %s: %v", body, err)
		}
		if _, err := newPackage(doc, log.New(io.Discard)); !errors.Is(err, errors.ErrCodeDecode) {
			t.Errorf("newPackage(%s) error = %v, want %s", body, err, errors.ErrCodeDecode)
		}
	}
}
