package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/npmregistry/pkg/registry"
)

func TestFormatTags(t *testing.T) {
	got := formatTags(registry.Tags{"next": "2.0.0-rc.1", "latest": "1.3.0"})
	if got != "latest=1.3.0, next=2.0.0-rc.1" {
		t.Errorf("formatTags() = %q", got)
	}
	if formatTags(nil) != "" {
		t.Error("formatTags(nil) should be empty")
	}
}

func TestTagsByVersion(t *testing.T) {
	got := tagsByVersion(registry.Tags{"latest": "1.3.0", "stable": "1.3.0", "next": "2.0.0"})
	want := map[string][]string{"1.3.0": {"latest", "stable"}, "2.0.0": {"next"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tagsByVersion() mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatPerson(t *testing.T) {
	tests := []struct {
		in   *registry.Person
		want string
	}{
		{nil, ""},
		{&registry.Person{Name: "azer"}, "azer"},
		{&registry.Person{Name: "azer", Email: "azer@example.com"}, "azer <azer@example.com>"},
	}
	for _, tt := range tests {
		if got := formatPerson(tt.in); got != tt.want {
			t.Errorf("formatPerson(%+v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if formatDate(time.Time{}) != "" {
		t.Error("zero time should format as empty")
	}
	ts := time.Date(2023, 3, 1, 23, 0, 0, 0, time.FixedZone("X", -2*3600))
	if got := formatDate(ts); got != "2023-03-02" {
		t.Errorf("formatDate() = %q, want UTC date", got)
	}
}

func TestPrintPackage_Selected(t *testing.T) {
	var buf bytes.Buffer
	printPackage(&buf, &registry.Package{
		Name:    "left-pad",
		Version: "1.0.0",
		Versions: map[string]registry.Release{"1.0.0": {
			Version:      "1.0.0",
			Deprecated:   "use padStart",
			Dependencies: map[string]string{"b": "^1", "a": "^2"},
			Dist:         registry.Dist{Tarball: "https://t.example/x.tgz", Shasum: "abc"},
		}},
	})

	out := buf.String()
	for _, want := range []string{"left-pad@1.0.0", "https://t.example/x.tgz", "abc", "deprecated: use padStart"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "a ^2") > strings.Index(out, "b ^1") {
		t.Errorf("dependencies should be sorted:\n%s", out)
	}
}

func TestPrintMirrors_CustomRegistry(t *testing.T) {
	var buf bytes.Buffer
	printMirrors(&buf, "https://npm.internal.example/")
	if !strings.Contains(buf.String(), "active registry: https://npm.internal.example/") {
		t.Errorf("custom registry should be reported:\n%s", buf.String())
	}

	buf.Reset()
	printMirrors(&buf, registry.DefaultRegistryURL())
	if strings.Contains(buf.String(), "active registry") {
		t.Errorf("table registry should not be reported separately:\n%s", buf.String())
	}
}
