package cli

import (
	"cmp"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/npmregistry/pkg/registry"
)

// =============================================================================
// Package Output
// =============================================================================

// printPackage prints the base record of a package, or of the selected
// release when the package was narrowed by a version selector.
func printPackage(w io.Writer, pkg *registry.Package) {
	if rel, ok := pkg.Selected(); ok {
		fmt.Fprintln(w, StyleTitle.Render(pkg.Name+"@"+rel.Version))
		printReleaseFields(w, rel)
		return
	}
	fmt.Fprintln(w, StyleTitle.Render(pkg.Name))
	printKeyValue(w, "latest", pkg.Tags.Latest())
	printKeyValue(w, "tags", formatTags(pkg.Tags))
	printKeyValue(w, "versions", strconv.Itoa(len(pkg.Versions)))
	printKeyValue(w, "modified", formatDate(pkg.Modified))
}

// printRelease prints a merged release record.
func printRelease(w io.Writer, rel *registry.Release) {
	fmt.Fprintln(w, StyleTitle.Render(rel.Name+"@"+rel.Version))
	if rel.Description != "" {
		fmt.Fprintln(w, StyleDim.Render(rel.Description))
	}
	printNewline(w)
	printKeyValue(w, "license", strings.Join(rel.Licenses, ", "))
	printKeyValue(w, "published", formatDate(rel.Date))
	printKeyValue(w, "created", formatDate(rel.Created))
	printKeyValue(w, "modified", formatDate(rel.Modified))
	printKeyValue(w, "author", formatPerson(rel.Author))
	printKeyValue(w, "maintainers", formatPeople(rel.Maintainers))
	if n := len(rel.Starred); n > 0 {
		printKeyValue(w, "starred", StyleNumber.Render(strconv.Itoa(n)))
	}
	printKeyValue(w, "homepage", rel.Homepage)
	printKeyValue(w, "repository", rel.Repository)
	printKeyValue(w, "keywords", strings.Join(rel.Keywords, ", "))
	printReleaseFields(w, *rel)
}

// printReleaseFields prints the per-version fields of a release.
func printReleaseFields(w io.Writer, rel registry.Release) {
	printKeyValue(w, "tarball", rel.Dist.Tarball)
	printKeyValue(w, "integrity", cmp.Or(rel.Dist.Integrity, rel.Dist.Shasum))
	if n := len(rel.Dependencies); n > 0 {
		printKeyValue(w, "dependencies", strconv.Itoa(n))
		for _, name := range slices.Sorted(maps.Keys(rel.Dependencies)) {
			printDetail(w, "%s %s", name, rel.Dependencies[name])
		}
	}
	if rel.Deprecated != "" {
		printWarning(w, "deprecated: %s", rel.Deprecated)
	}
}

// =============================================================================
// Releases Output
// =============================================================================

// printReleases prints a table of releases in semver order. A positive limit
// keeps only the newest releases.
func printReleases(w io.Writer, rels *registry.Releases, limit int) {
	all := rels.Sorted()
	sorted := all
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[len(sorted)-limit:]
	}
	tagged := tagsByVersion(rels.Tags)

	rows := make([][]string, 0, len(sorted))
	for _, rel := range sorted {
		deprecated := ""
		if rel.Deprecated != "" {
			deprecated = iconWarning
		}
		rows = append(rows, []string{rel.Version, formatDate(rel.Date), strings.Join(tagged[rel.Version], ", "), deprecated})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("Version", "Published", "Tags", "Deprecated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 2:
				return StyleHighlight
			case col == 3:
				return StyleWarning
			}
			return lipgloss.NewStyle()
		})

	fmt.Fprintln(w, StyleTitle.Render(rels.Name)+" "+StyleDim.Render(fmt.Sprintf("(%d releases)", rels.Len())))
	fmt.Fprintln(w, t.Render())
	if first := releaseOrNil(all); first != nil {
		printDetail(w, "created %s, license %s", formatDate(first.Created), cmp.Or(strings.Join(first.Licenses, ", "), "unknown"))
	}
}

// =============================================================================
// Mirrors Output
// =============================================================================

// printMirrors prints the mirror table, marking the default and the active
// registry.
func printMirrors(w io.Writer, active string) {
	mirrors := registry.Mirrors()
	rows := [][]string{}
	for _, name := range registry.MirrorNames() {
		mark := ""
		if name == registry.DefaultMirror {
			mark = "default"
		}
		if mirrors[name] == active {
			mark = strings.TrimSpace(iconDefault + " " + mark)
		}
		rows = append(rows, []string{name, mirrors[name], mark})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("Mirror", "URL", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 1:
				return StyleLink
			case col == 2:
				return StyleSuccess
			}
			return lipgloss.NewStyle()
		})
	fmt.Fprintln(w, t.Render())
	if !slices.Contains(slices.Collect(maps.Values(mirrors)), active) {
		printDetail(w, "active registry: %s", active)
	}
}

// =============================================================================
// Formatting Helpers
// =============================================================================

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

func formatTags(tags registry.Tags) string {
	parts := make([]string, 0, len(tags))
	for _, tag := range slices.Sorted(maps.Keys(tags)) {
		parts = append(parts, tag+"="+tags[tag])
	}
	return strings.Join(parts, ", ")
}

func tagsByVersion(tags registry.Tags) map[string][]string {
	out := make(map[string][]string)
	for _, tag := range slices.Sorted(maps.Keys(tags)) {
		out[tags[tag]] = append(out[tags[tag]], tag)
	}
	return out
}

func formatPerson(p *registry.Person) string {
	if p == nil {
		return ""
	}
	if p.Email != "" {
		return fmt.Sprintf("%s <%s>", p.Name, p.Email)
	}
	return p.Name
}

func formatPeople(people []registry.Person) string {
	names := make([]string, 0, len(people))
	for _, p := range people {
		names = append(names, p.Name)
	}
	return strings.Join(names, ", ")
}

func releaseOrNil(rels []registry.Release) *registry.Release {
	if len(rels) == 0 {
		return nil
	}
	return &rels[0]
}
