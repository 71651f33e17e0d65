package registry

import (
	"regexp"
	"slices"
	"strings"
	"time"
)

// Schema names where each package-wide field lives in the extended
// document. Paths are dot-separated keys into the decoded JSON object.
//
// Mirrors that rename or nest fields can be served by a custom Schema
// passed through [Config].
type Schema struct {
	Name        string
	Description string
	Homepage    string
	Repository  string
	Keywords    string
	Author      string
	Maintainers string
	Starred     string
	Created     string
	Modified    string

	// Licenses lists candidate paths, tried in order, both at the top
	// level and inside each version entry.
	Licenses []string

	// Times is the object of version publish times.
	Times string

	// Versions is the object of per-version entries.
	Versions string
}

// DefaultSchema returns the field layout of the public npm registry.
func DefaultSchema() Schema {
	return Schema{
		Name:        "name",
		Description: "description",
		Homepage:    "homepage",
		Repository:  "repository",
		Keywords:    "keywords",
		Author:      "author",
		Maintainers: "maintainers",
		Starred:     "users",
		Created:     "time.created",
		Modified:    "time.modified",
		Licenses:    []string{"license", "licenses"},
		Times:       "time",
		Versions:    "versions",
	}
}

// Parse extracts the package-wide fields from a decoded extended document.
// Missing or malformed fields are left zero.
func (s Schema) Parse(doc map[string]any) Extended {
	ext := Extended{
		Name:        lookupString(doc, s.Name),
		Description: lookupString(doc, s.Description),
		Homepage:    lookupString(doc, s.Homepage),
		Repository:  repositoryURL(lookup(doc, s.Repository)),
		Keywords:    stringList(lookup(doc, s.Keywords)),
		Author:      parsePerson(lookup(doc, s.Author)),
		Licenses:    s.licenses(doc),
		Maintainers: personList(lookup(doc, s.Maintainers)),
		Starred:     starredUsers(lookup(doc, s.Starred)),
	}
	ext.Created, _ = parseTime(lookupString(doc, s.Created))
	ext.Modified, _ = parseTime(lookupString(doc, s.Modified))

	if times, ok := lookup(doc, s.Times).(map[string]any); ok {
		ext.Times = make(map[string]time.Time, len(times))
		for v, raw := range times {
			if v == "created" || v == "modified" {
				continue
			}
			str, _ := raw.(string)
			if t, ok := parseTime(str); ok {
				ext.Times[v] = t
			}
		}
	}

	if versions, ok := lookup(doc, s.Versions).(map[string]any); ok {
		ext.VersionLicenses = make(map[string][]string)
		for v, raw := range versions {
			entry, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			if l := s.licenses(entry); len(l) > 0 {
				ext.VersionLicenses[v] = l
			}
		}
	}
	return ext
}

func (s Schema) licenses(obj map[string]any) []string {
	for _, path := range s.Licenses {
		if l := normalizeLicenses(lookup(obj, path)); len(l) > 0 {
			return l
		}
	}
	return nil
}

// lookup walks a dotted path through nested objects.
func lookup(doc map[string]any, path string) any {
	if path == "" {
		return nil
	}
	var cur any = doc
	for key := range strings.SplitSeq(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[key]
	}
	return cur
}

func lookupString(doc map[string]any, path string) string {
	s, _ := lookup(doc, path).(string)
	return strings.TrimSpace(s)
}

// =============================================================================
// Field normalizers
// =============================================================================

// normalizeLicenses flattens the license shapes found in packuments: an SPDX
// string or expression, a {type} object, or an array of either.
func normalizeLicenses(v any) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(l string) {
		if l != "" && !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}

	var walk func(any)
	walk = func(v any) {
		switch x := v.(type) {
		case string:
			for _, l := range splitLicenseExpression(x) {
				add(l)
			}
		case map[string]any:
			if t, ok := x["type"].(string); ok {
				walk(t)
			} else if n, ok := x["name"].(string); ok {
				walk(n)
			}
		case []any:
			for _, e := range x {
				walk(e)
			}
		}
	}
	walk(v)
	return out
}

// splitLicenseExpression splits "(MIT OR Apache-2.0)" into its identifiers.
// WITH exceptions stay attached to their license.
func splitLicenseExpression(expr string) []string {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil
	}
	if strings.HasPrefix(strings.ToUpper(expr), "SEE LICENSE IN") {
		return []string{expr}
	}

	tokens := strings.Fields(strings.NewReplacer("(", " ", ")", " ").Replace(expr))
	var out []string
	for i := 0; i < len(tokens); i++ {
		switch strings.ToUpper(tokens[i]) {
		case "OR", "AND":
			continue
		case "WITH":
			if len(out) > 0 && i+1 < len(tokens) {
				out[len(out)-1] += " WITH " + tokens[i+1]
				i++
			}
			continue
		}
		out = append(out, tokens[i])
	}
	return out
}

var personRegex = regexp.MustCompile(`^([^<(]*?)\s*(?:<([^>]*)>)?\s*(?:\(([^)]*)\))?$`)

// parsePerson accepts "Name <email> (url)" strings and {name,email,url}
// objects.
func parsePerson(v any) *Person {
	switch x := v.(type) {
	case string:
		x = strings.TrimSpace(x)
		if x == "" {
			return nil
		}
		m := personRegex.FindStringSubmatch(x)
		if m == nil {
			return &Person{Name: x}
		}
		return &Person{Name: strings.TrimSpace(m[1]), Email: m[2], URL: m[3]}
	case map[string]any:
		p := Person{}
		p.Name, _ = x["name"].(string)
		p.Email, _ = x["email"].(string)
		p.URL, _ = x["url"].(string)
		if p == (Person{}) {
			return nil
		}
		return &p
	}
	return nil
}

func personList(v any) []Person {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Person, 0, len(list))
	for _, e := range list {
		if p := parsePerson(e); p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// starredUsers returns the user names of the "users" object, whose values
// are all true on the public registry. A plain array is accepted as well.
func starredUsers(v any) []string {
	switch x := v.(type) {
	case map[string]any:
		out := make([]string, 0, len(x))
		for name, starred := range x {
			if b, ok := starred.(bool); ok && !b {
				continue
			}
			out = append(out, name)
		}
		slices.Sort(out)
		return out
	case []any:
		return stringList(x)
	}
	return nil
}

func stringList(v any) []string {
	var out []string
	switch x := v.(type) {
	case []any:
		for _, e := range x {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
	case string:
		for f := range strings.FieldsFuncSeq(x, func(r rune) bool { return r == ',' || r == ' ' }) {
			out = append(out, f)
		}
	}
	return out
}

// repositoryURL accepts a URL string or a {type,url} object.
func repositoryURL(v any) string {
	switch x := v.(type) {
	case string:
		return NormalizeRepoURL(x)
	case map[string]any:
		u, _ := x["url"].(string)
		return NormalizeRepoURL(u)
	}
	return ""
}
