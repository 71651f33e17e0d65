package registry

import (
	"regexp"
	"strings"
)

var repoURLReplacer = strings.NewReplacer(
	"git@github.com:", "https://github.com/",
	"git://github.com/", "https://github.com/",
	"ssh://git@github.com/", "https://github.com/",
	"git@gitlab.com:", "https://gitlab.com/",
	"git://gitlab.com/", "https://gitlab.com/",
)

var repoShorthands = map[string]string{
	"github":    "https://github.com/",
	"gitlab":    "https://gitlab.com/",
	"bitbucket": "https://bitbucket.org/",
}

// bareShorthand matches the "owner/repo" form, which npm reads as GitHub.
var bareShorthand = regexp.MustCompile(`^[\w.-]+/[\w.-]+$`)

// NormalizeRepoURL converts the repository forms found in package.json to
// canonical HTTPS form: git@, git:// and git+ URLs, the "github:owner/repo"
// shorthands and bare "owner/repo". A trailing .git is removed.
func NormalizeRepoURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if host, rest, ok := strings.Cut(s, ":"); ok {
		if base, ok := repoShorthands[host]; ok && !strings.HasPrefix(rest, "//") {
			s = base + rest
		}
	}
	if bareShorthand.MatchString(s) {
		s = "https://github.com/" + s
	}
	s = strings.TrimPrefix(s, "git+")
	s = repoURLReplacer.Replace(s)
	return strings.TrimSuffix(s, ".git")
}
