package registry

import (
	"maps"
	"slices"
)

// DefaultMirror names the mirror used when no registry is configured.
const DefaultMirror = "npmjs"

var mirrors = map[string]string{
	"npmjs":       "https://registry.npmjs.org/",
	"yarnpkg":     "https://registry.yarnpkg.com/",
	"npmmirror":   "https://registry.npmmirror.com/",
	"cnpmjs":      "https://r.cnpmjs.org/",
	"huaweicloud": "https://repo.huaweicloud.com/repository/npm/",
	"tencent":     "https://mirrors.cloud.tencent.com/npm/",
}

// Mirrors returns a copy of the mirror table, keyed by mirror name.
func Mirrors() map[string]string {
	return maps.Clone(mirrors)
}

// MirrorNames returns the mirror names in sorted order.
func MirrorNames() []string {
	return slices.Sorted(maps.Keys(mirrors))
}

// MirrorURL returns the base URL of the named mirror.
func MirrorURL(name string) (string, bool) {
	u, ok := mirrors[name]
	return u, ok
}

// DefaultRegistryURL returns the base URL of [DefaultMirror].
func DefaultRegistryURL() string {
	return mirrors[DefaultMirror]
}
