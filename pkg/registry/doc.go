// Package registry is a client for npm-compatible package registries.
//
// # Overview
//
// A registry serves two documents per package:
//
//   - the base document (abbreviated install metadata): dist-tags and a
//     map of releases keyed by version
//   - the extended document (full packument): package-wide fields such as
//     licenses, maintainers, starring users and publish times
//
// [PackagesService.Get] reads only the base document. [PackagesService.Details]
// and [PackagesService.Releases] fetch both concurrently and merge the
// package-wide fields into each release with [MergeRelease].
//
// # Usage
//
//	client, err := registry.New(registry.Config{Mirror: "npmmirror"})
//	if err != nil {
//	    return err
//	}
//
//	pkg, err := client.Packages.Get(ctx, "eventemitter3@4.0.0")
//	rel, err := client.Packages.Details(ctx, "eventemitter3")
//	all, err := client.Packages.Releases(ctx, "@babel/core")
//
// # Specifiers
//
// A specifier is a package name with an optional version selector, separated
// by "@" or "/": "react", "react@18.2.0", "react/next", "@types/node@^20".
// Selectors are resolved as an exact version, then a dist-tag, then a
// semver range.
//
// # Mirrors
//
// [Mirrors] lists the known public mirrors. [Config.Registry] takes any
// other base URL; [Config.Mirror] picks a mirror by name.
//
// # Field Layout
//
// Where package-wide fields are read from is described by a [Schema].
// [DefaultSchema] matches the public npm registry.
//
// # Errors
//
// Failures carry codes from package errors: PACKAGE_NOT_FOUND,
// VERSION_NOT_FOUND, INVALID_SPECIFIER, INVALID_CONFIG, PACKAGE_MISMATCH,
// DECODE_ERROR and the transport codes of package httputil. Requests are
// never retried and results are never cached.
package registry
