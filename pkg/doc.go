// Package pkg provides the libraries behind npmreg.
//
// # Overview
//
// The pkg directory is organized around one client and its supporting
// infrastructure:
//
//  1. [registry] - The npm registry client (specifiers, mirrors, merge)
//  2. [httputil] - JSON-over-HTTP transport with rate limiting
//  3. [errors] - Structured error codes shared by all packages
//  4. [observability] - Hooks for lookup and request instrumentation
//  5. [buildinfo] - Version information and the User-Agent
//
// # Architecture
//
// The data flow of a lookup:
//
//	Specifier ("name@version")
//	         ↓
//	    [registry] PackagesService (base + extended documents)
//	         ↓
//	    [httputil] Client (headers, limiter, status mapping)
//	         ↓
//	    Registry mirror
//
// # Quick Start
//
//	client, err := registry.New(registry.Config{})
//	if err != nil {
//	    return err
//	}
//	rel, err := client.Packages.Details(ctx, "eventemitter3")
//	fmt.Println(rel.Version, rel.Licenses)
//
// [registry]: github.com/matzehuels/npmregistry/pkg/registry
// [httputil]: github.com/matzehuels/npmregistry/pkg/httputil
// [errors]: github.com/matzehuels/npmregistry/pkg/errors
// [observability]: github.com/matzehuels/npmregistry/pkg/observability
// [buildinfo]: github.com/matzehuels/npmregistry/pkg/buildinfo
package pkg
