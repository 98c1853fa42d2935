// Package pkg holds the libraries behind depsreg, the ingestion tool of the
// Lua script package registry.
//
// # Overview
//
// A package is one or more Lua files. Ingestion reads the script's own
// annotations, finds the modules it requires, maps them onto packages the
// registry already publishes and writes a dep.json manifest pinning each
// one to its current version:
//
//	uploaded .lua files
//	         ↓
//	    [analysis] (metadata, require scan, security flags, resolution)
//	         ↓
//	    [manifest] (digests, pinned dependencies, deterministic JSON)
//	         ↓
//	    [registry] / [store] (publish under {type}/{id}/{version}/)
//
// [analysis] and [manifest] are pure: they take text and a catalog and
// return values, never logging or doing I/O. Everything else is plumbing
// around them.
//
// # Main Packages
//
// Core:
//   - [analysis]: metadata extractor, dependency scanner, tiered resolver
//   - [manifest]: manifest builder, schema validation, dep.json encoding
//   - [versioning]: semantic version ordering
//
// Catalog and publishing:
//   - [catalog]: id to version snapshots from static data or the CDN index
//   - [registry]: the on-disk registry tree, verification and review summaries
//   - [store]: MongoDB manifest index
//   - [pipeline]: the ingestion runner shared by the CLI and the HTTP API
//
// Graph:
//   - [dag]: dependency graph with cycle detection
//   - [render]: DOT and Graphviz SVG output
//   - [io]: JSON export
//
// Infrastructure:
//   - [cache]: file, Redis and null caches
//   - [httputil]: retrying HTTP client with response caching
//   - [observability]: pipeline, cache and HTTP hooks
//   - [errors]: coded and field validation errors
//   - [buildinfo]: link-time version information
//
// # Quick Start
//
//	files := []analysis.SourceFile{analysis.DecodeSource("chat.lua", data)}
//	runner := pipeline.NewRunner(catalog.NewIndexProvider("", cache.NewNullCache(), 0), logger)
//	res, err := runner.Build(ctx, pipeline.Request{Files: files})
//	if err != nil {
//	    return err
//	}
//	out, _ := manifest.Encode(res.Manifest)
//
// [analysis]: https://pkg.go.dev/github.com/Deps-Tech/deps-registry/pkg/analysis
// [manifest]: https://pkg.go.dev/github.com/Deps-Tech/deps-registry/pkg/manifest
// [versioning]: https://pkg.go.dev/github.com/Deps-Tech/deps-registry/pkg/versioning
// [catalog]: https://pkg.go.dev/github.com/Deps-Tech/deps-registry/pkg/catalog
// [registry]: https://pkg.go.dev/github.com/Deps-Tech/deps-registry/pkg/registry
// [store]: https://pkg.go.dev/github.com/Deps-Tech/deps-registry/pkg/store
// [pipeline]: https://pkg.go.dev/github.com/Deps-Tech/deps-registry/pkg/pipeline
// [dag]: https://pkg.go.dev/github.com/Deps-Tech/deps-registry/pkg/dag
// [render]: https://pkg.go.dev/github.com/Deps-Tech/deps-registry/pkg/render
// [io]: https://pkg.go.dev/github.com/Deps-Tech/deps-registry/pkg/io
// [cache]: https://pkg.go.dev/github.com/Deps-Tech/deps-registry/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/Deps-Tech/deps-registry/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/Deps-Tech/deps-registry/pkg/observability
// [errors]: https://pkg.go.dev/github.com/Deps-Tech/deps-registry/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/Deps-Tech/deps-registry/pkg/buildinfo
package pkg
