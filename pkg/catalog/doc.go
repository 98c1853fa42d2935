// Package catalog supplies the set of published dependency ids and their
// latest versions.
//
// Analysis and manifest building never fetch anything themselves; they are
// handed a [Snapshot] taken before the run. A Snapshot is immutable, so one
// snapshot can serve many concurrent analyses.
//
// # Providers
//
// A [Provider] produces snapshots:
//
//   - [Static]: a fixed snapshot, for tests and overrides
//   - [IndexProvider]: the CDN index.json, cached through [cache.Cache]
//   - [Multi]: several providers merged, first provider wins per id
//   - registry.Tree and store.MongoStore in their own packages
//
// [Load] never fails. If the provider errors the run continues with an empty
// snapshot: no dependency resolves, but metadata and security analysis still
// work.
//
// # Aliases
//
// Some packages are required by module paths unrelated to their id, e.g.
// the luasocket package is loaded with require("socket.http"). A snapshot
// carries an alias table built from the "provides" lists of published
// manifests and from [WellKnownAliases]. Aliases are only consulted after
// every normal resolution tier has failed.
package catalog
