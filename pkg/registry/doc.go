// Package registry reads and writes a local registry tree.
//
// A registry is a directory with one subtree per package type:
//
//	scripts/{id}/{version}/main.lua
//	scripts/{id}/{version}/dep.json
//	deps/{id}/{version}/...
//
// [Registry.Publish] writes a built manifest next to its sources and refuses
// to overwrite an existing version unless forced. [Registry.Walk] lists
// published versions, [Registry.Verify] checks one version against its
// files, and [Registry.Snapshot] turns the latest deps versions into a
// catalog for dependency resolution.
//
// Consistency checks over the whole tree are [Registry.Cycles] and
// [Registry.Duplicates]. [Summary] renders the review-request body for a newly
// published version.
package registry
