// Package manifest builds and reads package version manifests (dep.json).
//
// A manifest describes one published version of a package: the SHA-256
// digest and size of every file, the pinned versions of its registry
// dependencies, and the security signals found by [analysis.Scan].
//
// # Building
//
// [Build] is deterministic. The same files, bundle and catalog versions
// always encode to the same bytes, so a manifest can be committed without
// producing spurious diffs:
//
//	m, err := manifest.Build(files, manifest.Bundle{
//	    ID:           meta.ID,
//	    Name:         meta.Name,
//	    Version:      meta.Version,
//	    Dependencies: res.Dependencies,
//	    Security:     res.Security,
//	}, snapshot)
//	data, err := manifest.Encode(m)
//
// # Wire format
//
// Optional groups (dependencies, security, metadata) are omitted entirely
// when they carry no signal. An absent "security" key means nothing was
// detected, never "explicitly false". [Validate] checks a document against
// the embedded JSON Schema for manifestVersion 1.0.
package manifest
