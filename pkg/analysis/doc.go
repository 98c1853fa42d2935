// Package analysis extracts metadata, dependencies and security signals from
// Lua script sources.
//
// # Overview
//
// Analysis is a lexical pass over source text. Nothing is parsed into a
// syntax tree and nothing is executed; every signal comes from a fixed set of
// patterns:
//
//   - Metadata: script_name("..."), script_version("..."), script_author("...")
//   - Dependencies: require("a.b.c") and require 'a.b.c'
//   - Network: http.request, socket.tcp, socket.connect
//   - FFI: require("ffi")
//   - File access: io.open("path", ...)
//
// All functions in this package are pure. They keep no state between calls
// and are safe for concurrent use.
//
// # Metadata
//
// [ExtractMetadata] returns the first occurrence of each annotation. A
// missing name falls back to the filename without its extension, a missing
// version defaults to [DefaultVersion], and a missing author stays empty.
// The package id is always [DeriveID] applied to the resolved name.
//
// # Dependencies
//
// [Scan] collects raw require paths and drops those that are not real
// dependencies: the "lib." namespace prefix is stripped, built-in modules
// (string, table, io, ...) are ignored, and a path rooted at the package's
// own id is treated as a self-reference.
//
// [Resolve] then maps each remaining path to a catalog id with a tiered
// fallback, first match wins:
//
//  1. the full path with dots replaced by hyphens ("socket.http" -> "socket-http")
//  2. the first segment ("socket")
//  3. the last segment ("http")
//  4. for multi-segment paths: all segments joined, all but the first
//     joined, then the last segment
//
// Paths that match nothing are dropped; they are reported as unresolved by
// [Analyze] but never cause an error.
//
// # Usage
//
//	src := analysis.DecodeSource("helper.lua", data)
//	res := analysis.Analyze(src, analysis.NewIDSet("mathutils"))
//	fmt.Println(res.Metadata.ID, res.Dependencies)
package analysis
