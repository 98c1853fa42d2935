// Package io exports the registry dependency graph as JSON.
//
// # JSON Format
//
//	{
//	  "nodes": [
//	    {"id": "chat-utils", "version": "1.2.0", "type": "scripts"},
//	    {"id": "json", "version": "2.0.0", "type": "deps"},
//	    {"id": "ghost", "missing": true}
//	  ],
//	  "edges": [
//	    {"from": "chat-utils", "to": "json", "version": "2.0.0"},
//	    {"from": "chat-utils", "to": "ghost", "version": "1.0.0"}
//	  ],
//	  "cycles": [["a", "b", "a"]]
//	}
//
// Nodes are sorted by id and edges by (from, to), so exporting the same
// registry twice yields identical bytes. A node is "missing" when some
// package depends on it but no version of it is published. "cycles" is
// omitted when the graph is acyclic.
//
// Use [WriteJSON] to write to any io.Writer or [ExportJSON] to write a file.
package io
