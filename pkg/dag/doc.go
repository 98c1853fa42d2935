// Package dag models the dependency graph of a registry.
//
// Each node is a package id; an edge From -> To means From depends on To.
// Published manifests should form an acyclic graph, but the graph type
// itself accepts cycles so they can be found and reported by [DAG.Cycles].
//
// # Building a graph
//
//	g := dag.New(nil)
//	_ = g.AddNode(dag.Node{ID: "helper", Meta: dag.Metadata{"version": "2.1.0"}})
//	_ = g.AddNode(dag.Node{ID: "mathutils"})
//	_ = g.AddEdge(dag.Edge{From: "helper", To: "mathutils"})
//
// # Queries
//
//   - [DAG.Children], [DAG.Parents]: direct dependencies and dependents
//   - [DAG.Sources], [DAG.Sinks]: top-level packages and leaf libraries
//   - [DAG.Cycles]: every dependency cycle, as id paths
//   - [DAG.TopologicalOrder]: install order, dependencies first
package dag
