package io

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Deps-Tech/deps-registry/pkg/dag"
)

func sampleGraph(t *testing.T) *dag.DAG {
	t.Helper()
	g := dag.New(nil)
	for _, n := range []dag.Node{
		{ID: "chat-utils", Meta: dag.Metadata{"version": "1.2.0", "type": "scripts"}},
		{ID: "json", Meta: dag.Metadata{"version": "2.0.0", "type": "deps"}},
		{ID: "ghost", Missing: true},
	} {
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s): %v", n.ID, err)
		}
	}
	for _, e := range []dag.Edge{
		{From: "chat-utils", To: "json", Version: "2.0.0"},
		{From: "chat-utils", To: "ghost", Version: "1.0.0"},
	} {
		if err := g.AddEdge(e); err != nil {
			t.Fatalf("AddEdge(%s->%s): %v", e.From, e.To, err)
		}
	}
	return g
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(sampleGraph(t), &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var got graph
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got.Nodes) != 3 {
		t.Fatalf("nodes = %d, want 3", len(got.Nodes))
	}
	if got.Nodes[0].ID != "chat-utils" || got.Nodes[0].Version != "1.2.0" || got.Nodes[0].Type != "scripts" {
		t.Errorf("nodes[0] = %+v", got.Nodes[0])
	}
	if got.Nodes[1].ID != "ghost" || !got.Nodes[1].Missing {
		t.Errorf("nodes[1] = %+v, want missing ghost", got.Nodes[1])
	}
	if len(got.Edges) != 2 || got.Edges[0].To != "ghost" || got.Edges[1].To != "json" {
		t.Errorf("edges = %+v, want sorted by target", got.Edges)
	}
	if got.Cycles != nil {
		t.Errorf("cycles = %v, want none", got.Cycles)
	}
	if bytes.Contains(buf.Bytes(), []byte(`"cycles"`)) {
		t.Error("acyclic graph should omit cycles")
	}
}

func TestWriteJSONCycles(t *testing.T) {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "a"})
	_ = g.AddNode(dag.Node{ID: "b"})
	_ = g.AddEdge(dag.Edge{From: "a", To: "b"})
	_ = g.AddEdge(dag.Edge{From: "b", To: "a"})

	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var got graph
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got.Cycles) != 1 {
		t.Fatalf("cycles = %v, want one", got.Cycles)
	}
}

func TestWriteJSONDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	if err := WriteJSON(sampleGraph(t), &a); err != nil {
		t.Fatal(err)
	}
	if err := WriteJSON(sampleGraph(t), &b); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Errorf("output differs:\n%s\n%s", a.String(), b.String())
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := ExportJSON(sampleGraph(t), path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !json.Valid(data) {
		t.Errorf("invalid JSON: %s", data)
	}
}

func TestExportJSONBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "graph.json")
	if err := ExportJSON(sampleGraph(t), path); err == nil {
		t.Error("expected error for missing directory")
	}
}
