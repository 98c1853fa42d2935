package io

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/Deps-Tech/deps-registry/pkg/dag"
)

type graph struct {
	Nodes  []node     `json:"nodes"`
	Edges  []edge     `json:"edges"`
	Cycles [][]string `json:"cycles,omitempty"`
}

type node struct {
	ID      string `json:"id"`
	Version string `json:"version,omitempty"`
	Type    string `json:"type,omitempty"`
	Missing bool   `json:"missing,omitempty"`
}

type edge struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Version string `json:"version,omitempty"`
}

// WriteJSON encodes g as JSON and writes it to w.
func WriteJSON(g *dag.DAG, w io.Writer) error {
	out := graph{
		Nodes:  make([]node, 0, g.NodeCount()),
		Edges:  make([]edge, 0, g.EdgeCount()),
		Cycles: g.Cycles(),
	}

	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, node{
			ID:      n.ID,
			Version: metaString(n.Meta, "version"),
			Type:    metaString(n.Meta, "type"),
			Missing: n.Missing,
		})
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, edge{From: e.From, To: e.To, Version: e.Version})
	}
	slices.SortFunc(out.Edges, func(a, b edge) int {
		return cmp.Or(cmp.Compare(a.From, b.From), cmp.Compare(a.To, b.To))
	})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
func ExportJSON(g *dag.DAG, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func metaString(m dag.Metadata, key string) string {
	s, _ := m[key].(string)
	return s
}
