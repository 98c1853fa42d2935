package render

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Deps-Tech/deps-registry/pkg/dag"
)

// Options configures diagram generation.
type Options struct {
	// Versions appends the node's "version" metadata to its label.
	Versions bool
	// Detailed includes all node metadata in labels.
	Detailed bool
}

// ToDOT converts a dependency graph to Graphviz DOT source.
func ToDOT(g *dag.DAG, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(*n, fmtLabel(*n, opts)), ", "))
	}

	cyclic := cycleEdges(g)
	buf.WriteString("\n")
	for _, e := range g.Edges() {
		var attrs []string
		if e.Version != "" && opts.Detailed {
			attrs = append(attrs, fmt.Sprintf("label=%q", e.Version))
		}
		if cyclic[[2]string{e.From, e.To}] {
			attrs = append(attrs, "color=red", "penwidth=2")
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n dag.Node, opts Options) string {
	switch {
	case opts.Detailed:
		parts := []string{n.ID}
		for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
			parts = append(parts, fmt.Sprintf("%s: %v", k, n.Meta[k]))
		}
		return strings.Join(parts, "\n")
	case opts.Versions:
		if v, ok := n.Meta["version"].(string); ok && v != "" {
			return n.ID + "\n" + v
		}
	}
	return n.ID
}

func fmtAttrs(n dag.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Missing {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

func cycleEdges(g *dag.DAG) map[[2]string]bool {
	edges := make(map[[2]string]bool)
	for _, cycle := range g.Cycles() {
		for i := 0; i+1 < len(cycle); i++ {
			edges[[2]string{cycle[i], cycle[i+1]}] = true
		}
	}
	return edges
}
