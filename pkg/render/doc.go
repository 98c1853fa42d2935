// Package render draws registry dependency graphs as node-link diagrams.
//
// [ToDOT] produces Graphviz DOT source; [SVG] renders it in-process:
//
//	dot := render.ToDOT(g, render.Options{Versions: true})
//	svg, err := render.SVG(ctx, dot)
//
// Packages that are referenced but not published are drawn dashed and grey,
// and edges that belong to a dependency cycle are drawn red.
//
// This package uses [github.com/goccy/go-graphviz], which embeds Graphviz as
// WebAssembly, so no external binary is needed.
package render
