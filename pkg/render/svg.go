package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"
)

// SVG renders DOT source to SVG using the embedded Graphviz.
func SVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render registry graph: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root <svg> element to a viewBox anchored at
// the origin with unitless width and height. Only the first tag is touched;
// the xlink namespace is kept when Graphviz declared it.
func normalizeViewBox(svg []byte) []byte {
	loc := svgTagRe.FindIndex(svg)
	if loc == nil {
		return svg
	}
	tag := svg[loc[0]:loc[1]]
	match := viewBoxRe.FindSubmatch(tag)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	var root bytes.Buffer
	root.WriteString(`<svg xmlns="http://www.w3.org/2000/svg"`)
	if bytes.Contains(tag, []byte("xmlns:xlink=")) {
		root.WriteString(` xmlns:xlink="http://www.w3.org/1999/xlink"`)
	}
	fmt.Fprintf(&root, ` viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)

	out := make([]byte, 0, len(svg)-len(tag)+root.Len())
	out = append(out, svg[:loc[0]]...)
	out = append(out, root.Bytes()...)
	return append(out, svg[loc[1]:]...)
}
