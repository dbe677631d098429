// Package render turns architecture graphs into diagrams.
//
// # Overview
//
// Rendering is a two-step pipeline:
//
//   - [ToDOT] converts a [graph.Graph] to Graphviz DOT text. Nested nodes
//     (modules, groups) become cluster subgraphs so containment is visible
//     in the diagram.
//   - [RenderSVG] feeds DOT text through Graphviz and returns SVG bytes.
//
// Usage:
//
//	dot := render.ToDOT(g, render.Options{})
//	svg, err := render.RenderSVG(ctx, dot)
//
// The DOT output is stable for a given graph, so it can be diffed or cached
// by content hash.
package render
