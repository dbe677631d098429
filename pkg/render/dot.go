package render

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/archtext/archtext/pkg/graph"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes node properties in labels.
	// When false, only the node label is shown.
	Detailed bool

	// Direction sets the Graphviz rank direction ("TB", "LR", ...).
	// Empty means "TB".
	Direction string
}

// Fill colors per node type. Unknown types fall back to white.
var typeFills = map[string]string{
	graph.TypeActor:       "#ffe9a8",
	graph.TypeService:     "#cfe2ff",
	graph.TypeModule:      "#e2d9f3",
	graph.TypeDatabase:    "#d1e7dd",
	graph.TypeExternalAPI: "#f8d7da",
}

// ToDOT converts a graph to Graphviz DOT format.
// Nodes with children become cluster subgraphs; everything else is a plain
// box node. The resulting DOT string can be rendered with [RenderSVG].
func ToDOT(g *graph.Graph, opts Options) string {
	dir := opts.Direction
	if dir == "" {
		dir = "TB"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", dir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i := range g.Nodes {
		writeNode(&buf, &g.Nodes[i], opts, 1)
	}

	buf.WriteString("\n")
	for i := range g.Edges {
		e := &g.Edges[i]
		attrs := []string{}
		if label := edgeLabel(e); label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", label))
		}
		if len(attrs) > 0 {
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeNode(buf *bytes.Buffer, n *graph.Node, opts Options, depth int) {
	pad := strings.Repeat("  ", depth)

	if len(n.Children) > 0 {
		fmt.Fprintf(buf, "%ssubgraph \"cluster_%s\" {\n", pad, n.ID)
		fmt.Fprintf(buf, "%s  label=%q;\n", pad, n.Label)
		fmt.Fprintf(buf, "%s  style=\"rounded\";\n", pad)
		for i := range n.Children {
			writeNode(buf, &n.Children[i], opts, depth+1)
		}
		fmt.Fprintf(buf, "%s}\n", pad)
		return
	}

	attrs := []string{fmt.Sprintf("label=%q", nodeLabel(n, opts.Detailed))}
	if fill, ok := typeFills[n.Type]; ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))
	}
	fmt.Fprintf(buf, "%s%q [%s];\n", pad, n.ID, strings.Join(attrs, ", "))
}

func nodeLabel(n *graph.Node, detailed bool) string {
	if !detailed || len(n.Properties) == 0 {
		return n.Label
	}

	parts := []string{n.Label}
	for _, k := range slices.Sorted(maps.Keys(n.Properties)) {
		if strings.HasPrefix(k, graph.InternalKeyPrefix) {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", k, n.Properties[k]))
	}
	return strings.Join(parts, "\n")
}

func edgeLabel(e *graph.Edge) string {
	if e.Label != "" {
		return e.Label
	}
	return e.Type
}
