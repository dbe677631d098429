package dsl

import (
	"maps"
	"slices"
	"strings"

	"github.com/archtext/archtext/pkg/graph"
)

// DefaultIndent is the indentation unit used when PrintOptions.Indent is
// empty.
const DefaultIndent = "  "

// PrintOptions configures DSL text generation.
type PrintOptions struct {
	// Indent is the literal indentation unit. Defaults to two spaces.
	Indent string

	// IncludeComments is reserved for future metadata comments and is
	// currently unused.
	IncludeComments bool

	// SortByType reorders top-level nodes by type precedence (actor,
	// service, module, database, external_api, group) before printing.
	// Nesting order within a parent and edge order are untouched. This is
	// a readability aid only; it is not required for round-trip fidelity.
	SortByType bool
}

// typePrecedence orders node types for the pretty-print variant. Unknown
// types sort after all known ones, keeping their relative order.
var typePrecedence = map[string]int{
	graph.TypeActor:       0,
	graph.TypeService:     1,
	graph.TypeModule:      2,
	graph.TypeDatabase:    3,
	graph.TypeExternalAPI: 4,
	graph.TypeGroup:       5,
}

// Print serializes a graph back to DSL text. It is the inverse of [Parse]:
// for any graph the parser can produce, parsing the printed text yields a
// structurally equal graph. Printing cannot fail and reads no state beyond
// its arguments, so equal inputs always produce equal output.
func Print(g *graph.Graph, opts PrintOptions) string {
	indent := opts.Indent
	if indent == "" {
		indent = DefaultIndent
	}

	nodes := g.Nodes
	if opts.SortByType {
		nodes = slices.Clone(nodes)
		slices.SortStableFunc(nodes, func(a, b graph.Node) int {
			return precedence(a.Type) - precedence(b.Type)
		})
	}

	var b strings.Builder
	for i := range nodes {
		printNode(&b, &nodes[i], 0, indent)
	}

	if len(nodes) > 0 && len(g.Edges) > 0 {
		b.WriteByte('\n')
	}

	for i := range g.Edges {
		printEdge(&b, &g.Edges[i])
	}

	return b.String()
}

func precedence(t string) int {
	if p, ok := typePrecedence[t]; ok {
		return p
	}
	return len(typePrecedence)
}

func printNode(b *strings.Builder, n *graph.Node, depth int, indent string) {
	prefix := strings.Repeat(indent, depth)
	b.WriteString(prefix)
	b.WriteString(n.Type)
	b.WriteString(" \"")
	b.WriteString(escape(n.Label))
	b.WriteString("\"")

	keys := printableKeys(n.Properties)
	if len(keys) == 0 && len(n.Children) == 0 {
		b.WriteByte('\n')
		return
	}

	b.WriteString(" {\n")
	for _, k := range keys {
		b.WriteString(prefix)
		b.WriteString(indent)
		b.WriteString(k)
		b.WriteString(": \"")
		b.WriteString(escape(n.Properties[k]))
		b.WriteString("\"\n")
	}
	for i := range n.Children {
		printNode(b, &n.Children[i], depth+1, indent)
	}
	b.WriteString(prefix)
	b.WriteString("}\n")
}

func printEdge(b *strings.Builder, e *graph.Edge) {
	b.WriteString(e.Source)
	b.WriteString(" -> ")
	b.WriteString(e.Target)

	var attrs []string
	if e.Type != "" {
		attrs = append(attrs, e.Type)
	}
	if e.Label != "" {
		attrs = append(attrs, `label = "`+escape(e.Label)+`"`)
	}
	for _, k := range printableKeys(e.Properties) {
		attrs = append(attrs, k+` = "`+escape(e.Properties[k])+`"`)
	}

	if len(attrs) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(attrs, ", "))
		b.WriteString("]")
	}
	b.WriteByte('\n')
}

// printableKeys returns the property keys to print, sorted for output
// determinism, with internal-reserved keys (leading underscore) skipped.
func printableKeys(props map[string]string) []string {
	if len(props) == 0 {
		return nil
	}
	keys := make([]string, 0, len(props))
	for _, k := range slices.Sorted(maps.Keys(props)) {
		if strings.HasPrefix(k, graph.InternalKeyPrefix) {
			continue
		}
		keys = append(keys, k)
	}
	return keys
}

// escape protects backslash and double-quote characters with a leading
// backslash. No other characters are escaped.
func escape(s string) string {
	if !strings.ContainsAny(s, `\"`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' || s[i] == '"' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
