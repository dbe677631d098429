package dsl

import (
	"strings"
	"testing"

	"github.com/archtext/archtext/pkg/graph"
)

func TestPrintSingleNode(t *testing.T) {
	g := &graph.Graph{Nodes: []graph.Node{{ID: "s", Type: "service", Label: "S"}}}
	if got := Print(g, PrintOptions{}); got != "service \"S\"\n" {
		t.Errorf("Print = %q", got)
	}
}

func TestPrintBodyAndNesting(t *testing.T) {
	g := &graph.Graph{Nodes: []graph.Node{{
		ID: "m", Type: "module", Label: "M",
		Properties: map[string]string{"owner": "core"},
		Children: []graph.Node{
			{ID: "s", Type: "service", Label: "S", Parent: "m"},
		},
	}}}

	want := `module "M" {
  owner: "core"
  service "S"
}
`
	if got := Print(g, PrintOptions{}); got != want {
		t.Errorf("Print =\n%s\nwant\n%s", got, want)
	}
}

func TestPrintPropertiesBeforeChildren(t *testing.T) {
	g := &graph.Graph{Nodes: []graph.Node{{
		ID: "m", Type: "module", Label: "M",
		Properties: map[string]string{"b": "2", "a": "1"},
		Children:   []graph.Node{{ID: "s", Type: "service", Label: "S"}},
	}}}
	out := Print(g, PrintOptions{})

	aIdx := strings.Index(out, `a: "1"`)
	bIdx := strings.Index(out, `b: "2"`)
	sIdx := strings.Index(out, `service "S"`)
	if aIdx < 0 || bIdx < 0 || sIdx < 0 {
		t.Fatalf("missing parts:\n%s", out)
	}
	if !(aIdx < bIdx && bIdx < sIdx) {
		t.Errorf("properties must print sorted and before children:\n%s", out)
	}
}

func TestPrintSkipsInternalKeys(t *testing.T) {
	g := &graph.Graph{Nodes: []graph.Node{{
		ID: "s", Type: "service", Label: "S",
		Properties: map[string]string{"_internal": "x", "lang": "go"},
	}}}
	out := Print(g, PrintOptions{})
	if strings.Contains(out, "_internal") {
		t.Errorf("internal key printed:\n%s", out)
	}
	if !strings.Contains(out, `lang: "go"`) {
		t.Errorf("public key missing:\n%s", out)
	}
}

func TestPrintOnlyInternalKeysMeansNoBody(t *testing.T) {
	g := &graph.Graph{Nodes: []graph.Node{{
		ID: "s", Type: "service", Label: "S",
		Properties: map[string]string{"_hidden": "x"},
	}}}
	if got := Print(g, PrintOptions{}); got != "service \"S\"\n" {
		t.Errorf("node with only internal keys should print bodiless, got %q", got)
	}
}

func TestPrintEdgeAttributeOrder(t *testing.T) {
	g := &graph.Graph{Edges: []graph.Edge{{
		ID: "a_to_b", Source: "a", Target: "b",
		Type:       "calls",
		Label:      "invokes",
		Properties: map[string]string{"retries": "3", "proto": "grpc"},
	}}}
	want := `a -> b [calls, label = "invokes", proto = "grpc", retries = "3"]` + "\n"
	if got := Print(g, PrintOptions{}); got != want {
		t.Errorf("Print = %q, want %q", got, want)
	}
}

func TestPrintSeparatorLine(t *testing.T) {
	tests := []struct {
		name  string
		g     *graph.Graph
		plain string
	}{
		{
			name: "BothSections",
			g: &graph.Graph{
				Nodes: []graph.Node{{ID: "a", Type: "service", Label: "A"}},
				Edges: []graph.Edge{{ID: "a_to_b", Source: "a", Target: "b"}},
			},
			plain: "service \"A\"\n\na -> b\n",
		},
		{
			name:  "EdgesOnly",
			g:     &graph.Graph{Edges: []graph.Edge{{ID: "a_to_b", Source: "a", Target: "b"}}},
			plain: "a -> b\n",
		},
		{
			name:  "NodesOnly",
			g:     &graph.Graph{Nodes: []graph.Node{{ID: "a", Type: "service", Label: "A"}}},
			plain: "service \"A\"\n",
		},
		{
			name:  "Empty",
			g:     &graph.Graph{},
			plain: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Print(tt.g, PrintOptions{}); got != tt.plain {
				t.Errorf("Print = %q, want %q", got, tt.plain)
			}
		})
	}
}

func TestPrintEscaping(t *testing.T) {
	g := &graph.Graph{Nodes: []graph.Node{{
		ID: "s", Type: "service", Label: `He said "hi" \ bye`,
	}}}
	want := `service "He said \"hi\" \\ bye"` + "\n"
	if got := Print(g, PrintOptions{}); got != want {
		t.Errorf("Print = %q, want %q", got, want)
	}
}

func TestPrintCustomIndent(t *testing.T) {
	g := &graph.Graph{Nodes: []graph.Node{{
		ID: "m", Type: "module", Label: "M",
		Children: []graph.Node{{ID: "s", Type: "service", Label: "S"}},
	}}}
	out := Print(g, PrintOptions{Indent: "\t"})
	if !strings.Contains(out, "\tservice \"S\"\n") {
		t.Errorf("tab indent not applied:\n%q", out)
	}
}

func TestPrintUnknownTypePassesThrough(t *testing.T) {
	// The printer is agnostic to types outside the parser's vocabulary.
	g := &graph.Graph{Nodes: []graph.Node{{ID: "q", Type: "queue", Label: "Q"}}}
	if got := Print(g, PrintOptions{}); got != "queue \"Q\"\n" {
		t.Errorf("Print = %q", got)
	}
}

func TestPrintSortByType(t *testing.T) {
	g := &graph.Graph{Nodes: []graph.Node{
		{ID: "db", Type: "database", Label: "DB"},
		{ID: "who", Type: "actor", Label: "Who"},
		{ID: "api", Type: "service", Label: "API"},
		{ID: "grp", Type: "group", Label: "Grp"},
	}}
	out := Print(g, PrintOptions{SortByType: true})

	order := []string{`actor "Who"`, `service "API"`, `database "DB"`, `group "Grp"`}
	last := -1
	for _, decl := range order {
		idx := strings.Index(out, decl)
		if idx < 0 {
			t.Fatalf("missing %q in:\n%s", decl, out)
		}
		if idx < last {
			t.Errorf("%q out of order:\n%s", decl, out)
		}
		last = idx
	}

	// The input graph must not be reordered in place.
	if g.Nodes[0].ID != "db" {
		t.Error("SortByType mutated the input graph")
	}
}

func TestPrintSortByTypeKeepsNestingOrder(t *testing.T) {
	g := &graph.Graph{Nodes: []graph.Node{{
		ID: "m", Type: "module", Label: "M",
		Children: []graph.Node{
			{ID: "db", Type: "database", Label: "DB", Parent: "m"},
			{ID: "a", Type: "actor", Label: "A", Parent: "m"},
		},
	}}}
	out := Print(g, PrintOptions{SortByType: true})
	if strings.Index(out, `database "DB"`) > strings.Index(out, `actor "A"`) {
		t.Errorf("child order must be untouched by SortByType:\n%s", out)
	}
}

func TestPrintIdempotent(t *testing.T) {
	res := Parse("module \"M\" {\n  service \"S\"\n}\nm -> s", ParseOptions{Backend: BackendLine})
	if !res.OK() {
		t.Fatal(FormatErrors(res.Errors))
	}
	first := Print(res.Graph, PrintOptions{})
	second := Print(res.Graph, PrintOptions{})
	if first != second {
		t.Error("Print is not idempotent")
	}
}
