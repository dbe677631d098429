package dsl

import (
	"testing"

	"github.com/archtext/archtext/pkg/graph"
)

// Both backends must produce identical Graph-IR for well-formed input.
// Every case here runs against the line backend and the grammar backend.
var backends = []struct {
	name    string
	backend Backend
}{
	{"line", BackendLine},
	{"grammar", BackendGrammar},
}

func mustParse(t *testing.T, src string, opts ParseOptions) *graph.Graph {
	t.Helper()
	res := Parse(src, opts)
	if !res.OK() {
		t.Fatalf("parse failed:\n%s", FormatErrors(res.Errors))
	}
	return res.Graph
}

func TestConformance(t *testing.T) {
	for _, be := range backends {
		t.Run(be.name, func(t *testing.T) {
			opts := ParseOptions{Backend: be.backend}

			t.Run("EmptyDocument", func(t *testing.T) {
				g := mustParse(t, "", opts)
				if len(g.Nodes) != 0 || len(g.Edges) != 0 {
					t.Errorf("got %d nodes, %d edges, want empty graph", len(g.Nodes), len(g.Edges))
				}
				if g.Version != graph.Version || g.ID != graph.DefaultGraphID {
					t.Errorf("header = (%s, %s)", g.Version, g.ID)
				}
			})

			t.Run("CommentsAndBlanksIgnored", func(t *testing.T) {
				g := mustParse(t, "// a comment\n\n   \n// another\n", opts)
				if len(g.Nodes) != 0 || len(g.Edges) != 0 {
					t.Errorf("all-comment document should parse to an empty graph")
				}
			})

			t.Run("SingleNode", func(t *testing.T) {
				g := mustParse(t, `service "API Gateway"`, opts)
				if len(g.Nodes) != 1 {
					t.Fatalf("got %d nodes, want 1", len(g.Nodes))
				}
				n := g.Nodes[0]
				if n.ID != "api_gateway" || n.Type != graph.TypeService || n.Label != "API Gateway" {
					t.Errorf("node = %+v", n)
				}
				if n.Parent != "" || len(n.Children) != 0 || len(n.Properties) != 0 {
					t.Errorf("bare node should have no parent, children, or properties: %+v", n)
				}
			})

			t.Run("EmptyBody", func(t *testing.T) {
				for _, src := range []string{`service "S" { }`, `service "S" {}`} {
					g := mustParse(t, src, opts)
					if len(g.Nodes) != 1 || g.Nodes[0].HasBody() {
						t.Errorf("%q: empty body should produce a bodiless node", src)
					}
				}
			})

			t.Run("Disambiguation", func(t *testing.T) {
				g := mustParse(t, "service \"X\"\nservice \"X\"\nservice \"X\"", opts)
				want := []string{"x", "x_2", "x_3"}
				if len(g.Nodes) != 3 {
					t.Fatalf("got %d nodes, want 3", len(g.Nodes))
				}
				for i, id := range want {
					if g.Nodes[i].ID != id {
						t.Errorf("node %d id = %q, want %q", i, g.Nodes[i].ID, id)
					}
				}
			})

			t.Run("Nesting", func(t *testing.T) {
				g := mustParse(t, "module \"M\" {\nservice \"S\" { }\n}", opts)
				if len(g.Nodes) != 1 {
					t.Fatalf("got %d top-level nodes, want 1", len(g.Nodes))
				}
				m := g.Nodes[0]
				if m.ID != "m" || m.Type != graph.TypeModule {
					t.Errorf("parent = %+v", m)
				}
				if len(m.Children) != 1 {
					t.Fatalf("got %d children, want 1", len(m.Children))
				}
				s := m.Children[0]
				if s.ID != "s" || s.Type != graph.TypeService || s.Parent != "m" {
					t.Errorf("child = %+v", s)
				}
			})

			t.Run("DeepNesting", func(t *testing.T) {
				src := `group "Platform" {
  module "Billing" {
    service "Invoicer" {
      lang: "go"
    }
  }
}`
				g := mustParse(t, src, opts)
				inv := g.FindNode("invoicer")
				if inv == nil {
					t.Fatal("invoicer not found")
				}
				if inv.Parent != "billing" || inv.Properties["lang"] != "go" {
					t.Errorf("invoicer = %+v", inv)
				}
			})

			t.Run("Properties", func(t *testing.T) {
				src := `service "S" {
  lang: "go"
  owner: "platform team"
}`
				g := mustParse(t, src, opts)
				props := g.Nodes[0].Properties
				if props["lang"] != "go" || props["owner"] != "platform team" {
					t.Errorf("properties = %v", props)
				}
			})

			t.Run("EdgePlain", func(t *testing.T) {
				g := mustParse(t, "a -> b", opts)
				if len(g.Edges) != 1 {
					t.Fatalf("got %d edges, want 1", len(g.Edges))
				}
				e := g.Edges[0]
				if e.ID != "a_to_b" || e.Source != "a" || e.Target != "b" {
					t.Errorf("edge = %+v", e)
				}
				if e.Type != "" || e.Label != "" || len(e.Properties) != 0 {
					t.Errorf("plain edge should carry no attributes: %+v", e)
				}
			})

			t.Run("EdgeAttributes", func(t *testing.T) {
				g := mustParse(t, `a -> b [calls, label = "invokes", retries = "3"]`, opts)
				e := g.Edges[0]
				if e.Type != "calls" {
					t.Errorf("type = %q, want calls", e.Type)
				}
				if e.Label != "invokes" {
					t.Errorf("label = %q, want invokes", e.Label)
				}
				if e.Properties["retries"] != "3" {
					t.Errorf("properties = %v", e.Properties)
				}
			})

			t.Run("EdgeTypeOnly", func(t *testing.T) {
				g := mustParse(t, "a -> b [reads]", opts)
				if e := g.Edges[0]; e.Type != "reads" || len(e.Properties) != 0 {
					t.Errorf("edge = %+v", e)
				}
			})

			t.Run("DuplicateEdges", func(t *testing.T) {
				g := mustParse(t, "a -> b\na -> b", opts)
				if g.Edges[0].ID != "a_to_b" || g.Edges[1].ID != "a_to_b_2" {
					t.Errorf("edge ids = %q, %q", g.Edges[0].ID, g.Edges[1].ID)
				}
			})

			t.Run("EscapedLabel", func(t *testing.T) {
				g := mustParse(t, `service "He said \"hi\" \\ bye"`, opts)
				if got := g.Nodes[0].Label; got != `He said "hi" \ bye` {
					t.Errorf("label = %q", got)
				}
			})

			t.Run("EdgesUnresolvedAtParseTime", func(t *testing.T) {
				// The parser accepts edges whose endpoints name no declared
				// node; resolution is layered on top via graph.Validate.
				g := mustParse(t, "ghost -> phantom", opts)
				if len(g.Edges) != 1 {
					t.Fatalf("got %d edges, want 1", len(g.Edges))
				}
				if errs := graph.Validate(g); len(errs) != 2 {
					t.Errorf("Validate returned %d errors, want 2", len(errs))
				}
			})

			t.Run("GraphOptions", func(t *testing.T) {
				g := mustParse(t, "", ParseOptions{Backend: be.backend, GraphID: "custom", GraphName: "My System"})
				if g.ID != "custom" || g.Name != "My System" {
					t.Errorf("graph header = (%s, %s)", g.ID, g.Name)
				}
			})

			t.Run("NoSourceInfoByDefault", func(t *testing.T) {
				g := mustParse(t, "service \"S\"\na -> b", opts)
				if g.Nodes[0].SourceInfo != nil || g.Edges[0].SourceInfo != nil {
					t.Error("source info attached without being requested")
				}
			})

			t.Run("MixedDocument", func(t *testing.T) {
				src := `// storefront architecture
actor "Customer"

module "Storefront" {
  service "Web" {
    lang: "typescript"
  }
  database "Catalog DB"
}

customer -> web [uses]
web -> catalog_db [reads, label = "SQL"]`
				g := mustParse(t, src, opts)
				if g.NodeCount() != 4 {
					t.Errorf("NodeCount = %d, want 4", g.NodeCount())
				}
				if len(g.Edges) != 2 {
					t.Errorf("got %d edges, want 2", len(g.Edges))
				}
				if errs := graph.Validate(g); len(errs) != 0 {
					t.Errorf("Validate: %v", errs)
				}
			})
		})
	}
}

func TestBackendsAgree(t *testing.T) {
	src := `actor "Customer"
module "Shop" {
  service "API" {
    lang: "go"
    service "Auth" { }
  }
  database "Orders"
}

customer -> api [calls, label = "HTTPS"]
api -> orders [writes, retries = "3"]
api -> orders`

	line := Parse(src, ParseOptions{Backend: BackendLine})
	grammar := Parse(src, ParseOptions{Backend: BackendGrammar})
	if !line.OK() || !grammar.OK() {
		t.Fatalf("parse failed: line=%v grammar=%v", line.Errors, grammar.Errors)
	}

	lineText := Print(line.Graph, PrintOptions{})
	grammarText := Print(grammar.Graph, PrintOptions{})
	if lineText != grammarText {
		t.Errorf("backends disagree:\n--- line ---\n%s\n--- grammar ---\n%s", lineText, grammarText)
	}
}
