package dsl

import "testing"

func TestSlug(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"API Gateway", "api_gateway"},
		{"orders.db", "orders_db"},
		{"rate-limiter", "rate_limiter"},
		{"Already_snake", "already_snake"},
		{"  padded  ", "padded"},
		{"a...b", "a_b"},
		{"Mixed. Separator-Run", "mixed_separator_run"},
		{"emoji 🚀 label", "emoji_label"},
		{"UPPER", "upper"},
		{"(parens) [brackets]", "parens_brackets"},
		{"123 numbers", "123_numbers"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := slug(tt.label); got != tt.want {
				t.Errorf("slug(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestIDGeneratorDisambiguation(t *testing.T) {
	gen := newIDGenerator()

	if got := gen.nodeID("X"); got != "x" {
		t.Errorf("first = %q, want x", got)
	}
	if got := gen.nodeID("X"); got != "x_2" {
		t.Errorf("second = %q, want x_2", got)
	}
	if got := gen.nodeID("X"); got != "x_3" {
		t.Errorf("third = %q, want x_3", got)
	}
	// Different base is independent.
	if got := gen.nodeID("Y"); got != "y" {
		t.Errorf("other base = %q, want y", got)
	}
}

func TestIDGeneratorEdgeIDs(t *testing.T) {
	gen := newIDGenerator()

	if got := gen.edgeID("a", "b"); got != "a_to_b" {
		t.Errorf("edge id = %q, want a_to_b", got)
	}
	if got := gen.edgeID("a", "b"); got != "a_to_b_2" {
		t.Errorf("duplicate edge id = %q, want a_to_b_2", got)
	}
}

func TestIDGeneratorEmptyBase(t *testing.T) {
	gen := newIDGenerator()

	if got := gen.nodeID("!!!"); got != "unnamed" {
		t.Errorf("punctuation-only label id = %q, want unnamed", got)
	}
	if got := gen.nodeID("???"); got != "unnamed_2" {
		t.Errorf("second punctuation-only label id = %q, want unnamed_2", got)
	}
}

func TestIDGeneratorScopedPerParse(t *testing.T) {
	// Two parses of the same source must yield identical IDs: counters are
	// never shared across invocations.
	src := `service "X"
service "X"`
	first := Parse(src, ParseOptions{Backend: BackendLine})
	second := Parse(src, ParseOptions{Backend: BackendLine})
	if !first.OK() || !second.OK() {
		t.Fatalf("parse failed: %v %v", first.Errors, second.Errors)
	}
	for i := range first.Graph.Nodes {
		if first.Graph.Nodes[i].ID != second.Graph.Nodes[i].ID {
			t.Errorf("node %d: %q != %q", i, first.Graph.Nodes[i].ID, second.Graph.Nodes[i].ID)
		}
	}
}
