package httputil

import (
	"github.com/archtext/archtext/pkg/dsl"
	"github.com/archtext/archtext/pkg/graph"
)

// Wire types shared between the HTTP server and [Client].

// ParseRequest is the body of POST /v1/parse.
type ParseRequest struct {
	// Source is the DSL text to parse.
	Source string `json:"source"`

	// Backend selects the parser backend: "auto", "line", or "grammar".
	// Empty means "auto".
	Backend string `json:"backend,omitempty"`

	// GraphID overrides the graph's ID. Empty means the default.
	GraphID string `json:"graph_id,omitempty"`

	// GraphName sets the graph's human-readable name.
	GraphName string `json:"graph_name,omitempty"`

	// SourceInfo requests source position spans on nodes and edges.
	SourceInfo bool `json:"source_info,omitempty"`
}

// ParseResponse is the body returned by POST /v1/parse.
// On failure Graph is null and Errors lists every diagnostic.
type ParseResponse struct {
	Graph  *graph.Graph      `json:"graph,omitempty"`
	Errors []*dsl.ParseError `json:"errors,omitempty"`
}

// PrintRequest is the body of POST /v1/print.
type PrintRequest struct {
	Graph *graph.Graph `json:"graph"`

	// Indent is the indentation unit. Empty means two spaces.
	Indent string `json:"indent,omitempty"`

	// SortByType orders top-level nodes by type before printing.
	SortByType bool `json:"sort_by_type,omitempty"`
}

// PrintResponse is the body returned by POST /v1/print.
type PrintResponse struct {
	Output string `json:"output"`
}

// ErrorResponse is the body returned for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
