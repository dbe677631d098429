package dsl

import (
	"fmt"

	"github.com/archtext/archtext/pkg/graph"
)

// Backend selects the parsing implementation. Both backends produce
// identical Graph-IR for well-formed input; they differ only in how they
// recognize the source text.
type Backend int

const (
	// BackendAuto probes the grammar backend once per process and falls
	// back to the line backend when it is unavailable.
	BackendAuto Backend = iota

	// BackendLine is the default line-oriented scanner.
	BackendLine

	// BackendGrammar parses through the formal-grammar engine, building a
	// concrete syntax tree before converting it to Graph-IR.
	BackendGrammar
)

func (b Backend) String() string {
	switch b {
	case BackendLine:
		return "line"
	case BackendGrammar:
		return "grammar"
	default:
		return "auto"
	}
}

// ParseBackend converts a backend name ("auto", "line", "grammar") to a
// Backend value.
func ParseBackend(name string) (Backend, error) {
	switch name {
	case "auto", "":
		return BackendAuto, nil
	case "line":
		return BackendLine, nil
	case "grammar":
		return BackendGrammar, nil
	default:
		return BackendAuto, fmt.Errorf("unknown parser backend: %q (available: auto, line, grammar)", name)
	}
}

// ParseOptions configures a parse invocation.
type ParseOptions struct {
	// Backend selects the parsing implementation. Zero value is BackendAuto.
	Backend Backend

	// IncludeSourceInfo attaches source positions to every produced node
	// and edge.
	IncludeSourceInfo bool

	// GraphID overrides the default graph identifier.
	GraphID string

	// GraphName sets an optional display name on the graph.
	GraphName string
}

func (o ParseOptions) graphID() string {
	if o.GraphID != "" {
		return o.GraphID
	}
	return graph.DefaultGraphID
}

// ParseResult is the outcome of a parse. Success and failure are mutually
// exclusive: Graph is set if and only if Errors is empty.
type ParseResult struct {
	Graph  *graph.Graph  `json:"graph,omitempty"`
	Errors []*ParseError `json:"errors,omitempty"`
}

// OK reports whether the parse succeeded.
func (r ParseResult) OK() bool { return len(r.Errors) == 0 }

// Parse converts DSL source text into Graph-IR. Malformed input never
// causes a panic or a Go error: every recognized failure mode becomes an
// entry in the result's error list, and a non-empty list means no graph
// is produced.
func Parse(source string, opts ParseOptions) ParseResult {
	backend := opts.Backend
	if backend == BackendAuto {
		if GrammarAvailable() {
			backend = BackendGrammar
		} else {
			backend = BackendLine
		}
	}

	switch backend {
	case BackendGrammar:
		return parseGrammar(source, opts)
	default:
		return parseLines(source, opts)
	}
}
