// Package pkg provides the core libraries for archtext.
//
// # Overview
//
// Archtext works with a small text DSL for describing software
// architectures: typed nodes (services, databases, actors, modules,
// groups, external APIs) with nested bodies and properties, plus typed
// edges between them. The pkg directory is organized around the flow
// from text to graph and back:
//
//	DSL text
//	     ↓
//	[dsl] package (parse: text → Graph-IR)
//	     ↓
//	[graph] package (Graph-IR types, JSON serialization, validation)
//	     ↓
//	[dsl] package (print: Graph-IR → canonical text)
//	     ↓
//	[render] package (DOT / SVG diagrams)
//
// # Quick Start
//
// Parse a document and print it back canonically:
//
//	result := dsl.Parse(source, dsl.ParseOptions{})
//	if !result.OK() {
//	    for _, e := range result.Errors {
//	        fmt.Println(e)
//	    }
//	    return
//	}
//	fmt.Print(dsl.Print(result.Graph, dsl.PrintOptions{}))
//
// # Main Packages
//
// [dsl] - The parser (two interchangeable backends: a line-oriented
// scanner and a formal-grammar engine) and the canonical printer.
//
// [graph] - The Graph-IR: hierarchical nodes, edges with raw endpoint
// references, JSON round-tripping, and referential validation.
//
// [render] - Graphviz DOT generation and SVG rendering.
//
// [workspace] - Document storage with memory, file, and MongoDB backends.
//
// [cache] - Parse result caching with file, Redis, and null backends.
//
// [httputil] - HTTP client for the archtext API server, with retries.
//
// [errors] - Structured errors with machine-readable codes, plus input
// validation helpers.
//
// [observability] - Optional instrumentation hooks for parsing, caching,
// and HTTP traffic.
//
// [buildinfo] - Build-time version information injected via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...        # All tests
//	go test ./pkg/dsl/...    # Specific package
//	go test -run Example     # Examples only
package pkg
