// Package dsl implements the archtext architecture-description language:
// a parser from DSL text to Graph-IR and a printer performing the inverse
// transformation.
//
// # Language
//
// The DSL is line-oriented. Node declarations name a type from a fixed
// vocabulary and a quoted label, optionally followed by a braced body of
// properties and nested declarations. Edges connect two identifiers with
// an optional bracketed attribute list:
//
//	// comment lines and blank lines are ignored
//	actor "Customer"
//	service "API Gateway" {
//	    lang: "go"
//	    service "Router" { }
//	}
//	database "Orders DB"
//
//	customer -> api_gateway [calls, label = "HTTPS"]
//	api_gateway -> orders_db [reads, retries = "3"]
//
// Node identifiers are generated from labels, never hand-authored:
// lower-cased, dots/spaces/hyphens become underscores, other punctuation
// is dropped. Colliding labels disambiguate with _2, _3, ... suffixes in
// declaration order.
//
// # Parsing
//
//	result := dsl.Parse(source, dsl.ParseOptions{})
//	if !result.OK() {
//	    for _, e := range result.Errors {
//	        fmt.Println(e) // "line 3, col 0: unexpected syntax: ..."
//	    }
//	    return
//	}
//	g := result.Graph
//
// Parse never fails with a Go error: malformed input is an expected
// outcome collected into ParseError values with source positions, and a
// parse succeeds if and only if that list is empty. There is no partial
// output - an errored parse produces no graph.
//
// Two interchangeable backends exist. The default line backend classifies
// each physical line against a small fixed grammar and tracks nesting with
// an explicit brace stack. The grammar backend runs the same text through
// a formal grammar engine and walks the resulting concrete syntax tree.
// BackendAuto probes the grammar backend and falls back to the line
// backend when the engine cannot be loaded.
//
// # Printing
//
//	text := dsl.Print(g, dsl.PrintOptions{})
//
// Print is deterministic and total: any graph the parser can produce
// prints successfully, and parsing the printed text yields a structurally
// equal graph (IDs are regenerated but identical, since generation is
// deterministic). Property keys with a leading underscore are reserved
// for internal bookkeeping and are never printed.
//
// # Concurrency
//
// Both directions are pure functions of their inputs. ID-disambiguation
// state is scoped to a single call, so concurrent parses and prints need
// no synchronization.
package dsl
