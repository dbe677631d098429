// Package graph defines the Graph-IR: the intermediate representation of an
// architecture diagram shared by the DSL parser, the DSL printer, and the
// surrounding tooling (CLI, HTTP API, exporters).
//
// # Core Types
//
//   - [Graph]: the root value - version tag, identifier, ordered nodes and edges
//   - [Node]: an architectural element; may nest children arbitrarily deep
//   - [Edge]: a directed relation between two node identifiers
//   - [SourceInfo]: optional source positions attached during parsing
//
// # Serialization
//
// Graphs use a JSON wire format with bson tags for document storage:
//
//	g, _ := graph.ReadFile("arch.json")     // File → Graph
//	graph.WriteFile(g, "arch.json")         // Graph → File
//	data, _ := graph.Marshal(g)             // Graph → []byte
//	parsed, _ := graph.Unmarshal(data)      // []byte → Graph
//
// # Ownership
//
// Graph values are treated as immutable by this module: whichever caller
// holds the most recent value owns it exclusively. Nothing here keeps
// global state, so independent values can be used concurrently.
//
// # Validation
//
// The parser does not resolve edge endpoints against declared nodes.
// [Validate] performs that check as a separate, optional layer.
package graph
