package graph

import "fmt"

// ReferenceError describes an edge endpoint that does not resolve to any
// declared node ID.
type ReferenceError struct {
	EdgeID   string // the offending edge
	Endpoint string // "source" or "target"
	Ref      string // the unresolved identifier
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("edge %s: %s %q does not match any node", e.EdgeID, e.Endpoint, e.Ref)
}

// Validate checks that every edge endpoint resolves to a node ID reachable
// somewhere in the graph, including nested children. The parser never runs
// this check itself: unresolved references are legal in a freshly parsed
// graph, and validation is layered on top by callers that want it.
func Validate(g *Graph) []*ReferenceError {
	ids := make(map[string]bool, len(g.Nodes))
	g.Walk(func(n *Node) bool {
		ids[n.ID] = true
		return true
	})

	var errs []*ReferenceError
	for i := range g.Edges {
		e := &g.Edges[i]
		if !ids[e.Source] {
			errs = append(errs, &ReferenceError{EdgeID: e.ID, Endpoint: "source", Ref: e.Source})
		}
		if !ids[e.Target] {
			errs = append(errs, &ReferenceError{EdgeID: e.ID, Endpoint: "target", Ref: e.Target})
		}
	}
	return errs
}
