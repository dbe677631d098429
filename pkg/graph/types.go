package graph

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Node types recognized by the DSL parser. The printer is agnostic to
// unknown values: a Node with a type outside this vocabulary still prints.
const (
	TypeService     = "service"
	TypeDatabase    = "database"
	TypeExternalAPI = "external_api"
	TypeActor       = "actor"
	TypeModule      = "module"
	TypeGroup       = "group"
)

// Version is the Graph-IR format tag stamped onto every parsed graph.
const Version = "1.0"

// DefaultGraphID is the graph identifier used when the caller does not
// provide one.
const DefaultGraphID = "architecture"

// InternalKeyPrefix marks property keys reserved for internal bookkeeping.
// The printer skips them, so they never round-trip through DSL text.
const InternalKeyPrefix = "_"

// NodeTypes lists the parser's fixed type vocabulary in declaration order.
var NodeTypes = []string{
	TypeService,
	TypeDatabase,
	TypeExternalAPI,
	TypeActor,
	TypeModule,
	TypeGroup,
}

// IsNodeType reports whether t is one of the fixed node type vocabulary.
func IsNodeType(t string) bool {
	for _, nt := range NodeTypes {
		if t == nt {
			return true
		}
	}
	return false
}

// =============================================================================
// Graph - Architecture Graph Serialization
// =============================================================================

// Graph is the intermediate representation shared by the DSL parser, the
// printer, and any surrounding tooling. It is a value object: the parser
// constructs one, everything else only reads it.
//
// Node and edge order is insertion order and is significant for printing.
type Graph struct {
	Version string `json:"version" bson:"version"`
	ID      string `json:"id" bson:"id"`
	Name    string `json:"name,omitempty" bson:"name,omitempty"`
	Nodes   []Node `json:"nodes" bson:"nodes"`
	Edges   []Edge `json:"edges" bson:"edges"`
}

// Node is an architectural element: a service, database, external API,
// actor, module, or group. Nodes may nest arbitrarily deep via Children.
type Node struct {
	ID         string            `json:"id" bson:"id"`
	Type       string            `json:"type" bson:"type"`
	Label      string            `json:"label" bson:"label"`
	Parent     string            `json:"parent,omitempty" bson:"parent,omitempty"`
	Children   []Node            `json:"children,omitempty" bson:"children,omitempty"`
	Properties map[string]string `json:"properties,omitempty" bson:"properties,omitempty"`
	SourceInfo *SourceInfo       `json:"sourceInfo,omitempty" bson:"sourceInfo,omitempty"`
}

// Edge is a directed relation between two node identifiers. Source and
// Target are the raw identifiers as written in the DSL; they are not
// resolved against declared nodes at parse time (see [Validate]).
type Edge struct {
	ID         string            `json:"id" bson:"id"`
	Source     string            `json:"source" bson:"source"`
	Target     string            `json:"target" bson:"target"`
	Type       string            `json:"type,omitempty" bson:"type,omitempty"`
	Label      string            `json:"label,omitempty" bson:"label,omitempty"`
	Properties map[string]string `json:"properties,omitempty" bson:"properties,omitempty"`
	SourceInfo *SourceInfo       `json:"sourceInfo,omitempty" bson:"sourceInfo,omitempty"`
}

// SourceInfo records where a node or edge came from in the DSL source.
// Present only when parsing was asked to track positions.
type SourceInfo struct {
	StartOffset int `json:"startOffset" bson:"startOffset"` // 0-based byte offset
	EndOffset   int `json:"endOffset" bson:"endOffset"`
	StartLine   int `json:"startLine" bson:"startLine"` // 1-based
	EndLine     int `json:"endLine" bson:"endLine"`
	StartColumn int `json:"startColumn" bson:"startColumn"` // 0-based
	EndColumn   int `json:"endColumn" bson:"endColumn"`
}

// HasBody reports whether the node would need a `{ ... }` body in DSL form,
// i.e. it has properties or nested children.
func (n *Node) HasBody() bool {
	return len(n.Children) > 0 || len(n.Properties) > 0
}

// Property returns the value for key and whether it was set.
func (n *Node) Property(key string) (string, bool) {
	v, ok := n.Properties[key]
	return v, ok
}

// NodeCount returns the total number of nodes including nested children.
func (g *Graph) NodeCount() int {
	count := 0
	g.Walk(func(*Node) bool {
		count++
		return true
	})
	return count
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.Edges) }

// Walk visits every node depth-first in declaration order, parents before
// children. Returning false from fn stops the walk.
func (g *Graph) Walk(fn func(*Node) bool) {
	var visit func(nodes []Node) bool
	visit = func(nodes []Node) bool {
		for i := range nodes {
			if !fn(&nodes[i]) {
				return false
			}
			if !visit(nodes[i].Children) {
				return false
			}
		}
		return true
	}
	visit(g.Nodes)
}

// FindNode returns the node with the given ID, searching nested children,
// or nil if not found.
func (g *Graph) FindNode(id string) *Node {
	var found *Node
	g.Walk(func(n *Node) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}
