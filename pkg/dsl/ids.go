package dsl

import (
	"fmt"
	"strings"
)

// idGenerator turns human-chosen labels into unique identifiers within a
// single parse. The first occurrence of a base ID is used unsuffixed; every
// later occurrence appends _N, with N the occurrence count starting at 2.
//
// Generators are created fresh per parse invocation and never shared, so
// two parses of the same source always produce identical IDs.
type idGenerator struct {
	counts map[string]int
}

func newIDGenerator() *idGenerator {
	return &idGenerator{counts: make(map[string]int)}
}

// nodeID generates a unique identifier from a node label.
func (g *idGenerator) nodeID(label string) string {
	return g.next(slug(label))
}

// edgeID generates a unique identifier from an edge's endpoints.
// Duplicate edges between the same pair disambiguate the same way labels do.
func (g *idGenerator) edgeID(source, target string) string {
	return g.next(slug(source + "_to_" + target))
}

func (g *idGenerator) next(base string) string {
	if base == "" {
		base = "unnamed"
	}
	g.counts[base]++
	if n := g.counts[base]; n > 1 {
		return fmt.Sprintf("%s_%d", base, n)
	}
	return base
}

// slug converts a label to a base identifier: lower-case, dots/spaces/
// hyphens become underscores, every other non-alphanumeric rune is dropped,
// runs of underscores collapse, and leading/trailing underscores are
// trimmed.
func slug(label string) string {
	var b strings.Builder
	b.Grow(len(label))

	prevUnderscore := false
	for _, r := range strings.ToLower(label) {
		switch {
		case r == '.' || r == ' ' || r == '-' || r == '_':
			if !prevUnderscore {
				b.WriteByte('_')
				prevUnderscore = true
			}
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			prevUnderscore = false
		}
	}

	return strings.Trim(b.String(), "_")
}
