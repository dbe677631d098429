package dsl

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/archtext/archtext/pkg/graph"
)

// Line patterns for the four recognized statement forms. A physical line
// that matches none of them (and is not blank, a comment, or a closing
// brace) is an "unexpected syntax" error.
var (
	nodeLineRE = regexp.MustCompile(`^(service|database|external_api|actor|module|group)\s+"((?:[^"\\]|\\.)*)"\s*(\{\s*\}|\{)?$`)
	propLineRE = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*:\s*"((?:[^"\\]|\\.)*)"$`)
	edgeLineRE = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*->\s*([A-Za-z_][A-Za-z0-9_]*)\s*(?:\[(.*)\]\s*)?$`)
	attrKVRE   = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*=\s*"((?:[^"\\]|\\.)*)"$`)
	bareAttrRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// openNode is one level of the nesting stack: a node whose body is still
// open, along with the indentation and position of its declaration line.
type openNode struct {
	node   *graph.Node
	indent int
	line   int
	column int
	offset int
}

type lineParser struct {
	opts  ParseOptions
	gen   *idGenerator
	errs  []*ParseError
	nodes []graph.Node
	edges []graph.Edge
	stack []openNode
}

// parseLines is the default backend: a scanner that classifies each
// physical line against the fixed line grammar, tracking nesting depth
// with an explicit stack. One bad line records an error and parsing
// continues with the next line.
func parseLines(source string, opts ParseOptions) ParseResult {
	p := &lineParser{
		opts:  opts,
		gen:   newIDGenerator(),
		nodes: []graph.Node{},
		edges: []graph.Edge{},
	}

	offset := 0
	lineNo := 0
	for _, raw := range strings.Split(source, "\n") {
		lineNo++
		lineStart := offset
		offset += len(raw) + 1
		p.line(strings.TrimSuffix(raw, "\r"), lineNo, lineStart)
	}

	if len(p.stack) > 0 {
		// One error regardless of how many levels are open, positioned at
		// the innermost unclosed declaration.
		top := p.stack[len(p.stack)-1]
		p.errorf(top.line, top.column, top.offset, "unclosed brace")
	}

	if len(p.errs) > 0 {
		return ParseResult{Errors: p.errs}
	}
	return ParseResult{Graph: &graph.Graph{
		Version: graph.Version,
		ID:      opts.graphID(),
		Name:    opts.GraphName,
		Nodes:   p.nodes,
		Edges:   p.edges,
	}}
}

func (p *lineParser) line(raw string, lineNo, lineStart int) {
	text := strings.TrimSpace(raw)
	if text == "" || strings.HasPrefix(text, "//") {
		return
	}

	indent := len(raw) - len(strings.TrimLeft(raw, " \t"))
	col := indent
	off := lineStart + indent

	switch {
	case text == "}":
		p.closeBody(lineNo, col, off)

	case nodeLineRE.MatchString(text):
		m := nodeLineRE.FindStringSubmatch(text)
		p.nodeLine(m[1], unescape(m[2]), m[3], indent, lineNo, col, off, len(text))

	case len(p.stack) > 0 && propLineRE.MatchString(text):
		m := propLineRE.FindStringSubmatch(text)
		top := p.stack[len(p.stack)-1].node
		if top.Properties == nil {
			top.Properties = make(map[string]string)
		}
		top.Properties[m[1]] = unescape(m[2])

	case edgeLineRE.MatchString(text):
		m := edgeLineRE.FindStringSubmatch(text)
		p.edgeLine(m[1], m[2], m[3], text, lineNo, col, off)

	default:
		p.errorf(lineNo, col, off, "unexpected syntax: %s", text)
	}
}

// closeBody pops one level off the nesting stack. A lone closing brace
// with nothing open is tolerated as a no-op rather than reported, so a
// stray brace does not cascade into errors on every following line.
func (p *lineParser) closeBody(lineNo, col, off int) {
	if len(p.stack) == 0 {
		return
	}
	entry := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	if entry.node.SourceInfo != nil {
		entry.node.SourceInfo.EndLine = lineNo
		entry.node.SourceInfo.EndColumn = col + 1
		entry.node.SourceInfo.EndOffset = off + 1
	}
	p.attach(entry.node)
}

func (p *lineParser) nodeLine(typ, label, brace string, indent, lineNo, col, off, width int) {
	n := &graph.Node{
		ID:    p.gen.nodeID(label),
		Type:  typ,
		Label: label,
	}
	if len(p.stack) > 0 {
		n.Parent = p.stack[len(p.stack)-1].node.ID
	}
	if p.opts.IncludeSourceInfo {
		n.SourceInfo = &graph.SourceInfo{
			StartOffset: off,
			EndOffset:   off + width,
			StartLine:   lineNo,
			EndLine:     lineNo,
			StartColumn: col,
			EndColumn:   col + width,
		}
	}

	// An opening brace without its closing pair starts a body; subsequent
	// lines belong to this node until the matching close.
	if brace == "{" {
		p.stack = append(p.stack, openNode{node: n, indent: indent, line: lineNo, column: col, offset: off})
		return
	}
	p.attach(n)
}

func (p *lineParser) edgeLine(source, target, attrs, text string, lineNo, col, off int) {
	e := graph.Edge{
		ID:     p.gen.edgeID(source, target),
		Source: source,
		Target: target,
	}
	if p.opts.IncludeSourceInfo {
		e.SourceInfo = &graph.SourceInfo{
			StartOffset: off,
			EndOffset:   off + len(text),
			StartLine:   lineNo,
			EndLine:     lineNo,
			StartColumn: col,
			EndColumn:   col + len(text),
		}
	}

	if list := strings.TrimSpace(attrs); list != "" {
		for i, part := range splitAttrs(list) {
			part = strings.TrimSpace(part)
			switch m := attrKVRE.FindStringSubmatch(part); {
			case m != nil && m[1] == "label":
				e.Label = unescape(m[2])
			case m != nil:
				if e.Properties == nil {
					e.Properties = make(map[string]string)
				}
				e.Properties[m[1]] = unescape(m[2])
			case i == 0 && bareAttrRE.MatchString(part):
				e.Type = part
			default:
				p.errorf(lineNo, col, off, "unexpected syntax: %s", text)
				return
			}
		}
	}

	p.edges = append(p.edges, e)
}

// attach places a finished node into its parent's children, or into the
// top-level node list when nothing is open.
func (p *lineParser) attach(n *graph.Node) {
	if len(p.stack) > 0 {
		top := p.stack[len(p.stack)-1].node
		top.Children = append(top.Children, *n)
		return
	}
	p.nodes = append(p.nodes, *n)
}

func (p *lineParser) errorf(line, col, off int, format string, args ...any) {
	p.errs = append(p.errs, &ParseError{
		Message: fmt.Sprintf(format, args...),
		Line:    line,
		Column:  col,
		Offset:  off,
	})
}

// splitAttrs splits a bracketed attribute list on commas, ignoring commas
// inside quoted values.
func splitAttrs(s string) []string {
	var parts []string
	start := 0
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if inQuote {
				i++
			}
		case '"':
			inQuote = !inQuote
		case ',':
			if !inQuote {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// unescape removes the backslash from \" and \\ sequences. Unknown escape
// pairs degrade to the escaped character rather than erroring, mirroring
// what the printer can emit.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
