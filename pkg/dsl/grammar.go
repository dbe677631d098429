package dsl

import (
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/archtext/archtext/pkg/graph"
)

// The grammar backend parses the same DSL through a formal grammar engine
// (participle), producing a concrete syntax tree that is then walked into
// the same Graph-IR shapes as the line backend: same ID generation, same
// property and attribute rules. The two backends are interchangeable.

var dslLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Arrow", Pattern: `->`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[\[\]{},:=]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

// Concrete syntax tree. Field names mirror the grammar: type, name, body,
// source, target, attributes.
type cstFile struct {
	Statements []*cstStatement `parser:"@@*"`
}

type cstStatement struct {
	Node *cstNode `parser:"@@"`
	Edge *cstEdge `parser:"| @@"`
}

type cstNode struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Type string   `parser:"@('service' | 'database' | 'external_api' | 'actor' | 'module' | 'group')"`
	Name string   `parser:"@String"`
	Body *cstBody `parser:"@@?"`
}

type cstBody struct {
	Entries []*cstEntry `parser:"'{' @@* '}'"`
}

type cstEntry struct {
	Property *cstProperty `parser:"@@"`
	Node     *cstNode     `parser:"| @@"`
	Edge     *cstEdge     `parser:"| @@"`
}

type cstProperty struct {
	Key   string `parser:"@Ident ':'"`
	Value string `parser:"@String"`
}

type cstEdge struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Source     string     `parser:"@Ident '->'"`
	Target     string     `parser:"@Ident"`
	Attributes []*cstAttr `parser:"('[' @@ (',' @@)* ']')?"`
}

type cstAttr struct {
	Pos lexer.Position

	Key   string  `parser:"@Ident"`
	Value *string `parser:"('=' @String)?"`
}

var (
	grammarOnce sync.Once
	grammar     *participle.Parser[cstFile]
	grammarErr  error
)

func buildGrammar() {
	grammar, grammarErr = participle.Build[cstFile](
		participle.Lexer(dslLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(2),
	)
}

// GrammarAvailable reports whether the formal-grammar engine could be
// loaded. BackendAuto consults this once per process; callers selecting
// BackendGrammar explicitly get an errored result when it is false.
func GrammarAvailable() bool {
	grammarOnce.Do(buildGrammar)
	return grammarErr == nil
}

// parseGrammar parses through the formal engine. Unlike the line backend,
// which recovers per line and can report several errors, the engine stops
// at its first syntax error, so a failed parse carries exactly one
// ParseError. Walker-detected errors (stray bare attributes) can still
// accumulate.
func parseGrammar(source string, opts ParseOptions) ParseResult {
	grammarOnce.Do(buildGrammar)
	if grammarErr != nil {
		return ParseResult{Errors: []*ParseError{{
			Message: "grammar backend unavailable: " + grammarErr.Error(),
			Line:    1,
		}}}
	}

	file, err := grammar.ParseString("", source)
	if err != nil {
		return ParseResult{Errors: []*ParseError{grammarError(source, err)}}
	}

	w := &treeWalker{opts: opts, gen: newIDGenerator(), nodes: []graph.Node{}, edges: []graph.Edge{}}
	for _, stmt := range file.Statements {
		switch {
		case stmt.Node != nil:
			w.nodes = append(w.nodes, w.node(stmt.Node, ""))
		case stmt.Edge != nil:
			w.edge(stmt.Edge)
		}
	}

	if len(w.errs) > 0 {
		return ParseResult{Errors: w.errs}
	}
	return ParseResult{Graph: &graph.Graph{
		Version: graph.Version,
		ID:      opts.graphID(),
		Name:    opts.GraphName,
		Nodes:   w.nodes,
		Edges:   w.edges,
	}}
}

// grammarError converts an engine error into the shared ParseError shape.
// The engine positions its error at the token it could not consume, which
// for a failed statement is the token *after* the match gave up (often
// EOF). Editor diagnostics want the statement itself, so the position is
// snapped back to the first non-blank column of the offending line, the
// same anchor the line backend uses.
func grammarError(source string, err error) *ParseError {
	perr, ok := err.(participle.Error)
	if !ok {
		return &ParseError{Message: err.Error(), Line: 1}
	}
	line, col, off := anchorError(source, perr.Position().Offset)
	return &ParseError{
		Message: perr.Message(),
		Line:    line,
		Column:  col,
		Offset:  off,
	}
}

// anchorError maps an engine-reported byte offset to the start of the line
// it belongs to. An offset at EOF first steps back over trailing whitespace
// so the error lands on the last statement rather than an empty final line.
func anchorError(source string, offset int) (line, col, off int) {
	offset = min(offset, len(source))
	if offset == len(source) {
		for offset > 0 && isSpaceByte(source[offset-1]) {
			offset--
		}
	}

	start := strings.LastIndexByte(source[:offset], '\n') + 1
	line = 1 + strings.Count(source[:start], "\n")
	col = 0
	for start+col < len(source) && (source[start+col] == ' ' || source[start+col] == '\t') {
		col++
	}
	return line, col, start + col
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

type treeWalker struct {
	opts  ParseOptions
	gen   *idGenerator
	errs  []*ParseError
	nodes []graph.Node
	edges []graph.Edge
}

func (w *treeWalker) node(cn *cstNode, parent string) graph.Node {
	label := unescape(unquote(cn.Name))
	n := graph.Node{
		ID:     w.gen.nodeID(label),
		Type:   cn.Type,
		Label:  label,
		Parent: parent,
	}
	if w.opts.IncludeSourceInfo {
		n.SourceInfo = sourceInfo(cn.Pos, cn.EndPos)
	}

	if cn.Body != nil {
		for _, entry := range cn.Body.Entries {
			switch {
			case entry.Property != nil:
				if n.Properties == nil {
					n.Properties = make(map[string]string)
				}
				n.Properties[entry.Property.Key] = unescape(unquote(entry.Property.Value))
			case entry.Node != nil:
				n.Children = append(n.Children, w.node(entry.Node, n.ID))
			case entry.Edge != nil:
				w.edge(entry.Edge)
			}
		}
	}

	return n
}

func (w *treeWalker) edge(ce *cstEdge) {
	e := graph.Edge{
		ID:     w.gen.edgeID(ce.Source, ce.Target),
		Source: ce.Source,
		Target: ce.Target,
	}
	if w.opts.IncludeSourceInfo {
		e.SourceInfo = sourceInfo(ce.Pos, ce.EndPos)
	}

	for i, attr := range ce.Attributes {
		switch {
		case attr.Value == nil && i == 0:
			e.Type = attr.Key
		case attr.Value == nil:
			w.errs = append(w.errs, &ParseError{
				Message: "unexpected syntax: " + attr.Key,
				Line:    attr.Pos.Line,
				Column:  attr.Pos.Column - 1,
				Offset:  attr.Pos.Offset,
			})
			return
		case attr.Key == "label":
			e.Label = unescape(unquote(*attr.Value))
		default:
			if e.Properties == nil {
				e.Properties = make(map[string]string)
			}
			e.Properties[attr.Key] = unescape(unquote(*attr.Value))
		}
	}

	w.edges = append(w.edges, e)
}

func sourceInfo(start, end lexer.Position) *graph.SourceInfo {
	return &graph.SourceInfo{
		StartOffset: start.Offset,
		EndOffset:   end.Offset,
		StartLine:   start.Line,
		EndLine:     end.Line,
		StartColumn: start.Column - 1,
		EndColumn:   end.Column - 1,
	}
}

// unquote strips the surrounding double quotes from a String token.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
