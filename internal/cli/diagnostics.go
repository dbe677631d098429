package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/archtext/archtext/pkg/dsl"
)

var (
	styleDiagLoc  = lipgloss.NewStyle().Foreground(colorGray)
	styleDiagMsg  = lipgloss.NewStyle().Foreground(colorRed)
	styleDiagLine = lipgloss.NewStyle().Foreground(colorWhite)
	styleCaret    = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
)

// printDiagnostics writes every parse error to w in an editor-style format,
// with the offending source line and a caret under the reported column:
//
//	input.arch:3:0: unknown node type: queue
//	  queue "Jobs" {
//	  ^
func printDiagnostics(w io.Writer, name, source string, errs []*dsl.ParseError) {
	lines := strings.Split(source, "\n")

	for _, e := range errs {
		loc := fmt.Sprintf("%s:%d:%d:", name, e.Line, e.Column)
		fmt.Fprintf(w, "%s %s\n", styleDiagLoc.Render(loc), styleDiagMsg.Render(e.Message))

		if e.Line < 1 || e.Line > len(lines) {
			continue
		}
		src := strings.ReplaceAll(lines[e.Line-1], "\t", " ")
		fmt.Fprintf(w, "  %s\n", styleDiagLine.Render(src))

		col := min(e.Column, len(src))
		fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", col), styleCaret.Render("^"))
	}
}
