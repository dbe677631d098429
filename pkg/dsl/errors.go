package dsl

import (
	"fmt"
	"strings"
)

// ParseError describes one failure encountered while parsing DSL source.
// Errors are collected into a list rather than aborting the parse; a
// non-empty list makes the overall result a failure.
type ParseError struct {
	Message string `json:"message"`
	Line    int    `json:"line"`   // 1-based
	Column  int    `json:"column"` // 0-based
	Offset  int    `json:"offset"` // byte offset into the source
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d, col %d: %s", e.Line, e.Column, e.Message)
	}
	return e.Message
}

// FormatErrors joins the error list into a newline-separated string,
// one "line N, col C: message" entry per error.
func FormatErrors(errs []*ParseError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "\n")
}
