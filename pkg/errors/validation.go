package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// graphIDRegex matches identifiers the DSL's ID generator can emit, plus
// caller-chosen graph IDs in the same shape.
var graphIDRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_]*$`)

// ValidateGraphID validates a caller-supplied graph identifier.
// Generated node IDs always satisfy this shape; graph IDs are the one
// identifier a caller may choose, so they are checked at the boundary.
func ValidateGraphID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidGraph, "graph id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidGraph, "graph id too long (max 128 characters)")
	}

	if !graphIDRegex.MatchString(id) {
		return New(ErrCodeInvalidGraph, "invalid graph id: %q (lowercase letters, digits, underscores)", id)
	}

	return nil
}

// ValidateDocumentName validates a workspace document name for safety.
// It rejects names that could be used for path traversal when the file
// store maps names to paths.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateDocumentName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "document name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "document name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "document name contains control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidInput, "document name cannot contain path separators")
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidInput, "document name cannot contain traversal sequences (..)")
	}

	return nil
}

// documentIDRegex matches the IDs the workspace generates (UUIDs) plus
// slug-shaped IDs. Notably it admits no path separators or dots.
var documentIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateDocumentID validates a client-supplied document identifier.
// Server-generated IDs are UUIDs and always pass; this check exists for
// the PUT path where the client names the document itself, since the file
// store maps IDs straight to file names.
func ValidateDocumentID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "document id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "document id too long (max 128 characters)")
	}

	if !documentIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid document id: %q (letters, digits, underscores, hyphens)", id)
	}

	return nil
}

// ValidateIndent validates a printer indentation unit: whitespace only,
// bounded length. Anything else would corrupt the printed DSL.
func ValidateIndent(indent string) error {
	if len(indent) > 16 {
		return New(ErrCodeInvalidInput, "indent too long (max 16 characters)")
	}
	for _, r := range indent {
		if r != ' ' && r != '\t' {
			return New(ErrCodeInvalidInput, "indent may only contain spaces and tabs")
		}
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
