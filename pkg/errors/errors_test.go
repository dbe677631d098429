package errors

import (
	stderrors "errors"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeInvalidDSL, "bad input: %s", "x")
	want := "INVALID_DSL: bad input: x"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeStorage, cause, "save document %s", "abc")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause not found via errors.Is")
	}
	if got := err.Error(); got != "STORAGE_ERROR: save document abc: disk full" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsAndGetCode(t *testing.T) {
	err := New(ErrCodeDocumentNotFound, "no such document")

	if !Is(err, ErrCodeDocumentNotFound) {
		t.Error("Is should match the code")
	}
	if Is(err, ErrCodeNetwork) {
		t.Error("Is matched the wrong code")
	}
	if Is(stderrors.New("plain"), ErrCodeNetwork) {
		t.Error("Is matched a non-structured error")
	}
	if GetCode(err) != ErrCodeDocumentNotFound {
		t.Errorf("GetCode = %q", GetCode(err))
	}
	if GetCode(stderrors.New("plain")) != "" {
		t.Error("GetCode on plain error should be empty")
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "bad flag")); got != "bad flag" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("raw")); got != "raw" {
		t.Errorf("UserMessage = %q", got)
	}
}

func TestValidateGraphID(t *testing.T) {
	valid := []string{"architecture", "my_graph", "g2", "a"}
	for _, id := range valid {
		if err := ValidateGraphID(id); err != nil {
			t.Errorf("ValidateGraphID(%q) = %v, want nil", id, err)
		}
	}

	invalid := []string{"", "Has Upper", "spaced out", "_leading", "dash-ed", "dot.ted"}
	for _, id := range invalid {
		if err := ValidateGraphID(id); err == nil {
			t.Errorf("ValidateGraphID(%q) = nil, want error", id)
		}
	}
}

func TestValidateDocumentName(t *testing.T) {
	valid := []string{"storefront", "my design v2", "arch.dsl"}
	for _, name := range valid {
		if err := ValidateDocumentName(name); err != nil {
			t.Errorf("ValidateDocumentName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "a/b", `a\b`, "..", "up..down", "ctrl\x00char"}
	for _, name := range invalid {
		if err := ValidateDocumentName(name); err == nil {
			t.Errorf("ValidateDocumentName(%q) = nil, want error", name)
		}
	}
}

func TestValidateDocumentID(t *testing.T) {
	valid := []string{"b2c9c8e4-91f3-4a6e-8f0e-2d3a1b4c5d6e", "my_doc", "Doc-2"}
	for _, id := range valid {
		if err := ValidateDocumentID(id); err != nil {
			t.Errorf("ValidateDocumentID(%q) = %v, want nil", id, err)
		}
	}

	invalid := []string{"", "../../escaped", "a/b", `a\b`, "..", "dot.ted", "-leading", "has space"}
	for _, id := range invalid {
		if err := ValidateDocumentID(id); err == nil {
			t.Errorf("ValidateDocumentID(%q) = nil, want error", id)
		}
	}
}

func TestValidateIndent(t *testing.T) {
	for _, indent := range []string{"", "  ", "\t", "    "} {
		if err := ValidateIndent(indent); err != nil {
			t.Errorf("ValidateIndent(%q) = %v, want nil", indent, err)
		}
	}
	for _, indent := range []string{"ab", " x", "--"} {
		if err := ValidateIndent(indent); err == nil {
			t.Errorf("ValidateIndent(%q) = nil, want error", indent)
		}
	}
}
