package harel

import (
	"strings"
	"testing"
)

func TestLexErrorMessage(t *testing.T) {
	err := NewLexError(Position{Line: 3, Column: 7, Offset: 42}, '@')
	if !strings.Contains(err.Error(), "3:7") {
		t.Errorf("message missing position: %q", err.Error())
	}
	if !strings.Contains(err.Error(), "@") {
		t.Errorf("message missing character: %q", err.Error())
	}
	d := err.Diagnostic()
	if d.Stage != StageLex || d.Kind != UnexpectedCharacter || d.Severity != SeverityError {
		t.Errorf("diagnostic = %+v", d)
	}
}

func TestParseErrorMessage(t *testing.T) {
	found := Token{Type: RBRACE, Text: "}", Span: Span{Start: Position{Line: 2, Column: 5}}}
	err := NewParseError(found, IDENT)
	msg := err.Error()
	if !strings.Contains(msg, "2:5") {
		t.Errorf("message missing position: %q", msg)
	}
	if !strings.Contains(msg, "expected identifier") {
		t.Errorf("message missing expectation: %q", msg)
	}
}

func TestParseErrorWithoutExpectation(t *testing.T) {
	found := Token{Type: ENTRY, Text: "entry", Span: Span{Start: Position{Line: 4, Column: 9}}}
	err := NewParseError(found)
	if !strings.Contains(err.Error(), "unexpected") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestErrorPredicates(t *testing.T) {
	lexErr := NewLexError(Position{Line: 1, Column: 1}, '#')
	parseErr := NewParseError(Token{Type: EOF})
	if !IsLexError(lexErr) || IsLexError(parseErr) {
		t.Error("IsLexError misclassifies")
	}
	if !IsParseError(parseErr) || IsParseError(lexErr) {
		t.Error("IsParseError misclassifies")
	}
}

func TestDiagnosticsFiltering(t *testing.T) {
	diags := Diagnostics{
		{Kind: UnresolvedTarget, Severity: SeverityError, Message: "a"},
		{Kind: UnreachableState, Severity: SeverityWarning, Message: "b"},
		{Kind: UnresolvedTarget, Severity: SeverityError, Message: "c"},
	}
	if got := len(diags.Errors()); got != 2 {
		t.Errorf("Errors() = %d, want 2", got)
	}
	if got := len(diags.Warnings()); got != 1 {
		t.Errorf("Warnings() = %d, want 1", got)
	}
	if !diags.HasErrors() {
		t.Error("HasErrors() = false")
	}
	if got := len(diags.ByKind(UnresolvedTarget)); got != 2 {
		t.Errorf("ByKind(UnresolvedTarget) = %d, want 2", got)
	}
	if !strings.Contains(diags.Error(), "\n") {
		t.Error("multi-diagnostic Error() should be multi-line")
	}
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{
		Severity: SeverityWarning,
		Message:  "state X is unreachable",
		Span:     Span{Start: Position{Line: 9, Column: 3}},
	}
	s := d.String()
	if !strings.Contains(s, "9:3") || !strings.Contains(s, "warning") {
		t.Errorf("String() = %q", s)
	}
}
