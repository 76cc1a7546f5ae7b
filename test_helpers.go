package harel

import "testing"

// Shared source fixtures used across the test files.

const simpleChartSource = `statechart Switch {
    initial state Off {
        on toggle -> On
    }
    state On {
        on toggle -> Off
    }
}`

const hierarchicalChartSource = `statechart Player {
    initial state Stopped {
        on play -> Running
    }
    state Running {
        entry / startClock
        exit / stopClock
        on stop -> Stopped
        initial state Playing {
            on pause -> Paused
        }
        state Paused {
            on pause -> Playing
        }
    }
}`

const orthogonalChartSource = `statechart Keyboard {
    initial state Active {
        region {
            initial state CapsOff {
                on capsLock -> CapsOn
            }
            state CapsOn {
                on capsLock -> CapsOff
            }
        }
        region {
            initial state NumOff {
                on numLock -> NumOn
            }
            state NumOn {
                on numLock -> NumOff
            }
        }
    }
}`

// MustParse parses the source and fails the test on any error.
func MustParse(t *testing.T, source string) *Statechart {
	t.Helper()
	chart, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return chart
}

// MustValidate parses and validates the source, failing the test if the
// chart is rejected.
func MustValidate(t *testing.T, source string) *ValidatedStatechart {
	t.Helper()
	validated, diags := ParseAndValidate(source)
	if validated == nil {
		t.Fatalf("chart rejected: %v", diags)
	}
	return validated
}

// AssertParseError asserts that parsing the source fails with a ParseError
// at the given position.
func AssertParseError(t *testing.T, source string, line, col int) {
	t.Helper()
	chart, err := Parse(source)
	if chart != nil {
		t.Fatalf("expected nil chart on parse error, got %v", chart)
	}
	if !IsParseError(err) {
		t.Fatalf("expected ParseError, got %T: %v", err, err)
	}
	pe := err.(*ParseError)
	if pe.Position.Line != line || pe.Position.Column != col {
		t.Errorf("error at %d:%d, expected %d:%d", pe.Position.Line, pe.Position.Column, line, col)
	}
}

// AssertLexError asserts that parsing the source fails in the lexer at the
// given position.
func AssertLexError(t *testing.T, source string, line, col int) {
	t.Helper()
	chart, err := Parse(source)
	if chart != nil {
		t.Fatalf("expected nil chart on lex error, got %v", chart)
	}
	if !IsLexError(err) {
		t.Fatalf("expected LexError, got %T: %v", err, err)
	}
	le := err.(*LexError)
	if le.Position.Line != line || le.Position.Column != col {
		t.Errorf("error at %d:%d, expected %d:%d", le.Position.Line, le.Position.Column, line, col)
	}
}

// AssertDiagnostic asserts that the diagnostics contain exactly count
// entries of the given kind.
func AssertDiagnostic(t *testing.T, diags Diagnostics, kind DiagnosticKind, count int) {
	t.Helper()
	got := len(diags.ByKind(kind))
	if got != count {
		t.Errorf("expected %d %v diagnostics, got %d in %v", count, kind, got, diags)
	}
}

// AssertStateKind asserts the kind of the state at the given path.
func AssertStateKind(t *testing.T, chart *Statechart, path string, kind StateKind) {
	t.Helper()
	s := chart.FindState(path)
	if s == nil {
		t.Fatalf("state %q not found", path)
	}
	if s.Kind != kind {
		t.Errorf("state %q has kind %v, expected %v", path, s.Kind, kind)
	}
}
