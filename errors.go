package harel

import (
	"fmt"
	"strings"
)

// Stage identifies the phase that produced a diagnostic.
type Stage int

const (
	// StageLex covers lexical analysis
	StageLex Stage = iota
	// StageParse covers grammar parsing
	StageParse
	// StageValidate covers semantic validation
	StageValidate
)

// String returns the stage name
func (s Stage) String() string {
	switch s {
	case StageLex:
		return "lex"
	case StageParse:
		return "parse"
	case StageValidate:
		return "validate"
	default:
		return "unknown"
	}
}

// Severity classifies a diagnostic as blocking or advisory.
type Severity int

const (
	// SeverityError marks a hard error that withholds validation
	SeverityError Severity = iota
	// SeverityWarning marks an advisory diagnostic that does not block validity
	SeverityWarning
)

// String returns the severity name
func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// DiagnosticKind identifies the specific condition a diagnostic reports.
type DiagnosticKind int

const (
	// UnexpectedCharacter reports a character outside the grammar's classes
	UnexpectedCharacter DiagnosticKind = iota
	// UnexpectedToken reports a grammar violation at a specific token
	UnexpectedToken
	// DuplicateStateName reports two sibling states sharing a name
	DuplicateStateName
	// AmbiguousInitialState reports a region with more than one explicit initial marker
	AmbiguousInitialState
	// UnresolvedTarget reports a transition target path that names no state
	UnresolvedTarget
	// MalformedOrthogonalState reports an orthogonal state with fewer than two
	// regions or with an empty region
	MalformedOrthogonalState
	// UnreachableState reports a state with no incoming transition that is not
	// any region's initial state. Advisory only.
	UnreachableState
	// InconsistentStateKind reports a state whose kind tag disagrees with its
	// region count
	InconsistentStateKind
	// TransitionFromFinalState reports an outgoing transition on a final state
	TransitionFromFinalState
)

var diagnosticKindNames = map[DiagnosticKind]string{
	UnexpectedCharacter:      "unexpected character",
	UnexpectedToken:          "unexpected token",
	DuplicateStateName:       "duplicate state name",
	AmbiguousInitialState:    "ambiguous initial state",
	UnresolvedTarget:         "unresolved transition target",
	MalformedOrthogonalState: "malformed orthogonal state",
	UnreachableState:         "unreachable state",
	InconsistentStateKind:    "inconsistent state kind",
	TransitionFromFinalState: "transition from final state",
}

// String returns the kind name
func (k DiagnosticKind) String() string {
	if name, ok := diagnosticKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("diagnostic(%d)", int(k))
}

// Diagnostic is a single reported problem with its source location. Path
// carries the qualified name of the state or region the problem concerns,
// when one applies.
type Diagnostic struct {
	Stage    Stage
	Kind     DiagnosticKind
	Severity Severity
	Path     string
	Message  string
	Span     Span
}

// String renders the diagnostic as position: severity: message
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Span.Start, d.Severity, d.Message)
}

// Diagnostics is an ordered collection of diagnostics. It implements error so
// a non-empty collection can be returned directly from validation.
type Diagnostics []Diagnostic

// Error renders all diagnostics, one per line.
func (ds Diagnostics) Error() string {
	var b strings.Builder
	for i, d := range ds {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(d.String())
	}
	return b.String()
}

// Errors returns only the hard-error diagnostics.
func (ds Diagnostics) Errors() Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// Warnings returns only the advisory diagnostics.
func (ds Diagnostics) Warnings() Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Severity == SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}

// HasErrors reports whether any hard error is present.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ByKind returns the diagnostics of the given kind.
func (ds Diagnostics) ByKind(kind DiagnosticKind) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// LexError is a fatal lexical error. Lexing aborts at the first invalid
// character because later token boundaries become unreliable.
type LexError struct {
	Position Position
	Char     byte
}

// NewLexError creates a new lexical error at the given position.
func NewLexError(pos Position, ch byte) *LexError {
	return &LexError{Position: pos, Char: ch}
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: unexpected character %q", e.Position, string(e.Char))
}

// Diagnostic converts the error into diagnostic form.
func (e *LexError) Diagnostic() Diagnostic {
	return Diagnostic{
		Stage:    StageLex,
		Kind:     UnexpectedCharacter,
		Severity: SeverityError,
		Message:  fmt.Sprintf("unexpected character %q", string(e.Char)),
		Span:     Span{Start: e.Position, End: e.Position},
	}
}

// ParseError is a fatal grammar error. Parsing aborts at the first violation;
// recursive descent cannot reliably resume on a damaged token stream.
type ParseError struct {
	Position      Position
	ExpectedOneOf []TokenType
	Found         Token
}

// NewParseError creates a new parse error for the found token.
func NewParseError(found Token, expected ...TokenType) *ParseError {
	return &ParseError{
		Position:      found.Pos(),
		ExpectedOneOf: expected,
		Found:         found,
	}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.message())
}

func (e *ParseError) message() string {
	if len(e.ExpectedOneOf) == 0 {
		return fmt.Sprintf("unexpected %s", e.Found)
	}
	names := make([]string, len(e.ExpectedOneOf))
	for i, t := range e.ExpectedOneOf {
		names[i] = t.String()
	}
	return fmt.Sprintf("expected %s, found %s", strings.Join(names, " or "), e.Found)
}

// Diagnostic converts the error into diagnostic form.
func (e *ParseError) Diagnostic() Diagnostic {
	return Diagnostic{
		Stage:    StageParse,
		Kind:     UnexpectedToken,
		Severity: SeverityError,
		Message:  e.message(),
		Span:     e.Found.Span,
	}
}

// IsLexError checks if an error is a LexError
func IsLexError(err error) bool {
	_, ok := err.(*LexError)
	return ok
}

// IsParseError checks if an error is a ParseError
func IsParseError(err error) bool {
	_, ok := err.(*ParseError)
	return ok
}
