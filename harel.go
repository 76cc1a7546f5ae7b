// Package harel provides a front end for a textual statechart language:
// a lexer, a recursive-descent parser producing an immutable syntax tree,
// a semantic validator, and traversal helpers over the validated result.
//
// The pipeline has three stages. Lexing and parsing are fatal-on-first-error:
// a source text either yields a complete tree or a single LexError/ParseError
// and no tree at all. Validation is exhaustive: every semantic problem in the
// chart is collected into one Diagnostics list, and warnings never block
// acceptance.
//
// Typical use:
//
//	validated, diags := harel.ParseAndValidate(source)
//	if validated == nil {
//	    for _, d := range diags {
//	        log.Println(d)
//	    }
//	    return
//	}
//	idle := validated.FindState("Player.Idle")
package harel

import "github.com/google/uuid"

// ValidatedStatechart wraps a statechart that passed semantic validation.
// It is the only handle the traversal-heavy call sites should hold: its
// existence proves every transition target resolves, every region is well
// formed, and every qualified name is unique among siblings.
type ValidatedStatechart struct {
	id       string
	chart    *Statechart
	warnings Diagnostics
}

func newValidatedStatechart(chart *Statechart, warnings Diagnostics) *ValidatedStatechart {
	return &ValidatedStatechart{
		id:       uuid.New().String(),
		chart:    chart,
		warnings: warnings,
	}
}

// ID returns a unique identifier for this validated instance.
func (v *ValidatedStatechart) ID() string {
	return v.id
}

// Name returns the statechart's declared name.
func (v *ValidatedStatechart) Name() string {
	return v.chart.Name
}

// Chart returns the underlying syntax tree. Callers must treat it as
// read-only; mutating it invalidates the guarantees this handle stands for.
func (v *ValidatedStatechart) Chart() *Statechart {
	return v.chart
}

// Root returns the top-level region.
func (v *ValidatedStatechart) Root() *Region {
	return v.chart.Root
}

// Warnings returns the non-blocking diagnostics recorded during validation.
func (v *ValidatedStatechart) Warnings() Diagnostics {
	return v.warnings
}

// FindState resolves a dotted qualified path from the root region.
func (v *ValidatedStatechart) FindState(path string) *State {
	return v.chart.FindState(path)
}

// EachState visits every state in the chart, parents before children.
func (v *ValidatedStatechart) EachState(visit func(*State)) {
	v.chart.EachState(visit)
}

// ParseAndValidate runs the full pipeline on a source text. On success the
// returned diagnostics hold only warnings. On failure the handle is nil and
// the diagnostics carry either the single fatal lex/parse error or the full
// set of semantic errors.
func ParseAndValidate(source string) (*ValidatedStatechart, Diagnostics) {
	chart, err := Parse(source)
	if err != nil {
		switch e := err.(type) {
		case *LexError:
			return nil, Diagnostics{e.Diagnostic()}
		case *ParseError:
			return nil, Diagnostics{e.Diagnostic()}
		default:
			return nil, Diagnostics{{
				Stage:    StageParse,
				Kind:     UnexpectedToken,
				Severity: SeverityError,
				Message:  err.Error(),
			}}
		}
	}
	return Validate(chart)
}
