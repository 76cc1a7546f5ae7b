package harel

import "fmt"

// Validate performs whole-tree semantic analysis on a parsed statechart. All
// checks run regardless of earlier findings, so the returned diagnostics list
// every problem in one pass. A chart with no hard error is wrapped in a
// ValidatedStatechart; warnings ride along without blocking acceptance. When
// hard errors exist the handle is withheld and the caller keeps the raw tree
// for best-effort inspection.
//
// Validation attaches annotations (qualified names, resolved target links)
// but never restructures the tree.
func Validate(chart *Statechart) (*ValidatedStatechart, Diagnostics) {
	v := &validator{chart: chart}
	v.attachQualifiedNames()
	v.checkDuplicateNames()
	v.checkInitialStates()
	v.resolveTargets()
	v.checkOrthogonalStates()
	v.checkKindConsistency()
	v.checkFinalStates()
	v.checkReachability()

	if v.diags.HasErrors() {
		return nil, v.diags
	}
	return newValidatedStatechart(chart, v.diags.Warnings()), v.diags
}

// validator accumulates diagnostics across the independent checks.
type validator struct {
	chart *Statechart
	diags Diagnostics
}

func (v *validator) report(kind DiagnosticKind, severity Severity, path string, span Span, format string, args ...any) {
	v.diags = append(v.diags, Diagnostic{
		Stage:    StageValidate,
		Kind:     kind,
		Severity: severity,
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
	})
}

// attachQualifiedNames caches the dotted root path on every state.
func (v *validator) attachQualifiedNames() {
	v.chart.EachState(func(s *State) {
		s.qualifiedName = s.QualifiedName()
	})
}

// checkDuplicateNames verifies that no two sibling states within one region
// share a name. One diagnostic is emitted per duplicated name.
func (v *validator) checkDuplicateNames() {
	v.chart.EachRegion(func(region *Region) {
		seen := make(map[string]bool, len(region.States))
		reported := make(map[string]bool)
		for _, s := range region.States {
			if seen[s.Name] && !reported[s.Name] {
				v.report(DuplicateStateName, SeverityError, s.QualifiedName(), s.Span,
					"duplicate state name %q in %s", s.Name, v.regionPath(region))
				reported[s.Name] = true
			}
			seen[s.Name] = true
		}
	})
}

// checkInitialStates verifies that no region carries more than one explicit
// initial marker. A region with no marker defaults to its first declared
// state, so absence is never an error.
func (v *validator) checkInitialStates() {
	v.chart.EachRegion(func(region *Region) {
		var marked []*State
		for _, s := range region.States {
			if s.Initial {
				marked = append(marked, s)
			}
		}
		if len(marked) > 1 {
			v.report(AmbiguousInitialState, SeverityError, v.regionPath(region), marked[1].Span,
				"%s has %d explicit initial states", v.regionPath(region), len(marked))
		}
	})
}

// resolveTargets links every non-internal transition to its destination
// state. Targets resolve scope-outward from the source state's region; a
// path that names no state anywhere is a semantic error, not a parse error.
func (v *validator) resolveTargets() {
	v.chart.EachState(func(s *State) {
		for _, tr := range s.Transitions {
			if tr.Internal() {
				continue
			}
			target := v.chart.resolveTarget(s, tr.Target)
			if target == nil {
				v.report(UnresolvedTarget, SeverityError, s.QualifiedName(), tr.Span,
					"transition from %s targets unknown state %q", s.QualifiedName(), tr.Target)
				continue
			}
			tr.resolved = target
		}
	})
}

// checkOrthogonalStates verifies that orthogonal states own at least two
// regions and that none of their regions is empty. The parser already rejects
// the single-region form in source text; this guards trees assembled through
// the builder as well.
func (v *validator) checkOrthogonalStates() {
	v.chart.EachState(func(s *State) {
		if s.Kind != KindOrthogonal {
			return
		}
		if len(s.Regions) < 2 {
			v.report(MalformedOrthogonalState, SeverityError, s.QualifiedName(), s.Span,
				"orthogonal state %s has %d regions, needs at least 2", s.QualifiedName(), len(s.Regions))
			return
		}
		for i, region := range s.Regions {
			if len(region.States) == 0 {
				v.report(MalformedOrthogonalState, SeverityError, s.QualifiedName(), region.Span,
					"orthogonal state %s has an empty region (index %d)", s.QualifiedName(), i)
			}
		}
	})
}

// checkKindConsistency re-verifies that each state's kind tag matches its
// region count. The parser derives kinds from structure, so a mismatch can
// only come from a hand-assembled tree.
func (v *validator) checkKindConsistency() {
	v.chart.EachState(func(s *State) {
		expected := KindSimple
		switch {
		case len(s.Regions) >= 2:
			expected = KindOrthogonal
		case len(s.Regions) == 1:
			expected = KindComposite
		}
		if s.Kind != expected {
			v.report(InconsistentStateKind, SeverityError, s.QualifiedName(), s.Span,
				"state %s is tagged %s but has %d regions", s.QualifiedName(), s.Kind, len(s.Regions))
		}
	})
}

// checkFinalStates verifies that final states own no outgoing transitions.
func (v *validator) checkFinalStates() {
	v.chart.EachState(func(s *State) {
		if s.Final && len(s.Transitions) > 0 {
			v.report(TransitionFromFinalState, SeverityError, s.QualifiedName(), s.Transitions[0].Span,
				"final state %s declares outgoing transitions", s.QualifiedName())
		}
	})
}

// checkReachability flags states that no transition targets and that are not
// any region's initial state. Entering a state enters all of its ancestors,
// so a transition into a nested state also reaches the states enclosing it.
// These are warnings, not errors: a chart author may reserve states for
// future wiring.
func (v *validator) checkReachability() {
	incoming := make(map[*State]bool)
	v.chart.EachState(func(s *State) {
		for _, tr := range s.Transitions {
			for target := tr.resolved; target != nil; target = target.ParentState() {
				incoming[target] = true
			}
		}
	})
	initial := make(map[*State]bool)
	v.chart.EachRegion(func(region *Region) {
		if first := region.Initial(); first != nil {
			initial[first] = true
		}
		for _, s := range region.States {
			if s.Initial {
				initial[s] = true
			}
		}
	})
	v.chart.EachState(func(s *State) {
		if !incoming[s] && !initial[s] {
			v.report(UnreachableState, SeverityWarning, s.QualifiedName(), s.Span,
				"state %s is unreachable: no incoming transition and not an initial state", s.QualifiedName())
		}
	})
}

// regionPath names a region for diagnostics: the owning state's qualified
// name (with an index for orthogonal regions), or the chart name for the
// top-level region.
func (v *validator) regionPath(region *Region) string {
	owner := region.Parent()
	if owner == nil {
		return v.chart.Name
	}
	if owner.Kind == KindOrthogonal {
		for i, r := range owner.Regions {
			if r == region {
				return fmt.Sprintf("%s.region[%d]", owner.QualifiedName(), i)
			}
		}
	}
	return owner.QualifiedName()
}
