package harel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// chartDiffOpts compares syntax trees structurally, skipping unexported
// link fields and source spans.
var chartDiffOpts = cmp.Options{
	cmpopts.IgnoreUnexported(Statechart{}, Region{}, State{}, Transition{}),
	cmpopts.IgnoreTypes(Span{}),
}

func TestParseEmptyChart(t *testing.T) {
	chart := MustParse(t, "statechart Empty {}")
	if chart.Name != "Empty" {
		t.Errorf("chart name = %q, want %q", chart.Name, "Empty")
	}
	if len(chart.Root.States) != 0 {
		t.Errorf("root region has %d states, want 0", len(chart.Root.States))
	}
}

func TestParseSimpleChart(t *testing.T) {
	chart := MustParse(t, simpleChartSource)
	if len(chart.Root.States) != 2 {
		t.Fatalf("root has %d states, want 2", len(chart.Root.States))
	}
	off := chart.Root.States[0]
	if off.Name != "Off" || !off.Initial || off.Kind != KindSimple {
		t.Errorf("first state = %q initial=%v kind=%v", off.Name, off.Initial, off.Kind)
	}
	if len(off.Transitions) != 1 {
		t.Fatalf("Off has %d transitions, want 1", len(off.Transitions))
	}
	tr := off.Transitions[0]
	if tr.Event == nil || tr.Event.Name != "toggle" {
		t.Errorf("transition event = %v, want toggle", tr.Event)
	}
	if tr.Target != "On" {
		t.Errorf("transition target = %q, want On", tr.Target)
	}
}

func TestParseModifiers(t *testing.T) {
	chart := MustParse(t, `statechart M {
    initial state Start {}
    final state Done {}
    initial final state Both {}
}`)
	start := chart.Root.States[0]
	if !start.Initial || start.Final {
		t.Errorf("Start: initial=%v final=%v", start.Initial, start.Final)
	}
	done := chart.Root.States[1]
	if done.Initial || !done.Final {
		t.Errorf("Done: initial=%v final=%v", done.Initial, done.Final)
	}
	both := chart.Root.States[2]
	if !both.Initial || !both.Final {
		t.Errorf("Both: initial=%v final=%v", both.Initial, both.Final)
	}
}

func TestParseEntryExitActions(t *testing.T) {
	chart := MustParse(t, hierarchicalChartSource)
	running := chart.FindState("Running")
	if running == nil {
		t.Fatal("Running not found")
	}
	if running.Entry == nil || running.Entry.Text != "startClock" {
		t.Errorf("entry action = %v", running.Entry)
	}
	if running.Exit == nil || running.Exit.Text != "stopClock" {
		t.Errorf("exit action = %v", running.Exit)
	}
}

func TestParseCompositeState(t *testing.T) {
	chart := MustParse(t, hierarchicalChartSource)
	AssertStateKind(t, chart, "Running", KindComposite)
	running := chart.FindState("Running")
	if len(running.Regions) != 1 {
		t.Fatalf("Running has %d regions, want 1", len(running.Regions))
	}
	if running.Regions[0].Explicit {
		t.Error("implicit region marked explicit")
	}
	if got := len(running.Regions[0].States); got != 2 {
		t.Errorf("implicit region has %d states, want 2", got)
	}
	playing := chart.FindState("Running.Playing")
	if playing == nil {
		t.Fatal("Running.Playing not found")
	}
	if playing.ParentState() != running {
		t.Error("Playing's parent state is not Running")
	}
}

func TestParseOrthogonalState(t *testing.T) {
	chart := MustParse(t, orthogonalChartSource)
	AssertStateKind(t, chart, "Active", KindOrthogonal)
	active := chart.FindState("Active")
	if len(active.Regions) != 2 {
		t.Fatalf("Active has %d regions, want 2", len(active.Regions))
	}
	for i, region := range active.Regions {
		if !region.Explicit {
			t.Errorf("region %d not marked explicit", i)
		}
		if len(region.States) != 2 {
			t.Errorf("region %d has %d states, want 2", i, len(region.States))
		}
	}
}

func TestParseInternalTransition(t *testing.T) {
	chart := MustParse(t, `statechart M {
    state A {
        on refresh / reloadView
    }
}`)
	tr := chart.Root.States[0].Transitions[0]
	if !tr.Internal() {
		t.Error("transition with no target should be internal")
	}
	if tr.Action == nil || tr.Action.Text != "reloadView" {
		t.Errorf("action = %v", tr.Action)
	}
}

func TestParseCompletionTransition(t *testing.T) {
	chart := MustParse(t, `statechart M {
    state A {
        [done] -> B
        -> C
    }
    state B {}
    state C {}
}`)
	trs := chart.Root.States[0].Transitions
	if len(trs) != 2 {
		t.Fatalf("got %d transitions, want 2", len(trs))
	}
	for i, tr := range trs {
		if !tr.Completion() {
			t.Errorf("transition %d should be a completion transition", i)
		}
	}
	if trs[0].Guard == nil || trs[0].Guard.Condition != "done" {
		t.Errorf("guard = %v", trs[0].Guard)
	}
	if trs[1].Target != "C" {
		t.Errorf("bare arrow target = %q", trs[1].Target)
	}
}

func TestParseGuardTokens(t *testing.T) {
	chart := MustParse(t, `statechart M {
    state A {
        on tick [retries < maxRetries && !aborted] -> B
    }
    state B {}
}`)
	guard := chart.Root.States[0].Transitions[0].Guard
	if guard == nil {
		t.Fatal("guard missing")
	}
	want := []string{"retries", "<", "maxRetries", "&&", "!", "aborted"}
	if diff := cmp.Diff(want, guard.Tokens); diff != "" {
		t.Errorf("guard tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestParseQualifiedTarget(t *testing.T) {
	chart := MustParse(t, `statechart M {
    state A {
        on jump -> B.Inner.Deep
    }
    state B {
        state Inner {
            state Deep {}
        }
    }
}`)
	tr := chart.Root.States[0].Transitions[0]
	if tr.Target != "B.Inner.Deep" {
		t.Errorf("target = %q, want B.Inner.Deep", tr.Target)
	}
}

func TestParseDeterministic(t *testing.T) {
	first := MustParse(t, hierarchicalChartSource)
	second := MustParse(t, hierarchicalChartSource)
	if diff := cmp.Diff(first, second, chartDiffOpts); diff != "" {
		t.Errorf("repeated parses differ (-first +second):\n%s", diff)
	}
}

func TestParseMissingStatechartKeyword(t *testing.T) {
	AssertParseError(t, "state A {}", 1, 1)
}

func TestParseUnterminatedBody(t *testing.T) {
	chart, err := Parse("statechart M {\n  state A {\n    on go -> B\n")
	if chart != nil {
		t.Fatal("expected nil chart")
	}
	if !IsParseError(err) {
		t.Fatalf("expected ParseError, got %T: %v", err, err)
	}
	pe := err.(*ParseError)
	if pe.Found.Type != EOF {
		t.Errorf("found token = %v, want EOF", pe.Found.Type)
	}
}

func TestParseDuplicateEntryAction(t *testing.T) {
	AssertParseError(t, `statechart M {
    state A {
        entry / a
        entry / b
    }
}`, 4, 9)
}

func TestParseMissingTargetPath(t *testing.T) {
	AssertParseError(t, `statechart M {
    state A {
        on go ->
    }
}`, 4, 5)
}

func TestParseGuardOnlyTransitionRejected(t *testing.T) {
	// A guard with neither a trigger nor a target gates nothing.
	AssertParseError(t, `statechart M {
    initial state A {
        [ready]
    }
}`, 4, 5)
}

func TestParseGuardActionTransitionRejected(t *testing.T) {
	AssertParseError(t, `statechart M {
    initial state A {
        [ready] / act
    }
}`, 3, 17)
}

func TestParseSingleRegionBlock(t *testing.T) {
	AssertParseError(t, `statechart M {
    state A {
        region {
            state B {}
        }
    }
}`, 6, 5)
}

func TestParseMixedRegionAndDirectStates(t *testing.T) {
	AssertParseError(t, `statechart M {
    state A {
        state B {}
        region {
            state C {}
        }
    }
}`, 4, 9)
}

func TestParseTrailingInput(t *testing.T) {
	AssertParseError(t, "statechart M { state A {} } extra", 1, 29)
}

func TestParseLexErrorSurfaces(t *testing.T) {
	AssertLexError(t, "statechart M {\n  state A$ {}\n}", 2, 10)
}
