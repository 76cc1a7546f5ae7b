package harel

import "testing"

func TestFindStateTopLevel(t *testing.T) {
	chart := MustParse(t, simpleChartSource)
	if s := chart.FindState("Off"); s == nil || s.Name != "Off" {
		t.Errorf("FindState(Off) = %v", s)
	}
	if s := chart.FindState("Missing"); s != nil {
		t.Errorf("FindState(Missing) = %v, want nil", s)
	}
}

func TestFindStateQualifiedPath(t *testing.T) {
	chart := MustParse(t, hierarchicalChartSource)
	paused := chart.FindState("Running.Paused")
	if paused == nil {
		t.Fatal("Running.Paused not found")
	}
	if paused.Name != "Paused" {
		t.Errorf("found %q", paused.Name)
	}
	// A nested name is not visible from the root without its full path.
	if s := chart.FindState("Paused"); s != nil {
		t.Errorf("FindState(Paused) = %v, want nil", s)
	}
}

func TestFindStateAcrossOrthogonalRegions(t *testing.T) {
	chart := MustParse(t, orthogonalChartSource)
	for _, path := range []string{"Active.CapsOn", "Active.NumOff"} {
		if s := chart.FindState(path); s == nil {
			t.Errorf("FindState(%q) = nil", path)
		}
	}
}

func TestChildren(t *testing.T) {
	chart := MustParse(t, orthogonalChartSource)
	active := chart.FindState("Active")
	children := Children(active)
	want := []string{"CapsOff", "CapsOn", "NumOff", "NumOn"}
	if len(children) != len(want) {
		t.Fatalf("got %d children, want %d", len(children), len(want))
	}
	for i, name := range want {
		if children[i].Name != name {
			t.Errorf("child %d = %q, want %q", i, children[i].Name, name)
		}
	}
	if got := Children(chart.FindState("Active.CapsOn")); len(got) != 0 {
		t.Errorf("simple state has %d children, want 0", len(got))
	}
}

func TestOutgoingTransitions(t *testing.T) {
	chart := MustParse(t, hierarchicalChartSource)
	running := chart.FindState("Running")
	trs := OutgoingTransitions(running)
	if len(trs) != 1 {
		t.Fatalf("got %d transitions, want 1", len(trs))
	}
	if trs[0].Event.Name != "stop" {
		t.Errorf("event = %q, want stop", trs[0].Event.Name)
	}
}

func TestAncestorChain(t *testing.T) {
	chart := MustParse(t, hierarchicalChartSource)
	playing := chart.FindState("Running.Playing")
	chain := AncestorChain(playing)
	if len(chain) != 2 {
		t.Fatalf("chain length %d, want 2", len(chain))
	}
	if chain[0].Name != "Running" || chain[1].Name != "Playing" {
		t.Errorf("chain = [%s, %s], want [Running, Playing]", chain[0].Name, chain[1].Name)
	}
}

func TestEachStateVisitsParentsFirst(t *testing.T) {
	chart := MustParse(t, hierarchicalChartSource)
	var order []string
	chart.EachState(func(s *State) {
		order = append(order, s.Name)
	})
	want := []string{"Stopped", "Running", "Playing", "Paused"}
	if len(order) != len(want) {
		t.Fatalf("visited %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("visit %d = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestQualifiedNameBeforeValidation(t *testing.T) {
	chart := MustParse(t, hierarchicalChartSource)
	playing := chart.FindState("Running.Playing")
	if got := playing.QualifiedName(); got != "Running.Playing" {
		t.Errorf("QualifiedName() = %q, want Running.Playing", got)
	}
}

func TestRegionInitial(t *testing.T) {
	chart := MustParse(t, hierarchicalChartSource)
	if s := chart.Root.Initial(); s == nil || s.Name != "Stopped" {
		t.Errorf("root initial = %v, want Stopped", s)
	}

	unmarked := MustParse(t, `statechart M {
    state First {}
    state Second {}
}`)
	if s := unmarked.Root.Initial(); s == nil || s.Name != "First" {
		t.Errorf("default initial = %v, want First", s)
	}
}
