package harel

// ChartBuilder assembles a statechart programmatically, producing the same
// tree shape the parser builds from source text. Builders are fluent: state
// and transition configuration chain, and End() navigates back up one level.
// The result of Build is unvalidated; run it through Validate to get the
// same guarantees parsed charts get.
type ChartBuilder struct {
	name string
	root *regionBuilder
}

// NewChart starts a builder for a statechart with the given name.
func NewChart(name string) *ChartBuilder {
	b := &ChartBuilder{name: name}
	b.root = &regionBuilder{chart: b}
	return b
}

// State adds a top-level state and returns its builder.
func (b *ChartBuilder) State(name string) *StateBuilder {
	return b.root.state(name)
}

// Build assembles the final tree. State kinds are derived from structure,
// parent links are wired, and the tree is ready for Validate.
func (b *ChartBuilder) Build() *Statechart {
	chart := &Statechart{Name: b.name}
	chart.Root = b.root.build(nil)
	return chart
}

// regionBuilder collects the states of one region. The top-level region and
// each orthogonal region get their own instance; composite states use an
// implicit one.
type regionBuilder struct {
	chart    *ChartBuilder
	owner    *StateBuilder
	explicit bool
	states   []*StateBuilder
}

func (rb *regionBuilder) state(name string) *StateBuilder {
	sb := &StateBuilder{chart: rb.chart, region: rb, name: name}
	rb.states = append(rb.states, sb)
	return sb
}

func (rb *regionBuilder) build(parent *State) *Region {
	region := &Region{Explicit: rb.explicit, parent: parent}
	for _, sb := range rb.states {
		region.States = append(region.States, sb.build(region))
	}
	return region
}

// StateBuilder configures a single state: its modifiers, actions, outgoing
// transitions, children, and orthogonal regions.
type StateBuilder struct {
	chart       *ChartBuilder
	region      *regionBuilder
	name        string
	initial     bool
	final       bool
	entry       string
	exit        string
	transitions []*TransitionBuilder
	children    *regionBuilder
	regions     []*regionBuilder
}

// Initial marks this state as its region's explicit initial state.
func (sb *StateBuilder) Initial() *StateBuilder {
	sb.initial = true
	return sb
}

// Final marks this state as final.
func (sb *StateBuilder) Final() *StateBuilder {
	sb.final = true
	return sb
}

// Entry sets the state's entry action.
func (sb *StateBuilder) Entry(action string) *StateBuilder {
	sb.entry = action
	return sb
}

// Exit sets the state's exit action.
func (sb *StateBuilder) Exit(action string) *StateBuilder {
	sb.exit = action
	return sb
}

// On starts a transition triggered by the named event.
func (sb *StateBuilder) On(event string) *TransitionBuilder {
	tb := &TransitionBuilder{state: sb, event: event}
	sb.transitions = append(sb.transitions, tb)
	return tb
}

// OnCompletion starts an eventless transition that fires when the state
// completes.
func (sb *StateBuilder) OnCompletion() *TransitionBuilder {
	tb := &TransitionBuilder{state: sb}
	sb.transitions = append(sb.transitions, tb)
	return tb
}

// Child adds a nested state, making this state composite. A state is either
// composite or orthogonal; mixing Child with Region panics, mirroring the
// grammar's rejection of directly nested states alongside region blocks.
func (sb *StateBuilder) Child(name string) *StateBuilder {
	if len(sb.regions) > 0 {
		panic("harel: cannot mix Child and Region on state " + sb.name)
	}
	if sb.children == nil {
		sb.children = &regionBuilder{chart: sb.chart, owner: sb}
	}
	return sb.children.state(name)
}

// Region opens a new explicit region, making this state orthogonal once a
// second region is added. Mixing Region with Child panics.
func (sb *StateBuilder) Region() *RegionBuilder {
	if sb.children != nil {
		panic("harel: cannot mix Child and Region on state " + sb.name)
	}
	rb := &regionBuilder{chart: sb.chart, owner: sb, explicit: true}
	sb.regions = append(sb.regions, rb)
	return &RegionBuilder{inner: rb, owner: sb}
}

// End returns the builder of the enclosing state, or nil at the top level.
func (sb *StateBuilder) End() *StateBuilder {
	if sb.region == nil {
		return nil
	}
	return sb.region.owner
}

// Chart returns the chart builder, for finishing a deep chain with Build.
func (sb *StateBuilder) Chart() *ChartBuilder {
	return sb.chart
}

func (sb *StateBuilder) build(parent *Region) *State {
	s := &State{
		Name:    sb.name,
		Initial: sb.initial,
		Final:   sb.final,
		parent:  parent,
	}
	if sb.entry != "" {
		s.Entry = &Action{Text: sb.entry}
	}
	if sb.exit != "" {
		s.Exit = &Action{Text: sb.exit}
	}
	for _, tb := range sb.transitions {
		s.Transitions = append(s.Transitions, tb.build(s))
	}
	switch {
	case len(sb.regions) > 0:
		for _, rb := range sb.regions {
			s.Regions = append(s.Regions, rb.build(s))
		}
		s.Kind = KindOrthogonal
	case sb.children != nil:
		s.Regions = []*Region{sb.children.build(s)}
		s.Kind = KindComposite
	default:
		s.Kind = KindSimple
	}
	return s
}

// RegionBuilder configures one explicit region of an orthogonal state.
type RegionBuilder struct {
	inner *regionBuilder
	owner *StateBuilder
}

// State adds a state to this region.
func (rb *RegionBuilder) State(name string) *StateBuilder {
	return rb.inner.state(name)
}

// End returns to the owning state's builder.
func (rb *RegionBuilder) End() *StateBuilder {
	return rb.owner
}

// TransitionBuilder configures one outgoing transition.
type TransitionBuilder struct {
	state  *StateBuilder
	event  string
	guard  string
	target string
	action string
}

// When sets the transition's guard condition text.
func (tb *TransitionBuilder) When(condition string) *TransitionBuilder {
	tb.guard = condition
	return tb
}

// Target sets the destination as a qualified path. Omitting it leaves the
// transition internal.
func (tb *TransitionBuilder) Target(path string) *TransitionBuilder {
	tb.target = path
	return tb
}

// Do sets the transition's action text.
func (tb *TransitionBuilder) Do(action string) *TransitionBuilder {
	tb.action = action
	return tb
}

// On starts another transition from the same state.
func (tb *TransitionBuilder) On(event string) *TransitionBuilder {
	return tb.state.On(event)
}

// End returns to the source state's builder.
func (tb *TransitionBuilder) End() *StateBuilder {
	return tb.state
}

func (tb *TransitionBuilder) build(source *State) *Transition {
	tr := &Transition{Target: tb.target, source: source}
	if tb.event != "" {
		tr.Event = &Event{Name: tb.event}
	}
	if tb.guard != "" {
		tr.Guard = &Guard{Condition: tb.guard, Tokens: guardTokens(tb.guard)}
	}
	if tb.action != "" {
		tr.Action = &Action{Text: tb.action}
	}
	return tr
}
