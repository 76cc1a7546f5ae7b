package harel

import "strings"

// StateKind classifies a state by its region structure. The kind is fixed by
// structure: zero regions for simple states, one for composite states, two or
// more for orthogonal states.
type StateKind int

const (
	// KindSimple is a state with no child region
	KindSimple StateKind = iota
	// KindComposite is a state with exactly one child region
	KindComposite
	// KindOrthogonal is a state with two or more independently active regions
	KindOrthogonal
)

// String returns the kind name
func (k StateKind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindComposite:
		return "composite"
	case KindOrthogonal:
		return "orthogonal"
	default:
		return "unknown"
	}
}

// Statechart is the root of a parsed chart: a name and a single top-level
// region. The tree is constructed once by the parser and never restructured;
// the validator only attaches annotations.
type Statechart struct {
	Name string
	Root *Region
	Span Span
}

// Region is an ordered sequence of sibling states. The zero or one state
// carrying an explicit initial marker is the region's initial state; if none
// is marked, the first declared state is the implicit initial state.
type Region struct {
	States []*State
	Span   Span

	// Explicit is true when the region was written with the 'region' keyword
	// rather than implied by directly nested states.
	Explicit bool

	parent *State // nil for the top-level region
}

// Parent returns the state owning this region, or nil for the top-level region.
func (r *Region) Parent() *State {
	return r.parent
}

// Initial returns the region's effective initial state: the explicitly marked
// state if there is exactly one, otherwise the first declared state. Returns
// nil for an empty region.
func (r *Region) Initial() *State {
	var marked *State
	for _, s := range r.States {
		if s.Initial {
			if marked != nil {
				return nil // ambiguous; reported by the validator
			}
			marked = s
		}
	}
	if marked != nil {
		return marked
	}
	if len(r.States) == 0 {
		return nil
	}
	return r.States[0]
}

// Find returns the direct child state with the given name, or nil.
func (r *Region) Find(name string) *State {
	for _, s := range r.States {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// State is a named node in the chart. A state's kind follows from its region
// count; simple states own no regions, composite states one, orthogonal
// states two or more.
type State struct {
	Name        string
	Kind        StateKind
	Initial     bool // explicit initial marker
	Final       bool
	Entry       *Action
	Exit        *Action
	Transitions []*Transition
	Regions     []*Region
	Span        Span

	parent        *Region
	qualifiedName string // attached by the validator
}

// ParentRegion returns the region this state is declared in.
func (s *State) ParentRegion() *Region {
	return s.parent
}

// ParentState returns the state enclosing this one, or nil for a top-level
// state.
func (s *State) ParentState() *State {
	if s.parent == nil {
		return nil
	}
	return s.parent.parent
}

// QualifiedName returns the dotted path from the root to this state. Before
// validation it is computed on demand; validation caches it.
func (s *State) QualifiedName() string {
	if s.qualifiedName != "" {
		return s.qualifiedName
	}
	if parent := s.ParentState(); parent != nil {
		return parent.QualifiedName() + "." + s.Name
	}
	return s.Name
}

// Transition is an edge owned by its source state. Event is nil for a
// completion transition. Target is the qualified path to the destination,
// or empty for an internal transition that re-enters no state. The resolved
// destination is attached by the validator.
type Transition struct {
	Event  *Event
	Guard  *Guard
	Target string
	Action *Action
	Span   Span

	source   *State
	resolved *State // attached by the validator
}

// Source returns the state owning this transition.
func (t *Transition) Source() *State {
	return t.source
}

// ResolvedTarget returns the destination state linked during validation, or
// nil before validation or for internal transitions.
func (t *Transition) ResolvedTarget() *State {
	return t.resolved
}

// Internal reports whether the transition re-enters no state.
func (t *Transition) Internal() bool {
	return t.Target == ""
}

// Completion reports whether the transition fires without a triggering event.
func (t *Transition) Completion() bool {
	return t.Event == nil
}

// Event is the named trigger of a transition.
type Event struct {
	Name string
	Span Span
}

// Guard is an opaque boolean condition gating a transition. The core records
// the raw text and a minimal token form; it never evaluates the condition.
type Guard struct {
	Condition string
	Tokens    []string
	Span      Span
}

// Action is an opaque effect attached to a state's entry or exit, or to a
// transition. The core carries the text; execution belongs to a downstream
// collaborator.
type Action struct {
	Text string
	Span Span
}

// SplitPath splits a qualified dotted path into its segments.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}
