package harel

// FindState resolves a qualified dotted path starting at the top-level region
// and returns the state it names, or nil. The search follows path segments
// only, so the cost is bounded by the path length times sibling counts.
func (c *Statechart) FindState(path string) *State {
	return findInRegion(c.Root, SplitPath(path))
}

// findInRegion walks path segments down from the given region.
func findInRegion(region *Region, segments []string) *State {
	if region == nil || len(segments) == 0 {
		return nil
	}
	state := region.Find(segments[0])
	for _, segment := range segments[1:] {
		if state == nil {
			return nil
		}
		state = findChild(state, segment)
	}
	return state
}

// findChild returns the named direct child across all of a state's regions.
func findChild(state *State, name string) *State {
	for _, region := range state.Regions {
		if child := region.Find(name); child != nil {
			return child
		}
	}
	return nil
}

// Children returns a state's direct children in declaration order, flattened
// across regions. Region membership stays available through each child's
// ParentRegion.
func Children(state *State) []*State {
	var out []*State
	for _, region := range state.Regions {
		out = append(out, region.States...)
	}
	return out
}

// OutgoingTransitions returns the transitions originating from the state in
// declaration order.
func OutgoingTransitions(state *State) []*Transition {
	return state.Transitions
}

// AncestorChain returns the states from the root down to and including the
// given state.
func AncestorChain(state *State) []*State {
	var chain []*State
	for s := state; s != nil; s = s.ParentState() {
		chain = append(chain, s)
	}
	// reverse into root-first order
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// EachState visits every state in the chart in declaration order, parents
// before children.
func (c *Statechart) EachState(visit func(*State)) {
	eachInRegion(c.Root, visit)
}

func eachInRegion(region *Region, visit func(*State)) {
	for _, state := range region.States {
		visit(state)
		for _, child := range state.Regions {
			eachInRegion(child, visit)
		}
	}
}

// EachRegion visits every region in the chart, the top-level region first.
func (c *Statechart) EachRegion(visit func(*Region)) {
	var walk func(*Region)
	walk = func(region *Region) {
		visit(region)
		for _, state := range region.States {
			for _, child := range state.Regions {
				walk(child)
			}
		}
	}
	walk(c.Root)
}

// resolveTarget resolves a transition target path against the statechart.
// Resolution is scope-outward: the path is tried against the source state's
// enclosing region first, then against each ancestor region, the top-level
// region last. Sibling-name uniqueness makes the nearest match unique.
func (c *Statechart) resolveTarget(source *State, path string) *State {
	segments := SplitPath(path)
	if len(segments) == 0 {
		return nil
	}
	for region := source.ParentRegion(); region != nil; {
		if found := findInRegion(region, segments); found != nil {
			return found
		}
		owner := region.Parent()
		if owner == nil {
			break
		}
		region = owner.ParentRegion()
	}
	return findInRegion(c.Root, segments)
}
