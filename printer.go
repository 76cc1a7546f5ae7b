package harel

import (
	"io"
	"strings"
)

const indentUnit = "    "

// Canonical renders a statechart back into normalized source text. The
// output uses one declaration per line, four-space indentation, and the
// fixed clause order event, guard, target, action. Parsing the canonical
// form yields a structurally identical tree, and printing is idempotent:
// Canonical(Parse(Canonical(c))) == Canonical(c).
func Canonical(chart *Statechart) string {
	var sb strings.Builder
	p := &printer{w: &sb}
	p.printStatechart(chart)
	return sb.String()
}

// WriteCanonical writes the canonical rendering of a statechart to w.
func WriteCanonical(w io.Writer, chart *Statechart) error {
	p := &printer{w: w}
	p.printStatechart(chart)
	return p.err
}

// printer tracks indentation depth and the first write error.
type printer struct {
	w     io.Writer
	depth int
	err   error
}

func (p *printer) line(parts ...string) {
	if p.err != nil {
		return
	}
	var sb strings.Builder
	for i := 0; i < p.depth; i++ {
		sb.WriteString(indentUnit)
	}
	for _, part := range parts {
		sb.WriteString(part)
	}
	sb.WriteByte('\n')
	_, p.err = io.WriteString(p.w, sb.String())
}

func (p *printer) printStatechart(chart *Statechart) {
	p.line("statechart ", chart.Name, " {")
	p.depth++
	p.printRegionBody(chart.Root)
	p.depth--
	p.line("}")
}

func (p *printer) printRegionBody(region *Region) {
	for _, s := range region.States {
		p.printState(s)
	}
}

func (p *printer) printState(s *State) {
	var head strings.Builder
	if s.Initial {
		head.WriteString("initial ")
	}
	if s.Final {
		head.WriteString("final ")
	}
	head.WriteString("state ")
	head.WriteString(s.Name)

	if s.Kind == KindSimple && s.Entry == nil && s.Exit == nil && len(s.Transitions) == 0 {
		p.line(head.String(), " {}")
		return
	}

	p.line(head.String(), " {")
	p.depth++
	if s.Entry != nil {
		p.line("entry / ", s.Entry.Text)
	}
	if s.Exit != nil {
		p.line("exit / ", s.Exit.Text)
	}
	for _, tr := range s.Transitions {
		p.printTransition(tr)
	}
	switch s.Kind {
	case KindComposite:
		p.printRegionBody(s.Regions[0])
	case KindOrthogonal:
		for _, region := range s.Regions {
			p.line("region {")
			p.depth++
			p.printRegionBody(region)
			p.depth--
			p.line("}")
		}
	}
	p.depth--
	p.line("}")
}

func (p *printer) printTransition(tr *Transition) {
	var parts []string
	if tr.Event != nil {
		parts = append(parts, "on ", tr.Event.Name)
	}
	if tr.Guard != nil {
		if len(parts) > 0 {
			parts = append(parts, " ")
		}
		parts = append(parts, "[", tr.Guard.Condition, "]")
	}
	if tr.Target != "" {
		if len(parts) > 0 {
			parts = append(parts, " ")
		}
		parts = append(parts, "-> ", tr.Target)
	}
	if tr.Action != nil {
		if len(parts) > 0 {
			parts = append(parts, " ")
		}
		parts = append(parts, "/ ", tr.Action.Text)
	}
	p.line(parts...)
}
