package harel

// Parser builds a Statechart from the token stream. It is a recursive-descent
// parser with one token of lookahead; every body element is introduced by a
// distinct token, so no backtracking is needed. Parsing stops at the first
// grammar violation and never exposes a partial tree.
type Parser struct {
	lex  *Lexer
	cur  Token
	peek Token
}

// NewParser creates a parser over the given source text.
func NewParser(source string) (*Parser, error) {
	p := &Parser{lex: NewLexer(source)}
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	return p, nil
}

// Parse parses statechart source text into an AST. The returned tree is fully
// built or absent: on error the chart is nil. Name resolution is deferred to
// Validate.
func Parse(source string) (*Statechart, error) {
	p, err := NewParser(source)
	if err != nil {
		return nil, err
	}
	chart, err := p.parseStatechart()
	if err != nil {
		return nil, err
	}
	return chart, nil
}

// next advances the token cursor, surfacing lexical errors.
func (p *Parser) next() error {
	p.cur = p.peek
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.peek = tok
	return nil
}

// expect consumes the current token if it has the given type, otherwise fails.
func (p *Parser) expect(typ TokenType) (Token, error) {
	if p.cur.Type != typ {
		return Token{}, NewParseError(p.cur, typ)
	}
	tok := p.cur
	if err := p.next(); err != nil {
		return Token{}, err
	}
	return tok, nil
}

// accept consumes the current token if it has the given type.
func (p *Parser) accept(typ TokenType) (bool, error) {
	if p.cur.Type != typ {
		return false, nil
	}
	return true, p.next()
}

// parseStatechart parses: 'statechart' IDENT '{' state_decl* '}'
func (p *Parser) parseStatechart() (*Statechart, error) {
	start := p.cur.Pos()
	if _, err := p.expect(STATECHART); err != nil {
		return nil, err
	}
	name, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}

	root := &Region{}
	for p.cur.Type != RBRACE {
		if !p.atStateDecl() {
			return nil, NewParseError(p.cur, STATE, RBRACE)
		}
		state, err := p.parseStateDecl(root)
		if err != nil {
			return nil, err
		}
		root.States = append(root.States, state)
	}
	end, err := p.expect(RBRACE)
	if err != nil {
		return nil, err
	}
	if p.cur.Type != EOF {
		return nil, NewParseError(p.cur, EOF)
	}

	span := Span{Start: start, End: end.Span.End}
	root.Span = span
	return &Statechart{
		Name: name.Text,
		Root: root,
		Span: span,
	}, nil
}

// atStateDecl reports whether the current token can begin a state declaration.
func (p *Parser) atStateDecl() bool {
	return p.cur.Type == STATE || p.cur.Type == INITIAL || p.cur.Type == FINAL
}

// atTransition reports whether the current token can begin a transition. A
// transition opens with 'on', a guard, or a bare arrow (completion form).
func (p *Parser) atTransition() bool {
	return p.cur.Type == ON || p.cur.Type == CONDITION || p.cur.Type == ARROW
}

// parseStateDecl parses: 'initial'? 'final'? 'state' IDENT '{' state_body '}'
func (p *Parser) parseStateDecl(parent *Region) (*State, error) {
	start := p.cur.Pos()
	initial, err := p.accept(INITIAL)
	if err != nil {
		return nil, err
	}
	final, err := p.accept(FINAL)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(STATE); err != nil {
		return nil, err
	}
	name, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}

	state := &State{
		Name:    name.Text,
		Initial: initial,
		Final:   final,
		parent:  parent,
	}
	var direct []*State

	for p.cur.Type != RBRACE {
		switch {
		case p.cur.Type == ENTRY:
			if state.Entry != nil {
				return nil, NewParseError(p.cur)
			}
			action, err := p.parseStateAction(ENTRY)
			if err != nil {
				return nil, err
			}
			state.Entry = action
		case p.cur.Type == EXIT:
			if state.Exit != nil {
				return nil, NewParseError(p.cur)
			}
			action, err := p.parseStateAction(EXIT)
			if err != nil {
				return nil, err
			}
			state.Exit = action
		case p.atTransition():
			tr, err := p.parseTransition(state)
			if err != nil {
				return nil, err
			}
			state.Transitions = append(state.Transitions, tr)
		case p.cur.Type == REGION:
			// Explicit regions and directly nested states cannot be mixed;
			// direct nesting already committed this body to one implicit region.
			if len(direct) > 0 {
				return nil, NewParseError(p.cur, STATE, RBRACE)
			}
			region, err := p.parseRegion(state)
			if err != nil {
				return nil, err
			}
			state.Regions = append(state.Regions, region)
		case p.atStateDecl():
			if len(state.Regions) > 0 {
				return nil, NewParseError(p.cur, REGION, RBRACE)
			}
			// The implicit region is materialized after the body completes;
			// children temporarily point at nil and are re-parented below.
			child, err := p.parseStateDecl(nil)
			if err != nil {
				return nil, err
			}
			direct = append(direct, child)
		default:
			return nil, NewParseError(p.cur, ENTRY, EXIT, ON, STATE, REGION, RBRACE)
		}
	}
	end, err := p.expect(RBRACE)
	if err != nil {
		return nil, err
	}
	state.Span = Span{Start: start, End: end.Span.End}

	switch {
	case len(state.Regions) >= 2:
		state.Kind = KindOrthogonal
	case len(state.Regions) == 1:
		// A single explicit region block is a structural error at parse time:
		// the 'region' wrapper exists only to declare orthogonality.
		return nil, NewParseError(end, REGION)
	case len(direct) > 0:
		implicit := &Region{
			States: direct,
			Span:   state.Span,
			parent: state,
		}
		for _, child := range direct {
			child.parent = implicit
		}
		state.Regions = []*Region{implicit}
		state.Kind = KindComposite
	default:
		state.Kind = KindSimple
	}
	return state, nil
}

// parseRegion parses: 'region' '{' state_decl* '}'
func (p *Parser) parseRegion(owner *State) (*Region, error) {
	start := p.cur.Pos()
	if _, err := p.expect(REGION); err != nil {
		return nil, err
	}
	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}
	region := &Region{Explicit: true, parent: owner}
	for p.cur.Type != RBRACE {
		if !p.atStateDecl() {
			return nil, NewParseError(p.cur, STATE, RBRACE)
		}
		state, err := p.parseStateDecl(region)
		if err != nil {
			return nil, err
		}
		region.States = append(region.States, state)
	}
	end, err := p.expect(RBRACE)
	if err != nil {
		return nil, err
	}
	region.Span = Span{Start: start, End: end.Span.End}
	return region, nil
}

// parseStateAction parses: ('entry' | 'exit') ACTION_TEXT
func (p *Parser) parseStateAction(keyword TokenType) (*Action, error) {
	if _, err := p.expect(keyword); err != nil {
		return nil, err
	}
	text, err := p.expect(ACTION)
	if err != nil {
		return nil, err
	}
	return &Action{Text: text.Text, Span: text.Span}, nil
}

// parseTransition parses: ('on' IDENT)? guard? ('->' QUALIFIED_PATH)? action?
// At least one of the 'on' and arrow clauses must be present. A transition
// without the arrow clause is internal; one without the 'on' clause is a
// completion transition.
func (p *Parser) parseTransition(source *State) (*Transition, error) {
	start := p.cur.Pos()
	end := p.cur.Span.End
	tr := &Transition{source: source}

	if p.cur.Type == ON {
		if err := p.next(); err != nil {
			return nil, err
		}
		name, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}
		tr.Event = &Event{Name: name.Text, Span: name.Span}
		end = name.Span.End
	}

	if p.cur.Type == CONDITION {
		tr.Guard = &Guard{
			Condition: p.cur.Text,
			Tokens:    guardTokens(p.cur.Text),
			Span:      p.cur.Span,
		}
		end = p.cur.Span.End
		if err := p.next(); err != nil {
			return nil, err
		}
	}

	if p.cur.Type == ARROW {
		if err := p.next(); err != nil {
			return nil, err
		}
		path, pathEnd, err := p.parseQualifiedPath()
		if err != nil {
			return nil, err
		}
		tr.Target = path
		end = pathEnd
	}

	// A clause needs a trigger or a target; a guard alone gates nothing.
	if tr.Event == nil && tr.Target == "" {
		return nil, NewParseError(p.cur, ARROW)
	}

	if p.cur.Type == ACTION {
		tr.Action = &Action{Text: p.cur.Text, Span: p.cur.Span}
		end = p.cur.Span.End
		if err := p.next(); err != nil {
			return nil, err
		}
	}

	tr.Span = Span{Start: start, End: end}
	return tr, nil
}

// parseQualifiedPath parses: IDENT ('.' IDENT)*
func (p *Parser) parseQualifiedPath() (string, Position, error) {
	first, err := p.expect(IDENT)
	if err != nil {
		return "", Position{}, err
	}
	path := first.Text
	end := first.Span.End
	for p.cur.Type == DOT {
		if err := p.next(); err != nil {
			return "", Position{}, err
		}
		seg, err := p.expect(IDENT)
		if err != nil {
			return "", Position{}, err
		}
		path += "." + seg.Text
		end = seg.Span.End
	}
	return path, end, nil
}

// guardTokens splits a raw condition into a minimal token form: identifiers,
// numbers, and operator runs. The condition itself is never evaluated here.
func guardTokens(condition string) []string {
	var tokens []string
	i := 0
	for i < len(condition) {
		ch := condition[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			i++
		case isIdentPart(ch):
			begin := i
			for i < len(condition) && isIdentPart(condition[i]) {
				i++
			}
			tokens = append(tokens, condition[begin:i])
		case ch == '(' || ch == ')':
			tokens = append(tokens, string(ch))
			i++
		default:
			begin := i
			for i < len(condition) && isGuardOperator(condition[i]) {
				i++
			}
			if i == begin {
				i++ // unknown character, kept as a single token
			}
			tokens = append(tokens, condition[begin:i])
		}
	}
	return tokens
}

func isGuardOperator(ch byte) bool {
	switch ch {
	case '=', '!', '<', '>', '&', '|', '+', '-', '*', '/', '%':
		return true
	}
	return false
}
