package harel

import "fmt"

// TokenType identifies the lexical class of a token.
type TokenType int

const (
	// EOF marks the end of the input
	EOF TokenType = iota
	// ILLEGAL marks an unrecognized character
	ILLEGAL
	// IDENT is an identifier (state names, event names, path segments)
	IDENT
	// STATECHART is the 'statechart' keyword
	STATECHART
	// STATE is the 'state' keyword
	STATE
	// REGION is the 'region' keyword
	REGION
	// ON is the 'on' keyword
	ON
	// ENTRY is the 'entry' keyword
	ENTRY
	// EXIT is the 'exit' keyword
	EXIT
	// INITIAL is the 'initial' keyword
	INITIAL
	// FINAL is the 'final' keyword
	FINAL
	// LBRACE is '{'
	LBRACE
	// RBRACE is '}'
	RBRACE
	// ARROW is '->'
	ARROW
	// DOT is '.'
	DOT
	// CONDITION carries the raw text between guard brackets '[' and ']'
	CONDITION
	// ACTION carries the raw text following a '/' delimiter up to end of line
	ACTION
)

var tokenNames = map[TokenType]string{
	EOF:        "end of input",
	ILLEGAL:    "illegal character",
	IDENT:      "identifier",
	STATECHART: "'statechart'",
	STATE:      "'state'",
	REGION:     "'region'",
	ON:         "'on'",
	ENTRY:      "'entry'",
	EXIT:       "'exit'",
	INITIAL:    "'initial'",
	FINAL:      "'final'",
	LBRACE:     "'{'",
	RBRACE:     "'}'",
	ARROW:      "'->'",
	DOT:        "'.'",
	CONDITION:  "guard condition",
	ACTION:     "action text",
}

// String returns a human-readable name for the token type
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// keywords maps keyword spellings to their token types. The set is fixed; the
// grammar supports no runtime extension.
var keywords = map[string]TokenType{
	"statechart": STATECHART,
	"state":      STATE,
	"region":     REGION,
	"on":         ON,
	"entry":      ENTRY,
	"exit":       EXIT,
	"initial":    INITIAL,
	"final":      FINAL,
}

// LookupKeyword returns the keyword token type for text, or IDENT.
func LookupKeyword(text string) TokenType {
	if tok, ok := keywords[text]; ok {
		return tok
	}
	return IDENT
}

// Position is a location in the source text. Line and Column are 1-based,
// Offset is the 0-based byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String renders the position as line:column
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span covers a contiguous range of source text.
type Span struct {
	Start Position
	End   Position
}

// String renders the span's start position
func (s Span) String() string {
	return s.Start.String()
}

// Token is a single lexical unit with its source span.
type Token struct {
	Type TokenType
	Text string
	Span Span
}

// Pos returns the token's start position
func (t Token) Pos() Position {
	return t.Span.Start
}

// String returns a description of the token for diagnostics
func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "end of input"
	case IDENT, CONDITION, ACTION, ILLEGAL:
		return fmt.Sprintf("%s %q", t.Type, t.Text)
	default:
		return t.Type.String()
	}
}
