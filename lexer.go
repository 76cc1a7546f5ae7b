package harel

// Lexer converts statechart source text into a stream of tokens. It tracks
// line and column positions for diagnostics and skips whitespace and '//'
// comments. The lexer performs no grammar validation; it fails only on
// characters outside the grammar's character classes.
type Lexer struct {
	input string
	pos   int
	line  int
	col   int
}

// NewLexer creates a new lexer over the given source text.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input: input,
		line:  1,
		col:   1,
	}
}

// Tokenize lexes the entire input and returns all tokens including the
// trailing EOF token.
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

// Next returns the next token from the input.
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespaceAndComments()

	start := l.position()
	if l.pos >= len(l.input) {
		return Token{Type: EOF, Span: Span{Start: start, End: start}}, nil
	}

	ch := l.input[l.pos]
	switch {
	case isIdentStart(ch):
		return l.lexIdentifier(start), nil
	case ch == '{':
		l.advance()
		return l.token(LBRACE, "{", start), nil
	case ch == '}':
		l.advance()
		return l.token(RBRACE, "}", start), nil
	case ch == '.':
		l.advance()
		return l.token(DOT, ".", start), nil
	case ch == '-':
		if l.peek(1) == '>' {
			l.advance()
			l.advance()
			return l.token(ARROW, "->", start), nil
		}
		l.advance()
		return Token{}, NewLexError(start, ch)
	case ch == '[':
		return l.lexCondition(start)
	case ch == '/':
		return l.lexAction(start), nil
	default:
		l.advance()
		return Token{}, NewLexError(start, ch)
	}
}

// skipWhitespaceAndComments consumes whitespace and '//' line comments.
// Neither is ever emitted as a token.
func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			l.advance()
			continue
		}
		if ch == '/' && l.peek(1) == '/' {
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.advance()
			}
			continue
		}
		break
	}
}

// lexIdentifier reads an identifier or keyword.
func (l *Lexer) lexIdentifier(start Position) Token {
	begin := l.pos
	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		l.advance()
	}
	text := l.input[begin:l.pos]
	return l.token(LookupKeyword(text), text, start)
}

// lexCondition reads the raw guard text between '[' and its matching ']'.
// Nested bracket pairs are allowed inside the condition.
func (l *Lexer) lexCondition(start Position) (Token, error) {
	l.advance() // consume '['
	begin := l.pos
	depth := 1
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == '[' {
			depth++
		} else if ch == ']' {
			depth--
			if depth == 0 {
				text := trimSpace(l.input[begin:l.pos])
				l.advance() // consume ']'
				return l.token(CONDITION, text, start), nil
			}
		}
		l.advance()
	}
	// Without the closing bracket the remaining token boundaries are
	// unreliable, so this is fatal to lexing.
	return Token{}, NewLexError(start, '[')
}

// lexAction reads action text after '/' up to the end of the line or an
// enclosing '}'. Leading and trailing whitespace is not part of the action.
func (l *Lexer) lexAction(start Position) Token {
	l.advance() // consume '/'
	begin := l.pos
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == '\n' || ch == '}' {
			break
		}
		l.advance()
	}
	return l.token(ACTION, trimSpace(l.input[begin:l.pos]), start)
}

// token assembles a token whose span runs from start to the current position.
func (l *Lexer) token(typ TokenType, text string, start Position) Token {
	return Token{
		Type: typ,
		Text: text,
		Span: Span{Start: start, End: l.position()},
	}
}

func (l *Lexer) position() Position {
	return Position{Line: l.line, Column: l.col, Offset: l.pos}
}

// peek returns the byte at the given offset from the cursor, or 0 at EOF.
func (l *Lexer) peek(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

// advance moves the cursor one byte forward, updating line and column.
func (l *Lexer) advance() {
	if l.pos >= len(l.input) {
		return
	}
	if l.input[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}

func trimSpace(s string) string {
	begin := 0
	for begin < len(s) && (s[begin] == ' ' || s[begin] == '\t' || s[begin] == '\r') {
		begin++
	}
	end := len(s)
	for end > begin && (s[end-1] == ' ' || s[end-1] == '\t' || s[end-1] == '\r' || s[end-1] == '\n') {
		end--
	}
	return s[begin:end]
}
