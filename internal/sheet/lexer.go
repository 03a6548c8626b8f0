package sheet

import "fmt"

// Lexer tokenizes formula expressions. Tokens are produced lazily by
// Next and the sequence can be restarted from the beginning with Reset.
type Lexer struct {
	runes []rune // UTF-8 aware representation
	pos   int
}

// NewLexer creates a lexer for the given formula text. A leading '='
// is the formula marker, not part of the expression, and is skipped.
func NewLexer(input string) *Lexer {
	runes := []rune(input)
	if len(runes) > 0 && runes[0] == '=' {
		runes = runes[1:]
	}
	return &Lexer{runes: runes}
}

// Reset restarts the token sequence from the beginning of the input
func (l *Lexer) Reset() {
	l.pos = 0
}

// Next returns the next token, skipping whitespace. Once the input is
// exhausted it keeps returning EOF. An unrecognized rune fails with a
// lex error carrying the rune and its position.
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespace()

	if l.pos >= len(l.runes) {
		return Token{Type: TokenEOF, Pos: l.pos}, nil
	}

	startPos := l.pos
	ch := l.current()

	switch ch {
	case '+':
		l.pos++
		return Token{Type: TokenPlus, Value: "+", Pos: startPos}, nil
	case '-':
		l.pos++
		return Token{Type: TokenMinus, Value: "-", Pos: startPos}, nil
	case '*':
		l.pos++
		return Token{Type: TokenStar, Value: "*", Pos: startPos}, nil
	case '/':
		l.pos++
		return Token{Type: TokenSlash, Value: "/", Pos: startPos}, nil
	case '(':
		l.pos++
		return Token{Type: TokenLeftParen, Value: "(", Pos: startPos}, nil
	case ')':
		l.pos++
		return Token{Type: TokenRightParen, Value: ")", Pos: startPos}, nil
	case ',':
		l.pos++
		return Token{Type: TokenComma, Value: ",", Pos: startPos}, nil
	}

	if isDigit(ch) {
		return l.scanNumber()
	}

	if isAlpha(ch) {
		return l.scanIdentifier()
	}

	l.pos++
	return Token{}, NewSheetError(ErrorCodeLex,
		fmt.Sprintf("unexpected character %q at position %d", ch, startPos))
}

// Tokenize consumes the remaining input and returns all tokens, ending
// with an EOF token.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

// scanNumber scans digits with at most one decimal point. The scanner
// never consumes a sign; unary minus is a parser construct.
func (l *Lexer) scanNumber() (Token, error) {
	startPos := l.pos

	for l.pos < len(l.runes) && isDigit(l.current()) {
		l.pos++
	}

	if l.pos < len(l.runes) && l.current() == '.' {
		l.pos++ // consume '.'
		if l.pos >= len(l.runes) || !isDigit(l.current()) {
			return Token{}, NewSheetError(ErrorCodeLex,
				fmt.Sprintf("unexpected character %q at position %d", '.', l.pos-1))
		}
		for l.pos < len(l.runes) && isDigit(l.current()) {
			l.pos++
		}
	}

	return Token{Type: TokenNumber, Value: string(l.runes[startPos:l.pos]), Pos: startPos}, nil
}

// scanIdentifier scans a letter followed by letters and digits. Cell
// references and function names are both identifiers here; the parser
// tells them apart.
func (l *Lexer) scanIdentifier() (Token, error) {
	startPos := l.pos

	for l.pos < len(l.runes) && (isAlpha(l.current()) || isDigit(l.current())) {
		l.pos++
	}

	return Token{Type: TokenIdentifier, Value: string(l.runes[startPos:l.pos]), Pos: startPos}, nil
}

func (l *Lexer) current() rune {
	return l.runes[l.pos]
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.runes) {
		switch l.current() {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
