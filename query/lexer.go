package query

import (
	"strings"
)

// TokenSource yields tokens one at a time. Pos reports the current scan offset.
type TokenSource interface {
	NextToken() Token
	Pos() int
}

// Lexer tokenizes SPL query strings
type Lexer struct {
	input string
	pos   int  // offset of ch
	ch    byte // current character, 0 at end of input
}

// NewLexer creates a new lexer
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.setCh()
	return l
}

// Pos returns the current scan offset.
func (l *Lexer) Pos() int {
	return l.pos
}

func (l *Lexer) setCh() {
	if l.pos >= len(l.input) {
		l.ch = 0
		return
	}
	l.ch = l.input[l.pos]
}

// readChar advances to the next character
func (l *Lexer) readChar() {
	if l.pos < len(l.input) {
		l.pos++
	}
	l.setCh()
}

// peekChar looks at the next character without advancing
func (l *Lexer) peekChar() byte {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && isSpace(l.ch) {
		l.readChar()
	}
}

// readString reads a quoted string. ok is false when the closing quote is missing.
func (l *Lexer) readString(quote byte) (s string, ok bool) {
	var result strings.Builder
	l.readChar() // opening quote

	for !l.atEnd() && l.ch != quote {
		if l.ch == '\\' {
			l.readChar()
			if l.atEnd() {
				break
			}
			switch l.ch {
			case 'n':
				result.WriteByte('\n')
			case 't':
				result.WriteByte('\t')
			default:
				result.WriteByte(l.ch)
			}
		} else {
			result.WriteByte(l.ch)
		}
		l.readChar()
	}

	if l.atEnd() {
		return result.String(), false
	}
	l.readChar() // closing quote
	return result.String(), true
}

// readNumber reads an integer or decimal literal
func (l *Lexer) readNumber() string {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readWord() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// NextToken returns the next token. Once the input is exhausted it keeps
// returning TokenEOF.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	start := l.pos
	if l.atEnd() {
		return Token{Type: TokenEOF, Pos: start}
	}

	switch l.ch {
	case '(':
		l.readChar()
		return Token{Type: TokenLParen, Value: "(", Pos: start}
	case ')':
		l.readChar()
		return Token{Type: TokenRParen, Value: ")", Pos: start}
	case ',':
		l.readChar()
		return Token{Type: TokenComma, Value: ",", Pos: start}
	case '=':
		l.readChar()
		return Token{Type: TokenComparisonOperator, Value: "=", Pos: start}
	case '<', '>':
		op := string(l.ch)
		if l.peekChar() == '=' {
			l.readChar()
			op += "="
		}
		l.readChar()
		return Token{Type: TokenComparisonOperator, Value: op, Pos: start}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return Token{Type: TokenComparisonOperator, Value: "!=", Pos: start}
		}
		l.readChar()
		return Token{Type: TokenIllegal, Value: "!", Pos: start}
	case '\'', '"':
		s, ok := l.readString(l.ch)
		if !ok {
			return Token{Type: TokenIllegal, Value: l.input[start:l.pos], Pos: start}
		}
		return Token{Type: TokenString, Value: s, Pos: start}
	}

	switch {
	case isDigit(l.ch):
		return Token{Type: TokenNumber, Value: l.readNumber(), Pos: start}
	case isLetter(l.ch):
		word := l.readWord()
		typ, ok := wordTypes[word]
		if !ok {
			typ = TokenIdentifier
		}
		return Token{Type: typ, Value: word, Pos: start}
	}

	ch := l.ch
	l.readChar()
	return Token{Type: TokenIllegal, Value: string(ch), Pos: start}
}

// Tokenize returns all tokens from the input, ending with TokenEOF or the
// first TokenIllegal.
func Tokenize(input string) []Token {
	lexer := NewLexer(input)
	var tokens []Token

	for {
		tok := lexer.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF || tok.Type == TokenIllegal {
			break
		}
	}

	return tokens
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}
