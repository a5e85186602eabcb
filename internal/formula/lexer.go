package formula

import (
	"fmt"
	"unicode"
)

// TokenType identifies the lexical class of a token.
type TokenType int

const (
	TokenAtom    TokenType = iota // sentence letter
	TokenNot                      // ¬
	TokenAnd                      // ∧
	TokenOr                       // ∨
	TokenImplies                  // →
	TokenIff                      // ↔
	TokenBottom                   // ⊥
	TokenLParen                   // (
	TokenRParen                   // )
	TokenEOF                      // end of input
)

func (t TokenType) String() string {
	switch t {
	case TokenAtom:
		return "atom"
	case TokenNot:
		return SymNot
	case TokenAnd:
		return SymAnd
	case TokenOr:
		return SymOr
	case TokenImplies:
		return SymImplies
	case TokenIff:
		return SymIff
	case TokenBottom:
		return SymBottom
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenEOF:
		return "end of input"
	default:
		return "?"
	}
}

// Token is a single lexical token. Position is a rune offset into the
// normalized input.
type Token struct {
	Type     TokenType
	Value    string
	Position int
}

// ParseError reports malformed formula text.
type ParseError struct {
	Pos    int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("position %d: %s", e.Pos, e.Reason)
}

// Lexer splits normalized formula text into tokens.
type Lexer struct {
	input    []rune
	position int
	tokens   []Token
}

// NewLexer returns a lexer over already-normalized input.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  []rune(input),
		tokens: make([]Token, 0),
	}
}

// Tokenize scans the whole input. The returned slice always ends with
// a TokenEOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	for l.position < len(l.input) {
		start := l.position
		c := l.input[l.position]

		switch {
		case unicode.IsSpace(c):
			l.position++
		case c == '(':
			l.addToken(TokenLParen, "(", start)
			l.position++
		case c == ')':
			l.addToken(TokenRParen, ")", start)
			l.position++
		case string(c) == SymNot:
			l.addToken(TokenNot, SymNot, start)
			l.position++
		case string(c) == SymAnd:
			l.addToken(TokenAnd, SymAnd, start)
			l.position++
		case string(c) == SymOr:
			l.addToken(TokenOr, SymOr, start)
			l.position++
		case string(c) == SymImplies:
			l.addToken(TokenImplies, SymImplies, start)
			l.position++
		case string(c) == SymIff:
			l.addToken(TokenIff, SymIff, start)
			l.position++
		case string(c) == SymBottom:
			l.addToken(TokenBottom, SymBottom, start)
			l.position++
		case isAtomRune(c):
			l.lexAtom(start)
		default:
			return nil, &ParseError{Pos: start, Reason: fmt.Sprintf("unrecognized symbol %q", c)}
		}
	}

	l.addToken(TokenEOF, "", l.position)
	return l.tokens, nil
}

// lexAtom consumes a maximal run of atom characters.
func (l *Lexer) lexAtom(start int) {
	for l.position < len(l.input) && isAtomRune(l.input[l.position]) {
		l.position++
	}
	l.addToken(TokenAtom, string(l.input[start:l.position]), start)
}

func (l *Lexer) addToken(tokenType TokenType, value string, pos int) {
	l.tokens = append(l.tokens, Token{
		Type:     tokenType,
		Value:    value,
		Position: pos,
	})
}
