package formula

import "fmt"

// Parser builds a Formula from a token stream.
//
// Precedence, loosest first: ↔, →, ∨, ∧, ¬. A binary connective may not be
// chained with itself without parentheses: "A ∧ B ∧ C" is rejected rather
// than given an arbitrary grouping.
type Parser struct {
	tokens  []Token
	current int
	// nesting counts the open parentheses and negations around the current
	// token; it may not exceed limit.
	nesting int
	limit   int
}

// DefaultMaxNesting bounds how deeply parentheses and negations may nest
// in a formula parsed by Parse.
const DefaultMaxNesting = 256

// Parse normalizes text and parses it into a Formula.
func Parse(text string) (Formula, error) {
	return ParseWithLimit(text, DefaultMaxNesting)
}

// ParseWithLimit is like Parse but fails once parentheses and negations
// nest more than limit levels deep. A limit of 0 or less means
// DefaultMaxNesting.
func ParseWithLimit(text string, limit int) (Formula, error) {
	if limit <= 0 {
		limit = DefaultMaxNesting
	}
	tokens, err := NewLexer(Normalize(text)).Tokenize()
	if err != nil {
		return nil, err
	}
	p := &Parser{tokens: tokens, limit: limit}
	return p.parse()
}

// MustParse is like Parse but panics on error. Intended for tests and
// fixed tables.
func MustParse(text string) Formula {
	f, err := Parse(text)
	if err != nil {
		panic(fmt.Sprintf("formula: MustParse(%q): %v", text, err))
	}
	return f
}

func (p *Parser) parse() (Formula, error) {
	if p.peek().Type == TokenEOF {
		return nil, &ParseError{Pos: 0, Reason: "empty formula"}
	}
	f, err := p.parseIff()
	if err != nil {
		return nil, err
	}
	switch tok := p.peek(); tok.Type {
	case TokenEOF:
		return f, nil
	case TokenRParen:
		return nil, &ParseError{Pos: tok.Position, Reason: "unbalanced parenthesis: unexpected ')'"}
	default:
		return nil, &ParseError{Pos: tok.Position, Reason: fmt.Sprintf("unexpected %s after complete formula", describe(tok))}
	}
}

type binaryLevel struct {
	op    TokenType
	next  func(*Parser) (Formula, error)
	build func(l, r Formula) Formula
}

func (p *Parser) parseIff() (Formula, error) {
	return p.parseBinary(binaryLevel{op: TokenIff, next: (*Parser).parseImplies, build: Bicond})
}

func (p *Parser) parseImplies() (Formula, error) {
	return p.parseBinary(binaryLevel{op: TokenImplies, next: (*Parser).parseOr, build: Cond})
}

func (p *Parser) parseOr() (Formula, error) {
	return p.parseBinary(binaryLevel{op: TokenOr, next: (*Parser).parseAnd, build: Disj})
}

func (p *Parser) parseAnd() (Formula, error) {
	return p.parseBinary(binaryLevel{op: TokenAnd, next: (*Parser).parseUnary, build: Conj})
}

func (p *Parser) parseBinary(lvl binaryLevel) (Formula, error) {
	left, err := lvl.next(p)
	if err != nil {
		return nil, err
	}
	if p.peek().Type != lvl.op {
		return left, nil
	}
	opTok := p.advance()
	if err := p.expectOperand(opTok); err != nil {
		return nil, err
	}
	right, err := lvl.next(p)
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type == lvl.op {
		return nil, &ParseError{
			Pos:    tok.Position,
			Reason: fmt.Sprintf("ambiguous chain of %s; add parentheses", lvl.op),
		}
	}
	return lvl.build(left, right), nil
}

func (p *Parser) parseUnary() (Formula, error) {
	if p.peek().Type == TokenNot {
		tok := p.advance()
		if err := p.expectOperand(tok); err != nil {
			return nil, err
		}
		if err := p.enter(tok); err != nil {
			return nil, err
		}
		sub, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		p.nesting--
		return Neg(sub), nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Formula, error) {
	tok := p.peek()
	switch tok.Type {
	case TokenAtom:
		p.advance()
		return A(tok.Value), nil
	case TokenBottom:
		p.advance()
		return Falsum(), nil
	case TokenLParen:
		p.advance()
		if err := p.enter(tok); err != nil {
			return nil, err
		}
		if p.peek().Type == TokenRParen {
			return nil, &ParseError{Pos: p.peek().Position, Reason: "empty parentheses"}
		}
		inner, err := p.parseIff()
		if err != nil {
			return nil, err
		}
		if p.peek().Type != TokenRParen {
			next := p.peek()
			if next.Type == TokenEOF {
				return nil, &ParseError{Pos: tok.Position, Reason: "unbalanced parenthesis: '(' is never closed"}
			}
			return nil, &ParseError{Pos: next.Position, Reason: fmt.Sprintf("expected ')' but found %s", describe(next))}
		}
		p.advance()
		p.nesting--
		return inner, nil
	default:
		return nil, &ParseError{Pos: tok.Position, Reason: fmt.Sprintf("missing operand: unexpected %s", describe(tok))}
	}
}

func (p *Parser) enter(tok Token) error {
	p.nesting++
	if p.nesting > p.limit {
		return &ParseError{Pos: tok.Position, Reason: fmt.Sprintf("formula nested too deeply (limit %d)", p.limit)}
	}
	return nil
}

// expectOperand fails when the connective op is not followed by something
// that can start a formula.
func (p *Parser) expectOperand(op Token) error {
	switch p.peek().Type {
	case TokenAtom, TokenBottom, TokenLParen, TokenNot:
		return nil
	}
	return &ParseError{Pos: op.Position, Reason: fmt.Sprintf("missing operand after %s", op.Type)}
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) advance() Token {
	tok := p.tokens[p.current]
	if tok.Type != TokenEOF {
		p.current++
	}
	return tok
}

func describe(tok Token) string {
	if tok.Type == TokenAtom {
		return fmt.Sprintf("atom %q", tok.Value)
	}
	if tok.Type == TokenEOF {
		return tok.Type.String()
	}
	return fmt.Sprintf("%q", tok.Type.String())
}
