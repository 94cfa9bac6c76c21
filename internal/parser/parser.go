package parser

import (
	"strconv"

	"github.com/ryantenney/go-units/internal/lexer"
	"github.com/ryantenney/go-units/internal/unit"
)

// Parser turns one expression string into a *unit.Value. It holds no
// state beyond the token stream and the shared Context, so a fresh
// Parser is created for every nested parse of another string (database
// body, function branch) — cheap, and each such parse is counted against
// Context.Budget. Parenthesized sub-expressions are parsed by the same
// Parser and are not counted against the Budget.
type Parser struct {
	source string
	lex    *lexer.Lexer
	ctx    *Context
	cur    lexer.Token
	peek   lexer.Token
}

// New returns a Parser over input using ctx (shared Budget, Config,
// collaborators).
func New(input string, ctx *Context) *Parser {
	p := &Parser{source: input, lex: lexer.New(input), ctx: ctx}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.Next()
}

// Parse parses the entire input as one expr production and requires EOF
// to follow, returning PARSE_MEM if the shared recursion budget is
// exhausted before it can start.
func (p *Parser) Parse() (*unit.Value, error) {
	if err := p.ctx.Budget.enter(); err != nil {
		return nil, err
	}
	defer p.ctx.Budget.exit()

	v, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.EOF {
		return nil, errParse(p.source, p.cur.Start.Offset, "unexpected '%s'", p.cur.Text)
	}
	return v, nil
}

// expr := term (('+' | '+-' | '-') term)*   -- '-' only when Cfg.Minus
func (p *Parser) parseExpr() (*unit.Value, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.Type {
		case lexer.PLUS:
			p.advance()
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			if left, err = p.sum(left, right, false); err != nil {
				return nil, err
			}
		case lexer.PLUSMINUS:
			p.advance()
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			if left, err = p.sum(left, right, true); err != nil {
				return nil, err
			}
		case lexer.MINUS:
			if !p.ctx.Cfg.Minus {
				return left, nil
			}
			p.advance()
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			if left, err = p.sum(left, right, true); err != nil {
				return nil, err
			}
		default:
			return left, nil
		}
	}
}

// sum implements the '+'/'-' production: both operands must be fully
// reduced and conformable under ignore-nothing before their factors can
// be added.
func (p *Parser) sum(a, b *unit.Value, subtract bool) (*unit.Value, error) {
	if p.ctx.Reduce != nil {
		if err := p.ctx.Reduce.Reduce(p.ctx, a); err != nil {
			return nil, err
		}
		if err := p.ctx.Reduce.Reduce(p.ctx, b); err != nil {
			return nil, err
		}
	}
	if !conformNothing(a, b) {
		return nil, unitserrBadSum()
	}
	bf := b.Factor
	if subtract {
		bf = -bf
	}
	return &unit.Value{Factor: a.Factor + bf, Num: a.Num, Denom: a.Denom}, nil
}

// term := factor (('*' | ' ' | '/') factor)*, with '*' binding tighter
// than '/' when Cfg.OldStar selects the historical precedence.
func (p *Parser) parseTerm() (*unit.Value, error) {
	if p.ctx.Cfg.OldStar {
		return p.parseDivChain()
	}
	return p.parseFlatTerm()
}

func (p *Parser) parseFlatTerm() (*unit.Value, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.cur.Type == lexer.STAR:
			p.advance()
			right, err := p.parsePower()
			if err != nil {
				return nil, err
			}
			if err := left.Mul(right); err != nil {
				return nil, err
			}
		case p.cur.Type == lexer.SLASH:
			p.advance()
			right, err := p.parsePower()
			if err != nil {
				return nil, err
			}
			if err := left.Div(right); err != nil {
				return nil, err
			}
		case p.startsFactor():
			right, err := p.parsePower()
			if err != nil {
				return nil, err
			}
			if err := left.Mul(right); err != nil {
				return nil, err
			}
		default:
			return left, nil
		}
	}
}

// parseDivChain := starChain ('/' starChain)*
func (p *Parser) parseDivChain() (*unit.Value, error) {
	left, err := p.parseStarChain()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == lexer.SLASH {
		p.advance()
		right, err := p.parseStarChain()
		if err != nil {
			return nil, err
		}
		if err := left.Div(right); err != nil {
			return nil, err
		}
	}
	return left, nil
}

// starChain := factor (('*' | ' ') factor)*
func (p *Parser) parseStarChain() (*unit.Value, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.cur.Type == lexer.STAR:
			p.advance()
			right, err := p.parsePower()
			if err != nil {
				return nil, err
			}
			if err := left.Mul(right); err != nil {
				return nil, err
			}
		case p.startsFactor():
			right, err := p.parsePower()
			if err != nil {
				return nil, err
			}
			if err := left.Mul(right); err != nil {
				return nil, err
			}
		default:
			return left, nil
		}
	}
}

// startsFactor reports whether the current token can begin a new
// juxtaposed factor — implicit multiplication by whitespace — without
// being one of the operators already handled explicitly by the caller.
func (p *Parser) startsFactor() bool {
	if !p.cur.PrecededBySpace {
		return false
	}
	switch p.cur.Type {
	case lexer.NUMBER, lexer.IDENT, lexer.LPAREN, lexer.TILDE:
		return true
	default:
		return false
	}
}

// power := atom ('^' | '**') power | atom   (right-associative)
func (p *Parser) parsePower() (*unit.Value, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.CARET && p.cur.Type != lexer.STARSTAR {
		return base, nil
	}
	opOffset := p.cur.Start.Offset
	p.advance()
	exp, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	if err := p.applyPower(base, exp, opOffset); err != nil {
		return nil, err
	}
	return base, nil
}

func (p *Parser) applyPower(base, exp *unit.Value, offset int) error {
	if p.ctx.Reduce != nil {
		if err := p.ctx.Reduce.Reduce(p.ctx, base); err != nil {
			return err
		}
		if err := p.ctx.Reduce.Reduce(p.ctx, exp); err != nil {
			return err
		}
	}
	if !exp.IsNumeric() {
		return errNotANumber(p.source, offset, "exponent")
	}
	f := exp.Factor
	if n := int(f); float64(n) == f {
		return base.Pow(n)
	}
	if f != 0 {
		if n := int(1 / f); float64(n) != 0 && closeToInt(1/f, n) {
			return base.Root(n,
				func() error { return errNotRoot(p.source, offset) },
				func() error { return errNotANumber(p.source, offset, "even root of a negative number") },
			)
		}
	}
	if base.IsNumeric() {
		return base.Pow2(f)
	}
	return errNotRoot(p.source, offset)
}

func closeToInt(f float64, n int) bool {
	const eps = 1e-9
	d := f - float64(n)
	return d < eps && d > -eps
}

// atom := NUMBER | NAME | '(' expr ')' | '~' atom
func (p *Parser) parseAtom() (*unit.Value, error) {
	switch p.cur.Type {
	case lexer.NUMBER:
		return p.parseNumber()
	case lexer.IDENT:
		return p.parseIdent()
	case lexer.LPAREN:
		p.advance()
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.cur.Type != lexer.RPAREN {
			return nil, errParse(p.source, p.cur.Start.Offset, "expected ')'")
		}
		p.advance()
		return v, nil
	case lexer.TILDE:
		return p.parseInverse()
	default:
		return nil, errParse(p.source, p.cur.Start.Offset, "unexpected '%s'", p.cur.Text)
	}
}

func (p *Parser) parseNumber() (*unit.Value, error) {
	text := p.cur.Text
	offset := p.cur.Start.Offset
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, errParse(p.source, offset, "malformed number '%s'", text)
	}
	p.advance()
	if p.cur.Type == lexer.PIPE {
		p.advance()
		if p.cur.Type != lexer.NUMBER {
			return nil, errParse(p.source, p.cur.Start.Offset, "expected integer denominator after '|'")
		}
		qText := p.cur.Text
		q, err := strconv.ParseFloat(qText, 64)
		if err != nil || float64(int(f)) != f || float64(int(q)) != q {
			return nil, errParse(p.source, p.cur.Start.Offset, "'%s|%s' requires integer numerator and denominator", text, qText)
		}
		p.advance()
		return unit.New(f / q), nil
	}
	return unit.New(f), nil
}

func (p *Parser) parseIdent() (*unit.Value, error) {
	name := p.cur.Text
	offset := p.cur.Start.Offset
	p.advance()

	if p.cur.Type == lexer.LPAREN && !p.cur.PrecededBySpace {
		return p.parseCall(name, offset, false)
	}

	if v, ok := p.identParam(name); ok {
		p.maybeImplicitExponent(v)
		return v, nil
	}

	v := unit.NewAtom(unit.Atom(name))
	p.maybeImplicitExponent(v)
	return v, nil
}

// maybeImplicitExponent consumes a NUMBER token contiguous with the
// identifier just parsed (no whitespace between them) as an implicit
// integer exponent, e.g. "cm3" == "cm^3" — relying on the invariant that
// a unit name can't end in a digit 2-9.
func (p *Parser) maybeImplicitExponent(v *unit.Value) {
	if p.cur.Type != lexer.NUMBER || p.cur.PrecededBySpace {
		return
	}
	n, err := strconv.Atoi(p.cur.Text)
	if err != nil {
		return
	}
	p.advance()
	_ = v.Pow(n)
}

func (p *Parser) parseCall(name string, offset int, inverse bool) (*unit.Value, error) {
	p.advance() // consume '('
	arg, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.RPAREN {
		return nil, errParse(p.source, p.cur.Start.Offset, "expected ')' to close call to '%s'", name)
	}
	p.advance()

	if p.ctx.Funcs == nil || !p.ctx.Funcs.HasFunc(name) {
		return nil, errParse(p.source, offset, "unknown function '%s'", name)
	}
	return p.ctx.Funcs.Apply(p.ctx, name, arg, inverse)
}

func (p *Parser) parseInverse() (*unit.Value, error) {
	offset := p.cur.Start.Offset
	p.advance()
	if p.cur.Type != lexer.IDENT {
		return nil, errParse(p.source, offset, "'~' must be followed by a function name")
	}
	name := p.cur.Text
	p.advance()

	if p.cur.Type == lexer.LPAREN && !p.cur.PrecededBySpace {
		return p.parseCall(name, offset, true)
	}

	// "~X" with no call parens is a synonym for "~X(1)".
	if p.ctx.Funcs == nil || !p.ctx.Funcs.HasFunc(name) {
		return nil, errParse(p.source, offset, "unknown function '%s'", name)
	}
	return p.ctx.Funcs.Apply(p.ctx, name, unit.New(1), true)
}

// identParam substitutes the bound function parameter for a matching
// identifier, used by parseIdent before falling back to a literal atom.
func (p *Parser) identParam(name string) (*unit.Value, bool) {
	if p.ctx.hasParam && p.ctx.paramName == name {
		return p.ctx.paramValue.Clone(), true
	}
	return nil, false
}
