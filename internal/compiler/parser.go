package compiler

import (
	"strings"

	"github.com/solvium-dev/solvium/internal/expr"
)

// eqMarker is the explicit-equality construct recognized at top level:
// Eq(lhs, rhs). Anywhere else the name is rejected.
const eqMarker = "Eq"

type parser struct {
	input string
	table *SymbolTable
	toks  []token
	pos   int
}

// parseEquation parses one equation string against the bound symbols.
// "Eq(lhs, rhs)" becomes an explicit equality; any other text parses as
// a single expression implicitly equal to zero.
func parseEquation(input string, table *SymbolTable) (expr.Equation, error) {
	toks, lerr := lex(input)
	if lerr != nil {
		return expr.Equation{}, lerr
	}
	p := &parser{input: input, table: table, toks: toks}

	if p.peek().kind == tokIdent && p.peek().text == eqMarker && p.peekAt(1).kind == tokLParen {
		p.next() // Eq
		p.next() // (
		lhs, err := p.parseExpr()
		if err != nil {
			return expr.Equation{}, err
		}
		if _, err := p.expect(tokComma); err != nil {
			return expr.Equation{}, err
		}
		rhs, err := p.parseExpr()
		if err != nil {
			return expr.Equation{}, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return expr.Equation{}, err
		}
		if _, err := p.expect(tokEOF); err != nil {
			return expr.Equation{}, err
		}
		return expr.Equation{LHS: lhs, RHS: rhs}, nil
	}

	e, err := p.parseExpr()
	if err != nil {
		return expr.Equation{}, err
	}
	if _, err := p.expect(tokEOF); err != nil {
		return expr.Equation{}, err
	}
	return expr.Equation{LHS: e, RHS: expr.N(0)}, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }
func (p *parser) peekAt(n int) token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind) (token, error) {
	t := p.peek()
	if t.kind != kind {
		return token{}, errAt(p.input, t.offset, "expected %s, found %s", kind, describe(t))
	}
	return p.next(), nil
}

func describe(t token) string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return "'" + t.text + "'"
}

// parseExpr := term (('+'|'-') term)*
func (p *parser) parseExpr() (expr.Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokPlus:
			p.next()
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = expr.AddOf(left, right)
		case tokMinus:
			p.next()
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = expr.Sub(left, right)
		default:
			return left, nil
		}
	}
}

// parseTerm := unary (('*'|'/') unary)*
func (p *parser) parseTerm() (expr.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokStar:
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = expr.MulOf(left, right)
		case tokSlash:
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = expr.Div(left, right)
		default:
			return left, nil
		}
	}
}

// parseUnary := ('+'|'-')* power
func (p *parser) parseUnary() (expr.Expr, error) {
	switch p.peek().kind {
	case tokMinus:
		p.next()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return expr.Neg(inner), nil
	case tokPlus:
		p.next()
		return p.parseUnary()
	}
	return p.parsePower()
}

// parsePower := primary (('^'|'**') unary)?   right-associative
func (p *parser) parsePower() (expr.Expr, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokCaret {
		return base, nil
	}
	p.next()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return expr.PowOf(base, exp), nil
}

// parsePrimary := number | ident | ident '(' expr ')' | '(' expr ')'
func (p *parser) parsePrimary() (expr.Expr, error) {
	t := p.peek()
	switch t.kind {
	case tokNumber:
		p.next()
		n, ok := expr.ParseNum(normalizeLiteral(t.text))
		if !ok {
			return nil, errAt(p.input, t.offset, "malformed number %q", t.text)
		}
		return n, nil
	case tokIdent:
		p.next()
		if p.peek().kind == tokLParen {
			return p.parseCall(t)
		}
		if sym, ok := p.table.Lookup(t.text); ok {
			return sym, nil
		}
		if expr.IsKnownFunc(t.text) {
			return nil, errAt(p.input, t.offset, "function %q requires an argument", t.text)
		}
		return nil, errAt(p.input, t.offset, "unknown identifier %q: not a declared unknown", t.text)
	case tokLParen:
		p.next()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, errAt(p.input, t.offset, "expected expression, found %s", describe(t))
}

func (p *parser) parseCall(name token) (expr.Expr, error) {
	if name.text == eqMarker {
		return nil, errAt(p.input, name.offset, "Eq(...) is only allowed at the top level")
	}
	if !expr.IsKnownFunc(name.text) {
		return nil, errAt(p.input, name.offset, "unknown function %q (known functions: %s)",
			name.text, strings.Join(expr.KnownFuncs(), ", "))
	}
	p.next() // (
	arg, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	return expr.CallOf(name.text, arg), nil
}

// normalizeLiteral patches literal edge shapes ("5.", ".5") into forms
// big.Rat parses unambiguously.
func normalizeLiteral(lit string) string {
	if strings.HasPrefix(lit, ".") {
		lit = "0" + lit
	}
	if strings.HasSuffix(lit, ".") {
		lit += "0"
	}
	return lit
}
