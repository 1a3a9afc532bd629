package compiler

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokLParen
	tokRParen
	tokComma
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokNumber:
		return "number"
	case tokIdent:
		return "identifier"
	case tokPlus:
		return "'+'"
	case tokMinus:
		return "'-'"
	case tokStar:
		return "'*'"
	case tokSlash:
		return "'/'"
	case tokCaret:
		return "'^'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	}
	return "unknown token"
}

type token struct {
	kind   tokenKind
	text   string
	offset int
}

// lex splits an equation string into tokens. Identifiers are normalized
// to Unicode NFC so that visually identical names compare equal. "**" is
// accepted as a synonym for "^".
func lex(input string) ([]token, *CompileError) {
	var toks []token
	i := 0
	for i < len(input) {
		r, size := utf8.DecodeRuneInString(input[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			return nil, errAt(input, i, "invalid UTF-8 byte")
		case unicode.IsSpace(r):
			i += size
			continue
		case r == '+':
			toks = append(toks, token{tokPlus, "+", i})
			i++
		case r == '-':
			toks = append(toks, token{tokMinus, "-", i})
			i++
		case r == '*':
			if i+1 < len(input) && input[i+1] == '*' {
				toks = append(toks, token{tokCaret, "**", i})
				i += 2
			} else {
				toks = append(toks, token{tokStar, "*", i})
				i++
			}
		case r == '/':
			toks = append(toks, token{tokSlash, "/", i})
			i++
		case r == '^':
			toks = append(toks, token{tokCaret, "^", i})
			i++
		case r == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case r == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case r == ',':
			toks = append(toks, token{tokComma, ",", i})
			i++
		case r >= '0' && r <= '9' || r == '.':
			tok, next, err := lexNumber(input, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = next
		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(input) {
				r2, sz := utf8.DecodeRuneInString(input[i:])
				if !unicode.IsLetter(r2) && !unicode.IsDigit(r2) && r2 != '_' {
					break
				}
				i += sz
			}
			toks = append(toks, token{tokIdent, norm.NFC.String(input[start:i]), start})
		default:
			return nil, errAt(input, i, "unexpected character %q", r)
		}
	}
	toks = append(toks, token{tokEOF, "", len(input)})
	return toks, nil
}

// lexNumber scans a decimal literal with optional fraction and exponent.
func lexNumber(input string, start int) (token, int, *CompileError) {
	i := start
	digits := func() int {
		n := 0
		for i < len(input) && input[i] >= '0' && input[i] <= '9' {
			i++
			n++
		}
		return n
	}

	intDigits := digits()
	fracDigits := 0
	if i < len(input) && input[i] == '.' {
		i++
		fracDigits = digits()
	}
	if intDigits == 0 && fracDigits == 0 {
		return token{}, 0, errAt(input, start, "malformed number")
	}
	if i < len(input) && (input[i] == 'e' || input[i] == 'E') {
		j := i + 1
		if j < len(input) && (input[j] == '+' || input[j] == '-') {
			j++
		}
		save := i
		i = j
		if digits() == 0 {
			i = save // bare 'e' belongs to the next token
		}
	}
	return token{tokNumber, input[start:i], start}, i, nil
}
