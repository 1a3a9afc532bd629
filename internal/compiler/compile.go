package compiler

import (
	"github.com/solvium-dev/solvium/internal/expr"
)

// SymbolTable binds unknown names to their symbolic handles, in request
// order. Built once per request, read-only afterward.
type SymbolTable struct {
	names []string
	syms  map[string]*expr.Sym
}

// Names returns the unknown names in declaration order.
func (t *SymbolTable) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Lookup resolves a (normalized) identifier to its symbol.
func (t *SymbolTable) Lookup(name string) (*expr.Sym, bool) {
	s, ok := t.syms[name]
	return s, ok
}

// Len returns the number of bound unknowns.
func (t *SymbolTable) Len() int { return len(t.names) }

// Compile turns equation texts and unknown names into a symbol table and
// parsed equations. All-or-nothing: the first failure aborts the whole
// compile and no partial result is returned.
//
// Validation before any parsing:
//   - both inputs must be non-empty
//   - every unknown must tokenize to exactly one identifier
//   - unknowns must be duplicate-free after NFC normalization
func Compile(texts []string, unknowns []string) (*SymbolTable, []expr.Equation, error) {
	if len(texts) == 0 {
		return nil, nil, errRequest("no equations supplied")
	}
	if len(unknowns) == 0 {
		return nil, nil, errRequest("no unknowns supplied")
	}

	table, err := buildSymbolTable(unknowns)
	if err != nil {
		return nil, nil, err
	}

	eqs := make([]expr.Equation, 0, len(texts))
	for _, text := range texts {
		eq, err := parseEquation(text, table)
		if err != nil {
			return nil, nil, err
		}
		eqs = append(eqs, eq)
	}
	return table, eqs, nil
}

// buildSymbolTable validates and binds the unknown names. A name that
// does not lex to a single identifier token (e.g. "x y", "2x", "a+b")
// would bind a different number of symbols than names supplied, so it is
// rejected with the mismatch named.
func buildSymbolTable(unknowns []string) (*SymbolTable, error) {
	table := &SymbolTable{
		names: make([]string, 0, len(unknowns)),
		syms:  make(map[string]*expr.Sym, len(unknowns)),
	}
	for _, raw := range unknowns {
		name, err := identifierToken(raw)
		if err != nil {
			return nil, err
		}
		if _, dup := table.syms[name]; dup {
			return nil, errRequest("duplicate unknown %q", name)
		}
		table.names = append(table.names, name)
		table.syms[name] = expr.S(name)
	}
	return table, nil
}

func identifierToken(raw string) (string, error) {
	toks, err := lex(raw)
	if err != nil {
		return "", errRequest("unknown name %q is not a valid identifier: %s", raw, err.Message)
	}
	idents := 0
	var name string
	for _, t := range toks {
		switch t.kind {
		case tokEOF:
		case tokIdent:
			idents++
			name = t.text
		default:
			return "", errRequest("unknown name %q is not a single identifier", raw)
		}
	}
	if idents != 1 {
		return "", errRequest("unknown name %q binds %d identifiers, want 1", raw, idents)
	}
	if name == eqMarker || expr.IsKnownFunc(name) {
		return "", errRequest("unknown name %q collides with a reserved function name", name)
	}
	return name, nil
}
