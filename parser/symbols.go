package parser

import (
	"fmt"

	"github.com/dextero/evilvm-go/vm"
)

// SymbolKind distinguishes a label (a byte offset fixed by the assembler's
// layout pass) from an explicit named constant (an expression the caller
// wrote out, possibly referencing other constants).
type SymbolKind int

const (
	SymbolLabel SymbolKind = iota
	SymbolConstant
)

// Symbol is one entry of the constant table: either a label with a known
// byte offset, or a constant with an expression to resolve lazily.
type Symbol struct {
	Name       string
	Kind       SymbolKind
	Pos        Position
	LabelValue int64       // valid when Kind == SymbolLabel
	Expr       *Expression // valid when Kind == SymbolConstant

	resolved bool
	value    int64
}

// SymbolTable is the assembler's constant table: every label and named
// constant in a program, keyed by name, with memoized lazy resolution and
// circular-reference detection for constant expressions.
type SymbolTable struct {
	symbols map[string]*Symbol
	types   *vm.TypeContext
}

// NewSymbolTable returns an empty table. types resolves sizeof/alignof
// queries against the active data-type registry.
func NewSymbolTable(types *vm.TypeContext) *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*Symbol), types: types}
}

// DefineLabel records a label at a known byte offset. Redefining an
// existing name is a fatal DuplicateSymbol error.
func (st *SymbolTable) DefineLabel(name string, offset int64, pos Position) error {
	if existing, ok := st.symbols[name]; ok {
		return NewErrorWithContext(pos, ErrorDuplicateSymbol, "label already defined", fmt.Sprintf("%s (first defined at %s:%d)", name, existing.Pos.Filename, existing.Pos.Line))
	}
	st.symbols[name] = &Symbol{Name: name, Kind: SymbolLabel, Pos: pos, LabelValue: offset, resolved: true, value: offset}
	return nil
}

// DefineConstant records a named constant's expression, to be resolved on
// first reference. Redefining an existing name is a fatal DuplicateSymbol
// error.
func (st *SymbolTable) DefineConstant(name string, expr *Expression, pos Position) error {
	if existing, ok := st.symbols[name]; ok {
		return NewErrorWithContext(pos, ErrorDuplicateSymbol, "constant already defined", fmt.Sprintf("%s (first defined at %s:%d)", name, existing.Pos.Filename, existing.Pos.Line))
	}
	st.symbols[name] = &Symbol{Name: name, Kind: SymbolConstant, Pos: pos, Expr: expr}
	return nil
}

// Get resolves name to its integer value, memoizing the result. visiting
// tracks the names currently being resolved on this call chain so a
// constant that (directly or transitively) references itself reports
// CircularConstant instead of recursing forever.
func (st *SymbolTable) Get(name string, visiting map[string]bool) (int64, error) {
	sym, ok := st.symbols[name]
	if !ok {
		return 0, NewError(Position{}, ErrorUndefinedSymbol, fmt.Sprintf("undefined symbol: %s", name))
	}
	if sym.resolved {
		return sym.value, nil
	}
	if visiting == nil {
		visiting = make(map[string]bool)
	}
	if visiting[name] {
		return 0, NewError(sym.Pos, ErrorCircularConstant, fmt.Sprintf("circular constant reference: %s", name))
	}
	visiting[name] = true
	value, err := sym.Expr.Evaluate(st, visiting)
	if err != nil {
		return 0, err
	}
	delete(visiting, name)
	sym.value = value
	sym.resolved = true
	return value, nil
}

// Lookup reports whether name is defined, without resolving it.
func (st *SymbolTable) Lookup(name string) (*Symbol, bool) {
	sym, ok := st.symbols[name]
	return sym, ok
}

// AllSymbols returns every defined symbol, keyed by name.
func (st *SymbolTable) AllSymbols() map[string]*Symbol {
	return st.symbols
}
