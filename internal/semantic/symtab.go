package semantic

import (
	"strings"

	"github.com/pasc-lang/pasc/internal/ast"
)

// SymbolKind distinguishes what a Symbol denotes.
type SymbolKind int

const (
	VarSymbol SymbolKind = iota
	ParamSymbol
	FuncSymbol
	ProcSymbol
)

// Symbol is one entry in a scope: a declared variable, parameter,
// procedure, or function, per spec.md §3.
type Symbol struct {
	Name string // original-case spelling, for diagnostics
	Type *ast.Type
	Kind SymbolKind

	// IsGlobal is set by the analyzer when a variable is declared in the
	// global scope. GlobalOffset is not assigned by any phase and stays
	// zero; codegen keeps its own offset map.
	GlobalOffset int
	IsGlobal     bool
}

// scope is one level of a SymbolTable: a case-insensitive name -> Symbol
// map, grounded on the teacher's lowercase-key lookup convention.
type scope struct {
	symbols map[string]*Symbol
}

func newScope() *scope { return &scope{symbols: make(map[string]*Symbol)} }

// SymbolTable is a stack of scopes. The bottom entry is the global scope,
// which persists for the whole compilation; subprograms push a scope on
// entry and pop it on exit (including every error path).
type SymbolTable struct {
	scopes []*scope
}

// NewSymbolTable creates a table with just the global scope pushed.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{scopes: []*scope{newScope()}}
}

func (t *SymbolTable) Push() { t.scopes = append(t.scopes, newScope()) }

func (t *SymbolTable) Pop() { t.scopes = t.scopes[:len(t.scopes)-1] }

func (t *SymbolTable) current() *scope { return t.scopes[len(t.scopes)-1] }

// InGlobalScope reports whether the table currently has only the global
// scope pushed.
func (t *SymbolTable) InGlobalScope() bool { return len(t.scopes) == 1 }

// Declare adds sym to the innermost scope under name, case-insensitively.
// Returns false if name is already declared in that same scope.
func (t *SymbolTable) Declare(name string, sym *Symbol) bool {
	key := strings.ToLower(name)
	cur := t.current()
	if _, exists := cur.symbols[key]; exists {
		return false
	}
	cur.symbols[key] = sym
	return true
}

// Lookup resolves name by walking scopes from innermost to outermost.
func (t *SymbolTable) Lookup(name string) (*Symbol, bool) {
	key := strings.ToLower(name)
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if sym, ok := t.scopes[i].symbols[key]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupGlobal resolves name only in the outermost (global) scope, used by
// the `pasc symbols` command after analysis succeeds.
func (t *SymbolTable) LookupGlobal(name string) (*Symbol, bool) {
	key := strings.ToLower(name)
	sym, ok := t.scopes[0].symbols[key]
	return sym, ok
}

// GlobalNames returns every name declared in the global scope, in the
// iteration order of the underlying map (callers that need declaration
// order should track it themselves; this is used only for diagnostics).
func (t *SymbolTable) GlobalNames() []string {
	names := make([]string, 0, len(t.scopes[0].symbols))
	for _, sym := range t.scopes[0].symbols {
		names = append(names, sym.Name)
	}
	return names
}
