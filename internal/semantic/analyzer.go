// Package semantic walks a parsed Program, builds its symbol table, and
// checks the type rules of spec.md §4.3, grounded on the teacher's
// internal/semantic/analyzer.go scope-stack / fresh-scope-per-subprogram
// idiom (stripped down to this language's small, closed type universe).
package semantic

import (
	"fmt"
	"strings"

	"github.com/pasc-lang/pasc/internal/ast"
	"github.com/pasc-lang/pasc/internal/errors"
)

func normalizeName(name string) string { return strings.ToLower(name) }

var (
	integerType = &ast.Type{Name: "integer"}
	realType    = &ast.Type{Name: "real"}
	booleanType = &ast.Type{Name: "boolean"}
	stringType  = &ast.Type{Name: "string"}
)

// Analyzer performs semantic analysis over a single Program.
type Analyzer struct {
	Symbols *SymbolTable

	source string
	file   string

	// signatures records parameter types per declared procedure/function
	// (keyed case-insensitively), so calls can be arity- and type-checked
	// against their declaration.
	signatures map[string][]*ast.Type

	// currentFunction is non-nil while analyzing a function body. Nothing
	// reads it: `FuncName := expr` type-checks through the implicit return
	// symbol declared in the function's scope.
	currentFunction *ast.FunctionDecl
}

// New creates an Analyzer over the given source text (kept for error
// formatting) and file name.
func New(source, file string) *Analyzer {
	return &Analyzer{
		Symbols:    NewSymbolTable(),
		source:     source,
		file:       file,
		signatures: make(map[string][]*ast.Type),
	}
}

// Analyze type-checks prog, populating a.Symbols. It halts and returns the
// first SemanticError encountered.
func (a *Analyzer) Analyze(prog *ast.Program) error {
	return a.analyzeBlock(prog.Block)
}

func (a *Analyzer) semErr(pos ast.Node, format string, args ...interface{}) error {
	return errors.Sem(pos.Pos(), fmt.Sprintf(format, args...), a.source, a.file)
}

// analyzeBlock implements the walk order of spec.md §4.3: declare all
// block variables, then visit subprograms in source order (each in a
// pushed scope), then check statements.
func (a *Analyzer) analyzeBlock(block *ast.Block) error {
	for _, vd := range block.VarDecls {
		if err := a.declareVarDecl(vd); err != nil {
			return err
		}
	}

	procs, funcs := block.ProcedureDecls, block.FunctionDecls
	for len(procs) > 0 || len(funcs) > 0 {
		if len(funcs) == 0 || (len(procs) > 0 && procs[0].Tok.Pos.Offset < funcs[0].Tok.Pos.Offset) {
			if err := a.analyzeProcedureDecl(procs[0]); err != nil {
				return err
			}
			procs = procs[1:]
			continue
		}
		if err := a.analyzeFunctionDecl(funcs[0]); err != nil {
			return err
		}
		funcs = funcs[1:]
	}

	return a.analyzeCompound(block.Body)
}

func (a *Analyzer) declareVarDecl(vd *ast.VarDecl) error {
	typ := resolveTypeExpr(vd.Type)
	vd.ResolvedType = typ
	for _, name := range vd.Names {
		sym := &Symbol{Name: name.Value, Type: typ, Kind: VarSymbol, IsGlobal: a.Symbols.InGlobalScope()}
		if !a.Symbols.Declare(name.Value, sym) {
			return a.semErr(name, "redeclared identifier %q", name.Value)
		}
	}
	return nil
}

func resolveTypeExpr(te *ast.TypeExpr) *ast.Type {
	if te.Name != "array" {
		switch te.Name {
		case "integer":
			return integerType
		case "real":
			return realType
		case "boolean":
			return booleanType
		case "string":
			return stringType
		}
	}
	return &ast.Type{Name: "array", Low: te.Low, High: te.High, Elem: resolveTypeExpr(te.Elem)}
}

func (a *Analyzer) analyzeProcedureDecl(pd *ast.ProcedureDecl) error {
	if !a.Symbols.Declare(pd.Name.Value, &Symbol{Name: pd.Name.Value, Kind: ProcSymbol}) {
		return a.semErr(pd.Name, "redeclared identifier %q", pd.Name.Value)
	}
	a.Symbols.Push()
	defer a.Symbols.Pop()

	var paramTypes []*ast.Type
	for _, param := range pd.Params {
		typ := resolveTypeExpr(param.Type)
		paramTypes = append(paramTypes, typ)
		if !a.Symbols.Declare(param.Name.Value, &Symbol{Name: param.Name.Value, Type: typ, Kind: ParamSymbol}) {
			return a.semErr(param.Name, "redeclared identifier %q", param.Name.Value)
		}
	}
	a.signatures[normalizeName(pd.Name.Value)] = paramTypes
	return a.analyzeBlock(pd.Block)
}

func (a *Analyzer) analyzeFunctionDecl(fd *ast.FunctionDecl) error {
	retType := resolveTypeExpr(fd.ReturnType)
	if !a.Symbols.Declare(fd.Name.Value, &Symbol{Name: fd.Name.Value, Type: retType, Kind: FuncSymbol}) {
		return a.semErr(fd.Name, "redeclared identifier %q", fd.Name.Value)
	}
	a.Symbols.Push()
	defer a.Symbols.Pop()

	var paramTypes []*ast.Type
	for _, param := range fd.Params {
		typ := resolveTypeExpr(param.Type)
		paramTypes = append(paramTypes, typ)
		if !a.Symbols.Declare(param.Name.Value, &Symbol{Name: param.Name.Value, Type: typ, Kind: ParamSymbol}) {
			return a.semErr(param.Name, "redeclared identifier %q", param.Name.Value)
		}
	}
	a.signatures[normalizeName(fd.Name.Value)] = paramTypes
	// Implicit return symbol named after the function itself.
	if !a.Symbols.Declare(fd.Name.Value, &Symbol{Name: fd.Name.Value, Type: retType, Kind: VarSymbol}) {
		return a.semErr(fd.Name, "redeclared identifier %q", fd.Name.Value)
	}

	prevFunc := a.currentFunction
	a.currentFunction = fd
	defer func() { a.currentFunction = prevFunc }()

	return a.analyzeBlock(fd.Block)
}
