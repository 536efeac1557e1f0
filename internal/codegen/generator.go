// Package codegen lowers a type-checked Program into the textual
// instruction listing of spec.md §4.4, targeting the stack-based VM
// described there: an operand stack, a global segment, per-call
// activation frames, and a heap of ALLOCN blocks.
//
// Grounded on the teacher's internal/bytecode/compiler_core.go (globals
// map + locals slice + slot counters), adapted from binary opcode emission
// to the fixed textual mnemonics spec.md §6 requires verbatim.
package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pasc-lang/pasc/internal/ast"
	"github.com/pasc-lang/pasc/internal/errors"
)

// minTempSlots is the default size of the temp-slot pool; spec.md §4.4
// requires at least 4, extended on overflow by Generator.tempSlot.
const minTempSlots = 4

// Generator walks a validated Program and emits VM instruction lines.
type Generator struct {
	out []string

	globals     map[string]int // lowercase name -> offset
	globalOrder []string       // declaration order, for array-init emission
	globalType  map[string]*ast.Type

	retvalSlot int
	tempBase   int
	tempCount  int

	labelCounter int

	// Per-subprogram frame state, valid only while generating that body.
	frame      map[string]int // lowercase name -> frame offset (params negative)
	isFunc     bool
	funcName   string
	spillDepth int
}

// New creates a Generator with empty output.
func New() *Generator {
	return &Generator{
		globals:    make(map[string]int),
		globalType: make(map[string]*ast.Type),
		tempCount:  minTempSlots,
	}
}

func (g *Generator) emit(line string) { g.out = append(g.out, line) }

func (g *Generator) emitf(format string, args ...interface{}) {
	g.emit(fmt.Sprintf(format, args...))
}

// Generate lowers prog to its instruction listing.
func Generate(prog *ast.Program) ([]string, error) {
	g := New()
	if err := g.run(prog); err != nil {
		return nil, err
	}
	return g.out, nil
}

func (g *Generator) run(prog *ast.Program) error {
	g.layoutGlobals(prog.Block)

	g.emit("START")
	g.emit("JUMP MAIN")

	if err := g.emitSubprograms(prog.Block); err != nil {
		return err
	}

	g.emit("MAIN:")
	g.emitArrayInits()
	if err := g.genCompound(prog.Block.Body); err != nil {
		return err
	}
	g.emit("STOP")
	return nil
}

// layoutGlobals assigns consecutive offsets to every program-level
// variable, then reserves the return-value slot and the temp pool, per
// spec.md §4.4's "Global layout".
func (g *Generator) layoutGlobals(block *ast.Block) {
	offset := 0
	for _, vd := range block.VarDecls {
		for _, name := range vd.Names {
			key := strings.ToLower(name.Value)
			g.globals[key] = offset
			g.globalOrder = append(g.globalOrder, key)
			g.globalType[key] = vd.ResolvedType
			offset++
		}
	}
	g.retvalSlot = offset
	g.tempBase = offset + 1
}

// tempSlot returns the global offset of the depth-indexed spill slot,
// growing the pool if a deeper nesting than provisioned is encountered.
func (g *Generator) tempSlot(depth int) int {
	if depth >= g.tempCount {
		g.tempCount = depth + 1
	}
	return g.tempBase + depth
}

// emitArrayInits emits, for every global array, the PUSHI/ALLOCN/STOREG
// triple that turns its global slot into a heap base address.
func (g *Generator) emitArrayInits() {
	for _, key := range g.globalOrder {
		typ := g.globalType[key]
		if typ == nil || typ.Name != "array" {
			continue
		}
		size := typ.High - typ.Low + 1
		g.emitf("PUSHI %d", size)
		g.emit("ALLOCN")
		g.emitf("STOREG %d", g.globals[key])
	}
}

// emitSubprograms walks block's procedure and function declarations
// depth-first in source order, emitting each as a labeled routine. Nested
// subprograms (declared inside another subprogram's own block) are
// emitted before their enclosing routine's label, consistent with a
// depth-first traversal.
func (g *Generator) emitSubprograms(block *ast.Block) error {
	procs, funcs := block.ProcedureDecls, block.FunctionDecls
	for len(procs) > 0 || len(funcs) > 0 {
		if len(funcs) == 0 || (len(procs) > 0 && procs[0].Tok.Pos.Offset < funcs[0].Tok.Pos.Offset) {
			if err := g.emitSubprograms(procs[0].Block); err != nil {
				return err
			}
			if err := g.emitProcedure(procs[0]); err != nil {
				return err
			}
			procs = procs[1:]
			continue
		}
		if err := g.emitSubprograms(funcs[0].Block); err != nil {
			return err
		}
		if err := g.emitFunction(funcs[0]); err != nil {
			return err
		}
		funcs = funcs[1:]
	}
	return nil
}

// label derives a subprogram's VM label by stripping non-alphanumerics
// from its name and prefixing FN, per spec.md §4.4.
func label(name string) string {
	var b strings.Builder
	b.WriteString("FN")
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (g *Generator) newLabel(prefix string) string {
	g.labelCounter++
	return prefix + strconv.Itoa(g.labelCounter)
}

func (g *Generator) emitProcedure(pd *ast.ProcedureDecl) error {
	prevFrame, prevIsFunc, prevName := g.frame, g.isFunc, g.funcName
	g.frame = make(map[string]int)
	g.isFunc = false
	g.funcName = pd.Name.Value
	defer func() { g.frame, g.isFunc, g.funcName = prevFrame, prevIsFunc, prevName }()

	g.layoutFrame(pd.Params, pd.Block, false)

	g.emitf("%s:", label(pd.Name.Value))
	g.emitf("PUSHN %d", g.frameSize(pd.Block, false))
	if err := g.genCompound(pd.Block.Body); err != nil {
		return err
	}
	g.emit("RETURN")
	return nil
}

func (g *Generator) emitFunction(fd *ast.FunctionDecl) error {
	prevFrame, prevIsFunc, prevName := g.frame, g.isFunc, g.funcName
	g.frame = make(map[string]int)
	g.isFunc = true
	g.funcName = fd.Name.Value
	defer func() { g.frame, g.isFunc, g.funcName = prevFrame, prevIsFunc, prevName }()

	g.layoutFrame(fd.Params, fd.Block, true)

	g.emitf("%s:", label(fd.Name.Value))
	g.emitf("PUSHN %d", g.frameSize(fd.Block, true))
	if err := g.genCompound(fd.Block.Body); err != nil {
		return err
	}
	// Epilogue: copy the return slot (frame offset 1) to the global
	// return-value slot, then return.
	g.emit("PUSHL 1")
	g.emitf("STOREG %d", g.retvalSlot)
	g.emit("RETURN")
	return nil
}

// layoutFrame assigns frame offsets: parameters at -P..-1 in declaration
// order, then locals, with offset 0 always reserved as the frame base and
// never assigned to anything. For a procedure, declared locals start at
// offset 1. For a function, offset 1 is the implicit return slot (bound
// to the function's own name) and declared locals start at offset 2 —
// per spec.md §4.4's "Frame layout" and §8's offset-range property.
func (g *Generator) layoutFrame(params []*ast.Param, block *ast.Block, isFunc bool) {
	p := len(params)
	for i, param := range params {
		g.frame[strings.ToLower(param.Name.Value)] = -p + i
	}

	start := 1
	if isFunc {
		g.frame[strings.ToLower(g.funcName)] = 1
		start = 2
	}
	offset := start
	for _, vd := range block.VarDecls {
		for _, name := range vd.Names {
			g.frame[strings.ToLower(name.Value)] = offset
			offset++
		}
	}
}

func (g *Generator) frameSize(block *ast.Block, isFunc bool) int {
	nLocals := 0
	for _, vd := range block.VarDecls {
		nLocals += len(vd.Names)
	}
	if isFunc {
		return nLocals + 1 // offset 0 unused, offset 1 retslot, locals from 2
	}
	return nLocals // offset 0 unused, locals from 1
}

// genCodeGenError wraps an internal-invariant violation; these should be
// unreachable given a validated AST.
func (g *Generator) genCodeGenError(n ast.Node, format string, args ...interface{}) error {
	return errors.Gen(n.Pos(), fmt.Sprintf(format, args...), "", "")
}
