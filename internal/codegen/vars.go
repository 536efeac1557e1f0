package codegen

import "strings"

// loadPlace emits code that pushes the current value of a named variable
// (global or local/param) onto the operand stack.
func (g *Generator) loadPlace(name string) {
	key := strings.ToLower(name)
	if offset, ok := g.frame[key]; ok {
		g.emitf("PUSHL %d", offset)
		return
	}
	g.emitf("PUSHG %d", g.globals[key])
}

// storePlace emits the matching store for loadPlace, consuming the
// top-of-stack value.
func (g *Generator) storePlace(name string) {
	key := strings.ToLower(name)
	if offset, ok := g.frame[key]; ok {
		g.emitf("STOREL %d", offset)
		return
	}
	g.emitf("STOREG %d", g.globals[key])
}

// adjustIndex emits the low-bound subtraction required before
// LOADN/STOREN/CHARAT, assuming the raw index value is already on top of
// the stack. Omitted when low is zero, per spec.md §4.4.
func (g *Generator) adjustIndex(low int) {
	if low == 0 {
		return
	}
	g.emitf("PUSHI %d", low)
	g.emit("SUB")
}
