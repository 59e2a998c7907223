// Package codegen walks a semantically-valid AST and emits a fixed
// 256-byte 6502-family image: code, a reserved static-variable region, and
// a heap-allocated string pool, with back-patched addresses throughout.
package codegen

import (
	"fmt"

	"github.com/lookbusy1344/alanppc/ast"
	"github.com/lookbusy1344/alanppc/config"
	"github.com/lookbusy1344/alanppc/diag"
)

// Placeholder is a 2-byte little-endian slot in the code stream that will
// be overwritten with a declaration's resolved address once every
// declaration has been processed (spec.md §3's "placeholders" list).
type Placeholder struct {
	Tag        string
	ByteOffset int
}

// staticVar is one VarDeclaration's slot: tag is the back-patch key, scope
// disambiguates shadowed declarations of the same name (spec.md §8
// scenario 5).
type staticVar struct {
	Name  string
	Scope int
	Tag   string
	Addr  uint16
	Type  ast.VarType
}

// MapEntry is one row of the memory map sink: a static variable or string
// literal and the address it was assigned.
type MapEntry struct {
	Name      string
	Address   uint16
	IsLiteral bool
}

// Generator holds all per-sub-program code-generation state (spec.md §3's
// "Code-generator state"). One Generator is used per sub-program and
// discarded afterward.
type Generator struct {
	cfg *config.Config

	code    [256]byte
	codeLen int

	statics []staticVar
	tagAddr map[string]uint16

	stringPool  map[string]uint16
	poolOrder   []string
	knownString map[string]string // variable name -> statically-known text, for constant-folded '+'

	placeholders []Placeholder

	currentHeapAddress uint16
	tempCounter        int
	currentScope       int
	scopeStack         []int
	nextScopeID        int

	Log diag.Log
}

// New constructs a Generator seeded with the reserved "true"/"false" string
// pool entries and the configured static/heap region boundaries.
func New(cfg *config.Config) *Generator {
	g := &Generator{cfg: cfg}
	g.reset()
	return g
}

func (g *Generator) reset() {
	g.code = [256]byte{}
	g.codeLen = 0
	g.statics = nil
	g.tagAddr = make(map[string]uint16)
	g.stringPool = map[string]uint16{
		"true":  trueAddress,
		"false": falseAddress,
	}
	g.poolOrder = nil
	g.knownString = make(map[string]string)
	g.placeholders = nil
	g.currentHeapAddress = g.cfg.Memory.HeapStart
	g.tempCounter = 0
	g.currentScope = -1
	g.scopeStack = nil
	g.nextScopeID = 1
	g.Log = diag.Log{}
}

// Generate emits the 256-byte image for program, returning it along with
// the static/string memory map. program must already be semantically
// valid; an undefined variable reaching codegen aborts generation for this
// sub-program with a minimal [BRK] image (spec.md §7).
func (g *Generator) Generate(program *ast.Program) ([256]byte, []MapEntry, *diag.Log) {
	g.reset()

	ok := g.run(program)
	if !ok {
		g.code = [256]byte{}
		g.code[0] = opBRK
		g.Log.Info("Code Generation complete")
		return g.code, g.memoryMap(), &g.Log
	}

	g.resolvePlaceholders()
	g.writeStringPool()
	g.Log.Info("Code Generation complete")
	return g.code, g.memoryMap(), &g.Log
}

func (g *Generator) run(program *ast.Program) bool {
	if program == nil {
		g.Log.ErrorAt(0, 0, "missing AST: nothing to generate")
		return false
	}

	g.emitByte(opLDAImmediate)
	g.emitByte(0x00)

	g.emitBlock(program.Body)
	g.emitByte(opBRK)

	if g.codeLen > int(g.cfg.Memory.StaticStart) {
		g.Log.ErrorAt(0, 0, "generated code (%d bytes) overflows the static region starting at 0x%04X",
			g.codeLen, g.cfg.Memory.StaticStart)
		return false
	}
	return !g.Log.HasErrors()
}

func (g *Generator) memoryMap() []MapEntry {
	var entries []MapEntry
	for _, sv := range g.statics {
		entries = append(entries, MapEntry{Name: sv.Name, Address: sv.Addr})
	}
	for _, lit := range g.poolOrder {
		entries = append(entries, MapEntry{Name: lit, Address: g.stringPool[lit], IsLiteral: true})
	}
	return entries
}

func (g *Generator) emitByte(b byte) {
	if g.codeLen < len(g.code) {
		g.code[g.codeLen] = b
	}
	g.codeLen++
}

// emitAddressPlaceholder reserves a 2-byte little-endian slot for tag's
// eventual static address, recording it for the final back-patch pass.
func (g *Generator) emitAddressPlaceholder(tag string) {
	g.placeholders = append(g.placeholders, Placeholder{Tag: tag, ByteOffset: g.codeLen})
	g.emitByte(0x00)
	g.emitByte(0x00)
}

func (g *Generator) resolvePlaceholders() {
	for _, ph := range g.placeholders {
		addr, ok := g.tagAddr[ph.Tag]
		if !ok || ph.ByteOffset+1 >= len(g.code) {
			continue
		}
		g.code[ph.ByteOffset] = byte(addr & 0xFF)
		g.code[ph.ByteOffset+1] = byte((addr >> 8) & 0xFF)
	}
}

func (g *Generator) writeStringPool() {
	for lit, addr := range g.stringPool {
		g.writeLiteralAt(lit, addr)
	}
}

func (g *Generator) writeLiteralAt(lit string, addr uint16) {
	i := int(addr)
	for _, ch := range []byte(lit) {
		if i >= len(g.code) {
			return
		}
		g.code[i] = ch
		i++
	}
	if i < len(g.code) {
		g.code[i] = 0x00
	}
}

// internString returns lit's pool address, allocating one on first use.
func (g *Generator) internString(lit string) uint16 {
	if addr, ok := g.stringPool[lit]; ok {
		return addr
	}
	addr := g.currentHeapAddress
	g.stringPool[lit] = addr
	g.poolOrder = append(g.poolOrder, lit)
	g.currentHeapAddress += uint16(len(lit) + 1)
	if addr < trueAddress && g.currentHeapAddress > trueAddress {
		g.Log.WarnAt(0, 0, "string pool entry %q may collide with reserved boolean text", lit)
	}
	return addr
}

// pushScope enters a new block scope, mirroring sema's monotonic-counter
// discipline so codegen independently derives the same nesting structure
// while walking the same AST shape.
func (g *Generator) pushScope() int {
	scope := g.nextScopeID
	g.nextScopeID++
	g.scopeStack = append(g.scopeStack, scope)
	g.currentScope = scope
	return scope
}

func (g *Generator) popScope() {
	g.scopeStack = g.scopeStack[:len(g.scopeStack)-1]
	if len(g.scopeStack) > 0 {
		g.currentScope = g.scopeStack[len(g.scopeStack)-1]
	} else {
		g.currentScope = -1
	}
}

// declareStatic records a new VarDeclaration's static slot in the current
// scope, assigning it the next unused address in the static region.
func (g *Generator) declareStatic(name string, varType ast.VarType) (tag string, addr uint16) {
	tag = fmt.Sprintf("T%d", g.tempCounter)
	g.tempCounter++
	addr = g.cfg.Memory.StaticStart + uint16(len(g.statics))
	g.statics = append(g.statics, staticVar{Name: name, Scope: g.currentScope, Tag: tag, Addr: addr, Type: varType})
	g.tagAddr[tag] = addr
	return tag, addr
}

// lookupStatic resolves name by walking the scope stack innermost-first,
// the same lexical-shadowing rule sema.SymbolTable.Lookup applies.
func (g *Generator) lookupStatic(name string) (staticVar, bool) {
	for i := len(g.scopeStack) - 1; i >= 0; i-- {
		scope := g.scopeStack[i]
		for j := len(g.statics) - 1; j >= 0; j-- {
			if g.statics[j].Name == name && g.statics[j].Scope == scope {
				return g.statics[j], true
			}
		}
	}
	return staticVar{}, false
}
