// Package sema implements the scope-stack symbol table and the type/scope
// checker that walks the AST after lowering.
package sema

import "sort"

// Entry is one symbol-table row: a declaration of a name within a scope.
type Entry struct {
	Name          string
	Type          string // "int" | "string" | "boolean" | "unknown"
	Scope         int
	Line          int
	Column        int
	IsInitialized bool
	IsUsed        bool
}

// SymbolTable maps a name to the ordered list of entries declared for it,
// one per scope in which it was declared (spec.md §3's "ordered list of
// entries per name" generalization of a flat label table).
type SymbolTable struct {
	entries map[string][]*Entry
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{entries: make(map[string][]*Entry)}
}

// Declare appends a new entry for name, used once the caller has already
// verified no entry exists at the same scope.
func (st *SymbolTable) Declare(e *Entry) {
	st.entries[e.Name] = append(st.entries[e.Name], e)
}

// EntriesFor returns every entry recorded for name, across all scopes, in
// declaration order.
func (st *SymbolTable) EntriesFor(name string) []*Entry {
	return st.entries[name]
}

// DeclaredAtScope returns the entry for name declared exactly at scope, or
// nil if none exists.
func (st *SymbolTable) DeclaredAtScope(name string, scope int) *Entry {
	for _, e := range st.entries[name] {
		if e.Scope == scope {
			return e
		}
	}
	return nil
}

// Lookup resolves name by walking the scope stack from innermost to
// outermost, returning the first entry whose Scope is on the stack. This
// yields lexical scoping with inner shadowing (spec.md §4.4).
func (st *SymbolTable) Lookup(name string, stack []int) *Entry {
	for i := len(stack) - 1; i >= 0; i-- {
		scope := stack[i]
		for _, e := range st.entries[name] {
			if e.Scope == scope {
				return e
			}
		}
	}
	return nil
}

// AllNames returns every declared name, for deterministic iteration when
// producing a sorted dump.
func (st *SymbolTable) AllNames() []string {
	names := make([]string, 0, len(st.entries))
	for name := range st.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AllEntries returns every entry across every name, unsorted.
func (st *SymbolTable) AllEntries() []*Entry {
	var all []*Entry
	for _, list := range st.entries {
		all = append(all, list...)
	}
	return all
}
