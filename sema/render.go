package sema

import (
	"fmt"
	"sort"
	"strings"
)

// Render formats table as the fixed-width {Name, Type, Init, Used, Scope,
// Line} listing the semantic sink requires, sorted by (scope, line).
func (st *SymbolTable) Render() string {
	entries := st.AllEntries()
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Scope != entries[j].Scope {
			return entries[i].Scope < entries[j].Scope
		}
		return entries[i].Line < entries[j].Line
	})

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-16s %-10s %-6s %-6s %-6s %s\n", "Name", "Type", "Init", "Used", "Scope", "Line")
	for _, e := range entries {
		fmt.Fprintf(&sb, "%-16s %-10s %-6t %-6t %-6d %d\n", e.Name, e.Type, e.IsInitialized, e.IsUsed, e.Scope, e.Line)
	}
	return sb.String()
}
