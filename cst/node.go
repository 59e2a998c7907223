// Package cst implements the concrete syntax tree produced by the parser:
// one node per grammar production, terminals retained verbatim so the tree
// can be pretty-printed back into something resembling the source.
package cst

import (
	"fmt"
	"strings"

	"github.com/lookbusy1344/alanppc/lexer"
)

// Node is a single concrete-syntax-tree node. Terminal nodes carry Tok and
// have no Children; non-terminal nodes carry Children and a nil Tok.
type Node struct {
	Name     string
	Tok      *lexer.Token
	Children []*Node
}

// NewTerminal builds a leaf node wrapping a single consumed token.
func NewTerminal(name string, tok lexer.Token) *Node {
	t := tok
	return &Node{Name: name, Tok: &t}
}

// NewNonTerminal builds an interior node from its production name and the
// already-built children (terminals and sub-productions) in source order.
func NewNonTerminal(name string, children ...*Node) *Node {
	return &Node{Name: name, Children: children}
}

// Append adds a child node, skipping nils so callers can build child lists
// conditionally without an extra check at every call site.
func (n *Node) Append(child *Node) {
	if child == nil {
		return
	}
	n.Children = append(n.Children, child)
}

// Dump renders an indented tree: one line per node, node name alone for
// non-terminals, "name: lexeme" for terminals.
func (n *Node) Dump(indent string) string {
	if n == nil {
		return indent + "<nil>\n"
	}
	var sb strings.Builder
	n.dump(&sb, indent)
	return sb.String()
}

func (n *Node) dump(sb *strings.Builder, indent string) {
	if n.Tok != nil {
		fmt.Fprintf(sb, "%s%s: %s\n", indent, n.Name, n.Tok.Lexeme)
		return
	}
	fmt.Fprintf(sb, "%s%s\n", indent, n.Name)
	for _, c := range n.Children {
		c.dump(sb, indent+"  ")
	}
}

// FirstToken returns the leftmost token under n, used by AST lowering to
// recover a position for productions that don't carry one directly.
func (n *Node) FirstToken() *lexer.Token {
	if n == nil {
		return nil
	}
	if n.Tok != nil {
		return n.Tok
	}
	for _, c := range n.Children {
		if t := c.FirstToken(); t != nil {
			return t
		}
	}
	return nil
}
