package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookbusy1344/alanppc/lexer"
	"github.com/lookbusy1344/alanppc/parser"
)

func parse(t *testing.T, src string) (*parser.Parser, string) {
	t.Helper()
	l := lexer.New(src)
	toks := l.TokenizeAll()
	require.False(t, l.Log.HasErrors(), "lexer errors: %v", l.Log.Entries)
	p := parser.New(toks)
	root, log := p.Parse()
	return p, root.Dump("") + log.Render(false)
}

func TestParser_EmptyBlock(t *testing.T) {
	l := lexer.New("{}$")
	toks := l.TokenizeAll()
	p := parser.New(toks)
	root, log := p.Parse()

	require.NotNil(t, root)
	assert.False(t, log.HasErrors())
	assert.Equal(t, "Program", root.Name)
	require.Len(t, root.Children, 2)
	block := root.Children[0]
	assert.Equal(t, "Block", block.Name)
	assert.Len(t, block.Children, 2) // LBrace, RBrace only
}

func TestParser_VarDeclAndAssignmentAndPrint(t *testing.T) {
	l := lexer.New(`{ int a a = 3 print(a) }$`)
	toks := l.TokenizeAll()
	p := parser.New(toks)
	root, log := p.Parse()

	require.NotNil(t, root)
	assert.False(t, log.HasErrors())

	block := root.Children[0]
	// LBrace, VariableDeclaration, AssignmentStatement, PrintStatement, RBrace
	require.Len(t, block.Children, 5)
	assert.Equal(t, "VariableDeclaration", block.Children[1].Name)
	assert.Equal(t, "AssignmentStatement", block.Children[2].Name)
	assert.Equal(t, "PrintStatement", block.Children[3].Name)
}

func TestParser_IfElse(t *testing.T) {
	l := lexer.New(`{ if (1 == 1) { print("hi") } else { print("hi") } }$`)
	toks := l.TokenizeAll()
	p := parser.New(toks)
	root, log := p.Parse()
	require.NotNil(t, root)
	assert.False(t, log.HasErrors())

	ifNode := root.Children[0].Children[1]
	assert.Equal(t, "IfStatement", ifNode.Name)
	var hasElse bool
	for _, c := range ifNode.Children {
		if c.Name == "ElseKeyword" {
			hasElse = true
		}
	}
	assert.True(t, hasElse)
}

func TestParser_While(t *testing.T) {
	l := lexer.New(`{ while (1 != 1) { } }$`)
	toks := l.TokenizeAll()
	p := parser.New(toks)
	root, log := p.Parse()
	require.NotNil(t, root)
	assert.False(t, log.HasErrors())
	assert.Equal(t, "WhileStatement", root.Children[0].Children[1].Name)
}

func TestParser_MissingClosingBraceRecordsError(t *testing.T) {
	l := lexer.New(`{ int a $`)
	toks := l.TokenizeAll()
	p := parser.New(toks)
	root, log := p.Parse()
	require.NotNil(t, root)
	assert.True(t, log.HasErrors())
}

func TestParser_NestedScopeBlock(t *testing.T) {
	l := lexer.New(`{ int a { int a } }$`)
	toks := l.TokenizeAll()
	p := parser.New(toks)
	root, log := p.Parse()
	require.NotNil(t, root)
	assert.False(t, log.HasErrors())

	outer := root.Children[0]
	require.Len(t, outer.Children, 4) // LBrace, VarDecl, Block, RBrace
	assert.Equal(t, "Block", outer.Children[2].Name)
}

func TestParser_RecoversAfterBadStatement(t *testing.T) {
	// 'int 3' is missing its identifier -> parser error, but the parser should
	// still go on to parse the following print statement.
	_, dumped := parse(t, `{ int 3 print(1) }$`)
	assert.Contains(t, dumped, "[ERROR]")
	assert.Contains(t, dumped, "PrintStatement")
}
