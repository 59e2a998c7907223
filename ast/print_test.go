package ast_test

import (
	"strings"
	"testing"

	"github.com/lookbusy1344/alanppc/ast"
	"github.com/lookbusy1344/alanppc/lexer"
	"github.com/lookbusy1344/alanppc/parser"
)

func TestPrint_VarDeclaration(t *testing.T) {
	l := lexer.New(`{ int a }$`)
	toks := l.TokenizeAll()
	p := parser.New(toks)
	root, _ := p.Parse()
	program := ast.Lower(root)

	out := ast.Print(program)

	for _, want := range []string{"< PROGRAM >", "< BLOCK >", "< Variable Declaration >", "--[ int ]", "--[ a ]"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestPrint_BinaryExpressionShowsOperator(t *testing.T) {
	l := lexer.New(`{ boolean b b = 1 == 1 }$`)
	toks := l.TokenizeAll()
	p := parser.New(toks)
	root, _ := p.Parse()
	program := ast.Lower(root)

	out := ast.Print(program)
	if !strings.Contains(out, "< Binary Expression >") {
		t.Errorf("expected output to contain binary expression node, got:\n%s", out)
	}
	if !strings.Contains(out, "--[ == ]") {
		t.Errorf("expected output to contain the == operator, got:\n%s", out)
	}
}
