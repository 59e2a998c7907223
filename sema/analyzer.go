package sema

import (
	"github.com/lookbusy1344/alanppc/ast"
	"github.com/lookbusy1344/alanppc/config"
	"github.com/lookbusy1344/alanppc/diag"
)

// Analyzer walks a lowered AST, building a symbol table and a diagnostic
// log. One Analyzer is used per sub-program and discarded afterward (spec.md
// §5: no shared mutable state crosses sub-program boundaries).
type Analyzer struct {
	cfg   *config.Config
	table *SymbolTable
	stack []int
	next  int // next scope id to assign; 0 is reserved for "no scope" (Program)

	Log diag.Log

	erroredNames map[string]bool
}

// New constructs an Analyzer. cfg resolves the two open questions this
// component depends on: whether '+' concatenates strings, and whether
// reading an uninitialized variable warns.
func New(cfg *config.Config) *Analyzer {
	return &Analyzer{
		cfg:          cfg,
		table:        NewSymbolTable(),
		next:         1,
		erroredNames: make(map[string]bool),
	}
}

// Analyze checks program and returns its symbol table (suppressed to nil if
// any ERROR was recorded) alongside the diagnostic log.
func (a *Analyzer) Analyze(program *ast.Program) (*SymbolTable, *diag.Log) {
	if program == nil {
		a.Log.ErrorAt(0, 0, "missing AST: nothing to analyze")
		return nil, &a.Log
	}

	// The root Program node does not open a scope (spec.md §4.4); its Block
	// does, via checkBlock below.
	a.checkBlock(program.Body)

	if a.Log.HasErrors() {
		a.Log.Info("Semantic Analysis completed with errors")
		return nil, &a.Log
	}
	a.Log.Info("Semantic Analysis completed without errors")
	return a.table, &a.Log
}

func (a *Analyzer) pushScope() int {
	scope := a.next
	a.next++
	a.stack = append(a.stack, scope)
	return scope
}

func (a *Analyzer) popScope(scope int) {
	a.sweepUnused(scope)
	a.stack = a.stack[:len(a.stack)-1]
}

func (a *Analyzer) currentScope() int {
	if len(a.stack) == 0 {
		return -1
	}
	return a.stack[len(a.stack)-1]
}

func (a *Analyzer) sweepUnused(scope int) {
	for _, name := range a.table.AllNames() {
		e := a.table.DeclaredAtScope(name, scope)
		if e == nil || a.erroredNames[name] {
			continue
		}
		if !e.IsUsed {
			a.Log.WarnAt(e.Line, e.Column, "Variable '%s' declared but never used", name)
			if e.IsInitialized {
				a.Log.WarnAt(e.Line, e.Column, "Variable '%s' initialized but never used", name)
			}
		}
	}
}

func (a *Analyzer) checkBlock(b *ast.Block) {
	if b == nil {
		return
	}
	scope := a.pushScope()
	for _, stmt := range b.Statements {
		a.checkStatement(stmt, scope)
	}
	a.popScope(scope)
}

func (a *Analyzer) checkStatement(n ast.Node, scope int) {
	switch stmt := n.(type) {
	case *ast.VarDeclaration:
		a.checkVarDeclaration(stmt, scope)
	case *ast.AssignmentStatement:
		a.checkAssignment(stmt)
	case *ast.PrintStatement:
		a.typeOf(stmt.Expression)
	case *ast.IfStatement:
		a.checkCondition("If", stmt.Condition)
		a.checkBlock(stmt.ThenBranch)
		if stmt.ElseBranch != nil {
			a.checkBlock(stmt.ElseBranch)
		}
	case *ast.WhileStatement:
		a.checkCondition("While", stmt.Condition)
		a.checkBlock(stmt.Body)
	case *ast.Block:
		a.checkBlock(stmt)
	default:
		if n != nil {
			a.typeOf(n)
		}
	}
}

func (a *Analyzer) checkVarDeclaration(d *ast.VarDeclaration, scope int) {
	if existing := a.table.DeclaredAtScope(d.VarName, scope); existing != nil {
		a.Log.ErrorAt(d.Line, d.Column, "Redeclaration of '%s' in the same scope", d.VarName)
		a.erroredNames[d.VarName] = true
		return
	}

	e := &Entry{
		Name:   d.VarName,
		Type:   d.VarType.String(),
		Scope:  scope,
		Line:   d.Line,
		Column: d.Column,
	}
	a.table.Declare(e)

	if d.Init != nil {
		initType := a.typeOf(d.Init)
		if initType != "" && initType != e.Type {
			a.Log.ErrorAt(d.Line, d.Column,
				"Type mismatch in assignment: Cannot assign %s to %s", initType, e.Type)
		}
		e.IsInitialized = true
	}
}

func (a *Analyzer) checkAssignment(s *ast.AssignmentStatement) {
	var target *Entry
	if s.Identifier != nil {
		target = a.table.Lookup(s.Identifier.Name, a.stack)
		if target == nil {
			a.Log.ErrorAt(s.Identifier.Line, s.Identifier.Column,
				"Assignment to undeclared variable '%s'", s.Identifier.Name)
		}
	}

	rhsType := a.typeOf(s.Expression)

	if target != nil {
		target.IsInitialized = true
		if rhsType != "" && rhsType != target.Type {
			a.Log.ErrorAt(s.Line, s.Column,
				"Type mismatch in assignment: Cannot assign %s to %s", rhsType, target.Type)
		}
	}
}

func (a *Analyzer) checkCondition(kind string, cond *ast.BinaryExpression) {
	if cond == nil {
		return
	}
	t := a.typeOf(cond)
	if t != "boolean" && t != "" {
		a.Log.ErrorAt(cond.Line, cond.Column, "%s condition must be boolean, got %s", kind, t)
	}
}

// typeOf computes and records the type of an expression node, recursing
// into operands. It never returns an error value by itself; callers compare
// against the expected type and log mismatches.
func (a *Analyzer) typeOf(n ast.Node) string {
	switch expr := n.(type) {
	case *ast.IntegerLiteral:
		return "int"
	case *ast.StringLiteral:
		return "string"
	case *ast.BooleanLiteral:
		return "boolean"
	case *ast.Identifier:
		e := a.table.Lookup(expr.Name, a.stack)
		if e == nil {
			a.Log.ErrorAt(expr.Line, expr.Column, "Undefined variable '%s'", expr.Name)
			return ""
		}
		e.IsUsed = true
		if a.cfg != nil && a.cfg.Semantics.WarnUninitializedRead && !e.IsInitialized {
			a.Log.WarnAt(expr.Line, expr.Column, "Variable '%s' read before initialization", expr.Name)
		}
		return e.Type
	case *ast.BinaryExpression:
		return a.typeOfBinary(expr)
	default:
		return ""
	}
}

func (a *Analyzer) typeOfBinary(expr *ast.BinaryExpression) string {
	left := a.typeOf(expr.Left)
	right := a.typeOf(expr.Right)

	switch expr.Operator {
	case ast.OpAdd:
		if left == "int" && right == "int" {
			return "int"
		}
		if left == "string" && right == "string" {
			if a.cfg == nil || a.cfg.Semantics.AllowStringConcat {
				return "string"
			}
			a.Log.ErrorAt(expr.Line, expr.Column, "invalid operand types for +: string, string")
			return left
		}
		if left != "" && right != "" {
			a.Log.ErrorAt(expr.Line, expr.Column, "invalid operand types for +: %s, %s", left, right)
		}
		return left
	case ast.OpEquals, ast.OpNotEquals:
		if left != "" && right != "" && left != right {
			a.Log.ErrorAt(expr.Line, expr.Column, "Cannot compare %s with %s", left, right)
		}
		return "boolean"
	default:
		return ""
	}
}
