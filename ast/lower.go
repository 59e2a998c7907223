package ast

import (
	"strconv"
	"strings"

	"github.com/lookbusy1344/alanppc/cst"
)

// Lower translates a CST rooted at "Program" into its AST. A nil CST yields
// a nil AST; the analyzer treats that as a missing-AST error rather than
// lowering trying to recover structure that was never parsed.
func Lower(root *cst.Node) *Program {
	if root == nil {
		return nil
	}
	blockNode := findChild(root, "Block")
	line, col := nodePos(root)
	return &Program{pos: pos{Line: line, Column: col}, Body: lowerBlock(blockNode)}
}

func nodePos(n *cst.Node) (int, int) {
	if n == nil {
		return 0, 0
	}
	if t := n.FirstToken(); t != nil {
		return t.Line, t.Column
	}
	return 0, 0
}

func findChild(n *cst.Node, name string) *cst.Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func findChildren(n *cst.Node, names ...string) []*cst.Node {
	if n == nil {
		return nil
	}
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	var out []*cst.Node
	for _, c := range n.Children {
		if set[c.Name] {
			out = append(out, c)
		}
	}
	return out
}

// lowerBlock lowers a Block CST node's statement children in order; braces
// are concrete-only and contribute nothing to the AST.
func lowerBlock(n *cst.Node) *Block {
	line, col := nodePos(n)
	b := &Block{pos: pos{Line: line, Column: col}}
	if n == nil {
		return b
	}
	for _, c := range n.Children {
		if stmt := lowerStatement(c); stmt != nil {
			b.Statements = append(b.Statements, stmt)
		}
	}
	return b
}

func lowerStatement(n *cst.Node) Node {
	if n == nil {
		return nil
	}
	switch n.Name {
	case "VariableDeclaration":
		return lowerVarDeclaration(n)
	case "AssignmentStatement":
		return lowerAssignment(n)
	case "PrintStatement":
		return lowerPrint(n)
	case "IfStatement":
		return lowerIf(n)
	case "WhileStatement":
		return lowerWhile(n)
	case "ExpressionStatement":
		return lowerExpressionChild(n)
	case "Block":
		return lowerBlock(n)
	default:
		return nil
	}
}

func lowerVarDeclaration(n *cst.Node) Node {
	line, col := nodePos(n)
	d := &VarDeclaration{pos: pos{Line: line, Column: col}}

	if typeNode := findChild(n, "IntType"); typeNode != nil {
		d.VarType = TypeInt
	} else if typeNode := findChild(n, "StringType"); typeNode != nil {
		d.VarType = TypeString
	} else if typeNode := findChild(n, "BooleanType"); typeNode != nil {
		d.VarType = TypeBoolean
	} else {
		d.VarType = TypeUnknown
	}

	if ident := findChild(n, "Identifier"); ident != nil && ident.Tok != nil {
		d.VarName = ident.Tok.Lexeme
	}

	if expr := findChild(n, "Expression"); expr != nil {
		d.Init = lowerExpression(expr)
	}
	return d
}

func lowerAssignment(n *cst.Node) Node {
	line, col := nodePos(n)
	a := &AssignmentStatement{pos: pos{Line: line, Column: col}}

	idents := findChildren(n, "Identifier")
	if len(idents) > 0 && idents[0].Tok != nil {
		t := idents[0]
		iline, icol := nodePos(t)
		a.Identifier = &Identifier{pos: pos{Line: iline, Column: icol}, Name: t.Tok.Lexeme}
	}

	if expr := findChild(n, "Expression"); expr != nil {
		a.Expression = lowerExpression(expr)
	} else if str := findChild(n, "StringLiteral"); str != nil {
		a.Expression = lowerStringLiteral(str)
	}
	return a
}

func lowerPrint(n *cst.Node) Node {
	line, col := nodePos(n)
	p := &PrintStatement{pos: pos{Line: line, Column: col}}

	if str := findChild(n, "StringLiteral"); str != nil {
		p.Expression = lowerStringLiteral(str)
	} else if expr := findChild(n, "Expression"); expr != nil {
		p.Expression = lowerExpression(expr)
	} else {
		p.Expression = &StringLiteral{pos: pos{Line: line, Column: col}, Value: ""}
	}
	return p
}

func lowerIf(n *cst.Node) Node {
	line, col := nodePos(n)
	s := &IfStatement{pos: pos{Line: line, Column: col}}

	if expr := findChild(n, "Expression"); expr != nil {
		s.Condition = asBinaryExpression(lowerExpression(expr), n)
	}

	blocks := findChildren(n, "Block")
	if len(blocks) > 0 {
		s.ThenBranch = lowerBlock(blocks[0])
	}
	if hasElse(n) && len(blocks) > 1 {
		s.ElseBranch = lowerBlock(blocks[1])
	}
	return s
}

func hasElse(n *cst.Node) bool {
	return findChild(n, "ElseKeyword") != nil
}

func lowerWhile(n *cst.Node) Node {
	line, col := nodePos(n)
	s := &WhileStatement{pos: pos{Line: line, Column: col}}

	if expr := findChild(n, "Expression"); expr != nil {
		s.Condition = asBinaryExpression(lowerExpression(expr), n)
	}
	if block := findChild(n, "Block"); block != nil {
		s.Body = lowerBlock(block)
	}
	return s
}

// asBinaryExpression wraps a non-comparison condition expression (e.g. a
// bare boolean identifier or literal) in an implicit "== true" comparison so
// If/While always carry a BinaryExpression condition per the AST's shape.
func asBinaryExpression(n Node, owner *cst.Node) *BinaryExpression {
	if be, ok := n.(*BinaryExpression); ok {
		return be
	}
	line, col := nodePos(owner)
	if n != nil {
		line, col = n.Pos()
	}
	return &BinaryExpression{
		pos:      pos{Line: line, Column: col},
		Operator: OpEquals,
		Left:     n,
		Right:    &BooleanLiteral{pos: pos{Line: line, Column: col}, Value: true},
	}
}

// lowerExpressionChild unwraps a bare "ExpressionStatement" into its
// underlying expression node (used for expression statements with no
// assignment, e.g. a lone identifier left as a statement).
func lowerExpressionChild(n *cst.Node) Node {
	if expr := findChild(n, "Expression"); expr != nil {
		return lowerExpression(expr)
	}
	return nil
}

// lowerExpression unwraps the Expression -> BooleanExpression/StringExpression
// -> primary chain, collapsing wrapper productions with a single alternative
// per spec: BooleanExpression becomes BinaryExpression (==, !=), StringExpression
// becomes BinaryExpression (+) when it has an operator child, otherwise it
// passes through to its single operand.
func lowerExpression(n *cst.Node) Node {
	if n == nil {
		return nil
	}
	if n.Name == "Expression" {
		if len(n.Children) == 1 {
			return lowerExpression(n.Children[0])
		}
		return nil
	}

	switch n.Name {
	case "BooleanExpression":
		return lowerBooleanExpression(n)
	case "StringExpression":
		return lowerStringExpression(n)
	case "Grouping":
		if expr := findChild(n, "Expression"); expr != nil {
			return lowerExpression(expr)
		}
		return nil
	default:
		return lowerPrimary(n)
	}
}

func lowerBooleanExpression(n *cst.Node) Node {
	line, col := nodePos(n)
	op := OpEquals
	if findChild(n, "NotEquals") != nil {
		op = OpNotEquals
	}

	operands := nonOperatorChildren(n)
	be := &BinaryExpression{pos: pos{Line: line, Column: col}, Operator: op}
	if len(operands) > 0 {
		be.Left = lowerExpression(operands[0])
	}
	if len(operands) > 1 {
		be.Right = lowerExpression(operands[1])
	}
	return be
}

// lowerStringExpression lowers "term" nodes: a chain of '+'-joined factors
// left-associatively folded into nested BinaryExpression(+) nodes, or the
// single operand itself when there is no '+'.
func lowerStringExpression(n *cst.Node) Node {
	operands := nonOperatorChildren(n)
	if len(operands) == 1 {
		return lowerExpression(operands[0])
	}

	line, col := nodePos(n)
	var result Node
	for i, operand := range operands {
		lowered := lowerExpression(operand)
		if i == 0 {
			result = lowered
			continue
		}
		result = &BinaryExpression{
			pos:      pos{Line: line, Column: col},
			Operator: OpAdd,
			Left:     result,
			Right:    lowered,
		}
	}
	return result
}

func nonOperatorChildren(n *cst.Node) []*cst.Node {
	var out []*cst.Node
	for _, c := range n.Children {
		switch c.Name {
		case "Equals", "NotEquals", "Plus":
			continue
		default:
			out = append(out, c)
		}
	}
	return out
}

func lowerPrimary(n *cst.Node) Node {
	line, col := nodePos(n)
	switch n.Name {
	case "Digit":
		v, _ := strconv.Atoi(n.Tok.Lexeme)
		return &IntegerLiteral{pos: pos{Line: line, Column: col}, Value: v}
	case "BooleanLiteral":
		return &BooleanLiteral{pos: pos{Line: line, Column: col}, Value: n.Tok.Lexeme == "true"}
	case "Identifier":
		return &Identifier{pos: pos{Line: line, Column: col}, Name: n.Tok.Lexeme}
	case "StringLiteral":
		return lowerStringLiteral(n)
	default:
		return nil
	}
}

// lowerStringLiteral reconstructs the literal's text from its CHAR token
// children, discarding the surrounding QUOTE terminals.
func lowerStringLiteral(n *cst.Node) Node {
	line, col := nodePos(n)
	var sb strings.Builder
	for _, c := range n.Children {
		if c.Name == "Char" && c.Tok != nil {
			sb.WriteString(c.Tok.Lexeme)
		}
	}
	return &StringLiteral{pos: pos{Line: line, Column: col}, Value: sb.String()}
}
