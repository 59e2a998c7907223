// Package ast defines the abstract syntax tree and the CST-to-AST lowering
// pass: concrete nodes (braces, parens, keywords) are discarded, and only
// semantically meaningful structure survives.
package ast

// NodeKind tags which AST variant a Node value holds.
type NodeKind int

const (
	KindProgram NodeKind = iota
	KindBlock
	KindVarDeclaration
	KindPrintStatement
	KindWhileStatement
	KindIfStatement
	KindAssignmentStatement
	KindBinaryExpression
	KindIdentifier
	KindIntegerLiteral
	KindStringLiteral
	KindBooleanLiteral
)

func (k NodeKind) String() string {
	switch k {
	case KindProgram:
		return "Program"
	case KindBlock:
		return "Block"
	case KindVarDeclaration:
		return "VarDeclaration"
	case KindPrintStatement:
		return "PrintStatement"
	case KindWhileStatement:
		return "WhileStatement"
	case KindIfStatement:
		return "IfStatement"
	case KindAssignmentStatement:
		return "AssignmentStatement"
	case KindBinaryExpression:
		return "BinaryExpression"
	case KindIdentifier:
		return "Identifier"
	case KindIntegerLiteral:
		return "IntegerLiteral"
	case KindStringLiteral:
		return "StringLiteral"
	case KindBooleanLiteral:
		return "BooleanLiteral"
	default:
		return "Unknown"
	}
}

// Node is implemented by every AST variant.
type Node interface {
	Kind() NodeKind
	Pos() (line, column int)
}

type pos struct {
	Line   int
	Column int
}

func (p pos) Pos() (int, int) { return p.Line, p.Column }

// VarType enumerates the three Alan++ value types.
type VarType int

const (
	TypeUnknown VarType = iota
	TypeInt
	TypeString
	TypeBoolean
)

func (t VarType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	case TypeBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Program is the root of a sub-program's AST.
type Program struct {
	pos
	Body *Block
}

func (*Program) Kind() NodeKind { return KindProgram }

// Block is an ordered list of statements belonging to one scope.
type Block struct {
	pos
	Statements []Node
}

func (*Block) Kind() NodeKind { return KindBlock }

// VarDeclaration declares a new variable, with an optional initializer.
type VarDeclaration struct {
	pos
	VarType VarType
	VarName string
	Init    Node // nil when no initializer was given
}

func (*VarDeclaration) Kind() NodeKind { return KindVarDeclaration }

// PrintStatement prints the value of one expression.
type PrintStatement struct {
	pos
	Expression Node
}

func (*PrintStatement) Kind() NodeKind { return KindPrintStatement }

// WhileStatement is a pre-tested loop.
type WhileStatement struct {
	pos
	Condition *BinaryExpression
	Body      *Block
}

func (*WhileStatement) Kind() NodeKind { return KindWhileStatement }

// IfStatement is a conditional with an optional else branch.
type IfStatement struct {
	pos
	Condition  *BinaryExpression
	ThenBranch *Block
	ElseBranch *Block // nil when there is no else
}

func (*IfStatement) Kind() NodeKind { return KindIfStatement }

// AssignmentStatement stores the value of Expression into Identifier.
type AssignmentStatement struct {
	pos
	Identifier *Identifier
	Expression Node
}

func (*AssignmentStatement) Kind() NodeKind { return KindAssignmentStatement }

// BinaryOp enumerates the three binary operators Alan++ supports.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpEquals
	OpNotEquals
)

func (o BinaryOp) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpEquals:
		return "=="
	case OpNotEquals:
		return "!="
	default:
		return "?"
	}
}

// BinaryExpression is a two-operand expression: '+' or a comparison.
type BinaryExpression struct {
	pos
	Operator BinaryOp
	Left     Node
	Right    Node
}

func (*BinaryExpression) Kind() NodeKind { return KindBinaryExpression }

// Identifier is a reference to a declared variable.
type Identifier struct {
	pos
	Name string
}

func (*Identifier) Kind() NodeKind { return KindIdentifier }

// IntegerLiteral is a single-digit integer constant.
type IntegerLiteral struct {
	pos
	Value int
}

func (*IntegerLiteral) Kind() NodeKind { return KindIntegerLiteral }

// StringLiteral is a quoted string constant, reassembled from CHAR tokens.
type StringLiteral struct {
	pos
	Value string
}

func (*StringLiteral) Kind() NodeKind { return KindStringLiteral }

// BooleanLiteral is the constant true or false.
type BooleanLiteral struct {
	pos
	Value bool
}

func (*BooleanLiteral) Kind() NodeKind { return KindBooleanLiteral }
