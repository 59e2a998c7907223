// Package parser implements the recursive-descent parser that turns a
// token stream into a concrete syntax tree rooted at Program.
package parser

import (
	"github.com/lookbusy1344/alanppc/cst"
	"github.com/lookbusy1344/alanppc/diag"
	"github.com/lookbusy1344/alanppc/lexer"
)

// Parser consumes a flat token slice and builds a CST one production at a
// time, mirroring the lexer's own current/peek-token stepping style.
type Parser struct {
	tokens []lexer.Token
	pos    int

	currentToken lexer.Token
	peekToken    lexer.Token

	Log diag.Log
}

// New constructs a Parser over a complete token stream for one sub-program,
// including its trailing EOP.
func New(tokens []lexer.Token) *Parser {
	p := &Parser{tokens: tokens}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.currentToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	} else {
		p.peekToken = lexer.Token{Type: lexer.EOF}
	}
}

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.currentToken.Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peekToken.Type == t }

// check consumes the current token if it matches t, returning the matched
// token as a terminal node; otherwise it logs an ERROR and returns nil.
func (p *Parser) check(t lexer.TokenType, name string) *cst.Node {
	if !p.curIs(t) {
		p.Log.ErrorAt(p.currentToken.Line, p.currentToken.Column,
			"expected %s, got %s %q", t, p.currentToken.Type, p.currentToken.Lexeme)
		return nil
	}
	tok := p.currentToken
	p.nextToken()
	return cst.NewTerminal(name, tok)
}

// startsStatement reports whether the current token can begin a statement,
// used both for statement* loops and for synchronization after an error.
func (p *Parser) startsStatement() bool {
	switch p.currentToken.Type {
	case lexer.TypeInt, lexer.TypeString, lexer.TypeBoolean,
		lexer.If, lexer.While, lexer.Print, lexer.LBRACE,
		lexer.Digit, lexer.Quote, lexer.Boolean, lexer.Identifier, lexer.LPAREN:
		return true
	default:
		return false
	}
}

// synchronize advances past the offending token until the previous token
// was '}' or the current token can start a new statement, bounded by EOF/EOP
// so recovery never loops forever.
func (p *Parser) synchronize() {
	for {
		if p.curIs(lexer.EOF) || p.curIs(lexer.EOP) {
			return
		}
		prev := p.currentToken
		p.nextToken()
		if prev.Type == lexer.RBRACE {
			return
		}
		if p.startsStatement() || p.curIs(lexer.RBRACE) {
			return
		}
	}
}

// Parse runs the full grammar over the token stream, returning the Program
// root (never nil, even on catastrophic error) and the accumulated log.
func (p *Parser) Parse() (*cst.Node, *diag.Log) {
	root := p.parseProgram()
	return root, &p.Log
}

// program := block EOP
func (p *Parser) parseProgram() *cst.Node {
	n := cst.NewNonTerminal("Program")
	n.Append(p.parseBlock())
	n.Append(p.check(lexer.EOP, "EOP"))
	return n
}

// block := '{' statement* '}'
func (p *Parser) parseBlock() *cst.Node {
	n := cst.NewNonTerminal("Block")
	n.Append(p.check(lexer.LBRACE, "LBrace"))

	for p.startsStatement() {
		stmt := p.parseStatement()
		if stmt == nil {
			p.synchronize()
			continue
		}
		n.Append(stmt)
	}

	n.Append(p.check(lexer.RBRACE, "RBrace"))
	return n
}

// statement := print | while | if | varDecl | exprStmt
func (p *Parser) parseStatement() *cst.Node {
	switch p.currentToken.Type {
	case lexer.Print:
		return p.parsePrint()
	case lexer.While:
		return p.parseWhile()
	case lexer.If:
		return p.parseIf()
	case lexer.TypeInt, lexer.TypeString, lexer.TypeBoolean:
		return p.parseVarDecl()
	case lexer.LBRACE:
		// A bare nested block is not in the published grammar's statement
		// alternatives but is required to open a child scope (spec §8
		// scenario 5); it lowers straight to ast.Block like if/while bodies.
		return p.parseBlock()
	case lexer.Identifier:
		if p.peekIs(lexer.Assign) {
			return p.parseExprStmt()
		}
		return p.parseBareExpression()
	default:
		return p.parseBareExpression()
	}
}

// parseBareExpression handles the exprStmt alternative for a statement that
// is a plain expression rather than an assignment (e.g. a lone identifier or
// literal with no side effect).
func (p *Parser) parseBareExpression() *cst.Node {
	n := cst.NewNonTerminal("ExpressionStatement")
	n.Append(p.parseExpression())
	return n
}

// print := 'print' '(' (stringLit | expression) ')'
func (p *Parser) parsePrint() *cst.Node {
	n := cst.NewNonTerminal("PrintStatement")
	n.Append(p.check(lexer.Print, "PrintKeyword"))
	n.Append(p.check(lexer.LPAREN, "LParen"))

	if p.curIs(lexer.Quote) {
		n.Append(p.parseStringLit())
	} else {
		n.Append(p.parseExpression())
	}

	n.Append(p.check(lexer.RPAREN, "RParen"))
	return n
}

// while := 'while' '(' expression ')' block
func (p *Parser) parseWhile() *cst.Node {
	n := cst.NewNonTerminal("WhileStatement")
	n.Append(p.check(lexer.While, "WhileKeyword"))
	n.Append(p.check(lexer.LPAREN, "LParen"))
	n.Append(p.parseExpression())
	n.Append(p.check(lexer.RPAREN, "RParen"))
	n.Append(p.parseBlock())
	return n
}

// if := 'if' '(' expression ')' block ('else' block)?
func (p *Parser) parseIf() *cst.Node {
	n := cst.NewNonTerminal("IfStatement")
	n.Append(p.check(lexer.If, "IfKeyword"))
	n.Append(p.check(lexer.LPAREN, "LParen"))
	n.Append(p.parseExpression())
	n.Append(p.check(lexer.RPAREN, "RParen"))
	n.Append(p.parseBlock())

	if p.curIs(lexer.Else) {
		n.Append(p.check(lexer.Else, "ElseKeyword"))
		n.Append(p.parseBlock())
	}
	return n
}

// varDecl := type IDENT ( '=' expression )?
func (p *Parser) parseVarDecl() *cst.Node {
	n := cst.NewNonTerminal("VariableDeclaration")
	n.Append(p.parseType())
	n.Append(p.check(lexer.Identifier, "Identifier"))

	if p.curIs(lexer.Assign) {
		n.Append(p.check(lexer.Assign, "Assign"))
		n.Append(p.parseExpression())
	}
	return n
}

func (p *Parser) parseType() *cst.Node {
	switch p.currentToken.Type {
	case lexer.TypeInt:
		return p.check(lexer.TypeInt, "IntType")
	case lexer.TypeString:
		return p.check(lexer.TypeString, "StringType")
	case lexer.TypeBoolean:
		return p.check(lexer.TypeBoolean, "BooleanType")
	default:
		p.Log.ErrorAt(p.currentToken.Line, p.currentToken.Column,
			"expected a type keyword, got %s %q", p.currentToken.Type, p.currentToken.Lexeme)
		return nil
	}
}

// exprStmt := expression, used for bare assignment statements: the grammar
// treats "a = expr" as an expression whose leading identifier is followed by
// '=' -- lowering distinguishes AssignmentStatement from a bare expression.
func (p *Parser) parseExprStmt() *cst.Node {
	n := cst.NewNonTerminal("AssignmentStatement")
	n.Append(p.check(lexer.Identifier, "Identifier"))
	n.Append(p.check(lexer.Assign, "Assign"))
	n.Append(p.parseExpression())
	return n
}

// expression := equality
func (p *Parser) parseExpression() *cst.Node {
	n := cst.NewNonTerminal("Expression")
	n.Append(p.parseEquality())
	return n
}

// equality := term ( ('==' | '!=') term )*
func (p *Parser) parseEquality() *cst.Node {
	left := p.parseTerm()

	for p.curIs(lexer.Equals) || p.curIs(lexer.NotEquals) {
		n := cst.NewNonTerminal("BooleanExpression")
		n.Append(left)
		if p.curIs(lexer.Equals) {
			n.Append(p.check(lexer.Equals, "Equals"))
		} else {
			n.Append(p.check(lexer.NotEquals, "NotEquals"))
		}
		n.Append(p.parseTerm())
		left = n
	}
	return left
}

// term := factor ( '+' factor )*
func (p *Parser) parseTerm() *cst.Node {
	left := p.parseFactor()

	for p.curIs(lexer.Plus) {
		n := cst.NewNonTerminal("StringExpression")
		n.Append(left)
		n.Append(p.check(lexer.Plus, "Plus"))
		n.Append(p.parseFactor())
		left = n
	}
	return left
}

// factor := primary
func (p *Parser) parseFactor() *cst.Node {
	return p.parsePrimary()
}

// primary := DIGIT | stringLit | boolLit | IDENT | '(' expression ')'
func (p *Parser) parsePrimary() *cst.Node {
	switch p.currentToken.Type {
	case lexer.Digit:
		return p.check(lexer.Digit, "Digit")
	case lexer.Quote:
		return p.parseStringLit()
	case lexer.Boolean:
		return p.check(lexer.Boolean, "BooleanLiteral")
	case lexer.Identifier:
		return p.check(lexer.Identifier, "Identifier")
	case lexer.LPAREN:
		n := cst.NewNonTerminal("Grouping")
		n.Append(p.check(lexer.LPAREN, "LParen"))
		n.Append(p.parseExpression())
		n.Append(p.check(lexer.RPAREN, "RParen"))
		return n
	default:
		p.Log.ErrorAt(p.currentToken.Line, p.currentToken.Column,
			"unexpected token %s %q in expression", p.currentToken.Type, p.currentToken.Lexeme)
		return nil
	}
}

// stringLit := '"' CHAR* '"'
func (p *Parser) parseStringLit() *cst.Node {
	n := cst.NewNonTerminal("StringLiteral")
	n.Append(p.check(lexer.Quote, "Quote"))
	for p.curIs(lexer.Char) {
		n.Append(p.check(lexer.Char, "Char"))
	}
	n.Append(p.check(lexer.Quote, "Quote"))
	return n
}
