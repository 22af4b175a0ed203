// Package parser implements a Pratt parser that turns a Lumen token stream
// into an *ast.Program. Grammar is deliberately small: this is the
// collaborator whose interface (producing an ast.Program with every
// resolvable node carrying a Pos()) the semantic pass depends on.
package parser

import (
	"fmt"

	"github.com/lumenlang/lumen/internal/ast"
	"github.com/lumenlang/lumen/internal/lexer"
	"github.com/lumenlang/lumen/internal/token"
)

// Precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	OR          // or
	AND         // and
	EQUALS      // == !=
	LESSGREATER // < > <= >=
	SUM         // + -
	PRODUCT     // * / %
	PREFIX      // -x !x
	CALL        // f(args), obj.member
	ISPREC      // expr is T
)

var precedences = map[token.Type]int{
	token.OR:      OR,
	token.AND:     AND,
	token.EQ:      EQUALS,
	token.NOTEQ:   EQUALS,
	token.LT:      LESSGREATER,
	token.GT:      LESSGREATER,
	token.LTEQ:    LESSGREATER,
	token.GTEQ:    LESSGREATER,
	token.PLUS:    SUM,
	token.MINUS:   SUM,
	token.STAR:    PRODUCT,
	token.SLASH:   PRODUCT,
	token.PERCENT: PRODUCT,
	token.LPAREN:  CALL,
	token.DOT:     CALL,
	token.IS:      ISPREC,
}

type prefixParseFn func() ast.Expr
type infixParseFn func(ast.Expr) ast.Expr

// Error is a syntax error with a source position.
type Error struct {
	Msg string
	Pos token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Msg, e.Pos)
}

// Parser consumes a flat token slice and builds the AST.
type Parser struct {
	tokens []token.Token
	pos    int

	errors []*Error

	prefixFns map[token.Type]prefixParseFn
	infixFns  map[token.Type]infixParseFn
}

// New creates a Parser over the entire source text.
func New(src string) *Parser {
	l := lexer.New(src)
	return NewFromTokens(l.Tokenize())
}

// NewFromTokens creates a Parser over an already-lexed token stream.
func NewFromTokens(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens}

	p.prefixFns = map[token.Type]prefixParseFn{
		token.IDENT:  p.parseIdentifier,
		token.INT:    p.parseIntLiteral,
		token.FLOAT:  p.parseFloatLiteral,
		token.STRING: p.parseStringLiteral,
		token.TRUE:   p.parseBoolLiteral,
		token.FALSE:  p.parseBoolLiteral,
		token.NULL:   p.parseNullLiteral,
		token.SELF:   p.parseSelfExpr,
		token.MINUS:  p.parseUnaryExpr,
		token.BANG:   p.parseUnaryExpr,
		token.NOT:    p.parseUnaryExpr,
		token.LPAREN: p.parseGroupingOrAssign,
	}

	p.infixFns = map[token.Type]infixParseFn{
		token.PLUS:    p.parseBinaryExpr,
		token.MINUS:   p.parseBinaryExpr,
		token.STAR:    p.parseBinaryExpr,
		token.SLASH:   p.parseBinaryExpr,
		token.PERCENT: p.parseBinaryExpr,
		token.EQ:      p.parseBinaryExpr,
		token.NOTEQ:   p.parseBinaryExpr,
		token.LT:      p.parseBinaryExpr,
		token.GT:      p.parseBinaryExpr,
		token.LTEQ:    p.parseBinaryExpr,
		token.GTEQ:    p.parseBinaryExpr,
		token.AND:     p.parseLogicalExpr,
		token.OR:      p.parseLogicalExpr,
		token.LPAREN:  p.parseCallExpr,
		token.DOT:     p.parseGetOrSetExpr,
		token.IS:      p.parseIsExpr,
	}

	return p
}

// Errors returns every syntax error accumulated while parsing.
func (p *Parser) Errors() []*Error { return p.errors }

func (p *Parser) cur() token.Token  { return p.tokens[p.pos] }
func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}
func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}
func (p *Parser) curIs(t token.Type) bool  { return p.cur().Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peek().Type == t }

func (p *Parser) expect(t token.Type) token.Token {
	if p.curIs(t) {
		return p.advance()
	}
	p.errorf("expected %s, got %s", t, p.cur().Type)
	return p.cur()
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errors = append(p.errors, &Error{Msg: fmt.Sprintf(format, args...), Pos: p.cur().Pos})
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.cur().Type]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram parses the entire token stream into an ast.Program.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.curIs(token.EOF) {
		start := p.pos
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		if p.pos == start {
			// guarantee forward progress on malformed input
			p.advance()
		}
	}
	return prog
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur().Type {
	case token.VAR:
		return p.parseVarDecl()
	case token.FN:
		return p.parseFnDecl()
	case token.STRUCT:
		return p.parseStructDecl()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.PRINT:
		return p.parsePrintStmt()
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.LBRACE:
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseType() *ast.TypeAnnotation {
	tok := p.cur()
	if p.curIs(token.FN) {
		p.advance()
		ta := &ast.TypeAnnotation{Token: tok, IsFn: true}
		p.expect(token.LPAREN)
		for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
			ta.Params = append(ta.Params, p.parseType())
			if p.curIs(token.COMMA) {
				p.advance()
			}
		}
		p.expect(token.RPAREN)
		if p.curIs(token.ARROW) {
			p.advance()
			ta.Ret = p.parseType()
		}
		return ta
	}
	name := p.expect(token.IDENT)
	return &ast.TypeAnnotation{Token: tok, Name: name.Literal}
}

func (p *Parser) parseVarDecl() *ast.VarDecl {
	tok := p.advance() // 'var'
	nameTok := p.expect(token.IDENT)
	v := &ast.VarDecl{Token: tok, NameTok: nameTok, Name: nameTok.Literal}
	if p.curIs(token.COLON) {
		p.advance()
		v.Type = p.parseType()
	}
	if p.curIs(token.ASSIGN) {
		p.advance()
		v.Value = p.parseExpression(LOWEST)
	}
	p.skipSemi()
	return v
}

func (p *Parser) skipSemi() {
	if p.curIs(token.SEMI) {
		p.advance()
	}
}

func (p *Parser) parseBlock() *ast.Block {
	tok := p.expect(token.LBRACE)
	b := &ast.Block{Token: tok}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		start := p.pos
		s := p.parseStatement()
		if s != nil {
			b.Statements = append(b.Statements, s)
		}
		if p.pos == start {
			p.advance()
		}
	}
	p.expect(token.RBRACE)
	return b
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	tok := p.advance() // 'if'
	p.expect(token.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	then := p.parseBlock()
	stmt := &ast.IfStmt{Token: tok, Condition: cond, Then: then}
	if p.curIs(token.ELSE) {
		p.advance()
		if p.curIs(token.IF) {
			stmt.Else = p.parseIfStmt()
		} else {
			stmt.Else = p.parseBlock()
		}
	}
	return stmt
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	tok := p.advance()
	p.expect(token.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	body := p.parseBlock()
	return &ast.WhileStmt{Token: tok, Condition: cond, Body: body}
}

func (p *Parser) parseForStmt() *ast.ForStmt {
	tok := p.advance() // 'for'
	p.expect(token.LPAREN)
	nameTok := p.expect(token.IDENT)
	p.expect(token.ASSIGN)
	start := p.parseExpression(LOWEST)
	p.expect(token.TO)
	end := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	body := p.parseBlock()
	return &ast.ForStmt{Token: tok, VarTok: nameTok, VarName: nameTok.Literal, Start: start, End: end, Body: body}
}

func (p *Parser) parseParams() []*ast.Param {
	var params []*ast.Param
	p.expect(token.LPAREN)
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		nameTok := p.expect(token.IDENT)
		param := &ast.Param{Token: nameTok, Name: nameTok.Literal}
		if p.curIs(token.COLON) {
			p.advance()
			param.Type = p.parseType()
		}
		params = append(params, param)
		if p.curIs(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RPAREN)
	return params
}

func (p *Parser) parseFnDecl() *ast.FnDecl {
	tok := p.advance() // 'fn'
	nameTok := p.expect(token.IDENT)
	fn := &ast.FnDecl{Token: tok, NameTok: nameTok, Name: nameTok.Literal}
	fn.Params = p.parseParams()
	if p.curIs(token.ARROW) {
		p.advance()
		fn.Ret = p.parseType()
	}
	fn.Body = p.parseBlock()
	return fn
}

func (p *Parser) parseStructDecl() *ast.StructDecl {
	tok := p.advance() // 'struct'
	nameTok := p.expect(token.IDENT)
	s := &ast.StructDecl{Token: tok, NameTok: nameTok, Name: nameTok.Literal}
	p.expect(token.LBRACE)
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if p.curIs(token.FN) {
			s.Methods = append(s.Methods, p.parseFnDecl())
			continue
		}
		fieldTok := p.expect(token.IDENT)
		field := &ast.Field{Token: fieldTok, Name: fieldTok.Literal}
		if p.curIs(token.COLON) {
			p.advance()
			field.Type = p.parseType()
		}
		p.skipSemi()
		s.Fields = append(s.Fields, field)
	}
	p.expect(token.RBRACE)
	return s
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	tok := p.advance()
	r := &ast.ReturnStmt{Token: tok}
	if !p.curIs(token.RBRACE) && !p.curIs(token.SEMI) && !p.curIs(token.EOF) {
		r.Value = p.parseExpression(LOWEST)
	}
	p.skipSemi()
	return r
}

func (p *Parser) parsePrintStmt() *ast.PrintStmt {
	tok := p.advance()
	v := p.parseExpression(LOWEST)
	p.skipSemi()
	return &ast.PrintStmt{Token: tok, Value: v}
}

func (p *Parser) parseExprStmt() *ast.ExprStmt {
	tok := p.cur()
	expr := p.parseExpression(LOWEST)
	p.skipSemi()
	return &ast.ExprStmt{Token: tok, Expr: expr}
}

func (p *Parser) parseExpression(precedence int) ast.Expr {
	if precedence == LOWEST {
		if assign, ok := p.tryParseAssign(); ok {
			return assign
		}
	}
	prefix, ok := p.prefixFns[p.cur().Type]
	if !ok {
		p.errorf("unexpected token %s in expression", p.cur().Type)
		p.advance()
		return &ast.NullLiteral{Token: p.cur()}
	}
	left := prefix()

	for !p.curIs(token.SEMI) && precedence < p.curPrecedence() {
		infix, ok := p.infixFns[p.cur().Type]
		if !ok {
			return left
		}
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expr {
	tok := p.advance()
	return &ast.Identifier{Token: tok, Value: tok.Literal}
}

func (p *Parser) parseIntLiteral() ast.Expr {
	tok := p.advance()
	var v int64
	fmt.Sscanf(tok.Literal, "%d", &v)
	return &ast.IntLiteral{Token: tok, Value: v}
}

func (p *Parser) parseFloatLiteral() ast.Expr {
	tok := p.advance()
	var v float64
	fmt.Sscanf(tok.Literal, "%g", &v)
	return &ast.FloatLiteral{Token: tok, Value: v}
}

func (p *Parser) parseStringLiteral() ast.Expr {
	tok := p.advance()
	return &ast.StringLiteral{Token: tok, Value: tok.Literal}
}

func (p *Parser) parseBoolLiteral() ast.Expr {
	tok := p.advance()
	return &ast.BoolLiteral{Token: tok, Value: tok.Type == token.TRUE}
}

func (p *Parser) parseNullLiteral() ast.Expr {
	tok := p.advance()
	return &ast.NullLiteral{Token: tok}
}

func (p *Parser) parseSelfExpr() ast.Expr {
	tok := p.advance()
	return &ast.SelfExpr{Token: tok}
}

func (p *Parser) parseUnaryExpr() ast.Expr {
	tok := p.advance()
	right := p.parseExpression(PREFIX)
	op := tok.Literal
	if tok.Type == token.NOT {
		op = "!"
	}
	return &ast.UnaryExpr{Token: tok, Operator: op, Right: right}
}

// parseGroupingOrAssign parses a parenthesized expression. Assignment is
// handled earlier, in parseExpression, via tryParseAssign.
func (p *Parser) parseGroupingOrAssign() ast.Expr {
	tok := p.advance() // '('
	inner := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	return &ast.GroupingExpr{Token: tok, Inner: inner}
}

func (p *Parser) parseBinaryExpr(left ast.Expr) ast.Expr {
	tok := p.advance()
	precedence := precedences[tok.Type]
	right := p.parseExpression(precedence)
	return &ast.BinaryExpr{Token: tok, Left: left, Operator: tok.Literal, Right: right}
}

func (p *Parser) parseLogicalExpr(left ast.Expr) ast.Expr {
	tok := p.advance()
	precedence := precedences[tok.Type]
	right := p.parseExpression(precedence)
	return &ast.LogicalExpr{Token: tok, Left: left, Operator: tok.Literal, Right: right}
}

func (p *Parser) parseCallExpr(callee ast.Expr) ast.Expr {
	tok := p.advance() // '('
	var args []ast.Expr
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		args = append(args, p.parseExpression(LOWEST))
		if p.curIs(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RPAREN)
	return &ast.CallExpr{Token: tok, Callee: callee, Args: args}
}

func (p *Parser) parseGetOrSetExpr(obj ast.Expr) ast.Expr {
	tok := p.advance() // '.'
	nameTok := p.expect(token.IDENT)
	if p.curIs(token.ASSIGN) {
		p.advance()
		val := p.parseExpression(LOWEST)
		return &ast.SetExpr{Token: tok, Object: obj, Name: nameTok.Literal, Value: val}
	}
	return &ast.GetExpr{Token: tok, Object: obj, Name: nameTok.Literal}
}

func (p *Parser) parseIsExpr(left ast.Expr) ast.Expr {
	tok := p.advance() // 'is'
	t := p.parseType()
	return &ast.IsExpr{Token: tok, Left: left, Type: t}
}

// tryParseAssign recognizes `name = expr` at the start of an expression,
// since Lumen has no separate assignment-statement production: assignment
// is just another expression form with the lowest precedence.
func (p *Parser) tryParseAssign() (ast.Expr, bool) {
	if p.curIs(token.IDENT) && p.peekIs(token.ASSIGN) {
		nameTok := p.advance()
		p.advance() // '='
		val := p.parseExpression(LOWEST)
		return &ast.AssignExpr{Token: nameTok, Name: nameTok.Literal, Value: val}, true
	}
	return nil, false
}
