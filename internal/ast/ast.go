// Package ast defines the Lumen abstract syntax tree.
//
// Every node exposes Pos(), matching the collaborator contract the semantic
// pass relies on: a node's Pos() is also its Loc key wherever the resolver
// needs to record a scope depth for that node.
package ast

import (
	"bytes"
	"strings"

	"github.com/lumenlang/lumen/internal/token"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Expr is any node that produces a value.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any node that performs an action.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root of the tree: an ordered list of top-level statements.
type Program struct {
	Statements []Stmt
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}
func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}
func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// TypeAnnotation is the surface syntax for a type reference: either a bare
// name ("int", "Foo") or a function type ("fn(int, int) -> float").
type TypeAnnotation struct {
	Token  token.Token
	Name   string            // non-empty for a named type
	Params []*TypeAnnotation // parameter types of a function type (nil when it has none)
	Ret    *TypeAnnotation   // non-nil for a function type with an explicit return type
	IsFn   bool
}

func (t *TypeAnnotation) Pos() token.Position  { return t.Token.Pos }
func (t *TypeAnnotation) TokenLiteral() string { return t.Token.Literal }
func (t *TypeAnnotation) String() string {
	if !t.IsFn {
		return t.Name
	}
	var parts []string
	for _, p := range t.Params {
		parts = append(parts, p.String())
	}
	s := "fn(" + strings.Join(parts, ", ") + ")"
	if t.Ret != nil {
		s += " -> " + t.Ret.String()
	}
	return s
}

// ---------- Expressions ----------

type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) exprNode()              {}
func (i *Identifier) TokenLiteral() string   { return i.Token.Literal }
func (i *Identifier) Pos() token.Position    { return i.Token.Pos }
func (i *Identifier) String() string         { return i.Value }

type IntLiteral struct {
	Token token.Token
	Value int64
}

func (l *IntLiteral) exprNode()            {}
func (l *IntLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *IntLiteral) Pos() token.Position  { return l.Token.Pos }
func (l *IntLiteral) String() string       { return l.Token.Literal }

type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (l *FloatLiteral) exprNode()            {}
func (l *FloatLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *FloatLiteral) Pos() token.Position  { return l.Token.Pos }
func (l *FloatLiteral) String() string       { return l.Token.Literal }

type StringLiteral struct {
	Token token.Token
	Value string
}

func (l *StringLiteral) exprNode()            {}
func (l *StringLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *StringLiteral) Pos() token.Position  { return l.Token.Pos }
func (l *StringLiteral) String() string       { return "\"" + l.Value + "\"" }

type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (l *BoolLiteral) exprNode()            {}
func (l *BoolLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *BoolLiteral) Pos() token.Position  { return l.Token.Pos }
func (l *BoolLiteral) String() string       { return l.Token.Literal }

type NullLiteral struct {
	Token token.Token
}

func (l *NullLiteral) exprNode()            {}
func (l *NullLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *NullLiteral) Pos() token.Position  { return l.Token.Pos }
func (l *NullLiteral) String() string       { return "null" }

type SelfExpr struct {
	Token token.Token
}

func (s *SelfExpr) exprNode()            {}
func (s *SelfExpr) TokenLiteral() string { return s.Token.Literal }
func (s *SelfExpr) Pos() token.Position  { return s.Token.Pos }
func (s *SelfExpr) String() string       { return "self" }

type UnaryExpr struct {
	Token    token.Token
	Operator string
	Right    Expr
}

func (u *UnaryExpr) exprNode()            {}
func (u *UnaryExpr) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryExpr) Pos() token.Position  { return u.Token.Pos }
func (u *UnaryExpr) String() string       { return "(" + u.Operator + u.Right.String() + ")" }

type BinaryExpr struct {
	Token    token.Token
	Left     Expr
	Operator string
	Right    Expr
}

func (b *BinaryExpr) exprNode()            {}
func (b *BinaryExpr) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpr) Pos() token.Position  { return b.Token.Pos }
func (b *BinaryExpr) String() string {
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}

// LogicalExpr represents "and"/"or". Kept distinct from BinaryExpr because
// it has its own type-checking rule (operand types must match exactly).
type LogicalExpr struct {
	Token    token.Token
	Left     Expr
	Operator string
	Right    Expr
}

func (b *LogicalExpr) exprNode()            {}
func (b *LogicalExpr) TokenLiteral() string { return b.Token.Literal }
func (b *LogicalExpr) Pos() token.Position  { return b.Token.Pos }
func (b *LogicalExpr) String() string {
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}

type GroupingExpr struct {
	Token token.Token
	Inner Expr
}

func (g *GroupingExpr) exprNode()            {}
func (g *GroupingExpr) TokenLiteral() string { return g.Token.Literal }
func (g *GroupingExpr) Pos() token.Position  { return g.Token.Pos }
func (g *GroupingExpr) String() string       { return "(" + g.Inner.String() + ")" }

// AssignExpr represents `name = value`. Token is the target identifier
// token, which doubles as the Loc the resolver writes into locals.
type AssignExpr struct {
	Token token.Token
	Name  string
	Value Expr
}

func (a *AssignExpr) exprNode()            {}
func (a *AssignExpr) TokenLiteral() string { return a.Token.Literal }
func (a *AssignExpr) Pos() token.Position  { return a.Token.Pos }
func (a *AssignExpr) String() string       { return a.Name + " = " + a.Value.String() }

type CallExpr struct {
	Token    token.Token // the '(' token
	Callee   Expr
	Args     []Expr
}

func (c *CallExpr) exprNode()            {}
func (c *CallExpr) TokenLiteral() string { return c.Token.Literal }
func (c *CallExpr) Pos() token.Position  { return c.Token.Pos }
func (c *CallExpr) String() string {
	var parts []string
	for _, a := range c.Args {
		parts = append(parts, a.String())
	}
	return c.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

type GetExpr struct {
	Token  token.Token // the '.' token
	Object Expr
	Name   string
}

func (g *GetExpr) exprNode()            {}
func (g *GetExpr) TokenLiteral() string { return g.Token.Literal }
func (g *GetExpr) Pos() token.Position  { return g.Token.Pos }
func (g *GetExpr) String() string       { return g.Object.String() + "." + g.Name }

type SetExpr struct {
	Token  token.Token // the '.' token
	Object Expr
	Name   string
	Value  Expr
}

func (s *SetExpr) exprNode()            {}
func (s *SetExpr) TokenLiteral() string { return s.Token.Literal }
func (s *SetExpr) Pos() token.Position  { return s.Token.Pos }
func (s *SetExpr) String() string {
	return s.Object.String() + "." + s.Name + " = " + s.Value.String()
}

// IsExpr represents the static-time `expr is T` check.
type IsExpr struct {
	Token token.Token
	Left  Expr
	Type  *TypeAnnotation
}

func (i *IsExpr) exprNode()            {}
func (i *IsExpr) TokenLiteral() string { return i.Token.Literal }
func (i *IsExpr) Pos() token.Position  { return i.Token.Pos }
func (i *IsExpr) String() string       { return i.Left.String() + " is " + i.Type.String() }

// ---------- Statements ----------

type ExprStmt struct {
	Token token.Token
	Expr  Expr
}

func (e *ExprStmt) stmtNode()           {}
func (e *ExprStmt) TokenLiteral() string { return e.Token.Literal }
func (e *ExprStmt) Pos() token.Position { return e.Token.Pos }
func (e *ExprStmt) String() string      { return e.Expr.String() }

type PrintStmt struct {
	Token token.Token
	Value Expr
}

func (p *PrintStmt) stmtNode()           {}
func (p *PrintStmt) TokenLiteral() string { return p.Token.Literal }
func (p *PrintStmt) Pos() token.Position { return p.Token.Pos }
func (p *PrintStmt) String() string      { return "print " + p.Value.String() }

// VarDecl is `var name (: T)? (= expr)?`. NameTok is the declaration site
// (not a use, so it never becomes a locals key) — kept for diagnostics.
type VarDecl struct {
	Token   token.Token // the 'var' token
	NameTok token.Token
	Name    string
	Type    *TypeAnnotation // nil if unannotated
	Value   Expr            // nil if uninitialized
}

func (v *VarDecl) stmtNode()           {}
func (v *VarDecl) TokenLiteral() string { return v.Token.Literal }
func (v *VarDecl) Pos() token.Position { return v.Token.Pos }
func (v *VarDecl) String() string {
	s := "var " + v.Name
	if v.Type != nil {
		s += ": " + v.Type.String()
	}
	if v.Value != nil {
		s += " = " + v.Value.String()
	}
	return s
}

type Block struct {
	Token      token.Token // the '{' token
	Statements []Stmt
}

func (b *Block) stmtNode()           {}
func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) Pos() token.Position { return b.Token.Pos }
func (b *Block) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, s := range b.Statements {
		out.WriteString("  " + strings.ReplaceAll(s.String(), "\n", "\n  ") + "\n")
	}
	out.WriteString("}")
	return out.String()
}

type IfStmt struct {
	Token     token.Token
	Condition Expr
	Then      *Block
	Else      Stmt // *Block or *IfStmt (else-if chain), nil if absent
}

func (i *IfStmt) stmtNode()           {}
func (i *IfStmt) TokenLiteral() string { return i.Token.Literal }
func (i *IfStmt) Pos() token.Position { return i.Token.Pos }
func (i *IfStmt) String() string {
	s := "if (" + i.Condition.String() + ") " + i.Then.String()
	if i.Else != nil {
		s += " else " + i.Else.String()
	}
	return s
}

type WhileStmt struct {
	Token     token.Token
	Condition Expr
	Body      *Block
}

func (w *WhileStmt) stmtNode()           {}
func (w *WhileStmt) TokenLiteral() string { return w.Token.Literal }
func (w *WhileStmt) Pos() token.Position { return w.Token.Pos }
func (w *WhileStmt) String() string {
	return "while (" + w.Condition.String() + ") " + w.Body.String()
}

// ForStmt is a numeric for-loop: `for (name = start to end) { body }`.
type ForStmt struct {
	Token    token.Token
	VarTok   token.Token
	VarName  string
	Start    Expr
	End      Expr
	Body     *Block
}

func (f *ForStmt) stmtNode()           {}
func (f *ForStmt) TokenLiteral() string { return f.Token.Literal }
func (f *ForStmt) Pos() token.Position { return f.Token.Pos }
func (f *ForStmt) String() string {
	return "for (" + f.VarName + " = " + f.Start.String() + " to " + f.End.String() + ") " + f.Body.String()
}

type Param struct {
	Token token.Token
	Name  string
	Type  *TypeAnnotation // nil means Any
}

// FnDecl is `fn name(params) (-> R)? { body }`.
type FnDecl struct {
	Token   token.Token
	NameTok token.Token
	Name    string
	Params  []*Param
	Ret     *TypeAnnotation // nil means Void
	Body    *Block
}

func (f *FnDecl) stmtNode()           {}
func (f *FnDecl) TokenLiteral() string { return f.Token.Literal }
func (f *FnDecl) Pos() token.Position { return f.Token.Pos }
func (f *FnDecl) String() string {
	var parts []string
	for _, p := range f.Params {
		if p.Type != nil {
			parts = append(parts, p.Name+": "+p.Type.String())
		} else {
			parts = append(parts, p.Name)
		}
	}
	s := "fn " + f.Name + "(" + strings.Join(parts, ", ") + ")"
	if f.Ret != nil {
		s += " -> " + f.Ret.String()
	}
	return s + " " + f.Body.String()
}

// ReturnStmt is `return (expr)?`.
type ReturnStmt struct {
	Token token.Token
	Value Expr // nil for bare `return`
}

func (r *ReturnStmt) stmtNode()           {}
func (r *ReturnStmt) TokenLiteral() string { return r.Token.Literal }
func (r *ReturnStmt) Pos() token.Position { return r.Token.Pos }
func (r *ReturnStmt) String() string {
	if r.Value != nil {
		return "return " + r.Value.String()
	}
	return "return"
}

type Field struct {
	Token token.Token
	Name  string
	Type  *TypeAnnotation // nil means Any
}

// StructDecl is `struct Name { fields; methods }`.
type StructDecl struct {
	Token   token.Token
	NameTok token.Token
	Name    string
	Fields  []*Field
	Methods []*FnDecl
}

func (s *StructDecl) stmtNode()           {}
func (s *StructDecl) TokenLiteral() string { return s.Token.Literal }
func (s *StructDecl) Pos() token.Position { return s.Token.Pos }
func (s *StructDecl) String() string {
	var out bytes.Buffer
	out.WriteString("struct " + s.Name + " {\n")
	for _, f := range s.Fields {
		out.WriteString("  " + f.Name)
		if f.Type != nil {
			out.WriteString(": " + f.Type.String())
		}
		out.WriteString("\n")
	}
	for _, m := range s.Methods {
		out.WriteString("  " + m.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}
