package parser

import (
	"testing"

	"github.com/lumenlang/lumen/internal/ast"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(src)
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	return prog
}

func TestParseVarDecl(t *testing.T) {
	prog := parseProgram(t, `var x: int = 1`)
	if len(prog.Statements) != 1 {
		t.Fatalf("got %d statements", len(prog.Statements))
	}
	v, ok := prog.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("got %T", prog.Statements[0])
	}
	if v.Name != "x" || v.Type.Name != "int" {
		t.Fatalf("got %+v", v)
	}
	if _, ok := v.Value.(*ast.IntLiteral); !ok {
		t.Fatalf("got %T", v.Value)
	}
}

func TestParseNestedBlocks(t *testing.T) {
	src := `
var a
{ var b = a
  var c = b
  { var d = c
    d = a + 6 } }`
	prog := parseProgram(t, src)
	if len(prog.Statements) != 2 {
		t.Fatalf("got %d top-level statements", len(prog.Statements))
	}
	outer, ok := prog.Statements[1].(*ast.Block)
	if !ok {
		t.Fatalf("got %T", prog.Statements[1])
	}
	if len(outer.Statements) != 3 {
		t.Fatalf("got %d", len(outer.Statements))
	}
}

func TestParseFnDecl(t *testing.T) {
	prog := parseProgram(t, `fn add(a: int, b: int) -> int { return a + b }`)
	fn, ok := prog.Statements[0].(*ast.FnDecl)
	if !ok {
		t.Fatalf("got %T", prog.Statements[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 || fn.Ret.Name != "int" {
		t.Fatalf("got %+v", fn)
	}
	ret, ok := fn.Body.Statements[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("got %T", fn.Body.Statements[0])
	}
	if _, ok := ret.Value.(*ast.BinaryExpr); !ok {
		t.Fatalf("got %T", ret.Value)
	}
}

func TestParseStructDecl(t *testing.T) {
	src := `struct Point {
  x: int
  y: int
  fn dist() -> int { return x }
}`
	prog := parseProgram(t, src)
	s, ok := prog.Statements[0].(*ast.StructDecl)
	if !ok {
		t.Fatalf("got %T", prog.Statements[0])
	}
	if s.Name != "Point" || len(s.Fields) != 2 || len(s.Methods) != 1 {
		t.Fatalf("got %+v", s)
	}
}

func TestParseIfElse(t *testing.T) {
	prog := parseProgram(t, `if (true) { print 1 } else { print 2 }`)
	ifs, ok := prog.Statements[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("got %T", prog.Statements[0])
	}
	if ifs.Else == nil {
		t.Fatal("expected else branch")
	}
}

func TestParseFor(t *testing.T) {
	prog := parseProgram(t, `for (i = 0 to 10) { print i }`)
	f, ok := prog.Statements[0].(*ast.ForStmt)
	if !ok {
		t.Fatalf("got %T", prog.Statements[0])
	}
	if f.VarName != "i" {
		t.Fatalf("got %+v", f)
	}
}

func TestParseCallGetChain(t *testing.T) {
	prog := parseProgram(t, `self.move(1).speed`)
	es, ok := prog.Statements[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("got %T", prog.Statements[0])
	}
	get, ok := es.Expr.(*ast.GetExpr)
	if !ok {
		t.Fatalf("got %T", es.Expr)
	}
	if get.Name != "speed" {
		t.Fatalf("got %q", get.Name)
	}
	call, ok := get.Object.(*ast.CallExpr)
	if !ok {
		t.Fatalf("got %T", get.Object)
	}
	if _, ok := call.Callee.(*ast.GetExpr); !ok {
		t.Fatalf("got %T", call.Callee)
	}
}

func TestParseAssignment(t *testing.T) {
	prog := parseProgram(t, `e = e + 1`)
	es := prog.Statements[0].(*ast.ExprStmt)
	a, ok := es.Expr.(*ast.AssignExpr)
	if !ok {
		t.Fatalf("got %T", es.Expr)
	}
	if a.Name != "e" {
		t.Fatalf("got %q", a.Name)
	}
}

func TestParseIsExpr(t *testing.T) {
	prog := parseProgram(t, `x is int`)
	es := prog.Statements[0].(*ast.ExprStmt)
	ie, ok := es.Expr.(*ast.IsExpr)
	if !ok {
		t.Fatalf("got %T", es.Expr)
	}
	if ie.Type.Name != "int" {
		t.Fatalf("got %+v", ie.Type)
	}
}
