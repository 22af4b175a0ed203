package semantic

import (
	"sort"
	"testing"

	"github.com/lumenlang/lumen/internal/ast"
	"github.com/lumenlang/lumen/internal/parser"
)

func parseOrFatal(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := parser.New(src)
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	return prog
}

func sortedDepths(locals map[Loc]int) []int {
	var out []int
	for _, d := range locals {
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

func TestResolveNestedDepths(t *testing.T) {
	src := `
var a
{ var b = a
  var c = b
  { var d = c
    d = a + 6
    { var e
      e = e + 1
      e = d - 5
      e = b } } }`
	prog := parseOrFatal(t, src)
	locals, _, errs := Resolve(prog.Statements)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(locals) != 9 {
		t.Fatalf("got locals.size() == %d, want 9: %+v", len(locals), locals)
	}
	got := sortedDepths(locals)
	want := []int{0, 0, 0, 0, 0, 0, 1, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestResolveClosureDepthOverEmptyScopes(t *testing.T) {
	src := `
{ var a
  var b
  { fn foo(a) { var c = a
                var d = b } } }`
	prog := parseOrFatal(t, src)
	locals, _, errs := Resolve(prog.Statements)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(locals) != 2 {
		t.Fatalf("got locals.size() == %d, want 2: %+v", len(locals), locals)
	}
	got := sortedDepths(locals)
	want := []int{0, 2}
	if got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestResolveSelfInitThroughShadowing(t *testing.T) {
	src := `
var a
{ var a = a }`
	prog := parseOrFatal(t, src)
	_, _, errs := Resolve(prog.Statements)
	if len(errs) == 0 {
		t.Fatal("expected an error")
	}
	if errs[0].Kind != LocalVarInOwnInit {
		t.Fatalf("got %v, want LocalVarInOwnInit", errs[0].Kind)
	}
}

func TestResolveTopLevelReturn(t *testing.T) {
	prog := parseOrFatal(t, `return`)
	_, _, errs := Resolve(prog.Statements)
	if len(errs) == 0 || errs[0].Kind != TopLevelReturn {
		t.Fatalf("got %v, want TopLevelReturn", errs)
	}
}

func TestResolveSelfOutsideStruct(t *testing.T) {
	prog := parseOrFatal(t, `self.foo`)
	_, _, errs := Resolve(prog.Statements)
	if len(errs) == 0 || errs[0].Kind != SelfOutsideStruct {
		t.Fatalf("got %v, want SelfOutsideStruct", errs)
	}
}

func TestResolveConstructorForbiddenReturn(t *testing.T) {
	prog := parseOrFatal(t, `struct Foo { fn init() { return 1 } }`)
	_, _, errs := Resolve(prog.Statements)
	if len(errs) == 0 || errs[0].Kind != ReturnFromInit {
		t.Fatalf("got %v, want ReturnFromInit", errs)
	}
}

func TestTypeCheckWrongTypeAssign(t *testing.T) {
	prog := parseOrFatal(t, `var x: int = 1.0`)
	_, _, errs := Resolve(prog.Statements)
	if len(errs) == 0 || errs[0].Kind != WrongTypeAssign {
		t.Fatalf("got %v, want WrongTypeAssign", errs)
	}
	if errs[0].From != "float" || errs[0].To != "int" {
		t.Fatalf("got From=%q To=%q, want float/int", errs[0].From, errs[0].To)
	}
}

func TestTypeCheckWideningAllowed(t *testing.T) {
	prog := parseOrFatal(t, `var x: float = 1`)
	_, _, errs := Resolve(prog.Statements)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestTypeCheckUnknownType(t *testing.T) {
	prog := parseOrFatal(t, `var x: Bar`)
	_, _, errs := Resolve(prog.Statements)
	if len(errs) == 0 || errs[0].Kind != UnknownType {
		t.Fatalf("got %v, want UnknownType", errs)
	}
	if errs[0].Name != "Bar" {
		t.Fatalf("got Name=%q, want Bar", errs[0].Name)
	}
}

func TestTypeCheckInvalidOpStrPlusInt(t *testing.T) {
	prog := parseOrFatal(t, `"a" + 1`)
	_, _, errs := Resolve(prog.Statements)
	if len(errs) == 0 || errs[0].Kind != InvalidOp {
		t.Fatalf("got %v, want InvalidOp", errs)
	}
	if errs[0].Name != "+" || errs[0].From != "str" || errs[0].To != "int" {
		t.Fatalf("got %+v", errs[0])
	}
}

func TestTypeCheckStrTimesIntOk(t *testing.T) {
	prog := parseOrFatal(t, `"a" * 3`)
	_, _, errs := Resolve(prog.Statements)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestTypeCheckCompIntFloatWarning(t *testing.T) {
	prog := parseOrFatal(t, `1 < 1.0`)
	_, warnings, errs := Resolve(prog.Statements)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(warnings) != 1 || warnings[0].Kind != CompIntFloat {
		t.Fatalf("got %v, want one CompIntFloat warning", warnings)
	}
}

func TestTypeCheckWrongReturnType(t *testing.T) {
	prog := parseOrFatal(t, `fn f() -> int { return "x" }`)
	_, _, errs := Resolve(prog.Statements)
	if len(errs) == 0 || errs[0].Kind != WrongReturnType {
		t.Fatalf("got %v, want WrongReturnType", errs)
	}
	if errs[0].From != "int" || errs[0].To != "str" {
		t.Fatalf("got %+v", errs[0])
	}
}

func TestTypeCheckWrongArgsNb(t *testing.T) {
	prog := parseOrFatal(t, `fn f(x: int) {}
f(1, 2)`)
	_, _, errs := Resolve(prog.Statements)
	if len(errs) == 0 || errs[0].Kind != WrongArgsNb {
		t.Fatalf("got %v, want WrongArgsNb", errs)
	}
	if errs[0].ArgsDecl != 1 || errs[0].ArgsGot != 2 {
		t.Fatalf("got %+v", errs[0])
	}
}

func TestTypeCheckForBoundNonNumeric(t *testing.T) {
	prog := parseOrFatal(t, `for (i = "a" to true) { print i }`)
	_, _, errs := Resolve(prog.Statements)
	if len(errs) == 0 || errs[0].Kind != NonNumForBound {
		t.Fatalf("got %v, want NonNumForBound", errs)
	}
	if errs[0].From != "str" {
		t.Fatalf("got From=%q, want str", errs[0].From)
	}
}

func TestTypeCheckForBoundWideningAllowed(t *testing.T) {
	prog := parseOrFatal(t, `for (i = 0 to 3.0) { print i }`)
	_, _, errs := Resolve(prog.Statements)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestUnreachAfterReturnInFnBody(t *testing.T) {
	prog := parseOrFatal(t, `fn f() { return; print 1 }`)
	_, warnings, errs := Resolve(prog.Statements)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(warnings) != 1 || warnings[0].Kind != UnreachAfterReturn {
		t.Fatalf("got %v, want one UnreachAfterReturn warning", warnings)
	}
}

func TestUnreachAfterReturnNotInNestedIfBlock(t *testing.T) {
	prog := parseOrFatal(t, `fn f() { if (true) { return } else { print 1 } }`)
	_, warnings, errs := Resolve(prog.Statements)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
}

func TestUnreachAfterReturnNotInNestedWhileBlock(t *testing.T) {
	prog := parseOrFatal(t, `fn f() { while (true) { return; print 1 } }`)
	_, warnings, errs := Resolve(prog.Statements)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
}

func TestTypeCheckDirectConstructorCall(t *testing.T) {
	prog := parseOrFatal(t, `struct Foo {}
Foo().init()`)
	_, _, errs := Resolve(prog.Statements)
	if len(errs) == 0 || errs[0].Kind != DirectConstructorCall {
		t.Fatalf("got %v, want DirectConstructorCall", errs)
	}
}
