package lexer

import (
	"testing"

	"github.com/lumenlang/lumen/internal/token"
)

func TestNextTokenBasics(t *testing.T) {
	input := `var a: int = 1
fn foo(x: int) -> float { return x }
struct Point { x: int y: int }
a == 1 != 2 <= 3 >= 4`

	want := []token.Type{
		token.VAR, token.IDENT, token.COLON, token.IDENT, token.ASSIGN, token.INT,
		token.FN, token.IDENT, token.LPAREN, token.IDENT, token.COLON, token.IDENT, token.RPAREN,
		token.ARROW, token.IDENT, token.LBRACE, token.RETURN, token.IDENT, token.RBRACE,
		token.STRUCT, token.IDENT, token.LBRACE,
		token.IDENT, token.COLON, token.IDENT,
		token.IDENT, token.COLON, token.IDENT,
		token.RBRACE,
		token.IDENT, token.EQ, token.INT, token.NOTEQ, token.INT, token.LTEQ, token.INT, token.GTEQ, token.INT,
		token.EOF,
	}

	l := New(input)
	for i, wt := range want {
		tok := l.NextToken()
		if tok.Type != wt {
			t.Fatalf("token %d: got %s, want %s (literal %q)", i, tok.Type, wt, tok.Literal)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	l := New(`"hi\n\"there\""`)
	tok := l.NextToken()
	if tok.Type != token.STRING {
		t.Fatalf("got %s, want STRING", tok.Type)
	}
	if tok.Literal != "hi\n\"there\"" {
		t.Fatalf("got %q", tok.Literal)
	}
}

func TestLineComments(t *testing.T) {
	l := New("var a // a comment\nvar b")
	var kinds []token.Type
	for {
		tok := l.NextToken()
		kinds = append(kinds, tok.Type)
		if tok.Type == token.EOF {
			break
		}
	}
	want := []token.Type{token.VAR, token.IDENT, token.VAR, token.IDENT, token.EOF}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
}

func TestPositionTracking(t *testing.T) {
	l := New("var\na")
	tok := l.NextToken()
	if tok.Pos.Line != 1 || tok.Pos.Column != 1 {
		t.Fatalf("got %v", tok.Pos)
	}
	tok = l.NextToken()
	if tok.Pos.Line != 2 {
		t.Fatalf("expected line 2, got %d", tok.Pos.Line)
	}
}

func TestFloatVsIntVsRange(t *testing.T) {
	l := New("1 1.5 1.")
	tok := l.NextToken()
	if tok.Type != token.INT || tok.Literal != "1" {
		t.Fatalf("got %v", tok)
	}
	tok = l.NextToken()
	if tok.Type != token.FLOAT || tok.Literal != "1.5" {
		t.Fatalf("got %v", tok)
	}
	tok = l.NextToken()
	if tok.Type != token.INT || tok.Literal != "1" {
		t.Fatalf("expected trailing dot not consumed, got %v", tok)
	}
	tok = l.NextToken()
	if tok.Type != token.DOT {
		t.Fatalf("got %v", tok)
	}
}
