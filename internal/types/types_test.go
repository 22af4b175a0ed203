package types

import "testing"

func TestEqualScalars(t *testing.T) {
	if !Equal(Int{}, Int{}) {
		t.Fatal("Int should equal Int")
	}
	if Equal(Int{}, Float{}) {
		t.Fatal("Int should not equal Float")
	}
}

func TestEqualStructByName(t *testing.T) {
	if !Equal(Struct{Name: "Foo"}, Struct{Name: "Foo"}) {
		t.Fatal("same-named structs should be equal")
	}
	if Equal(Struct{Name: "Foo"}, Struct{Name: "Bar"}) {
		t.Fatal("different-named structs should not be equal")
	}
}

func TestEqualFnStructural(t *testing.T) {
	a := Fn{Args: []Type{Int{}, Str{}}, Ret: Bool{}}
	b := Fn{Args: []Type{Int{}, Str{}}, Ret: Bool{}}
	c := Fn{Args: []Type{Int{}}, Ret: Bool{}}
	if !Equal(a, b) {
		t.Fatal("structurally identical Fn types should be equal")
	}
	if Equal(a, c) {
		t.Fatal("Fn types with different arity should not be equal")
	}
}

func TestIsCastable(t *testing.T) {
	if !IsCastable(Int{}, Float{}) {
		t.Fatal("Int should be castable to Float")
	}
	if IsCastable(Float{}, Int{}) {
		t.Fatal("Float should not be castable to Int")
	}
	if IsCastable(Str{}, Float{}) {
		t.Fatal("Str should not be castable to Float")
	}
}

func TestReturnTypeOf(t *testing.T) {
	fn := Fn{Args: nil, Ret: Str{}}
	if !Equal(ReturnTypeOf(fn), Str{}) {
		t.Fatal("ReturnTypeOf should collapse Fn to its Ret")
	}
	if !Equal(ReturnTypeOf(Int{}), Int{}) {
		t.Fatal("ReturnTypeOf should pass through non-Fn types unchanged")
	}
}

func TestStructDefSynthesizesInit(t *testing.T) {
	sd := NewStructDef("Foo")
	if sd.HasExplicitInit() {
		t.Fatal("fresh StructDef should have no explicit init")
	}
	init := sd.Init()
	if len(init.Args) != 0 {
		t.Fatal("synthesized init should take no arguments")
	}
	if !Equal(init.Ret, Void{}) {
		t.Fatal("synthesized init should return Void")
	}
}
