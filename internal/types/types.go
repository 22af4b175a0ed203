// Package types implements Lumen's VarType sum: the small, closed set of
// static types the semantic pass reasons about.
package types

import "strings"

// Type is implemented by every concrete VarType variant. It is a closed
// tagged sum expressed as an interface + type switch, the idiom used
// throughout this toolchain for AST and value variants alike.
type Type interface {
	typeNode()
	String() string
}

type Any struct{}

func (Any) typeNode()     {}
func (Any) String() string { return "any" }

type Int struct{}

func (Int) typeNode()     {}
func (Int) String() string { return "int" }

type Float struct{}

func (Float) typeNode()     {}
func (Float) String() string { return "float" }

type Str struct{}

func (Str) typeNode()     {}
func (Str) String() string { return "str" }

type Bool struct{}

func (Bool) typeNode()     {}
func (Bool) String() string { return "bool" }

type Null struct{}

func (Null) typeNode()     {}
func (Null) String() string { return "null" }

type Void struct{}

func (Void) typeNode()     {}
func (Void) String() string { return "void" }

// Struct is a nominal reference to a user-defined structure, by name.
type Struct struct {
	Name string
}

func (Struct) typeNode()       {}
func (s Struct) String() string { return s.Name }

// Fn is a first-class function type.
type Fn struct {
	Args []Type
	Ret  Type
}

func (Fn) typeNode() {}
func (f Fn) String() string {
	var sb strings.Builder
	sb.WriteString("fn(")
	for i, a := range f.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	sb.WriteString(") -> ")
	if f.Ret != nil {
		sb.WriteString(f.Ret.String())
	} else {
		sb.WriteString("void")
	}
	return sb.String()
}

// NativeFn is the type of opaque built-in callables such as clock.
type NativeFn struct {
	Args []Type
	Ret  Type
}

func (NativeFn) typeNode()     {}
func (n NativeFn) String() string { return "native fn" }

// Equal reports whether a and b are the same VarType. Struct equality is by
// name; Fn equality is structural (element-wise args and return type);
// every other variant is a singleton compared by concrete Go type.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch at := a.(type) {
	case Struct:
		bt, ok := b.(Struct)
		return ok && at.Name == bt.Name
	case Fn:
		bt, ok := b.(Fn)
		if !ok {
			return false
		}
		if len(at.Args) != len(bt.Args) {
			return false
		}
		for i := range at.Args {
			if !Equal(at.Args[i], bt.Args[i]) {
				return false
			}
		}
		return Equal(at.Ret, bt.Ret)
	default:
		switch b.(type) {
		case Struct, Fn:
			return false
		}
		return sameKind(a, b)
	}
}

func sameKind(a, b Type) bool {
	switch a.(type) {
	case Any:
		_, ok := b.(Any)
		return ok
	case Int:
		_, ok := b.(Int)
		return ok
	case Float:
		_, ok := b.(Float)
		return ok
	case Str:
		_, ok := b.(Str)
		return ok
	case Bool:
		_, ok := b.(Bool)
		return ok
	case Null:
		_, ok := b.(Null)
		return ok
	case Void:
		_, ok := b.(Void)
		return ok
	case NativeFn:
		_, ok := b.(NativeFn)
		return ok
	}
	return false
}

// IsCastable reports whether a value of type from may be implicitly widened
// to type to. Exactly one widening is permitted in the language: Int -> Float.
func IsCastable(from, to Type) bool {
	_, fromInt := from.(Int)
	_, toFloat := to.(Float)
	return fromInt && toFloat
}

// IsNumeric reports whether t is Int or Float.
func IsNumeric(t Type) bool {
	switch t.(type) {
	case Int, Float:
		return true
	}
	return false
}

// ReturnTypeOf collapses a function-valued type to its return type. Used
// whenever a function value appears in an arithmetic/comparison context,
// per the "functions used in arithmetic contexts refer to their result"
// rule. Any other type is returned unchanged.
func ReturnTypeOf(t Type) Type {
	switch ft := t.(type) {
	case Fn:
		return ft.Ret
	case NativeFn:
		return ft.Ret
	default:
		return t
	}
}

// StructDef is a user-defined structure's shape: its fields and methods.
type StructDef struct {
	Name    string
	Fields  map[string]Type
	Methods map[string]Fn
	// FieldOrder/MethodOrder preserve declaration order for diagnostics
	// and deterministic iteration; the maps above are the source of truth.
	FieldOrder  []string
	MethodOrder []string
}

// NewStructDef returns an empty StructDef ready to be populated.
func NewStructDef(name string) *StructDef {
	return &StructDef{
		Name:    name,
		Fields:  make(map[string]Type),
		Methods: make(map[string]Fn),
	}
}

// Init returns the structure's constructor method, synthesizing the
// implicit `init() -> Void` when the source declared none.
func (s *StructDef) Init() Fn {
	if fn, ok := s.Methods["init"]; ok {
		return fn
	}
	return Fn{Args: nil, Ret: Void{}}
}

// HasExplicitInit reports whether the source declared its own init method.
func (s *StructDef) HasExplicitInit() bool {
	_, ok := s.Methods["init"]
	return ok
}
