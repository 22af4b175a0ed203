// Package interp implements a minimal tree-walking evaluator for Lumen,
// exercising the scope-depth map produced by package semantic to perform
// O(1)-hop variable lookups instead of re-searching the environment chain.
package interp

import (
	"fmt"
	"strconv"

	"github.com/lumenlang/lumen/internal/ast"
)

// Value is every runtime value must implement. Kept narrow and closed,
// mirroring the VarType sum it is checked against.
type Value interface {
	Type() string
	String() string
}

type IntValue struct{ Value int64 }

func (v IntValue) Type() string   { return "int" }
func (v IntValue) String() string { return strconv.FormatInt(v.Value, 10) }

type FloatValue struct{ Value float64 }

func (v FloatValue) Type() string   { return "float" }
func (v FloatValue) String() string { return strconv.FormatFloat(v.Value, 'g', -1, 64) }

type StrValue struct{ Value string }

func (v StrValue) Type() string   { return "str" }
func (v StrValue) String() string { return v.Value }

type BoolValue struct{ Value bool }

func (v BoolValue) Type() string { return "bool" }
func (v BoolValue) String() string {
	if v.Value {
		return "true"
	}
	return "false"
}

type NullValue struct{}

func (NullValue) Type() string   { return "null" }
func (NullValue) String() string { return "null" }

type VoidValue struct{}

func (VoidValue) Type() string   { return "void" }
func (VoidValue) String() string { return "void" }

// FnValue is a user-declared function or method closure: its parameter
// names, body, and the environment it closed over. Method values also
// carry the bound receiver so a later Call need not re-resolve self.
type FnValue struct {
	Name     string
	Params   []string
	Body     *ast.Block
	Closure  *Environment
	Receiver *StructInstance // nil for plain functions
}

func (f *FnValue) Type() string   { return "fn" }
func (f *FnValue) String() string { return "<fn " + f.Name + ">" }

// NativeFnValue wraps a Go function exposed to Lumen source, such as clock.
type NativeFnValue struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

func (n *NativeFnValue) Type() string   { return "native fn" }
func (n *NativeFnValue) String() string { return "<native fn " + n.Name + ">" }

// StructValue is a structure's type value: the callable constructor bound
// to its definition (fields default to null, methods bound at call time).
type StructValue struct {
	Def *StructDef
}

func (s *StructValue) Type() string   { return s.Def.Name }
func (s *StructValue) String() string { return "<struct " + s.Def.Name + ">" }

// StructInstance is one constructed object: a struct's field values plus a
// reference back to its definition for method dispatch.
type StructInstance struct {
	Def    *StructDef
	Fields map[string]Value
}

func (s *StructInstance) Type() string { return s.Def.Name }
func (s *StructInstance) String() string {
	return fmt.Sprintf("<%s instance>", s.Def.Name)
}

// StructDef is the runtime twin of types.StructDef: it additionally carries
// method closures (environment included), which the static type has no use
// for.
type StructDef struct {
	Name    string
	Fields  []string
	Methods map[string]*FnValue
}
