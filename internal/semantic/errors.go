package semantic

import (
	"fmt"

	"github.com/lumenlang/lumen/internal/token"
)

// ErrorKind tags the fixed set of diagnostics the resolver can raise.
type ErrorKind int

const (
	UndeclaredVar ErrorKind = iota
	AlreadyDecl
	LocalVarInOwnInit
	TopLevelReturn
	SelfOutsideStruct

	InexistantField
	InexistantConstructor
	NonStructFieldAccess
	ReturnFromInit
	ConstructorReturnType
	DirectConstructorCall

	UnknownType
	VarNonType
	WrongTypeAssign
	WrongTypeLogical
	WrongVarType
	NonBoolBangUnary
	NonNumMinusUnary
	NonNumForBound
	InvalidOp
	UnknownOp

	NoTypeDeclButReturnOne
	NoReturnButDeclOne
	WrongReturnType
	WrongArgsNb
	WrongArgsType
	NonFnCall
)

// Error is a single diagnostic produced by the resolver. Every variant in
// the taxonomy is represented by this one struct, with only the fields it
// needs populated; Message() renders a human-readable description.
type Error struct {
	Kind ErrorKind
	Loc  token.Position

	// Name holds AlreadyDecl's kind string, UndeclaredVar/UnknownType's
	// name, InvalidOp/UnknownOp's operator, and struct names for
	// structure-specific errors.
	Name string
	// Member is the field/method name for InexistantField/DirectConstructorCall.
	Member string
	// From/To hold the two sides of a type mismatch (WrongTypeAssign,
	// WrongTypeLogical src/dst or lhs/rhs, WrongReturnType decl/got,
	// WrongVarType expected).
	From string
	To   string
	// ArgsDecl/ArgsGot hold declared/supplied argument counts for WrongArgsNb.
	ArgsDecl int
	ArgsGot  int
}

func (e *Error) Error() string { return e.Message() }

// Message renders the diagnostic as a human-readable string. Formatting of
// *where* this appears to a user (source line, caret) is the concern of
// package diagnostics, not this one.
func (e *Error) Message() string {
	switch e.Kind {
	case UndeclaredVar:
		return fmt.Sprintf("undeclared variable %q", e.Name)
	case AlreadyDecl:
		return fmt.Sprintf("%s already declared in this scope", e.Name)
	case LocalVarInOwnInit:
		return "can't read local variable in its own initializer"
	case TopLevelReturn:
		return "can't return from top-level code"
	case SelfOutsideStruct:
		return "can't use self outside of a structure method"
	case InexistantField:
		return fmt.Sprintf("structure %q has no field or method %q", e.Name, e.Member)
	case InexistantConstructor:
		return fmt.Sprintf("structure %q has no usable constructor", e.Name)
	case NonStructFieldAccess:
		return "only structures have fields or methods"
	case ReturnFromInit:
		return "can't return a value from a constructor"
	case ConstructorReturnType:
		return "constructor can't declare a return type"
	case DirectConstructorCall:
		return "can't call init directly, call the structure instead"
	case UnknownType:
		return fmt.Sprintf("unknown type %q", e.Name)
	case VarNonType:
		return fmt.Sprintf("%q does not name a variable or a type", e.Name)
	case WrongTypeAssign:
		return fmt.Sprintf("can't assign a value of type %s to a variable of type %s", e.From, e.To)
	case WrongTypeLogical:
		return fmt.Sprintf("operands of logical operator must have the same type, got %s and %s", e.From, e.To)
	case WrongVarType:
		return fmt.Sprintf("expression does not have type %s", e.From)
	case NonBoolBangUnary:
		return "operand of ! must be bool"
	case NonNumMinusUnary:
		return "operand of unary - must be int or float"
	case NonNumForBound:
		return fmt.Sprintf("for-loop bound must be int or float, got %s", e.From)
	case InvalidOp:
		return fmt.Sprintf("invalid operands of type %s and %s for operator %s", e.From, e.To, e.Name)
	case UnknownOp:
		return fmt.Sprintf("unknown operator %q", e.Name)
	case NoTypeDeclButReturnOne:
		return fmt.Sprintf("function has no declared return type but returns a value of type %s", e.From)
	case NoReturnButDeclOne:
		return fmt.Sprintf("function declares return type %s but never returns a value", e.From)
	case WrongReturnType:
		return fmt.Sprintf("function declares return type %s but returns %s", e.From, e.To)
	case WrongArgsNb:
		return fmt.Sprintf("expected %d argument(s), got %d", e.ArgsDecl, e.ArgsGot)
	case WrongArgsType:
		return fmt.Sprintf("can't pass a value of type %s where %s is expected", e.From, e.To)
	case NonFnCall:
		return "can only call functions or structures"
	default:
		return "unknown error"
	}
}

// WarningKind tags the fixed set of non-fatal diagnostics the resolver can
// raise. Warnings never abort the pass.
type WarningKind int

const (
	CompIntFloat WarningKind = iota
	UnreachAfterReturn
)

// Warning is a single non-fatal diagnostic.
type Warning struct {
	Kind WarningKind
	Loc  token.Position
}

func (w *Warning) Message() string {
	switch w.Kind {
	case CompIntFloat:
		return "comparing int and float, consider an explicit cast"
	case UnreachAfterReturn:
		return "unreachable code after return"
	default:
		return "unknown warning"
	}
}

func newErr(kind ErrorKind, loc token.Position) *Error {
	return &Error{Kind: kind, Loc: loc}
}
