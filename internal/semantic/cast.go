package semantic

import "github.com/lumenlang/lumen/internal/types"

// isCastable reports whether a value of type from may stand in for a value
// of type to. Exactly one implicit widening exists in the language.
func isCastable(from, to types.Type) bool {
	return types.IsCastable(from, to)
}

// collapseFn collapses a function-valued type to its return type, per the
// rule that a function used in an arithmetic or comparison context refers
// to its result.
func collapseFn(t types.Type) types.Type {
	return types.ReturnTypeOf(t)
}
