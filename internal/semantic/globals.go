package semantic

import "github.com/lumenlang/lumen/internal/types"

// seedGlobals populates the always-present global scope with the language's
// built-in bindings and pre-declared type names, so that references to them
// never fail to resolve.
func seedGlobals(g *Scope) {
	seedVar := func(name string, t types.Type) {
		g.variables[name] = true
		g.varTypes[name] = t
	}
	seedVar("true", types.Bool{})
	seedVar("false", types.Bool{})
	seedVar("null", types.Null{})
	seedVar("clock", types.NativeFn{Args: nil, Ret: types.Float{}})

	seedType := func(name string) {
		g.typesDef[name] = types.NewStructDef(name)
	}
	seedType("any")
	seedType("int")
	seedType("float")
	seedType("str")
	seedType("bool")
	seedType("void")
}
