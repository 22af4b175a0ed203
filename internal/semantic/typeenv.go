package semantic

import (
	"github.com/lumenlang/lumen/internal/ast"
	"github.com/lumenlang/lumen/internal/token"
	"github.com/lumenlang/lumen/internal/types"
)

// initVarType binds (or overwrites) the committed type for name in the
// topmost scope. Called once, right after define(), at every declaration
// site (variables, function names, parameters, structure names).
func (r *Resolver) initVarType(name string, t types.Type) {
	r.topScope().varTypes[name] = t
}

// updateVarType upgrades the recorded type of a variable whose declared
// type was Any, on its first concrete assignment. loc is the assignment
// target's location: if resolveLocal already recorded a depth for it, that
// depth picks the scope to update; otherwise the update applies to globals.
func (r *Resolver) updateVarType(name string, t types.Type, loc token.Position) {
	if depth, ok := r.locals[loc]; ok {
		idx := len(r.scopes) - 1 - depth
		if idx >= 0 && idx < len(r.scopes) {
			r.scopes[idx].varTypes[name] = t
			return
		}
	}
	r.globals.varTypes[name] = t
}

// declareType installs a structure definition in the topmost scope.
func (r *Resolver) declareType(name string, def *types.StructDef) {
	r.topScope().typesDef[name] = def
}

// checkTypeExists reports whether typeName (a type annotation's leaf name)
// is visible: a pre-seeded primitive, a user-defined structure declared in
// any enclosing scope, or one declared globally.
func (r *Resolver) checkTypeExists(typeName string, loc token.Position) *Error {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i].typesDef[typeName]; ok {
			return nil
		}
	}
	if _, ok := r.globals.typesDef[typeName]; ok {
		return nil
	}
	return &Error{Kind: UnknownType, Loc: loc, Name: typeName}
}

// checkTypeAnnotationExists validates a full (possibly function-shaped)
// type annotation. Only named leaves are checked against checkTypeExists;
// primitive names always pass because they are pre-seeded in the global
// types_def.
func (r *Resolver) checkTypeAnnotationExists(t *ast.TypeAnnotation, loc token.Position) *Error {
	if t == nil {
		return nil
	}
	if !t.IsFn {
		return r.checkTypeExists(t.Name, loc)
	}
	for _, p := range t.Params {
		if err := r.checkTypeAnnotationExists(p, loc); err != nil {
			return err
		}
	}
	if t.Ret != nil {
		return r.checkTypeAnnotationExists(t.Ret, loc)
	}
	return nil
}

// getVarType searches inner-to-outer, preferring var_types, then falling
// back to typesDef (so a structure name used as an expression resolves to
// Struct(name) — the type value itself, not an instance).
func (r *Resolver) getVarType(name string, loc token.Position) (types.Type, *Error) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if t, ok := r.scopes[i].varTypes[name]; ok {
			return t, nil
		}
	}
	if t, ok := r.globals.varTypes[name]; ok {
		return t, nil
	}
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i].typesDef[name]; ok {
			return types.Struct{Name: name}, nil
		}
	}
	if _, ok := r.globals.typesDef[name]; ok {
		return types.Struct{Name: name}, nil
	}
	return nil, &Error{Kind: VarNonType, Loc: loc, Name: name}
}

// resolveAnnotation converts a parsed type annotation into a VarType. It
// does not check existence; call checkTypeAnnotationExists first.
func resolveAnnotation(t *ast.TypeAnnotation) types.Type {
	if t == nil {
		return types.Any{}
	}
	if t.IsFn {
		fn := types.Fn{Ret: types.Void{}}
		for _, p := range t.Params {
			fn.Args = append(fn.Args, resolveAnnotation(p))
		}
		if t.Ret != nil {
			fn.Ret = resolveAnnotation(t.Ret)
		}
		return fn
	}
	switch t.Name {
	case "any":
		return types.Any{}
	case "int":
		return types.Int{}
	case "float":
		return types.Float{}
	case "str":
		return types.Str{}
	case "bool":
		return types.Bool{}
	case "void":
		return types.Void{}
	default:
		return types.Struct{Name: t.Name}
	}
}

// getTypeDef searches inner-to-outer for a structure's definition record.
func (r *Resolver) getTypeDef(name string, loc token.Position) (*types.StructDef, *Error) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if def, ok := r.scopes[i].typesDef[name]; ok {
			return def, nil
		}
	}
	if def, ok := r.globals.typesDef[name]; ok {
		return def, nil
	}
	return nil, &Error{Kind: UnknownType, Loc: loc, Name: name}
}
