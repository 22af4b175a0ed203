package semantic

import (
	"github.com/lumenlang/lumen/internal/token"
	"github.com/lumenlang/lumen/internal/types"
)

// Scope bundles the three maps a single lexical scope needs: which names are
// declared (and whether they're initialized yet), each name's committed
// type, and which structure definitions are visible from here.
type Scope struct {
	variables map[string]bool // name -> initialized
	varTypes  map[string]types.Type
	typesDef  map[string]*types.StructDef
}

func newScope() *Scope {
	return &Scope{
		variables: make(map[string]bool),
		varTypes:  make(map[string]types.Type),
		typesDef:  make(map[string]*types.StructDef),
	}
}

// beginScope pushes a fresh scope onto the stack.
func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, newScope())
}

// endScope pops the innermost scope. Pairs with beginScope; callers use
// defer so the pop happens on every exit path, including an early error
// return, per the scope-guard discipline the resolver follows throughout.
func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// topScope returns the innermost scope, or globals if the stack is empty.
func (r *Resolver) topScope() *Scope {
	if len(r.scopes) == 0 {
		return r.globals
	}
	return r.scopes[len(r.scopes)-1]
}

// declare marks name as "declared but uninitialized" in the innermost
// scope. kind is one of "variable", "function", "structure", "field",
// "method", "type" and only feeds the AlreadyDecl diagnostic.
func (r *Resolver) declare(name, kind string, loc token.Position) *Error {
	s := r.topScope()
	if _, ok := s.variables[name]; ok {
		return &Error{Kind: AlreadyDecl, Loc: loc, Name: kind}
	}
	s.variables[name] = false
	return nil
}

// define flips the initialized flag for name in the innermost scope. It is
// idempotent; a name never declared there is added as initialized (callers
// always declare first).
func (r *Resolver) define(name string) {
	s := r.topScope()
	s.variables[name] = true
}

// resolveLocal searches the scope stack from innermost outward for the
// first scope where name is declared and initialized, records the scope
// distance in r.locals, and returns success. A name present only in an
// uninitialized scope is skipped over, matching the ground-truth resolver:
// the "own initializer" case is caught earlier, by the identifier visitor
// checking the innermost scope before ever calling resolveLocal. Falling
// through to globals (or a pre-seeded global) is success without a
// recorded depth; anything else is UndeclaredVar.
func (r *Resolver) resolveLocal(loc token.Position, name string) *Error {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if init, ok := r.scopes[i].variables[name]; ok && init {
			depth := len(r.scopes) - 1 - i
			r.locals[loc] = depth
			return nil
		}
	}
	if _, ok := r.globals.variables[name]; ok {
		return nil
	}
	return &Error{Kind: UndeclaredVar, Loc: loc, Name: name}
}
