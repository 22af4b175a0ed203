// Package semantic implements Lumen's static-analysis pass: the combined
// lexical-scope resolver and nominal type checker that runs between parsing
// and execution. It produces a scope-depth map consumed by the interpreter
// plus a set of diagnostics (fatal errors and non-fatal warnings).
package semantic

import (
	"github.com/lumenlang/lumen/internal/ast"
	"github.com/lumenlang/lumen/internal/token"
	"github.com/lumenlang/lumen/internal/types"
)

// Loc identifies a resolvable AST location: the key type of the output map.
type Loc = token.Position

// FnKind threads the surrounding function's role through the walker, so
// that return statements and self-expressions can be validated against
// their context.
type FnKind int

const (
	FnNone FnKind = iota
	FnFunction
	FnInit
	FnMethod
)

// Resolver owns all mutable state for a single resolve pass: the scope
// stack, the output locals map, and the diagnostic accumulators. A fresh
// Resolver is exclusive to one invocation; there is no shared state across
// calls to Resolve.
type Resolver struct {
	globals *Scope
	scopes  []*Scope

	locals   map[Loc]int
	errors   []*Error
	warnings []*Warning

	fnKind        FnKind
	fnReturnType  *types.Type
	fnReturnLoc   token.Position
	currentStruct string
}

// NewResolver returns a Resolver with a freshly seeded global scope.
func NewResolver() *Resolver {
	g := newScope()
	seedGlobals(g)
	return &Resolver{globals: g, locals: make(map[Loc]int)}
}

// Resolve runs the pass over the top-level statements, accumulating one
// error per failing top-level statement. On success it returns the
// scope-depth map; on failure, a non-empty error list. Call Warnings
// afterward either way to retrieve non-fatal diagnostics.
func (r *Resolver) Resolve(stmts []ast.Stmt) (map[Loc]int, []*Error) {
	for _, s := range stmts {
		if err := r.resolveStmt(s); err != nil {
			r.errors = append(r.errors, err)
		}
	}
	if len(r.errors) > 0 {
		return nil, r.errors
	}
	return r.locals, nil
}

// Warnings returns every non-fatal diagnostic collected during the pass.
func (r *Resolver) Warnings() []*Warning { return r.warnings }

// Resolve is the package-level entry point: resolve(stmts) in spec terms,
// with warnings surfaced as an extra return value between the locals map
// and the error list.
func Resolve(stmts []ast.Stmt) (map[Loc]int, []*Warning, []*Error) {
	r := NewResolver()
	locals, errs := r.Resolve(stmts)
	return locals, r.Warnings(), errs
}

// ---------- Statements ----------

func (r *Resolver) resolveStmt(s ast.Stmt) *Error {
	switch n := s.(type) {
	case *ast.ExprStmt:
		_, err := r.resolveExpr(n.Expr)
		return err
	case *ast.PrintStmt:
		_, err := r.resolveExpr(n.Value)
		return err
	case *ast.VarDecl:
		return r.resolveVarDecl(n)
	case *ast.Block:
		return r.resolveBlock(n)
	case *ast.IfStmt:
		return r.resolveIfStmt(n)
	case *ast.WhileStmt:
		return r.resolveWhileStmt(n)
	case *ast.ForStmt:
		return r.resolveForStmt(n)
	case *ast.FnDecl:
		return r.resolveFnDecl(n)
	case *ast.ReturnStmt:
		return r.resolveReturnStmt(n)
	case *ast.StructDecl:
		return r.resolveStructDecl(n)
	default:
		return nil
	}
}

func (r *Resolver) resolveVarDecl(v *ast.VarDecl) *Error {
	if err := r.declare(v.Name, "variable", v.NameTok.Pos); err != nil {
		return err
	}

	finalType := types.Type(types.Any{})
	if v.Type != nil {
		if err := r.checkTypeAnnotationExists(v.Type, v.Type.Pos()); err != nil {
			return err
		}
		finalType = resolveAnnotation(v.Type)
	}

	if v.Value != nil {
		vt, err := r.resolveExpr(v.Value)
		if err != nil {
			return err
		}
		if _, isAny := finalType.(types.Any); !isAny {
			if !types.Equal(finalType, vt) && !isCastable(vt, finalType) {
				return &Error{Kind: WrongTypeAssign, Loc: v.Value.Pos(), From: vt.String(), To: finalType.String()}
			}
		} else {
			finalType = vt
		}
	}

	r.define(v.Name)
	r.initVarType(v.Name, finalType)
	return nil
}

// resolveStmtList walks a raw statement list in the caller's current scope
// (the caller is responsible for begin/end-scope around it, or for reusing
// an already-open scope as the for-loop body does).
func (r *Resolver) resolveStmtList(stmts []ast.Stmt) *Error {
	for _, stmt := range stmts {
		if err := r.resolveStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// resolveFnBodyStmts is resolveStmtList plus UnreachAfterReturn tracking: the
// first statement following a Return anywhere in the list raises a single
// warning. Only a function's own top-level body gets this treatment — a
// nested if/while block is not a function body, and spec.md scopes the
// warning to "Function declaration" alone.
func (r *Resolver) resolveFnBodyStmts(stmts []ast.Stmt) *Error {
	sawReturn, warned := false, false
	for _, stmt := range stmts {
		if sawReturn && !warned {
			r.warnings = append(r.warnings, &Warning{Kind: UnreachAfterReturn, Loc: stmt.Pos()})
			warned = true
		}
		if err := r.resolveStmt(stmt); err != nil {
			return err
		}
		if _, ok := stmt.(*ast.ReturnStmt); ok {
			sawReturn = true
		}
	}
	return nil
}

func (r *Resolver) resolveBlock(b *ast.Block) *Error {
	r.beginScope()
	defer r.endScope()
	return r.resolveStmtList(b.Statements)
}

func (r *Resolver) resolveIfStmt(i *ast.IfStmt) *Error {
	if _, err := r.resolveExpr(i.Condition); err != nil {
		return err
	}
	if err := r.resolveBlock(i.Then); err != nil {
		return err
	}
	if i.Else != nil {
		return r.resolveStmt(i.Else)
	}
	return nil
}

func (r *Resolver) resolveWhileStmt(w *ast.WhileStmt) *Error {
	if _, err := r.resolveExpr(w.Condition); err != nil {
		return err
	}
	return r.resolveBlock(w.Body)
}

// checkForBound reports a NonNumForBound error unless t is Int or Float
// (mixing the two across Start/End is accepted, same as any other
// arithmetic context: Int widens to Float via isCastable).
func (r *Resolver) checkForBound(t types.Type, loc token.Position) *Error {
	t = collapseFn(t)
	if types.Equal(t, types.Int{}) || types.Equal(t, types.Float{}) || isCastable(t, types.Int{}) || isCastable(t, types.Float{}) {
		return nil
	}
	return &Error{Kind: NonNumForBound, Loc: loc, From: t.String()}
}

func (r *Resolver) resolveForStmt(f *ast.ForStmt) *Error {
	// Bound expressions are checked in the enclosing scope; the loop
	// variable is not yet in scope for them.
	startType, err := r.resolveExpr(f.Start)
	if err != nil {
		return err
	}
	if err := r.checkForBound(startType, f.Start.Pos()); err != nil {
		return err
	}
	endType, err := r.resolveExpr(f.End)
	if err != nil {
		return err
	}
	if err := r.checkForBound(endType, f.End.Pos()); err != nil {
		return err
	}

	r.beginScope()
	defer r.endScope()
	if err := r.declare(f.VarName, "variable", f.VarTok.Pos); err != nil {
		return err
	}
	r.define(f.VarName)
	r.initVarType(f.VarName, types.Int{})
	return r.resolveStmtList(f.Body.Statements)
}

func (r *Resolver) resolveFnDecl(f *ast.FnDecl) *Error {
	hasRet := f.Ret != nil
	declaredRet := types.Type(types.Void{})
	if hasRet {
		if err := r.checkTypeAnnotationExists(f.Ret, f.Ret.Pos()); err != nil {
			return err
		}
		declaredRet = resolveAnnotation(f.Ret)
	}

	var argTypes []types.Type
	for _, p := range f.Params {
		if p.Type != nil {
			if err := r.checkTypeAnnotationExists(p.Type, p.Token.Pos); err != nil {
				return err
			}
			argTypes = append(argTypes, resolveAnnotation(p.Type))
		} else {
			argTypes = append(argTypes, types.Any{})
		}
	}

	if err := r.declare(f.Name, "function", f.NameTok.Pos); err != nil {
		return err
	}
	r.define(f.Name)
	r.initVarType(f.Name, types.Fn{Args: argTypes, Ret: declaredRet})

	return r.walkFnBody(f.Params, f.Body, FnFunction, declaredRet, hasRet)
}

// walkFnBody opens the parameter scope, declares and types each parameter,
// walks the body, and validates the observed return against the declared
// one. Scope is always balanced via defer, even if the body errors.
func (r *Resolver) walkFnBody(params []*ast.Param, body *ast.Block, kind FnKind, declaredRet types.Type, hasDeclaredRet bool) *Error {
	r.beginScope()
	defer r.endScope()

	for _, p := range params {
		paramType := types.Type(types.Any{})
		if p.Type != nil {
			if err := r.checkTypeAnnotationExists(p.Type, p.Token.Pos); err != nil {
				return err
			}
			paramType = resolveAnnotation(p.Type)
		}
		if err := r.declare(p.Name, "variable", p.Token.Pos); err != nil {
			return err
		}
		r.define(p.Name)
		r.initVarType(p.Name, paramType)
	}

	savedKind := r.fnKind
	savedReturnType := r.fnReturnType
	savedReturnLoc := r.fnReturnLoc
	r.fnKind = kind
	r.fnReturnType = nil

	err := r.resolveFnBodyStmts(body.Statements)

	observed := r.fnReturnType
	observedLoc := r.fnReturnLoc

	r.fnKind = savedKind
	r.fnReturnType = savedReturnType
	r.fnReturnLoc = savedReturnLoc

	if err != nil {
		return err
	}

	switch {
	case observed != nil && hasDeclaredRet:
		if !types.Equal(*observed, declaredRet) {
			return &Error{Kind: WrongReturnType, Loc: observedLoc, From: declaredRet.String(), To: (*observed).String()}
		}
	case observed == nil && hasDeclaredRet:
		if _, isVoid := declaredRet.(types.Void); !isVoid {
			return &Error{Kind: NoReturnButDeclOne, Loc: body.Pos(), From: declaredRet.String()}
		}
	case observed != nil && !hasDeclaredRet:
		if _, isVoid := (*observed).(types.Void); !isVoid {
			return &Error{Kind: NoTypeDeclButReturnOne, Loc: observedLoc, From: (*observed).String()}
		}
	}
	return nil
}

func (r *Resolver) resolveReturnStmt(s *ast.ReturnStmt) *Error {
	if r.fnKind == FnNone {
		return &Error{Kind: TopLevelReturn, Loc: s.Pos()}
	}
	if r.fnKind == FnInit {
		return &Error{Kind: ReturnFromInit, Loc: s.Pos()}
	}

	vt := types.Type(types.Void{})
	if s.Value != nil {
		t, err := r.resolveExpr(s.Value)
		if err != nil {
			return err
		}
		vt = t
	}
	if r.fnReturnType == nil {
		r.fnReturnType = &vt
		r.fnReturnLoc = s.Pos()
	}
	return nil
}

func (r *Resolver) resolveStructDecl(s *ast.StructDecl) *Error {
	savedStruct := r.currentStruct
	defer func() { r.currentStruct = savedStruct }()
	r.currentStruct = s.Name

	if err := r.declare(s.Name, "structure", s.NameTok.Pos); err != nil {
		return err
	}
	r.define(s.Name)
	r.initVarType(s.Name, types.Struct{Name: s.Name})

	def := types.NewStructDef(s.Name)

	seenFields := make(map[string]bool)
	for _, f := range s.Fields {
		if seenFields[f.Name] {
			return &Error{Kind: AlreadyDecl, Loc: f.Token.Pos, Name: "field"}
		}
		seenFields[f.Name] = true

		fieldType := types.Type(types.Any{})
		if f.Type != nil {
			if err := r.checkTypeAnnotationExists(f.Type, f.Type.Pos()); err != nil {
				return err
			}
			fieldType = resolveAnnotation(f.Type)
		}
		def.Fields[f.Name] = fieldType
		def.FieldOrder = append(def.FieldOrder, f.Name)
	}

	seenMethods := make(map[string]bool)
	for _, m := range s.Methods {
		if seenMethods[m.Name] {
			return &Error{Kind: AlreadyDecl, Loc: m.NameTok.Pos, Name: "method"}
		}
		seenMethods[m.Name] = true

		hasRet := m.Ret != nil
		methodRet := types.Type(types.Void{})
		if hasRet {
			if err := r.checkTypeAnnotationExists(m.Ret, m.Ret.Pos()); err != nil {
				return err
			}
			methodRet = resolveAnnotation(m.Ret)
		}
		var margs []types.Type
		for _, p := range m.Params {
			if p.Type != nil {
				if err := r.checkTypeAnnotationExists(p.Type, p.Token.Pos); err != nil {
					return err
				}
				margs = append(margs, resolveAnnotation(p.Type))
			} else {
				margs = append(margs, types.Any{})
			}
		}
		def.Methods[m.Name] = types.Fn{Args: margs, Ret: methodRet}
		def.MethodOrder = append(def.MethodOrder, m.Name)
	}

	r.declareType(s.Name, def)

	r.beginScope()
	defer r.endScope()
	r.topScope().variables["self"] = true
	r.topScope().varTypes["self"] = types.Struct{Name: s.Name}

	for _, m := range s.Methods {
		kind := FnMethod
		if m.Name == "init" {
			kind = FnInit
		}
		if kind == FnInit && m.Ret != nil {
			return &Error{Kind: ConstructorReturnType, Loc: m.Ret.Pos()}
		}
		hasRet := m.Ret != nil
		methodRet := types.Type(types.Void{})
		if hasRet {
			methodRet = resolveAnnotation(m.Ret)
		}
		if err := r.walkFnBody(m.Params, m.Body, kind, methodRet, hasRet); err != nil {
			return err
		}
	}
	return nil
}

// ---------- Expressions ----------

func (r *Resolver) resolveExpr(e ast.Expr) (types.Type, *Error) {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return types.Int{}, nil
	case *ast.FloatLiteral:
		return types.Float{}, nil
	case *ast.StringLiteral:
		return types.Str{}, nil
	case *ast.BoolLiteral:
		return types.Bool{}, nil
	case *ast.NullLiteral:
		return r.getVarType("null", n.Pos())
	case *ast.Identifier:
		return r.resolveIdentifier(n)
	case *ast.SelfExpr:
		return r.resolveSelf(n)
	case *ast.UnaryExpr:
		return r.resolveUnary(n)
	case *ast.BinaryExpr:
		return r.resolveBinary(n)
	case *ast.LogicalExpr:
		return r.resolveLogical(n)
	case *ast.GroupingExpr:
		return r.resolveExpr(n.Inner)
	case *ast.AssignExpr:
		return r.resolveAssign(n)
	case *ast.CallExpr:
		return r.resolveCall(n)
	case *ast.GetExpr:
		return r.resolveGet(n)
	case *ast.SetExpr:
		return r.resolveSet(n)
	case *ast.IsExpr:
		return r.resolveIs(n)
	default:
		return types.Any{}, nil
	}
}

func (r *Resolver) resolveIdentifier(id *ast.Identifier) (types.Type, *Error) {
	if len(r.scopes) > 0 {
		if initialized, ok := r.scopes[len(r.scopes)-1].variables[id.Value]; ok && !initialized {
			return nil, &Error{Kind: LocalVarInOwnInit, Loc: id.Pos()}
		}
	}
	if err := r.resolveLocal(id.Pos(), id.Value); err != nil {
		return nil, err
	}
	return r.getVarType(id.Value, id.Pos())
}

func (r *Resolver) resolveSelf(s *ast.SelfExpr) (types.Type, *Error) {
	if r.currentStruct == "" {
		return nil, &Error{Kind: SelfOutsideStruct, Loc: s.Pos()}
	}
	if err := r.resolveLocal(s.Pos(), "self"); err != nil {
		return nil, err
	}
	return types.Struct{Name: r.currentStruct}, nil
}

func (r *Resolver) resolveUnary(u *ast.UnaryExpr) (types.Type, *Error) {
	vt, err := r.resolveExpr(u.Right)
	if err != nil {
		return nil, err
	}
	switch u.Operator {
	case "-":
		if !types.IsNumeric(vt) {
			return nil, &Error{Kind: NonNumMinusUnary, Loc: u.Pos()}
		}
		return vt, nil
	case "!":
		if _, ok := vt.(types.Bool); !ok {
			return nil, &Error{Kind: NonBoolBangUnary, Loc: u.Pos()}
		}
		return types.Bool{}, nil
	default:
		return nil, &Error{Kind: UnknownOp, Loc: u.Pos(), Name: u.Operator}
	}
}

func (r *Resolver) resolveBinary(b *ast.BinaryExpr) (types.Type, *Error) {
	lt, err := r.resolveExpr(b.Left)
	if err != nil {
		return nil, err
	}
	rt, err := r.resolveExpr(b.Right)
	if err != nil {
		return nil, err
	}
	lt = collapseFn(lt)
	rt = collapseFn(rt)

	// An operand still typed Any (declared with neither annotation nor
	// initializer, and not yet narrowed) is not checked against the table
	// below: comparisons yield Bool, every other operator yields Any.
	_, lAny := lt.(types.Any)
	_, rAny := rt.(types.Any)
	if lAny || rAny {
		switch b.Operator {
		case "<", ">", "<=", ">=", "==", "!=":
			return types.Bool{}, nil
		}
		return types.Any{}, nil
	}

	_, lInt := lt.(types.Int)
	_, lFloat := lt.(types.Float)
	_, lStr := lt.(types.Str)
	_, lBool := lt.(types.Bool)
	_, lIsStruct := lt.(types.Struct)
	_, rInt := rt.(types.Int)
	_, rFloat := rt.(types.Float)
	_, rStr := rt.(types.Str)
	_, rBool := rt.(types.Bool)
	_, rIsStruct := rt.(types.Struct)

	lNum, rNum := lInt || lFloat, rInt || rFloat

	invalid := func() *Error {
		return &Error{Kind: InvalidOp, Loc: b.Pos(), Name: b.Operator, From: lt.String(), To: rt.String()}
	}

	switch b.Operator {
	case "+":
		if lInt && rInt {
			return types.Int{}, nil
		}
		if lNum && rNum {
			return types.Float{}, nil
		}
		if lStr && rStr {
			return types.Str{}, nil
		}
		return nil, invalid()

	case "-", "/", "%":
		if lInt && rInt {
			return types.Int{}, nil
		}
		if lNum && rNum {
			return types.Float{}, nil
		}
		return nil, invalid()

	case "*":
		if lInt && rInt {
			return types.Int{}, nil
		}
		if lNum && rNum {
			return types.Float{}, nil
		}
		if (lInt && rStr) || (lStr && rInt) {
			return types.Str{}, nil
		}
		return nil, invalid()

	case "<", ">", "<=", ">=":
		if lNum && rNum {
			same := (lInt && rInt) || (lFloat && rFloat)
			if !same {
				r.warnings = append(r.warnings, &Warning{Kind: CompIntFloat, Loc: b.Pos()})
			}
			return types.Bool{}, nil
		}
		return nil, invalid()

	case "==", "!=":
		same := (lInt && rInt) || (lFloat && rFloat) || (lStr && rStr) || (lBool && rBool) || (lIsStruct && rIsStruct)
		if same {
			return types.Bool{}, nil
		}
		if lNum && rNum {
			r.warnings = append(r.warnings, &Warning{Kind: CompIntFloat, Loc: b.Pos()})
			return types.Bool{}, nil
		}
		return nil, invalid()

	default:
		return nil, &Error{Kind: UnknownOp, Loc: b.Pos(), Name: b.Operator}
	}
}

// resolveLogical evaluates the right operand before the left, and — when
// the operand types mismatch — reports the left-hand type for both sides
// of the diagnostic. Both quirks are preserved from the reference
// implementation this pass is grounded on rather than silently corrected.
func (r *Resolver) resolveLogical(l *ast.LogicalExpr) (types.Type, *Error) {
	rt, err := r.resolveExpr(l.Right)
	if err != nil {
		return nil, err
	}
	lt, err := r.resolveExpr(l.Left)
	if err != nil {
		return nil, err
	}
	if !types.Equal(lt, rt) {
		return nil, &Error{Kind: WrongTypeLogical, Loc: l.Pos(), From: lt.String(), To: lt.String()}
	}
	return lt, nil
}

// resolveAssign re-visits the value expression after using its type, a
// second, discarded pass that mirrors the reference implementation this
// pass is grounded on (observable only as a possible duplicate warning).
func (r *Resolver) resolveAssign(a *ast.AssignExpr) (types.Type, *Error) {
	if err := r.resolveLocal(a.Pos(), a.Name); err != nil {
		return nil, err
	}
	vt, err := r.resolveExpr(a.Value)
	if err != nil {
		return nil, err
	}
	if _, err := r.resolveExpr(a.Value); err != nil {
		return nil, err
	}

	nt, err := r.getVarType(a.Name, a.Pos())
	if err != nil {
		return nil, err
	}
	if types.Equal(nt, vt) {
		return nt, nil
	}
	if _, isAny := nt.(types.Any); isAny {
		r.updateVarType(a.Name, vt, a.Pos())
		return vt, nil
	}
	if isCastable(vt, nt) {
		return nt, nil
	}
	return nil, &Error{Kind: WrongTypeAssign, Loc: a.Pos(), From: vt.String(), To: nt.String()}
}

func (r *Resolver) resolveCall(c *ast.CallExpr) (types.Type, *Error) {
	ct, err := r.resolveExpr(c.Callee)
	if err != nil {
		return nil, err
	}

	var declArgs []types.Type
	var ret types.Type

	switch callee := ct.(type) {
	case types.Fn:
		declArgs, ret = callee.Args, callee.Ret
	case types.NativeFn:
		declArgs, ret = callee.Args, callee.Ret
	case types.Struct:
		def, derr := r.getTypeDef(callee.Name, c.Pos())
		if derr != nil {
			return nil, derr
		}
		init := def.Init()
		declArgs, ret = init.Args, types.Struct{Name: callee.Name}
	default:
		return nil, &Error{Kind: NonFnCall, Loc: c.Pos()}
	}

	if len(c.Args) != len(declArgs) {
		return nil, &Error{Kind: WrongArgsNb, Loc: c.Pos(), ArgsDecl: len(declArgs), ArgsGot: len(c.Args)}
	}

	for i, argExpr := range c.Args {
		at, err := r.resolveExpr(argExpr)
		if err != nil {
			return nil, err
		}
		if _, err := r.resolveExpr(argExpr); err != nil {
			return nil, err
		}

		declared := declArgs[i]
		effective := at
		if _, declaredIsFn := declared.(types.Fn); !declaredIsFn {
			effective = collapseFn(at)
		}
		if types.Equal(effective, declared) || isCastable(effective, declared) {
			continue
		}
		return nil, &Error{Kind: WrongArgsType, Loc: argExpr.Pos(), From: effective.String(), To: declared.String()}
	}

	return ret, nil
}

func (r *Resolver) resolveGet(g *ast.GetExpr) (types.Type, *Error) {
	if g.Name == "init" {
		return nil, &Error{Kind: DirectConstructorCall, Loc: g.Pos(), Member: "init"}
	}
	ot, err := r.resolveExpr(g.Object)
	if err != nil {
		return nil, err
	}
	st, ok := ot.(types.Struct)
	if !ok {
		return nil, &Error{Kind: NonStructFieldAccess, Loc: g.Pos()}
	}
	def, derr := r.getTypeDef(st.Name, g.Pos())
	if derr != nil {
		return nil, derr
	}
	if ft, ok := def.Fields[g.Name]; ok {
		return ft, nil
	}
	if mt, ok := def.Methods[g.Name]; ok {
		return mt, nil
	}
	return nil, &Error{Kind: InexistantField, Loc: g.Pos(), Name: st.Name, Member: g.Name}
}

func (r *Resolver) resolveSet(s *ast.SetExpr) (types.Type, *Error) {
	ot, err := r.resolveExpr(s.Object)
	if err != nil {
		return nil, err
	}
	st, ok := ot.(types.Struct)
	if !ok {
		return nil, &Error{Kind: NonStructFieldAccess, Loc: s.Pos()}
	}
	def, derr := r.getTypeDef(st.Name, s.Pos())
	if derr != nil {
		return nil, derr
	}
	ft, ok := def.Fields[s.Name]
	if !ok {
		return nil, &Error{Kind: InexistantField, Loc: s.Pos(), Name: st.Name, Member: s.Name}
	}
	vt, err := r.resolveExpr(s.Value)
	if err != nil {
		return nil, err
	}
	if types.Equal(vt, ft) || isCastable(vt, ft) {
		return ft, nil
	}
	return nil, &Error{Kind: WrongTypeAssign, Loc: s.Pos(), From: vt.String(), To: ft.String()}
}

func (r *Resolver) resolveIs(i *ast.IsExpr) (types.Type, *Error) {
	if err := r.checkTypeAnnotationExists(i.Type, i.Pos()); err != nil {
		return nil, err
	}
	lt, err := r.resolveExpr(i.Left)
	if err != nil {
		return nil, err
	}
	want := resolveAnnotation(i.Type)
	if !types.Equal(lt, want) {
		return nil, &Error{Kind: WrongVarType, Loc: i.Pos(), From: want.String()}
	}
	return types.Bool{}, nil
}
