package interp

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/lumenlang/lumen/internal/ast"
	"github.com/lumenlang/lumen/internal/token"
)

// Interpreter walks a resolved AST and executes it directly, the idiom the
// teacher itself falls back to for bodies once parsing and semantic
// analysis are done. It consults a scope-depth map (semantic.Resolve's
// output) for O(1)-hop variable lookups instead of re-walking the
// environment chain on every reference.
//
// Control flow (return) is tracked with interpreter-level flags, set by
// execReturn and checked after every statement in a block — the same
// signal-flag idiom the teacher's own evaluator uses for its exit/break/
// continue handling, scaled down to the one signal Lumen needs.
type Interpreter struct {
	globals *Environment
	locals  map[token.Position]int
	out     io.Writer

	returning   bool
	returnValue Value
}

// New returns an Interpreter with the built-in globals seeded, writing
// print output to out.
func New(out io.Writer) *Interpreter {
	i := &Interpreter{globals: NewEnvironment(), out: out}
	i.globals.Define("true", BoolValue{true})
	i.globals.Define("false", BoolValue{false})
	i.globals.Define("null", NullValue{})
	i.globals.Define("clock", &NativeFnValue{
		Name: "clock",
		Fn: func(args []Value) (Value, error) {
			return FloatValue{Value: float64(time.Now().UnixNano()) / 1e9}, nil
		},
	})
	return i
}

// Run executes prog's top-level statements against the global environment,
// using locals (as produced by semantic.Resolve) to drive variable lookups.
func (i *Interpreter) Run(prog *ast.Program, locals map[token.Position]int) error {
	i.locals = locals
	for _, s := range prog.Statements {
		if err := i.exec(s, i.globals); err != nil {
			return err
		}
	}
	return nil
}

// ---------- Statement execution ----------

func (i *Interpreter) exec(s ast.Stmt, env *Environment) error {
	switch n := s.(type) {
	case *ast.ExprStmt:
		_, err := i.eval(n.Expr, env)
		return err
	case *ast.PrintStmt:
		v, err := i.eval(n.Value, env)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.out, v.String())
		return nil
	case *ast.VarDecl:
		return i.execVarDecl(n, env)
	case *ast.Block:
		return i.execBlockStatements(n.Statements, NewEnclosedEnvironment(env))
	case *ast.IfStmt:
		return i.execIf(n, env)
	case *ast.WhileStmt:
		return i.execWhile(n, env)
	case *ast.ForStmt:
		return i.execFor(n, env)
	case *ast.FnDecl:
		return i.execFnDecl(n, env)
	case *ast.ReturnStmt:
		return i.execReturn(n, env)
	case *ast.StructDecl:
		return i.execStructDecl(n, env)
	default:
		return nil
	}
}

// execBlockStatements runs stmts in env, stopping early (without error) the
// moment a return signal is observed, so it propagates straight up through
// nested blocks to the call that is waiting for it.
func (i *Interpreter) execBlockStatements(stmts []ast.Stmt, env *Environment) error {
	for _, s := range stmts {
		if err := i.exec(s, env); err != nil {
			return err
		}
		if i.returning {
			return nil
		}
	}
	return nil
}

func (i *Interpreter) execVarDecl(v *ast.VarDecl, env *Environment) error {
	var val Value = NullValue{}
	if v.Value != nil {
		vv, err := i.eval(v.Value, env)
		if err != nil {
			return err
		}
		val = vv
	}
	if v.Type != nil && !v.Type.IsFn && v.Type.Name == "float" {
		if iv, ok := val.(IntValue); ok {
			val = FloatValue{Value: float64(iv.Value)}
		}
	}
	env.Define(v.Name, val)
	return nil
}

func (i *Interpreter) execIf(s *ast.IfStmt, env *Environment) error {
	cv, err := i.eval(s.Condition, env)
	if err != nil {
		return err
	}
	b, ok := cv.(BoolValue)
	if !ok {
		return newRuntimeError(s.Condition.Pos(), "if condition must be bool")
	}
	if b.Value {
		return i.execBlockStatements(s.Then.Statements, NewEnclosedEnvironment(env))
	}
	if s.Else != nil {
		return i.exec(s.Else, env)
	}
	return nil
}

func (i *Interpreter) execWhile(s *ast.WhileStmt, env *Environment) error {
	for {
		cv, err := i.eval(s.Condition, env)
		if err != nil {
			return err
		}
		b, ok := cv.(BoolValue)
		if !ok {
			return newRuntimeError(s.Condition.Pos(), "while condition must be bool")
		}
		if !b.Value {
			return nil
		}
		if err := i.execBlockStatements(s.Body.Statements, NewEnclosedEnvironment(env)); err != nil {
			return err
		}
		if i.returning {
			return nil
		}
	}
}

func (i *Interpreter) execFor(f *ast.ForStmt, env *Environment) error {
	startV, err := i.eval(f.Start, env)
	if err != nil {
		return err
	}
	endV, err := i.eval(f.End, env)
	if err != nil {
		return err
	}
	start, ok := asInt(startV)
	if !ok {
		return newRuntimeError(f.Start.Pos(), "for bound must be numeric")
	}
	end, ok := asInt(endV)
	if !ok {
		return newRuntimeError(f.End.Pos(), "for bound must be numeric")
	}

	for v := start; v <= end; v++ {
		loopEnv := NewEnclosedEnvironment(env)
		loopEnv.Define(f.VarName, IntValue{Value: v})
		if err := i.execBlockStatements(f.Body.Statements, loopEnv); err != nil {
			return err
		}
		if i.returning {
			return nil
		}
	}
	return nil
}

func (i *Interpreter) execFnDecl(f *ast.FnDecl, env *Environment) error {
	params := make([]string, len(f.Params))
	for idx, p := range f.Params {
		params[idx] = p.Name
	}
	env.Define(f.Name, &FnValue{Name: f.Name, Params: params, Body: f.Body, Closure: env})
	return nil
}

func (i *Interpreter) execReturn(r *ast.ReturnStmt, env *Environment) error {
	val := Value(VoidValue{})
	if r.Value != nil {
		v, err := i.eval(r.Value, env)
		if err != nil {
			return err
		}
		val = v
	}
	i.returnValue = val
	i.returning = true
	return nil
}

func (i *Interpreter) execStructDecl(s *ast.StructDecl, env *Environment) error {
	fieldNames := make([]string, len(s.Fields))
	for idx, f := range s.Fields {
		fieldNames[idx] = f.Name
	}
	def := &StructDef{Name: s.Name, Fields: fieldNames, Methods: make(map[string]*FnValue)}
	env.Define(s.Name, &StructValue{Def: def})

	for _, m := range s.Methods {
		params := make([]string, len(m.Params))
		for pi, p := range m.Params {
			params[pi] = p.Name
		}
		def.Methods[m.Name] = &FnValue{Name: m.Name, Params: params, Body: m.Body, Closure: env}
	}
	return nil
}

// ---------- Expression evaluation ----------

func (i *Interpreter) eval(e ast.Expr, env *Environment) (Value, error) {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return IntValue{Value: n.Value}, nil
	case *ast.FloatLiteral:
		return FloatValue{Value: n.Value}, nil
	case *ast.StringLiteral:
		return StrValue{Value: n.Value}, nil
	case *ast.BoolLiteral:
		return BoolValue{Value: n.Value}, nil
	case *ast.NullLiteral:
		return NullValue{}, nil
	case *ast.Identifier:
		return i.lookupVar(n.Pos(), n.Value, env)
	case *ast.SelfExpr:
		return i.lookupVar(n.Pos(), "self", env)
	case *ast.UnaryExpr:
		return i.evalUnary(n, env)
	case *ast.BinaryExpr:
		return i.evalBinary(n, env)
	case *ast.LogicalExpr:
		return i.evalLogical(n, env)
	case *ast.GroupingExpr:
		return i.eval(n.Inner, env)
	case *ast.AssignExpr:
		return i.evalAssign(n, env)
	case *ast.CallExpr:
		return i.evalCall(n, env)
	case *ast.GetExpr:
		return i.evalGet(n, env)
	case *ast.SetExpr:
		return i.evalSet(n, env)
	case *ast.IsExpr:
		// Type compatibility was already settled statically (is fails at
		// resolve time on a mismatch, not at runtime); evaluate the operand
		// for side effects and report success.
		if _, err := i.eval(n.Left, env); err != nil {
			return nil, err
		}
		return BoolValue{Value: true}, nil
	default:
		return nil, newRuntimeError(e.Pos(), "cannot evaluate %T", e)
	}
}

func (i *Interpreter) lookupVar(loc token.Position, name string, env *Environment) (Value, error) {
	if depth, ok := i.locals[loc]; ok {
		if v, ok := env.GetAt(depth, name); ok {
			return v, nil
		}
		return nil, newRuntimeError(loc, "undefined variable %q", name)
	}
	if v, ok := i.globals.Get(name); ok {
		return v, nil
	}
	return nil, newRuntimeError(loc, "undefined variable %q", name)
}

func (i *Interpreter) evalUnary(u *ast.UnaryExpr, env *Environment) (Value, error) {
	v, err := i.eval(u.Right, env)
	if err != nil {
		return nil, err
	}
	switch u.Operator {
	case "-":
		switch t := v.(type) {
		case IntValue:
			return IntValue{Value: -t.Value}, nil
		case FloatValue:
			return FloatValue{Value: -t.Value}, nil
		}
		return nil, newRuntimeError(u.Pos(), "operand of unary - must be numeric")
	case "!":
		if b, ok := v.(BoolValue); ok {
			return BoolValue{Value: !b.Value}, nil
		}
		return nil, newRuntimeError(u.Pos(), "operand of ! must be bool")
	default:
		return nil, newRuntimeError(u.Pos(), "unknown operator %q", u.Operator)
	}
}

// evalLogical short-circuits in the ordinary left-to-right sense. This is
// distinct from (and not bound by) the static checker's right-then-left
// visitation order, which only affects diagnostic evaluation, not runtime
// execution.
func (i *Interpreter) evalLogical(l *ast.LogicalExpr, env *Environment) (Value, error) {
	lv, err := i.eval(l.Left, env)
	if err != nil {
		return nil, err
	}
	lb, ok := lv.(BoolValue)
	if !ok {
		return nil, newRuntimeError(l.Pos(), "operand of %s must be bool", l.Operator)
	}
	if l.Operator == "or" && lb.Value {
		return lb, nil
	}
	if l.Operator == "and" && !lb.Value {
		return lb, nil
	}
	rv, err := i.eval(l.Right, env)
	if err != nil {
		return nil, err
	}
	if _, ok := rv.(BoolValue); !ok {
		return nil, newRuntimeError(l.Pos(), "operand of %s must be bool", l.Operator)
	}
	return rv, nil
}

func (i *Interpreter) evalAssign(a *ast.AssignExpr, env *Environment) (Value, error) {
	v, err := i.eval(a.Value, env)
	if err != nil {
		return nil, err
	}
	if depth, ok := i.locals[a.Pos()]; ok {
		if env.AssignAt(depth, a.Name, v) {
			return v, nil
		}
		return nil, newRuntimeError(a.Pos(), "undefined variable %q", a.Name)
	}
	if i.globals.Assign(a.Name, v) {
		return v, nil
	}
	return nil, newRuntimeError(a.Pos(), "undefined variable %q", a.Name)
}

func (i *Interpreter) evalCall(c *ast.CallExpr, env *Environment) (Value, error) {
	callee, err := i.eval(c.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]Value, 0, len(c.Args))
	for _, a := range c.Args {
		v, err := i.eval(a, env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	switch fn := callee.(type) {
	case *FnValue:
		return i.callFn(fn, args)
	case *NativeFnValue:
		v, err := fn.Fn(args)
		if err != nil {
			return nil, newRuntimeError(c.Pos(), "%s", err.Error())
		}
		return v, nil
	case *StructValue:
		return i.construct(fn, args)
	default:
		return nil, newRuntimeError(c.Pos(), "can only call functions or structures")
	}
}

func (i *Interpreter) callFn(fn *FnValue, args []Value) (Value, error) {
	// A method's receiver lives one scope outside its parameters, matching
	// the resolver's struct scope that holds self around each method body.
	parent := fn.Closure
	if fn.Receiver != nil {
		parent = NewEnclosedEnvironment(fn.Closure)
		parent.Define("self", fn.Receiver)
	}
	callEnv := NewEnclosedEnvironment(parent)
	for idx, p := range fn.Params {
		if idx < len(args) {
			callEnv.Define(p, args[idx])
		} else {
			callEnv.Define(p, NullValue{})
		}
	}

	savedReturning, savedValue := i.returning, i.returnValue
	i.returning, i.returnValue = false, Value(VoidValue{})

	err := i.execBlockStatements(fn.Body.Statements, callEnv)
	result := i.returnValue

	i.returning, i.returnValue = savedReturning, savedValue

	if err != nil {
		return nil, err
	}
	return result, nil
}

func (i *Interpreter) construct(sv *StructValue, args []Value) (Value, error) {
	inst := &StructInstance{Def: sv.Def, Fields: make(map[string]Value)}
	for _, f := range sv.Def.Fields {
		inst.Fields[f] = NullValue{}
	}
	if initFn, ok := sv.Def.Methods["init"]; ok {
		bound := &FnValue{Name: initFn.Name, Params: initFn.Params, Body: initFn.Body, Closure: initFn.Closure, Receiver: inst}
		if _, err := i.callFn(bound, args); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

func (i *Interpreter) evalGet(g *ast.GetExpr, env *Environment) (Value, error) {
	ov, err := i.eval(g.Object, env)
	if err != nil {
		return nil, err
	}
	inst, ok := ov.(*StructInstance)
	if !ok {
		return nil, newRuntimeError(g.Pos(), "only structures have fields or methods")
	}
	if v, ok := inst.Fields[g.Name]; ok {
		return v, nil
	}
	if m, ok := inst.Def.Methods[g.Name]; ok {
		return &FnValue{Name: m.Name, Params: m.Params, Body: m.Body, Closure: m.Closure, Receiver: inst}, nil
	}
	return nil, newRuntimeError(g.Pos(), "structure %q has no field or method %q", inst.Def.Name, g.Name)
}

func (i *Interpreter) evalSet(s *ast.SetExpr, env *Environment) (Value, error) {
	ov, err := i.eval(s.Object, env)
	if err != nil {
		return nil, err
	}
	inst, ok := ov.(*StructInstance)
	if !ok {
		return nil, newRuntimeError(s.Pos(), "only structures have fields or methods")
	}
	vv, err := i.eval(s.Value, env)
	if err != nil {
		return nil, err
	}
	inst.Fields[s.Name] = vv
	return vv, nil
}

func (i *Interpreter) evalBinary(b *ast.BinaryExpr, env *Environment) (Value, error) {
	lv, err := i.eval(b.Left, env)
	if err != nil {
		return nil, err
	}
	rv, err := i.eval(b.Right, env)
	if err != nil {
		return nil, err
	}

	switch b.Operator {
	case "+":
		if ls, ok := lv.(StrValue); ok {
			if rs, ok := rv.(StrValue); ok {
				return StrValue{Value: ls.Value + rs.Value}, nil
			}
		}
		return arith(b, lv, rv, func(a, c float64) float64 { return a + c })
	case "-":
		return arith(b, lv, rv, func(a, c float64) float64 { return a - c })
	case "*":
		if li, ok := lv.(IntValue); ok {
			if rs, ok := rv.(StrValue); ok {
				return StrValue{Value: strings.Repeat(rs.Value, int(li.Value))}, nil
			}
		}
		if ls, ok := lv.(StrValue); ok {
			if ri, ok := rv.(IntValue); ok {
				return StrValue{Value: strings.Repeat(ls.Value, int(ri.Value))}, nil
			}
		}
		return arith(b, lv, rv, func(a, c float64) float64 { return a * c })
	case "/":
		return arith(b, lv, rv, func(a, c float64) float64 { return a / c })
	case "%":
		if li, ok := lv.(IntValue); ok {
			if ri, ok := rv.(IntValue); ok {
				if ri.Value == 0 {
					return nil, newRuntimeError(b.Pos(), "division by zero")
				}
				return IntValue{Value: li.Value % ri.Value}, nil
			}
		}
		return arith(b, lv, rv, math.Mod)
	case "<", ">", "<=", ">=":
		lf, lok := numOf(lv)
		rf, rok := numOf(rv)
		if !lok || !rok {
			return nil, newRuntimeError(b.Pos(), "operands of %s must be numeric", b.Operator)
		}
		switch b.Operator {
		case "<":
			return BoolValue{Value: lf < rf}, nil
		case ">":
			return BoolValue{Value: lf > rf}, nil
		case "<=":
			return BoolValue{Value: lf <= rf}, nil
		default:
			return BoolValue{Value: lf >= rf}, nil
		}
	case "==":
		return BoolValue{Value: valuesEqual(lv, rv)}, nil
	case "!=":
		return BoolValue{Value: !valuesEqual(lv, rv)}, nil
	default:
		return nil, newRuntimeError(b.Pos(), "unknown operator %q", b.Operator)
	}
}

// arith promotes both operands to float64, applying op, except when both
// operands are already Int — then the result stays an Int. This mirrors the
// only-Int-to-Float widening the static checker allows: a Float anywhere in
// the expression forces a Float result.
func arith(b *ast.BinaryExpr, lv, rv Value, op func(a, c float64) float64) (Value, error) {
	li, lIsInt := lv.(IntValue)
	ri, rIsInt := rv.(IntValue)
	if lIsInt && rIsInt {
		if b.Operator == "/" && ri.Value == 0 {
			return nil, newRuntimeError(b.Pos(), "division by zero")
		}
		return IntValue{Value: int64(op(float64(li.Value), float64(ri.Value)))}, nil
	}
	lf, lok := numOf(lv)
	rf, rok := numOf(rv)
	if !lok || !rok {
		return nil, newRuntimeError(b.Pos(), "operands of %s must be numeric", b.Operator)
	}
	return FloatValue{Value: op(lf, rf)}, nil
}

func numOf(v Value) (float64, bool) {
	switch t := v.(type) {
	case IntValue:
		return float64(t.Value), true
	case FloatValue:
		return t.Value, true
	default:
		return 0, false
	}
}

func valuesEqual(a, b Value) bool {
	switch at := a.(type) {
	case IntValue:
		switch bt := b.(type) {
		case IntValue:
			return at.Value == bt.Value
		case FloatValue:
			return float64(at.Value) == bt.Value
		}
		return false
	case FloatValue:
		switch bt := b.(type) {
		case IntValue:
			return at.Value == float64(bt.Value)
		case FloatValue:
			return at.Value == bt.Value
		}
		return false
	case StrValue:
		bt, ok := b.(StrValue)
		return ok && at.Value == bt.Value
	case BoolValue:
		bt, ok := b.(BoolValue)
		return ok && at.Value == bt.Value
	case NullValue:
		_, ok := b.(NullValue)
		return ok
	case VoidValue:
		_, ok := b.(VoidValue)
		return ok
	case *StructInstance:
		bt, ok := b.(*StructInstance)
		return ok && at == bt
	default:
		return false
	}
}

func asInt(v Value) (int64, bool) {
	switch t := v.(type) {
	case IntValue:
		return t.Value, true
	case FloatValue:
		return int64(t.Value), true
	default:
		return 0, false
	}
}
