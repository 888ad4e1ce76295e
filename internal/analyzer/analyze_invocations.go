package analyzer

import (
	"github.com/rhysd/dachs/internal/ast"
	"github.com/rhysd/dachs/internal/scope"
	"github.com/rhysd/dachs/internal/types"
)

// analyzeFuncInvocation implements `name(args...)` / `expr(args...)`
// (spec §4.3.4): a VarRef callee naming a local variable or parameter of
// Func type is a function-pointer call; a VarRef naming an overload set
// goes through the standard resolution pipeline, preferring a method of
// the enclosing class (an implicit self-call) before a free function of
// the same name (spec §4.3.1 "var_ref resolution order").
func (a *SemanticAnalyzer) analyzeFuncInvocation(n *ast.FuncInvocation, s scope.Scope) types.Type {
	if ref, ok := n.Callee.(*ast.VarRef); ok && !ref.Underscore() {
		if sym, ok := scope.Resolve(s, ref.Name); ok {
			ref.Symbol = sym
			return a.analyzeFuncPointerCall(n, sym.Type, s)
		}
		if binding, ok := scope.ResolveFunction(s, ref.Name); ok {
			return a.analyzeOrdinaryCall(n, ref.Name, binding, s)
		}
		a.errorf(n, "undefined symbol '%s'", ref.Name)
		return nil
	}

	calleeType := a.analyzeExpr(n.Callee, s)
	return a.analyzeFuncPointerCall(n, calleeType, s)
}

func (a *SemanticAnalyzer) analyzeFuncPointerCall(n *ast.FuncInvocation, calleeType types.Type, s scope.Scope) types.Type {
	args := a.analyzeExprList(n.Args, s)
	ft, ok := calleeType.(*types.Func)
	if !ok {
		if calleeType != nil {
			a.errorf(n, "%s is not callable", calleeType.String())
		}
		return nil
	}
	if len(ft.Params) != len(args) {
		a.errorf(n, "expected %d arguments, got %d", len(ft.Params), len(args))
		return nil
	}
	for i, p := range ft.Params {
		if args[i] != nil && p != nil && !p.Equals(args[i]) {
			a.errorf(n.Args[i], "argument %d: expected %s, got %s", i+1, p.String(), args[i].String())
		}
	}
	return ft.Ret
}

func (a *SemanticAnalyzer) analyzeOrdinaryCall(n *ast.FuncInvocation, name string, binding *scope.FunctionBinding, s scope.Scope) types.Type {
	args := a.analyzeExprList(n.Args, s)
	fn, err := a.resolveOverload(name, binding, args, a.ctx.CurrentClass)
	if err != nil {
		a.errorf(n, "%s", err.Error())
		return nil
	}
	if fn.IsTemplate() {
		fn = a.instantiateFunction(fn, args)
	}
	a.ensureAnalyzed(fn)
	n.CalleeScope = fn
	if fn.IsMethod && a.ctx.CurrentClass != nil && fn.Parent() == a.ctx.CurrentClass {
		a.noteSelfCall(fn)
	}
	return fn.ReturnType
}

func (a *SemanticAnalyzer) analyzeExprList(exprs []ast.Expression, s scope.Scope) []types.Type {
	out := make([]types.Type, len(exprs))
	for i, e := range exprs {
		out[i] = a.analyzeExpr(e, s)
	}
	return out
}

// analyzeUFCS implements `receiver.name [args]` (spec GLOSSARY "UFCS
// invocation"): field access first when name is a bare reference to a
// declared instance variable of the receiver's class, else an ordinary
// call `name(receiver, args...)` resolved against the receiver's class
// methods, falling back to a free function of the same name.
func (a *SemanticAnalyzer) analyzeUFCS(n *ast.UFCSInvocation, s scope.Scope) types.Type {
	recv := a.analyzeExpr(n.Receiver, s)
	if recv == nil {
		return nil
	}

	if cls, ok := recv.(*types.Class); ok && len(n.Args) == 0 {
		if field, ok := classScopeOf(cls).LookupVar(n.Name); ok {
			if !field.Public && a.ctx.CurrentClass != classScopeOf(cls) {
				a.errorf(n, "'%s' is a private member of class %s", n.Name, cls.Name)
				return nil
			}
			n.ResolvedAsField = true
			return field.Type
		}
	}

	args := make([]types.Type, len(n.Args)+1)
	args[0] = recv
	for i, arg := range n.Args {
		args[i+1] = a.analyzeExpr(arg, s)
	}

	binding := a.resolveUFCSBinding(s, recv, n.Name)
	fn, err := a.resolveOverload(n.Name, binding, args, a.ctx.CurrentClass)
	if err != nil {
		a.errorf(n, "%s", err.Error())
		return nil
	}
	if fn.IsTemplate() {
		fn = a.instantiateFunction(fn, args)
	}
	a.ensureAnalyzed(fn)
	n.CalleeScope = fn
	if isSelfReceiver(n.Receiver) {
		a.noteSelfCall(fn)
	} else {
		a.checkConstCall(n, n.Receiver, fn)
	}
	return fn.ReturnType
}

// resolveUFCSBinding looks up name as a method of recv's class first, then
// as a free function (spec GLOSSARY: "when name resolves to a function it
// is an ordinary call `name(receiver, args...)`").
func (a *SemanticAnalyzer) resolveUFCSBinding(s scope.Scope, recv types.Type, name string) *scope.FunctionBinding {
	if cls, ok := recv.(*types.Class); ok {
		if cs := classScopeOf(cls); cs != nil {
			if b, ok := scope.ResolveMethod(cs, name); ok {
				return b
			}
		}
	}
	g := scope.EnclosingGlobal(s)
	if g == nil {
		return nil
	}
	b := g.Functions[name]
	return b
}

func isSelfReceiver(e ast.Expression) bool {
	ref, ok := e.(*ast.VarRef)
	return ok && ref.Name == "self"
}
