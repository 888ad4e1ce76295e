package analyzer

import (
	"github.com/rhysd/dachs/internal/ast"
	"github.com/rhysd/dachs/internal/scope"
)

// noteInstanceVarWrite records that CurrentFunction assigned to sym, when
// sym is an instance variable of CurrentClass (spec §4.3.7: "never assigns
// to an instance variable of self").
func (a *SemanticAnalyzer) noteInstanceVarWrite(sym *scope.VariableSymbol) {
	if a.ctx.CurrentClass == nil || a.ctx.CurrentFunction == nil {
		return
	}
	if _, ok := a.ctx.CurrentClass.LookupVar(sym.Name); !ok {
		return
	}
	a.noteInstanceVarWriteByName(sym.Name)
}

func (a *SemanticAnalyzer) noteInstanceVarWriteByName(name string) {
	fn := a.ctx.CurrentFunction
	if fn == nil {
		return
	}
	fn.TouchedInstanceVars[name] = true
}

// noteSelfCall records that CurrentFunction called callee through self
// (implicit or explicit), the other half of the const-propagation graph
// (spec §4.3.7: "never calls a non-const method whose receiver is self").
func (a *SemanticAnalyzer) noteSelfCall(callee *scope.FunctionScope) {
	fn := a.ctx.CurrentFunction
	if fn == nil || !callee.IsMethod || callee.IsConstructor {
		return
	}
	set, ok := a.selfCalls[fn]
	if !ok {
		set = make(map[*scope.FunctionScope]bool)
		a.selfCalls[fn] = set
	}
	set[callee] = true
}

// checkConstCall implements the non-self half of spec §4.3.7: "calling a
// non-const method on an immutable receiver is a semantic error". recv is
// only checked when its static type resolves to an immutable variable.
func (a *SemanticAnalyzer) checkConstCall(at ast.Node, recv ast.Expression, callee *scope.FunctionScope) {
	ref, ok := recv.(*ast.VarRef)
	if !ok || !callee.IsMethod || callee.IsConstructor {
		return
	}
	sym, ok := ref.Symbol.(*scope.VariableSymbol)
	if !ok || !sym.Immutable {
		return
	}
	a.inferConst(callee)
	if callee.Const == scope.ConstNo {
		a.errorf(at, "cannot call non-const method '%s' on immutable receiver", callee.Name)
	}
}

// inferConst implements spec §4.3.7: after a method's body is fully
// walked, it is const iff it never wrote an instance variable of self and
// every method it called through self is, transitively, also const.
// Const-ness is memoized on the callee's own scope so a diamond of callers
// only walks each callee once.
func (a *SemanticAnalyzer) inferConst(fn *scope.FunctionScope) {
	switch fn.Const {
	case scope.ConstYes, scope.ConstNo:
		return
	case scope.ConstAnalyzing:
		// Recursive self-call before this method has settled: assume
		// const provisionally so the cycle does not spin forever; the
		// outer call to inferConst still decides the final state.
		fn.Const = scope.ConstProvisional
		return
	}

	fn.Const = scope.ConstAnalyzing
	if len(fn.TouchedInstanceVars) > 0 {
		fn.Const = scope.ConstNo
		return
	}
	for callee := range a.selfCalls[fn] {
		if callee == fn {
			continue
		}
		a.ensureAnalyzed(callee)
		a.inferConst(callee)
		if callee.Const == scope.ConstNo {
			fn.Const = scope.ConstNo
			return
		}
	}
	fn.Const = scope.ConstYes
}
