package analyzer

import (
	"github.com/rhysd/dachs/internal/ast"
	"github.com/rhysd/dachs/internal/scope"
	"github.com/rhysd/dachs/internal/types"
)

// analyzeVarRef implements spec §4.3.1 "var_ref": look up name via the
// enclosing scope chain; on success record the symbol and set the type.
// If the binding is a function overload set, copy the GenericFunc type
// value so later template instantiation never mutates the defining site.
func (a *SemanticAnalyzer) analyzeVarRef(n *ast.VarRef, s scope.Scope) types.Type {
	if n.Underscore() {
		return types.Unit
	}
	if sym, ok := scope.Resolve(s, n.Name); ok {
		n.Symbol = sym
		return sym.Type
	}
	if binding, ok := scope.ResolveFunction(s, n.Name); ok {
		n.Symbol = binding
		g := &types.GenericFunc{Name: n.Name, Scope: binding}
		return g.Copy()
	}
	a.errorf(n, "undefined symbol '%s'", n.Name)
	return nil
}

// analyzeInitialize implements spec §4.3.1 "initialize_stmt".
func (a *SemanticAnalyzer) analyzeInitialize(n *ast.InitializeStatement, s scope.Scope) {
	a.defineInitializedTargets(n.Targets, n.Values, s)
}

// defineInitializedTargets is shared by initialize_stmt and let_stmt: it
// types Values, matches them against Targets (tuple-destructuring a
// single rhs when arity differs, default-constructing when Values is
// empty), and defines each target as a fresh symbol in s.
func (a *SemanticAnalyzer) defineInitializedTargets(targets []*ast.VarTarget, values []ast.Expression, s scope.Scope) {
	valueTypes := make([]types.Type, len(values))
	for i, v := range values {
		valueTypes[i] = a.analyzeExpr(v, s)
	}

	switch {
	case len(values) == 0:
		for _, tgt := range targets {
			a.defineTargetWithDefault(tgt, s)
		}
	case len(values) == 1 && len(targets) > 1:
		tup, ok := valueTypes[0].(*types.Tuple)
		if !ok || len(tup.Elems) != len(targets) {
			a.errorf(targets[0], "cannot destructure into %d variables", len(targets))
			return
		}
		for i, tgt := range targets {
			a.defineTarget(tgt, tup.Elems[i], s)
		}
	default:
		if len(values) != len(targets) {
			a.errorf(targets[0], "expected %d values, got %d", len(targets), len(values))
			return
		}
		for i, tgt := range targets {
			a.defineTarget(tgt, valueTypes[i], s)
		}
	}
}

// defineTarget defines tgt with rhsType, requiring - when tgt carried an
// explicit annotation - that rhsType either equals the annotation or is
// instantiable-from it (spec §4.3.1, §4.3.5).
func (a *SemanticAnalyzer) defineTarget(tgt *ast.VarTarget, rhsType types.Type, s scope.Scope) {
	declared := tgt.Type
	var finalType types.Type = rhsType
	if declared != nil {
		annotated := a.ctx.resolveType(declared, s)
		if annotated != nil && rhsType != nil {
			if !annotated.Equals(rhsType) && !types.IsInstantiableFrom(annotated, rhsType) {
				a.errorf(tgt, "cannot initialize '%s' of type %s with value of type %s", tgt.Name, annotated.String(), rhsType.String())
			}
			finalType = annotated
		}
	}
	a.defineVarTarget(tgt, finalType, s)
}

// defineTargetWithDefault handles a declaration with no rhs: the declared
// type must be default-constructible (spec §4.3.1 "if rhs is absent, the
// declared type must be default-constructible").
func (a *SemanticAnalyzer) defineTargetWithDefault(tgt *ast.VarTarget, s scope.Scope) {
	if tgt.Type == nil {
		a.errorf(tgt, "cannot infer type of '%s' without an initializer", tgt.Name)
		return
	}
	t := a.ctx.resolveType(tgt.Type, s)
	if cls, ok := t.(*types.Class); ok {
		a.ensureDefaultConstructible(cls, tgt)
	}
	a.defineVarTarget(tgt, t, s)
}

func (a *SemanticAnalyzer) ensureDefaultConstructible(cls *types.Class, at ast.Node) {
	cs := classScopeOf(cls)
	if cs == nil {
		return
	}
	for _, ctor := range cs.Constructors() {
		if len(ctor.Params) == 1 { // only the implicit self parameter
			return
		}
	}
	a.errorf(at, "class %s has no default constructor", cls.Name)
}

func (a *SemanticAnalyzer) defineVarTarget(tgt *ast.VarTarget, t types.Type, s scope.Scope) {
	if tgt.InstanceVarInit {
		a.checkInstanceFieldTarget(tgt)
		return // recorded by the constructor-validation pass, not as a new local
	}
	local, ok := s.(*scope.LocalScope)
	if !ok {
		local = scope.EnclosingFunction(s).Body
	}
	if prev, ok := local.DeclaredHere(tgt.Name); ok && prev.Decl == ast.Node(tgt) {
		prev.Type = t // ScopeBuilder already declared this very target
		return
	}
	sym := scope.NewVariableSymbol(tgt.Name, t, tgt)
	if err := local.Define(sym); err != nil {
		a.errorf(tgt, "%s", err.Error())
	}
}

// checkInstanceFieldTarget validates an `@field` target inside a
// constructor body: the name must be a declared instance variable of the
// receiver class (spec §4.3.1 "variable_decl").
func (a *SemanticAnalyzer) checkInstanceFieldTarget(tgt *ast.VarTarget) {
	cls := a.ctx.CurrentClass
	if cls == nil {
		a.errorf(tgt, "@%s used outside a constructor", tgt.Name)
		return
	}
	if _, ok := cls.LookupVar(tgt.Name); !ok {
		a.errorf(tgt, "'%s' is not a declared instance variable of %s", tgt.Name, cls.Name)
	}
}

// analyzeAssignment implements spec §4.3.1 "assignment_stmt": multi-lhs,
// multi-rhs parallel assignment where every lhs must be mutable.
func (a *SemanticAnalyzer) analyzeAssignment(n *ast.AssignmentStatement, s scope.Scope) {
	rhsTypes := make([]types.Type, len(n.Rhs))
	for i, r := range n.Rhs {
		rhsTypes[i] = a.analyzeExpr(r, s)
	}
	if len(n.Lhs) != len(n.Rhs) && !(len(n.Rhs) == 1) {
		a.errorf(n, "assignment arity mismatch: %d targets, %d values", len(n.Lhs), len(n.Rhs))
		return
	}
	for i, l := range n.Lhs {
		rt := rhsTypes[0]
		if len(n.Rhs) == len(n.Lhs) {
			rt = rhsTypes[i]
		}
		a.analyzeAssignTarget(l, rt, s)
	}
}

func (a *SemanticAnalyzer) analyzeAssignTarget(lhs ast.Expression, rhsType types.Type, s scope.Scope) {
	switch l := lhs.(type) {
	case *ast.VarRef:
		if l.Underscore() {
			return
		}
		lt := a.analyzeExpr(l, s)
		if sym, ok := l.Symbol.(*scope.VariableSymbol); ok {
			if sym.Immutable {
				a.errorf(l, "cannot assign to immutable variable '%s'", l.Name)
			}
			a.noteInstanceVarWrite(sym)
		}
		a.checkAssignable(l, lt, rhsType)
	case *ast.IndexAccess:
		l.IsLHS = true
		a.analyzeIndexAccess(l, s)
	case *ast.UFCSInvocation:
		a.analyzeUFCS(l, s)
		if l.ResolvedAsField && isSelfReceiver(l.Receiver) {
			a.noteInstanceVarWriteByName(l.Name)
		}
	default:
		a.analyzeExpr(lhs, s)
	}
}

func (a *SemanticAnalyzer) checkAssignable(at ast.Node, lt, rt types.Type) {
	if lt == nil || rt == nil {
		return
	}
	if !lt.Equals(rt) && !types.IsInstantiableFrom(lt, rt) {
		a.errorf(at, "cannot assign value of type %s to variable of type %s", rt.String(), lt.String())
	}
}
