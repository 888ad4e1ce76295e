package analyzer

import (
	"github.com/rhysd/dachs/internal/ast"
	"github.com/rhysd/dachs/internal/scope"
	"github.com/rhysd/dachs/internal/types"
)

// analyzeBlock walks every statement of block under its corresponding
// Local scope, which ScopeBuilder already created 1:1 with the AST
// (spec §4.1, §4.3.1).
func (a *SemanticAnalyzer) analyzeBlock(block *ast.BlockStatement, local *scope.LocalScope) {
	children := local.Children()
	childIdx := 0
	nextChild := func() *scope.LocalScope {
		for childIdx < len(children) {
			c := children[childIdx]
			childIdx++
			if ls, ok := c.(*scope.LocalScope); ok {
				return ls
			}
		}
		return local
	}

	for _, stmt := range block.Statements {
		switch s := stmt.(type) {
		case *ast.DoStatement:
			a.analyzeBlock(s.Body, nextChild())
		case *ast.IfStatement, *ast.UnlessStatement, *ast.WhileStatement, *ast.ForStatement, *ast.LetStatement:
			a.analyzeCompoundStatement(s, local, nextChild)
		default:
			a.analyzeStatement(stmt, local)
		}
	}
}

// analyzeCompoundStatement handles the statement kinds that open a fresh
// child Local scope for their body, consuming nextChild in the same
// order ScopeBuilder created them.
func (a *SemanticAnalyzer) analyzeCompoundStatement(stmt ast.Statement, local *scope.LocalScope, nextChild func() *scope.LocalScope) {
	switch s := stmt.(type) {
	case *ast.IfStatement:
		a.checkCondition(s.Condition, local)
		a.analyzeBlock(s.Then, nextChild())
		a.analyzeElse(s.Else, local, nextChild)
	case *ast.UnlessStatement:
		a.checkCondition(s.Condition, local)
		a.analyzeBlock(s.Then, nextChild())
		a.analyzeElse(s.Else, local, nextChild)
	case *ast.WhileStatement:
		a.checkCondition(s.Condition, local)
		a.ctx.LoopDepth++
		a.analyzeBlock(s.Body, nextChild())
		a.ctx.LoopDepth--
	case *ast.ForStatement:
		a.analyzeFor(s, local, nextChild())
	case *ast.LetStatement:
		a.analyzeLet(s, nextChild())
	}
}

func (a *SemanticAnalyzer) analyzeElse(stmt ast.Statement, local *scope.LocalScope, nextChild func() *scope.LocalScope) {
	if stmt == nil {
		return
	}
	if block, ok := stmt.(*ast.BlockStatement); ok {
		a.analyzeBlock(block, nextChild())
		return
	}
	a.analyzeStatement(stmt, local)
}

func (a *SemanticAnalyzer) checkCondition(cond ast.Expression, s scope.Scope) {
	t := a.analyzeExpr(cond, s)
	if t != nil && !t.Equals(types.Bool) {
		a.errorf(cond, "condition must be bool, got %s", t.String())
	}
}

// analyzeFor implements spec §4.3.1 "for_stmt": array ranges bind the
// iteration variable(s) to the element type; everything else must be a
// class exposing `size(): uint` and `[](uint)`, both resolved and cached
// here.
func (a *SemanticAnalyzer) analyzeFor(s *ast.ForStatement, outer *scope.LocalScope, body *scope.LocalScope) {
	rangeType := a.analyzeExpr(s.Range, outer)
	if rangeType == nil {
		a.analyzeBlock(s.Body, body)
		return
	}

	var elemType types.Type
	switch rt := rangeType.(type) {
	case *types.Array:
		elemType = rt.Elem
	case *types.Class:
		sizeBinding, _ := scope.ResolveMethod(classScopeOf(rt), "size")
		sizeFn, err := a.resolveOverload("size", sizeBinding, nil, a.ctx.CurrentClass)
		if err != nil {
			a.errorf(s.Range, "for: %s", err.Error())
			break
		}
		s.SizeMethodScope = sizeFn
		idxBinding, _ := scope.ResolveMethod(classScopeOf(rt), "[]")
		idxFn, err := a.resolveOverload("[]", idxBinding, []types.Type{types.UInt}, a.ctx.CurrentClass)
		if err != nil {
			a.errorf(s.Range, "for: %s", err.Error())
			break
		}
		s.IndexMethodScope = idxFn
		elemType = idxFn.ReturnType
	default:
		a.errorf(s.Range, "for: %s is not iterable", rangeType.String())
	}

	// ScopeBuilder already declared the iteration variables in body with
	// placeholder types; settle them to the element type here.
	bind := func(name string, t types.Type) {
		if sym, ok := body.DeclaredHere(name); ok {
			sym.Type = t
			return
		}
		body.Define(scope.NewVariableSymbol(name, t, s))
	}
	if elemType != nil {
		if len(s.Vars) == 1 {
			bind(s.Vars[0], elemType)
		} else if tup, ok := elemType.(*types.Tuple); ok && len(tup.Elems) == len(s.Vars) {
			for i, name := range s.Vars {
				bind(name, tup.Elems[i])
			}
		}
	}

	a.analyzeBlock(s.Body, body)
}

func classScopeOf(c *types.Class) *scope.ClassScope {
	cs, _ := c.Scope.(*scope.ClassScope)
	return cs
}

// analyzeLet implements spec's end-to-end scenario: bindings live only
// for the extent of Body (a single statement or block), then go out of
// scope.
func (a *SemanticAnalyzer) analyzeLet(s *ast.LetStatement, body *scope.LocalScope) {
	a.defineInitializedTargets(s.Targets, s.Values, body)
	a.analyzeStatement(s.Body, body)
}

// analyzeStatement handles the leaf (non-block-opening) statement kinds.
func (a *SemanticAnalyzer) analyzeStatement(stmt ast.Statement, s scope.Scope) {
	switch n := stmt.(type) {
	case *ast.ExpressionStatement:
		a.analyzeExpr(n.Expr, s)
	case *ast.InitializeStatement:
		a.analyzeInitialize(n, s)
	case *ast.AssignmentStatement:
		a.analyzeAssignment(n, s)
	case *ast.ReturnStatement:
		a.analyzeReturn(n, s)
	case *ast.PostfixIfStatement:
		a.checkCondition(n.Condition, s)
		a.analyzeStatement(n.Inner, s)
	case *ast.CaseStatement:
		a.analyzeCase(n, s)
	case *ast.SwitchStatement:
		a.analyzeSwitch(n, s)
	case *ast.BlockStatement, *ast.DoStatement, *ast.IfStatement, *ast.UnlessStatement, *ast.WhileStatement, *ast.ForStatement, *ast.LetStatement:
		// These open their own child scope; only reached here when used
		// in a position (e.g. postfix-if's Inner) that does not carry a
		// pre-built child, so fall back to walking with the current scope.
		a.analyzeStatementNoChild(stmt, s)
	}
}

func (a *SemanticAnalyzer) analyzeStatementNoChild(stmt ast.Statement, s scope.Scope) {
	switch n := stmt.(type) {
	case *ast.BlockStatement:
		for _, inner := range n.Statements {
			a.analyzeStatement(inner, s)
		}
	case *ast.DoStatement:
		a.analyzeStatementNoChild(n.Body, s)
	case *ast.IfStatement:
		a.checkCondition(n.Condition, s)
		a.analyzeStatementNoChild(n.Then, s)
		if n.Else != nil {
			a.analyzeStatement(n.Else, s)
		}
	case *ast.UnlessStatement:
		a.checkCondition(n.Condition, s)
		a.analyzeStatementNoChild(n.Then, s)
		if n.Else != nil {
			a.analyzeStatement(n.Else, s)
		}
	case *ast.WhileStatement:
		a.checkCondition(n.Condition, s)
		a.analyzeStatementNoChild(n.Body, s)
	}
}

// analyzeCase implements `case` (no scrutinee; each clause's guards are
// boolean expressions evaluated in order, spec §4.3.1).
func (a *SemanticAnalyzer) analyzeCase(n *ast.CaseStatement, s scope.Scope) {
	for _, clause := range n.Clauses {
		for _, g := range clause.Guards {
			a.checkCondition(g, s)
		}
		a.analyzeStatementNoChild(clause.Body, s)
	}
	if n.Else != nil {
		a.analyzeStatementNoChild(n.Else, s)
	}
}

// analyzeSwitch implements `switch` (scrutinee + when value lists;
// equality is built in for builtins, else resolved to an `==` overload
// returning bool, spec §4.3.1).
func (a *SemanticAnalyzer) analyzeSwitch(n *ast.SwitchStatement, s scope.Scope) {
	scrutineeType := a.analyzeExpr(n.Scrutinee, s)
	n.EqCalleeScopes = make([]interface{}, len(n.Clauses))
	for i, clause := range n.Clauses {
		for _, v := range clause.Values {
			valType := a.analyzeExpr(v, s)
			if scrutineeType == nil || valType == nil {
				continue
			}
			if isBuiltinType(scrutineeType) {
				continue // built-in equality, nothing to cache
			}
			if cls, ok := scrutineeType.(*types.Class); ok {
				binding, _ := scope.ResolveMethod(classScopeOf(cls), "==")
				fn, err := a.resolveOverload("==", binding, []types.Type{scrutineeType, valType}, a.ctx.CurrentClass)
				if err != nil {
					a.errorf(v, "switch: %s", err.Error())
					continue
				}
				n.EqCalleeScopes[i] = fn
			}
		}
		a.analyzeStatementNoChild(clause.Body, s)
	}
	if n.Else != nil {
		a.analyzeStatementNoChild(n.Else, s)
	}
}

func isBuiltinType(t types.Type) bool {
	_, ok := t.(*types.Builtin)
	return ok
}

// analyzeReturn types a return statement by the single expression, or a
// tuple of expressions' types for multi-value return (spec §4.3.1).
func (a *SemanticAnalyzer) analyzeReturn(n *ast.ReturnStatement, s scope.Scope) {
	types_ := make([]types.Type, len(n.Values))
	for i, v := range n.Values {
		types_[i] = a.analyzeExpr(v, s)
	}
	fn := a.ctx.CurrentFunction
	if fn == nil {
		return
	}
	var t types.Type
	switch len(types_) {
	case 0:
		t = types.Unit
	case 1:
		t = types_[0]
	default:
		t = types.NewTuple(types_)
	}
	if t != nil {
		a.returnTypes[fn] = append(a.returnTypes[fn], t)
	} else if _, ok := a.returnTypes[fn]; !ok {
		a.returnTypes[fn] = nil // a return was seen, but its type is unknown
	}
	if fn.ReturnType == nil {
		fn.ReturnType = t
	}
}

// inferReturnType implements spec §4.3.5 "Recursive-return inference":
// called once a function's body has been fully walked and its return
// type is still unknown (every return seen so far resolved to nil,
// typically because a recursive self-call short-circuited before this
// function's own type was known). Gather every typed return recorded
// during the walk; if none exist, the type truly cannot be deduced; if
// they all agree, adopt that type; disagreement is reported with the
// full candidate list. A body with no return statement at all returns
// the unit type.
func (a *SemanticAnalyzer) inferReturnType(fn *scope.FunctionScope) {
	seen, sawReturn := a.returnTypes[fn]
	if !sawReturn {
		fn.ReturnType = types.Unit
		return
	}
	if len(seen) == 0 {
		if fn.Def != nil {
			a.errorf(fn.Def, "can't deduce return type of '%s'", fn.Name)
		}
		return
	}
	first := seen[0]
	for _, t := range seen[1:] {
		if !first.Equals(t) {
			names := make([]string, len(seen))
			for i, c := range seen {
				names[i] = c.String()
			}
			a.errorf(fn.Def, "cannot deduce a single return type for '%s', candidates: %v", fn.Name, names)
			return
		}
	}
	fn.ReturnType = first
}
