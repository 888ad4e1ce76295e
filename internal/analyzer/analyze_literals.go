package analyzer

import (
	"github.com/rhysd/dachs/internal/ast"
	"github.com/rhysd/dachs/internal/diagnostics"
	"github.com/rhysd/dachs/internal/scope"
	"github.com/rhysd/dachs/internal/types"
)

// analyzeArrayLiteral types `[e1, e2, ...]` as the predeclared `array`
// template class (spec §4.3.2): resolve its elements, require an
// annotation on an empty literal, then instantiate `array` with the
// element type. No constructor overload resolution runs and the node is
// not rewritten into an ObjectConstruct.
func (a *SemanticAnalyzer) analyzeArrayLiteral(n *ast.ArrayLiteral, s scope.Scope) types.Type {
	var elemType types.Type
	for _, e := range n.Elems {
		t := a.analyzeExpr(e, s)
		if elemType == nil {
			elemType = t
		} else if t != nil && !elemType.Equals(t) {
			a.errorf(e, "array literal elements must share one type; got %s and %s", elemType.String(), t.String())
		}
	}
	if elemType == nil {
		if n.ElemTypeHint == nil {
			a.errorf(n, "empty array literal requires a type annotation")
			return nil
		}
		elemType = a.ctx.resolveType(n.ElemTypeHint, s)
	}

	tmpl := a.ctx.Global.Classes["array"]
	if tmpl == nil {
		diagnostics.Internal("builtin class %q was never registered", "array")
		return nil
	}
	return &types.Class{Name: "array", Scope: a.instantiateClass(tmpl, []types.Type{elemType}), Args: []types.Type{elemType}}
}

// analyzeStringLiteral rewrites a string literal into the predeclared
// non-template `string` class (spec §4.3.2).
func (a *SemanticAnalyzer) analyzeStringLiteral(n *ast.StringLiteral) types.Type {
	cls := a.ctx.Global.Classes["string"]
	if cls == nil {
		diagnostics.Internal("builtin class %q was never registered", "string")
		return nil
	}
	return &types.Class{Name: "string", Scope: cls}
}

// analyzeTupleLiteral implements spec §4.3.2: arity != 1 produces a
// Tuple; arity 1 is an analyzer error (a parenthesized grouping, not a
// tuple, should never reach here as a TupleLiteral).
func (a *SemanticAnalyzer) analyzeTupleLiteral(n *ast.TupleLiteral, s scope.Scope) types.Type {
	if len(n.Elems) == 1 {
		a.errorf(n, "a single-element tuple literal is not allowed")
		return nil
	}
	elems := make([]types.Type, len(n.Elems))
	for i, e := range n.Elems {
		elems[i] = a.analyzeExpr(e, s)
	}
	return types.NewTuple(elems)
}
