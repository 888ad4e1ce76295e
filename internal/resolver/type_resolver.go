// Package resolver maps syntactic type nodes to semantic types
// (spec §4.2 "TypeResolver"): a pure function of an AST type node and an
// enclosing scope, except for `typeof(expr)`, which is the single
// permitted re-entrant call back into the SemanticAnalyzer (spec §9(c)).
//
// That re-entrancy is expressed as an interface (ExprAnalyzer) rather than
// an import of package analyzer, so analyzer can depend on resolver
// without the two packages cycling - mirroring the teacher's own
// TypeResolutionPass, which takes a *PassContext rather than importing
// the concrete analyzer.
package resolver

import (
	"fmt"

	"github.com/rhysd/dachs/internal/ast"
	"github.com/rhysd/dachs/internal/scope"
	"github.com/rhysd/dachs/internal/types"
)

// ExprAnalyzer is the narrow slice of the SemanticAnalyzer that
// TypeResolver is allowed to call back into, for `typeof(expr)`.
type ExprAnalyzer interface {
	AnalyzeExpr(expr ast.Expression, s scope.Scope) (types.Type, error)
}

// Resolver implements TypeResolver.
type Resolver struct {
	exprs ExprAnalyzer
}

// New creates a Resolver. exprs may be nil if the caller never resolves
// a TypeofNode (e.g. in tests exercising only structural type nodes).
func New(exprs ExprAnalyzer) *Resolver {
	return &Resolver{exprs: exprs}
}

// Resolve translates node into a semantic type under scope s.
func (r *Resolver) Resolve(node ast.TypeNode, s scope.Scope) (types.Type, error) {
	switch n := node.(type) {
	case *ast.NamedTypeNode:
		return r.resolveNamed(n, s)
	case *ast.ArrayTypeNode:
		return r.resolveArray(n, s)
	case *ast.PointerTypeNode:
		elem, err := r.Resolve(n.Pointee, s)
		if err != nil {
			return nil, err
		}
		return &types.Pointer{Pointee: elem}, nil
	case *ast.TupleTypeNode:
		elems := make([]types.Type, len(n.Elems))
		for i, e := range n.Elems {
			t, err := r.Resolve(e, s)
			if err != nil {
				return nil, err
			}
			elems[i] = t
		}
		return types.NewTuple(elems), nil
	case *ast.QualifiedTypeNode:
		inner, err := r.Resolve(n.Inner, s)
		if err != nil {
			return nil, err
		}
		return &types.Qualified{Qualifier: types.Qualifier(n.Qualifier), Inner: inner}, nil
	case *ast.FuncTypeNode:
		return r.resolveFunc(n, s)
	case *ast.TypeofNode:
		if r.exprs == nil {
			return nil, fmt.Errorf("typeof(...) is not available in this context")
		}
		return r.exprs.AnalyzeExpr(n.Expr, s)
	default:
		return nil, fmt.Errorf("unknown type node %T", node)
	}
}

// resolveNamed implements the builtin-or-class lookup rule (spec §4.2
// "Primary type").
func (r *Resolver) resolveNamed(n *ast.NamedTypeNode, s scope.Scope) (types.Type, error) {
	if builtin, ok := types.LookupBuiltin(n.Name); ok && len(n.Args) == 0 {
		return builtin, nil
	}

	g := scope.EnclosingGlobal(s)
	if g == nil {
		return nil, fmt.Errorf("invalid type '%s'", n.Name)
	}
	cls, ok := g.Classes[n.Name]
	if !ok {
		return nil, fmt.Errorf("invalid type '%s'", n.Name)
	}

	args := make([]types.Type, len(n.Args))
	for i, a := range n.Args {
		t, err := r.Resolve(a, s)
		if err != nil {
			return nil, err
		}
		args[i] = t
	}
	return &types.Class{Name: cls.Name, Scope: cls, Args: args}, nil
}

// resolveArray implements spec §4.2 "Array type": a missing element type
// node becomes a fresh Template bound to the array type node itself.
func (r *Resolver) resolveArray(n *ast.ArrayTypeNode, s scope.Scope) (types.Type, error) {
	if n.Elem == nil {
		return &types.Array{Elem: types.NewTemplate(n.ID(), "array.elem"), Size: n.Size}, nil
	}
	elem, err := r.Resolve(n.Elem, s)
	if err != nil {
		return nil, err
	}
	return &types.Array{Elem: elem, Size: n.Size}, nil
}

func (r *Resolver) resolveFunc(n *ast.FuncTypeNode, s scope.Scope) (types.Type, error) {
	params := make([]types.Type, len(n.Params))
	for i, p := range n.Params {
		t, err := r.Resolve(p, s)
		if err != nil {
			return nil, err
		}
		params[i] = t
	}
	var ret types.Type = types.Unit
	if n.Ret != nil {
		t, err := r.Resolve(n.Ret, s)
		if err != nil {
			return nil, err
		}
		ret = t
	}
	return &types.Func{Params: params, Ret: ret}, nil
}
