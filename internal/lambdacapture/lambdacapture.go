// Package lambdacapture implements LambdaResolver (spec §4.4): the
// post-pass that runs once whole-program SemanticAnalyzer walking is
// done, turning every lambda body's free variable references into an
// explicit capture list lifted onto its FunctionScope.
package lambdacapture

import (
	"github.com/rhysd/dachs/internal/ast"
	"github.com/rhysd/dachs/internal/scope"
)

// CaptureMap is the per-lambda capture map spec §6's code emitter
// consumes as part of `(ScopeTree, CaptureMap, MainArgsCtor)`: for every
// lambda's function scope, the outer-symbol-to-fresh-inner-symbol pairs
// it closes over.
type CaptureMap map[*scope.FunctionScope][]*scope.Capture

// Resolve drains queue, the same LambdaQueue the ScopeBuilder appended to
// while declaring each lambda (spec §4.4 "record it in a queue"),
// computing and attaching a Captures list to every entry, and returns the
// same information as a standalone map for callers that want it without
// walking FunctionScope.Captures themselves. A var_ref with no resolved
// symbol at all ("no capture found" in spec §4.4) was already reported as
// an undefined-symbol error by SemanticAnalyzer during the main pass, so
// this pass never needs to report it again.
func Resolve(queue []*scope.FunctionScope) CaptureMap {
	out := make(CaptureMap, len(queue))
	for _, fn := range queue {
		resolveCaptures(fn)
		out[fn] = fn.Captures
	}
	return out
}

// resolveCaptures walks fn's body a second time, collecting every VarRef
// whose resolved symbol was defined outside fn's own scope chain (params
// and nested Local scopes): that symbol is a free variable, and becomes a
// capture (spec §4.4 "every resolved var_ref whose bound symbol is not
// defined inside the lambda's own scope chain becomes a capture").
func resolveCaptures(fn *scope.FunctionScope) {
	if fn.Def == nil || fn.Def.Body == nil {
		return
	}

	own := ownSymbols(fn)
	seen := map[*scope.VariableSymbol]*scope.Capture{}

	ast.Inspect(fn.Def.Body, func(n ast.Node) bool {
		ref, ok := n.(*ast.VarRef)
		if !ok {
			return true
		}
		sym, ok := ref.Symbol.(*scope.VariableSymbol)
		if !ok {
			return true // a resolved function binding, not a captured variable
		}
		if own[sym] {
			return true
		}
		if sym.Global {
			return true // globals need no capture, they are reachable anywhere
		}
		if _, already := seen[sym]; already {
			return true
		}
		c := &scope.Capture{
			Outer: sym,
			Inner: scope.NewVariableSymbol(sym.Name, sym.Type, sym.Decl),
		}
		seen[sym] = c
		fn.Captures = append(fn.Captures, c)
		return true
	})
}

// ownSymbols collects every VariableSymbol defined within fn itself: its
// parameters and every Local scope nested in its body, recursively
// through child scopes (blocks, branches, loops).
func ownSymbols(fn *scope.FunctionScope) map[*scope.VariableSymbol]bool {
	own := map[*scope.VariableSymbol]bool{}
	for _, p := range fn.Params {
		own[p] = true
	}
	var walk func(s *scope.LocalScope)
	walk = func(s *scope.LocalScope) {
		if s == nil {
			return
		}
		for _, sym := range s.Vars() {
			own[sym] = true
		}
		for _, child := range s.Children() {
			if ls, ok := child.(*scope.LocalScope); ok {
				walk(ls)
			}
		}
	}
	walk(fn.Body)
	return own
}
