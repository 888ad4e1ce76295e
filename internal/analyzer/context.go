// Package analyzer implements the hard core of the semantic pipeline
// (spec §4.1, §4.3, §4.4): the ScopeBuilder forward pass and the
// SemanticAnalyzer recursive walk, sharing mutable state through
// *Context exactly as go-dws's passes share a *passes.PassContext.
package analyzer

import (
	"github.com/rhysd/dachs/internal/ast"
	"github.com/rhysd/dachs/internal/diagnostics"
	"github.com/rhysd/dachs/internal/resolver"
	"github.com/rhysd/dachs/internal/scope"
	"github.com/rhysd/dachs/internal/types"
)

// Context is the communication medium between ScopeBuilder and
// SemanticAnalyzer, mirroring go-dws's PassContext: one value threaded
// through an entire compilation, read and written by whichever pass is
// currently running.
type Context struct {
	Global *scope.GlobalScope
	Errors *diagnostics.Collector
	Types  *resolver.Resolver

	// LambdaQueue accumulates every lambda's function scope discovered
	// while the main pass runs, consumed by LambdaResolver once analysis
	// of the whole program completes (spec §4.4 "record it in a queue").
	LambdaQueue []*scope.FunctionScope

	// CurrentClass/CurrentFunction track where analysis currently is, for
	// access control (spec §4.3.4) and self-access discipline (§4.3.6).
	CurrentClass    *scope.ClassScope
	CurrentFunction *scope.FunctionScope

	// LoopDepth supports future break/continue validation; carried from
	// the teacher's PassContext shape even though the distilled spec does
	// not name a break/continue statement.
	LoopDepth int

	// MainArgs is computed by checkMain once whole-program analysis
	// succeeds (spec §4.3.6, §4.3.8); internal/compiler surfaces it as
	// the third member of the (ScopeTree, CaptureMap, MainArgsCtor)
	// pipeline contract (spec §6).
	MainArgs *MainArgsCtor
}

// NewContext creates an empty Context over source (used only for
// diagnostic caret rendering).
func NewContext(source string) *Context {
	ctx := &Context{
		Global: scope.NewGlobalScope(),
		Errors: diagnostics.NewCollector(source),
	}
	return ctx
}

func (ctx *Context) queueLambda(fn *scope.FunctionScope) {
	ctx.LambdaQueue = append(ctx.LambdaQueue, fn)
}

// resolveType is a small convenience wrapper used throughout the
// analyzer files; it panics via diagnostics.Internal if called before
// ctx.Types is wired (a programming error, not a user-facing one).
func (ctx *Context) resolveType(node ast.TypeNode, s scope.Scope) types.Type {
	if ctx.Types == nil {
		diagnostics.Internal("Context.Types used before it was wired")
	}
	t, err := ctx.Types.Resolve(node, s)
	if err != nil {
		ctx.Errors.Errorf(node.Pos(), "%s", err.Error())
		return nil
	}
	return t
}
