// Package compiler ties the semantic pipeline together the way go-dws's
// own top-level Analyzer.Analyze does: ScopeBuilder's forward pass, then
// SemanticAnalyzer's recursive walk, then LambdaResolver's post-pass
// (spec §4.1, §4.3, §4.4). Parsing an ast.Program out of source text is a
// separate, external concern (spec §1 "not a component to build") - this
// package starts from an already-parsed *ast.Program.
package compiler

import (
	"github.com/rhysd/dachs/internal/analyzer"
	"github.com/rhysd/dachs/internal/ast"
	"github.com/rhysd/dachs/internal/lambdacapture"
	"github.com/rhysd/dachs/internal/scope"
)

// Result is the `(ScopeTree, CaptureMap, MainArgsCtor)` pipeline output
// contract spec §6's code emitter consumes, plus the Context an emitter
// or a `--dump-*` CLI flag may want for extra detail.
type Result struct {
	// ScopeTree is the resolved scope tree rooted at Global (spec §2
	// data flow, §6 "Reads per-node type/symbol/callee slots ... and
	// per-class member-function scopes").
	ScopeTree *scope.GlobalScope

	// CaptureMap is LambdaResolver's output: every lambda's function
	// scope, now carrying a populated Captures list (spec §4.4).
	CaptureMap lambdacapture.CaptureMap

	// MainArgsCtor describes how to construct main's synthesized
	// argument (spec §4.3.6, §6); nil only if Compile returned an error
	// before checkMain ran.
	MainArgsCtor *analyzer.MainArgsCtor

	Ctx *analyzer.Context

	// Lambdas is every lambda's function scope queued during analysis,
	// in declaration order - the same scopes keyed in CaptureMap.
	Lambdas []*scope.FunctionScope
}

// Compile runs the full spec §4 pipeline over prog: analyzer.Run drives
// ScopeBuilder then SemanticAnalyzer (spec §5 "ScopeBuilder completes
// fully before SemanticAnalyzer begins"), and LambdaResolver resolves
// captures for every lambda discovered along the way, exactly the
// division of labor run.go's own doc comment describes.
//
// source is only used for caret-style diagnostic rendering (spec's
// diagnostics.Collector, grounded on go-dws's own error formatter); pass
// the empty string when it is unavailable (e.g. in tests building an
// ast.Program by hand).
func Compile(prog *ast.Program, source string) (*Result, error) {
	global, ctx, err := analyzer.Run(prog, source)
	if err != nil {
		return nil, err
	}

	captures := lambdacapture.Resolve(ctx.LambdaQueue)

	return &Result{
		ScopeTree:    global,
		CaptureMap:   captures,
		MainArgsCtor: ctx.MainArgs,
		Ctx:          ctx,
		Lambdas:      ctx.LambdaQueue,
	}, nil
}
