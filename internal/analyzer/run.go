package analyzer

import (
	"github.com/rhysd/dachs/internal/ast"
	"github.com/rhysd/dachs/internal/builtins"
	"github.com/rhysd/dachs/internal/scope"
)

// Run is the canonical entry point tying ScopeBuilder and SemanticAnalyzer
// together over one Context (spec §5 "Ordering guarantees: ScopeBuilder
// completes fully before SemanticAnalyzer begins"). internal/compiler
// additionally runs internal/lambdacapture afterward.
func Run(prog *ast.Program, source string) (*scope.GlobalScope, *Context, error) {
	ctx := NewContext(source)
	a := New(ctx) // wires ctx.Types for typeof(expr) re-entrancy
	builtins.Register(ctx.Global)

	a.builder.BuildInto(prog)
	if err := ctx.Errors.Err(); err != nil {
		return ctx.Global, ctx, err
	}

	if err := a.AnalyzeProgram(prog); err != nil {
		return ctx.Global, ctx, err
	}
	return ctx.Global, ctx, nil
}
