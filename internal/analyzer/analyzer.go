package analyzer

import (
	"github.com/rhysd/dachs/internal/ast"
	"github.com/rhysd/dachs/internal/resolver"
	"github.com/rhysd/dachs/internal/scope"
	"github.com/rhysd/dachs/internal/types"
)

// SemanticAnalyzer is the recursive core of spec §4.3: it walks the AST
// top-down, resolving variable references, deducing expression types,
// performing overload resolution, driving on-demand template
// instantiation, validating constructors, and inferring const-ness.
//
// It implements resolver.ExprAnalyzer so a *resolver.Resolver can call
// back into it for `typeof(expr)` (spec §4.2, §9(c)) without package
// resolver importing this package.
type SemanticAnalyzer struct {
	ctx     *Context
	builder *ScopeBuilder

	// analyzed marks function scopes whose body has already been walked,
	// so eager top-level analysis and on-demand call-site analysis never
	// walk the same body twice (spec §9 "already_visited set").
	analyzed map[*scope.FunctionScope]bool

	// analyzing marks function scopes currently being walked, so a
	// recursive call back into one's own body takes the recursive-return
	// inference path instead of recursing into AnalyzeFunctionBody again
	// (spec §4.3.5 "Recursive-return inference").
	analyzing map[*scope.FunctionScope]bool

	// selfCalls records, per method, every other method of the same class
	// it called through an implicit or explicit self receiver - the call
	// graph const inference walks (spec §4.3.7).
	selfCalls map[*scope.FunctionScope]map[*scope.FunctionScope]bool

	// returnTypes records every typed return statement seen in a
	// function's body, consumed by inferReturnType once the whole body
	// has been walked (spec §4.3.5 "Recursive-return inference").
	returnTypes map[*scope.FunctionScope][]types.Type
}

// New creates a SemanticAnalyzer sharing ctx with the ScopeBuilder that
// already populated ctx.Global, and wires ctx.Types to resolve `typeof`
// through this analyzer.
func New(ctx *Context) *SemanticAnalyzer {
	a := &SemanticAnalyzer{
		ctx:       ctx,
		builder:   NewScopeBuilder(ctx),
		analyzed:    make(map[*scope.FunctionScope]bool),
		analyzing:   make(map[*scope.FunctionScope]bool),
		selfCalls:   make(map[*scope.FunctionScope]map[*scope.FunctionScope]bool),
		returnTypes: make(map[*scope.FunctionScope][]types.Type),
	}
	ctx.Types = resolver.New(a)
	return a
}

// AnalyzeProgram walks every non-template, non-constructor function and
// method reachable from Global, then validates `main` (spec §4.3.8).
// Constructor bodies are analyzed lazily, the first time an
// object_construct resolves to them (spec §4.3.6); template bodies are
// analyzed only through instantiation (invariant 3, 4).
func (a *SemanticAnalyzer) AnalyzeProgram(prog *ast.Program) error {
	for _, binding := range a.ctx.Global.Functions {
		for _, fn := range binding.Overloads {
			a.maybeAnalyzeEagerly(fn)
		}
	}
	for _, cls := range a.ctx.Global.Classes {
		for _, binding := range cls.Methods {
			for _, fn := range binding.Overloads {
				if fn.IsConstructor {
					continue // analyzed lazily per construction site
				}
				a.maybeAnalyzeEagerly(fn)
			}
		}
	}

	a.checkMain()

	return a.ctx.Errors.Err()
}

func (a *SemanticAnalyzer) maybeAnalyzeEagerly(fn *scope.FunctionScope) {
	if fn.IsTemplate() || fn.IsBuiltin {
		return
	}
	a.AnalyzeFunctionBody(fn)
}

// AnalyzeFunctionBody walks fn's body once, under CurrentFunction/Class
// set for the duration. Re-entering a function already being analyzed
// (a recursive call before any return type is known) is handled by the
// caller via ensureAnalyzed/recursive-return inference, not here.
func (a *SemanticAnalyzer) AnalyzeFunctionBody(fn *scope.FunctionScope) {
	if a.analyzed[fn] || a.analyzing[fn] {
		return
	}
	a.analyzing[fn] = true
	defer func() {
		a.analyzing[fn] = false
		a.analyzed[fn] = true
	}()

	prevFn, prevCls := a.ctx.CurrentFunction, a.ctx.CurrentClass
	a.ctx.CurrentFunction = fn
	if cls, ok := fn.Parent().(*scope.ClassScope); ok && fn.IsMethod {
		a.ctx.CurrentClass = cls
	}
	defer func() { a.ctx.CurrentFunction, a.ctx.CurrentClass = prevFn, prevCls }()

	if fn.Def == nil || fn.Def.Body == nil {
		return
	}
	a.analyzeBlock(fn.Def.Body, fn.Body)

	if fn.ReturnType == nil {
		a.inferReturnType(fn)
	}

	if fn.IsConstructor {
		a.validateConstructor(fn)
	} else if fn.IsMethod {
		a.inferConst(fn)
	}
}

// ensureAnalyzed is the on-demand "analyze this callee first" rule
// (spec §9): called before trusting fn.ReturnType at a call site.
func (a *SemanticAnalyzer) ensureAnalyzed(fn *scope.FunctionScope) {
	if fn.IsBuiltin || a.analyzed[fn] {
		return
	}
	if a.analyzing[fn] {
		return // recursive re-entry; resolved via inferReturnType below
	}
	a.AnalyzeFunctionBody(fn)
}

// AnalyzeExpr implements resolver.ExprAnalyzer for `typeof(expr)`.
func (a *SemanticAnalyzer) AnalyzeExpr(expr ast.Expression, s scope.Scope) (types.Type, error) {
	t := a.analyzeExpr(expr, s)
	if t == nil {
		return nil, a.ctx.Errors.Err()
	}
	return t, nil
}

func (a *SemanticAnalyzer) errorf(pos ast.Node, format string, args ...interface{}) {
	a.ctx.Errors.Errorf(pos.Pos(), format, args...)
}
