package analyzer

import (
	"github.com/rhysd/dachs/internal/scope"
	"github.com/rhysd/dachs/internal/token"
	"github.com/rhysd/dachs/internal/types"
)

// MainArgsCtor describes how the code emitter should materialize main's
// single optional argument (spec §4.3.6 "The main function receives a
// synthesized zero-arg or argv-constructed argument, computed by
// analyze_preprocess(main) the same way"; spec §6 "Code emitter ...
// consumes (ScopeTree, CaptureMap, MainArgsCtor)"). It is the third
// member of that pipeline's output contract.
type MainArgsCtor struct {
	// Main is main's own function scope.
	Main *scope.FunctionScope

	// Param is nil when main takes no parameters - the emitter calls
	// main with zero arguments. Otherwise it is main's one argv
	// parameter, the slot the synthesized value binds into.
	Param *scope.VariableSymbol

	// ArgvClass is the builtin argv class's scope, set only when Param
	// is non-nil, for the emitter to instantiate and populate from the
	// process's actual argument list.
	ArgvClass *scope.ClassScope
}

// checkMain implements spec §4.3.8: exactly one function named `main`
// must exist, taking either no parameters or one immutable parameter of
// class `argv`. Overloaded `main` is an error; a missing `main` is an
// error reported at (1,1), since there is no declaration site to blame.
// On success it also computes MainArgsCtor (spec §4.3.6 last sentence)
// and stores it on the Context for internal/compiler to surface.
func (a *SemanticAnalyzer) checkMain() {
	binding, ok := a.ctx.Global.Functions["main"]
	if !ok || len(binding.Overloads) == 0 {
		a.ctx.Errors.Errorf(token.Position{Line: 1, Column: 1}, "no 'main' function found")
		return
	}
	if len(binding.Overloads) > 1 {
		a.errorf(binding.Overloads[0].Def, "'main' cannot be overloaded")
		return
	}

	fn := binding.Overloads[0]
	a.ensureAnalyzed(fn)

	switch len(fn.Params) {
	case 0:
		a.ctx.MainArgs = &MainArgsCtor{Main: fn}
	case 1:
		// Parameters carry no separate mutable/immutable declaration
		// syntax in this implementation (scope_builder.go always creates
		// plain VariableSymbols for them), so only the class is checked
		// here; see DESIGN.md.
		p := fn.Params[0]
		cls, ok := p.Type.(*types.Class)
		if !ok || cls.Name != "argv" {
			a.errorf(fn.Def, "'main' parameter must be an 'argv', got %s", p.Type.String())
			return
		}
		a.ctx.MainArgs = &MainArgsCtor{Main: fn, Param: p, ArgvClass: classScopeOf(cls)}
	default:
		a.errorf(fn.Def, "'main' takes no parameters or one 'argv' parameter, got %d", len(fn.Params))
	}
}
