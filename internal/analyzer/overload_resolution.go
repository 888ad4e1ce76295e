package analyzer

import (
	"fmt"
	"sort"

	"github.com/rhysd/dachs/internal/scope"
	"github.com/rhysd/dachs/internal/types"
)

// scoreCandidate implements spec §4.3.4's per-candidate scoring: arity
// mismatch rejects outright; otherwise each parameter contributes a
// factor (Template matches anything at 1, a same-named class template
// matches at 2, an exact type match at 3, anything else rejects the
// whole candidate).
func scoreCandidate(params []*scope.VariableSymbol, args []types.Type) int {
	if len(params) != len(args) {
		return 0
	}
	score := 1
	for i, p := range params {
		score *= scoreParam(p.Type, args[i])
		if score == 0 {
			return 0
		}
	}
	return score
}

func scoreParam(declared, actual types.Type) int {
	if declared == nil || actual == nil {
		return 0
	}
	if dc, ok := declared.(*types.Class); ok {
		if cs := classScopeOf(dc); dc.IsTemplate() || (cs != nil && cs.IsTemplate()) {
			if ac, ok := actual.(*types.Class); ok && ac.Name == dc.Name {
				return 2
			}
			return 0
		}
	}
	if declared.IsTemplate() {
		return 1
	}
	if declared.Equals(actual) {
		return 3
	}
	return 0
}

// resolveOverload picks the unique maximal-scoring candidate from
// binding's overload set (spec §4.3.4). It returns an error naming the
// function ("not found") or listing the tie ("ambiguous").
func (a *SemanticAnalyzer) resolveOverload(name string, binding *scope.FunctionBinding, args []types.Type, accessFrom *scope.ClassScope) (*scope.FunctionScope, error) {
	if binding == nil {
		return nil, notFoundError(name, args)
	}

	type scored struct {
		fn    *scope.FunctionScope
		score int
	}
	var candidates []scored
	for _, fn := range binding.Overloads {
		if !a.accessible(fn, accessFrom) {
			continue
		}
		if s := scoreCandidate(fn.Params, args); s > 0 {
			candidates = append(candidates, scored{fn, s})
		}
	}
	if len(candidates) == 0 {
		return nil, notFoundError(name, args)
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
	best := candidates[0].score
	var winners []*scope.FunctionScope
	for _, c := range candidates {
		if c.score == best {
			winners = append(winners, c.fn)
		}
	}
	if len(winners) > 1 {
		return nil, ambiguousError(name, winners)
	}
	return winners[0], nil
}

// accessible implements the private-member access-control rule
// (spec §4.3.4): a private method is only callable from within a method
// of the same class.
func (a *SemanticAnalyzer) accessible(fn *scope.FunctionScope, from *scope.ClassScope) bool {
	cls, ok := fn.Parent().(*scope.ClassScope)
	if !ok {
		return true // free function
	}
	if fn.Def == nil || fn.Def.Visibility == 0 { // ast.VisibilityPublic == 0
		return true
	}
	return cls == from
}

func notFoundError(name string, args []types.Type) error {
	return fmt.Errorf("function `%s(%s)` not found", name, typeListString(args))
}

func ambiguousError(name string, winners []*scope.FunctionScope) error {
	return fmt.Errorf("ambiguous call to `%s`: %d candidates match equally well", name, len(winners))
}

func typeListString(args []types.Type) string {
	s := ""
	for i, t := range args {
		if i > 0 {
			s += ", "
		}
		if t == nil {
			s += "?"
		} else {
			s += t.String()
		}
	}
	return s
}
