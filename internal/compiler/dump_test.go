package compiler

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/rhysd/dachs/internal/builtins"
	"github.com/rhysd/dachs/internal/scope"
)

// TestDumpScopeTreeOfPredeclaredBuiltins snapshots the `--dump-scope`
// output for a scope tree containing only the predeclared builtins, the
// same role go-snaps plays for the teacher's interpreter-output fixtures
// (internal/interp/fixture_test.go): catch any unintended change to the
// builtin surface's shape.
func TestDumpScopeTreeOfPredeclaredBuiltins(t *testing.T) {
	g := scope.NewGlobalScope()
	builtins.Register(g)

	snaps.MatchSnapshot(t, DumpScopeTree(g))
}
