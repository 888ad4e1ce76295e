package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhysd/dachs/internal/ast"
	"github.com/rhysd/dachs/internal/scope"
	"github.com/rhysd/dachs/internal/token"
	"github.com/rhysd/dachs/internal/types"
)

func TestResolveNamedBuiltin(t *testing.T) {
	r := New(nil)
	g := scope.NewGlobalScope()
	n := &ast.NamedTypeNode{Meta: ast.NewMeta(token.Position{}), Name: "int"}

	got, err := r.Resolve(n, g)
	require.NoError(t, err)
	assert.Same(t, types.Int, got)
}

func TestResolveNamedClassRecursivelyResolvesArgs(t *testing.T) {
	r := New(nil)
	g := scope.NewGlobalScope()
	pair := scope.NewClassScope(g, "Pair", nil)
	pair.Params = []string{"A", "B"}
	g.AddClass(pair)

	n := &ast.NamedTypeNode{
		Meta: ast.NewMeta(token.Position{}),
		Name: "Pair",
		Args: []ast.TypeNode{
			&ast.NamedTypeNode{Meta: ast.NewMeta(token.Position{}), Name: "int"},
			&ast.NamedTypeNode{Meta: ast.NewMeta(token.Position{}), Name: "float"},
		},
	}

	got, err := r.Resolve(n, g)
	require.NoError(t, err)
	cls, ok := got.(*types.Class)
	require.True(t, ok)
	assert.Equal(t, "Pair", cls.Name)
	require.Len(t, cls.Args, 2)
	assert.Same(t, types.Int, cls.Args[0])
	assert.Same(t, types.Float, cls.Args[1])
}

func TestResolveNamedUnknownClassFails(t *testing.T) {
	r := New(nil)
	g := scope.NewGlobalScope()
	n := &ast.NamedTypeNode{Meta: ast.NewMeta(token.Position{}), Name: "Nope"}

	_, err := r.Resolve(n, g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid type 'Nope'")
}

func TestResolveArrayWithMissingElemBindsFreshTemplate(t *testing.T) {
	r := New(nil)
	g := scope.NewGlobalScope()
	n := &ast.ArrayTypeNode{Meta: ast.NewMeta(token.Position{})}

	got, err := r.Resolve(n, g)
	require.NoError(t, err)
	arr, ok := got.(*types.Array)
	require.True(t, ok)
	assert.True(t, arr.Elem.IsTemplate())
}

func TestResolvePointerTupleQualified(t *testing.T) {
	r := New(nil)
	g := scope.NewGlobalScope()
	intNode := &ast.NamedTypeNode{Meta: ast.NewMeta(token.Position{}), Name: "int"}

	ptr, err := r.Resolve(&ast.PointerTypeNode{Meta: ast.NewMeta(token.Position{}), Pointee: intNode}, g)
	require.NoError(t, err)
	assert.Equal(t, types.Int, ptr.(*types.Pointer).Pointee)

	tup, err := r.Resolve(&ast.TupleTypeNode{Meta: ast.NewMeta(token.Position{}), Elems: []ast.TypeNode{intNode, intNode}}, g)
	require.NoError(t, err)
	assert.Len(t, tup.(*types.Tuple).Elems, 2)

	qual, err := r.Resolve(&ast.QualifiedTypeNode{Meta: ast.NewMeta(token.Position{}), Qualifier: "maybe", Inner: intNode}, g)
	require.NoError(t, err)
	assert.Equal(t, types.QualifierMaybe, qual.(*types.Qualified).Qualifier)
}

func TestResolveFuncTypeDefaultsVoidReturnToUnit(t *testing.T) {
	r := New(nil)
	g := scope.NewGlobalScope()
	n := &ast.FuncTypeNode{Meta: ast.NewMeta(token.Position{})}

	got, err := r.Resolve(n, g)
	require.NoError(t, err)
	assert.Same(t, types.Unit, got.(*types.Func).Ret)
}

type stubExprAnalyzer struct {
	typ types.Type
}

func (s *stubExprAnalyzer) AnalyzeExpr(expr ast.Expression, sc scope.Scope) (types.Type, error) {
	return s.typ, nil
}

func TestResolveTypeofDelegatesToExprAnalyzer(t *testing.T) {
	r := New(&stubExprAnalyzer{typ: types.Bool})
	g := scope.NewGlobalScope()
	n := &ast.TypeofNode{Meta: ast.NewMeta(token.Position{})}

	got, err := r.Resolve(n, g)
	require.NoError(t, err)
	assert.Same(t, types.Bool, got)
}

func TestResolveTypeofWithoutAnalyzerFails(t *testing.T) {
	r := New(nil)
	g := scope.NewGlobalScope()
	n := &ast.TypeofNode{Meta: ast.NewMeta(token.Position{})}

	_, err := r.Resolve(n, g)
	require.Error(t, err)
}
