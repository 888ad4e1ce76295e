package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhysd/dachs/internal/ast"
	"github.com/rhysd/dachs/internal/token"
	"github.com/rhysd/dachs/internal/types"
)

func TestEnclosingWalksParentChain(t *testing.T) {
	g := NewGlobalScope()
	cls := NewClassScope(g, "Foo", nil)
	fn := NewFunctionScope(cls, "bar", nil)
	inner := NewLocalScope(fn.Body)
	fn.Body.AddChild(inner)

	assert.Same(t, fn, EnclosingFunction(inner))
	assert.Same(t, cls, EnclosingClass(inner))
	assert.Same(t, g, EnclosingGlobal(inner))
	assert.Nil(t, EnclosingClass(NewFunctionScope(g, "free", nil)))
}

func TestLocalScopeDefineRejectsDuplicateInSameScope(t *testing.T) {
	l := NewLocalScope(nil)
	x := NewVariableSymbol("x", types.Int, nil)
	require.NoError(t, l.Define(x))

	err := l.Define(NewVariableSymbol("x", types.Int, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "x redefined")
}

func TestLocalScopeShadowingAcrossNestedScopesIsAllowed(t *testing.T) {
	outer := NewLocalScope(nil)
	require.NoError(t, outer.Define(NewVariableSymbol("x", types.Int, nil)))

	inner := NewLocalScope(outer)
	outer.AddChild(inner)
	require.NoError(t, inner.Define(NewVariableSymbol("x", types.Float, nil)))

	sym, ok := Resolve(inner, "x")
	require.True(t, ok)
	assert.Same(t, types.Float, sym.Type)
}

func TestResolveFindsParamBeforeInstanceVarBeforeConstant(t *testing.T) {
	g := NewGlobalScope()
	g.Constants["x"] = NewVariableSymbol("x", types.Int, nil)

	cls := NewClassScope(g, "Foo", nil)
	cls.DefineVar(NewVariableSymbol("x", types.Float, nil))

	fn := NewFunctionScope(cls, "bar", nil)
	fn.Params = append(fn.Params, NewVariableSymbol("x", types.Bool, nil))
	local := NewLocalScope(fn.Body)
	fn.Body.AddChild(local)

	sym, ok := Resolve(local, "x")
	require.True(t, ok)
	assert.Same(t, types.Bool, sym.Type, "a parameter must shadow an instance var of the same name")

	sym, ok = Resolve(NewLocalScope(cls), "x")
	require.True(t, ok)
	assert.Same(t, types.Float, sym.Type, "with no function in between, the instance var must shadow the global constant")
}

func TestResolveFunctionPrefersMethodOverFreeFunction(t *testing.T) {
	g := NewGlobalScope()
	free := NewFunctionScope(g, "greet", nil)
	g.AddFunction(free)

	cls := NewClassScope(g, "Foo", nil)
	method := NewFunctionScope(cls, "greet", nil)
	cls.AddMethod(method)

	body := NewFunctionScope(cls, "caller", nil)
	local := NewLocalScope(body.Body)
	body.Body.AddChild(local)

	b, ok := ResolveFunction(local, "greet")
	require.True(t, ok)
	require.Len(t, b.Overloads, 1)
	assert.Same(t, method, b.Overloads[0])
}

func TestResolveFunctionFallsBackToGlobalOutsideAnyClass(t *testing.T) {
	g := NewGlobalScope()
	free := NewFunctionScope(g, "greet", nil)
	g.AddFunction(free)

	local := NewLocalScope(g)
	b, ok := ResolveFunction(local, "greet")
	require.True(t, ok)
	assert.Same(t, free, b.Overloads[0])
}

func TestClassScopeImplementsClassShapeForStructuralEquality(t *testing.T) {
	g := NewGlobalScope()
	a := NewClassScope(g, "Pair", nil)
	a.DefineVar(NewVariableSymbol("first", types.Int, nil))
	a.DefineVar(NewVariableSymbol("second", types.Float, nil))

	var shape types.ClassShape = a
	require.Len(t, shape.InstanceVarTypes(), 2)
	assert.Same(t, types.Int, shape.InstanceVarTypes()[0])
}

func TestFunctionScopeFindInstantiationDedupsByArgTuple(t *testing.T) {
	g := NewGlobalScope()
	tmpl := NewFunctionScope(g, "id", &ast.FunctionDefinition{
		StmtMeta: ast.StmtMeta{Meta: ast.NewMeta(token.Position{})},
		Name:     "id",
	})
	tmpl.Params = append(tmpl.Params, NewVariableSymbol("x", types.NewTemplate(tmpl.Def.ID(), "x"), nil))

	instInt := NewFunctionScope(g, "id", tmpl.Def)
	instInt.Params = append(instInt.Params, NewVariableSymbol("x", types.Int, nil))
	tmpl.Instantiated = append(tmpl.Instantiated, instInt)

	found := tmpl.FindInstantiation([]types.Type{types.Int})
	require.NotNil(t, found)
	assert.Same(t, instInt, found)

	assert.Nil(t, tmpl.FindInstantiation([]types.Type{types.Float}))
}

func TestFunctionScopeIsTemplateWhenAnyParamUnannotated(t *testing.T) {
	g := NewGlobalScope()
	def := &ast.FunctionDefinition{StmtMeta: ast.StmtMeta{Meta: ast.NewMeta(token.Position{})}, Name: "f"}
	fn := NewFunctionScope(g, "f", def)
	fn.Params = append(fn.Params, NewVariableSymbol("n", types.Int, nil))
	assert.False(t, fn.IsTemplate())

	fn.Params = append(fn.Params, NewVariableSymbol("x", types.NewTemplate(def.ID(), "x"), nil))
	assert.True(t, fn.IsTemplate())
}
