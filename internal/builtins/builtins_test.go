package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhysd/dachs/internal/scope"
	"github.com/rhysd/dachs/internal/types"
)

func TestRegisterPredeclaresPrintWithZeroAndOneArgOverloads(t *testing.T) {
	g := scope.NewGlobalScope()
	Register(g)

	binding, ok := g.Functions["print"]
	require.True(t, ok)
	require.Len(t, binding.Overloads, 2)

	var arities []int
	for _, fn := range binding.Overloads {
		arities = append(arities, len(fn.Params))
		assert.True(t, fn.IsBuiltin)
	}
	assert.ElementsMatch(t, []int{0, 1}, arities)
}

func TestRegisterPredeclaresFatalTakingAStringMessage(t *testing.T) {
	g := scope.NewGlobalScope()
	Register(g)

	binding, ok := g.Functions["fatal"]
	require.True(t, ok)
	require.Len(t, binding.Overloads, 1)
	assert.Len(t, binding.Overloads[0].Params, 1)
}

func TestRegisterPredeclaresCastHelpersReturningTheirNamedBuiltin(t *testing.T) {
	g := scope.NewGlobalScope()
	Register(g)

	for _, name := range CastNames {
		binding, ok := g.Functions[name]
		require.True(t, ok, "cast helper %s must be registered", name)
		require.Len(t, binding.Overloads, 1)
		fn := binding.Overloads[0]
		require.Len(t, fn.Params, 1)
		assert.True(t, fn.Params[0].Type.IsTemplate())

		want, _ := types.LookupBuiltin(name)
		assert.Same(t, want, fn.ReturnType)
	}
}

func TestRegisterPredeclaresArrayAndStringClasses(t *testing.T) {
	g := scope.NewGlobalScope()
	Register(g)

	arr, ok := g.Classes["array"]
	require.True(t, ok)
	assert.True(t, arr.IsTemplate())
	_, hasSize := arr.Methods["size"]
	_, hasIndex := arr.Methods["[]"]
	assert.True(t, hasSize)
	assert.True(t, hasIndex)

	str, ok := g.Classes["string"]
	require.True(t, ok)
	assert.False(t, str.IsTemplate())
	sizeBinding := str.Methods["size"]
	require.Len(t, sizeBinding.Overloads, 1)
	assert.Same(t, types.UInt, sizeBinding.Overloads[0].ReturnType)
	indexBinding := str.Methods["[]"]
	require.Len(t, indexBinding.Overloads, 1)
	assert.Same(t, types.Char, indexBinding.Overloads[0].ReturnType)
}

func TestRegisterPredeclaresArgvClassForMainsParameter(t *testing.T) {
	g := scope.NewGlobalScope()
	Register(g)

	argv, ok := g.Classes["argv"]
	require.True(t, ok)
	assert.False(t, argv.IsTemplate())

	sizeBinding := argv.Methods["size"]
	require.Len(t, sizeBinding.Overloads, 1)
	assert.Same(t, types.UInt, sizeBinding.Overloads[0].ReturnType)

	indexBinding := argv.Methods["[]"]
	require.Len(t, indexBinding.Overloads, 1)
	require.Len(t, indexBinding.Overloads[0].Params, 1)
	assert.Same(t, types.UInt, indexBinding.Overloads[0].Params[0].Type)
}
