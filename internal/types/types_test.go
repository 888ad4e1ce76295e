package types

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinEquality(t *testing.T) {
	assert.True(t, Int.Equals(Int))
	assert.False(t, Int.Equals(Float))
	assert.False(t, Int.Equals(Unit))
}

func TestUnitIsCanonical(t *testing.T) {
	a := NewTuple(nil)
	b := NewTuple([]Type{})
	require.Same(t, Unit, a)
	require.Same(t, Unit, b)
	assert.True(t, a.Equals(b))
}

func TestTupleEquality(t *testing.T) {
	a := NewTuple([]Type{Int, Bool})
	b := NewTuple([]Type{Int, Bool})
	c := NewTuple([]Type{Int, Float})
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestTemplateIdentity(t *testing.T) {
	n1 := uuid.New()
	n2 := uuid.New()
	t1 := NewTemplate(n1, "x")
	t1Again := NewTemplate(n1, "x")
	t2 := NewTemplate(n2, "y")

	assert.True(t, t1.Equals(t1Again), "same binding site should be equal")
	assert.False(t, t1.Equals(t2))
	assert.True(t, t1.IsTemplate())
}

func TestArrayEqualsRequiresSameSize(t *testing.T) {
	one := uint64(3)
	other := uint64(4)
	a := &Array{Elem: Int, Size: &one}
	b := &Array{Elem: Int, Size: &one}
	c := &Array{Elem: Int, Size: &other}
	d := &Array{Elem: Int, Size: nil}

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(d))
	assert.True(t, a.DiffersOnlyBySize(d))
}

func TestGenericFuncPointerEquality(t *testing.T) {
	scopeA := &struct{ tag string }{"a"}
	scopeB := &struct{ tag string }{"b"}

	g1 := &GenericFunc{Scope: scopeA, Name: "f"}
	g1Again := &GenericFunc{Scope: scopeA, Name: "f"}
	g2 := &GenericFunc{Scope: scopeB, Name: "f"}

	assert.True(t, g1.Equals(g1Again), "same scope pointer must be equal")
	assert.False(t, g1.Equals(g2), "different scope pointer must not be equal")

	cp := g1.Copy()
	assert.True(t, cp.Equals(g1))
	cp.Name = "renamed"
	assert.Equal(t, "f", g1.Name, "Copy must not mutate the original")
}

type fakeClassScope struct {
	fields []Type
}

func (f *fakeClassScope) InstanceVarTypes() []Type { return f.fields }

func TestClassEqualityTreatsTemplatesAsWildcards(t *testing.T) {
	nodeID := uuid.New()
	scope1 := &fakeClassScope{fields: []Type{Int, NewTemplate(nodeID, "t")}}
	scope2 := &fakeClassScope{fields: []Type{Int, Float}}
	scope3 := &fakeClassScope{fields: []Type{Bool, Float}}

	c1 := &Class{Name: "Pair", Scope: scope1}
	c2 := &Class{Name: "Pair", Scope: scope2}
	c3 := &Class{Name: "Pair", Scope: scope3}

	assert.True(t, c1.Equals(c2), "template position should wildcard-match")
	assert.False(t, c1.Equals(c3), "non-template mismatch must still fail")
}

func TestIsInstantiableFrom(t *testing.T) {
	nodeID := uuid.New()
	tmpl := NewTemplate(nodeID, "elem")

	want := &Array{Elem: tmpl}
	have := &Array{Elem: Int}
	assert.True(t, types_IsInstantiableFrom(want, have))

	mismatch := &Pointer{Pointee: Int}
	assert.False(t, types_IsInstantiableFrom(want, mismatch))
}

// small indirection so a future rename of the exported helper doesn't
// force-edit every call site in this file.
func types_IsInstantiableFrom(want, have Type) bool { return IsInstantiableFrom(want, have) }

func TestSubstituteAndCollectBindings(t *testing.T) {
	nodeID := uuid.New()
	tmpl := NewTemplate(nodeID, "t")
	declared := &Array{Elem: tmpl}
	actual := &Array{Elem: Float}

	bindings := map[Type]Type{}
	CollectTemplateBindings(declared, actual, bindings)
	require.Len(t, bindings, 1)
	require.Contains(t, bindings, Type(tmpl))
	assert.True(t, bindings[tmpl].Equals(Float))

	specialized := Substitute(declared, bindings)
	assert.True(t, specialized.Equals(actual))
}
