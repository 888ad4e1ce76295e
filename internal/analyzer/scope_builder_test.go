package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhysd/dachs/internal/ast"
	"github.com/rhysd/dachs/internal/token"
)

func pos() token.Position { return token.Position{Line: 1, Column: 1} }

func namedType(name string) *ast.NamedTypeNode {
	return &ast.NamedTypeNode{Meta: ast.NewMeta(pos()), Name: name}
}

func param(name string, typ ast.TypeNode) *ast.Parameter {
	return &ast.Parameter{Meta: ast.NewMeta(pos()), Name: name, Type: typ}
}

func fn(name string, params []*ast.Parameter, ret ast.TypeNode) *ast.FunctionDefinition {
	return &ast.FunctionDefinition{
		StmtMeta:   ast.StmtMeta{Meta: ast.NewMeta(pos())},
		Name:       name,
		Params:     params,
		ReturnType: ret,
		Body:       &ast.BlockStatement{StmtMeta: ast.StmtMeta{Meta: ast.NewMeta(pos())}},
	}
}

func TestBuildRegistersTopLevelFunction(t *testing.T) {
	prog := &ast.Program{
		Functions: []*ast.FunctionDefinition{
			fn("double", []*ast.Parameter{param("x", namedType("int"))}, namedType("int")),
		},
	}
	g, _, err := Build(prog, "")
	require.NoError(t, err)
	binding, ok := g.Functions["double"]
	require.True(t, ok)
	require.Len(t, binding.Overloads, 1)
	assert.Equal(t, "int", binding.Overloads[0].ReturnType.String())
}

func TestBuildRejectsDuplicateFunctionSignature(t *testing.T) {
	prog := &ast.Program{
		Functions: []*ast.FunctionDefinition{
			fn("double", []*ast.Parameter{param("x", namedType("int"))}, namedType("int")),
			fn("double", []*ast.Parameter{param("y", namedType("int"))}, namedType("int")),
		},
	}
	_, _, err := Build(prog, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redefined")
}

func TestBuildAllowsOverloadsWithDistinctParamTypes(t *testing.T) {
	prog := &ast.Program{
		Functions: []*ast.FunctionDefinition{
			fn("show", []*ast.Parameter{param("x", namedType("int"))}, nil),
			fn("show", []*ast.Parameter{param("x", namedType("bool"))}, nil),
		},
	}
	g, _, err := Build(prog, "")
	require.NoError(t, err)
	assert.Len(t, g.Functions["show"].Overloads, 2)
}

func TestBuildSynthesizesDefaultConstructorWhenNoneDeclared(t *testing.T) {
	def := &ast.ClassDefinition{
		StmtMeta: ast.StmtMeta{Meta: ast.NewMeta(pos())},
		Name:     "Empty",
	}
	prog := &ast.Program{Classes: []*ast.ClassDefinition{def}}
	g, _, err := Build(prog, "")
	require.NoError(t, err)
	cls := g.Classes["Empty"]
	require.NotNil(t, cls)
	assert.Len(t, cls.Constructors(), 1)
}

func TestBuildDoesNotSynthesizeConstructorWhenOneIsDeclared(t *testing.T) {
	ctor := fn("new", nil, nil)
	ctor.IsMethod = true
	ctor.IsConstructor = true
	def := &ast.ClassDefinition{
		StmtMeta: ast.StmtMeta{Meta: ast.NewMeta(pos())},
		Name:     "Has",
		Methods:  []*ast.FunctionDefinition{ctor},
	}
	prog := &ast.Program{Classes: []*ast.ClassDefinition{def}}
	g, _, err := Build(prog, "")
	require.NoError(t, err)
	assert.Len(t, g.Classes["Has"].Constructors(), 1)
}

func TestBuildBindsUnannotatedParamToFreshTemplate(t *testing.T) {
	prog := &ast.Program{
		Functions: []*ast.FunctionDefinition{
			fn("identity", []*ast.Parameter{param("x", nil)}, nil),
		},
	}
	g, _, err := Build(prog, "")
	require.NoError(t, err)
	f := g.Functions["identity"].Overloads[0]
	assert.True(t, f.IsTemplate())
	assert.True(t, f.Params[0].Type.IsTemplate())
}

func TestBuildPrependsSelfParameterForMethods(t *testing.T) {
	method := fn("touch", nil, nil)
	method.IsMethod = true
	def := &ast.ClassDefinition{
		StmtMeta: ast.StmtMeta{Meta: ast.NewMeta(pos())},
		Name:     "Widget",
		Methods:  []*ast.FunctionDefinition{method},
	}
	prog := &ast.Program{Classes: []*ast.ClassDefinition{def}}
	g, _, err := Build(prog, "")
	require.NoError(t, err)
	touch := g.Classes["Widget"].Methods["touch"].Overloads[0]
	require.Len(t, touch.Params, 1)
	assert.Equal(t, "self", touch.Params[0].Name)
}

func TestBuildCreatesLocalScopeForDoBlock(t *testing.T) {
	body := &ast.BlockStatement{
		StmtMeta: ast.StmtMeta{Meta: ast.NewMeta(pos())},
		Statements: []ast.Statement{
			&ast.DoStatement{
				StmtMeta: ast.StmtMeta{Meta: ast.NewMeta(pos())},
				Body:     &ast.BlockStatement{StmtMeta: ast.StmtMeta{Meta: ast.NewMeta(pos())}},
			},
		},
	}
	def := fn("f", nil, nil)
	def.Body = body
	prog := &ast.Program{Functions: []*ast.FunctionDefinition{def}}
	g, _, err := Build(prog, "")
	require.NoError(t, err)
	f := g.Functions["f"].Overloads[0]
	assert.Len(t, f.Body.Children(), 1)
}

func TestBuildRejectsRedefinedLocalInSameScope(t *testing.T) {
	body := &ast.BlockStatement{
		StmtMeta: ast.StmtMeta{Meta: ast.NewMeta(pos())},
		Statements: []ast.Statement{
			&ast.InitializeStatement{
				StmtMeta: ast.StmtMeta{Meta: ast.NewMeta(pos())},
				Targets:  []*ast.VarTarget{{Meta: ast.NewMeta(pos()), Name: "x", Type: namedType("int")}},
			},
			&ast.InitializeStatement{
				StmtMeta: ast.StmtMeta{Meta: ast.NewMeta(pos())},
				Targets:  []*ast.VarTarget{{Meta: ast.NewMeta(pos()), Name: "x", Type: namedType("int")}},
			},
		},
	}
	def := fn("f", nil, nil)
	def.Body = body
	prog := &ast.Program{Functions: []*ast.FunctionDefinition{def}}
	_, _, err := Build(prog, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redefined")
}

func TestBuildAllowsLambdaDuplicateSignaturesWithoutError(t *testing.T) {
	l1 := fn("lambda.1.1.3", nil, nil)
	l1.IsLambda = true
	l2 := fn("lambda.1.1.3", nil, nil)
	l2.IsLambda = true
	prog := &ast.Program{Functions: []*ast.FunctionDefinition{l1, l2}}
	_, _, err := Build(prog, "")
	require.NoError(t, err)
}
