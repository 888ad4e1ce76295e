// Package builtins predeclares the runtime library the analyzer assumes
// is already linked in (spec §1: "The runtime library (array/string
// classes, print/println, intrinsics) is a predeclared input to the
// analyzer, not a component to build"): print/println/fatal, the
// int/uint/float/char/bool cast helpers, the array template class and
// the string class used for literals (spec §4.3.2), and the argv class.
// No `__builtin_`-prefixed intrinsics are registered.
//
// Grounded on go-dws's NewAnalyzer, which registers Exception, IInterface
// and math constants into a fresh *Analyzer before any user AST is
// walked (internal/semantic/analyzer.go).
package builtins

import (
	"github.com/rhysd/dachs/internal/ast"
	"github.com/rhysd/dachs/internal/scope"
	"github.com/rhysd/dachs/internal/token"
	"github.com/rhysd/dachs/internal/types"
)

// CastNames lists the builtin type names usable as cast-call syntax
// (e.g. `int(x)`), carried from the original implementation's cast_expr
// fallback path (spec §9(b): "user-defined cast lookup is a TODO, treated
// as identity").
var CastNames = []string{"int", "uint", "float", "char", "bool"}

// Register predeclares every builtin function and class into g. It must
// run before the user AST is walked, so user declarations can shadow
// (but never be confused with) a builtin of the same name.
func Register(g *scope.GlobalScope) {
	registerPrintFamily(g)
	registerCastHelpers(g)
	registerArrayClass(g)
	registerStringClass(g)
	registerArgvClass(g)
}

func intrinsicDef(name string) *ast.FunctionDefinition {
	return &ast.FunctionDefinition{
		StmtMeta: ast.StmtMeta{Meta: ast.NewMeta(token.Position{})},
		Name:     name,
	}
}

// registerPrintFamily predeclares fatal, taking a single string message,
// and print and println with the original's arity overloads: a
// zero-argument form, and a one-argument form accepting any single
// value - including a tuple, since Dachs has
// no variadic parameter lists and instead spreads multiple arguments as
// one tuple value (spec's supplemented feature 3: "print/println overload
// on arity (0, 1, or variadic-via-tuple)").
func registerPrintFamily(g *scope.GlobalScope) {
	for _, name := range []string{"print", "println"} {
		noArg := newBuiltinFunc(g, name)
		noArg.ReturnType = types.Unit
		g.AddFunction(noArg)

		oneArg := newBuiltinFunc(g, name)
		argTemplate := types.NewTemplate(oneArg.Def.ID(), name+".arg")
		oneArg.Params = append(oneArg.Params, scope.NewVariableSymbol("value", argTemplate, oneArg.Def))
		oneArg.ReturnType = types.Unit
		g.AddFunction(oneArg)
	}

	fatal := newBuiltinFunc(g, "fatal")
	fatal.Params = append(fatal.Params, scope.NewVariableSymbol("message", stringClassType(), fatal.Def))
	fatal.ReturnType = types.Unit
	g.AddFunction(fatal)
}

// registerCastHelpers predeclares int/uint/float/char/bool as callable
// intrinsics: each takes one value of any type and returns the named
// builtin type, standing in for the cast expression's fallback path
// (spec §9(b), supplemented feature 2).
func registerCastHelpers(g *scope.GlobalScope) {
	for _, name := range CastNames {
		builtin, ok := types.LookupBuiltin(name)
		if !ok {
			continue
		}
		fn := newBuiltinFunc(g, name)
		argTemplate := types.NewTemplate(fn.Def.ID(), name+".arg")
		fn.Params = append(fn.Params, scope.NewVariableSymbol("value", argTemplate, fn.Def))
		fn.ReturnType = builtin
		g.AddFunction(fn)
	}
}

func newBuiltinFunc(g *scope.GlobalScope, name string) *scope.FunctionScope {
	def := intrinsicDef(name)
	fn := scope.NewFunctionScope(g, name, def)
	fn.IsBuiltin = true
	return fn
}

// registerArrayClass predeclares the single-parameter template class
// `array(T)` that array-literal rewriting instantiates (spec §4.3.2):
// one instance variable of type array(T) (unsized) backing storage, a
// `size` accessor and an index operator, matching the `size(): uint` /
// `[](uint): T` contract `for_stmt` requires of any non-array range
// (spec §4.3.2 "for").
func registerArrayClass(g *scope.GlobalScope) {
	def := &ast.ClassDefinition{
		StmtMeta: ast.StmtMeta{Meta: ast.NewMeta(token.Position{})},
		Name:     "array",
		Params:   []string{"T"},
	}
	cls := scope.NewClassScope(g, "array", def)
	cls.Params = def.Params

	elemTemplate := types.NewTemplate(def.ID(), "array.T")
	cls.DefineVar(scope.NewVariableSymbol("__storage", &types.Array{Elem: elemTemplate}, nil))

	sizeFn := scope.NewFunctionScope(cls, "size", nil)
	sizeFn.IsBuiltin = true
	sizeFn.ReturnType = types.UInt
	cls.AddMethod(sizeFn)

	indexFn := scope.NewFunctionScope(cls, "[]", nil)
	indexFn.IsBuiltin = true
	indexFn.Params = append(indexFn.Params, scope.NewVariableSymbol("i", types.UInt, nil))
	indexFn.ReturnType = elemTemplate
	cls.AddMethod(indexFn)

	g.AddClass(cls)
}

// registerStringClass predeclares the non-template builtin class `string`
// that string-literal rewriting instantiates (spec §4.3.2), with the same
// size()/[] contract as array, indexing to char (spec §4.3.3
// "index_access... builtin string yields char").
func registerStringClass(g *scope.GlobalScope) {
	def := &ast.ClassDefinition{
		StmtMeta: ast.StmtMeta{Meta: ast.NewMeta(token.Position{})},
		Name:     "string",
	}
	cls := scope.NewClassScope(g, "string", def)
	cls.DefineVar(scope.NewVariableSymbol("__storage", &types.Array{Elem: types.Char}, nil))

	sizeFn := scope.NewFunctionScope(cls, "size", nil)
	sizeFn.IsBuiltin = true
	sizeFn.ReturnType = types.UInt
	cls.AddMethod(sizeFn)

	indexFn := scope.NewFunctionScope(cls, "[]", nil)
	indexFn.IsBuiltin = true
	indexFn.Params = append(indexFn.Params, scope.NewVariableSymbol("i", types.UInt, nil))
	indexFn.ReturnType = types.Char
	cls.AddMethod(indexFn)

	g.AddClass(cls)
}

func stringClassType() types.Type {
	return &types.Class{Name: "string"}
}

// registerArgvClass predeclares the non-template builtin class `argv`,
// the single type `main` may accept as its one immutable parameter
// (spec §4.3.8), with the same size()/[] contract as string so argv
// behaves as an indexable range of string arguments.
func registerArgvClass(g *scope.GlobalScope) {
	def := &ast.ClassDefinition{
		StmtMeta: ast.StmtMeta{Meta: ast.NewMeta(token.Position{})},
		Name:     "argv",
	}
	cls := scope.NewClassScope(g, "argv", def)
	cls.DefineVar(scope.NewVariableSymbol("__storage", &types.Array{Elem: stringClassType()}, nil))

	sizeFn := scope.NewFunctionScope(cls, "size", nil)
	sizeFn.IsBuiltin = true
	sizeFn.ReturnType = types.UInt
	cls.AddMethod(sizeFn)

	indexFn := scope.NewFunctionScope(cls, "[]", nil)
	indexFn.IsBuiltin = true
	indexFn.Params = append(indexFn.Params, scope.NewVariableSymbol("i", types.UInt, nil))
	indexFn.ReturnType = stringClassType()
	cls.AddMethod(indexFn)

	g.AddClass(cls)
}
