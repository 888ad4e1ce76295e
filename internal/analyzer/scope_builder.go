package analyzer

import (
	"github.com/rhysd/dachs/internal/ast"
	"github.com/rhysd/dachs/internal/builtins"
	"github.com/rhysd/dachs/internal/resolver"
	"github.com/rhysd/dachs/internal/scope"
	"github.com/rhysd/dachs/internal/types"
)

// ScopeBuilder is the single forward pass of spec §4.1: it predeclares
// builtins, then walks the program creating scopes and recording
// signatures so every overload set and class exists before any body is
// analyzed.
type ScopeBuilder struct {
	ctx *Context
}

// NewScopeBuilder creates a ScopeBuilder writing into ctx.
func NewScopeBuilder(ctx *Context) *ScopeBuilder {
	return &ScopeBuilder{ctx: ctx}
}

// Build predeclares builtins into a fresh Global scope, walks prog, and
// returns the resulting scope tree, or a *diagnostics.PassError if any
// duplication was found (spec §4.1 "Duplication rules").
func Build(prog *ast.Program, source string) (*scope.GlobalScope, *Context, error) {
	ctx := NewContext(source)
	ctx.Types = resolver.New(nil) // no SemanticAnalyzer here, so typeof(expr) fails; Run wires one in through New
	builtins.Register(ctx.Global)

	sb := NewScopeBuilder(ctx)
	sb.BuildInto(prog)

	if err := ctx.Errors.Err(); err != nil {
		return ctx.Global, ctx, err
	}
	return ctx.Global, ctx, nil
}

// BuildInto walks prog under an already-prepared ctx without
// re-registering builtins; Build and Run call it. Template instantiation
// (spec §4.3.5 "run ScopeBuilder on the copy") does not go through it: it
// calls declareFunction and buildFunctionBody on the deep-copied
// definitions directly.
func (sb *ScopeBuilder) BuildInto(prog *ast.Program) {
	for _, c := range prog.Classes {
		sb.declareClass(c)
	}
	for _, f := range prog.Functions {
		sb.declareFunction(f, sb.ctx.Global)
	}
	for _, c := range prog.Classes {
		sb.buildClassBody(c)
	}
	for _, f := range prog.Functions {
		sb.buildFunctionBody(f)
	}
}

// declareClass registers cls's name and instance variables, synthesizing
// a default constructor when none is declared (spec §4.1 "Implicitly
// synthesizes a default constructor if no constructor was declared").
func (sb *ScopeBuilder) declareClass(def *ast.ClassDefinition) {
	if _, dup := sb.ctx.Global.Classes[def.Name]; dup {
		sb.ctx.Errors.Errorf(def.Pos(), "class '%s' redefined", def.Name)
		return
	}

	cls := scope.NewClassScope(sb.ctx.Global, def.Name, def)
	cls.Params = def.Params
	sb.ctx.Global.AddClass(cls)

	for _, v := range def.Vars {
		if _, dup := cls.LookupVar(v.Name); dup {
			sb.ctx.Errors.Errorf(v.Pos(), "instance variable '%s' redefined in class %s", v.Name, def.Name)
			continue
		}
		var t types.Type
		if v.Type != nil {
			t = sb.ctx.resolveType(v.Type, cls)
		} else {
			t = types.NewTemplate(v.ID(), v.Name)
		}
		sym := scope.NewVariableSymbol(v.Name, t, v)
		sym.Public = v.Visibility == ast.VisibilityPublic
		cls.DefineVar(sym)
	}

	if len(def.Constructors()) == 0 {
		synth := &ast.FunctionDefinition{
			StmtMeta:      ast.StmtMeta{Meta: ast.NewMeta(def.Pos())},
			Name:          "new",
			IsMethod:      true,
			IsConstructor: true,
			Body:          &ast.BlockStatement{StmtMeta: ast.StmtMeta{Meta: ast.NewMeta(def.Pos())}},
		}
		def.Methods = append(def.Methods, synth)
	}
}

// buildClassBody declares every member function of an already-declared
// class, separated from declareClass so a method's parameter types can
// reference sibling classes regardless of declaration order.
func (sb *ScopeBuilder) buildClassBody(def *ast.ClassDefinition) {
	cls := sb.ctx.Global.Classes[def.Name]
	if cls == nil {
		return // declareClass already reported the duplicate
	}
	for _, m := range def.Methods {
		sb.declareFunction(m, cls)
	}
	for _, m := range def.Methods {
		sb.buildFunctionBody(m)
	}
}

// declareFunction creates a Function scope as a child of owner (spec
// §4.1 "creates a Function scope as a child of its enclosing scope"),
// records parameters (a synthesized `self` first for methods), and
// rejects a duplicate signature (spec §4.1 "Duplication rules").
func (sb *ScopeBuilder) declareFunction(def *ast.FunctionDefinition, owner scope.Scope) *scope.FunctionScope {
	fn := scope.NewFunctionScope(owner, def.Name, def)
	fn.IsMethod = def.IsMethod
	fn.IsConstructor = def.IsConstructor
	fn.IsLambda = def.IsLambda

	if def.IsMethod {
		if cls, ok := owner.(*scope.ClassScope); ok {
			selfType := &types.Class{Name: cls.Name, Scope: cls}
			fn.Params = append(fn.Params, scope.NewVariableSymbol("self", selfType, def))
		}
	}
	for _, p := range def.Params {
		var t types.Type
		if p.Type != nil {
			t = sb.ctx.resolveType(p.Type, owner)
		} else {
			t = types.NewTemplate(p.ID(), p.Name)
		}
		fn.Params = append(fn.Params, scope.NewVariableSymbol(p.Name, t, p))
	}
	if def.ReturnType != nil {
		fn.ReturnType = sb.ctx.resolveType(def.ReturnType, owner)
	}

	var binding *scope.FunctionBinding
	switch o := owner.(type) {
	case *scope.ClassScope:
		binding = o.Methods[def.Name]
		if !def.IsLambda && sb.hasDuplicate(binding, fn) {
			sb.ctx.Errors.Errorf(def.Pos(), "function '%s' redefined with the same parameter types", def.Name)
			return fn
		}
		o.AddMethod(fn)
	case *scope.GlobalScope:
		binding = o.Functions[def.Name]
		if !def.IsLambda && sb.hasDuplicate(binding, fn) {
			sb.ctx.Errors.Errorf(def.Pos(), "function '%s' redefined with the same parameter types", def.Name)
			return fn
		}
		o.AddFunction(fn)
	}

	return fn
}

// hasDuplicate implements spec §4.1's duplication rule: same name
// (already guaranteed by the caller looking up by name) and
// element-wise-equal parameter types, where a Template position on both
// sides is a wildcard match.
func (sb *ScopeBuilder) hasDuplicate(binding *scope.FunctionBinding, candidate *scope.FunctionScope) bool {
	if binding == nil {
		return false
	}
	for _, existing := range binding.Overloads {
		if sameSignature(existing.ParamTypes(), candidate.ParamTypes()) {
			return true
		}
	}
	return false
}

func sameSignature(a, b []types.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] == nil || b[i] == nil {
			continue
		}
		if a[i].IsTemplate() && b[i].IsTemplate() {
			continue // wildcard, both sides unresolved
		}
		if !a[i].Equals(b[i]) {
			return false
		}
	}
	return true
}

// buildFunctionBody creates the Local scopes for def's body. Bodies are
// walked for scope/variable shape only; SemanticAnalyzer does the actual
// type-carrying walk afterward (spec §4.1 is pure forward declaration).
func (sb *ScopeBuilder) buildFunctionBody(def *ast.FunctionDefinition) {
	owner := sb.lookupFunctionScope(def)
	if owner == nil || def.Body == nil {
		return
	}
	if def.IsLambda {
		sb.ctx.queueLambda(owner)
	}
	sb.buildBlock(def.Body, owner.Body, owner)
}

// lookupFunctionScope finds the FunctionScope declareFunction created for
// def, by walking every binding reachable from Global. Kept simple (a
// linear scan) since this only runs once per declaration, not per call.
func (sb *ScopeBuilder) lookupFunctionScope(def *ast.FunctionDefinition) *scope.FunctionScope {
	for _, b := range sb.ctx.Global.Functions {
		for _, fn := range b.Overloads {
			if fn.Def == def {
				return fn
			}
		}
	}
	for _, cls := range sb.ctx.Global.Classes {
		for _, b := range cls.Methods {
			for _, fn := range b.Overloads {
				if fn.Def == def {
					return fn
				}
			}
		}
	}
	return nil
}

// buildBlock creates a Local scope per nested block (spec §3 "Local"),
// additionally opening a fresh Local for `let` bindings and `for`
// iterators (spec §4.1 "For let and for: creates a Local scope holding
// the bindings/iterators").
func (sb *ScopeBuilder) buildBlock(block *ast.BlockStatement, parent *scope.LocalScope, fn *scope.FunctionScope) {
	for _, stmt := range block.Statements {
		sb.buildStatement(stmt, parent, fn)
	}
}

func (sb *ScopeBuilder) buildStatement(stmt ast.Statement, local *scope.LocalScope, fn *scope.FunctionScope) {
	switch s := stmt.(type) {
	case *ast.DoStatement:
		child := scope.NewLocalScope(local)
		local.AddChild(child)
		sb.buildBlock(s.Body, child, fn)
	case *ast.IfStatement:
		sb.buildBranch(s.Then, local, fn)
		sb.buildElse(s.Else, local, fn)
	case *ast.UnlessStatement:
		sb.buildBranch(s.Then, local, fn)
		sb.buildElse(s.Else, local, fn)
	case *ast.WhileStatement:
		sb.buildBranch(s.Body, local, fn)
	case *ast.CaseStatement:
		for _, clause := range s.Clauses {
			sb.buildBranch(clause.Body, local, fn)
		}
		if s.Else != nil {
			sb.buildBranch(s.Else, local, fn)
		}
	case *ast.SwitchStatement:
		for _, clause := range s.Clauses {
			sb.buildBranch(clause.Body, local, fn)
		}
		if s.Else != nil {
			sb.buildBranch(s.Else, local, fn)
		}
	case *ast.ForStatement:
		child := scope.NewLocalScope(local)
		local.AddChild(child)
		for _, name := range s.Vars {
			_ = child.Define(scope.NewVariableSymbol(name, types.NewTemplate(s.ID(), name), s))
		}
		sb.buildBlock(s.Body, child, fn)
	case *ast.LetStatement:
		child := scope.NewLocalScope(local)
		local.AddChild(child)
		for _, tgt := range s.Targets {
			sb.defineTarget(tgt, child, fn)
		}
		sb.buildStatement(s.Body, child, fn)
	case *ast.InitializeStatement:
		for _, tgt := range s.Targets {
			sb.defineTarget(tgt, local, fn)
		}
	}
}

// buildBranch wraps a *BlockStatement into its own Local scope.
func (sb *ScopeBuilder) buildBranch(block *ast.BlockStatement, parent *scope.LocalScope, fn *scope.FunctionScope) {
	if block == nil {
		return
	}
	child := scope.NewLocalScope(parent)
	parent.AddChild(child)
	sb.buildBlock(block, child, fn)
}

func (sb *ScopeBuilder) buildElse(stmt ast.Statement, parent *scope.LocalScope, fn *scope.FunctionScope) {
	if stmt == nil {
		return
	}
	if block, ok := stmt.(*ast.BlockStatement); ok {
		sb.buildBranch(block, parent, fn)
		return
	}
	sb.buildStatement(stmt, parent, fn)
}

func (sb *ScopeBuilder) defineTarget(tgt *ast.VarTarget, local *scope.LocalScope, fn *scope.FunctionScope) {
	var t types.Type
	if tgt.Type != nil {
		t = sb.ctx.resolveType(tgt.Type, local)
	} else {
		t = types.NewTemplate(tgt.ID(), tgt.Name)
	}
	sym := scope.NewVariableSymbol(tgt.Name, t, tgt)
	if err := local.Define(sym); err != nil {
		sb.ctx.Errors.Errorf(tgt.Pos(), "%s", err.Error())
	}
}
