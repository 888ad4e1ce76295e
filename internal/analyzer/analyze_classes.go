package analyzer

import (
	"github.com/rhysd/dachs/internal/ast"
	"github.com/rhysd/dachs/internal/diagnostics"
	"github.com/rhysd/dachs/internal/scope"
	"github.com/rhysd/dachs/internal/types"
)

// analyzeObjectConstruct implements `new T{args...}` (spec §4.3.6): array
// and pointer targets take a small ad-hoc construction check; a class
// target resolves constructor candidates through the standard
// overload-resolution pipeline, instantiating the class first when it is
// a template.
func (a *SemanticAnalyzer) analyzeObjectConstruct(n *ast.ObjectConstruct, s scope.Scope) types.Type {
	switch tn := n.TargetType.(type) {
	case *ast.ArrayTypeNode:
		return a.analyzeArrayConstruct(n, tn, s)
	case *ast.PointerTypeNode:
		return a.analyzePointerConstruct(n, tn, s)
	}

	t := a.ctx.resolveType(n.TargetType, s)
	cls, ok := t.(*types.Class)
	if !ok {
		a.analyzeExprList(n.Args, s)
		if t != nil {
			a.errorf(n, "cannot construct non-class type %s", t.String())
		}
		return t
	}
	cs := classScopeOf(cls)
	if cs == nil {
		diagnostics.Internal("class %q resolved to a type with no backing scope", cls.Name)
		return nil
	}

	args := a.analyzeExprList(n.Args, s)

	if !cs.IsTemplate() {
		ctor, err := a.resolveConstructor(cs, cls, args)
		if err != nil {
			a.errorf(n, "%s", err.Error())
			return t
		}
		a.ensureAnalyzed(ctor)
		n.ConstructedClassScope = cs
		n.CalleeCtorScope = ctor
		return t
	}

	return a.analyzeTemplateClassConstruct(n, cs, cls, args)
}

// resolveConstructor picks the overload of cs's "new" method matching
// selfCls + args (spec §4.3.4, applied to constructors per §4.3.6 step 2).
func (a *SemanticAnalyzer) resolveConstructor(cs *scope.ClassScope, selfCls *types.Class, args []types.Type) (*scope.FunctionScope, error) {
	binding, _ := scope.ResolveMethod(cs, "new")
	full := append([]types.Type{selfCls}, args...)
	return a.resolveOverload("new", binding, full, a.ctx.CurrentClass)
}

// analyzeTemplateClassConstruct implements spec §4.3.6 step 6: analyze the
// (still-template) constructor body first to learn each field's concrete
// type from its `@field := expr` initializers, instantiate the class from
// that map, then re-resolve and instantiate the constructor again on the
// instantiated class.
func (a *SemanticAnalyzer) analyzeTemplateClassConstruct(n *ast.ObjectConstruct, tmplCS *scope.ClassScope, tmplCls *types.Class, args []types.Type) types.Type {
	tmplCtor, err := a.resolveConstructor(tmplCS, tmplCls, args)
	if err != nil {
		a.errorf(n, "%s", err.Error())
		return nil
	}
	fullArgs := append([]types.Type{types.Type(tmplCls)}, args...)
	probe := tmplCtor
	if probe.IsTemplate() {
		probe = a.instantiateFunction(probe, fullArgs)
	} else {
		a.ensureAnalyzed(probe)
	}

	fieldTypes := map[string]types.Type{}
	collectFieldInitTypes(probe.Def.Body, fieldTypes)

	argsForVars := make([]types.Type, len(tmplCS.Vars))
	for i, v := range tmplCS.Vars {
		if t, ok := fieldTypes[v.Name]; ok && t != nil {
			argsForVars[i] = t
		} else {
			argsForVars[i] = v.Type
		}
	}

	instCS := a.instantiateClass(tmplCS, argsForVars)
	instSelf := &types.Class{Name: tmplCls.Name, Scope: instCS, Args: argsForVars}

	finalCtor, err := a.resolveConstructor(instCS, instSelf, args)
	if err != nil {
		a.errorf(n, "%s", err.Error())
		return instSelf
	}
	if finalCtor.IsTemplate() {
		finalCtor = a.instantiateFunction(finalCtor, append([]types.Type{types.Type(instSelf)}, args...))
	} else {
		a.ensureAnalyzed(finalCtor)
	}

	n.ConstructedClassScope = instCS
	n.CalleeCtorScope = finalCtor
	return instSelf
}

// collectFieldInitTypes walks body gathering, for every `@field := expr`
// target, the already-inferred type of its rhs expression (spec §4.3.6
// step 4 "class-instantiation map").
func collectFieldInitTypes(body *ast.BlockStatement, out map[string]types.Type) {
	if body == nil {
		return
	}
	for _, stmt := range body.Statements {
		walkFieldInitTypes(stmt, out)
	}
}

func walkFieldInitTypes(stmt ast.Statement, out map[string]types.Type) {
	switch n := stmt.(type) {
	case *ast.InitializeStatement:
		for i, tgt := range n.Targets {
			if tgt.InstanceVarInit && i < len(n.Values) && n.Values[i] != nil {
				out[tgt.Name] = n.Values[i].Type()
			}
		}
	case *ast.BlockStatement:
		for _, s := range n.Statements {
			walkFieldInitTypes(s, out)
		}
	case *ast.DoStatement:
		collectFieldInitTypes(n.Body, out)
	case *ast.IfStatement:
		collectFieldInitTypes(n.Then, out)
		walkFieldInitTypes(n.Else, out)
	case *ast.UnlessStatement:
		collectFieldInitTypes(n.Then, out)
		walkFieldInitTypes(n.Else, out)
	case *ast.WhileStatement:
		collectFieldInitTypes(n.Body, out)
	case *ast.LetStatement:
		walkFieldInitTypes(n.Body, out)
	case *ast.PostfixIfStatement:
		walkFieldInitTypes(n.Inner, out)
	}
}

// analyzeArrayConstruct implements the array half of spec §4.3.6 step 1's
// ad-hoc checker: 0..2 args, a constant uint size and an optional init
// value.
func (a *SemanticAnalyzer) analyzeArrayConstruct(n *ast.ObjectConstruct, tn *ast.ArrayTypeNode, s scope.Scope) types.Type {
	if len(n.Args) > 2 {
		a.errorf(n, "array construction takes at most 2 arguments (size, init value), got %d", len(n.Args))
	}
	var elemType types.Type
	if tn.Elem != nil {
		elemType = a.ctx.resolveType(tn.Elem, s)
	}
	if len(n.Args) > 0 {
		if _, ok := constIndexLiteral(n.Args[0]); !ok {
			a.errorf(n.Args[0], "array size must be a constant uint literal")
		} else {
			a.analyzeExpr(n.Args[0], s)
		}
	}
	if len(n.Args) > 1 {
		initType := a.analyzeExpr(n.Args[1], s)
		if elemType == nil {
			elemType = initType
		} else if initType != nil && !elemType.Equals(initType) {
			a.errorf(n.Args[1], "array init value type %s does not match element type %s", initType.String(), elemType.String())
		}
	}
	if elemType == nil {
		a.errorf(n, "cannot infer array element type; annotate with array(T)")
		return nil
	}
	tmpl := a.ctx.Global.Classes["array"]
	if tmpl == nil {
		diagnostics.Internal("builtin class %q was never registered", "array")
		return nil
	}
	instCS := a.instantiateClass(tmpl, []types.Type{elemType})
	return &types.Class{Name: "array", Scope: instCS, Args: []types.Type{elemType}}
}

// analyzePointerConstruct implements the pointer half: one uint count.
func (a *SemanticAnalyzer) analyzePointerConstruct(n *ast.ObjectConstruct, tn *ast.PointerTypeNode, s scope.Scope) types.Type {
	if len(n.Args) > 1 {
		a.errorf(n, "pointer construction takes at most 1 argument (count), got %d", len(n.Args))
	}
	if len(n.Args) == 1 {
		a.analyzeExpr(n.Args[0], s)
	}
	pointee := a.ctx.resolveType(tn.Pointee, s)
	if pointee == nil {
		return nil
	}
	return &types.Pointer{Pointee: pointee}
}

// validateConstructor implements spec §4.3.6 steps 3-5, called from
// AnalyzeFunctionBody once a constructor's body has been walked: every
// instance variable must be initialized exactly once or be
// default-constructible, and self-access before the last initializer is
// restricted to already-initialized fields.
func (a *SemanticAnalyzer) validateConstructor(fn *scope.FunctionScope) {
	cls, ok := fn.Parent().(*scope.ClassScope)
	if !ok || fn.Def == nil || fn.Def.Body == nil {
		return
	}

	seen := map[string]ast.Node{}
	a.checkDuplicateFieldInits(fn.Def.Body, cls, seen)

	for _, v := range cls.Vars {
		if _, ok := seen[v.Name]; ok {
			continue
		}
		a.requireDefaultConstructible(v.Type, fn.Def, v.Name)
	}

	a.checkSelfAccessDiscipline(fn.Def.Body, seen)
}

func (a *SemanticAnalyzer) checkDuplicateFieldInits(body *ast.BlockStatement, cls *scope.ClassScope, seen map[string]ast.Node) {
	if body == nil {
		return
	}
	for _, stmt := range body.Statements {
		a.checkDuplicateFieldInitsStmt(stmt, cls, seen)
	}
}

func (a *SemanticAnalyzer) checkDuplicateFieldInitsStmt(stmt ast.Statement, cls *scope.ClassScope, seen map[string]ast.Node) {
	switch n := stmt.(type) {
	case *ast.InitializeStatement:
		for _, tgt := range n.Targets {
			if !tgt.InstanceVarInit {
				continue
			}
			if first, dup := seen[tgt.Name]; dup {
				a.errorf(tgt, "instance variable '%s' initialized twice (first at %s)", tgt.Name, first.Pos().String())
				continue
			}
			seen[tgt.Name] = tgt
		}
	case *ast.BlockStatement:
		for _, s := range n.Statements {
			a.checkDuplicateFieldInitsStmt(s, cls, seen)
		}
	case *ast.DoStatement:
		a.checkDuplicateFieldInits(n.Body, cls, seen)
	case *ast.IfStatement:
		a.checkDuplicateFieldInits(n.Then, cls, seen)
		a.checkDuplicateFieldInitsStmt(n.Else, cls, seen)
	case *ast.UnlessStatement:
		a.checkDuplicateFieldInits(n.Then, cls, seen)
		a.checkDuplicateFieldInitsStmt(n.Else, cls, seen)
	case *ast.WhileStatement:
		a.checkDuplicateFieldInits(n.Body, cls, seen)
	case *ast.LetStatement:
		a.checkDuplicateFieldInitsStmt(n.Body, cls, seen)
	case *ast.PostfixIfStatement:
		a.checkDuplicateFieldInitsStmt(n.Inner, cls, seen)
	}
}

// requireDefaultConstructible implements spec §4.3.6 step 4's "fields not
// initialized in the body must be default-constructible".
func (a *SemanticAnalyzer) requireDefaultConstructible(t types.Type, at ast.Node, name string) {
	if t == nil || t.IsTemplate() {
		return
	}
	switch tt := t.(type) {
	case *types.Builtin:
		return
	case *types.Class:
		a.ensureDefaultConstructible(tt, at)
	default:
		a.errorf(at, "instance variable '%s' of type %s has no default value and must be initialized", name, t.String())
	}
}

// checkSelfAccessDiscipline implements spec §4.3.6 step 5: up to the last
// `@field := expr` statement, no expression may read self as a whole
// value or call a not-yet-initialized field's accessor/method on self.
// A field counts as initialized from the top-level `@field := expr`
// statement that initializes it onward; initializers nested inside
// control flow never mark a field as initialized. initializedAtEnd only
// gates the check: nothing is checked when it is empty.
func (a *SemanticAnalyzer) checkSelfAccessDiscipline(body *ast.BlockStatement, initializedAtEnd map[string]ast.Node) {
	if body == nil || len(initializedAtEnd) == 0 {
		return
	}
	lastInit := -1
	for i, stmt := range body.Statements {
		if isFieldInitStatement(stmt) {
			lastInit = i
		}
	}
	if lastInit < 0 {
		return
	}

	initialized := map[string]bool{}
	for i := 0; i <= lastInit; i++ {
		stmt := body.Statements[i]
		a.checkSelfAccessStmt(stmt, initialized)
		if n, ok := stmt.(*ast.InitializeStatement); ok {
			for _, tgt := range n.Targets {
				if tgt.InstanceVarInit {
					initialized[tgt.Name] = true
				}
			}
		}
	}
}

func isFieldInitStatement(stmt ast.Statement) bool {
	n, ok := stmt.(*ast.InitializeStatement)
	if !ok {
		return false
	}
	for _, tgt := range n.Targets {
		if tgt.InstanceVarInit {
			return true
		}
	}
	return false
}

func (a *SemanticAnalyzer) checkSelfAccessStmt(stmt ast.Statement, initialized map[string]bool) {
	switch n := stmt.(type) {
	case *ast.InitializeStatement:
		for _, v := range n.Values {
			a.checkSelfAccessExpr(v, initialized)
		}
	case *ast.ExpressionStatement:
		a.checkSelfAccessExpr(n.Expr, initialized)
	case *ast.AssignmentStatement:
		for _, v := range n.Rhs {
			a.checkSelfAccessExpr(v, initialized)
		}
	case *ast.ReturnStatement:
		for _, v := range n.Values {
			a.checkSelfAccessExpr(v, initialized)
		}
	case *ast.PostfixIfStatement:
		a.checkSelfAccessExpr(n.Condition, initialized)
		a.checkSelfAccessStmt(n.Inner, initialized)
	}
}

// checkSelfAccessExpr recurses through the common expression shapes a
// constructor's leading statements can contain, flagging any read of self
// as a whole value and any field access/call on self for a field not yet
// in initialized.
func (a *SemanticAnalyzer) checkSelfAccessExpr(e ast.Expression, initialized map[string]bool) {
	switch n := e.(type) {
	case nil:
		return
	case *ast.VarRef:
		if n.Name == "self" {
			a.errorf(n, "cannot read 'self' before all instance variables are initialized")
		}
	case *ast.UFCSInvocation:
		if isSelfReceiver(n.Receiver) {
			if !initialized[n.Name] {
				a.errorf(n, "cannot access '%s' on 'self' before it is initialized", n.Name)
			}
		} else {
			a.checkSelfAccessExpr(n.Receiver, initialized)
		}
		for _, arg := range n.Args {
			a.checkSelfAccessExpr(arg, initialized)
		}
	case *ast.BinaryExpression:
		a.checkSelfAccessExpr(n.Left, initialized)
		a.checkSelfAccessExpr(n.Right, initialized)
	case *ast.UnaryExpression:
		a.checkSelfAccessExpr(n.Operand, initialized)
	case *ast.FuncInvocation:
		a.checkSelfAccessExpr(n.Callee, initialized)
		for _, arg := range n.Args {
			a.checkSelfAccessExpr(arg, initialized)
		}
	case *ast.IndexAccess:
		a.checkSelfAccessExpr(n.Receiver, initialized)
		a.checkSelfAccessExpr(n.Index, initialized)
	case *ast.IfExpression:
		a.checkSelfAccessExpr(n.Condition, initialized)
		a.checkSelfAccessExpr(n.Then, initialized)
		a.checkSelfAccessExpr(n.Else, initialized)
	case *ast.TypedExpression:
		a.checkSelfAccessExpr(n.Operand, initialized)
	case *ast.CastExpression:
		a.checkSelfAccessExpr(n.Operand, initialized)
	case *ast.ArrayLiteral:
		for _, el := range n.Elems {
			a.checkSelfAccessExpr(el, initialized)
		}
	case *ast.TupleLiteral:
		for _, el := range n.Elems {
			a.checkSelfAccessExpr(el, initialized)
		}
	case *ast.ObjectConstruct:
		for _, arg := range n.Args {
			a.checkSelfAccessExpr(arg, initialized)
		}
	}
}
