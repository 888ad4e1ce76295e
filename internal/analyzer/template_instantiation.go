package analyzer

import (
	"github.com/rhysd/dachs/internal/ast"
	"github.com/rhysd/dachs/internal/diagnostics"
	"github.com/rhysd/dachs/internal/scope"
	"github.com/rhysd/dachs/internal/token"
	"github.com/rhysd/dachs/internal/types"
)

// instantiateFunction implements spec §4.3.5 "Functions": dedup by
// argument-type tuple, else deep-copy the definition, run ScopeBuilder on
// the copy under the same enclosing scope, substitute each Template
// parameter with its matching argument type, and analyze the body.
func (a *SemanticAnalyzer) instantiateFunction(tmpl *scope.FunctionScope, args []types.Type) *scope.FunctionScope {
	if found := tmpl.FindInstantiation(args); found != nil {
		return found
	}

	def := copyFunctionDefinition(tmpl.Def)
	owner := tmpl.Parent()
	inst := a.builder.declareFunction(def, owner)
	inst.IsBuiltin = tmpl.IsBuiltin

	bindings := map[types.Type]types.Type{}
	for i, p := range inst.Params {
		if i < len(args) && p.Type != nil && p.Type.IsTemplate() {
			bindings[p.Type] = args[i]
			p.Type = args[i]
		}
	}
	if tmpl.ReturnType != nil {
		inst.ReturnType = types.Substitute(tmpl.ReturnType, bindings)
	}

	tmpl.Instantiated = append(tmpl.Instantiated, inst)
	if tmpl.IsLambda {
		a.ctx.Global.LiftLambda(tmpl.Name, inst)
	}

	a.builder.buildFunctionBody(def)
	a.AnalyzeFunctionBody(inst)
	return inst
}

// instantiateClass implements spec §4.3.5 "Classes": same pattern, keyed
// on the tuple of instance-variable type substitutions, triggered from
// object construction (spec §4.3.6) or a type node naming a template
// class with explicit arguments.
func (a *SemanticAnalyzer) instantiateClass(tmpl *scope.ClassScope, args []types.Type) *scope.ClassScope {
	if found := tmpl.FindInstantiation(args); found != nil {
		return found
	}

	def := copyClassDefinition(tmpl.Def)
	inst := scope.NewClassScope(tmpl.Parent(), tmpl.Name, def)
	inst.Params = tmpl.Params
	inst.TypeArgs = args

	bindings := map[types.Type]types.Type{}
	for i, v := range tmpl.Vars {
		t := v.Type
		if t != nil && t.IsTemplate() && i < len(args) {
			bindings[t] = args[i]
			t = args[i]
		} else if t != nil {
			t = types.Substitute(t, bindings)
		}
		sym := scope.NewVariableSymbol(v.Name, t, v.Decl)
		sym.Public = v.Public
		inst.DefineVar(sym)
	}

	a.ctx.Global.Classes[uniqueInstantiationKey(tmpl, inst)] = inst
	tmpl.Instantiated = append(tmpl.Instantiated, inst)

	for _, m := range def.Methods {
		a.builder.declareFunction(m, inst)
	}
	for _, m := range def.Methods {
		a.builder.buildFunctionBody(m)
	}

	return inst
}

// uniqueInstantiationKey gives each class instantiation a Global.Classes
// entry distinct from the template and from sibling instantiations,
// without colliding with the template's own bare name.
func uniqueInstantiationKey(tmpl *scope.ClassScope, inst *scope.ClassScope) string {
	key := inst.Name
	for range tmpl.Instantiated {
		key += "#"
	}
	return key + "#"
}

// copyFunctionDefinition deep-copies def with a fresh node id and cleared
// slots, per spec §9 "Deep AST copy for instantiation".
func copyFunctionDefinition(def *ast.FunctionDefinition) *ast.FunctionDefinition {
	if def == nil {
		diagnostics.Internal("instantiating a function with no definition")
	}
	cp := *def
	cp.Meta = ast.NewMeta(def.Pos())
	cp.Params = make([]*ast.Parameter, len(def.Params))
	for i, p := range def.Params {
		pc := *p
		pc.Meta = ast.NewMeta(p.Pos())
		cp.Params[i] = &pc
	}
	cp.Body = copyBlock(def.Body)
	return &cp
}

func copyClassDefinition(def *ast.ClassDefinition) *ast.ClassDefinition {
	if def == nil {
		diagnostics.Internal("instantiating a class with no definition")
	}
	cp := *def
	cp.Meta = ast.NewMeta(def.Pos())
	cp.Vars = make([]*ast.InstanceVarDecl, len(def.Vars))
	for i, v := range def.Vars {
		vc := *v
		vc.Meta = ast.NewMeta(v.Pos())
		cp.Vars[i] = &vc
	}
	cp.Methods = make([]*ast.FunctionDefinition, len(def.Methods))
	for i, m := range def.Methods {
		cp.Methods[i] = copyFunctionDefinition(m)
	}
	return &cp
}

// copyBlock deep-copies a statement tree, assigning every node a fresh id
// and clearing type/symbol/callee slots (spec §9 "Deep AST copy for
// instantiation: a pure structural copy that assigns fresh ids and clears
// all type/symbol/callee slots"), so an instantiation's body is
// independent of its template's and safe to analyze on its own.
func copyBlock(b *ast.BlockStatement) *ast.BlockStatement {
	if b == nil {
		return nil
	}
	cp := &ast.BlockStatement{StmtMeta: ast.StmtMeta{Meta: ast.NewMeta(b.Pos())}}
	cp.Statements = make([]ast.Statement, len(b.Statements))
	for i, s := range b.Statements {
		cp.Statements[i] = copyStatement(s)
	}
	return cp
}

func copyStatement(s ast.Statement) ast.Statement {
	if s == nil {
		return nil
	}
	switch n := s.(type) {
	case *ast.BlockStatement:
		return copyBlock(n)
	case *ast.ExpressionStatement:
		return &ast.ExpressionStatement{StmtMeta: freshStmt(n.Pos()), Expr: copyExpr(n.Expr)}
	case *ast.InitializeStatement:
		return &ast.InitializeStatement{StmtMeta: freshStmt(n.Pos()), Targets: copyTargets(n.Targets), Values: copyExprs(n.Values)}
	case *ast.AssignmentStatement:
		return &ast.AssignmentStatement{StmtMeta: freshStmt(n.Pos()), Lhs: copyExprs(n.Lhs), Rhs: copyExprs(n.Rhs)}
	case *ast.ReturnStatement:
		return &ast.ReturnStatement{StmtMeta: freshStmt(n.Pos()), Values: copyExprs(n.Values)}
	case *ast.PostfixIfStatement:
		return &ast.PostfixIfStatement{StmtMeta: freshStmt(n.Pos()), Inner: copyStatement(n.Inner), Condition: copyExpr(n.Condition)}
	case *ast.LetStatement:
		return &ast.LetStatement{StmtMeta: freshStmt(n.Pos()), Targets: copyTargets(n.Targets), Values: copyExprs(n.Values), Body: copyStatement(n.Body)}
	case *ast.DoStatement:
		return &ast.DoStatement{StmtMeta: freshStmt(n.Pos()), Body: copyBlock(n.Body)}
	case *ast.IfStatement:
		return &ast.IfStatement{StmtMeta: freshStmt(n.Pos()), Condition: copyExpr(n.Condition), Then: copyBlock(n.Then), Else: copyStatement(n.Else)}
	case *ast.UnlessStatement:
		return &ast.UnlessStatement{StmtMeta: freshStmt(n.Pos()), Condition: copyExpr(n.Condition), Then: copyBlock(n.Then), Else: copyStatement(n.Else)}
	case *ast.WhileStatement:
		return &ast.WhileStatement{StmtMeta: freshStmt(n.Pos()), Condition: copyExpr(n.Condition), Body: copyBlock(n.Body)}
	case *ast.CaseStatement:
		clauses := make([]*ast.CaseClause, len(n.Clauses))
		for i, c := range n.Clauses {
			clauses[i] = &ast.CaseClause{Meta: ast.NewMeta(c.Pos()), Guards: copyExprs(c.Guards), Body: copyBlock(c.Body)}
		}
		return &ast.CaseStatement{StmtMeta: freshStmt(n.Pos()), Clauses: clauses, Else: copyBlock(n.Else)}
	case *ast.SwitchStatement:
		clauses := make([]*ast.SwitchClause, len(n.Clauses))
		for i, c := range n.Clauses {
			clauses[i] = &ast.SwitchClause{Meta: ast.NewMeta(c.Pos()), Values: copyExprs(c.Values), Body: copyBlock(c.Body)}
		}
		return &ast.SwitchStatement{StmtMeta: freshStmt(n.Pos()), Scrutinee: copyExpr(n.Scrutinee), Clauses: clauses, Else: copyBlock(n.Else)}
	case *ast.ForStatement:
		vars := make([]string, len(n.Vars))
		copy(vars, n.Vars)
		return &ast.ForStatement{StmtMeta: freshStmt(n.Pos()), Vars: vars, Range: copyExpr(n.Range), Body: copyBlock(n.Body)}
	default:
		diagnostics.Internal("copyStatement: unhandled statement kind %T", s)
		return nil
	}
}

func freshStmt(pos token.Position) ast.StmtMeta {
	return ast.StmtMeta{Meta: ast.NewMeta(pos)}
}

func copyTargets(ts []*ast.VarTarget) []*ast.VarTarget {
	out := make([]*ast.VarTarget, len(ts))
	for i, t := range ts {
		out[i] = &ast.VarTarget{Meta: ast.NewMeta(t.Pos()), Name: t.Name, Type: t.Type, InstanceVarInit: t.InstanceVarInit}
	}
	return out
}

func copyExprs(es []ast.Expression) []ast.Expression {
	if es == nil {
		return nil
	}
	out := make([]ast.Expression, len(es))
	for i, e := range es {
		out[i] = copyExpr(e)
	}
	return out
}

func copyExpr(e ast.Expression) ast.Expression {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *ast.IntLiteral:
		return &ast.IntLiteral{ExprMeta: freshExpr(n.Pos()), Value: n.Value}
	case *ast.UIntLiteral:
		return &ast.UIntLiteral{ExprMeta: freshExpr(n.Pos()), Value: n.Value}
	case *ast.FloatLiteral:
		return &ast.FloatLiteral{ExprMeta: freshExpr(n.Pos()), Value: n.Value}
	case *ast.CharLiteral:
		return &ast.CharLiteral{ExprMeta: freshExpr(n.Pos()), Value: n.Value}
	case *ast.BoolLiteral:
		return &ast.BoolLiteral{ExprMeta: freshExpr(n.Pos()), Value: n.Value}
	case *ast.StringLiteral:
		return &ast.StringLiteral{ExprMeta: freshExpr(n.Pos()), Value: n.Value}
	case *ast.SymbolLiteral:
		return &ast.SymbolLiteral{ExprMeta: freshExpr(n.Pos()), Name: n.Name}
	case *ast.ArrayLiteral:
		return &ast.ArrayLiteral{ExprMeta: freshExpr(n.Pos()), Elems: copyExprs(n.Elems), ElemTypeHint: n.ElemTypeHint}
	case *ast.TupleLiteral:
		return &ast.TupleLiteral{ExprMeta: freshExpr(n.Pos()), Elems: copyExprs(n.Elems)}
	case *ast.DictLiteral:
		return &ast.DictLiteral{ExprMeta: freshExpr(n.Pos()), Keys: copyExprs(n.Keys), Values: copyExprs(n.Values)}
	case *ast.VarRef:
		return &ast.VarRef{ExprMeta: freshExpr(n.Pos()), Name: n.Name}
	case *ast.UnaryExpression:
		return &ast.UnaryExpression{ExprMeta: freshExpr(n.Pos()), Operator: n.Operator, Operand: copyExpr(n.Operand)}
	case *ast.BinaryExpression:
		return &ast.BinaryExpression{ExprMeta: freshExpr(n.Pos()), Operator: n.Operator, Left: copyExpr(n.Left), Right: copyExpr(n.Right)}
	case *ast.CastExpression:
		return &ast.CastExpression{ExprMeta: freshExpr(n.Pos()), Operand: copyExpr(n.Operand), TargetType: n.TargetType}
	case *ast.TypedExpression:
		return &ast.TypedExpression{ExprMeta: freshExpr(n.Pos()), Operand: copyExpr(n.Operand), Annotation: n.Annotation}
	case *ast.IfExpression:
		return &ast.IfExpression{ExprMeta: freshExpr(n.Pos()), Condition: copyExpr(n.Condition), Then: copyExpr(n.Then), Else: copyExpr(n.Else)}
	case *ast.IndexAccess:
		return &ast.IndexAccess{ExprMeta: freshExpr(n.Pos()), Receiver: copyExpr(n.Receiver), Index: copyExpr(n.Index), IsLHS: n.IsLHS}
	case *ast.FuncInvocation:
		return &ast.FuncInvocation{ExprMeta: freshExpr(n.Pos()), Callee: copyExpr(n.Callee), Args: copyExprs(n.Args)}
	case *ast.UFCSInvocation:
		return &ast.UFCSInvocation{ExprMeta: freshExpr(n.Pos()), Receiver: copyExpr(n.Receiver), Name: n.Name, Args: copyExprs(n.Args)}
	case *ast.ObjectConstruct:
		return &ast.ObjectConstruct{ExprMeta: freshExpr(n.Pos()), TargetType: n.TargetType, Args: copyExprs(n.Args)}
	case *ast.LambdaExpression:
		return &ast.LambdaExpression{ExprMeta: freshExpr(n.Pos()), Def: copyFunctionDefinition(n.Def)}
	default:
		diagnostics.Internal("copyExpr: unhandled expression kind %T", e)
		return nil
	}
}

func freshExpr(pos token.Position) ast.ExprMeta { return ast.ExprMeta{Meta: ast.NewMeta(pos)} }
