package analyzer

import (
	"github.com/rhysd/dachs/internal/ast"
	"github.com/rhysd/dachs/internal/scope"
	"github.com/rhysd/dachs/internal/types"
)

// comparisonOperators always yield bool on the builtin path regardless of
// the operand type, as long as both operands agree (spec §4.3.3).
var comparisonOperators = map[string]bool{
	"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
}

var logicalOperators = map[string]bool{"&&": true, "||": true}

// analyzeExpr is the core dispatcher every other analyzer file calls to
// type a subexpression (spec §4.3.3). It also backs the
// resolver.ExprAnalyzer re-entry point, analyzer.go's AnalyzeExpr.
func (a *SemanticAnalyzer) analyzeExpr(expr ast.Expression, s scope.Scope) types.Type {
	t := a.typeOfExpr(expr, s)
	expr.SetType(t)
	return t
}

func (a *SemanticAnalyzer) typeOfExpr(expr ast.Expression, s scope.Scope) types.Type {
	switch n := expr.(type) {
	case *ast.IntLiteral:
		return types.Int
	case *ast.UIntLiteral:
		return types.UInt
	case *ast.FloatLiteral:
		return types.Float
	case *ast.CharLiteral:
		return types.Char
	case *ast.BoolLiteral:
		return types.Bool
	case *ast.SymbolLiteral:
		return types.Symbol
	case *ast.StringLiteral:
		return a.analyzeStringLiteral(n)
	case *ast.ArrayLiteral:
		return a.analyzeArrayLiteral(n, s)
	case *ast.TupleLiteral:
		return a.analyzeTupleLiteral(n, s)
	case *ast.DictLiteral:
		a.errorf(n, "dict literals are not implemented")
		return nil
	case *ast.VarRef:
		return a.analyzeVarRef(n, s)
	case *ast.UnaryExpression:
		return a.analyzeUnaryExpression(n, s)
	case *ast.BinaryExpression:
		return a.analyzeBinaryExpression(n, s)
	case *ast.CastExpression:
		return a.analyzeCastExpression(n, s)
	case *ast.TypedExpression:
		return a.analyzeTypedExpression(n, s)
	case *ast.IfExpression:
		return a.analyzeIfExpression(n, s)
	case *ast.IndexAccess:
		return a.analyzeIndexAccess(n, s)
	case *ast.FuncInvocation:
		return a.analyzeFuncInvocation(n, s)
	case *ast.UFCSInvocation:
		return a.analyzeUFCS(n, s)
	case *ast.ObjectConstruct:
		return a.analyzeObjectConstruct(n, s)
	case *ast.LambdaExpression:
		return a.analyzeLambdaExpression(n, s)
	default:
		a.errorf(expr, "unhandled expression kind %T", expr)
		return nil
	}
}

// analyzeUnaryExpression implements spec §4.3.3's unary half of the
// builtin/overloaded split.
func (a *SemanticAnalyzer) analyzeUnaryExpression(n *ast.UnaryExpression, s scope.Scope) types.Type {
	operand := a.analyzeExpr(n.Operand, s)
	if operand == nil {
		return nil
	}
	if isBuiltinType(operand) {
		if n.Operator == "!" && !operand.Equals(types.Bool) {
			a.errorf(n, "'!' requires bool, got %s", operand.String())
			return nil
		}
		return operand
	}
	fn := a.resolveOperatorCall(n, n.Operand, n.Operator, operand, []types.Type{operand})
	if fn == nil {
		return nil
	}
	n.CalleeScope = fn
	return fn.ReturnType
}

// analyzeBinaryExpression implements spec §4.3.3's binary half.
func (a *SemanticAnalyzer) analyzeBinaryExpression(n *ast.BinaryExpression, s scope.Scope) types.Type {
	lt := a.analyzeExpr(n.Left, s)
	rt := a.analyzeExpr(n.Right, s)
	if lt == nil || rt == nil {
		return nil
	}

	lBuiltin, rBuiltin := isBuiltinType(lt), isBuiltinType(rt)
	if lBuiltin || rBuiltin {
		if lBuiltin != rBuiltin || !lt.Equals(rt) {
			a.errorf(n, "user-defined operators for builtin types are not permitted: %s vs %s", lt.String(), rt.String())
			return nil
		}
		if comparisonOperators[n.Operator] {
			return types.Bool
		}
		if logicalOperators[n.Operator] {
			if !lt.Equals(types.Bool) {
				a.errorf(n, "'%s' requires bool operands, got %s", n.Operator, lt.String())
				return nil
			}
			return types.Bool
		}
		return lt
	}

	fn := a.resolveOperatorCall(n, n.Left, n.Operator, lt, []types.Type{lt, rt})
	if fn == nil {
		return nil
	}
	n.CalleeScope = fn
	return fn.ReturnType
}

// resolveOperatorCall treats operator as a function name on recv's class
// and runs it through the standard overload-resolution pipeline
// (spec §4.3.3 "overloaded path"), instantiating templates and checking
// const-violations the same as any other method call through recvExpr
// (spec §4.3.3 "Also checks const-violation (§4.3.7)").
func (a *SemanticAnalyzer) resolveOperatorCall(at ast.Node, recvExpr ast.Expression, operator string, recv types.Type, args []types.Type) *scope.FunctionScope {
	cls, ok := recv.(*types.Class)
	if !ok {
		a.errorf(at, "no operator '%s' for type %s", operator, recv.String())
		return nil
	}
	cs := classScopeOf(cls)
	binding, _ := scope.ResolveMethod(cs, operator)
	fn, err := a.resolveOverload(operator, binding, args, a.ctx.CurrentClass)
	if err != nil {
		a.errorf(at, "operator '%s': %s", operator, err.Error())
		return nil
	}
	if fn.IsTemplate() {
		fn = a.instantiateFunction(fn, args)
	}
	a.ensureAnalyzed(fn)
	if isSelfReceiver(recvExpr) {
		a.noteSelfCall(fn)
	} else {
		a.checkConstCall(at, recvExpr, fn)
	}
	return fn
}

// analyzeCastExpression implements `e as T` (spec §4.3.3): result type is
// the target type; the user cast-function lookup is TODO per spec §9(b),
// so this is treated as identity to the declared type.
func (a *SemanticAnalyzer) analyzeCastExpression(n *ast.CastExpression, s scope.Scope) types.Type {
	a.analyzeExpr(n.Operand, s)
	return a.ctx.resolveType(n.TargetType, s)
}

// analyzeTypedExpression implements `e : T` (spec §4.3.3).
func (a *SemanticAnalyzer) analyzeTypedExpression(n *ast.TypedExpression, s scope.Scope) types.Type {
	operand := a.analyzeExpr(n.Operand, s)
	annotated := a.ctx.resolveType(n.Annotation, s)
	if operand == nil || annotated == nil {
		return annotated
	}
	if annotated.Equals(operand) || types.IsInstantiableFrom(annotated, operand) {
		return annotated
	}
	if at, ok := annotated.(*types.Array); ok {
		if ot, ok := operand.(*types.Array); ok && at.DiffersOnlyBySize(ot) {
			return annotated
		}
	}
	a.errorf(n, "cannot ascribe type %s to value of type %s", annotated.String(), operand.String())
	return annotated
}

// analyzeIfExpression implements the expression form of if/then/else
// (spec §4.3.3): both branches must agree on type.
func (a *SemanticAnalyzer) analyzeIfExpression(n *ast.IfExpression, s scope.Scope) types.Type {
	cond := a.analyzeExpr(n.Condition, s)
	if cond != nil && !cond.Equals(types.Bool) {
		a.errorf(n.Condition, "if-expression condition must be bool, got %s", cond.String())
	}
	thenType := a.analyzeExpr(n.Then, s)
	elseType := a.analyzeExpr(n.Else, s)
	if thenType == nil || elseType == nil {
		return nil
	}
	if !thenType.Equals(elseType) {
		a.errorf(n, "if-expression branches disagree: %s vs %s", thenType.String(), elseType.String())
		return nil
	}
	return thenType
}

// analyzeIndexAccess implements `e[i]` (spec §4.3.3): array/pointer index
// to element type, tuple constant-index projection, builtin string index
// to char, else fallback to an `[]`/`[]=` operator overload.
func (a *SemanticAnalyzer) analyzeIndexAccess(n *ast.IndexAccess, s scope.Scope) types.Type {
	recv := a.analyzeExpr(n.Receiver, s)
	idx := a.analyzeExpr(n.Index, s)
	if recv == nil {
		return nil
	}

	switch rt := recv.(type) {
	case *types.Array:
		return rt.Elem
	case *types.Pointer:
		return rt.Pointee
	case *types.Tuple:
		lit, ok := constIndexLiteral(n.Index)
		if !ok {
			a.errorf(n.Index, "tuple index must be a constant int/uint literal")
			return nil
		}
		if lit < 0 || int(lit) >= len(rt.Elems) {
			a.errorf(n.Index, "tuple index %d out of bounds (len %d)", lit, len(rt.Elems))
			return nil
		}
		return rt.Elems[lit]
	case *types.Class:
		if rt.Name == "string" {
			if idx != nil && !idx.Equals(types.UInt) && !idx.Equals(types.Int) {
				a.errorf(n.Index, "string index must be int or uint")
			}
			return types.Char
		}
		opName := "[]"
		if n.IsLHS {
			opName = "[]="
		}
		cs := classScopeOf(rt)
		binding, _ := scope.ResolveMethod(cs, opName)
		args := []types.Type{recv, idx}
		fn, err := a.resolveOverload(opName, binding, args, a.ctx.CurrentClass)
		if err != nil {
			a.errorf(n, "index access: %s", err.Error())
			return nil
		}
		if fn.IsTemplate() {
			fn = a.instantiateFunction(fn, args)
		}
		a.ensureAnalyzed(fn)
		if isSelfReceiver(n.Receiver) {
			a.noteSelfCall(fn)
		} else {
			a.checkConstCall(n, n.Receiver, fn)
		}
		n.CalleeScope = fn
		if n.IsLHS {
			return nil
		}
		return fn.ReturnType
	default:
		a.errorf(n, "%s is not indexable", recv.String())
		return nil
	}
}

// constIndexLiteral extracts a compile-time int/uint constant from an
// index expression, or reports ok=false.
func constIndexLiteral(e ast.Expression) (int64, bool) {
	switch v := e.(type) {
	case *ast.IntLiteral:
		return v.Value, true
	case *ast.UIntLiteral:
		return int64(v.Value), true
	default:
		return 0, false
	}
}

// analyzeLambdaExpression implements the first step of spec §4.4: a
// lambda body is declared and walked exactly like a named function
// (ScopeBuilder declared and queued n.Def when it appeared among the
// program's functions, see ctx.queueLambda; a lambda definition found only
// inside a body is not declared, and is reported here); this step only
// analyzes it and builds a Func type. Capture discovery itself is
// internal/lambdacapture's job, run later over ctx.LambdaQueue.
func (a *SemanticAnalyzer) analyzeLambdaExpression(n *ast.LambdaExpression, s scope.Scope) types.Type {
	fn := a.builder.lookupFunctionScope(n.Def)
	if fn == nil {
		a.errorf(n, "internal: lambda function scope not found")
		return nil
	}
	a.ensureAnalyzed(fn)
	return &types.Func{Params: fn.ParamTypes(), Ret: fn.ReturnType}
}
