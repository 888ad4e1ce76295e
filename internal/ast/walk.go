package ast

// Inspect walks node and every node reachable from it, calling visit for
// each one in pre-order. If visit returns false, Inspect does not descend
// into that node's children (but continues with its siblings).
//
// This replaces a visitor-class hierarchy (spec §9 "Replace visitor
// classes with a single-dispatch match + a small recursive walker
// utility"): every caller that only cares about a handful of node kinds
// passes a visit function that type-switches on those kinds and returns
// true for everything else, getting "recurse into children" for free.
func Inspect(node Node, visit func(Node) bool) {
	if node == nil {
		return
	}
	if !visit(node) {
		return
	}
	walkChildren(node, visit)
}

func walkChildren(node Node, visit func(Node) bool) {
	switch n := node.(type) {
	case *Program:
		for _, f := range n.Functions {
			Inspect(f, visit)
		}
		for _, c := range n.Classes {
			Inspect(c, visit)
		}
		for _, g := range n.Globals {
			Inspect(g, visit)
		}

	case *FunctionDefinition:
		for _, p := range n.Params {
			if p.Type != nil {
				Inspect(p.Type, visit)
			}
		}
		if n.ReturnType != nil {
			Inspect(n.ReturnType, visit)
		}
		if n.Body != nil {
			Inspect(n.Body, visit)
		}

	case *ClassDefinition:
		for _, v := range n.Vars {
			if v.Type != nil {
				Inspect(v.Type, visit)
			}
		}
		for _, m := range n.Methods {
			Inspect(m, visit)
		}

	case *BlockStatement:
		for _, s := range n.Statements {
			Inspect(s, visit)
		}

	case *ExpressionStatement:
		Inspect(n.Expr, visit)

	case *InitializeStatement:
		for _, t := range n.Targets {
			if t.Type != nil {
				Inspect(t.Type, visit)
			}
		}
		for _, v := range n.Values {
			Inspect(v, visit)
		}

	case *AssignmentStatement:
		for _, l := range n.Lhs {
			Inspect(l, visit)
		}
		for _, r := range n.Rhs {
			Inspect(r, visit)
		}

	case *ReturnStatement:
		for _, v := range n.Values {
			Inspect(v, visit)
		}

	case *PostfixIfStatement:
		Inspect(n.Inner, visit)
		Inspect(n.Condition, visit)

	case *LetStatement:
		for _, t := range n.Targets {
			if t.Type != nil {
				Inspect(t.Type, visit)
			}
		}
		for _, v := range n.Values {
			Inspect(v, visit)
		}
		Inspect(n.Body, visit)

	case *DoStatement:
		Inspect(n.Body, visit)

	case *IfStatement:
		Inspect(n.Condition, visit)
		Inspect(n.Then, visit)
		if n.Else != nil {
			Inspect(n.Else, visit)
		}

	case *UnlessStatement:
		Inspect(n.Condition, visit)
		Inspect(n.Then, visit)
		if n.Else != nil {
			Inspect(n.Else, visit)
		}

	case *WhileStatement:
		Inspect(n.Condition, visit)
		Inspect(n.Body, visit)

	case *CaseStatement:
		for _, c := range n.Clauses {
			for _, g := range c.Guards {
				Inspect(g, visit)
			}
			Inspect(c.Body, visit)
		}
		if n.Else != nil {
			Inspect(n.Else, visit)
		}

	case *SwitchStatement:
		Inspect(n.Scrutinee, visit)
		for _, c := range n.Clauses {
			for _, v := range c.Values {
				Inspect(v, visit)
			}
			Inspect(c.Body, visit)
		}
		if n.Else != nil {
			Inspect(n.Else, visit)
		}

	case *ForStatement:
		Inspect(n.Range, visit)
		Inspect(n.Body, visit)

	case *UnaryExpression:
		Inspect(n.Operand, visit)

	case *BinaryExpression:
		Inspect(n.Left, visit)
		Inspect(n.Right, visit)

	case *CastExpression:
		Inspect(n.Operand, visit)
		Inspect(n.TargetType, visit)

	case *TypedExpression:
		Inspect(n.Operand, visit)
		Inspect(n.Annotation, visit)

	case *IfExpression:
		Inspect(n.Condition, visit)
		Inspect(n.Then, visit)
		Inspect(n.Else, visit)

	case *IndexAccess:
		Inspect(n.Receiver, visit)
		Inspect(n.Index, visit)

	case *FuncInvocation:
		Inspect(n.Callee, visit)
		for _, a := range n.Args {
			Inspect(a, visit)
		}

	case *UFCSInvocation:
		Inspect(n.Receiver, visit)
		for _, a := range n.Args {
			Inspect(a, visit)
		}

	case *ObjectConstruct:
		Inspect(n.TargetType, visit)
		for _, a := range n.Args {
			Inspect(a, visit)
		}

	case *LambdaExpression:
		Inspect(n.Def, visit)

	case *ArrayLiteral:
		for _, e := range n.Elems {
			Inspect(e, visit)
		}
		if n.ElemTypeHint != nil {
			Inspect(n.ElemTypeHint, visit)
		}

	case *TupleLiteral:
		for _, e := range n.Elems {
			Inspect(e, visit)
		}

	case *DictLiteral:
		for _, k := range n.Keys {
			Inspect(k, visit)
		}
		for _, v := range n.Values {
			Inspect(v, visit)
		}

	case *TypeofNode:
		Inspect(n.Expr, visit)

	case *ArrayTypeNode:
		if n.Elem != nil {
			Inspect(n.Elem, visit)
		}

	case *PointerTypeNode:
		Inspect(n.Pointee, visit)

	case *TupleTypeNode:
		for _, e := range n.Elems {
			Inspect(e, visit)
		}

	case *QualifiedTypeNode:
		Inspect(n.Inner, visit)

	case *FuncTypeNode:
		for _, p := range n.Params {
			Inspect(p, visit)
		}
		if n.Ret != nil {
			Inspect(n.Ret, visit)
		}

	default:
		// Leaf node (literals, VarRef, NamedTypeNode, ...): no children.
	}
}
