package ast

// VarRef is a bare name used as a value: a variable, a parameter, or a
// reference to an overloadable function (spec §4.3.1).
type VarRef struct {
	ExprMeta
	Name string
	// Symbol is filled in by the SemanticAnalyzer on successful lookup. It
	// is untyped here (a *scope.VariableSymbol for a variable, or a
	// *scope.FunctionBinding for a function name) to avoid package ast
	// importing package scope.
	Symbol interface{}
}

func (n *VarRef) String() string { return n.Name }

// Underscore reports whether this is the `_` blank reference, which
// var_ref lookup must skip entirely on the left of an assignment
// (spec §4.3.1).
func (n *VarRef) Underscore() bool { return n.Name == "_" }

// UnaryExpression is a prefix operator applied to one operand.
type UnaryExpression struct {
	ExprMeta
	Operator string
	Operand  Expression
	// CalleeScope is filled when Operand's type is non-builtin and the
	// operator is resolved as an overloaded function call (spec §4.3.3).
	CalleeScope interface{}
}

func (n *UnaryExpression) String() string { return "(" + n.Operator + n.Operand.String() + ")" }

// BinaryExpression is an infix operator applied to two operands.
type BinaryExpression struct {
	ExprMeta
	Operator string
	Left     Expression
	Right    Expression
	// CalleeScope is filled when this resolves through the overloaded
	// path rather than the builtin path (spec §4.3.3).
	CalleeScope interface{}
}

func (n *BinaryExpression) String() string {
	return "(" + n.Left.String() + " " + n.Operator + " " + n.Right.String() + ")"
}

// CastExpression is `e as T`. Result type is the target type; the
// user-defined cast function lookup is a TODO per spec §9(b), treated as
// identity to the declared type.
type CastExpression struct {
	ExprMeta
	Operand    Expression
	TargetType TypeNode
}

func (n *CastExpression) String() string { return "(cast " + n.Operand.String() + ")" }

// TypedExpression is `e : T`: an explicit type ascription checked against
// the inferred type of e (spec §4.3.3).
type TypedExpression struct {
	ExprMeta
	Operand      Expression
	Annotation   TypeNode
}

func (n *TypedExpression) String() string { return "(" + n.Operand.String() + " : ...)" }

// IfExpression is the expression form of if/then/else: both branches must
// agree on type, and that type becomes the expression's type
// (spec §4.3.3).
type IfExpression struct {
	ExprMeta
	Condition Expression
	Then      Expression
	Else      Expression
}

func (n *IfExpression) String() string { return "(if ...)" }

// IndexAccess is `e[i]`: array/pointer indexing, tuple projection, string
// indexing, or a fallback to an `[]`/`[]=` operator overload
// (spec §4.3.3).
type IndexAccess struct {
	ExprMeta
	Receiver Expression
	Index    Expression
	// IsLHS marks that this index access appears on the left of an
	// assignment, which dispatches to `[]=` instead of `[]` for overload
	// resolution (spec §4.3.1 "assignment_stmt").
	IsLHS bool
	// CalleeScope is filled only when the fallback operator-overload path
	// is taken.
	CalleeScope interface{}
}

func (n *IndexAccess) String() string { return n.Receiver.String() + "[" + n.Index.String() + "]" }
