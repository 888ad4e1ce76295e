package ast

// BlockStatement is a sequence of statements introducing one Local scope
// (spec §3 "Local").
type BlockStatement struct {
	StmtMeta
	Statements []Statement
}

func (n *BlockStatement) String() string { return "{ ... }" }

// ExpressionStatement is an expression used in statement position, e.g. a
// bare call `print(x);`.
type ExpressionStatement struct {
	StmtMeta
	Expr Expression
}

func (n *ExpressionStatement) String() string { return n.Expr.String() }

// VarTarget is one name bound by an initialize_stmt or let_stmt.
type VarTarget struct {
	Meta
	Name string
	Type TypeNode // nil when the declared type is to be inferred
	// InstanceVarInit marks an `@field` target inside a constructor body
	// (spec §4.3.1 "variable_decl"); Name excludes the leading `@`.
	InstanceVarInit bool
}

func (n *VarTarget) String() string { return n.Name }

// InitializeStatement declares one or more variables, optionally from one
// or more rhs expressions (spec §4.3.1 "initialize_stmt").
type InitializeStatement struct {
	StmtMeta
	Targets []*VarTarget
	Values  []Expression // may be empty (default-init) or len 1 with tuple rhs
}

func (n *InitializeStatement) String() string { return "initialize" }

// AssignmentStatement is multi-lhs/multi-rhs parallel assignment
// (spec §4.3.1 "assignment_stmt"). Each Lhs must be a VarRef, IndexAccess,
// or UFCSInvocation naming an instance variable.
type AssignmentStatement struct {
	StmtMeta
	Lhs []Expression
	Rhs []Expression
}

func (n *AssignmentStatement) String() string { return "assignment" }

// ReturnStatement returns the single expression's type, or a tuple of
// expressions' types when more than one value is returned
// (spec §4.3.1 "return_stmt").
type ReturnStatement struct {
	StmtMeta
	Values []Expression
}

func (n *ReturnStatement) String() string { return "return" }

// PostfixIfStatement is `stmt if cond` - Stmt runs only when Condition
// holds (spec §3 "postfix-if").
type PostfixIfStatement struct {
	StmtMeta
	Inner     Statement
	Condition Expression
}

func (n *PostfixIfStatement) String() string { return n.Inner.String() + " if ..." }

// LetStatement binds Targets from Values for the extent of Body only - the
// bindings go out of scope once Body finishes (spec §8 end-to-end
// scenario: "a out of scope after let").
type LetStatement struct {
	StmtMeta
	Targets []*VarTarget
	Values  []Expression
	Body    Statement
}

func (n *LetStatement) String() string { return "let ... in ..." }

// DoStatement is an anonymous block that introduces a fresh Local scope
// without attaching any other control-flow semantics (spec §3
// "do-block").
type DoStatement struct {
	StmtMeta
	Body *BlockStatement
}

func (n *DoStatement) String() string { return "do ... end" }
