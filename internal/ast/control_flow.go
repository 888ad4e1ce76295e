package ast

// IfStatement is `if cond; then-block; else; else-block; end`. Else may be
// nil, a *BlockStatement, or another *IfStatement (an `elif` chain).
type IfStatement struct {
	StmtMeta
	Condition Expression
	Then      *BlockStatement
	Else      Statement
}

func (n *IfStatement) String() string { return "if ..." }

// UnlessStatement is the negated form of IfStatement (spec §4.3.1).
type UnlessStatement struct {
	StmtMeta
	Condition Expression
	Then      *BlockStatement
	Else      Statement
}

func (n *UnlessStatement) String() string { return "unless ..." }

// WhileStatement is `while cond; body; end`.
type WhileStatement struct {
	StmtMeta
	Condition Expression
	Body      *BlockStatement
}

func (n *WhileStatement) String() string { return "while ..." }

// CaseClause is one guarded branch of a CaseStatement: `when g1, g2; body`.
type CaseClause struct {
	Meta
	Guards []Expression
	Body   *BlockStatement
}

// CaseStatement has no scrutinee; each clause's guards are boolean
// expressions evaluated in order (spec §3, §4.3.1).
type CaseStatement struct {
	StmtMeta
	Clauses []*CaseClause
	Else    *BlockStatement // nil if no `else` branch
}

func (n *CaseStatement) String() string { return "case ..." }

// SwitchClause is one `when v1, v2; body` branch of a SwitchStatement.
type SwitchClause struct {
	Meta
	Values []Expression
	Body   *BlockStatement
}

// SwitchStatement has a scrutinee compared against each clause's value
// list (spec §3, §4.3.1). Equality against the scrutinee is built in for
// builtins, else resolved to an `==` overload.
type SwitchStatement struct {
	StmtMeta
	Scrutinee Expression
	Clauses   []*SwitchClause
	Else      *BlockStatement
	// EqCalleeScopes[i] holds the resolved `==` overload for Clauses[i],
	// filled only when Scrutinee's type is not builtin.
	EqCalleeScopes []interface{}
}

func (n *SwitchStatement) String() string { return "switch ..." }

// ForStatement iterates Vars over Range: element-wise if Range is an
// array, or via a `size(): uint` / `[](uint)` method pair on a class type
// otherwise (spec §4.3.1 "for_stmt").
type ForStatement struct {
	StmtMeta
	Vars  []string
	Range Expression
	Body  *BlockStatement

	// SizeMethodScope and IndexMethodScope cache the `size` and `[]`
	// method resolutions for a non-array range, as the spec requires
	// ("both are resolved here and cached on the AST node").
	SizeMethodScope  interface{}
	IndexMethodScope interface{}
}

func (n *ForStatement) String() string { return "for ..." }
