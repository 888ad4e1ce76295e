// Package ast defines the shape of the Dachs abstract syntax tree.
//
// The parser that produces this tree is an external collaborator (spec §6);
// this package only fixes the contract the semantic core assumes: a tagged
// union of expression and statement variants, each carrying a stable id and
// source position (spec §3), plus the mutable slots ("inferred type",
// "callee scope", ...) that later passes fill in as they visit the tree.
package ast

import (
	"github.com/google/uuid"

	"github.com/rhysd/dachs/internal/token"
	"github.com/rhysd/dachs/internal/types"
)

// Node is the base contract every AST node satisfies.
type Node interface {
	ID() uuid.UUID
	Pos() token.Position
	String() string
}

// Expression is any node that produces a value. Expression nodes carry a
// type slot that starts empty and is filled by the SemanticAnalyzer
// (invariant 1 in spec §3).
type Expression interface {
	Node
	exprNode()
	// Type returns the inferred type, or nil if not yet analyzed.
	Type() types.Type
	// SetType fills the type slot. Only the analyzer calls this.
	SetType(types.Type)
}

// Statement is any node that performs an action without producing a value.
type Statement interface {
	Node
	stmtNode()
}

// Meta is embedded by every concrete node to provide identity and position.
// Fresh ids are stamped by the template-instantiation copier (spec §4.3.5,
// §9) when it deep-copies a subtree; the parser stamps them at parse time
// for everything else.
type Meta struct {
	NodeID   uuid.UUID
	Position token.Position
}

// NewMeta creates node metadata with a freshly generated id.
func NewMeta(pos token.Position) Meta {
	return Meta{NodeID: uuid.New(), Position: pos}
}

func (m Meta) ID() uuid.UUID       { return m.NodeID }
func (m Meta) Pos() token.Position { return m.Position }

// ExprMeta adds the type slot to Meta for expression nodes.
type ExprMeta struct {
	Meta
	InferredType types.Type
}

func (e *ExprMeta) exprNode()             {}
func (e *ExprMeta) Type() types.Type      { return e.InferredType }
func (e *ExprMeta) SetType(t types.Type)  { e.InferredType = t }

// StmtMeta marks a node as a Statement.
type StmtMeta struct {
	Meta
}

func (s *StmtMeta) stmtNode() {}

// Program is the root of a fully-merged AST: the parser's top-level file
// plus every module the importer has spliced in (spec §6).
type Program struct {
	Meta
	Functions []*FunctionDefinition
	Classes   []*ClassDefinition
	Globals   []*InitializeStatement
}

func (p *Program) String() string { return "<program>" }
