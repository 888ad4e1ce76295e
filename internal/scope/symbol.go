package scope

import (
	"github.com/rhysd/dachs/internal/ast"
	"github.com/rhysd/dachs/internal/types"
)

// VariableSymbol is a variable, parameter, or instance variable
// (spec §3 "Symbols"). Decl is a weak reference to the declaring AST node,
// kept as ast.Node (not a concrete type) since a symbol may be declared by
// a Parameter, a VarTarget, or an InstanceVarDecl.
type VariableSymbol struct {
	Name      string
	Type      types.Type // mutated in place as inference fills the slot
	Immutable bool
	Global    bool
	Public    bool // meaningful only for instance variables
	Decl      ast.Node
}

// NewVariableSymbol creates a mutable, non-global, public-by-default
// variable symbol - the common case for locals and parameters.
func NewVariableSymbol(name string, typ types.Type, decl ast.Node) *VariableSymbol {
	return &VariableSymbol{Name: name, Type: typ, Decl: decl, Public: true}
}
