package ast

// InstanceVarDecl is one instance-variable declaration inside a class body.
// Type is nil for an unannotated field; ScopeBuilder binds it to a fresh
// Template (spec §4.1).
type InstanceVarDecl struct {
	Meta
	Name       string
	Type       TypeNode // nil: inferred from constructor bodies (spec §4.3.6)
	Visibility Visibility
}

func (n *InstanceVarDecl) String() string { return n.Name }

// ClassDefinition is a `class` declaration (spec §3 "Class owns").
// ScopeBuilder synthesizes a default zero-arg constructor when none is
// declared (spec §4.1).
type ClassDefinition struct {
	StmtMeta
	Name      string
	Params    []string // template parameter names, e.g. `class Pair(A, B)`
	Vars      []*InstanceVarDecl
	Methods   []*FunctionDefinition // includes constructors (IsConstructor=true)
}

func (n *ClassDefinition) String() string { return "class " + n.Name }

// IsTemplate reports whether this class declares template parameters.
func (n *ClassDefinition) IsTemplate() bool { return len(n.Params) > 0 }

// Constructors returns the subset of Methods that are constructors.
func (n *ClassDefinition) Constructors() []*FunctionDefinition {
	var out []*FunctionDefinition
	for _, m := range n.Methods {
		if m.IsConstructor {
			out = append(out, m)
		}
	}
	return out
}
