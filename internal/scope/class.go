package scope

import (
	"github.com/rhysd/dachs/internal/ast"
	"github.com/rhysd/dachs/internal/types"
)

// ClassScope is the Class scope variant and doubles as the class symbol
// (spec §3 "Class owns: instance-variable symbols and a method table keyed
// by name, each entry an overload set."). It implements types.ClassShape so
// types.Class.Equals can compare instance-variable types structurally
// without the types package importing scope.
type ClassScope struct {
	parentScope Scope

	Name     string
	Params   []string // template parameters, e.g. class Pair(a, b)
	TypeArgs []types.Type

	Vars    []*VariableSymbol
	Methods map[string]*FunctionBinding

	// Instantiated mirrors FunctionScope.Instantiated: one ClassScope per
	// distinct template-argument tuple, memoized (spec §4.3.5).
	Instantiated []*ClassScope

	Def *ast.ClassDefinition
}

// FunctionBinding is the overload set for one method or free-function
// name in a scope: every FunctionScope sharing that name, regardless of
// parameter count or type. It gives an overload set a single stable
// pointer identity usable as a types.ScopeRef / types.GenericFunc.Scope
// value (spec §4.3.1 "resolve var_ref of a function name to a
// GenericFunc type referencing the scope").
type FunctionBinding struct {
	Name      string
	Overloads []*FunctionScope
}

// Add appends fn to the overload set.
func (b *FunctionBinding) Add(fn *FunctionScope) {
	b.Overloads = append(b.Overloads, fn)
}

// NewClassScope creates a Class scope nested under parent.
func NewClassScope(parent Scope, name string, def *ast.ClassDefinition) *ClassScope {
	return &ClassScope{
		parentScope: parent,
		Name:        name,
		Def:         def,
		Methods:     make(map[string]*FunctionBinding),
	}
}

func (c *ClassScope) Kind() Kind    { return KindClass }
func (c *ClassScope) Parent() Scope { return c.parentScope }

// IsTemplate reports whether this class was declared with template
// parameters (spec §4.3.5 "class templates").
func (c *ClassScope) IsTemplate() bool { return len(c.Params) > 0 && c.TypeArgs == nil }

// InstanceVarTypes implements types.ClassShape, letting types.Class.Equals
// compare two classes' instance-variable layout without a dependency on
// this package (spec §9 "weak reference... class <-> method").
func (c *ClassScope) InstanceVarTypes() []types.Type {
	out := make([]types.Type, len(c.Vars))
	for i, v := range c.Vars {
		out[i] = v.Type
	}
	return out
}

// DefineVar appends an instance-variable symbol. Duplicate instance-var
// names are rejected by the ScopeBuilder before this is called, mirroring
// DeclaredHere on LocalScope.
func (c *ClassScope) DefineVar(sym *VariableSymbol) {
	c.Vars = append(c.Vars, sym)
}

// LookupVar finds an instance variable declared directly on this class.
func (c *ClassScope) LookupVar(name string) (*VariableSymbol, bool) {
	for _, v := range c.Vars {
		if v.Name == name {
			return v, true
		}
	}
	return nil, false
}

// Constructors returns every method in this class marked as a
// constructor (spec §4.3.4 "Constructors").
func (c *ClassScope) Constructors() []*FunctionScope {
	b, ok := c.Methods["new"]
	if !ok {
		return nil
	}
	out := make([]*FunctionScope, 0, len(b.Overloads))
	for _, fn := range b.Overloads {
		if fn.IsConstructor {
			out = append(out, fn)
		}
	}
	return out
}

// AddMethod registers fn under its name's overload set, creating the
// binding on first use.
func (c *ClassScope) AddMethod(fn *FunctionScope) *FunctionBinding {
	b, ok := c.Methods[fn.Name]
	if !ok {
		b = &FunctionBinding{Name: fn.Name}
		c.Methods[fn.Name] = b
	}
	b.Add(fn)
	return b
}

// FindInstantiation returns a previously memoized class instantiation
// whose template arguments equal args, or nil.
func (c *ClassScope) FindInstantiation(args []types.Type) *ClassScope {
	for _, inst := range c.Instantiated {
		if sameTypes(inst.TypeArgs, args) {
			return inst
		}
	}
	return nil
}
