package types

import "strings"

// ClassShape is implemented by a class scope (package scope) so that
// package types can compare two class types structurally (invariant 6)
// without importing package scope.
type ClassShape interface {
	// InstanceVarTypes returns the declared type of each instance variable,
	// in declaration order. A Template element marks a not-yet-specialized
	// template position.
	InstanceVarTypes() []Type
}

// Class types a named class, possibly a template instantiation. Scope is a
// weak (non-owning) reference to the owning class scope; Args is the list
// of type arguments supplied at the use site (empty when this is not a
// template instantiation - spec §3).
type Class struct {
	Name  string
	Scope ScopeRef
	Args  []Type
}

func (c *Class) TypeKind() Kind { return KindClass }

func (c *Class) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

func (c *Class) IsTemplate() bool {
	for _, a := range c.Args {
		if a.IsTemplate() {
			return true
		}
	}
	return false
}

// Equals implements invariant 6: two class types are equal iff their names
// match and, element-wise, their instance-variable types are equal, with
// template positions treated as wildcards.
func (c *Class) Equals(o Type) bool {
	oc, ok := o.(*Class)
	if !ok || oc.Name != c.Name {
		return false
	}
	// Pointer equality on scope is a fast, exact match (most common case:
	// both sides are literally the same instantiation).
	if c.Scope != nil && c.Scope == oc.Scope {
		return true
	}
	cShape, cOK := c.Scope.(ClassShape)
	oShape, oOK := oc.Scope.(ClassShape)
	if !cOK || !oOK {
		// Neither side can be inspected structurally; fall back to name
		// equality, which is the best we can do for a forward reference.
		return c.Name == oc.Name
	}
	cFields := cShape.InstanceVarTypes()
	oFields := oShape.InstanceVarTypes()
	if len(cFields) != len(oFields) {
		return false
	}
	for i := range cFields {
		if cFields[i] == nil || oFields[i] == nil {
			continue
		}
		if cFields[i].IsTemplate() || oFields[i].IsTemplate() {
			continue // wildcard
		}
		if !cFields[i].Equals(oFields[i]) {
			return false
		}
	}
	return true
}
