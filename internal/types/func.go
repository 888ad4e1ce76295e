package types

import "strings"

// Func is a function-pointer type: known parameter types and a known
// return type. It is distinct from GenericFunc, which names an
// overloadable/generic function by scope reference rather than by a fixed
// signature (spec §3).
type Func struct {
	Params []Type
	Ret    Type
}

func (f *Func) TypeKind() Kind { return KindFunc }

func (f *Func) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	ret := "()"
	if f.Ret != nil {
		ret = f.Ret.String()
	}
	return "(" + strings.Join(parts, ", ") + ") -> " + ret
}

func (f *Func) IsTemplate() bool {
	if f.Ret != nil && f.Ret.IsTemplate() {
		return true
	}
	for _, p := range f.Params {
		if p.IsTemplate() {
			return true
		}
	}
	return false
}

func (f *Func) Equals(o Type) bool {
	of, ok := o.(*Func)
	if !ok || len(of.Params) != len(f.Params) {
		return false
	}
	if (f.Ret == nil) != (of.Ret == nil) {
		return false
	}
	if f.Ret != nil && !f.Ret.Equals(of.Ret) {
		return false
	}
	for i, p := range f.Params {
		if !p.Equals(of.Params[i]) {
			return false
		}
	}
	return true
}

// GenericFunc types a name bound to an overloadable/generic function: a
// reference, not a signature. Two GenericFunc types are equal iff they
// point to the very same function scope (invariant 7 - pointer equality,
// not structural), which is why Scope is an opaque ScopeRef rather than a
// value this package could compare structurally.
type GenericFunc struct {
	Scope ScopeRef
	Name  string
}

func (g *GenericFunc) TypeKind() Kind   { return KindGenericFunc }
func (g *GenericFunc) String() string   { return "<func " + g.Name + ">" }
func (g *GenericFunc) IsTemplate() bool { return false }

func (g *GenericFunc) Equals(o Type) bool {
	og, ok := o.(*GenericFunc)
	return ok && og.Scope == g.Scope
}

// Copy returns a shallow copy of g. var_ref (spec §4.3.1) copies the
// GenericFunc type value on lookup so that later instantiation (which
// mutates nothing on GenericFunc today, but may attach resolved overload
// info in future extensions) never mutates the defining site's symbol.
func (g *GenericFunc) Copy() *GenericFunc {
	cp := *g
	return &cp
}
