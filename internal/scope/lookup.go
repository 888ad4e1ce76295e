package scope

// Resolve finds the nearest declaration of name visible from s: locals
// and params in enclosing Local/Function scopes first, then instance
// variables of an enclosing Class, then global constants (spec §4.3.1
// "var_ref resolution order").
func Resolve(s Scope, name string) (*VariableSymbol, bool) {
	for cur := s; cur != nil; cur = cur.Parent() {
		switch sc := cur.(type) {
		case *LocalScope:
			if v, ok := sc.DeclaredHere(name); ok {
				return v, true
			}
		case *FunctionScope:
			for _, p := range sc.Params {
				if p.Name == name {
					return p, true
				}
			}
		case *ClassScope:
			if v, ok := sc.LookupVar(name); ok {
				return v, true
			}
		case *GlobalScope:
			if v, ok := sc.Constants[name]; ok {
				return v, true
			}
		}
	}
	return nil, false
}

// ResolveFunction finds the overload set for name, preferring a method on
// the nearest enclosing class before falling back to the global function
// set (spec §4.3.1: an unqualified call resolves to a method of `self`
// before a free function of the same name).
func ResolveFunction(s Scope, name string) (*FunctionBinding, bool) {
	if cls := EnclosingClass(s); cls != nil {
		if b, ok := cls.Methods[name]; ok {
			return b, true
		}
	}
	g := EnclosingGlobal(s)
	if g == nil {
		return nil, false
	}
	b, ok := g.Functions[name]
	return b, ok
}

// ResolveMethod finds the overload set for name declared directly on cls,
// without falling back to free functions (spec §4.3.1 UFCS dispatch,
// where the receiver's class is already known).
func ResolveMethod(cls *ClassScope, name string) (*FunctionBinding, bool) {
	b, ok := cls.Methods[name]
	return b, ok
}
