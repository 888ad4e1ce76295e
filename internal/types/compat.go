package types

// IsInstantiableFrom reports whether a value of type `have` could be used
// to instantiate a declared type `want` that may still contain Template
// variables - e.g. a parameter declared as `array(Template)` is
// instantiable-from `array(int)`. This is the relation spec §4.3.1 invokes
// when accepting an initialize_stmt whose declared type was pre-annotated:
// "require rhs type either equal or instantiable-from annotated".
func IsInstantiableFrom(want, have Type) bool {
	if want == nil || have == nil {
		return false
	}
	if _, ok := want.(*Template); ok {
		return true
	}
	if want.Equals(have) {
		return true
	}
	switch w := want.(type) {
	case *Array:
		h, ok := have.(*Array)
		if !ok {
			return false
		}
		return IsInstantiableFrom(w.Elem, h.Elem)
	case *Pointer:
		h, ok := have.(*Pointer)
		if !ok {
			return false
		}
		return IsInstantiableFrom(w.Pointee, h.Pointee)
	case *Tuple:
		h, ok := have.(*Tuple)
		if !ok || len(w.Elems) != len(h.Elems) {
			return false
		}
		for i := range w.Elems {
			if !IsInstantiableFrom(w.Elems[i], h.Elems[i]) {
				return false
			}
		}
		return true
	case *Class:
		h, ok := have.(*Class)
		if !ok || h.Name != w.Name || len(w.Args) != len(h.Args) {
			return false
		}
		for i := range w.Args {
			if !IsInstantiableFrom(w.Args[i], h.Args[i]) {
				return false
			}
		}
		return true
	case *Func:
		h, ok := have.(*Func)
		if !ok || len(w.Params) != len(h.Params) {
			return false
		}
		if (w.Ret == nil) != (h.Ret == nil) {
			return false
		}
		if w.Ret != nil && !IsInstantiableFrom(w.Ret, h.Ret) {
			return false
		}
		for i := range w.Params {
			if !IsInstantiableFrom(w.Params[i], h.Params[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Substitute walks t, replacing every type that is a key of bindings
// (matched by identity, so a given *Template value) with its bound
// concrete type. Templates with no binding are left untouched (they may
// be resolved by an outer call). Used by template instantiation (§4.3.5)
// to specialize a copied signature.
func Substitute(t Type, bindings map[Type]Type) Type {
	if t == nil {
		return nil
	}
	if repl, ok := bindings[t]; ok {
		return repl
	}
	switch v := t.(type) {
	case *Array:
		elem := Substitute(v.Elem, bindings)
		return &Array{Elem: elem, Size: v.Size}
	case *Pointer:
		return &Pointer{Pointee: Substitute(v.Pointee, bindings)}
	case *Qualified:
		return &Qualified{Qualifier: v.Qualifier, Inner: Substitute(v.Inner, bindings)}
	case *Tuple:
		if v.IsUnit() {
			return v
		}
		elems := make([]Type, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = Substitute(e, bindings)
		}
		return NewTuple(elems)
	case *Func:
		params := make([]Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = Substitute(p, bindings)
		}
		var ret Type
		if v.Ret != nil {
			ret = Substitute(v.Ret, bindings)
		}
		return &Func{Params: params, Ret: ret}
	case *Class:
		if len(v.Args) == 0 {
			return v
		}
		args := make([]Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = Substitute(a, bindings)
		}
		return &Class{Name: v.Name, Scope: v.Scope, Args: args}
	default:
		return t
	}
}

// CollectTemplateBindings walks declared (which may contain Templates) in
// lockstep with actual, recording a Template -> concrete-type binding for
// every Template position it finds, in a form Substitute can consume.
// The analyzer does not call it; template instantiation builds its
// bindings from the parameter list directly.
func CollectTemplateBindings(declared, actual Type, out map[Type]Type) {
	if declared == nil || actual == nil {
		return
	}
	if declared.IsTemplate() {
		if _, ok := declared.(*Template); ok {
			out[declared] = actual
			return
		}
	}
	switch d := declared.(type) {
	case *Array:
		if a, ok := actual.(*Array); ok {
			CollectTemplateBindings(d.Elem, a.Elem, out)
		}
	case *Pointer:
		if a, ok := actual.(*Pointer); ok {
			CollectTemplateBindings(d.Pointee, a.Pointee, out)
		}
	case *Tuple:
		if a, ok := actual.(*Tuple); ok && len(a.Elems) == len(d.Elems) {
			for i := range d.Elems {
				CollectTemplateBindings(d.Elems[i], a.Elems[i], out)
			}
		}
	case *Class:
		if a, ok := actual.(*Class); ok && a.Name == d.Name && len(a.Args) == len(d.Args) {
			for i := range d.Args {
				CollectTemplateBindings(d.Args[i], a.Args[i], out)
			}
		}
	case *Func:
		if a, ok := actual.(*Func); ok && len(a.Params) == len(d.Params) {
			for i := range d.Params {
				CollectTemplateBindings(d.Params[i], a.Params[i], out)
			}
			if d.Ret != nil && a.Ret != nil {
				CollectTemplateBindings(d.Ret, a.Ret, out)
			}
		}
	}
}
