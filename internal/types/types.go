// Package types implements the Dachs semantic type system (spec §3 "Types").
//
// A semantic type is a small tagged union: Builtin, Class, Tuple, Func,
// GenericFunc, Array, Pointer, Qualified, Template. Types are plain values,
// cheaply copied (spec "Lifecycles"); the few kinds that reference a scope
// (Class, GenericFunc) do so through an opaque reference rather than an
// import of package scope, since scope must import types (a Symbol carries
// a Type) and Go forbids the cycle.
package types

import "fmt"

// Kind tags the variant of a Type.
type Kind string

const (
	KindBuiltin     Kind = "builtin"
	KindClass       Kind = "class"
	KindTuple       Kind = "tuple"
	KindFunc        Kind = "func"
	KindGenericFunc Kind = "generic_func"
	KindArray       Kind = "array"
	KindPointer     Kind = "pointer"
	KindQualified   Kind = "qualified"
	KindTemplate    Kind = "template"
)

// Type is implemented by every semantic type variant.
type Type interface {
	fmt.Stringer
	TypeKind() Kind
	// Equals reports structural equality per the rules of spec §3
	// ("Key invariants" 6 and 7).
	Equals(other Type) bool
	// IsTemplate reports whether this type (or something it contains)
	// is an unresolved template variable.
	IsTemplate() bool
}

// ScopeRef is an opaque, comparable handle to a scope-tree node (a class
// scope or function scope). types never dereferences it; it exists so that
// Class and GenericFunc can carry a "weak reference to a scope" (spec §3)
// without types importing package scope. Comparing two ScopeRef values
// with == implements the required pointer-identity equality (invariant 7).
type ScopeRef interface{}
