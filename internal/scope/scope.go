// Package scope implements the Dachs scope tree and symbol model
// (spec §3 "Scope tree", "Symbols"). The tree is built in one forward pass
// by the ScopeBuilder (internal/analyzer) and lives, along with every
// symbol and type it creates, in a process-wide arena for the lifetime of
// the compilation: nothing here is ever freed or mutated concurrently
// (spec §5).
//
// Ownership runs strictly down the tree (a scope holds strong references
// to its direct children); every back-reference - to an enclosing scope,
// to the AST node a symbol was declared by, to the scope a type mentions -
// is non-owning, breaking the cycles spec §9 calls out (class <-> method,
// function scope <-> AST node, generic-func type <-> scope).
package scope

// Kind tags which of the four scope variants a Scope is (spec §3).
type Kind string

const (
	KindGlobal   Kind = "global"
	KindClass    Kind = "class"
	KindFunction Kind = "function"
	KindLocal    Kind = "local"
)

// Scope is implemented by all four scope variants. Parent is nil only for
// the single Global scope at the root of the tree.
type Scope interface {
	Kind() Kind
	Parent() Scope
}

// Enclosing walks up from s until it finds a scope of kind k, or returns
// nil if none exists (e.g. asking for the enclosing Class from a scope
// outside any class).
func Enclosing(s Scope, k Kind) Scope {
	for cur := s; cur != nil; cur = cur.Parent() {
		if cur.Kind() == k {
			return cur
		}
	}
	return nil
}

// EnclosingFunction returns the nearest enclosing *FunctionScope, or nil.
func EnclosingFunction(s Scope) *FunctionScope {
	if f, ok := Enclosing(s, KindFunction).(*FunctionScope); ok {
		return f
	}
	return nil
}

// EnclosingClass returns the nearest enclosing *ClassScope, or nil.
func EnclosingClass(s Scope) *ClassScope {
	if c, ok := Enclosing(s, KindClass).(*ClassScope); ok {
		return c
	}
	return nil
}

// EnclosingGlobal walks to the root Global scope.
func EnclosingGlobal(s Scope) *GlobalScope {
	if g, ok := Enclosing(s, KindGlobal).(*GlobalScope); ok {
		return g
	}
	return nil
}
