package types

import "fmt"

// Array is an element type plus an optional compile-time size (spec §3).
// A nil Size means the size is unknown (a dynamic array, or an
// as-yet-unsized literal).
type Array struct {
	Elem Type
	Size *uint64
}

func (a *Array) TypeKind() Kind { return KindArray }

func (a *Array) String() string {
	if a.Size != nil {
		return fmt.Sprintf("array(%s, %d)", a.Elem.String(), *a.Size)
	}
	return fmt.Sprintf("array(%s)", a.Elem.String())
}

func (a *Array) IsTemplate() bool {
	return a.Elem == nil || a.Elem.IsTemplate()
}

func (a *Array) Equals(o Type) bool {
	oa, ok := o.(*Array)
	if !ok || a.Elem == nil || oa.Elem == nil {
		return false
	}
	if !a.Elem.Equals(oa.Elem) {
		return false
	}
	// Size is part of the type per spec "typed_expr" handling ("arrays
	// differ only by unknown/known size" is the *permitted mismatch*, not
	// equality) - equality requires exact agreement.
	if (a.Size == nil) != (oa.Size == nil) {
		return false
	}
	if a.Size != nil && *a.Size != *oa.Size {
		return false
	}
	return true
}

// DiffersOnlyBySize reports whether a and o are the same array type except
// that one has a known size and the other does not, or the sizes differ.
// Used by typed_expr acceptance (spec §4.3.3).
func (a *Array) DiffersOnlyBySize(o *Array) bool {
	if a.Elem == nil || o.Elem == nil {
		return false
	}
	return a.Elem.Equals(o.Elem)
}

// Pointer wraps a pointee type.
type Pointer struct {
	Pointee Type
}

func (p *Pointer) TypeKind() Kind   { return KindPointer }
func (p *Pointer) String() string   { return fmt.Sprintf("pointer(%s)", p.Pointee.String()) }
func (p *Pointer) IsTemplate() bool { return p.Pointee == nil || p.Pointee.IsTemplate() }
func (p *Pointer) Equals(o Type) bool {
	op, ok := o.(*Pointer)
	return ok && p.Pointee != nil && op.Pointee != nil && p.Pointee.Equals(op.Pointee)
}

// Qualifier enumerates the type qualifiers. Only "maybe" exists today
// (spec §3).
type Qualifier string

const QualifierMaybe Qualifier = "maybe"

// Qualified wraps another type with a qualifier.
type Qualified struct {
	Qualifier Qualifier
	Inner     Type
}

func (q *Qualified) TypeKind() Kind { return KindQualified }
func (q *Qualified) String() string { return string(q.Qualifier) + "(" + q.Inner.String() + ")" }
func (q *Qualified) IsTemplate() bool {
	return q.Inner == nil || q.Inner.IsTemplate()
}
func (q *Qualified) Equals(o Type) bool {
	oq, ok := o.(*Qualified)
	return ok && oq.Qualifier == q.Qualifier && q.Inner != nil && oq.Inner != nil && q.Inner.Equals(oq.Inner)
}
