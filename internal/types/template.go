package types

import (
	"fmt"

	"github.com/google/uuid"
)

// Template is an unresolved type variable bound to an AST node: an
// unannotated function parameter, an element-less array/pointer type node,
// or similar (spec §3). It is replaced by a concrete type the moment the
// binding site is resolved - by argument-type substitution during overload
// resolution (spec §4.3.4) or template instantiation (spec §4.3.5).
//
// Template stores the node id rather than an *ast.Node pointer: package
// types is imported by package ast (for the expression type slot), so the
// reverse import would cycle. The id is enough to give each Template a
// distinct identity and to report where it was introduced.
type Template struct {
	NodeID uuid.UUID
	// Hint is an optional human-readable description (e.g. the parameter
	// name) used only for diagnostics; it plays no role in equality.
	Hint string
}

// NewTemplate creates a fresh template type variable bound to nodeID.
func NewTemplate(nodeID uuid.UUID, hint string) *Template {
	return &Template{NodeID: nodeID, Hint: hint}
}

func (t *Template) TypeKind() Kind { return KindTemplate }

func (t *Template) String() string {
	if t.Hint != "" {
		return fmt.Sprintf("<template %s>", t.Hint)
	}
	return "<template>"
}

func (t *Template) IsTemplate() bool { return true }

// Equals holds only for the exact same binding site; Template variables are
// never structurally interchangeable with one another, only substitutable.
func (t *Template) Equals(o Type) bool {
	ot, ok := o.(*Template)
	return ok && ot.NodeID == t.NodeID
}
