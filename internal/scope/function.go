package scope

import (
	"github.com/rhysd/dachs/internal/ast"
	"github.com/rhysd/dachs/internal/types"
)

// ConstState is the five-valued state of method-const inference
// (spec §4.3.6 "Const-method inference"): a method starts Unknown,
// flips to Analyzing while its body is being walked so a recursive call
// back into the same method is treated as Provisional rather than
// re-entering the analysis, and settles at ConstYes or ConstNo once the
// body has been fully walked.
type ConstState int

const (
	ConstUnknown ConstState = iota
	ConstAnalyzing
	ConstProvisional
	ConstYes
	ConstNo
)

// FunctionScope is both the Function scope variant and the function
// symbol (spec §3 "Function owns: ordered parameter symbols, a single
// Local body scope, a return type (initially absent for inference),
// and, for templates, the list of scopes created by instantiation.").
//
// A FunctionScope for a lambda is declared like any top-level function,
// with Global as its parent; it is not attached as a child of the
// LocalScope it is lexically nested in. internal/lambdacapture finds it
// through the analyzer's lambda queue to attach its capture list.
type FunctionScope struct {
	parentScope Scope

	Name   string
	Params []*VariableSymbol
	Body   *LocalScope

	// ReturnType is nil until inferred or declared. Functions with a
	// recursive call before any return statement resolve it lazily
	// (spec §4.3.5 "Recursive-return inference").
	ReturnType types.Type

	IsMethod      bool
	IsConstructor bool
	IsLambda      bool
	IsBuiltin     bool

	// Const is the method-const inference state (self-only methods
	// are candidates; free functions are left ConstUnknown and ignored).
	Const ConstState

	// TouchedInstanceVars records every `self.x` write observed while
	// analyzing the body; any entry settles Const at ConstNo
	// (spec §4.3.6). Calls through self are tracked separately.
	TouchedInstanceVars map[string]bool

	// Instantiated accumulates one FunctionScope per distinct argument
	// type tuple seen at a call site, memoized by that tuple so a second
	// call with the same concrete types reuses the first instantiation
	// (spec §4.3.5 "Template instantiation", "memoized").
	Instantiated []*FunctionScope

	// Def is a weak back-reference to the declaring AST node, used by
	// diagnostics to report a position and by the template instantiator
	// to re-walk the body with bindings substituted in.
	Def *ast.FunctionDefinition

	// Captures is populated by internal/lambdacapture after the main
	// analysis pass, one entry per free variable the lambda's body
	// referenced (spec §4.4 "produce a per-lambda capture map").
	// Non-lambda functions always have a nil Captures.
	Captures []*Capture
}

// Capture pairs a free variable resolved from an enclosing scope with the
// fresh symbol representing it inside the lambda's own function scope
// (spec §4.4).
type Capture struct {
	Outer *VariableSymbol
	Inner *VariableSymbol
}

// NewFunctionScope creates a Function scope nested under parent, with an
// empty body Local scope already attached (spec §3: "a single Local body
// scope").
func NewFunctionScope(parent Scope, name string, def *ast.FunctionDefinition) *FunctionScope {
	f := &FunctionScope{
		parentScope:         parent,
		Name:                name,
		Def:                 def,
		TouchedInstanceVars: make(map[string]bool),
	}
	f.Body = NewLocalScope(f)
	return f
}

func (f *FunctionScope) Kind() Kind    { return KindFunction }
func (f *FunctionScope) Parent() Scope { return f.parentScope }

// IsTemplate reports whether any parameter is unannotated, i.e. bound to
// a types.Template variable rather than a concrete type (spec §4.1).
func (f *FunctionScope) IsTemplate() bool {
	for _, p := range f.Params {
		if p.Type != nil && p.Type.IsTemplate() {
			return true
		}
	}
	return false
}

// ParamTypes returns the ordered parameter types, used as the dedup key
// for template instantiation and as the input to overload scoring.
func (f *FunctionScope) ParamTypes() []types.Type {
	out := make([]types.Type, len(f.Params))
	for i, p := range f.Params {
		out[i] = p.Type
	}
	return out
}

// FindInstantiation returns a previously memoized instantiation whose
// parameter types equal args, or nil if this is a new argument tuple
// (spec §4.3.5 "dedup by argument-type tuple").
func (f *FunctionScope) FindInstantiation(args []types.Type) *FunctionScope {
	for _, inst := range f.Instantiated {
		if sameTypes(inst.ParamTypes(), args) {
			return inst
		}
	}
	return nil
}

func sameTypes(a, b []types.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] == nil || b[i] == nil || !a[i].Equals(b[i]) {
			return false
		}
	}
	return true
}
