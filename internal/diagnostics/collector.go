package diagnostics

import (
	"fmt"
	"strings"

	"github.com/rhysd/dachs/internal/token"
)

// Collector accumulates diagnostics over the course of one pass
// (ScopeBuilder, SemanticAnalyzer, or LambdaResolver), mirroring
// go-dws's PassContext.Errors accumulation (spec §7: "diagnostics
// accumulate per-pass and a pass fails in batch at its end, no
// cascading single-error aborts").
type Collector struct {
	source string
	errs   []*CompilerError
}

// NewCollector creates an empty collector. source is the full text of the
// file being analyzed, used to render caret context; it may be empty.
func NewCollector(source string) *Collector {
	return &Collector{source: source}
}

// Errorf records a formatted diagnostic at pos and keeps going; it never
// aborts the pass (spec §7).
func (c *Collector) Errorf(pos token.Position, format string, args ...interface{}) {
	c.errs = append(c.errs, NewCompilerError(pos, fmt.Sprintf(format, args...), c.source))
}

// HasErrors reports whether anything has been collected.
func (c *Collector) HasErrors() bool { return len(c.errs) > 0 }

// Errors returns every diagnostic collected so far, in report order.
func (c *Collector) Errors() []*CompilerError { return c.errs }

// Err returns nil if nothing was collected, or a *PassError wrapping
// everything collected otherwise. Callers check this once at the end of
// a pass rather than after every diagnostic.
func (c *Collector) Err() error {
	if !c.HasErrors() {
		return nil
	}
	return &PassError{Errors: c.errs}
}

// PassError wraps every diagnostic collected during one pass.
type PassError struct {
	Errors []*CompilerError
}

// Error implements the error interface.
func (e *PassError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors:\n", len(e.Errors))
	for _, err := range e.Errors {
		sb.WriteString("  ")
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Internal panics with a message identifying a state the analyzer
// believes is unreachable (spec §9: invariant violations are a compiler
// bug, not a user-facing diagnostic). It mirrors the teacher's use of
// Go's native panic for "should never happen" states.
func Internal(format string, args ...interface{}) {
	panic(fmt.Sprintf("dachs: internal error: "+format, args...))
}
