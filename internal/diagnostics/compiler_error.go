// Package diagnostics formats and accumulates compile-time errors produced
// by the scope builder, semantic analyzer, and lambda resolver (spec §6,
// §7). Formatting mirrors go-dws's internal/errors.CompilerError: a
// file:line:col header, the offending source line, and a caret pointing at
// the column.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/rhysd/dachs/internal/token"
)

// CompilerError is a single diagnostic with enough context to render a
// caret under the offending column.
type CompilerError struct {
	Message string
	Pos     token.Position
	Source  string // full source text of Pos.File, empty if unavailable
}

// NewCompilerError creates a diagnostic at pos.
func NewCompilerError(pos token.Position, message, source string) *CompilerError {
	return &CompilerError{Pos: pos, Message: message, Source: source}
}

// Error implements the error interface with coloring disabled.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the diagnostic. isTTY gates ANSI coloring, injected by
// the caller rather than detected here so formatting stays unit-testable.
func (e *CompilerError) Format(isTTY bool) string {
	var sb strings.Builder

	if e.Pos.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.Pos.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "Error at %d:%d\n", e.Pos.Line, e.Pos.Column)
	}

	if line := sourceLine(e.Source, e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+max(e.Pos.Column-1, 0)))
		if isTTY {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if isTTY {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if isTTY {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if isTTY {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func sourceLine(source string, line int) string {
	if source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// FormatErrors renders several diagnostics together, numbering them when
// there is more than one (spec §7 "a pass fails in batch at its end").
func FormatErrors(errs []*CompilerError, isTTY bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(isTTY)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Compilation failed with %d error(s):\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&sb, "[Error %d of %d]\n", i+1, len(errs))
		sb.WriteString(e.Format(isTTY))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
