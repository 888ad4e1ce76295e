package compiler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rhysd/dachs/internal/scope"
)

// DumpScopeTree renders a deterministic, human-readable textual dump of
// g: every top-level function overload set, every class with its
// instance variables and methods, sorted by name so the output is stable
// across map-iteration order. Grounded on the teacher's own debug-dump
// style (a flat indented listing rather than a structured format), and
// exists specifically to give the CLI's `--dump-scope` flag (spec §6)
// and a go-snaps snapshot test something concrete to exercise.
func DumpScopeTree(g *scope.GlobalScope) string {
	var sb strings.Builder

	sb.WriteString("functions:\n")
	for _, name := range sortedKeys(g.Functions) {
		binding := g.Functions[name]
		for _, fn := range binding.Overloads {
			dumpFunctionSig(&sb, "  ", fn)
		}
	}

	sb.WriteString("classes:\n")
	for _, name := range sortedClassKeys(g.Classes) {
		cls := g.Classes[name]
		fmt.Fprintf(&sb, "  %s\n", cls.Name)
		sb.WriteString("    vars:\n")
		for _, v := range cls.Vars {
			fmt.Fprintf(&sb, "      %s %s\n", v.Name, typeString(v.Type))
		}
		sb.WriteString("    methods:\n")
		for _, mname := range sortedKeys(cls.Methods) {
			for _, fn := range cls.Methods[mname].Overloads {
				dumpFunctionSig(&sb, "      ", fn)
			}
		}
	}

	return sb.String()
}

func dumpFunctionSig(sb *strings.Builder, indent string, fn *scope.FunctionScope) {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = typeString(p.Type)
	}
	fmt.Fprintf(sb, "%s%s(%s) %s\n", indent, fn.Name, strings.Join(params, ", "), typeString(fn.ReturnType))
}

func typeString(t interface{ String() string }) string {
	if t == nil {
		return "?"
	}
	return t.String()
}

func sortedKeys(m map[string]*scope.FunctionBinding) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedClassKeys(m map[string]*scope.ClassScope) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
