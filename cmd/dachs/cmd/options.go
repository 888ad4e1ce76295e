package cmd

import "fmt"

// Options is the CLI's flag surface (spec §6 "CLI surface"), modeled as
// a single struct populated by cobra/pflag, matching the teacher's
// `cmd/dwscript/cmd` package structure of one `cmd.Options`-shaped bag
// per command plus persistent root flags.
type Options struct {
	// ImportPaths is every `-I <dir>` given, tried in order before the
	// source file's own directory (spec §6 "Importer ... resolves the
	// path against a search list").
	ImportPaths []string

	// Requires is every `--require <dotted.path>` given: modules to
	// eagerly resolve through internal/importer and merge into the
	// program before analysis, since this build's AST has no import
	// declaration node of its own to drive resolution from (spec §1,
	// §6).
	Requires []string

	// DumpAST, DumpScope, DumpIR select which `--dump-*` diagnostic dump
	// to print (spec §6 "flags to dump AST / scope tree / LLVM IR").
	DumpAST   bool
	DumpScope bool
	DumpIR    bool

	// OptLevel is one of "none", "debug", "release" (spec §6 "an
	// optimization level").
	OptLevel string

	// LibPaths is every `-L <dir>` given, passed through for the linker
	// stage a future codegen backend would run (spec §6 "a library-path
	// list"); this build has no linker, so it is only validated and
	// surfaced, never consumed.
	LibPaths []string

	// Output is the `-o <path>` destination; empty means stdout.
	Output string
}

var optLevels = map[string]bool{"none": true, "debug": true, "release": true}

// validateOptLevel rejects anything outside spec §6's enumerated levels.
func validateOptLevel(level string) error {
	if !optLevels[level] {
		return fmt.Errorf("invalid --opt %q: must be one of none, debug, release", level)
	}
	return nil
}
