package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rhysd/dachs/internal/ast"
	"github.com/rhysd/dachs/internal/compiler"
	"github.com/rhysd/dachs/internal/diagnostics"
	"github.com/rhysd/dachs/internal/importer"
)

// Frontend turns source text into an AST. No lexer/parser ships in this
// build (spec §1: parsing is "a predeclared input to the analyzer, not a
// component to build"); a real frontend wires itself in here before
// main() runs, the same seam internal/importer.Parser already names.
var Frontend func(path, source string) (*ast.Program, error)

var (
	checkVerbose bool
	checkOpts    Options
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Run semantic analysis over a Dachs source file",
	Long: `check parses, scope-builds, type-resolves and semantically analyzes a
Dachs program, printing every diagnostic it finds.

Examples:
  dachs check program.dachs
  dachs check -I lib -I vendor --require std.io program.dachs
  dachs check --dump-scope program.dachs`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	flags := checkCmd.Flags()
	flags.BoolVarP(&checkVerbose, "verbose", "v", false, "verbose output")
	flags.StringArrayVarP(&checkOpts.ImportPaths, "import-path", "I", nil, "add a directory to the import search path (repeatable)")
	flags.StringArrayVar(&checkOpts.Requires, "require", nil, "eagerly resolve and merge a dotted import path before analysis (repeatable)")
	flags.BoolVar(&checkOpts.DumpAST, "dump-ast", false, "dump the parsed AST")
	flags.BoolVar(&checkOpts.DumpScope, "dump-scope", false, "dump the resolved scope tree")
	flags.BoolVar(&checkOpts.DumpIR, "dump-ir", false, "dump generated LLVM IR")
	flags.StringVar(&checkOpts.OptLevel, "opt", "release", "optimization level: none, debug, release")
	flags.StringArrayVarP(&checkOpts.LibPaths, "lib-path", "L", nil, "add a library search path for the linker stage (repeatable)")
	flags.StringVarP(&checkOpts.Output, "output", "o", "", "output destination (default: stdout)")
}

// frontendParser adapts the package-level Frontend hook to
// importer.Parser, so `-I`/`--require` resolution has a real parser to
// hand resolved files to.
type frontendParser struct{}

func (frontendParser) Parse(path string) (*ast.Program, error) {
	if Frontend == nil {
		return nil, fmt.Errorf("no frontend wired: dachs ships its semantic core only, see cmd/dachs/cmd/check.go")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Frontend(path, string(content))
}

func runCheck(cmd *cobra.Command, args []string) error {
	filename := args[0]

	if err := validateOptLevel(checkOpts.OptLevel); err != nil {
		return err
	}

	if configPath != "" {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		applyConfigDefaults(&checkOpts, cfg, cmd.Flags().Changed("import-path"), cmd.Flags().Changed("opt"))
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	source := string(content)

	if Frontend == nil {
		exitWithError("no frontend wired: dachs ships its semantic core only, see cmd/dachs/cmd/check.go")
		return nil
	}

	prog, err := Frontend(filename, source)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	imp := importer.New(checkOpts.ImportPaths, frontendParser{})
	sourceDir := filepath.Dir(filename)
	for _, dotted := range checkOpts.Requires {
		frag, err := imp.Import(dotted, sourceDir)
		if err != nil {
			return err
		}
		importer.Merge(prog, frag)
	}

	if checkOpts.DumpAST {
		writeOutput(checkOpts.Output, dumpAST(prog))
	}

	if checkVerbose {
		fmt.Fprintf(os.Stderr, "Analyzing %s...\n", filename)
	}

	result, err := compiler.Compile(prog, source)
	if err != nil {
		if pass, ok := err.(*diagnostics.PassError); ok {
			fmt.Fprint(os.Stderr, diagnostics.FormatErrors(pass.Errors, true))
			fmt.Fprintln(os.Stderr)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return fmt.Errorf("semantic analysis failed for %s", filename)
	}

	if checkOpts.DumpScope {
		writeOutput(checkOpts.Output, compiler.DumpScopeTree(result.ScopeTree))
	}

	if checkOpts.DumpIR {
		// LLVM IR emission is out of scope for this build (spec §1);
		// the flag exists so the CLI surface matches spec §6 exactly.
		fmt.Fprintln(os.Stderr, "--dump-ir: LLVM IR emission is not implemented in this build")
	}

	if checkVerbose {
		fmt.Fprintf(os.Stderr, "OK: %d top-level function(s), %d class(es), %d lambda(s), main args: %s\n",
			len(result.ScopeTree.Functions), len(result.ScopeTree.Classes), len(result.Lambdas), mainArgsSummary(result))
	} else {
		fmt.Printf("%s: OK\n", filename)
	}
	return nil
}

func mainArgsSummary(result *compiler.Result) string {
	switch {
	case result.MainArgsCtor == nil:
		return "none"
	case result.MainArgsCtor.Param == nil:
		return "zero-arg"
	default:
		return "argv-constructed"
	}
}

// dumpAST renders a minimal top-level listing of prog: this build has no
// general-purpose pretty-printer for the AST (spec §1 leaves parsing, and
// therefore the canonical textual AST form, out of scope), so --dump-ast
// reports the shape SemanticAnalyzer itself cares about: every declared
// function and class name.
func dumpAST(prog *ast.Program) string {
	out := "functions:\n"
	for _, fn := range prog.Functions {
		out += "  " + fn.Name + "\n"
	}
	out += "classes:\n"
	for _, cls := range prog.Classes {
		out += "  " + cls.Name + "\n"
	}
	return out
}

func writeOutput(dest, content string) {
	if dest == "" {
		fmt.Println(content)
		return
	}
	if err := os.WriteFile(dest, []byte(content), 0o644); err != nil {
		exitWithError("failed to write %s: %v", dest, err)
	}
}
