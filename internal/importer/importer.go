// Package importer resolves `import a.b.c` declarations against a search
// path, parses the target file through an injected Parser, and merges its
// declarations into the importing program (spec §6 "Importer (input)").
//
// Parsing itself is out of scope (spec §1); Parser is the seam the real
// parser plugs into. The idempotency index - "have we already merged this
// resolved path?" - is kept as a small JSON document via tidwall/gjson and
// tidwall/sjson rather than a bespoke map-of-bools, so the same index can
// be serialized into a `--dump-ast`-style diagnostic dump without a second
// representation.
package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/rhysd/dachs/internal/ast"
)

// Parser parses one source file into a program fragment. The real
// implementation is an external collaborator (spec §1); tests inject a
// stub.
type Parser interface {
	Parse(path string) (*ast.Program, error)
}

// Importer resolves and merges `import` declarations (spec §6).
type Importer struct {
	// SearchPaths holds the user-supplied `-I` directories, tried in
	// order before the importing source's own directory (spec §6
	// "resolves the path against a search list"). No system library
	// directory is added by this package.
	SearchPaths []string
	Parser      Parser

	// index is a JSON array of every resolved path merged so far,
	// `["/abs/path/a.dachs", ...]`, queried with gjson and appended to
	// with sjson.
	index string
}

// New creates an Importer searching searchPaths in order, in addition to
// the importing file's own directory (appended per resolution).
func New(searchPaths []string, p Parser) *Importer {
	return &Importer{SearchPaths: searchPaths, Parser: p, index: "[]"}
}

// Resolve turns a dotted import path (`a.b.c`) into a candidate file name
// (`a/b/c.dachs`), mirroring the original module-path convention.
func Resolve(dotted string) string {
	return filepath.Join(strings.Split(dotted, ".")...) + ".dachs"
}

// Import resolves dotted against the search list (SearchPaths in order,
// then sourceDir), parses it, and returns the parsed fragment. It is
// idempotent: a path already merged returns (nil, nil) so the caller
// skips re-merging (spec §6 "Idempotent on paths already imported").
func (im *Importer) Import(dotted, sourceDir string) (*ast.Program, error) {
	rel := Resolve(dotted)
	candidates := append(append([]string(nil), im.SearchPaths...), sourceDir)

	var resolved string
	for _, dir := range candidates {
		candidate := filepath.Join(dir, rel)
		if fileExists(candidate) {
			resolved = candidate
			break
		}
	}
	if resolved == "" {
		return nil, fmt.Errorf("cannot find import '%s' (searched %d director%s)", dotted, len(candidates), plural(len(candidates)))
	}

	if im.alreadyImported(resolved) {
		return nil, nil
	}

	prog, err := im.Parser.Parse(resolved)
	if err != nil {
		return nil, fmt.Errorf("error importing '%s': %w", dotted, err)
	}

	im.markImported(resolved)
	return prog, nil
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (im *Importer) alreadyImported(resolved string) bool {
	found := false
	gjson.Parse(im.index).ForEach(func(_, value gjson.Result) bool {
		if value.String() == resolved {
			found = true
			return false // stop iterating
		}
		return true
	})
	return found
}

func (im *Importer) markImported(resolved string) {
	next, err := sjson.Set(im.index, "-1", resolved)
	if err != nil {
		// The index is our own well-formed JSON; a Set failure here means
		// a logic bug, not a user-facing condition.
		panic(fmt.Sprintf("importer: corrupt index: %v", err))
	}
	im.index = next
}

// Index returns the raw JSON array of resolved paths merged so far, for
// inclusion in a `--dump-ast`-style diagnostic dump.
func (im *Importer) Index() string { return im.index }

// Merge appends frag's top-level declarations into dst (spec §6 "merges
// its declarations (functions, globals, classes) into the current program
// AST").
func Merge(dst, frag *ast.Program) {
	if frag == nil {
		return
	}
	dst.Functions = append(dst.Functions, frag.Functions...)
	dst.Classes = append(dst.Classes, frag.Classes...)
	dst.Globals = append(dst.Globals, frag.Globals...)
}
