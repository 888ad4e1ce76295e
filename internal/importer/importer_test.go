package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhysd/dachs/internal/ast"
)

type stubParser struct {
	calls int
	prog  *ast.Program
	err   error
}

func (p *stubParser) Parse(path string) (*ast.Program, error) {
	p.calls++
	return p.prog, p.err
}

func writeModule(t *testing.T, dir, dotted string) {
	t.Helper()
	rel := Resolve(dotted)
	full := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte("# stub module"), 0o644))
}

func TestResolveJoinsDottedPathIntoFileName(t *testing.T) {
	assert.Equal(t, filepath.Join("a", "b", "c.dachs"), Resolve("a.b.c"))
}

func TestImportParsesOnFirstResolution(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "a.b")

	parser := &stubParser{prog: &ast.Program{}}
	im := New(nil, parser)

	prog, err := im.Import("a.b", dir)
	require.NoError(t, err)
	require.NotNil(t, prog)
	assert.Equal(t, 1, parser.calls)
}

func TestImportIsIdempotentOnSecondResolution(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "a.b")

	parser := &stubParser{prog: &ast.Program{}}
	im := New(nil, parser)

	_, err := im.Import("a.b", dir)
	require.NoError(t, err)

	prog, err := im.Import("a.b", dir)
	require.NoError(t, err)
	assert.Nil(t, prog, "a second import of the same path must be a no-op")
	assert.Equal(t, 1, parser.calls, "the parser must not be invoked twice for the same resolved path")
}

func TestImportFailsOnMissingFile(t *testing.T) {
	dir := t.TempDir()
	im := New(nil, &stubParser{})

	_, err := im.Import("does.not.exist", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot find import")
}

func TestImportPropagatesParseErrors(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "broken")

	im := New(nil, &stubParser{err: fmt.Errorf("syntax error")})
	_, err := im.Import("broken", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax error")
}

func TestImportFindsModuleInUserSearchPath(t *testing.T) {
	libDir := t.TempDir()
	srcDir := t.TempDir()
	writeModule(t, libDir, "lib.util")

	parser := &stubParser{prog: &ast.Program{}}
	im := New([]string{libDir}, parser)

	prog, err := im.Import("lib.util", srcDir)
	require.NoError(t, err)
	assert.NotNil(t, prog)
}

func TestMergeAppendsFragmentDeclarations(t *testing.T) {
	dst := &ast.Program{}
	frag := &ast.Program{
		Functions: []*ast.FunctionDefinition{{Name: "f"}},
		Classes:   []*ast.ClassDefinition{{Name: "C"}},
	}
	Merge(dst, frag)
	require.Len(t, dst.Functions, 1)
	require.Len(t, dst.Classes, 1)
}

func TestMergeOnNilFragmentIsNoop(t *testing.T) {
	dst := &ast.Program{Functions: []*ast.FunctionDefinition{{Name: "f"}}}
	Merge(dst, nil)
	assert.Len(t, dst.Functions, 1)
}

func TestIndexReflectsEveryDistinctResolvedImport(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "a")
	writeModule(t, dir, "b")

	im := New(nil, &stubParser{prog: &ast.Program{}})
	_, err := im.Import("a", dir)
	require.NoError(t, err)
	_, err = im.Import("b", dir)
	require.NoError(t, err)

	assert.Contains(t, im.Index(), "a.dachs")
	assert.Contains(t, im.Index(), "b.dachs")
}
