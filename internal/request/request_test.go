package request

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/mergepdf/internal/apperr"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, n := range names {
		p := filepath.Join(root, filepath.FromSlash(n))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, nil, 0o644))
	}
}

func TestFlags(t *testing.T) {
	t.Parallel()

	s := NewFlags(Verbose)
	assert.True(t, s.Has(Verbose))
	assert.False(t, s.Has(PDFOnly))
	assert.True(t, NewFlags(Verbose, PDFOnly).Has(PDFOnly))
	assert.False(t, NewFlags().Has(Verbose))
}

func TestResolve_KeepsCommandLineOrder(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "one.pdf", "two.pdf", "three.pdf")

	tokens := []string{
		filepath.Join(root, "three.pdf"),
		filepath.Join(root, "one.pdf"),
		filepath.Join(root, "two.pdf"),
	}
	req, err := Resolve(context.Background(), tokens, "merged.pdf", NewFlags(Verbose))
	require.NoError(t, err)

	assert.Equal(t, tokens, req.Inputs())
	assert.Equal(t, "merged.pdf", req.Output())
	assert.True(t, req.Flags().Has(Verbose))
}

func TestResolve_ExpandsDirectoriesInPlace(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "first.pdf", "dir/b.pdf", "dir/a.pdf", "dir/z/c.pdf", "dir/readme.txt", "last.pdf")

	tokens := []string{
		filepath.Join(root, "first.pdf"),
		filepath.Join(root, "dir"),
		filepath.Join(root, "last.pdf"),
	}
	req, err := Resolve(context.Background(), tokens, "out.pdf", NewFlags(PDFOnly))
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "first.pdf"),
		filepath.Join(root, "dir", "a.pdf"),
		filepath.Join(root, "dir", "b.pdf"),
		filepath.Join(root, "dir", "z", "c.pdf"),
		filepath.Join(root, "last.pdf"),
	}, req.Inputs())
}

func TestResolve_RelativePathsBecomeAbsolute(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "rel.pdf")
	rel, err := filepath.Rel(mustGetwd(t), filepath.Join(root, "rel.pdf"))
	require.NoError(t, err)

	req, err := Resolve(context.Background(), []string{rel}, "out.pdf", 0)
	require.NoError(t, err)
	require.Len(t, req.Inputs(), 1)
	assert.True(t, filepath.IsAbs(req.Inputs()[0]))
}

func TestResolve_MissingInput(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.pdf")
	_, err := Resolve(context.Background(), []string{missing}, "out.pdf", 0)

	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "does not exist")
}

func TestResolve_Usage(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "a.pdf")
	require.NoError(t, os.Mkdir(filepath.Join(root, "empty"), 0o755))

	_, err := Resolve(context.Background(), []string{filepath.Join(root, "a.pdf")}, "", 0)
	assert.Equal(t, apperr.KindUsage, apperr.KindOf(err))

	_, err = Resolve(context.Background(), []string{filepath.Join(root, "empty")}, "out.pdf", 0)
	assert.Equal(t, apperr.KindUsage, apperr.KindOf(err))
}

func TestInputs_ReturnsCopy(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "a.pdf")
	req, err := Resolve(context.Background(), []string{filepath.Join(root, "a.pdf")}, "out.pdf", 0)
	require.NoError(t, err)

	in := req.Inputs()
	in[0] = "tampered"
	assert.Equal(t, filepath.Join(root, "a.pdf"), req.Inputs()[0])
}

func mustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	return wd
}
