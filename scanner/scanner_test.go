package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("class C { }\n"), 0o644))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.cs"))
	writeFile(t, filepath.Join(dir, "a.cs"))
	writeFile(t, filepath.Join(dir, "notes.txt"))
	writeFile(t, filepath.Join(dir, "sub", "c.cs"))
	writeFile(t, filepath.Join(dir, "bin", "generated.cs"))

	s := New(dir)
	s.IgnoreDir("bin")

	files, err := s.Scan()
	require.NoError(t, err)

	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{
		filepath.Join(dir, "a.cs"),
		filepath.Join(dir, "b.cs"),
		filepath.Join(dir, "sub", "c.cs"),
	}, paths)
}

func TestScanIgnorePath(t *testing.T) {
	dir := t.TempDir()
	keep := filepath.Join(dir, "keep.cs")
	skip := filepath.Join(dir, "skip.cs")
	writeFile(t, keep)
	writeFile(t, skip)

	s := New(dir)
	s.IgnorePath(skip)

	files, err := s.Scan()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, keep, files[0].Path)
}

func TestScanCustomExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.cs"))
	writeFile(t, filepath.Join(dir, "b.csx"))

	files, err := New(dir, ".csx").Scan()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "b.csx"), files[0].Path)
}

func TestScanMissingRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope")).Scan()
	assert.Error(t, err)
}
