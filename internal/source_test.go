package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSourceCode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.cs")
	require.NoError(t, os.WriteFile(path, []byte("class C\n{\n}\n"), 0o644))

	sc, err := ReadSourceCode(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"class C", "{", "}", ""}, sc.Lines)
}

func TestReadSourceCodeMissingFile(t *testing.T) {
	_, err := ReadSourceCode(filepath.Join(t.TempDir(), "absent.cs"))
	assert.Error(t, err)
}
