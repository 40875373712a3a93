package vcs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystemContentReader_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.h")
	require.NoError(t, os.WriteFile(path, []byte("int a;\n"), 0644))

	content, err := FilesystemContentReader()(path)

	require.NoError(t, err)
	assert.Equal(t, "int a;\n", string(content))
}

func TestFilesystemContentReader_MissingFile(t *testing.T) {
	_, err := FilesystemContentReader()(filepath.Join(t.TempDir(), "missing.h"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFilesystemFileChecker(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.h")
	require.NoError(t, os.WriteFile(path, []byte("int a;\n"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "include"), 0755))

	isFile := FilesystemFileChecker()

	assert.True(t, isFile(path))
	assert.False(t, isFile(filepath.Join(dir, "include")))
	assert.False(t, isFile(filepath.Join(dir, "missing.h")))
}
