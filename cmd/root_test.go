package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand_Version(t *testing.T) {
	out, err := executeRoot(t, "--version")

	require.NoError(t, err)
	assert.Equal(t, "amalgamate version dev\nBuild date: unknown\nCommit: unknown\n", out)
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCommand()

	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"watch", "languages"})
}

func TestRootCommand_ValidatesFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing config", []string{"-s", "."}, `"config" not set`},
		{"missing source", []string{"-c", "amalgamate.json"}, `"source" not set`},
		{"bad verbose", []string{"-c", "amalgamate.json", "-s", ".", "-v", "true"}, "must be yes or no"},
		{"bad language", []string{"-c", "amalgamate.json", "-s", ".", "--language", "zig"}, "unsupported language"},
		{"positional args", []string{"-c", "amalgamate.json", "-s", ".", "extra"}, "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeRoot(t, tt.args...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRootCommand_Amalgamates(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.h"), []byte("int a;"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.c"), []byte("#include \"a.h\"\nint b;"), 0644))
	target := filepath.Join(t.TempDir(), "out.c")
	configPath := filepath.Join(t.TempDir(), "amalgamate.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"target": "`+filepath.ToSlash(target)+`", "sources": ["b.c"], "include_paths": []}`), 0644))

	out, err := executeRoot(t, "-c", configPath, "-s", root)

	require.NoError(t, err)
	assert.Contains(t, out, "Creating amalgamation:\n")
	assert.Contains(t, out, "...done!\n")
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "// #include \"a.h\"\nint a;\nint b;", string(content))
}

func TestRootCommand_MissingSourceFails(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(t.TempDir(), "out.c")
	configPath := filepath.Join(t.TempDir(), "amalgamate.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"target": "`+filepath.ToSlash(target)+`", "sources": ["b.c"]}`), 0644))

	_, err := executeRoot(t, "-c", configPath, "-s", root)

	require.Error(t, err)
	assert.Equal(t, `File not found: "b.c"`, err.Error())
	_, statErr := os.Stat(target)
	assert.True(t, os.IsNotExist(statErr))
}
