package syntaxcheck

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_ValidC(t *testing.T) {
	src := "// #include \"a.h\"\nint a;\n\nint main(void) { return a; }\n"

	problems, err := Check(context.Background(), []byte(src), LanguageC)

	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestCheck_ValidCPP(t *testing.T) {
	src := "namespace ns { template <typename T> T id(T v) { return v; } }\n"

	problems, err := Check(context.Background(), []byte(src), LanguageCPP)

	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestCheck_ReportsErrorPosition(t *testing.T) {
	src := "int a;\nint b = ;\n"

	problems, err := Check(context.Background(), []byte(src), LanguageC)

	require.NoError(t, err)
	require.NotEmpty(t, problems)
	assert.Equal(t, 2, problems[0].Line)
}

func TestProblemString(t *testing.T) {
	assert.Equal(t, "3:7: syntax error", Problem{Line: 3, Column: 7}.String())
	assert.Equal(t, "1:2: missing ;", Problem{Line: 1, Column: 2, Missing: true, Node: ";"}.String())
}

func TestLanguageForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"sqlite3.c", "c"},
		{"out/amalgamation.H", "c"},
		{"lib.cpp", "cpp"},
		{"lib.hpp", "cpp"},
		{"amalgamation", "cpp"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, LanguageForPath(tt.path).ID)
		})
	}
}

func TestLanguageByID(t *testing.T) {
	lang, ok := LanguageByID("C++")
	require.True(t, ok)
	assert.Equal(t, LanguageCPP.ID, lang.ID)

	lang, ok = LanguageByID(" c ")
	require.True(t, ok)
	assert.Equal(t, LanguageC.ID, lang.ID)

	_, ok = LanguageByID("rust")
	assert.False(t, ok)
}

func TestSupportedLanguagesReturnsCopy(t *testing.T) {
	languages := SupportedLanguages()
	require.Len(t, languages, 2)

	languages[0].Extensions[0] = ".changed"
	assert.Equal(t, ".c", SupportedLanguages()[0].Extensions[0])
}
