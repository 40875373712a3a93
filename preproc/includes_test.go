package preproc

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func includePaths(includes []Include) []string {
	paths := make([]string, 0, len(includes))
	for _, inc := range includes {
		paths = append(paths, inc.Path)
	}
	return paths
}

func TestParseIncludes(t *testing.T) {
	source := `
#include <stdio.h>
#include "foo/bar.h"
#  include   "utils"
`
	includes := ParseIncludes([]byte(source))

	require.Len(t, includes, 3)

	assert.Equal(t, IncludeSystem, includes[0].Kind)
	assert.Equal(t, "stdio.h", includes[0].Path)

	assert.Equal(t, IncludeLocal, includes[1].Kind)
	assert.Equal(t, "foo/bar.h", includes[1].Path)

	assert.Equal(t, IncludeLocal, includes[2].Kind)
	assert.Equal(t, "utils", includes[2].Path)
	assert.Equal(t, `#  include   "utils"`, includes[2].Text)
}

func TestParseIncludes_Span(t *testing.T) {
	src := "#include \"a.h\"\nint b;"

	includes := ParseIncludes([]byte(src))

	require.Len(t, includes, 1)
	assert.Equal(t, 0, includes[0].Start)
	assert.Equal(t, 14, includes[0].End)
	assert.Equal(t, src[includes[0].Start:includes[0].End], includes[0].Text)
}

func TestParseIncludes_SkipsCommentsAndStrings(t *testing.T) {
	source := `#include "a.h"
// #include "line.h"
/* #include "block.h"
   #include <multi.h> */
puts("#include <str.h>");
const char *raw = R"(#include "raw.h")";
#include <sys/types.h>
`
	includes := ParseIncludes([]byte(source))

	assert.Equal(t, []string{"a.h", "sys/types.h"}, includePaths(includes))
}

func TestParseIncludes_FakeDirectiveDoesNotSwallowRealOne(t *testing.T) {
	source := `/* #include "a.h */ #include "b.h"`

	includes := ParseIncludes([]byte(source))

	assert.Equal(t, []string{"b.h"}, includePaths(includes))
}

func TestParseIncludes_IgnoresNonIncludeDirectives(t *testing.T) {
	source := `#include_next <limits.h>
#include MACRO_HEADER
#define include "x.h"
#import "objc.h"
`
	assert.Empty(t, ParseIncludes([]byte(source)))
}

func TestParseIncludes_NoSpaceBeforePath(t *testing.T) {
	includes := ParseIncludes([]byte("#include<stdint.h>\n#include\"local.h\"\n"))

	assert.Equal(t, []string{"stdint.h", "local.h"}, includePaths(includes))
}

func TestParseIncludes_UnterminatedBlockCommentHidesTrailingDirectives(t *testing.T) {
	source := "#include \"a.h\"\n/* never closed\n#include \"b.h\"\n"

	includes := ParseIncludes([]byte(source))

	assert.Equal(t, []string{"a.h"}, includePaths(includes))
}

// The scanner agrees with a real C grammar on which directives are code.
func TestParseIncludes_MatchesTreeSitter(t *testing.T) {
	source := []byte(`#include <stdio.h>
#include "a.h"
/* #include "hidden.h" */
// #include "also_hidden.h"
static const char *s = "#include <str.h>";
static const char q = '"';
#include "b/c.h"

int main(void) { return 0; }
`)

	parser := sitter.NewParser()
	parser.SetLanguage(c.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	require.NoError(t, err)
	defer tree.Close()

	var want []string
	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		if n.Type() == "preproc_include" {
			if path := n.ChildByFieldName("path"); path != nil {
				raw := path.Content(source)
				want = append(want, raw[1:len(raw)-1])
			}
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(tree.RootNode())

	assert.Equal(t, []string{"stdio.h", "a.h", "b/c.h"}, want)
	assert.Equal(t, want, includePaths(ParseIncludes(source)))
}

func TestFindIncludes_ReportsEveryMatch(t *testing.T) {
	source := "#include \"a.h\"\n// #include \"b.h\"\n#include <c.h>\n"

	assert.Equal(t, []string{"a.h", "b.h", "c.h"}, includePaths(FindIncludes([]byte(source))))
	assert.Equal(t, []string{"a.h", "c.h"}, includePaths(ParseIncludes([]byte(source))))
}
