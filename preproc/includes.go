// Package preproc finds the #include directives of C and C++ source text
// without being fooled by include-like text in comments and literals.
package preproc

import (
	"regexp"
)

// IncludeKind distinguishes between system and local includes.
type IncludeKind int

const (
	IncludeLocal IncludeKind = iota
	IncludeSystem
)

func (k IncludeKind) String() string {
	if k == IncludeSystem {
		return "system"
	}
	return "local"
}

// Include represents an #include directive located in source text.
type Include struct {
	Path  string
	Kind  IncludeKind
	Start int
	End   int
	// Text is the directive exactly as written, src[Start:End].
	Text string
}

// includePattern matches #include "path" and #include <path>. Whitespace is
// allowed around "include"; the path itself never spans lines.
var includePattern = regexp.MustCompile(`#[ \t]*include[ \t]*(?:"([^"\n]*)"|<([^>\n]*)>)`)

// FindIncludes returns every include-like match in src in source order,
// including those that sit inside comments and literals.
func FindIncludes(src []byte) []Include {
	var includes []Include
	for _, loc := range includePattern.FindAllSubmatchIndex(src, -1) {
		includes = append(includes, includeFromMatch(src, 0, loc))
	}
	return includes
}

// ParseIncludes returns the directives of src that are real code, in source
// order. A match starting inside a comment or literal is discarded and the
// search resumes one byte after its start, so a fake directive can never
// swallow a real one that follows it.
func ParseIncludes(src []byte) []Include {
	regions := ScanSkipRegions(src)

	var includes []Include
	pos := 0
	for pos < len(src) {
		loc := includePattern.FindSubmatchIndex(src[pos:])
		if loc == nil {
			break
		}

		inc := includeFromMatch(src, pos, loc)
		if insideAny(regions, inc.Start) {
			pos = inc.Start + 1
			continue
		}

		includes = append(includes, inc)
		pos = inc.End
	}

	return includes
}

func includeFromMatch(src []byte, base int, loc []int) Include {
	inc := Include{
		Start: base + loc[0],
		End:   base + loc[1],
	}
	inc.Text = string(src[inc.Start:inc.End])

	if loc[2] >= 0 {
		inc.Kind = IncludeLocal
		inc.Path = string(src[base+loc[2] : base+loc[3]])
	} else {
		inc.Kind = IncludeSystem
		inc.Path = string(src[base+loc[4] : base+loc[5]])
	}
	return inc
}
