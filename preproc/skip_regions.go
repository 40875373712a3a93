package preproc

import (
	"bytes"
	"sort"
)

// RegionKind identifies the lexical construct a SkipRegion covers.
type RegionKind int

const (
	RegionString RegionKind = iota
	RegionRawString
	RegionChar
	RegionLineComment
	RegionBlockComment
)

func (k RegionKind) String() string {
	switch k {
	case RegionString:
		return "string"
	case RegionRawString:
		return "raw string"
	case RegionChar:
		return "char"
	case RegionLineComment:
		return "line comment"
	case RegionBlockComment:
		return "block comment"
	default:
		return "unknown"
	}
}

// SkipRegion is the half-open byte span [Start, End) of a string literal,
// character literal or comment. Directive-like text inside it is not code.
type SkipRegion struct {
	Kind  RegionKind
	Start int
	End   int
}

// Contains reports whether offset lies strictly inside the region.
func (r SkipRegion) Contains(offset int) bool {
	return offset > r.Start && offset < r.End
}

// rawStringPrefixes are the encoding prefixes that turn "..." into a C++ raw string.
var rawStringPrefixes = map[string]bool{
	"R":   true,
	"LR":  true,
	"uR":  true,
	"UR":  true,
	"u8R": true,
}

// maxRawDelimiter is the longest d-char-sequence C++ allows in R"delim(...)delim".
const maxRawDelimiter = 16

// ScanSkipRegions walks src once, left to right, and returns every string
// literal, character literal and comment span in source order. Regions never
// overlap.
//
// A block or line comment left open at end of input runs to the end. An
// unterminated string or character literal is not recorded; scanning resumes
// right after its opening quote.
func ScanSkipRegions(src []byte) []SkipRegion {
	s := &regionScanner{src: src}
	s.scan()
	return s.regions
}

type regionScanner struct {
	src     []byte
	regions []SkipRegion
}

func (s *regionScanner) scan() {
	n := len(s.src)
	i := 0
	for i < n {
		switch c := s.src[i]; {
		case c == '/' && i+1 < n && s.src[i+1] == '/':
			i = s.lineComment(i)
		case c == '/' && i+1 < n && s.src[i+1] == '*':
			i = s.blockComment(i)
		case c == '"':
			if start, ok := s.rawStringStart(i); ok {
				i = s.rawString(start, i)
			} else {
				i = s.stringLiteral(i)
			}
		case c == '\'':
			if s.isDigitSeparator(i) {
				i++
			} else {
				i = s.charLiteral(i)
			}
		default:
			i++
		}
	}
}

func (s *regionScanner) record(kind RegionKind, start, end int) int {
	s.regions = append(s.regions, SkipRegion{Kind: kind, Start: start, End: end})
	return end
}

// lineComment ends after the first newline that is not spliced by a backslash.
func (s *regionScanner) lineComment(start int) int {
	n := len(s.src)
	for j := start + 2; j < n; j++ {
		if s.src[j] != '\n' {
			continue
		}
		if !s.splicedNewline(j) {
			return s.record(RegionLineComment, start, j+1)
		}
	}
	return s.record(RegionLineComment, start, n)
}

func (s *regionScanner) splicedNewline(nl int) bool {
	k := nl - 1
	if k >= 0 && s.src[k] == '\r' {
		k--
	}
	return k >= 0 && s.src[k] == '\\'
}

func (s *regionScanner) blockComment(start int) int {
	idx := bytes.Index(s.src[start+2:], []byte("*/"))
	if idx < 0 {
		return s.record(RegionBlockComment, start, len(s.src))
	}
	return s.record(RegionBlockComment, start, start+2+idx+2)
}

// stringLiteral may span lines; a backslash escapes the byte after it.
func (s *regionScanner) stringLiteral(quote int) int {
	n := len(s.src)
	for j := quote + 1; j < n; j++ {
		switch s.src[j] {
		case '\\':
			j++
		case '"':
			return s.record(RegionString, quote, j+1)
		}
	}
	return quote + 1
}

// charLiteral cannot span lines; it is abandoned at an unescaped newline.
func (s *regionScanner) charLiteral(quote int) int {
	n := len(s.src)
	for j := quote + 1; j < n; j++ {
		switch s.src[j] {
		case '\\':
			j++
		case '\'':
			return s.record(RegionChar, quote, j+1)
		case '\n':
			return quote + 1
		}
	}
	return quote + 1
}

// rawStringStart reports whether the quote at i opens a raw string and, if so,
// where its encoding prefix begins.
func (s *regionScanner) rawStringStart(quote int) (int, bool) {
	start := s.tokenStart(quote, isIdentByte)
	if start == quote {
		return 0, false
	}
	return start, rawStringPrefixes[string(s.src[start:quote])]
}

func (s *regionScanner) rawString(start, quote int) int {
	open := bytes.IndexByte(s.src[quote+1:], '(')
	if open < 0 || open > maxRawDelimiter {
		return s.stringLiteral(quote)
	}
	delim := s.src[quote+1 : quote+1+open]
	if bytes.ContainsAny(delim, " \t\n\\)\"") {
		return s.stringLiteral(quote)
	}

	bodyStart := quote + 1 + open + 1
	terminator := make([]byte, 0, len(delim)+2)
	terminator = append(terminator, ')')
	terminator = append(terminator, delim...)
	terminator = append(terminator, '"')

	idx := bytes.Index(s.src[bodyStart:], terminator)
	if idx < 0 {
		return quote + 1
	}
	return s.record(RegionRawString, start, bodyStart+idx+len(terminator))
}

// isDigitSeparator reports whether the quote at i sits inside a pp-number,
// as in 1'000'000 or 0xFF'FF.
func (s *regionScanner) isDigitSeparator(quote int) bool {
	start := s.tokenStart(quote, func(c byte) bool {
		return isIdentByte(c) || c == '.' || c == '\''
	})
	if start == quote {
		return false
	}
	first := s.src[start]
	if isDigit(first) {
		return true
	}
	return first == '.' && start+1 < quote && isDigit(s.src[start+1])
}

func (s *regionScanner) tokenStart(end int, member func(byte) bool) int {
	start := end
	for start > 0 && member(s.src[start-1]) {
		start--
	}
	return start
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentByte(c byte) bool {
	return c == '_' || isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// insideAny reports whether offset lies strictly inside one of regions, which
// must be sorted by Start and non-overlapping.
func insideAny(regions []SkipRegion, offset int) bool {
	i := sort.Search(len(regions), func(i int) bool {
		return regions[i].Start >= offset
	})
	return i > 0 && regions[i-1].Contains(offset)
}
