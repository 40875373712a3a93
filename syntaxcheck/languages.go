package syntaxcheck

import (
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
)

// Language is a grammar the amalgamation can be checked against.
type Language struct {
	// ID is the value accepted by --language.
	ID         string
	Name       string
	Extensions []string
	grammar    func() *sitter.Language
}

var (
	LanguageC = Language{
		ID:         "c",
		Name:       "C",
		Extensions: []string{".c", ".h"},
		grammar:    c.GetLanguage,
	}
	LanguageCPP = Language{
		ID:         "cpp",
		Name:       "C++",
		Extensions: []string{".cc", ".cpp", ".cxx", ".c++", ".hh", ".hpp", ".hxx", ".h++", ".inl", ".ipp"},
		grammar:    cpp.GetLanguage,
	}
)

var languageRegistry = []Language{LanguageC, LanguageCPP}

// SupportedLanguages returns a copy of the languages that can be checked.
func SupportedLanguages() []Language {
	languages := make([]Language, len(languageRegistry))
	for i, language := range languageRegistry {
		language.Extensions = append([]string(nil), language.Extensions...)
		languages[i] = language
	}
	return languages
}

// LanguageByID looks up a language by its --language value.
func LanguageByID(id string) (Language, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "c++" {
		id = LanguageCPP.ID
	}
	for _, language := range languageRegistry {
		if language.ID == id {
			return language, true
		}
	}
	return Language{}, false
}

// LanguageForPath picks the grammar for a target file from its extension.
// C is used for .c and .h files, C++ for everything else.
func LanguageForPath(path string) Language {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range LanguageC.Extensions {
		if ext == e {
			return LanguageC
		}
	}
	return LanguageCPP
}
