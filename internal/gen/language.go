// Package gen renders solution stub files from problem records.
package gen

import (
	"regexp"
	"strings"

	apperrors "github.com/yhlin/leetcoder/internal/errors"
)

// Signature is a callable extracted from a starter code snippet.
type Signature struct {
	// Name is the callable's identifier, e.g. "twoSum".
	Name string
	// Header is the full definition header without the block opener.
	Header string
	// Fallback is true when no definition was found in the snippet and
	// the language's default was substituted.
	Fallback bool
}

// Language describes a stub language profile: how to recognize a function
// definition and imports in a starter snippet, and what to emit when the
// snippet yields nothing usable.
type Language struct {
	// Name identifies the profile ("python3", "go").
	Name string
	// Ext is the conventional source file extension, with dot.
	Ext string
	// SnippetSlug is the remote catalog's language slug for snippets.
	SnippetSlug string

	defPattern     *regexp.Regexp
	blockOpener    string
	importPrefixes []string
	defaultImport  string
	fallbackName   string
	fallbackHeader string
}

var languages = map[string]Language{
	"python3": {
		Name:        "python3",
		Ext:         ".py",
		SnippetSlug: "python3",
		// def name(params) -> annotation:
		defPattern:     regexp.MustCompile(`def\s+(\w+)\s*\([^)]*\)\s*(?:->\s*[^:]+)?:`),
		blockOpener:    ":",
		importPrefixes: []string{"import ", "from "},
		defaultImport:  "from typing import List",
		fallbackName:   "solution",
		fallbackHeader: "def solution(self)",
	},
	"go": {
		Name:        "go",
		Ext:         ".go",
		SnippetSlug: "golang",
		// func (recv) name(params) results {
		defPattern:     regexp.MustCompile(`func\s+(?:\([^)]*\)\s*)?(\w+)\s*\([^)]*\)[^{]*\{`),
		blockOpener:    "{",
		importPrefixes: []string{"import "},
		defaultImport:  `import "fmt"`,
		fallbackName:   "solution",
		fallbackHeader: "func solution(input any) any",
	},
}

// LanguageByName returns the stub language profile for name.
func LanguageByName(name string) (Language, error) {
	lang, ok := languages[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Language{}, apperrors.Newf(apperrors.ErrInvalid, "unknown stub language %q", name)
	}
	return lang, nil
}

// ExtractSignature locates the first function or method definition header
// in a code snippet. When nothing matches it substitutes the profile's
// fallback so that stub generation never fails on an unparseable snippet.
func (l Language) ExtractSignature(snippet string) Signature {
	match := l.defPattern.FindStringSubmatch(snippet)
	if match == nil {
		return Signature{Name: l.fallbackName, Header: l.fallbackHeader, Fallback: true}
	}
	header := strings.TrimSpace(strings.TrimSuffix(match[0], l.blockOpener))
	return Signature{Name: match[1], Header: header}
}

// ExtractImports returns every snippet line whose trimmed text begins with
// one of the language's import keywords, in original order.
func (l Language) ExtractImports(snippet string) []string {
	var imports []string
	for _, line := range strings.Split(snippet, "\n") {
		line = strings.TrimSpace(line)
		for _, prefix := range l.importPrefixes {
			if strings.HasPrefix(line, prefix) {
				imports = append(imports, line)
				break
			}
		}
	}
	return imports
}
