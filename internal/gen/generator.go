package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yhlin/leetcoder/internal/logging"
	"github.com/yhlin/leetcoder/internal/models"
)

// slugPlaceholder substitutes for an empty or unknown slug so Filename
// never produces a malformed name.
const slugPlaceholder = "unknown"

// Generator renders solution stub files into a target directory.
type Generator struct {
	dir  string
	lang Language
	log  *logrus.Logger
}

// New creates a Generator writing stubs for lang into dir, creating dir
// if needed.
func New(dir string, lang Language) (*Generator, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create solutions directory: %w", err)
	}
	return &Generator{dir: dir, lang: lang, log: logging.Get()}, nil
}

// Dir returns the directory stub files are written to.
func (g *Generator) Dir() string {
	return g.dir
}

// Filename builds the canonical stub filename for a problem:
// p{zero-padded id}_{slug with hyphens replaced by underscores}{ext}.
// IDs are padded to at least 4 digits and widen beyond that as needed.
func (g *Generator) Filename(id int, slug string) string {
	if slug == "" {
		slug = slugPlaceholder
	}
	cleanSlug := strings.ReplaceAll(slug, "-", "_")
	return fmt.Sprintf("p%04d_%s%s", id, cleanSlug, g.lang.Ext)
}

// Render composes the full stub file text for a problem. It is
// deterministic: identical records yield byte-identical output. Signature
// extraction and markup conversion degrade to defaults rather than fail.
func (g *Generator) Render(p *models.Problem) string {
	description := HTMLToText(p.Content)
	if description == NoDescription {
		g.log.WithFields(logrus.Fields{"id": p.ID, "slug": p.Slug}).
			Warn("problem has no usable description; using sentinel")
	}

	sig := g.lang.ExtractSignature(p.CodeSnippet)
	if sig.Fallback {
		g.log.WithFields(logrus.Fields{"id": p.ID, "slug": p.Slug}).
			Warn("no function definition found in snippet; using fallback signature")
	}

	imports := g.lang.ExtractImports(p.CodeSnippet)

	var body string
	switch g.lang.Name {
	case "go":
		body = renderGo(p, description, sig, imports, g.lang.defaultImport)
	default:
		body = renderPython(p, description, sig, imports, g.lang.defaultImport)
	}
	return normalize(body)
}

// GenerateFile renders and writes the stub file for a problem. When the
// target file already exists it is left untouched and the existing path
// is returned with created=false.
func (g *Generator) GenerateFile(p *models.Problem) (path string, created bool, err error) {
	filename := g.Filename(p.ID, p.Slug)
	path = filepath.Join(g.dir, filename)

	if _, err := os.Stat(path); err == nil {
		g.log.WithField("filename", filename).Info("stub file already exists, skipping")
		return path, false, nil
	} else if !os.IsNotExist(err) {
		return "", false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	content := g.Render(p)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, true, nil
}

func renderPython(p *models.Problem, description string, sig Signature, imports []string, defaultImport string) string {
	importsSection := defaultImport
	if len(imports) > 0 {
		importsSection = strings.Join(imports, "\n")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\"\"\"\nLeetCode %d. %s\n\n", p.ID, p.Title)
	fmt.Fprintf(&b, "Difficulty: %s\nTags: %s\n\n", p.Difficulty, strings.Join(p.Tags, ", "))
	fmt.Fprintf(&b, "%s\n\n", description)
	fmt.Fprintf(&b, "Link: %s\n\"\"\"\n\n", p.URL)
	fmt.Fprintf(&b, "%s\n\n\n", importsSection)
	fmt.Fprintf(&b, "class Solution:\n")
	fmt.Fprintf(&b, "    \"\"\"Solution for %s.\"\"\"\n\n", p.Title)
	fmt.Fprintf(&b, "    %s:\n", sig.Header)
	b.WriteString(`        """
        TODO: Add solution description

        Args:
            TODO: Describe parameters

        Returns:
            TODO: Describe return value

        Time Complexity: O(?)
        Space Complexity: O(?)
        """
        pass


if __name__ == "__main__":
    # Test cases
    sol = Solution()

    # TODO: Add test cases
    # Example:
`)
	fmt.Fprintf(&b, "    # result = sol.%s(...)\n", sig.Name)
	b.WriteString(`    # assert result == expected

    print("Add your test cases above")
`)
	return b.String()
}

func renderGo(p *models.Problem, description string, sig Signature, imports []string, defaultImport string) string {
	importsSection := defaultImport
	if len(imports) > 0 {
		importsSection = strings.Join(imports, "\n")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "// LeetCode %d. %s\n//\n", p.ID, p.Title)
	fmt.Fprintf(&b, "// Difficulty: %s\n// Tags: %s\n//\n", p.Difficulty, strings.Join(p.Tags, ", "))
	for _, line := range strings.Split(description, "\n") {
		if line == "" {
			b.WriteString("//\n")
		} else {
			fmt.Fprintf(&b, "// %s\n", line)
		}
	}
	fmt.Fprintf(&b, "//\n// Link: %s\n\n", p.URL)
	b.WriteString("package main\n\n")
	fmt.Fprintf(&b, "%s\n\n", importsSection)
	b.WriteString("// TODO: describe the approach.\n//\n// Time Complexity: O(?)\n// Space Complexity: O(?)\n")
	fmt.Fprintf(&b, "%s {\n", sig.Header)
	b.WriteString("\tpanic(\"not implemented\")\n}\n\n")
	b.WriteString("func main() {\n")
	b.WriteString("\t// TODO: add test cases\n")
	b.WriteString("\t// Example:\n")
	fmt.Fprintf(&b, "\t//   result := %s(...)\n", sig.Name)
	b.WriteString("\t//   if result != expected { panic(\"unexpected result\") }\n")
	b.WriteString("\tfmt.Println(\"add your test cases above\")\n}\n")
	return b.String()
}

// normalize strips trailing whitespace from every line and guarantees
// \n line endings with exactly one trailing newline.
func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
}
