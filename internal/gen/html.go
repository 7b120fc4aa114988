package gen

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NoDescription is emitted when a problem has no usable description markup.
const NoDescription = "No description available."

var excessBlankLines = regexp.MustCompile(`\n{3,}`)

// HTMLToText converts problem description markup into readable plain text.
// Paragraph and list structure is preserved, runs of three or more blank
// lines collapse to one, and trailing whitespace is trimmed per line and
// at both ends of the whole text.
func HTMLToText(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return NoDescription
	}

	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		// The tokenizer recovers from almost anything; a hard parse
		// failure leaves us with nothing better than the sentinel.
		return NoDescription
	}

	var b strings.Builder
	collectText(doc, &b)

	text := excessBlankLines.ReplaceAllString(b.String(), "\n\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	text = strings.TrimSpace(strings.Join(lines, "\n"))

	if text == "" {
		return NoDescription
	}
	return text
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Noscript:
			return
		case atom.P, atom.Ul, atom.Ol, atom.Pre:
			b.WriteString("\n")
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				collectText(c, b)
			}
			b.WriteString("\n")
			return
		case atom.Li:
			b.WriteString("\n- ")
		case atom.Br:
			b.WriteString("\n")
		}
	}

	if n.Type == html.TextNode && strings.TrimSpace(n.Data) != "" {
		b.WriteString(n.Data)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}
