package source

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/pagegen/internal/docmodel"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownSource handles Markdown files using goldmark.
type MarkdownSource struct{}

func (s *MarkdownSource) Extract(r io.Reader, filename string) (docmodel.RawText, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return docmodel.RawText{}, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var out strings.Builder
	writeLine := func(line string) {
		if line == "" {
			return
		}
		if out.Len() > 0 {
			out.WriteString("\n\n")
		}
		out.WriteString(line)
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := string(node.Text(src))
			if title != "" {
				writeLine(HeadingMarker(node.Level, title))
			}
		case *ast.List:
			var items []string
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				t := extractText(item, src)
				if t != "" {
					// Nested list content collapses into the item line.
					items = append(items, "- "+strings.Join(strings.Fields(t), " "))
				}
			}
			if len(items) > 0 {
				writeLine(strings.Join(items, "\n"))
			}
		default:
			t := extractText(n, src)
			if t != "" {
				writeLine(t)
			}
		}
	}

	return docmodel.RawText{Text: out.String()}, nil
}

// extractText gets the text content of a goldmark AST node.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	// Also handle inline children.
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			// Recurse for nested blocks and inlines.
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
