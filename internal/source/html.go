package source

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/pagegen/internal/docmodel"
	"golang.org/x/net/html"
)

// HTMLSource handles HTML files.
type HTMLSource struct{}

func (s *HTMLSource) Extract(r io.Reader, filename string) (docmodel.RawText, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return docmodel.RawText{}, &FormatError{Format: "html", Err: err}
	}

	var out strings.Builder
	var warnings []string

	writeLine := func(line string) {
		if line == "" {
			return
		}
		if out.Len() > 0 {
			out.WriteString("\n\n")
		}
		out.WriteString(line)
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				if t := textContent(n); t != "" {
					writeLine(HeadingMarker(level, t))
				}
				return
			}

			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "ul", "ol":
				var items []string
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					if c.Type == html.ElementNode && c.Data == "li" {
						if t := textContent(c); t != "" {
							items = append(items, "- "+strings.Join(strings.Fields(t), " "))
						}
					}
				}
				if len(items) > 0 {
					writeLine(strings.Join(items, "\n"))
				}
				return
			case "table":
				if rows := tableRows(n); len(rows) > 0 {
					writeLine(strings.Join(rows, "\n"))
				}
				return
			case "p", "blockquote":
				if t := textContent(n); t != "" {
					writeLine(t)
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	// Find <body> or use whole document.
	body := findBody(doc)
	if body != nil {
		walk(body)
	} else {
		warnings = append(warnings, "no <body> element found, scanning whole document")
		walk(doc)
	}

	return docmodel.RawText{Text: out.String(), Warnings: warnings}, nil
}

// tableRows flattens a <table> into pipe-delimited row lines.
func tableRows(table *html.Node) []string {
	var rows []string
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var cells []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					cells = append(cells, strings.Join(strings.Fields(textContent(c)), " "))
				}
			}
			if len(cells) > 0 {
				rows = append(rows, fmt.Sprintf("|%s|", strings.Join(cells, "|")))
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(table)
	return rows
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
