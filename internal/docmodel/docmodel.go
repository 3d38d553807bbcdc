// Package docmodel holds the data types shared by the content pipeline
// stages. Every stage consumes one of these types and produces the next;
// none of them are shared-mutable across stage boundaries.
package docmodel

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// RawText is the output of a structure source: extracted document text with
// optional #HEADINGn# level markers, plus any partial-parse warnings.
// It is ephemeral — produced fresh per parse, never persisted.
type RawText struct {
	Text     string
	Warnings []string
}

// BlockKind tags a ContentBlock variant.
type BlockKind string

const (
	BlockHeading   BlockKind = "heading"
	BlockParagraph BlockKind = "paragraph"
	BlockList      BlockKind = "list"
	BlockTable     BlockKind = "table"
)

// MaxTableRows bounds table size for display density.
const MaxTableRows = 5

// ContentBlock is a tagged union over the four block variants. Which fields
// are meaningful depends on Kind:
//
//	BlockHeading:   Text, Level (1..3)
//	BlockParagraph: Text
//	BlockList:      Items
//	BlockTable:     Headers, Rows
//
// Construct blocks through Heading/Paragraph/List/Table so that empty
// fragments are dropped at construction time, never stored. Consumers must
// switch over Kind exhaustively.
type ContentBlock struct {
	Kind    BlockKind  `json:"kind"`
	Text    string     `json:"text,omitempty"`
	Level   int        `json:"level,omitempty"`
	Items   []string   `json:"items,omitempty"`
	Headers []string   `json:"headers,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`
}

// Heading builds a heading block. Levels outside 1..3 are clamped.
// Returns false if the text is empty after trimming.
func Heading(text string, level int) (ContentBlock, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ContentBlock{}, false
	}
	if level < 1 {
		level = 1
	}
	if level > 3 {
		level = 3
	}
	return ContentBlock{Kind: BlockHeading, Text: text, Level: level}, true
}

// Paragraph builds a paragraph block. Returns false for empty text.
func Paragraph(text string) (ContentBlock, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ContentBlock{}, false
	}
	return ContentBlock{Kind: BlockParagraph, Text: text}, true
}

// List builds a list block, dropping items that are empty after trimming.
// Returns false if no items survive.
func List(items []string) (ContentBlock, bool) {
	kept := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it != "" {
			kept = append(kept, it)
		}
	}
	if len(kept) == 0 {
		return ContentBlock{}, false
	}
	return ContentBlock{Kind: BlockList, Items: kept}, true
}

// Table builds a table block bounded to MaxTableRows rows. Cells are kept
// as-is; rows that are entirely empty are dropped. Returns false if there
// are no headers and no rows.
func Table(headers []string, rows [][]string) (ContentBlock, bool) {
	trimmed := make([]string, 0, len(headers))
	for _, h := range headers {
		trimmed = append(trimmed, strings.TrimSpace(h))
	}
	kept := make([][]string, 0, len(rows))
	for _, row := range rows {
		if len(kept) >= MaxTableRows {
			break
		}
		empty := true
		cells := make([]string, 0, len(row))
		for _, c := range row {
			c = strings.TrimSpace(c)
			if c != "" {
				empty = false
			}
			cells = append(cells, c)
		}
		if !empty {
			kept = append(kept, cells)
		}
	}
	if len(trimmed) == 0 && len(kept) == 0 {
		return ContentBlock{}, false
	}
	return ContentBlock{Kind: BlockTable, Headers: trimmed, Rows: kept}, true
}

// DocumentSection is a level-1-heading-rooted grouping of content blocks.
// Block order is the only place document order survives condensation.
type DocumentSection struct {
	ID      string         `json:"id"`
	Heading string         `json:"heading"`
	Level   int            `json:"level"`
	Blocks  []ContentBlock `json:"blocks"`
}

// DocumentMeta is document-level metadata supplied at upload time or
// derived from the filename.
type DocumentMeta struct {
	Title           string   `json:"title"`
	Subtitle        string   `json:"subtitle,omitempty"`
	PublicationDate string   `json:"publication_date,omitempty"`
	Authors         []string `json:"authors,omitempty"`
	Collections     []string `json:"collections,omitempty"`
}

// DocumentContent is the top-level content model for one pipeline run.
type DocumentContent struct {
	Document DocumentMeta      `json:"document"`
	Content  []DocumentSection `json:"content"`
}

// Category is a semantic classification assigned to a text fragment by the
// knowledge extractor and consumed by the section mapper.
type Category string

const (
	CategoryTopic      Category = "topic"
	CategoryFact       Category = "fact"
	CategoryDefinition Category = "definition"
	CategoryStep       Category = "step"
	CategorySummary    Category = "summary"
)

// RelatedContent groups a section's verbatim text fragments under the
// section heading for later grouped-by-topic lookups.
type RelatedContent struct {
	Topic   string   `json:"topic"`
	Content []string `json:"content"`
}

// ExtractedKnowledge is the derived, ephemeral aggregate over all sections
// of one document. Built once, consumed once by the section mapper.
type ExtractedKnowledge struct {
	Topics      []string         `json:"topics"`
	Facts       []string         `json:"facts"`
	Definitions []string         `json:"definitions"`
	Steps       []string         `json:"steps"`
	Summaries   []string         `json:"summaries"`
	Related     []RelatedContent `json:"related_content"`
}

// Empty reports whether every classified category is empty. Related content
// does not count: it is a lookup index, not mappable content.
func (k ExtractedKnowledge) Empty() bool {
	return len(k.Topics) == 0 && len(k.Facts) == 0 && len(k.Definitions) == 0 &&
		len(k.Steps) == 0 && len(k.Summaries) == 0
}

// ByCategory returns the fragment list for a category.
func (k ExtractedKnowledge) ByCategory(c Category) []string {
	switch c {
	case CategoryTopic:
		return k.Topics
	case CategoryFact:
		return k.Facts
	case CategoryDefinition:
		return k.Definitions
	case CategoryStep:
		return k.Steps
	case CategorySummary:
		return k.Summaries
	}
	return nil
}

// MappedSectionContent is the final artifact for one enabled UI section.
// Content is never empty when the section is enabled.
type MappedSectionContent struct {
	Key      SectionKey `json:"section_key"`
	Title    string     `json:"title"`
	Content  []string   `json:"content"`
	Enriched bool       `json:"enriched"`
}

var (
	slugInvalidRe  = regexp.MustCompile(`[^a-z0-9-]`)
	slugCollapseRe = regexp.MustCompile(`-+`)
)

// Slugify converts a heading into a stable URL/ID-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugInvalidRe.ReplaceAllString(s, "-")
	s = slugCollapseRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 50 {
		s = s[:50]
	}
	return s
}

// Truncate cuts s at max bytes, never splitting a multibyte rune.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:runeCut(s, max)]
}

// TruncateEllipsis cuts s so the result, including the trailing ellipsis,
// never exceeds max bytes. The cut lands on a rune boundary.
func TruncateEllipsis(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:runeCut(s, max)]
	}
	return s[:runeCut(s, max-3)] + "..."
}

// runeCut backs a byte offset up to the nearest rune start.
func runeCut(s string, i int) int {
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}
