// Package extractor turns marker-annotated raw text into an ordered
// sequence of typed document sections. Explicit #HEADINGn# markers win;
// without them, heading levels are inferred from an ordered heuristic
// rule table.
package extractor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dgallion1/pagegen/internal/docmodel"
)

// Config holds the extractor's tunable thresholds. The defaults are
// best-effort heuristics, not known-correct values.
type Config struct {
	MaxHeadingLine int // lines at or above this length are never headings
	MaxListItemLen int // raw list items are truncated to this many chars
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxHeadingLine: 80,
		MaxListItemLen: 120,
	}
}

// Section titles synthesized when content precedes any heading.
const (
	introTitle    = "Introduction"
	untitledTitle = "Document Content"
)

var markerRe = regexp.MustCompile(`^#HEADING([1-3])#\s*(.*)$`)

type lineClass int

const (
	classBlank lineClass = iota
	classHeading
	classList
	classTable
	classProse
)

type classifiedLine struct {
	class lineClass
	level int      // heading lines
	text  string   // heading text, list item, or raw prose line
	cells []string // table rows
}

// Extract converts raw text into document sections. Only level-1 headings
// start new sections; level-2/3 headings become nested heading blocks. An
// empty document yields exactly one section with no blocks.
func Extract(raw docmodel.RawText, cfg Config) []docmodel.DocumentSection {
	if cfg.MaxHeadingLine <= 0 {
		cfg.MaxHeadingLine = 80
	}
	if cfg.MaxListItemLen <= 0 {
		cfg.MaxListItemLen = 120
	}

	lines := classifyLines(raw.Text, cfg)

	hasLevel1 := false
	for _, ln := range lines {
		if ln.class == classHeading && ln.level == 1 {
			hasLevel1 = true
			break
		}
	}

	b := &builder{cfg: cfg, hasLevel1: hasLevel1, slugSeen: map[string]int{}}
	for _, ln := range lines {
		switch ln.class {
		case classBlank:
			b.flushAll()
		case classHeading:
			b.flushAll()
			if ln.level == 1 {
				b.startSection(ln.text)
			} else {
				b.appendHeading(ln.text, ln.level)
			}
		case classList:
			b.flushPara()
			b.flushTable()
			b.listItems = append(b.listItems, docmodel.Truncate(ln.text, cfg.MaxListItemLen))
		case classTable:
			b.flushPara()
			b.flushList()
			b.tableRows = append(b.tableRows, ln.cells)
		case classProse:
			b.flushList()
			b.flushTable()
			b.paraLines = append(b.paraLines, ln.text)
		}
	}
	b.flushAll()

	if len(b.sections) == 0 {
		// Empty document: one section, no blocks, never a nil sequence.
		b.startSection(untitledTitle)
	}
	return b.sections
}

// classifyLines tags every line of the input. When explicit markers are
// present anywhere, heuristic heading detection is disabled: the markers
// are authoritative for the whole document.
func classifyLines(text string, cfg Config) []classifiedLine {
	hasMarkers := strings.Contains(text, "#HEADING")
	rules := headingRules(cfg)

	var out []classifiedLine
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			out = append(out, classifiedLine{class: classBlank})
			continue
		}
		if m := markerRe.FindStringSubmatch(line); m != nil {
			title := strings.TrimSpace(m[2])
			if title == "" {
				out = append(out, classifiedLine{class: classBlank})
				continue
			}
			level := int(m[1][0] - '0')
			out = append(out, classifiedLine{class: classHeading, level: level, text: title})
			continue
		}
		if item, ok := listItem(line); ok {
			out = append(out, classifiedLine{class: classList, text: item})
			continue
		}
		if isTableSeparator(line) {
			// |---|---| divider rows carry no content and must not break
			// the run of table rows around them.
			continue
		}
		if cells, ok := pipeCells(line); ok {
			out = append(out, classifiedLine{class: classTable, cells: cells})
			continue
		}
		if !hasMarkers {
			if level := matchHeading(line, rules); level > 0 {
				out = append(out, classifiedLine{class: classHeading, level: level, text: line})
				continue
			}
		}
		out = append(out, classifiedLine{class: classProse, text: line})
	}
	return out
}

// listItem recognizes "- item", "* item" and "• item" lines.
func listItem(line string) (string, bool) {
	for _, prefix := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(line, prefix) {
			item := strings.TrimSpace(strings.TrimPrefix(line, prefix))
			if item != "" {
				return item, true
			}
			return "", false
		}
	}
	return "", false
}

// isTableSeparator matches markdown |---|:---:| divider rows.
func isTableSeparator(line string) bool {
	cells, ok := pipeCells(line)
	if !ok {
		return false
	}
	for _, c := range cells {
		if strings.Trim(c, "-: ") != "" {
			return false
		}
	}
	return true
}

func pipeCells(line string) ([]string, bool) {
	if len(line) < 3 || line[0] != '|' || line[len(line)-1] != '|' {
		return nil, false
	}
	inner := line[1 : len(line)-1]
	if !strings.Contains(inner, "|") {
		return nil, false
	}
	cells := strings.Split(inner, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells, true
}

// builder accumulates blocks into sections as lines stream through.
type builder struct {
	cfg       Config
	hasLevel1 bool

	sections []docmodel.DocumentSection
	slugSeen map[string]int

	paraLines []string
	listItems []string
	tableRows [][]string
}

func (b *builder) startSection(heading string) {
	heading = strings.TrimSpace(heading)
	slug := docmodel.Slugify(heading)
	if slug == "" {
		slug = "section"
	}
	b.slugSeen[slug]++
	if n := b.slugSeen[slug]; n > 1 {
		slug = fmt.Sprintf("%s-%d", slug, n)
	}
	b.sections = append(b.sections, docmodel.DocumentSection{
		ID:      slug,
		Heading: heading,
		Level:   1,
	})
}

// current returns the section under construction, synthesizing a host
// section when content appears before any heading.
func (b *builder) current() *docmodel.DocumentSection {
	if len(b.sections) == 0 {
		if b.hasLevel1 {
			b.startSection(introTitle)
		} else {
			b.startSection(untitledTitle)
		}
	}
	return &b.sections[len(b.sections)-1]
}

func (b *builder) appendBlock(block docmodel.ContentBlock) {
	sec := b.current()
	sec.Blocks = append(sec.Blocks, block)
}

func (b *builder) appendHeading(text string, level int) {
	if block, ok := docmodel.Heading(text, level); ok {
		b.appendBlock(block)
	}
}

func (b *builder) flushPara() {
	if len(b.paraLines) == 0 {
		return
	}
	text := strings.Join(b.paraLines, " ")
	b.paraLines = nil
	if block, ok := docmodel.Paragraph(text); ok {
		b.appendBlock(block)
	}
}

func (b *builder) flushList() {
	if len(b.listItems) == 0 {
		return
	}
	items := b.listItems
	b.listItems = nil
	if block, ok := docmodel.List(items); ok {
		b.appendBlock(block)
	}
}

func (b *builder) flushTable() {
	if len(b.tableRows) == 0 {
		return
	}
	rows := b.tableRows
	b.tableRows = nil
	headers := rows[0]
	if block, ok := docmodel.Table(headers, rows[1:]); ok {
		b.appendBlock(block)
	}
}

func (b *builder) flushAll() {
	b.flushPara()
	b.flushList()
	b.flushTable()
}
