// Package knowledge classifies condensed document content into semantic
// categories (topic, fact, definition, step, summary) and aggregates it
// per document for the section mapper. Two fallback tiers guarantee the
// aggregate is never fully empty for a document that has a title.
package knowledge

import (
	"strings"

	"github.com/dgallion1/pagegen/internal/condenser"
	"github.com/dgallion1/pagegen/internal/docmodel"
)

// Config holds the extractor's tunable bounds.
type Config struct {
	MinTableCell  int // table cells shorter than this are ignored
	MaxTableCell  int // table cells longer than this are ignored
	MaxSummaryLen int // summaries are bounded to this many chars
	MinSummarySrc int // first sentences shorter than this fall back to raw text
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MinTableCell:  10,
		MaxTableCell:  200,
		MaxSummaryLen: 200,
		MinSummarySrc: 20,
	}
}

// Extract builds the knowledge aggregate for one document.
//
// Per section, the heading joins the topics and every list item and
// paragraph text is classified; table headers join the topics and
// mid-sized cells join the facts. A section's combined text is also kept
// verbatim under its heading for related-content lookups. If the primary
// pass yields no topics, facts, or summaries, tier 1 re-scans the raw
// section text; tier 2 synthesizes from document metadata alone.
func Extract(doc docmodel.DocumentContent, cfg Config) docmodel.ExtractedKnowledge {
	cfg = withDefaults(cfg)

	var k docmodel.ExtractedKnowledge
	topics := newOrderedSet()

	for _, sec := range doc.Content {
		// Synthesized placeholder sections with no content contribute no
		// topic; a titled-but-empty document must reach the metadata tier.
		if sec.Heading != "" && len(sec.Blocks) > 0 {
			topics.add(sec.Heading)
		}

		var related []string
		for _, block := range sec.Blocks {
			switch block.Kind {
			case docmodel.BlockHeading:
				// Nested headings are navigation, not knowledge.
			case docmodel.BlockList:
				for _, item := range block.Items {
					classifyFragment(item, true, cfg, &k)
					related = append(related, item)
				}
			case docmodel.BlockParagraph:
				classifyFragment(block.Text, false, cfg, &k)
				related = append(related, block.Text)
			case docmodel.BlockTable:
				for _, h := range block.Headers {
					if h != "" {
						topics.add(h)
					}
				}
				for _, row := range block.Rows {
					for _, cell := range row {
						if len(cell) >= cfg.MinTableCell && len(cell) <= cfg.MaxTableCell {
							k.Facts = append(k.Facts, cell)
						}
					}
				}
			}
		}
		if len(related) > 0 {
			k.Related = append(k.Related, docmodel.RelatedContent{
				Topic:   sec.Heading,
				Content: related,
			})
		}
	}
	k.Topics = topics.values

	if len(k.Topics) == 0 && len(k.Facts) == 0 && len(k.Summaries) == 0 {
		rescanSections(doc, cfg, &k)
	}
	if len(k.Topics) == 0 && len(k.Facts) == 0 && len(k.Summaries) == 0 {
		synthesizeFromMeta(doc, cfg, &k)
	}
	return k
}

// classifyFragment routes one fragment into its category bucket. Unmatched
// list items default to facts; unmatched paragraph text becomes a bounded
// summary.
func classifyFragment(text string, fromList bool, cfg Config, k *docmodel.ExtractedKnowledge) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if cat, ok := Classify(text); ok {
		switch cat {
		case docmodel.CategoryDefinition:
			k.Definitions = append(k.Definitions, text)
		case docmodel.CategoryStep:
			k.Steps = append(k.Steps, text)
		case docmodel.CategoryFact:
			k.Facts = append(k.Facts, text)
		}
		return
	}
	if fromList {
		k.Facts = append(k.Facts, text)
		return
	}
	k.Summaries = append(k.Summaries, summarize(text, cfg))
}

// summarize bounds paragraph-origin text, preferring its first sentence.
func summarize(text string, cfg Config) string {
	sentences := condenser.SplitSentences(text, 0)
	if len(sentences) > 0 && len(sentences[0]) >= cfg.MinSummarySrc {
		text = sentences[0]
	}
	return docmodel.TruncateEllipsis(text, cfg.MaxSummaryLen)
}

// rescanSections is fallback tier 1: a coarser pass over the same source,
// without classification. Paragraph text feeds summaries, list items feed
// facts.
func rescanSections(doc docmodel.DocumentContent, cfg Config, k *docmodel.ExtractedKnowledge) {
	for _, sec := range doc.Content {
		for _, block := range sec.Blocks {
			switch block.Kind {
			case docmodel.BlockParagraph:
				k.Summaries = append(k.Summaries, summarize(block.Text, cfg))
			case docmodel.BlockList:
				k.Facts = append(k.Facts, block.Items...)
			case docmodel.BlockHeading, docmodel.BlockTable:
				// Covered by the primary pass; nothing coarser to take.
			}
		}
	}
}

// synthesizeFromMeta is fallback tier 2, the absolute floor: document
// metadata alone. Guarantees a non-empty aggregate whenever the document
// has a title.
func synthesizeFromMeta(doc docmodel.DocumentContent, cfg Config, k *docmodel.ExtractedKnowledge) {
	title := strings.TrimSpace(doc.Document.Title)
	if title != "" {
		k.Topics = append(k.Topics, title)
		k.Summaries = append(k.Summaries, docmodel.TruncateEllipsis("Document: "+title, cfg.MaxSummaryLen))
	}
	if sub := strings.TrimSpace(doc.Document.Subtitle); sub != "" {
		k.Summaries = append(k.Summaries, docmodel.TruncateEllipsis(sub, cfg.MaxSummaryLen))
	}
	for _, sec := range doc.Content {
		for _, block := range sec.Blocks {
			if block.Kind == docmodel.BlockParagraph {
				k.Summaries = append(k.Summaries, summarize(block.Text, cfg))
			}
		}
	}
}

type orderedSet struct {
	seen   map[string]bool
	values []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: map[string]bool{}}
}

func (s *orderedSet) add(v string) {
	v = strings.TrimSpace(v)
	if v == "" || s.seen[v] {
		return
	}
	s.seen[v] = true
	s.values = append(s.values, v)
}

func withDefaults(cfg Config) Config {
	def := DefaultConfig()
	if cfg.MinTableCell <= 0 {
		cfg.MinTableCell = def.MinTableCell
	}
	if cfg.MaxTableCell <= 0 {
		cfg.MaxTableCell = def.MaxTableCell
	}
	if cfg.MaxSummaryLen <= 0 {
		cfg.MaxSummaryLen = def.MaxSummaryLen
	}
	if cfg.MinSummarySrc <= 0 {
		cfg.MinSummarySrc = def.MinSummarySrc
	}
	return cfg
}
