// Package mapper projects extracted knowledge onto the enabled UI
// sections. Each section pulls from a priority-ordered preference table of
// knowledge categories; a multi-tier fallback cascade guarantees every
// enabled section receives non-empty content.
package mapper

import (
	"errors"

	"github.com/dgallion1/pagegen/internal/docmodel"
)

// ErrEmptyKnowledge is returned when the knowledge aggregate is entirely
// empty. Upstream guarantees make this unreachable for any document with a
// title; failing loudly beats silently emitting an empty section.
var ErrEmptyKnowledge = errors.New("extracted knowledge is entirely empty")

// Config holds the mapper's bounds.
type Config struct {
	MinFragment  int // fragments at or under this length are discarded
	MaxItems     int // content items kept per section
	MaxItemLen   int // items are truncated to this many chars
	FallbackTake int // items drawn per cascade tier
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MinFragment:  10,
		MaxItems:     8,
		MaxItemLen:   120,
		FallbackTake: 3,
	}
}

// preferences is the fixed category-to-section affinity table. Order
// within each list is priority order; it is configuration, not computed.
var preferences = map[docmodel.SectionKey][]docmodel.Category{
	docmodel.SectionAbout:            {docmodel.CategorySummary, docmodel.CategoryTopic, docmodel.CategoryFact},
	docmodel.SectionExecutiveSummary: {docmodel.CategorySummary, docmodel.CategoryFact, docmodel.CategoryTopic},
	docmodel.SectionKeyFindings:      {docmodel.CategoryFact, docmodel.CategorySummary},
	docmodel.SectionProcess:          {docmodel.CategoryStep, docmodel.CategoryDefinition, docmodel.CategorySummary},
	docmodel.SectionFAQs:             {docmodel.CategoryDefinition, docmodel.CategoryFact},
	docmodel.SectionGlossary:         {docmodel.CategoryDefinition, docmodel.CategoryTopic},
	docmodel.SectionHighlights:       {docmodel.CategoryFact, docmodel.CategoryTopic, docmodel.CategorySummary},
	docmodel.SectionTopics:           {docmodel.CategoryTopic, docmodel.CategorySummary},
}

// MapContent builds one MappedSectionContent per enabled UI section, in
// canonical section order. It is a pure function: identical inputs produce
// identical outputs.
func MapContent(k docmodel.ExtractedKnowledge, enabled docmodel.EnabledSections, cfg Config) ([]docmodel.MappedSectionContent, error) {
	cfg = withDefaults(cfg)

	if k.Empty() {
		return nil, ErrEmptyKnowledge
	}

	var out []docmodel.MappedSectionContent
	for _, key := range docmodel.SectionOrder {
		if !enabled[key] {
			continue
		}
		items := preferred(k, key, cfg)
		if len(items) == 0 {
			items = cascade(k, cfg)
		}
		out = append(out, docmodel.MappedSectionContent{
			Key:     key,
			Title:   docmodel.SectionTitle(key),
			Content: items,
		})
	}
	return out, nil
}

// preferred concatenates the section's preferred categories in table
// order, discards short fragments, bounds item length, de-duplicates on the
// bounded value (distinct fragments sharing a long prefix collapse to one
// item once truncated), and caps the item count.
func preferred(k docmodel.ExtractedKnowledge, key docmodel.SectionKey, cfg Config) []string {
	seen := map[string]bool{}
	var items []string
	for _, cat := range preferences[key] {
		for _, raw := range k.ByCategory(cat) {
			if len(items) >= cfg.MaxItems {
				return items
			}
			if len(raw) <= cfg.MinFragment {
				continue
			}
			item := docmodel.TruncateEllipsis(raw, cfg.MaxItemLen)
			if seen[item] {
				continue
			}
			seen[item] = true
			items = append(items, item)
		}
	}
	return items
}

// cascade is the section-independent fallback, tried when a section's
// preference list yields nothing: increasingly generic sources drawn from
// whatever knowledge exists globally.
func cascade(k docmodel.ExtractedKnowledge, cfg Config) []string {
	if items := take(k.Summaries, cfg); len(items) > 0 {
		return items
	}
	if items := take(k.Facts, cfg); len(items) > 0 {
		return items
	}
	if len(k.Topics) > 0 {
		reworded := make([]string, 0, cfg.FallbackTake)
		for _, t := range k.Topics {
			if len(reworded) >= cfg.FallbackTake {
				break
			}
			reworded = append(reworded, docmodel.TruncateEllipsis("Key topic: "+t, cfg.MaxItemLen))
		}
		return reworded
	}
	if items := take(k.Definitions, cfg); len(items) > 0 {
		return items
	}
	// Steps are the last resort; a non-empty aggregate always lands
	// somewhere in this chain.
	return take(k.Steps, cfg)
}

func take(items []string, cfg Config) []string {
	out := make([]string, 0, cfg.FallbackTake)
	for _, item := range items {
		if len(out) >= cfg.FallbackTake {
			break
		}
		out = append(out, docmodel.TruncateEllipsis(item, cfg.MaxItemLen))
	}
	return out
}

func withDefaults(cfg Config) Config {
	def := DefaultConfig()
	if cfg.MinFragment <= 0 {
		cfg.MinFragment = def.MinFragment
	}
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = def.MaxItems
	}
	if cfg.MaxItemLen <= 0 {
		cfg.MaxItemLen = def.MaxItemLen
	}
	if cfg.FallbackTake <= 0 {
		cfg.FallbackTake = def.FallbackTake
	}
	return cfg
}
