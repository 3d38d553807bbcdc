// Package condenser converts paragraph blocks into bounded bullet lists.
// Paragraphs are categorically disallowed in final output: every prose
// fragment becomes a bullet so the presentation stays scannable regardless
// of template.
package condenser

import (
	"sort"
	"strings"

	"github.com/dgallion1/pagegen/internal/docmodel"
)

// Config controls condensation behavior. The weights and thresholds are
// tunable heuristics, reproduced as defaults for behavioral stability.
type Config struct {
	ShortParagraph int // paragraphs under this length become a single bullet
	MaxBullet      int // hard bound on bullet length
	TargetPoints   int // bullets selected per long paragraph
	MinSentence    int // sentence fragments at or under this length are discarded
	DigitBonus     int // sentence score bonus for containing a digit
	MagnitudeBonus int // bonus for magnitude/percentage words
	EmphasisBonus  int // bonus for emphasis words
	MaxListItems   int // list blocks are truncated to this many items
	MaxBlocks      int // Limit: non-heading blocks kept per section
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ShortParagraph: 100,
		MaxBullet:      150,
		TargetPoints:   2,
		MinSentence:    15,
		DigitBonus:     20,
		MagnitudeBonus: 15,
		EmphasisBonus:  10,
		MaxListItems:   5,
		MaxBlocks:      6,
	}
}

var magnitudeWords = []string{"percent", "%", "million", "billion", "thousand"}

var emphasisWords = []string{"important", "key", "main", "primary", "critical", "essential"}

// Condense rewrites a block sequence so no paragraph blocks remain:
// each paragraph becomes a list block of scored, bounded bullets. Headings
// and tables pass through unchanged; lists are truncated to MaxListItems.
func Condense(blocks []docmodel.ContentBlock, cfg Config) []docmodel.ContentBlock {
	cfg = withDefaults(cfg)

	out := make([]docmodel.ContentBlock, 0, len(blocks))
	for _, block := range blocks {
		switch block.Kind {
		case docmodel.BlockHeading:
			out = append(out, block)
		case docmodel.BlockTable:
			// Already dense; bounded at construction.
			out = append(out, block)
		case docmodel.BlockList:
			items := block.Items
			if len(items) > cfg.MaxListItems {
				items = items[:cfg.MaxListItems]
			}
			if list, ok := docmodel.List(items); ok {
				out = append(out, list)
			}
		case docmodel.BlockParagraph:
			if list, ok := docmodel.List(condenseParagraph(block.Text, cfg)); ok {
				out = append(out, list)
			}
		}
	}
	return out
}

// Limit caps the count of non-heading blocks, preserving heading blocks
// unconditionally and keeping relative order.
func Limit(blocks []docmodel.ContentBlock, maxNonHeading int) []docmodel.ContentBlock {
	if maxNonHeading <= 0 {
		maxNonHeading = DefaultConfig().MaxBlocks
	}
	out := make([]docmodel.ContentBlock, 0, len(blocks))
	kept := 0
	for _, block := range blocks {
		if block.Kind == docmodel.BlockHeading {
			out = append(out, block)
			continue
		}
		if kept < maxNonHeading {
			out = append(out, block)
			kept++
		}
	}
	return out
}

// condenseParagraph turns one paragraph into one or more bullets.
func condenseParagraph(text string, cfg Config) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) < cfg.ShortParagraph {
		return []string{docmodel.Truncate(text, cfg.ShortParagraph)}
	}

	sentences := SplitSentences(text, cfg.MinSentence)
	if len(sentences) == 0 {
		return []string{docmodel.TruncateEllipsis(text, cfg.MaxBullet)}
	}
	if len(sentences) <= cfg.TargetPoints {
		bullets := make([]string, 0, len(sentences))
		for _, s := range sentences {
			bullets = append(bullets, docmodel.Truncate(s, cfg.MaxBullet))
		}
		return bullets
	}

	picked := selectTop(sentences, cfg)
	bullets := make([]string, 0, len(picked))
	for _, s := range picked {
		bullets = append(bullets, docmodel.Truncate(s, cfg.MaxBullet))
	}
	return bullets
}

// selectTop picks the TargetPoints highest-scoring sentences but returns
// them in their original relative order: a stable top-k-by-score,
// output-order-by-position selection.
func selectTop(sentences []string, cfg Config) []string {
	scores := make([]int, len(sentences))
	idx := make([]int, len(sentences))
	for i, s := range sentences {
		scores[i] = scoreSentence(s, cfg)
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})

	top := idx[:cfg.TargetPoints]
	sort.Ints(top)

	out := make([]string, 0, len(top))
	for _, i := range top {
		out = append(out, sentences[i])
	}
	return out
}

// scoreSentence rates a sentence for selection: base score is character
// length, with bonuses for digits, magnitude words, and emphasis words.
func scoreSentence(s string, cfg Config) int {
	score := len(s)
	if strings.ContainsAny(s, "0123456789") {
		score += cfg.DigitBonus
	}
	lower := strings.ToLower(s)
	for _, w := range magnitudeWords {
		if strings.Contains(lower, w) {
			score += cfg.MagnitudeBonus
			break
		}
	}
	for _, w := range emphasisWords {
		if strings.Contains(lower, w) {
			score += cfg.EmphasisBonus
			break
		}
	}
	return score
}

// SplitSentences splits on sentence terminators and drops fragments at or
// below minLen characters.
func SplitSentences(text string, minLen int) []string {
	var sentences []string
	var current strings.Builder
	flush := func() {
		s := strings.TrimSpace(current.String())
		current.Reset()
		if len(s) > minLen {
			sentences = append(sentences, s)
		}
	}
	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			flush()
		}
	}
	flush()
	return sentences
}

func withDefaults(cfg Config) Config {
	def := DefaultConfig()
	if cfg.ShortParagraph <= 0 {
		cfg.ShortParagraph = def.ShortParagraph
	}
	if cfg.MaxBullet <= 0 {
		cfg.MaxBullet = def.MaxBullet
	}
	if cfg.TargetPoints <= 0 {
		cfg.TargetPoints = def.TargetPoints
	}
	if cfg.MinSentence <= 0 {
		cfg.MinSentence = def.MinSentence
	}
	if cfg.DigitBonus <= 0 {
		cfg.DigitBonus = def.DigitBonus
	}
	if cfg.MagnitudeBonus <= 0 {
		cfg.MagnitudeBonus = def.MagnitudeBonus
	}
	if cfg.EmphasisBonus <= 0 {
		cfg.EmphasisBonus = def.EmphasisBonus
	}
	if cfg.MaxListItems <= 0 {
		cfg.MaxListItems = def.MaxListItems
	}
	if cfg.MaxBlocks <= 0 {
		cfg.MaxBlocks = def.MaxBlocks
	}
	return cfg
}
