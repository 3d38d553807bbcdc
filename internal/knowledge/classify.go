package knowledge

import (
	"regexp"
	"strings"

	"github.com/dgallion1/pagegen/internal/docmodel"
)

// classRule is one predicate in the fragment classification cascade,
// evaluated top-to-bottom with first-match-wins semantics.
type classRule struct {
	name     string
	category docmodel.Category
	match    func(text string) bool
}

var (
	definitionVerbRe  = regexp.MustCompile(`(?i)\b(is|are|means|refers to|defined as|can be defined)\b`)
	definitionColonRe = regexp.MustCompile(`^[A-Z][A-Za-z0-9 \-]{0,60}:\s+\S`)
	numberedStepRe    = regexp.MustCompile(`^\d+[.)]\s`)
	digitRe           = regexp.MustCompile(`\d`)
)

var sequenceWords = []string{
	"first", "second", "third", "then", "next", "finally", "step", "process",
}

var magnitudeWords = []string{
	"percent", "%", "million", "billion", "thousand", "year", "date",
}

var classRules = []classRule{
	{
		name:     "definition-verb",
		category: docmodel.CategoryDefinition,
		match:    definitionVerbRe.MatchString,
	},
	{
		name:     "definition-colon",
		category: docmodel.CategoryDefinition,
		match:    definitionColonRe.MatchString,
	},
	{
		name:     "step-numbered",
		category: docmodel.CategoryStep,
		match:    numberedStepRe.MatchString,
	},
	{
		name:     "step-sequence-word",
		category: docmodel.CategoryStep,
		match:    func(text string) bool { return containsWord(text, sequenceWords) },
	},
	{
		name:     "fact-digit",
		category: docmodel.CategoryFact,
		match:    digitRe.MatchString,
	},
	{
		name:     "fact-magnitude",
		category: docmodel.CategoryFact,
		match:    func(text string) bool { return containsWord(text, magnitudeWords) },
	},
}

// Classify assigns a semantic category to a text fragment. The second
// return is false when no rule matched: the caller decides the default
// bucket based on the fragment's origin (list item vs. paragraph).
func Classify(text string) (docmodel.Category, bool) {
	for _, r := range classRules {
		if r.match(text) {
			return r.category, true
		}
	}
	return "", false
}

func containsWord(text string, words []string) bool {
	lower := strings.ToLower(text)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
