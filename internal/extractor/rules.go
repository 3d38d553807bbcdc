package extractor

import (
	"regexp"
	"strings"
	"unicode"
)

// headingRule is one predicate in the heuristic heading cascade. Rules are
// evaluated top-to-bottom with first-match-wins semantics; dotted-numeric
// patterns sit above stylistic ones because they are more specific.
type headingRule struct {
	name  string
	level int
	match func(line string) bool
}

var (
	dottedLevel3Re = regexp.MustCompile(`^\d+\.\d+\.\d+\s`)
	dottedLevel2Re = regexp.MustCompile(`^\d+\.\d+\s`)
	chapterRe      = regexp.MustCompile(`^(Chapter|Part|Section)\s+\d+`)
	numberedTopRe  = regexp.MustCompile(`^\d+\.?\s+[A-Z]`)
)

// headingRules builds the ordered rule table for a config. The table is
// data so the priority order stays inspectable and testable per rule.
func headingRules(cfg Config) []headingRule {
	short := func(line string) bool {
		return len(line) < cfg.MaxHeadingLine && !endsWithSentencePunct(line)
	}
	return []headingRule{
		{
			name:  "dotted-numeric-sub-sub",
			level: 3,
			match: dottedLevel3Re.MatchString,
		},
		{
			name:  "dotted-numeric-sub",
			level: 2,
			match: dottedLevel2Re.MatchString,
		},
		{
			name:  "all-caps-title",
			level: 1,
			match: func(line string) bool { return short(line) && isAllCaps(line) },
		},
		{
			name:  "chapter-part-section",
			level: 1,
			match: func(line string) bool { return short(line) && chapterRe.MatchString(line) },
		},
		{
			name:  "numbered-top-level",
			level: 1,
			match: func(line string) bool { return short(line) && numberedTopRe.MatchString(line) },
		},
		{
			name:  "title-case-phrase",
			level: 2,
			match: func(line string) bool {
				return len(line) < cfg.MaxHeadingLine && isTitleCasePhrase(line)
			},
		},
	}
}

// matchHeading runs the rule cascade. Returns the matched level, or 0.
func matchHeading(line string, rules []headingRule) int {
	for _, r := range rules {
		if r.match(line) {
			return r.level
		}
	}
	return 0
}

func endsWithSentencePunct(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	switch line[len(line)-1] {
	case '.', '!', '?', ';', ':', ',':
		return true
	}
	return false
}

// isAllCaps reports whether a line contains letters and no lowercase ones.
func isAllCaps(line string) bool {
	hasLetter := false
	for _, r := range line {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// Connectives that stay lowercase inside a Title-Case phrase.
var titleSmallWords = map[string]bool{
	"a": true, "an": true, "and": true, "as": true, "at": true, "by": true,
	"for": true, "in": true, "of": true, "on": true, "or": true, "the": true,
	"to": true, "with": true,
}

// isTitleCasePhrase matches short Title-Case phrases without a period,
// e.g. "Revenue by Region". Single words are too ambiguous to count.
func isTitleCasePhrase(line string) bool {
	if strings.Contains(line, ".") {
		return false
	}
	if endsWithSentencePunct(line) {
		return false
	}
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 8 {
		return false
	}
	for i, w := range words {
		r := []rune(w)[0]
		if unicode.IsUpper(r) || unicode.IsDigit(r) {
			continue
		}
		if i > 0 && titleSmallWords[strings.ToLower(w)] {
			continue
		}
		return false
	}
	return true
}
