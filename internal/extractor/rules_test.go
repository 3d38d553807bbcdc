package extractor

import "testing"

func TestHeadingRules(t *testing.T) {
	rules := headingRules(DefaultConfig())

	cases := []struct {
		name  string
		line  string
		level int
	}{
		{"dotted sub-sub heading", "2.1.3 Risk Factors", 3},
		{"dotted sub heading", "2.1 Revenue Detail", 2},
		{"all caps title", "EXECUTIVE SUMMARY", 1},
		{"all caps with digits", "Q3 2024 RESULTS", 1},
		{"chapter keyword", "Chapter 4 Market Overview", 1},
		{"part keyword", "Part 2", 1},
		{"section keyword", "Section 12 Appendix", 1},
		{"numbered top level", "1. Introduction", 1},
		{"numbered without dot", "3 Methodology", 1},
		{"title case phrase", "Revenue by Region", 2},
		{"title case with connective", "State of the Union", 2},
		{"prose sentence", "Revenue grew 12% in Q3 2024.", 0},
		{"lowercase line", "this is just ordinary prose text", 0},
		{"single word", "Overview", 0},
		{"trailing colon", "KEY POINTS:", 0},
		{"question", "WHY DOES THIS MATTER?", 0},
		{"long title case line", "This Very Long Title Case Heading Phrase Does Not Quite Count Anymore", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := matchHeading(tc.line, rules); got != tc.level {
				t.Errorf("matchHeading(%q): expected level %d, got %d", tc.line, tc.level, got)
			}
		})
	}
}

func TestHeadingRules_DottedBeatsStylistic(t *testing.T) {
	rules := headingRules(DefaultConfig())
	// Dotted-numeric rules are more specific and must win even when the
	// stylistic level-1 rules would also match.
	if got := matchHeading("2.1 OVERVIEW", rules); got != 2 {
		t.Errorf("expected dotted rule to win with level 2, got %d", got)
	}
	if got := matchHeading("1.2.3 DETAILS", rules); got != 3 {
		t.Errorf("expected dotted sub-sub rule to win with level 3, got %d", got)
	}
}

func TestHeadingRules_LongLinesNeverHeadings(t *testing.T) {
	cfg := DefaultConfig()
	rules := headingRules(cfg)
	long := "THIS LINE IS ALL UPPERCASE BUT IT KEEPS GOING AND GOING WELL PAST THE LENGTH CUTOFF FOR HEADINGS"
	if len(long) < cfg.MaxHeadingLine {
		t.Fatalf("test line too short: %d", len(long))
	}
	if got := matchHeading(long, rules); got != 0 {
		t.Errorf("expected long line to be rejected, got level %d", got)
	}
}

func TestIsTitleCasePhrase(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"Revenue by Region", true},
		{"The Big Picture", true},
		{"Q3 2024 Results", true},
		{"Overview", false},
		{"revenue by region", false},
		{"Revenue grew fast", false},
		{"Ver. 2 Notes", false},
	}
	for _, tc := range cases {
		if got := isTitleCasePhrase(tc.line); got != tc.want {
			t.Errorf("isTitleCasePhrase(%q): expected %v, got %v", tc.line, tc.want, got)
		}
	}
}
