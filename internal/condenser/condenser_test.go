package condenser

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dgallion1/pagegen/internal/docmodel"
)

func paragraph(t *testing.T, text string) docmodel.ContentBlock {
	t.Helper()
	block, ok := docmodel.Paragraph(text)
	if !ok {
		t.Fatalf("paragraph constructor rejected %q", text)
	}
	return block
}

func TestCondense_ShortParagraphVerbatim(t *testing.T) {
	text := "Revenue grew 12% in Q3 2024."
	out := Condense([]docmodel.ContentBlock{paragraph(t, text)}, DefaultConfig())
	if len(out) != 1 || out[0].Kind != docmodel.BlockList {
		t.Fatalf("expected one list block, got %+v", out)
	}
	if len(out[0].Items) != 1 || out[0].Items[0] != text {
		t.Errorf("expected short paragraph kept verbatim as one bullet, got %v", out[0].Items)
	}
}

func TestCondense_LongParagraphPicksTopTwoInOrder(t *testing.T) {
	// Four sentences, well over the short-paragraph threshold. The two
	// highest scorers are the long one and the one carrying digits plus a
	// percent word; they must come back in original document order.
	weak1 := "The meeting started on time as usual here."
	strong1 := "Revenue grew 12 percent compared with the same quarter a year earlier across all regions."
	weak2 := "Lunch was served in the main hall afterwards."
	strong2 := "Operating margin is a key metric and it improved by 3 points this important quarter overall."
	text := strings.Join([]string{weak1, strong1, weak2, strong2}, " ")

	out := Condense([]docmodel.ContentBlock{paragraph(t, text)}, DefaultConfig())
	if len(out) != 1 {
		t.Fatalf("expected one block, got %d", len(out))
	}
	items := out[0].Items
	if len(items) != 2 {
		t.Fatalf("expected 2 bullets, got %d: %v", len(items), items)
	}
	if items[0] != strong1 || items[1] != strong2 {
		t.Errorf("expected top-2 in original order, got %v", items)
	}
}

func TestCondense_LengthAloneDecidesWithoutBonuses(t *testing.T) {
	// No digits, magnitude, or emphasis words anywhere: the two longest
	// sentences must win on base length alone, in original order.
	short1 := "The morning session opened with brief remarks."
	long1 := "Attendees from every regional office gathered to compare delivery schedules and review the consolidated planning calendar."
	short2 := "A short break followed the opening remarks."
	long2 := "The afternoon workshops focused on coordination between engineering and operations across the upcoming roadmap."
	text := strings.Join([]string{short1, long1, short2, long2}, " ")

	out := Condense([]docmodel.ContentBlock{paragraph(t, text)}, DefaultConfig())
	items := out[0].Items
	if len(items) != 2 {
		t.Fatalf("expected 2 bullets, got %v", items)
	}
	if items[0] != long1 || items[1] != long2 {
		t.Errorf("expected the two longest in original order, got %v", items)
	}
}

func TestCondense_TwoSentencesKeepBoth(t *testing.T) {
	s1 := "The first of the two sentences in this paragraph runs on for quite a while to pass the length gate."
	s2 := "The second one also needs enough characters to clear the minimum."
	out := Condense([]docmodel.ContentBlock{paragraph(t, s1+" "+s2)}, DefaultConfig())
	items := out[0].Items
	if len(items) != 2 || items[0] != s1 || items[1] != s2 {
		t.Errorf("expected both sentences kept, got %v", items)
	}
}

func TestCondense_NoSentencesFallback(t *testing.T) {
	// Every fragment is below the minimum sentence length, so splitting
	// yields nothing and the whole paragraph becomes one truncated bullet.
	text := strings.TrimSpace(strings.Repeat("ab. ", 50))
	out := Condense([]docmodel.ContentBlock{paragraph(t, text)}, DefaultConfig())
	items := out[0].Items
	if len(items) != 1 {
		t.Fatalf("expected 1 fallback bullet, got %d", len(items))
	}
	if len(items[0]) > DefaultConfig().MaxBullet {
		t.Errorf("fallback bullet exceeds bound: %d chars", len(items[0]))
	}
	if !strings.HasSuffix(items[0], "...") {
		t.Errorf("expected ellipsis on truncated fallback, got %q", items[0])
	}
}

func TestCondense_BulletsNeverExceedBound(t *testing.T) {
	long := strings.Repeat("a", 300) + ". " + strings.Repeat("b", 300) + "."
	out := Condense([]docmodel.ContentBlock{paragraph(t, long)}, DefaultConfig())
	for _, item := range out[0].Items {
		if len(item) > DefaultConfig().MaxBullet {
			t.Errorf("bullet exceeds %d chars: %d", DefaultConfig().MaxBullet, len(item))
		}
	}
}

func TestCondense_MultibyteBulletsStayValid(t *testing.T) {
	// A long CJK paragraph forces truncation; the cut must never split a
	// multibyte rune.
	text := "a" + strings.Repeat("語", 80) + "."
	out := Condense([]docmodel.ContentBlock{paragraph(t, text)}, DefaultConfig())
	if len(out) != 1 || len(out[0].Items) == 0 {
		t.Fatalf("expected one list block with bullets, got %+v", out)
	}
	for i, item := range out[0].Items {
		if !utf8.ValidString(item) {
			t.Errorf("bullet %d is not valid UTF-8: %q", i, item)
		}
		if len(item) > DefaultConfig().MaxBullet {
			t.Errorf("bullet %d exceeds bound: %d bytes", i, len(item))
		}
	}
}

func TestCondense_NoParagraphBlocksRemain(t *testing.T) {
	blocks := []docmodel.ContentBlock{
		mustHeading(t, "Title", 2),
		paragraph(t, "Short paragraph."),
		paragraph(t, strings.Repeat("A sentence that goes on long enough to matter here. ", 6)),
		mustList(t, []string{"one", "two"}),
	}
	out := Condense(blocks, DefaultConfig())
	for i, b := range out {
		if b.Kind == docmodel.BlockParagraph {
			t.Errorf("block %d is still a paragraph", i)
		}
	}
}

func TestCondense_ListTruncated(t *testing.T) {
	items := []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7"}
	out := Condense([]docmodel.ContentBlock{mustList(t, items)}, DefaultConfig())
	if len(out) != 1 || len(out[0].Items) != DefaultConfig().MaxListItems {
		t.Errorf("expected list truncated to %d, got %v", DefaultConfig().MaxListItems, out[0].Items)
	}
}

func TestCondense_HeadingsAndTablesPassThrough(t *testing.T) {
	table, ok := docmodel.Table([]string{"h1", "h2"}, [][]string{{"a", "b"}})
	if !ok {
		t.Fatal("table constructor failed")
	}
	blocks := []docmodel.ContentBlock{mustHeading(t, "Deep Dive", 3), table}
	out := Condense(blocks, DefaultConfig())
	if len(out) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(out))
	}
	if out[0].Kind != docmodel.BlockHeading || out[0].Level != 3 {
		t.Errorf("heading not preserved: %+v", out[0])
	}
	if out[1].Kind != docmodel.BlockTable || len(out[1].Rows) != 1 {
		t.Errorf("table not preserved: %+v", out[1])
	}
}

func TestLimit(t *testing.T) {
	var blocks []docmodel.ContentBlock
	for i := 0; i < 10; i++ {
		blocks = append(blocks, mustList(t, []string{"item"}))
	}
	blocks = append(blocks, mustHeading(t, "Trailing Heading", 2))

	out := Limit(blocks, 6)
	nonHeading, headings := 0, 0
	for _, b := range out {
		if b.Kind == docmodel.BlockHeading {
			headings++
		} else {
			nonHeading++
		}
	}
	if nonHeading != 6 {
		t.Errorf("expected 6 non-heading blocks, got %d", nonHeading)
	}
	if headings != 1 {
		t.Errorf("headings must survive limiting, got %d", headings)
	}
}

func TestSplitSentences(t *testing.T) {
	text := "First sentence is long enough. Tiny. Second real sentence also counts! Third one asks a question?"
	got := SplitSentences(text, 15)
	want := []string{
		"First sentence is long enough.",
		"Second real sentence also counts!",
		"Third one asks a question?",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d sentences, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestSplitSentences_TrailingFragment(t *testing.T) {
	got := SplitSentences("Complete sentence here today. trailing fragment with no terminator", 15)
	if len(got) != 2 {
		t.Fatalf("expected trailing fragment kept, got %v", got)
	}
}

func mustHeading(t *testing.T, text string, level int) docmodel.ContentBlock {
	t.Helper()
	block, ok := docmodel.Heading(text, level)
	if !ok {
		t.Fatalf("heading constructor rejected %q", text)
	}
	return block
}

func mustList(t *testing.T, items []string) docmodel.ContentBlock {
	t.Helper()
	block, ok := docmodel.List(items)
	if !ok {
		t.Fatalf("list constructor rejected %v", items)
	}
	return block
}
