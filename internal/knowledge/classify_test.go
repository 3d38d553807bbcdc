package knowledge

import (
	"testing"

	"github.com/dgallion1/pagegen/internal/docmodel"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		want    docmodel.Category
		matched bool
	}{
		{"definition verb is", "A ledger is an append-only record", docmodel.CategoryDefinition, true},
		{"definition verb refers to", "Throughput refers to completed work per unit time", docmodel.CategoryDefinition, true},
		{"definition colon shape", "Latency: time between request and response", docmodel.CategoryDefinition, true},
		{"numbered step", "1. Install the agent on every host", docmodel.CategoryStep, true},
		{"paren numbered step", "2) Configure the endpoint", docmodel.CategoryStep, true},
		{"sequence word", "Then restart the collector to apply changes", docmodel.CategoryStep, true},
		{"fact with digit", "Headcount reached 450 by December", docmodel.CategoryFact, true},
		{"fact with magnitude word", "Revenue crossed a billion for the quarter", docmodel.CategoryFact, true},
		{"no match", "Sunshine and calm weather all week", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Classify(tc.text)
			if ok != tc.matched {
				t.Fatalf("Classify(%q): expected matched=%v, got %v", tc.text, tc.matched, ok)
			}
			if ok && got != tc.want {
				t.Errorf("Classify(%q): expected %s, got %s", tc.text, tc.want, got)
			}
		})
	}
}

func TestClassify_DefinitionBeatsFact(t *testing.T) {
	// Carries a digit too, but the definition verb rule sits higher in the
	// cascade.
	got, ok := Classify("The quota is 500 requests per minute")
	if !ok || got != docmodel.CategoryDefinition {
		t.Errorf("expected definition to win, got %s (matched=%v)", got, ok)
	}
}

func TestClassify_NumberedStepBeatsFact(t *testing.T) {
	got, ok := Classify("3. Review the 2024 budget")
	if !ok || got != docmodel.CategoryStep {
		t.Errorf("expected step to win over fact-digit, got %s (matched=%v)", got, ok)
	}
}

func TestClassify_ColonShapeRequiresContent(t *testing.T) {
	if _, ok := Classify("Heading:"); ok {
		t.Error("bare trailing colon should not classify as definition")
	}
	if _, ok := Classify("lowercase: with content"); ok {
		t.Error("colon shape requires a leading capital")
	}
}
