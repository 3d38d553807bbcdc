package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/dgallion1/pagegen/internal/condenser"
	"github.com/dgallion1/pagegen/internal/docmodel"
	"github.com/dgallion1/pagegen/internal/enrich"
	"github.com/dgallion1/pagegen/internal/extractor"
	"github.com/dgallion1/pagegen/internal/knowledge"
	"github.com/dgallion1/pagegen/internal/mapper"
	"github.com/dgallion1/pagegen/internal/template"
)

func testPipeline(provider enrich.Provider) *Pipeline {
	return &Pipeline{
		Extractor: extractor.DefaultConfig(),
		Condenser: condenser.DefaultConfig(),
		Knowledge: knowledge.DefaultConfig(),
		Mapper:    mapper.DefaultConfig(),
		Enrich:    enrich.DefaultConfig(),
		Provider:  provider,
		Templates: template.DefaultRegistry(),
		Log:       slog.Default(),
	}
}

const sampleReport = `QUARTERLY REPORT

Revenue grew 12% in Q3 2024. Operating margin is profit divided by revenue and it held steady this quarter.

Regional Detail

- EMEA revenue reached 42 million for the quarter
- APAC expanded into two new markets this year

| Region | Revenue |
|---|---|
| EMEA | 42 million total |
| APAC | 17 million total |
`

func TestRun_EndToEnd(t *testing.T) {
	p := testPipeline(nil)
	res, err := p.Run(context.Background(), []byte(sampleReport), Options{
		Filename: "q3-report.txt",
		Template: "standard",
	}, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if res.Template.Name != "standard" {
		t.Errorf("unexpected template: %s", res.Template.Name)
	}
	if res.Document.Document.Title != "q3-report" {
		t.Errorf("expected title derived from filename, got %q", res.Document.Document.Title)
	}

	if len(res.Document.Content) == 0 {
		t.Fatal("expected at least one document section")
	}
	for _, sec := range res.Document.Content {
		for _, block := range sec.Blocks {
			if block.Kind == docmodel.BlockParagraph {
				t.Errorf("paragraph block survived condensation in section %s", sec.ID)
			}
		}
	}

	if len(res.Sections) != len(docmodel.SectionOrder) {
		t.Fatalf("expected all %d UI sections, got %d", len(docmodel.SectionOrder), len(res.Sections))
	}
	for i, sec := range res.Sections {
		if sec.Key != docmodel.SectionOrder[i] {
			t.Errorf("section %d out of order: %s", i, sec.Key)
		}
		if len(sec.Content) == 0 {
			t.Errorf("section %s is empty", sec.Key)
		}
		if sec.Enriched {
			t.Errorf("section %s reports enrichment without a provider", sec.Key)
		}
	}
}

func TestRun_PhaseCallbacks(t *testing.T) {
	var phases []string
	p := testPipeline(nil)
	_, err := p.Run(context.Background(), []byte(sampleReport), Options{
		Filename: "report.txt",
	}, func(phase string) { phases = append(phases, phase) })
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []string{"parsing", "structuring", "condensing", "extracting", "mapping", "enriching", "projecting"}
	if len(phases) != len(want) {
		t.Fatalf("expected %d phases, got %v", len(want), phases)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Errorf("phase %d: expected %s, got %s", i, want[i], phases[i])
		}
	}
}

func TestRun_UnknownTemplate(t *testing.T) {
	p := testPipeline(nil)
	_, err := p.Run(context.Background(), []byte("text"), Options{
		Filename: "a.txt",
		Template: "no-such-layout",
	}, nil)
	if err == nil || !strings.Contains(err.Error(), "unknown template") {
		t.Fatalf("expected unknown template error, got %v", err)
	}
}

func TestRun_UnsupportedFile(t *testing.T) {
	p := testPipeline(nil)
	_, err := p.Run(context.Background(), []byte("x"), Options{Filename: "a.xlsx"}, nil)
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestRun_SectionFilter(t *testing.T) {
	p := testPipeline(nil)
	res, err := p.Run(context.Background(), []byte(sampleReport), Options{
		Filename: "report.txt",
		Sections: docmodel.EnabledSections{
			docmodel.SectionAbout:       true,
			docmodel.SectionKeyFindings: true,
		},
	}, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(res.Sections))
	}
	if res.Sections[0].Key != docmodel.SectionAbout || res.Sections[1].Key != docmodel.SectionKeyFindings {
		t.Errorf("unexpected sections: %v, %v", res.Sections[0].Key, res.Sections[1].Key)
	}
}

func TestRun_MetadataOnlyDocument(t *testing.T) {
	p := testPipeline(nil)
	res, err := p.Run(context.Background(), []byte(""), Options{
		Filename: "empty.txt",
		Meta:     docmodel.DocumentMeta{Title: "Q3 Report"},
	}, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// A titled but empty document still fills every section via the
	// metadata fallback tier.
	for _, sec := range res.Sections {
		if len(sec.Content) == 0 {
			t.Errorf("section %s empty for metadata-only document", sec.Key)
		}
	}
}

type stubProvider struct {
	response string
}

func (s *stubProvider) Enhance(ctx context.Context, _, _ string, _ enrich.Options) (string, error) {
	return s.response, nil
}

func TestRun_WithEnrichment(t *testing.T) {
	p := testPipeline(&stubProvider{response: `["Rephrased bullet content"]`})
	res, err := p.Run(context.Background(), []byte(sampleReport), Options{
		Filename: "report.txt",
	}, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, sec := range res.Sections {
		if !sec.Enriched {
			t.Errorf("section %s not enriched", sec.Key)
		}
		if len(sec.Content) != 1 || sec.Content[0] != "Rephrased bullet content" {
			t.Errorf("section %s content not rephrased: %v", sec.Key, sec.Content)
		}
	}
}

func TestRun_MinimalTemplateProjection(t *testing.T) {
	input := "#HEADING1#Main Section\nProse body under the main heading.\n\n#HEADING2#Nested Topic\nMore prose under the nested one."
	p := testPipeline(nil)
	res, err := p.Run(context.Background(), []byte(input), Options{
		Filename: "doc.txt",
		Template: "minimal",
	}, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, sec := range res.Document.Content {
		for _, block := range sec.Blocks {
			if block.Kind == docmodel.BlockHeading {
				t.Errorf("minimal template must drop nested headings, found level %d", block.Level)
			}
		}
	}
}
