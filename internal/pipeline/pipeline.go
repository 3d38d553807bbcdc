// Package pipeline runs the six content stages for one document and
// manages the asynchronous job machinery around them. Each run owns all
// of its intermediate values; concurrent runs share nothing mutable.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgallion1/pagegen/internal/condenser"
	"github.com/dgallion1/pagegen/internal/docmodel"
	"github.com/dgallion1/pagegen/internal/enrich"
	"github.com/dgallion1/pagegen/internal/extractor"
	"github.com/dgallion1/pagegen/internal/knowledge"
	"github.com/dgallion1/pagegen/internal/mapper"
	"github.com/dgallion1/pagegen/internal/source"
	"github.com/dgallion1/pagegen/internal/template"
)

// Pipeline holds the per-stage configuration and collaborators. Provider
// may be nil, which disables enrichment entirely.
type Pipeline struct {
	Extractor extractor.Config
	Condenser condenser.Config
	Knowledge knowledge.Config
	Mapper    mapper.Config
	Enrich    enrich.Config
	Provider  enrich.Provider
	Templates *template.Registry
	Log       *slog.Logger

	// PDFFallbackPdftotext lets the PDF source shell out to pdftotext when
	// the Go reader cannot parse a file.
	PDFFallbackPdftotext bool
}

// Options are the user-chosen presentation options for one run.
type Options struct {
	Filename string
	Template string
	Sections docmodel.EnabledSections
	Meta     docmodel.DocumentMeta
}

// Result is the populated content model for one document.
type Result struct {
	Document docmodel.DocumentContent        `json:"document"`
	Sections []docmodel.MappedSectionContent `json:"sections"`
	Template template.Template               `json:"template"`
	Warnings []string                        `json:"warnings,omitempty"`
}

// Run executes the full pipeline: parse, structure, condense, extract
// knowledge, map sections, enrich, project. onPhase (optional) is called
// as each stage begins. Only input acquisition can fail for well-formed
// requests; every later stage is total.
func (p *Pipeline) Run(ctx context.Context, file []byte, opts Options, onPhase func(phase string)) (*Result, error) {
	phase := func(name string) {
		if onPhase != nil {
			onPhase(name)
		}
	}

	tmpl, ok := p.Templates.Get(opts.Template)
	if !ok {
		return nil, fmt.Errorf("unknown template: %s", opts.Template)
	}
	enabled := opts.Sections
	if len(enabled) == 0 {
		enabled = docmodel.AllSectionsEnabled()
	}

	phase("parsing")
	src, err := source.ForFile(opts.Filename)
	if err != nil {
		return nil, err
	}
	if pdf, ok := src.(*source.PDFSource); ok {
		pdf.FallbackPdftotext = p.PDFFallbackPdftotext
	}
	raw, err := src.Extract(bytes.NewReader(file), opts.Filename)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", opts.Filename, err)
	}

	phase("structuring")
	sections := extractor.Extract(raw, p.Extractor)

	phase("condensing")
	for i := range sections {
		condensed := condenser.Condense(sections[i].Blocks, p.Condenser)
		sections[i].Blocks = condenser.Limit(condensed, p.Condenser.MaxBlocks)
	}

	meta := opts.Meta
	if strings.TrimSpace(meta.Title) == "" {
		meta.Title = source.TitleFromFilename(opts.Filename)
	}
	doc := docmodel.DocumentContent{Document: meta, Content: sections}

	phase("extracting")
	k := knowledge.Extract(doc, p.Knowledge)

	phase("mapping")
	mapped, err := mapper.MapContent(k, enabled, p.Mapper)
	if err != nil {
		// Unreachable while the document has a title; surfaced loudly
		// rather than shipping an empty section.
		return nil, fmt.Errorf("map sections: %w", err)
	}

	phase("enriching")
	excerpt := relatedExcerpt(k)
	for i := range mapped {
		if ctx.Err() != nil {
			break
		}
		items, enriched := enrich.Enrich(ctx, mapped[i].Content, excerpt, p.Provider, p.Enrich)
		mapped[i].Content = items
		mapped[i].Enriched = enriched
	}

	phase("projecting")
	doc.Content = template.Project(doc.Content, tmpl.NavigationLevels)

	return &Result{
		Document: doc,
		Sections: mapped,
		Template: tmpl,
		Warnings: raw.Warnings,
	}, nil
}

// relatedExcerpt flattens the related-content index into one grounding
// excerpt for the enrichment prompt.
func relatedExcerpt(k docmodel.ExtractedKnowledge) string {
	var sb strings.Builder
	for _, rc := range k.Related {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		if rc.Topic != "" {
			sb.WriteString(rc.Topic)
			sb.WriteString(": ")
		}
		sb.WriteString(strings.Join(rc.Content, " "))
	}
	return sb.String()
}
