package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/pagegen/internal/source"
	"github.com/dgallion1/pagegen/internal/store"
)

// Worker processes a single page-generation job.
type Worker struct {
	pipe  *Pipeline
	pages store.Store
	log   *slog.Logger
}

func NewWorker(pipe *Pipeline, pages store.Store, log *slog.Logger) *Worker {
	return &Worker{
		pipe:  pipe,
		pages: pages,
		log:   log,
	}
}

// Process runs the content pipeline for a job and stores the page.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "page_id", job.PageID, "filename", job.Filename)

	job.SetStatus(StatusProcessing, "parsing")

	result, err := w.pipe.Run(ctx, job.FileData(), job.Opts(), job.SetPhase)
	job.ReleaseFileData()
	if err != nil {
		var formatErr *source.FormatError
		if errors.As(err, &formatErr) {
			log.Error("document unreadable", "format", formatErr.Format, "error", err)
		} else {
			log.Error("pipeline failed", "error", err)
		}
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, job.Snapshot().Phase)
		return
	}

	enriched := 0
	for _, sec := range result.Sections {
		if sec.Enriched {
			enriched++
		}
	}
	job.SetResultCounts(len(result.Sections), enriched, result.Warnings)
	log.Info("pipeline complete",
		"sections", len(result.Sections),
		"enriched", enriched,
		"document_sections", len(result.Document.Content),
	)

	job.SetPhase("storing")
	page := &store.Page{
		ID:        job.PageID,
		Title:     result.Document.Document.Title,
		Template:  result.Template.Name,
		CreatedAt: time.Now(),
		Document:  result.Document,
		Sections:  result.Sections,
	}
	if err := w.pages.PutPage(ctx, page); err != nil {
		log.Error("store failed", "error", err)
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	job.SetStatus(StatusCompleted, "done")
}
