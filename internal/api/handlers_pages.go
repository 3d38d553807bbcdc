package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/pagegen/internal/docmodel"
	"github.com/dgallion1/pagegen/internal/pipeline"
	"github.com/dgallion1/pagegen/internal/source"
	"github.com/dgallion1/pagegen/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleCreatePage(w http.ResponseWriter, r *http.Request) {
	// Limit total request size; extra 1MB covers form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !source.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	templateName := r.FormValue("template")
	if !s.orchestrator.HasTemplate(templateName) {
		jsonError(w, fmt.Sprintf("unknown template: %s", templateName), http.StatusBadRequest)
		return
	}

	sections, err := parseSections(r.FormValue("sections"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	opts := pipeline.Options{
		Filename: filename,
		Template: templateName,
		Sections: sections,
		Meta: docmodel.DocumentMeta{
			Title:           strings.TrimSpace(r.FormValue("title")),
			Subtitle:        strings.TrimSpace(r.FormValue("subtitle")),
			PublicationDate: strings.TrimSpace(r.FormValue("publication_date")),
			Authors:         splitCSV(r.FormValue("authors")),
			Collections:     splitCSV(r.FormValue("collections")),
		},
	}

	job := pipeline.NewJob(uuid.NewString(), uuid.NewString(), data, opts)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"page_id":  job.PageID,
		"status":   job.Snapshot().Status,
		"poll_url": fmt.Sprintf("/api/pages/jobs/%s", job.ID),
	})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := s.orchestrator.PageStore().ListPages(r.Context())
	if err != nil {
		s.log.Error("list pages failed", "error", err)
		jsonError(w, "failed to list pages", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"pages": pages})
}

func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "pageID")
	page, err := s.orchestrator.PageStore().GetPage(r.Context(), pageID)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "page not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("get page failed", "page_id", pageID, "error", err)
		jsonError(w, "failed to load page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(page)
}

func (s *Server) handleDeletePage(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "pageID")
	err := s.orchestrator.PageStore().DeletePage(r.Context(), pageID)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "page not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("delete page failed", "page_id", pageID, "error", err)
		jsonError(w, "failed to delete page", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseSections parses a comma-separated list of UI section keys. An empty
// value enables every section.
func parseSections(raw string) (docmodel.EnabledSections, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	enabled := docmodel.EnabledSections{}
	for _, part := range strings.Split(raw, ",") {
		key := docmodel.SectionKey(strings.TrimSpace(part))
		if key == "" {
			continue
		}
		if !docmodel.ValidSectionKey(key) {
			return nil, fmt.Errorf("unknown section key: %s", key)
		}
		enabled[key] = true
	}
	if len(enabled) == 0 {
		return nil, nil
	}
	return enabled, nil
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
