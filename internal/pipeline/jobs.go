package pipeline

import (
	"sync"
	"time"
)

// JobStatus represents the state of a page-generation job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Job tracks the state of a single page generation.
type Job struct {
	mu sync.Mutex

	ID     string
	PageID string

	Status   JobStatus
	Phase    string
	Filename string
	Template string

	Progress Progress

	CreatedAt time.Time
	UpdatedAt time.Time

	// Internal: not serialized.
	fileData []byte
	opts     Options
}

// Progress tracks processing progress.
type Progress struct {
	SectionsMapped   int      `json:"sections_mapped"`
	SectionsEnriched int      `json:"sections_enriched"`
	Warnings         []string `json:"warnings"`
	Errors           []string `json:"errors"`
}

// NewJob builds a queued job holding the uploaded bytes and run options.
func NewJob(id, pageID string, data []byte, opts Options) *Job {
	now := time.Now()
	return &Job{
		ID:        id,
		PageID:    pageID,
		Status:    StatusQueued,
		Phase:     "queued",
		Filename:  opts.Filename,
		Template:  opts.Template,
		CreatedAt: now,
		UpdatedAt: now,
		fileData:  data,
		opts:      opts,
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// SetPhase updates the fine-grained stage name.
func (j *Job) SetPhase(phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Errors = append(j.Progress.Errors, err)
	j.UpdatedAt = time.Now()
}

// SetResultCounts records mapping/enrichment outcomes and warnings.
func (j *Job) SetResultCounts(mapped, enriched int, warnings []string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.SectionsMapped = mapped
	j.Progress.SectionsEnriched = enriched
	j.Progress.Warnings = append(j.Progress.Warnings, warnings...)
	j.UpdatedAt = time.Now()
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// ReleaseFileData drops the upload bytes once processing is done.
func (j *Job) ReleaseFileData() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = nil
}

// Opts returns the run options.
func (j *Job) Opts() Options {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.opts
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string    `json:"job_id"`
	PageID   string    `json:"page_id"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`
	Template string    `json:"template"`
	Progress Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	warnings := j.Progress.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:       j.ID,
		PageID:   j.PageID,
		Status:   j.Status,
		Phase:    j.Phase,
		Filename: j.Filename,
		Template: j.Template,
		Progress: Progress{
			SectionsMapped:   j.Progress.SectionsMapped,
			SectionsEnriched: j.Progress.SectionsEnriched,
			Warnings:         warnings,
			Errors:           errs,
		},
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		expired := now.Sub(job.UpdatedAt) > s.ttl
		job.mu.Unlock()
		if expired {
			delete(s.jobs, id)
		}
	}
}
