package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/pagegen/internal/config"
	"github.com/dgallion1/pagegen/internal/store"
	"github.com/dgallion1/pagegen/internal/template"
)

// Orchestrator manages the page-generation worker pool and job registry.
type Orchestrator struct {
	jobs  *JobStore
	queue chan *Job
	pipe  *Pipeline
	pages store.Store
	log   *slog.Logger
	cfg   config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex // serializes Submit's queue send against Stop's close
	stopped bool
}

// NewOrchestrator creates the orchestrator; call Start to launch workers.
func NewOrchestrator(cfg config.Config, pipe *Pipeline, pages store.Store, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:  NewJobStore(cfg.JobTTL),
		queue: make(chan *Job, cfg.MaxQueueSize),
		pipe:  pipe,
		pages: pages,
		log:   log,
		cfg:   cfg,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.pipe, o.pages, o.log)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the worker pool. Safe to call more than once;
// Submit calls racing Stop are rejected rather than sent to a closed queue.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	if !o.stopped {
		o.stopped = true
		if o.cancel != nil {
			o.cancel()
		}
		close(o.queue)
	}
	o.mu.Unlock()
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stopped {
		job.SetStatus(StatusFailed, "shutting_down")
		return fmt.Errorf("orchestrator is shutting down")
	}
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// PageStore returns the page store for direct use by API handlers.
func (o *Orchestrator) PageStore() store.Store {
	return o.pages
}

// Templates exposes the registry for the templates endpoint.
func (o *Orchestrator) Templates() []template.Template {
	return o.pipe.Templates.List()
}

// HasTemplate reports whether a template name resolves in the registry.
func (o *Orchestrator) HasTemplate(name string) bool {
	_, ok := o.pipe.Templates.Get(name)
	return ok
}
