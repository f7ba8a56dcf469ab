// Package worker runs section jobs from the queue through the ingestion
// service on a fixed pool of goroutines.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"strconv"
	"sync"

	"github.com/tashifkhan/faculty-appraisal-system/internal/adapters/mq/queue"
	service "github.com/tashifkhan/faculty-appraisal-system/internal/app"
	"github.com/tashifkhan/faculty-appraisal-system/internal/domain/model"
	"github.com/tashifkhan/faculty-appraisal-system/internal/domain/types"
	"github.com/tashifkhan/faculty-appraisal-system/pkg/logger"
	"github.com/tashifkhan/faculty-appraisal-system/pkg/metrics"
)

// Ingester scores and stores one section. *service.Service implements it.
type Ingester interface {
	IngestSection(ctx context.Context, section model.Section, userID string, payload json.RawMessage, opts ...service.IngestOption) (types.ScoreResult, error)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue() <-chan queue.Job
}

// InMemoryWorker processes jobs until the queue is closed and drained.
type InMemoryWorker struct {
	queue    Queue
	ingester Ingester
	name     string
	logger   logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, ingester Ingester, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		ingester: ingester,
		name:     "worker",
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run processes jobs until the queue channel closes or ctx is canceled.
// Jobs left in the queue after cancellation are finished with ctx's error.
func (w *InMemoryWorker) Run(ctx context.Context) {
	jobs := w.queue.Dequeue()
	for {
		select {
		case <-ctx.Done():
			w.drain(ctx, jobs)
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			w.process(ctx, j)
		}
	}
}

func (w *InMemoryWorker) drain(ctx context.Context, jobs <-chan queue.Job) {
	for {
		select {
		case j, ok := <-jobs:
			if !ok {
				return
			}
			j.Finish(types.ScoreResult{}, fmt.Errorf("worker stopped: %w", ctx.Err()))
		default:
			return
		}
	}
}

func (w *InMemoryWorker) process(ctx context.Context, j queue.Job) {
	sub := j.Submission
	res, err := w.ingester.IngestSection(ctx, sub.Section, sub.UserID, sub.Payload, service.WithSemester(sub.Semester))
	switch {
	case err == nil:
		metrics.RecordWorkerJob(sub.Section.String(), metrics.OutcomeOK)
	case service.IsInputError(err):
		metrics.RecordWorkerJob(sub.Section.String(), metrics.OutcomeInvalidInput)
	default:
		metrics.RecordWorkerJob(sub.Section.String(), metrics.OutcomeStorageError)
		w.logger.Error(ctx, "section job failed",
			logger.String("user_id", sub.UserID),
			logger.String("section", sub.Section.String()),
			logger.Error(err),
		)
	}
	j.Finish(res, err)
}

// Pool manages multiple workers sharing one queue.
type Pool struct {
	workers []*InMemoryWorker
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	logger  logger.Logger
}

// NewPool creates a pool of workerCount workers. A non-positive count uses
// one worker per CPU.
func NewPool(workerCount int, q Queue, ingester Ingester) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}
	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := range p.workers {
		p.workers[i] = NewInMemoryWorker(q, ingester, WithName("worker-"+strconv.Itoa(i)))
	}
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Start runs every worker in its own goroutine.
func (p *Pool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	for _, w := range p.workers {
		p.wg.Add(1)
		go func(w *InMemoryWorker) {
			defer p.wg.Done()
			w.Run(ctx)
		}(w)
	}
	metrics.UpdateWorkersActive(len(p.workers))
}

// Shutdown waits for the workers to drain the queue. The caller closes the
// queue first. If ctx expires, the workers are canceled and the remaining
// jobs are finished with an error.
func (p *Pool) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
	case <-ctx.Done():
		p.logger.Warn(ctx, "worker pool shutdown timed out")
		err = fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
	if p.cancel != nil {
		p.cancel()
	}
	<-done
	metrics.UpdateWorkersActive(0)
	return err
}
