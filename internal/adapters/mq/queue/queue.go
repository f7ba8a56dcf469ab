// Package queue holds section jobs between the HTTP layer and the worker
// pool. The in-memory queue is bounded and never blocks producers.
package queue

import (
	"context"
	"sync"

	"github.com/tashifkhan/faculty-appraisal-system/internal/domain/model"
	"github.com/tashifkhan/faculty-appraisal-system/internal/domain/types"
	"github.com/tashifkhan/faculty-appraisal-system/pkg/metrics"
)

const defaultQueueCapacity = 1024

// Job is one section submission plus the callback that receives its
// outcome. Done is called exactly once by the consumer.
type Job struct {
	Submission model.Submission
	Done       func(types.ScoreResult, error)
}

// Finish reports the outcome of j. A nil Done is ignored.
func (j Job) Finish(res types.ScoreResult, err error) {
	if j.Done != nil {
		j.Done(res, err)
	}
}

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a job. Returns false if the queue is full or closed.
	Enqueue(ctx context.Context, j Job) bool

	// Dequeue returns the channel jobs are delivered on. It is closed
	// once the queue is closed and drained.
	Dequeue() <-chan Job

	// Len returns the current number of queued jobs.
	Len() int

	// Close stops accepting jobs. Already queued jobs stay deliverable.
	Close() error
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	jobs     chan Job
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.jobs = make(chan Job, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	return q
}

// Enqueue adds a job to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, j Job) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordEnqueue(metrics.EnqueueClosed)
		return false
	}
	if ctx.Err() != nil {
		metrics.RecordEnqueue(metrics.EnqueueCanceled)
		return false
	}

	select {
	case q.jobs <- j:
		metrics.RecordEnqueue(metrics.EnqueueAccepted)
		metrics.UpdateQueueSize(len(q.jobs))
		return true
	default:
		metrics.RecordEnqueue(metrics.EnqueueFull)
		return false
	}
}

// Dequeue returns the receive side of the queue.
func (q *InMemoryQueue) Dequeue() <-chan Job {
	return q.jobs
}

// Len returns the current number of queued jobs.
func (q *InMemoryQueue) Len() int {
	n := len(q.jobs)
	metrics.UpdateQueueSize(n)
	return n
}

// Close gracefully shuts down the queue. It is safe to call more than once.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.jobs)
	q.closed = true
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
