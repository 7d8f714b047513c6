package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/unclebandit/customer-bootstrap/internal/model"
)

// TopicImports carries customer import jobs.
const TopicImports = "customer_imports"

// MaxRetries is how many times a failed job is retried before it is dropped.
const MaxRetries = 3

// Handler processes one job. A non-nil error triggers a retry.
type Handler func(ctx context.Context, job model.ImportJob) error

// Queue interface
type Queue interface {
	Publish(topic string, job model.ImportJob) error
	Subscribe(topic string, handler Handler) error
}

// InMemoryQueue runs handlers in-process, with retry
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]Handler

	// Backoff is the base delay between attempts; attempt n waits n*Backoff.
	Backoff time.Duration
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]Handler),
		Backoff:  500 * time.Millisecond,
	}
}

// Publish hands the job to every subscriber of topic
func (q *InMemoryQueue) Publish(topic string, job model.ImportJob) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler Handler, job model.ImportJob) {
	for attempt := 0; ; attempt++ {
		err := handler(context.Background(), job)
		if err == nil {
			log.Debug().Str("job_id", job.ID).Msg("job processed")
			return // ACK
		}

		if attempt >= MaxRetries {
			log.Error().Err(err).Str("job_id", job.ID).Int("attempts", attempt+1).Msg("job permanently failed")
			return // No requeue
		}
		log.Warn().Err(err).Str("job_id", job.ID).Int("attempt", attempt+1).Msg("job failed, retrying")

		time.Sleep(time.Duration(attempt+1) * q.Backoff)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler Handler) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}
