package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/customer-bootstrap/internal/model"
)

func TestInMemoryQueue_NoSubscribers(t *testing.T) {
	q := NewInMemoryQueue()
	err := q.Publish(TopicImports, model.ImportJob{ID: "job-1"})
	assert.EqualError(t, err, "no subscribers for topic customer_imports")
}

func TestInMemoryQueue_Delivers(t *testing.T) {
	q := NewInMemoryQueue()

	got := make(chan model.ImportJob, 1)
	require.NoError(t, q.Subscribe(TopicImports, func(_ context.Context, job model.ImportJob) error {
		got <- job
		return nil
	}))

	require.NoError(t, q.Publish(TopicImports, model.ImportJob{ID: "job-1", Country: "chile"}))

	select {
	case job := <-got:
		assert.Equal(t, "job-1", job.ID)
		assert.Equal(t, "chile", job.Country)
	case <-time.After(time.Second):
		t.Fatal("job was not delivered")
	}
}

func TestInMemoryQueue_Retries(t *testing.T) {
	q := NewInMemoryQueue()
	q.Backoff = time.Millisecond

	var calls atomic.Int32
	var wg sync.WaitGroup
	wg.Add(MaxRetries + 1)
	require.NoError(t, q.Subscribe(TopicImports, func(context.Context, model.ImportJob) error {
		defer wg.Done()
		calls.Add(1)
		return errors.New("source not ready")
	}))

	require.NoError(t, q.Publish(TopicImports, model.ImportJob{ID: "job-2"}))
	wg.Wait()

	// Give a wrongly scheduled extra attempt a chance to show up.
	time.Sleep(20 * time.Millisecond)
	assert.EqualValues(t, MaxRetries+1, calls.Load())
}

func TestInMemoryQueue_SucceedsAfterRetry(t *testing.T) {
	q := NewInMemoryQueue()
	q.Backoff = time.Millisecond

	var calls atomic.Int32
	done := make(chan struct{})
	require.NoError(t, q.Subscribe(TopicImports, func(context.Context, model.ImportJob) error {
		if calls.Add(1) < 2 {
			return errors.New("transient")
		}
		close(done)
		return nil
	}))

	require.NoError(t, q.Publish(TopicImports, model.ImportJob{ID: "job-3"}))

	select {
	case <-done:
		assert.EqualValues(t, 2, calls.Load())
	case <-time.After(time.Second):
		t.Fatal("job did not succeed")
	}
}

func TestEncodeDecodeJob(t *testing.T) {
	job := model.ImportJob{ID: "job-4", Country: "Hungary", MaxCount: 5, RequestedAt: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)}

	msg, err := encodeJob(job, 2)
	require.NoError(t, err)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "job-4", msg.MessageId)
	assert.Equal(t, 2, retryCount(msg.Headers))

	decoded, err := decodeJob(msg.Body)
	require.NoError(t, err)
	assert.Equal(t, job, decoded)

	_, err = decodeJob([]byte("{"))
	assert.Error(t, err)
}

func TestRetryCount(t *testing.T) {
	assert.Equal(t, 0, retryCount(nil))
	assert.Equal(t, 0, retryCount(amqp.Table{retryHeader: "3"}))
	assert.Equal(t, 1, retryCount(amqp.Table{retryHeader: int8(1)}))
	assert.Equal(t, 2, retryCount(amqp.Table{retryHeader: int16(2)}))
	assert.Equal(t, 3, retryCount(amqp.Table{retryHeader: int64(3)}))
	assert.Equal(t, 4, retryCount(amqp.Table{retryHeader: 4}))
}
