package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"

	"github.com/unclebandit/customer-bootstrap/internal/model"
)

const retryHeader = "x-retry-count"

// AMQPQueue publishes and consumes jobs through RabbitMQ. Each topic is a
// durable queue on the default exchange.
type AMQPQueue struct {
	conn *amqp.Connection

	mu sync.Mutex
	ch *amqp.Channel
}

// NewAMQPQueue connects to RabbitMQ
func NewAMQPQueue(url string) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	return &AMQPQueue{conn: conn, ch: ch}, nil
}

// Close closes the channel and the connection.
func (q *AMQPQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.ch.Close(); err != nil {
		q.conn.Close()
		return err
	}
	return q.conn.Close()
}

func (q *AMQPQueue) declare(topic string) error {
	_, err := q.ch.QueueDeclare(
		topic,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", topic, err)
	}
	return nil
}

// Publish sends job to topic as a persistent JSON message
func (q *AMQPQueue) Publish(topic string, job model.ImportJob) error {
	return q.publish(topic, job, 0)
}

func (q *AMQPQueue) publish(topic string, job model.ImportJob, retries int) error {
	msg, err := encodeJob(job, retries)
	if err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.declare(topic); err != nil {
		return err
	}
	return q.ch.Publish("", topic, false, false, msg)
}

// Subscribe consumes topic in a background goroutine. Messages are acked
// once handled; failures are republished with an incremented retry count
// until MaxRetries.
func (q *AMQPQueue) Subscribe(topic string, handler Handler) error {
	q.mu.Lock()
	if err := q.declare(topic); err != nil {
		q.mu.Unlock()
		return err
	}
	msgs, err := q.ch.Consume(
		topic,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	q.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for d := range msgs {
			q.deliver(topic, d, handler)
		}
		log.Info().Str("topic", topic).Msg("consumer stopped")
	}()
	return nil
}

func (q *AMQPQueue) deliver(topic string, d amqp.Delivery, handler Handler) {
	job, err := decodeJob(d.Body)
	if err != nil {
		log.Error().Err(err).Msg("invalid job, dropping")
		d.Ack(false)
		return
	}

	if err := handler(context.Background(), job); err != nil {
		retries := retryCount(d.Headers)
		if retries < MaxRetries {
			log.Warn().Err(err).Str("job_id", job.ID).Int("retry", retries+1).Msg("job failed, requeueing")
			if perr := q.publish(topic, job, retries+1); perr != nil {
				log.Error().Err(perr).Str("job_id", job.ID).Msg("failed to requeue job")
				d.Nack(false, true)
				return
			}
		} else {
			log.Error().Err(err).Str("job_id", job.ID).Msg("job permanently failed")
		}
	}

	d.Ack(false)
}

func encodeJob(job model.ImportJob, retries int) (amqp.Publishing, error) {
	body, err := json.Marshal(job)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    job.ID,
		Headers:      amqp.Table{retryHeader: int32(retries)},
		Body:         body,
	}, nil
}

func decodeJob(body []byte) (model.ImportJob, error) {
	var job model.ImportJob
	err := json.Unmarshal(body, &job)
	return job, err
}

// retryCount reads the retry header. The broker may hand back any integer
// width.
func retryCount(headers amqp.Table) int {
	switch v := headers[retryHeader].(type) {
	case int:
		return v
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	default:
		return 0
	}
}
