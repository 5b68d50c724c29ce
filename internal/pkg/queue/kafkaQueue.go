package queue

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ds124wfegd/visionpipe/config"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// the part of *kafka.Reader the queue uses
type kafkaReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaQueue struct {
	reader   kafkaReader
	waitTime time.Duration

	// released message that Receive hands out again before fetching further
	pending *kafka.Message
	retryAt time.Time
}

// NewKafkaQueue reads object-created events from a consumer group.
// Delete commits the offset. A released message is returned again after the
// wait time and no later offset is fetched until it is committed.
func NewKafkaQueue(cfg config.KafkaConfig, wait time.Duration) Queue {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})

	logrus.WithFields(logrus.Fields{
		"brokers": cfg.Brokers,
		"topic":   cfg.Topic,
		"group":   cfg.GroupID,
	}).Info("Kafka consumer configured")

	return newKafkaQueue(reader, wait)
}

func newKafkaQueue(reader kafkaReader, wait time.Duration) *kafkaQueue {
	return &kafkaQueue{reader: reader, waitTime: wait}
}

func (q *kafkaQueue) Receive(ctx context.Context) (*Message, error) {
	if q.pending != nil {
		return q.redeliver(ctx)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, q.waitTime)
	defer cancel()

	m, err := q.reader.FetchMessage(fetchCtx)
	if err != nil {
		// the wait expired without a message, the caller's context is still alive
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch kafka message: %w", err)
	}

	return kafkaMessage(m), nil
}

func (q *kafkaQueue) redeliver(ctx context.Context) (*Message, error) {
	timer := time.NewTimer(time.Until(q.retryAt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	m := *q.pending
	q.pending = nil
	return kafkaMessage(m), nil
}

func kafkaMessage(m kafka.Message) *Message {
	return &Message{
		ID:   m.Topic + "/" + strconv.Itoa(m.Partition) + "/" + strconv.FormatInt(m.Offset, 10),
		Body: m.Value,
		raw:  m,
	}
}

func (q *kafkaQueue) Delete(ctx context.Context, msg *Message) error {
	m, ok := msg.raw.(kafka.Message)
	if !ok {
		return fmt.Errorf("message %s was not received from kafka", msg.ID)
	}
	if err := q.reader.CommitMessages(ctx, m); err != nil {
		return fmt.Errorf("failed to commit kafka message %s: %w", msg.ID, err)
	}
	return nil
}

// Release keeps the offset uncommitted and queues the message for the next Receive.
func (q *kafkaQueue) Release(_ context.Context, msg *Message) error {
	m, ok := msg.raw.(kafka.Message)
	if !ok {
		return fmt.Errorf("message %s was not received from kafka", msg.ID)
	}
	q.pending = &m
	q.retryAt = time.Now().Add(q.waitTime)
	return nil
}

func (q *kafkaQueue) Close() error {
	return q.reader.Close()
}
