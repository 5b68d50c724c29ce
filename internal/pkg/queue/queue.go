// notification sources the labeler pipeline polls
package queue

import (
	"context"
	"fmt"

	"github.com/ds124wfegd/visionpipe/config"
	"github.com/ds124wfegd/visionpipe/internal/entity"
)

type Message struct {
	ID            string
	Body          []byte
	ReceiptHandle string

	// backend specific handle used by Delete
	raw interface{}
}

type Queue interface {
	// Receive waits a bounded time for one message; nil, nil when none arrived.
	Receive(ctx context.Context) (*Message, error)
	Delete(ctx context.Context, msg *Message) error
	// Release hands back a message that was not processed so it is delivered again.
	Release(ctx context.Context, msg *Message) error
	Close() error
}

// New builds the configured backend. sqsClient is only used for "sqs".
func New(ctx context.Context, cfg config.QueueConfig, sqsClient SQSAPI) (Queue, error) {
	switch cfg.Backend {
	case "", "sqs":
		return NewSQSQueue(sqsClient, cfg.URL, cfg.WaitTime)
	case "kafka":
		return NewKafkaQueue(cfg.Kafka, cfg.WaitTime), nil
	case "rabbitmq":
		return NewRabbitMQQueue(ctx, cfg.RabbitMQ, cfg.WaitTime)
	default:
		return nil, fmt.Errorf("%w: queue %q", entity.ErrUnknownBackend, cfg.Backend)
	}
}
