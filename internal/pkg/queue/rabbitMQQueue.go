package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/ds124wfegd/visionpipe/config"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

type rabbitMQQueue struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	queue    amqp.Queue
	msgs     <-chan amqp.Delivery
	waitTime time.Duration
}

func NewRabbitMQQueue(ctx context.Context, cfg config.RabbitMQConfig, wait time.Duration) (Queue, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	q, err := channel.QueueDeclare(
		cfg.QueueName, // name
		true,          // durable
		false,         // delete when unused
		false,         // exclusive
		false,         // no-wait
		amqp.Table{
			"x-queue-mode": "lazy",
		},
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	// one unacknowledged delivery at a time
	if err := channel.Qos(1, 0, false); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := channel.ConsumeWithContext(
		ctx,
		q.Name, // queue
		"",     // consumer
		false,  // auto-ack
		false,  // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // args
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to consume messages: %w", err)
	}

	logrus.WithField("queue", q.Name).Info("RabbitMQ consumer started")

	return &rabbitMQQueue{
		conn:     conn,
		channel:  channel,
		queue:    q,
		msgs:     msgs,
		waitTime: wait,
	}, nil
}

func (r *rabbitMQQueue) Receive(ctx context.Context) (*Message, error) {
	timer := time.NewTimer(r.waitTime)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, nil
	case d, ok := <-r.msgs:
		if !ok {
			return nil, fmt.Errorf("RabbitMQ delivery channel closed")
		}
		id := d.MessageId
		if id == "" {
			id = fmt.Sprintf("%s/%d", r.queue.Name, d.DeliveryTag)
		}
		return &Message{ID: id, Body: d.Body, raw: d}, nil
	}
}

func (r *rabbitMQQueue) Delete(ctx context.Context, msg *Message) error {
	d, ok := msg.raw.(amqp.Delivery)
	if !ok {
		return fmt.Errorf("message %s was not received from RabbitMQ", msg.ID)
	}
	if err := d.Ack(false); err != nil {
		return fmt.Errorf("failed to ack message %s: %w", msg.ID, err)
	}
	return nil
}

// Release requeues the delivery. Under prefetch 1 nothing else arrives until it is acked or nacked.
func (r *rabbitMQQueue) Release(ctx context.Context, msg *Message) error {
	d, ok := msg.raw.(amqp.Delivery)
	if !ok {
		return fmt.Errorf("message %s was not received from RabbitMQ", msg.ID)
	}
	if err := d.Nack(false, true); err != nil {
		return fmt.Errorf("failed to requeue message %s: %w", msg.ID, err)
	}
	return nil
}

func (r *rabbitMQQueue) Close() error {
	var errs []error

	if r.channel != nil {
		if err := r.channel.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if r.conn != nil {
		if err := r.conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors while closing RabbitMQ: %v", errs)
	}

	return nil
}
