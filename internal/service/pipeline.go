package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ds124wfegd/visionpipe/internal/entity"
	"github.com/ds124wfegd/visionpipe/internal/pkg/metrics"
	"github.com/ds124wfegd/visionpipe/internal/pkg/queue"
	"github.com/ds124wfegd/visionpipe/internal/pkg/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AckMode string

const (
	// AckBefore deletes a message as soon as it is received; any later error stops the pipeline.
	AckBefore AckMode = "before"
	// AckAfter deletes a message only once its result is saved; failures wait for redelivery.
	AckAfter AckMode = "after"
)

func ParseAckMode(s string) (AckMode, error) {
	switch AckMode(s) {
	case "", AckBefore:
		return AckBefore, nil
	case AckAfter:
		return AckAfter, nil
	default:
		return "", fmt.Errorf("unknown ack mode %q", s)
	}
}

type Pipeline struct {
	queue   queue.Queue
	objects storage.ObjectStore
	labels  LabelService
	ackMode AckMode
	metrics *metrics.Pipeline
}

func NewPipeline(q queue.Queue, objects storage.ObjectStore, labels LabelService, ackMode AckMode, m *metrics.Pipeline) *Pipeline {
	return &Pipeline{
		queue:   q,
		objects: objects,
		labels:  labels,
		ackMode: ackMode,
		metrics: m,
	}
}

// Run polls until ctx is cancelled. Cancellation is a clean stop and returns nil.
func (p *Pipeline) Run(ctx context.Context) error {
	log := logrus.WithFields(logrus.Fields{
		"run_id":   uuid.NewString(),
		"ack_mode": p.ackMode,
	})
	log.Info("Label pipeline started")

	for ctx.Err() == nil {
		if err := p.Poll(ctx); err != nil {
			if ctx.Err() != nil {
				break
			}
			return err
		}
	}

	log.Info("Label pipeline stopped")
	return nil
}

// Poll waits for at most one message and processes it.
func (p *Pipeline) Poll(ctx context.Context) error {
	msg, err := p.queue.Receive(ctx)
	if err != nil {
		p.metrics.Fail("receive")
		return err
	}
	if msg == nil {
		logrus.Info("No messages in queue. Waiting...")
		p.metrics.EmptyPoll()
		return nil
	}

	p.metrics.MessageReceived()
	start := time.Now()
	log := logrus.WithField("message_id", msg.ID)

	if p.ackMode == AckBefore {
		if err := p.delete(ctx, msg); err != nil {
			return err
		}
	}

	notification, err := entity.ParseNotification(msg.Body)
	if err != nil {
		log.WithError(err).Errorf("S3 path or bucket not found in message: %s", msg.Body)
		p.metrics.MessageSkipped()
		// it can never succeed, redelivery would only repeat this
		return p.ackAfter(ctx, msg, log)
	}

	if err := p.process(ctx, notification, log); err != nil {
		if p.ackMode == AckBefore {
			return err
		}
		log.WithError(err).Error("Processing failed, message released for redelivery")
		if err := p.queue.Release(ctx, msg); err != nil {
			p.metrics.Fail("release")
			log.WithError(err).Error("Failed to release message")
		}
		return nil
	}

	p.metrics.Observe(start)
	return p.ackAfter(ctx, msg, log)
}

func (p *Pipeline) process(ctx context.Context, n *entity.Notification, log *logrus.Entry) error {
	imageID := n.FileName()
	log = log.WithFields(logrus.Fields{
		"bucket":   n.Bucket(),
		"key":      n.Key(),
		"image_id": imageID,
	})

	image, err := p.objects.Get(ctx, n.Bucket(), n.Key())
	if err != nil {
		p.metrics.Fail("fetch")
		return fmt.Errorf("fetch image: %w", err)
	}

	if _, err := p.labels.LabelImage(ctx, imageID, image); err != nil {
		if errors.Is(err, entity.ErrSaveResult) {
			p.metrics.Fail("save")
		} else {
			p.metrics.Fail("detect")
		}
		return fmt.Errorf("label image: %w", err)
	}

	p.metrics.ResultSaved()
	log.Infof("Label results saved for %s.", imageID)
	return nil
}

func (p *Pipeline) delete(ctx context.Context, msg *queue.Message) error {
	if err := p.queue.Delete(ctx, msg); err != nil {
		p.metrics.Fail("delete")
		return err
	}
	return nil
}

// ackAfter deletes a finished message in AckAfter mode. A failed delete only
// means the message comes back and its result is overwritten.
func (p *Pipeline) ackAfter(ctx context.Context, msg *queue.Message, log *logrus.Entry) error {
	if p.ackMode != AckAfter {
		return nil
	}
	if err := p.delete(ctx, msg); err != nil {
		log.WithError(err).Error("Failed to delete processed message")
	}
	return nil
}
