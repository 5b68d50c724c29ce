package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/ds124wfegd/visionpipe/internal/entity"
)

// SQSAPI is the part of *sqs.Client the queue needs.
type SQSAPI interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
	ChangeMessageVisibility(ctx context.Context, params *sqs.ChangeMessageVisibilityInput, optFns ...func(*sqs.Options)) (*sqs.ChangeMessageVisibilityOutput, error)
}

// SQS long polling accepts 1 to 20 seconds.
const (
	minWaitSeconds = 1
	maxWaitSeconds = 20
)

type sqsQueue struct {
	client   SQSAPI
	url      string
	waitTime int32
}

func NewSQSQueue(client SQSAPI, url string, wait time.Duration) (Queue, error) {
	if url == "" {
		return nil, entity.ErrQueueURLRequired
	}
	return &sqsQueue{
		client:   client,
		url:      url,
		waitTime: waitSeconds(wait),
	}, nil
}

// waitSeconds rounds wait up to whole seconds within the long polling range.
func waitSeconds(wait time.Duration) int32 {
	seconds := int64((wait + time.Second - 1) / time.Second)
	if seconds < minWaitSeconds {
		return minWaitSeconds
	}
	if seconds > maxWaitSeconds {
		return maxWaitSeconds
	}
	return int32(seconds)
}

func (q *sqsQueue) Receive(ctx context.Context) (*Message, error) {
	out, err := q.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(q.url),
		MaxNumberOfMessages: 1,
		WaitTimeSeconds:     q.waitTime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to receive message: %w", err)
	}
	if len(out.Messages) == 0 {
		return nil, nil
	}

	m := out.Messages[0]
	return &Message{
		ID:            aws.ToString(m.MessageId),
		Body:          []byte(aws.ToString(m.Body)),
		ReceiptHandle: aws.ToString(m.ReceiptHandle),
		raw:           m,
	}, nil
}

func (q *sqsQueue) Delete(ctx context.Context, msg *Message) error {
	_, err := q.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(q.url),
		ReceiptHandle: aws.String(msg.ReceiptHandle),
	})
	if err != nil {
		return fmt.Errorf("failed to delete message %s: %w", msg.ID, err)
	}
	return nil
}

// Release makes the message visible again right away instead of after the visibility timeout.
func (q *sqsQueue) Release(ctx context.Context, msg *Message) error {
	_, err := q.client.ChangeMessageVisibility(ctx, &sqs.ChangeMessageVisibilityInput{
		QueueUrl:          aws.String(q.url),
		ReceiptHandle:     aws.String(msg.ReceiptHandle),
		VisibilityTimeout: 0,
	})
	if err != nil {
		return fmt.Errorf("failed to release message %s: %w", msg.ID, err)
	}
	return nil
}

func (q *sqsQueue) Close() error {
	return nil
}

// InspectSQS performs a single receive with every system attribute attached.
// The message is not deleted.
func InspectSQS(ctx context.Context, client SQSAPI, url string) (*sqs.ReceiveMessageOutput, error) {
	if url == "" {
		return nil, entity.ErrQueueURLRequired
	}
	out, err := client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:                    aws.String(url),
		MaxNumberOfMessages:         1,
		MessageSystemAttributeNames: []types.MessageSystemAttributeName{types.MessageSystemAttributeNameAll},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to receive message: %w", err)
	}
	return out, nil
}
