// building AWS SDK clients from one shared configuration
package awsClient

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/ds124wfegd/visionpipe/config"
	"github.com/sirupsen/logrus"
)

type Clients struct {
	SQS         *sqs.Client
	S3          *s3.Client
	Rekognition *rekognition.Client
	Transcribe  *transcribe.Client
}

// NewConfig loads the SDK configuration. Static keys are used when both are
// set, otherwise the default chain (env, shared profile, instance role) applies.
func NewConfig(ctx context.Context, cfg config.AWSConfig) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{}

	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, awsconfig.WithBaseEndpoint(cfg.Endpoint))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}
	return awsCfg, nil
}

func New(ctx context.Context, cfg config.AWSConfig) (*Clients, error) {
	awsCfg, err := NewConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	clients := &Clients{
		SQS: sqs.NewFromConfig(awsCfg),
		S3: s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			// custom endpoints (LocalStack, MinIO gateways) rarely support virtual hosts
			o.UsePathStyle = cfg.Endpoint != ""
		}),
		Rekognition: rekognition.NewFromConfig(awsCfg),
		Transcribe:  transcribe.NewFromConfig(awsCfg),
	}

	logrus.WithFields(logrus.Fields{
		"region":   awsCfg.Region,
		"endpoint": cfg.Endpoint,
	}).Info("AWS clients initialized")

	return clients, nil
}
